package client

import "context"

// TextClient is implemented by language model backends used for text
// shaping. Callers treat every error as "collaborator unavailable" and
// fall back to local heuristics.
type TextClient interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}
