// Package shaper turns raw article text into the headline, highlight
// phrase, and short summary placed on a post image. A language model
// does the rewriting when one is configured; every operation has a
// deterministic local fallback, so a missing or misbehaving model never
// fails the pipeline.
package shaper

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode"

	"github.com/menta2k/post-generator/pkg/client"
	"github.com/menta2k/post-generator/pkg/types"
)

// HeadlinePrompt asks for a shortened title. Applied only to titles
// longer than longTitleThreshold characters.
const HeadlinePrompt = `Shorten this title into a crisp 6-10 word headline.
Keep the original meaning; do not invent facts.
Title:
%s

Return only the headline.`

// HighlightPrompt asks for the phrase to visually emphasize.
const HighlightPrompt = `From this title, choose the most important short phrase (1-4 words)
that best captures the core idea. Output ONLY the phrase, nothing else.

Title:
%s`

// SummaryPrompt asks for a caption-length rewrite of the summary.
const SummaryPrompt = `Rewrite the following into a clear, factual, catchy 12-15 word summary
suitable as a social media caption subtitle. Keep it factual and do not add new claims.

Original:
%s

Output (one sentence, 12-15 words):`

const (
	longTitleThreshold = 120
	minHeadlineChars   = 6
	maxHighlightWords  = 5
	minSummaryWords    = 6
	maxSummaryWords    = 15
)

var (
	alnumToken = regexp.MustCompile(`[A-Za-z0-9]+`)
	htmlTag    = regexp.MustCompile(`<[^>]*>`)
)

// Shaper rewrites item text through a TextClient with local fallbacks.
type Shaper struct {
	client client.TextClient // nil means always use the fallbacks
	model  string
}

// New creates a shaper. A nil client is valid and selects the
// deterministic fallback for every operation.
func New(c client.TextClient, model string) *Shaper {
	return &Shaper{client: c, model: model}
}

// Shape produces the full shaped text for one item.
func (s *Shaper) Shape(ctx context.Context, item types.Item) types.ShapedText {
	headline := s.Headline(ctx, item.Title)
	return types.ShapedText{
		Title:     strings.TrimSpace(item.Title),
		Headline:  headline,
		Highlight: s.Highlight(ctx, headline),
		Summary:   s.Summary(ctx, item.Summary),
	}
}

// Headline shortens a long title into a headline. Titles at or under
// the length threshold pass through unchanged; a failed or implausibly
// short model answer falls back to the original title.
func (s *Shaper) Headline(ctx context.Context, title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "No Title"
	}
	if len(title) <= longTitleThreshold {
		return title
	}

	reply, err := s.complete(ctx, fmt.Sprintf(HeadlinePrompt, title))
	if err != nil {
		log.Printf("Warning: headline shaping failed (%v), keeping original title", err)
		return title
	}

	headline := firstLine(reply)
	if len(headline) < minHeadlineChars {
		return title
	}
	return headline
}

// Highlight picks the phrase of the headline to emphasize. The fallback
// is the first capitalized alphanumeric token, else the first token.
func (s *Shaper) Highlight(ctx context.Context, headline string) string {
	reply, err := s.complete(ctx, fmt.Sprintf(HighlightPrompt, headline))
	if err != nil {
		return FallbackHighlight(headline)
	}

	phrase := firstLine(reply)
	if phrase == "" || len(strings.Fields(phrase)) > maxHighlightWords {
		log.Printf("Warning: model highlight %q out of range, using heuristic", phrase)
		return FallbackHighlight(headline)
	}
	return phrase
}

// Summary rewrites the raw summary into a 12-15 word sentence, capped
// at 15 words. Failures and too-short answers fall back to the first 15
// words of the tag-stripped input.
func (s *Shaper) Summary(ctx context.Context, raw string) string {
	reply, err := s.complete(ctx, fmt.Sprintf(SummaryPrompt, raw))
	if err != nil {
		return FallbackSummary(raw)
	}

	words := strings.Fields(strings.ReplaceAll(reply, "\n", " "))
	if len(words) < minSummaryWords {
		log.Printf("Warning: model summary too short (%d words), using heuristic", len(words))
		return FallbackSummary(raw)
	}
	if len(words) > maxSummaryWords {
		words = words[:maxSummaryWords]
	}
	return strings.Join(words, " ")
}

func (s *Shaper) complete(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("no text client configured")
	}
	reply, err := s.client.Complete(ctx, s.model, prompt)
	if err != nil {
		return "", err
	}
	return sanitizeModelText(reply), nil
}

// FallbackHighlight is the local highlight heuristic: the first
// capitalized alphanumeric token of the headline, else its first token.
func FallbackHighlight(headline string) string {
	tokens := alnumToken.FindAllString(headline, -1)
	if len(tokens) == 0 {
		if fields := strings.Fields(headline); len(fields) > 0 {
			return fields[0]
		}
		return headline
	}
	for _, t := range tokens {
		if unicode.IsUpper([]rune(t)[0]) {
			return t
		}
	}
	return tokens[0]
}

// FallbackSummary strips HTML-like tags from the raw summary and keeps
// its first 15 whitespace-separated words.
func FallbackSummary(raw string) string {
	words := strings.Fields(htmlTag.ReplaceAllString(raw, ""))
	if len(words) > maxSummaryWords {
		words = words[:maxSummaryWords]
	}
	return strings.Join(words, " ")
}

// firstLine returns the first non-empty line, trimmed.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// sanitizeModelText strips code fences and wrapping quotes that chat
// models like to add around short answers.
func sanitizeModelText(raw string) string {
	raw = strings.TrimSpace(raw)

	// Strip triple-backtick fences if present
	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "`")
	raw = strings.Trim(raw, `"'`)

	return strings.TrimSpace(raw)
}
