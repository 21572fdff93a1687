package types

import "fmt"

// Item is a single article record from the scraping pipeline. Fields
// beyond title and summary are carried through but not required.
type Item struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Link      string `json:"link,omitempty"`
	Published string `json:"published,omitempty"`
}

// ShapedText is the text actually placed on the canvas: a possibly
// shortened headline, the phrase to highlight inside it, and a short
// summary sentence. Title keeps the item's original title so the output
// filename stays stable even when the headline was rewritten.
type ShapedText struct {
	Title     string
	Headline  string
	Highlight string
	Summary   string
}

// PostResult identifies a rendered post image on disk.
type PostResult struct {
	OutputPath string `json:"output_path"`
	Category   string `json:"category"`
	Index      int    `json:"index"`
}

// ItemError reports a failure for one item of a batch, keeping the
// item's identity so the caller can continue with the remaining items.
type ItemError struct {
	Category string
	Index    int
	Err      error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d in category %q: %v", e.Index, e.Category, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
