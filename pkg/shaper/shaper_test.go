package shaper

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/menta2k/post-generator/pkg/types"
)

// fakeClient returns a canned reply or error for every prompt.
type fakeClient struct {
	reply string
	err   error
	calls int
}

func (f *fakeClient) Complete(ctx context.Context, model, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestHeadlineShortTitlePassesThrough(t *testing.T) {
	c := &fakeClient{reply: "should not be used"}
	s := New(c, "test-model")

	title := "AI Revolution Begins Today"
	if got := s.Headline(context.Background(), title); got != title {
		t.Errorf("Headline = %q, want original title", got)
	}
	if c.calls != 0 {
		t.Errorf("model called %d times for a short title, want 0", c.calls)
	}
}

func TestHeadlineShortensLongTitle(t *testing.T) {
	long := strings.Repeat("word ", 30) + "end" // > 120 chars
	s := New(&fakeClient{reply: "Punchy Headline About Words"}, "test-model")

	if got := s.Headline(context.Background(), long); got != "Punchy Headline About Words" {
		t.Errorf("Headline = %q, want model reply", got)
	}
}

func TestHeadlineRejectsTooShortReply(t *testing.T) {
	long := strings.Repeat("word ", 30) + "end"
	s := New(&fakeClient{reply: "hey"}, "test-model")

	if got := s.Headline(context.Background(), long); got != strings.TrimSpace(long) {
		t.Errorf("Headline = %q, want original title for a too-short reply", got)
	}
}

func TestHeadlineClientErrorFallsBack(t *testing.T) {
	long := strings.Repeat("word ", 30) + "end"
	s := New(&fakeClient{err: fmt.Errorf("connection refused")}, "test-model")

	if got := s.Headline(context.Background(), long); got != strings.TrimSpace(long) {
		t.Errorf("Headline = %q, want original title on client error", got)
	}
}

func TestHeadlineEmptyTitle(t *testing.T) {
	s := New(nil, "")
	if got := s.Headline(context.Background(), "   "); got != "No Title" {
		t.Errorf("Headline = %q, want %q", got, "No Title")
	}
}

func TestHighlightUsesModelPhrase(t *testing.T) {
	s := New(&fakeClient{reply: "Robots Learn"}, "test-model")
	if got := s.Highlight(context.Background(), "New Robots Learn Faster"); got != "Robots Learn" {
		t.Errorf("Highlight = %q, want model phrase", got)
	}
}

func TestHighlightStripsFencesAndQuotes(t *testing.T) {
	s := New(&fakeClient{reply: "```\n\"Robots Learn\"\n```"}, "test-model")
	if got := s.Highlight(context.Background(), "New Robots Learn Faster"); got != "Robots Learn" {
		t.Errorf("Highlight = %q, want unwrapped phrase", got)
	}
}

func TestHighlightRejectsLongPhrase(t *testing.T) {
	s := New(&fakeClient{reply: "far too many words to be a usable highlight"}, "test-model")
	if got := s.Highlight(context.Background(), "New Robots Learn Faster"); got != "New" {
		t.Errorf("Highlight = %q, want heuristic token %q", got, "New")
	}
}

func TestFallbackHighlight(t *testing.T) {
	tests := []struct {
		headline string
		want     string
	}{
		{"new Robots learn faster", "Robots"}, // first capitalized token
		{"all lowercase words here", "all"},   // no capitalized token: first token
		{"'Quoted' start", "Quoted"},          // punctuation is not part of tokens
		{"... !!", "..."},                     // no alphanumeric token at all
	}
	for _, tt := range tests {
		if got := FallbackHighlight(tt.headline); got != tt.want {
			t.Errorf("FallbackHighlight(%q) = %q, want %q", tt.headline, got, tt.want)
		}
	}
}

func TestSummaryUsesModelReply(t *testing.T) {
	s := New(&fakeClient{reply: "A clear factual rewrite of the original summary in a dozen words"}, "test-model")
	got := s.Summary(context.Background(), "raw input text")
	if got != "A clear factual rewrite of the original summary in a dozen words" {
		t.Errorf("Summary = %q", got)
	}
}

func TestSummaryCapsAtFifteenWords(t *testing.T) {
	s := New(&fakeClient{reply: strings.Repeat("word ", 25)}, "test-model")
	got := s.Summary(context.Background(), "raw")
	if n := len(strings.Fields(got)); n != 15 {
		t.Errorf("summary has %d words, want 15", n)
	}
}

func TestSummaryRejectsTooShortReply(t *testing.T) {
	s := New(&fakeClient{reply: "too short reply"}, "test-model")
	raw := "one two three four five six seven eight"
	if got := s.Summary(context.Background(), raw); got != raw {
		t.Errorf("Summary = %q, want fallback %q", got, raw)
	}
}

func TestSummaryFallbackStripsTagsAndTruncates(t *testing.T) {
	// Scenario: 40-word summary, collaborator unavailable: the first 15
	// words of the tag-stripped input survive.
	var words []string
	for i := 1; i <= 40; i++ {
		words = append(words, fmt.Sprintf("w%d", i))
	}
	raw := "<p>" + strings.Join(words, " ") + "</p>"

	s := New(nil, "")
	got := s.Summary(context.Background(), raw)
	want := strings.Join(words[:15], " ")
	if got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
}

func TestShapeWithoutClient(t *testing.T) {
	s := New(nil, "")
	shaped := s.Shape(context.Background(), types.Item{
		Title:   "New Robots Learn Faster",
		Summary: "Robots <b>now</b> learn complex tasks from few examples.",
	})

	if shaped.Title != "New Robots Learn Faster" {
		t.Errorf("Title = %q, want the original title carried through", shaped.Title)
	}
	if shaped.Headline != "New Robots Learn Faster" {
		t.Errorf("Headline = %q", shaped.Headline)
	}
	if shaped.Highlight != "New" {
		t.Errorf("Highlight = %q, want first capitalized token", shaped.Highlight)
	}
	if strings.Contains(shaped.Summary, "<b>") {
		t.Errorf("Summary %q still contains tags", shaped.Summary)
	}
}
