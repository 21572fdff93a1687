// Package classify buckets article items into fixed content categories
// by keyword matching on their summaries.
package classify

import (
	"strings"

	"github.com/menta2k/post-generator/pkg/types"
)

// Fallthrough category for items matching no keyword list.
const Other = "Other"

type category struct {
	name     string
	keywords []string
}

// Categories are checked in order; the first keyword hit wins.
var categories = []category{
	{"Learning & Skills", []string{
		"ai", "coding", "programming", "notes", "exam", "study",
		"machine learning", "python", "deep learning", "skill",
	}},
	{"Career & Productivity", []string{
		"career", "job", "productivity", "resume", "interview",
		"time management", "work", "focus",
	}},
	{"Motivation & Mindset", []string{
		"motivation", "mindset", "inspiration", "discipline",
		"success", "confidence", "habit",
	}},
	{"Tools & Resources", []string{
		"tools", "apps", "websites", "resources", "ai tools",
		"extensions", "software",
	}},
}

// Names returns every category name in check order, Other last.
func Names() []string {
	names := make([]string, 0, len(categories)+1)
	for _, c := range categories {
		names = append(names, c.name)
	}
	return append(names, Other)
}

// Classify returns the category of a text, or Other when no keyword
// matches. Matching is case insensitive substring search.
func Classify(text string) string {
	lower := strings.ToLower(text)
	for _, c := range categories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.name
			}
		}
	}
	return Other
}

// Split buckets items by the category of their summary text. Every
// category is present in the result, possibly empty, so downstream
// consumers see a stable shape.
func Split(items []types.Item) map[string][]types.Item {
	result := make(map[string][]types.Item, len(categories)+1)
	for _, name := range Names() {
		result[name] = []types.Item{}
	}
	for _, item := range items {
		cat := Classify(item.Summary)
		result[cat] = append(result[cat], item)
	}
	return result
}
