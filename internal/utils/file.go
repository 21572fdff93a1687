package utils

import (
	"os"
	"regexp"
	"strings"
)

var (
	categoryUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	titleUnsafe    = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// SanitizeCategory makes a category name safe for use as a directory
// name by replacing anything outside [A-Za-z0-9_-] with underscores.
// An empty category maps to "uncategorized".
func SanitizeCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		return "uncategorized"
	}
	return categoryUnsafe.ReplaceAllString(category, "_")
}

// SanitizeTitle reduces a title to a filename fragment: runs of
// non-alphanumeric characters collapse to single underscores and the
// result is capped at 40 characters.
func SanitizeTitle(title string) string {
	s := titleUnsafe.ReplaceAllString(title, "_")
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return info != nil && !info.IsDir()
}

// DirExists checks if a directory exists
func DirExists(dirname string) bool {
	info, err := os.Stat(dirname)
	if os.IsNotExist(err) {
		return false
	}
	return info != nil && info.IsDir()
}
