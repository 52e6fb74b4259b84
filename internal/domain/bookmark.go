package domain

import "strings"

// Bookmark is one stored bookmark entry.
type Bookmark struct {
	// ID is the canonical unique identifier, assigned at creation
	// and never reused.
	ID string `json:"id"`

	// Title is the display label. Never empty.
	Title string `json:"title"`

	// URL is the link target, normalized to carry a scheme.
	URL string `json:"url"`

	// Category is the normalized grouping label. Empty string means
	// uncategorized.
	Category string `json:"category,omitempty"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// Visible controls whether the bookmark shows up on the public page.
	Visible bool `json:"visible"`

	// Position is the rank within the bookmark's category: dense,
	// 0-based, unique per category.
	Position int `json:"position"`
}

// BookmarkInput carries the caller-supplied fields for create and update.
type BookmarkInput struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Visible     bool   `json:"visible"`
}

// NormalizeCategory trims a category label. Empty or whitespace-only
// input collapses to the uncategorized sentinel (empty string).
func NormalizeCategory(value string) string {
	return strings.TrimSpace(value)
}

// CategoryKey returns the normalized grouping key for a bookmark.
func (b Bookmark) CategoryKey() string {
	return NormalizeCategory(b.Category)
}

// NormalizeURL prefixes https:// when the value has no http(s) scheme.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}

// CloneBookmarks returns a defensive copy of a bookmark slice. Callers of
// the repository must never observe mutation of cached state.
func CloneBookmarks(bookmarks []Bookmark) []Bookmark {
	out := make([]Bookmark, len(bookmarks))
	copy(out, bookmarks)
	return out
}
