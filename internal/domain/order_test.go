package domain

import (
	"testing"
)

func mk(id, category string, pos int) Bookmark {
	return Bookmark{
		ID:       id,
		Title:    "title-" + id,
		URL:      "https://example.com/" + id,
		Category: category,
		Visible:  true,
		Position: pos,
	}
}

func ids(bookmarks []Bookmark) []string {
	out := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		out = append(out, b.ID)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// checkDense verifies that positions inside every category form a
// contiguous 0..n-1 sequence with no gaps or duplicates.
func checkDense(t *testing.T, bookmarks []Bookmark) {
	t.Helper()
	counts := make(map[string]int)
	seen := make(map[string]map[int]bool)
	for _, b := range bookmarks {
		key := b.CategoryKey()
		counts[key]++
		if seen[key] == nil {
			seen[key] = make(map[int]bool)
		}
		if seen[key][b.Position] {
			t.Errorf("duplicate position %d in category %q", b.Position, key)
		}
		seen[key][b.Position] = true
	}
	for key, n := range counts {
		for pos := 0; pos < n; pos++ {
			if !seen[key][pos] {
				t.Errorf("category %q missing position %d (have %d bookmarks)", key, pos, n)
			}
		}
	}
}

func TestNextPosition(t *testing.T) {
	tests := []struct {
		name      string
		bookmarks []Bookmark
		category  string
		want      int
	}{
		{
			name:     "empty collection",
			category: "Tools",
			want:     0,
		},
		{
			name:      "empty category",
			bookmarks: []Bookmark{mk("a", "Work", 0)},
			category:  "Tools",
			want:      0,
		},
		{
			name:      "appends after max",
			bookmarks: []Bookmark{mk("a", "Tools", 0), mk("b", "Tools", 1), mk("c", "Work", 5)},
			category:  "Tools",
			want:      2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextPosition(tt.bookmarks, tt.category); got != tt.want {
				t.Errorf("NextPosition() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRegroupCompactsAfterDelete(t *testing.T) {
	// Tools has A(0), B(1), C(2); delete B.
	bookmarks := []Bookmark{mk("A", "Tools", 0), mk("C", "Tools", 2)}

	result := Regroup(bookmarks, CategoryOrder(bookmarks))

	checkDense(t, result)
	if result[0].ID != "A" || result[0].Position != 0 {
		t.Errorf("A = pos %d, want 0", result[0].Position)
	}
	if result[1].ID != "C" || result[1].Position != 1 {
		t.Errorf("C = pos %d, want 1", result[1].Position)
	}

	// Then create D in Tools: it gets position 2, not B's old slot.
	if got := NextPosition(result, "Tools"); got != 2 {
		t.Errorf("NextPosition after delete = %d, want 2", got)
	}
}

func TestRegroupKeepsCategoryOrder(t *testing.T) {
	bookmarks := []Bookmark{
		mk("w1", "Work", 0),
		mk("p1", "Personal", 0),
		mk("w2", "Work", 1),
	}

	result := Regroup(bookmarks, []string{"Personal", "Work"})

	want := []string{"p1", "w1", "w2"}
	if !equalStrings(ids(result), want) {
		t.Errorf("Regroup() order = %v, want %v", ids(result), want)
	}
	checkDense(t, result)
}

func TestApplyBookmarkOrderSubset(t *testing.T) {
	bookmarks := []Bookmark{mk("id1", "", 0), mk("id2", "", 1), mk("id3", "", 2)}

	result := ApplyBookmarkOrder(bookmarks, []string{"id3", "id1"})

	want := []string{"id3", "id1", "id2"}
	if !equalStrings(ids(result), want) {
		t.Errorf("ApplyBookmarkOrder() = %v, want %v", ids(result), want)
	}
}

func TestApplyBookmarkOrderIgnoresUnknownIds(t *testing.T) {
	bookmarks := []Bookmark{mk("id1", "", 0), mk("id2", "", 1)}

	result := ApplyBookmarkOrder(bookmarks, []string{"ghost", "id2"})

	want := []string{"id2", "id1"}
	if !equalStrings(ids(result), want) {
		t.Errorf("ApplyBookmarkOrder() = %v, want %v", ids(result), want)
	}
}

func TestApplyBookmarkOrderIdempotent(t *testing.T) {
	bookmarks := []Bookmark{mk("a", "Tools", 0), mk("b", "Tools", 1), mk("c", "Work", 0)}
	order := []string{"b", "c"}

	once := Regroup(ApplyBookmarkOrder(bookmarks, order), nil)
	twice := Regroup(ApplyBookmarkOrder(once, order), nil)

	if !equalStrings(ids(once), ids(twice)) {
		t.Errorf("reorder not idempotent: first %v, second %v", ids(once), ids(twice))
	}
	for i := range once {
		if once[i].Position != twice[i].Position {
			t.Errorf("position drift at %s: %d vs %d", once[i].ID, once[i].Position, twice[i].Position)
		}
	}
}

// Reordering ids across categories reshuffles the first-seen category
// sequence instead of staying scoped to one category. That matches the
// original global-sequence behavior; callers reordering one category view
// must pass that category's full id set.
func TestApplyBookmarkOrderCrossCategory(t *testing.T) {
	bookmarks := []Bookmark{
		mk("w1", "Work", 0),
		mk("w2", "Work", 1),
		mk("p1", "Personal", 0),
	}

	seq := ApplyBookmarkOrder(bookmarks, []string{"p1", "w2"})
	result := Regroup(seq, CategoryOrder(seq))

	// Personal now leads, and w2 precedes w1 inside Work.
	want := []string{"p1", "w2", "w1"}
	if !equalStrings(ids(result), want) {
		t.Errorf("cross-category reorder = %v, want %v", ids(result), want)
	}
	checkDense(t, result)
}

func TestApplyCategoryOrder(t *testing.T) {
	bookmarks := []Bookmark{
		mk("w1", "Work", 0),
		mk("p1", "Personal", 0),
	}

	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{
			name: "subset appends unmentioned",
			keys: []string{"Personal"},
			want: []string{"Personal", "Work"},
		},
		{
			name: "unknown keys dropped",
			keys: []string{"Ghost", "Work"},
			want: []string{"Work", "Personal"},
		},
		{
			name: "duplicates collapse to first occurrence",
			keys: []string{"Work", "Personal", "Work"},
			want: []string{"Work", "Personal"},
		},
		{
			name: "keys are trimmed",
			keys: []string{"  Personal  "},
			want: []string{"Personal", "Work"},
		},
		{
			name: "empty input keeps first-seen order",
			keys: nil,
			want: []string{"Work", "Personal"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyCategoryOrder(bookmarks, tt.keys)
			if !equalStrings(got, tt.want) {
				t.Errorf("ApplyCategoryOrder(%v) = %v, want %v", tt.keys, got, tt.want)
			}
		})
	}
}

func TestSortForListing(t *testing.T) {
	bookmarks := []Bookmark{
		mk("w2", "Work", 1),
		mk("u1", "Unknown", 0),
		mk("p1", "Personal", 0),
		mk("w1", "Work", 0),
	}

	result := SortForListing(bookmarks, []string{"Personal", "Work"})

	want := []string{"p1", "w1", "w2", "u1"}
	if !equalStrings(ids(result), want) {
		t.Errorf("SortForListing() = %v, want %v", ids(result), want)
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tools", "Tools"},
		{"  Tools  ", "Tools"},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeCategory(tt.in); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com", "https://example.com"},
		{"HTTP://example.com", "HTTP://example.com"},
		{"example.com", "https://example.com"},
		{"  example.com  ", "https://example.com"},
	}

	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
