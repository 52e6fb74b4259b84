package domain

import "sort"

// Ordering model: bookmarks carry a dense 0-based Position within their
// category, and the stored array itself encodes the category order (first
// occurrence of each category key, scanning front to back). Every mutation
// runs through Regroup before write-back so both invariants hold at rest.

// CategoryOrder derives the persisted category sequence from a collection:
// the first-seen order of normalized category keys.
func CategoryOrder(bookmarks []Bookmark) []string {
	seen := make(map[string]bool, len(bookmarks))
	var order []string
	for _, b := range bookmarks {
		key := b.CategoryKey()
		if !seen[key] {
			seen[key] = true
			order = append(order, key)
		}
	}
	return order
}

// NextPosition returns the append slot for categoryKey: max existing
// position + 1, or 0 when the category has no bookmarks.
func NextPosition(bookmarks []Bookmark, categoryKey string) int {
	next := 0
	for _, b := range bookmarks {
		if b.CategoryKey() == categoryKey && b.Position >= next {
			next = b.Position + 1
		}
	}
	return next
}

// Regroup rebuilds the canonical stored form of a collection: bookmarks
// grouped by categoryOrder (categories missing from the order are appended
// in first-seen order), relative order inside each category taken from the
// slice, and positions reassigned as a dense 0-based sequence per category.
func Regroup(bookmarks []Bookmark, categoryOrder []string) []Bookmark {
	groups := make(map[string][]Bookmark, len(categoryOrder))
	var firstSeen []string
	for _, b := range bookmarks {
		key := b.CategoryKey()
		if _, ok := groups[key]; !ok {
			firstSeen = append(firstSeen, key)
		}
		groups[key] = append(groups[key], b)
	}

	order := make([]string, 0, len(firstSeen))
	added := make(map[string]bool, len(firstSeen))
	for _, key := range categoryOrder {
		if _, ok := groups[key]; ok && !added[key] {
			order = append(order, key)
			added[key] = true
		}
	}
	for _, key := range firstSeen {
		if !added[key] {
			order = append(order, key)
			added[key] = true
		}
	}

	out := make([]Bookmark, 0, len(bookmarks))
	for _, key := range order {
		for pos, b := range groups[key] {
			b.Position = pos
			out = append(out, b)
		}
	}
	return out
}

// ApplyBookmarkOrder resequences the collection from an explicit id order.
// Ids found in the collection are placed first, in the supplied order;
// unknown ids are silently ignored; bookmarks not mentioned keep their
// relative order and follow after all mentioned ones. The result still
// needs Regroup to reassign positions.
func ApplyBookmarkOrder(bookmarks []Bookmark, ids []string) []Bookmark {
	byID := make(map[string]Bookmark, len(bookmarks))
	for _, b := range bookmarks {
		byID[b.ID] = b
	}

	out := make([]Bookmark, 0, len(bookmarks))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			out = append(out, b)
			delete(byID, id)
		}
	}
	for _, b := range bookmarks {
		if _, ok := byID[b.ID]; ok {
			out = append(out, b)
			delete(byID, b.ID)
		}
	}
	return out
}

// ApplyCategoryOrder computes the replacement category sequence from the
// caller-supplied keys: keys are normalized, keys without bookmarks are
// dropped, duplicates collapse to their first occurrence, and every
// existing category not mentioned is appended in first-seen order. The
// result fully replaces the previous order.
func ApplyCategoryOrder(bookmarks []Bookmark, keys []string) []string {
	existing := CategoryOrder(bookmarks)
	known := make(map[string]bool, len(existing))
	for _, key := range existing {
		known[key] = true
	}

	order := make([]string, 0, len(existing))
	added := make(map[string]bool, len(existing))
	for _, raw := range keys {
		key := NormalizeCategory(raw)
		if known[key] && !added[key] {
			order = append(order, key)
			added[key] = true
		}
	}
	for _, key := range existing {
		if !added[key] {
			order = append(order, key)
			added[key] = true
		}
	}
	return order
}

// SortForListing produces the user-visible order: category rank first
// (unknown categories last, keeping their relative order), position
// ascending within each category. Recomputed on every list read; no
// combined rank is ever persisted.
func SortForListing(bookmarks []Bookmark, categoryOrder []string) []Bookmark {
	rank := make(map[string]int, len(categoryOrder))
	for i, key := range categoryOrder {
		rank[key] = i
	}

	out := CloneBookmarks(bookmarks)
	sort.SliceStable(out, func(i, j int) bool {
		ri, iKnown := rank[out[i].CategoryKey()]
		rj, jKnown := rank[out[j].CategoryKey()]
		if iKnown != jKnown {
			return iKnown
		}
		if iKnown && ri != rj {
			return ri < rj
		}
		if !iKnown && out[i].CategoryKey() != out[j].CategoryKey() {
			// Unknown categories stay in encounter order.
			return false
		}
		return out[i].Position < out[j].Position
	})
	return out
}
