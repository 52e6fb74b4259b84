package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/litemark/litemark/internal/domain"
)

// ListBookmarks returns the collection in user-visible order: category
// rank first, position within category second. The two-level sort is
// recomputed on every read; no combined rank is persisted.
func (r *Repository) ListBookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	bookmarks, err := r.loadBookmarks(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SortForListing(bookmarks, domain.CategoryOrder(bookmarks)), nil
}

// CreateBookmark appends a bookmark at the end of its category's order.
func (r *Repository) CreateBookmark(ctx context.Context, input domain.BookmarkInput) (*domain.Bookmark, error) {
	normalized, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}

	bookmarks, err := r.driver.ReadBookmarks(ctx)
	if err != nil {
		return nil, err
	}

	bookmark := domain.Bookmark{
		ID:          uuid.NewString(),
		Title:       normalized.Title,
		URL:         normalized.URL,
		Category:    normalized.Category,
		Description: normalized.Description,
		Visible:     normalized.Visible,
		Position:    domain.NextPosition(bookmarks, normalized.Category),
	}
	bookmarks = append(bookmarks, bookmark)

	return r.writeAndReturn(ctx, bookmarks, bookmark.ID)
}

// UpdateBookmark mutates a bookmark in place. A category change relocates
// the record to the end of the new category's order and compacts the old
// one; other field changes leave the position untouched. Returns nil when
// the id is unknown.
func (r *Repository) UpdateBookmark(ctx context.Context, id string, input domain.BookmarkInput) (*domain.Bookmark, error) {
	normalized, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}

	bookmarks, err := r.driver.ReadBookmarks(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(bookmarks, id)
	if idx < 0 {
		return nil, nil
	}

	existing := bookmarks[idx]
	updated := existing
	updated.Title = normalized.Title
	updated.URL = normalized.URL
	updated.Category = normalized.Category
	updated.Description = normalized.Description
	updated.Visible = normalized.Visible

	if updated.CategoryKey() != existing.CategoryKey() {
		// Delete-then-insert for ordering: remove from the old slot and
		// append behind the new category's last member.
		bookmarks = append(bookmarks[:idx], bookmarks[idx+1:]...)
		updated.Position = domain.NextPosition(bookmarks, updated.CategoryKey())
		bookmarks = append(bookmarks, updated)
	} else {
		bookmarks[idx] = updated
	}

	return r.writeAndReturn(ctx, bookmarks, id)
}

// DeleteBookmark removes a bookmark and closes the position gap in its
// category. Returns the removed record, or nil when the id is unknown.
func (r *Repository) DeleteBookmark(ctx context.Context, id string) (*domain.Bookmark, error) {
	bookmarks, err := r.driver.ReadBookmarks(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(bookmarks, id)
	if idx < 0 {
		return nil, nil
	}

	removed := bookmarks[idx]
	bookmarks = append(bookmarks[:idx], bookmarks[idx+1:]...)
	canonical := domain.Regroup(bookmarks, domain.CategoryOrder(bookmarks))

	if err := r.driver.WriteBookmarks(ctx, canonical); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.setBookmarks(canonical)
	r.mu.Unlock()
	return &removed, nil
}

// ReorderBookmarks applies an explicit id order. Unknown ids are ignored;
// bookmarks not mentioned keep their relative order after the mentioned
// ones. The sequence is global: to reorder inside one category without
// moving it, pass that category's complete id set.
func (r *Repository) ReorderBookmarks(ctx context.Context, ids []string) ([]domain.Bookmark, error) {
	bookmarks, err := r.driver.ReadBookmarks(ctx)
	if err != nil {
		return nil, err
	}

	listing := domain.SortForListing(bookmarks, domain.CategoryOrder(bookmarks))
	seq := domain.ApplyBookmarkOrder(listing, ids)
	canonical := domain.Regroup(seq, domain.CategoryOrder(seq))

	if err := r.driver.WriteBookmarks(ctx, canonical); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.setBookmarks(canonical)
	r.mu.Unlock()
	return domain.CloneBookmarks(canonical), nil
}

// ReorderCategories replaces the persisted category order with the
// supplied sequence; categories left out are appended in their original
// first-seen order. Within-category order is unaffected.
func (r *Repository) ReorderCategories(ctx context.Context, keys []string) ([]domain.Bookmark, error) {
	bookmarks, err := r.driver.ReadBookmarks(ctx)
	if err != nil {
		return nil, err
	}

	order := domain.ApplyCategoryOrder(bookmarks, keys)
	canonical := domain.Regroup(bookmarks, order)

	if err := r.driver.WriteBookmarks(ctx, canonical); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.setBookmarks(canonical)
	r.mu.Unlock()
	return domain.CloneBookmarks(canonical), nil
}

// ImportBookmarks restores bookmarks from a snapshot in one write.
// Imported records get fresh ids and append to their categories; entries
// without a title or url are skipped. With overwrite, the existing
// collection is replaced instead of extended.
func (r *Repository) ImportBookmarks(ctx context.Context, inputs []domain.BookmarkInput, overwrite bool) ([]domain.Bookmark, int, error) {
	bookmarks, err := r.driver.ReadBookmarks(ctx)
	if err != nil {
		return nil, 0, err
	}
	if overwrite {
		bookmarks = []domain.Bookmark{}
	}

	imported := 0
	for _, input := range inputs {
		normalized, err := normalizeInput(input)
		if err != nil {
			continue
		}
		bookmarks = append(bookmarks, domain.Bookmark{
			ID:          uuid.NewString(),
			Title:       normalized.Title,
			URL:         normalized.URL,
			Category:    normalized.Category,
			Description: normalized.Description,
			Visible:     normalized.Visible,
			Position:    domain.NextPosition(bookmarks, normalized.Category),
		})
		imported++
	}

	canonical := domain.Regroup(bookmarks, domain.CategoryOrder(bookmarks))
	if err := r.driver.WriteBookmarks(ctx, canonical); err != nil {
		return nil, 0, err
	}

	r.mu.Lock()
	r.setBookmarks(canonical)
	r.mu.Unlock()
	return domain.CloneBookmarks(canonical), imported, nil
}

// ForceRefreshBookmarks bypasses the cache, re-reads from storage and
// repopulates. Used after out-of-band changes to the stored document.
func (r *Repository) ForceRefreshBookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	bookmarks, err := r.driver.ReadBookmarks(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.setBookmarks(bookmarks)
	r.mu.Unlock()
	return domain.SortForListing(bookmarks, domain.CategoryOrder(bookmarks)), nil
}

// writeAndReturn canonicalizes, persists and caches the collection, then
// returns the record with the given id as stored.
func (r *Repository) writeAndReturn(ctx context.Context, bookmarks []domain.Bookmark, id string) (*domain.Bookmark, error) {
	canonical := domain.Regroup(bookmarks, domain.CategoryOrder(bookmarks))

	if err := r.driver.WriteBookmarks(ctx, canonical); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.setBookmarks(canonical)
	r.mu.Unlock()

	if idx := indexOf(canonical, id); idx >= 0 {
		b := canonical[idx]
		return &b, nil
	}
	return nil, nil
}

func normalizeInput(input domain.BookmarkInput) (domain.BookmarkInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return input, domain.Invalid("title", "must not be empty")
	}
	if strings.TrimSpace(input.URL) == "" {
		return input, domain.Invalid("url", "must not be empty")
	}
	input.URL = domain.NormalizeURL(input.URL)
	input.Category = domain.NormalizeCategory(input.Category)
	input.Description = strings.TrimSpace(input.Description)
	return input, nil
}

func indexOf(bookmarks []domain.Bookmark, id string) int {
	for i, b := range bookmarks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
