package pagination

import (
	"context"
	"fmt"
	"sync"
)

// FetchFunc loads one page of a listing for the feed's current filter
// selection.
type FetchFunc[T any] func(ctx context.Context, page int) (Page[T], error)

// Feed accumulates pages of a filtered listing. It serializes loads with an
// in-flight guard (a trigger while a fetch is outstanding is dropped, not
// queued) and tags every load with a generation counter: a response that
// resolves after the filters changed belongs to a dead generation and is
// discarded instead of mutating fresh state.
type Feed[T any] struct {
	mu       sync.Mutex
	fetch    FetchFunc[T]
	pageSize int

	items   []T
	page    int
	hasMore bool
	loading bool
	loaded  bool
	gen     uint64
}

func NewFeed[T any](pageSize int, fetch FetchFunc[T]) *Feed[T] {
	return &Feed[T]{
		fetch:    fetch,
		pageSize: pageSize,
		hasMore:  true,
	}
}

// Reset clears the accumulation and installs a new fetch function for a
// changed filter selection. Anything still in flight for the old selection
// is orphaned: its generation no longer matches when it completes.
func (f *Feed[T]) Reset(fetch FetchFunc[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetch = fetch
	f.items = nil
	f.page = 0
	f.hasMore = true
	f.loading = false
	f.loaded = false
	f.gen++
}

// LoadInitial fetches page 0, replacing any existing items.
func (f *Feed[T]) LoadInitial(ctx context.Context) error {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return nil
	}
	f.loading = true
	gen := f.gen
	fetch := f.fetch
	f.mu.Unlock()

	page, err := fetch(ctx, 0)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen {
		return nil // superseded by a filter change
	}
	f.loading = false
	if err != nil {
		return fmt.Errorf("[Feed LoadInitial] %w", err)
	}
	f.items = page.Items
	f.page = 0
	f.hasMore = page.HasMore(f.pageSize)
	f.loaded = true
	return nil
}

// LoadMore fetches the next page and appends it. It is a no-op while a load
// is outstanding or when the feed is exhausted; the returned bool reports
// whether a fetch was actually issued.
func (f *Feed[T]) LoadMore(ctx context.Context) (bool, error) {
	f.mu.Lock()
	if f.loading || !f.hasMore || !f.loaded {
		f.mu.Unlock()
		return false, nil
	}
	f.loading = true
	gen := f.gen
	fetch := f.fetch
	next := f.page + 1
	f.mu.Unlock()

	page, err := fetch(ctx, next)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen {
		return false, nil
	}
	f.loading = false
	if err != nil {
		return true, fmt.Errorf("[Feed LoadMore] %w", err)
	}
	f.items = append(f.items, page.Items...)
	f.page = next
	f.hasMore = page.HasMore(f.pageSize)
	return true, nil
}

// LoadThrough fetches pages until the accumulation covers pageNumber, used
// to restore deep scroll positions from a bookmarked URL.
func (f *Feed[T]) LoadThrough(ctx context.Context, pageNumber int) error {
	if err := f.LoadInitial(ctx); err != nil {
		return err
	}
	for f.Page() < pageNumber && f.HasMore() {
		issued, err := f.LoadMore(ctx)
		if err != nil {
			return err
		}
		if !issued {
			break
		}
	}
	return nil
}

func (f *Feed[T]) Items() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]T, len(f.items))
	copy(items, f.items)
	return items
}

func (f *Feed[T]) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

func (f *Feed[T]) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

func (f *Feed[T]) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Loaded reports whether an initial page has arrived, distinguishing the
// empty-result state from the still-loading state.
func (f *Feed[T]) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}
