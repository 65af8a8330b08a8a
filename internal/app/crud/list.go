// Package crud holds the list-page state shared by the admin entity pages.
package crud

import (
	"context"
	"strings"
)

type Status int

const (
	Loading Status = iota
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Loader fetches the full collection from the backend.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Fields lists the display strings of an item that the filter matches on.
type Fields[T any] func(T) []string

// Page is the state of one list page: the loaded collection, the query and
// the subset currently visible.
type Page[T any] struct {
	Items   []T
	Visible []T
	Query   string
	Status  Status
	Err     error
}

// Load fetches the collection. A failure yields an empty Failed page.
func Load[T any](ctx context.Context, load Loader[T]) Page[T] {
	items, err := load(ctx)
	if err != nil {
		return Page[T]{Status: Failed, Err: err}
	}
	return LoadedPage(items)
}

// LoadedPage wraps an already fetched collection.
func LoadedPage[T any](items []T) Page[T] {
	return Page[T]{Items: items, Visible: items, Status: Loaded}
}

// WithQuery narrows the visible items to those matching q.
func (p Page[T]) WithQuery(q string, fields Fields[T]) Page[T] {
	p.Query = q
	p.Visible = Filter(p.Items, q, fields)
	return p
}

func (p Page[T]) Empty() bool { return len(p.Visible) == 0 }

// Mutate runs a write and, only if it succeeds, reloads the whole
// collection. A failed write returns its error and nothing is reloaded.
func Mutate[T any](ctx context.Context, mutation func(context.Context) error, load Loader[T]) ([]T, error) {
	if err := mutation(ctx); err != nil {
		return nil, err
	}
	return load(ctx)
}

// Filter keeps the items with any field containing q, ignoring case.
// Only an empty query keeps everything; spaces are matched literally.
// items is never modified.
func Filter[T any](items []T, q string, fields Fields[T]) []T {
	if q == "" {
		return items
	}
	needle := strings.ToLower(q)
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
