package crud

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Snapshots remembers the last successful fetch of a collection per owner
// (a session id), so the keystroke filter can run without a backend call.
type Snapshots[T any] struct {
	name  string
	cache *cache.Cache
}

func NewSnapshots[T any](name string, ttl time.Duration) *Snapshots[T] {
	return &Snapshots[T]{
		name:  name,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *Snapshots[T]) key(owner string) string {
	return s.name + ":" + owner
}

func (s *Snapshots[T]) Get(owner string) ([]T, bool) {
	v, ok := s.cache.Get(s.key(owner))
	if !ok {
		return nil, false
	}
	items, ok := v.([]T)
	return items, ok
}

func (s *Snapshots[T]) Put(owner string, items []T) {
	s.cache.SetDefault(s.key(owner), items)
}

func (s *Snapshots[T]) Invalidate(owner string) {
	s.cache.Delete(s.key(owner))
}

// Fetch always hits the backend and records a successful result.
func (s *Snapshots[T]) Fetch(ctx context.Context, owner string, load Loader[T]) Page[T] {
	p := Load(ctx, load)
	if p.Status == Loaded {
		s.Put(owner, p.Items)
	}
	return p
}

// Lookup serves from the snapshot and falls back to Fetch on a miss.
func (s *Snapshots[T]) Lookup(ctx context.Context, owner string, load Loader[T]) Page[T] {
	if items, ok := s.Get(owner); ok {
		return LoadedPage(items)
	}
	return s.Fetch(ctx, owner, load)
}

// Mutate runs a write and, only if it succeeds, drops the owner's snapshot
// and reloads the collection from scratch. The returned error is the
// write's; a failed reload shows up as a Failed page instead.
func (s *Snapshots[T]) Mutate(ctx context.Context, owner string, mutation func(context.Context) error, load Loader[T]) (Page[T], error) {
	if err := mutation(ctx); err != nil {
		return Page[T]{}, err
	}
	s.Invalidate(owner)
	return s.Fetch(ctx, owner, load), nil
}

// Current is the owner's snapshot as a page, if one is held.
func (s *Snapshots[T]) Current(owner string) Page[T] {
	items, _ := s.Get(owner)
	return LoadedPage(items)
}
