package object

import "sync"

// Locked wraps a record with its own read-write lock. All mutation after
// insertion goes through the embedded mutex; the containing store is never
// locked to touch a single record.
type Locked[T any] struct {
	sync.RWMutex
	V T
}

// Store is an append-only arena of records for one object kind. Indices are
// assigned sequentially at insertion, never change, and records are never
// removed, so the hash lookup is a bijection onto 0..Count()-1. Insertion is
// single-threaded (ingestion); afterwards any number of goroutines may look
// records up and mutate them through their per-record locks.
type Store[T any] struct {
	items  []*Locked[T]
	lookup map[Hash]int
}

// NewStore returns an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{lookup: make(map[Hash]int)}
}

// Add appends a record, registers its hash, and returns the assigned index.
func (s *Store[T]) Add(h Hash, v T) int {
	index := len(s.items)
	s.items = append(s.items, &Locked[T]{V: v})
	s.lookup[h] = index
	return index
}

// Index returns the insertion index registered for a hash.
func (s *Store[T]) Index(h Hash) (int, bool) {
	i, ok := s.lookup[h]
	return i, ok
}

// Get returns the locked record handle registered for a hash.
func (s *Store[T]) Get(h Hash) (*Locked[T], bool) {
	i, ok := s.lookup[h]
	if !ok {
		return nil, false
	}
	return s.items[i], true
}

// GetByIndex returns the locked record handle at an index. The index must
// come from this store.
func (s *Store[T]) GetByIndex(i int) *Locked[T] {
	return s.items[i]
}

// Count returns the number of records inserted.
func (s *Store[T]) Count() int {
	return len(s.items)
}

// Hashes returns every registered hash. Order is unspecified.
func (s *Store[T]) Hashes() []Hash {
	out := make([]Hash, 0, len(s.lookup))
	for h := range s.lookup {
		out = append(out, h)
	}
	return out
}

// HashForIndex scans the lookup table for the hash registered at an index.
// This is slow and should not be called in a loop.
func (s *Store[T]) HashForIndex(index int) (Hash, bool) {
	for h, i := range s.lookup {
		if i == index {
			return h, true
		}
	}
	return "", false
}

// Container bundles one store per git object kind.
type Container struct {
	Commits *Store[Commit]
	Trees   *Store[Tree]
	Blobs   *Store[Blob]
	Tags    *Store[Tag]
}

// NewContainer returns a container with four empty stores.
func NewContainer() *Container {
	return &Container{
		Commits: NewStore[Commit](),
		Trees:   NewStore[Tree](),
		Blobs:   NewStore[Blob](),
		Tags:    NewStore[Tag](),
	}
}
