// Package registry holds the in-memory state of the three dispatch entity
// collections: tasks, vehicles and drivers. Registries are plain keyed
// stores; cross-entity invariants are enforced by the dispatch coordinator,
// so single-entity edits never pay for cross-entity validation.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// NotFoundError reports that an id did not resolve in a registry.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Store is a mutex-guarded keyed collection. All read methods return
// copies; mutations replace whole records.
type Store[T any] struct {
	kind string
	id   func(T) string
	mu   sync.RWMutex
	data map[string]T
}

// NewStore creates an empty store. kind names the entity in errors and id
// extracts the record key.
func NewStore[T any](kind string, id func(T) string) *Store[T] {
	return &Store[T]{kind: kind, id: id, data: map[string]T{}}
}

// List returns a copy of all records sorted by id.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]T, 0, len(s.data))
	for _, v := range s.data {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool { return s.id(res[i]) < s.id(res[j]) })
	return res
}

// Get returns the record with the given id or a NotFoundError.
func (s *Store[T]) Get(id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[id]
	if !ok {
		var zero T
		return zero, NotFoundError{Kind: s.kind, ID: id}
	}
	return v, nil
}

// Put inserts or replaces a single record.
func (s *Store[T]) Put(v T) {
	s.mu.Lock()
	s.data[s.id(v)] = v
	s.mu.Unlock()
}

// Apply edits the record with the given id in place. It is meant for
// single-field edits outside the assignment path; missing ids yield a
// NotFoundError and no mutation.
func (s *Store[T]) Apply(id string, fn func(*T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[id]
	if !ok {
		return NotFoundError{Kind: s.kind, ID: id}
	}
	fn(&v)
	s.data[id] = v
	return nil
}

// Delete removes the record with the given id, if present.
func (s *Store[T]) Delete(id string) {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
}

// ReplaceAll swaps the full contents of the store. The coordinator uses it
// to install the result of a committed transaction.
func (s *Store[T]) ReplaceAll(vs []T) {
	next := make(map[string]T, len(vs))
	for _, v := range vs {
		next[s.id(v)] = v
	}
	s.mu.Lock()
	s.data = next
	s.mu.Unlock()
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
