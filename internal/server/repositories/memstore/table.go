// Package memstore is the in-process entity store: one mutex-guarded table
// per record kind, each with its own id counter. Every operation runs to
// completion under its table lock, and records are copied on the way in and
// out so callers never alias stored state.
package memstore

import (
	"sort"
	"sync"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/server/models"
)

// Table holds records of one kind keyed by a monotonically increasing id
// starting at 1. Ids are never reused.
type Table[T any] struct {
	mu    sync.RWMutex
	next  int64
	rows  map[int64]T
	order []int64
	clone func(T) T
}

// NewTable creates an empty table. clone must return a deep enough copy
// of a record that the copy shares no mutable state with the original.
func NewTable[T any](clone func(T) T) *Table[T] {
	return &Table[T]{rows: make(map[int64]T), clone: clone}
}

// Insert assigns the next id, lets build produce the record for it and
// stores a copy. The stored record is returned.
func (t *Table[T]) Insert(build func(id int64) T) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.insertLocked(build)
}

// InsertUnique behaves like Insert but first checks every stored record
// with conflict. Any match aborts the insert with common.ErrorAlreadyExists
// and no id is consumed.
func (t *Table[T]) InsertUnique(conflict func(T) bool, build func(id int64) T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, id := range t.order {
		if conflict(t.rows[id]) {
			var zero T
			return zero, common.ErrorAlreadyExists
		}
	}
	return t.insertLocked(build), nil
}

func (t *Table[T]) insertLocked(build func(id int64) T) T {
	t.next++
	id := t.next
	rec := t.clone(build(id))
	t.rows[id] = rec
	t.order = append(t.order, id)
	return t.clone(rec)
}

// Get returns the record with the given id.
func (t *Table[T]) Get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec, ok := t.rows[id]
	if !ok {
		return rec, false
	}
	return t.clone(rec), true
}

// Find returns the first record, in insertion order, accepted by match.
func (t *Table[T]) Find(match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, id := range t.order {
		if rec := t.rows[id]; match(rec) {
			return t.clone(rec), true
		}
	}
	var zero T
	return zero, false
}

// Select returns one page of the records accepted by match (nil accepts
// all), sorted with less (nil keeps insertion order).
func (t *Table[T]) Select(match func(T) bool, less func(a, b T) bool, page models.Page) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	selected := make([]T, 0, len(t.order))
	for _, id := range t.order {
		if rec := t.rows[id]; match == nil || match(rec) {
			selected = append(selected, rec)
		}
	}
	if less != nil {
		sort.SliceStable(selected, func(i, j int) bool { return less(selected[i], selected[j]) })
	}

	start, end := page.Bounds(len(selected))
	out := make([]T, 0, end-start)
	for _, rec := range selected[start:end] {
		out = append(out, t.clone(rec))
	}
	return out
}

// Count returns the number of records accepted by match (nil counts all).
func (t *Table[T]) Count(match func(T) bool) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if match == nil {
		return len(t.order)
	}
	n := 0
	for _, id := range t.order {
		if match(t.rows[id]) {
			n++
		}
	}
	return n
}

// Update applies mutate to the record with the given id in place and
// returns the result.
func (t *Table[T]) Update(id int64, mutate func(*T)) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.rows[id]
	if !ok {
		return rec, false
	}
	mutate(&rec)
	rec = t.clone(rec)
	t.rows[id] = rec
	return t.clone(rec), true
}

// UpdateWhere applies mutate to every record accepted by match and returns
// how many records mutate reported as changed.
func (t *Table[T]) UpdateWhere(match func(T) bool, mutate func(*T) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	changed := 0
	for _, id := range t.order {
		rec := t.rows[id]
		if !match(rec) {
			continue
		}
		if mutate(&rec) {
			t.rows[id] = rec
			changed++
		}
	}
	return changed
}
