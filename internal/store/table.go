package store

import (
	"sort"
	"sync"
)

// table is an identity-keyed map that remembers insertion order, so
// full-table snapshots are deterministic.
type table[T any] struct {
	mu   sync.RWMutex
	recs map[string]T
	seq  map[string]int
	next int
}

func newTable[T any]() *table[T] {
	return &table[T]{
		recs: make(map[string]T),
		seq:  make(map[string]int),
	}
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.recs[id]
	return rec, ok
}

// put inserts or replaces. A replaced record keeps its original position.
func (t *table[T]) put(id string, rec T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.recs[id]; !ok {
		t.seq[id] = t.next
		t.next++
	}
	t.recs[id] = rec
}

func (t *table[T]) delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.recs[id]; !ok {
		return false
	}
	delete(t.recs, id)
	delete(t.seq, id)
	return true
}

func (t *table[T]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.recs)
}

// snapshot copies the table in insertion order.
func (t *table[T]) snapshot() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.recs))
	for id := range t.recs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return t.seq[ids[i]] < t.seq[ids[j]] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.recs[id])
	}
	return out
}
