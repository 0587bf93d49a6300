// Package indexset implements the path-similarity lookups the resolver
// and mapping application rely on: IndexList (a collision-detecting
// set of Index values) and IndexMapping (the from -> to rewrite map
// produced once renames are assigned).
package indexset

import "github.com/javanhut/multimerge/internal/identity"

// IndexList is a set of Index values keyed by (pid, path), supporting
// similarity-based lookups in addition to exact membership. Linear scan
// is acceptable here: the working set is O(total files across all
// projects) and lookups happen O(files) times during planning.
type IndexList struct {
	items map[identity.Index]struct{}
}

// NewIndexList builds an IndexList from zero or more indexes.
func NewIndexList(indexes ...identity.Index) *IndexList {
	l := &IndexList{items: make(map[identity.Index]struct{}, len(indexes))}
	for _, idx := range indexes {
		l.Add(idx)
	}
	return l
}

// Add inserts an Index, reporting whether it was newly added.
func (l *IndexList) Add(idx identity.Index) bool {
	if _, exists := l.items[idx]; exists {
		return false
	}
	l.items[idx] = struct{}{}
	return true
}

// Remove deletes an Index, reporting whether it was present.
func (l *IndexList) Remove(idx identity.Index) bool {
	if _, exists := l.items[idx]; !exists {
		return false
	}
	delete(l.items, idx)
	return true
}

// Get returns any stored Index similar to q (same path, any pid).
func (l *IndexList) Get(q identity.Index) (identity.Index, bool) {
	for idx := range l.items {
		if idx.Similar(q) {
			return idx, true
		}
	}
	return identity.Index{}, false
}

// GetDifferentPid returns any stored Index similar to q but belonging
// to a different project - the true collision predicate.
func (l *IndexList) GetDifferentPid(q identity.Index) (identity.Index, bool) {
	for idx := range l.items {
		if idx.Similar(q) && idx.Pid != q.Pid {
			return idx, true
		}
	}
	return identity.Index{}, false
}

// GetExact returns the stored Index matching q exactly, pid included.
func (l *IndexList) GetExact(q identity.Index) (identity.Index, bool) {
	_, exists := l.items[q]
	if !exists {
		return identity.Index{}, false
	}
	return q, true
}

// Union returns a new IndexList containing every Index in either list.
// Duplicates by full (pid, path) key are deduped; duplicates by path
// alone survive because their pids differ.
func (l *IndexList) Union(with *IndexList) *IndexList {
	result := NewIndexList()
	for idx := range l.items {
		result.Add(idx)
	}
	for idx := range with.items {
		result.Add(idx)
	}
	return result
}

// Len reports how many indexes are stored.
func (l *IndexList) Len() int {
	return len(l.items)
}

// All returns every stored Index in unspecified order.
func (l *IndexList) All() []identity.Index {
	result := make([]identity.Index, 0, len(l.items))
	for idx := range l.items {
		result = append(result, idx)
	}
	return result
}
