package indexset

import (
	"github.com/javanhut/multimerge/internal/identity"
	"github.com/javanhut/multimerge/internal/mergefile"
)

// IndexMapping is an immutable from -> to rewrite set, built once a
// Timeline has decided the final destination identity for every
// planned Index. Applying it to a File fixes up its declared
// references so renamed targets stay reachable.
type IndexMapping struct {
	to map[identity.Index]identity.Index
}

// NewIndexMapping wraps a from -> to map. Callers should treat the map
// as owned by the IndexMapping afterward.
func NewIndexMapping(to map[identity.Index]identity.Index) IndexMapping {
	if to == nil {
		to = make(map[identity.Index]identity.Index)
	}
	return IndexMapping{to: to}
}

// Lookup returns the destination Index for from, if the mapping
// renamed or relocated it.
func (m IndexMapping) Lookup(from identity.Index) (identity.Index, bool) {
	to, ok := m.to[from]
	return to, ok
}

// Len reports how many entries the mapping holds.
func (m IndexMapping) Len() int {
	return len(m.to)
}

// ApplyMapping folds file.Relation() against the mapping: for every
// declared Relation whose target is a mapped key, the file is rewritten
// via ModifyRelation(from, to). Folding order is irrelevant because
// ModifyRelation only ever touches the referenced key - this is a pure
// fold with no I/O. An empty mapping is the identity transform.
func (m IndexMapping) ApplyMapping(file mergefile.File) mergefile.File {
	if len(m.to) == 0 {
		return file
	}

	for _, relation := range file.Relation() {
		to, ok := m.to[relation.Target]
		if !ok {
			continue
		}
		file = file.ModifyRelation(relation.Target, to)
	}

	return file
}
