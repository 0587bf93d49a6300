// Package mergefile defines the File contract: the per-file behavior a
// host asset type must supply so the planner can rewrite references and
// combine colliding files without knowing anything about their format.
package mergefile

import "github.com/javanhut/multimerge/internal/identity"

// Relation is a single outgoing dependency edge: "this file points at
// Target." The order of a File's declared Relations carries no meaning
// but must be stable across repeated calls on one File instance.
type Relation struct {
	Target identity.Index
}

// NewRelation wraps a target Index as a Relation.
func NewRelation(target identity.Index) Relation {
	return Relation{Target: target}
}

// File is the host-supplied contract for one in-memory project file.
//
// Relation, ModifyRelation and Data never perform I/O - by the time a
// File exists it has already been loaded into memory. Data consumes the
// File on purpose: once bytes are taken, no further rewriting is valid.
type File interface {
	// Relation lists this file's declared outgoing references. A file
	// with no relations returns an empty (possibly nil) slice.
	Relation() []Relation

	// Data returns the file's final serialized bytes, consuming the
	// File: "commit to these bytes, no further rewriting."
	Data() []byte

	// ModifyRelation returns a File identical to this one except that
	// occurrences of from (wherever Relation() referenced it) have been
	// replaced with to. Called only for relations this file actually
	// declared; a File with no relations returns itself unchanged.
	ModifyRelation(from, to identity.Index) File

	// Merge combines this File with other, which collided with it at
	// the same destination path. other is strictly newer and wins on
	// scalar conflicts; collection-valued fields may be unioned at the
	// implementer's discretion. Merge is only ever called when the
	// resolver chose Strategy Merge and a prior file already occupies
	// the destination.
	Merge(other File) (File, error)
}
