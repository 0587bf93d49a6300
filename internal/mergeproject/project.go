// Package mergeproject defines the Project contract: one input file
// tree with a stable Pid, able to enumerate its files and materialize
// any one of them into a mergefile.File on demand.
package mergeproject

import (
	"github.com/javanhut/multimerge/internal/identity"
	"github.com/javanhut/multimerge/internal/indexset"
	"github.com/javanhut/multimerge/internal/mergefile"
)

// Project declares a project's root, its Pid, the set of indexes it
// contributes, and a way to materialize any one of them into a File.
type Project interface {
	// Root returns the filesystem prefix used solely by the exporter
	// to locate source bytes.
	Root() string

	// Pid returns this project's stable identifier.
	Pid() identity.Pid

	// Indexes returns the set of paths this project contributes. It
	// must be stable across repeated calls within one run.
	Indexes() *indexset.IndexList

	// File materializes the file at idx, or (nil, nil) if this project
	// cannot supply bytes for it in this run (e.g. it has disappeared
	// since Indexes() was built). A missing file is a soft failure,
	// never an error - the caller skips the entry silently.
	File(idx identity.Index) (mergefile.File, error)
}
