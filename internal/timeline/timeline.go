// Package timeline implements the immutable merge plan and the
// exporter that realizes it on disk: {index -> strategy} plus the
// project roots needed to locate source bytes, derives the
// IndexMapping, and executes the plan in deterministic order.
package timeline

import (
	"fmt"
	"sort"

	"github.com/javanhut/multimerge/internal/identity"
	"github.com/javanhut/multimerge/internal/indexset"
	"github.com/javanhut/multimerge/internal/policy"
)

// Timeline is the resolver's output: a strategy decision for every
// planned Index plus the project roots needed to export them.
type Timeline struct {
	strategy     map[identity.Index]policy.Strategy
	projectRoots map[identity.Pid]string
	formatter    identity.Formatter
}

// New builds a Timeline. strategy and projectRoots are taken by
// reference - callers should treat the Timeline as owning them
// afterward, matching the immutability the spec requires.
func New(strategy map[identity.Index]policy.Strategy, projectRoots map[identity.Pid]string, formatter identity.Formatter) *Timeline {
	if formatter == nil {
		formatter = identity.DefaultFormatter
	}
	return &Timeline{strategy: strategy, projectRoots: projectRoots, formatter: formatter}
}

// OutputID is Pid(len(projectRoots)): the output tree's identity,
// chosen so it never collides with an input Pid.
func (t *Timeline) OutputID() identity.Pid {
	return identity.NewPid(len(t.projectRoots))
}

// Entry pairs a planned Index with its Strategy.
type Entry struct {
	Index    identity.Index
	Strategy policy.Strategy
}

// Entries returns every planned (index, strategy) pair sorted by
// (pid, path) ascending - the deterministic order spec.md section 9
// requires for reproducible Replace/Merge semantics.
func (t *Timeline) Entries() []Entry {
	entries := make([]Entry, 0, len(t.strategy))
	for idx, strat := range t.strategy {
		entries = append(entries, Entry{Index: idx, Strategy: strat})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].Index, entries[j].Index
		if a.Pid.Value() != b.Pid.Value() {
			return a.Pid.Value() < b.Pid.Value()
		}
		return a.RelPath < b.RelPath
	})
	return entries
}

// Mapping computes the IndexMapping for this plan: Replace and Merge
// entries map to the same path under the output Pid; Rename entries
// map to a renamed stem, also under the output Pid. A rename failure
// (no parent / no file stem) aborts the whole export.
func (t *Timeline) Mapping() (indexset.IndexMapping, error) {
	oid := t.OutputID()
	to := make(map[identity.Index]identity.Index, len(t.strategy))
	renameDestinations := make(map[identity.Index]bool, len(t.strategy))
	mergeDestinations := make(map[identity.Index]bool, len(t.strategy))

	for _, entry := range t.Entries() {
		switch entry.Strategy {
		case policy.Replace, policy.Merge:
			dest := entry.Index.WithPid(oid)
			to[entry.Index] = dest
			if entry.Strategy == policy.Merge {
				mergeDestinations[dest] = true
			}
		case policy.Rename:
			renamed, err := entry.Index.Rename(t.formatter)
			if err != nil {
				return indexset.IndexMapping{}, err
			}
			dest := renamed.WithPid(oid)
			to[entry.Index] = dest
			renameDestinations[dest] = true
		}
	}

	// Rename destinations are unique by construction (the default
	// formatter folds the owning pid into the stem); a Merge landing on
	// a Rename destination is therefore unreachable in a well-formed
	// plan and indicates a buggy formatter (spec.md section 9).
	for dest := range renameDestinations {
		if mergeDestinations[dest] {
			panic(fmt.Sprintf("multimerge: rename destination %s collided with a merge destination - formatter is not collision-free", dest))
		}
	}

	return indexset.NewIndexMapping(to), nil
}

// ProjectRoots exposes the Pid -> root map the Exporter needs.
func (t *Timeline) ProjectRoots() map[identity.Pid]string {
	return t.projectRoots
}
