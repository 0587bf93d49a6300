// Package resolver builds the preview IndexList across all projects in
// a Workspace and classifies every Index into a Strategy, producing an
// immutable Timeline ready for export.
package resolver

import (
	"sort"

	"github.com/javanhut/multimerge/internal/identity"
	"github.com/javanhut/multimerge/internal/indexset"
	"github.com/javanhut/multimerge/internal/mergelog"
	"github.com/javanhut/multimerge/internal/mergeproject"
	"github.com/javanhut/multimerge/internal/policy"
	"github.com/javanhut/multimerge/internal/timeline"
)

// StrategyFunc classifies a colliding Index into a Strategy. It must be
// a pure function of the path - policy.Matcher.Strategy satisfies this.
type StrategyFunc func(relPath string) policy.Strategy

// Workspace aggregates the projects participating in one merge run
// plus the policy hook used to classify collisions.
type Workspace struct {
	Projects  []mergeproject.Project
	Strategy  StrategyFunc
	Formatter identity.Formatter
	Logger    mergelog.Logger
}

// NewWorkspace builds a Workspace, defaulting Formatter to
// identity.DefaultFormatter and Logger to a no-op when unset.
func NewWorkspace(projects []mergeproject.Project, strategy StrategyFunc) *Workspace {
	return &Workspace{
		Projects:  projects,
		Strategy:  strategy,
		Formatter: identity.DefaultFormatter,
		Logger:    mergelog.Nop{},
	}
}

// Resolve runs the algorithm from spec.md section 4.E:
//  1. build the preview IndexList (union of every project's indexes)
//  2. record each project's root by Pid
//  3. for each Index, in deterministic (pid, path) order: classify it
//     Replace if its path is unique, or via Strategy if a differently
//     -pid'd collision exists in the preview; emit the matching
//     Logger event.
func (w *Workspace) Resolve() *timeline.Timeline {
	preview := indexset.NewIndexList()
	projectPaths := make(map[identity.Pid]string, len(w.Projects))

	for _, project := range w.Projects {
		projectPaths[project.Pid()] = project.Root()
		for _, idx := range project.Indexes().All() {
			preview.Add(idx)
		}
	}

	indexes := preview.All()
	sort.Slice(indexes, func(i, j int) bool {
		if indexes[i].Pid.Value() != indexes[j].Pid.Value() {
			return indexes[i].Pid.Value() < indexes[j].Pid.Value()
		}
		return indexes[i].RelPath < indexes[j].RelPath
	})

	strategies := make(map[identity.Index]policy.Strategy, len(indexes))

	for _, idx := range indexes {
		conflict, hasConflict := preview.GetDifferentPid(idx)
		if !hasConflict {
			strategies[idx] = policy.Replace
			w.Logger.Add(idx)
			continue
		}

		strategy := w.Strategy(idx.RelPath)
		strategies[idx] = strategy
		switch strategy {
		case policy.Replace:
			w.Logger.Replace(conflict, idx)
		case policy.Merge:
			w.Logger.Merge(conflict, idx)
		case policy.Rename:
			w.Logger.Rename(conflict, idx)
		}
	}

	return timeline.New(strategies, projectPaths, w.Formatter)
}
