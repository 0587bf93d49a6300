// Package fsproject implements mergeproject.Project and timeline.Loader
// against an ordinary directory tree, following the WalkDir-based
// enumeration idiom the teacher uses to scan a working directory into
// an index (internal/workspace.Materializer.ScanWorkspace).
package fsproject

import (
	"io/fs"
	"path/filepath"

	"github.com/javanhut/multimerge/internal/identity"
	"github.com/javanhut/multimerge/internal/indexset"
)

// defaultSkip names directory entries excluded from every scan: a
// project's own bookkeeping directory should never become an asset.
const defaultSkip = ".multimerge"

// Project is a disk-backed mergeproject.Project: every regular file
// under Root, relative to Root, becomes one Index carrying Pid.
type Project struct {
	root string
	pid  identity.Pid
	skip map[string]bool
}

// New builds a Project rooted at root, identified by pid. extraSkip
// names additional directory entries (by base name) excluded from the
// walk, on top of the always-excluded ".multimerge" directory.
func New(root string, pid identity.Pid, extraSkip ...string) *Project {
	skip := map[string]bool{defaultSkip: true}
	for _, name := range extraSkip {
		skip[name] = true
	}
	return &Project{root: root, pid: pid, skip: skip}
}

func scanInto(root string, skip map[string]bool, sink func(relPath string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		sink(relPath)
		return nil
	})
}

// Root returns the project's filesystem root.
func (p *Project) Root() string { return p.root }

// Pid returns the project's identity.
func (p *Project) Pid() identity.Pid { return p.pid }

// Indexes re-walks Root and returns every regular file as an Index.
// Re-scanning on every call keeps a Project honest about concurrent
// edits to the tree between resolve and export, matching the teacher's
// ScanWorkspace-per-call pattern rather than caching a stale snapshot.
func (p *Project) Indexes() *indexset.IndexList {
	list := indexset.NewIndexList()
	_ = scanInto(p.root, p.skip, func(relPath string) {
		list.Add(identity.NewIndex(p.pid, relPath))
	})
	return list
}
