package resolver

import (
	"testing"

	"github.com/javanhut/multimerge/internal/identity"
	"github.com/javanhut/multimerge/internal/indexset"
	"github.com/javanhut/multimerge/internal/mergefile"
	"github.com/javanhut/multimerge/internal/mergeproject"
	"github.com/javanhut/multimerge/internal/policy"
)

// fakeProject is an in-memory mergeproject.Project for exercising
// Workspace.Resolve without touching a filesystem.
type fakeProject struct {
	root    string
	pid     identity.Pid
	indexes *indexset.IndexList
}

func newFakeProject(root string, pid identity.Pid, paths ...string) *fakeProject {
	list := indexset.NewIndexList()
	for _, p := range paths {
		list.Add(identity.NewIndex(pid, p))
	}
	return &fakeProject{root: root, pid: pid, indexes: list}
}

func (p *fakeProject) Root() string                    { return p.root }
func (p *fakeProject) Pid() identity.Pid               { return p.pid }
func (p *fakeProject) Indexes() *indexset.IndexList    { return p.indexes }
func (p *fakeProject) File(identity.Index) (mergefile.File, error) {
	return nil, nil
}

func TestResolveNoCollisionIsReplace(t *testing.T) {
	projects := []mergeproject.Project{
		newFakeProject("a", identity.NewPid(0), "only/here.txt"),
	}
	ws := NewWorkspace(projects, func(string) policy.Strategy { return policy.Rename })

	tl := ws.Resolve()
	entries := tl.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Strategy != policy.Replace {
		t.Errorf("a non-colliding path must always classify as Replace, got %s", entries[0].Strategy)
	}
}

func TestResolveCollisionUsesStrategyFunc(t *testing.T) {
	projects := []mergeproject.Project{
		newFakeProject("a", identity.NewPid(0), "shared.json"),
		newFakeProject("b", identity.NewPid(1), "shared.json"),
	}
	ws := NewWorkspace(projects, func(string) policy.Strategy { return policy.Merge })

	tl := ws.Resolve()
	for _, entry := range tl.Entries() {
		if entry.Strategy != policy.Merge {
			t.Errorf("expected Merge for a colliding path, got %s", entry.Strategy)
		}
	}
}

func TestResolveDeterministicOrder(t *testing.T) {
	projects := []mergeproject.Project{
		newFakeProject("a", identity.NewPid(0), "z.txt", "a.txt"),
		newFakeProject("b", identity.NewPid(1), "m.txt"),
	}
	ws := NewWorkspace(projects, func(string) policy.Strategy { return policy.Replace })

	tl := ws.Resolve()
	entries := tl.Entries()

	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1].Index, entries[i].Index
		if prev.Pid.Value() > cur.Pid.Value() {
			t.Fatalf("entries must be sorted by pid first: %v before %v", prev, cur)
		}
		if prev.Pid.Value() == cur.Pid.Value() && prev.RelPath > cur.RelPath {
			t.Fatalf("entries with equal pid must be sorted by path: %v before %v", prev, cur)
		}
	}
}
