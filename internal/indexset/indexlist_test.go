package indexset

import (
	"testing"

	"github.com/javanhut/multimerge/internal/identity"
)

func TestIndexListAddRemove(t *testing.T) {
	l := NewIndexList()
	idx := identity.NewIndex(identity.NewPid(0), "a.txt")

	if !l.Add(idx) {
		t.Error("first Add should report true")
	}
	if l.Add(idx) {
		t.Error("second Add of the same Index should report false")
	}
	if l.Len() != 1 {
		t.Errorf("expected len 1, got %d", l.Len())
	}
	if !l.Remove(idx) {
		t.Error("Remove of a present Index should report true")
	}
	if l.Remove(idx) {
		t.Error("Remove of an absent Index should report false")
	}
}

func TestIndexListGetDifferentPid(t *testing.T) {
	l := NewIndexList(
		identity.NewIndex(identity.NewPid(0), "shared.json"),
	)

	same := identity.NewIndex(identity.NewPid(1), "shared.json")
	conflict, ok := l.GetDifferentPid(same)
	if !ok {
		t.Fatal("expected a conflicting index for a different pid at the same path")
	}
	if conflict.Pid.Value() != 0 {
		t.Errorf("expected conflicting pid 0, got %d", conflict.Pid.Value())
	}

	ownPath := identity.NewIndex(identity.NewPid(0), "shared.json")
	if _, ok := l.GetDifferentPid(ownPath); ok {
		t.Error("GetDifferentPid should not report a collision against the same pid")
	}
}

func TestIndexListGetExact(t *testing.T) {
	idx := identity.NewIndex(identity.NewPid(2), "x.yaml")
	l := NewIndexList(idx)

	if _, ok := l.GetExact(idx); !ok {
		t.Error("GetExact should find the stored Index")
	}
	other := identity.NewIndex(identity.NewPid(3), "x.yaml")
	if _, ok := l.GetExact(other); ok {
		t.Error("GetExact should not match on path alone")
	}
}

func TestIndexListUnion(t *testing.T) {
	a := NewIndexList(identity.NewIndex(identity.NewPid(0), "a.txt"))
	b := NewIndexList(
		identity.NewIndex(identity.NewPid(1), "b.txt"),
		identity.NewIndex(identity.NewPid(0), "a.txt"),
	)

	union := a.Union(b)
	if union.Len() != 2 {
		t.Errorf("expected union len 2, got %d", union.Len())
	}
}
