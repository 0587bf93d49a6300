package assetfile

import (
	"testing"

	"github.com/javanhut/multimerge/internal/identity"
)

func TestStructuredAssetDeclaresRelations(t *testing.T) {
	pid := identity.NewPid(0)
	asset, err := ParseStructuredAsset(pid, []byte(`{"import": "shared/util.json", "imports": ["a.json", "b.json"]}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	relations := asset.Relation()
	if len(relations) != 3 {
		t.Fatalf("expected 3 declared relations, got %d", len(relations))
	}
	for _, rel := range relations {
		if rel.Target.Pid != pid {
			t.Errorf("expected relation target to carry the asset's owning pid %v, got %v", pid, rel.Target.Pid)
		}
	}
}

func TestStructuredAssetRelationMatchesRealMappingKey(t *testing.T) {
	// Guards against a placeholder Pid on Relation() targets: the
	// mapping key a real plan builds is (source project's Pid, path),
	// so a declared relation must carry that exact Pid to ever match.
	pid := identity.NewPid(3)
	asset, err := ParseStructuredAsset(pid, []byte(`{"import": "shared/util.json"}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	relations := asset.Relation()
	if len(relations) != 1 {
		t.Fatalf("expected 1 declared relation, got %d", len(relations))
	}

	mappingKey := identity.NewIndex(pid, "shared/util.json")
	if relations[0].Target != mappingKey {
		t.Errorf("expected relation target %v to equal real mapping key %v", relations[0].Target, mappingKey)
	}
}

func TestStructuredAssetModifyRelationRewritesPath(t *testing.T) {
	pid := identity.NewPid(0)
	asset, err := ParseStructuredAsset(pid, []byte(`{"import": "shared/util.json"}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	from := identity.NewIndex(pid, "shared/util.json")
	to := identity.NewIndex(identity.NewPid(2), "shared/util_0.json")

	rewritten := asset.ModifyRelation(from, to).(*StructuredAsset)
	if rewritten.doc["import"] != "shared/util_0.json" {
		t.Errorf("expected rewritten import path, got %v", rewritten.doc["import"])
	}
	if rewritten.pid != pid {
		t.Errorf("expected ModifyRelation to preserve the owning pid, got %v", rewritten.pid)
	}
}

func TestStructuredAssetMergeUnionsArraysAndOverridesScalars(t *testing.T) {
	pid := identity.NewPid(0)
	a, err := ParseStructuredAsset(pid, []byte(`{"name": "a", "tags": ["x", "y"]}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	b, err := ParseStructuredAsset(identity.NewPid(1), []byte(`{"name": "b", "tags": ["y", "z"]}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	merged, err := a.Merge(b)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	m := merged.(*StructuredAsset)

	if m.doc["name"] != "b" {
		t.Errorf("expected the later contributor's scalar field to win, got %v", m.doc["name"])
	}

	tags, ok := m.doc["tags"].([]interface{})
	if !ok || len(tags) != 3 {
		t.Fatalf("expected a 3-element union of tags, got %v", m.doc["tags"])
	}
}
