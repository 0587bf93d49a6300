package store

import (
	"path/filepath"
	"testing"
)

func TestGetSharedDBReusesHandleForSamePath(t *testing.T) {
	planDir := t.TempDir()

	first, err := GetSharedDB(planDir)
	if err != nil {
		t.Fatalf("GetSharedDB failed: %v", err)
	}
	second, err := GetSharedDB(planDir)
	if err != nil {
		t.Fatalf("GetSharedDB failed: %v", err)
	}

	if first.DB != second.DB {
		t.Error("expected two GetSharedDB calls on the same planDir to share one *DB")
	}

	if err := first.RecordStrategy("a.txt", "merge"); err != nil {
		t.Fatalf("RecordStrategy failed: %v", err)
	}
	value, found, err := second.LookupStrategy("a.txt")
	if err != nil || !found || value != "merge" {
		t.Errorf("expected the second handle to see writes through the first, got (%s, %v, %v)", value, found, err)
	}

	if err := first.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}

	// The underlying db must still be open: second's reference is live.
	if _, _, err := second.LookupStrategy("a.txt"); err != nil {
		t.Errorf("expected the db to stay open while a reference remains, got: %v", err)
	}

	if err := second.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if _, ok := shared.entries[filepath.Join(planDir, "plan.db")]; ok {
		t.Error("expected the registry entry to be removed once every reference closed")
	}
}

func TestGetSharedDBIsolatesDifferentPlanDirs(t *testing.T) {
	a, err := GetSharedDB(t.TempDir())
	if err != nil {
		t.Fatalf("GetSharedDB failed: %v", err)
	}
	defer a.Close()

	b, err := GetSharedDB(t.TempDir())
	if err != nil {
		t.Fatalf("GetSharedDB failed: %v", err)
	}
	defer b.Close()

	if a.DB == b.DB {
		t.Error("expected distinct planDirs to get distinct *DB handles")
	}
}

func TestSharedDBCloseIsIdempotent(t *testing.T) {
	sdb, err := GetSharedDB(t.TempDir())
	if err != nil {
		t.Fatalf("GetSharedDB failed: %v", err)
	}
	if err := sdb.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := sdb.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got: %v", err)
	}
}
