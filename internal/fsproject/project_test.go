package fsproject

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/javanhut/multimerge/internal/identity"
)

func TestIndexesWalksRegularFiles(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "src"), 0755)
	os.WriteFile(filepath.Join(root, "src", "main.go"), []byte("package main"), 0644)
	os.WriteFile(filepath.Join(root, "readme.txt"), []byte("hi"), 0644)

	p := New(root, identity.NewPid(0))
	indexes := p.Indexes()

	if indexes.Len() != 2 {
		t.Fatalf("expected 2 indexes, got %d", indexes.Len())
	}
	if _, ok := indexes.GetExact(identity.NewIndex(identity.NewPid(0), "src/main.go")); !ok {
		t.Error("expected src/main.go to be indexed")
	}
}

func TestIndexesSkipsBookkeepingDir(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, ".multimerge"), 0755)
	os.WriteFile(filepath.Join(root, ".multimerge", "plan.db"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(root, "keep.txt"), []byte("x"), 0644)

	p := New(root, identity.NewPid(0))
	indexes := p.Indexes()

	if indexes.Len() != 1 {
		t.Fatalf("expected the .multimerge directory to be skipped, got %d entries", indexes.Len())
	}
}

func TestLoadSniffsStructuredExtensions(t *testing.T) {
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, "data.json"), []byte(`{"import": "x.txt"}`), 0644)
	os.WriteFile(filepath.Join(root, "notes.txt"), []byte("plain"), 0644)

	jsonFile, err := Load(root, identity.NewIndex(identity.NewPid(0), "data.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(jsonFile.Relation()) != 1 {
		t.Errorf("expected the JSON asset to declare one relation, got %d", len(jsonFile.Relation()))
	}

	textFile, err := Load(root, identity.NewIndex(identity.NewPid(0), "notes.txt"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(textFile.Relation()) != 0 {
		t.Error("expected the text asset to declare no relations")
	}
}

func TestLoadMissingFileReturnsNilNil(t *testing.T) {
	root := t.TempDir()
	file, err := Load(root, identity.NewIndex(identity.NewPid(0), "ghost.txt"))
	if err != nil {
		t.Fatalf("expected no error for a missing file, got %v", err)
	}
	if file != nil {
		t.Error("expected a nil File for a missing source")
	}
}
