package timeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/javanhut/multimerge/internal/cas"
	"github.com/javanhut/multimerge/internal/identity"
	"github.com/javanhut/multimerge/internal/mergefile"
	"github.com/javanhut/multimerge/internal/policy"
)

// memFile is a minimal mergefile.File backed by a byte slice, with
// Merge concatenating the two contributors - enough to exercise the
// Merge re-read path without pulling in a concrete asset package.
type memFile struct {
	data []byte
}

func (m *memFile) Relation() []mergefile.Relation { return nil }
func (m *memFile) Data() []byte                   { return m.data }
func (m *memFile) ModifyRelation(from, to identity.Index) mergefile.File {
	return m
}
func (m *memFile) Merge(other mergefile.File) (mergefile.File, error) {
	combined := append(append([]byte{}, m.data...), other.Data()...)
	return &memFile{data: combined}, nil
}

func memLoader(root string, idx identity.Index) (mergefile.File, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(idx.RelPath)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return &memFile{data: data}, nil
}

func TestExportToReplaceLastWriterWins(t *testing.T) {
	output := t.TempDir()
	a := t.TempDir()
	b := t.TempDir()

	if err := os.WriteFile(filepath.Join(a, "shared.txt"), []byte("from a"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(b, "shared.txt"), []byte("from b"), 0644); err != nil {
		t.Fatal(err)
	}

	idxA := identity.NewIndex(identity.NewPid(0), "shared.txt")
	idxB := identity.NewIndex(identity.NewPid(1), "shared.txt")
	strategy := map[identity.Index]policy.Strategy{idxA: policy.Replace, idxB: policy.Replace}
	tl := New(strategy, map[identity.Pid]string{
		identity.NewPid(0): a,
		identity.NewPid(1): b,
	}, nil)

	if err := tl.ExportTo(output, memLoader); err != nil {
		t.Fatalf("ExportTo failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(output, "shared.txt"))
	if err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
	if string(got) != "from b" {
		t.Errorf("expected the later entry (pid 1) to win under Replace, got %q", got)
	}
}

func TestExportToMergeFoldsContributors(t *testing.T) {
	output := t.TempDir()
	a := t.TempDir()
	b := t.TempDir()

	os.WriteFile(filepath.Join(a, "notes.txt"), []byte("one"), 0644)
	os.WriteFile(filepath.Join(b, "notes.txt"), []byte("two"), 0644)

	idxA := identity.NewIndex(identity.NewPid(0), "notes.txt")
	idxB := identity.NewIndex(identity.NewPid(1), "notes.txt")
	strategy := map[identity.Index]policy.Strategy{idxA: policy.Merge, idxB: policy.Merge}
	tl := New(strategy, map[identity.Pid]string{
		identity.NewPid(0): a,
		identity.NewPid(1): b,
	}, nil)

	if err := tl.ExportTo(output, memLoader); err != nil {
		t.Fatalf("ExportTo failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(output, "notes.txt"))
	if err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
	if string(got) != "onetwo" {
		t.Errorf("expected merged contributors in plan order, got %q", got)
	}
}

func TestExportToRenameKeepsBothCopies(t *testing.T) {
	output := t.TempDir()
	a := t.TempDir()
	b := t.TempDir()

	os.WriteFile(filepath.Join(a, "logo.png"), []byte("a-bytes"), 0644)
	os.WriteFile(filepath.Join(b, "logo.png"), []byte("b-bytes"), 0644)

	idxA := identity.NewIndex(identity.NewPid(0), "logo.png")
	idxB := identity.NewIndex(identity.NewPid(1), "logo.png")
	strategy := map[identity.Index]policy.Strategy{idxA: policy.Rename, idxB: policy.Rename}
	tl := New(strategy, map[identity.Pid]string{
		identity.NewPid(0): a,
		identity.NewPid(1): b,
	}, identity.DefaultFormatter)

	if err := tl.ExportTo(output, memLoader); err != nil {
		t.Fatalf("ExportTo failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(output, "logo_0.png")); err != nil {
		t.Errorf("expected logo_0.png to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(output, "logo_1.png")); err != nil {
		t.Errorf("expected logo_1.png to exist: %v", err)
	}
}

func TestNewExporterWithCASUsesSuppliedBlobStore(t *testing.T) {
	output := t.TempDir()
	a := t.TempDir()

	os.WriteFile(filepath.Join(a, "notes.txt"), []byte("hello"), 0644)

	idx := identity.NewIndex(identity.NewPid(0), "notes.txt")
	strategy := map[identity.Index]policy.Strategy{idx: policy.Replace}
	tl := New(strategy, map[identity.Pid]string{identity.NewPid(0): a}, nil)

	mapping, err := tl.Mapping()
	if err != nil {
		t.Fatalf("Mapping failed: %v", err)
	}

	blobDir := filepath.Join(t.TempDir(), "blobs")
	blobs, err := cas.NewFileCAS(blobDir)
	if err != nil {
		t.Fatalf("NewFileCAS failed: %v", err)
	}

	exporter := tl.NewExporterWithCAS(output, memLoader, blobs)
	for _, entry := range tl.Entries() {
		if err := exporter.ExportEntry(mapping, entry); err != nil {
			t.Fatalf("ExportEntry failed: %v", err)
		}
	}

	hash := cas.SumB3([]byte("hello"))
	has, err := blobs.Has(hash)
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if !has {
		t.Error("expected the exported blob to be present in the supplied FileCAS")
	}
}

func TestExportToSkipsMissingSource(t *testing.T) {
	output := t.TempDir()
	a := t.TempDir()

	idx := identity.NewIndex(identity.NewPid(0), "ghost.txt")
	strategy := map[identity.Index]policy.Strategy{idx: policy.Replace}
	tl := New(strategy, map[identity.Pid]string{identity.NewPid(0): a}, nil)

	if err := tl.ExportTo(output, memLoader); err != nil {
		t.Fatalf("ExportTo should not fail on a missing source, got: %v", err)
	}
	if _, err := os.Stat(filepath.Join(output, "ghost.txt")); !os.IsNotExist(err) {
		t.Error("expected no output file for a missing source")
	}
}
