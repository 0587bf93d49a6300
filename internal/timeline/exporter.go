package timeline

import (
	"os"
	"path/filepath"

	"github.com/javanhut/multimerge/internal/cas"
	"github.com/javanhut/multimerge/internal/identity"
	"github.com/javanhut/multimerge/internal/indexset"
	"github.com/javanhut/multimerge/internal/merrors"
	"github.com/javanhut/multimerge/internal/mergefile"
	"github.com/javanhut/multimerge/internal/policy"
)

// Loader is the single host-supplied capability the Exporter needs: a
// way to load the File sitting at idx under root, whatever root
// belongs to - an input project's tree, or the output tree itself (the
// Merge re-read case). A missing file is reported as (nil, nil), never
// an error.
type Loader func(root string, idx identity.Index) (mergefile.File, error)

// Exporter realizes a Timeline onto a target tree. It owns the output
// root and the union of project roots (input projects plus the output
// tree itself, so Merge can re-read what it already wrote).
type Exporter struct {
	outputRoot string
	outputID   identity.Pid
	roots      map[identity.Pid]string
	load       Loader
	blobs      cas.CAS
	written    map[string]mergefile.File
}

// NewExporter builds an Exporter for timeline t, rooted at outputRoot,
// using load to materialize File values from any project root
// (including the output tree), backed by an in-memory blob cache. Use
// NewExporterWithCAS to run against a disk-backed cache instead (the
// config.CASConfig "file" backend).
func (t *Timeline) NewExporter(outputRoot string, load Loader) *Exporter {
	return t.NewExporterWithCAS(outputRoot, load, cas.NewMemoryCAS())
}

// NewExporterWithCAS builds an Exporter for timeline t exactly like
// NewExporter, but against the supplied blobs cache. blobs caches every
// blob this Exporter writes, content-addressed by BLAKE3 hash, so two
// contributors that place byte-identical content at different points
// in the plan share one stored copy; written remembers, per destination
// path, the File value this Exporter itself last placed there, so a
// later Merge entry targeting the same path folds against that value
// directly instead of reading it back off disk.
func (t *Timeline) NewExporterWithCAS(outputRoot string, load Loader, blobs cas.CAS) *Exporter {
	roots := make(map[identity.Pid]string, len(t.projectRoots)+1)
	for pid, root := range t.projectRoots {
		roots[pid] = root
	}
	oid := t.OutputID()
	roots[oid] = outputRoot

	return &Exporter{
		outputRoot: outputRoot,
		outputID:   oid,
		roots:      roots,
		load:       load,
		blobs:      blobs,
		written:    make(map[string]mergefile.File),
	}
}

// sourceFile materializes idx from its owning project's root.
func (e *Exporter) sourceFile(idx identity.Index) (mergefile.File, error) {
	root, ok := e.roots[idx.Pid]
	if !ok {
		return nil, nil
	}
	return e.load(root, idx)
}

// existingFile returns whatever sits at outputIdx's destination, giving
// Merge its left-fold semantics across contributors arriving in plan
// order. If this Exporter placed the destination itself earlier in the
// same run, the cached File is returned directly; otherwise it falls
// back to the Loader, re-reading the output tree (the case of a prior
// run's export_to having already written it).
func (e *Exporter) existingFile(outputIdx identity.Index) (mergefile.File, error) {
	if cached, ok := e.written[outputIdx.RelPath]; ok {
		return cached, nil
	}
	return e.load(e.outputRoot, outputIdx)
}

// outputPath maps an (already mapped, output-pid) Index to its
// absolute filesystem destination.
func (e *Exporter) outputPath(outputIdx identity.Index) string {
	return filepath.Join(e.outputRoot, filepath.FromSlash(outputIdx.RelPath))
}

func (e *Exporter) write(outputIdx identity.Index, data []byte) error {
	path := e.outputPath(outputIdx)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return merrors.CreateDirAll(dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return merrors.Write(path, err)
	}

	return nil
}

// fileExists reports whether the output tree already has a regular
// file at outputIdx's destination.
func (e *Exporter) fileExists(outputIdx identity.Index) bool {
	info, err := os.Stat(e.outputPath(outputIdx))
	return err == nil && !info.IsDir()
}

// ExportTo runs the execution entry point described in spec.md section
// 4.F: compute the mapping, build an Exporter, then iterate plan
// entries in deterministic order, writing, re-reading-and-merging, or
// renaming as each Strategy dictates. A missing source file is skipped
// silently; any other failure aborts the export with the first error,
// leaving the output tree in whatever partial state it reached - there
// is no rollback (spec.md section 5).
func (t *Timeline) ExportTo(outputRoot string, load Loader) error {
	mapping, err := t.Mapping()
	if err != nil {
		return err
	}

	exporter := t.NewExporter(outputRoot, load)

	for _, entry := range t.Entries() {
		if err := exporter.ExportEntry(mapping, entry); err != nil {
			return err
		}
	}

	return nil
}

// ExportEntry realizes a single plan entry against mapping, which must
// have come from the same Timeline's Mapping(). Callers that want
// per-entry progress reporting (a CLI progress bar, for instance) can
// call Mapping/NewExporter once and then ExportEntry per Entries()
// item instead of using the all-at-once ExportTo.
func (e *Exporter) ExportEntry(mapping indexset.IndexMapping, entry Entry) error {
	file, err := e.sourceFile(entry.Index)
	if err != nil {
		return err
	}
	if file == nil {
		return nil
	}

	file = mapping.ApplyMapping(file)

	outputIdx, ok := mapping.Lookup(entry.Index)
	if !ok {
		// Every entry in the plan has a mapping entry by construction
		// (Mapping() covers every strategy).
		outputIdx = entry.Index.WithPid(e.outputID)
	}

	return e.place(entry.Strategy, outputIdx, file)
}

// place dispatches a single plan entry to its destination per the
// state machine in spec.md section 4.G: Replace/Rename always write
// (Rename destinations are unique by construction, so they can never
// find an occupied path); Merge re-reads whatever is already there and
// folds it in, or writes directly if nothing exists yet.
func (e *Exporter) place(strategy policy.Strategy, outputIdx identity.Index, file mergefile.File) error {
	if strategy == policy.Merge && e.fileExists(outputIdx) {
		existing, err := e.existingFile(outputIdx)
		if err != nil {
			return err
		}
		if existing != nil {
			merged, err := existing.Merge(file)
			if err != nil {
				return merrors.Custom(err)
			}
			file = merged
		}
	}

	e.written[outputIdx.RelPath] = file
	data := file.Data()
	if err := e.blobs.Put(cas.SumB3(data), data); err != nil {
		return merrors.Custom(err)
	}
	return e.write(outputIdx, data)
}
