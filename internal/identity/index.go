package identity

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/javanhut/multimerge/internal/merrors"
)

// Index identifies a single file: "this file belongs to project Pid at
// RelPath relative to that project's root." Equality and hashing use
// both fields, so Index is safe to use as a map key.
type Index struct {
	Pid     Pid
	RelPath string
}

// NewIndex builds an Index, converting OS path separators to forward
// slashes; the path is otherwise kept as supplied.
func NewIndex(pid Pid, relPath string) Index {
	return Index{Pid: pid, RelPath: filepath.ToSlash(relPath)}
}

// Similar reports whether two indexes address the same path, ignoring
// which project they came from. This is the collision predicate.
func (i Index) Similar(other Index) bool {
	return i.RelPath == other.RelPath
}

// WithPid returns the same path addressed under a different project.
func (i Index) WithPid(pid Pid) Index {
	return Index{Pid: pid, RelPath: i.RelPath}
}

// Formatter produces a renamed file stem from the owning Pid and the
// original stem. The default is "{stem}_{pid}".
type Formatter func(pid Pid, stem string) string

// DefaultFormatter implements the spec's default naming scheme.
func DefaultFormatter(pid Pid, stem string) string {
	return fmt.Sprintf("%s_%d", stem, pid.Value())
}

// FormatterFromTemplate builds a Formatter from a template string
// containing the placeholders "{stem}" and "{pid}", letting
// internal/config override the rename shape without recompiling. An
// empty template falls back to DefaultFormatter.
func FormatterFromTemplate(template string) Formatter {
	if template == "" {
		return DefaultFormatter
	}
	return func(pid Pid, stem string) string {
		out := strings.ReplaceAll(template, "{stem}", stem)
		out = strings.ReplaceAll(out, "{pid}", fmt.Sprintf("%d", pid.Value()))
		return out
	}
}

// Rename produces a new Index whose file stem has been run through
// format, preserving the parent directory and extension. It fails if
// RelPath has no parent directory or no decodable file stem - both are
// cases where "rename the stem" is meaningless.
func (i Index) Rename(format Formatter) (Index, error) {
	dir, file := splitDir(i.RelPath)
	if file == "" {
		return Index{}, merrors.NoFileName(i.RelPath)
	}
	if dir == "" {
		return Index{}, merrors.Parent(i.RelPath)
	}

	ext := filepath.Ext(file)
	stem := strings.TrimSuffix(file, ext)
	if stem == "" {
		return Index{}, merrors.NoFileName(i.RelPath)
	}

	newStem := format(i.Pid, stem)
	newPath := filepath.ToSlash(filepath.Join(dir, newStem+ext))
	return Index{Pid: i.Pid, RelPath: newPath}, nil
}

// splitDir splits a slash-normalized relative path into its parent
// directory and final path element. A path with no parent component
// (e.g. "foo.json" sitting at project root) yields dir == "." - the
// spec treats project-root files as having a parent, just an implicit
// one, so "." counts as present.
func splitDir(relPath string) (dir, file string) {
	clean := filepath.ToSlash(filepath.Clean(relPath))
	if clean == "." || clean == "" {
		return "", ""
	}
	dir = filepath.ToSlash(filepath.Dir(clean))
	file = filepath.Base(clean)
	return dir, file
}

// String renders an Index as "(pid) path", matching the reference
// implementation's Display impl.
func (i Index) String() string {
	return fmt.Sprintf("(%s) %s", i.Pid, i.RelPath)
}

// Prefix joins the index's relative path onto a root, producing an
// absolute-or-relative filesystem path depending on root.
func (i Index) Prefix(root string) string {
	return filepath.Join(root, filepath.FromSlash(i.RelPath))
}
