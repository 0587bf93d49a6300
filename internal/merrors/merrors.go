// Package merrors defines the error taxonomy shared by the merge
// planner and exporter: Write, Parent, NoFileName, CreateDirAll, and
// Custom (a host error passed through unchanged).
package merrors

import "fmt"

// Kind classifies an Error without pinning down a concrete Go type for
// callers that want to switch on it.
type Kind string

const (
	// KindWrite means bytes could not be persisted at Path.
	KindWrite Kind = "write"
	// KindParent means Path has no logical parent directory.
	KindParent Kind = "parent"
	// KindNoFileName means no file stem could be extracted from Path.
	KindNoFileName Kind = "no_file_name"
	// KindCreateDirAll means a parent directory could not be created.
	KindCreateDirAll Kind = "create_dir_all"
	// KindCustom wraps an error surfaced by a host File/Project/Logger.
	KindCustom Kind = "custom"
)

// Error is the taxonomy member. Path is empty for KindCustom.
type Error struct {
	Kind   Kind
	Path   string
	Source error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindWrite:
		return fmt.Sprintf("unable to write data to %s: %v", e.Path, e.Source)
	case KindParent:
		return fmt.Sprintf("unable to get the parent of this path %s", e.Path)
	case KindNoFileName:
		return fmt.Sprintf("unable to get filename of this path %s", e.Path)
	case KindCreateDirAll:
		return fmt.Sprintf("unable to create directory from this path %s: %v", e.Path, e.Source)
	case KindCustom:
		return fmt.Sprintf("custom error: %v", e.Source)
	default:
		return fmt.Sprintf("merge error (%s): %s", e.Kind, e.Path)
	}
}

func (e *Error) Unwrap() error {
	return e.Source
}

// Write builds a KindWrite error.
func Write(path string, source error) error {
	return &Error{Kind: KindWrite, Path: path, Source: source}
}

// Parent builds a KindParent error.
func Parent(path string) error {
	return &Error{Kind: KindParent, Path: path}
}

// NoFileName builds a KindNoFileName error.
func NoFileName(path string) error {
	return &Error{Kind: KindNoFileName, Path: path}
}

// CreateDirAll builds a KindCreateDirAll error.
func CreateDirAll(path string, source error) error {
	return &Error{Kind: KindCreateDirAll, Path: path, Source: source}
}

// Custom wraps a host error (e.g. from File.Merge) without losing it.
func Custom(source error) error {
	return &Error{Kind: KindCustom, Source: source}
}
