// Package assetfile supplies concrete mergefile.File implementations
// for the two asset shapes a merged tree commonly carries: plain text
// (no structure, concatenated on Merge) and JSON/YAML documents that
// declare references to other files by relative path.
package assetfile

import (
	"github.com/javanhut/multimerge/internal/identity"
	"github.com/javanhut/multimerge/internal/mergefile"
)

// TextAsset is a File with no declared relations. Merge concatenates
// self's bytes followed by other's - this realizes spec.md's S3
// ("notes.txt" merge) scenario directly.
type TextAsset struct {
	bytes []byte
}

// NewTextAsset wraps raw bytes as a TextAsset.
func NewTextAsset(data []byte) *TextAsset {
	return &TextAsset{bytes: data}
}

func (t *TextAsset) Relation() []mergefile.Relation {
	return nil
}

func (t *TextAsset) Data() []byte {
	return t.bytes
}

func (t *TextAsset) ModifyRelation(from, to identity.Index) mergefile.File {
	return t
}

func (t *TextAsset) Merge(other mergefile.File) (mergefile.File, error) {
	o, ok := other.(*TextAsset)
	if !ok {
		return other, nil
	}
	merged := make([]byte, 0, len(t.bytes)+len(o.bytes))
	merged = append(merged, t.bytes...)
	merged = append(merged, o.bytes...)
	return NewTextAsset(merged), nil
}
