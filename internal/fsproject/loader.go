package fsproject

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/javanhut/multimerge/internal/assetfile"
	"github.com/javanhut/multimerge/internal/identity"
	"github.com/javanhut/multimerge/internal/mergefile"
)

// Load reads idx's file from under root and sniffs its asset kind from
// the file extension: .json/.yaml/.yml decode as a StructuredAsset with
// declared relations, everything else loads as an opaque TextAsset. A
// missing file is reported as (nil, nil), matching timeline.Loader's
// contract for an absent source.
func Load(root string, idx identity.Index) (mergefile.File, error) {
	path := filepath.Join(root, filepath.FromSlash(idx.RelPath))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(idx.RelPath)) {
	case ".json", ".yaml", ".yml":
		return assetfile.ParseStructuredAsset(idx.Pid, data)
	default:
		return assetfile.NewTextAsset(data), nil
	}
}

// File implements mergeproject.Project by delegating to Load against
// this Project's own root.
func (p *Project) File(idx identity.Index) (mergefile.File, error) {
	return Load(p.root, idx)
}
