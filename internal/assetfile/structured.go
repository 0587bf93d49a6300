package assetfile

import (
	"encoding/json"
	"fmt"

	"github.com/javanhut/multimerge/internal/identity"
	"github.com/javanhut/multimerge/internal/mergefile"
	"gopkg.in/yaml.v3"
)

// relationKeys are the document keys StructuredAsset scans for declared
// relations: a single string path, or a list of string paths.
var relationKeys = []string{"import", "imports", "depends_on"}

// StructuredAsset is a File backed by a YAML or JSON document (yaml.v3
// parses both - JSON is a YAML subset). It declares a Relation for
// every path found under relationKeys and rewrites them in place when
// ModifyRelation fires. Merge takes other's scalar top-level keys over
// self's and unions any array-valued keys the two share.
type StructuredAsset struct {
	pid identity.Pid
	doc map[string]interface{}
}

// ParseStructuredAsset decodes data as YAML/JSON into a StructuredAsset
// owned by pid - the project Pid this asset was loaded under, matching
// the Rust reference's `with_pid(self.pid)` on every declared relation
// (original_source/examples/auto_rename/asset.rs). IndexMapping keys on
// the full (Pid, RelPath) pair, so a relation tagged with the wrong Pid
// can never match a real mapping entry.
func ParseStructuredAsset(pid identity.Pid, data []byte) (*StructuredAsset, error) {
	doc := map[string]interface{}{}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("assetfile: parse structured asset: %w", err)
		}
	}
	return &StructuredAsset{pid: pid, doc: doc}, nil
}

func (s *StructuredAsset) Relation() []mergefile.Relation {
	var relations []mergefile.Relation
	for _, key := range relationKeys {
		switch v := s.doc[key].(type) {
		case string:
			relations = append(relations, mergefile.NewRelation(s.pathIndex(v)))
		case []interface{}:
			for _, item := range v {
				if path, ok := item.(string); ok {
					relations = append(relations, mergefile.NewRelation(s.pathIndex(path)))
				}
			}
		}
	}
	return relations
}

// pathIndex wraps a bare relative path string found in the document as
// an Index under this asset's own owning Pid, so it lines up with the
// real mapping keys built from each project's actual Indexes().
func (s *StructuredAsset) pathIndex(path string) identity.Index {
	return identity.NewIndex(s.pid, path)
}

// Data serializes the document as JSON, which YAML readers also accept,
// so a .json asset is still valid JSON after export. A document JSON
// cannot encode (e.g. one with non-string mapping keys) is written as
// YAML instead.
func (s *StructuredAsset) Data() []byte {
	if data, err := json.Marshal(s.doc); err == nil {
		return data
	}
	data, err := yaml.Marshal(s.doc)
	if err != nil {
		return nil
	}
	return data
}

func (s *StructuredAsset) ModifyRelation(from, to identity.Index) mergefile.File {
	doc := cloneDoc(s.doc)
	for _, key := range relationKeys {
		switch v := doc[key].(type) {
		case string:
			if v == from.RelPath {
				doc[key] = to.RelPath
			}
		case []interface{}:
			rewritten := make([]interface{}, len(v))
			for i, item := range v {
				if path, ok := item.(string); ok && path == from.RelPath {
					rewritten[i] = to.RelPath
					continue
				}
				rewritten[i] = item
			}
			doc[key] = rewritten
		}
	}
	return &StructuredAsset{pid: s.pid, doc: doc}
}

func (s *StructuredAsset) Merge(other mergefile.File) (mergefile.File, error) {
	o, ok := other.(*StructuredAsset)
	if !ok {
		return other, nil
	}

	merged := cloneDoc(s.doc)
	for key, value := range o.doc {
		existing, present := merged[key]
		if !present {
			merged[key] = value
			continue
		}

		existingList, existingIsList := existing.([]interface{})
		valueList, valueIsList := value.([]interface{})
		if existingIsList && valueIsList {
			merged[key] = unionList(existingList, valueList)
			continue
		}

		// Scalar collision: the later contributor wins, matching the
		// Replace-at-field-level behavior spec.md describes for S1-style
		// assets that merge rather than whole-file-replace.
		merged[key] = value
	}

	return &StructuredAsset{pid: s.pid, doc: merged}, nil
}

func cloneDoc(doc map[string]interface{}) map[string]interface{} {
	clone := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		clone[k] = v
	}
	return clone
}

func unionList(a, b []interface{}) []interface{} {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]interface{}, 0, len(a)+len(b))
	for _, list := range [][]interface{}{a, b} {
		for _, item := range list {
			key := fmt.Sprintf("%v", item)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, item)
		}
	}
	return out
}
