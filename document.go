package strukt

import (
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/reoring/strukt/internal/docpath"
)

// Document is a nested key-value document. Nested containers are
// map[string]any (or Document) and []any; scalars are free-form.
type Document map[string]any

// At returns the value at a literal dotted path. The second result is false
// when the path is malformed, contains a wildcard, or does not resolve.
func (d Document) At(path string) (any, bool) {
	p, err := ParsePath(path)
	if err != nil || p.HasWildcard() {
		return nil, false
	}
	return docpath.Get(map[string]any(d), literalNames(p))
}

// Set writes a value at a literal dotted path, creating intermediate maps as
// needed. It fails with malformed_path on a bad path and with type_mismatch
// when a non-map value occupies an intermediate segment.
func (d Document) Set(path string, v any) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}
	if p.HasWildcard() {
		return malformedPath(path, "wildcard segment in document path")
	}
	names := literalNames(p)
	parent, conflict := docpath.EnsureParents(map[string]any(d), names[:len(names)-1])
	if conflict >= 0 {
		at := strings.Join(names[:conflict+1], pathSep)
		blocking, _ := docpath.Get(map[string]any(d), names[:conflict+1])
		return Violations{typeMismatch(at, Map.name, blocking)}
	}
	parent[names[len(names)-1]] = v
	return nil
}

// Clone returns a deep copy; nested maps and slices are copied recursively.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return Document(docpath.DeepCopy(map[string]any(d)).(map[string]any))
}

// DocumentOf converts a struct (or map) into a Document. Field names follow
// mapstructure tags.
func DocumentOf(v any) (Document, error) {
	var out map[string]any
	if err := mapstructure.Decode(v, &out); err != nil {
		return nil, err
	}
	return Document(out), nil
}

// literalNames extracts the segment names of a wildcard-free path.
func literalNames(p Path) []string {
	names := make([]string, len(p.segs))
	for i, s := range p.segs {
		names[i] = s.Name
	}
	return names
}
