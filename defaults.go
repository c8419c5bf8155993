package strukt

import (
	"context"
	"strings"

	"github.com/reoring/strukt/internal/docpath"
)

// ApplyDefaults fills registered defaults into absent (or nil) paths,
// creating intermediate maps as needed. Entries whose walk hits a non-map
// value yield a type_mismatch violation and are skipped; present terminals
// are left alone. The document is mutated in place and the pass is
// idempotent. Every entry is attempted regardless of earlier failures so a
// document never comes out half-defaulted.
func (k *Kind) ApplyDefaults(ctx context.Context, doc Document) Violations {
	vs, _ := k.applyDefaults(doc)
	return vs
}

// ApplyDefaultsWithMeta additionally reports which declared paths were
// filled on this pass, in registration order.
func (k *Kind) ApplyDefaultsWithMeta(ctx context.Context, doc Document) ([]string, Violations) {
	vs, applied := k.applyDefaults(doc)
	return applied, vs
}

func (k *Kind) applyDefaults(doc Document) (Violations, []string) {
	var vs Violations
	var applied []string
	root := map[string]any(doc)
	for _, d := range k.defaults {
		parents := d.names[:len(d.names)-1]
		parent, conflict := docpath.EnsureParents(root, parents)
		if conflict >= 0 {
			at := strings.Join(d.names[:conflict+1], pathSep)
			blocking, _ := docpath.Get(root, d.names[:conflict+1])
			vs = append(vs, typeMismatch(at, Map.name, blocking))
			continue
		}
		last := d.names[len(d.names)-1]
		if v, exists := parent[last]; !exists || v == nil {
			parent[last] = docpath.DeepCopy(d.value)
			applied = append(applied, d.path.String())
		}
	}
	return vs, applied
}
