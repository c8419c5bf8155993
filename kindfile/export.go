package kindfile

import (
	"fmt"

	strukt "github.com/reoring/strukt"
)

// Export rebuilds the declaration of a registered kind. Validators without a
// declaration form (no fmt.Stringer) are skipped with a warning; custom and
// structure-like types export by name only, so loading the result back needs
// the same Options.Types.
func Export(k *strukt.Kind) (Declaration, Diag) {
	d := &simpleDiag{}
	decl := Declaration{
		Kind:      k.Name(),
		Structure: exportNode(k.Schema(), "", d),
		Required:  k.Required(),
	}
	if m := k.Config().Mode; m != strukt.ModeDefault {
		decl.Mode = m.String()
	}
	for _, df := range k.Defaults() {
		decl.Defaults = append(decl.Defaults, DefaultEntry{Path: df.Path, Value: df.Value})
	}
	for _, fv := range k.Validators() {
		s, ok := fv.Validator.(fmt.Stringer)
		if !ok {
			d.warnf("kindfile: validator at %s has no declaration form, skipped", fv.Path)
			continue
		}
		decl.Validators = append(decl.Validators, ValidatorEntry{Path: fv.Path, Rule: s.String()})
	}
	return decl, d
}

func exportNode(n strukt.Node, at string, d *simpleDiag) any {
	switch t := n.(type) {
	case *strukt.TypedNode:
		if _, builtin := builtinTypes[t.Type.Name()]; !builtin {
			d.warnf("kindfile: type %q at %q exports by name only", t.Type.Name(), at)
		}
		return t.Type.Name()
	case *strukt.FixedNode:
		out := make(map[string]any, len(t.Keys()))
		for _, k := range t.Keys() {
			c, _ := t.Child(k)
			out[k] = exportNode(c, dotJoin(at, k), d)
		}
		return out
	case *strukt.WildcardNode:
		mark := "$" + t.KeyType.Name()
		return map[string]any{mark: exportNode(t.Elem, dotJoin(at, mark), d)}
	default:
		return strukt.Any.Name()
	}
}
