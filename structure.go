package strukt

import (
	"context"

	"github.com/agnivade/levenshtein"

	"github.com/reoring/strukt/internal/docpath"
)

// CheckStructure verifies the document against the kind's structure tree:
// undeclared keys, terminal type mismatches and wildcard key forms. Absence
// is not its concern; missing fields belong to CheckRequired.
func (k *Kind) CheckStructure(ctx context.Context, doc Document) Violations {
	return checkValue(ctx, k.root, map[string]any(doc), "")
}

func checkValue(ctx context.Context, node Node, val any, at string) Violations {
	var vs Violations
	switch n := node.(type) {
	case *TypedNode:
		if val == nil {
			return nil
		}
		if n.Type.node != nil {
			if _, ok := docpath.AsMap(val); !ok {
				return Violations{typeMismatch(at, n.Type.name, val)}
			}
			return checkValue(ctx, n.Type.node, val, at)
		}
		if !n.Type.Is(val) {
			vs = append(vs, typeMismatch(at, n.Type.name, val))
		}
	case *FixedNode:
		if val == nil {
			return nil
		}
		m, ok := docpath.AsMap(val)
		if !ok {
			return Violations{typeMismatch(at, Map.name, val)}
		}
		for _, key := range docpath.SortedKeys(m) {
			if _, declared := n.children[key]; declared {
				continue
			}
			v := violationAt(joinPath(at, key), CodeUnknownKey, nil)
			if s := nearestKey(key, n.sorted); s != "" {
				v.Hint = "did you mean " + quote(s) + "?"
			}
			vs = append(vs, v)
			if IsFailFast(ctx) {
				return vs
			}
		}
		for _, name := range n.sorted {
			cv, exists := m[name]
			if !exists {
				continue
			}
			vs = append(vs, checkValue(ctx, n.children[name], cv, joinPath(at, name))...)
			if len(vs) > 0 && IsFailFast(ctx) {
				return vs
			}
		}
	case *WildcardNode:
		if val == nil {
			return nil
		}
		m, ok := docpath.AsMap(val)
		if !ok {
			return Violations{typeMismatch(at, Map.name, val)}
		}
		for _, key := range docpath.SortedKeys(m) {
			if !n.KeyType.keyOK(key) {
				vs = append(vs, violationAt(joinPath(at, key), CodeUnauthorizedType,
					map[string]string{"key": key, "type": n.KeyType.name}))
				if IsFailFast(ctx) {
					return vs
				}
			}
			vs = append(vs, checkValue(ctx, n.Elem, m[key], joinPath(at, key))...)
			if len(vs) > 0 && IsFailFast(ctx) {
				return vs
			}
		}
	}
	return vs
}

func typeMismatch(at, expected string, got any) Violation {
	return violationAt(at, CodeTypeMismatch, map[string]string{
		"expected": expected,
		"actual":   typeName(got),
	})
}

// nearestKey suggests the closest declared key within edit distance two.
func nearestKey(key string, declared []string) string {
	best, bestD := "", 3
	for _, c := range declared {
		if d := levenshtein.ComputeDistance(key, c); d < bestD {
			best, bestD = c, d
		}
	}
	return best
}
