package strukt

import (
	"context"

	"github.com/reoring/strukt/internal/docpath"
)

// CheckRequired verifies every required path resolves to a present, non-nil
// value. Wildcard segments fan out across the live keys; an absent or empty
// wildcard map yields one violation at the declared path. A branch that dies
// early reports once, at the full declared remainder.
func (k *Kind) CheckRequired(ctx context.Context, doc Document) Violations {
	var vs Violations
	for _, p := range k.required {
		vs = append(vs, requireWalk(ctx, map[string]any(doc), p.segs, "")...)
		if len(vs) > 0 && IsFailFast(ctx) {
			return vs
		}
	}
	return vs
}

func requireWalk(ctx context.Context, container any, segs []Segment, concrete string) Violations {
	seg, rest := segs[0], segs[1:]
	m, ok := docpath.AsMap(container)
	if !ok {
		return Violations{missingRequired(renderTail(concrete, segs))}
	}
	if seg.Wildcard {
		if len(m) == 0 {
			return Violations{missingRequired(renderTail(concrete, segs))}
		}
		var vs Violations
		for _, key := range docpath.SortedKeys(m) {
			cp := joinPath(concrete, key)
			if len(rest) == 0 {
				if m[key] == nil {
					vs = append(vs, missingRequired(cp))
					if IsFailFast(ctx) {
						return vs
					}
				}
				continue
			}
			vs = append(vs, requireWalk(ctx, m[key], rest, cp)...)
			if len(vs) > 0 && IsFailFast(ctx) {
				return vs
			}
		}
		return vs
	}
	v, exists := m[seg.Name]
	cp := joinPath(concrete, seg.Name)
	if !exists || v == nil {
		return Violations{missingRequired(renderTail(cp, rest))}
	}
	if len(rest) == 0 {
		return nil
	}
	return requireWalk(ctx, v, rest, cp)
}

func missingRequired(path string) Violation {
	return violationAt(path, CodeMissingRequired, nil)
}
