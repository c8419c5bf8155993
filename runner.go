package strukt

import (
	"context"
	"errors"

	"github.com/reoring/strukt/i18n"
	"github.com/reoring/strukt/internal/docpath"
)

// RunValidators executes the registered field validators against their
// resolved values in declaration order. Wildcard paths fan out across the
// live keys. An absent or nil value is skipped unless the declared path is
// required, in which case the validator runs against nil.
func (k *Kind) RunValidators(ctx context.Context, doc Document) Violations {
	var vs Violations
	for _, bv := range k.validators {
		required := k.isRequired(bv.path.String())
		for _, rv := range resolveValues(map[string]any(doc), bv.path.segs, "") {
			if (!rv.found || rv.value == nil) && !required {
				continue
			}
			if err := bv.v.Validate(rv.value); err != nil {
				vs = append(vs, validationViolation(rv.path, err))
				if IsFailFast(ctx) {
					return vs
				}
			}
		}
	}
	return vs
}

type resolvedValue struct {
	path  string
	value any
	found bool
}

// resolveValues walks a validator path, fanning out across wildcard keys. A
// dead branch yields a single not-found entry at the declared remainder so
// validators on required paths still fire.
func resolveValues(container any, segs []Segment, concrete string) []resolvedValue {
	seg, rest := segs[0], segs[1:]
	m, ok := docpath.AsMap(container)
	if !ok {
		return []resolvedValue{{path: renderTail(concrete, segs)}}
	}
	if seg.Wildcard {
		var out []resolvedValue
		for _, key := range docpath.SortedKeys(m) {
			cp := joinPath(concrete, key)
			if len(rest) == 0 {
				out = append(out, resolvedValue{path: cp, value: m[key], found: true})
				continue
			}
			out = append(out, resolveValues(m[key], rest, cp)...)
		}
		return out
	}
	v, exists := m[seg.Name]
	cp := joinPath(concrete, seg.Name)
	if len(rest) == 0 {
		return []resolvedValue{{path: cp, value: v, found: exists}}
	}
	if !exists {
		return []resolvedValue{{path: renderTail(cp, rest)}}
	}
	return resolveValues(v, rest, cp)
}

// validationViolation normalizes a validator error: field errors render with
// the concrete path substituted, ErrFailed becomes the localized generic
// message, anything else keeps its text after the generic prefix.
func validationViolation(path string, err error) Violation {
	var fe *fieldError
	if errors.As(err, &fe) {
		return Violation{Path: path, Code: CodeValidationFailed, Message: fe.render(path), Cause: err}
	}
	v := violationAt(path, CodeValidationFailed, map[string]string{"field": path})
	if !errors.Is(err, ErrFailed) {
		v.Message = i18n.T(CodeValidationFailed, map[string]string{"field": path}) + ": " + err.Error()
		v.Cause = err
	}
	return v
}
