// Package kindfile loads document kind declarations from YAML or JSON and
// exports registered kinds back to the same form.
//
// A declaration names the kind, its structure (field names mapping to type
// names, nested mappings, or a single $type wildcard key), and the
// descriptor lists:
//
//	kind: person
//	mode: collect-all
//	structure:
//	  name: string
//	  pets:
//	    $string:
//	      name: string
//	required: [name, pets.$string.name]
//	defaults:
//	  - path: name
//	    value: anonymous
//	validators:
//	  - path: name
//	    rule: min-length(3)
package kindfile

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	strukt "github.com/reoring/strukt"
	"github.com/reoring/strukt/i18n"
	"github.com/reoring/strukt/internal/docpath"
)

// Declaration is the serialized form of a kind.
type Declaration struct {
	Kind       string           `yaml:"kind" json:"kind"`
	Mode       string           `yaml:"mode,omitempty" json:"mode,omitempty"`
	Structure  any              `yaml:"structure" json:"structure"`
	Required   []string         `yaml:"required,omitempty" json:"required,omitempty"`
	Defaults   []DefaultEntry   `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Validators []ValidatorEntry `yaml:"validators,omitempty" json:"validators,omitempty"`
}

// DefaultEntry is one defaults list item; order in the list is the
// application order.
type DefaultEntry struct {
	Path  string `yaml:"path" json:"path"`
	Value any    `yaml:"value" json:"value"`
}

// ValidatorEntry attaches a rule expression to a dotted path.
type ValidatorEntry struct {
	Path string `yaml:"path" json:"path"`
	Rule string `yaml:"rule" json:"rule"`
}

var builtinTypes = map[string]strukt.Type{
	"string": strukt.String,
	"int":    strukt.Int,
	"float":  strukt.Float,
	"bool":   strukt.Bool,
	"time":   strukt.Time,
	"binary": strukt.Binary,
	"list":   strukt.List,
	"map":    strukt.Map,
	"any":    strukt.Any,
}

// Load registers the declared kind. Declaration defects come back together
// as strukt.Violations; recoverable oddities only warn through Diag.
func Load(decl Declaration, opts Options) (*strukt.Kind, Diag, error) {
	d := &simpleDiag{}
	if decl.Kind == "" {
		d.warnf("kindfile: declaration has no kind name")
	}
	var vs strukt.Violations
	root := buildNode(decl.Structure, "", opts, &vs)
	mode := parseMode(decl.Mode, d)

	desc := strukt.Descriptors{Required: decl.Required}
	for _, de := range decl.Defaults {
		desc.Defaults = append(desc.Defaults, strukt.Default{Path: de.Path, Value: normalizeValue(de.Value)})
	}
	for _, ve := range decl.Validators {
		v, err := ParseRule(ve.Rule, opts)
		if err != nil {
			vs = append(vs, strukt.Violation{
				Path:    ve.Path,
				Code:    strukt.CodeValidationFailed,
				Message: i18n.T(strukt.CodeValidationFailed, map[string]string{"field": ve.Path}),
				Hint:    ve.Rule,
				Cause:   err,
			})
			continue
		}
		desc.Validators = append(desc.Validators, strukt.FieldValidator{Path: ve.Path, Validator: v})
	}
	if len(vs) > 0 {
		return nil, d, vs
	}
	k, err := strukt.NewKind(decl.Kind, root, desc, strukt.Config{Mode: mode})
	if err != nil {
		return nil, d, err
	}
	return k, d, nil
}

func parseMode(s string, d *simpleDiag) strukt.Mode {
	switch s {
	case "":
		return strukt.ModeDefault
	case "fail-fast":
		return strukt.FailFast
	case "collect-all":
		return strukt.CollectAll
	case "skip":
		return strukt.Skip
	default:
		d.warnf("kindfile: unknown mode %q, using fail-fast", s)
		return strukt.ModeDefault
	}
}

// buildNode turns a declaration value into a structure node. Defects append
// to vs; an Any placeholder keeps the walk going so one pass reports
// everything.
func buildNode(v any, at string, opts Options, vs *strukt.Violations) strukt.Node {
	switch t := v.(type) {
	case string:
		ty, ok := lookupType(t, opts)
		if !ok {
			*vs = append(*vs, unknownTypeViolation(at, t, opts))
			return strukt.Typed(strukt.Any)
		}
		return strukt.Typed(ty)
	case map[string]any:
		return buildMapNode(t, at, opts, vs)
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				*vs = append(*vs, strukt.Violation{
					Path:    dotJoin(at, fmt.Sprint(k)),
					Code:    strukt.CodeUnauthorizedType,
					Message: i18n.T(strukt.CodeUnauthorizedType, map[string]string{"type": fmt.Sprintf("%T", k)}),
					Hint:    "structure keys must be strings",
				})
				continue
			}
			m[ks] = vv
		}
		return buildMapNode(m, at, opts, vs)
	default:
		*vs = append(*vs, strukt.Violation{
			Path: at,
			Code: strukt.CodeTypeMismatch,
			Message: i18n.T(strukt.CodeTypeMismatch, map[string]string{
				"expected": "type name or mapping",
				"actual":   fmt.Sprintf("%T", v),
			}),
		})
		return strukt.Typed(strukt.Any)
	}
}

func buildMapNode(m map[string]any, at string, opts Options, vs *strukt.Violations) strukt.Node {
	keys := docpath.SortedKeys(m)
	var wild string
	for _, k := range keys {
		if k == "$" {
			*vs = append(*vs, strukt.Violation{
				Path:    dotJoin(at, k),
				Code:    strukt.CodeMalformedPath,
				Message: i18n.T(strukt.CodeMalformedPath, map[string]string{"reason": "empty wildcard type name"}),
			})
			continue
		}
		if wild == "" && len(k) > 1 && k[0] == '$' {
			wild = k
		}
	}
	if wild != "" {
		for _, k := range keys {
			if k == wild || k == "$" {
				continue
			}
			*vs = append(*vs, strukt.Violation{
				Path:    dotJoin(at, k),
				Code:    strukt.CodeUnknownKey,
				Message: i18n.T(strukt.CodeUnknownKey, nil),
				Hint:    "a wildcard mapping declares exactly one " + wild + " key",
			})
		}
		name := wild[1:]
		kt, ok := lookupType(name, opts)
		if !ok {
			*vs = append(*vs, unknownTypeViolation(dotJoin(at, wild), name, opts))
			kt = strukt.String
		}
		return strukt.Wildcard(kt, buildNode(m[wild], dotJoin(at, wild), opts, vs))
	}
	children := make(map[string]strukt.Node, len(m))
	for _, k := range keys {
		children[k] = buildNode(m[k], dotJoin(at, k), opts, vs)
	}
	return strukt.Fixed(children)
}

func lookupType(name string, opts Options) (strukt.Type, bool) {
	if t, ok := opts.Types[name]; ok {
		return t, true
	}
	t, ok := builtinTypes[name]
	return t, ok
}

func unknownTypeViolation(at, name string, opts Options) strukt.Violation {
	v := strukt.Violation{
		Path:    at,
		Code:    strukt.CodeUnauthorizedType,
		Message: i18n.T(strukt.CodeUnauthorizedType, map[string]string{"type": name}),
		Params:  map[string]any{"type": name},
	}
	if s := nearestTypeName(name, opts); s != "" {
		v.Hint = "did you mean " + fmt.Sprintf("%q", s) + "?"
	}
	return v
}

func nearestTypeName(name string, opts Options) string {
	best, bestD := "", 3
	for c := range builtinTypes {
		if d := levenshtein.ComputeDistance(name, c); d < bestD {
			best, bestD = c, d
		}
	}
	for c := range opts.Types {
		if d := levenshtein.ComputeDistance(name, c); d < bestD {
			best, bestD = c, d
		}
	}
	return best
}

func dotJoin(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// normalizeValue rewrites YAML-decoded containers so documents and default
// values always carry map[string]any; non-string keys stringify.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = normalizeValue(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
