package strukt

// Default pairs a literal dotted path with the value applied when the path
// is absent. Default paths never cross wildcards.
type Default struct {
	Path  string
	Value any
}

// FieldValidator attaches a Validator to a dotted path. Wildcard segments
// fan the validator out across the live keys.
type FieldValidator struct {
	Path      string
	Validator Validator
}

// Descriptors carries a kind's required paths, default values and field
// validators. Order is preserved: defaults apply and validators run in
// declaration order.
type Descriptors struct {
	Required   []string
	Defaults   []Default
	Validators []FieldValidator
}

// Config carries the options bound to a Kind at registration. The zero value
// means fail-fast checking.
type Config struct {
	Mode Mode
}

// Kind is a registered document kind: a structure tree plus its descriptor
// sets, ready to check documents. Kinds are immutable after NewKind and safe
// for concurrent use.
type Kind struct {
	name        string
	root        Node
	desc        Descriptors
	required    []Path
	requiredSet map[string]struct{}
	defaults    []boundDefault
	validators  []boundValidator
	cfg         Config
}

type boundDefault struct {
	path  Path
	names []string
	value any
}

type boundValidator struct {
	path Path
	v    Validator
}

// NewKind checks the structure tree, binds the descriptor sets against it
// and returns the registered kind. Registration defects do not stop at the
// first problem; everything found is returned together as Violations.
func NewKind(name string, root Node, desc Descriptors, cfg Config) (*Kind, error) {
	if vs := checkSchema(root, ""); len(vs) > 0 {
		return nil, vs
	}
	k := &Kind{
		name: name,
		root: root,
		desc: Descriptors{
			Required:   append([]string(nil), desc.Required...),
			Defaults:   append([]Default(nil), desc.Defaults...),
			Validators: append([]FieldValidator(nil), desc.Validators...),
		},
		requiredSet: make(map[string]struct{}, len(desc.Required)),
		cfg:         cfg,
	}
	var vs Violations
	for _, rp := range desc.Required {
		p, err := ParsePath(rp)
		if err != nil {
			vs = appendErrViolations(vs, err)
			continue
		}
		if _, rvs := resolve(root, p); len(rvs) > 0 {
			vs = append(vs, rvs...)
			continue
		}
		k.required = append(k.required, p)
		k.requiredSet[p.String()] = struct{}{}
	}
	for _, d := range desc.Defaults {
		p, err := ParsePath(d.Path)
		if err != nil {
			vs = appendErrViolations(vs, err)
			continue
		}
		if p.HasWildcard() {
			vs = appendErrViolations(vs, malformedPath(d.Path, "wildcard segment in default path"))
			continue
		}
		node, rvs := resolve(root, p)
		if len(rvs) > 0 {
			vs = append(vs, rvs...)
			continue
		}
		if v := checkDefaultValue(node, d); v != nil {
			vs = append(vs, *v)
			continue
		}
		k.defaults = append(k.defaults, boundDefault{path: p, names: literalNames(p), value: d.Value})
	}
	for _, fv := range desc.Validators {
		p, err := ParsePath(fv.Path)
		if err != nil {
			vs = appendErrViolations(vs, err)
			continue
		}
		if _, rvs := resolve(root, p); len(rvs) > 0 {
			vs = append(vs, rvs...)
			continue
		}
		if fv.Validator == nil {
			v := violationAt(fv.Path, CodeValidationFailed, map[string]string{"field": fv.Path})
			v.Hint = "nil validator registered"
			vs = append(vs, v)
			continue
		}
		k.validators = append(k.validators, boundValidator{path: p, v: fv.Validator})
	}
	if len(vs) > 0 {
		return nil, vs
	}
	return k, nil
}

// MustKind is NewKind that panics on registration violations. Intended for
// literals.
func MustKind(name string, root Node, desc Descriptors, cfg Config) *Kind {
	k, err := NewKind(name, root, desc, cfg)
	if err != nil {
		panic(err)
	}
	return k
}

// checkDefaultValue verifies a default value is an instance of the node it
// lands on; container nodes accept any map.
func checkDefaultValue(node Node, d Default) *Violation {
	switch n := node.(type) {
	case *TypedNode:
		if !n.Type.Is(d.Value) {
			v := typeMismatch(d.Path, n.Type.name, d.Value)
			return &v
		}
	case *FixedNode, *WildcardNode:
		if !isMapValue(d.Value) {
			v := typeMismatch(d.Path, Map.name, d.Value)
			return &v
		}
	}
	return nil
}

func appendErrViolations(dst Violations, err error) Violations {
	if more, ok := AsViolations(err); ok {
		return append(dst, more...)
	}
	return append(dst, Violation{Code: CodeMalformedPath, Message: err.Error(), Cause: err})
}

// Name returns the kind name.
func (k *Kind) Name() string { return k.name }

// Schema returns the structure tree the kind was registered with.
func (k *Kind) Schema() Node { return k.root }

// Config returns the bound options.
func (k *Kind) Config() Config { return k.cfg }

// Required returns the declared required paths in declaration order.
func (k *Kind) Required() []string {
	return append([]string(nil), k.desc.Required...)
}

// Defaults returns the declared defaults in declaration order.
func (k *Kind) Defaults() []Default {
	return append([]Default(nil), k.desc.Defaults...)
}

// Validators returns the declared field validators in declaration order.
func (k *Kind) Validators() []FieldValidator {
	return append([]FieldValidator(nil), k.desc.Validators...)
}

func (k *Kind) isRequired(declared string) bool {
	_, ok := k.requiredSet[declared]
	return ok
}
