package strukt

import "context"

// Mode selects how Validate responds to violations.
type Mode int

const (
	// ModeDefault inherits the Kind's bound mode (FailFast when unset).
	ModeDefault Mode = iota
	// FailFast stops at the first violation and returns it alone.
	FailFast
	// CollectAll runs every stage to completion and returns everything found.
	CollectAll
	// Skip applies defaults and checks nothing.
	Skip
)

func (m Mode) String() string {
	switch m {
	case FailFast:
		return "fail-fast"
	case CollectAll:
		return "collect-all"
	case Skip:
		return "skip"
	default:
		return "default"
	}
}

// ValidateOpt bundles per-call options; the zero value defers to the Kind's
// bound Config. The last option wins.
type ValidateOpt struct {
	Mode Mode
}

// Validate applies defaults, then runs the checking stages in order
// (structure, requirement, field validators) under the effective mode.
//
// Under FailFast the first violation from any stage (default application
// included) is returned alone, as a one-element Violations error. Under
// CollectAll every stage runs to completion and all violations come back
// together, in stage order. Under Skip only defaults are applied and the
// result is always nil. The document is mutated in place by default
// application.
func (k *Kind) Validate(ctx context.Context, doc Document, opts ...ValidateOpt) error {
	mode := k.effectiveMode(opts)
	if mode == Skip {
		k.ApplyDefaults(ctx, doc)
		return nil
	}
	failFast := mode == FailFast
	ctx = WithFailFast(ctx, failFast)

	all := k.ApplyDefaults(ctx, doc)
	if failFast && len(all) > 0 {
		return all[:1]
	}
	for _, stage := range []func(context.Context, Document) Violations{
		k.CheckStructure, k.CheckRequired, k.RunValidators,
	} {
		vs := stage(ctx, doc)
		if failFast && len(vs) > 0 {
			return vs[:1]
		}
		all = append(all, vs...)
	}
	if len(all) > 0 {
		return all
	}
	return nil
}

// ValidateAll always collects: defaults, then every checking stage to
// completion, with the violations grouped by dotted path. Skip mode still
// short-circuits to defaults-only and returns an empty map.
func (k *Kind) ValidateAll(ctx context.Context, doc Document, opts ...ValidateOpt) ViolationMap {
	vm := ViolationMap{}
	mode := k.effectiveMode(opts)
	if mode == Skip {
		k.ApplyDefaults(ctx, doc)
		return vm
	}
	ctx = WithFailFast(ctx, false)
	for _, v := range k.ApplyDefaults(ctx, doc) {
		vm.Add(v)
	}
	for _, stage := range []func(context.Context, Document) Violations{
		k.CheckStructure, k.CheckRequired, k.RunValidators,
	} {
		for _, v := range stage(ctx, doc) {
			vm.Add(v)
		}
	}
	return vm
}

func (k *Kind) effectiveMode(opts []ValidateOpt) Mode {
	m := k.cfg.Mode
	if len(opts) > 0 && opts[len(opts)-1].Mode != ModeDefault {
		m = opts[len(opts)-1].Mode
	}
	if m == ModeDefault {
		return FailFast
	}
	return m
}

// ---- Check-time context options (internal wiring, exported for subpackages) ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that marks fail-fast checking
// behavior. Validate sets it from the effective mode; the stage walkers
// consume it to stop at the first violation.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current check should stop on the first
// violation.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
