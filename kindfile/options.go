package kindfile

import (
	"fmt"

	strukt "github.com/reoring/strukt"
)

// ValidatorFactory builds a validator from the argument text of a rule
// expression ("min-length(3)" calls the "min-length" factory with "3").
type ValidatorFactory func(arg string) (strukt.Validator, error)

// Options controls how kind declarations are loaded.
type Options struct {
	// Validators maps rule names to factories, consulted before the builtin
	// rule table. Entries here may shadow builtins.
	Validators map[string]ValidatorFactory
	// Types maps extra type names usable in structure declarations,
	// consulted before the builtin type table.
	Types map[string]strukt.Type
}

// Diag carries non-fatal warnings produced during load or export.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }
