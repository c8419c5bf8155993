package strukt

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/reoring/strukt/i18n"
)

// Violation codes (exported consts for IDE completion and type safety by convention)
const (
	CodeTypeMismatch     = "type_mismatch"
	CodeMissingRequired  = "missing_required"
	CodeUnknownKey       = "unknown_key"
	CodeUnauthorizedType = "unauthorized_type"
	CodeValidationFailed = "validation_failed"
	CodeMalformedPath    = "malformed_path"
)

// Violation represents a single structural or semantic defect found in a
// document (or, at registration time, in a kind declaration).
type Violation struct {
	Path    string // Dotted path (for example: spam.eggs or pets.$string.name).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, near-miss suggestions, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"string", "actual":"int"})
	// for i18n and observability.
	Params map[string]any
}

// Violations is a collection of violations that implements error.
type Violations []Violation

// Error summarizes the first few violations.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(vs)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		v := vs[i]
		// e.g. type_mismatch at spam.eggs
		fmt.Fprintf(b, "%s at %s", v.Code, v.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendViolations appends violations to the destination, initializing the
// slice when needed.
func AppendViolations(dst Violations, more ...Violation) Violations {
	if dst == nil {
		dst = Violations{}
	}
	dst = append(dst, more...)
	return dst
}

// AsViolations extracts Violations from an error using errors.As internally.
func AsViolations(err error) (Violations, bool) {
	if err == nil {
		return nil, false
	}
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}

// ViolationMap groups violations by dotted path. ValidateAll returns one; it
// is the collect-all counterpart of the flat Violations slice.
type ViolationMap map[string]Violations

// Add appends a violation under its own path.
func (vm ViolationMap) Add(v Violation) { vm[v.Path] = append(vm[v.Path], v) }

// Paths returns the violated paths in sorted order.
func (vm ViolationMap) Paths() []string {
	ps := make([]string, 0, len(vm))
	for p := range vm {
		ps = append(ps, p)
	}
	sort.Strings(ps)
	return ps
}

// Len reports the total number of violations across all paths.
func (vm ViolationMap) Len() int {
	n := 0
	for _, vs := range vm {
		n += len(vs)
	}
	return n
}

// Flatten returns all violations ordered by path (insertion order within a
// path is preserved).
func (vm ViolationMap) Flatten() Violations {
	var out Violations
	for _, p := range vm.Paths() {
		out = append(out, vm[p]...)
	}
	return out
}

// Err returns the flattened violations as an error, or nil when empty.
func (vm ViolationMap) Err() error {
	if vm.Len() == 0 {
		return nil
	}
	return vm.Flatten()
}

// violationAt creates a Violation at the given path with the localized
// message for code. data feeds the translator; params keeps the structured
// form alongside.
func violationAt(path, code string, data map[string]string) Violation {
	v := Violation{Path: path, Code: code, Message: i18n.T(code, data)}
	if len(data) > 0 {
		v.Params = make(map[string]any, len(data))
		for k, s := range data {
			v.Params[k] = s
		}
	}
	return v
}
