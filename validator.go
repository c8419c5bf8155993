package strukt

import (
	"errors"
	"fmt"
)

// Validator checks one resolved field value. A nil return accepts the value.
type Validator interface {
	Validate(v any) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(v any) error

func (f ValidatorFunc) Validate(v any) error { return f(v) }

// ErrFailed is the generic rejection. Validators return it (directly or via
// Predicate) when a value is simply unacceptable; the runner then emits the
// localized generic message for the field.
var ErrFailed = errors.New("validation failed")

// Predicate adapts a boolean check to Validator; false maps to ErrFailed.
func Predicate(ok func(v any) bool) Validator {
	return ValidatorFunc(func(v any) error {
		if ok(v) {
			return nil
		}
		return ErrFailed
	})
}

// fieldError carries a message template whose first %s verb receives the
// dotted field path when the violation is reported.
type fieldError struct {
	format string
	args   []any
}

func (e *fieldError) Error() string { return e.render("value") }

func (e *fieldError) render(path string) string {
	return fmt.Sprintf(e.format, append([]any{path}, e.args...)...)
}

// FailField builds a validator error whose message names the offending
// field: the first %s in format receives the dotted field path, any further
// verbs consume args.
//
//	return strukt.FailField("%s must be at least %d characters", 3)
func FailField(format string, args ...any) error {
	return &fieldError{format: format, args: args}
}
