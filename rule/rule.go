// Package rule provides reusable field validators for strukt kinds. Each
// validator knows its declaration form ("min-length(3)") so kinds loaded
// from kindfile declarations can round-trip.
package rule

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	strukt "github.com/reoring/strukt"
)

// named pairs a validator with its declaration form.
type named struct {
	name string
	v    strukt.Validator
}

func (n named) Validate(v any) error { return n.v.Validate(v) }
func (n named) String() string       { return n.name }

func wrap(name string, fn func(any) error) strukt.Validator {
	return named{name: name, v: strukt.ValidatorFunc(fn)}
}

// NonEmpty rejects empty strings, lists and maps (and nil).
func NonEmpty() strukt.Validator {
	return wrap("non-empty", func(v any) error {
		if n, ok := lengthOf(v); !ok || n == 0 {
			return strukt.FailField("%s must not be empty")
		}
		return nil
	})
}

// MinLength requires at least n characters (strings) or elements (lists,
// maps, binary).
func MinLength(n int) strukt.Validator {
	return wrap(fmt.Sprintf("min-length(%d)", n), func(v any) error {
		got, ok := lengthOf(v)
		if !ok || got < n {
			return strukt.FailField("length of %s must be at least %d", n)
		}
		return nil
	})
}

// MaxLength allows at most n characters (strings) or elements (lists, maps,
// binary).
func MaxLength(n int) strukt.Validator {
	return wrap(fmt.Sprintf("max-length(%d)", n), func(v any) error {
		got, ok := lengthOf(v)
		if !ok || got > n {
			return strukt.FailField("length of %s must be at most %d", n)
		}
		return nil
	})
}

// Match requires a string matching the anchored-as-written pattern. The
// pattern must compile; use regexp.Compile beforehand when it is not a
// literal.
func Match(pattern string) strukt.Validator {
	re := regexp.MustCompile(pattern)
	return wrap(fmt.Sprintf("match(%s)", pattern), func(v any) error {
		s, ok := v.(string)
		if !ok || !re.MatchString(s) {
			return strukt.FailField("%s must match %q", pattern)
		}
		return nil
	})
}

// In requires the value to equal one of allowed.
func In(allowed ...any) strukt.Validator {
	parts := make([]string, len(allowed))
	for i, a := range allowed {
		parts[i] = fmt.Sprint(a)
	}
	name := fmt.Sprintf("in(%s)", strings.Join(parts, ","))
	return wrap(name, func(v any) error {
		for _, a := range allowed {
			if reflect.DeepEqual(v, a) {
				return nil
			}
			// numeric forms compare by value so 3 matches 3.0 and json.Number("3")
			if vf, ok := asFloat(v); ok {
				if af, ok2 := asFloat(a); ok2 && vf == af {
					return nil
				}
			}
		}
		return strukt.FailField("%s must be one of [%s]", strings.Join(parts, ", "))
	})
}

// Range requires a numeric value within [min, max].
func Range(min, max float64) strukt.Validator {
	return wrap(fmt.Sprintf("range(%v,%v)", min, max), func(v any) error {
		f, ok := asFloat(v)
		if !ok || f < min || f > max {
			return strukt.FailField("%s must be between %v and %v", min, max)
		}
		return nil
	})
}

// Min requires a numeric value of at least min.
func Min(min float64) strukt.Validator {
	return wrap(fmt.Sprintf("min(%v)", min), func(v any) error {
		f, ok := asFloat(v)
		if !ok || f < min {
			return strukt.FailField("%s must be at least %v", min)
		}
		return nil
	})
}

// Max requires a numeric value of at most max.
func Max(max float64) strukt.Validator {
	return wrap(fmt.Sprintf("max(%v)", max), func(v any) error {
		f, ok := asFloat(v)
		if !ok || f > max {
			return strukt.FailField("%s must be at most %v", max)
		}
		return nil
	})
}

// Each applies v to every element of a list. The first failing element
// rejects the whole list.
func Each(v strukt.Validator) strukt.Validator {
	name := "each"
	if s, ok := v.(fmt.Stringer); ok {
		name = fmt.Sprintf("each(%s)", s.String())
	}
	return wrap(name, func(val any) error {
		items, ok := listOf(val)
		if !ok {
			return strukt.FailField("%s must be a list")
		}
		for i, item := range items {
			if err := v.Validate(item); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil
	})
}

// And passes only when every validator passes; the first failure wins.
func And(vs ...strukt.Validator) strukt.Validator {
	return wrap(joinNames("and", vs), func(v any) error {
		for _, each := range vs {
			if err := each.Validate(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Or passes when any validator passes; when all fail the last failure is
// reported.
func Or(vs ...strukt.Validator) strukt.Validator {
	return wrap(joinNames("or", vs), func(v any) error {
		var last error
		for _, each := range vs {
			last = each.Validate(v)
			if last == nil {
				return nil
			}
		}
		if last == nil {
			last = strukt.ErrFailed
		}
		return last
	})
}

func joinNames(op string, vs []strukt.Validator) string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		if s, ok := v.(fmt.Stringer); ok {
			parts = append(parts, s.String())
			continue
		}
		parts = append(parts, "?")
	}
	return fmt.Sprintf("%s(%s)", op, strings.Join(parts, ","))
}

// lengthOf counts characters of strings, bytes of binary and elements of
// lists and maps.
func lengthOf(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return utf8.RuneCountInString(t), true
	case []byte:
		return len(t), true
	case []any:
		return len(t), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

// listOf exposes any slice or array as []any.
func listOf(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
