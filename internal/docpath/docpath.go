// Package docpath holds the document-traversal detail shared by the checker
// stages: map coercion for named map types, deterministic key ordering, deep
// copies for default values, and literal walks used by path lookup and
// default application.
package docpath

import (
	"reflect"
	"sort"
)

var mapStringAny = reflect.TypeOf(map[string]any(nil))

// AsMap reports v as a map[string]any when its dynamic type is one (directly
// or as a named type such as strukt.Document). The returned map shares
// storage with v, so writes through it are visible to the caller's value.
func AsMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map && rv.Type().ConvertibleTo(mapStringAny) {
		return rv.Convert(mapStringAny).Interface().(map[string]any), true
	}
	return nil, false
}

// SortedKeys returns m's keys in sorted order for deterministic iteration.
func SortedKeys(m map[string]any) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// Get walks names through nested maps and returns the value at the end.
// The second result is false when any step is absent or not a map.
func Get(root map[string]any, names []string) (any, bool) {
	cur := any(root)
	for _, name := range names {
		m, ok := AsMap(cur)
		if !ok {
			return nil, false
		}
		v, exists := m[name]
		if !exists {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// EnsureParents walks names creating intermediate maps as needed and returns
// the innermost map, ready for a terminal assignment. A nil value along the
// way is replaced by a fresh map. When a non-map value blocks the walk the
// index of the offending segment is returned with a nil map.
func EnsureParents(root map[string]any, names []string) (map[string]any, int) {
	cur := root
	for i, name := range names {
		v, exists := cur[name]
		if !exists || v == nil {
			next := map[string]any{}
			cur[name] = next
			cur = next
			continue
		}
		m, ok := AsMap(v)
		if !ok {
			return nil, i
		}
		if m == nil {
			next := map[string]any{}
			cur[name] = next
			cur = next
			continue
		}
		cur = m
	}
	return cur, -1
}

// DeepCopy copies maps and slices recursively so callers never alias a
// registered default value. Scalars (including time.Time) copy by value.
func DeepCopy(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = DeepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = DeepCopy(e)
		}
		return out
	case []byte:
		return append([]byte(nil), t...)
	}
	if m, ok := AsMap(v); ok {
		out := make(map[string]any, len(m))
		for k, e := range m {
			out[k] = DeepCopy(e)
		}
		return out
	}
	return v
}
