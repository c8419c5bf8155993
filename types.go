package strukt

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/reoring/strukt/internal/docpath"
)

// Type names a terminal value family a schema node may declare. The zero
// Type is invalid. Builtins cover the JSON-ish scalars plus time, binary and
// the loose container forms; NewType defines custom scalars and StructOf
// structure-like types whose fields are checked recursively.
type Type struct {
	name string
	is   func(any) bool
	key  func(string) bool // nil when the type has no wildcard key form
	node Node              // non-nil for structure-like types
}

// Builtin types.
var (
	String = Type{name: "string", is: isString, key: func(string) bool { return true }}
	Int    = Type{name: "int", is: isInt, key: keyInt}
	Float  = Type{name: "float", is: isFloat, key: keyFloat}
	Bool   = Type{name: "bool", is: isBool, key: keyBool}
	Time   = Type{name: "time", is: isTime}
	Binary = Type{name: "binary", is: isBinary}
	List   = Type{name: "list", is: isList}
	Map    = Type{name: "map", is: isMapValue}
	Any    = Type{name: "any", is: func(any) bool { return true }}
)

// NewType defines a custom scalar type. is reports whether a value is an
// instance; it is never called with nil.
func NewType(name string, is func(any) bool) Type {
	return Type{name: name, is: is}
}

// StructOf defines a named structure-like type. Wherever a node declares it,
// the value must be a map conforming to fields, checked recursively.
func StructOf(name string, fields map[string]Node) Type {
	return Type{name: name, is: isMapValue, node: Fixed(fields)}
}

// WithKeyForm returns a copy of t usable as a wildcard key type. key reports
// whether a document key's lexical form belongs to the type.
func (t Type) WithKeyForm(key func(string) bool) Type {
	t.key = key
	return t
}

// Name returns the type name as used in messages and kind declarations.
func (t Type) Name() string { return t.name }

// Valid reports whether t names a real type (the zero Type does not).
func (t Type) Valid() bool { return t.name != "" && t.is != nil }

// Is reports whether v is an instance of t. nil is never an instance except
// for Any.
func (t Type) Is(v any) bool {
	if !t.Valid() {
		return false
	}
	if v == nil {
		return t.name == Any.name
	}
	return t.is(v)
}

// keyOK reports whether a document key belongs to t's key form.
func (t Type) keyOK(k string) bool {
	return t.key != nil && t.key(k)
}

// keyCapable reports whether t may appear as a wildcard key type.
func (t Type) keyCapable() bool { return t.key != nil }

func isString(v any) bool { _, ok := v.(string); return ok }

func isInt(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := n.Int64()
		return err == nil
	}
	return false
}

func isFloat(v any) bool {
	switch n := v.(type) {
	case float32, float64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	}
	return false
}

func isBool(v any) bool { _, ok := v.(bool); return ok }

func isTime(v any) bool { _, ok := v.(time.Time); return ok }

func isBinary(v any) bool { _, ok := v.([]byte); return ok }

func isList(v any) bool {
	if _, ok := v.([]any); ok {
		return true
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func isMapValue(v any) bool {
	if _, ok := docpath.AsMap(v); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

func keyInt(k string) bool { _, err := strconv.ParseInt(k, 10, 64); return err == nil }

func keyFloat(k string) bool { _, err := strconv.ParseFloat(k, 64); return err == nil }

func keyBool(k string) bool { _, err := strconv.ParseBool(k); return err == nil }

// typeName names a runtime value's type family for messages, preferring the
// builtin names over Go type syntax.
func typeName(v any) string {
	switch n := v.(type) {
	case nil:
		return "nil"
	case string:
		return String.name
	case bool:
		return Bool.name
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int.name
	case float32, float64:
		return Float.name
	case json.Number:
		if _, err := n.Int64(); err == nil {
			return Int.name
		}
		return Float.name
	case time.Time:
		return Time.name
	case []byte:
		return Binary.name
	}
	if isList(v) {
		return List.name
	}
	if isMapValue(v) {
		return Map.name
	}
	return fmt.Sprintf("%T", v)
}
