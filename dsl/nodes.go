package dsl

import (
	strukt "github.com/reoring/strukt"
)

// String returns a terminal string node.
func String() strukt.Node { return strukt.Typed(strukt.String) }

// Int returns a terminal int node.
func Int() strukt.Node { return strukt.Typed(strukt.Int) }

// Float returns a terminal float node.
func Float() strukt.Node { return strukt.Typed(strukt.Float) }

// Bool returns a terminal bool node.
func Bool() strukt.Node { return strukt.Typed(strukt.Bool) }

// Time returns a terminal time node.
func Time() strukt.Node { return strukt.Typed(strukt.Time) }

// Binary returns a terminal binary node.
func Binary() strukt.Node { return strukt.Typed(strukt.Binary) }

// List returns a terminal list node; element values are free-form.
func List() strukt.Node { return strukt.Typed(strukt.List) }

// Any returns a terminal node accepting every value including nil.
func Any() strukt.Node { return strukt.Typed(strukt.Any) }

// Of returns a terminal node of a custom type.
func Of(t strukt.Type) strukt.Node { return strukt.Typed(t) }

// MapOf returns a homogeneous mapping node: keys of keyType, values
// conforming to elem.
func MapOf(keyType strukt.Type, elem strukt.Node) strukt.Node {
	return strukt.Wildcard(keyType, elem)
}

// ObjectBuilder assembles a fixed field-set node fluently.
type ObjectBuilder struct {
	fields map[string]strukt.Node
}

// Object creates a new object builder.
func Object() *ObjectBuilder {
	return &ObjectBuilder{fields: map[string]strukt.Node{}}
}

// Field registers a field with its node.
func (b *ObjectBuilder) Field(name string, node strukt.Node) *ObjectBuilder {
	b.fields[name] = node
	return b
}

// Build returns the field-set node.
func (b *ObjectBuilder) Build() strukt.Node { return strukt.Fixed(b.fields) }
