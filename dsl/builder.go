package dsl

import (
	strukt "github.com/reoring/strukt"
)

// KindBuilder assembles a document kind declaratively. Nothing is checked
// until Build; registration reports every violation at once.
type KindBuilder struct {
	name   string
	fields map[string]strukt.Node
	desc   strukt.Descriptors
	cfg    strukt.Config
}

// Kind starts a builder for a named document kind.
func Kind(name string) *KindBuilder {
	return &KindBuilder{name: name, fields: map[string]strukt.Node{}}
}

// Field declares a top-level field.
func (b *KindBuilder) Field(name string, node strukt.Node) *KindBuilder {
	b.fields[name] = node
	return b
}

// Require marks one or more dotted paths as required.
func (b *KindBuilder) Require(paths ...string) *KindBuilder {
	b.desc.Required = append(b.desc.Required, paths...)
	return b
}

// Default registers a default value applied when the literal dotted path is
// absent.
func (b *KindBuilder) Default(path string, v any) *KindBuilder {
	b.desc.Defaults = append(b.desc.Defaults, strukt.Default{Path: path, Value: v})
	return b
}

// Validate attaches a validator to a dotted path.
func (b *KindBuilder) Validate(path string, v strukt.Validator) *KindBuilder {
	b.desc.Validators = append(b.desc.Validators, strukt.FieldValidator{Path: path, Validator: v})
	return b
}

// Mode binds the kind's default checking mode.
func (b *KindBuilder) Mode(m strukt.Mode) *KindBuilder {
	b.cfg.Mode = m
	return b
}

// Build registers the kind.
func (b *KindBuilder) Build() (*strukt.Kind, error) {
	return strukt.NewKind(b.name, strukt.Fixed(b.fields), b.desc, b.cfg)
}

// MustBuild is Build that panics on registration violations. Intended for
// literals.
func (b *KindBuilder) MustBuild() *strukt.Kind {
	k, err := b.Build()
	if err != nil {
		panic(err)
	}
	return k
}
