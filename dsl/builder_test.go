package dsl_test

import (
	"context"
	"testing"

	strukt "github.com/reoring/strukt"
	d "github.com/reoring/strukt/dsl"
)

// TestKindBuilder_WiresAllDescriptorSets drives one kind declared entirely
// through the builder and checks each descriptor set takes effect.
func TestKindBuilder_WiresAllDescriptorSets(t *testing.T) {
	ctx := context.Background()
	k := d.Kind("user").
		Field("name", d.String()).
		Field("age", d.Int()).
		Field("tier", d.String()).
		Require("name").
		Default("tier", "free").
		Validate("age", strukt.Predicate(func(v any) bool {
			n, ok := v.(int)
			return ok && n >= 0
		})).
		Mode(strukt.CollectAll).
		MustBuild()

	if k.Name() != "user" {
		t.Fatalf("expected name user, got %q", k.Name())
	}
	if k.Config().Mode != strukt.CollectAll {
		t.Fatalf("expected bound collect-all mode")
	}

	doc := strukt.Document{"age": -1}
	err := k.Validate(ctx, doc)
	vs, ok := strukt.AsViolations(err)
	if !ok || len(vs) != 2 {
		t.Fatalf("expected missing name and invalid age, got: %v", err)
	}
	if vs[0].Code != strukt.CodeMissingRequired || vs[0].Path != "name" {
		t.Fatalf("expected missing_required at name, got %+v", vs[0])
	}
	if vs[1].Code != strukt.CodeValidationFailed || vs[1].Path != "age" {
		t.Fatalf("expected validation_failed at age, got %+v", vs[1])
	}
	if doc["tier"] != "free" {
		t.Fatalf("expected the default applied, got %v", doc["tier"])
	}

	if err := k.Validate(ctx, strukt.Document{"name": "Ada", "age": 36}); err != nil {
		t.Fatalf("expected clean document, got: %v", err)
	}
}

// TestObjectBuilder_NestsAndMaps assembles nested objects and a homogeneous
// mapping through the node helpers.
func TestObjectBuilder_NestsAndMaps(t *testing.T) {
	ctx := context.Background()
	k := d.Kind("zoo").
		Field("owner", d.Object().
			Field("name", d.String()).
			Field("address", d.Object().Field("city", d.String()).Build()).
			Build()).
		Field("pets", d.MapOf(strukt.String, d.Object().Field("age", d.Int()).Build())).
		MustBuild()

	err := k.Validate(ctx, strukt.Document{
		"owner": map[string]any{"name": "Ada", "address": map[string]any{"city": "Oslo"}},
		"pets":  map[string]any{"rex": map[string]any{"age": 3}},
	})
	if err != nil {
		t.Fatalf("expected clean document, got: %v", err)
	}

	err = k.Validate(ctx, strukt.Document{
		"owner": map[string]any{"address": map[string]any{"city": 7}},
	}, strukt.ValidateOpt{Mode: strukt.CollectAll})
	vs, ok := strukt.AsViolations(err)
	if !ok || len(vs) != 1 {
		t.Fatalf("expected one violation, got: %v", err)
	}
	if vs[0].Code != strukt.CodeTypeMismatch || vs[0].Path != "owner.address.city" {
		t.Fatalf("expected type_mismatch at owner.address.city, got %+v", vs[0])
	}
}

// TestKindBuilder_BuildReportsDeclarationDefects checks Build surfaces
// registration violations and MustBuild panics on them.
func TestKindBuilder_BuildReportsDeclarationDefects(t *testing.T) {
	_, err := d.Kind("bad").
		Field("bar", d.String()).
		Require("nope").
		Build()
	vs, ok := strukt.AsViolations(err)
	if !ok || len(vs) != 1 || vs[0].Code != strukt.CodeUnknownKey {
		t.Fatalf("expected unknown_key for the bogus required path, got: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	d.Kind("bad").Field("bar", d.String()).Require("nope").MustBuild()
}
