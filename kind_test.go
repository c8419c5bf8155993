package strukt_test

import (
	"strings"
	"testing"

	strukt "github.com/reoring/strukt"
)

// TestNewKind_CollectsRegistrationViolations registers a kind with one defect
// in each descriptor set and expects all of them reported together.
func TestNewKind_CollectsRegistrationViolations(t *testing.T) {
	root := strukt.Fixed(map[string]strukt.Node{
		"email": strukt.Typed(strukt.String),
		"count": strukt.Typed(strukt.Int),
		"pets":  strukt.Wildcard(strukt.String, strukt.Typed(strukt.Any)),
	})
	_, err := strukt.NewKind("user", root, strukt.Descriptors{
		Required:   []string{"emial"},
		Defaults:   []strukt.Default{{Path: "pets.$string", Value: map[string]any{}}},
		Validators: []strukt.FieldValidator{{Path: "count", Validator: nil}},
	}, strukt.Config{})
	if err == nil {
		t.Fatalf("expected registration violations")
	}
	vs, ok := strukt.AsViolations(err)
	if !ok || len(vs) != 3 {
		t.Fatalf("expected 3 violations, got: %v", err)
	}
	if vs[0].Code != strukt.CodeUnknownKey {
		t.Fatalf("expected unknown_key for the misspelled required path, got %s", vs[0].Code)
	}
	if !strings.Contains(vs[0].Hint, `did you mean "email"`) {
		t.Fatalf("expected a near-miss hint, got %q", vs[0].Hint)
	}
	if vs[1].Code != strukt.CodeMalformedPath {
		t.Fatalf("expected malformed_path for the wildcard default, got %s", vs[1].Code)
	}
	if vs[2].Code != strukt.CodeValidationFailed || vs[2].Hint != "nil validator registered" {
		t.Fatalf("expected nil-validator violation, got %+v", vs[2])
	}
}

// TestNewKind_DefaultValueMustMatchNode checks a default value is verified
// against the node its path lands on.
func TestNewKind_DefaultValueMustMatchNode(t *testing.T) {
	root := strukt.Fixed(map[string]strukt.Node{"bar": strukt.Typed(strukt.String)})
	_, err := strukt.NewKind("cfg", root, strukt.Descriptors{
		Defaults: []strukt.Default{{Path: "bar", Value: 42}},
	}, strukt.Config{})
	vs, ok := strukt.AsViolations(err)
	if !ok || len(vs) != 1 {
		t.Fatalf("expected one violation, got: %v", err)
	}
	if vs[0].Code != strukt.CodeTypeMismatch || vs[0].Path != "bar" {
		t.Fatalf("expected type_mismatch at bar, got %+v", vs[0])
	}
	if vs[0].Message != "expected string, got int" {
		t.Fatalf("unexpected message: %q", vs[0].Message)
	}

	// Container nodes accept any map-shaped default.
	root = strukt.Fixed(map[string]strukt.Node{
		"meta": strukt.Fixed(map[string]strukt.Node{"a": strukt.Typed(strukt.Any)}),
	})
	if _, err := strukt.NewKind("cfg", root, strukt.Descriptors{
		Defaults: []strukt.Default{{Path: "meta", Value: map[string]any{"a": 1}}},
	}, strukt.Config{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

// TestNewKind_SchemaDefectsReportedFirst checks structure-tree defects fail
// registration before descriptor binding.
func TestNewKind_SchemaDefectsReportedFirst(t *testing.T) {
	root := strukt.Fixed(map[string]strukt.Node{
		"pets": strukt.Wildcard(strukt.Time, strukt.Typed(strukt.Any)),
	})
	_, err := strukt.NewKind("user", root, strukt.Descriptors{}, strukt.Config{})
	vs, ok := strukt.AsViolations(err)
	if !ok || len(vs) != 1 {
		t.Fatalf("expected one violation, got: %v", err)
	}
	if vs[0].Code != strukt.CodeUnauthorizedType || vs[0].Path != "pets.$time" {
		t.Fatalf("expected unauthorized_type at pets.$time, got %+v", vs[0])
	}

	root = strukt.Fixed(map[string]strukt.Node{"x": nil})
	if err := strukt.CheckSchema(root); err == nil {
		t.Fatalf("expected nil-node violation")
	}
}

// TestNewKind_DescriptorPathsResolveThroughWildcards covers wildcard segments
// in descriptor paths: matching key types resolve, mismatched ones fail.
func TestNewKind_DescriptorPathsResolveThroughWildcards(t *testing.T) {
	root := strukt.Fixed(map[string]strukt.Node{
		"key": strukt.Wildcard(strukt.String, strukt.Fixed(map[string]strukt.Node{
			"first": strukt.Typed(strukt.Int),
		})),
	})
	if _, err := strukt.NewKind("pets", root, strukt.Descriptors{
		Required: []string{"key.$string.first"},
	}, strukt.Config{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := strukt.NewKind("pets", root, strukt.Descriptors{
		Required: []string{"key.$int.first"},
	}, strukt.Config{})
	vs, ok := strukt.AsViolations(err)
	if !ok || len(vs) != 1 || vs[0].Code != strukt.CodeUnauthorizedType {
		t.Fatalf("expected unauthorized_type for the key-type mismatch, got: %v", err)
	}

	_, err = strukt.NewKind("pets", root, strukt.Descriptors{
		Required: []string{"key.$string.first.deeper"},
	}, strukt.Config{})
	vs, ok = strukt.AsViolations(err)
	if !ok || len(vs) != 1 || vs[0].Code != strukt.CodeUnknownKey {
		t.Fatalf("expected unknown_key past the terminal, got: %v", err)
	}
}

// TestNewKind_ResolvesThroughStructTypes checks descriptor paths enter
// structure-like custom types transparently.
func TestNewKind_ResolvesThroughStructTypes(t *testing.T) {
	address := strukt.StructOf("address", map[string]strukt.Node{
		"city": strukt.Typed(strukt.String),
	})
	root := strukt.Fixed(map[string]strukt.Node{"addr": strukt.Typed(address)})
	if _, err := strukt.NewKind("user", root, strukt.Descriptors{
		Required: []string{"addr.city"},
	}, strukt.Config{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestMustKind_PanicsOnViolations(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	strukt.MustKind("bad", strukt.Fixed(map[string]strukt.Node{
		"bar": strukt.Typed(strukt.String),
	}), strukt.Descriptors{Required: []string{"nope"}}, strukt.Config{})
}

// TestKind_AccessorsCopy checks the declaration accessors hand back copies in
// declaration order.
func TestKind_AccessorsCopy(t *testing.T) {
	k := strukt.MustKind("user", strukt.Fixed(map[string]strukt.Node{
		"a": strukt.Typed(strukt.String),
		"b": strukt.Typed(strukt.Int),
	}), strukt.Descriptors{
		Required: []string{"b", "a"},
		Defaults: []strukt.Default{{Path: "b", Value: 1}},
	}, strukt.Config{Mode: strukt.CollectAll})

	if k.Name() != "user" {
		t.Fatalf("expected name user, got %q", k.Name())
	}
	if k.Config().Mode != strukt.CollectAll {
		t.Fatalf("expected bound collect-all mode")
	}
	req := k.Required()
	if len(req) != 2 || req[0] != "b" || req[1] != "a" {
		t.Fatalf("expected declaration order, got %v", req)
	}
	req[0] = "mutated"
	if k.Required()[0] != "b" {
		t.Fatalf("expected accessor to return a copy")
	}
	if ds := k.Defaults(); len(ds) != 1 || ds[0].Path != "b" {
		t.Fatalf("unexpected defaults: %v", ds)
	}
	if k.Schema() == nil {
		t.Fatalf("expected schema accessor to return the tree")
	}
}
