package docpath

import (
	"reflect"
	"testing"
)

type namedMap map[string]any

func TestAsMap_NamedTypeSharesStorage(t *testing.T) {
	nm := namedMap{"a": 1}
	m, ok := AsMap(any(nm))
	if !ok {
		t.Fatalf("expected named map to coerce")
	}
	m["b"] = 2
	if nm["b"] != 2 {
		t.Fatalf("expected write through coerced map to reach original, got %v", nm)
	}
	if _, ok := AsMap(map[string]int{"a": 1}); ok {
		t.Fatalf("map[string]int must not coerce")
	}
	if _, ok := AsMap("nope"); ok {
		t.Fatalf("string must not coerce")
	}
}

func TestGet_WalksNestedMaps(t *testing.T) {
	root := map[string]any{"a": map[string]any{"b": namedMap{"c": 42}}}
	v, ok := Get(root, []string{"a", "b", "c"})
	if !ok || v != 42 {
		t.Fatalf("expected 42, got v=%v ok=%v", v, ok)
	}
	if _, ok := Get(root, []string{"a", "x"}); ok {
		t.Fatalf("expected miss for absent key")
	}
	if _, ok := Get(root, []string{"a", "b", "c", "d"}); ok {
		t.Fatalf("expected miss when walking through a scalar")
	}
}

func TestEnsureParents_CreatesAndReportsConflicts(t *testing.T) {
	root := map[string]any{}
	m, conflict := EnsureParents(root, []string{"a", "b"})
	if conflict != -1 {
		t.Fatalf("unexpected conflict at %d", conflict)
	}
	m["c"] = 1
	if v, ok := Get(root, []string{"a", "b", "c"}); !ok || v != 1 {
		t.Fatalf("expected created chain to hold value, got v=%v ok=%v", v, ok)
	}

	root = map[string]any{"a": "scalar"}
	if _, conflict = EnsureParents(root, []string{"a", "b"}); conflict != 0 {
		t.Fatalf("expected conflict at segment 0, got %d", conflict)
	}

	// nil intermediates are replaced, not descended into
	root = map[string]any{"a": nil}
	if _, conflict = EnsureParents(root, []string{"a"}); conflict != -1 {
		t.Fatalf("expected nil to be replaced, got conflict %d", conflict)
	}
}

func TestDeepCopy_DoesNotAlias(t *testing.T) {
	src := map[string]any{
		"m": map[string]any{"k": []any{1, 2}},
		"b": []byte("xy"),
	}
	cp := DeepCopy(src).(map[string]any)
	if !reflect.DeepEqual(cp, src) {
		t.Fatalf("copy differs: %v vs %v", cp, src)
	}
	cp["m"].(map[string]any)["k"].([]any)[0] = 99
	if src["m"].(map[string]any)["k"].([]any)[0] != 1 {
		t.Fatalf("copy aliases source slice")
	}
	cp["b"].([]byte)[0] = 'z'
	if src["b"].([]byte)[0] != 'x' {
		t.Fatalf("copy aliases source bytes")
	}
}
