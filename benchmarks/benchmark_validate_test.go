package strukt_test

import (
	"context"
	"fmt"
	"testing"

	strukt "github.com/reoring/strukt"
	d "github.com/reoring/strukt/dsl"
)

// ---- Helpers ----

func serverKind(tb testing.TB) *strukt.Kind {
	tb.Helper()
	k, err := d.Kind("server").
		Field("name", d.String()).
		Field("port", d.Int()).
		Field("tier", d.String()).
		Require("name").
		Default("tier", "free").
		Validate("port", strukt.Predicate(func(v any) bool {
			n, ok := v.(int)
			return ok && n > 0 && n < 65536
		})).
		Build()
	if err != nil {
		tb.Fatalf("kind build failed: %v", err)
	}
	return k
}

func fleetKind(tb testing.TB) *strukt.Kind {
	tb.Helper()
	k, err := d.Kind("fleet").
		Field("hosts", d.MapOf(strukt.String, d.Object().
			Field("addr", d.String()).
			Field("port", d.Int()).
			Build())).
		Require("hosts.$string.addr").
		Build()
	if err != nil {
		tb.Fatalf("kind build failed: %v", err)
	}
	return k
}

func cleanServerDoc() strukt.Document {
	return strukt.Document{"name": "edge-1", "port": 8080, "tier": "paid"}
}

func brokenServerDoc() strukt.Document {
	// one defect per stage: unknown key, missing required, failing validator
	return strukt.Document{"port": -1, "zone": "eu"}
}

func fleetDoc(hosts int) strukt.Document {
	m := make(map[string]any, hosts)
	for i := 0; i < hosts; i++ {
		m[fmt.Sprintf("host-%04d", i)] = map[string]any{
			"addr": fmt.Sprintf("10.0.0.%d", i%255),
			"port": 9000 + i,
		}
	}
	return strukt.Document{"hosts": m}
}

// ---- Micro benchmarks (small documents) ----

func Benchmark_Validate_Small_Clean(b *testing.B) {
	ctx := context.Background()
	k := serverKind(b)
	doc := cleanServerDoc()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := k.Validate(ctx, doc); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Validate_Small_Broken_FailFast(b *testing.B) {
	ctx := context.Background()
	k := serverKind(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		doc := brokenServerDoc()
		if err := k.Validate(ctx, doc, strukt.ValidateOpt{Mode: strukt.FailFast}); err == nil {
			b.Fatal("expected violations")
		}
	}
}

func Benchmark_Validate_Small_Broken_CollectAll(b *testing.B) {
	ctx := context.Background()
	k := serverKind(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		doc := brokenServerDoc()
		if err := k.Validate(ctx, doc, strukt.ValidateOpt{Mode: strukt.CollectAll}); err == nil {
			b.Fatal("expected violations")
		}
	}
}

func Benchmark_ApplyDefaults_Small(b *testing.B) {
	ctx := context.Background()
	k := serverKind(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		doc := strukt.Document{"name": "edge-1"}
		if vs := k.ApplyDefaults(ctx, doc); len(vs) != 0 {
			b.Fatal(vs)
		}
	}
}

// ---- Fan-out benchmarks (wildcard over many live keys) ----

func Benchmark_Validate_Wildcard_1kHosts(b *testing.B) {
	ctx := context.Background()
	k := fleetKind(b)
	doc := fleetDoc(1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := k.Validate(ctx, doc); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_ValidateAll_Wildcard_1kHosts(b *testing.B) {
	ctx := context.Background()
	k := fleetKind(b)
	doc := fleetDoc(1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if vm := k.ValidateAll(ctx, doc); vm.Len() != 0 {
			b.Fatal(vm)
		}
	}
}
