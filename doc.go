package strukt

// Package strukt provides:
//
// - Structural validation of nested key-value documents against declared kinds
// - A stable violation model (dotted path, code, message) collected or fail-fast
// - Required paths, default values and field validators addressed by dotted
//   paths, with $type wildcard segments fanning out across mapping keys
// - Kind declarations loadable from YAML/JSON via kindfile/
//
// Design policy:
// - Keep only public APIs in the root package; put traversal detail under internal/.
// - Place the builder DSL under dsl/, reusable validators under rule/, and the
//   CLI under cmd/strukt.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	k := dsl.Kind("person").
//		Field("name", dsl.String()).
//		Field("age", dsl.Int()).
//		Require("name").
//		Default("age", 0).
//		MustBuild()
//
//	err := k.Validate(ctx, doc)
//	vm := k.ValidateAll(ctx, doc)
