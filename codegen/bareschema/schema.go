// Copyright (c) 2025 rivet-dev
// SPDX-License-Identifier: Apache-2.0
// This file is part of the vbare library.

// Package bareschema is a deliberately small BARE-flavored schema
// generator. It reads a single YAML document describing one schema
// version's fields and produces the Go struct that version's
// VersionedData variant wraps.
//
// This is not an attempt at a general schema DSL; it exists so the
// codegen driver (package codegen) has a real, runnable collaborator to
// invoke.
package bareschema

// FieldSpec describes one struct field of a generated schema version.
type FieldSpec struct {
	// Name is the exported Go field name.
	Name string `yaml:"name"`
	// Type is a Go type expression used verbatim (e.g. "uint32",
	// "string", "[]string", "map[string]uint64").
	Type string `yaml:"type"`
	// DefaultExpr, if set, is a govaluate expression evaluated at
	// generation time (with no variables) whose result seeds this
	// field in the generated zero-value constructor. Left empty, the
	// field keeps Go's implicit zero value.
	DefaultExpr string `yaml:"default_expr,omitempty"`
}

// Spec is the top-level schema document for one version file.
type Spec struct {
	// Package is the Go package name emitted at the top of the
	// generated file.
	Package string `yaml:"package"`
	// Name is the exported Go type name for this schema version.
	Name string `yaml:"name"`
	// Fields lists the struct's fields, in declaration order.
	Fields []FieldSpec `yaml:"fields"`
}

// Config is forwarded from the codegen driver's BARE processor.
type Config struct {
	// UseHashableMap requests that map-typed fields note in a comment
	// that their key type must be hashable. Go's map[K]V already
	// requires K to be comparable, so this flag changes no generated
	// code shape; that comment line is its only effect on the output.
	UseHashableMap bool
}
