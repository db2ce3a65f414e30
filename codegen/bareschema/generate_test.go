// Copyright (c) 2025 rivet-dev
// SPDX-License-Identifier: Apache-2.0
// This file is part of the vbare library.

package bareschema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rivet-dev/vbare/codegen/bareschema"
)

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "v2.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write schema fixture: %v", err)
	}
	return path
}

func TestGenerateRendersStructAndDefaults(t *testing.T) {
	path := writeSchema(t, `
package: eventv2
name: EventV2
fields:
  - name: ID
    type: uint32
  - name: Description
    type: string
    default_expr: "\"default\""
  - name: Tags
    type: "[]string"
`)

	out, err := bareschema.Generate(path, bareschema.Config{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		"package eventv2",
		"type EventV2 struct",
		"ID          uint32",
		"Description string",
		"Tags        []string",
		"func NewEventV2() EventV2",
		`Description: "default",`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected generated source to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Tags:") {
		t.Fatalf("expected Tags to have no default (zero value), got:\n%s", out)
	}
}

func TestGenerateHashableMapComment(t *testing.T) {
	path := writeSchema(t, `
name: WithMap
fields:
  - name: Counts
    type: "map[string]uint64"
`)

	out, err := bareschema.Generate(path, bareschema.Config{UseHashableMap: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "key type is required to be hashable") {
		t.Fatalf("expected hashable-map comment, got:\n%s", out)
	}
}

func TestGenerateRequiresName(t *testing.T) {
	path := writeSchema(t, "package: foo\nfields: []\n")
	if _, err := bareschema.Generate(path, bareschema.Config{}); err == nil {
		t.Fatalf("expected an error when schema has no name")
	}
}

func TestGenerateRejectsBadDefaultExpr(t *testing.T) {
	path := writeSchema(t, `
name: Bad
fields:
  - name: Value
    type: uint32
    default_expr: "not a valid expr ((("
`)
	if _, err := bareschema.Generate(path, bareschema.Config{}); err == nil {
		t.Fatalf("expected an error for an invalid default_expr")
	}
}
