// Copyright (c) 2025 rivet-dev
// SPDX-License-Identifier: Apache-2.0
// This file is part of the vbare library.

package bareschema

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/casbin/govaluate"
	"golang.org/x/tools/imports"
	"gopkg.in/yaml.v3"
)

// Generate reads the YAML schema document at path, evaluates any
// default_expr constants with govaluate, renders the resulting Go struct
// and zero-value constructor, and returns gofmt-and-import-sorted source
// text via golang.org/x/tools/imports.
func Generate(path string, cfg Config) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("bareschema: read %s: %w", path, err)
	}

	var spec Spec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return "", fmt.Errorf("bareschema: parse %s: %w", path, err)
	}
	if spec.Name == "" {
		return "", fmt.Errorf("bareschema: %s: schema has no name", path)
	}
	if spec.Package == "" {
		spec.Package = "generated"
	}

	src, err := render(path, spec, cfg)
	if err != nil {
		return "", err
	}

	formatted, err := imports.Process(path+"_generated.go", []byte(src), nil)
	if err != nil {
		return "", fmt.Errorf("bareschema: format %s: %w", path, err)
	}
	return string(formatted), nil
}

func render(path string, spec Spec, cfg Config) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "package %s\n\n", spec.Package)
	fmt.Fprintf(&b, "// %s is generated from schema file %q.\n", spec.Name, path)
	fmt.Fprintf(&b, "type %s struct {\n", spec.Name)
	for _, f := range spec.Fields {
		if cfg.UseHashableMap && strings.HasPrefix(f.Type, "map[") {
			fmt.Fprintf(&b, "\t// key type is required to be hashable (use_hashable_map requested)\n")
		}
		fmt.Fprintf(&b, "\t%s %s\n", f.Name, f.Type)
	}
	b.WriteString("}\n\n")

	defaults := make(map[string]string, len(spec.Fields))
	for _, f := range spec.Fields {
		if f.DefaultExpr == "" {
			continue
		}
		lit, err := evaluateDefault(f.DefaultExpr)
		if err != nil {
			return "", fmt.Errorf("bareschema: %s: field %s: %w", path, f.Name, err)
		}
		defaults[f.Name] = lit
	}

	fmt.Fprintf(&b, "// New%s returns a %s populated with this schema's declared\n", spec.Name, spec.Name)
	fmt.Fprintf(&b, "// default values; fields without a default_expr keep their Go zero value.\n")
	fmt.Fprintf(&b, "func New%s() %s {\n", spec.Name, spec.Name)
	if len(defaults) == 0 {
		fmt.Fprintf(&b, "\treturn %s{}\n", spec.Name)
	} else {
		fmt.Fprintf(&b, "\treturn %s{\n", spec.Name)
		for _, f := range spec.Fields {
			if lit, ok := defaults[f.Name]; ok {
				fmt.Fprintf(&b, "\t\t%s: %s,\n", f.Name, lit)
			}
		}
		b.WriteString("\t}\n")
	}
	b.WriteString("}\n")

	return b.String(), nil
}

// evaluateDefault evaluates a constant govaluate expression (no
// variables) and renders its result as a Go literal.
func evaluateDefault(expr string) (string, error) {
	parsed, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return "", fmt.Errorf("parsing default_expr: %w", err)
	}
	result, err := parsed.Evaluate(nil)
	if err != nil {
		return "", fmt.Errorf("evaluating default_expr: %w", err)
	}

	switch v := result.(type) {
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), nil
		}
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case string:
		return strconv.Quote(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("default_expr %q evaluated to unsupported type %T", expr, result)
	}
}
