// Copyright (c) 2025 rivet-dev
// SPDX-License-Identifier: Apache-2.0
// This file is part of the vbare library.

// Package codegen implements the schema codegen driver: given a directory
// of schema source files and a pluggable per-file processor, it emits one
// generated Go source artifact per schema file plus a combined aggregator
// artifact referencing each of them.
//
// The driver itself knows nothing about schema grammar; that is the
// processor's job (see the bareschema subpackage for this module's
// concrete built-in processor). The driver only owns directory
// enumeration, naming, and aggregation.
package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rivet-dev/vbare/vbareutils"
)

const generatedExt = "go"

// Processor turns one schema source file into the textual content of its
// generated Go artifact.
type Processor func(path string) (string, error)

// Driver runs the codegen pipeline. The zero value is usable; NewDriver
// exists only to attach diagnostic options.
type Driver struct {
	opts driverOptions
}

// NewDriver constructs a Driver with the given options applied.
func NewDriver(opts ...DriverOption) *Driver {
	d := &Driver{}
	for _, opt := range opts {
		opt(&d.opts)
	}
	return d
}

func (d *Driver) logf(format string, args ...any) {
	if d.opts.verbose && d.opts.logCb != nil {
		d.opts.logCb(format+"\n", args...)
	}
}

// Process enumerates the immediate entries of schemaDir (skipping
// subdirectories), runs processor over each file, writes
// outDir/{bareName}_generated.go for each, and finally writes
// outDir/combined_imports.go referencing every discovered schema name
// exactly once. It returns the discovered names in discovery order.
//
// Any I/O, UTF-8, or processor error aborts processing immediately;
// partial output already written to outDir is the caller's
// responsibility to clean up.
func (d *Driver) Process(schemaDir, outDir string, processor Processor) ([]string, error) {
	entries, err := os.ReadDir(schemaDir)
	if err != nil {
		return nil, &vbareutils.DriverIoError{Path: schemaDir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(schemaDir, entry.Name())
		bareName, err := bareName(entry.Name())
		if err != nil {
			return nil, err
		}

		content, err := processor(path)
		if err != nil {
			return nil, &vbareutils.DriverIoError{Path: path, Err: err}
		}

		outPath := filepath.Join(outDir, bareName+"_generated."+generatedExt)
		if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
			return nil, &vbareutils.DriverIoError{Path: outPath, Err: err}
		}

		names = append(names, bareName)
		d.logf("codegen: wrote %s", outPath)
	}

	if err := writeCombinedImports(outDir, names); err != nil {
		return nil, err
	}
	d.logf("codegen: wrote %s (%d schemas)", filepath.Join(outDir, "combined_imports."+generatedExt), len(names))

	return names, nil
}

// ProcessForBuild reads OUT_DIR from the environment, emits a
// rerun-if-changed signal for schemaDir on stdout, and delegates to
// Process.
func (d *Driver) ProcessForBuild(schemaDir string, processor Processor) ([]string, error) {
	outDir := os.Getenv("OUT_DIR")
	if outDir == "" {
		return nil, fmt.Errorf("codegen driver: OUT_DIR is not set")
	}

	fmt.Printf("rerun-if-changed=%s\n", schemaDir)

	return d.Process(schemaDir, outDir, processor)
}

// bareName computes the portion of fileName before its final '.',
// rejecting names with no extension or invalid UTF-8.
func bareName(fileName string) (string, error) {
	if !utf8.ValidString(fileName) {
		return "", &vbareutils.DriverNameError{Path: fileName}
	}
	idx := strings.LastIndex(fileName, ".")
	if idx <= 0 {
		return "", &vbareutils.DriverNameError{Path: fileName}
	}
	return fileName[:idx], nil
}

// writeCombinedImports writes the aggregator artifact: a package-level
// registry naming each discovered schema exactly once, in discovery order.
func writeCombinedImports(outDir string, names []string) error {
	var b strings.Builder
	b.WriteString("// Code generated by the vbare schema codegen driver. DO NOT EDIT.\n\n")
	b.WriteString("package generated\n\n")
	b.WriteString("// SchemaNames enumerates every schema discovered in the source\n")
	b.WriteString("// directory, in discovery order. Each entry names the generated\n")
	b.WriteString("// artifact \"{name}_generated.go\" holds the types for.\n")
	b.WriteString("var SchemaNames = []string{\n")
	for _, name := range names {
		fmt.Fprintf(&b, "\t%q,\n", name)
	}
	b.WriteString("}\n")

	outPath := filepath.Join(outDir, "combined_imports."+generatedExt)
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return &vbareutils.DriverIoError{Path: outPath, Err: err}
	}
	return nil
}
