// Copyright (c) 2025 rivet-dev
// SPDX-License-Identifier: Apache-2.0
// This file is part of the vbare library.

// Command vbare-gen is a thin build-script-style wrapper around the BARE
// codegen driver, meant to be invoked from a go:generate directive.
//
// Usage:
//
//	OUT_DIR=./internal/generated vbare-gen [-hashable-map] <schema-dir>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rivet-dev/vbare/codegen"
	"github.com/rivet-dev/vbare/codegen/bareschema"
)

func main() {
	hashableMap := flag.Bool("hashable-map", false, "forward use_hashable_map to the schema generator")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: vbare-gen [-hashable-map] <schema-dir>")
		os.Exit(2)
	}
	schemaDir := flag.Arg(0)

	processor := codegen.BareProcessor(bareschema.Config{UseHashableMap: *hashableMap})

	driver := codegen.NewDriver(codegen.WithVerbose())
	if _, err := driver.ProcessForBuild(schemaDir, processor); err != nil {
		log.Fatalf("vbare-gen: %v", err)
	}
}
