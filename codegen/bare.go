// Copyright (c) 2025 rivet-dev
// SPDX-License-Identifier: Apache-2.0
// This file is part of the vbare library.

package codegen

import "github.com/rivet-dev/vbare/codegen/bareschema"

// BareProcessor returns the built-in BARE schema processor: it reads a
// schema file, invokes the bareschema generator, and returns the
// pretty-printed Go source.
func BareProcessor(cfg bareschema.Config) Processor {
	return func(path string) (string, error) {
		return bareschema.Generate(path, cfg)
	}
}
