// Copyright (c) 2025 rivet-dev
// SPDX-License-Identifier: Apache-2.0
// This file is part of the vbare library.

package codegen

import "fmt"

// DriverOption configures diagnostics on a Driver, mirroring the engine's
// functional-option pattern (see ../options.go).
type DriverOption func(*driverOptions)

type driverOptions struct {
	verbose bool
	logCb   func(format string, args ...any)
}

// WithVerbose enables per-file diagnostics during Process/ProcessForBuild.
func WithVerbose() DriverOption {
	return func(o *driverOptions) {
		o.verbose = true
		if o.logCb == nil {
			o.logCb = func(format string, args ...any) {
				fmt.Printf(format, args...)
			}
		}
	}
}

// WithLogCb overrides the diagnostic sink used when verbose logging is
// enabled. It has no effect unless WithVerbose is also supplied.
func WithLogCb(logCb func(format string, args ...any)) DriverOption {
	return func(o *driverOptions) {
		o.logCb = logCb
	}
}
