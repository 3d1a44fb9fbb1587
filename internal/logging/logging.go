// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package logging is a thin console wrapper over gosl/io's colored
// print helpers, used for the fitter's capability-downgrade warnings
// and other non-fatal diagnostics.
package logging

import "github.com/cpmech/gosl/io"

// Info prints a plain informational line.
func Info(format string, args ...interface{}) {
	io.Pf(format+"\n", args...)
}

// Warn prints a yellow warning line, used for capability downgrades and
// other recoverable conditions.
func Warn(format string, args ...interface{}) {
	io.PfYel("WARNING: "+format+"\n", args...)
}

// Error prints a red error line for fatal preconditions about to panic.
func Error(format string, args ...interface{}) {
	io.Pfred("ERROR: "+format+"\n", args...)
}
