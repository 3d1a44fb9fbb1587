// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

// chi2At recomputes the weighted residual sum of squares for a trial
// (a, b), holding y, model and sigma fixed.
func chi2At(a, b float64, y, model, sigma []float64) float64 {
	var sum float64
	for i := range y {
		r := (y[i] - (a + b*model[i])) / sigma[i]
		sum += r * r
	}
	return sum
}

// Test_linear01 checks that LinearFitter's closed-form (a, b) is a
// stationary point of chi2(a, b) by comparing the analytic gradient
// (zero, by construction of the normal equations) against a central
// difference derivative.
func Test_linear01(tst *testing.T) {
	chk.PrintTitle("linear01 (closed-form optimum is a stationary point of chi2)")

	y := []float64{1.2, 2.1, 2.9, 4.3, 4.8, 6.1}
	model := []float64{1, 2, 3, 4, 5, 6}
	sigma := []float64{1, 1, 1, 1, 1, 1}

	r := LinearFitter{}.Fit(y, model, sigma)
	chk.IntAssert(r.Status, 0)

	tol := 1e-8
	verb := io.Verbose

	dA := num.DerivCen(func(x float64, args ...interface{}) (res float64) {
		return chi2At(x, r.B, y, model, sigma)
	}, r.A)
	chk.AnaNum(tst, io.Sf("dchi2/da"), tol, 0, dA, verb)

	dB := num.DerivCen(func(x float64, args ...interface{}) (res float64) {
		return chi2At(r.A, x, y, model, sigma)
	}, r.B)
	chk.AnaNum(tst, io.Sf("dchi2/db"), tol, 0, dB, verb)
}
