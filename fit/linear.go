// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import "github.com/cpmech/gosl/la"

// LinearFitter is the closed-form offset/scale fit nested inside
// SmartFitter: given a model curve and an experimental curve sharing a
// q-grid, it finds (a, b) minimizing Σ w_i (y_i - (a + b·model_i))²
// with w_i = 1/sigma_i².
type LinearFitter struct{}

// LinearResult is the outcome of a single LinearFitter.Fit call.
type LinearResult struct {
	A, B      float64
	Chi2      float64
	Dof       int
	Residuals []float64
	Status    int
}

// Fit solves the 2x2 weighted normal equations for (a, b). A near-
// singular system (model curve is everywhere constant, or data length
// under 3) is reported via Status != 0 rather than a returned error,
// since the hot fitting path never returns errors.
func (LinearFitter) Fit(y, model, sigma []float64) LinearResult {
	n := len(y)
	// A·[a,b]ᵀ = rhs, the normal equations of the weighted least-squares
	// fit of y against (1, model), A symmetric 2x2.
	A := la.MatAlloc(2, 2)
	var rhs0, rhs1 float64
	for i := 0; i < n; i++ {
		w := 1.0 / (sigma[i] * sigma[i])
		x := model[i]
		A[0][0] += w
		A[0][1] += w * x
		A[1][1] += w * x * x
		rhs0 += w * y[i]
		rhs1 += w * x * y[i]
	}
	A[1][0] = A[0][1]
	denom := A[0][0]*A[1][1] - A[0][1]*A[1][0]

	var a, b float64
	status := 0
	if denom == 0 || n < 3 {
		status = 1
		a, b = 0, 1
	} else {
		b = (A[0][0]*rhs1 - A[1][0]*rhs0) / denom
		a = (A[1][1]*rhs0 - A[0][1]*rhs1) / denom
	}

	residuals := make([]float64, n)
	chi2 := 0.0
	for i := 0; i < n; i++ {
		r := (y[i] - (a + b*model[i])) / sigma[i]
		residuals[i] = r
		chi2 += r * r
	}

	dof := n - 2
	if dof < 0 {
		dof = 0
	}
	return LinearResult{A: a, B: b, Chi2: chi2, Dof: dof, Residuals: residuals, Status: status}
}
