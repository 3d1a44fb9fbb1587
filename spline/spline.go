// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package spline implements a natural cubic spline, used to resample a
// model's debye_transform onto an experimental q-grid when the two
// differ. See DESIGN.md for why this is a from-scratch numerical-methods
// implementation rather than a wrapped library call.
package spline

import "github.com/cpmech/gosl/chk"

// Natural is a natural cubic spline: zero second derivative at both
// endpoints.
type Natural struct {
	x, y []float64
	m    []float64 // second derivatives at each knot
}

// NewNatural builds the spline from control points (x,y), requiring x to
// be strictly increasing and at least two points.
func NewNatural(x, y []float64) *Natural {
	n := len(x)
	if n != len(y) {
		chk.Panic("spline.NewNatural: x and y length mismatch: %d != %d", n, len(y))
	}
	if n < 2 {
		chk.Panic("spline.NewNatural: need at least two points, got %d", n)
	}
	for i := 1; i < n; i++ {
		if x[i] <= x[i-1] {
			chk.Panic("spline.NewNatural: x must be strictly increasing at index %d", i)
		}
	}

	s := &Natural{x: append([]float64(nil), x...), y: append([]float64(nil), y...)}
	s.m = solveSecondDerivatives(x, y)
	return s
}

// solveSecondDerivatives solves the standard tridiagonal system for a
// natural cubic spline's second derivatives at each knot.
func solveSecondDerivatives(x, y []float64) []float64 {
	n := len(x)
	h := make([]float64, n-1)
	for i := range h {
		h[i] = x[i+1] - x[i]
	}

	// Tridiagonal system A*m = rhs, natural boundary m[0]=m[n-1]=0.
	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	rhs := make([]float64, n)
	b[0], b[n-1] = 1, 1
	for i := 1; i < n-1; i++ {
		a[i] = h[i-1]
		b[i] = 2 * (h[i-1] + h[i])
		c[i] = h[i]
		rhs[i] = 6 * ((y[i+1]-y[i])/h[i] - (y[i]-y[i-1])/h[i-1])
	}

	// Thomas algorithm.
	cp := make([]float64, n)
	dp := make([]float64, n)
	cp[0] = c[0] / b[0]
	dp[0] = rhs[0] / b[0]
	for i := 1; i < n; i++ {
		denom := b[i] - a[i]*cp[i-1]
		if i < n-1 {
			cp[i] = c[i] / denom
		}
		dp[i] = (rhs[i] - a[i]*dp[i-1]) / denom
	}
	m := make([]float64, n)
	m[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		m[i] = dp[i] - cp[i]*m[i+1]
	}
	return m
}

// Eval evaluates the spline at x, clamping to the nearest endpoint
// segment when x falls outside the control points' range.
func (s *Natural) Eval(xv float64) float64 {
	n := len(s.x)
	k := s.segment(xv)
	h := s.x[k+1] - s.x[k]
	t := xv - s.x[k]

	a := s.y[k]
	b := (s.y[k+1]-s.y[k])/h - h*(2*s.m[k]+s.m[k+1])/6
	c := s.m[k] / 2
	d := (s.m[k+1] - s.m[k]) / (6 * h)
	_ = n
	return a + t*(b+t*(c+t*d))
}

// segment returns the index k such that x[k] <= xv <= x[k+1], clamped at
// the boundaries.
func (s *Natural) segment(xv float64) int {
	n := len(s.x)
	if xv <= s.x[0] {
		return 0
	}
	if xv >= s.x[n-1] {
		return n - 2
	}
	lo, hi := 0, n-2
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.x[mid] <= xv {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Resample evaluates s at every point in xs.
func (s *Natural) Resample(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = s.Eval(x)
	}
	return out
}
