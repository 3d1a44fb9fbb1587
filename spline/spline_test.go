// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spline

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_spline01(tst *testing.T) {
	chk.PrintTitle("spline01 (interpolates control points exactly)")

	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 1, 4, 9, 16} // x^2 samples
	s := NewNatural(x, y)
	for i := range x {
		chk.Scalar(tst, "exact at knot", 1e-9, s.Eval(x[i]), y[i])
	}
}

func Test_spline02(tst *testing.T) {
	chk.PrintTitle("spline02 (linear data reproduced exactly between knots)")

	x := []float64{0, 1, 2, 3}
	y := []float64{0, 2, 4, 6}
	s := NewNatural(x, y)
	chk.Scalar(tst, "midpoint", 1e-9, s.Eval(1.5), 3.0)
}

func Test_spline03(tst *testing.T) {
	chk.PrintTitle("spline03 (resample matches individual eval)")

	x := []float64{0, 1, 2, 3}
	y := []float64{1, 3, 2, 5}
	s := NewNatural(x, y)
	qs := []float64{0.5, 1.2, 2.7}
	out := s.Resample(qs)
	for i, q := range qs {
		chk.Scalar(tst, "resample == eval", 1e-12, out[i], s.Eval(q))
	}
}
