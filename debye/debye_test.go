// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package debye

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/AUSAXS/AUSAXS-sub003/axis"
	"github.com/AUSAXS/AUSAXS-sub003/histogram"
)

func Test_debye01(tst *testing.T) {
	chk.PrintTitle("debye01 (sinc 0/0 limit and array table)")

	d := axis.New(0, 10, 10) // bin width 1
	qs := []float64{0, 0.5}
	tab := NewArrayTable(qs, d)
	chk.Scalar(tst, "sinc(0*0)=1", 1e-15, tab.At(0, 0), 1.0)
	want := math.Sin(0.5*d.Center(3)) / (0.5 * d.Center(3))
	chk.Scalar(tst, "sinc(q*d)", 1e-12, tab.At(1, 3), want)
}

func Test_debye02(tst *testing.T) {
	chk.PrintTitle("debye02 (transform1d at q=0 equals total weight)")

	d := axis.New(0, 10, 10)
	p := histogram.NewDist1D(10)
	p.Add(0, 2.0)
	p.Add(5, 3.0)
	qs := []float64{0}
	tab := NewArrayTable(qs, d)
	out := Transform1D(p, tab, 1)
	chk.Scalar(tst, "I(0) = sum p(d)", 1e-12, out[0], 5.0)
}

func Test_debye03(tst *testing.T) {
	chk.PrintTitle("debye03 (vector table mean-distance fallback)")

	d := axis.New(0, 10, 10)
	w := histogram.NewWeightedDist1D(10)
	qs := []float64{0.3}
	vt := NewVectorTable(qs, w, d)
	want := sinc(0.3 * d.Center(4))
	chk.Scalar(tst, "fallback to bin center", 1e-12, vt.At(0, 4), want)
}
