// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package axis defines the Axis type shared by every distance and
// scattering-vector grid in the histogram and debye packages.
package axis

import "github.com/cpmech/gosl/chk"

// Axis is a half-open interval [Min, Max) split into Bins equal-width bins.
// Both the distance axis (d_axis) and the scattering-vector axis (q_axis)
// are represented by this type; which one a given Axis plays is determined
// entirely by the caller's context.
type Axis struct {
	Min  float64
	Max  float64
	Bins int
}

// New returns an Axis spanning [min, max) with the given number of bins.
func New(min, max float64, bins int) Axis {
	if bins <= 0 {
		chk.Panic("axis: bins must be positive, got %d", bins)
	}
	if max <= min {
		chk.Panic("axis: max (%v) must be greater than min (%v)", max, min)
	}
	return Axis{Min: min, Max: max, Bins: bins}
}

// Width returns the bin width Δ.
func (a Axis) Width() float64 {
	return (a.Max - a.Min) / float64(a.Bins)
}

// Bin returns the bin index containing distance d, using floor rounding:
// values exactly on a bin edge fall into the bin above. Values below Min
// or at/above Max are reported with Bin returning -1 or Bins respectively
// so callers can decide whether to discard or saturate.
func (a Axis) Bin(d float64) int {
	if d < a.Min {
		return -1
	}
	k := int((d - a.Min) / a.Width())
	if k >= a.Bins {
		return a.Bins
	}
	return k
}

// Center returns the nominal center of bin k.
func (a Axis) Center(k int) float64 {
	return a.Min + (float64(k)+0.5)*a.Width()
}

// Values returns the nominal center of every bin, used to build sinc
// tables and as the default q-grid for a ScatteringProfile.
func (a Axis) Values() []float64 {
	vals := make([]float64, a.Bins)
	for k := range vals {
		vals[k] = a.Center(k)
	}
	return vals
}

// SubAxis returns the axis covering [lo, hi] within a, used to restrict the
// debye transform to [qmin, qmax].
func (a Axis) SubAxis(lo, hi float64) Axis {
	k0 := a.Bin(lo)
	if k0 < 0 {
		k0 = 0
	}
	k1 := a.Bin(hi)
	if k1 >= a.Bins || k1 < 0 {
		k1 = a.Bins - 1
	}
	bins := k1 - k0 + 1
	if bins < 1 {
		bins = 1
	}
	return Axis{Min: a.Min + float64(k0)*a.Width(), Max: a.Min + float64(k0+bins)*a.Width(), Bins: bins}
}
