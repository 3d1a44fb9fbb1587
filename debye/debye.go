// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package debye implements the Debye transform: precomputed sinc(q·d)
// tables and the summation I(q) = Σ_d p(d)·sinc(q·d) that turns a
// distance distribution into a scattering intensity profile.
package debye

import (
	"math"

	"github.com/AUSAXS/AUSAXS-sub003/axis"
	"github.com/AUSAXS/AUSAXS-sub003/histogram"
)

// sinc returns sin(x)/x with the 0/0 limit set to 1.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}

// ArrayTable holds sinc(q·d) evaluated at every q in qs against every
// bin-centered distance of d, shared read-only across every histogram
// built on the same axes.
type ArrayTable struct {
	qs   []float64
	bins int
	data []float64 // row-major: q*bins + bin
}

// NewArrayTable precomputes sinc(q·d) for every q in qs and every bin
// center of d.
func NewArrayTable(qs []float64, d axis.Axis) *ArrayTable {
	t := &ArrayTable{qs: qs, bins: d.Bins, data: make([]float64, len(qs)*d.Bins)}
	for qi, q := range qs {
		for bin := 0; bin < d.Bins; bin++ {
			t.data[qi*d.Bins+bin] = sinc(q * d.Center(bin))
		}
	}
	return t
}

// At returns sinc(qs[qi]·center(bin)).
func (t *ArrayTable) At(qi, bin int) float64 { return t.data[qi*t.bins+bin] }

// VectorTable is the per-histogram counterpart of ArrayTable, built from
// a WeightedDist1D's true mean distances rather than nominal bin centers.
type VectorTable struct {
	qs   []float64
	bins int
	data []float64
}

// NewVectorTable precomputes sinc(q·meanDistance(bin)) for every q and
// bin, falling back to fallbackAxis's bin center when a bin received no
// weight.
func NewVectorTable(qs []float64, w histogram.WeightedDist1D, fallbackAxis axis.Axis) *VectorTable {
	t := &VectorTable{qs: qs, bins: w.Bins, data: make([]float64, len(qs)*w.Bins)}
	for qi, q := range qs {
		for bin := 0; bin < w.Bins; bin++ {
			mean := w.MeanDistance(bin, fallbackAxis.Center(bin))
			t.data[qi*w.Bins+bin] = sinc(q * mean)
		}
	}
	return t
}

func (t *VectorTable) At(qi, bin int) float64 { return t.data[qi*t.bins+bin] }

// sincTable is satisfied by both ArrayTable and VectorTable.
type sincTable interface {
	At(qi, bin int) float64
}

// Transform1D computes I(q) = Σ_d p[d]·sinc(q·d) for every q, using the
// given precomputed sinc table.
func Transform1D(p histogram.Dist1D, t sincTable, nq int) []float64 {
	out := make([]float64, nq)
	for qi := 0; qi < nq; qi++ {
		sum := 0.0
		for bin, v := range p.Data {
			if v == 0 {
				continue
			}
			sum += v * t.At(qi, bin)
		}
		out[qi] = sum
	}
	return out
}

// Transform2D computes, for every q, Σ_ff Σ_d p[ff][d]·sinc(q·d)·ff(q),
// where ffAtQ(ff, qi) supplies the precomputed single form-factor value
// (used for the atom-water channel, where only the atom side varies).
func Transform2D(p histogram.Dist2D, t sincTable, nq int, ffAtQ func(ff, qi int) float64) []float64 {
	out := make([]float64, nq)
	for qi := 0; qi < nq; qi++ {
		sum := 0.0
		for ffi := 0; ffi < p.NFF; ffi++ {
			f := ffAtQ(ffi, qi)
			if f == 0 {
				continue
			}
			row := p.Row(ffi)
			inner := 0.0
			for bin, v := range row {
				if v == 0 {
					continue
				}
				inner += v * t.At(qi, bin)
			}
			sum += f * inner
		}
		out[qi] = sum
	}
	return out
}

// Transform3D computes, for every q, Σ_ffi,ffj Σ_d p[ffi][ffj][d]·sinc(q·d)·f_i(q)·f_j(q),
// where productAtQ(ffi, ffj, qi) supplies the precomputed pairwise form-factor
// product (formfactor.ProductTable).
func Transform3D(p histogram.Dist3D, t sincTable, nq int, productAtQ func(ffi, ffj, qi int) float64) []float64 {
	out := make([]float64, nq)
	for qi := 0; qi < nq; qi++ {
		sum := 0.0
		for ffi := 0; ffi < p.NFF; ffi++ {
			for ffj := 0; ffj < p.NFF; ffj++ {
				prod := productAtQ(ffi, ffj, qi)
				if prod == 0 {
					continue
				}
				row := p.Row(ffi, ffj)
				inner := 0.0
				for bin, v := range row {
					if v == 0 {
						continue
					}
					inner += v * t.At(qi, bin)
				}
				sum += prod * inner
			}
		}
		out[qi] = sum
	}
	return out
}
