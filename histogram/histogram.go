// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package histogram implements the fixed-shape distance-distribution
// containers accumulated by the partial histogram engine: a plain 1D
// count-by-distance-bin distribution, 2D (form-factor type × bin) and 3D
// (form-factor pair × bin) variants, and a weighted counterpart of each
// that additionally tracks the true mean distance contributing to a bin
// so bin centers can be refined rather than taken at the nominal value.
package histogram

import "github.com/cpmech/gosl/chk"

// Dist1D is a distance distribution indexed by bin alone.
type Dist1D struct {
	Bins int
	Data []float64
}

// NewDist1D allocates a zero-filled distribution with the given bin count.
func NewDist1D(bins int) Dist1D {
	return Dist1D{Bins: bins, Data: make([]float64, bins)}
}

// Add accumulates v into bin. Index bounds are only checked in callers
// that can afford it; the engine is expected to have validated bin
// against the axis already.
func (d *Dist1D) Add(bin int, v float64) { d.Data[bin] += v }

// At returns the value at bin.
func (d Dist1D) At(bin int) float64 { return d.Data[bin] }

// Combine returns the elementwise sum of two same-shaped distributions.
func (d Dist1D) Combine(o Dist1D) Dist1D {
	if d.Bins != o.Bins {
		chk.Panic("cannot combine distributions of different shape: %d != %d", d.Bins, o.Bins)
	}
	r := NewDist1D(d.Bins)
	for k := range r.Data {
		r.Data[k] = d.Data[k] + o.Data[k]
	}
	return r
}

// CombineInPlace is the += operator: d += o.
func (d *Dist1D) CombineInPlace(o Dist1D) {
	if d.Bins != o.Bins {
		chk.Panic("cannot combine distributions of different shape: %d != %d", d.Bins, o.Bins)
	}
	for k := range d.Data {
		d.Data[k] += o.Data[k]
	}
}

// SubInPlace is the -= operator: d -= o.
func (d *Dist1D) SubInPlace(o Dist1D) {
	if d.Bins != o.Bins {
		chk.Panic("cannot subtract distributions of different shape: %d != %d", d.Bins, o.Bins)
	}
	for k := range d.Data {
		d.Data[k] -= o.Data[k]
	}
}

// Resize grows or shrinks the bin count, preserving contents up to
// min(old,new) and zero-filling any extension.
func (d *Dist1D) Resize(newBins int) {
	nd := make([]float64, newBins)
	copy(nd, d.Data)
	d.Bins = newBins
	d.Data = nd
}

// MergeDist1D sums K thread-local partials into one, consuming the input
// slice (zeroing each entry's backing array as it is folded in) so the
// caller never needs all K copies live in memory at once.
func MergeDist1D(parts []Dist1D) Dist1D {
	if len(parts) == 0 {
		return Dist1D{}
	}
	out := NewDist1D(parts[0].Bins)
	for i := range parts {
		out.CombineInPlace(parts[i])
		parts[i].Data = nil
	}
	return out
}

// Dist2D is a distance distribution indexed by (form-factor index, bin),
// stored row-major so Row(ffi) returns a contiguous slice for the Debye
// transform's per-type inner loop.
type Dist2D struct {
	NFF, Bins int
	Data      []float64
}

func NewDist2D(nff, bins int) Dist2D {
	return Dist2D{NFF: nff, Bins: bins, Data: make([]float64, nff*bins)}
}

func (d *Dist2D) Add(ffi, bin int, v float64) { d.Data[ffi*d.Bins+bin] += v }

func (d Dist2D) At(ffi, bin int) float64 { return d.Data[ffi*d.Bins+bin] }

// Row returns the contiguous bin slice for a fixed form-factor index.
func (d Dist2D) Row(ffi int) []float64 { return d.Data[ffi*d.Bins : (ffi+1)*d.Bins] }

func (d Dist2D) Combine(o Dist2D) Dist2D {
	if d.NFF != o.NFF || d.Bins != o.Bins {
		chk.Panic("cannot combine distributions of different shape")
	}
	r := NewDist2D(d.NFF, d.Bins)
	for k := range r.Data {
		r.Data[k] = d.Data[k] + o.Data[k]
	}
	return r
}

func (d *Dist2D) CombineInPlace(o Dist2D) {
	if d.NFF != o.NFF || d.Bins != o.Bins {
		chk.Panic("cannot combine distributions of different shape")
	}
	for k := range d.Data {
		d.Data[k] += o.Data[k]
	}
}

func (d *Dist2D) SubInPlace(o Dist2D) {
	if d.NFF != o.NFF || d.Bins != o.Bins {
		chk.Panic("cannot subtract distributions of different shape")
	}
	for k := range d.Data {
		d.Data[k] -= o.Data[k]
	}
}

func (d *Dist2D) Resize(newBins int) {
	nd := make([]float64, d.NFF*newBins)
	for ffi := 0; ffi < d.NFF; ffi++ {
		n := newBins
		if d.Bins < n {
			n = d.Bins
		}
		copy(nd[ffi*newBins:ffi*newBins+n], d.Data[ffi*d.Bins:ffi*d.Bins+n])
	}
	d.Bins = newBins
	d.Data = nd
}

func MergeDist2D(parts []Dist2D) Dist2D {
	if len(parts) == 0 {
		return Dist2D{}
	}
	out := NewDist2D(parts[0].NFF, parts[0].Bins)
	for i := range parts {
		out.CombineInPlace(parts[i])
		parts[i].Data = nil
	}
	return out
}

// Dist3D is a distance distribution indexed by (ffi, ffj, bin), stored
// row-major over the (ffi, ffj) plane so Row(ffi, ffj) returns a
// contiguous bin slice.
type Dist3D struct {
	NFF, Bins int
	Data      []float64
}

func NewDist3D(nff, bins int) Dist3D {
	return Dist3D{NFF: nff, Bins: bins, Data: make([]float64, nff*nff*bins)}
}

func (d *Dist3D) Add(ffi, ffj, bin int, v float64) {
	d.Data[(ffi*d.NFF+ffj)*d.Bins+bin] += v
}

func (d Dist3D) At(ffi, ffj, bin int) float64 { return d.Data[(ffi*d.NFF+ffj)*d.Bins+bin] }

func (d Dist3D) Row(ffi, ffj int) []float64 {
	start := (ffi*d.NFF + ffj) * d.Bins
	return d.Data[start : start+d.Bins]
}

func (d Dist3D) Combine(o Dist3D) Dist3D {
	if d.NFF != o.NFF || d.Bins != o.Bins {
		chk.Panic("cannot combine distributions of different shape")
	}
	r := NewDist3D(d.NFF, d.Bins)
	for k := range r.Data {
		r.Data[k] = d.Data[k] + o.Data[k]
	}
	return r
}

func (d *Dist3D) CombineInPlace(o Dist3D) {
	if d.NFF != o.NFF || d.Bins != o.Bins {
		chk.Panic("cannot combine distributions of different shape")
	}
	for k := range d.Data {
		d.Data[k] += o.Data[k]
	}
}

func (d *Dist3D) SubInPlace(o Dist3D) {
	if d.NFF != o.NFF || d.Bins != o.Bins {
		chk.Panic("cannot subtract distributions of different shape")
	}
	for k := range d.Data {
		d.Data[k] -= o.Data[k]
	}
}

func (d *Dist3D) Resize(newBins int) {
	nd := make([]float64, d.NFF*d.NFF*newBins)
	n := newBins
	if d.Bins < n {
		n = d.Bins
	}
	for ffi := 0; ffi < d.NFF; ffi++ {
		for ffj := 0; ffj < d.NFF; ffj++ {
			oldStart := (ffi*d.NFF + ffj) * d.Bins
			newStart := (ffi*d.NFF + ffj) * newBins
			copy(nd[newStart:newStart+n], d.Data[oldStart:oldStart+n])
		}
	}
	d.Bins = newBins
	d.Data = nd
}

func MergeDist3D(parts []Dist3D) Dist3D {
	if len(parts) == 0 {
		return Dist3D{}
	}
	out := NewDist3D(parts[0].NFF, parts[0].Bins)
	for i := range parts {
		out.CombineInPlace(parts[i])
		parts[i].Data = nil
	}
	return out
}

// WeightedDist1D additionally tracks, per bin, the weight-weighted sum of
// the true contributing distances, so the bin's mean distance can be
// recovered instead of relying on the nominal bin center.
type WeightedDist1D struct {
	Dist1D
	Sum []float64
}

func NewWeightedDist1D(bins int) WeightedDist1D {
	return WeightedDist1D{Dist1D: NewDist1D(bins), Sum: make([]float64, bins)}
}

// AddWeighted adds v (the already factor-scaled weight) into bin, and
// distance*v into the bin's running distance sum.
func (d *WeightedDist1D) AddWeighted(bin int, v, distance float64) {
	d.Data[bin] += v
	d.Sum[bin] += v * distance
}

// MeanDistance returns the true mean distance of bin's contributions, or
// fallback if the bin received no weight.
func (d WeightedDist1D) MeanDistance(bin int, fallback float64) float64 {
	if d.Data[bin] == 0 {
		return fallback
	}
	return d.Sum[bin] / d.Data[bin]
}

func (d *WeightedDist1D) Resize(newBins int) {
	d.Dist1D.Resize(newBins)
	nd := make([]float64, newBins)
	copy(nd, d.Sum)
	d.Sum = nd
}

func (d *WeightedDist1D) CombineInPlace(o WeightedDist1D) {
	d.Dist1D.CombineInPlace(o.Dist1D)
	for k := range d.Sum {
		d.Sum[k] += o.Sum[k]
	}
}

func MergeWeightedDist1D(parts []WeightedDist1D) WeightedDist1D {
	if len(parts) == 0 {
		return WeightedDist1D{}
	}
	out := NewWeightedDist1D(parts[0].Bins)
	for i := range parts {
		out.CombineInPlace(parts[i])
		parts[i].Data = nil
		parts[i].Sum = nil
	}
	return out
}
