// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "github.com/AUSAXS/AUSAXS-sub003/histogram"

// Partials is the fully resolved set of partial distributions a
// PartialHistogramEngine maintains: self and cross atom-atom (ff-resolved),
// atom-water (ff-resolved on the atom side), water-water (not ff-resolved,
// since hydration carries a single form-factor type), and the collapsed
// distance-only running total. A snapshot returned to a caller holds
// independent copies, decoupled from the engine's own lifetime.
type Partials struct {
	SelfAA  []histogram.Dist3D         // per body
	CrossAA map[[2]int]histogram.Dist3D // key {b1,b2}, b1<b2
	CrossAW []histogram.Dist2D         // per body, vs hydration
	SelfWW  histogram.Dist1D
	// SelfWWWeighted carries self_ww's true mean-distance-per-bin data,
	// present (Bins > 0) only when the engine was configured with
	// UseWeightedBins.
	SelfWWWeighted histogram.WeightedDist1D
	Total1D        histogram.Dist1D
	NBodies        int
}

func cloneDist1D(d histogram.Dist1D) histogram.Dist1D {
	return histogram.NewDist1D(d.Bins).Combine(d)
}

func cloneDist2D(d histogram.Dist2D) histogram.Dist2D {
	return histogram.NewDist2D(d.NFF, d.Bins).Combine(d)
}

func cloneDist3D(d histogram.Dist3D) histogram.Dist3D {
	return histogram.NewDist3D(d.NFF, d.Bins).Combine(d)
}

func cloneWeightedDist1D(d histogram.WeightedDist1D) histogram.WeightedDist1D {
	if d.Bins == 0 {
		return histogram.WeightedDist1D{}
	}
	out := histogram.NewWeightedDist1D(d.Bins)
	out.CombineInPlace(d)
	return out
}

// snapshot deep-copies the engine's live partials into a caller-owned Partials.
func (e *PartialHistogramEngine) snapshot() Partials {
	out := Partials{
		SelfAA:         make([]histogram.Dist3D, len(e.selfAA)),
		CrossAA:        make(map[[2]int]histogram.Dist3D, len(e.crossAA)),
		CrossAW:        make([]histogram.Dist2D, len(e.crossAW)),
		SelfWW:         cloneDist1D(e.selfWW),
		SelfWWWeighted: cloneWeightedDist1D(e.selfWWWeighted),
		Total1D:        cloneDist1D(e.total1D),
		NBodies:        len(e.selfAA),
	}
	for i, d := range e.selfAA {
		out.SelfAA[i] = cloneDist3D(d)
	}
	for i, d := range e.crossAW {
		out.CrossAW[i] = cloneDist2D(d)
	}
	for k, d := range e.crossAA {
		out.CrossAA[k] = cloneDist3D(d)
	}
	return out
}

func collapse3Dto1D(d histogram.Dist3D) histogram.Dist1D {
	out := histogram.NewDist1D(d.Bins)
	for ffi := 0; ffi < d.NFF; ffi++ {
		for ffj := 0; ffj < d.NFF; ffj++ {
			row := d.Row(ffi, ffj)
			for bin, v := range row {
				out.Data[bin] += v
			}
		}
	}
	return out
}

func collapse2Dto1D(d histogram.Dist2D) histogram.Dist1D {
	out := histogram.NewDist1D(d.Bins)
	for ffi := 0; ffi < d.NFF; ffi++ {
		row := d.Row(ffi)
		for bin, v := range row {
			out.Data[bin] += v
		}
	}
	return out
}

func crossKey(b1, b2 int) [2]int {
	if b1 < b2 {
		return [2]int{b1, b2}
	}
	return [2]int{b2, b1}
}
