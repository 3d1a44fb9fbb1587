// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kernel implements the pairwise distance-and-weight evaluator
// shared by every partial-histogram computation: given two CompactCoords
// arrays A and B and an index pair, it computes distance, weight, and
// (optionally) the form-factor-type pair for one, four, or eight b-side
// atoms at a time, batched for a vectorizing compiler.
package kernel

import (
	"math"

	"github.com/AUSAXS/AUSAXS-sub003/axis"
	"github.com/AUSAXS/AUSAXS-sub003/compact"
)

// Result1 is the outcome of evaluating a single pair.
type Result1 struct {
	Distance float64
	Weight   float64
	Bin      int
	FFi, FFj int
	Valid    bool // false if the distance fell outside the axis (discarded)
}

// Result4 and Result8 are the batched counterparts of Result1, one entry
// per b-side atom in the batch.
type Result4 struct {
	Distance [4]float64
	Weight   [4]float64
	Bin      [4]int
	FFj      [4]int
	Valid    [4]bool
}

type Result8 struct {
	Distance [8]float64
	Weight   [8]float64
	Bin      [8]int
	FFj      [8]int
	Valid    [8]bool
}

// Evaluate1 computes the contribution of the pair (a.i, b.j).
func Evaluate1(a, b compact.Coords, i, j int, d axis.Axis) Result1 {
	dx := a.X[i] - b.X[j]
	dy := a.Y[i] - b.Y[j]
	dz := a.Z[i] - b.Z[j]
	dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
	k := d.Bin(dist)
	return Result1{
		Distance: dist,
		Weight:   a.W[i] * b.W[j],
		Bin:      k,
		FFi:      int(a.FF[i]),
		FFj:      int(b.FF[j]),
		Valid:    k >= 0 && k < d.Bins,
	}
}

// Evaluate4 computes the contribution of (a.i, b.j), (a.i, b.j+1), ...,
// (a.i, b.j+3): four contiguous b-side atoms against one fixed a-side
// atom, so the only gather is of a's attributes at i.
func Evaluate4(a, b compact.Coords, i, j int, d axis.Axis) Result4 {
	var r Result4
	ax, ay, az, aw := a.X[i], a.Y[i], a.Z[i], a.W[i]
	for k := 0; k < 4; k++ {
		dx := ax - b.X[j+k]
		dy := ay - b.Y[j+k]
		dz := az - b.Z[j+k]
		dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
		bin := d.Bin(dist)
		r.Distance[k] = dist
		r.Weight[k] = aw * b.W[j+k]
		r.Bin[k] = bin
		r.FFj[k] = int(b.FF[j+k])
		r.Valid[k] = bin >= 0 && bin < d.Bins
	}
	return r
}

// Evaluate8 is Evaluate4's eight-wide counterpart.
func Evaluate8(a, b compact.Coords, i, j int, d axis.Axis) Result8 {
	var r Result8
	ax, ay, az, aw := a.X[i], a.Y[i], a.Z[i], a.W[i]
	for k := 0; k < 8; k++ {
		dx := ax - b.X[j+k]
		dy := ay - b.Y[j+k]
		dz := az - b.Z[j+k]
		dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
		bin := d.Bin(dist)
		r.Distance[k] = dist
		r.Weight[k] = aw * b.W[j+k]
		r.Bin[k] = bin
		r.FFj[k] = int(b.FF[j+k])
		r.Valid[k] = bin >= 0 && bin < d.Bins
	}
	return r
}

// SameSpeciesFactor and CrossSpeciesFactor are the ×2 / ×1 multipliers
// applied on accumulation. The distinguishing axis is not which
// CompactCoords arrays are involved but which *species* (in the
// composite histogram's sense) they belong to:
//
//   - Same-species pairs (self_aa within one body, cross_aa between two
//     different bodies, self_ww, self_xx) have no independent scaling
//     coefficient applied to either side at composition time, so the
//     ordered-pair symmetry (i,j) and (j,i) must be baked into the
//     partial itself: SameSpeciesFactor = 2, applied over a rectangular
//     or i<j loop.
//   - Cross-species pairs (cross_aw, cross_ax, cross_wx) sit between two
//     sides that each carry their own scaling coefficient (cw, cx) applied
//     later, during composition, as an explicit "2·cw·I_aw(q)" term; that
//     ×2 already reconstructs the ordered-pair symmetry, so the raw
//     partial must NOT double it again: CrossSpeciesFactor = 1.
const (
	SameSpeciesFactor  = 2.0
	CrossSpeciesFactor = 1.0
)
