// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dataset implements the experimental SimpleDataset a SmartFitter
// fits against: q, measured intensity, and per-point uncertainty.
package dataset

import "github.com/cpmech/gosl/chk"

// SimpleDataset is a triple of parallel slices: Q, I, Sigma.
type SimpleDataset struct {
	Q, I, Sigma []float64
}

// New validates that all three slices share a length and that Sigma has
// no non-positive entries, a precondition failure surfaced immediately.
func New(q, i, sigma []float64) SimpleDataset {
	if len(q) != len(i) || len(q) != len(sigma) {
		chk.Panic("dataset.New: mismatched slice lengths: %d, %d, %d", len(q), len(i), len(sigma))
	}
	for _, s := range sigma {
		if s <= 0 {
			chk.Panic("dataset.New: sigma must be strictly positive")
		}
	}
	return SimpleDataset{Q: q, I: i, Sigma: sigma}
}

// Len returns the number of data points.
func (d SimpleDataset) Len() int { return len(d.Q) }

// Normalization is the convention used to turn a raw per-pair weight sum
// into a comparable intensity scale: dividing by N² versus N(N-1) are
// both defensible conventions, so this type makes the choice an
// explicit, caller-supplied parameter instead of a silent default baked
// into the core.
type Normalization int

const (
	// NormalizeBySquare divides by Ntotal², counting self-pairs.
	NormalizeBySquare Normalization = iota
	// NormalizeByOrderedPairs divides by Ntotal*(Ntotal-1), excluding self-pairs.
	NormalizeByOrderedPairs
)

// Normalize rescales i in place by the chosen convention for a system of
// n total scatterers.
func Normalize(i []float64, n int, conv Normalization) {
	if n == 0 {
		return
	}
	var denom float64
	switch conv {
	case NormalizeBySquare:
		denom = float64(n) * float64(n)
	case NormalizeByOrderedPairs:
		denom = float64(n) * float64(n-1)
	default:
		chk.Panic("dataset.Normalize: unknown convention %v", conv)
	}
	if denom == 0 {
		return
	}
	for k := range i {
		i[k] /= denom
	}
}
