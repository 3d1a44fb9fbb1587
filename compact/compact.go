// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package compact implements CompactCoords: a dense, read-only snapshot
// of a body's or the hydration layer's atom records, laid out for fast
// pairwise loops. Lifetime is tied to a single histogram computation
// pass; it is invalidated on any external change to its source body
// simply by being rebuilt, never mutated in place.
package compact

import (
	"github.com/AUSAXS/AUSAXS-sub003/atom"
	"github.com/AUSAXS/AUSAXS-sub003/formfactor"
)

// Coords is a struct-of-arrays snapshot: X, Y, Z, W, and FF are parallel
// slices of equal length, chosen over an array-of-structs layout so the
// kernel package's evaluate4/evaluate8 batches can gather four or eight
// contiguous entries with a single set of slice reads, letting a
// vectorizing compiler reason about the loop.
type Coords struct {
	X, Y, Z, W []float64
	FF         []formfactor.Type
}

// New builds a Coords snapshot from n atoms, reading position/weight/ff
// through the accessor functions so callers can adapt atom.Record (whose
// fields are exported directly) without an intermediate allocation.
func New(n int, pos func(i int) [3]float64, weight func(i int) float64, ff func(i int) formfactor.Type) Coords {
	c := Coords{
		X:  make([]float64, n),
		Y:  make([]float64, n),
		Z:  make([]float64, n),
		W:  make([]float64, n),
		FF: make([]formfactor.Type, n),
	}
	for i := 0; i < n; i++ {
		p := pos(i)
		c.X[i], c.Y[i], c.Z[i] = p[0], p[1], p[2]
		c.W[i] = weight(i)
		c.FF[i] = ff(i)
	}
	return c
}

// Len returns the number of atoms in the snapshot.
func (c Coords) Len() int { return len(c.X) }

// FromRecords builds a Coords snapshot directly from atom records, the
// common case for both a body's atoms and the hydration layer.
func FromRecords(recs []atom.Record) Coords {
	return New(len(recs),
		func(i int) [3]float64 { return recs[i].Pos },
		func(i int) float64 { return recs[i].Weight },
		func(i int) formfactor.Type { return recs[i].FF },
	)
}
