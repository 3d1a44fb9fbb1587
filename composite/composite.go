// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package composite implements CompositeDistanceHistogram: the object
// that turns a PartialHistogramEngine's distance partials into a
// scattering intensity profile under a set of free scaling parameters.
// Several histogram "families" are modeled as a single interface with
// independent per-variant assembly functions rather than a class
// hierarchy.
package composite

import (
	"github.com/AUSAXS/AUSAXS-sub003/histogram"
	"github.com/cpmech/gosl/la"
)

// ScatteringProfile is the q/I(q) pair a debye transform produces.
type ScatteringProfile struct {
	Q []float64
	I []float64
}

// Histogram is satisfied by every composite histogram variant.
type Histogram interface {
	GetCounts() histogram.Dist1D
	DebyeTransform() ScatteringProfile

	ProfileAA() []float64
	ProfileAW() []float64
	ProfileWW() []float64
	ProfileAX() []float64
	ProfileXX() []float64
	ProfileWX() []float64
}

// HydrationScaler is satisfied by variants that support the water
// scaling parameter cw.
type HydrationScaler interface {
	ApplyWaterScalingFactor(cw float64)
}

// SolventDensityScaler is satisfied by variants that support the
// solvent density parameter cρ.
type SolventDensityScaler interface {
	ApplySolventDensityScalingFactor(crho float64)
}

// AtomicDebyeWaller is satisfied by variants that support the atomic
// Debye-Waller damping factor Ba.
type AtomicDebyeWaller interface {
	ApplyAtomicDebyeWallerFactor(ba float64)
}

// ExvScaler is satisfied only by variants with an excluded-volume
// channel: the grid-based family and its mimics. A histogram that does
// not implement this interface causes SCALING_EXV and DEBYE_WALLER_EXV
// to be downgraded.
type ExvScaler interface {
	ApplyExcludedVolumeScalingFactor(cx float64)
	ApplyExvDebyeWallerFactor(bx float64)
}

// add accumulates src into dst in place: dst = 1*dst + 1*src.
func add(dst, src []float64) {
	la.VecAdd2(dst, 1, dst, 1, src)
}
