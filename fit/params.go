// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fit implements LinearFitter and SmartFitter: the closed-form
// offset/scale fit nested inside a derivative-free outer minimizer over
// a molecule's physical scattering parameters.
package fit

import "github.com/AUSAXS/AUSAXS-sub003/optimize"

// Name identifies one of the five free scattering parameters, from a
// fixed closed set.
type Name string

const (
	ScalingWater      Name = "SCALING_WATER"
	ScalingExv        Name = "SCALING_EXV"
	ScalingRho        Name = "SCALING_RHO"
	DebyeWallerAtomic Name = "DEBYE_WALLER_ATOMIC"
	DebyeWallerExv    Name = "DEBYE_WALLER_EXV"
)

// CanonicalOrder is the fixed ordering every enabled-parameter list is
// reordered to match before a fit.
var CanonicalOrder = []Name{ScalingWater, ScalingExv, ScalingRho, DebyeWallerAtomic, DebyeWallerExv}

func defaultValue(n Name) float64 {
	switch n {
	case ScalingWater, ScalingExv, ScalingRho:
		return 1
	default:
		return 0
	}
}

func defaultBounds(n Name) optimize.Bounds {
	switch n {
	case ScalingWater:
		return optimize.Bounds{Lo: 0, Hi: 10}
	case ScalingExv:
		return optimize.Bounds{Lo: 0.5, Hi: 1.5}
	case ScalingRho:
		return optimize.Bounds{Lo: 0, Hi: 5}
	case DebyeWallerAtomic, DebyeWallerExv:
		return optimize.Bounds{Lo: 0, Hi: 5}
	default:
		return optimize.Bounds{Lo: 0, Hi: 1}
	}
}

// FittedParameter is one resolved entry of a fit Result.
type FittedParameter struct {
	Name        Name
	Value       float64
	Uncertainty float64
	Bounds      optimize.Bounds
}

// Result is the outcome of a SmartFitter.Fit or LinearFitter.Fit call.
type Result struct {
	Params          []FittedParameter
	FVal            float64 // chi-square at the optimum
	FEvals          int
	Dof             int
	Status          int // 0 = converged, nonzero = numerical issue, best-known value still returned
	Residuals       []float64
	EvaluatedPoints []float64 // the model curve evaluated at data.Q, at the optimum
	Warnings        []string
}
