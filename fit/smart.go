// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"github.com/AUSAXS/AUSAXS-sub003/composite"
	"github.com/AUSAXS/AUSAXS-sub003/dataset"
	"github.com/AUSAXS/AUSAXS-sub003/internal/logging"
	"github.com/AUSAXS/AUSAXS-sub003/optimize"
	"github.com/AUSAXS/AUSAXS-sub003/spline"
)

// SmartFitter owns an experimental dataset, a composite histogram model
// borrowed non-owningly for the duration of Fit, and the set of enabled
// free parameters. The outer minimizer is a derivative-free
// optimize.Minimize call; the inner fit at every trial point is a
// closed-form LinearFitter pass.
type SmartFitter struct {
	data  dataset.SimpleDataset
	model composite.Histogram
	guess map[Name]float64
	opts  optimize.Options
}

// New builds a fitter over data and model. Guess supplies an optional
// initial value per parameter name; parameters absent from guess fall
// back to the canonical starting point at fit time.
func New(data dataset.SimpleDataset, model composite.Histogram, guess map[Name]float64) *SmartFitter {
	return &SmartFitter{data: data, model: model, guess: guess}
}

// validate filters the caller's requested parameter set down to those
// the model genuinely supports, reordering to CanonicalOrder and
// collecting a warning for every capability downgrade.
func (f *SmartFitter) validate(requested map[Name]bool) ([]Name, []string) {
	var enabled []Name
	var warnings []string
	for _, n := range CanonicalOrder {
		if !requested[n] {
			continue
		}
		if ok, reason := f.supports(n); ok {
			enabled = append(enabled, n)
		} else {
			w := string(n) + " disabled: " + reason
			warnings = append(warnings, w)
			logging.Warn("%s", w)
		}
	}
	return enabled, warnings
}

func (f *SmartFitter) supports(n Name) (bool, string) {
	switch n {
	case ScalingWater:
		if _, ok := f.model.(composite.HydrationScaler); !ok {
			return false, "model does not support water scaling"
		}
		if allZero(f.model.ProfileAW()) && allZero(f.model.ProfileWW()) {
			return false, "hydration channel is structurally zero (no water atoms)"
		}
		return true, ""
	case ScalingExv:
		if _, ok := f.model.(composite.ExvScaler); !ok {
			return false, "model has no excluded-volume channel"
		}
		return true, ""
	case ScalingRho:
		_, ok := f.model.(composite.SolventDensityScaler)
		if !ok {
			return false, "model does not support solvent density scaling"
		}
		return true, ""
	case DebyeWallerAtomic:
		_, ok := f.model.(composite.AtomicDebyeWaller)
		if !ok {
			return false, "model does not support an atomic Debye-Waller factor"
		}
		return true, ""
	case DebyeWallerExv:
		if _, ok := f.model.(composite.ExvScaler); !ok {
			return false, "model has no excluded-volume channel"
		}
		return true, ""
	default:
		return false, "unknown parameter"
	}
}

func allZero(xs []float64) bool {
	if xs == nil {
		return true
	}
	for _, x := range xs {
		if x != 0 {
			return false
		}
	}
	return true
}

func (f *SmartFitter) apply(n Name, v float64) {
	switch n {
	case ScalingWater:
		f.model.(composite.HydrationScaler).ApplyWaterScalingFactor(v)
	case ScalingExv:
		f.model.(composite.ExvScaler).ApplyExcludedVolumeScalingFactor(v)
	case ScalingRho:
		f.model.(composite.SolventDensityScaler).ApplySolventDensityScalingFactor(v)
	case DebyeWallerAtomic:
		f.model.(composite.AtomicDebyeWaller).ApplyAtomicDebyeWallerFactor(v)
	case DebyeWallerExv:
		f.model.(composite.ExvScaler).ApplyExvDebyeWallerFactor(v)
	}
}

// modelAtDataQ applies theta (in enabled order) to the model and returns
// its debye_transform spline-resampled onto the experimental q-grid.
func (f *SmartFitter) modelAtDataQ(enabled []Name, theta []float64) []float64 {
	for i, n := range enabled {
		f.apply(n, theta[i])
	}
	profile := f.model.DebyeTransform()
	sp := spline.NewNatural(profile.Q, profile.I)
	return sp.Resample(f.data.Q)
}

// Fit validates/downgrades the requested parameters, handles the
// zero-parameter case directly, else drives the outer minimizer over
// chi-square(theta) with an inner LinearFitter pass, and composes the
// final Result.
func (f *SmartFitter) Fit(requested map[Name]bool) Result {
	enabled, warnings := f.validate(requested)

	if len(enabled) == 0 {
		modelY := f.modelAtDataQ(nil, nil)
		lr := LinearFitter{}.Fit(f.data.I, modelY, f.data.Sigma)
		return Result{
			Params:          []FittedParameter{{Name: "a", Value: lr.A}, {Name: "b", Value: lr.B}},
			FVal:            lr.Chi2,
			Dof:             lr.Dof,
			Status:          lr.Status,
			Residuals:       lr.Residuals,
			EvaluatedPoints: modelY,
			Warnings:        warnings,
		}
	}

	x0 := make([]float64, len(enabled))
	bounds := make([]optimize.Bounds, len(enabled))
	for i, n := range enabled {
		if v, ok := f.guess[n]; ok {
			x0[i] = v
		} else {
			x0[i] = defaultValue(n)
		}
		bounds[i] = defaultBounds(n)
	}

	objective := func(theta []float64) float64 {
		modelY := f.modelAtDataQ(enabled, theta)
		return LinearFitter{}.Fit(f.data.I, modelY, f.data.Sigma).Chi2
	}

	opt := optimize.Minimize(objective, x0, bounds, f.opts)

	modelY := f.modelAtDataQ(enabled, opt.X)
	lr := LinearFitter{}.Fit(f.data.I, modelY, f.data.Sigma)

	params := make([]FittedParameter, 0, len(enabled)+2)
	for i, n := range enabled {
		params = append(params, FittedParameter{Name: n, Value: opt.X[i], Bounds: bounds[i]})
	}
	params = append(params, FittedParameter{Name: "a", Value: lr.A}, FittedParameter{Name: "b", Value: lr.B})

	status := opt.Status
	if lr.Status != 0 {
		status = lr.Status
	}

	return Result{
		Params:          params,
		FVal:            lr.Chi2,
		FEvals:          opt.FEvals,
		Dof:             f.data.Len() - (len(enabled) + 2),
		Status:          status,
		Residuals:       lr.Residuals,
		EvaluatedPoints: modelY,
		Warnings:        warnings,
	}
}

// ModelCurve applies theta (in the given name order) to the model and
// returns its debye_transform resampled onto the data's q-grid, a
// diagnostic entry point distinct from a full Fit call.
func (f *SmartFitter) ModelCurve(names []Name, theta []float64) []float64 {
	return f.modelAtDataQ(names, theta)
}

// Residuals applies theta, runs the inner linear fit, and returns only
// the residual vector, without the bookkeeping of a full Result.
func (f *SmartFitter) Residuals(names []Name, theta []float64) []float64 {
	modelY := f.modelAtDataQ(names, theta)
	return LinearFitter{}.Fit(f.data.I, modelY, f.data.Sigma).Residuals
}

// FitParamsOnly is ModelCurve's counterpart for inspecting the a/b pair
// the inner LinearFitter would choose at a given theta, without running
// the outer minimizer.
func (f *SmartFitter) FitParamsOnly(names []Name, theta []float64) (a, b float64) {
	modelY := f.modelAtDataQ(names, theta)
	lr := LinearFitter{}.Fit(f.data.I, modelY, f.data.Sigma)
	return lr.A, lr.B
}
