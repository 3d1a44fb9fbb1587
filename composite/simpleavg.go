// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package composite

import (
	"math"

	"github.com/AUSAXS/AUSAXS-sub003/debye"
	"github.com/AUSAXS/AUSAXS-sub003/engine"
	"github.com/AUSAXS/AUSAXS-sub003/formfactor"
	"github.com/AUSAXS/AUSAXS-sub003/histogram"
)

// SimpleAvg approximates every atom's form factor with a single
// average scattering length, so it transforms the distance-only
// Total1D histogram directly rather than per-type resolved partials.
// Cheaper and coarser than ExplicitFF; no excluded-volume channel.
type SimpleAvg struct {
	qaxis    []float64
	partials engine.Partials
	arrTable *debye.ArrayTable
	avgFF    []float64 // average atomic form factor at each q
	waterFF  []float64

	cw, crho, ba float64

	iTotalAtoms []float64 // Debye sum of total_1d weighted by avg ff^2 (aa+aw+ww lumped)
	totalCache  []float64
	totalValid  bool
}

// NewSimpleAvg averages the catalog's non-water, non-exv form factors to
// build a single representative atomic form factor.
func NewSimpleAvg(cfg engine.Config, p engine.Partials) *SimpleAvg {
	e := &SimpleAvg{
		qaxis:    cfg.QAxis,
		partials: p,
		arrTable: debye.NewArrayTable(cfg.QAxis, cfg.DAxis),
		cw:       1,
		crho:     1,
	}
	e.avgFF = make([]float64, len(cfg.QAxis))
	e.waterFF = make([]float64, len(cfg.QAxis))
	waterGauss := formfactor.Of(formfactor.Water)
	for qi, q := range cfg.QAxis {
		sum := 0.0
		for ff := 0; ff < formfactor.CountWithoutExv; ff++ {
			if formfactor.Type(ff) == formfactor.Water {
				continue
			}
			sum += formfactor.Of(formfactor.Type(ff)).Evaluate(q)
		}
		e.avgFF[qi] = sum / float64(formfactor.CountWithoutExv-1)
		e.waterFF[qi] = waterGauss.Evaluate(q)
	}
	e.computeStructuralChannel()
	return e
}

func (e *SimpleAvg) computeStructuralChannel() {
	nq := len(e.qaxis)
	e.iTotalAtoms = debye.Transform1D(e.partials.Total1D, e.arrTable, nq)
	for qi := range e.iTotalAtoms {
		e.iTotalAtoms[qi] *= e.avgFF[qi] * e.avgFF[qi]
	}
}

func (e *SimpleAvg) ApplyWaterScalingFactor(cw float64) {
	e.cw = cw
	e.totalValid = false
}

func (e *SimpleAvg) ApplySolventDensityScalingFactor(crho float64) {
	e.crho = crho
	e.totalValid = false
}

func (e *SimpleAvg) ApplyAtomicDebyeWallerFactor(ba float64) {
	e.ba = ba
	e.totalValid = false
}

func (e *SimpleAvg) GetCounts() histogram.Dist1D { return e.partials.Total1D }

func (e *SimpleAvg) DebyeTransform() ScatteringProfile {
	if !e.totalValid {
		out := make([]float64, len(e.qaxis))
		for qi, q := range e.qaxis {
			damp := math.Exp(-e.ba * q * q)
			out[qi] = e.crho * e.cw * damp * e.iTotalAtoms[qi]
		}
		e.totalCache = out
		e.totalValid = true
	}
	return ScatteringProfile{Q: e.qaxis, I: e.totalCache}
}

func (e *SimpleAvg) ProfileAA() []float64 { return e.iTotalAtoms }
func (e *SimpleAvg) ProfileAW() []float64 { return nil }
func (e *SimpleAvg) ProfileWW() []float64 { return nil }
func (e *SimpleAvg) ProfileAX() []float64 { return nil }
func (e *SimpleAvg) ProfileXX() []float64 { return nil }
func (e *SimpleAvg) ProfileWX() []float64 { return nil }
