// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package composite

import (
	"math"

	"github.com/AUSAXS/AUSAXS-sub003/axis"
	"github.com/AUSAXS/AUSAXS-sub003/debye"
	"github.com/AUSAXS/AUSAXS-sub003/engine"
	"github.com/AUSAXS/AUSAXS-sub003/formfactor"
	"github.com/AUSAXS/AUSAXS-sub003/histogram"
)

// sincTable is satisfied by both debye.ArrayTable and debye.VectorTable;
// declared locally since debye's own equivalent interface is unexported.
type sincTable interface {
	At(qi, bin int) float64
}

// ExplicitFF is the explicit-form-factor composite histogram: every
// partial is resolved by atomic form-factor type and the channel
// intensities are the exact Debye sums over the (ff_i, ff_j) product
// table. It has no excluded-volume channel, so it does not implement
// ExvScaler; a fitter that enables SCALING_EXV against this variant
// must downgrade with a warning.
type ExplicitFF struct {
	qaxis    []float64
	daxis    axis.Axis
	partials engine.Partials

	arrTable  *debye.ArrayTable
	prod      *formfactor.ProductTable
	waterProd [][]float64 // [ff][qi] = f_ff(q)*f_water(q)

	cw, crho, ba float64

	iAA, iAW, iWW []float64 // structural, independent of cw/crho/ba

	totalCache []float64
	totalValid bool
}

// NewExplicitFF builds the variant from an engine's resolved partials.
// Channel caches are computed once; only the final composition depends
// on the scalar parameters and is invalidated by their setters.
func NewExplicitFF(cfg engine.Config, p engine.Partials) *ExplicitFF {
	types := make([]formfactor.Type, formfactor.Count)
	for i := range types {
		types[i] = formfactor.Type(i)
	}
	e := &ExplicitFF{
		qaxis:    cfg.QAxis,
		daxis:    cfg.DAxis,
		partials: p,
		arrTable: debye.NewArrayTable(cfg.QAxis, cfg.DAxis),
		prod:     formfactor.NewProductTable(types, cfg.QAxis),
		cw:       1,
		crho:     1,
	}
	e.waterProd = make([][]float64, formfactor.Count)
	waterFF := formfactor.Of(formfactor.Water)
	for ff := 0; ff < formfactor.Count; ff++ {
		row := make([]float64, len(cfg.QAxis))
		ffGauss := formfactor.Of(formfactor.Type(ff))
		for qi, q := range cfg.QAxis {
			row[qi] = ffGauss.Evaluate(q) * waterFF.Evaluate(q)
		}
		e.waterProd[ff] = row
	}
	e.computeStructuralChannels()
	return e
}

func (e *ExplicitFF) productAtQ(ffi, ffj, qi int) float64 { return e.prod.At(ffi, ffj, qi) }
func (e *ExplicitFF) waterAtQ(ff, qi int) float64         { return e.waterProd[ff][qi] }

func (e *ExplicitFF) computeStructuralChannels() {
	nq := len(e.qaxis)
	e.iAA = make([]float64, nq)
	for _, d := range e.partials.SelfAA {
		add(e.iAA, debye.Transform3D(d, e.arrTable, nq, e.productAtQ))
	}
	for _, d := range e.partials.CrossAA {
		add(e.iAA, debye.Transform3D(d, e.arrTable, nq, e.productAtQ))
	}

	e.iAW = make([]float64, nq)
	for _, d := range e.partials.CrossAW {
		add(e.iAW, debye.Transform2D(d, e.arrTable, nq, e.waterAtQ))
	}

	var wwTable sincTable = e.arrTable
	if e.partials.SelfWWWeighted.Bins > 0 {
		wwTable = debye.NewVectorTable(e.qaxis, e.partials.SelfWWWeighted, e.daxis)
	}
	e.iWW = debye.Transform1D(e.partials.SelfWW, wwTable, nq)
	waterFF := formfactor.Of(formfactor.Water)
	for qi, q := range e.qaxis {
		f := waterFF.Evaluate(q)
		e.iWW[qi] *= f * f
	}
}

func (e *ExplicitFF) ApplyWaterScalingFactor(cw float64) {
	e.cw = cw
	e.totalValid = false
}

func (e *ExplicitFF) ApplySolventDensityScalingFactor(crho float64) {
	e.crho = crho
	e.totalValid = false
}

func (e *ExplicitFF) ApplyAtomicDebyeWallerFactor(ba float64) {
	e.ba = ba
	e.totalValid = false
}

func (e *ExplicitFF) GetCounts() histogram.Dist1D { return e.partials.Total1D }

func (e *ExplicitFF) DebyeTransform() ScatteringProfile {
	if !e.totalValid {
		e.recompose()
	}
	return ScatteringProfile{Q: e.qaxis, I: e.totalCache}
}

func (e *ExplicitFF) recompose() {
	nq := len(e.qaxis)
	out := make([]float64, nq)
	for qi, q := range e.qaxis {
		damp := math.Exp(-e.ba * q * q)
		channel := e.iAA[qi] + 2*e.cw*e.iAW[qi] + e.cw*e.cw*e.iWW[qi]
		out[qi] = e.crho * damp * channel
	}
	e.totalCache = out
	e.totalValid = true
}

func (e *ExplicitFF) ProfileAA() []float64 { return e.iAA }
func (e *ExplicitFF) ProfileAW() []float64 { return e.iAW }
func (e *ExplicitFF) ProfileWW() []float64 { return e.iWW }
func (e *ExplicitFF) ProfileAX() []float64 { return nil }
func (e *ExplicitFF) ProfileXX() []float64 { return nil }
func (e *ExplicitFF) ProfileWX() []float64 { return nil }
