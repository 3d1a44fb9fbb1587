// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package composite

import (
	"math"

	"github.com/AUSAXS/AUSAXS-sub003/atom"
	"github.com/AUSAXS/AUSAXS-sub003/axis"
	"github.com/AUSAXS/AUSAXS-sub003/compact"
	"github.com/AUSAXS/AUSAXS-sub003/debye"
	"github.com/AUSAXS/AUSAXS-sub003/engine"
	"github.com/AUSAXS/AUSAXS-sub003/formfactor"
	"github.com/AUSAXS/AUSAXS-sub003/histogram"
	"github.com/AUSAXS/AUSAXS-sub003/kernel"
)

// GridBased is the excluded-volume-aware composite histogram: besides
// the atom/water channels of ExplicitFF, it carries a dummy-atom grid
// representing displaced solvent and exposes the exv scaling parameter
// cx and its Debye-Waller factor Bx.
//
// The exv-involving partials (I_ax, I_xx, I_wx) depend on cx through the
// dummy-atom geometry, not only through a q-domain prefactor: changing
// cx re-scales the dummy-atom positions about their centroid and
// recomputes just those three channels. This rescale is represented as
// a captured closure over a read-only coordinate snapshot, never a
// reference back into the engine.
type GridBased struct {
	qaxis []float64
	daxis axis.Axis

	partials      engine.Partials
	bodyCoords    []compact.Coords
	hydrationCoord compact.Coords
	exvCentroid   [3]float64
	exvBase       compact.Coords // cx=1 reference snapshot

	arrTable  *debye.ArrayTable
	prod      *formfactor.ProductTable
	waterProd [][]float64
	exvProd   [][]float64 // [ff][qi] = f_ff(q)*f_exv(q), ff over non-exv types
	exvExvFF  []float64   // f_exv(q)^2
	waterExvFF []float64  // f_water(q)*f_exv(q)

	cw, cx, crho, ba, bx float64

	iAA, iAW, iWW []float64 // structural, cx-independent
	iAX, iXX, iWX []float64 // exv-dependent, recomputed on cx change
	exvCachedCX   float64
	exvComputed   bool

	totalCache []float64
	totalValid bool
}

// NewGridBased builds the variant from an engine's resolved atom/water
// partials plus the raw coordinate snapshots needed to grow the
// excluded-volume channels: the engine itself has no notion of exv
// atoms, so those three channels are computed independently here.
func NewGridBased(cfg engine.Config, p engine.Partials, bodyCoords []compact.Coords, hydrationCoord compact.Coords, exvAtoms []atom.Record) *GridBased {
	types := make([]formfactor.Type, formfactor.Count)
	for i := range types {
		types[i] = formfactor.Type(i)
	}
	g := &GridBased{
		qaxis:          cfg.QAxis,
		daxis:          cfg.DAxis,
		partials:       p,
		bodyCoords:     bodyCoords,
		hydrationCoord: hydrationCoord,
		arrTable:       debye.NewArrayTable(cfg.QAxis, cfg.DAxis),
		prod:           formfactor.NewProductTable(types, cfg.QAxis),
		cw:             1,
		cx:             1,
		crho:           1,
	}
	g.exvBase = compact.FromRecords(exvAtoms)
	g.exvCentroid = centroid(g.exvBase)

	g.waterProd = make([][]float64, formfactor.Count)
	waterFF := formfactor.Of(formfactor.Water)
	exvFF := formfactor.Of(formfactor.ExcludedVolume)
	for ff := 0; ff < formfactor.Count; ff++ {
		row := make([]float64, len(cfg.QAxis))
		ffGauss := formfactor.Of(formfactor.Type(ff))
		for qi, q := range cfg.QAxis {
			row[qi] = ffGauss.Evaluate(q) * waterFF.Evaluate(q)
		}
		g.waterProd[ff] = row
	}
	g.exvProd = make([][]float64, formfactor.Count)
	for ff := 0; ff < formfactor.Count; ff++ {
		row := make([]float64, len(cfg.QAxis))
		ffGauss := formfactor.Of(formfactor.Type(ff))
		for qi, q := range cfg.QAxis {
			row[qi] = ffGauss.Evaluate(q) * exvFF.Evaluate(q)
		}
		g.exvProd[ff] = row
	}
	g.exvExvFF = make([]float64, len(cfg.QAxis))
	g.waterExvFF = make([]float64, len(cfg.QAxis))
	for qi, q := range cfg.QAxis {
		g.exvExvFF[qi] = exvFF.Evaluate(q) * exvFF.Evaluate(q)
		g.waterExvFF[qi] = waterFF.Evaluate(q) * exvFF.Evaluate(q)
	}

	g.computeStructuralChannels()
	g.computeExvChannels(1.0)
	return g
}

func centroid(c compact.Coords) [3]float64 {
	var cx, cy, cz float64
	n := c.Len()
	for i := 0; i < n; i++ {
		cx += c.X[i]
		cy += c.Y[i]
		cz += c.Z[i]
	}
	if n == 0 {
		return [3]float64{}
	}
	return [3]float64{cx / float64(n), cy / float64(n), cz / float64(n)}
}

// rescale returns a snapshot of the exv grid scaled by factor about its
// centroid, owning its own backing arrays (never aliasing exvBase).
func (g *GridBased) rescale(factor float64) compact.Coords {
	n := g.exvBase.Len()
	out := compact.Coords{
		X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n),
		W: make([]float64, n), FF: make([]formfactor.Type, n),
	}
	c := g.exvCentroid
	for i := 0; i < n; i++ {
		out.X[i] = c[0] + factor*(g.exvBase.X[i]-c[0])
		out.Y[i] = c[1] + factor*(g.exvBase.Y[i]-c[1])
		out.Z[i] = c[2] + factor*(g.exvBase.Z[i]-c[2])
		out.W[i] = g.exvBase.W[i]
		out.FF[i] = g.exvBase.FF[i]
	}
	return out
}

func (g *GridBased) productAtQ(ffi, ffj, qi int) float64 { return g.prod.At(ffi, ffj, qi) }
func (g *GridBased) waterAtQ(ff, qi int) float64          { return g.waterProd[ff][qi] }
func (g *GridBased) exvAtQ(ff, qi int) float64            { return g.exvProd[ff][qi] }

func (g *GridBased) computeStructuralChannels() {
	nq := len(g.qaxis)
	g.iAA = make([]float64, nq)
	for _, d := range g.partials.SelfAA {
		add(g.iAA, debye.Transform3D(d, g.arrTable, nq, g.productAtQ))
	}
	for _, d := range g.partials.CrossAA {
		add(g.iAA, debye.Transform3D(d, g.arrTable, nq, g.productAtQ))
	}
	g.iAW = make([]float64, nq)
	for _, d := range g.partials.CrossAW {
		add(g.iAW, debye.Transform2D(d, g.arrTable, nq, g.waterAtQ))
	}
	var wwTable sincTable = g.arrTable
	if g.partials.SelfWWWeighted.Bins > 0 {
		wwTable = debye.NewVectorTable(g.qaxis, g.partials.SelfWWWeighted, g.daxis)
	}
	g.iWW = debye.Transform1D(g.partials.SelfWW, wwTable, nq)
	waterFF := formfactor.Of(formfactor.Water)
	for qi, q := range g.qaxis {
		f := waterFF.Evaluate(q)
		g.iWW[qi] *= f * f
	}
}

// computeExvChannels rebuilds I_ax, I_xx, I_wx from a dummy-atom grid
// scaled by cx, via direct pairwise accumulation (the exv grid is small
// enough that this need not go through the engine's job-parallel path).
func (g *GridBased) computeExvChannels(cx float64) {
	exv := g.rescale(cx)
	nq := len(g.qaxis)
	bins := g.daxis.Bins

	ax2D := histogram.NewDist2D(formfactor.Count, bins)
	for _, bc := range g.bodyCoords {
		for i := 0; i < bc.Len(); i++ {
			for j := 0; j < exv.Len(); j++ {
				r := kernel.Evaluate1(bc, exv, i, j, g.daxis)
				if r.Valid {
					ax2D.Add(r.FFi, r.Bin, kernel.CrossSpeciesFactor*r.Weight)
				}
			}
		}
	}
	g.iAX = debye.Transform2D(ax2D, g.arrTable, nq, g.exvAtQ)

	xx1D := histogram.NewDist1D(bins)
	n := exv.Len()
	for i := 0; i < n; i++ {
		xx1D.Add(0, exv.W[i]*exv.W[i])
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := kernel.Evaluate1(exv, exv, i, j, g.daxis)
			if r.Valid {
				xx1D.Add(r.Bin, kernel.SameSpeciesFactor*r.Weight)
			}
		}
	}
	g.iXX = debye.Transform1D(xx1D, g.arrTable, nq)
	for qi := range g.iXX {
		g.iXX[qi] *= g.exvExvFF[qi]
	}

	wx1D := histogram.NewDist1D(bins)
	for i := 0; i < g.hydrationCoord.Len(); i++ {
		for j := 0; j < n; j++ {
			r := kernel.Evaluate1(g.hydrationCoord, exv, i, j, g.daxis)
			if r.Valid {
				wx1D.Add(r.Bin, kernel.CrossSpeciesFactor*r.Weight)
			}
		}
	}
	g.iWX = debye.Transform1D(wx1D, g.arrTable, nq)
	for qi := range g.iWX {
		g.iWX[qi] *= g.waterExvFF[qi]
	}

	g.exvCachedCX = cx
	g.exvComputed = true
}

func (g *GridBased) ApplyWaterScalingFactor(cw float64) {
	g.cw = cw
	g.totalValid = false
}

func (g *GridBased) ApplySolventDensityScalingFactor(crho float64) {
	g.crho = crho
	g.totalValid = false
}

func (g *GridBased) ApplyAtomicDebyeWallerFactor(ba float64) {
	g.ba = ba
	g.totalValid = false
}

func (g *GridBased) ApplyExcludedVolumeScalingFactor(cx float64) {
	g.cx = cx
	if !g.exvComputed || g.exvCachedCX != cx {
		g.computeExvChannels(cx)
	}
	g.totalValid = false
}

func (g *GridBased) ApplyExvDebyeWallerFactor(bx float64) {
	g.bx = bx
	g.totalValid = false
}

func (g *GridBased) GetCounts() histogram.Dist1D { return g.partials.Total1D }

func (g *GridBased) DebyeTransform() ScatteringProfile {
	if !g.totalValid {
		g.recompose()
	}
	return ScatteringProfile{Q: g.qaxis, I: g.totalCache}
}

func (g *GridBased) recompose() {
	nq := len(g.qaxis)
	out := make([]float64, nq)
	for qi, q := range g.qaxis {
		G := formfactor.GFactor(g.cx, q)
		dampA := math.Exp(-g.ba * q * q)
		dampX := math.Exp(-g.bx * q * q)
		channel := g.iAA[qi] + 2*g.cw*g.iAW[qi] + g.cw*g.cw*g.iWW[qi]
		channel *= dampA
		exvChannel := -2*G*g.iAX[qi] + G*G*g.iXX[qi] - 2*G*g.cw*g.iWX[qi]
		exvChannel *= dampX
		out[qi] = g.crho * (channel + exvChannel)
	}
	g.totalCache = out
	g.totalValid = true
}

func (g *GridBased) ProfileAA() []float64 { return g.iAA }
func (g *GridBased) ProfileAW() []float64 { return g.iAW }
func (g *GridBased) ProfileWW() []float64 { return g.iWW }
func (g *GridBased) ProfileAX() []float64 { return g.iAX }
func (g *GridBased) ProfileXX() []float64 { return g.iXX }
func (g *GridBased) ProfileWX() []float64 { return g.iWX }
