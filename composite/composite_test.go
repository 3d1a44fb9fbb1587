// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package composite

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/AUSAXS/AUSAXS-sub003/atom"
	"github.com/AUSAXS/AUSAXS-sub003/axis"
	"github.com/AUSAXS/AUSAXS-sub003/compact"
	"github.com/AUSAXS/AUSAXS-sub003/engine"
	"github.com/AUSAXS/AUSAXS-sub003/formfactor"
)

func testMolecule() (*engine.PartialHistogramEngine, engine.Config) {
	b0 := atom.NewBody(0, []atom.Record{
		{Pos: [3]float64{0, 0, 0}, Weight: 1, FF: formfactor.C},
		{Pos: [3]float64{2, 0, 0}, Weight: 1, FF: formfactor.O},
	})
	b1 := atom.NewBody(1, []atom.Record{
		{Pos: [3]float64{0, 2, 0}, Weight: 1, FF: formfactor.N},
	})
	water := []atom.Record{{Pos: [3]float64{1, 1, 0}, Weight: 1, FF: formfactor.Water}}
	m := atom.NewMolecule([]*atom.Body{b0, b1}, water)
	cfg := engine.Config{
		DAxis:   axis.New(0, 10, 20),
		QAxis:   []float64{0.05, 0.1, 0.2, 0.3},
		JobSize: 4,
		Variant: engine.ExplicitFF,
		Workers: 2,
	}
	return engine.New(cfg, m), cfg
}

func Test_composite01(tst *testing.T) {
	chk.PrintTitle("composite01 (explicit-ff reduces to undamped form)")

	e, cfg := testMolecule()
	p := e.CalculateAll()
	h := NewExplicitFF(cfg, p)

	h.ApplyWaterScalingFactor(1)
	h.ApplySolventDensityScalingFactor(1)
	h.ApplyAtomicDebyeWallerFactor(0)
	prof := h.DebyeTransform()

	for qi := range prof.Q {
		want := h.iAA[qi] + 2*h.iAW[qi] + h.iWW[qi]
		chk.Scalar(tst, "undamped reduction", 1e-9, prof.I[qi], want)
	}
}

func Test_composite02(tst *testing.T) {
	chk.PrintTitle("composite02 (P4: swap cw and back agrees within tol)")

	e, cfg := testMolecule()
	p := e.CalculateAll()
	h := NewExplicitFF(cfg, p)

	h.ApplyWaterScalingFactor(1.0)
	before := h.DebyeTransform().I

	h.ApplyWaterScalingFactor(2.5)
	_ = h.DebyeTransform()

	h.ApplyWaterScalingFactor(1.0)
	after := h.DebyeTransform().I

	for qi := range before {
		chk.Scalar(tst, "swap cw and back", 1e-9, after[qi], before[qi])
	}
}

func Test_composite03(tst *testing.T) {
	chk.PrintTitle("composite03 (capability: explicit-ff has no exv, grid-based does)")

	e, cfg := testMolecule()
	p := e.CalculateAll()
	explicit := NewExplicitFF(cfg, p)
	if _, ok := interface{}(explicit).(ExvScaler); ok {
		tst.Errorf("ExplicitFF must not satisfy ExvScaler")
	}

	exvAtoms := []atom.Record{
		{Pos: [3]float64{0.5, 0.5, 0}, Weight: 1, FF: formfactor.ExcludedVolume},
		{Pos: [3]float64{1.5, 0.5, 0}, Weight: 1, FF: formfactor.ExcludedVolume},
	}
	bodyCoords := []compact.Coords{
		compact.FromRecords([]atom.Record{{Pos: [3]float64{0, 0, 0}, Weight: 1, FF: formfactor.C}}),
	}
	hydration := compact.FromRecords([]atom.Record{{Pos: [3]float64{1, 1, 0}, Weight: 1, FF: formfactor.Water}})
	grid := NewGridBased(cfg, p, bodyCoords, hydration, exvAtoms)
	if _, ok := interface{}(grid).(ExvScaler); !ok {
		tst.Errorf("GridBased must satisfy ExvScaler")
	}
	grid.ApplyExcludedVolumeScalingFactor(1.0)
	prof := grid.DebyeTransform()
	if len(prof.I) != len(cfg.QAxis) {
		tst.Errorf("profile length mismatch")
	}
}
