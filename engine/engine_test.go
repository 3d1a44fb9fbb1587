// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/AUSAXS/AUSAXS-sub003/atom"
	"github.com/AUSAXS/AUSAXS-sub003/axis"
	"github.com/AUSAXS/AUSAXS-sub003/formfactor"
	"github.com/AUSAXS/AUSAXS-sub003/histogram"
)

func testConfig() Config {
	return Config{
		DAxis:   axis.New(0, 10, 20), // Δ=0.5
		QAxis:   []float64{0.1},
		JobSize: 2,
		Variant: ExplicitFF,
		Workers: 2,
	}
}

func Test_engine01(tst *testing.T) {
	chk.PrintTitle("engine01 (S1: two-atom self histogram)")

	body := atom.NewBody(0, []atom.Record{
		{Pos: [3]float64{0, 0, 0}, Weight: 1, FF: formfactor.C},
		{Pos: [3]float64{1, 0, 0}, Weight: 1, FF: formfactor.C},
	})
	m := atom.NewMolecule([]*atom.Body{body}, nil)
	e := New(testConfig(), m)

	p := e.CalculateAll()
	self := collapse3Dto1D(p.SelfAA[0])
	chk.Scalar(tst, "bin0", 1e-12, self.At(0), 2.0)
	chk.Scalar(tst, "bin2", 1e-12, self.At(2), 2.0)
	chk.Scalar(tst, "total sum", 1e-12, sumAll(p.Total1D), 4.0)
}

func Test_engine02(tst *testing.T) {
	chk.PrintTitle("engine02 (S2: external-only move leaves total unchanged)")

	body := atom.NewBody(0, []atom.Record{
		{Pos: [3]float64{0, 0, 0}, Weight: 1, FF: formfactor.C},
		{Pos: [3]float64{1, 0, 0}, Weight: 1, FF: formfactor.C},
	})
	m := atom.NewMolecule([]*atom.Body{body}, nil)
	e := New(testConfig(), m)

	before := e.CalculateAll()
	body.Translate([3]float64{10, 0, 0})
	after := e.CalculateAll()

	chk.Scalar(tst, "total unchanged", 1e-9, sumAll(after.Total1D), sumAll(before.Total1D))
	for k := range before.SelfAA[0].Data {
		chk.Scalar(tst, "self_aa unchanged", 1e-9, after.SelfAA[0].Data[k], before.SelfAA[0].Data[k])
	}
}

func Test_engine03(tst *testing.T) {
	chk.PrintTitle("engine03 (P1: two bodies match brute-force double loop)")

	b0 := atom.NewBody(0, []atom.Record{
		{Pos: [3]float64{0, 0, 0}, Weight: 1, FF: formfactor.C},
		{Pos: [3]float64{1, 0, 0}, Weight: 1, FF: formfactor.C},
	})
	b1 := atom.NewBody(1, []atom.Record{
		{Pos: [3]float64{0, 1, 0}, Weight: 1, FF: formfactor.N},
	})
	m := atom.NewMolecule([]*atom.Body{b0, b1}, nil)
	cfg := testConfig()
	e := New(cfg, m)
	p := e.CalculateAll()

	all := []atom.Record{b0.Atoms()[0], b0.Atoms()[1], b1.Atoms()[0]}
	want := bruteForceTotal(all, cfg.DAxis)

	chk.IntAssert(len(p.Total1D.Data), len(want.Data))
	for k := range want.Data {
		chk.Scalar(tst, "brute-force parity", 1e-9, p.Total1D.At(k), want.At(k))
	}
}

func Test_engine04(tst *testing.T) {
	chk.PrintTitle("engine04 (P3: total equals collapsed sum of partials)")

	b0 := atom.NewBody(0, []atom.Record{
		{Pos: [3]float64{0, 0, 0}, Weight: 1, FF: formfactor.C},
		{Pos: [3]float64{2, 0, 0}, Weight: 1.5, FF: formfactor.O},
	})
	b1 := atom.NewBody(1, []atom.Record{
		{Pos: [3]float64{0, 2, 0}, Weight: 1, FF: formfactor.N},
	})
	water := []atom.Record{
		{Pos: [3]float64{1, 1, 0}, Weight: 1, FF: formfactor.Water},
	}
	m := atom.NewMolecule([]*atom.Body{b0, b1}, water)
	cfg := testConfig()
	e := New(cfg, m)
	p := e.CalculateAll()

	recomposed := make([]float64, cfg.DAxis.Bins)
	for _, d := range p.SelfAA {
		c := collapse3Dto1D(d)
		for k := range recomposed {
			recomposed[k] += c.At(k)
		}
	}
	for _, d := range p.CrossAA {
		c := collapse3Dto1D(d)
		for k := range recomposed {
			recomposed[k] += c.At(k)
		}
	}
	for _, d := range p.CrossAW {
		c := collapse2Dto1D(d)
		for k := range recomposed {
			recomposed[k] += c.At(k)
		}
	}
	for k := range recomposed {
		recomposed[k] += p.SelfWW.At(k)
	}
	for k := range recomposed {
		chk.Scalar(tst, "recomposed == total", 1e-9, recomposed[k], p.Total1D.At(k))
	}
}

func Test_engine05(tst *testing.T) {
	chk.PrintTitle("engine05 (weighted bins track true mean hydration distance)")

	water := []atom.Record{
		{Pos: [3]float64{0, 0, 0}, Weight: 1, FF: formfactor.Water},
		{Pos: [3]float64{1.2, 0, 0}, Weight: 1, FF: formfactor.Water},
	}
	m := atom.NewMolecule(nil, water)
	cfg := testConfig()
	cfg.UseWeightedBins = true
	e := New(cfg, m)
	p := e.CalculateAll()

	if p.SelfWWWeighted.Bins == 0 {
		tst.Fatalf("expected SelfWWWeighted to be populated when UseWeightedBins is set")
	}
	bin := cfg.DAxis.Bin(1.2)
	chk.Scalar(tst, "weighted bin matches unweighted", 1e-12, p.SelfWWWeighted.At(bin), p.SelfWW.At(bin))
	chk.Scalar(tst, "mean distance recovers true pair distance", 1e-9, p.SelfWWWeighted.MeanDistance(bin, -1), 1.2)
}

func sumAll(d histogram.Dist1D) float64 {
	sum := 0.0
	for _, v := range d.Data {
		sum += v
	}
	return sum
}

func bruteForceTotal(recs []atom.Record, d axis.Axis) histogram.Dist1D {
	out := histogram.NewDist1D(d.Bins)
	n := len(recs)
	for i := 0; i < n; i++ {
		out.Data[0] += recs[i].Weight * recs[i].Weight
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := recs[i].Pos[0] - recs[j].Pos[0]
			dy := recs[i].Pos[1] - recs[j].Pos[1]
			dz := recs[i].Pos[2] - recs[j].Pos[2]
			dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
			k := d.Bin(dist)
			if k >= 0 && k < d.Bins {
				out.Data[k] += 2 * recs[i].Weight * recs[j].Weight
			}
		}
	}
	return out
}
