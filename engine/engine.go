// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package engine implements PartialHistogramEngine: the component that
// holds a molecule's per-body self and cross partial distance
// histograms and recomputes only what changed since the last call.
package engine

import (
	"sync"

	"github.com/cpmech/gosl/chk"

	"github.com/AUSAXS/AUSAXS-sub003/atom"
	"github.com/AUSAXS/AUSAXS-sub003/compact"
	"github.com/AUSAXS/AUSAXS-sub003/formfactor"
	"github.com/AUSAXS/AUSAXS-sub003/histogram"
	"github.com/AUSAXS/AUSAXS-sub003/kernel"
	"github.com/AUSAXS/AUSAXS-sub003/state"
)

// PartialHistogramEngine owns the canonical partial histograms for one
// molecule and the StateManager that tracks which bodies changed since
// the last Calculate/CalculateAll call.
type PartialHistogramEngine struct {
	cfg      Config
	molecule *atom.Molecule
	state    *state.Manager
	pool     *Pool

	bodyCoords     []compact.Coords
	hydrationCoord compact.Coords

	selfAA  []histogram.Dist3D
	crossAA map[[2]int]histogram.Dist3D
	crossAW []histogram.Dist2D
	selfWW  histogram.Dist1D
	// selfWWWeighted tracks the true mean distance contributing to each
	// self_ww bin, computed alongside selfWW only when cfg.UseWeightedBins
	// is set. Zero-valued (Bins == 0) otherwise.
	selfWWWeighted histogram.WeightedDist1D
	total1D        histogram.Dist1D

	initialized bool
	mu          sync.Mutex // guards total1D during the post-merge update phase
}

// New builds an engine bound to m, registering one signaller per body and
// one hydration signaller. A nil molecule is a precondition failure:
// fatal, surfaced immediately.
func New(cfg Config, m *atom.Molecule) *PartialHistogramEngine {
	if m == nil {
		chk.Panic("engine.New: molecule must not be nil")
	}
	st := state.NewManager(m.SizeBody())
	for i, b := range m.Bodies() {
		b.RegisterSignaller(st.Signaller(i))
	}
	m.RegisterHydrationSignaller(st.HydrationSignaller())
	return &PartialHistogramEngine{
		cfg:      cfg.Frozen(),
		molecule: m,
		state:    st,
		pool:     NewPool(cfg.Workers),
	}
}

// Config returns the frozen configuration this engine was built with.
func (e *PartialHistogramEngine) Config() Config { return e.cfg }

// Calculate returns the 1D total histogram, shrunk to the smallest
// prefix ending at the last nonzero bin with a floor of 10 bins.
func (e *PartialHistogramEngine) Calculate() histogram.Dist1D {
	p := e.CalculateAll()
	return shrink(p.Total1D)
}

// CalculateAll runs the full incremental algorithm and returns a
// caller-owned snapshot of every partial plus the resolved total.
func (e *PartialHistogramEngine) CalculateAll() Partials {
	if !e.initialized {
		e.calculateFromScratch()
	} else {
		e.calculateIncremental()
	}
	e.state.Reset()
	return e.snapshot()
}

func (e *PartialHistogramEngine) calculateFromScratch() {
	nBodies := e.molecule.SizeBody()
	e.bodyCoords = make([]compact.Coords, nBodies)
	for i, b := range e.molecule.Bodies() {
		e.bodyCoords[i] = compact.FromRecords(b.Atoms())
	}
	e.hydrationCoord = compact.FromRecords(e.molecule.HydrationAtoms())

	e.selfAA = make([]histogram.Dist3D, nBodies)
	for b := 0; b < nBodies; b++ {
		e.selfAA[b] = e.computeSelfAA(e.bodyCoords[b])
	}

	e.crossAA = make(map[[2]int]histogram.Dist3D)
	for b1 := 0; b1 < nBodies; b1++ {
		for b2 := b1 + 1; b2 < nBodies; b2++ {
			e.crossAA[crossKey(b1, b2)] = e.computeCrossAA(e.bodyCoords[b1], e.bodyCoords[b2])
		}
	}

	e.selfWW = e.computeSelfWW(e.hydrationCoord)

	e.crossAW = make([]histogram.Dist2D, nBodies)
	for b := 0; b < nBodies; b++ {
		e.crossAW[b] = e.computeCrossAW(e.bodyCoords[b], e.hydrationCoord)
	}

	e.total1D = histogram.NewDist1D(e.cfg.DAxis.Bins)
	for b := 0; b < nBodies; b++ {
		e.total1D.CombineInPlace(collapse3Dto1D(e.selfAA[b]))
		e.total1D.CombineInPlace(collapse2Dto1D(e.crossAW[b]))
	}
	for _, d := range e.crossAA {
		e.total1D.CombineInPlace(collapse3Dto1D(d))
	}
	e.total1D.CombineInPlace(e.selfWW)

	e.initialized = true
}

func (e *PartialHistogramEngine) calculateIncremental() {
	internal := e.state.InternallyModified()
	external := e.state.ExternallyModified()
	hydration := e.state.HydrationModified()

	internalSet := toSet(internal)
	dirty := toSet(external)
	for b := range internalSet {
		dirty[b] = struct{}{}
	}

	for _, b := range internal {
		e.bodyCoords[b] = compact.FromRecords(e.molecule.Bodies()[b].Atoms())
		newSelf := e.computeSelfAA(e.bodyCoords[b])
		e.replaceTotal(collapse3Dto1D(e.selfAA[b]), collapse3Dto1D(newSelf))
		e.selfAA[b] = newSelf
	}
	for _, b := range external {
		if _, ok := internalSet[b]; ok {
			continue
		}
		e.bodyCoords[b] = compact.FromRecords(e.molecule.Bodies()[b].Atoms())
	}

	nBodies := len(e.bodyCoords)
	for b1 := 0; b1 < nBodies; b1++ {
		for b2 := b1 + 1; b2 < nBodies; b2++ {
			_, d1 := dirty[b1]
			_, d2 := dirty[b2]
			if !d1 && !d2 {
				continue
			}
			key := crossKey(b1, b2)
			newCross := e.computeCrossAA(e.bodyCoords[b1], e.bodyCoords[b2])
			e.replaceTotal(collapse3Dto1D(e.crossAA[key]), collapse3Dto1D(newCross))
			e.crossAA[key] = newCross
		}
	}

	if hydration {
		e.hydrationCoord = compact.FromRecords(e.molecule.HydrationAtoms())
		newSelfWW := e.computeSelfWW(e.hydrationCoord)
		e.replaceTotal(e.selfWW, newSelfWW)
		e.selfWW = newSelfWW
		for b := 0; b < nBodies; b++ {
			newCrossAW := e.computeCrossAW(e.bodyCoords[b], e.hydrationCoord)
			e.replaceTotal(collapse2Dto1D(e.crossAW[b]), collapse2Dto1D(newCrossAW))
			e.crossAW[b] = newCrossAW
		}
	} else {
		for b := range dirty {
			newCrossAW := e.computeCrossAW(e.bodyCoords[b], e.hydrationCoord)
			e.replaceTotal(collapse2Dto1D(e.crossAW[b]), collapse2Dto1D(newCrossAW))
			e.crossAW[b] = newCrossAW
		}
	}
}

// replaceTotal subtracts the stale collapsed partial from total1D and adds
// the fresh one, under the master histogram mutex, so the running total
// never observes a half-updated partial.
func (e *PartialHistogramEngine) replaceTotal(old, fresh histogram.Dist1D) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.total1D.SubInPlace(old)
	e.total1D.CombineInPlace(fresh)
}

func toSet(ids []int) map[int]struct{} {
	s := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// shrink returns the smallest prefix of d ending at the last nonzero bin,
// with a floor of 10 bins.
func shrink(d histogram.Dist1D) histogram.Dist1D {
	last := -1
	for k, v := range d.Data {
		if v != 0 {
			last = k
		}
	}
	n := last + 1
	if n < 10 {
		n = 10
	}
	if n > d.Bins {
		n = d.Bins
	}
	out := histogram.NewDist1D(n)
	copy(out.Data, d.Data[:n])
	return out
}

func (e *PartialHistogramEngine) computeSelfAA(c compact.Coords) histogram.Dist3D {
	nff := formfactor.Count
	bins := e.cfg.DAxis.Bins
	total := histogram.NewDist3D(nff, bins)
	n := c.Len()
	for i := 0; i < n; i++ {
		ffi := int(c.FF[i])
		total.Add(ffi, ffi, 0, c.W[i]*c.W[i])
	}
	ranges := chunkRanges(n, e.cfg.JobSize)
	locals := make([]histogram.Dist3D, len(ranges))
	e.pool.Map(len(ranges), func(t int) {
		lo, hi := ranges[t][0], ranges[t][1]
		local := histogram.NewDist3D(nff, bins)
		for i := lo; i < hi; i++ {
			for j := i + 1; j < n; j++ {
				r := kernel.Evaluate1(c, c, i, j, e.cfg.DAxis)
				if r.Valid {
					local.Add(r.FFi, r.FFj, r.Bin, kernel.SameSpeciesFactor*r.Weight)
				}
			}
		}
		locals[t] = local
	})
	total.CombineInPlace(histogram.MergeDist3D(locals))
	return total
}

func (e *PartialHistogramEngine) computeCrossAA(a, b compact.Coords) histogram.Dist3D {
	nff := formfactor.Count
	bins := e.cfg.DAxis.Bins
	na := a.Len()
	ranges := chunkRanges(na, e.cfg.JobSize)
	locals := make([]histogram.Dist3D, len(ranges))
	e.pool.Map(len(ranges), func(t int) {
		lo, hi := ranges[t][0], ranges[t][1]
		local := histogram.NewDist3D(nff, bins)
		for i := lo; i < hi; i++ {
			for j := 0; j < b.Len(); j++ {
				r := kernel.Evaluate1(a, b, i, j, e.cfg.DAxis)
				if r.Valid {
					local.Add(r.FFi, r.FFj, r.Bin, kernel.SameSpeciesFactor*r.Weight)
				}
			}
		}
		locals[t] = local
	})
	return histogram.MergeDist3D(locals)
}

func (e *PartialHistogramEngine) computeCrossAW(a, w compact.Coords) histogram.Dist2D {
	nff := formfactor.Count
	bins := e.cfg.DAxis.Bins
	na := a.Len()
	ranges := chunkRanges(na, e.cfg.JobSize)
	locals := make([]histogram.Dist2D, len(ranges))
	e.pool.Map(len(ranges), func(t int) {
		lo, hi := ranges[t][0], ranges[t][1]
		local := histogram.NewDist2D(nff, bins)
		for i := lo; i < hi; i++ {
			for j := 0; j < w.Len(); j++ {
				r := kernel.Evaluate1(a, w, i, j, e.cfg.DAxis)
				if r.Valid {
					local.Add(r.FFi, r.Bin, kernel.CrossSpeciesFactor*r.Weight)
				}
			}
		}
		locals[t] = local
	})
	return histogram.MergeDist2D(locals)
}

func (e *PartialHistogramEngine) computeSelfWW(w compact.Coords) histogram.Dist1D {
	if e.cfg.UseWeightedBins {
		wd := e.computeSelfWWWeighted(w)
		e.selfWWWeighted = wd
		return wd.Dist1D
	}
	e.selfWWWeighted = histogram.WeightedDist1D{}

	bins := e.cfg.DAxis.Bins
	total := histogram.NewDist1D(bins)
	n := w.Len()
	for i := 0; i < n; i++ {
		total.Add(0, w.W[i]*w.W[i])
	}
	ranges := chunkRanges(n, e.cfg.JobSize)
	locals := make([]histogram.Dist1D, len(ranges))
	e.pool.Map(len(ranges), func(t int) {
		lo, hi := ranges[t][0], ranges[t][1]
		local := histogram.NewDist1D(bins)
		for i := lo; i < hi; i++ {
			for j := i + 1; j < n; j++ {
				r := kernel.Evaluate1(w, w, i, j, e.cfg.DAxis)
				if r.Valid {
					local.Add(r.Bin, kernel.SameSpeciesFactor*r.Weight)
				}
			}
		}
		locals[t] = local
	})
	total.CombineInPlace(histogram.MergeDist1D(locals))
	return total
}

// computeSelfWWWeighted is computeSelfWW's counterpart that additionally
// tracks each bin's true weight-weighted mean distance, letting a
// composite variant refine sinc(q·d) against the mean rather than the
// nominal bin center.
func (e *PartialHistogramEngine) computeSelfWWWeighted(w compact.Coords) histogram.WeightedDist1D {
	bins := e.cfg.DAxis.Bins
	total := histogram.NewWeightedDist1D(bins)
	n := w.Len()
	for i := 0; i < n; i++ {
		total.AddWeighted(0, w.W[i]*w.W[i], 0)
	}
	ranges := chunkRanges(n, e.cfg.JobSize)
	locals := make([]histogram.WeightedDist1D, len(ranges))
	e.pool.Map(len(ranges), func(t int) {
		lo, hi := ranges[t][0], ranges[t][1]
		local := histogram.NewWeightedDist1D(bins)
		for i := lo; i < hi; i++ {
			for j := i + 1; j < n; j++ {
				r := kernel.Evaluate1(w, w, i, j, e.cfg.DAxis)
				if r.Valid {
					local.AddWeighted(r.Bin, kernel.SameSpeciesFactor*r.Weight, r.Distance)
				}
			}
		}
		locals[t] = local
	})
	total.CombineInPlace(histogram.MergeWeightedDist1D(locals))
	return total
}
