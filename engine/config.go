// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/AUSAXS/AUSAXS-sub003/axis"
	"github.com/cpmech/gosl/utl"
)

// Variant selects which composite-intensity assembly a CompositeDistanceHistogram
// built from this engine's partials should use.
type Variant int

const (
	SimpleAvg Variant = iota
	ExplicitFF
	FoXSMimic
	CRYSOLMimic
	PepsiMimic
	GridBased
)

func (v Variant) String() string {
	switch v {
	case SimpleAvg:
		return "simple-avg"
	case ExplicitFF:
		return "explicit-ff"
	case FoXSMimic:
		return "foxs-mimic"
	case CRYSOLMimic:
		return "crysol-mimic"
	case PepsiMimic:
		return "pepsi-mimic"
	case GridBased:
		return "grid-based"
	default:
		return "unknown"
	}
}

// Config bundles the axes and toggles read throughout a computation. It is
// captured by value at engine construction and never mutated afterwards,
// so every goroutine sees a frozen snapshot without needing its own lock.
type Config struct {
	DAxis           axis.Axis
	QAxis           []float64
	JobSize         int
	UseWeightedBins bool
	Variant         Variant
	Workers         int
}

// DefaultConfig returns a typical distance/q axis range: 0..1000 Å over
// 1000 bins, 100 q-points, job size 1000 rows, one worker per logical
// core.
func DefaultConfig(workers int) Config {
	if workers < 1 {
		workers = 1
	}
	qMin, qMax := 0.01, 0.5
	qs := utl.LinSpace(qMin, qMax, 100)
	return Config{
		DAxis:           axis.New(0, 1000, 1000),
		QAxis:           qs,
		JobSize:         1000,
		UseWeightedBins: false,
		Variant:         ExplicitFF,
		Workers:         workers,
	}
}

// Frozen returns a deep copy of cfg safe to pass across goroutines: QAxis's
// backing array is copied so a caller mutating their own slice afterwards
// cannot race with the engine.
func (cfg Config) Frozen() Config {
	qs := make([]float64, len(cfg.QAxis))
	copy(qs, cfg.QAxis)
	cfg.QAxis = qs
	return cfg
}
