// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package formfactor holds the closed catalog of atomic form factors used
// to weight the Debye transform, plus the excluded-volume G(q) multiplier.
//
// Each form factor is the usual five-Gaussian-plus-constant approximation:
//
//	f(q) = c + Σ_{i=1}^{5} a_i·exp(-b_i·(q/4π)²)
//
// a fixed-size Gaussian-sum representation laid out the same way as a
// fixed-size material-parameter list: a small, closed array of scalar
// coefficients rather than an open parameter bag.
package formfactor

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Type enumerates the closed set of atomic/pseudo-atomic form-factor
// classes. H-attached variants are folded into their parent heavy atom
// (CH, CH2, CH3, NH, NH2, OH, ...); the two reserved slots Water and
// ExcludedVolume are never ordinary atoms.
type Type int

const (
	C Type = iota
	CH
	CH2
	CH3
	N
	NH
	NH2
	O
	OH
	S
	Water          // W: hydration waters
	ExcludedVolume // X: excluded-volume dummy atoms
	count
)

// Count is the number of form-factor types, reserved slots included.
const Count = int(count)

// CountWithoutExv is the number of ordinary (non-excluded-volume) types,
// used to size the ff1×ff2 tables that never need an X×X entry of their
// own (X has its own dedicated channel in the composite histogram).
const CountWithoutExv = int(ExcludedVolume)

func (t Type) String() string {
	switch t {
	case C:
		return "C"
	case CH:
		return "CH"
	case CH2:
		return "CH2"
	case CH3:
		return "CH3"
	case N:
		return "N"
	case NH:
		return "NH"
	case NH2:
		return "NH2"
	case O:
		return "O"
	case OH:
		return "OH"
	case S:
		return "S"
	case Water:
		return "W"
	case ExcludedVolume:
		return "X"
	default:
		chk.Panic("formfactor: unknown type %d", int(t))
		return ""
	}
}

// Gaussian is a five-Gaussian-plus-constant form factor:
// f(q) = C + Σ A_i·exp(-B_i·(q/4π)²).
type Gaussian struct {
	A [5]float64
	B [5]float64
	C float64
}

// Evaluate computes f(q).
func (g Gaussian) Evaluate(q float64) float64 {
	x := q / (4 * math.Pi)
	x2 := x * x
	f := g.C
	for i := 0; i < 5; i++ {
		f += g.A[i] * math.Exp(-g.B[i]*x2)
	}
	return f
}

// catalog holds the default Gaussian coefficients per type, loosely after
// the Cromer-Mann tables used by CRYSOL/FoXS/Pepsi-SAXS; the water form
// factor (OH-like) is reused for the Water slot, and the excluded-volume
// form factor is a single dummy-sphere Gaussian (its q-dependence is
// dominated by the G(q) multiplier, not by this table).
var catalog = [count]Gaussian{
	C:              {A: [5]float64{2.31, 1.02, 1.5886, 0.865, 0.2156}, B: [5]float64{20.8439, 10.2075, 0.5687, 51.6512, 0}, C: 0.2156},
	CH:             {A: [5]float64{2.31, 1.02, 1.5886, 0.865, 1.0}, B: [5]float64{20.8439, 10.2075, 0.5687, 51.6512, 0}, C: 0.2156},
	CH2:            {A: [5]float64{2.31, 1.02, 1.5886, 0.865, 2.0}, B: [5]float64{20.8439, 10.2075, 0.5687, 51.6512, 0}, C: 0.2156},
	CH3:            {A: [5]float64{2.31, 1.02, 1.5886, 0.865, 3.0}, B: [5]float64{20.8439, 10.2075, 0.5687, 51.6512, 0}, C: 0.2156},
	N:              {A: [5]float64{12.2126, 3.1322, 2.0125, 1.1663, 0}, B: [5]float64{0.0057, 9.8933, 28.9975, 0.5826, 0}, C: -11.529},
	NH:             {A: [5]float64{12.2126, 3.1322, 2.0125, 1.1663, 1.0}, B: [5]float64{0.0057, 9.8933, 28.9975, 0.5826, 0}, C: -11.529},
	NH2:            {A: [5]float64{12.2126, 3.1322, 2.0125, 1.1663, 2.0}, B: [5]float64{0.0057, 9.8933, 28.9975, 0.5826, 0}, C: -11.529},
	O:              {A: [5]float64{3.0485, 2.2868, 1.5463, 0.867, 0}, B: [5]float64{13.2771, 5.7011, 0.3239, 32.9089, 0}, C: 0.2508},
	OH:             {A: [5]float64{3.0485, 2.2868, 1.5463, 0.867, 1.0}, B: [5]float64{13.2771, 5.7011, 0.3239, 32.9089, 0}, C: 0.2508},
	S:              {A: [5]float64{6.9053, 5.2034, 1.4379, 1.5863, 0}, B: [5]float64{1.4679, 22.2151, 0.2536, 56.172, 0}, C: 0.8669},
	Water:          {A: [5]float64{3.0485, 2.2868, 1.5463, 0.867, 1.0}, B: [5]float64{13.2771, 5.7011, 0.3239, 32.9089, 0}, C: 0.2508},
	ExcludedVolume: {A: [5]float64{1.0, 0, 0, 0, 0}, B: [5]float64{0, 0, 0, 0, 0}, C: 0},
}

// Of returns the Gaussian form factor of t.
func Of(t Type) Gaussian {
	if t < 0 || t >= count {
		chk.Panic("formfactor: type index %d out of range", int(t))
	}
	return catalog[t]
}

// ProductTable holds, for every q in a q-axis, the precomputed pairwise
// product f_i(q)·f_j(q) for every (ff1, ff2) pair. Built once per q-axis
// and shared read-only across histograms.
type ProductTable struct {
	nff, nq int
	data    []float64 // [ff1*nff*nq + ff2*nq + q]
}

// NewProductTable precomputes f_i(q)·f_j(q) for every (i,j) in
// [0,nff)×[0,nff) and every q in qs.
func NewProductTable(types []Type, qs []float64) *ProductTable {
	nff, nq := len(types), len(qs)
	t := &ProductTable{nff: nff, nq: nq, data: make([]float64, nff*nff*nq)}
	fq := make([][]float64, nff)
	for i, ty := range types {
		fq[i] = make([]float64, nq)
		g := Of(ty)
		for q := range qs {
			fq[i][q] = g.Evaluate(qs[q])
		}
	}
	for i := 0; i < nff; i++ {
		for j := 0; j < nff; j++ {
			base := (i*nff + j) * nq
			for q := 0; q < nq; q++ {
				t.data[base+q] = fq[i][q] * fq[j][q]
			}
		}
	}
	return t
}

// At returns f_i(q)·f_j(q) for the q-th entry of the axis used to build t.
func (t *ProductTable) At(i, j, q int) float64 {
	return t.data[(i*t.nff+j)*t.nq+q]
}

// GFactorConfig carries the constants needed by the excluded-volume G(q)
// multiplier: G(q) = cx³·exp(-r_m²(cx²-1)q²/4).
//
// r_m folds a 4π/3-sphere-volume normalization and a CRYSOL-style s-to-q
// conversion factor into a single precomputed coefficient rather than
// recomputing it per call.
type GFactorConfig struct {
	// Rm is the average atomic radius (Å) used by the exv Gaussian sphere.
	Rm float64
}

// DefaultGFactorConfig uses the conventional default r_m = 1.62 Å.
func DefaultGFactorConfig() GFactorConfig {
	return GFactorConfig{Rm: 1.62}
}

// sToQFactor converts a Bragg s-coefficient into AUSAXS's internal q
// convention; carried from constants::form_factor::s_to_q_factor.
const sToQFactor = 1.0 / (4 * math.Pi)

// coefficient returns the constant `c` in G(q) = cx³·exp(-c·(cx²-1)·q²),
// equal to pow(4π/3, 3/2)·π·r_m²·s_to_q_factor.
func (cfg GFactorConfig) coefficient() float64 {
	return math.Pow(4*math.Pi/3, 1.5) * math.Pi * cfg.Rm * cfg.Rm * sToQFactor
}

// GFactor evaluates G(q) for the given excluded-volume shape parameter cx.
func (cfg GFactorConfig) GFactor(cx, q float64) float64 {
	c := cfg.coefficient()
	return math.Pow(cx, 3) * math.Exp(-c*(cx*cx-1)*q*q)
}
