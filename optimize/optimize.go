// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package optimize implements a bounded, derivative-free Nelder-Mead
// minimizer: the outer minimizer SmartFitter drives over its enabled
// physical parameters, given an objective func([]float64) float64 and
// parameter bounds/initial guesses. See DESIGN.md for why this is a
// from-scratch implementation rather than a wrapped library call.
package optimize

import (
	"math"
	"sort"
)

// Bounds is an inclusive [Lo, Hi] range a parameter is clamped to.
type Bounds struct{ Lo, Hi float64 }

func (b Bounds) clamp(v float64) float64 {
	if v < b.Lo {
		return b.Lo
	}
	if v > b.Hi {
		return b.Hi
	}
	return v
}

// Result is the outcome of a minimization run.
type Result struct {
	X      []float64
	FVal   float64
	FEvals int
	Status int // 0 = converged, nonzero = did not converge within MaxIter
}

// Options configures the simplex search. Zero values fall back to
// reasonable defaults in Minimize.
type Options struct {
	MaxIter int
	Tol     float64 // convergence tolerance on simplex spread
}

const (
	alpha = 1.0 // reflection
	gamma = 2.0 // expansion
	rho   = 0.5 // contraction
	sigma = 0.5 // shrink
)

// Minimize runs bounded Nelder-Mead starting from x0 with per-parameter
// bounds, returning the best point found.
func Minimize(f func([]float64) float64, x0 []float64, bounds []Bounds, opts Options) Result {
	n := len(x0)
	if opts.MaxIter <= 0 {
		opts.MaxIter = 200 * (n + 1)
	}
	if opts.Tol <= 0 {
		opts.Tol = 1e-8
	}

	clamp := func(x []float64) []float64 {
		out := make([]float64, n)
		for i, v := range x {
			out[i] = bounds[i].clamp(v)
		}
		return out
	}

	type point struct {
		x []float64
		f float64
	}
	fevals := 0
	eval := func(x []float64) point {
		xc := clamp(x)
		fevals++
		return point{x: xc, f: f(xc)}
	}

	simplex := make([]point, n+1)
	simplex[0] = eval(x0)
	for i := 0; i < n; i++ {
		step := 0.05 * (bounds[i].Hi - bounds[i].Lo)
		if step == 0 {
			step = 0.05
		}
		xi := append([]float64(nil), x0...)
		xi[i] += step
		simplex[i+1] = eval(xi)
	}

	status := 1
	iter := 0
	for ; iter < opts.MaxIter; iter++ {
		sort.Slice(simplex, func(i, j int) bool { return simplex[i].f < simplex[j].f })

		spread := 0.0
		for i := 1; i <= n; i++ {
			spread += math.Abs(simplex[i].f - simplex[0].f)
		}
		if spread < opts.Tol {
			status = 0
			break
		}

		centroid := make([]float64, n)
		for i := 0; i < n; i++ {
			for k := 0; k < n; k++ {
				centroid[k] += simplex[i].x[k]
			}
		}
		for k := range centroid {
			centroid[k] /= float64(n)
		}

		worst := simplex[n]
		reflected := make([]float64, n)
		for k := range reflected {
			reflected[k] = centroid[k] + alpha*(centroid[k]-worst.x[k])
		}
		rp := eval(reflected)

		switch {
		case rp.f < simplex[0].f:
			expanded := make([]float64, n)
			for k := range expanded {
				expanded[k] = centroid[k] + gamma*(reflected[k]-centroid[k])
			}
			ep := eval(expanded)
			if ep.f < rp.f {
				simplex[n] = ep
			} else {
				simplex[n] = rp
			}
		case rp.f < simplex[n-1].f:
			simplex[n] = rp
		default:
			contracted := make([]float64, n)
			for k := range contracted {
				contracted[k] = centroid[k] + rho*(worst.x[k]-centroid[k])
			}
			cp := eval(contracted)
			if cp.f < worst.f {
				simplex[n] = cp
			} else {
				for i := 1; i <= n; i++ {
					shrunk := make([]float64, n)
					for k := range shrunk {
						shrunk[k] = simplex[0].x[k] + sigma*(simplex[i].x[k]-simplex[0].x[k])
					}
					simplex[i] = eval(shrunk)
				}
			}
		}
	}

	sort.Slice(simplex, func(i, j int) bool { return simplex[i].f < simplex[j].f })
	return Result{X: simplex[0].x, FVal: simplex[0].f, FEvals: fevals, Status: status}
}
