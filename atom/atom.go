// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package atom holds the data model the histogram engine consumes: atom
// records, rigid bodies, the hydration layer, and the molecule they
// compose. None of this package reads or writes molecular file formats;
// a caller builds a Molecule directly or through its own collaborator
// code.
package atom

import (
	"github.com/cpmech/gosl/chk"

	"github.com/AUSAXS/AUSAXS-sub003/formfactor"
)

// Record is an immutable scattering center: position, effective charge
// (weight, possibly folding in occupancy), and form-factor type.
type Record struct {
	Pos    [3]float64
	Weight float64
	FF     formfactor.Type
}

// Signaller is the small value a Body holds to flip state bits in a
// state.Manager without holding a back-pointer to either the manager or
// the engine. It is satisfied by the value state.Manager.Signaller(id)
// returns; atom only depends on this narrow interface, never on the
// state package itself, to avoid an import cycle between the data model
// and its observer.
type Signaller interface {
	ModifiedInternal()
	ModifiedExternal()
}

// noopSignaller discards signals; used as a Body's default until an
// engine registers a real signaller, so a standalone Body never needs
// to be wired to an engine up front.
type noopSignaller struct{}

func (noopSignaller) ModifiedInternal() {}
func (noopSignaller) ModifiedExternal() {}

// Body is an ordered collection of atom records sharing a rigid-motion
// history, identified by a stable ID assigned at creation.
type Body struct {
	id        int
	atoms     []Record
	signaller Signaller
}

// NewBody creates a Body with the given stable id and initial atoms.
func NewBody(id int, atoms []Record) *Body {
	return &Body{id: id, atoms: append([]Record(nil), atoms...), signaller: noopSignaller{}}
}

// ID returns the body's stable identifier.
func (b *Body) ID() int { return b.id }

// Atoms returns the body's atom records. The returned slice must be
// treated as read-only by callers outside this package; mutation must go
// through AddAtom/RemoveAtom/Reweight/Translate/Rotate so the right
// change signal fires.
func (b *Body) Atoms() []Record { return b.atoms }

// RegisterSignaller binds the Signaller an engine uses to learn about
// this body's mutations. Exactly one signaller may be registered per
// body; registering twice is a precondition failure.
func (b *Body) RegisterSignaller(s Signaller) {
	if _, ok := b.signaller.(noopSignaller); !ok {
		chk.Panic("atom: body %d already has a registered signaller", b.id)
	}
	if s == nil {
		chk.Panic("atom: cannot register a nil signaller on body %d", b.id)
	}
	b.signaller = s
}

// AddAtom appends an atom and fires the internal change signal (the
// self-histogram must be recomputed).
func (b *Body) AddAtom(a Record) {
	b.atoms = append(b.atoms, a)
	b.signaller.ModifiedInternal()
}

// RemoveAtom removes the atom at index i and fires the internal change
// signal.
func (b *Body) RemoveAtom(i int) {
	if i < 0 || i >= len(b.atoms) {
		chk.Panic("atom: RemoveAtom index %d out of range for body %d with %d atoms", i, b.id, len(b.atoms))
	}
	b.atoms = append(b.atoms[:i], b.atoms[i+1:]...)
	b.signaller.ModifiedInternal()
}

// Reweight changes the weight of the atom at index i and fires the
// internal change signal.
func (b *Body) Reweight(i int, weight float64) {
	if i < 0 || i >= len(b.atoms) {
		chk.Panic("atom: Reweight index %d out of range for body %d with %d atoms", i, b.id, len(b.atoms))
	}
	b.atoms[i].Weight = weight
	b.signaller.ModifiedInternal()
}

// Translate rigidly shifts every atom in the body by d and fires the
// external change signal (only cross-histograms need recomputing).
func (b *Body) Translate(d [3]float64) {
	for i := range b.atoms {
		b.atoms[i].Pos[0] += d[0]
		b.atoms[i].Pos[1] += d[1]
		b.atoms[i].Pos[2] += d[2]
	}
	b.signaller.ModifiedExternal()
}

// Rotate applies a rotation matrix r about the given pivot to every atom
// in the body and fires the external change signal.
func (b *Body) Rotate(r [3][3]float64, pivot [3]float64) {
	for i := range b.atoms {
		p := b.atoms[i].Pos
		p[0] -= pivot[0]
		p[1] -= pivot[1]
		p[2] -= pivot[2]
		x := r[0][0]*p[0] + r[0][1]*p[1] + r[0][2]*p[2]
		y := r[1][0]*p[0] + r[1][1]*p[1] + r[1][2]*p[2]
		z := r[2][0]*p[0] + r[2][1]*p[1] + r[2][2]*p[2]
		b.atoms[i].Pos = [3]float64{x + pivot[0], y + pivot[1], z + pivot[2]}
	}
	b.signaller.ModifiedExternal()
}

// Molecule is a sequence of bodies plus the hydration layer. It enforces
// that every body has exactly one registered signaller (checked at the
// point a signaller is wired in by an engine, not here) and that
// hydration changes fire a flag distinct from any body's flags.
type Molecule struct {
	bodies    []*Body
	hydration []Record
	hydSignal HydrationSignaller
}

// HydrationSignaller is the narrow capability a Molecule uses to tell an
// engine that the hydration layer changed, mirroring Signaller but kept
// as its own type since the hydration layer is a molecule-wide overlay,
// not an ordinary body.
type HydrationSignaller interface {
	ModifiedHydration()
}

type noopHydrationSignaller struct{}

func (noopHydrationSignaller) ModifiedHydration() {}

// NewMolecule creates a Molecule from the given bodies and initial
// hydration atoms. Every atom in hydration must have FF ==
// formfactor.Water; this is a precondition, not validated here since the
// construction path trusts its caller rather than re-checking on every
// call.
func NewMolecule(bodies []*Body, hydration []Record) *Molecule {
	return &Molecule{bodies: bodies, hydration: append([]Record(nil), hydration...), hydSignal: noopHydrationSignaller{}}
}

// Bodies returns the molecule's bodies in order.
func (m *Molecule) Bodies() []*Body { return m.bodies }

// SizeBody returns the number of bodies.
func (m *Molecule) SizeBody() int { return len(m.bodies) }

// SizeAtom returns the total number of atoms across all bodies.
func (m *Molecule) SizeAtom() int {
	n := 0
	for _, b := range m.bodies {
		n += len(b.atoms)
	}
	return n
}

// SizeWater returns the number of hydration atoms.
func (m *Molecule) SizeWater() int { return len(m.hydration) }

// HydrationAtoms returns the hydration layer's atom records.
func (m *Molecule) HydrationAtoms() []Record { return m.hydration }

// RegisterHydrationSignaller binds the signaller an engine uses to learn
// about hydration-layer mutations.
func (m *Molecule) RegisterHydrationSignaller(s HydrationSignaller) {
	if s == nil {
		chk.Panic("atom: cannot register a nil hydration signaller")
	}
	m.hydSignal = s
}

// SetHydration replaces the hydration layer wholesale and fires the
// hydration change signal.
func (m *Molecule) SetHydration(atoms []Record) {
	m.hydration = append([]Record(nil), atoms...)
	m.hydSignal.ModifiedHydration()
}
