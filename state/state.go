// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package state implements StateManager: a fixed-size bit table tracking
// which bodies have been externally (rigid-motion) or internally
// (atom add/remove/reweight) modified since the last histogram
// computation, plus one global hydration-dirty flag.
//
// The cyclic Body <-> engine relationship that a naive observer pointer
// would create is avoided by making the signaller a small value type
// that holds a handle back to the Manager plus a body id, rather than a
// pointer into the engine itself.
package state

// Manager is a fixed-size bit table: three flags per body (external,
// internal, and their union) plus one global hydration flag.
type Manager struct {
	external  []bool
	internal  []bool
	hydration bool
}

// NewManager allocates a table for nBodies bodies, all flags clear.
func NewManager(nBodies int) *Manager {
	return &Manager{
		external: make([]bool, nBodies),
		internal: make([]bool, nBodies),
	}
}

// NumBodies returns the number of bodies the table was sized for.
func (m *Manager) NumBodies() int { return len(m.external) }

// Signaller returns a value bound to bodyID; its ModifiedInternal and
// ModifiedExternal methods set the corresponding bits. It satisfies
// atom.Signaller without state importing atom, so a body's signaller
// field can hold it directly.
func (m *Manager) Signaller(bodyID int) BodySignaller {
	return BodySignaller{m: m, id: bodyID}
}

// HydrationSignaller returns the value bound to the hydration flag.
func (m *Manager) HydrationSignaller() HydrationSignaller {
	return HydrationSignaller{m: m}
}

// BodySignaller is the (state-manager-handle, body-id) pair a Body holds
// instead of a pointer into the engine.
type BodySignaller struct {
	m  *Manager
	id int
}

func (s BodySignaller) ModifiedInternal() { s.m.internal[s.id] = true }
func (s BodySignaller) ModifiedExternal() { s.m.external[s.id] = true }

// HydrationSignaller is the handle a Molecule holds to flip the global
// hydration-dirty flag.
type HydrationSignaller struct{ m *Manager }

func (s HydrationSignaller) ModifiedHydration() { s.m.hydration = true }

// ExternallyModified returns the ids of bodies whose external flag is set.
func (m *Manager) ExternallyModified() []int { return m.flagged(m.external) }

// InternallyModified returns the ids of bodies whose internal flag is set.
func (m *Manager) InternallyModified() []int { return m.flagged(m.internal) }

// AnyModified returns the ids of bodies with either flag set, used by the
// engine to decide which cross-histograms need recomputation.
func (m *Manager) AnyModified() []int {
	out := make([]int, 0, len(m.external))
	for i := range m.external {
		if m.external[i] || m.internal[i] {
			out = append(out, i)
		}
	}
	return out
}

// HydrationModified reports whether the hydration layer changed.
func (m *Manager) HydrationModified() bool { return m.hydration }

func (m *Manager) flagged(bits []bool) []int {
	out := make([]int, 0, len(bits))
	for i, b := range bits {
		if b {
			out = append(out, i)
		}
	}
	return out
}

// Reset clears every flag. Only the engine that owns this Manager should
// call it, once it has consumed the dirty set for a computation pass.
func (m *Manager) Reset() {
	for i := range m.external {
		m.external[i] = false
		m.internal[i] = false
	}
	m.hydration = false
}
