// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package composite

import "github.com/AUSAXS/AUSAXS-sub003/engine"

// The external-tool mimics differ from ExplicitFF only in the default
// atomic Debye-Waller factor they start from, approximating each tool's
// characteristic high-q damping. They are not separate types: a mimic
// is an ExplicitFF constructed with a tool-specific preset.
const (
	foxsDefaultBa   = 0.23
	crysolDefaultBa = 0.30
	pepsiDefaultBa  = 0.18
)

// NewFoXSMimic builds an ExplicitFF preset to FoXS's typical damping.
func NewFoXSMimic(cfg engine.Config, p engine.Partials) *ExplicitFF {
	e := NewExplicitFF(cfg, p)
	e.ApplyAtomicDebyeWallerFactor(foxsDefaultBa)
	return e
}

// NewCRYSOLMimic builds an ExplicitFF preset to CRYSOL's typical damping.
func NewCRYSOLMimic(cfg engine.Config, p engine.Partials) *ExplicitFF {
	e := NewExplicitFF(cfg, p)
	e.ApplyAtomicDebyeWallerFactor(crysolDefaultBa)
	return e
}

// NewPepsiMimic builds an ExplicitFF preset to Pepsi-SAXS's typical damping.
func NewPepsiMimic(cfg engine.Config, p engine.Partials) *ExplicitFF {
	e := NewExplicitFF(cfg, p)
	e.ApplyAtomicDebyeWallerFactor(pepsiDefaultBa)
	return e
}
