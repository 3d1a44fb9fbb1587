// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package atom

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/AUSAXS/AUSAXS-sub003/formfactor"
)

type countingSignaller struct {
	internal, external int
}

func (s *countingSignaller) ModifiedInternal() { s.internal++ }
func (s *countingSignaller) ModifiedExternal() { s.external++ }

func Test_body01(tst *testing.T) {
	chk.PrintTitle("body01 (signal routing)")

	b := NewBody(0, []Record{{Pos: [3]float64{0, 0, 0}, Weight: 1, FF: formfactor.C}})
	sig := &countingSignaller{}
	b.RegisterSignaller(sig)

	b.AddAtom(Record{Pos: [3]float64{1, 0, 0}, Weight: 1, FF: formfactor.C})
	chk.IntAssert(sig.internal, 1)
	chk.IntAssert(sig.external, 0)

	b.Translate([3]float64{10, 0, 0})
	chk.IntAssert(sig.internal, 1)
	chk.IntAssert(sig.external, 1)

	b.Reweight(0, 2)
	chk.IntAssert(sig.internal, 2)
}

func Test_body02(tst *testing.T) {
	chk.PrintTitle("body02 (double-register panics)")

	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("expected a panic on double registration, got none")
		}
	}()
	b := NewBody(0, nil)
	b.RegisterSignaller(&countingSignaller{})
	b.RegisterSignaller(&countingSignaller{}) // must panic
}

func Test_molecule01(tst *testing.T) {
	chk.PrintTitle("molecule01 (sizes)")

	b0 := NewBody(0, []Record{{Weight: 1, FF: formfactor.C}, {Weight: 1, FF: formfactor.C}})
	b1 := NewBody(1, []Record{{Weight: 1, FF: formfactor.N}})
	m := NewMolecule([]*Body{b0, b1}, []Record{{Weight: 1, FF: formfactor.Water}})

	chk.IntAssert(m.SizeBody(), 2)
	chk.IntAssert(m.SizeAtom(), 3)
	chk.IntAssert(m.SizeWater(), 1)
}
