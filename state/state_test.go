// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/AUSAXS/AUSAXS-sub003/atom"
)

func Test_state01(tst *testing.T) {
	chk.PrintTitle("state01 (signaller satisfies atom.Signaller)")

	m := NewManager(3)
	var _ atom.Signaller = m.Signaller(0)
	var _ atom.HydrationSignaller = m.HydrationSignaller()

	m.Signaller(1).ModifiedInternal()
	m.Signaller(2).ModifiedExternal()
	m.HydrationSignaller().ModifiedHydration()

	chk.Ints(tst, "internally modified", m.InternallyModified(), []int{1})
	chk.Ints(tst, "externally modified", m.ExternallyModified(), []int{2})
	chk.Ints(tst, "any modified", m.AnyModified(), []int{1, 2})
	if !m.HydrationModified() {
		tst.Errorf("expected hydration flag set")
	}
}

func Test_state02(tst *testing.T) {
	chk.PrintTitle("state02 (reset clears all)")

	m := NewManager(2)
	m.Signaller(0).ModifiedInternal()
	m.HydrationSignaller().ModifiedHydration()
	m.Reset()

	chk.IntAssert(len(m.InternallyModified()), 0)
	chk.IntAssert(len(m.ExternallyModified()), 0)
	if m.HydrationModified() {
		tst.Errorf("expected hydration flag cleared")
	}
}
