// Copyright 2024 The AUSAXS-sub003 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compact

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/AUSAXS/AUSAXS-sub003/atom"
	"github.com/AUSAXS/AUSAXS-sub003/formfactor"
)

func Test_compact01(tst *testing.T) {
	chk.PrintTitle("compact01 (snapshot from records)")

	recs := []atom.Record{
		{Pos: [3]float64{0, 0, 0}, Weight: 1, FF: formfactor.C},
		{Pos: [3]float64{1, 2, 3}, Weight: 2, FF: formfactor.N},
	}
	c := FromRecords(recs)
	chk.IntAssert(c.Len(), 2)
	chk.Scalar(tst, "x1", 1e-15, c.X[1], 1)
	chk.Scalar(tst, "y1", 1e-15, c.Y[1], 2)
	chk.Scalar(tst, "z1", 1e-15, c.Z[1], 3)
	chk.Scalar(tst, "w1", 1e-15, c.W[1], 2)
	if c.FF[1] != formfactor.N {
		tst.Errorf("FF[1] = %v, want N", c.FF[1])
	}
}
