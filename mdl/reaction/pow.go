// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reaction

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Pow implements a power law source
//
//   f = c uⁿ      Φ = c uⁿ⁺¹ / (n+1)
//
type Pow struct {
	C float64 // coefficient
	N float64 // exponent
}

// add model to factory
func init() {
	allocators["pow"] = func() Model { return &Pow{C: 1, N: 1} }
}

// Init initialises this structure
func (o *Pow) Init(prms dbf.Params) (err error) {
	err = connect(prms, "pow", []string{"c", "n"}, []*float64{&o.C, &o.N})
	if err != nil {
		return
	}
	if o.N == -1 {
		return chk.Err("pow model: exponent n = -1 is not supported")
	}
	return
}

// F computes f(u)
func (o *Pow) F(u float64) float64 {
	return o.C * math.Pow(u, o.N)
}

// DfDu computes df/du
func (o *Pow) DfDu(u float64) float64 {
	if o.N == 0 {
		return 0
	}
	return o.C * o.N * math.Pow(u, o.N-1)
}

// Phi computes Φ(u)
func (o *Pow) Phi(u float64) float64 {
	return o.C * math.Pow(u, o.N+1) / (o.N + 1)
}
