// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reaction

import (
	"math"

	"github.com/cpmech/gosl/fun/dbf"
)

// Exp implements an exponential (Bratu) source
//
//   f = c exp(u)      Φ = c exp(u)
//
type Exp struct {
	C float64 // coefficient
}

// add model to factory
func init() {
	allocators["exp"] = func() Model { return &Exp{C: 1} }
}

// Init initialises this structure
func (o *Exp) Init(prms dbf.Params) (err error) {
	return connect(prms, "exp", []string{"c"}, []*float64{&o.C})
}

// F computes f(u)
func (o *Exp) F(u float64) float64 { return o.C * math.Exp(u) }

// DfDu computes df/du
func (o *Exp) DfDu(u float64) float64 { return o.C * math.Exp(u) }

// Phi computes Φ(u)
func (o *Exp) Phi(u float64) float64 { return o.C * math.Exp(u) }
