// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffusion

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// M1 implements a model for diffusion problems with nonlinear coefficient
//
//   kten = kval(u) * kcte
//
//   kval = a0  +  a1 u  +  a2 u² +  a3 u³
//
type M1 struct {
	a0, a1, a2, a3 float64
	kcte           [][]float64
}

// m1names holds the names of all parameters known by M1
var m1names = []string{"a0", "a1", "a2", "a3", "k", "kx", "ky"}

// add model to factory
func init() {
	allocators["m1"] = func() Model { return new(M1) }
}

// Init initialises this structure
func (o *M1) Init(ndim int, prms dbf.Params) (err error) {

	// check names
	for _, p := range prms {
		if utl.StrIndexSmall(m1names, p.N) < 0 {
			return chk.Err("M1 model: parameter named %q is invalid", p.N)
		}
	}

	// a[i] parameters
	o.a0, o.a1, o.a2, o.a3 = 0, 0, 0, 0
	prms.Connect(&o.a0, "a0", "a0 M1 model")
	prms.Connect(&o.a1, "a1", "a1 M1 model")
	prms.Connect(&o.a2, "a2", "a2 M1 model")
	prms.Connect(&o.a3, "a3", "a3 M1 model")

	// keys
	keys := []string{"kx"}
	if ndim > 1 {
		keys = []string{"kx", "ky"}
	}

	// kcte parameters
	var kx, ky float64
	kValues, kFound := prms.GetValues(keys)
	if !utl.AllTrue(kFound) {
		p := prms.Find("k")
		if p == nil {
			return chk.Err("M1 model: either 'k' (isotropic) or ['kx', 'ky'] must be given in database of material parameters")
		}
		kx, ky = p.V, p.V
	} else {
		kx = kValues[0]
		if ndim > 1 {
			ky = kValues[1]
		}
	}

	// ktensor
	o.kcte = utl.Alloc(ndim, ndim)
	o.kcte[0][0] = kx
	if ndim > 1 {
		o.kcte[1][1] = ky
	}
	return
}

// Kval computes k(u)
func (o *M1) Kval(u float64) float64 {
	return o.a0 + o.a1*u + o.a2*u*u + o.a3*u*u*u
}

// DkDu computes dk/du
func (o *M1) DkDu(u float64) float64 {
	return o.a1 + 2.0*o.a2*u + 3.0*o.a3*u*u
}

// Kcte returns the constant part of the conductivity tensor
func (o *M1) Kcte() [][]float64 {
	return o.kcte
}

// Kten computes ktensor = kval(u) * kcte
func (o *M1) Kten(kten [][]float64, u float64) {
	kval := o.Kval(u)
	for i := range o.kcte {
		for j := range o.kcte[i] {
			kten[i][j] = kval * o.kcte[i][j]
		}
	}
}
