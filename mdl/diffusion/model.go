// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diffusion implements models to solve diffusion(-like) problems
package diffusion

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines diffusion models
//
//   kten = kval(u) * kcte
//
type Model interface {
	Init(ndim int, prms dbf.Params) error // Init initialises this structure
	Kval(u float64) float64               // Kval computes k(u)
	DkDu(u float64) float64               // DkDu computes dk/du
	Kcte() [][]float64                    // Kcte returns the constant part of the conductivity tensor
}

// New diffusion model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'diffusion' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}

