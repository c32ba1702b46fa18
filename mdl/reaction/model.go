// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package reaction implements pointwise nonlinear source models f(u) with potential Φ(u) such that dΦ/du = f
package reaction

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// Model defines reaction models
type Model interface {
	Init(prms dbf.Params) error // Init initialises this structure
	F(u float64) float64        // F computes f(u)
	DfDu(u float64) float64     // DfDu computes df/du
	Phi(u float64) float64      // Phi computes the potential Φ(u)
}

// New reaction model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'reaction' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}

// connect checks the names of parameters and connects the given ones to the model variables;
// parameters not given keep the default values
func connect(prms dbf.Params, model string, names []string, vars []*float64) (err error) {
	for _, p := range prms {
		if utl.StrIndexSmall(names, p.N) < 0 {
			return chk.Err("%s model: parameter named %q is invalid", model, p.N)
		}
	}
	optional := make([]bool, len(names))
	for i := range optional {
		optional[i] = true
	}
	prms.ConnectSetOpt(vars, names, optional, model+" model")
	return
}
