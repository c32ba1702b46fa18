// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package nodal implements collocated (pointwise) integrators
package nodal

import (
	"github.com/cpmech/gosl/chk"
	"github.com/liangcheng/mfem/ele"
	"github.com/liangcheng/mfem/fes"
	"github.com/liangcheng/mfem/inp"
	"github.com/liangcheng/mfem/mdl/reaction"
)

// Nodal implements an integrator evaluating a source at each dof
//
//   R_i = w f(x_i)      Φ = Σ_i w Φ(x_i)      dR_i/dx_j = δij w f'(x_i)
//
type Nodal struct {
	Mdl reaction.Model // model
	W   float64        // weight

	// cached data
	nd    int       // number of dofs per element
	share []float64 // [ne*nd] weight of each E entry
	dfe   []float64 // [ne*nd] w share f'(xe) @ linearisation point
}

// register integrator
func init() {
	ele.SetAllocator("nodal", func(ndim int, idat *inp.IntegratorData) (ele.Integrator, error) {
		mdl, err := reaction.New(idat.Model)
		if err != nil {
			return nil, err
		}
		err = mdl.Init(idat.Prms)
		if err != nil {
			return nil, err
		}
		return &Nodal{Mdl: mdl, W: idat.Weight}, nil
	})
}

// Name returns the name of this integrator
func (o *Nodal) Name() string { return "nodal" }

// AssemblePA caches the share of each E entry
func (o *Nodal) AssemblePA(geo *fes.Geometry) (err error) {
	if len(geo.Share) != geo.Ne*geo.Nd {
		return chk.Err("nodal integrator: geometry has %d shares but %d are required", len(geo.Share), geo.Ne*geo.Nd)
	}
	o.nd = geo.Nd
	o.share = make([]float64, len(geo.Share))
	for k, s := range geo.Share {
		o.share[k] = o.W * s
	}
	o.dfe = make([]float64, len(geo.Share))
	return
}

// AddMultPA adds R(xe) to ye
func (o *Nodal) AddMultPA(e0, e1 int, xe, ye []float64) {
	for k := e0 * o.nd; k < e1*o.nd; k++ {
		ye[k] += o.share[k] * o.Mdl.F(xe[k])
	}
}

// EnergyPA returns the sum of energies
func (o *Nodal) EnergyPA(e0, e1 int, xe []float64) (res float64) {
	for k := e0 * o.nd; k < e1*o.nd; k++ {
		res += o.share[k] * o.Mdl.Phi(xe[k])
	}
	return
}

// AssembleGradPA caches f'(xe)
func (o *Nodal) AssembleGradPA(e0, e1 int, xe []float64) {
	for k := e0 * o.nd; k < e1*o.nd; k++ {
		o.dfe[k] = o.share[k] * o.Mdl.DfDu(xe[k])
	}
}

// AddMultGradPA adds dR/dx de to ye
func (o *Nodal) AddMultGradPA(e0, e1 int, de, ye []float64) {
	for k := e0 * o.nd; k < e1*o.nd; k++ {
		ye[k] += o.dfe[k] * de[k]
	}
}

// AssembleGradDiagonalPA adds the diagonal of dR/dx to diag
func (o *Nodal) AssembleGradDiagonalPA(e0, e1 int, diag []float64) {
	for k := e0 * o.nd; k < e1*o.nd; k++ {
		diag[k] += o.dfe[k]
	}
}
