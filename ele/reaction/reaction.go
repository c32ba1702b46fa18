// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package reaction implements integrators for nonlinear sources
package reaction

import (
	"github.com/cpmech/gosl/chk"
	"github.com/liangcheng/mfem/ele"
	"github.com/liangcheng/mfem/fes"
	"github.com/liangcheng/mfem/inp"
	"github.com/liangcheng/mfem/mdl/reaction"
)

// Reaction implements an integrator for the nonlinear source term
//
//   R_m = ∫ w f(u) S_m dΩ      Φ = ∫ w Φ(u) dΩ      dR_m/du_n = ∫ w f'(u) S_m S_n dΩ
//
type Reaction struct {
	Mdl reaction.Model // model
	W   float64        // weight
	Nip int            // number of integration points; 0 => default

	// cached data
	nd   int         // number of dofs per element
	nq   int         // number of integration points
	S    [][]float64 // [nq][nd] shape functions @ integration points
	coef []float64   // [ne*nq] w * ipweight * det(J)
	dfdu []float64   // [ne*nq] coef * f'(u) @ linearisation point
}

// register integrator
func init() {
	ele.SetAllocator("reaction", func(ndim int, idat *inp.IntegratorData) (ele.Integrator, error) {
		mdl, err := reaction.New(idat.Model)
		if err != nil {
			return nil, err
		}
		err = mdl.Init(idat.Prms)
		if err != nil {
			return nil, err
		}
		return &Reaction{Mdl: mdl, W: idat.Weight, Nip: idat.Nip}, nil
	})
}

// Name returns the name of this integrator
func (o *Reaction) Name() string { return "reaction" }

// AssemblePA caches shape functions and metric terms @ integration points
func (o *Reaction) AssemblePA(geo *fes.Geometry) (err error) {

	// integration points
	shape := geo.Shape()
	if shape == nil {
		return chk.Err("reaction integrator: cannot find shape %q", geo.Type)
	}
	ips, err := shape.GetIps(o.Nip)
	if err != nil {
		return
	}
	o.nd = geo.Nd
	o.nq = len(ips)

	// shape functions
	o.S = make([][]float64, o.nq)
	for q, ip := range ips {
		shape.Func(shape.S, shape.DSdR, ip, false)
		o.S[q] = append([]float64{}, shape.S...)
	}

	// metric terms
	o.coef = make([]float64, geo.Ne*o.nq)
	o.dfdu = make([]float64, geo.Ne*o.nq)
	for e := 0; e < geo.Ne; e++ {
		for q, ip := range ips {
			err = shape.CalcAtIp(geo.X[e], ip, true)
			if err != nil {
				return chk.Err("reaction integrator: element %d:\n%v", e, err)
			}
			o.coef[e*o.nq+q] = o.W * ip[3] * shape.J
		}
	}
	return
}

// AddMultPA adds R(xe) to ye
func (o *Reaction) AddMultPA(e0, e1 int, xe, ye []float64) {
	for e := e0; e < e1; e++ {
		x, y := xe[e*o.nd:(e+1)*o.nd], ye[e*o.nd:(e+1)*o.nd]
		for q, S := range o.S {
			c := o.coef[e*o.nq+q] * o.Mdl.F(interp(S, x))
			for m := range y {
				y[m] += c * S[m]
			}
		}
	}
}

// EnergyPA returns the sum of energies
func (o *Reaction) EnergyPA(e0, e1 int, xe []float64) (res float64) {
	for e := e0; e < e1; e++ {
		x := xe[e*o.nd : (e+1)*o.nd]
		for q, S := range o.S {
			res += o.coef[e*o.nq+q] * o.Mdl.Phi(interp(S, x))
		}
	}
	return
}

// AssembleGradPA caches f'(u) @ integration points
func (o *Reaction) AssembleGradPA(e0, e1 int, xe []float64) {
	for e := e0; e < e1; e++ {
		x := xe[e*o.nd : (e+1)*o.nd]
		for q, S := range o.S {
			o.dfdu[e*o.nq+q] = o.coef[e*o.nq+q] * o.Mdl.DfDu(interp(S, x))
		}
	}
}

// AddMultGradPA adds dR/dx de to ye
func (o *Reaction) AddMultGradPA(e0, e1 int, de, ye []float64) {
	for e := e0; e < e1; e++ {
		d, y := de[e*o.nd:(e+1)*o.nd], ye[e*o.nd:(e+1)*o.nd]
		for q, S := range o.S {
			c := o.dfdu[e*o.nq+q] * interp(S, d)
			for m := range y {
				y[m] += c * S[m]
			}
		}
	}
}

// AssembleGradDiagonalPA adds the diagonal of dR/dx to diag
func (o *Reaction) AssembleGradDiagonalPA(e0, e1 int, diag []float64) {
	for e := e0; e < e1; e++ {
		y := diag[e*o.nd : (e+1)*o.nd]
		for q, S := range o.S {
			for m := range y {
				y[m] += o.dfdu[e*o.nq+q] * S[m] * S[m]
			}
		}
	}
}

// interp interpolates nodal values x @ integration point
func interp(S, x []float64) (u float64) {
	for m, s := range S {
		u += s * x[m]
	}
	return
}
