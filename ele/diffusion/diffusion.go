// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diffusion implements integrators for nonlinear diffusion problems
package diffusion

import (
	"github.com/cpmech/gosl/chk"
	"github.com/liangcheng/mfem/ele"
	"github.com/liangcheng/mfem/fes"
	"github.com/liangcheng/mfem/inp"
	"github.com/liangcheng/mfem/mdl/diffusion"
	"gonum.org/v1/gonum/floats"
)

// Diffusion implements an integrator for the diffusion operator expressed as
//
//   R_m = ∫ w k(u) ∇S_m · kcte · ∇u dΩ
//
//   dR_m/du_n = ∫ w ∇S_m · kcte · (k'(u) S_n ∇u + k(u) ∇S_n) dΩ
//
//   Φ = ∫ ½ w k(u) ∇u · kcte · ∇u dΩ   (potential of R only if k is constant)
//
type Diffusion struct {
	Mdl diffusion.Model // model
	W   float64         // weight
	Nip int             // number of integration points; 0 => default

	// cached data
	ndim int         // space dimension
	nd   int         // number of dofs per element
	nq   int         // number of integration points
	kcte [][]float64 // [ndim][ndim] constant part of conductivity
	S    [][]float64 // [nq][nd] shape functions @ integration points
	G    []float64   // [ne*nq*nd*ndim] dS/dx @ integration points
	coef []float64   // [ne*nq] w * ipweight * det(J)

	// cached data @ linearisation point
	kval []float64 // [ne*nq] coef * k(u)
	dkgu []float64 // [ne*nq*ndim] coef * k'(u) * kcte · ∇u
}

// register integrator
func init() {
	ele.SetAllocator("diffusion", func(ndim int, idat *inp.IntegratorData) (ele.Integrator, error) {
		mdl, err := diffusion.New(idat.Model)
		if err != nil {
			return nil, err
		}
		err = mdl.Init(ndim, idat.Prms)
		if err != nil {
			return nil, err
		}
		return &Diffusion{Mdl: mdl, W: idat.Weight, Nip: idat.Nip}, nil
	})
}

// Name returns the name of this integrator
func (o *Diffusion) Name() string { return "diffusion" }

// AssemblePA caches shape functions, gradients and metric terms @ integration points
func (o *Diffusion) AssemblePA(geo *fes.Geometry) (err error) {

	// integration points
	shape := geo.Shape()
	if shape == nil {
		return chk.Err("diffusion integrator: cannot find shape %q", geo.Type)
	}
	ips, err := shape.GetIps(o.Nip)
	if err != nil {
		return
	}
	o.kcte = o.Mdl.Kcte()
	if len(o.kcte) != geo.Ndim {
		return chk.Err("diffusion integrator: model has ndim = %d but geometry has ndim = %d", len(o.kcte), geo.Ndim)
	}
	o.ndim = geo.Ndim
	o.nd = geo.Nd
	o.nq = len(ips)

	// shape functions
	o.S = make([][]float64, o.nq)
	for q, ip := range ips {
		shape.Func(shape.S, shape.DSdR, ip, false)
		o.S[q] = append([]float64{}, shape.S...)
	}

	// gradients and metric terms
	o.G = make([]float64, geo.Ne*o.nq*o.nd*o.ndim)
	o.coef = make([]float64, geo.Ne*o.nq)
	o.kval = make([]float64, geo.Ne*o.nq)
	o.dkgu = make([]float64, geo.Ne*o.nq*o.ndim)
	for e := 0; e < geo.Ne; e++ {
		for q, ip := range ips {
			err = shape.CalcAtIp(geo.X[e], ip, true)
			if err != nil {
				return chk.Err("diffusion integrator: element %d:\n%v", e, err)
			}
			o.coef[e*o.nq+q] = o.W * ip[3] * shape.J
			G := o.grads(e, q)
			for m := 0; m < o.nd; m++ {
				copy(G[m*o.ndim:(m+1)*o.ndim], shape.G[m])
			}
		}
	}
	return
}

// AddMultPA adds R(xe) to ye
func (o *Diffusion) AddMultPA(e0, e1 int, xe, ye []float64) {
	gu := make([]float64, o.ndim)
	kgu := make([]float64, o.ndim)
	for e := e0; e < e1; e++ {
		x, y := xe[e*o.nd:(e+1)*o.nd], ye[e*o.nd:(e+1)*o.nd]
		for q := range o.S {
			G := o.grads(e, q)
			u := o.ipvars(gu, q, G, x)
			o.kdot(kgu, o.coef[e*o.nq+q]*o.Mdl.Kval(u), gu)
			for m := range y {
				y[m] += floats.Dot(G[m*o.ndim:(m+1)*o.ndim], kgu)
			}
		}
	}
}

// EnergyPA returns the sum of energies
func (o *Diffusion) EnergyPA(e0, e1 int, xe []float64) (res float64) {
	gu := make([]float64, o.ndim)
	kgu := make([]float64, o.ndim)
	for e := e0; e < e1; e++ {
		x := xe[e*o.nd : (e+1)*o.nd]
		for q := range o.S {
			u := o.ipvars(gu, q, o.grads(e, q), x)
			o.kdot(kgu, 0.5*o.coef[e*o.nq+q]*o.Mdl.Kval(u), gu)
			res += floats.Dot(gu, kgu)
		}
	}
	return
}

// AssembleGradPA caches k(u) and k'(u) kcte·∇u @ integration points
func (o *Diffusion) AssembleGradPA(e0, e1 int, xe []float64) {
	gu := make([]float64, o.ndim)
	for e := e0; e < e1; e++ {
		x := xe[e*o.nd : (e+1)*o.nd]
		for q := range o.S {
			idx := e*o.nq + q
			u := o.ipvars(gu, q, o.grads(e, q), x)
			o.kval[idx] = o.coef[idx] * o.Mdl.Kval(u)
			o.kdot(o.dkgu[idx*o.ndim:(idx+1)*o.ndim], o.coef[idx]*o.Mdl.DkDu(u), gu)
		}
	}
}

// AddMultGradPA adds dR/dx de to ye
func (o *Diffusion) AddMultGradPA(e0, e1 int, de, ye []float64) {
	gd := make([]float64, o.ndim)
	kgd := make([]float64, o.ndim)
	for e := e0; e < e1; e++ {
		d, y := de[e*o.nd:(e+1)*o.nd], ye[e*o.nd:(e+1)*o.nd]
		for q := range o.S {
			idx := e*o.nq + q
			G := o.grads(e, q)
			du := o.ipvars(gd, q, G, d)
			o.kdot(kgd, o.kval[idx], gd)
			dkgu := o.dkgu[idx*o.ndim : (idx+1)*o.ndim]
			for i := 0; i < o.ndim; i++ {
				kgd[i] += du * dkgu[i]
			}
			for m := range y {
				y[m] += floats.Dot(G[m*o.ndim:(m+1)*o.ndim], kgd)
			}
		}
	}
}

// AssembleGradDiagonalPA adds the diagonal of dR/dx to diag
func (o *Diffusion) AssembleGradDiagonalPA(e0, e1 int, diag []float64) {
	kgm := make([]float64, o.ndim)
	for e := e0; e < e1; e++ {
		y := diag[e*o.nd : (e+1)*o.nd]
		for q, S := range o.S {
			idx := e*o.nq + q
			G := o.grads(e, q)
			dkgu := o.dkgu[idx*o.ndim : (idx+1)*o.ndim]
			for m := range y {
				Gm := G[m*o.ndim : (m+1)*o.ndim]
				o.kdot(kgm, o.kval[idx], Gm)
				y[m] += floats.Dot(Gm, kgm) + S[m]*floats.Dot(Gm, dkgu)
			}
		}
	}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// grads returns the cached gradients of shape functions of element e @ integration point q
//  G[m*ndim+i] = dS_m/dx_i
func (o *Diffusion) grads(e, q int) []float64 {
	n := o.nd * o.ndim
	start := (e*o.nq + q) * n
	return o.G[start : start+n]
}

// ipvars interpolates u and ∇u @ integration point q from nodal values x
func (o *Diffusion) ipvars(gu []float64, q int, G, x []float64) (u float64) {
	for i := 0; i < o.ndim; i++ {
		gu[i] = 0
	}
	for m := 0; m < o.nd; m++ {
		u += o.S[q][m] * x[m]
		for i := 0; i < o.ndim; i++ {
			gu[i] += G[m*o.ndim+i] * x[m]
		}
	}
	return
}

// kdot computes res = α kcte · v
func (o *Diffusion) kdot(res []float64, α float64, v []float64) {
	for i := 0; i < o.ndim; i++ {
		res[i] = 0
		for j := 0; j < o.ndim; j++ {
			res[i] += α * o.kcte[i][j] * v[j]
		}
	}
}
