// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// Ipoint holds the natural coordinates and weight of an integration point: {r, s, t, w}
type Ipoint []float64

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type      string      // name; e.g. "lin2"
	Func      ShpFunc     // shape/derivs function callback function
	Gndim     int         // geometry of shape; e.g. "lin2" => gnd == 1
	Nverts    int         // number of vertices in cell; e.g. "qua4" => 4
	NatCoords [][]float64 // natural coordinates [gndim][nverts]
	Nedges    int         // number of edges (2D) used by uniform refinement
	EdgeVerts [][]int     // local vertices of each edge [nedges][2]

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][gndim] dRdx == inverse(dxdR)

	// scratchpad: dense copies
	xm    *mat.Dense // [gndim][nverts] coordinates
	dSdRm *mat.Dense // [nverts][gndim] dSdR
	dxdRm *mat.Dense // [gndim][gndim] dxdR
	dRdxm *mat.Dense // [gndim][gndim] dRdx
	Gm    *mat.Dense // [nverts][gndim] G
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns a new Shape structure with its own scratchpad
//  Note: returns nil if geoType is not available
func Get(geoType string) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	return s.GetCopy()
}

// Types returns the names of all available shapes
func Types() (names []string) {
	for name := range factory {
		names = append(names, name)
	}
	return
}

// GetCopy returns a new copy of this shape structure
func (o Shape) GetCopy() *Shape {
	var p Shape
	p.Type = o.Type
	p.Func = o.Func
	p.Gndim = o.Gndim
	p.Nverts = o.Nverts
	p.NatCoords = o.NatCoords
	p.Nedges = o.Nedges
	p.EdgeVerts = o.EdgeVerts
	p.init_scratchpad()
	return &p
}

// IpRealCoords returns the real coordinates (y) of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	o.Func(o.S, o.DSdR, ip, false)
	for i := 0; i < ndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// CalcAtIp calculates volume data such as S and G at natural coordinate r
//  Input:
//   x[ndim][nverts] -- coordinates matrix of element; ndim must be equal to gndim
//   ip              -- integration point
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, ip, derivs)
	if !derivs {
		return
	}
	if len(x) != o.Gndim {
		return chk.Err("coordinates matrix has %d rows but shape %q requires %d", len(x), o.Type, o.Gndim)
	}

	// dxdR := x * dSdR  =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < o.Gndim; i++ {
		o.xm.SetRow(i, x[i][:o.Nverts])
	}
	for n := 0; n < o.Nverts; n++ {
		o.dSdRm.SetRow(n, o.DSdR[n])
	}
	o.dxdRm.Mul(o.xm, o.dSdRm)

	// dRdx := inv(dxdR)
	o.J = mat.Det(o.dxdRm)
	if math.Abs(o.J) < MINDET {
		return chk.Err("inverse of dxdR failed: |det(dxdR)| = %g is smaller than %g", math.Abs(o.J), MINDET)
	}
	err = o.dRdxm.Inverse(o.dxdRm)
	if err != nil {
		return chk.Err("inverse of dxdR failed:\n%v", err)
	}

	// G == dSdx := dSdR * dRdx  =>  dS^m/dx_j := sum_i dS^m/dR_i * dR_i/dx_j
	o.Gm.Mul(o.dSdRm, o.dRdxm)
	for i := 0; i < o.Gndim; i++ {
		mat.Row(o.DxdR[i], i, o.dxdRm)
		mat.Row(o.DRdx[i], i, o.dRdxm)
	}
	for m := 0; m < o.Nverts; m++ {
		mat.Row(o.G[m], m, o.Gm)
	}
	return
}

// init_scratchpad initialise volume data (scratchpad)
func (o *Shape) init_scratchpad() {
	o.S = make([]float64, o.Nverts)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.DxdR = utl.Alloc(o.Gndim, o.Gndim)
	o.DRdx = utl.Alloc(o.Gndim, o.Gndim)
	o.G = utl.Alloc(o.Nverts, o.Gndim)
	o.xm = mat.NewDense(o.Gndim, o.Nverts, nil)
	o.dSdRm = mat.NewDense(o.Nverts, o.Gndim, nil)
	o.dxdRm = mat.NewDense(o.Gndim, o.Gndim, nil)
	o.dRdxm = mat.NewDense(o.Gndim, o.Gndim, nil)
	o.Gm = mat.NewDense(o.Nverts, o.Gndim, nil)
}
