// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements per-element nonlinear integrators
package ele

import "github.com/liangcheng/mfem/fes"

// Integrator defines what all integrators must implement
//  Notes:
//   1) all hooks, except AssemblePA, act on full E-vectors (blocks of Nd values per element)
//      but touch only the blocks of elements e0 <= e < e1
//   2) hooks are called concurrently for disjoint element ranges; they must not share scratch data
//   3) contributions are added to ye and diag; energies are returned
type Integrator interface {

	// called once per structural change
	AssemblePA(geo *fes.Geometry) (err error) // caches quadrature data (e.g. shape functions and metric terms)

	// called for each evaluation of the nonlinear operator
	AddMultPA(e0, e1 int, xe, ye []float64)      // ye += R(xe)
	EnergyPA(e0, e1 int, xe []float64) float64 // returns the sum of element energies

	// called for each linearisation
	AssembleGradPA(e0, e1 int, xe []float64)            // caches linearisation data at xe
	AddMultGradPA(e0, e1 int, de, ye []float64)         // ye += dR/dx(xe) de
	AssembleGradDiagonalPA(e0, e1 int, diag []float64) // diag += diagonal of element blocks of dR/dx(xe)
}

// Named defines integrators that can report a name for messages
type Named interface {
	Name() string
}
