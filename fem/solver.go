// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Newton implements Newton's method to find R(tx) = 0
//  Note: the system operator is formed by applying it to unit vectors; thus this solver is
//        meant for small problems and for checking the linearisation
type Newton struct {
	Form  *NonlinearForm // the form
	Atol  float64        // absolute tolerance on |R|
	Rtol  float64        // relative tolerance on |R| / |R0|
	MaxIt int            // max number of iterations
	ShowR bool           // show residual at each iteration

	// history of last solution
	Rnorms []float64 // |R| at each iteration

	// scratch
	r, dx, unit, col []float64 // [nt]
	A                *mat.Dense
}

// NewNewton returns a new solver with default tolerances
func NewNewton(form *NonlinearForm) *Newton {
	return &Newton{Form: form, Atol: 1e-10, Rtol: 1e-12, MaxIt: 20}
}

// Solve updates tx until convergence; values at essential dofs are not changed
func (o *Newton) Solve(tx []float64) (nit int, err error) {

	// resize scratch
	n := o.Form.Width()
	if len(tx) != n {
		return 0, chk.Err("state has size %d but form has %d true dofs", len(tx), n)
	}
	if len(o.r) != n {
		o.r = make([]float64, n)
		o.dx = make([]float64, n)
		o.unit = make([]float64, n)
		o.col = make([]float64, n)
		o.A = mat.NewDense(n, n, nil)
	}

	// iterations
	o.Rnorms = o.Rnorms[:0]
	var r0 float64
	var lu mat.LU
	for nit = 0; nit <= o.MaxIt; nit++ {

		// residual
		o.Form.Mult(tx, o.r)
		rnorm := floats.Norm(o.r, 2)
		o.Rnorms = append(o.Rnorms, rnorm)
		if nit == 0 {
			r0 = rnorm
		}
		if o.ShowR {
			io.Pf("%4d%23.15e\n", nit, rnorm)
		}
		if rnorm < o.Atol+o.Rtol*r0 {
			return
		}
		if nit == o.MaxIt {
			break
		}

		// system matrix
		G := o.Form.GetGradient(tx)
		for j := 0; j < n; j++ {
			o.unit[j] = 1
			G.Mult(o.unit, o.col)
			o.unit[j] = 0
			o.A.SetCol(j, o.col)
		}

		// solve A dx = r
		lu.Factorize(o.A)
		err = lu.SolveVecTo(mat.NewVecDense(n, o.dx), false, mat.NewVecDense(n, o.r))
		if err != nil {
			return nit, chk.Err("linear solver failed at iteration %d:\n%v", nit, err)
		}

		// update
		floats.Sub(tx, o.dx)
	}
	return nit, chk.Err("Newton did not converge after %d iterations. |R| = %g", o.MaxIt, o.Rnorms[len(o.Rnorms)-1])
}
