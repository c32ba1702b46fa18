// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
	"github.com/liangcheng/mfem/op"
	"gonum.org/v1/gonum/floats"
)

// Differentiable defines nonlinear operators with a linearisation
type Differentiable interface {
	op.Operator
	GetGradient(x []float64) op.Operator
}

// CheckGradient compares the linearisation @ x with central differences of the residual,
// column by column
func CheckGradient(tst *testing.T, F Differentiable, x []float64, tol float64, verbose bool) {
	n := F.Width()
	G := F.GetGradient(x)
	h := 1e-6
	tmp := make([]float64, n)
	col := make([]float64, n)
	unit := make([]float64, n)
	rp := make([]float64, n)
	rm := make([]float64, n)
	num := make([]float64, n)
	for j := 0; j < n; j++ {

		// analytical
		unit[j] = 1
		G.Mult(unit, col)
		unit[j] = 0

		// numerical
		copy(tmp, x)
		tmp[j] = x[j] + h
		F.Mult(tmp, rp)
		tmp[j] = x[j] - h
		F.Mult(tmp, rm)
		floats.SubTo(num, rp, rm)
		floats.Scale(1.0/(2.0*h), num)

		// compare
		diff := floats.Distance(col, num, math.Inf(1))
		if verbose {
			io.Pf("column %2d: |ana - num| = %g\n", j, diff)
		}
		if diff > tol {
			tst.Errorf("column %d of gradient failed: |ana - num| = %g > %g\n", j, diff, tol)
			return
		}
	}
}

// CheckEnergy compares the residual @ x with central differences of the energy
func CheckEnergy(tst *testing.T, F op.Operator, energy func(x []float64) float64, x []float64, tol float64, verbose bool) {
	n := F.Width()
	r := make([]float64, n)
	F.Mult(x, r)
	h := 1e-6
	tmp := make([]float64, n)
	copy(tmp, x)
	for j := 0; j < n; j++ {
		tmp[j] = x[j] + h
		ep := energy(tmp)
		tmp[j] = x[j] - h
		em := energy(tmp)
		tmp[j] = x[j]
		num := (ep - em) / (2.0 * h)
		diff := math.Abs(r[j] - num)
		if verbose {
			io.Pf("dΦ/dx%d: R = %15.10f  num = %15.10f  diff = %g\n", j, r[j], num, diff)
		}
		if diff > tol {
			tst.Errorf("dΦ/dx%d failed: |R - num| = %g > %g\n", j, diff, tol)
			return
		}
	}
}

// CheckDiagonal compares the assembled diagonal of G with the entries probed by unit vectors
func CheckDiagonal(tst *testing.T, G op.Operator, tol float64, verbose bool) {
	da, ok := G.(op.DiagonalAssembler)
	if !ok {
		tst.Errorf("operator does not implement AssembleDiagonal\n")
		return
	}
	n := G.Width()
	diag := make([]float64, n)
	da.AssembleDiagonal(diag)
	unit := make([]float64, n)
	col := make([]float64, n)
	for i := 0; i < n; i++ {
		unit[i] = 1
		G.Mult(unit, col)
		unit[i] = 0
		diff := math.Abs(diag[i] - col[i])
		if verbose {
			io.Pf("G%d%d: diag = %15.10f  probed = %15.10f  diff = %g\n", i, i, diag[i], col[i], diff)
		}
		if diff > tol {
			tst.Errorf("diagonal %d failed: |diag - probed| = %g > %g\n", i, diff, tol)
			return
		}
	}
}

// CheckLinearity checks that G(α u + β v) = α G u + β G v
func CheckLinearity(tst *testing.T, G op.Operator, u, v []float64, α, β, tol float64, verbose bool) {
	n := G.Width()
	w := make([]float64, n)
	floats.AddScaledTo(w, floats.ScaleTo(w, α, u), β, v)
	Gw := make([]float64, G.Height())
	Gu := make([]float64, G.Height())
	Gv := make([]float64, G.Height())
	G.Mult(w, Gw)
	G.Mult(u, Gu)
	G.Mult(v, Gv)
	floats.Scale(α, Gu)
	floats.AddScaled(Gu, β, Gv)
	diff := floats.Distance(Gw, Gu, math.Inf(1))
	if verbose {
		io.Pf("linearity: |G(αu+βv) - αGu - βGv| = %g\n", diff)
	}
	if diff > tol {
		tst.Errorf("linearity failed: difference = %g > %g\n", diff, tol)
	}
}
