// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_constrained01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("constrained01. essential dofs")

	for _, level := range levels {
		io.Pforan("level = %v\n", level)
		form := newForm("../inp/data/bratu.sim", level, 1)
		chk.Ints(tst, "ess", form.EssTdofs, []int{0, 2, 3, 5})

		// residual is zero at essential dofs
		n := form.Width()
		tx := testState(n)
		ty := make([]float64, n)
		form.Mult(tx, ty)
		for _, t := range form.EssTdofs {
			chk.Float64(tst, io.Sf("ty[%d]", t), 1e-17, ty[t], 0)
		}

		// but not in the extension
		y := make([]float64, n)
		form.Ext().Mult(tx, y)
		if y[0] == 0 {
			tst.Errorf("extension should not touch essential dofs\n")
			return
		}
		chk.Float64(tst, "y[1] = ty[1]", 1e-17, y[1], ty[1])

		// identity rows and columns at essential dofs
		G := form.GetGradient(tx)
		unit := make([]float64, n)
		col := make([]float64, n)
		unit[2] = 1
		G.Mult(unit, col)
		chk.Array(tst, "col 2", 1e-17, col, []float64{0, 0, 1, 0, 0, 0})

		// diagonal
		CheckDiagonal(tst, G, 1e-14, chk.Verbose)
		diag := make([]float64, n)
		G.(*ConstrainedOperator).AssembleDiagonal(diag)
		chk.Float64(tst, "diag[5]", 1e-17, diag[5], 1)
		if !G.(*ConstrainedOperator).IsEssential(3) || G.(*ConstrainedOperator).IsEssential(4) {
			tst.Errorf("essential flags are incorrect\n")
		}
	}
}

func Test_newton01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newton01. Bratu problem")

	for _, level := range levels {
		io.Pforan("level = %v\n", level)
		form := newForm("../inp/data/bratu.sim", level, 2)
		solver := NewNewton(form)
		solver.ShowR = chk.Verbose
		tx := make([]float64, form.Width())
		nit, err := solver.Solve(tx)
		if err != nil {
			tst.Errorf("Solve failed:\n%v", err)
			return
		}
		io.Pforan("nit = %d  x = %v\n", nit, tx)
		if nit > 6 {
			tst.Errorf("too many iterations: %d\n", nit)
			return
		}

		// symmetric solution with fixed boundary values
		chk.Float64(tst, "x1 = x4", 1e-12, tx[1], tx[4])
		chk.Float64(tst, "x0", 1e-15, tx[0], 0)
		chk.Float64(tst, "x5", 1e-15, tx[5], 0)
		if tx[1] <= 0 {
			tst.Errorf("solution at the centre should be positive: %g\n", tx[1])
			return
		}

		// quadratic convergence
		r := solver.Rnorms
		if len(r) > 3 {
			k := len(r) - 2
			rate := math.Log(r[k]) / math.Log(r[k-1])
			io.Pforan("rate = %g\n", rate)
			if rate < 1.5 {
				tst.Errorf("convergence is not quadratic: rate = %g\n", rate)
			}
		}
	}
}

func Test_main01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main01. run simulation with refinement")

	analysis, err := NewMain("../inp/data/bratu.sim", chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	err = analysis.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.Int(tst, "nresults", len(analysis.Results), 2)
	chk.Int(tst, "nelems(0)", analysis.Results[0].Nelems, 2)
	chk.Int(tst, "nelems(1)", analysis.Results[1].Nelems, 8)
	chk.Int(tst, "ntrue(1)", analysis.Results[1].Ntrue, 15)
	for _, res := range analysis.Results {
		if res.Rnorm > 1e-10 {
			tst.Errorf("level %d did not converge: |R| = %g\n", res.Level, res.Rnorm)
		}
	}

	// initial values per vertex
	analysis, err = NewMain("../inp/data/square.sim", chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	chk.Array(tst, "X", 1e-17, analysis.X, []float64{1, 2, 3, 4})
	ty := make([]float64, 4)
	analysis.Form.Mult(analysis.X, ty)
	chk.Array(tst, "R(X)", 1e-15, ty, []float64{1, 4, 9, 16})
}
