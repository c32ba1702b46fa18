// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/liangcheng/mfem/ele"
	"github.com/liangcheng/mfem/inp"
)

var levels = []AssemblyLevel{Partial, Element, Full}

// newForm allocates and sets up the form defined in a .sim file
func newForm(simfile string, level AssemblyLevel, nworkers int) *NonlinearForm {
	sim, err := inp.ReadSim(simfile)
	if err != nil {
		chk.Panic("%v", err)
	}
	form, err := NewFormFromSim(sim)
	if err != nil {
		chk.Panic("%v", err)
	}
	form.Level = level
	form.Nworkers = nworkers
	form.Setup()
	return form
}

// newIntegrator allocates an integrator or panics
func newIntegrator(ndim int, typ, model string, prms ...*dbf.P) ele.Integrator {
	itg, err := ele.New(ndim, &inp.IntegratorData{Type: typ, Model: model, Prms: prms, Weight: 1})
	if err != nil {
		chk.Panic("%v", err)
	}
	return itg
}

// testState returns a smooth state with n values
func testState(n int) (x []float64) {
	x = make([]float64, n)
	for i := range x {
		x[i] = 0.3*math.Sin(float64(i)) + 0.1*float64(i%3)
	}
	return
}

func Test_ext01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ext01. pointwise square on one quadrilateral")

	for _, level := range levels {
		io.Pforan("level = %v\n", level)
		form := newForm("../inp/data/square.sim", level, 1)
		ext := form.Ext()
		chk.Int(tst, "height", ext.Height(), 4)
		chk.Int(tst, "width", ext.Width(), 4)

		// residual
		x := []float64{1, 2, 3, 4}
		y := make([]float64, 4)
		ext.Mult(x, y)
		chk.Array(tst, "y", 1e-15, y, []float64{1, 4, 9, 16})

		// energy
		chk.Float64(tst, "energy", 1e-14, ext.GetGridFunctionEnergy(x), 100.0/3.0)

		// gradient
		G := ext.GetGradient(x)
		dy := make([]float64, 4)
		G.Mult([]float64{1, 1, 1, 1}, dy)
		chk.Array(tst, "G·1", 1e-15, dy, []float64{2, 4, 6, 8})

		// diagonal
		diag := make([]float64, 4)
		G.(interface{ AssembleDiagonal([]float64) }).AssembleDiagonal(diag)
		chk.Array(tst, "diag", 1e-15, diag, []float64{2, 4, 6, 8})

		// same results on true dofs
		ty := make([]float64, 4)
		form.Mult(x, ty)
		chk.Array(tst, "ty", 1e-15, ty, []float64{1, 4, 9, 16})
		chk.Float64(tst, "energy(form)", 1e-14, form.GetEnergy(x), 100.0/3.0)
	}
}

func Test_ext02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ext02. determinism and number of workers")

	var yref []float64
	for _, nworkers := range []int{1, 2, 3} {
		form := newForm("../inp/data/bratu.sim", Partial, nworkers)
		form.Space.Refine()
		form.Update()
		ext := form.Ext()
		x := testState(ext.Width())
		y1 := make([]float64, ext.Height())
		y2 := make([]float64, ext.Height())
		ext.Mult(x, y1)
		ext.Mult(x, y2)
		for i := range y1 {
			if y1[i] != y2[i] {
				tst.Errorf("nworkers = %d: repeated Mult gave different results: y1[%d] = %v, y2[%d] = %v", nworkers, i, y1[i], i, y2[i])
				return
			}
		}
		if yref == nil {
			yref = y1
			continue
		}
		for i := range y1 {
			if y1[i] != yref[i] {
				tst.Errorf("nworkers = %d: result differs from serial run: y[%d] = %v != %v", nworkers, i, y1[i], yref[i])
				return
			}
		}
	}
}

func Test_ext03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ext03. assembly levels agree")

	var forms []*NonlinearForm
	for _, level := range levels {
		forms = append(forms, newForm("../inp/data/bratu.sim", level, 2))
	}
	n := forms[0].Ext().Width()
	x := testState(n)
	d := testState(n + 3)[3:]

	yref := make([]float64, n)
	gref := make([]float64, n)
	dref := make([]float64, n)
	for k, form := range forms {
		ext := form.Ext()
		y := make([]float64, n)
		g := make([]float64, n)
		diag := make([]float64, n)
		ext.Mult(x, y)
		G := ext.GetGradient(x)
		G.Mult(d, g)
		G.(interface{ AssembleDiagonal([]float64) }).AssembleDiagonal(diag)
		if k == 0 {
			copy(yref, y)
			copy(gref, g)
			copy(dref, diag)
			continue
		}
		io.Pforan("level = %v\n", form.Level)
		chk.Array(tst, "y", 1e-15, y, yref)
		chk.Array(tst, "G d", 1e-14, g, gref)
		chk.Array(tst, "diag", 1e-14, diag, dref)
	}

	// full assembly exposes the matrix
	G := forms[2].Ext().GetGradient(x).(*FAGradient)
	A := G.SpMat()
	chk.Int(tst, "nnz", A.Nnz(), 28) // 2 x 16 element entries minus 4 shared by vertices 1 and 4
	chk.Int(tst, "A.height", A.Height(), 6)
}

func Test_ext04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ext04. gradient, energy and diagonal checks")

	for _, level := range levels {
		io.Pforan("level = %v\n", level)
		form := newForm("../inp/data/bratu.sim", level, 2)
		ext := form.Ext()
		n := ext.Width()
		x := testState(n)

		// linearisation against central differences
		CheckGradient(tst, ext, x, 1e-7, chk.Verbose)

		// residual against central differences of the energy
		CheckEnergy(tst, ext, ext.GetGridFunctionEnergy, x, 1e-7, chk.Verbose)

		// diagonal and linearity
		G := ext.GetGradient(x)
		CheckDiagonal(tst, G, 1e-14, chk.Verbose)
		u := testState(n + 1)[1:]
		v := testState(n + 2)[2:]
		CheckLinearity(tst, G, u, v, 0.7, -1.3, 1e-14, chk.Verbose)
	}
}

func Test_ext05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ext05. nonlinear diffusion")

	sim, err := inp.ReadSim("../inp/data/bratu.sim")
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}
	for _, level := range levels {
		io.Pforan("level = %v\n", level)
		base, err := NewFormFromSim(sim)
		if err != nil {
			tst.Errorf("NewFormFromSim failed:\n%v", err)
			return
		}
		form := NewNonlinearForm(base.Space, level)
		form.Nworkers = 2
		form.AddIntegrator(newIntegrator(2, "diffusion", "m1",
			&dbf.P{N: "a0", V: 1},
			&dbf.P{N: "a1", V: 0.4},
			&dbf.P{N: "a2", V: 0.2},
			&dbf.P{N: "kx", V: 1},
			&dbf.P{N: "ky", V: 2},
		))
		form.AddIntegrator(newIntegrator(2, "nodal", "pow", &dbf.P{N: "c", V: 2}, &dbf.P{N: "n", V: 3}))
		form.Setup()
		ext := form.Ext()
		x := testState(ext.Width())
		CheckGradient(tst, ext, x, 1e-7, chk.Verbose)
		CheckDiagonal(tst, ext.GetGradient(x), 1e-14, chk.Verbose)
	}
}

func Test_ext06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ext06. order of integrators")

	f1 := newForm("../inp/data/bratu.sim", Partial, 1)
	f2 := newForm("../inp/data/bratu.sim", Partial, 1)
	f2.Dnfi[0], f2.Dnfi[1] = f2.Dnfi[1], f2.Dnfi[0]

	n := f1.Ext().Width()
	x := testState(n)
	y1 := make([]float64, n)
	y2 := make([]float64, n)
	f1.Ext().Mult(x, y1)
	f2.Ext().Mult(x, y2)
	chk.Array(tst, "y", 1e-15, y1, y2)

	d := []float64{1, 0, -1, 0.5, 0.25, 2}
	f1.Ext().GetGradient(x).Mult(d, y1)
	f2.Ext().GetGradient(x).Mult(d, y2)
	chk.Array(tst, "G d", 1e-15, y1, y2)
	chk.Float64(tst, "energy", 1e-15, f1.Ext().GetGridFunctionEnergy(x), f2.Ext().GetGridFunctionEnergy(x))
}

func Test_ext07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ext07. partitions")

	p := NewPartitions(10, 3)
	chk.Ints(tst, "bounds", p.Bounds, []int{0, 4, 7, 10})
	chk.Int(tst, "num", p.Num(), 3)

	p = NewPartitions(2, 4)
	chk.Ints(tst, "bounds", p.Bounds, []int{0, 1, 2})

	p = NewPartitions(5, 0)
	chk.Ints(tst, "bounds", p.Bounds, []int{0, 5})

	// every element is visited once
	p = NewPartitions(17, 4)
	count := make([]int, 17)
	p.Run(func(k, e0, e1 int) {
		for e := e0; e < e1; e++ {
			count[e]++
		}
	})
	for e, c := range count {
		if c != 1 {
			tst.Errorf("element %d was visited %d times", e, c)
			return
		}
	}
	sum := p.Sum(func(e0, e1 int) float64 { return float64(e1 - e0) })
	chk.Float64(tst, "sum", 1e-17, sum, 17)

	// levels
	for _, name := range []string{"partial", "PA", "element", "ea", "full", "fa"} {
		level, err := ParseAssemblyLevel(name)
		if err != nil {
			tst.Errorf("ParseAssemblyLevel(%q) failed:\n%v", name, err)
			return
		}
		io.Pforan("%s => %v\n", name, level)
	}
	if _, err := ParseAssemblyLevel("none"); err == nil {
		tst.Errorf("ParseAssemblyLevel should have failed\n")
	}
}
