// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffusion

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/liangcheng/mfem/ele"
	"github.com/liangcheng/mfem/fes"
	"github.com/liangcheng/mfem/inp"
)

// newSpace reads a mesh and returns its space
func newSpace(tst *testing.T, fn string) *fes.Space {
	msh, err := inp.ReadMsh("../../inp/data", fn)
	if err != nil {
		tst.Errorf("ReadMsh failed:\n%v", err)
		return nil
	}
	space, err := fes.NewSpace(msh)
	if err != nil {
		tst.Errorf("NewSpace failed:\n%v", err)
		return nil
	}
	return space
}

func Test_diffusion01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diffusion01. linear")

	space := newSpace(tst, "qua4x2.msh")
	if space == nil {
		return
	}
	geo := space.Geometry()
	R := space.Restriction()

	// k = 2 (anisotropic kcte)
	itg, err := ele.New(2, &inp.IntegratorData{Type: "diffusion", Model: "m1", Weight: 1, Prms: []*dbf.P{
		&dbf.P{N: "a0", V: 2},
		&dbf.P{N: "kx", V: 1},
		&dbf.P{N: "ky", V: 3},
	}})
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	err = itg.AssemblePA(geo)
	if err != nil {
		tst.Errorf("AssemblePA failed:\n%v", err)
		return
	}

	// constant field => zero residual
	xe := make([]float64, R.Height())
	ye := make([]float64, R.Height())
	for i := range xe {
		xe[i] = 1.5
	}
	itg.AddMultPA(0, geo.Ne, xe, ye)
	chk.Array(tst, "R(const)", 1e-15, ye, make([]float64, len(ye)))

	// u = x => flux = -2 in x; R at left/right boundaries = ∓ k kx ∫ S ds
	x := []float64{0, 1, 2, 0, 1, 2}
	y := make([]float64, R.Width())
	R.Mult(x, xe)
	for i := range ye {
		ye[i] = 0
	}
	itg.AddMultPA(0, geo.Ne, xe, ye)
	R.MultTranspose(ye, y)
	io.Pforan("y = %v\n", y)
	chk.Array(tst, "R(x)", 1e-14, y, []float64{-1, 0, 1, -1, 0, 1})

	// energy = ½ k kx |∇u|² area
	chk.Float64(tst, "Φ", 1e-14, itg.EnergyPA(0, geo.Ne, xe), 0.5*2*1*2)

	// derivatives
	x = []float64{0.1, -0.3, 0.7, 0.2, 0.5, 1.1}
	R.Mult(x, xe)
	ele.CheckIntegrator(tst, itg, geo, xe, 1e-8, 1e-8, chk.Verbose)
}

func Test_diffusion02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diffusion02. nonlinear")

	for _, fn := range []string{"qua4x2.msh", "tri3x2.msh"} {
		io.Pfyel("\n%s\n", fn)

		space := newSpace(tst, fn)
		if space == nil {
			return
		}
		geo := space.Geometry()

		// k(u) = 1 + 0.5 u + 0.2 u² + 0.1 u³
		itg, err := ele.New(2, &inp.IntegratorData{Type: "diffusion", Model: "m1", Nip: 1, Weight: 0.5, Prms: []*dbf.P{
			&dbf.P{N: "a0", V: 1},
			&dbf.P{N: "a1", V: 0.5},
			&dbf.P{N: "a2", V: 0.2},
			&dbf.P{N: "a3", V: 0.1},
			&dbf.P{N: "k", V: 1},
		}})
		if err != nil {
			tst.Errorf("New failed:\n%v", err)
			return
		}

		// derivatives (the residual is not the gradient of the energy)
		R := space.Restriction()
		x := make([]float64, R.Width())
		for i := range x {
			x[i] = 0.3*float64(i) - 0.4
		}
		xe := make([]float64, R.Height())
		R.Mult(x, xe)
		ele.CheckIntegrator(tst, itg, geo, xe, 1e-8, 0, chk.Verbose)
	}
}

func Test_diffusion03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diffusion03. errors")

	if _, err := ele.New(2, &inp.IntegratorData{Type: "diffusion", Model: "m1"}); err == nil {
		tst.Errorf("New should have failed without k\n")
	}
	if _, err := ele.New(2, &inp.IntegratorData{Type: "diffusion", Model: "m7"}); err == nil {
		tst.Errorf("New should have failed with unknown model\n")
	}

	// model dimension differs from geometry dimension
	space := newSpace(tst, "qua4x2.msh")
	if space == nil {
		return
	}
	itg, err := ele.New(1, &inp.IntegratorData{Type: "diffusion", Model: "m1", Prms: []*dbf.P{&dbf.P{N: "k", V: 1}}})
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	if err = itg.AssemblePA(space.Geometry()); err == nil {
		tst.Errorf("AssemblePA should have failed\n")
	}
}
