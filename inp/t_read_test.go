// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_msh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh01")

	msh, err := ReadMsh("data", "qua4x2.msh")
	if err != nil {
		tst.Errorf("ReadMsh failed:\n%v", err)
		return
	}
	chk.Int(tst, "ndim", msh.Ndim, 2)
	chk.Int(tst, "nverts", len(msh.Verts), 6)
	chk.Int(tst, "ncells", len(msh.Cells), 2)
	chk.Float64(tst, "xmax", 1e-17, msh.Xmax, 2)
	chk.Float64(tst, "ymax", 1e-17, msh.Ymax, 1)
	chk.Int(tst, "ntag(-1)", len(msh.VertTag2verts[-1]), 2)
	chk.Int(tst, "ntag(-2)", len(msh.VertTag2verts[-2]), 2)
	chk.Int(tst, "nqua4", len(msh.Ctype2cells["qua4"]), 2)

	X := msh.ExtractCellCoords(1)
	io.Pforan("X = %v\n", X)
	chk.Array(tst, "X[0]", 1e-17, X[0], []float64{1, 2, 2, 1})
	chk.Array(tst, "X[1]", 1e-17, X[1], []float64{0, 0, 1, 1})
}

func Test_msh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh02. refinement")

	// quadrilaterals
	msh, err := ReadMsh("data", "qua4x2.msh")
	if err != nil {
		tst.Errorf("ReadMsh failed:\n%v", err)
		return
	}
	ref, err := msh.Refine()
	if err != nil {
		tst.Errorf("Refine failed:\n%v", err)
		return
	}
	chk.Int(tst, "nverts", len(ref.Verts), 15)
	chk.Int(tst, "ncells", len(ref.Cells), 8)
	chk.Int(tst, "ntag(-1)", len(ref.VertTag2verts[-1]), 3)
	chk.Int(tst, "ntag(-2)", len(ref.VertTag2verts[-2]), 3)

	// first child of first cell: {v0, e01, centre, e30}
	c := ref.Cells[0]
	chk.Array(tst, "x(e01)", 1e-17, ref.Verts[c.Verts[1]].C, []float64{0.5, 0})
	chk.Array(tst, "x(ctr)", 1e-17, ref.Verts[c.Verts[2]].C, []float64{0.5, 0.5})
	chk.Array(tst, "x(e30)", 1e-17, ref.Verts[c.Verts[3]].C, []float64{0, 0.5})

	// shared midpoint between the two original cells
	chk.Int(tst, "shared midpoint", ref.Cells[1].Verts[2], ref.Cells[7].Verts[0])

	// area is preserved
	area := 0.0
	for _, cell := range ref.Cells {
		X := ref.ExtractCellCoords(cell.Id)
		area += (X[0][1] - X[0][0]) * (X[1][3] - X[1][0])
	}
	chk.Float64(tst, "area", 1e-15, area, 2)

	// triangles
	msh, err = ReadMsh("data", "tri3x2.msh")
	if err != nil {
		tst.Errorf("ReadMsh failed:\n%v", err)
		return
	}
	ref, err = msh.Refine()
	if err != nil {
		tst.Errorf("Refine failed:\n%v", err)
		return
	}
	chk.Int(tst, "nverts", len(ref.Verts), 9)
	chk.Int(tst, "ncells", len(ref.Cells), 8)
	chk.Int(tst, "ntag(-1)", len(ref.VertTag2verts[-1]), 3)
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01")

	sim, err := ReadSim("data/bratu.sim")
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}
	if chk.Verbose {
		io.Pf("%v", sim.GetInfo())
	}
	if sim.Key != "bratu" {
		tst.Errorf("key is incorrect: %q", sim.Key)
		return
	}
	chk.Int(tst, "ndim", sim.Ndim, 2)
	chk.Int(tst, "nintegrators", len(sim.Integrators), 2)
	chk.Int(tst, "nip", sim.Integrators[1].Nip, 9)
	chk.Float64(tst, "weight", 1e-17, sim.Integrators[0].Weight, 1)
	chk.Int(tst, "nworkers", sim.Assembly.Nworkers, 2)
	chk.Int(tst, "refine", sim.Refine, 1)
	chk.Int(tst, "nprms", len(sim.Integrators[0].Prms), 2)
	chk.Float64(tst, "c", 1e-17, sim.Integrators[1].Prms[0].V, -0.5)
	chk.Ints(tst, "essential", sim.EssentialVerts(sim.Mesh), []int{0, 3, 2, 5})
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. inline mesh and defaults")

	sim, err := ReadSim("data/square.sim")
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}
	if sim.Assembly.Level != "partial" {
		tst.Errorf("default assembly level is incorrect: %q", sim.Assembly.Level)
		return
	}
	chk.Int(tst, "nworkers", sim.Assembly.Nworkers, 1)
	chk.Int(tst, "ncells", len(sim.Mesh.Cells), 1)
	chk.Array(tst, "ini", 1e-17, sim.Ini.Vals, []float64{1, 2, 3, 4})

	// errors
	if _, err = ReadSim("data/nomesh.sim"); err == nil {
		tst.Errorf("ReadSim should have failed without mesh\n")
	}
	if _, err = ReadSim("data/notfound.sim"); err == nil {
		tst.Errorf("ReadSim should have failed with missing file\n")
	}
}
