// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/mfem
	Verbose bool   `json:"verbose"` // show messages
}

// IntegratorData holds the data of one per-element integrator
type IntegratorData struct {
	Type   string     `json:"type"`   // type of integrator; e.g. "nodal", "reaction", "diffusion"
	Model  string     `json:"model"`  // name of model; e.g. "pow", "exp", "m1"
	Prms   dbf.Params `json:"prms"`   // model parameters
	Nip    int        `json:"nip"`    // number of integration points; 0 => use default
	Weight float64    `json:"weight"` // multiplier; 0 => 1
}

// AssemblyData holds data defining the assembly strategy
type AssemblyData struct {
	Level    string `json:"level"`    // "partial", "element" or "full"; "" => "partial"
	Nworkers int    `json:"nworkers"` // number of concurrent element partitions; 0 => 1
}

// NodeBc holds essential boundary conditions on tagged vertices
type NodeBc struct {
	Tag int `json:"tag"` // tag of vertices
}

// IniData holds the initial state
type IniData struct {
	Cte  float64   `json:"cte"`  // constant value at all vertices
	Vals []float64 `json:"vals"` // values at each vertex (overrides Cte)
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data        Data              `json:"data"`        // global simulation data
	Mshfile     string            `json:"mshfile"`     // mesh filename; relative to the .sim directory
	Mesh        *Mesh             `json:"mesh"`        // inline mesh (used if Mshfile is empty)
	Integrators []*IntegratorData `json:"integrators"` // ordered list of integrators
	Assembly    AssemblyData      `json:"assembly"`    // assembly strategy
	NodeBcs     []*NodeBc         `json:"nodebcs"`     // essential boundary conditions
	Periodic    [][2]int          `json:"periodic"`    // pairs of identified vertices {slave, master}
	Ini         IniData           `json:"ini"`         // initial state
	Refine      int               `json:"refine"`      // number of uniform refinements to apply after the first run

	// derived
	Key    string // simulation key; e.g. mysim01.sim => mysim01
	DirOut string // directory to save results
	Ndim   int    // space dimension
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// new sim
	o = new(Simulation)

	// read file
	b, err := readFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	dir := os.ExpandEnv(filepath.Dir(simfilepath))
	o.Key = io.FnKey(filepath.Base(simfilepath))

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/mfem/" + o.Key
	}

	// mesh
	if o.Mshfile != "" {
		o.Mesh, err = ReadMsh(dir, o.Mshfile)
		if err != nil {
			return nil, err
		}
	} else {
		if o.Mesh == nil {
			return nil, chk.Err("simulation file %q must have either \"mshfile\" or \"mesh\"", simfilepath)
		}
		o.Mesh.FnamePath = simfilepath
		err = o.Mesh.Init()
		if err != nil {
			return nil, chk.Err("inline mesh in %q is invalid:\n%v", simfilepath, err)
		}
	}
	o.Ndim = o.Mesh.Ndim

	// integrators
	if len(o.Integrators) < 1 {
		return nil, chk.Err("at least one integrator must be given in %q", simfilepath)
	}
	for i, idat := range o.Integrators {
		if idat.Type == "" {
			return nil, chk.Err("integrator # %d has no type", i)
		}
		if idat.Weight == 0 {
			idat.Weight = 1
		}
	}

	// assembly
	if o.Assembly.Level == "" {
		o.Assembly.Level = "partial"
	}
	if o.Assembly.Nworkers < 1 {
		o.Assembly.Nworkers = 1
	}

	// boundary conditions
	for _, bc := range o.NodeBcs {
		if _, ok := o.Mesh.VertTag2verts[bc.Tag]; !ok {
			return nil, chk.Err("cannot find vertices with tag = %d for essential boundary condition", bc.Tag)
		}
	}

	// periodic pairs
	nv := len(o.Mesh.Verts)
	for _, pair := range o.Periodic {
		if pair[0] < 0 || pair[0] >= nv || pair[1] < 0 || pair[1] >= nv || pair[0] == pair[1] {
			return nil, chk.Err("periodic pair %v is invalid", pair)
		}
	}

	// initial values
	if len(o.Ini.Vals) > 0 && len(o.Ini.Vals) != nv {
		return nil, chk.Err("number of initial values (%d) must be equal to the number of vertices (%d)", len(o.Ini.Vals), nv)
	}
	return
}

// EssentialVerts returns the ids of all vertices with essential boundary conditions
// sorted as they appear in NodeBcs and then in the mesh
func (o *Simulation) EssentialVerts(msh *Mesh) (ids []int) {
	used := make(map[int]bool)
	for _, bc := range o.NodeBcs {
		for _, v := range msh.VertTag2verts[bc.Tag] {
			if !used[v.Id] {
				used[v.Id] = true
				ids = append(ids, v.Id)
			}
		}
	}
	return
}

// GetInfo returns formatted information
func (o *Simulation) GetInfo() string {
	l := io.Sf("desc        = %q\n", o.Data.Desc)
	l += io.Sf("nverts      = %d\n", len(o.Mesh.Verts))
	l += io.Sf("ncells      = %d\n", len(o.Mesh.Cells))
	l += io.Sf("ndim        = %d\n", o.Ndim)
	l += io.Sf("assembly    = %s (nworkers = %d)\n", o.Assembly.Level, o.Assembly.Nworkers)
	for i, idat := range o.Integrators {
		l += io.Sf("integrator  = %d: %s (model = %q, nip = %d)\n", i, idat.Type, idat.Model, idat.Nip)
	}
	return l
}
