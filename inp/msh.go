// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Vert holds vertex data
type Vert struct {
	Id  int       `json:"id"`  // id
	Tag int       `json:"tag"` // tag
	C   []float64 `json:"c"`   // coordinates (size==1 or 2)
}

// Cell holds cell data
type Cell struct {
	Id    int    `json:"id"`    // id
	Tag   int    `json:"tag"`   // tag
	Type  string `json:"type"`  // geometry type; e.g. "qua4"
	Verts []int  `json:"verts"` // vertices
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from JSON
	Verts []*Vert `json:"verts"` // vertices
	Cells []*Cell `json:"cells"` // cells

	// derived
	FnamePath  string  `json:"-"` // complete filename path
	Ndim       int     `json:"-"` // space dimension
	Xmin, Xmax float64 `json:"-"` // min and max x-coordinate
	Ymin, Ymax float64 `json:"-"` // min and max y-coordinate

	// derived: maps
	VertTag2verts map[int][]*Vert    `json:"-"` // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell    `json:"-"` // cell tag => set of cells
	Ctype2cells   map[string][]*Cell `json:"-"` // cell type => set of cells
}

// ReadMsh reads a mesh for FE analyses
func ReadMsh(dir, fn string) (o *Mesh, err error) {

	// new mesh
	o = new(Mesh)

	// read file
	o.FnamePath = filepath.Join(dir, fn)
	b, err := readFile(o.FnamePath)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q:\n%v", o.FnamePath, err)
	}

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q:\n%v", o.FnamePath, err)
	}

	// derived data
	err = o.Init()
	if err != nil {
		return nil, chk.Err("mesh file %q is invalid:\n%v", o.FnamePath, err)
	}
	return
}

// Init checks the mesh and computes derived data
func (o *Mesh) Init() (err error) {

	// check
	if len(o.Verts) < 2 {
		return chk.Err("at least 2 vertices are required in mesh")
	}
	if len(o.Cells) < 1 {
		return chk.Err("at least 1 cell is required in mesh")
	}

	// vertex related derived data
	o.Ndim = len(o.Verts[0].C)
	if o.Ndim < 1 || o.Ndim > 2 {
		return chk.Err("space dimension must be 1 or 2. %d is invalid", o.Ndim)
	}
	o.Xmin = o.Verts[0].C[0]
	o.Xmax = o.Xmin
	if o.Ndim > 1 {
		o.Ymin = o.Verts[0].C[1]
		o.Ymax = o.Ymin
	}
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {

		// check vertex id
		if v.Id != i {
			return chk.Err("vertices ids must coincide with order in \"verts\" list. %d != %d", v.Id, i)
		}

		// ndim
		if len(v.C) != o.Ndim {
			return chk.Err("vertex %d has %d coordinates but space dimension is %d", v.Id, len(v.C), o.Ndim)
		}

		// tags
		if v.Tag < 0 {
			verts := o.VertTag2verts[v.Tag]
			o.VertTag2verts[v.Tag] = append(verts, v)
		}

		// limits
		o.Xmin = utl.Min(o.Xmin, v.C[0])
		o.Xmax = utl.Max(o.Xmax, v.C[0])
		if o.Ndim > 1 {
			o.Ymin = utl.Min(o.Ymin, v.C[1])
			o.Ymax = utl.Max(o.Ymax, v.C[1])
		}
	}

	// cell related derived data
	o.CellTag2cells = make(map[int][]*Cell)
	o.Ctype2cells = make(map[string][]*Cell)
	for i, c := range o.Cells {

		// check id and tag
		if c.Id != i {
			return chk.Err("cells ids must coincide with order in \"cells\" list. %d != %d", c.Id, i)
		}
		if c.Tag >= 0 {
			return chk.Err("cells tags must be negative. %d is incorrect", c.Tag)
		}

		// check vertices
		for _, v := range c.Verts {
			if v < 0 || v >= len(o.Verts) {
				return chk.Err("cell %d references vertex %d which does not exist", c.Id, v)
			}
		}

		// maps
		cells := o.CellTag2cells[c.Tag]
		o.CellTag2cells[c.Tag] = append(cells, c)
		cells = o.Ctype2cells[c.Type]
		o.Ctype2cells[c.Type] = append(cells, c)
	}
	return
}

// ExtractCellCoords extracts cell coordinates
//   X -- matrix with coordinates [ndim][nverts]
func (o *Mesh) ExtractCellCoords(cellId int) (X [][]float64) {
	c := o.Cells[cellId]
	X = utl.Alloc(o.Ndim, len(c.Verts))
	for j, v := range c.Verts {
		for i := 0; i < o.Ndim; i++ {
			X[i][j] = o.Verts[v].C[i]
		}
	}
	return
}

// readFile reads a whole file; the panic raised by io.ReadFile becomes an error
func readFile(fn string) (b []byte, err error) {
	defer func() {
		if e := recover(); e != nil {
			err = chk.Err("%v", e)
		}
	}()
	b = io.ReadFile(fn)
	return
}
