// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fes implements scalar finite element spaces with one dof per mesh vertex
package fes

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/james-bowman/sparse"
	"github.com/liangcheng/mfem/inp"
	"github.com/liangcheng/mfem/op"
	"github.com/liangcheng/mfem/shp"
)

// Space implements a scalar first order (H1) finite element space
//  Notes:
//   L-vectors have one value per mesh vertex
//   T-vectors (true dofs) exclude vertices identified with another one (periodic)
//   element dofs follow the cell vertices order
type Space struct {
	Msh *inp.Mesh // the mesh

	// derived
	shape    *shp.Shape   // reference shape of all cells
	nd       int          // number of dofs per element
	elemR    *Restriction // L <=> E
	prol     op.Operator  // T => L
	ltot     []int        // [nl] L index => T index
	ntrue    int          // number of true dofs
	periodic [][2]int     // identified vertices {slave, master}
	geo      *Geometry    // element geometry
	sequence int          // incremented on every structural change
}

// NewSpace returns a new space on the given mesh
func NewSpace(msh *inp.Mesh) (o *Space, err error) {
	o = &Space{Msh: msh}
	err = o.init()
	if err != nil {
		return nil, err
	}
	return
}

// init builds all derived data
func (o *Space) init() (err error) {

	// shape
	if len(o.Msh.Cells) < 1 {
		return chk.Err("space requires at least one cell")
	}
	ctype := o.Msh.Cells[0].Type
	if len(o.Msh.Ctype2cells) != 1 {
		return chk.Err("all cells must have the same type. %d types found", len(o.Msh.Ctype2cells))
	}
	o.shape = shp.Get(ctype)
	if o.shape == nil {
		return chk.Err("cannot find shape of type %q", ctype)
	}
	if o.shape.Gndim != o.Msh.Ndim {
		return chk.Err("shape %q has geometry dimension %d but mesh has ndim = %d", ctype, o.shape.Gndim, o.Msh.Ndim)
	}
	o.nd = o.shape.Nverts

	// restriction
	indices := make([]int, 0, len(o.Msh.Cells)*o.nd)
	for _, c := range o.Msh.Cells {
		if len(c.Verts) != o.nd {
			return chk.Err("cell %d has %d vertices but shape %q requires %d", c.Id, len(c.Verts), ctype, o.nd)
		}
		indices = append(indices, c.Verts...)
	}
	o.elemR = NewRestriction(len(o.Msh.Verts), o.nd, indices)

	// geometry and prolongation
	o.geo = newGeometry(o)
	return o.initProlongation()
}

// initProlongation builds the T => L map
func (o *Space) initProlongation() (err error) {

	// masters
	nl := o.LocalSize()
	master := make(map[int]int)
	for _, pair := range o.periodic {
		if _, ok := master[pair[0]]; ok {
			return chk.Err("vertex %d is identified with more than one vertex", pair[0])
		}
		master[pair[0]] = pair[1]
	}

	// resolve chains of identifications
	root := func(l int) (int, error) {
		for count := 0; ; count++ {
			m, ok := master[l]
			if !ok {
				return l, nil
			}
			if count > len(master) {
				return 0, chk.Err("identification of vertices has a cycle")
			}
			l = m
		}
	}

	// true dofs: vertices that are not slaves, in ascending order
	o.ltot = make([]int, nl)
	o.ntrue = 0
	for l := 0; l < nl; l++ {
		if _, ok := master[l]; !ok {
			o.ltot[l] = o.ntrue
			o.ntrue++
		}
	}
	for l := range master {
		r, err := root(l)
		if err != nil {
			return err
		}
		o.ltot[l] = o.ltot[r]
	}

	// operator
	if len(master) == 0 {
		o.prol = op.NewIdentity(nl)
		return
	}
	dok := sparse.NewDOK(nl, o.ntrue)
	for l := 0; l < nl; l++ {
		dok.Set(l, o.ltot[l], 1)
	}
	o.prol = op.NewSparse(dok)
	return
}

// LocalSize returns the size of L-vectors
func (o *Space) LocalSize() int { return len(o.Msh.Verts) }

// TrueSize returns the size of T-vectors
func (o *Space) TrueSize() int { return o.ntrue }

// NumElems returns the number of elements
func (o *Space) NumElems() int { return len(o.Msh.Cells) }

// ElemDofs returns the number of dofs per element
func (o *Space) ElemDofs() int { return o.nd }

// Restriction returns the L <=> E operator
func (o *Space) Restriction() *Restriction { return o.elemR }

// Prolongation returns the T => L operator
func (o *Space) Prolongation() op.Operator { return o.prol }

// Geometry returns the element geometry
func (o *Space) Geometry() *Geometry { return o.geo }

// Sequence returns a counter that is incremented on every structural change
func (o *Space) Sequence() int { return o.sequence }

// TrueDof returns the true dof corresponding to local dof l
func (o *Space) TrueDof(l int) int { return o.ltot[l] }

// TrueDofs returns the sorted set of true dofs corresponding to the given local dofs
func (o *Space) TrueDofs(ldofs []int) (tdofs []int) {
	used := make(map[int]bool)
	for _, l := range ldofs {
		t := o.ltot[l]
		if !used[t] {
			used[t] = true
			tdofs = append(tdofs, t)
		}
	}
	sort.Ints(tdofs)
	return
}

// GetTrueValues extracts the T-vector tx from the L-vector x
//  Note: the value of a true dof is taken from its own vertex (never from a slave)
func (o *Space) GetTrueValues(x, tx []float64) {
	for l, t := range o.ltot {
		if o.isOwner(l) {
			tx[t] = x[l]
		}
	}
}

// isOwner tells whether local dof l owns its true dof
func (o *Space) isOwner(l int) bool {
	for _, pair := range o.periodic {
		if pair[0] == l {
			return false
		}
	}
	return true
}

// SetPeriodic identifies vertices: the value at pair[0] (slave) is the value at pair[1] (master)
func (o *Space) SetPeriodic(pairs [][2]int) (err error) {
	nl := o.LocalSize()
	for _, pair := range pairs {
		if pair[0] < 0 || pair[0] >= nl || pair[1] < 0 || pair[1] >= nl || pair[0] == pair[1] {
			return chk.Err("periodic pair %v is invalid", pair)
		}
	}
	old := o.periodic
	o.periodic = pairs
	err = o.initProlongation()
	if err != nil {
		o.periodic = old
		if e := o.initProlongation(); e != nil {
			return chk.Err("%v\nrestoring previous identification failed:\n%v", err, e)
		}
		return
	}
	o.sequence++
	return
}

// Refine refines the mesh uniformly and rebuilds the space
func (o *Space) Refine() (err error) {
	if len(o.periodic) > 0 {
		return chk.Err("cannot refine space with identified vertices")
	}
	msh, err := o.Msh.Refine()
	if err != nil {
		return
	}
	old := o.Msh
	o.Msh = msh
	err = o.init()
	if err != nil {
		o.Msh = old
		if e := o.init(); e != nil {
			return chk.Err("%v\nrestoring previous mesh failed:\n%v", err, e)
		}
		return
	}
	o.sequence++
	return
}
