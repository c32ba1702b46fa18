// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fes

import "github.com/liangcheng/mfem/shp"

// Geometry holds the element data handed to integrators when caching quadrature data
type Geometry struct {
	Ne   int           // number of elements
	Nd   int           // number of dofs (vertices) per element
	Ndim int           // space dimension
	Type string        // geometry type of all elements; e.g. "qua4"
	X    [][][]float64 // [ne][ndim][nd] coordinates of element vertices

	// Share holds, for each E entry, 1 / number of elements sharing its dof.
	// Collocated integrators use it to keep pointwise values after gathering
	Share []float64 // [ne*nd]
}

// newGeometry extracts element coordinates from the space's mesh
func newGeometry(o *Space) (geo *Geometry) {
	msh := o.Msh
	geo = &Geometry{Ne: len(msh.Cells), Nd: o.nd, Ndim: msh.Ndim, Type: o.shape.Type}
	geo.X = make([][][]float64, geo.Ne)
	for e := range msh.Cells {
		geo.X[e] = msh.ExtractCellCoords(e)
	}
	geo.Share = make([]float64, len(o.elemR.Indices))
	for k, l := range o.elemR.Indices {
		geo.Share[k] = 1.0 / float64(o.elemR.Multiplicity(l))
	}
	return
}

// Shape returns a new shape structure (with its own scratchpad) for the elements' geometry
func (o *Geometry) Shape() *shp.Shape {
	return shp.Get(o.Type)
}
