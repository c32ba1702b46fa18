// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import "github.com/cpmech/gosl/chk"

// edgeKey identifies an edge by its sorted vertex ids
type edgeKey struct{ a, b int }

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Refine returns a new mesh obtained by splitting every cell uniformly
//  lin2 => 2 children, qua4 => 4 children, tri3 => 4 children
//  Notes: midpoints are shared among neighbours; a midpoint inherits the tag of its
//         edge vertices when both have the same negative tag; children inherit cell tags
func (o *Mesh) Refine() (r *Mesh, err error) {

	// copy vertices
	r = new(Mesh)
	r.FnamePath = o.FnamePath
	for _, v := range o.Verts {
		r.Verts = append(r.Verts, &Vert{Id: v.Id, Tag: v.Tag, C: append([]float64{}, v.C...)})
	}

	// new vertex at the average of a set of vertices
	addVert := func(tag int, ids ...int) int {
		c := make([]float64, o.Ndim)
		for _, id := range ids {
			for i := 0; i < o.Ndim; i++ {
				c[i] += o.Verts[id].C[i] / float64(len(ids))
			}
		}
		id := len(r.Verts)
		r.Verts = append(r.Verts, &Vert{Id: id, Tag: tag, C: c})
		return id
	}

	// shared midpoints
	mids := make(map[edgeKey]int)
	midpoint := func(a, b int) int {
		key := newEdgeKey(a, b)
		if id, ok := mids[key]; ok {
			return id
		}
		tag := 0
		if o.Verts[a].Tag < 0 && o.Verts[a].Tag == o.Verts[b].Tag {
			tag = o.Verts[a].Tag
		}
		id := addVert(tag, key.a, key.b)
		mids[key] = id
		return id
	}

	// split cells
	addCell := func(c *Cell, verts ...int) {
		r.Cells = append(r.Cells, &Cell{Id: len(r.Cells), Tag: c.Tag, Type: c.Type, Verts: verts})
	}
	for _, c := range o.Cells {
		v := c.Verts
		switch c.Type {
		case "lin2":
			m := midpoint(v[0], v[1])
			addCell(c, v[0], m)
			addCell(c, m, v[1])
		case "qua4":
			e01 := midpoint(v[0], v[1])
			e12 := midpoint(v[1], v[2])
			e23 := midpoint(v[2], v[3])
			e30 := midpoint(v[3], v[0])
			ctr := addVert(0, v[0], v[1], v[2], v[3])
			addCell(c, v[0], e01, ctr, e30)
			addCell(c, e01, v[1], e12, ctr)
			addCell(c, ctr, e12, v[2], e23)
			addCell(c, e30, ctr, e23, v[3])
		case "tri3":
			e01 := midpoint(v[0], v[1])
			e12 := midpoint(v[1], v[2])
			e20 := midpoint(v[2], v[0])
			addCell(c, v[0], e01, e20)
			addCell(c, e01, v[1], e12)
			addCell(c, e20, e12, v[2])
			addCell(c, e01, e12, e20)
		default:
			return nil, chk.Err("cannot refine cell %d with type %q", c.Id, c.Type)
		}
	}

	// derived data
	err = r.Init()
	return
}
