// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fes

import "github.com/cpmech/gosl/chk"

// Restriction converts local vectors (L; one value per dof) into element vectors (E; one
// contiguous block of Nd values per element) and back
//
//   Mult:          xe[e*nd+i] = x[dof(e,i)]
//   MultTranspose: y[l] = Σ xe[k] for all k with dof(k) == l; k in ascending order
//
type Restriction struct {
	Ne      int   // number of elements
	Nd      int   // number of dofs per element
	Nl      int   // size of local vectors
	Indices []int // [ne*nd] E index => L index

	// gather map (CSR-like): E indices of dof l are gatherIdx[offsets[l]:offsets[l+1]]
	offsets   []int // [nl+1]
	gatherIdx []int // [ne*nd]
}

// NewRestriction returns a new restriction given the element => dof map
func NewRestriction(nl, nd int, indices []int) (o *Restriction) {
	if nd < 1 || len(indices)%nd != 0 {
		chk.Panic("restriction: cannot split %d indices into blocks of %d", len(indices), nd)
	}
	o = &Restriction{Ne: len(indices) / nd, Nd: nd, Nl: nl, Indices: indices}
	o.offsets = make([]int, nl+1)
	for k, l := range indices {
		if l < 0 || l >= nl {
			chk.Panic("restriction: E index %d references dof %d which is out of range [0,%d)", k, l, nl)
		}
		o.offsets[l+1]++
	}
	for l := 0; l < nl; l++ {
		o.offsets[l+1] += o.offsets[l]
	}
	o.gatherIdx = make([]int, len(indices))
	pos := make([]int, nl)
	copy(pos, o.offsets[:nl])
	for k, l := range indices {
		o.gatherIdx[pos[l]] = k
		pos[l]++
	}
	return
}

// Height returns the size of E-vectors
func (o *Restriction) Height() int { return len(o.Indices) }

// Width returns the size of L-vectors
func (o *Restriction) Width() int { return o.Nl }

// Mult scatters the L-vector x into the E-vector xe
func (o *Restriction) Mult(x, xe []float64) {
	for k, l := range o.Indices {
		xe[k] = x[l]
	}
}

// MultTranspose gathers the E-vector xe into the L-vector y summing shared contributions
func (o *Restriction) MultTranspose(xe, y []float64) {
	for l := 0; l < o.Nl; l++ {
		sum := 0.0
		for _, k := range o.gatherIdx[o.offsets[l]:o.offsets[l+1]] {
			sum += xe[k]
		}
		y[l] = sum
	}
}

// Multiplicity returns the number of element blocks sharing dof l
func (o *Restriction) Multiplicity(l int) int {
	return o.offsets[l+1] - o.offsets[l]
}
