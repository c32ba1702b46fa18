// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/liangcheng/mfem/op"
)

// ConstrainedOperator implements the system operator on true dofs
//
//   A = Pᵀ G P      with A_ij = δij if i or j is essential
//
type ConstrainedOperator struct {
	G op.Operator // L x L linearisation
	P op.Operator // T => L prolongation

	// essential dofs
	ess  []int  // sorted essential true dofs
	mask []bool // [nt] is essential

	// scratch
	z    []float64 // [nt]
	x, y []float64 // [nl]
}

// NewConstrainedOperator returns a new operator; P == nil means identity
func NewConstrainedOperator(G, P op.Operator, ess []int) (o *ConstrainedOperator) {
	if P == nil {
		P = op.NewIdentity(G.Width())
	}
	if G.Height() != G.Width() || P.Height() != G.Width() {
		chk.Panic("NewConstrainedOperator: sizes are inconsistent. G is %d x %d and P is %d x %d", G.Height(), G.Width(), P.Height(), P.Width())
	}
	nt, nl := P.Width(), P.Height()
	o = &ConstrainedOperator{G: G, P: P, mask: make([]bool, nt)}
	o.z = make([]float64, nt)
	o.x = make([]float64, nl)
	o.y = make([]float64, nl)
	o.SetEssential(ess)
	return
}

// SetEssential sets the essential true dofs
func (o *ConstrainedOperator) SetEssential(ess []int) {
	for i := range o.mask {
		o.mask[i] = false
	}
	for _, t := range ess {
		if t < 0 || t >= len(o.mask) {
			chk.Panic("SetEssential: true dof %d is out of range [0, %d)", t, len(o.mask))
		}
		o.mask[t] = true
	}
	o.ess = append(o.ess[:0], ess...)
}

// Height returns the size of T-vectors
func (o *ConstrainedOperator) Height() int { return o.P.Width() }

// Width returns the size of T-vectors
func (o *ConstrainedOperator) Width() int { return o.P.Width() }

// Mult computes ty = A tx; ty is overwritten
func (o *ConstrainedOperator) Mult(tx, ty []float64) {
	op.CheckSizes(o, tx, ty, "Mult")
	copy(o.z, tx)
	for _, t := range o.ess {
		o.z[t] = 0
	}
	o.P.Mult(o.z, o.x)
	o.G.Mult(o.x, o.y)
	multTranspose(o.P, o.y, ty)
	for _, t := range o.ess {
		ty[t] = tx[t]
	}
}

// AssembleDiagonal computes the diagonal of A
//  Note: only available when P is the identity
func (o *ConstrainedOperator) AssembleDiagonal(diag []float64) {
	if !op.IsIdentity(o.P) {
		chk.Panic("AssembleDiagonal: diagonal of the system operator with identified dofs is not available")
	}
	da, ok := o.G.(op.DiagonalAssembler)
	if !ok {
		chk.Panic("AssembleDiagonal: linearisation does not implement AssembleDiagonal")
	}
	da.AssembleDiagonal(diag)
	for _, t := range o.ess {
		diag[t] = 1
	}
}

// IsEssential tells whether true dof t has an essential boundary condition
func (o *ConstrainedOperator) IsEssential(t int) bool { return o.mask[t] }
