// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/james-bowman/sparse"
	"github.com/liangcheng/mfem/op"
)

// FAExtension implements the full assembly strategy: the gradient is a global sparse matrix
// assembled from the element matrices
type FAExtension struct {
	*PAExtension             // residual and energy
	grad         *FAGradient // linearisation; allocated once
}

// NewFAExtension returns a new full assembly extension of nlf
func NewFAExtension(nlf *NonlinearForm) (o *FAExtension) {
	o = &FAExtension{PAExtension: NewPAExtension(nlf)}
	o.grad = &FAGradient{ea: newEAGradient(o.PAExtension)}
	return
}

// GetGradient returns the linearisation @ x
//  Note: the same operator is returned on every call
func (o *FAExtension) GetGradient(x []float64) op.Operator {
	o.checkAssembled("GetGradient")
	o.grad.AssembleGrad(x)
	return o.grad
}

// Update re-reads the restriction and sizes from the space
func (o *FAExtension) Update() {
	o.PAExtension.Update()
	o.grad.Update()
}

// FAGradient implements a linearisation stored as a compressed sparse row matrix
type FAGradient struct {
	ea *EAGradient // element matrices
	A  *op.Sparse  // global matrix
}

// Height returns the size of L-vectors
func (o *FAGradient) Height() int { return o.ea.Height() }

// Width returns the size of L-vectors
func (o *FAGradient) Width() int { return o.ea.Width() }

// IsAssembled tells whether the gradient holds a valid linearisation
func (o *FAGradient) IsAssembled() bool { return o.ea.IsAssembled() && o.A != nil }

// SpMat returns the assembled sparse matrix
func (o *FAGradient) SpMat() *op.Sparse {
	o.ea.checkAssembled("SpMat")
	return o.A
}

// AssembleGrad computes the element matrices @ g and adds them, in element order, to the
// global matrix
func (o *FAGradient) AssembleGrad(g []float64) {
	o.ea.AssembleGrad(g)
	R := o.ea.pa.elemR
	dok := sparse.NewDOK(R.Nl, R.Nl)
	for e := 0; e < R.Ne; e++ {
		dofs := R.Indices[e*R.Nd : (e+1)*R.Nd]
		Ae := o.ea.Ae[e]
		for i, I := range dofs {
			for j, J := range dofs {
				op.AddTo(dok, I, J, Ae.At(i, j))
			}
		}
	}
	o.A = op.NewSparse(dok)
}

// Mult computes y = G x; y is overwritten
func (o *FAGradient) Mult(x, y []float64) {
	o.ea.checkAssembled("Mult")
	op.CheckSizes(o, x, y, "Mult")
	o.A.Mult(x, y)
}

// AssembleDiagonal extracts the diagonal of the global matrix
func (o *FAGradient) AssembleDiagonal(diag []float64) {
	o.ea.checkAssembled("AssembleDiagonal")
	if len(diag) != o.Height() {
		chk.Panic("AssembleDiagonal: vector has size %d but space has %d dofs", len(diag), o.Height())
	}
	o.A.Diagonal(diag)
}

// Prolongation returns the T => L operator of the space
func (o *FAGradient) Prolongation() op.Operator {
	return o.ea.Prolongation()
}

// Update reallocates the element matrices after structural changes; the gradient becomes stale
func (o *FAGradient) Update() {
	o.ea.Update()
	if !o.ea.IsAssembled() {
		o.A = nil
	}
}
