// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/liangcheng/mfem/op"
	"gonum.org/v1/gonum/mat"
)

// EAExtension implements the element assembly strategy: the residual is evaluated as in the
// partially assembled strategy but the gradient stores one dense matrix per element
type EAExtension struct {
	*PAExtension             // residual and energy
	grad         *EAGradient // linearisation; allocated once
}

// NewEAExtension returns a new element assembly extension of nlf
func NewEAExtension(nlf *NonlinearForm) (o *EAExtension) {
	o = &EAExtension{PAExtension: NewPAExtension(nlf)}
	o.grad = newEAGradient(o.PAExtension)
	return
}

// GetGradient returns the linearisation @ x
//  Note: the same operator is returned on every call
func (o *EAExtension) GetGradient(x []float64) op.Operator {
	o.checkAssembled("GetGradient")
	o.grad.AssembleGrad(x)
	return o.grad
}

// Update re-reads the restriction and sizes from the space
func (o *EAExtension) Update() {
	o.PAExtension.Update()
	o.grad.Update()
}

// EAGradient implements a linearisation stored as dense element matrices
//
//   G d = Rᵀ blockdiag(A_e) R d
//
type EAGradient struct {
	pa *PAExtension // parent; must outlive the gradient
	Ae []*mat.Dense // [ne] element matrices (nd x nd)
	de []float64    // [ne*nd] probing E-vector

	// state
	seq       int  // sequence number of space when assembled
	nasm      int  // Assemble counter of the extension when assembled
	assembled bool // AssembleGrad was called after the last structural change
}

// newEAGradient returns a new (stale) gradient
func newEAGradient(pa *PAExtension) (o *EAGradient) {
	o = &EAGradient{pa: pa, seq: -1}
	o.Update()
	return
}

// Height returns the size of L-vectors
func (o *EAGradient) Height() int { return o.pa.Height() }

// Width returns the size of L-vectors
func (o *EAGradient) Width() int { return o.pa.Width() }

// IsAssembled tells whether the gradient holds a valid linearisation
func (o *EAGradient) IsAssembled() bool {
	return o.assembled && o.seq == o.pa.seq && o.nasm == o.pa.nasm
}

// ElementMatrix returns the matrix of element e
func (o *EAGradient) ElementMatrix(e int) *mat.Dense { return o.Ae[e] }

// AssembleGrad computes the element matrices @ g by probing the partially assembled
// linearisation with unit vectors; column j of all elements is computed at once
func (o *EAGradient) AssembleGrad(g []float64) {
	o.pa.grad.AssembleGrad(g)
	nd := o.pa.elemR.Nd
	ye := o.pa.ye
	for j := 0; j < nd; j++ {
		fill(o.de, 0)
		for k := j; k < len(o.de); k += nd {
			o.de[k] = 1
		}
		fill(ye, 0)
		for _, itg := range o.pa.nlf.Dnfi {
			o.pa.parts.Run(func(p, e0, e1 int) {
				itg.AddMultGradPA(e0, e1, o.de, ye)
			})
		}
		o.pa.parts.Run(func(p, e0, e1 int) {
			for e := e0; e < e1; e++ {
				o.Ae[e].SetCol(j, ye[e*nd:(e+1)*nd])
			}
		})
	}
	o.seq = o.pa.seq
	o.nasm = o.pa.nasm
	o.assembled = true
}

// Mult computes y = G x; y is overwritten
func (o *EAGradient) Mult(x, y []float64) {
	o.checkAssembled("Mult")
	op.CheckSizes(o, x, y, "Mult")
	nd := o.pa.elemR.Nd
	xe, ye := o.pa.xe, o.pa.ye
	o.pa.elemR.Mult(x, xe)
	o.pa.parts.Run(func(p, e0, e1 int) {
		for e := e0; e < e1; e++ {
			yv := mat.NewVecDense(nd, ye[e*nd:(e+1)*nd])
			yv.MulVec(o.Ae[e], mat.NewVecDense(nd, xe[e*nd:(e+1)*nd]))
		}
	})
	o.pa.elemR.MultTranspose(ye, y)
}

// AssembleDiagonal computes the diagonal of G from the element matrices
func (o *EAGradient) AssembleDiagonal(diag []float64) {
	o.checkAssembled("AssembleDiagonal")
	if len(diag) != o.Height() {
		chk.Panic("AssembleDiagonal: vector has size %d but space has %d dofs", len(diag), o.Height())
	}
	nd := o.pa.elemR.Nd
	ye := o.pa.ye
	o.pa.parts.Run(func(p, e0, e1 int) {
		for e := e0; e < e1; e++ {
			for i := 0; i < nd; i++ {
				ye[e*nd+i] = o.Ae[e].At(i, i)
			}
		}
	})
	o.pa.elemR.MultTranspose(ye, diag)
}

// Prolongation returns the T => L operator of the space
func (o *EAGradient) Prolongation() op.Operator {
	return o.pa.nlf.Space.Prolongation()
}

// Update reallocates the element matrices after structural changes; the gradient becomes stale
func (o *EAGradient) Update() {
	ne, nd := o.pa.elemR.Ne, o.pa.elemR.Nd
	if len(o.de) != ne*nd || len(o.Ae) != ne {
		o.de = make([]float64, ne*nd)
		o.Ae = make([]*mat.Dense, ne)
		for e := range o.Ae {
			o.Ae[e] = mat.NewDense(nd, nd, nil)
		}
	}
	if o.seq != o.pa.seq {
		o.assembled = false
	}
}

// checkAssembled panics if the linearisation is stale
func (o *EAGradient) checkAssembled(caller string) {
	if !o.IsAssembled() {
		chk.Panic("%s: gradient is stale; GetGradient must be called first", caller)
	}
}
