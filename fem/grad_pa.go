// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/liangcheng/mfem/op"
)

// PAGradient implements the linearisation of a partially assembled form
//
//   G d = Rᵀ Σ_i dR_i/dx(R g) (R d)      g -- point given to AssembleGrad
//
//  States: stale => AssembleGrad => assembled; structural changes make it stale again
type PAGradient struct {
	ext *PAExtension // parent; must outlive the gradient
	ge  []float64    // [ne*nd] linearisation point as E-vector

	// state
	seq       int  // sequence number of space when assembled
	nasm      int  // Assemble counter of the extension when assembled
	assembled bool // AssembleGrad was called after the last structural change
}

// newPAGradient returns a new (stale) gradient
func newPAGradient(ext *PAExtension) *PAGradient {
	return &PAGradient{ext: ext, seq: -1}
}

// Height returns the size of L-vectors
func (o *PAGradient) Height() int { return o.ext.Height() }

// Width returns the size of L-vectors
func (o *PAGradient) Width() int { return o.ext.Width() }

// IsAssembled tells whether the gradient holds a valid linearisation
func (o *PAGradient) IsAssembled() bool {
	return o.assembled && o.seq == o.ext.seq && o.nasm == o.ext.nasm
}

// AssembleGrad caches the linearisation of all integrators @ g
func (o *PAGradient) AssembleGrad(g []float64) {
	if len(g) != o.Width() {
		chk.Panic("AssembleGrad: vector has size %d but space has %d dofs", len(g), o.Width())
	}
	o.ext.elemR.Mult(g, o.ge)
	for _, itg := range o.ext.nlf.Dnfi {
		o.ext.parts.Run(func(p, e0, e1 int) {
			itg.AssembleGradPA(e0, e1, o.ge)
		})
	}
	o.seq = o.ext.seq
	o.nasm = o.ext.nasm
	o.assembled = true
}

// Mult computes y = G x; y is overwritten
func (o *PAGradient) Mult(x, y []float64) {
	o.checkAssembled("Mult")
	op.CheckSizes(o, x, y, "Mult")
	xe, ye := o.ext.xe, o.ext.ye
	o.ext.elemR.Mult(x, xe)
	fill(ye, 0)
	for _, itg := range o.ext.nlf.Dnfi {
		o.ext.parts.Run(func(p, e0, e1 int) {
			itg.AddMultGradPA(e0, e1, xe, ye)
		})
	}
	o.ext.elemR.MultTranspose(ye, y)
}

// AssembleDiagonal computes the diagonal of G without forming it
//  Note: entries of shared dofs are summed over elements in ascending order
func (o *PAGradient) AssembleDiagonal(diag []float64) {
	o.checkAssembled("AssembleDiagonal")
	if len(diag) != o.Height() {
		chk.Panic("AssembleDiagonal: vector has size %d but space has %d dofs", len(diag), o.Height())
	}
	ye := o.ext.ye
	fill(ye, 0)
	for _, itg := range o.ext.nlf.Dnfi {
		o.ext.parts.Run(func(p, e0, e1 int) {
			itg.AssembleGradDiagonalPA(e0, e1, ye)
		})
	}
	o.ext.elemR.MultTranspose(ye, diag)
}

// Prolongation returns the T => L operator of the space
func (o *PAGradient) Prolongation() op.Operator {
	return o.ext.nlf.Space.Prolongation()
}

// Update resizes the scratch data after structural changes; the gradient becomes stale
//  Note: nothing happens if the space has not changed
func (o *PAGradient) Update() {
	n := o.ext.ElemSize()
	if len(o.ge) != n {
		o.ge = make([]float64, n)
	}
	if o.seq != o.ext.seq {
		o.assembled = false
	}
}

// checkAssembled panics if the linearisation is stale
func (o *PAGradient) checkAssembled(caller string) {
	if !o.IsAssembled() {
		chk.Panic("%s: gradient is stale; GetGradient must be called first", caller)
	}
}
