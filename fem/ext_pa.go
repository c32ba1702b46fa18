// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/liangcheng/mfem/fes"
	"github.com/liangcheng/mfem/op"
)

// PAExtension implements the partially assembled strategy: integrators cache quadrature data
// at Assemble and evaluate element contributions on E-vectors; no matrix is ever formed
//
//   y = Rᵀ Σ_i R_i(R x)      (i in integrators order)
//
type PAExtension struct {
	nlf   *NonlinearForm   // parent form; must outlive the extension
	elemR *fes.Restriction // L <=> E; owned by the space
	parts *Partitions      // element ranges
	grad  *PAGradient      // linearisation; allocated once

	// scratch
	xe []float64 // [ne*nd] input E-vector
	ye []float64 // [ne*nd] output E-vector

	// state
	seq       int  // sequence number of space when sizes were read
	nasm      int  // number of calls to Assemble; integrators drop their linearisation on each call
	assembled bool // Assemble was called after the last structural change
}

// NewPAExtension returns a new partially assembled extension of nlf
func NewPAExtension(nlf *NonlinearForm) (o *PAExtension) {
	o = &PAExtension{nlf: nlf, seq: -1}
	o.grad = newPAGradient(o)
	o.Update()
	return
}

// Height returns the size of L-vectors
func (o *PAExtension) Height() int { return o.elemR.Width() }

// Width returns the size of L-vectors
func (o *PAExtension) Width() int { return o.elemR.Width() }

// ElemSize returns the size of E-vectors
func (o *PAExtension) ElemSize() int { return len(o.xe) }

// Assemble caches the quadrature data of all integrators
func (o *PAExtension) Assemble() {

	// check consistency of space
	space := o.nlf.Space
	if space.NumElems() < 1 {
		chk.Panic("Assemble: space has no elements")
	}
	if o.seq != space.Sequence() || o.elemR != space.Restriction() {
		chk.Panic("Assemble: space has changed; Update must be called first")
	}
	if o.elemR.Width() != space.LocalSize() || o.elemR.Height() != space.NumElems()*space.ElemDofs() {
		chk.Panic("Assemble: restriction (%d x %d) is inconsistent with space (ne=%d, nd=%d, nl=%d)",
			o.elemR.Height(), o.elemR.Width(), space.NumElems(), space.ElemDofs(), space.LocalSize())
	}
	if len(o.nlf.Dnfi) < 1 {
		chk.Panic("Assemble: form has no integrators")
	}

	// cache quadrature data
	geo := space.Geometry()
	for i, itg := range o.nlf.Dnfi {
		err := itg.AssemblePA(geo)
		if err != nil {
			chk.Panic("Assemble: integrator # %d failed:\n%v", i, err)
		}
	}
	o.nasm++
	o.assembled = true
	if o.nlf.Verbose {
		io.Pf("> Partial assembly: %d integrators, %d elements, %d partitions\n", len(o.nlf.Dnfi), space.NumElems(), o.parts.Num())
	}
}

// Mult computes the residual y = R(x); y is overwritten
func (o *PAExtension) Mult(x, y []float64) {
	o.checkAssembled("Mult")
	op.CheckSizes(o, x, y, "Mult")
	o.elemR.Mult(x, o.xe)
	fill(o.ye, 0)
	for _, itg := range o.nlf.Dnfi {
		o.parts.Run(func(p, e0, e1 int) {
			itg.AddMultPA(e0, e1, o.xe, o.ye)
		})
	}
	o.elemR.MultTranspose(o.ye, y)
}

// GetGradient returns the linearisation @ x
//  Note: the same operator is returned on every call
func (o *PAExtension) GetGradient(x []float64) op.Operator {
	o.checkAssembled("GetGradient")
	o.grad.AssembleGrad(x)
	return o.grad
}

// GetGridFunctionEnergy returns the sum of element energies @ x
func (o *PAExtension) GetGridFunctionEnergy(x []float64) (energy float64) {
	o.checkAssembled("GetGridFunctionEnergy")
	if len(x) != o.Width() {
		chk.Panic("GetGridFunctionEnergy: vector has size %d but space has %d dofs", len(x), o.Width())
	}
	o.elemR.Mult(x, o.xe)
	for _, itg := range o.nlf.Dnfi {
		energy += o.parts.Sum(func(e0, e1 int) float64 {
			return itg.EnergyPA(e0, e1, o.xe)
		})
	}
	return
}

// Update re-reads the restriction and sizes from the space
//  Note: nothing happens if the space has not changed since the last call
func (o *PAExtension) Update() {
	space := o.nlf.Space
	if o.seq == space.Sequence() && o.elemR == space.Restriction() {
		if o.parts.Nworkers != o.nlf.Nworkers {
			o.parts = NewPartitions(space.NumElems(), o.nlf.Nworkers)
		}
		o.grad.Update()
		return
	}
	o.elemR = space.Restriction()
	o.seq = space.Sequence()
	n := o.elemR.Height()
	if len(o.xe) != n {
		o.xe = make([]float64, n)
		o.ye = make([]float64, n)
	}
	o.parts = NewPartitions(space.NumElems(), o.nlf.Nworkers)
	o.assembled = false
	o.grad.Update()
}

// checkAssembled panics if Assemble was not called after the last structural change
func (o *PAExtension) checkAssembled(caller string) {
	if o.seq != o.nlf.Space.Sequence() {
		chk.Panic("%s: space has changed; Update and Assemble must be called first", caller)
	}
	if !o.assembled {
		chk.Panic("%s: Assemble must be called first", caller)
	}
}

// fill sets all values of v to s
func fill(v []float64, s float64) {
	for i := range v {
		v[i] = s
	}
}
