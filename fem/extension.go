// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/liangcheng/mfem/op"
)

// Extension defines the strategies that evaluate a nonlinear form on local (L) vectors
//  Notes:
//   1) Mult overwrites y with the residual; essential dofs are never touched here
//   2) the operator returned by GetGradient is owned by the extension; it is valid until the
//      next call to GetGradient or Update and it implements op.Prolongated and op.DiagonalAssembler
//   3) extensions hold scratch buffers; they must not be used by more than one goroutine
type Extension interface {
	op.Operator
	Assemble()                                 // caches data; required before Mult and after structural changes
	GetGradient(x []float64) op.Operator       // linearisation @ x
	GetGridFunctionEnergy(x []float64) float64 // sum of element energies @ x
	Update()                                   // re-reads sizes from the space after structural changes
}

// NewExtension returns the extension implementing the given assembly level
func NewExtension(level AssemblyLevel, nlf *NonlinearForm) Extension {
	switch level {
	case Partial:
		return NewPAExtension(nlf)
	case Element:
		return NewEAExtension(nlf)
	case Full:
		return NewFAExtension(nlf)
	}
	chk.Panic("cannot create extension with assembly level %d", level)
	return nil
}
