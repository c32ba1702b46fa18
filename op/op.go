// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package op implements the linear operator abstraction shared by field spaces and forms
package op

import "github.com/cpmech/gosl/chk"

// Operator defines a linear (or linearised) map from a Width() vector to a Height() vector
type Operator interface {
	Height() int         // size of output vectors
	Width() int          // size of input vectors
	Mult(x, y []float64) // y := A x  (y is overwritten)
}

// Transposer defines operators that can also apply their adjoint
type Transposer interface {
	MultTranspose(x, y []float64) // y := trans(A) x  (y is overwritten)
}

// TransposeOperator defines operators with both actions
type TransposeOperator interface {
	Operator
	Transposer
}

// Prolongated defines operators that expose the prolongation (true-dof => local-dof) of their space
type Prolongated interface {
	Prolongation() Operator
}

// DiagonalAssembler defines operators that compute their diagonal without being formed
type DiagonalAssembler interface {
	AssembleDiagonal(diag []float64)
}

// Identity implements the identity operator of size N
type Identity struct {
	N int
}

// NewIdentity returns a new identity operator
func NewIdentity(n int) *Identity {
	return &Identity{N: n}
}

// Height returns the size of output vectors
func (o *Identity) Height() int { return o.N }

// Width returns the size of input vectors
func (o *Identity) Width() int { return o.N }

// Mult copies x into y
func (o *Identity) Mult(x, y []float64) { copy(y[:o.N], x[:o.N]) }

// MultTranspose copies x into y
func (o *Identity) MultTranspose(x, y []float64) { copy(y[:o.N], x[:o.N]) }

// IsIdentity tells whether A is the identity operator
func IsIdentity(A Operator) bool {
	if A == nil {
		return true
	}
	_, ok := A.(*Identity)
	return ok
}

// CheckSizes panics if x or y do not match the operator dimensions
func CheckSizes(A Operator, x, y []float64, caller string) {
	if len(x) != A.Width() {
		chk.Panic("%s: input vector has size %d but operator width is %d", caller, len(x), A.Width())
	}
	if len(y) != A.Height() {
		chk.Panic("%s: output vector has size %d but operator height is %d", caller, len(y), A.Height())
	}
}
