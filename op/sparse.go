// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package op

import (
	"github.com/cpmech/gosl/chk"
	"github.com/james-bowman/sparse"
)

// Sparse implements an operator backed by a compressed-sparse-row matrix
type Sparse struct {
	A *sparse.CSR // the matrix
	m int         // number of rows
	n int         // number of columns
}

// NewSparse converts an assembled dictionary-of-keys matrix into a CSR operator
func NewSparse(dok *sparse.DOK) *Sparse {
	m, n := dok.Dims()
	return &Sparse{A: dok.ToCSR(), m: m, n: n}
}

// Height returns the number of rows
func (o *Sparse) Height() int { return o.m }

// Width returns the number of columns
func (o *Sparse) Width() int { return o.n }

// Mult computes y := A x
func (o *Sparse) Mult(x, y []float64) {
	for i := range y {
		y[i] = 0
	}
	o.A.MulVecTo(y, false, x)
}

// MultTranspose computes y := trans(A) x
func (o *Sparse) MultTranspose(x, y []float64) {
	for i := range y {
		y[i] = 0
	}
	o.A.MulVecTo(y, true, x)
}

// Diagonal extracts the diagonal of a square matrix into diag
func (o *Sparse) Diagonal(diag []float64) {
	if o.m != o.n {
		chk.Panic("cannot extract diagonal of %d x %d matrix", o.m, o.n)
	}
	for i := 0; i < o.m; i++ {
		diag[i] = o.A.At(i, i)
	}
}

// Nnz returns the number of stored entries
func (o *Sparse) Nnz() int { return o.A.NNZ() }

// AddTo accumulates v into entry (i,j) of a dictionary-of-keys matrix
func AddTo(dok *sparse.DOK, i, j int, v float64) {
	dok.Set(i, j, dok.At(i, j)+v)
}
