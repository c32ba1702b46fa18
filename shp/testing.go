// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Func(shape.S, shape.DSdR, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckDSdR checks dSdR derivatives of shape structures by means of central differences
func CheckDSdR(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {

	// analytical
	shape.Func(shape.S, shape.DSdR, r, true)
	ana := make([][]float64, shape.Nverts)
	for m := 0; m < shape.Nverts; m++ {
		ana[m] = append([]float64{}, shape.DSdR[m]...)
	}

	// numerical
	h := 1e-3
	tmp := []float64{r[0], r[1], r[2]}
	Sp := make([]float64, shape.Nverts)
	Sm := make([]float64, shape.Nverts)
	for i := 0; i < shape.Gndim; i++ {
		tmp[i] = r[i] + h
		shape.Func(Sp, nil, tmp, false)
		tmp[i] = r[i] - h
		shape.Func(Sm, nil, tmp, false)
		tmp[i] = r[i]
		for m := 0; m < shape.Nverts; m++ {
			num := (Sp[m] - Sm[m]) / (2.0 * h)
			diff := math.Abs(ana[m][i] - num)
			if verbose {
				io.Pf("dS%d/dR%d: ana = %12.8f  num = %12.8f  diff = %g\n", m, i, ana[m][i], num, diff)
			}
			if diff > tol {
				tst.Errorf("%s: dS%d/dR%d failed: |ana - num| = %g > %g\n", shape.Type, m, i, diff, tol)
			}
		}
	}
}
