// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
	"github.com/liangcheng/mfem/fes"
)

// CheckIntegrator checks the linearisation hooks of an integrator against central differences
// of its residual hook; the diagonal hook against the probed linearisation; and, if tolE > 0,
// the residual hook against central differences of the energy hook
//  xe -- E-vector (all elements) at which derivatives are checked
func CheckIntegrator(tst *testing.T, itg Integrator, geo *fes.Geometry, xe []float64, tolJ, tolE float64, verbose bool) {

	// cache quadrature data
	err := itg.AssemblePA(geo)
	if err != nil {
		tst.Errorf("AssemblePA failed:\n%v", err)
		return
	}
	ne := geo.Ne
	n := ne * geo.Nd
	if len(xe) != n {
		tst.Errorf("size of xe is incorrect. %d != %d", len(xe), n)
		return
	}

	// residual and linearisation @ xe
	r0 := make([]float64, n)
	itg.AddMultPA(0, ne, xe, r0)
	itg.AssembleGradPA(0, ne, xe)
	diag := make([]float64, n)
	itg.AssembleGradDiagonalPA(0, ne, diag)

	// probe columns
	h := 1e-5
	tmp := make([]float64, n)
	dk := make([]float64, n)
	col := make([]float64, n)
	rp := make([]float64, n)
	rm := make([]float64, n)
	for k := 0; k < n; k++ {

		// analytical column
		dk[k] = 1
		fill(col, 0)
		itg.AddMultGradPA(0, ne, dk, col)
		dk[k] = 0

		// numerical column
		copy(tmp, xe)
		tmp[k] = xe[k] + h
		fill(rp, 0)
		itg.AddMultPA(0, ne, tmp, rp)
		tmp[k] = xe[k] - h
		fill(rm, 0)
		itg.AddMultPA(0, ne, tmp, rm)
		for i := 0; i < n; i++ {
			num := (rp[i] - rm[i]) / (2.0 * h)
			diff := math.Abs(col[i] - num)
			if verbose {
				io.Pf("dR%d/dx%d: ana = %15.10f  num = %15.10f  diff = %g\n", i, k, col[i], num, diff)
			}
			if diff > tolJ {
				tst.Errorf("dR%d/dx%d failed: |ana - num| = %g > %g\n", i, k, diff, tolJ)
				return
			}
		}

		// diagonal
		if math.Abs(diag[k]-col[k]) > 1e-13*(1+math.Abs(col[k])) {
			tst.Errorf("diagonal %d failed: %g != %g\n", k, diag[k], col[k])
			return
		}

		// energy
		if tolE > 0 {
			tmp[k] = xe[k] + h
			ep := itg.EnergyPA(0, ne, tmp)
			tmp[k] = xe[k] - h
			em := itg.EnergyPA(0, ne, tmp)
			num := (ep - em) / (2.0 * h)
			diff := math.Abs(r0[k] - num)
			if verbose {
				io.Pf("dΦ/dx%d: R = %15.10f  num = %15.10f  diff = %g\n", k, r0[k], num, diff)
			}
			if diff > tolE {
				tst.Errorf("dΦ/dx%d failed: |R - num| = %g > %g\n", k, diff, tolE)
				return
			}
		}
	}
}

// fill sets all values of v to s
func fill(v []float64, s float64) {
	for i := range v {
		v[i] = s
	}
}
