// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reaction

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// checkDerivs checks df/du and dΦ/du = f with central differences
func checkDerivs(tst *testing.T, name string, mdl Model, tol float64) {
	h := 1e-4
	for _, u := range utl.LinSpace(0.5, 2.0, 4) {
		dfnum := (mdl.F(u+h) - mdl.F(u-h)) / (2.0 * h)
		dphinum := (mdl.Phi(u+h) - mdl.Phi(u-h)) / (2.0 * h)
		if chk.Verbose {
			io.Pf("%s: u = %4.2f  df/du = %12.8f (num %12.8f)  dΦ/du = %12.8f (num %12.8f)\n",
				name, u, mdl.DfDu(u), dfnum, mdl.F(u), dphinum)
		}
		if math.Abs(mdl.DfDu(u)-dfnum) > tol {
			tst.Errorf("%s: df/du failed @ u = %g\n", name, u)
		}
		if math.Abs(mdl.F(u)-dphinum) > tol {
			tst.Errorf("%s: dΦ/du failed @ u = %g\n", name, u)
		}
	}
}

func Test_pow01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pow01")

	mdl, err := New("pow")
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	err = mdl.Init([]*dbf.P{&dbf.P{N: "c", V: 1}, &dbf.P{N: "n", V: 2}})
	if err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	chk.Float64(tst, "f(3)", 1e-15, mdl.F(3), 9)
	chk.Float64(tst, "df/du(3)", 1e-15, mdl.DfDu(3), 6)
	chk.Float64(tst, "Φ(3)", 1e-14, mdl.Phi(3), 9)
	checkDerivs(tst, "pow", mdl, 1e-7)

	// defaults: f = u
	mdl, _ = New("pow")
	mdl.Init(nil)
	chk.Float64(tst, "f(3)", 1e-15, mdl.F(3), 3)
	chk.Float64(tst, "df/du(3)", 1e-15, mdl.DfDu(3), 1)

	// constant
	mdl.Init([]*dbf.P{&dbf.P{N: "c", V: 2}, &dbf.P{N: "n", V: 0}})
	chk.Float64(tst, "f(3)", 1e-15, mdl.F(3), 2)
	chk.Float64(tst, "df/du(3)", 1e-15, mdl.DfDu(3), 0)

	// errors
	if err = mdl.Init([]*dbf.P{&dbf.P{N: "n", V: -1}}); err == nil {
		tst.Errorf("Init should have failed with n = -1\n")
	}
	if err = mdl.Init([]*dbf.P{&dbf.P{N: "m", V: 1}}); err == nil {
		tst.Errorf("Init should have failed with unknown parameter\n")
	}
	if _, err = New("log"); err == nil {
		tst.Errorf("New should have failed\n")
	}
}

func Test_exp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("exp01")

	mdl, err := New("exp")
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	err = mdl.Init([]*dbf.P{&dbf.P{N: "c", V: -0.5}})
	if err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	chk.Float64(tst, "f(0)", 1e-15, mdl.F(0), -0.5)
	chk.Float64(tst, "f(1)", 1e-15, mdl.F(1), -0.5*math.E)
	checkDerivs(tst, "exp", mdl, 1e-7)
}

func Test_connect01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("connect01")

	mdl, _ := New("pow")
	prms := dbf.Params{&dbf.P{N: "n", V: 3}}
	err := mdl.Init(prms)
	if err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	chk.Float64(tst, "f(2)", 1e-15, mdl.F(2), 8)

	// parameters are connected to the model; c keeps its default
	prms.Find("n").Set(2)
	chk.Float64(tst, "f(2)", 1e-15, mdl.F(2), 4)
	chk.Float64(tst, "c", 1e-15, mdl.(*Pow).C, 1)

	mdl, _ = New("exp")
	prms = dbf.Params{&dbf.P{N: "c", V: 2}}
	mdl.Init(prms)
	prms[0].Set(3)
	chk.Float64(tst, "f(0)", 1e-15, mdl.F(0), 3)
}
