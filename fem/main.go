// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the evaluation of nonlinear forms and their linearisations
package fem

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/liangcheng/mfem/inp"
	"gonum.org/v1/gonum/floats"
)

// Result holds the outcome of one solution on one mesh
type Result struct {
	Level  int     // refinement level
	Nelems int     // number of elements
	Ntrue  int     // number of true dofs
	Nit    int     // number of Newton iterations
	R0     float64 // |R| @ initial state
	Rnorm  float64 // |R| @ solution
	Energy float64 // energy @ solution
}

// Main holds all data for a simulation
type Main struct {
	Sim     *inp.Simulation // simulation data
	Form    *NonlinearForm  // nonlinear form
	Solver  *Newton         // nonlinear solver
	X       []float64       // [nt] state (true dofs)
	Results []*Result       // one result per refinement level
	ShowMsg bool            // show messages
}

// NewMain returns a new Main structure
//  Input:
//   simfilepath -- simulation (.sim) filename including full path
//   verbose     -- show messages
func NewMain(simfilepath string, verbose bool) (o *Main, err error) {

	// read input data
	o = new(Main)
	o.Sim, err = inp.ReadSim(simfilepath)
	if err != nil {
		return nil, err
	}
	o.ShowMsg = verbose
	o.Sim.Data.Verbose = o.Sim.Data.Verbose && verbose
	if o.ShowMsg {
		io.Pf("> Simulation (.sim) file read\n")
	}

	// form and solver
	o.Form, err = NewFormFromSim(o.Sim)
	if err != nil {
		return nil, err
	}
	o.Form.Setup()
	o.Solver = NewNewton(o.Form)
	o.Solver.ShowR = o.ShowMsg
	o.SetIniVals(true)
	return
}

// SetIniVals sets the state with the initial values
//  withVals -- use values at each vertex, if given; otherwise the constant value is used
func (o *Main) SetIniVals(withVals bool) {
	nt := o.Form.Space.TrueSize()
	o.X = make([]float64, nt)
	if withVals && len(o.Sim.Ini.Vals) > 0 {
		o.Form.Space.GetTrueValues(o.Sim.Ini.Vals, o.X)
		return
	}
	for i := range o.X {
		o.X[i] = o.Sim.Ini.Cte
	}
}

// Run solves the problem on the initial mesh and on each refined mesh
//  Note: after each refinement, the state is reset to the constant initial value
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// loop over refinement levels
	for level := 0; level <= o.Sim.Refine; level++ {
		if level > 0 {
			err = o.Form.Space.Refine()
			if err != nil {
				return
			}
			o.Form.Update()
			o.SetIniVals(false)
		}
		if o.ShowMsg {
			io.Pf("> Solving on level %d: %d elements, %d true dofs\n", level, o.Form.Space.NumElems(), o.Form.Space.TrueSize())
		}
		res := &Result{Level: level, Nelems: o.Form.Space.NumElems(), Ntrue: o.Form.Space.TrueSize()}
		res.Nit, err = o.Solver.Solve(o.X)
		if err != nil {
			return
		}
		res.R0 = o.Solver.Rnorms[0]
		res.Rnorm = o.Solver.Rnorms[len(o.Solver.Rnorms)-1]
		res.Energy = o.Form.GetEnergy(o.X)
		o.Results = append(o.Results, res)
		if o.ShowMsg {
			io.Pf("> Level %d: nit = %d, |R| = %g, energy = %g, max(x) = %g\n", level, res.Nit, res.Rnorm, res.Energy, floats.Max(o.X))
		}
	}
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// onexit prints final message with cpu time
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}
	if prevErr != nil {
		err = chk.Err("simulation %q failed:\n%v", o.Sim.Key, prevErr)
	}
	return
}
