// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/liangcheng/mfem/ele"
	"github.com/liangcheng/mfem/fes"
	"github.com/liangcheng/mfem/inp"
	"github.com/liangcheng/mfem/op"
)

// NonlinearForm holds a list of integrators defined on a space and evaluates their sum on
// true-dof (T) vectors
//
//   R(tx) = Pᵀ ext.Mult(P tx)      with R = 0 at essential dofs
//
type NonlinearForm struct {
	Space    *fes.Space       // field space
	Dnfi     []ele.Integrator // integrators; list order is the accumulation order
	Level    AssemblyLevel    // assembly strategy
	Nworkers int              // number of concurrent element partitions
	Verbose  bool             // show messages
	EssTdofs []int            // sorted essential true dofs

	// essential vertices; re-evaluated after structural changes
	essVerts func(msh *inp.Mesh) []int

	// derived
	ext  Extension            // strategy
	x, y []float64            // [nl] scratch L-vectors
	grad *ConstrainedOperator // system linearisation; allocated once per extension gradient
}

// NewNonlinearForm returns a new form on space
func NewNonlinearForm(space *fes.Space, level AssemblyLevel) *NonlinearForm {
	if space == nil {
		chk.Panic("NewNonlinearForm: space must not be nil")
	}
	return &NonlinearForm{Space: space, Level: level, Nworkers: 1}
}

// NewFormFromSim allocates the space, the integrators and the form defined in sim
func NewFormFromSim(sim *inp.Simulation) (o *NonlinearForm, err error) {

	// space
	space, err := fes.NewSpace(sim.Mesh)
	if err != nil {
		return
	}
	if len(sim.Periodic) > 0 {
		err = space.SetPeriodic(sim.Periodic)
		if err != nil {
			return
		}
	}

	// form
	level, err := ParseAssemblyLevel(sim.Assembly.Level)
	if err != nil {
		return
	}
	o = NewNonlinearForm(space, level)
	o.Nworkers = sim.Assembly.Nworkers
	o.Verbose = sim.Data.Verbose

	// integrators
	for i, idat := range sim.Integrators {
		var itg ele.Integrator
		itg, err = ele.New(sim.Ndim, idat)
		if err != nil {
			return nil, chk.Err("cannot allocate integrator # %d:\n%v", i, err)
		}
		o.AddIntegrator(itg)
	}

	// essential boundary conditions
	o.SetEssentialVerts(sim.EssentialVerts)
	return
}

// AddIntegrator appends an integrator to the list
//  Note: if the form is set up already, all integrators are assembled again
func (o *NonlinearForm) AddIntegrator(itg ele.Integrator) {
	if itg == nil {
		chk.Panic("AddIntegrator: integrator must not be nil")
	}
	o.Dnfi = append(o.Dnfi, itg)
	if o.ext != nil {
		o.ext.Assemble()
	}
}

// SetEssentialTrueDofs sets the list of true dofs with essential boundary conditions
func (o *NonlinearForm) SetEssentialTrueDofs(tdofs []int) {
	nt := o.Space.TrueSize()
	used := make(map[int]bool)
	ess := make([]int, 0, len(tdofs))
	for _, t := range tdofs {
		if t < 0 || t >= nt {
			chk.Panic("SetEssentialTrueDofs: true dof %d is out of range [0, %d)", t, nt)
		}
		if !used[t] {
			used[t] = true
			ess = append(ess, t)
		}
	}
	sort.Ints(ess)
	o.EssTdofs = ess
	o.essVerts = nil
	if o.grad != nil {
		o.grad.SetEssential(o.EssTdofs)
	}
}

// SetEssentialVerts sets a function returning the vertices with essential boundary conditions;
// the corresponding true dofs are recomputed after each refinement
func (o *NonlinearForm) SetEssentialVerts(fcn func(msh *inp.Mesh) []int) {
	o.SetEssentialTrueDofs(o.Space.TrueDofs(fcn(o.Space.Msh)))
	o.essVerts = fcn
}

// Setup allocates the extension and assembles all integrators
func (o *NonlinearForm) Setup() {
	if o.ext == nil {
		o.ext = NewExtension(o.Level, o)
	}
	o.ext.Update()
	o.ext.Assemble()
	o.resize()
	if o.Verbose {
		io.Pf("> Nonlinear form set up: level = %v, ntrue = %d, ness = %d\n", o.Level, o.Space.TrueSize(), len(o.EssTdofs))
	}
}

// Ext returns the extension
func (o *NonlinearForm) Ext() Extension {
	o.checkSetup("Ext")
	return o.ext
}

// Height returns the size of T-vectors
func (o *NonlinearForm) Height() int { return o.Space.TrueSize() }

// Width returns the size of T-vectors
func (o *NonlinearForm) Width() int { return o.Space.TrueSize() }

// Mult computes the residual ty = R(tx); ty is overwritten and zero at essential dofs
func (o *NonlinearForm) Mult(tx, ty []float64) {
	o.checkSetup("Mult")
	op.CheckSizes(o, tx, ty, "Mult")
	P := o.Space.Prolongation()
	P.Mult(tx, o.x)
	o.ext.Mult(o.x, o.y)
	multTranspose(P, o.y, ty)
	for _, t := range o.EssTdofs {
		ty[t] = 0
	}
}

// GetGradient returns the linearisation @ tx with identity rows and columns at essential dofs
func (o *NonlinearForm) GetGradient(tx []float64) op.Operator {
	o.checkSetup("GetGradient")
	if len(tx) != o.Width() {
		chk.Panic("GetGradient: vector has size %d but space has %d true dofs", len(tx), o.Width())
	}
	P := o.Space.Prolongation()
	P.Mult(tx, o.x)
	G := o.ext.GetGradient(o.x)
	if o.grad == nil || o.grad.G != G || o.grad.P != P {
		o.grad = NewConstrainedOperator(G, P, o.EssTdofs)
	}
	return o.grad
}

// GetEnergy returns the energy @ tx
func (o *NonlinearForm) GetEnergy(tx []float64) float64 {
	o.checkSetup("GetEnergy")
	if len(tx) != o.Width() {
		chk.Panic("GetEnergy: vector has size %d but space has %d true dofs", len(tx), o.Width())
	}
	o.Space.Prolongation().Mult(tx, o.x)
	return o.ext.GetGridFunctionEnergy(o.x)
}

// Update re-reads sizes after a structural change of the space and assembles all integrators
func (o *NonlinearForm) Update() {
	o.checkSetup("Update")
	o.grad = nil
	if o.essVerts != nil {
		o.SetEssentialVerts(o.essVerts)
	}
	o.Setup()
}

// resize reallocates the scratch L-vectors if the space has changed
func (o *NonlinearForm) resize() {
	nl := o.Space.LocalSize()
	if len(o.x) != nl {
		o.x = make([]float64, nl)
		o.y = make([]float64, nl)
	}
}

// checkSetup panics if Setup was not called
func (o *NonlinearForm) checkSetup(caller string) {
	if o.ext == nil {
		chk.Panic("%s: Setup must be called first", caller)
	}
}

// multTranspose computes y = Pᵀ x
func multTranspose(P op.Operator, x, y []float64) {
	Pt, ok := P.(op.Transposer)
	if !ok {
		chk.Panic("prolongation operator must implement MultTranspose")
	}
	Pt.MultTranspose(x, y)
}
