// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/liangcheng/mfem/inp"
)

// AllocatorType defines a function that allocates an integrator
type AllocatorType func(ndim int, idat *inp.IntegratorData) (Integrator, error)

// New returns a new integrator from factory
func New(ndim int, idat *inp.IntegratorData) (itg Integrator, err error) {
	fcn, ok := allocators[idat.Type]
	if !ok {
		err = chk.Err("cannot get allocator for integrator {type=%q, model=%q}", idat.Type, idat.Model)
		return
	}
	itg, err = fcn(ndim, idat)
	if err != nil {
		err = chk.Err("cannot allocate integrator {type=%q, model=%q}:\n%v", idat.Type, idat.Model, err)
	}
	return
}

// SetAllocator sets a new callback function to allocate an integrator
func SetAllocator(integratorName string, fcn AllocatorType) {
	if _, ok := allocators[integratorName]; ok {
		chk.Panic("cannot set allocator function for %q because integrator name exists already", integratorName)
	}
	allocators[integratorName] = fcn
}

// GetAllocator gets callback function to allocate an integrator
func GetAllocator(integratorName string) AllocatorType {
	if fcn, ok := allocators[integratorName]; ok {
		return fcn
	}
	chk.Panic("cannot get allocator function for integrator %q", integratorName)
	return nil
}

// Names returns the sorted names of all registered integrators
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// allocators holds all integrator allocators
var allocators = make(map[string]AllocatorType)
