// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"strings"

	"github.com/cpmech/gosl/chk"
)

// AssemblyLevel selects the strategy used to evaluate a nonlinear form and its gradient
type AssemblyLevel int

// assembly levels
const (
	Partial AssemblyLevel = iota // cache quadrature data; no matrices
	Element                      // dense element matrices for the gradient
	Full                         // global sparse matrix for the gradient
)

// String returns the name of the assembly level
func (o AssemblyLevel) String() string {
	switch o {
	case Partial:
		return "partial"
	case Element:
		return "element"
	case Full:
		return "full"
	}
	return "unknown"
}

// ParseAssemblyLevel returns the assembly level corresponding to name
//  name -- "partial" (or "pa"), "element" (or "ea"), "full" (or "fa"); case insensitive
func ParseAssemblyLevel(name string) (level AssemblyLevel, err error) {
	switch strings.ToLower(name) {
	case "partial", "pa":
		return Partial, nil
	case "element", "ea":
		return Element, nil
	case "full", "fa":
		return Full, nil
	}
	return Partial, chk.Err("assembly level %q is not available", name)
}
