// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Gauss-Legendre points along [-1,1]
var (
	gaussLin1 = []Ipoint{{0, 0, 0, 2}}
	gaussLin2 = []Ipoint{
		{-1.0 / math.Sqrt(3.0), 0, 0, 1},
		{+1.0 / math.Sqrt(3.0), 0, 0, 1},
	}
	gaussLin3 = []Ipoint{
		{-math.Sqrt(3.0 / 5.0), 0, 0, 5.0 / 9.0},
		{0, 0, 0, 8.0 / 9.0},
		{+math.Sqrt(3.0 / 5.0), 0, 0, 5.0 / 9.0},
	}
	gaussTri1 = []Ipoint{{1.0 / 3.0, 1.0 / 3.0, 0, 1.0 / 2.0}}
	gaussTri3 = []Ipoint{
		{1.0 / 6.0, 1.0 / 6.0, 0, 1.0 / 6.0},
		{2.0 / 3.0, 1.0 / 6.0, 0, 1.0 / 6.0},
		{1.0 / 6.0, 2.0 / 3.0, 0, 1.0 / 6.0},
	}
)

// GetIps returns the integration points of this shape
//  nip -- number of integration points; 0 => use default
func (o *Shape) GetIps(nip int) (ips []Ipoint, err error) {
	switch o.Type {
	case "lin2":
		switch nip {
		case 1:
			return gaussLin1, nil
		case 0, 2:
			return gaussLin2, nil
		case 3:
			return gaussLin3, nil
		}
	case "qua4":
		switch nip {
		case 1:
			return tensorIps(gaussLin1), nil
		case 0, 4:
			return tensorIps(gaussLin2), nil
		case 9:
			return tensorIps(gaussLin3), nil
		}
	case "tri3":
		switch nip {
		case 1:
			return gaussTri1, nil
		case 0, 3:
			return gaussTri3, nil
		}
	}
	err = chk.Err("cannot find integration points for shape %q with nip=%d", o.Type, nip)
	return
}

// tensorIps builds 2D integration points as the tensor product of 1D points
func tensorIps(lin []Ipoint) (ips []Ipoint) {
	ips = make([]Ipoint, 0, len(lin)*len(lin))
	for _, b := range lin {
		for _, a := range lin {
			ips = append(ips, Ipoint{a[0], b[0], 0, a[3] * b[3]})
		}
	}
	return
}
