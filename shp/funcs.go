// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// register shapes
func init() {

	// lin2
	factory["lin2"] = &Shape{
		Type:      "lin2",
		Func:      FuncLin2,
		Gndim:     1,
		Nverts:    2,
		NatCoords: [][]float64{{-1, 1}},
		Nedges:    1,
		EdgeVerts: [][]int{{0, 1}},
	}

	// qua4
	factory["qua4"] = &Shape{
		Type:   "qua4",
		Func:   FuncQua4,
		Gndim:  2,
		Nverts: 4,
		NatCoords: [][]float64{
			{-1, 1, 1, -1},
			{-1, -1, 1, 1},
		},
		Nedges:    4,
		EdgeVerts: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	}

	// tri3
	factory["tri3"] = &Shape{
		Type:   "tri3",
		Func:   FuncTri3,
		Gndim:  2,
		Nverts: 3,
		NatCoords: [][]float64{
			{0, 1, 0},
			{0, 0, 1},
		},
		Nedges:    3,
		EdgeVerts: [][]int{{0, 1}, {1, 2}, {2, 0}},
	}
}

// FuncLin2 calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin2
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//   -----------------
//   0-------------->1
//   -----------------
//
func FuncLin2(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0] = 0.5 * (1.0 - r[0])
	S[1] = 0.5 * (1.0 + r[0])
	if !derivs {
		return
	}
	dSdR[0][0] = -0.5
	dSdR[1][0] = 0.5
}

// FuncQua4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua4
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//    3-----------2
//    |     s     |
//    |     |     |
//    |     +--r  |
//    |           |
//    |           |
//    0-----------1
//
func FuncQua4(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0] = (1.0 - r[0] - r[1] + r[0]*r[1]) / 4.0
	S[1] = (1.0 + r[0] - r[1] - r[0]*r[1]) / 4.0
	S[2] = (1.0 + r[0] + r[1] + r[0]*r[1]) / 4.0
	S[3] = (1.0 - r[0] + r[1] - r[0]*r[1]) / 4.0
	if !derivs {
		return
	}
	dSdR[0][0] = (-1.0 + r[1]) / 4.0
	dSdR[0][1] = (-1.0 + r[0]) / 4.0
	dSdR[1][0] = (+1.0 - r[1]) / 4.0
	dSdR[1][1] = (-1.0 - r[0]) / 4.0
	dSdR[2][0] = (+1.0 + r[1]) / 4.0
	dSdR[2][1] = (+1.0 + r[0]) / 4.0
	dSdR[3][0] = (-1.0 - r[1]) / 4.0
	dSdR[3][1] = (+1.0 - r[0]) / 4.0
}

// FuncTri3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri3
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//    s
//    |
//    2, (0,1)
//    | ',
//    |   ',
//    |     ',
//    |       ',
//    0---------1 --- r
//  (0,0)     (1,0)
//
func FuncTri3(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0] = 1.0 - r[0] - r[1]
	S[1] = r[0]
	S[2] = r[1]
	if !derivs {
		return
	}
	dSdR[0][0] = -1.0
	dSdR[1][0] = 1.0
	dSdR[2][0] = 0.0
	dSdR[0][1] = -1.0
	dSdR[1][1] = 0.0
	dSdR[2][1] = 1.0
}
