// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/liangcheng/mfem/ele/diffusion"
	"github.com/liangcheng/mfem/ele/nodal"
	"github.com/liangcheng/mfem/ele/reaction"
)

// enforce loading of all integrators
func init() {
	_ = diffusion.Diffusion{}
	_ = nodal.Nodal{}
	_ = reaction.Reaction{}
}
