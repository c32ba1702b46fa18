// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "golang.org/x/sync/errgroup"

// Partitions splits elements into contiguous ranges processed concurrently
//  Partition p holds elements Bounds[p] <= e < Bounds[p+1]
type Partitions struct {
	Bounds   []int // [np+1] element bounds
	Nworkers int   // max number of concurrent goroutines
}

// NewPartitions splits ne elements into at most nworkers balanced ranges
func NewPartitions(ne, nworkers int) (o *Partitions) {
	if nworkers < 1 {
		nworkers = 1
	}
	np := nworkers
	if np > ne {
		np = ne
	}
	if np < 1 {
		np = 1
	}
	o = &Partitions{Bounds: make([]int, np+1), Nworkers: nworkers}
	size, rest := ne/np, ne%np
	for p := 0; p < np; p++ {
		o.Bounds[p+1] = o.Bounds[p] + size
		if p < rest {
			o.Bounds[p+1]++
		}
	}
	return
}

// Num returns the number of partitions
func (o *Partitions) Num() int { return len(o.Bounds) - 1 }

// Run calls fcn for each partition and waits for all calls to return
func (o *Partitions) Run(fcn func(p, e0, e1 int)) {
	if o.Num() == 1 {
		fcn(0, o.Bounds[0], o.Bounds[1])
		return
	}
	var g errgroup.Group
	g.SetLimit(o.Nworkers)
	for p := 0; p < o.Num(); p++ {
		p := p
		g.Go(func() error {
			fcn(p, o.Bounds[p], o.Bounds[p+1])
			return nil
		})
	}
	g.Wait()
}

// Sum calls fcn for each partition and adds the results in partition order
func (o *Partitions) Sum(fcn func(e0, e1 int) float64) (res float64) {
	partial := make([]float64, o.Num())
	o.Run(func(p, e0, e1 int) {
		partial[p] = fcn(e0, e1)
	})
	for _, v := range partial {
		res += v
	}
	return
}
