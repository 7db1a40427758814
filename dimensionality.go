/*
 * dimensionality.go, part of gomofcheck.
 *
 *
 * Copyright 2025 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * gomofcheck is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package mofcheck

import (
	"sort"

	"gonum.org/v1/gonum/graph/topo"
)

//Component is one bonded connected component of the structure, with the
//rank of the lattice-translation subgroup it spans: 0 for an isolated
//molecule, 3 for a framework percolating in every direction.
type Component struct {
	Atoms          []int
	Dimensionality int
}

//PeriodicComponents splits the bond graph into connected components and
//computes each component's periodic dimensionality. The rank is obtained
//from the image vectors accumulated along graph cycles: a spanning walk
//assigns every atom an integer cell offset, and each remaining bond
//contributes the closure vector off_i + image - off_j. The rank of those
//vectors is how many independent lattice directions the component
//actually connects through.
func (g *BondGraph) PeriodicComponents() []Component {
	var comps []Component
	for _, nodes := range topo.ConnectedComponents(g.Gonum()) {
		atoms := make([]int, 0, len(nodes))
		for _, n := range nodes {
			atoms = append(atoms, int(n.ID()))
		}
		sort.Ints(atoms)
		comps = append(comps, Component{Atoms: atoms, Dimensionality: g.componentRank(atoms)})
	}
	sort.Slice(comps, func(a, b int) bool { return comps[a].Atoms[0] < comps[b].Atoms[0] })
	return comps
}

//componentRank walks the component assigning integer cell offsets and
//collects the cycle-closure image vectors, whose rank is the dimensionality.
func (g *BondGraph) componentRank(atoms []int) int {
	off := make(map[int][3]int, len(atoms))
	root := atoms[0]
	off[root] = [3]int{}
	queue := []int{root}
	var cycles [][3]int
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		for _, b := range g.adj[i] {
			want := [3]int{off[i][0] + b.Image[0], off[i][1] + b.Image[1], off[i][2] + b.Image[2]}
			if have, seen := off[b.J]; seen {
				v := [3]int{want[0] - have[0], want[1] - have[1], want[2] - have[2]}
				if v != [3]int{} {
					cycles = append(cycles, v)
				}
				continue
			}
			off[b.J] = want
			queue = append(queue, b.J)
		}
	}
	return rank3(cycles)
}

//rank3 computes the rank of a set of integer 3-vectors by Gram-Schmidt
//with a small tolerance; the entries are small integers so this is exact
//in practice.
func rank3(vecs [][3]int) int {
	var basis [][3]float64
	for _, iv := range vecs {
		v := [3]float64{float64(iv[0]), float64(iv[1]), float64(iv[2])}
		for _, b := range basis {
			v = sub3(v, scale3(b, dot3(v, b)))
		}
		n := norm3(v)
		if n > 1e-9 {
			basis = append(basis, scale3(v, 1/n))
			if len(basis) == 3 {
				break
			}
		}
	}
	return len(basis)
}

//Dimensionality is the maximum component dimensionality; an empty
//structure has dimensionality 0.
func (g *BondGraph) Dimensionality() int {
	dim := 0
	for _, c := range g.PeriodicComponents() {
		if c.Dimensionality > dim {
			dim = c.Dimensionality
		}
	}
	return dim
}

//Has3DConnectedGraph reports whether the bonded framework percolates in
//all three lattice directions.
func (g *BondGraph) Has3DConnectedGraph() bool { return g.Dimensionality() == 3 }

//LoneMoleculeIndices returns the atoms that belong to zero-dimensional
//components of a structure that also contains a periodic framework:
//floating solvent or counter-ions, typically. If nothing percolates at
//all, nothing counts as floating.
func (g *BondGraph) LoneMoleculeIndices() []int {
	comps := g.PeriodicComponents()
	framework := false
	for _, c := range comps {
		if c.Dimensionality > 0 {
			framework = true
			break
		}
	}
	if !framework {
		return nil
	}
	var out []int
	for _, c := range comps {
		if c.Dimensionality == 0 {
			out = append(out, c.Atoms...)
		}
	}
	sort.Ints(out)
	return out
}
