/*
 * bonds.go, part of gomofcheck.
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

	"gonum.org/v1/gonum/graph/simple"
)

//Bond is a half-bond from atom I to the periodic copy of atom J
//translated by Image. Every bond appears in the graph together with its
//mirror (J, I, -Image).
type Bond struct {
	I, J  int
	Image [3]int
	Dist  float64
}

//mirror returns the same physical bond seen from the other atom.
func (b Bond) mirror() Bond {
	return Bond{I: b.J, J: b.I, Image: [3]int{-b.Image[0], -b.Image[1], -b.Image[2]}, Dist: b.Dist}
}

//canonical reports whether this half-bond is the representative of the
//pair: the one with I < J, or, for bonds between an atom and its own
//periodic image, the one whose image vector is lexicographically positive.
func (b Bond) canonical() bool {
	if b.I != b.J {
		return b.I < b.J
	}
	return lessImage([3]int{}, b.Image)
}

//BondGraph is the bonded-neighbor graph of a periodic structure: nodes
//are atom indices, edges are (i, j, image) triples. The edge set depends
//only on geometry and species, never on input atom ordering, and is
//symmetric by construction.
type BondGraph struct {
	s     *Structure
	adj   [][]Bond //all half-bonds leaving each atom
	edges []Bond   //each physical bond once, canonical representative
}

//BuildBondGraph derives the bond graph: a pair is bonded when its
//distance is at most (r_i + r_j) * tol with r the covalent radii. A
//species without a radius entry is a hard error. Pass tol <= 0 to use
//the BondTolerance policy default.
func BuildBondGraph(s *Structure, tol float64) (*BondGraph, error) {
	if tol <= 0 {
		tol = BondTolerance
	}
	g := &BondGraph{s: s, adj: make([][]Bond, s.Len())}
	if s.Len() == 0 {
		return g, nil
	}
	radii := make([]float64, s.Len())
	var maxRad float64
	for i := 0; i < s.Len(); i++ {
		r, err := CovalentRadius(s.Symbol(i))
		if err != nil {
			return nil, errDecorate(err, "BuildBondGraph")
		}
		radii[i] = r
		if r > maxRad {
			maxRad = r
		}
	}
	searchR := 2 * maxRad * tol
	idx, err := NewGeometryIndex(s, searchR)
	if err != nil {
		return nil, errDecorate(err, "BuildBondGraph")
	}
	for i := 0; i < s.Len(); i++ {
		for _, nb := range idx.Neighbors(i, searchR) {
			if nb.Dist < 1e-8 { //coincident atoms are overlaps, not bonds
				continue
			}
			if nb.Dist > (radii[i]+radii[nb.Index])*tol {
				continue
			}
			b := Bond{I: i, J: nb.Index, Image: nb.Image, Dist: nb.Dist}
			g.adj[i] = append(g.adj[i], b)
			if b.canonical() {
				g.edges = append(g.edges, b)
			}
		}
	}
	sort.Slice(g.edges, func(a, b int) bool {
		ea, eb := g.edges[a], g.edges[b]
		if ea.I != eb.I {
			return ea.I < eb.I
		}
		if ea.J != eb.J {
			return ea.J < eb.J
		}
		return lessImage(ea.Image, eb.Image)
	})
	return g, nil
}

//Structure returns the structure the graph was built from.
func (g *BondGraph) Structure() *Structure { return g.s }

//Len returns the number of atoms (nodes).
func (g *BondGraph) Len() int { return len(g.adj) }

//Degree returns the coordination number of atom i: the number of bonded
//periodic neighbors, counting each periodic copy separately.
func (g *BondGraph) Degree(i int) int { return len(g.adj[i]) }

//Bonds returns the half-bonds leaving atom i, sorted by distance.
func (g *BondGraph) Bonds(i int) []Bond { return g.adj[i] }

//Edges returns every physical bond once, as its canonical representative,
//in a deterministic order.
func (g *BondGraph) Edges() []Bond { return g.edges }

//NeighborVectors returns the cartesian unit vectors from atom i to each
//of its bonded neighbors, periodic images taken into account.
func (g *BondGraph) NeighborVectors(i int) [][3]float64 {
	vecs := make([][3]float64, 0, len(g.adj[i]))
	for _, b := range g.adj[i] {
		u, ok := unit3(g.s.Displacement(b.I, b.J, b.Image))
		if !ok {
			continue
		}
		vecs = append(vecs, u)
	}
	return vecs
}

//Gonum returns the bonded topology as a gonum undirected graph with the
//periodic images collapsed: one node per atom, one edge per bonded atom
//pair. Self-image bonds have no simple-graph counterpart and are left
//out; components built from this view must consult Edges() for them.
func (g *BondGraph) Gonum() *simple.UndirectedGraph {
	u := simple.NewUndirectedGraph()
	for i := 0; i < g.Len(); i++ {
		u.AddNode(simple.Node(i))
	}
	for _, e := range g.edges {
		if e.I == e.J {
			continue
		}
		u.SetEdge(simple.Edge{F: simple.Node(e.I), T: simple.Node(e.J)})
	}
	return u
}
