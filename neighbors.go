/*
 * neighbors.go, part of gomofcheck.
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
	"math"
	"sort"
)

//Neighbor is one hit of a periodic neighbor query: atom Index, the
//lattice-image vector of the copy that was found, and the cartesian
//distance to it.
type Neighbor struct {
	Index int
	Image [3]int
	Dist  float64
}

//GeometryIndex is a cell list over the unit cell: atoms are binned by
//fractional coordinate, and a query walks only the bins within range,
//deriving the periodic image of each candidate from how far the walk
//wrapped around the cell. Queries are pure functions of the immutable
//structure, so per-atom queries can run concurrently.
type GeometryIndex struct {
	s      *Structure
	cutoff float64
	n      [3]int       //bins per lattice direction
	thick  [3]float64   //bin thickness, as interplanar distance (A)
	bins   map[[3]int][]int
	binOf  [][3]int
}

//NewGeometryIndex builds the cell list, sized so that queries up to
//cutoff touch few bins. Larger query radii remain correct, just slower.
func NewGeometryIndex(s *Structure, cutoff float64) (*GeometryIndex, error) {
	if cutoff <= 0 {
		return nil, ceErrorf("NewGeometryIndex", "Non-positive cutoff %g", cutoff)
	}
	g := &GeometryIndex{s: s, cutoff: cutoff, bins: make(map[[3]int][]int)}
	//interplanar spacings: 1/|b_k| with b_k the reciprocal vectors,
	//i.e. the columns of the inverse lattice matrix.
	for k := 0; k < 3; k++ {
		b := [3]float64{s.inv.At(0, k), s.inv.At(1, k), s.inv.At(2, k)}
		d := 1 / norm3(b)
		nk := int(math.Floor(d / cutoff))
		if nk < 1 {
			nk = 1
		}
		g.n[k] = nk
		g.thick[k] = d / float64(nk)
	}
	g.binOf = make([][3]int, s.Len())
	for i := 0; i < s.Len(); i++ {
		f := s.Atom(i).Frac
		var b [3]int
		for k := 0; k < 3; k++ {
			bk := int(f[k] * float64(g.n[k]))
			if bk >= g.n[k] { //f is in [0,1), but guard the rounding edge
				bk = g.n[k] - 1
			}
			b[k] = bk
		}
		g.binOf[i] = b
		g.bins[b] = append(g.bins[b], i)
	}
	return g, nil
}

//Neighbors returns every periodic copy of every atom within radius r of
//atom i, excluding atom i itself in the zero image. The result is sorted
//by distance, then atom index, then image, so it is deterministic.
func (g *GeometryIndex) Neighbors(i int, r float64) []Neighbor {
	var found []Neighbor
	b := g.binOf[i]
	var reach [3]int
	for k := 0; k < 3; k++ {
		reach[k] = int(r/g.thick[k]) + 1
	}
	for dx := b[0] - reach[0]; dx <= b[0]+reach[0]; dx++ {
		for dy := b[1] - reach[1]; dy <= b[1]+reach[1]; dy++ {
			for dz := b[2] - reach[2]; dz <= b[2]+reach[2]; dz++ {
				cell := [3]int{dx, dy, dz}
				var wrapped, image [3]int
				for k := 0; k < 3; k++ {
					im := floorDiv(cell[k], g.n[k])
					image[k] = im
					wrapped[k] = cell[k] - im*g.n[k]
				}
				for _, j := range g.bins[wrapped] {
					if j == i && image == [3]int{} {
						continue
					}
					d := norm3(g.s.Displacement(i, j, image))
					if d <= r {
						found = append(found, Neighbor{Index: j, Image: image, Dist: d})
					}
				}
			}
		}
	}
	sort.Slice(found, func(a, b int) bool {
		if found[a].Dist != found[b].Dist {
			return found[a].Dist < found[b].Dist
		}
		if found[a].Index != found[b].Index {
			return found[a].Index < found[b].Index
		}
		return lessImage(found[a].Image, found[b].Image)
	})
	return found
}

func floorDiv(a, n int) int {
	q := a / n
	if a%n < 0 {
		q--
	}
	return q
}

func lessImage(a, b [3]int) bool {
	for k := 0; k < 3; k++ {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return false
}
