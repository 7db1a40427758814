/*
 * checks.go, part of gomofcheck.
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

//Overlap is a pair of atoms placed unphysically close together. Each
//offending pair is reported exactly once, with the exact distance.
type Overlap struct {
	I, J  int
	Image [3]int
	Dist  float64
}

//FindOverlaps flags atom pairs closer than (r_i + r_j) * tol, with tol
//well under 1 (the OverlapTolerance policy default is used when tol <= 0).
//Structures with fewer than two atoms pass vacuously. An unknown species
//is a hard error.
func FindOverlaps(s *Structure, tol float64) ([]Overlap, error) {
	if tol <= 0 {
		tol = OverlapTolerance
	}
	if s.Len() < 2 {
		return nil, nil
	}
	radii := make([]float64, s.Len())
	var maxRad float64
	for i := 0; i < s.Len(); i++ {
		r, err := CovalentRadius(s.Symbol(i))
		if err != nil {
			return nil, errDecorate(err, "FindOverlaps")
		}
		radii[i] = r
		if r > maxRad {
			maxRad = r
		}
	}
	searchR := 2 * maxRad * tol
	idx, err := NewGeometryIndex(s, searchR)
	if err != nil {
		return nil, errDecorate(err, "FindOverlaps")
	}
	var found []Overlap
	for i := 0; i < s.Len(); i++ {
		for _, nb := range idx.Neighbors(i, searchR) {
			if nb.Dist >= (radii[i]+radii[nb.Index])*tol {
				continue
			}
			b := Bond{I: i, J: nb.Index, Image: nb.Image}
			if !b.canonical() {
				continue //the mirror pair reports it
			}
			found = append(found, Overlap{I: i, J: nb.Index, Image: nb.Image, Dist: nb.Dist})
		}
	}
	return found, nil
}

//Overcoordinated returns the indices of atoms of the given species whose
//coordination number exceeds the policy maximum. Species outside the
//policy table are never flagged.
func (g *BondGraph) Overcoordinated(symbol string) []int {
	cr, ok := expectedCoordination[symbol]
	if !ok {
		return nil
	}
	var out []int
	for i := 0; i < g.Len(); i++ {
		if g.s.Symbol(i) == symbol && g.Degree(i) > cr.Max {
			out = append(out, i)
		}
	}
	return out
}

//Undercoordinated returns the indices of atoms of the given species whose
//coordination number is below the policy minimum.
func (g *BondGraph) Undercoordinated(symbol string) []int {
	cr, ok := expectedCoordination[symbol]
	if !ok {
		return nil
	}
	var out []int
	for i := 0; i < g.Len(); i++ {
		if g.s.Symbol(i) == symbol && g.Degree(i) < cr.Min {
			out = append(out, i)
		}
	}
	return out
}

//UndercoordinatedRareEarth flags rare-earth (and early-actinide) centers
//with fewer bonded neighbors than an ionic node should have.
func (g *BondGraph) UndercoordinatedRareEarth() []int {
	var out []int
	for i := 0; i < g.Len(); i++ {
		if rareEarths[g.s.Symbol(i)] && g.Degree(i) < rareEarthMinCoordination {
			out = append(out, i)
		}
	}
	return out
}

//UndercoordinatedAlkaliAlkaline flags group 1 and 2 centers below the
//ionic minimum coordination.
func (g *BondGraph) UndercoordinatedAlkaliAlkaline() []int {
	var out []int
	for i := 0; i < g.Len(); i++ {
		if alkaliAlkaline[g.s.Symbol(i)] && g.Degree(i) < alkaliMinCoordination {
			out = append(out, i)
		}
	}
	return out
}

//SuspiciousTerminalOxo flags oxygens bonded to exactly one neighbor when
//that neighbor is a metal. These are usually mis-assigned water or
//hydroxo ligands with the hydrogens dropped.
func (g *BondGraph) SuspiciousTerminalOxo() []int {
	var out []int
	for i := 0; i < g.Len(); i++ {
		if g.s.Symbol(i) != "O" || g.Degree(i) != 1 {
			continue
		}
		if IsMetal(g.s.Symbol(g.adj[i][0].J)) {
			out = append(out, i)
		}
	}
	return out
}

//CandidateHPosition proposes a cartesian position for a missing hydrogen
//on an undercoordinated atom: one X-H bond length along the inverted
//resultant of the existing bond vectors. The second return is false when
//no direction can be derived (no neighbors, or neighbors that cancel out).
func (g *BondGraph) CandidateHPosition(i int) ([3]float64, bool) {
	var resultant [3]float64
	for _, u := range g.NeighborVectors(i) {
		resultant = add3(resultant, u)
	}
	dir, ok := unit3(resultant)
	if !ok {
		return [3]float64{}, false
	}
	blen := CHBondLength
	if g.s.Symbol(i) == "N" {
		blen = NHBondLength
	}
	return sub3(g.s.Cart(i), scale3(dir, blen)), true
}
