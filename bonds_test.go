/*
 * bonds_test.go, part of gomofcheck.
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

import "testing"

func mustGraph(Te *testing.T, s *Structure) *BondGraph {
	Te.Helper()
	g, err := BuildBondGraph(s, 0)
	if err != nil {
		Te.Fatalf("BuildBondGraph: %v", err)
	}
	return g
}

func TestMethaneBonds(Te *testing.T) {
	g := mustGraph(Te, methane(Te))
	if got := g.Degree(0); got != 4 {
		Te.Errorf("carbon coordination: got %d, want 4", got)
	}
	for i := 1; i < 5; i++ {
		if got := g.Degree(i); got != 1 {
			Te.Errorf("hydrogen %d coordination: got %d, want 1", i, got)
		}
	}
	if got := len(g.Edges()); got != 4 {
		Te.Errorf("edge count: got %d, want 4", got)
	}
}

func TestBondSymmetry(Te *testing.T) {
	//a 2D Zn sheet plus methane: bonds both inside the cell and across
	//the boundary
	s := mustStructure(Te, "sheet", [3][3]float64{{2.8, 0, 0}, {0, 2.8, 0}, {0, 0, 14}},
		[]string{"Zn"}, [][3]float64{{0, 0, 0}})
	g := mustGraph(Te, s)
	for i := 0; i < g.Len(); i++ {
		for _, b := range g.Bonds(i) {
			m := b.mirror()
			found := false
			for _, rb := range g.Bonds(b.J) {
				if rb == m {
					found = true
					break
				}
			}
			if !found {
				Te.Errorf("bond %+v has no mirror from atom %d", b, b.J)
			}
		}
	}
	//each physical bond appears exactly once in Edges
	if got, want := len(g.Edges()), 2; got != want { //+x and +y self-image bonds
		Te.Errorf("canonical edges: got %d, want %d", got, want)
	}
	if got, want := g.Degree(0), 4; got != want {
		Te.Errorf("sheet coordination: got %d, want %d", got, want)
	}
}

func TestBondGraphOrderIndependence(Te *testing.T) {
	//the same methane with atoms listed in a different order
	a := methane(Te)
	const d = 1.09 / 10
	k := d / 1.7320508075688772
	species := []string{"H", "H", "C", "H", "H"}
	frac := [][3]float64{
		{0.5 - k, 0.5 - k, 0.5 + k},
		{0.5 + k, 0.5 + k, 0.5 + k},
		{0.5, 0.5, 0.5},
		{0.5 + k, 0.5 - k, 0.5 - k},
		{0.5 - k, 0.5 + k, 0.5 - k},
	}
	b := mustStructure(Te, "methane-shuffled", cubicCell(10), species, frac)
	ga, gb := mustGraph(Te, a), mustGraph(Te, b)
	if len(ga.Edges()) != len(gb.Edges()) {
		Te.Fatalf("edge counts differ: %d vs %d", len(ga.Edges()), len(gb.Edges()))
	}
	//species-wise degree multisets must match
	count := func(g *BondGraph) map[string]map[int]int {
		out := make(map[string]map[int]int)
		for i := 0; i < g.Len(); i++ {
			sym := g.Structure().Symbol(i)
			if out[sym] == nil {
				out[sym] = make(map[int]int)
			}
			out[sym][g.Degree(i)]++
		}
		return out
	}
	ca, cb := count(ga), count(gb)
	for sym, degs := range ca {
		for deg, n := range degs {
			if cb[sym][deg] != n {
				Te.Errorf("degree multiset mismatch for %s, degree %d: %d vs %d", sym, deg, n, cb[sym][deg])
			}
		}
	}
}

func TestUnknownSpecies(Te *testing.T) {
	s := mustStructure(Te, "unknown", cubicCell(10), []string{"C", "Qq"},
		[][3]float64{{0, 0, 0}, {0.1, 0, 0}})
	if _, err := BuildBondGraph(s, 0); err == nil {
		Te.Error("expected an unknown-species error")
	}
}

func TestEmptyGraph(Te *testing.T) {
	s := mustStructure(Te, "empty", cubicCell(10), nil, nil)
	g := mustGraph(Te, s)
	if g.Len() != 0 || len(g.Edges()) != 0 {
		Te.Error("empty structure should give an empty graph")
	}
}
