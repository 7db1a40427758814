/*
 * symmetry_test.go, part of gomofcheck.
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

var triclinicCell = [3][3]float64{{5, 0, 0}, {0.5, 6, 0}, {0.3, 0.4, 7}}

func TestSymmetryCubic(Te *testing.T) {
	s := mustStructure(Te, "zn", cubicCell(3), []string{"Zn"}, [][3]float64{{0, 0, 0}})
	si, err := AnalyzeSymmetry(s)
	if err != nil {
		Te.Fatal(err)
	}
	//the full cubic holohedry: 48 signed permutation matrices
	if len(si.Ops) != 48 {
		Te.Errorf("got %d operations, want 48", len(si.Ops))
	}
	if si.PointGroup != "m-3m" {
		Te.Errorf("point group: got %q, want m-3m", si.PointGroup)
	}
	if si.CrystalSystem != "cubic" {
		Te.Errorf("crystal system: got %q", si.CrystalSystem)
	}
	if !si.HasInversion() {
		Te.Error("the cubic holohedry contains the inversion")
	}
	//beyond the triclinic groups, no exact ITA symbol is claimed
	if si.SymbolExact || si.SpacegroupSymbol != "" || si.SpacegroupNumber != 0 {
		Te.Errorf("unexpected exact symbol claim: %+v", si)
	}
}

func TestSymmetryP1(Te *testing.T) {
	s := mustStructure(Te, "p1", triclinicCell, []string{"C", "O"},
		[][3]float64{{0.11, 0.23, 0.35}, {0.51, 0.62, 0.74}})
	si, err := AnalyzeSymmetry(s)
	if err != nil {
		Te.Fatal(err)
	}
	if len(si.Ops) != 1 {
		Te.Fatalf("got %d operations, want the identity alone", len(si.Ops))
	}
	if si.PointGroup != "1" || si.CrystalSystem != "triclinic" {
		Te.Errorf("got point group %q in system %q", si.PointGroup, si.CrystalSystem)
	}
	if !si.SymbolExact || si.SpacegroupSymbol != "P1" || si.SpacegroupNumber != 1 {
		Te.Errorf("P1 should be exact: %+v", si)
	}
	if si.HasInversion() {
		Te.Error("P1 has no inversion")
	}
}

func TestSymmetryPMinus1(Te *testing.T) {
	//two carbons related by the inversion through the origin
	s := mustStructure(Te, "pm1", triclinicCell, []string{"C", "C"},
		[][3]float64{{0.1, 0.2, 0.3}, {0.9, 0.8, 0.7}})
	si, err := AnalyzeSymmetry(s)
	if err != nil {
		Te.Fatal(err)
	}
	if len(si.Ops) != 2 {
		Te.Fatalf("got %d operations, want identity plus inversion", len(si.Ops))
	}
	if si.PointGroup != "-1" || !si.HasInversion() {
		Te.Errorf("point group: got %q, inversion %v", si.PointGroup, si.HasInversion())
	}
	if !si.SymbolExact || si.SpacegroupSymbol != "P-1" || si.SpacegroupNumber != 2 {
		Te.Errorf("P-1 should be exact: %+v", si)
	}
}

func TestSymmetryHash(Te *testing.T) {
	p1 := mustStructure(Te, "p1", triclinicCell, []string{"C", "O"},
		[][3]float64{{0.11, 0.23, 0.35}, {0.51, 0.62, 0.74}})
	pm1 := mustStructure(Te, "pm1", triclinicCell, []string{"C", "C"},
		[][3]float64{{0.1, 0.2, 0.3}, {0.9, 0.8, 0.7}})
	s1, err := AnalyzeSymmetry(p1)
	if err != nil {
		Te.Fatal(err)
	}
	s2, err := AnalyzeSymmetry(pm1)
	if err != nil {
		Te.Fatal(err)
	}
	if s1.Hash(p1.Formula()) != s1.Hash(p1.Formula()) {
		Te.Error("the symmetry hash must be deterministic")
	}
	if s1.Hash(p1.Formula()) == s2.Hash(pm1.Formula()) {
		Te.Error("different symmetry groups must not collide")
	}
}

func TestSymmetryEmptyStructure(Te *testing.T) {
	s := mustStructure(Te, "none", cubicCell(5), nil, nil)
	if _, err := AnalyzeSymmetry(s); err == nil {
		Te.Error("expected an error for the empty structure")
	}
}

func TestRotationTypes(Te *testing.T) {
	cases := []struct {
		rot  [3][3]int
		want int
	}{
		{[3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, 1},
		{[3][3]int{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}}, -1},
		{[3][3]int{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}}, 2},
		{[3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}}, -2},
		{[3][3]int{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}, 4},
		{[3][3]int{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}}, 3},
	}
	for _, c := range cases {
		if got := (SymOp{Rot: c.rot}).rotationType(); got != c.want {
			Te.Errorf("rotation %v: got type %d, want %d", c.rot, got, c.want)
		}
	}
}
