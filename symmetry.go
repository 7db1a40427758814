/*
 * symmetry.go, part of gomofcheck.
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
	"crypto/sha256"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

//Symmetry analysis of the cell: enumerate the space-group operations
//(integer rotation parts with entries in {-1,0,1} preserving the metric
//tensor, paired with the fractional translations that map the atom set
//onto itself), then classify the point group from the rotation types.
//This assumes the structure is given in a conventional or reduced
//setting, which holds for the CIF files this module sees in practice.
//Full ITA symbol assignment beyond the triclinic groups would need the
//Hall tables; instead the exact operation list, point group and crystal
//system are reported, and the symbol is marked inexact.

//SymPosTol is the cartesian tolerance (A) for matching symmetry-mapped
//atom positions.
const SymPosTol = 0.01

//SymOp is one space-group operation in fractional coordinates, acting as
//f' = f*Rot + Trans (row-vector convention).
type SymOp struct {
	Rot   [3][3]int
	Trans [3]float64
}

//rotationType classifies the rotation part by determinant and trace into
//the crystallographic types 1, 2, 3, 4, 6 and their improper
//counterparts -1, -2 (mirror), -3, -4, -6.
func (op SymOp) rotationType() int {
	det := det3int(op.Rot)
	tr := op.Rot[0][0] + op.Rot[1][1] + op.Rot[2][2]
	if det == 1 {
		switch tr {
		case 3:
			return 1
		case 2:
			return 6
		case 1:
			return 4
		case 0:
			return 3
		case -1:
			return 2
		}
	} else {
		switch tr {
		case -3:
			return -1
		case -2:
			return -6
		case -1:
			return -4
		case 0:
			return -3
		case 1:
			return -2
		}
	}
	return 0 //not crystallographic; cannot happen for metric-preserving W
}

//SymmetryInfo is the result of AnalyzeSymmetry.
type SymmetryInfo struct {
	Ops              []SymOp
	PointGroup       string
	CrystalSystem    string
	SpacegroupNumber int    //0 when undetermined
	SpacegroupSymbol string //empty when undetermined
	SymbolExact      bool
}

//HasInversion reports whether the operation set contains -1.
func (si *SymmetryInfo) HasInversion() bool {
	for _, op := range si.Ops {
		if op.rotationType() == -1 {
			return true
		}
	}
	return false
}

//Hash returns a canonical hash of the symmetry: the composition plus the
//sorted invariants (rotation type, translation class) of every operation.
//Translations are snapped to a 1/24 grid, which holds every
//crystallographic translation exactly.
func (si *SymmetryInfo) Hash(formula string) string {
	entries := make([]string, 0, len(si.Ops))
	for _, op := range si.Ops {
		t := op.Trans
		var snapped [3]int
		for k := 0; k < 3; k++ {
			snapped[k] = int(math.Round(t[k]*24)) % 24
			if snapped[k] < 0 {
				snapped[k] += 24
			}
		}
		entries = append(entries, fmt.Sprintf("%d/%d,%d,%d", op.rotationType(), snapped[0], snapped[1], snapped[2]))
	}
	sort.Strings(entries)
	sum := sha256.Sum256([]byte(formula + "|" + strings.Join(entries, ";")))
	return fmt.Sprintf("%x", sum)
}

//AnalyzeSymmetry enumerates the space-group operations of the structure.
//Fails on an empty structure, for which the operation set is not defined.
func AnalyzeSymmetry(s *Structure) (*SymmetryInfo, error) {
	if s.Len() == 0 {
		return nil, ceErrorf("AnalyzeSymmetry", "Empty structure has no symmetry group")
	}
	//metric tensor G_ij = a_i . a_j
	var g [3][3]float64
	cell := s.Cell()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			g[i][j] = cell[i][0]*cell[j][0] + cell[i][1]*cell[j][1] + cell[i][2]*cell[j][2]
		}
	}
	metricTol := 1e-4 * (g[0][0] + g[1][1] + g[2][2])
	si := new(SymmetryInfo)
	for _, w := range metricRotations(g, metricTol) {
		for _, t := range s.validTranslations(w) {
			si.Ops = append(si.Ops, SymOp{Rot: w, Trans: t})
		}
	}
	si.classify()
	return si, nil
}

//metricRotations enumerates the integer matrices with entries in
//{-1,0,1}, determinant +-1, satisfying W G W^T = G within tol.
func metricRotations(g [3][3]float64, tol float64) [][3][3]int {
	var out [][3][3]int
	var w [3][3]int
	for code := 0; code < 19683; code++ { //3^9
		c := code
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				w[i][j] = c%3 - 1
				c /= 3
			}
		}
		d := det3int(w)
		if d != 1 && d != -1 {
			continue
		}
		if metricPreserved(w, g, tol) {
			out = append(out, w)
		}
	}
	return out
}

func metricPreserved(w [3][3]int, g [3][3]float64, tol float64) bool {
	//m = w g w^T
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var m float64
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					m += float64(w[i][k]) * g[k][l] * float64(w[j][l])
				}
			}
			if !scalar.EqualWithinAbs(m, g[i][j], tol) {
				return false
			}
		}
	}
	return true
}

func det3int(w [3][3]int) int {
	return w[0][0]*(w[1][1]*w[2][2]-w[1][2]*w[2][1]) -
		w[0][1]*(w[1][0]*w[2][2]-w[1][2]*w[2][0]) +
		w[0][2]*(w[1][0]*w[2][1]-w[1][1]*w[2][0])
}

//validTranslations finds every fractional translation that, combined
//with w, maps the atom set onto itself. Candidates come from mapping a
//reference atom of the scarcest species onto each atom of that species.
func (s *Structure) validTranslations(w [3][3]int) [][3]float64 {
	comp := s.composition()
	refSym := ""
	for sym, n := range comp {
		if refSym == "" || n < comp[refSym] || (n == comp[refSym] && sym < refSym) {
			refSym = sym
		}
	}
	var ref int
	for i := 0; i < s.Len(); i++ {
		if s.Symbol(i) == refSym {
			ref = i
			break
		}
	}
	rotRef := applyRot(s.Atom(ref).Frac, w)
	var out [][3]float64
	for b := 0; b < s.Len(); b++ {
		if s.Symbol(b) != refSym {
			continue
		}
		var t [3]float64
		fb := s.Atom(b).Frac
		for k := 0; k < 3; k++ {
			t[k] = wrapFrac(fb[k] - rotRef[k])
		}
		if s.mapsOntoSelf(w, t) {
			out = append(out, t)
		}
	}
	return out
}

func applyRot(f [3]float64, w [3][3]int) [3]float64 {
	var out [3]float64
	for j := 0; j < 3; j++ {
		out[j] = f[0]*float64(w[0][j]) + f[1]*float64(w[1][j]) + f[2]*float64(w[2][j])
	}
	return out
}

func wrapFrac(f float64) float64 {
	f -= math.Floor(f)
	if f >= 1 { //guard against -1e-17 flooring to -1
		f -= 1
	}
	return f
}

//mapsOntoSelf verifies that f -> f*w + t sends every atom onto an atom
//of the same species within SymPosTol.
func (s *Structure) mapsOntoSelf(w [3][3]int, t [3]float64) bool {
	for i := 0; i < s.Len(); i++ {
		mapped := applyRot(s.Atom(i).Frac, w)
		for k := 0; k < 3; k++ {
			mapped[k] = wrapFrac(mapped[k] + t[k])
		}
		found := false
		for j := 0; j < s.Len(); j++ {
			if s.Symbol(j) != s.Symbol(i) {
				continue
			}
			var df [3]float64
			fj := s.Atom(j).Frac
			for k := 0; k < 3; k++ {
				d := mapped[k] - fj[k]
				d -= math.Round(d) //minimum image in fractional space
				df[k] = d
			}
			if norm3(s.FracToCart(df)) < SymPosTol {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

//typeCounts indexes: -6,-4,-3,-2(m),-1,1,2,3,4,6.
var pointGroupTable = map[[10]int]string{
	{0, 0, 0, 0, 0, 1, 0, 0, 0, 0}: "1",
	{0, 0, 0, 0, 1, 1, 0, 0, 0, 0}: "-1",
	{0, 0, 0, 0, 0, 1, 1, 0, 0, 0}: "2",
	{0, 0, 0, 1, 0, 1, 0, 0, 0, 0}: "m",
	{0, 0, 0, 1, 1, 1, 1, 0, 0, 0}: "2/m",
	{0, 0, 0, 0, 0, 1, 3, 0, 0, 0}: "222",
	{0, 0, 0, 2, 0, 1, 1, 0, 0, 0}: "mm2",
	{0, 0, 0, 3, 1, 1, 3, 0, 0, 0}: "mmm",
	{0, 0, 0, 0, 0, 1, 1, 0, 2, 0}: "4",
	{0, 2, 0, 0, 0, 1, 1, 0, 0, 0}: "-4",
	{0, 2, 0, 1, 1, 1, 1, 0, 2, 0}: "4/m",
	{0, 0, 0, 0, 0, 1, 5, 0, 2, 0}: "422",
	{0, 0, 0, 4, 0, 1, 1, 0, 2, 0}: "4mm",
	{0, 2, 0, 2, 0, 1, 3, 0, 0, 0}: "-42m",
	{0, 2, 0, 5, 1, 1, 5, 0, 2, 0}: "4/mmm",
	{0, 0, 0, 0, 0, 1, 0, 2, 0, 0}: "3",
	{0, 0, 2, 0, 1, 1, 0, 2, 0, 0}: "-3",
	{0, 0, 0, 0, 0, 1, 3, 2, 0, 0}: "32",
	{0, 0, 0, 3, 0, 1, 0, 2, 0, 0}: "3m",
	{0, 0, 2, 3, 1, 1, 3, 2, 0, 0}: "-3m",
	{0, 0, 0, 0, 0, 1, 1, 2, 0, 2}: "6",
	{2, 0, 0, 1, 0, 1, 0, 2, 0, 0}: "-6",
	{2, 0, 2, 1, 1, 1, 1, 2, 0, 2}: "6/m",
	{0, 0, 0, 0, 0, 1, 7, 2, 0, 2}: "622",
	{0, 0, 0, 6, 0, 1, 1, 2, 0, 2}: "6mm",
	{2, 0, 0, 4, 0, 1, 3, 2, 0, 0}: "-6m2",
	{2, 0, 2, 7, 1, 1, 7, 2, 0, 2}: "6/mmm",
	{0, 0, 0, 0, 0, 1, 3, 8, 0, 0}: "23",
	{0, 0, 8, 3, 1, 1, 3, 8, 0, 0}: "m-3",
	{0, 0, 0, 0, 0, 1, 9, 8, 6, 0}: "432",
	{0, 6, 0, 6, 0, 1, 3, 8, 0, 0}: "-43m",
	{0, 6, 8, 9, 1, 1, 9, 8, 6, 0}: "m-3m",
}

var pointGroupSystem = map[string]string{
	"1": "triclinic", "-1": "triclinic",
	"2": "monoclinic", "m": "monoclinic", "2/m": "monoclinic",
	"222": "orthorhombic", "mm2": "orthorhombic", "mmm": "orthorhombic",
	"4": "tetragonal", "-4": "tetragonal", "4/m": "tetragonal", "422": "tetragonal",
	"4mm": "tetragonal", "-42m": "tetragonal", "4/mmm": "tetragonal",
	"3": "trigonal", "-3": "trigonal", "32": "trigonal", "3m": "trigonal", "-3m": "trigonal",
	"6": "hexagonal", "-6": "hexagonal", "6/m": "hexagonal", "622": "hexagonal",
	"6mm": "hexagonal", "-6m2": "hexagonal", "6/mmm": "hexagonal",
	"23": "cubic", "m-3": "cubic", "432": "cubic", "-43m": "cubic", "m-3m": "cubic",
}

//classify fills the point group, crystal system and, where exact, the
//triclinic space group. Supercell inputs repeat each rotation part once
//per pure translation; the distinct rotation parts form the point group.
func (si *SymmetryInfo) classify() {
	distinct := make(map[[3][3]int]int) //rotation part -> type
	for _, op := range si.Ops {
		distinct[op.Rot] = op.rotationType()
	}
	var counts [10]int
	idx := map[int]int{-6: 0, -4: 1, -3: 2, -2: 3, -1: 4, 1: 5, 2: 6, 3: 7, 4: 8, 6: 9}
	for _, tp := range distinct {
		counts[idx[tp]]++
	}
	si.PointGroup = pointGroupTable[counts]
	si.CrystalSystem = pointGroupSystem[si.PointGroup]
	switch si.PointGroup {
	case "1":
		si.SpacegroupNumber, si.SpacegroupSymbol, si.SymbolExact = 1, "P1", true
	case "-1":
		si.SpacegroupNumber, si.SpacegroupSymbol, si.SymbolExact = 2, "P-1", true
	}
}
