/*
 * cif_test.go, part of gomofcheck.
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

package cif

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

const znoxCIF = `
data_znox
# a toy terminal-oxo fragment
_cell_length_a    10.00(2)
_cell_length_b    10.0
_cell_length_c    10.0
_cell_angle_alpha 90.0
_cell_angle_beta  90.0
_cell_angle_gamma 90.0
loop_
_atom_site_label
_atom_site_fract_x
_atom_site_fract_y
_atom_site_fract_z
Zn1 0.00000 0.0 0.0
O1  0.20000(12) 0.0 0.0
`

func TestReadString(Te *testing.T) {
	s, err := ReadString(znoxCIF, "")
	if err != nil {
		Te.Fatal(err)
	}
	if s.Name() != "znox" {
		Te.Errorf("name from data block: got %q, want znox", s.Name())
	}
	if s.Len() != 2 {
		Te.Fatalf("got %d atoms, want 2", s.Len())
	}
	if s.Symbol(0) != "Zn" || s.Symbol(1) != "O" {
		Te.Errorf("symbols from labels: got %s, %s", s.Symbol(0), s.Symbol(1))
	}
	if math.Abs(s.Volume()-1000) > 1e-6 {
		Te.Errorf("volume: got %g, want 1000", s.Volume())
	}
	f := s.Atom(1).Frac
	if math.Abs(f[0]-0.2) > 1e-9 {
		Te.Errorf("the (12) uncertainty must be dropped, got x = %g", f[0])
	}
}

func TestReadTriclinicCell(Te *testing.T) {
	const text = `
data_tric
_cell_length_a    6.0
_cell_length_b    7.0
_cell_length_c    8.0
_cell_angle_alpha 80.0
_cell_angle_beta  85.0
_cell_angle_gamma 95.0
loop_
_atom_site_type_symbol
_atom_site_fract_x
_atom_site_fract_y
_atom_site_fract_z
C 0.1 0.2 0.3
`
	s, err := ReadString(text, "tric")
	if err != nil {
		Te.Fatal(err)
	}
	//the lattice rows must reproduce the cell parameters
	cell := s.Cell()
	a := math.Sqrt(cell[0][0]*cell[0][0] + cell[0][1]*cell[0][1] + cell[0][2]*cell[0][2])
	b := math.Sqrt(cell[1][0]*cell[1][0] + cell[1][1]*cell[1][1] + cell[1][2]*cell[1][2])
	c := math.Sqrt(cell[2][0]*cell[2][0] + cell[2][1]*cell[2][1] + cell[2][2]*cell[2][2])
	if math.Abs(a-6) > 1e-9 || math.Abs(b-7) > 1e-9 || math.Abs(c-8) > 1e-9 {
		Te.Errorf("cell lengths: got %g, %g, %g", a, b, c)
	}
	gamma := math.Acos((cell[0][0]*cell[1][0]+cell[0][1]*cell[1][1]+cell[0][2]*cell[1][2])/(a*b)) * 180 / math.Pi
	if math.Abs(gamma-95) > 1e-6 {
		Te.Errorf("gamma: got %g, want 95", gamma)
	}
}

func TestSymOpExpansion(Te *testing.T) {
	const text = `
data_inv
_cell_length_a    10.0
_cell_length_b    10.0
_cell_length_c    10.0
_cell_angle_alpha 90.0
_cell_angle_beta  90.0
_cell_angle_gamma 90.0
loop_
_symmetry_equiv_pos_as_xyz
'x, y, z'
'-x, -y, -z'
loop_
_atom_site_type_symbol
_atom_site_fract_x
_atom_site_fract_y
_atom_site_fract_z
C 0.1 0.2 0.3
O 0.0 0.0 0.0
`
	s, err := ReadString(text, "inv")
	if err != nil {
		Te.Fatal(err)
	}
	//the carbon doubles under the inversion, the origin oxygen maps onto
	//itself and must not duplicate
	if s.Len() != 3 {
		Te.Fatalf("got %d atoms after expansion, want 3", s.Len())
	}
	nC := 0
	for i := 0; i < s.Len(); i++ {
		if s.Symbol(i) == "C" {
			nC++
		}
	}
	if nC != 2 {
		Te.Errorf("got %d carbons, want 2", nC)
	}
}

func TestReadFileGzip(Te *testing.T) {
	dir := Te.TempDir()
	write := func(path string, gzipped bool) {
		f, err := os.Create(path)
		if err != nil {
			Te.Fatal(err)
		}
		defer f.Close()
		if gzipped {
			w := gzip.NewWriter(f)
			if _, err := w.Write([]byte(znoxCIF)); err != nil {
				Te.Fatal(err)
			}
			if err := w.Close(); err != nil {
				Te.Fatal(err)
			}
			return
		}
		if _, err := f.Write([]byte(znoxCIF)); err != nil {
			Te.Fatal(err)
		}
	}
	plain := filepath.Join(dir, "znox.cif")
	suffixed := filepath.Join(dir, "znox.cif.gz")
	sneaky := filepath.Join(dir, "znox-packed.cif") //gzip content, no .gz suffix
	write(plain, false)
	write(suffixed, true)
	write(sneaky, true)
	for _, path := range []string{plain, suffixed, sneaky} {
		s, err := ReadFile(path)
		if err != nil {
			Te.Fatalf("%s: %v", path, err)
		}
		if s.Len() != 2 {
			Te.Errorf("%s: got %d atoms, want 2", path, s.Len())
		}
	}
	//the name comes from the file, stripped of extensions
	s, err := ReadFile(suffixed)
	if err != nil {
		Te.Fatal(err)
	}
	if s.Name() != "znox" {
		Te.Errorf("name: got %q, want znox", s.Name())
	}
}

func TestReadFirstBlockOnly(Te *testing.T) {
	//two blocks: a zinc in a 10 A cell, then a carbon in a 5 A cell.
	//Only the first block may contribute; block 2 must neither add its
	//atom nor overwrite the cell.
	const text = `
data_b1
_cell_length_a    10.0
_cell_length_b    10.0
_cell_length_c    10.0
_cell_angle_alpha 90.0
_cell_angle_beta  90.0
_cell_angle_gamma 90.0
loop_
_atom_site_type_symbol
_atom_site_fract_x
_atom_site_fract_y
_atom_site_fract_z
Zn 0.0 0.0 0.0
data_b2
_cell_length_a    5.0
_cell_length_b    5.0
_cell_length_c    5.0
_cell_angle_alpha 90.0
_cell_angle_beta  90.0
_cell_angle_gamma 90.0
loop_
_atom_site_type_symbol
_atom_site_fract_x
_atom_site_fract_y
_atom_site_fract_z
C 0.5 0.5 0.5
`
	s, err := ReadString(text, "")
	if err != nil {
		Te.Fatal(err)
	}
	if s.Name() != "b1" {
		Te.Errorf("name: got %q, want b1", s.Name())
	}
	if s.Len() != 1 || s.Symbol(0) != "Zn" {
		Te.Fatalf("got %d atoms (first %s), want the single Zn of block 1", s.Len(), s.Symbol(0))
	}
	if math.Abs(s.Volume()-1000) > 1e-6 {
		Te.Errorf("volume: got %g, want block 1's 1000", s.Volume())
	}
}

func TestSymbolFromLabel(Te *testing.T) {
	cases := []struct{ label, want string }{
		{"Zn1", "Zn"},
		{"O1-", "O"},
		{"Cu2+", "Cu"},
		{"C", "C"},
		{"Ow1", "O"},  //water-oxygen site marker, no element "Ow"
		{"Hab", "H"},  //amide-hydrogen style label
		{"Hf1", "Hf"}, //a real two-letter element stays itself
		{"Qq1", "Qq"}, //nothing salvageable: left for the species check
	}
	for _, c := range cases {
		if got := symbolFromLabel(c.label); got != c.want {
			Te.Errorf("label %q: got %q, want %q", c.label, got, c.want)
		}
	}
}

func TestReadErrors(Te *testing.T) {
	noCell := `
data_bad
loop_
_atom_site_type_symbol
_atom_site_fract_x
_atom_site_fract_y
_atom_site_fract_z
C 0.1 0.2 0.3
`
	if _, err := ReadString(noCell, "bad"); err == nil {
		Te.Error("expected an error for missing cell parameters")
	}
	noAtoms := `
data_bad
_cell_length_a    10.0
_cell_length_b    10.0
_cell_length_c    10.0
_cell_angle_alpha 90.0
_cell_angle_beta  90.0
_cell_angle_gamma 90.0
`
	if _, err := ReadString(noAtoms, "bad"); err == nil {
		Te.Error("expected an error for a file without atoms")
	}
	if _, err := ReadFile(filepath.Join(Te.TempDir(), "missing.cif")); err == nil {
		Te.Error("expected an error for a missing file")
	}
}

func TestParseSymOp(Te *testing.T) {
	op, err := parseSymOp("1/2-x, y+1/2, -z")
	if err != nil {
		Te.Fatal(err)
	}
	got := op.apply([3]float64{0.1, 0.2, 0.3})
	want := [3]float64{0.4, 0.7, 0.7}
	for k := 0; k < 3; k++ {
		if math.Abs(got[k]-want[k]) > 1e-12 {
			Te.Errorf("coordinate %d: got %g, want %g", k, got[k], want[k])
		}
	}
	if _, err := parseSymOp("x, y"); err == nil {
		Te.Error("expected an error for a two-coordinate operation")
	}
	if _, err := parseSymOp("x, y, w"); err == nil {
		Te.Error("expected an error for an unknown variable")
	}
}
