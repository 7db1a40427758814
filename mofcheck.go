/*
 * mofcheck.go, part of gomofcheck.
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
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//amu/A^3 to g/cm^3
const amuPerA3ToGPerCm3 = 1.66053906660

//Atom is one site of a periodic structure: a chemical species plus
//fractional coordinates in the lattice basis. Coordinates are wrapped
//into [0,1) on construction.
type Atom struct {
	Symbol string
	Frac   [3]float64
}

//Structure is a periodic atomic structure: a 3x3 lattice (rows are the
//lattice vectors, in A) and an ordered list of atoms in fractional
//coordinates. It is immutable after construction; every derived quantity
//(cartesian coordinates, volume, the inverse lattice) is computed once.
type Structure struct {
	name  string
	cell  *mat.Dense //rows are the lattice vectors
	inv   *mat.Dense
	atoms []Atom
	cart  [][3]float64
	vol   float64
}

//NewStructure builds a Structure from a lattice, a species list and
//fractional coordinates. It fails if the lattice is degenerate (zero
//volume) or if the species and coordinate slices differ in length.
//Fractional coordinates are reduced modulo 1 to their canonical
//representative in [0,1).
func NewStructure(name string, cell [3][3]float64, species []string, frac [][3]float64) (*Structure, error) {
	if len(species) != len(frac) {
		return nil, ceErrorf("NewStructure", "%d species for %d coordinates", len(species), len(frac))
	}
	data := make([]float64, 0, 9)
	for _, row := range cell {
		data = append(data, row[0], row[1], row[2])
	}
	c := mat.NewDense(3, 3, data)
	vol := mat.Det(c)
	if math.Abs(vol) < 1e-8 {
		return nil, ceErrorf("NewStructure", "Degenerate lattice: volume %g", vol)
	}
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(c); err != nil {
		return nil, errDecorate(err, "NewStructure")
	}
	s := &Structure{name: name, cell: c, inv: inv, vol: math.Abs(vol)}
	s.atoms = make([]Atom, len(species))
	s.cart = make([][3]float64, len(species))
	for i, sym := range species {
		f := frac[i]
		for k := 0; k < 3; k++ {
			f[k] = f[k] - math.Floor(f[k])
		}
		s.atoms[i] = Atom{Symbol: sym, Frac: f}
		s.cart[i] = s.FracToCart(f)
	}
	return s, nil
}

//Name returns the name the structure was built with.
func (s *Structure) Name() string { return s.name }

//Len returns the number of atoms.
func (s *Structure) Len() int { return len(s.atoms) }

//Atom returns the ith atom. Panics if out of range, as this is a
//programming error.
func (s *Structure) Atom(i int) Atom {
	if i < 0 || i >= len(s.atoms) {
		panic(fmt.Sprintf("mofcheck: atom index %d out of range", i))
	}
	return s.atoms[i]
}

//Symbol returns the species of the ith atom.
func (s *Structure) Symbol(i int) string { return s.atoms[i].Symbol }

//Cart returns the cartesian coordinates (A) of the ith atom.
func (s *Structure) Cart(i int) [3]float64 { return s.cart[i] }

//Cell returns a copy of the lattice matrix, rows being the lattice vectors.
func (s *Structure) Cell() [3][3]float64 {
	var c [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = s.cell.At(i, j)
		}
	}
	return c
}

//Volume returns the cell volume in A^3.
func (s *Structure) Volume() float64 { return s.vol }

//FracToCart converts fractional to cartesian coordinates, row-vector
//convention: cart = frac * cell.
func (s *Structure) FracToCart(f [3]float64) [3]float64 {
	var c [3]float64
	for j := 0; j < 3; j++ {
		c[j] = f[0]*s.cell.At(0, j) + f[1]*s.cell.At(1, j) + f[2]*s.cell.At(2, j)
	}
	return c
}

//CartToFrac converts cartesian to fractional coordinates.
func (s *Structure) CartToFrac(c [3]float64) [3]float64 {
	var f [3]float64
	for j := 0; j < 3; j++ {
		f[j] = c[0]*s.inv.At(0, j) + c[1]*s.inv.At(1, j) + c[2]*s.inv.At(2, j)
	}
	return f
}

//ImageShift returns the cartesian translation corresponding to an
//integer lattice-image vector.
func (s *Structure) ImageShift(image [3]int) [3]float64 {
	return s.FracToCart([3]float64{float64(image[0]), float64(image[1]), float64(image[2])})
}

//Displacement returns the cartesian vector from atom i to the image-th
//periodic copy of atom j.
func (s *Structure) Displacement(i, j int, image [3]int) [3]float64 {
	shift := s.ImageShift(image)
	ci, cj := s.cart[i], s.cart[j]
	return [3]float64{cj[0] + shift[0] - ci[0], cj[1] + shift[1] - ci[1], cj[2] + shift[2] - ci[2]}
}

//HasSpecies reports whether any atom is of the given species.
func (s *Structure) HasSpecies(symbol string) bool {
	for i := range s.atoms {
		if s.atoms[i].Symbol == symbol {
			return true
		}
	}
	return false
}

//HasMetal reports whether any atom is a metal.
func (s *Structure) HasMetal() bool {
	for i := range s.atoms {
		if IsMetal(s.atoms[i].Symbol) {
			return true
		}
	}
	return false
}

//composition returns the per-species atom counts.
func (s *Structure) composition() map[string]int {
	comp := make(map[string]int)
	for i := range s.atoms {
		comp[s.atoms[i].Symbol]++
	}
	return comp
}

//Formula returns the chemical formula in Hill order (C first, then H,
//then the remaining species alphabetically; all alphabetical when no
//carbon is present). Counts are always written, e.g. "C24 H12 O13 Zn4".
func (s *Structure) Formula() string {
	comp := s.composition()
	syms := make([]string, 0, len(comp))
	for sym := range comp {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	ordered := make([]string, 0, len(syms))
	if comp["C"] > 0 {
		ordered = append(ordered, "C")
		if comp["H"] > 0 {
			ordered = append(ordered, "H")
		}
		for _, sym := range syms {
			if sym != "C" && sym != "H" {
				ordered = append(ordered, sym)
			}
		}
	} else {
		ordered = syms
	}
	parts := make([]string, 0, len(ordered))
	for _, sym := range ordered {
		parts = append(parts, fmt.Sprintf("%s%d", sym, comp[sym]))
	}
	return strings.Join(parts, " ")
}

//Density returns the mass density in g/cm^3. It fails if any species has
//no entry in the mass table, or if the structure is empty.
func (s *Structure) Density() (float64, error) {
	if len(s.atoms) == 0 {
		return 0, ceErrorf("Density", "Empty structure")
	}
	var mass float64
	for i := range s.atoms {
		m, ok := symbolMass[s.atoms[i].Symbol]
		if !ok {
			return 0, ceErrorf("Density", "No mass for species %s", s.atoms[i].Symbol)
		}
		mass += m
	}
	return mass / s.vol * amuPerA3ToGPerCm3, nil
}
