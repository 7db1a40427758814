/*
 * atomicdata.go, part of gomofcheck.
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

//Policy constants for the structure checks. These are empirical values,
//calibrated against reference MOF structures, not quantities derived
//per-structure. Distances in A, unless said otherwise.
const (
	//BondTolerance multiplies the sum of covalent radii to give the
	//bonding cutoff. >1 to absorb the error of the covalent radius table.
	BondTolerance = 1.2
	//OverlapTolerance multiplies the sum of covalent radii to give the
	//distance under which two atoms are considered unphysically close.
	OverlapTolerance = 0.5
	//OMSConeHalfAngle (radians) is the half-angle of the blocking cone
	//subtended by each bonded neighbor in the open-metal-site coverage test.
	OMSConeHalfAngle = 50.0 * deg2Rad
	//OMSExposureThreshold is the uncovered fraction of the unit sphere
	//over which a metal center counts as geometrically exposed.
	OMSExposureThreshold = 0.30
	//WLMaxIterations bounds the color-refinement loop of the graph hash.
	WLMaxIterations = 16
	//CHBondLength and NHBondLength are the X-H distances used when
	//proposing hydrogen positions for undercoordinated C and N.
	CHBondLength = 1.08
	NHBondLength = 1.01
)

const deg2Rad = 0.0174532925199432957692

//symbolMass assigns standard atomic weights (amu) to the elements.
var symbolMass = map[string]float64{
	"H": 1.008, "He": 4.003,
	"Li": 6.94, "Be": 9.012, "B": 10.81, "C": 12.011, "N": 14.007, "O": 15.999, "F": 18.998, "Ne": 20.180,
	"Na": 22.990, "Mg": 24.305, "Al": 26.982, "Si": 28.085, "P": 30.974, "S": 32.06, "Cl": 35.45, "Ar": 39.948,
	"K": 39.098, "Ca": 40.078, "Sc": 44.956, "Ti": 47.867, "V": 50.942, "Cr": 51.996, "Mn": 54.938,
	"Fe": 55.845, "Co": 58.933, "Ni": 58.693, "Cu": 63.546, "Zn": 65.38, "Ga": 69.723, "Ge": 72.63,
	"As": 74.922, "Se": 78.971, "Br": 79.904, "Kr": 83.798,
	"Rb": 85.468, "Sr": 87.62, "Y": 88.906, "Zr": 91.224, "Nb": 92.906, "Mo": 95.95, "Tc": 98.0,
	"Ru": 101.07, "Rh": 102.906, "Pd": 106.42, "Ag": 107.868, "Cd": 112.414, "In": 114.818, "Sn": 118.71,
	"Sb": 121.76, "Te": 127.60, "I": 126.904, "Xe": 131.293,
	"Cs": 132.905, "Ba": 137.327,
	"La": 138.905, "Ce": 140.116, "Pr": 140.908, "Nd": 144.242, "Pm": 145.0, "Sm": 150.36, "Eu": 151.964,
	"Gd": 157.25, "Tb": 158.925, "Dy": 162.50, "Ho": 164.930, "Er": 167.259, "Tm": 168.934, "Yb": 173.045,
	"Lu": 174.967, "Hf": 178.49, "Ta": 180.948, "W": 183.84, "Re": 186.207, "Os": 190.23, "Ir": 192.217,
	"Pt": 195.084, "Au": 196.967, "Hg": 200.592, "Tl": 204.38, "Pb": 207.2, "Bi": 208.980,
	"Th": 232.038, "U": 238.029, "Np": 237.0, "Pu": 244.0,
}

//symbolCovrad assigns covalent radii to the elements.
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J). For C the sp3
//radius, for Mn, Fe and Co the high-spin radius.
var symbolCovrad = map[string]float64{
	"H": 0.31, "He": 0.28,
	"Li": 1.28, "Be": 0.96, "B": 0.84, "C": 0.76, "N": 0.71, "O": 0.66, "F": 0.57, "Ne": 0.58,
	"Na": 1.66, "Mg": 1.41, "Al": 1.21, "Si": 1.11, "P": 1.07, "S": 1.05, "Cl": 1.02, "Ar": 1.06,
	"K": 2.03, "Ca": 1.76, "Sc": 1.70, "Ti": 1.60, "V": 1.53, "Cr": 1.39, "Mn": 1.61,
	"Fe": 1.52, "Co": 1.50, "Ni": 1.24, "Cu": 1.32, "Zn": 1.22, "Ga": 1.22, "Ge": 1.20,
	"As": 1.19, "Se": 1.20, "Br": 1.20, "Kr": 1.16,
	"Rb": 2.20, "Sr": 1.95, "Y": 1.90, "Zr": 1.75, "Nb": 1.64, "Mo": 1.54, "Tc": 1.47,
	"Ru": 1.46, "Rh": 1.42, "Pd": 1.39, "Ag": 1.45, "Cd": 1.44, "In": 1.42, "Sn": 1.39,
	"Sb": 1.39, "Te": 1.38, "I": 1.39, "Xe": 1.40,
	"Cs": 2.44, "Ba": 2.15,
	"La": 2.07, "Ce": 2.04, "Pr": 2.03, "Nd": 2.01, "Pm": 1.99, "Sm": 1.98, "Eu": 1.98,
	"Gd": 1.96, "Tb": 1.94, "Dy": 1.92, "Ho": 1.92, "Er": 1.89, "Tm": 1.90, "Yb": 1.87,
	"Lu": 1.87, "Hf": 1.75, "Ta": 1.70, "W": 1.62, "Re": 1.51, "Os": 1.44, "Ir": 1.41,
	"Pt": 1.36, "Au": 1.36, "Hg": 1.32, "Tl": 1.45, "Pb": 1.46, "Bi": 1.48,
	"Th": 2.06, "U": 1.96, "Np": 1.90, "Pu": 1.87,
}

//CovalentRadius returns the covalent radius for the given element symbol,
//or an error if the symbol has no entry in the table.
func CovalentRadius(symbol string) (float64, error) {
	r, ok := symbolCovrad[symbol]
	if !ok {
		return 0, ceErrorf("CovalentRadius", "No covalent radius for species %s", symbol)
	}
	return r, nil
}

//nonMetals is the set of elements not counted as metals. Everything
//outside this set, with a radius entry, counts as a metal.
var nonMetals = map[string]bool{
	"H": true, "He": true, "B": true, "C": true, "N": true, "O": true, "F": true, "Ne": true,
	"Si": true, "P": true, "S": true, "Cl": true, "Ar": true,
	"Ge": true, "As": true, "Se": true, "Br": true, "Kr": true,
	"Sb": true, "Te": true, "I": true, "Xe": true,
}

//IsMetal reports whether the symbol names a metallic element.
func IsMetal(symbol string) bool {
	if nonMetals[symbol] {
		return false
	}
	_, known := symbolCovrad[symbol]
	return known
}

//rareEarths: Sc, Y and the lanthanides, plus the early actinides that
//show up as MOF nodes.
var rareEarths = map[string]bool{
	"Sc": true, "Y": true,
	"La": true, "Ce": true, "Pr": true, "Nd": true, "Pm": true, "Sm": true, "Eu": true,
	"Gd": true, "Tb": true, "Dy": true, "Ho": true, "Er": true, "Tm": true, "Yb": true, "Lu": true,
	"Th": true, "U": true, "Np": true, "Pu": true,
}

//alkaliAlkaline: groups 1 and 2.
var alkaliAlkaline = map[string]bool{
	"Li": true, "Na": true, "K": true, "Rb": true, "Cs": true,
	"Be": true, "Mg": true, "Ca": true, "Sr": true, "Ba": true,
}

//coordRange is an inclusive [Min,Max] expectation for the coordination
//number of a species.
type coordRange struct {
	Min, Max int
}

//expectedCoordination is the fixed policy table of the coordination
//analyzer. Only covalently bonded main-group species get both bounds;
//ionic metal centers get a lower bound only (below), since their upper
//coordination varies too much to police.
var expectedCoordination = map[string]coordRange{
	"C": {2, 4},
	"H": {1, 1},
	"N": {1, 4},
	"O": {1, 2},
}

//Minimum coordination expected for ionically bonded metal centers.
//Rare earths below rareEarthMinCoordination and group 1/2 metals below
//alkaliMinCoordination are flagged as undercoordinated.
const (
	rareEarthMinCoordination = 6
	alkaliMinCoordination    = 4
)

//symbolChargeBound gives the largest partial-charge magnitude (e) that is
//chemically plausible for a species in a framework. Species without an
//entry use the metal or non-metal default.
var symbolChargeBound = map[string]float64{
	"H": 1.0, "C": 2.0, "N": 2.0, "O": 2.0, "F": 1.5, "Cl": 1.5, "Br": 1.5, "I": 1.5,
	"S": 2.5, "P": 3.0,
	"Zr": 4.5, "Ti": 4.5, "Hf": 4.5, "Th": 4.5, "U": 4.5,
}

const (
	defaultMetalChargeBound    = 4.0
	defaultNonMetalChargeBound = 3.0
)

//ChargeBound returns the sanity bound for the partial charge magnitude
//of the given species.
func ChargeBound(symbol string) float64 {
	if b, ok := symbolChargeBound[symbol]; ok {
		return b
	}
	if IsMetal(symbol) {
		return defaultMetalChargeBound
	}
	return defaultNonMetalChargeBound
}
