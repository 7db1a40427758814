/*
 * oms.go, part of gomofcheck.
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

import "math"

//Number of unit-sphere sample directions for the coverage test. A
//Fibonacci lattice of this size keeps the coverage estimate within a
//couple of percent, plenty against the exposure threshold.
const omsSpherePoints = 194

//OpenMetalSite is the verdict of the coverage test for one metal center:
//whether the site is geometrically exposed, and the uncovered fraction
//of the unit sphere that produced the verdict.
type OpenMetalSite struct {
	Index     int
	Exposed   bool
	Uncovered float64
}

//OpenMetalSites runs the angular-coverage test on every metal atom.
//Each bonded neighbor blocks a cone of half-angle OMSConeHalfAngle
//around its direction; a center whose uncovered sphere fraction exceeds
//OMSExposureThreshold is exposed. A metal with no bonded neighbors is
//trivially exposed with the whole sphere uncovered.
func (g *BondGraph) OpenMetalSites() []OpenMetalSite {
	var sites []OpenMetalSite
	var sphere [][3]float64
	for i := 0; i < g.Len(); i++ {
		if !IsMetal(g.s.Symbol(i)) {
			continue
		}
		dirs := g.NeighborVectors(i)
		if len(dirs) == 0 {
			sites = append(sites, OpenMetalSite{Index: i, Exposed: true, Uncovered: 1})
			continue
		}
		if sphere == nil {
			sphere = fibonacciSphere(omsSpherePoints)
		}
		uncovered := 0
		for _, p := range sphere {
			blocked := false
			for _, d := range dirs {
				if angle3(p, d) <= OMSConeHalfAngle {
					blocked = true
					break
				}
			}
			if !blocked {
				uncovered++
			}
		}
		frac := float64(uncovered) / float64(len(sphere))
		sites = append(sites, OpenMetalSite{Index: i, Exposed: frac > OMSExposureThreshold, Uncovered: frac})
	}
	return sites
}

//ExposedMetalIndices returns just the indices of the exposed centers.
func (g *BondGraph) ExposedMetalIndices() []int {
	var out []int
	for _, site := range g.OpenMetalSites() {
		if site.Exposed {
			out = append(out, site.Index)
		}
	}
	return out
}

//fibonacciSphere returns n near-uniform directions on the unit sphere.
//Deterministic, no randomness involved.
func fibonacciSphere(n int) [][3]float64 {
	pts := make([][3]float64, n)
	golden := math.Pi * (3 - math.Sqrt(5))
	for i := 0; i < n; i++ {
		z := 1 - 2*(float64(i)+0.5)/float64(n)
		r := math.Sqrt(1 - z*z)
		phi := golden * float64(i)
		pts[i] = [3]float64{r * math.Cos(phi), r * math.Sin(phi), z}
	}
	return pts
}
