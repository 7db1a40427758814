/*
 * fingerprint_test.go, part of gomofcheck.
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
	"testing"
)

//silane is methane with the carbon swapped for silicon: the same star
//topology with a different decoration.
func silane(Te *testing.T) *Structure {
	const d = 1.48 / 10 //Si-H bond in fractional units
	k := d / math.Sqrt(3)
	species := []string{"Si", "H", "H", "H", "H"}
	frac := [][3]float64{
		{0.5, 0.5, 0.5},
		{0.5 + k, 0.5 + k, 0.5 + k},
		{0.5 + k, 0.5 - k, 0.5 - k},
		{0.5 - k, 0.5 + k, 0.5 - k},
		{0.5 - k, 0.5 - k, 0.5 + k},
	}
	return mustStructure(Te, "silane", cubicCell(10), species, frac)
}

//benzene builds C6H6 in a 15 A box; withH=false gives the bare ring.
func benzene(Te *testing.T, withH bool) *Structure {
	const rC, rH = 1.39, 1.39 + 1.09
	var species []string
	var frac [][3]float64
	add := func(sym string, r, theta float64) {
		species = append(species, sym)
		frac = append(frac, [3]float64{0.5 + r*math.Cos(theta)/15, 0.5 + r*math.Sin(theta)/15, 0.5})
	}
	for k := 0; k < 6; k++ {
		theta := float64(k) * math.Pi / 3
		add("C", rC, theta)
		if withH {
			add("H", rH, theta)
		}
	}
	return mustStructure(Te, "benzene", cubicCell(15), species, frac)
}

func TestHashPermutationInvariant(Te *testing.T) {
	const d = 1.09 / 10
	k := d / math.Sqrt(3)
	shuffled := mustStructure(Te, "methane-shuffled", cubicCell(10),
		[]string{"H", "H", "C", "H", "H"},
		[][3]float64{
			{0.5 - k, 0.5 - k, 0.5 + k},
			{0.5 + k, 0.5 + k, 0.5 + k},
			{0.5, 0.5, 0.5},
			{0.5 + k, 0.5 - k, 0.5 - k},
			{0.5 - k, 0.5 + k, 0.5 - k},
		})
	a, b := mustGraph(Te, methane(Te)), mustGraph(Te, shuffled)
	if a.GraphHash() != b.GraphHash() {
		Te.Error("GraphHash changed under atom renumbering")
	}
	if a.UndecoratedGraphHash() != b.UndecoratedGraphHash() {
		Te.Error("UndecoratedGraphHash changed under atom renumbering")
	}
}

func TestHashSupercellInvariant(Te *testing.T) {
	prim := mustStructure(Te, "zn", cubicCell(2.8), []string{"Zn"}, [][3]float64{{0, 0, 0}})
	super := mustStructure(Te, "zn2x",
		[3][3]float64{{5.6, 0, 0}, {0, 2.8, 0}, {0, 0, 2.8}},
		[]string{"Zn", "Zn"}, [][3]float64{{0, 0, 0}, {0.5, 0, 0}})
	gp, gs := mustGraph(Te, prim), mustGraph(Te, super)
	if gp.GraphHash() != gs.GraphHash() {
		Te.Error("GraphHash differs between primitive cell and 2x1x1 supercell")
	}
	if gp.UndecoratedGraphHash() != gs.UndecoratedGraphHash() {
		Te.Error("UndecoratedGraphHash differs between primitive cell and supercell")
	}
}

func TestHashSeparatesTopologies(Te *testing.T) {
	net := mustGraph(Te, mustStructure(Te, "znnet", cubicCell(2.8), []string{"Zn"}, [][3]float64{{0, 0, 0}}))
	lone := mustGraph(Te, mustStructure(Te, "znlone", cubicCell(10), []string{"Zn"}, [][3]float64{{0, 0, 0}}))
	if net.GraphHash() == lone.GraphHash() {
		Te.Error("a connected net and an isolated atom must not collide")
	}
}

func TestDecorationSeparatesSpecies(Te *testing.T) {
	gm, gs := mustGraph(Te, methane(Te)), mustGraph(Te, silane(Te))
	if gm.GraphHash() == gs.GraphHash() {
		Te.Error("methane and silane must differ in the decorated hash")
	}
	if gm.UndecoratedGraphHash() != gs.UndecoratedGraphHash() {
		Te.Error("methane and silane share a topology, the undecorated hashes must match")
	}
}

func TestScaffoldStripsTerminalGroups(Te *testing.T) {
	full := mustGraph(Te, benzene(Te, true))
	ring := mustGraph(Te, benzene(Te, false))
	if full.DecoratedScaffoldHash() != ring.GraphHash() {
		Te.Error("the benzene scaffold should fingerprint like the bare ring")
	}
	if full.UndecoratedScaffoldHash() != ring.UndecoratedGraphHash() {
		Te.Error("the undecorated scaffold should match the bare ring topology")
	}
	//the full graph itself still sees the hydrogens
	if full.GraphHash() == ring.GraphHash() {
		Te.Error("benzene and its bare ring must not collide in the full hash")
	}
}

func TestScaffoldOfAcyclicGraphIsEmpty(Te *testing.T) {
	//repeated pruning consumes a tree entirely
	g := mustGraph(Te, methane(Te))
	empty := mustGraph(Te, mustStructure(Te, "none", cubicCell(10), nil, nil))
	if g.DecoratedScaffoldHash() != empty.DecoratedScaffoldHash() {
		Te.Error("an acyclic molecule should scaffold down to nothing")
	}
}
