/*
 * fingerprint.go, part of gomofcheck.
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
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

//Canonical bond-graph fingerprints by Weisfeiler-Leman color refinement.
//Node colors start from the species (or a uniform color for the
//undecorated variants) and are refined against the sorted multiset of
//neighbor colors until the partition stabilizes or WLMaxIterations is
//hit. The fingerprint is a hash of the stable color multiset with the
//counts divided by their gcd, so an n-fold supercell of the same
//framework fingerprints identically to its primitive representation.
//
//The guarantee is probabilistic: refinement separates all bond-graph
//isomorphism classes met in practice, but it is not a full isomorphism
//test, so distinct frameworks colliding is possible in principle.

//GraphHash returns the species-decorated canonical fingerprint of the
//bond graph. Invariant under atom renumbering and supercell choice.
func (g *BondGraph) GraphHash() string {
	return wlHash(g.speciesLabels(), g.neighborLists(), nil)
}

//UndecoratedGraphHash returns the fingerprint of the bare topology, with
//every species mapped to the same initial color.
func (g *BondGraph) UndecoratedGraphHash() string {
	return wlHash(g.uniformLabels(), g.neighborLists(), nil)
}

//DecoratedScaffoldHash returns the species-decorated fingerprint of the
//scaffold: the graph left after iteratively pruning every vertex of
//degree one or less, which strips terminal groups and dangling chains.
func (g *BondGraph) DecoratedScaffoldHash() string {
	return wlHash(g.speciesLabels(), g.neighborLists(), g.scaffoldMask())
}

//UndecoratedScaffoldHash is the scaffold fingerprint of the bare topology.
func (g *BondGraph) UndecoratedScaffoldHash() string {
	return wlHash(g.uniformLabels(), g.neighborLists(), g.scaffoldMask())
}

func (g *BondGraph) speciesLabels() []string {
	labels := make([]string, g.Len())
	for i := range labels {
		labels[i] = g.s.Symbol(i)
	}
	return labels
}

func (g *BondGraph) uniformLabels() []string {
	labels := make([]string, g.Len())
	for i := range labels {
		labels[i] = "X"
	}
	return labels
}

//neighborLists flattens the half-bonds to index multisets. A bond
//between an atom and its own periodic image contributes the atom itself,
//twice, which is exactly its contribution to the local environment.
func (g *BondGraph) neighborLists() [][]int {
	adj := make([][]int, g.Len())
	for i := range g.adj {
		for _, b := range g.adj[i] {
			adj[i] = append(adj[i], b.J)
		}
	}
	return adj
}

//scaffoldMask deactivates vertices by repeated degree-<=1 pruning.
func (g *BondGraph) scaffoldMask() []bool {
	active := make([]bool, g.Len())
	for i := range active {
		active[i] = true
	}
	adj := g.neighborLists()
	for changed := true; changed; {
		changed = false
		for i := range adj {
			if !active[i] {
				continue
			}
			deg := 0
			for _, j := range adj[i] {
				if active[j] {
					deg++
				}
			}
			if deg <= 1 {
				active[i] = false
				changed = true
			}
		}
	}
	return active
}

//wlHash runs the refinement over the active subgraph and hashes the
//normalized stable color multiset. A nil mask means all nodes active.
func wlHash(labels []string, adj [][]int, active []bool) string {
	n := len(labels)
	colors := make([]uint64, n)
	for i := 0; i < n; i++ {
		colors[i] = fnvString(labels[i])
	}
	next := make([]uint64, n)
	distinct := countDistinct(colors, active)
	for iter := 0; iter < WLMaxIterations; iter++ {
		for i := 0; i < n; i++ {
			if active != nil && !active[i] {
				next[i] = colors[i]
				continue
			}
			nb := make([]uint64, 0, len(adj[i]))
			for _, j := range adj[i] {
				if active == nil || active[j] {
					nb = append(nb, colors[j])
				}
			}
			sort.Slice(nb, func(a, b int) bool { return nb[a] < nb[b] })
			next[i] = fnvCombine(colors[i], nb)
		}
		colors, next = next, colors
		d := countDistinct(colors, active)
		if d == distinct { //the partition can only refine, so an equal
			break //count means it is stable
		}
		distinct = d
	}
	//multiset of stable colors, counts gcd-normalized
	counts := make(map[uint64]int)
	for i := 0; i < n; i++ {
		if active == nil || active[i] {
			counts[colors[i]]++
		}
	}
	div := 0
	for _, c := range counts {
		div = gcd(div, c)
	}
	entries := make([]string, 0, len(counts))
	for col, c := range counts {
		if div > 0 {
			c /= div
		}
		entries = append(entries, fmt.Sprintf("%016x:%d", col, c))
	}
	sort.Strings(entries)
	sum := sha256.Sum256([]byte(strings.Join(entries, ",")))
	return fmt.Sprintf("%x", sum)
}

func fnvString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

func fnvCombine(own uint64, neighbors []uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], own)
	h.Write(buf[:])
	for _, c := range neighbors {
		binary.BigEndian.PutUint64(buf[:], c)
		h.Write(buf[:])
	}
	return h.Sum64()
}

func countDistinct(colors []uint64, active []bool) int {
	seen := make(map[uint64]bool)
	for i, c := range colors {
		if active == nil || active[i] {
			seen[c] = true
		}
	}
	return len(seen)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
