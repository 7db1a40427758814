/*
 * checker.go, part of gomofcheck.
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
	"context"
	"sort"
	"time"
)

//Checker runs every check on one structure, lazily, each at most once.
//A Checker is single-threaded and owns no shared mutable state: to work
//on several structures concurrently, build one Checker per structure.
//Failed checks surface as per-descriptor error markers; they never stop
//the other descriptors from computing.
type Checker struct {
	s *Structure
	//Solver computes partial charges. May be nil, in which case the
	//charge descriptors report unavailable.
	Solver ChargeSolver
	//ChargeTimeout bounds the external solver call; zero means
	//DefaultChargeTimeout.
	ChargeTimeout time.Duration

	graph     *BondGraph
	graphErr  error
	graphDone bool

	overlaps     []Overlap
	overlapsErr  error
	overlapsDone bool

	comps     []Component
	compsDone bool

	oms     []OpenMetalSite
	omsDone bool

	sym     *SymmetryInfo
	symErr  error
	symDone bool

	charge     *ChargeCheck
	chargeDone bool
}

//New returns a Checker for the structure.
func New(s *Structure) *Checker {
	return &Checker{s: s, ChargeTimeout: DefaultChargeTimeout}
}

//Structure returns the structure under check.
func (c *Checker) Structure() *Structure { return c.s }

//Graph returns the memoized bond graph.
func (c *Checker) Graph() (*BondGraph, error) {
	if !c.graphDone {
		c.graph, c.graphErr = BuildBondGraph(c.s, BondTolerance)
		c.graphDone = true
	}
	return c.graph, c.graphErr
}

//Overlaps returns the memoized atomic overlap list.
func (c *Checker) Overlaps() ([]Overlap, error) {
	if !c.overlapsDone {
		c.overlaps, c.overlapsErr = FindOverlaps(c.s, OverlapTolerance)
		c.overlapsDone = true
	}
	return c.overlaps, c.overlapsErr
}

//Components returns the memoized periodic components.
func (c *Checker) Components() ([]Component, error) {
	if !c.compsDone {
		g, err := c.Graph()
		if err != nil {
			return nil, err
		}
		c.comps = g.PeriodicComponents()
		c.compsDone = true
	}
	return c.comps, nil
}

//OpenMetalSites returns the memoized coverage verdicts.
func (c *Checker) OpenMetalSites() ([]OpenMetalSite, error) {
	if !c.omsDone {
		g, err := c.Graph()
		if err != nil {
			return nil, err
		}
		c.oms = g.OpenMetalSites()
		c.omsDone = true
	}
	return c.oms, nil
}

//Symmetry returns the memoized symmetry analysis.
func (c *Checker) Symmetry() (*SymmetryInfo, error) {
	if !c.symDone {
		c.sym, c.symErr = AnalyzeSymmetry(c.s)
		c.symDone = true
	}
	return c.sym, c.symErr
}

//Charges runs the charge sanity check, once, under the configured
//timeout. The result is always non-nil; solver trouble shows up as
//Available == false.
func (c *Checker) Charges(ctx context.Context) *ChargeCheck {
	if !c.chargeDone {
		c.charge = CheckCharges(ctx, c.Solver, c.s, c.ChargeTimeout)
		c.chargeDone = true
	}
	return c.charge
}

//OverlappingIndices returns the sorted atom indices involved in any
//overlap, each once.
func (c *Checker) OverlappingIndices() ([]int, error) {
	over, err := c.Overlaps()
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool)
	for _, o := range over {
		seen[o.I] = true
		seen[o.J] = true
	}
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}

//Dimensionality is the maximum component dimensionality.
func (c *Checker) Dimensionality() (int, error) {
	comps, err := c.Components()
	if err != nil {
		return 0, err
	}
	dim := 0
	for _, comp := range comps {
		if comp.Dimensionality > dim {
			dim = comp.Dimensionality
		}
	}
	return dim, nil
}

//DescriptorNames is the fixed vocabulary of the aggregator, in the order
//results are conventionally reported.
var DescriptorNames = []string{
	"name", "formula", "density", "volume",
	"graph_hash", "undecorated_graph_hash",
	"decorated_scaffold_hash", "undecorated_scaffold_hash",
	"symmetry_hash", "spacegroup_symbol", "spacegroup_number", "crystal_system",
	"dimensionality", "has_3d_connected_graph",
	"has_carbon", "has_hydrogen", "has_metal",
	"has_atomic_overlaps",
	"has_overcoordinated_c", "has_overcoordinated_n", "has_overcoordinated_h",
	"has_undercoordinated_c", "has_undercoordinated_n",
	"has_undercoordinated_rare_earth", "has_undercoordinated_alkali_alkaline",
	"has_geometrically_exposed_metal", "has_oms",
	"has_lone_molecule", "has_suspicious_terminal_oxo",
	"has_high_charges",
}

//Descriptor is one named result. Err non-nil marks the descriptor as
//failed or unavailable; Value is then meaningless.
type Descriptor struct {
	Name  string
	Value interface{}
	Err   error
}

//descriptorFuncs is the dispatch table from key to producing component.
//Fixed and enumerable; no reflection anywhere.
var descriptorFuncs = map[string]func(*Checker, context.Context) (interface{}, error){
	"name":    func(c *Checker, _ context.Context) (interface{}, error) { return c.s.Name(), nil },
	"formula": func(c *Checker, _ context.Context) (interface{}, error) { return c.s.Formula(), nil },
	"density": func(c *Checker, _ context.Context) (interface{}, error) { return c.s.Density() },
	"volume":  func(c *Checker, _ context.Context) (interface{}, error) { return c.s.Volume(), nil },
	"graph_hash": func(c *Checker, _ context.Context) (interface{}, error) {
		g, err := c.Graph()
		if err != nil {
			return nil, err
		}
		return g.GraphHash(), nil
	},
	"undecorated_graph_hash": func(c *Checker, _ context.Context) (interface{}, error) {
		g, err := c.Graph()
		if err != nil {
			return nil, err
		}
		return g.UndecoratedGraphHash(), nil
	},
	"decorated_scaffold_hash": func(c *Checker, _ context.Context) (interface{}, error) {
		g, err := c.Graph()
		if err != nil {
			return nil, err
		}
		return g.DecoratedScaffoldHash(), nil
	},
	"undecorated_scaffold_hash": func(c *Checker, _ context.Context) (interface{}, error) {
		g, err := c.Graph()
		if err != nil {
			return nil, err
		}
		return g.UndecoratedScaffoldHash(), nil
	},
	"symmetry_hash": func(c *Checker, _ context.Context) (interface{}, error) {
		sym, err := c.Symmetry()
		if err != nil {
			return nil, err
		}
		return sym.Hash(c.s.Formula()), nil
	},
	"spacegroup_symbol": func(c *Checker, _ context.Context) (interface{}, error) {
		sym, err := c.Symmetry()
		if err != nil {
			return nil, err
		}
		if !sym.SymbolExact {
			return nil, ceErrorf("spacegroup_symbol", "Symbol undetermined beyond triclinic (point group %s)", sym.PointGroup)
		}
		return sym.SpacegroupSymbol, nil
	},
	"spacegroup_number": func(c *Checker, _ context.Context) (interface{}, error) {
		sym, err := c.Symmetry()
		if err != nil {
			return nil, err
		}
		if !sym.SymbolExact {
			return nil, ceErrorf("spacegroup_number", "Number undetermined beyond triclinic (point group %s)", sym.PointGroup)
		}
		return sym.SpacegroupNumber, nil
	},
	"crystal_system": func(c *Checker, _ context.Context) (interface{}, error) {
		sym, err := c.Symmetry()
		if err != nil {
			return nil, err
		}
		return sym.CrystalSystem, nil
	},
	"dimensionality": func(c *Checker, _ context.Context) (interface{}, error) { return c.Dimensionality() },
	"has_3d_connected_graph": func(c *Checker, _ context.Context) (interface{}, error) {
		dim, err := c.Dimensionality()
		if err != nil {
			return nil, err
		}
		return dim == 3, nil
	},
	"has_carbon": func(c *Checker, _ context.Context) (interface{}, error) { return c.s.HasSpecies("C"), nil },
	"has_hydrogen": func(c *Checker, _ context.Context) (interface{}, error) {
		return c.s.HasSpecies("H"), nil
	},
	"has_metal": func(c *Checker, _ context.Context) (interface{}, error) { return c.s.HasMetal(), nil },
	"has_atomic_overlaps": func(c *Checker, _ context.Context) (interface{}, error) {
		over, err := c.Overlaps()
		if err != nil {
			return nil, err
		}
		return len(over) > 0, nil
	},
	"has_overcoordinated_c": hasCoordFlag("C", true),
	"has_overcoordinated_n": hasCoordFlag("N", true),
	"has_overcoordinated_h": hasCoordFlag("H", true),
	"has_undercoordinated_c": hasCoordFlag("C", false),
	"has_undercoordinated_n": hasCoordFlag("N", false),
	"has_undercoordinated_rare_earth": func(c *Checker, _ context.Context) (interface{}, error) {
		g, err := c.Graph()
		if err != nil {
			return nil, err
		}
		return len(g.UndercoordinatedRareEarth()) > 0, nil
	},
	"has_undercoordinated_alkali_alkaline": func(c *Checker, _ context.Context) (interface{}, error) {
		g, err := c.Graph()
		if err != nil {
			return nil, err
		}
		return len(g.UndercoordinatedAlkaliAlkaline()) > 0, nil
	},
	"has_geometrically_exposed_metal": hasExposedMetal,
	"has_oms":                         hasExposedMetal,
	"has_lone_molecule": func(c *Checker, _ context.Context) (interface{}, error) {
		g, err := c.Graph()
		if err != nil {
			return nil, err
		}
		return len(g.LoneMoleculeIndices()) > 0, nil
	},
	"has_suspicious_terminal_oxo": func(c *Checker, _ context.Context) (interface{}, error) {
		g, err := c.Graph()
		if err != nil {
			return nil, err
		}
		return len(g.SuspiciousTerminalOxo()) > 0, nil
	},
	"has_high_charges": func(c *Checker, ctx context.Context) (interface{}, error) {
		check := c.Charges(ctx)
		if !check.Available {
			return nil, ceErrorf("has_high_charges", "Charge descriptors unavailable: %s", check.Reason)
		}
		return check.HasHighCharges(), nil
	},
}

func hasCoordFlag(symbol string, over bool) func(*Checker, context.Context) (interface{}, error) {
	return func(c *Checker, _ context.Context) (interface{}, error) {
		g, err := c.Graph()
		if err != nil {
			return nil, err
		}
		if over {
			return len(g.Overcoordinated(symbol)) > 0, nil
		}
		return len(g.Undercoordinated(symbol)) > 0, nil
	}
}

func hasExposedMetal(c *Checker, _ context.Context) (interface{}, error) {
	sites, err := c.OpenMetalSites()
	if err != nil {
		return nil, err
	}
	for _, site := range sites {
		if site.Exposed {
			return true, nil
		}
	}
	return false, nil
}

//Descriptor computes one named descriptor. Unknown names are an error.
func (c *Checker) Descriptor(ctx context.Context, name string) (interface{}, error) {
	f, ok := descriptorFuncs[name]
	if !ok {
		return nil, ceErrorf("Descriptor", "Unknown descriptor %q", name)
	}
	return f(c, ctx)
}

//Descriptors computes the whole vocabulary. Each failure stays local to
//its descriptor; the rest of the map is still filled.
func (c *Checker) Descriptors(ctx context.Context) map[string]Descriptor {
	out := make(map[string]Descriptor, len(DescriptorNames))
	for _, name := range DescriptorNames {
		v, err := descriptorFuncs[name](c, ctx)
		out[name] = Descriptor{Name: name, Value: v, Err: err}
	}
	return out
}
