/*
 * doc.go, part of gomofcheck.
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

//Package mofcheck validates periodic atomic structures of metal-organic
//frameworks and computes structural descriptors over them: atomic
//overlaps, coordination chemistry, open metal sites, partial-charge
//sanity, framework dimensionality, cell symmetry, and canonical bond
//graph fingerprints for deduplication.
//
//The entry point is the Checker, one per structure. Checks are computed
//lazily, memoized for the lifetime of the Checker, and isolated: a
//failing check is reported as a per-descriptor error marker, never as an
//abort of the other descriptors. To process many structures in parallel
//run one Checker per structure; a Checker itself is not safe for
//concurrent use.
//
//Structures come from anywhere that can produce a lattice plus species
//and fractional coordinates; the cif subpackage reads the usual
//crystallographic files. Partial charges come from an external
//equilibration code behind the ChargeSolver interface.
package mofcheck
