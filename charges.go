/*
 * charges.go, part of gomofcheck.
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
	"math"
	"time"
)

//DefaultChargeTimeout bounds the external charge-equilibration call.
//The solver is the one genuinely slow, genuinely fallible collaborator.
const DefaultChargeTimeout = 120 * time.Second

//ChargeSolver is the contract with the external charge-equilibration
//routine. Implementations return one partial charge (e) per atom, in
//atom order, or an error on non-convergence or unavailability. The
//context carries the caller's timeout.
type ChargeSolver interface {
	Charges(ctx context.Context, s *Structure) ([]float64, error)
}

//ChargeCheck is the outcome of the charge sanity check. When the solver
//fails, Available is false and Reason says why; the rest of the fields
//are then meaningless. This is a degraded result, not an error: callers
//keep every other descriptor.
type ChargeCheck struct {
	Available   bool
	Reason      string
	Charges     []float64
	HighIndices []int //atoms whose |q| exceeds the species bound
}

//HasHighCharges reports whether any atom breached its bound. Only valid
//when Available.
func (c *ChargeCheck) HasHighCharges() bool { return len(c.HighIndices) > 0 }

//CheckCharges obtains partial charges from the solver under the given
//timeout and flags every atom whose magnitude exceeds the per-species
//sanity bound. Solver failures (including a nil solver) degrade to an
//unavailable result; they never propagate as errors.
func CheckCharges(ctx context.Context, solver ChargeSolver, s *Structure, timeout time.Duration) *ChargeCheck {
	if solver == nil {
		return &ChargeCheck{Reason: "no charge solver configured"}
	}
	if timeout <= 0 {
		timeout = DefaultChargeTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	q, err := solver.Charges(cctx, s)
	if err != nil {
		return &ChargeCheck{Reason: "charge solver failed: " + err.Error()}
	}
	if len(q) != s.Len() {
		return &ChargeCheck{Reason: "charge solver returned wrong atom count"}
	}
	check := &ChargeCheck{Available: true, Charges: q}
	for i := 0; i < s.Len(); i++ {
		if math.Abs(q[i]) > ChargeBound(s.Symbol(i)) {
			check.HighIndices = append(check.HighIndices, i)
		}
	}
	return check
}
