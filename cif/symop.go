/*
 * symop.go, part of gomofcheck.
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
	"fmt"
	"math"
	"strconv"
	"strings"
)

//symOp is a symmetry operation parsed from its xyz string, e.g.
//"1/2-x, y, z+1/2". It acts on fractional coordinates.
type symOp struct {
	rot   [3][3]float64 //rot[row] are the x,y,z coefficients of coordinate row
	trans [3]float64
}

func (op symOp) apply(f [3]float64) [3]float64 {
	var out [3]float64
	for r := 0; r < 3; r++ {
		v := op.trans[r]
		for c := 0; c < 3; c++ {
			v += op.rot[r][c] * f[c]
		}
		out[r] = v - math.Floor(v)
	}
	return out
}

//parseSymOp parses an "x, y, z"-style operation string.
func parseSymOp(expr string) (symOp, error) {
	var op symOp
	parts := strings.Split(expr, ",")
	if len(parts) != 3 {
		return op, fmt.Errorf("expected 3 comma-separated coordinates, got %d", len(parts))
	}
	for r, part := range parts {
		coefs, trans, err := parseCoordExpr(strings.TrimSpace(part))
		if err != nil {
			return op, err
		}
		op.rot[r] = coefs
		op.trans[r] = trans
	}
	return op, nil
}

//parseCoordExpr parses one coordinate expression, a sum of terms like
//"x", "-y", "+1/2", "0.25", "2x" or "-2/3".
func parseCoordExpr(expr string) (coefs [3]float64, trans float64, err error) {
	expr = strings.ToLower(strings.ReplaceAll(expr, " ", ""))
	if expr == "" {
		return coefs, 0, fmt.Errorf("empty coordinate expression")
	}
	i := 0
	for i < len(expr) {
		sign := 1.0
		for i < len(expr) && (expr[i] == '+' || expr[i] == '-') {
			if expr[i] == '-' {
				sign = -sign
			}
			i++
		}
		if i >= len(expr) {
			return coefs, 0, fmt.Errorf("dangling sign in %q", expr)
		}
		//numeric part, if any: digits, dots and a slash
		start := i
		for i < len(expr) && (expr[i] >= '0' && expr[i] <= '9' || expr[i] == '.' || expr[i] == '/') {
			i++
		}
		mult := 1.0
		if i > start {
			mult, err = parseFraction(expr[start:i])
			if err != nil {
				return coefs, 0, err
			}
		}
		//variable part, if any
		if i < len(expr) && (expr[i] == 'x' || expr[i] == 'y' || expr[i] == 'z') {
			coefs[int(expr[i]-'x')] += sign * mult
			i++
		} else {
			if i == start { //neither number nor variable
				return coefs, 0, fmt.Errorf("unexpected character %q in %q", expr[i], expr)
			}
			trans += sign * mult
		}
	}
	return coefs, trans, nil
}

func parseFraction(s string) (float64, error) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		num, err1 := strconv.ParseFloat(s[:i], 64)
		den, err2 := strconv.ParseFloat(s[i+1:], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return 0, fmt.Errorf("bad fraction %q", s)
		}
		return num / den, nil
	}
	return strconv.ParseFloat(s, 64)
}
