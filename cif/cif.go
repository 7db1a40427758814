/*
 * cif.go, part of gomofcheck.
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

//Package cif reads the subset of the CIF crystallographic format that
//the mofcheck checks need: the cell parameters, the atom_site loop and,
//when present, the symmetry operation loop, which is applied to expand
//the asymmetric unit. Gzip-compressed files are read transparently.
package cif

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/rmera/gomofcheck"
)

//Error is the parse error of this package. It implements mofcheck.Error.
type Error struct {
	msg  string
	Line int //0 when not tied to a specific line
	deco []string
}

func (err *Error) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("cif: line %d: %s", err.Line, err.msg)
	}
	return "cif: " + err.msg
}

//Decorate implements mofcheck.Error.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func parseErr(line int, format string, a ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, a...), Line: line}
}

//dedupTol is the fractional-coordinate tolerance (minimum image) under
//which two symmetry-generated sites collapse into one.
const dedupTol = 1e-3

//ReadFile reads a structure from a CIF file. Files ending in .gz, or
//starting with the gzip magic bytes, are decompressed on the fly.
func ReadFile(path string) (*mofcheck.Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{msg: err.Error()}
	}
	defer f.Close()
	name := strings.TrimSuffix(strings.TrimSuffix(baseName(path), ".gz"), ".cif")
	br := bufio.NewReader(f)
	magic, _ := br.Peek(2)
	if strings.HasSuffix(path, ".gz") || (len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, &Error{msg: "bad gzip stream: " + err.Error()}
		}
		defer gz.Close()
		return Read(gz, name)
	}
	return Read(br, name)
}

//ReadString reads a structure from raw CIF text.
func ReadString(text, name string) (*mofcheck.Structure, error) {
	return Read(strings.NewReader(text), name)
}

func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

//cell parameter keys, in the order they land in the params array.
var cellKeys = []string{
	"_cell_length_a", "_cell_length_b", "_cell_length_c",
	"_cell_angle_alpha", "_cell_angle_beta", "_cell_angle_gamma",
}

//Read parses CIF text from r. Only the first data block is read.
func Read(r io.Reader, name string) (*mofcheck.Structure, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	var params [6]float64
	var haveParam [6]bool
	var species []string
	var frac [][3]float64
	var ops []symOp
	lineNo := 0
	var pending string //line pushed back by the loop parser
	nextLine := func() (string, bool) {
		if pending != "" {
			l := pending
			pending = ""
			return l, true
		}
		for sc.Scan() {
			lineNo++
			l := strings.TrimSpace(sc.Text())
			if l == "" || strings.HasPrefix(l, "#") {
				continue
			}
			return l, true
		}
		return "", false
	}
	seenBlock := false
scan:
	for {
		line, ok := nextLine()
		if !ok {
			break
		}
		switch {
		case strings.HasPrefix(line, "data_"):
			if seenBlock { //further blocks would overwrite this one's cell
				break scan
			}
			seenBlock = true
			if name == "" {
				name = strings.TrimPrefix(line, "data_")
			}
		case strings.HasPrefix(line, "loop_"):
			var tags []string
			var rows [][]string
			for {
				l, ok := nextLine()
				if !ok {
					break
				}
				if strings.HasPrefix(l, "_") && len(rows) == 0 {
					tags = append(tags, strings.ToLower(fieldsQuoted(l)[0]))
					continue
				}
				if strings.HasPrefix(l, "_") || strings.HasPrefix(l, "loop_") || strings.HasPrefix(l, "data_") {
					pending = l
					break
				}
				rows = append(rows, fieldsQuoted(l))
			}
			if err := harvestLoop(tags, rows, lineNo, &species, &frac, &ops); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "_"):
			fields := fieldsQuoted(line)
			key := strings.ToLower(fields[0])
			for k, want := range cellKeys {
				if key == want && len(fields) > 1 {
					v, err := parseNumeric(fields[1])
					if err != nil {
						return nil, parseErr(lineNo, "bad value for %s: %q", key, fields[1])
					}
					params[k] = v
					haveParam[k] = true
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &Error{msg: err.Error()}
	}
	for k, have := range haveParam {
		if !have {
			return nil, &Error{msg: fmt.Sprintf("missing cell parameter %s", cellKeys[k])}
		}
	}
	if len(species) == 0 {
		return nil, &Error{msg: "no atom_site loop found"}
	}
	species, frac = applySymOps(ops, species, frac)
	cell := cellFromParams(params)
	s, err := mofcheck.NewStructure(name, cell, species, frac)
	if err != nil {
		return nil, err
	}
	return s, nil
}

//harvestLoop interprets one parsed loop if it is one of the loops we
//care about (atom sites or symmetry operations); others are skipped.
func harvestLoop(tags []string, rows [][]string, lineNo int, species *[]string, frac *[][3]float64, ops *[]symOp) error {
	col := func(names ...string) int {
		for _, n := range names {
			for i, t := range tags {
				if t == n {
					return i
				}
			}
		}
		return -1
	}
	if xc := col("_atom_site_fract_x"); xc >= 0 {
		yc, zc := col("_atom_site_fract_y"), col("_atom_site_fract_z")
		tc := col("_atom_site_type_symbol", "_atom_site_label")
		if yc < 0 || zc < 0 || tc < 0 {
			return parseErr(lineNo, "incomplete atom_site loop")
		}
		for _, row := range rows {
			need := max3(xc, yc, zc)
			if tc > need {
				need = tc
			}
			if len(row) <= need {
				return parseErr(lineNo, "short atom_site row (%d fields)", len(row))
			}
			var f [3]float64
			for k, c := range [3]int{xc, yc, zc} {
				v, err := parseNumeric(row[c])
				if err != nil {
					return parseErr(lineNo, "bad fractional coordinate %q", row[c])
				}
				f[k] = v
			}
			*species = append(*species, symbolFromLabel(row[tc]))
			*frac = append(*frac, f)
		}
		return nil
	}
	if oc := col("_symmetry_equiv_pos_as_xyz", "_space_group_symop_operation_xyz"); oc >= 0 {
		for _, row := range rows {
			if len(row) <= oc {
				continue
			}
			op, err := parseSymOp(row[oc])
			if err != nil {
				return parseErr(lineNo, "bad symmetry operation %q: %s", row[oc], err.Error())
			}
			*ops = append(*ops, op)
		}
	}
	return nil
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

//fieldsQuoted splits a CIF line into fields, honoring single and double
//quoted strings.
func fieldsQuoted(line string) []string {
	var out []string
	var cur strings.Builder
	var quote byte
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
				flush()
			} else {
				cur.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ' ' || c == '\t':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return out
}

//parseNumeric parses a CIF number, dropping a trailing standard
//uncertainty such as the (3) in "10.214(3)".
func parseNumeric(s string) (float64, error) {
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	return strconv.ParseFloat(s, 64)
}

//symbolFromLabel extracts the element symbol from a type symbol or atom
//label: "Zn1", "O1-", "Cu2+" and plain "C" all work. Two-letter site
//markers that name no element, "Ow" or "Ha" style, fall back to their
//one-letter element.
func symbolFromLabel(label string) string {
	end := 0
	for end < len(label) {
		c := label[end]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			end++
			continue
		}
		break
	}
	sym := label[:end]
	if len(sym) > 2 {
		sym = sym[:2]
	}
	if len(sym) == 0 {
		return sym
	}
	sym = strings.ToUpper(sym[:1]) + strings.ToLower(sym[1:])
	if len(sym) == 2 {
		if _, err := mofcheck.CovalentRadius(sym); err != nil {
			if _, err := mofcheck.CovalentRadius(sym[:1]); err == nil {
				return sym[:1]
			}
		}
	}
	return sym
}

//cellFromParams builds the lattice matrix with the usual convention:
//a along x, b in the xy plane.
func cellFromParams(p [6]float64) [3][3]float64 {
	a, b, c := p[0], p[1], p[2]
	alpha, beta, gamma := p[3]*math.Pi/180, p[4]*math.Pi/180, p[5]*math.Pi/180
	ca, cb, cg, sg := math.Cos(alpha), math.Cos(beta), math.Cos(gamma), math.Sin(gamma)
	var cell [3][3]float64
	cell[0] = [3]float64{a, 0, 0}
	cell[1] = [3]float64{b * cg, b * sg, 0}
	cx := c * cb
	cy := c * (ca - cb*cg) / sg
	cz2 := c*c - cx*cx - cy*cy
	cz := 0.0
	if cz2 > 0 {
		cz = math.Sqrt(cz2)
	}
	cell[2] = [3]float64{cx, cy, cz}
	return cell
}

//applySymOps expands the asymmetric unit by every symmetry operation and
//collapses duplicate sites. Without operations (P1 files), the input is
//returned untouched.
func applySymOps(ops []symOp, species []string, frac [][3]float64) ([]string, [][3]float64) {
	if len(ops) == 0 {
		return species, frac
	}
	var outSpec []string
	var outFrac [][3]float64
	for i, f := range frac {
		for _, op := range ops {
			nf := op.apply(f)
			dup := false
			for k, existing := range outFrac {
				if outSpec[k] != species[i] {
					continue
				}
				same := true
				for d := 0; d < 3; d++ {
					diff := nf[d] - existing[d]
					diff -= math.Round(diff)
					if math.Abs(diff) > dedupTol {
						same = false
						break
					}
				}
				if same {
					dup = true
					break
				}
			}
			if !dup {
				outSpec = append(outSpec, species[i])
				outFrac = append(outFrac, nf)
			}
		}
	}
	return outSpec, outFrac
}
