/*
 * errors.go, part of gomofcheck.
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

import "fmt"

// Error is the interface for errors that all packages in this library implement.
// The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Adds information when the error is passed up. Each call returns the current "decoration" slice of strings. If passed an empty string, it just returns the current value without adding anything.
}

// CError (Concrete Error) is the concrete type implementing the Error interface
// for this package.
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string { return err.msg }

// Decorate adds the dec string to the decoration slice of strings of the error,
// and returns the resulting slice. An empty dec is not added.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// ceErrorf builds a *CError the way fmt.Errorf builds an error, with the name
// of the function where the error originated as its first decoration.
func ceErrorf(caller, format string, a ...interface{}) *CError {
	err := new(CError)
	err.msg = fmt.Sprintf(format, a...)
	err.deco = []string{caller}
	return err
}

// errDecorate asserts that err implements mofcheck.Error and decorates it with
// the caller's name before returning it. Errors from outside the library are
// wrapped into a CError instead.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return ceErrorf(caller, "%s", err.Error())
	}
	err2.Decorate(caller)
	return err2
}
