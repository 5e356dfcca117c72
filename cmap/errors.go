// seehuhn.de/go/websubset - remap glyphs of subsetted fonts into the PUA
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cmap

import (
	"errors"
	"strconv"

	"seehuhn.de/go/websubset/internal/bin"
)

var (
	// ErrUnrecognizedFormat indicates a subtable format other than
	// 0, 2, 4, 6, 8, 10, 12, 13 or 14.
	ErrUnrecognizedFormat = errors.New("unrecognized subtable format")

	// ErrOutOfBounds indicates that an offset or length in the table
	// points beyond the end of the data.
	ErrOutOfBounds = bin.ErrOutOfBounds

	// ErrMissingSubtable indicates that the table has neither a format 12
	// nor a format 4 subtable.
	ErrMissingSubtable = errors.New("no format 4 or format 12 subtable")

	// ErrTooManyRecords indicates that a table has no room for another
	// encoding record.
	ErrTooManyRecords = errors.New("too many encoding records")

	// ErrInvalidGroups indicates that the groups of a format 12 subtable
	// are out of order or overlap.
	ErrInvalidGroups = errors.New("format 12 groups not sorted or overlapping")
)

// MalformedError is returned when a cmap table cannot be processed.
// Use errors.Is with one of the Err* values to find the cause.
type MalformedError struct {
	Op  string // "decode", "convert", "remap" or "rewrite"
	Pos int    // byte offset where the problem was found, or -1
	Err error
}

func (err *MalformedError) Error() string {
	tail := ""
	if err.Pos >= 0 {
		tail = " (at byte " + strconv.Itoa(err.Pos) + ")"
	}
	return "cmap " + err.Op + ": " + err.Err.Error() + tail
}

func (err *MalformedError) Unwrap() error {
	return err.Err
}

func malformed(op string, pos int, err error) error {
	return &MalformedError{Op: op, Pos: pos, Err: err}
}
