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

// Package bin has bounds-checked big-endian readers and an append-only
// writer for binary font data.
package bin

import (
	"encoding/binary"
	"errors"
)

// ErrOutOfBounds is returned when a read extends beyond the end of the data.
var ErrOutOfBounds = errors.New("read beyond end of data")

// Slice returns the n bytes of data starting at offset off.
// The result shares its memory with data.
func Slice(data []byte, off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off > len(data) || n > len(data)-off {
		return nil, ErrOutOfBounds
	}
	return data[off : off+n : off+n], nil
}

// U8 reads the byte at offset off.
func U8(data []byte, off int) (uint8, error) {
	buf, err := Slice(data, off, 1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// U16 reads a big-endian uint16 at offset off.
func U16(data []byte, off int) (uint16, error) {
	buf, err := Slice(data, off, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// U32 reads a big-endian uint32 at offset off.
func U32(data []byte, off int) (uint32, error) {
	buf, err := Slice(data, off, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}
