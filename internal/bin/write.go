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

package bin

import (
	"encoding/binary"

	"github.com/tdewolff/parse/v2"
)

// Writer accumulates binary data.
// Fields whose value is only known after later data has been written can
// be written as placeholders and patched afterwards.
type Writer struct {
	w *parse.BinaryWriter
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{w: parse.NewBinaryWriter(nil)}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return int(w.w.Len())
}

// U16 appends a big-endian uint16.
func (w *Writer) U16(x uint16) {
	w.w.WriteUint16(x)
}

// U32 appends a big-endian uint32.
func (w *Writer) U32(x uint32) {
	w.w.WriteUint32(x)
}

// Bytes appends raw data.
func (w *Writer) Bytes(data []byte) {
	w.w.WriteBytes(data)
}

// Align appends zero bytes until the length is a multiple of n.
func (w *Writer) Align(n int) {
	for w.Len()%n != 0 {
		w.w.WriteUint8(0)
	}
}

// PatchU32 overwrites the four bytes at position pos with x.
// The bytes must have been written before.
func (w *Writer) PatchU32(pos int, x uint32) {
	binary.BigEndian.PutUint32(w.w.Bytes()[pos:pos+4], x)
}

// Finish returns the accumulated data.
// The Writer must not be used afterwards.
func (w *Writer) Finish() []byte {
	data := w.w.Bytes()
	w.w = nil
	return data
}
