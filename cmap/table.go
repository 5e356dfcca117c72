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

// Package cmap rewrites "cmap" tables so that every glyph of a font can be
// addressed through a code point in the Supplementary Private Use Area-A.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
package cmap

import (
	"fmt"
	"sort"

	"seehuhn.de/go/websubset/internal/bin"
)

// Table is the in-memory form of a cmap table.
//
// Subtables which are referenced by more than one encoding record are
// stored only once.
type Table struct {
	Version   uint16
	Records   []EncodingRecord
	Subtables []*Subtable
}

// EncodingRecord connects a platform/encoding pair to a subtable.
type EncodingRecord struct {
	PlatformID uint16
	EncodingID uint16
	Subtable   int // index into Table.Subtables
}

// Subtable is one encoded cmap subtable.
//
// Data holds the complete binary subtable, including the format, length and
// language fields.  After Decode, Data points into the buffer passed to
// Decode.  The bytes are never modified in place; operations which change a
// subtable replace Data by a newly allocated slice.
type Subtable struct {
	Format   uint16
	Language uint32
	Data     []byte
}

// Decode parses a cmap table.
//
// Directory entries which point to the same offset and have the same
// length share a single Subtable.  The returned table references data,
// so data must not be modified while the table is in use.
func Decode(data []byte) (*Table, error) {
	version, err := bin.U16(data, 0)
	if err != nil {
		return nil, malformed("decode", 0, err)
	}
	numTables, err := bin.U16(data, 2)
	if err != nil {
		return nil, malformed("decode", 2, err)
	}

	type span struct {
		offset, length int
	}
	seen := make(map[span]int)

	t := &Table{Version: version}
	for i := 0; i < int(numTables); i++ {
		rec, err := bin.Slice(data, 4+8*i, 8)
		if err != nil {
			return nil, malformed("decode", 4+8*i, err)
		}
		platformID := uint16(rec[0])<<8 | uint16(rec[1])
		encodingID := uint16(rec[2])<<8 | uint16(rec[3])
		offset := int(uint32(rec[4])<<24 | uint32(rec[5])<<16 | uint32(rec[6])<<8 | uint32(rec[7]))

		format, length, language, err := subtableHeader(data, offset)
		if err != nil {
			return nil, malformed("decode", offset, err)
		}
		body, err := bin.Slice(data, offset, length)
		if err != nil {
			return nil, malformed("decode", offset, err)
		}

		key := span{offset, length}
		idx, ok := seen[key]
		if ok {
			tracer().Debugf("cmap record %d/%d shares subtable %d", platformID, encodingID, idx)
		} else {
			idx = len(t.Subtables)
			t.Subtables = append(t.Subtables, &Subtable{
				Format:   format,
				Language: language,
				Data:     body,
			})
			seen[key] = idx
		}
		t.Records = append(t.Records, EncodingRecord{
			PlatformID: platformID,
			EncodingID: encodingID,
			Subtable:   idx,
		})
	}
	tracer().Debugf("cmap has %d encoding records and %d distinct subtables",
		len(t.Records), len(t.Subtables))
	return t, nil
}

// subtableHeader reads the format, length and language of the subtable
// starting at offset.
func subtableHeader(data []byte, offset int) (format uint16, length int, language uint32, err error) {
	format, err = bin.U16(data, offset)
	if err != nil {
		return 0, 0, 0, err
	}
	switch format {
	case 0, 2, 4, 6:
		var l, lang uint16
		l, err = bin.U16(data, offset+2)
		if err == nil {
			lang, err = bin.U16(data, offset+4)
		}
		length, language = int(l), uint32(lang)
	case 8, 10, 12, 13:
		var l uint32
		l, err = bin.U32(data, offset+4)
		if err == nil {
			language, err = bin.U32(data, offset+8)
		}
		length = int(l)
	case 14:
		var l uint32
		l, err = bin.U32(data, offset+2)
		length = int(l)
	default:
		err = fmt.Errorf("%w %d", ErrUnrecognizedFormat, format)
	}
	if err != nil {
		return 0, 0, 0, err
	}
	if length < headerLength[format] {
		// the header fields would extend beyond the end of the subtable
		return 0, 0, 0, ErrOutOfBounds
	}
	return format, length, language, nil
}

// headerLength gives the size of the format, length and language fields
// for each subtable format.
var headerLength = map[uint16]int{
	0: 6, 2: 6, 4: 6, 6: 6,
	8: 12, 10: 12, 12: 12, 13: 12,
	14: 6,
}

// Encode returns the binary form of the table.
//
// The encoding records are sorted by platform ID, encoding ID and subtable
// language, as required by the OpenType specification.  Subtables are
// written in the order in which they appear in t.Subtables, directly after
// the record list.
func (t *Table) Encode() []byte {
	order := make([]int, len(t.Records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a := &t.Records[order[i]]
		b := &t.Records[order[j]]
		if a.PlatformID != b.PlatformID {
			return a.PlatformID < b.PlatformID
		}
		if a.EncodingID != b.EncodingID {
			return a.EncodingID < b.EncodingID
		}
		return t.Subtables[a.Subtable].Language < t.Subtables[b.Subtable].Language
	})

	pos := 4 + 8*len(t.Records)
	offsets := make([]int, len(t.Subtables))
	for i, st := range t.Subtables {
		offsets[i] = pos
		pos += len(st.Data)
	}

	w := bin.NewWriter()
	w.U16(t.Version)
	w.U16(uint16(len(t.Records))) // numTables counts records, not distinct subtables
	for _, i := range order {
		rec := &t.Records[i]
		w.U16(rec.PlatformID)
		w.U16(rec.EncodingID)
		w.U32(uint32(offsets[rec.Subtable]))
	}
	for i, st := range t.Subtables {
		if w.Len() != offsets[i] {
			panic(fmt.Sprintf("cmap: subtable %d written at %d instead of %d",
				i, w.Len(), offsets[i]))
		}
		w.Bytes(st.Data)
	}
	return w.Finish()
}
