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
	"math/bits"

	"seehuhn.de/go/websubset/internal/bin"
)

// Convert4To12 converts a format 4 subtable into an equivalent format 12
// subtable.  The language field is preserved.
//
// Code points which map to consecutive glyph IDs are merged into a single
// group.  Glyph ID 0 is not treated specially.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-4-segment-mapping-to-delta-values
func Convert4To12(st *Subtable) (*Subtable, error) {
	data := st.Data
	segCountX2, err := bin.U16(data, 6)
	if err != nil {
		return nil, malformed("convert", 6, err)
	}
	checkSearchParams(data, segCountX2)

	n := int(segCountX2)
	const endCodeBase = 14
	startCodeBase := endCodeBase + n + 2 // skip reservedPad
	idDeltaBase := startCodeBase + n
	idRangeOffsetBase := idDeltaBase + n
	for _, base := range []int{endCodeBase, startCodeBase, idDeltaBase, idRangeOffsetBase} {
		if _, err := bin.Slice(data, base, n); err != nil {
			return nil, malformed("convert", base, err)
		}
	}

	w := bin.NewWriter()
	w.U16(12)
	w.U16(0) // reserved
	w.U32(0) // length, patched below
	w.U32(st.Language)
	w.U32(0) // numGroups, patched below

	var numGroups uint32
	emit := func(g Group) {
		w.U32(g.Start)
		w.U32(g.End)
		w.U32(g.StartGlyph)
		numGroups++
	}

	segCount := n / 2
	for i := 0; i < segCount; i++ {
		// The array bounds were checked above.
		end, _ := bin.U16(data, endCodeBase+2*i)
		start, _ := bin.U16(data, startCodeBase+2*i)
		delta, _ := bin.U16(data, idDeltaBase+2*i)
		rangeOffsetPos := idRangeOffsetBase + 2*i
		rangeOffset, _ := bin.U16(data, rangeOffsetPos)

		if start > end {
			tracer().Debugf("cmap format 4: skipping empty segment %d (%04X > %04X)", i, start, end)
			continue
		}

		if rangeOffset == 0 {
			emit(Group{
				Start:      uint32(start),
				End:        uint32(end),
				StartGlyph: uint32(start + delta),
			})
			continue
		}

		var run Group
		pending := false
		for c := uint32(start); c <= uint32(end); c++ {
			pos := rangeOffsetPos + int(rangeOffset) + 2*int(c-uint32(start))
			gid, err := bin.U16(data, pos)
			if err != nil {
				return nil, malformed("convert", pos, err)
			}
			if gid != 0 {
				gid += delta
			}
			switch {
			case !pending:
				run = Group{Start: c, End: c, StartGlyph: uint32(gid)}
				pending = true
			case c+run.StartGlyph == run.Start+uint32(gid):
				run.End = c
			default:
				emit(run)
				run = Group{Start: c, End: c, StartGlyph: uint32(gid)}
			}
		}
		if pending {
			emit(run)
		}
	}

	w.Align(4)
	w.PatchU32(4, uint32(w.Len()))
	w.PatchU32(12, numGroups)
	tracer().Debugf("cmap format 4 with %d segments converted to %d groups", segCount, numGroups)

	return &Subtable{
		Format:   12,
		Language: st.Language,
		Data:     w.Finish(),
	}, nil
}

// checkSearchParams compares the stored binary search parameters of a format
// 4 subtable with the values derived from segCountX2.  Only the derived
// values are ever used, so a mismatch is merely reported.
func checkSearchParams(data []byte, segCountX2 uint16) {
	var searchRange, entrySelector uint16
	if segCount := segCountX2 / 2; segCount > 0 {
		entrySelector = uint16(bits.Len16(segCount) - 1)
		searchRange = 2 << entrySelector
	}
	rangeShift := segCountX2 - searchRange

	storedRange, err1 := bin.U16(data, 8)
	storedSelector, err2 := bin.U16(data, 10)
	storedShift, err3 := bin.U16(data, 12)
	if err1 != nil || err2 != nil || err3 != nil {
		return
	}
	if storedRange != searchRange || storedSelector != entrySelector || storedShift != rangeShift {
		tracer().Debugf("cmap format 4: stored search parameters %d/%d/%d, expected %d/%d/%d",
			storedRange, storedSelector, storedShift, searchRange, entrySelector, rangeShift)
	}
}
