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
	"fmt"
	"sort"

	"golang.org/x/exp/slices"
)

// PUAStart is the first code point of the Supplementary Private Use
// Area-A.  Glyph g is mapped to the code point PUAStart+g.
const PUAStart = 0xF0000

// MapToPUA changes a format 12 subtable so that the code point PUAStart+g
// maps to glyph g, for every g in the range 0, ..., numGlyphs-1.
//
// Mappings outside this window are kept unchanged.  Groups which overlap the
// window are trimmed, mappings which lie inside the window are discarded.
// If numGlyphs is 0, the subtable is not modified.
//
// The subtable must have format 12.
func (st *Subtable) MapToPUA(numGlyphs uint16) error {
	if st.Format != 12 {
		panic(fmt.Sprintf("cmap: cannot map glyphs in a format %d subtable", st.Format))
	}
	if numGlyphs == 0 {
		return nil
	}

	groups, err := st.Groups()
	if err != nil {
		return err
	}
	groups = spliceWindow(groups, PUAStart, PUAStart+uint32(numGlyphs)-1)

	st.Data = encodeFormat12(st.Data, groups)
	return nil
}

// spliceWindow replaces all mappings for the code points first, ..., last
// by the identity group (first, last, 0).
func spliceWindow(groups []Group, first, last uint32) []Group {
	window := Group{Start: first, End: last, StartGlyph: 0}

	// first group with End >= first
	iStart := sort.Search(len(groups), func(i int) bool {
		return groups[i].End >= first
	})
	// first group with Start > last
	iEnd := sort.Search(len(groups), func(i int) bool {
		return groups[i].Start > last
	})

	if iStart == iEnd {
		tracer().Debugf("PUA window %05X-%05X inserted at group %d", first, last, iStart)
		return slices.Insert(groups, iStart, window)
	}

	// All of groups[iStart:iEnd] intersect the window.
	replacement := make([]Group, 0, 3)
	if left := groups[iStart]; left.Start < first {
		replacement = append(replacement, Group{
			Start:      left.Start,
			End:        first - 1,
			StartGlyph: left.StartGlyph,
		})
	}
	replacement = append(replacement, window)
	if right := groups[iEnd-1]; right.End > last {
		replacement = append(replacement, Group{
			Start:      last + 1,
			End:        right.End,
			StartGlyph: right.StartGlyph + (last + 1 - right.Start),
		})
	}
	tracer().Debugf("PUA window %05X-%05X replaces groups %d-%d by %d groups",
		first, last, iStart, iEnd-1, len(replacement))
	return slices.Replace(groups, iStart, iEnd, replacement...)
}
