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

	"seehuhn.de/go/websubset/internal/bin"
)

// Group is one sequential map group of a format 12 subtable.
// The code points Start, ..., End map to the glyph IDs
// StartGlyph, StartGlyph+1, ..., StartGlyph+End-Start.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-12-segmented-coverage
type Group struct {
	Start      uint32
	End        uint32
	StartGlyph uint32
}

// Groups decodes the group list of a format 12 subtable.
// The groups must be sorted by code point and must not overlap.
func (st *Subtable) Groups() ([]Group, error) {
	if st.Format != 12 {
		panic(fmt.Sprintf("cmap: format %d subtable has no groups", st.Format))
	}
	numGroups, err := bin.U32(st.Data, 12)
	if err != nil {
		return nil, malformed("remap", 12, err)
	}
	body, err := bin.Slice(st.Data, 16, 12*int(numGroups))
	if err != nil {
		return nil, malformed("remap", 16, err)
	}

	groups := make([]Group, numGroups)
	for i := range groups {
		g := body[12*i : 12*i+12]
		groups[i] = Group{
			Start:      uint32(g[0])<<24 | uint32(g[1])<<16 | uint32(g[2])<<8 | uint32(g[3]),
			End:        uint32(g[4])<<24 | uint32(g[5])<<16 | uint32(g[6])<<8 | uint32(g[7]),
			StartGlyph: uint32(g[8])<<24 | uint32(g[9])<<16 | uint32(g[10])<<8 | uint32(g[11]),
		}
		if groups[i].End < groups[i].Start || i > 0 && groups[i].Start <= groups[i-1].End {
			return nil, malformed("remap", 16+12*i, ErrInvalidGroups)
		}
	}
	return groups, nil
}

// encodeFormat12 builds a format 12 subtable from the first 12 bytes of an
// existing one (format, reserved, length and language) and a group list.
// The length field is updated.
func encodeFormat12(header []byte, groups []Group) []byte {
	w := bin.NewWriter()
	w.Bytes(header[:12])
	w.U32(uint32(len(groups)))
	for _, g := range groups {
		w.U32(g.Start)
		w.U32(g.End)
		w.U32(g.StartGlyph)
	}
	w.Align(4)
	w.PatchU32(4, uint32(w.Len()))
	return w.Finish()
}

// Lookup returns the glyph ID for the given code point.
// The groups must be sorted and non-overlapping.
// If the code point is not mapped, ok is false.
func Lookup(groups []Group, code uint32) (gid uint32, ok bool) {
	idx := sort.Search(len(groups), func(i int) bool {
		return code <= groups[i].End
	})
	if idx == len(groups) || groups[idx].Start > code {
		return 0, false
	}
	g := groups[idx]
	return g.StartGlyph + (code - g.Start), true
}
