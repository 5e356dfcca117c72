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

// Rewrite returns a cmap table in which every glyph 0, ..., numGlyphs-1 can
// be reached through the code point PUAStart+g.
//
// If mapGlyphs is false, data is returned unchanged without being parsed.
// Otherwise the table is decoded, a format 12 subtable is located (or
// converted from a format 4 subtable), a Unicode full repertoire encoding
// record for this subtable is added if none exists, and the PUA window is
// spliced into the format 12 subtable.
func Rewrite(data []byte, numGlyphs uint16, mapGlyphs bool) ([]byte, error) {
	if !mapGlyphs {
		return data, nil
	}

	t, err := Decode(data)
	if err != nil {
		return nil, err
	}

	idx := t.find(12)
	if idx < 0 {
		idx4 := t.find(4)
		if idx4 < 0 {
			return nil, malformed("rewrite", -1, ErrMissingSubtable)
		}
		st, err := Convert4To12(t.Subtables[idx4])
		if err != nil {
			return nil, err
		}
		t.Subtables = append(t.Subtables, st)
		idx = len(t.Subtables) - 1
	}

	if !t.hasRecord(0, 4, idx) {
		if len(t.Records) >= 0xFFFF {
			return nil, malformed("rewrite", 2, ErrTooManyRecords)
		}
		tracer().Debugf("adding a Unicode full repertoire record for subtable %d", idx)
		t.Records = append(t.Records, EncodingRecord{
			PlatformID: 0,
			EncodingID: 4,
			Subtable:   idx,
		})
	}

	err = t.Subtables[idx].MapToPUA(numGlyphs)
	if err != nil {
		return nil, err
	}

	return t.Encode(), nil
}

// find returns the index of the first subtable with the given format,
// or -1 if there is no such subtable.
func (t *Table) find(format uint16) int {
	for i, st := range t.Subtables {
		if st.Format == format {
			return i
		}
	}
	return -1
}

// hasRecord reports whether an encoding record for the given platform and
// encoding refers to subtable idx.
func (t *Table) hasRecord(platformID, encodingID uint16, idx int) bool {
	for _, rec := range t.Records {
		if rec.PlatformID == platformID && rec.EncodingID == encodingID && rec.Subtable == idx {
			return true
		}
	}
	return false
}
