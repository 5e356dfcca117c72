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


package subset

import (
	"fmt"

	"golang.org/x/image/font/sfnt"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/websubset/cmap"
)

// Verify checks that every glyph of the font can be reached through its
// code point in the PUA window.
//
// The font is parsed with golang.org/x/image/font/sfnt, which has a cmap
// reader independent of the one in this module.
func Verify(font []byte) error {
	f, err := sfnt.Parse(font)
	if err != nil {
		return err
	}

	var buf sfnt.Buffer
	numGlyphs := f.NumGlyphs()
	for gid := 0; gid < numGlyphs; gid++ {
		got, err := f.GlyphIndex(&buf, rune(cmap.PUAStart+gid))
		if err != nil {
			return err
		}
		if int(got) != gid {
			return &VerifyError{GID: glyph.ID(gid), Got: glyph.ID(got)}
		}
	}
	tracer().Debugf("verified %d glyphs", numGlyphs)
	return nil
}

// VerifyError is returned by Verify if a glyph cannot be reached from
// its PUA code point.
type VerifyError struct {
	GID glyph.ID // the glyph which was expected
	Got glyph.ID // the glyph the code point resolves to
}

func (err *VerifyError) Error() string {
	return fmt.Sprintf("glyph %d: U+%X maps to glyph %d",
		err.GID, cmap.PUAStart+int(err.GID), err.Got)
}
