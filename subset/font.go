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
	"bytes"
	"errors"
	"io"

	"seehuhn.de/go/sfnt/header"

	"seehuhn.de/go/websubset/internal/bin"
)

// Font reads an sfnt font from r, applies the profile and writes the
// resulting font to w.
//
// Nothing is written to w if an error occurs, in particular if
// verification is enabled and fails.
func Font(r io.ReaderAt, w io.Writer, p *Profile) error {
	info, err := header.Read(r)
	if err != nil {
		return err
	}

	input := make(map[string][]byte, len(info.Toc))
	for name := range info.Toc {
		data, err := info.ReadTableBytes(r, name)
		if err != nil {
			return err
		}
		input[name] = data
	}

	maxp, ok := input["maxp"]
	if !ok {
		return &ErrNoTable{Name: "maxp"}
	}
	numGlyphs, err := decodeNumGlyphs(maxp)
	if err != nil {
		return err
	}
	tracer().Debugf("%d tables, %d glyphs", len(input), numGlyphs)

	ctx := NewContext(p, numGlyphs, input)
	err = MapGlyphs(ctx)
	if err != nil {
		return err
	}
	for name, data := range input {
		if _, done := ctx.Output[name]; done {
			continue
		}
		if name == "head" {
			// header.Write patches the checksum in place
			if len(data) < 12 {
				return errHeadTooShort
			}
			data = bytes.Clone(data)
		}
		ctx.Output[name] = data
	}

	buf := &bytes.Buffer{}
	_, err = header.Write(buf, info.ScalerType, ctx.Output)
	if err != nil {
		return err
	}

	if p.Verify {
		err = Verify(buf.Bytes())
		if err != nil {
			return err
		}
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// decodeNumGlyphs extracts the number of glyphs from a "maxp" table.
func decodeNumGlyphs(maxp []byte) (uint16, error) {
	version, err := bin.U32(maxp, 0)
	if err != nil {
		return 0, errMaxpTooShort
	}
	if version != 0x00005000 && version != 0x00010000 {
		return 0, errMaxpVersion
	}
	numGlyphs, err := bin.U16(maxp, 4)
	if err != nil {
		return 0, errMaxpTooShort
	}
	return numGlyphs, nil
}

var (
	errMaxpTooShort = errors.New("sfnt/maxp: table too short")
	errMaxpVersion  = errors.New("sfnt/maxp: unknown version")
	errHeadTooShort = errors.New("sfnt/head: table too short")
)
