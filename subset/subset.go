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


// Package subset applies the cmap rewrite to complete sfnt font files.
//
// The package reads the table directory of a TrueType or OpenType font,
// replaces the "cmap" table by a version in which every glyph is reachable
// through the Supplementary Private Use Area-A, and writes the font back.
// All other tables are copied unchanged.
package subset

import (
	"fmt"

	"seehuhn.de/go/websubset/cmap"
)

// Profile selects the processing steps applied to a font.
type Profile struct {
	// MapGlyphs enables the PUA rewrite of the "cmap" table.
	// If this is false, the cmap table is copied unchanged.
	MapGlyphs bool

	// Verify checks the written font with an independent cmap reader.
	Verify bool
}

// Web returns the profile used for web fonts.
func Web() *Profile {
	return &Profile{
		MapGlyphs: true,
		Verify:    true,
	}
}

// Context holds the state of a font while it is being processed.
type Context struct {
	Profile   *Profile
	NumGlyphs uint16

	// Input holds the tables of the original font, indexed by tag.
	// The processing steps never modify these slices.
	Input map[string][]byte

	// Output collects the tables of the new font.
	Output map[string][]byte
}

// NewContext allocates a context for the given input tables.
func NewContext(p *Profile, numGlyphs uint16, input map[string][]byte) *Context {
	return &Context{
		Profile:   p,
		NumGlyphs: numGlyphs,
		Input:     input,
		Output:    make(map[string][]byte, len(input)),
	}
}

// MapGlyphs is the cmap step of the pipeline.
// It rewrites the "cmap" table of the input and stores the result in
// ctx.Output.
func MapGlyphs(ctx *Context) error {
	data, ok := ctx.Input["cmap"]
	if !ok {
		return &ErrNoTable{Name: "cmap"}
	}
	out, err := cmap.Rewrite(data, ctx.NumGlyphs, ctx.Profile.MapGlyphs)
	if err != nil {
		return err
	}
	tracer().Debugf("cmap: %d bytes in, %d bytes out", len(data), len(out))
	ctx.Output["cmap"] = out
	return nil
}

// ErrNoTable indicates that a required table is missing from a font.
type ErrNoTable struct {
	Name string
}

func (err *ErrNoTable) Error() string {
	return fmt.Sprintf("sfnt: missing %q table", err.Name)
}
