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


package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/websubset/subset"
)

func TestNewProfile(t *testing.T) {
	cases := []struct {
		mapGlyphs, verify bool
		want              subset.Profile
	}{
		{true, true, subset.Profile{MapGlyphs: true, Verify: true}},
		{true, false, subset.Profile{MapGlyphs: true}},
		{false, true, subset.Profile{}},
		{false, false, subset.Profile{}},
	}
	for _, c := range cases {
		got := newProfile(c.mapGlyphs, c.verify)
		if d := cmp.Diff(c.want, *got); d != "" {
			t.Errorf("map=%t verify=%t (-want +got):\n%s", c.mapGlyphs, c.verify, d)
		}
	}
}

func TestRunWithoutMapping(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.ttf")
	out := filepath.Join(dir, "out.ttf")
	err := os.WriteFile(in, goregular.TTF, 0o644)
	if err != nil {
		t.Fatal(err)
	}

	// -map=false with the default -verify=true must succeed
	err = run(in, out, newProfile(false, true))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Error(err)
	}
}
