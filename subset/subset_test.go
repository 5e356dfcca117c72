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
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt/header"

	"seehuhn.de/go/websubset/cmap"
)

func readTables(t *testing.T, font []byte) map[string][]byte {
	t.Helper()
	r := bytes.NewReader(font)
	info, err := header.Read(r)
	require.NoError(t, err)
	res := make(map[string][]byte)
	for name := range info.Toc {
		data, err := info.ReadTableBytes(r, name)
		require.NoError(t, err)
		res[name] = data
	}
	return res
}

func TestFontGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "websubset.subset")
	defer teardown()

	orig := bytes.Clone(goregular.TTF)
	out := &bytes.Buffer{}
	err := Font(bytes.NewReader(goregular.TTF), out, Web())
	require.NoError(t, err)
	assert.Equal(t, orig, goregular.TTF, "input font was modified")

	require.NoError(t, Verify(out.Bytes()))

	in := readTables(t, goregular.TTF)
	got := readTables(t, out.Bytes())
	require.Len(t, got, len(in))
	for name, data := range in {
		switch name {
		case "cmap", "head":
			continue
		}
		assert.Equal(t, data, got[name], "table %q changed", name)
	}

	sub, err := cmap.Decode(got["cmap"])
	require.NoError(t, err)
	var unicodeFull int
	for _, rec := range sub.Records {
		if rec.PlatformID == 0 && rec.EncodingID == 4 && sub.Subtables[rec.Subtable].Format == 12 {
			unicodeFull++
		}
	}
	assert.Equal(t, 1, unicodeFull)
}

func TestFontDisabled(t *testing.T) {
	out := &bytes.Buffer{}
	err := Font(bytes.NewReader(goregular.TTF), out, &Profile{})
	require.NoError(t, err)

	in := readTables(t, goregular.TTF)
	got := readTables(t, out.Bytes())
	assert.Equal(t, in["cmap"], got["cmap"])

	var verr *VerifyError
	require.ErrorAs(t, Verify(out.Bytes()), &verr)
	assert.EqualValues(t, 1, verr.GID)
	assert.EqualValues(t, 0, verr.Got)
}

func TestFontVerifyFailure(t *testing.T) {
	out := &bytes.Buffer{}
	err := Font(bytes.NewReader(goregular.TTF), out, &Profile{Verify: true})
	var verr *VerifyError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, out.Len(), "output written despite failed verification")
}

func TestFontIdempotent(t *testing.T) {
	once := &bytes.Buffer{}
	require.NoError(t, Font(bytes.NewReader(goregular.TTF), once, Web()))
	twice := &bytes.Buffer{}
	require.NoError(t, Font(bytes.NewReader(once.Bytes()), twice, Web()))

	a := cmapRecords(t, readTables(t, once.Bytes())["cmap"])
	b := cmapRecords(t, readTables(t, twice.Bytes())["cmap"])
	assert.Equal(t, a, b)

	// The payload order may differ between the two passes, the mapping
	// may not.
	ga := puaGroups(t, readTables(t, once.Bytes())["cmap"])
	gb := puaGroups(t, readTables(t, twice.Bytes())["cmap"])
	numGlyphs, err := decodeNumGlyphs(readTables(t, once.Bytes())["maxp"])
	require.NoError(t, err)
	for g := uint32(0); g < uint32(numGlyphs); g++ {
		gidA, okA := cmap.Lookup(ga, cmap.PUAStart+g)
		gidB, okB := cmap.Lookup(gb, cmap.PUAStart+g)
		require.True(t, okA && okB, "U+%05X not mapped", cmap.PUAStart+g)
		require.Equal(t, gidA, gidB, "U+%05X", cmap.PUAStart+g)
		require.Equal(t, g, gidB, "U+%05X", cmap.PUAStart+g)
	}
	require.NoError(t, Verify(twice.Bytes()))
}

type recordInfo struct {
	PlatformID, EncodingID, Format uint16
	Language                       uint32
	Length                         int
}

// cmapRecords lists the encoding records of a cmap table together with
// their subtables, in a canonical order.
func cmapRecords(t *testing.T, data []byte) []recordInfo {
	t.Helper()
	table, err := cmap.Decode(data)
	require.NoError(t, err)
	var res []recordInfo
	for _, rec := range table.Records {
		st := table.Subtables[rec.Subtable]
		res = append(res, recordInfo{rec.PlatformID, rec.EncodingID, st.Format, st.Language, len(st.Data)})
	}
	sort.Slice(res, func(i, j int) bool {
		a, b := res[i], res[j]
		if a.PlatformID != b.PlatformID {
			return a.PlatformID < b.PlatformID
		}
		if a.EncodingID != b.EncodingID {
			return a.EncodingID < b.EncodingID
		}
		if a.Language != b.Language {
			return a.Language < b.Language
		}
		if a.Format != b.Format {
			return a.Format < b.Format
		}
		return a.Length < b.Length
	})
	return res
}

// puaGroups returns the groups of the format 12 subtable used by the
// Unicode full repertoire record.
func puaGroups(t *testing.T, data []byte) []cmap.Group {
	t.Helper()
	table, err := cmap.Decode(data)
	require.NoError(t, err)
	for _, rec := range table.Records {
		st := table.Subtables[rec.Subtable]
		if rec.PlatformID == 0 && rec.EncodingID == 4 && st.Format == 12 {
			groups, err := st.Groups()
			require.NoError(t, err)
			return groups
		}
	}
	t.Fatal("no format 12 subtable for platform 0, encoding 4")
	return nil
}

func TestMapGlyphsMissingCmap(t *testing.T) {
	ctx := NewContext(Web(), 10, map[string][]byte{"head": make([]byte, 54)})
	err := MapGlyphs(ctx)
	var missing *ErrNoTable
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "cmap", missing.Name)
	assert.Empty(t, ctx.Output)
}

func TestMapGlyphsMalformed(t *testing.T) {
	ctx := NewContext(Web(), 10, map[string][]byte{"cmap": {0, 0, 0, 1}})
	err := MapGlyphs(ctx)
	assert.True(t, errors.Is(err, cmap.ErrOutOfBounds), "got %v", err)
}

func TestDecodeNumGlyphs(t *testing.T) {
	cases := []struct {
		maxp []byte
		want uint16
		err  error
	}{
		{[]byte{0x00, 0x00, 0x50, 0x00, 0x12, 0x34}, 0x1234, nil},
		{[]byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x07, 0, 0}, 7, nil},
		{[]byte{0x00, 0x02, 0x00, 0x00, 0x00, 0x07}, 0, errMaxpVersion},
		{[]byte{0x00, 0x00, 0x50, 0x00, 0x12}, 0, errMaxpTooShort},
		{nil, 0, errMaxpTooShort},
	}
	for i, c := range cases {
		got, err := decodeNumGlyphs(c.maxp)
		assert.ErrorIs(t, err, c.err, "case %d", i)
		assert.Equal(t, c.want, got, "case %d", i)
	}
}

func TestBatch(t *testing.T) {
	outs := make([]*bytes.Buffer, 4)
	var jobs []Job
	for i := range outs {
		outs[i] = &bytes.Buffer{}
		jobs = append(jobs, Job{
			Name:    "goregular",
			In:      bytes.NewReader(goregular.TTF),
			Out:     outs[i],
			Profile: Web(),
		})
	}
	require.NoError(t, Batch(context.Background(), jobs))

	want := readTables(t, outs[0].Bytes())["cmap"]
	for _, out := range outs[1:] {
		assert.Equal(t, want, readTables(t, out.Bytes())["cmap"])
	}
}

func TestBatchError(t *testing.T) {
	jobs := []Job{
		{Name: "good", In: bytes.NewReader(goregular.TTF), Out: &bytes.Buffer{}, Profile: Web()},
		{Name: "broken", In: bytes.NewReader([]byte("not a font")), Out: &bytes.Buffer{}, Profile: Web()},
	}
	err := Batch(context.Background(), jobs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := &bytes.Buffer{}
	err := Batch(ctx, []Job{{Name: "a", In: bytes.NewReader(goregular.TTF), Out: out, Profile: Web()}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Len())
}
