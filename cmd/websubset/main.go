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


// Websubset rewrites the cmap table of a font so that every glyph can be
// reached through the Supplementary Private Use Area-A.
//
// Usage:
//
//	websubset [options] -in font.ttf -out web.ttf
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"seehuhn.de/go/websubset/subset"
)

var traceKeys = []string{"websubset.cmap", "websubset.subset"}

func main() {
	in := flag.String("in", "", "input font file")
	out := flag.String("out", "", "output font file")
	mapGlyphs := flag.Bool("map", true, "map all glyphs into the PUA")
	verify := flag.Bool("verify", true, "verify the output font (only with -map)")
	tlevel := flag.String("trace", "Error", "trace level [Debug|Info|Error]")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] -in font.ttf -out web.ttf\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	err := setupTracing(*tlevel)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	p := newProfile(*mapGlyphs, *verify)
	err = run(*in, *out, p)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(2)
	}
}

// newProfile converts the command line flags into a profile.
// Without mapping there is nothing in the PUA to verify.
func newProfile(mapGlyphs, verify bool) *subset.Profile {
	return &subset.Profile{
		MapGlyphs: mapGlyphs,
		Verify:    verify && mapGlyphs,
	}
}

func run(inName, outName string, p *subset.Profile) error {
	data, err := os.ReadFile(inName)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	err = subset.Font(bytes.NewReader(data), buf, p)
	if err != nil {
		return fmt.Errorf("%s: %w", inName, err)
	}

	err = os.WriteFile(outName, buf.Bytes(), 0o644)
	if err != nil {
		return err
	}

	msg := message.NewPrinter(language.English)
	pterm.Success.Println(msg.Sprintf("%s: %d bytes -> %s: %d bytes",
		inName, len(data), outName, buf.Len()))
	return nil
}

func setupTracing(level string) error {
	var l tracing.TraceLevel
	switch level {
	case "Debug":
		l = tracing.LevelDebug
	case "Info":
		l = tracing.LevelInfo
	case "Error":
		l = tracing.LevelError
	default:
		return fmt.Errorf("invalid trace level %q", level)
	}

	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true))
	if err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
	return nil
}
