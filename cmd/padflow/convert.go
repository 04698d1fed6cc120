package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/coreconfig"
	"github.com/padflow/go-padflow/corelog"
	"github.com/padflow/go-padflow/driver"
)

// padByName maps the chart file's/flag's pad name to its descriptor. Only
// the two pads SPEC_FULL.md's SUPPLEMENTED FEATURES pins concretely are
// wired here; a third pad would need its own PadDescriptor in arrowdata
// before it could be named here.
func padByName(name string) (arrowdata.PadDescriptor, error) {
	switch name {
	case "singles":
		return arrowdata.Singles(), nil
	case "doubles":
		return arrowdata.Doubles(), nil
	default:
		return arrowdata.PadDescriptor{}, fmt.Errorf("unknown pad %q (want \"singles\" or \"doubles\")", name)
	}
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	from := fs.String("from", "singles", "input pad: singles or doubles")
	to := fs.String("to", "doubles", "output pad: singles or doubles")
	configPath := fs.String("config", "", "path to a CoreConfig JSON file (optional)")
	version := fs.String("tool-version", "1.0.0", "generator version string written into output metadata")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: padflow convert [flags] <input-file> <output-file>")
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	inputPad, err := padByName(*from)
	if err != nil {
		return err
	}
	outputPad, err := padByName(*to)
	if err != nil {
		return err
	}

	cf, err := readChartFile(inPath)
	if err != nil {
		return err
	}
	events, err := toInputEvents(cf)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	var cfg coreconfig.CoreConfig
	if *configPath != "" {
		cfg, err = coreconfig.ReadJSON(*configPath)
		if err != nil {
			return err
		}
	} else {
		cfg = coreconfig.Build(outputPad.NumArrows).SeedSource(inPath).Done()
	}
	if errs := coreconfig.Validate(cfg); len(errs) > 0 {
		return fmt.Errorf("invalid config: %v", errs[0])
	}

	ctx := context.Background()
	graphs, err := driver.BuildGraphs(ctx, inputPad, outputPad, cfg, nil)
	if err != nil {
		return fmt.Errorf("build graphs: %w", err)
	}
	if *from == *to {
		graphs.RootTiers = driver.SamePadRootTiers(graphs.Output)
	} else if *from == "singles" && *to == "doubles" {
		graphs.RootTiers = driver.SinglesToDoublesRootTiers(graphs.Output)
	} else {
		return fmt.Errorf("no root-tier table registered for %s -> %s", *from, *to)
	}

	logger := corelog.New(nil)
	song := driver.Song{ID: inPath, Events: events, Author: cf.Author, Description: cf.Description}
	out, warnings, err := driver.ProcessSong(graphs, song, cfg, logger, *version)
	if err != nil {
		return fmt.Errorf("convert %s: %w", inPath, err)
	}
	for _, w := range warnings {
		fmt.Printf("warning: %v\n", w)
	}

	outCF := chartFile{
		Pad:         *to,
		Author:      out.Author,
		Description: out.Description,
		Events:      fromOutputEvents(out.Events),
	}
	if err := writeChartFile(outPath, outCF); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d events)\n", outPath, len(outCF.Events))
	return nil
}
