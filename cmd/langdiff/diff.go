package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/globalaiplatform/go-langdiff/ir"
	"github.com/globalaiplatform/go-langdiff/parse"
	"github.com/globalaiplatform/go-langdiff/track"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff takes exactly two files", cli.ErrUsage)
	}
	before, err := readDoc(args[0])
	if err != nil {
		return err
	}
	after, err := readDoc(args[1])
	if err != nil {
		return err
	}
	p := track.Diff(before, after)
	if cfg.Wire {
		d, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cc.Out, "%s\n", d)
		return err
	}
	return track.Render(cc.Out, p, before, cfg.colors(cc.Out))
}

func readDoc(file string) (*ir.Node, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	doc, err := parse.Document(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", file, err)
	}
	return doc, nil
}
