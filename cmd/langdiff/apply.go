package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/globalaiplatform/go-langdiff/track"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: apply takes a document file and a patch file", cli.ErrUsage)
	}
	doc, err := readDoc(args[0])
	if err != nil {
		return err
	}
	pd, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("could not read %q: %w", args[1], err)
	}
	var p track.Patch
	if err := json.Unmarshal(pd, &p); err != nil {
		return fmt.Errorf("error parsing patch %s: %w", args[1], err)
	}
	res, err := track.Apply(doc, p)
	if err != nil {
		return err
	}
	d, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cc.Out, "%s\n", d)
	return err
}
