package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/globalaiplatform/go-langdiff/track"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='force colored output'"`
	NoColor bool `cli:"name=no-color desc='disable colored output'"`

	Main *cli.Command
}

// colors resolves the output color mode: explicit flags win, otherwise
// a terminal gets color and a pipe does not.
func (cfg *MainConfig) colors(w io.Writer) *track.Colors {
	switch {
	case cfg.NoColor:
		return nil
	case cfg.Color:
		return track.NewColors()
	}
	f, ok := w.(*os.File)
	if ok && isatty.IsTerminal(f.Fd()) {
		return track.NewColors()
	}
	return nil
}

type WatchConfig struct {
	*MainConfig
	Schema string `cli:"name=schema desc='schema declaration file (YAML)'"`
	Chunk  int
	Expr   string

	Watch *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Wire bool `cli:"name=wire desc='output the patch as RFC 6902 JSON'"`

	Diff *cli.Command
}

type ApplyConfig struct {
	*MainConfig

	Apply *cli.Command
}
