package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	langdiff "github.com/globalaiplatform/go-langdiff"
	"github.com/globalaiplatform/go-langdiff/node"
	"github.com/globalaiplatform/go-langdiff/schema"
)

func watch(cfg *WatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Schema == "" {
		return fmt.Errorf("%w: watch needs -schema", cli.ErrUsage)
	}
	data, err := os.ReadFile(cfg.Schema)
	if err != nil {
		return fmt.Errorf("could not read schema %q: %w", cfg.Schema, err)
	}
	decl, err := schema.Load(data)
	if err != nil {
		return err
	}
	root, err := decl.Build()
	if err != nil {
		return err
	}
	var filter *vm.Program
	if cfg.Expr != "" {
		filter, err = expr.Compile(cfg.Expr, expr.AsBool(), expr.AllowUndefinedVariables())
		if err != nil {
			return fmt.Errorf("bad filter expression: %w", err)
		}
	}
	var evErr error
	node.Watch(root, func(ev node.Event) {
		if evErr != nil {
			return
		}
		if filter != nil {
			keep, err := runFilter(filter, ev)
			if err != nil {
				evErr = err
				return
			}
			if !keep {
				return
			}
		}
		evErr = printEvent(cfg, cc.Out, ev)
	})

	in, closeIn, err := openInput(args)
	if err != nil {
		return err
	}
	defer closeIn()
	if err := langdiff.ParseInto(root, in, cfg.Chunk); err != nil {
		return err
	}
	return evErr
}

func runFilter(prg *vm.Program, ev node.Event) (bool, error) {
	res, err := expr.Run(prg, map[string]any{
		"type":  ev.Type,
		"path":  ev.Path.Pointer(),
		"index": ev.Index,
		"value": ev.Value,
	})
	if err != nil {
		return false, fmt.Errorf("filter expression: %w", err)
	}
	keep, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression returned %T, want bool", res)
	}
	return keep, nil
}

func printEvent(cfg *WatchConfig, w io.Writer, ev node.Event) error {
	colors := cfg.colors(w)
	label := ev.Type
	path := ev.Path.Pointer()
	if colors != nil {
		if ev.Type == "append" {
			label = colors.Add("%s", label)
		} else {
			label = colors.Replace("%s", label)
		}
		path = colors.Path("%s", path)
	}
	val, err := json.Marshal(ev.Value)
	if err != nil {
		val = []byte(fmt.Sprintf("%v", ev.Value))
	}
	_, err = fmt.Fprintf(w, "%s %s %s\n", label, path, val)
	return err
}

func openInput(args []string) (io.Reader, func() error, error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("could not open %q: %w", args[0], err)
	}
	return f, f.Close, nil
}
