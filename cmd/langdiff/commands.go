package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommandAt(&cfg.Main, "langdiff").
		WithSynopsis("langdiff [opts] command [opts]").
		WithDescription("langdiff streams structured text into typed events and patches.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return langdiffMain(cfg, cc, args)
		}).
		WithSubs(
			WatchCommand(cfg),
			DiffCommand(cfg),
			ApplyCommand(cfg))
	return cmd
}

func langdiffMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func WatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WatchConfig{MainConfig: mainCfg, Chunk: 64}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "e",
			Description: "event filter expression over {type, path, index, value}",
			Type:        cli.NamedFuncOpt(stringOpt(&cfg.Expr), "(expr)"),
		},
		&cli.Opt{
			Name:        "chunk",
			Description: "fragment size in bytes (default 64)",
			Type:        cli.NamedFuncOpt(intOpt(&cfg.Chunk), "(bytes)"),
		})
	cmd := cli.NewCommand("watch").
		WithAliases("w").
		WithSynopsis("watch -schema file [-chunk n] [-e expr] [file]").
		WithDescription("stream a document through a schema, printing value events").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return watch(cfg, cc, args)
		})
	cfg.Watch = cmd
	return cmd
}

func stringOpt(dst *string) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		*dst = v
		return v, nil
	})
}

func intOpt(dst *int) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", cli.ErrUsage, err)
		}
		*dst = n
		return n, nil
	})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff <before> <after>").
		WithDescription("compute the patch transforming one document into another").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("apply").
		WithAliases("a").
		WithSynopsis("apply <doc> <patch>").
		WithDescription("apply an RFC 6902 patch file to a document").
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
	cfg.Apply = cmd
	return cmd
}
