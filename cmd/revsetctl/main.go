// Copyright 2015 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-ethereum.  If not, see <http://www.gnu.org/licenses/>.

// Command revsetctl runs revset-algebra queries against a JSON-encoded
// repository snapshot from the command line, the way geth's own
// subcommands each wrap one focused piece of node functionality.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	rlog "github.com/revsetgraph/core/log"
	"github.com/revsetgraph/core/revset"
)

func main() {
	app := &cli.App{
		Name:  "revsetctl",
		Usage: "query the revision-set algebra over a repository snapshot",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a TOML config file", EnvVars: []string{"REVSETCTL_CONFIG"}},
			&cli.StringFlag{Name: "repo", Usage: "path to a JSON repository snapshot", Required: true},
			&cli.IntFlag{Name: "cache-size", Value: 1024, Usage: "generation cache capacity"},
			&cli.BoolFlag{Name: "verbose", Usage: "enable debug logging"},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelInfo
			if c.Bool("verbose") {
				level = slog.LevelDebug
			}
			rlog.SetRoot(rlog.NewTerminal(os.Stderr, level))
			return nil
		},
		Commands: []*cli.Command{
			rangeCommand(),
			unionCommand(),
			ancestorsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "revsetctl:", err)
		os.Exit(1)
	}
}

func rangeCommand() *cli.Command {
	return &cli.Command{
		Name:      "range",
		Usage:     "list every node on a path between two hashes",
		ArgsUsage: "<start> <end>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 2 {
				return cli.Exit("range requires exactly two hash arguments", 1)
			}
			env, err := loadEnv(c)
			if err != nil {
				return err
			}
			start, end, err := parsePair(c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				return err
			}
			return printAll(env, revset.NewRange(env.repo, env.cache, start, end))
		},
	}
}

func unionCommand() *cli.Command {
	return &cli.Command{
		Name:      "union",
		Usage:     "list the deduplicated union of one or more hashes",
		ArgsUsage: "<hash> [hash...]",
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 1 {
				return cli.Exit("union requires at least one hash argument", 1)
			}
			env, err := loadEnv(c)
			if err != nil {
				return err
			}
			inputs := make([]revset.NodeStream, c.Args().Len())
			for i := 0; i < c.Args().Len(); i++ {
				h, err := parseHash(c.Args().Get(i))
				if err != nil {
					return err
				}
				inputs[i] = revset.NewSingleNodeHash(env.repo, h)
			}
			return printAll(env, revset.NewUnion(env.repo, env.cache, inputs...))
		},
	}
}

func ancestorsCommand() *cli.Command {
	return &cli.Command{
		Name:      "ancestors",
		Usage:     "list every proper ancestor of a hash",
		ArgsUsage: "<hash>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return cli.Exit("ancestors requires exactly one hash argument", 1)
			}
			env, err := loadEnv(c)
			if err != nil {
				return err
			}
			h, err := parseHash(c.Args().Get(0))
			if err != nil {
				return err
			}
			return printAll(env, revset.NewAncestors(env.repo, env.cache, h))
		},
	}
}

func printAll(env *env, s revset.NodeStream) error {
	ctx := context.Background()
	for {
		h, ok, err := s.Next(ctx)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if !ok {
			return nil
		}
		fmt.Println(h.Hex())
	}
}
