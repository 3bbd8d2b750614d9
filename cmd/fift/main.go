// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Command fift is a driver for internal/fift: it feeds one or more
// source files (or stdin, in interactive mode) to a Fift Context and
// reports the exit code, the same role crypto/fift/Fift.cpp's CLI
// plays for the original interpreter.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ton-blockchain/ton-sub013/internal/fift"
)

func main() {
	app := &cli.App{
		Name:      "fift",
		Usage:     "Fift script interpreter",
		ArgsUsage: "[file ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "exec",
				Aliases: []string{"e"},
				Usage:   "execute the given snippet before reading any file",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "drop into an interactive loop reading stdin after the given files",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "seed for the dictionary treap priorities and the `random` word",
				Value: time.Now().UnixNano(),
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	var sources []string
	if snippet := c.String("exec"); snippet != "" {
		sources = append(sources, snippet)
	}
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		sources = append(sources, string(data))
	}
	if c.Bool("interactive") || len(sources) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		sources = append(sources, string(data))
	}

	ctx := fift.NewContext(strings.NewReader(strings.Join(sources, "\n")), "stdin", os.Stdout, os.Stderr, c.Int64("seed"))
	ctx.Now = func() int64 { return time.Now().Unix() }

	code := fift.Interpret(ctx)
	if code != 0 {
		return cli.Exit("", code)
	}
	return nil
}
