// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Command tvmrun loads a hex-encoded code cell and an optional stack of
// integer arguments, runs it through internal/tvm, and reports the
// exit code, gas consumed, and resulting stack — a minimal standalone
// driver for the engine the way crypto/fift's `runvmx` word exercises
// it from inside Fift, but invokable directly from a shell.
package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"

	"github.com/ton-blockchain/ton-sub013/internal/cellstore"
	"github.com/ton-blockchain/ton-sub013/internal/stack"
	"github.com/ton-blockchain/ton-sub013/internal/tvm"
)

func main() {
	app := &cli.App{
		Name:      "tvmrun",
		Usage:     "run a TVM code cell standalone",
		ArgsUsage: "<hex code>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "stack",
				Usage: "comma-separated decimal integers pushed onto the initial stack, bottom first",
			},
			&cli.Int64Flag{
				Name:  "gas-limit",
				Usage: "gas limit for the run",
				Value: 1_000_000,
			},
			&cli.Int64Flag{
				Name:  "gas-max",
				Usage: "hard gas ceiling (defaults to gas-limit)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "print DEBUG/DUMP* opcode output to stderr",
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
	if c.Args().Len() < 1 {
		return cli.Exit("missing <hex code> argument", 2)
	}

	codeBytes, err := hex.DecodeString(strings.TrimSpace(c.Args().Get(0)))
	if err != nil {
		return fmt.Errorf("decoding code: %w", err)
	}
	b := cellstore.NewBuilder()
	if err := b.StoreBytes(codeBytes); err != nil {
		return fmt.Errorf("building code cell: %w", err)
	}
	codeCell, err := b.Finalize(false)
	if err != nil {
		return err
	}

	gasMax := c.Int64("gas-max")
	if gasMax <= 0 {
		gasMax = c.Int64("gas-limit")
	}

	var debugOut func(string)
	if c.Bool("debug") {
		debugOut = func(s string) { fmt.Fprintln(os.Stderr, s) }
	}

	c7, err := stack.NewTuple(nil)
	if err != nil {
		return err
	}

	vm := tvm.New(tvm.Config{
		Version:  4,
		GasLimit: c.Int64("gas-limit"),
		GasMax:   gasMax,
		C7:       c7,
		DebugOut: debugOut,
	})

	for _, v := range parseStackArg(c.String("stack")) {
		vm.Stack().Push(v)
	}

	start := time.Now()
	exitCode := vm.Execute(cellstore.NewSlice(codeCell))
	elapsed := time.Since(start)

	fmt.Printf("exit code: %d\n", exitCode)
	fmt.Printf("gas used: %d (%s/s)\n", vm.Gas().Consumed(),
		unitconv.FormatPrefix(float64(vm.Gas().Consumed())/elapsed.Seconds(), unitconv.SI, 1))
	fmt.Print("stack:")
	for i := vm.Stack().Depth() - 1; i >= 0; i-- {
		v, err := vm.Stack().At(i)
		if err != nil {
			return err
		}
		fmt.Printf(" %s", v)
	}
	fmt.Println()

	if exitCode != 0 {
		return cli.Exit("", exitCode)
	}
	return nil
}

func parseStackArg(s string) []stack.Value {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]stack.Value, 0, len(parts))
	for _, p := range parts {
		n, ok := new(big.Int).SetString(strings.TrimSpace(p), 10)
		if !ok {
			continue
		}
		out = append(out, stack.FromBig(n))
	}
	return out
}
