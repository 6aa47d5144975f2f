// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/cmorin-dev/sicasm/pkg/assembler"
	"github.com/cmorin-dev/sicasm/pkg/listing"
	"github.com/cmorin-dev/sicasm/pkg/term"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "path to a TOML file overriding the default field widths and memory ceiling",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "write the resolved symbol table next to the object file as a '.sicsym' sidecar",
	}
	pageFlag = &cli.BoolFlag{
		Name:  "page",
		Usage: "page the listing output a screenful at a time instead of printing it whole",
	}
	outFlag = &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "base name for the intermediate/listing/object files (defaults to the configured file names, relative to the working directory)",
	}
)

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func loadConfig(ctx *cli.Context) (assembler.Config, error) {
	if path := ctx.String(configFlag.Name); path != "" {
		return assembler.LoadConfig(path)
	}
	return assembler.DefaultConfig(), nil
}

// applyOutBase rewrites the intermediate/listing/object paths in cfg to
// share the base name given by -out, if one was supplied.
func applyOutBase(cfg assembler.Config, base string) assembler.Config {
	if base == "" {
		return cfg
	}

	cfg.IntermediatePath = base + ".intermediate.txt"
	cfg.ListingPath = base + ".listing.txt"
	cfg.ObjectPath = base + ".obj"

	return cfg
}

func writeSymTableSidecar(objectPath string, sym assembler.SymTable) error {
	name := strings.TrimSuffix(objectPath, filepath.Ext(objectPath)) + ".sicsym"

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	return gob.NewEncoder(f).Encode(sym)
}

func showListing(cfg assembler.Config, page bool) error {
	f, err := os.Open(cfg.ListingPath)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	if page {
		return term.Page(scanner)
	}

	for scanner.Scan() {
		fmt.Println(scanner.Text())
	}
	return scanner.Err()
}

func runAssemble(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return cli.Exit("usage: sicasm assemble [options] <source file>", 1)
	}

	source := ctx.Args().First()
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(source)))

	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.Exit(err, 1)
	}
	cfg = applyOutBase(cfg, ctx.String(outFlag.Name))

	a := assembler.New(cfg)

	if err := a.Pass1(source); err != nil {
		log.Println(err)
		return cli.Exit(err, 1)
	}

	result, err := a.Pass2()
	if err != nil {
		log.Println(err)
		return cli.Exit(err, 1)
	}

	if ctx.Bool(debugFlag.Name) {
		sym := a.SymTable()
		if abs, err := filepath.Abs(source); err == nil {
			sym.Source = abs
		}

		if err := writeSymTableSidecar(cfg.ObjectPath, sym); err != nil {
			log.Println("failed to write symbol table sidecar:", err)
		}
	}

	listing.PrintSummary(result)

	if err := showListing(cfg, ctx.Bool(pageFlag.Name)); err != nil {
		log.Println(err)
	}

	if result.AnyErrors {
		return cli.Exit("", 1)
	}
	return nil
}

func runPass1(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return cli.Exit("usage: sicasm pass1 [options] <source file>", 1)
	}

	source := ctx.Args().First()
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(source)))

	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.Exit(err, 1)
	}
	cfg = applyOutBase(cfg, ctx.String(outFlag.Name))

	a := assembler.New(cfg)

	if err := a.Pass1(source); err != nil {
		log.Println(err)
		return cli.Exit(err, 1)
	}

	fmt.Printf("wrote %s\n", cfg.IntermediatePath)
	return nil
}

func runPass2(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.Exit(err, 1)
	}
	cfg = applyOutBase(cfg, ctx.String(outFlag.Name))

	a := assembler.New(cfg)

	if err := a.PrepareResume(cfg.IntermediatePath); err != nil {
		log.Println(err)
		return cli.Exit(err, 1)
	}

	result, err := a.Pass2()
	if err != nil {
		log.Println(err)
		return cli.Exit(err, 1)
	}

	listing.PrintSummary(result)

	if err := showListing(cfg, ctx.Bool(pageFlag.Name)); err != nil {
		log.Println(err)
	}

	if result.AnyErrors {
		return cli.Exit("", 1)
	}
	return nil
}

func runSymTable(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return cli.Exit("usage: sicasm symtable [options] <source file>", 1)
	}

	source := ctx.Args().First()
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(source)))

	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.Exit(err, 1)
	}
	cfg = applyOutBase(cfg, ctx.String(outFlag.Name))

	a := assembler.New(cfg)

	if err := a.Pass1(source); err != nil {
		log.Println(err)
		return cli.Exit(err, 1)
	}

	listing.PrintSymbolTable(a.SymTable())
	return nil
}

func main() {
	app := &cli.App{
		Name:  "sicasm",
		Usage: "a two-pass assembler for the Simplified Instructional Computer (SIC)",
		Commands: []*cli.Command{
			{
				Name:      "assemble",
				Usage:     "run pass 1 and pass 2, producing an object program",
				ArgsUsage: "<source file>",
				Flags:     []cli.Flag{configFlag, debugFlag, pageFlag, outFlag},
				Action:    runAssemble,
			},
			{
				Name:      "pass1",
				Usage:     "run pass 1 only, producing the intermediate file",
				ArgsUsage: "<source file>",
				Flags:     []cli.Flag{configFlag, outFlag},
				Action:    runPass1,
			},
			{
				Name:   "pass2",
				Usage:  "resume from an existing intermediate file and run pass 2",
				Flags:  []cli.Flag{configFlag, pageFlag, outFlag},
				Action: runPass2,
			},
			{
				Name:      "symtable",
				Usage:     "run pass 1 and print the resulting symbol table",
				ArgsUsage: "<source file>",
				Flags:     []cli.Flag{configFlag, outFlag},
				Action:    runSymTable,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
