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

// Package listing renders cmd/sicasm's terminal-facing output: a richer
// symbol-table dump and a post-assembly run summary. pkg/assembler keeps
// the plain forms of both (DisplaySymbolTable, the Result struct); this
// package is purely presentation, built on the CLI/presentation libraries
// the wider example pack reaches for instead of raw fmt.Println.
package listing

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/cmorin-dev/sicasm/pkg/assembler"
)

// PrintSymbolTable renders sym as an aligned, sorted table to stdout.
func PrintSymbolTable(sym assembler.SymTable) {
	names := make([]string, 0, len(sym.Symbols))
	for name := range sym.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Symbol", "Address"})
	table.SetAutoFormatHeaders(false)

	for _, name := range names {
		table.Append([]string{name, fmt.Sprintf("%04X", sym.Symbols[name])})
	}

	table.Render()
}

// PrintSummary prints a one-screen recap of a Pass2 run: program name,
// start address, length, and number of lines read, colored green on a clean
// build and red when any line reported an error. This closes the gap
// where the original pass2 returned nothing for a caller to report.
func PrintSummary(result assembler.Result) {
	bold := color.New(color.Bold)

	bold.Println("Assembly summary")
	fmt.Printf("  Program:     %s\n", result.ProgramName)
	fmt.Printf("  Start addr:  %04X\n", result.StartAddress)
	fmt.Printf("  Length:      %d bytes\n", result.ProgramLength)
	fmt.Printf("  Lines read:  %d\n", result.LineCount)

	switch {
	case result.MissingEnd:
		color.New(color.FgRed, color.Bold).Println("  Result:      FAILED (missing END directive)")
	case result.OverCapacity:
		color.New(color.FgRed, color.Bold).Println("  Result:      FAILED (program exceeds memory capacity)")
	case result.AnyErrors:
		color.New(color.FgRed, color.Bold).Println("  Result:      FAILED (errors reported, object file not written)")
	default:
		color.New(color.FgGreen, color.Bold).Println("  Result:      OK")
	}
}
