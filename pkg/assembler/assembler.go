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

// Package assembler implements a two-pass assembler for the SIC
// (Simplified Instructional Computer) architecture: pass 1 analyzes
// source into an intermediate file and symbol table, pass 2 replays the
// intermediate file into a listing and object program.
package assembler

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"os"
	"sort"
)

// Assembler holds the tables, configuration, and state shared between
// Pass1 and Pass2. The zero value is not ready to use; call New.
type Assembler struct {
	config Config

	symtable        SymTable
	locctr          int
	startingAddress int
	programLength   int
}

// New creates an Assembler with empty state, ready for Pass1.
func New(cfg Config) *Assembler {
	return &Assembler{config: cfg}
}

// SymTable returns the symbol table populated by the most recent Pass1.
func (a *Assembler) SymTable() SymTable {
	return a.symtable
}

// PrepareResume recovers the state a fresh Assembler needs to run Pass2
// without having run Pass1 itself in this process: it rescans the
// intermediate file at path for its START/END blocks to recover the
// starting address and program length, and loads the symbol table from
// the ".sym" sidecar Pass1 wrote alongside it. cmd/sicasm's standalone
// "pass2" command uses this to resume across process invocations.
func (a *Assembler) PrepareResume(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &IntermediateError{Path: path, Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	for {
		blk, ok := readBlock(scanner)
		if !ok {
			break
		}

		switch blk.Mnemonic {
		case "START":
			a.startingAddress = blk.Address
			a.locctr = blk.Address
		case "END":
			a.locctr = blk.Address
			a.programLength = blk.Address - a.startingAddress
		}
	}

	symPath := path + ".sym"

	sf, err := os.Open(symPath)
	if err != nil {
		return &IntermediateError{Path: symPath, Err: err}
	}
	defer sf.Close()

	return gob.NewDecoder(sf).Decode(&a.symtable)
}

// DisplaySymbolTable prints the symbol table to standard output, per
// spec.md §6. This is deliberately the plain form; cmd/sicasm's
// "symtable" command uses pkg/listing for a richer presentation.
func (a *Assembler) DisplaySymbolTable() {
	fmt.Println("Symbol Table: ")

	names := make([]string, 0, len(a.symtable.Symbols))
	for name := range a.symtable.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s\t%d\n", name, a.symtable.Symbols[name])
	}
}
