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

package assembler

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cmorin-dev/sicasm/pkg/encoding"
)

// Pass1 reads the assembly source at path, writes the intermediate file,
// and populates the symbol table, starting address, and program length
// on the Assembler. It must run before Pass2 on the same instance, or be
// recovered via PrepareResume on a fresh one.
func (a *Assembler) Pass1(path string) error {
	source, err := os.Open(path)
	if err != nil {
		return &SourceError{Path: path, Err: err}
	}
	defer source.Close()

	intermediate, err := os.Create(a.config.IntermediatePath)
	if err != nil {
		return &SourceError{Path: a.config.IntermediatePath, Err: err}
	}
	defer intermediate.Close()

	a.symtable = SymTable{Symbols: make(map[string]int)}
	a.locctr = 0
	a.startingAddress = 0
	a.programLength = 0

	scanner := bufio.NewScanner(source)
	writer := bufio.NewWriter(intermediate)
	defer writer.Flush()

	startFound := false

	for scanner.Scan() {
		rawLine := scanner.Text()
		if rawLine == "" {
			continue
		}

		if rawLine[0] == '.' {
			continue
		}

		line := strings.ToUpper(rawLine)

		label, mnemonic, operand := getColumns(line)

		if label == "" && mnemonic == "" && operand == "" {
			continue
		}

		d := &diagnostics{}

		if mnemonic == "START" {
			a.pass1Start(writer, rawLine, label, operand, d, &startFound)
			continue
		}

		if !startFound {
			a.locctr, a.startingAddress = 0, 0
			startFound = true
		}

		if mnemonic != "BYTE" && mnemonic != "WORD" && mnemonic != "RESW" && mnemonic != "RESB" {
			if !isValidOperand(operand, d) {
				d.add("0001")
			}
		}

		if mnemonic == "END" {
			a.pass1End(writer, rawLine, operand, d)
			break
		}

		a.pass1Instruction(writer, rawLine, label, mnemonic, operand, d)
	}

	writer.Flush()
	return a.saveSymbolSidecar()
}

// saveSymbolSidecar persists the symbol table next to the intermediate
// file, gob-encoded, so a later standalone Pass2 call (possibly in a
// different process, via cmd/sicasm's "pass2" command) can resolve
// symbols without rerunning Pass1. This mirrors the teacher's ".lc3db"
// debug sidecar, but is internal plumbing rather than a user-facing flag.
func (a *Assembler) saveSymbolSidecar() error {
	f, err := os.Create(a.config.IntermediatePath + ".sym")
	if err != nil {
		return &SourceError{Path: a.config.IntermediatePath + ".sym", Err: err}
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(a.symtable); err != nil {
		return &SourceError{Path: a.config.IntermediatePath + ".sym", Err: err}
	}

	return nil
}

func (a *Assembler) pass1Start(w *bufio.Writer, rawLine, label, operand string, d *diagnostics, startFound *bool) {
	if *startFound {
		d.add("0015")
	}
	*startFound = true

	if label != "" {
		if !isValidSymbol(label, d) {
			d.add("0004")
		}
	}

	value, err := strconv.ParseInt(operand, 16, 64)
	if operand == "" || err != nil {
		a.locctr, a.startingAddress = 0, 0
		d.add("0001")
	} else {
		a.locctr = int(value)
		a.startingAddress = int(value)
	}

	writeBlock(w, rawLine, "START", a.locctr, operand, d.String())
}

func (a *Assembler) pass1End(w *bufio.Writer, rawLine, operand string, d *diagnostics) {
	if !isValidSymbol(operand, d) && !isHexLiteral(operand) {
		d.add("0017")
	}

	writeBlock(w, rawLine, "END", a.locctr, operand, d.String())

	a.programLength = a.locctr - a.startingAddress
}

func (a *Assembler) pass1Instruction(w *bufio.Writer, rawLine, label, mnemonic, operand string, d *diagnostics) {
	if label != "" {
		if _, exists := a.symtable.Symbols[label]; exists {
			d.add("0002")
		} else {
			if !isValidSymbol(label, d) {
				d.add("0004")
			}
			a.symtable.Symbols[label] = a.locctr
		}
	}

	var increment int

	switch parseDirective(mnemonic) {
	case DIRECTIVE_WORD:
		if _, err := encoding.DecodeInt(operand); err != nil {
			d.add("0001")
		}
		increment = 3

	case DIRECTIVE_RESW:
		n, err := encoding.DecodeInt(operand)
		if err != nil {
			d.add("0001")
		} else {
			increment = 3 * n
		}

	case DIRECTIVE_RESB:
		n, err := encoding.DecodeInt(operand)
		if err != nil {
			d.add("0001")
		} else {
			increment = n
		}

	case DIRECTIVE_BYTE:
		length := byteConstantLength(operand, d)
		if length == -1 {
			d.add("0001")
		} else {
			increment = length
		}

	default:
		if opcode, ok := opcodeTable[mnemonic]; ok {
			increment = 3
			mnemonic = fmt.Sprintf("%02x", opcode)
		} else {
			d.add("0003")
		}
	}

	writeBlock(w, rawLine, mnemonic, a.locctr, operand, d.String())

	a.locctr += increment
}

func writeBlock(w *bufio.Writer, source, mnemonic string, address int, operand, errs string) {
	fmt.Fprintln(w, source)
	fmt.Fprintln(w, mnemonic)
	fmt.Fprintln(w, strconv.FormatInt(int64(address), 16))
	fmt.Fprintln(w, operand)
	fmt.Fprintln(w, errs)
}
