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
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Pass2 consumes the intermediate file Pass1 produced and writes the
// listing file and, unless any error was observed, the object file.
func (a *Assembler) Pass2() (Result, error) {
	intermediate, err := os.Open(a.config.IntermediatePath)
	if err != nil {
		return Result{}, &IntermediateError{Path: a.config.IntermediatePath, Err: err}
	}
	defer intermediate.Close()

	listing, err := os.Create(a.config.ListingPath)
	if err != nil {
		return Result{}, &IntermediateError{Path: a.config.ListingPath, Err: err}
	}
	defer listing.Close()

	object, err := os.Create(a.config.ObjectPath)
	if err != nil {
		return Result{}, &IntermediateError{Path: a.config.ObjectPath, Err: err}
	}

	lw := bufio.NewWriter(listing)
	ow := bufio.NewWriter(object)

	rec := &textRecord{limit: a.config.TextRecordLimit}

	var result Result
	startSet := false

	scanner := bufio.NewScanner(intermediate)

	for {
		blk, ok := readBlock(scanner)
		if !ok {
			break
		}

		result.LineCount++

		if blk.Errors != "" {
			result.AnyErrors = true
		}

		switch blk.Mnemonic {
		case "START":
			writeListingRow(lw, a.config, formatAddr(blk.Address, true), "", blk.Source, blk.Errors)

			if !startSet {
				result.ProgramName = programName(blk.Source)
				result.StartAddress = blk.Address
				writeHeaderRecord(ow, a.config, result.ProgramName, blk.Address, a.programLength)
				rec.start(blk.Address)
				startSet = true
			}

		case "END":
			if !startSet {
				result.ProgramName = "NONAME"
				writeHeaderRecord(ow, a.config, "NONAME", 0, a.programLength)
				rec.start(blk.Address)
				startSet = true
			}

			rec.flush(ow, a.config)

			writeListingRow(lw, a.config, formatAddr(0, false), "", blk.Source, blk.Errors)
			writeEndRecord(ow, a.config, a.startingAddress)

			result.MissingEnd = false
			result.ProgramLength = a.programLength
			goto done

		default:
			if !startSet {
				result.ProgramName = "NONAME"
				writeHeaderRecord(ow, a.config, "NONAME", 0, a.programLength)
				rec.start(blk.Address)
				startSet = true
			}

			objectCode := "------"
			if blk.Errors == "" {
				objectCode = createObjectCode(blk.Mnemonic, blk.Operand, a.symtable)
			}

			writeListingRow(lw, a.config, formatAddr(blk.Address, true), strings.ToUpper(objectCode), blk.Source, blk.Errors)

			if blk.Errors != "" {
				objectCode = ""
			}

			rec.add(ow, a.config, blk.Address, objectCode)
		}
	}

	result.MissingEnd = true
	result.AnyErrors = true
	fmt.Fprintln(lw, "Error: Missing END directive")

done:
	if a.locctr > a.config.MemoryLimit {
		result.OverCapacity = true
		result.AnyErrors = true
		fmt.Fprintf(lw, "\nFATAL ERROR\nProgram exceeds maximum memory capacity of %d bytes\n", a.config.MemoryLimit)
		fmt.Fprintf(lw, " Last program address is: %d\n", a.locctr)
	}

	lw.Flush()
	ow.Flush()
	object.Close()

	if result.AnyErrors {
		os.Remove(a.config.ObjectPath)
		result.ObjectWritten = false
	} else {
		result.ObjectWritten = true
	}

	return result, nil
}

// readBlock reads one five-line intermediate block. ok is false at EOF.
func readBlock(scanner *bufio.Scanner) (block, bool) {
	var blk block

	if !scanner.Scan() {
		return blk, false
	}
	blk.Source = scanner.Text()

	scanner.Scan()
	blk.Mnemonic = scanner.Text()

	scanner.Scan()
	addr, _ := strconv.ParseInt(scanner.Text(), 16, 64)
	blk.Address = int(addr)

	scanner.Scan()
	blk.Operand = scanner.Text()

	scanner.Scan()
	blk.Errors = scanner.Text()

	return blk, true
}

// programName extracts the label token (the leading non-space run) of
// a source line, used as the program name on the header record.
func programName(source string) string {
	if i := strings.IndexAny(source, " \t"); i >= 0 {
		return source[:i]
	}

	return source
}

func formatAddr(addr int, present bool) string {
	if !present {
		return ""
	}

	return strconv.FormatInt(int64(addr), 16)
}
