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
	"fmt"
	"strings"
)

// SymTable maps a symbol name to the address it was defined at. It is
// kept alive across pass 1 and pass 2 on the same Assembler instance,
// and is also the sidecar payload a debugger/loader can gob-decode
// (cmd/sicasm's -debug flag) to resolve addresses back to names.
type SymTable struct {
	Source  string
	Symbols map[string]int
}

// diagnostics accumulates the per-line 4-digit error codes that spec.md
// §3 calls the "error code" column of an intermediate block. Codes are
// never thrown; they are data, concatenated in detection order.
type diagnostics struct {
	codes strings.Builder
}

func (d *diagnostics) add(code string) {
	d.codes.WriteString(code)
}

func (d *diagnostics) String() string {
	return d.codes.String()
}

func (d *diagnostics) empty() bool {
	return d.codes.Len() == 0
}

// block is the in-memory form of one intermediate-file record: the five
// lines spec.md §3 specifies, plus enough parsed state for pass 2 to
// avoid re-lexing. Mnemonic holds the two-hex-digit opcode string for
// instruction lines, or the directive name for directive lines.
type block struct {
	Source   string
	Mnemonic string
	Address  int
	Operand  string
	Errors   string
}

// SourceError reports that pass 1 could not open or read the source file.
// This is an I/O-severity failure per spec.md §7: printed, not accumulated.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("failed to load specified file %q: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// IntermediateError reports that pass 2 could not open or read the
// intermediate file pass 1 is supposed to have produced.
type IntermediateError struct {
	Path string
	Err  error
}

func (e *IntermediateError) Error() string {
	return fmt.Sprintf("failed to load the intermediate file %q: %v", e.Path, e.Err)
}

func (e *IntermediateError) Unwrap() error {
	return e.Err
}

// Result summarizes what pass2 did, so a caller doesn't need to re-read
// the listing file to learn whether the object file was kept.
type Result struct {
	ProgramName   string
	StartAddress  int
	ProgramLength int
	LineCount     int
	AnyErrors     bool
	ObjectWritten bool
	MissingEnd    bool
	OverCapacity  bool
}
