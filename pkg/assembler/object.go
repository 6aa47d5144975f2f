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
	"strconv"
	"strings"

	"github.com/cmorin-dev/sicasm/pkg/encoding"
)

// createObjectCode renders the object code for one pass-2 block, per
// spec.md §4.3. mnemonic is either a two-hex-digit opcode string (an
// instruction) or a directive name (BYTE/WORD/RESB/RESW).
func createObjectCode(mnemonic, operand string, symtable SymTable) string {
	switch mnemonic {
	case "RESB", "RESW":
		return ""

	case "BYTE":
		specifier, inner := byteOperandPayload(operand)

		var b strings.Builder
		switch specifier {
		case 'C':
			for i := 0; i < len(inner); i++ {
				// Reproduces the original's unpadded hex formatter: a
				// character byte below 16 renders as a single hex digit,
				// per spec.md §9's "faithful" open-question resolution.
				fmt.Fprintf(&b, "%x", inner[i])
			}
		case 'X':
			b.WriteString(inner)
		}
		return b.String()

	case "WORD":
		value, _ := encoding.DecodeInt(operand)
		return fmt.Sprintf("%06x", value)
	}

	indexed := isIndexedOperand(operand)
	bareOperand := stripIndex(operand)

	if isHexLiteral(bareOperand) {
		addr, _ := encoding.DecodeHex(bareOperand)
		return fmt.Sprintf("%s%04x", mnemonic, addr)
	}

	if addr, ok := symtable.Symbols[bareOperand]; ok {
		if indexed {
			addr |= 1 << 15
		}
		return fmt.Sprintf("%s%04x", mnemonic, addr)
	}

	if opcode, err := strconv.ParseInt(mnemonic, 16, 64); err == nil && opcode == rsubOpcode {
		return fmt.Sprintf("%s0000", mnemonic)
	}

	return ""
}

// textRecord accumulates object-code bytes for one T record, enforcing
// the 60-hex-character (30-byte) payload ceiling of spec.md §4.4.
type textRecord struct {
	limit        int
	address      int
	buffer       strings.Builder
	makeNewOnHit bool
}

func (r *textRecord) start(address int) {
	r.address = address
	r.buffer.Reset()
}

// add applies the text-record packing protocol from spec.md §4.4 for one
// block's already-computed object code.
func (r *textRecord) add(w *bufio.Writer, cfg Config, address int, objectCode string) {
	if r.makeNewOnHit && objectCode != "" {
		r.start(address)
		r.makeNewOnHit = false
	}

	if objectCode == "" || r.buffer.Len()+len(objectCode) > r.limit {
		if r.buffer.Len() != 0 {
			r.flush(w, cfg)

			if objectCode != "" {
				r.start(address)
			} else {
				r.makeNewOnHit = true
			}
		}
	}

	if objectCode != "" {
		r.buffer.WriteString(objectCode)
	}
}

// flush finalizes the current text record, writing it to w if non-empty.
func (r *textRecord) flush(w *bufio.Writer, cfg Config) {
	if r.buffer.Len() == 0 {
		return
	}

	payload := strings.ToUpper(r.buffer.String())

	fmt.Fprintf(w, "T%0*X%0*X%s\n", cfg.NamePadding, r.address, cfg.SizePadding, len(payload)/2, payload)

	r.buffer.Reset()
}

func writeHeaderRecord(w *bufio.Writer, cfg Config, name string, address, length int) {
	if len(name) > cfg.NamePadding {
		name = name[:cfg.NamePadding]
	}

	fmt.Fprintf(w, "H%-*s%0*X%0*X\n", cfg.NamePadding, name, cfg.NamePadding, address, cfg.NamePadding, length)
}

func writeEndRecord(w *bufio.Writer, cfg Config, entry int) {
	fmt.Fprintf(w, "E%0*X\n", cfg.NamePadding, entry)
}

func writeListingRow(w *bufio.Writer, cfg Config, addr, objectCode, source, errs string) {
	addrField := strings.ToUpper(addr)
	fill := byte('0')
	if addrField == "" {
		fill = ' '
	}

	fmt.Fprintf(w, "%s %s %s%s\n",
		padLeft(addrField, cfg.AddressPadding, fill),
		padRight(objectCode, cfg.ObjectCodePadding, ' '),
		source,
		formatErrors(errs),
	)
}

func padLeft(s string, width int, fill byte) string {
	if len(s) >= width {
		return s
	}

	return strings.Repeat(string(fill), width-len(s)) + s
}

func padRight(s string, width int, fill byte) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(string(fill), width-len(s))
}

// formatErrors renders the concatenated 4-digit error-code string as the
// "[Errors: msg, msg, ...]" suffix from spec.md §6. Unrecognized codes
// surface a defensive "Unknown error reported" message per spec.md §7.
func formatErrors(codes string) string {
	if codes == "" {
		return ""
	}

	var messages []string

	for i := 0; i+errorCodeSize <= len(codes); i += errorCodeSize {
		code := codes[i : i+errorCodeSize]

		if msg, ok := errorMessages[code]; ok {
			messages = append(messages, msg)
		} else {
			messages = append(messages, "Unknown error reported. Something went wrong in the intermediate file.")
		}
	}

	return " Errors: " + strings.Join(messages, ", ")
}
