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

// DirectiveType enumerates the six SIC assembler directives recognized
// outside of the fixed instruction set.
type DirectiveType uint

const (
	DIRECTIVE_NONE DirectiveType = iota
	DIRECTIVE_START
	DIRECTIVE_END
	DIRECTIVE_BYTE
	DIRECTIVE_WORD
	DIRECTIVE_RESB
	DIRECTIVE_RESW
)

func parseDirective(mnemonic string) DirectiveType {
	switch mnemonic {
	case "START":
		return DIRECTIVE_START
	case "END":
		return DIRECTIVE_END
	case "BYTE":
		return DIRECTIVE_BYTE
	case "WORD":
		return DIRECTIVE_WORD
	case "RESB":
		return DIRECTIVE_RESB
	case "RESW":
		return DIRECTIVE_RESW
	}

	return DIRECTIVE_NONE
}

// opcodeTable is the static mnemonic to one-byte-opcode map for the
// original SIC instruction set. 25 entries, per spec.
var opcodeTable = map[string]byte{
	"ADD":  0x18,
	"AND":  0x58,
	"COMP": 0x28,
	"DIV":  0x24,
	"J":    0x3C,
	"JEQ":  0x30,
	"JGT":  0x34,
	"JLT":  0x38,
	"JSUB": 0x48,
	"LDA":  0x00,
	"LDCH": 0x50,
	"LDL":  0x08,
	"LDX":  0x04,
	"MUL":  0x20,
	"OR":   0x44,
	"RD":   0xD8,
	"RSUB": 0x4C,
	"STA":  0x0C,
	"STCH": 0x54,
	"STL":  0x14,
	"STX":  0x10,
	"SUB":  0x1C,
	"TD":   0xE0,
	"TIX":  0x2C,
	"WD":   0xDC,
}

// rsubOpcode is RSUB's opcode value, used to detect the zero-operand
// RSUB special case in createObjectCode.
const rsubOpcode = 0x4C

// errorMessages is the 17-entry error-code registry from spec.md §6.
var errorMessages = map[string]string{
	"0001": "Invalid Operand",
	"0002": "Duplicate Symbol",
	"0003": "Invalid Opcode",
	"0004": "Invalid Symbol",
	"0005": "Missing Quotes",
	"0006": "Odd number of hex digits",
	"0007": "String too long",
	"0008": "Hex too long",
	"0009": "Specifier must be C or X",
	"0010": "Symbol too long",
	"0011": "Symbol starts with a non-letter character",
	"0012": "Symbol contains non-alphanumeric characters",
	"0013": "Operand contains non-alphanumeric characters",
	"0014": "Missing START operand",
	"0015": "Misplaced/Duplicate START",
	"0016": "Illegal START Operand",
	"0017": "Illegal END operand",
}

const errorCodeSize = 4

// Default field widths and limits, overridable via Config (pkg/assembler/config.go).
const (
	defaultAddressPadding    = 4
	defaultObjectCodePadding = 8
	defaultNamePadding       = 6
	defaultSizePadding       = 2
	defaultTextRecordLimit   = 60 // hex characters; 30 bytes
	defaultMemoryLimit       = 32768

	defaultIntermediatePath = "intermediate.txt"
	defaultListingPath      = "listing.txt"
	defaultObjectPath       = "object.txt"
)
