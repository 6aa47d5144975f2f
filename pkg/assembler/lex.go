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
	"strings"
	"unicode"
)

// getColumns splits an already upper-cased source line into its label,
// mnemonic, and operand columns. Columns are whitespace-separated; a
// leading delimiter means the label column is empty. Anything past the
// third field (the comment) is discarded. Unlike the container this was
// ported from, the field count here is fixed at three by construction,
// so there is no capacity-dependent padding to get wrong.
func getColumns(line string) (label, mnemonic, operand string) {
	if line == "" {
		return "", "", ""
	}

	hasLeadingDelim := isColumnDelim(rune(line[0]))

	fields := strings.FieldsFunc(line, isColumnDelim)

	if hasLeadingDelim {
		fields = append([]string{""}, fields...)
	}

	for len(fields) < 3 {
		fields = append(fields, "")
	}

	return fields[0], fields[1], fields[2]
}

func isColumnDelim(r rune) bool {
	return r == ' ' || r == '\t'
}

// isValidSymbol checks the 1-6 character, letter-first, alphanumeric
// symbol shape from spec.md §3, emitting the matching error code into d.
func isValidSymbol(src string, d *diagnostics) bool {
	if len(src) > 6 {
		d.add("0010")
		return false
	}

	if len(src) == 0 || !unicode.IsLetter(rune(src[0])) || src[0] > unicode.MaxASCII {
		d.add("0011")
		return false
	}

	for i := 1; i < len(src); i++ {
		if !isAlphaNumericASCII(rune(src[i])) {
			d.add("0012")
			return false
		}
	}

	return true
}

// isValidOperand validates an instruction operand shape: a symbol name,
// a hex literal (leading '0', all hex digits), or either suffixed with
// ",X" for indexed addressing. BYTE operands are validated separately
// by byteConstantLength.
func isValidOperand(src string, d *diagnostics) bool {
	if src == "" {
		return false
	}

	if src[0] == '0' {
		if !isHexLiteral(stripIndex(src)) {
			return false
		}
	}

	if len(src) >= 3 {
		last := src[len(src)-1]
		secondLast := src[len(src)-2]

		if last == 'X' && secondLast == ',' {
			for i := 0; i < len(src)-2; i++ {
				if !isAlphaNumericASCII(rune(src[i])) {
					d.add("0013")
					return false
				}
			}
			return true
		}
	}

	for i := 0; i < len(src); i++ {
		if !isAlphaNumericASCII(rune(src[i])) {
			d.add("0013")
			return false
		}
	}

	return true
}

// isHexLiteral reports whether src is a symbol of the form "0<hexdigits>"
// as spec.md §3 defines an instruction-operand hex literal.
func isHexLiteral(src string) bool {
	if len(src) == 0 || src[0] != '0' {
		return false
	}

	for i := 0; i < len(src); i++ {
		if !isHexDigit(src[i]) {
			return false
		}
	}

	return true
}

func isHexDigit(c byte) bool {
	if c >= 'a' && c <= 'z' {
		c -= 32
	}

	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')
}

func isAlphaNumericASCII(r rune) bool {
	return r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// isIndexedOperand reports whether operand carries the ",X" indexed
// addressing suffix.
func isIndexedOperand(operand string) bool {
	if len(operand) < 3 {
		return false
	}

	end := len(operand) - 1
	return operand[end] == 'X' && operand[end-1] == ','
}

// stripIndex removes a trailing ",X" suffix, if present.
func stripIndex(operand string) string {
	if isIndexedOperand(operand) {
		return operand[:len(operand)-2]
	}

	return operand
}

// byteConstantLength decodes the length in bytes that a BYTE directive's
// operand will contribute to the location counter, per spec.md §4.1's
// BYTE operand length decoder. Returns -1 on any shape error. Every such
// error appends its diagnostic code to d, except an operand shorter than
// four characters and a non-hex digit inside an X operand, which add none.
func byteConstantLength(operand string, d *diagnostics) int {
	if len(operand) < 4 {
		return -1
	}

	specifier := operand[0]

	if specifier != 'C' && specifier != 'X' {
		d.add("0009")
		return -1
	}

	if operand[1] != '\'' || operand[len(operand)-1] != '\'' {
		d.add("0005")
		return -1
	}

	inner := operand[2 : len(operand)-1]

	switch specifier {
	case 'C':
		if len(inner) > 30 {
			d.add("0007")
			return -1
		}
		return len(inner)

	case 'X':
		for i := 0; i < len(inner); i++ {
			if !isHexDigit(inner[i]) {
				return -1
			}
		}

		if len(inner) > 32 {
			d.add("0008")
			return -1
		}

		if len(inner)%2 != 0 {
			d.add("0006")
			return -1
		}

		return len(inner) / 2
	}

	return -1
}

// byteOperandPayload returns the specifier character and the raw inner
// text (string contents for 'C', hex digits for 'X') of a BYTE operand,
// assuming byteConstantLength has already validated its shape.
func byteOperandPayload(operand string) (specifier byte, inner string) {
	if len(operand) < 4 {
		return 0, ""
	}

	return operand[0], operand[2 : len(operand)-1]
}
