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

// Package encoding provides the primitive numeric decoders the SIC
// assembler's operand grammar needs: a bare hex literal (no "0x"
// prefix — SIC source spells one "0FF", not "0xFF") and a signed
// decimal literal. Neither decoder range-checks its result against the
// 15-bit SIC address space.
package encoding

import (
	"errors"
	"strconv"
)

// DecodeHex decodes a SIC hex literal: a leading '0' followed by hex
// digits, e.g. "01000". Unlike C-style literals there is no "x" marker;
// the leading zero is itself the signal.
func DecodeHex(s string) (int, error) {
	if len(s) == 0 || s[0] != '0' {
		return 0, errors.New("invalid hex literal")
	}

	result, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0, err
	}

	return int(result), nil
}

// DecodeInt decodes a base-10 literal, as used by WORD/RESW/RESB operands.
func DecodeInt(s string) (int, error) {
	result, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}

	return int(result), nil
}
