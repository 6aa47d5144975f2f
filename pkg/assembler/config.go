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
	"os"

	"github.com/naoina/toml"
)

// Config holds the tunables spec.md §4.5/§6 treats as fixed constants.
// The zero value is not usable directly; call DefaultConfig or
// LoadConfig, both of which fill in every field.
type Config struct {
	AddressPadding    int `toml:"address_padding"`
	ObjectCodePadding int `toml:"object_code_padding"`
	NamePadding       int `toml:"name_padding"`
	SizePadding       int `toml:"size_padding"`
	TextRecordLimit   int `toml:"text_record_limit"`
	MemoryLimit       int `toml:"memory_limit"`

	IntermediatePath string `toml:"intermediate_path"`
	ListingPath      string `toml:"listing_path"`
	ObjectPath       string `toml:"object_path"`
}

// DefaultConfig returns the field widths and limits spec.md specifies
// directly: 4-digit addresses, 8-wide object code, 6-wide name/address
// fields, 2-digit sizes, a 60-hex-character text record ceiling, and a
// 32768-byte (MSIZE) memory ceiling.
func DefaultConfig() Config {
	return Config{
		AddressPadding:    defaultAddressPadding,
		ObjectCodePadding: defaultObjectCodePadding,
		NamePadding:       defaultNamePadding,
		SizePadding:       defaultSizePadding,
		TextRecordLimit:   defaultTextRecordLimit,
		MemoryLimit:       defaultMemoryLimit,
		IntermediatePath:  defaultIntermediatePath,
		ListingPath:       defaultListingPath,
		ObjectPath:        defaultObjectPath,
	}
}

// LoadConfig reads a TOML file and overlays it onto DefaultConfig,
// so a config file only needs to mention the fields it overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
