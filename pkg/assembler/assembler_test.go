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

package assembler_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cmorin-dev/sicasm/pkg/assembler"
)

// newAssembler returns an Assembler configured to read/write its
// intermediate/listing/object files inside a fresh temp directory, so
// tests never collide with each other or the working directory.
func newAssembler(t *testing.T) (*assembler.Assembler, string) {
	t.Helper()

	dir := t.TempDir()
	cfg := assembler.DefaultConfig()
	cfg.IntermediatePath = filepath.Join(dir, "intermediate.txt")
	cfg.ListingPath = filepath.Join(dir, "listing.txt")
	cfg.ObjectPath = filepath.Join(dir, "object.txt")

	return assembler.New(cfg), dir
}

func writeSource(t *testing.T, dir, source string) string {
	t.Helper()

	path := filepath.Join(dir, "prog.sic")
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	return string(data)
}

func TestMinimalValidProgram(t *testing.T) {
	a, dir := newAssembler(t)

	source := "PROG    START  1000\n" +
		"FIRST   LDA    ALPHA\n" +
		"ALPHA   WORD   7\n" +
		"        END    FIRST\n"

	src := writeSource(t, dir, source)

	if err := a.Pass1(src); err != nil {
		t.Fatalf("Pass1: %v", err)
	}

	sym := a.SymTable()
	if addr, ok := sym.Symbols["ALPHA"]; !ok || addr != 0x1003 {
		t.Fatalf("symbol ALPHA = %v, %v, want 0x1003, true", addr, ok)
	}

	result, err := a.Pass2()
	if err != nil {
		t.Fatalf("Pass2: %v", err)
	}

	if result.AnyErrors {
		t.Fatalf("unexpected errors, result = %+v", result)
	}

	if !result.ObjectWritten {
		t.Fatal("expected object file to be written")
	}

	object := readFile(t, filepath.Join(dir, "object.txt"))
	lines := strings.Split(strings.TrimRight(object, "\n"), "\n")

	if len(lines) != 3 {
		t.Fatalf("object file has %d lines, want 3:\n%s", len(lines), object)
	}

	if !strings.HasPrefix(lines[0], "HPROG") {
		t.Errorf("header line = %q", lines[0])
	}

	if !strings.HasPrefix(lines[1], "T001000") {
		t.Errorf("text line = %q", lines[1])
	}

	if lines[1] != "T00100006001003000007" {
		t.Errorf("text line = %q, want T00100006001003000007", lines[1])
	}

	if !strings.HasPrefix(lines[2], "E001000") {
		t.Errorf("end line = %q", lines[2])
	}
}

func TestIndexedOperand(t *testing.T) {
	a, dir := newAssembler(t)

	source := "PROG    START  0\n" +
		"        LDA    TABLE,X\n" +
		"TABLE   RESW   1\n" +
		"        END    PROG\n"

	src := writeSource(t, dir, source)

	if err := a.Pass1(src); err != nil {
		t.Fatalf("Pass1: %v", err)
	}

	if _, err := a.Pass2(); err != nil {
		t.Fatalf("Pass2: %v", err)
	}

	object := readFile(t, filepath.Join(dir, "object.txt"))

	// TABLE is defined at address 3 (after the one 3-byte LDA ahead of
	// it); indexed addressing sets bit 15, giving 3|0x8000 = 0x8003.
	if !strings.Contains(object, "008003") {
		t.Errorf("object file missing indexed operand encoding 008003:\n%s", object)
	}
}

func TestTextRecordSplitByReserve(t *testing.T) {
	a, dir := newAssembler(t)

	source := "FOO     START  0\n" +
		"        LDA    X1\n" +
		"        LDA    X1\n" +
		"        RESB   10\n" +
		"        LDA    X1\n" +
		"X1      WORD   1\n" +
		"        END    FOO\n"

	src := writeSource(t, dir, source)

	if err := a.Pass1(src); err != nil {
		t.Fatalf("Pass1: %v", err)
	}

	if _, err := a.Pass2(); err != nil {
		t.Fatalf("Pass2: %v", err)
	}

	object := readFile(t, filepath.Join(dir, "object.txt"))
	lines := strings.Split(strings.TrimRight(object, "\n"), "\n")

	var textLines []string
	for _, l := range lines {
		if strings.HasPrefix(l, "T") {
			textLines = append(textLines, l)
		}
	}

	if len(textLines) != 2 {
		t.Fatalf("expected 2 text records, got %d:\n%v", len(textLines), textLines)
	}

	if textLines[0] != "T00000006000013000013" {
		t.Errorf("first text record = %q", textLines[0])
	}

	// The second text record must open at the address of the third LDA
	// (decimal 16 = 0x10: 6 bytes for the first two LDAs plus the 10-byte
	// RESB), not at the RESB's own address.
	if !strings.HasPrefix(textLines[1], "T000010") {
		t.Errorf("second text record = %q, want to start at 000010", textLines[1])
	}
}

func TestDuplicateSymbol(t *testing.T) {
	a, dir := newAssembler(t)

	source := "START 0\n" +
		"A LDA B\n" +
		"A LDA B\n" +
		"B WORD 0\n" +
		"END A\n"

	src := writeSource(t, dir, source)

	if err := a.Pass1(src); err != nil {
		t.Fatalf("Pass1: %v", err)
	}

	sym := a.SymTable()
	if addr := sym.Symbols["A"]; addr != 0 {
		t.Errorf("symbol A = %d, want 0 (first definition retained)", addr)
	}

	result, err := a.Pass2()
	if err != nil {
		t.Fatalf("Pass2: %v", err)
	}

	if !result.AnyErrors {
		t.Fatal("expected errors from duplicate symbol")
	}

	if result.ObjectWritten {
		t.Fatal("object file should be deleted when any error was observed")
	}

	if _, err := os.Stat(filepath.Join(dir, "object.txt")); !os.IsNotExist(err) {
		t.Fatal("object.txt should not exist after an error run")
	}

	listing := readFile(t, filepath.Join(dir, "listing.txt"))
	if !strings.Contains(listing, "Duplicate Symbol") {
		t.Errorf("listing missing duplicate-symbol diagnostic:\n%s", listing)
	}
}

func TestMissingEnd(t *testing.T) {
	a, dir := newAssembler(t)

	source := "PROG START 0\n" +
		"FIRST LDA ALPHA\n" +
		"ALPHA WORD 7\n"

	src := writeSource(t, dir, source)

	if err := a.Pass1(src); err != nil {
		t.Fatalf("Pass1: %v", err)
	}

	result, err := a.Pass2()
	if err != nil {
		t.Fatalf("Pass2: %v", err)
	}

	if !result.MissingEnd {
		t.Error("expected MissingEnd to be true")
	}

	if result.ObjectWritten {
		t.Error("object file should not be written when END is missing")
	}

	listing := readFile(t, filepath.Join(dir, "listing.txt"))
	if !strings.Contains(listing, "Missing END directive") {
		t.Errorf("listing missing 'Missing END directive':\n%s", listing)
	}
}

func TestByteLengthAccounting(t *testing.T) {
	a, dir := newAssembler(t)

	source := "PROG  START  0\n" +
		"X     BYTE   C'HELLO'\n" +
		"Y     BYTE   X'F1F2'\n" +
		"      END    PROG\n"

	src := writeSource(t, dir, source)

	if err := a.Pass1(src); err != nil {
		t.Fatalf("Pass1: %v", err)
	}

	sym := a.SymTable()
	if addr := sym.Symbols["Y"]; addr != 5 {
		t.Errorf("symbol Y = %d, want 5 (C'HELLO' contributes 5 bytes)", addr)
	}
}

func TestPrepareResume(t *testing.T) {
	a, dir := newAssembler(t)

	source := "PROG    START  1000\n" +
		"FIRST   LDA    ALPHA\n" +
		"ALPHA   WORD   7\n" +
		"        END    FIRST\n"

	src := writeSource(t, dir, source)

	if err := a.Pass1(src); err != nil {
		t.Fatalf("Pass1: %v", err)
	}

	// Simulate a fresh process: a brand new Assembler pointed at the same
	// file paths, with none of Pass1's in-memory state.
	cfg := assembler.DefaultConfig()
	cfg.IntermediatePath = filepath.Join(dir, "intermediate.txt")
	cfg.ListingPath = filepath.Join(dir, "listing.txt")
	cfg.ObjectPath = filepath.Join(dir, "object.txt")
	resumed := assembler.New(cfg)

	if err := resumed.PrepareResume(cfg.IntermediatePath); err != nil {
		t.Fatalf("PrepareResume: %v", err)
	}

	if addr, ok := resumed.SymTable().Symbols["ALPHA"]; !ok || addr != 0x1003 {
		t.Fatalf("resumed symbol ALPHA = %v, %v, want 0x1003, true", addr, ok)
	}

	result, err := resumed.Pass2()
	if err != nil {
		t.Fatalf("Pass2 after resume: %v", err)
	}

	if result.AnyErrors || !result.ObjectWritten {
		t.Fatalf("resumed Pass2 result = %+v", result)
	}

	object := readFile(t, filepath.Join(dir, "object.txt"))
	if !strings.HasPrefix(object, "HPROG") {
		t.Errorf("resumed object file header = %q", object)
	}
}

func TestSourceNotOpenable(t *testing.T) {
	a, _ := newAssembler(t)

	err := a.Pass1("/nonexistent/path/to/source.sic")
	if err == nil {
		t.Fatal("expected an error for an unopenable source file")
	}

	var srcErr *assembler.SourceError
	if !asSourceError(err, &srcErr) {
		t.Errorf("expected *assembler.SourceError, got %T", err)
	}
}

func asSourceError(err error, target **assembler.SourceError) bool {
	if se, ok := err.(*assembler.SourceError); ok {
		*target = se
		return true
	}
	return false
}
