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

// Package term provides a minimal raw-terminal pager for the generated
// listing file, adapted from the teacher's interactive debugger terminal
// handling in cmd/golc3/term.go.
package term

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

var termRestore unix.Termios

func enterRawMode() error {
	termios, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), unix.TCGETS)
	if err != nil {
		return err
	}

	termRestore = *termios
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	termstate.Cc[unix.VMIN] = 1
	termstate.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, &termstate)
}

func exitRawMode() error {
	return unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, &termRestore)
}

// pageSize is the number of listing lines shown per screen. It is not
// read from the terminal's actual row count; spec.md's listing consumer
// is a plain scrollback, not a full-screen TUI, so a fixed height keeps
// this pager simple.
const pageSize = 24

// Page writes lines from r to stdout a screenful at a time, putting the
// terminal in raw mode to read single keystrokes without Enter: space or
// 'j' advances a page, 'k' goes back a page, 'q' quits early. Any other
// key advances by one line. Falls back to dumping everything if stdout
// is not a terminal (e.g. the output is piped or redirected).
func Page(r *bufio.Scanner) error {
	if stat, err := os.Stdout.Stat(); err != nil || stat.Mode()&os.ModeCharDevice == 0 {
		for r.Scan() {
			fmt.Println(r.Text())
		}
		return r.Err()
	}

	if err := enterRawMode(); err != nil {
		return err
	}
	defer exitRawMode()

	lines := make([]string, 0, 256)
	for r.Scan() {
		lines = append(lines, r.Text())
	}
	if err := r.Err(); err != nil {
		return err
	}

	input := bufio.NewReader(os.Stdin)

	for offset := 0; offset < len(lines); {
		end := offset + pageSize
		if end > len(lines) {
			end = len(lines)
		}

		fmt.Print(strings.Join(lines[offset:end], "\r\n") + "\r\n")

		if end >= len(lines) {
			break
		}

		fmt.Print("-- more --\r")

		b, err := input.ReadByte()
		if err != nil {
			return err
		}

		switch b {
		case 'q':
			fmt.Print("\r\n")
			return nil
		case 'k':
			offset -= pageSize
			if offset < 0 {
				offset = 0
			}
		case ' ', 'j':
			offset = end
		default:
			offset++
		}

		fmt.Print("\r\n")
	}

	return nil
}
