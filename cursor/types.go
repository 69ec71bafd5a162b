// Copyright (C) 2024 The go-bidicaret Authors
//
// This library is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 2.1 of the License, or (at your option) any later version.
//
// This library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public
// License along with this library; if not, write to the Free Software
// Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301, USA

package cursor

import (
	"fmt"
	"unicode/utf8"
)

// Side is left or right. As a lean it tells which of two candidate
// positions a caret on a run boundary stands for; as a click argument it
// tells which half of a character was hit.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

func (s Side) validate() error {
	if s != Left && s != Right {
		return fmt.Errorf("%w: side %s", ErrInvalidArgument, s)
	}
	return nil
}

// ParseSide accepts "left" and "right".
func ParseSide(s string) (Side, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: side %q", ErrInvalidArgument, s)
}

// Mode is the frame that governs a Dual cursor.
type Mode int

const (
	ModeLogical Mode = iota
	ModeVisual
)

func (m Mode) String() string {
	switch m {
	case ModeLogical:
		return "logical"
	case ModeVisual:
		return "visual"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Pair holds two candidate positions in the order the mapping produced
// them. Which entry applies is decided by the direction of a character,
// so the entries are never sorted.
type Pair [2]int

func collapsed(pos int) Pair {
	return Pair{pos, pos}
}

// Collapsed reports whether both candidates are the same position.
func (p Pair) Collapsed() bool {
	return p[0] == p[1]
}

// Contains reports whether pos is one of the candidates.
func (p Pair) Contains(pos int) bool {
	return p[0] == pos || p[1] == pos
}

func (p Pair) String() string {
	if p.Collapsed() {
		return fmt.Sprintf("%d", p[0])
	}
	return fmt.Sprintf("(%d|%d)", p[0], p[1])
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// insertAt inserts s before the character at rune index pos. Positions
// outside [0, n] leave text unchanged.
func insertAt(text string, pos int, s string) string {
	runes := []rune(text)
	if pos < 0 || pos > len(runes) {
		return text
	}
	out := make([]rune, 0, len(runes)+runeLen(s))
	out = append(out, runes[:pos]...)
	out = append(out, []rune(s)...)
	out = append(out, runes[pos:]...)
	return string(out)
}

// removeAt removes the character at rune index pos. Positions outside
// [0, n) leave text unchanged.
func removeAt(text string, pos int) string {
	runes := []rune(text)
	if pos < 0 || pos >= len(runes) {
		return text
	}
	return string(append(runes[:pos:pos], runes[pos+1:]...))
}
