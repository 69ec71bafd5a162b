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

	bidi "github.com/lutzky/go-bidicaret"
)

// Logical is a caret that moves and edits in logical order.
type Logical struct {
	m    *Mapper
	text string
	dir  bidi.Direction
	pos  int
}

// NewLogical places a caret at the start of text.
func NewLogical(m *Mapper, text string, dir bidi.Direction) Logical {
	return Logical{m: m, text: text, dir: dir}
}

func (c Logical) Text() string        { return c.text }
func (c Logical) Dir() bidi.Direction { return c.dir }
func (c Logical) Pos() int            { return c.pos }

// MoveTo places the caret at pos, clamped to [0, n].
func (c Logical) MoveTo(pos int) Logical {
	c.pos = clamp(pos, 0, runeLen(c.text))
	return c
}

func (c Logical) String() string {
	return fmt.Sprintf("Logical(%d)", c.pos)
}

func (c Logical) ArrowLeft() Logical {
	return c.MoveTo(c.pos - 1)
}

func (c Logical) ArrowRight() Logical {
	return c.MoveTo(c.pos + 1)
}

func (c Logical) Home() Logical {
	c.pos = 0
	return c
}

func (c Logical) End() Logical {
	c.pos = runeLen(c.text)
	return c
}

// InsertChar inserts s at the caret and moves past it. s may hold more
// than one character.
func (c Logical) InsertChar(s string) Logical {
	c.text = insertAt(c.text, c.pos, s)
	c.pos = clamp(c.pos+runeLen(s), 0, runeLen(c.text))
	return c
}

// Backspace removes the character before the caret.
func (c Logical) Backspace() Logical {
	if c.pos == 0 {
		return c
	}
	c.text = removeAt(c.text, c.pos-1)
	c.pos--
	return c
}

// Delete removes the character after the caret.
func (c Logical) Delete() Logical {
	c.text = removeAt(c.text, c.pos)
	return c
}

// Click places the caret on the given side of the character at visual
// index visPos.
func (c Logical) Click(visPos int, side Side) (Logical, error) {
	if err := side.validate(); err != nil {
		return c, err
	}
	p, err := c.m.Resolve(c.text, c.dir)
	if err != nil {
		return c, err
	}
	target := visPos
	if side == Right {
		target++
	}
	cand, err := logicalPositions(p, target)
	if err != nil {
		return c, err
	}
	clicked, err := lookup(p.VisToLog, visPos)
	if err != nil {
		return c, err
	}
	rtl, err := rtlAt(p, clicked)
	if err != nil {
		return c, err
	}
	c.pos = cand[parity(rtl)]
	tracer().Debugf("cursor: click %d/%s in %q -> logical %d of %s", visPos, side, c.text, c.pos, cand)
	return c, nil
}

// ClickOnLog places the caret on the given side of the character at
// logical index logPos.
func (c Logical) ClickOnLog(logPos int, side Side) (Logical, error) {
	if err := side.validate(); err != nil {
		return c, err
	}
	target := logPos
	if side == Right {
		target++
	}
	if target < 0 || target > runeLen(c.text) {
		return c, fmt.Errorf("%w: logical position %d, length %d", ErrOutOfRange, target, runeLen(c.text))
	}
	c.pos = target
	return c, nil
}

func parity(rtl bool) int {
	if rtl {
		return 1
	}
	return 0
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
