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

// Visual is a caret that moves in visual order. Its lean decides which
// logical gap it stands for when it sits between two direction runs.
type Visual struct {
	m    *Mapper
	text string
	dir  bidi.Direction
	pos  int
	lean Side
}

// NewVisual places a caret at visual position 0, leaning right.
func NewVisual(m *Mapper, text string, dir bidi.Direction) Visual {
	return Visual{m: m, text: text, dir: dir, lean: Right}
}

func (c Visual) Text() string        { return c.text }
func (c Visual) Dir() bidi.Direction { return c.dir }
func (c Visual) Pos() int            { return c.pos }
func (c Visual) Lean() Side          { return c.lean }

// MoveTo places the caret at pos, clamped to [0, n], with the given lean.
func (c Visual) MoveTo(pos int, lean Side) (Visual, error) {
	if err := lean.validate(); err != nil {
		return c, err
	}
	c.pos = clamp(pos, 0, runeLen(c.text))
	c.lean = lean
	return c, nil
}

func (c Visual) String() string {
	return fmt.Sprintf("Visual(%d, %s)", c.pos, c.lean)
}

func (c Visual) ArrowLeft() Visual {
	c.pos = max(c.pos-1, 0)
	c.lean = Left
	return c
}

func (c Visual) ArrowRight() Visual {
	c.pos = min(c.pos+1, runeLen(c.text))
	c.lean = Right
	return c
}

// Home moves to the visual start of the first line of reading: the left
// edge for a left-to-right paragraph, the right edge otherwise.
func (c Visual) Home() (Visual, error) {
	p, err := c.m.Resolve(c.text, c.dir)
	if err != nil {
		return c, err
	}
	if p.Dir == bidi.RightToLeft {
		c.pos = p.Len()
	} else {
		c.pos = 0
	}
	return c, nil
}

// End is the complement of Home.
func (c Visual) End() (Visual, error) {
	p, err := c.m.Resolve(c.text, c.dir)
	if err != nil {
		return c, err
	}
	if p.Dir == bidi.RightToLeft {
		c.pos = 0
	} else {
		c.pos = p.Len()
	}
	return c, nil
}

// InsertChar inserts s at whichever logical gap gives it the direction it
// resolves to. A left-to-right insertion moves the caret past it; a
// right-to-left one grows leftwards and leaves the caret in place.
func (c Visual) InsertChar(s string) (Visual, error) {
	cand, level, err := c.insertionSite(s)
	if err != nil {
		return c, err
	}
	rtl := level%2 == 1
	c.text = insertAt(c.text, cand[parity(rtl)], s)
	if rtl {
		c.lean = Left
	} else {
		c.pos = min(c.pos+1, runeLen(c.text))
		c.lean = Right
	}
	return c, nil
}

// InsertCharSpecial inserts s wrapped in a pair of formatting characters
// of the given kind, matching the direction s would resolve to.
func (c Visual) InsertCharSpecial(s string, kind bidi.ControlKind) (Visual, error) {
	cand, level, err := c.insertionSite(s)
	if err != nil {
		return c, err
	}
	rtl := level%2 == 1
	start, end, ok := bidi.ControlPair(kind, rtl)
	if !ok {
		return c, fmt.Errorf("%w: control kind %s", ErrInvalidArgument, kind)
	}
	n := runeLen(c.text)
	c.text = insertAt(c.text, cand[parity(rtl)], string(start)+s+string(end))
	if rtl {
		c.pos = max(c.pos-1, 0)
	} else {
		c.pos = min(c.pos+1, n)
	}
	return c, nil
}

// insertionSite returns the logical candidates at the caret and the level
// s would get at the first of them.
func (c Visual) insertionSite(s string) (Pair, int, error) {
	if s == "" {
		return Pair{}, 0, fmt.Errorf("%w: empty insertion", ErrInvalidArgument)
	}
	cand, err := c.m.LogicalPositions(c.pos, c.text, c.dir)
	if err != nil {
		return Pair{}, 0, err
	}
	level, err := c.m.InsertionLevel(s, cand[0], c.text, c.dir)
	if err != nil {
		return Pair{}, 0, err
	}
	return cand, level, nil
}

// Backspace removes the character before the caret in the direction of
// the lean. Between the end of a left-to-right run and the start of a
// right-to-left run nothing is removed.
func (c Visual) Backspace() (Visual, error) {
	p, cand, c0, c1, err := c.candidates()
	if err != nil {
		return c, err
	}
	if !c0 && c1 {
		tracer().Debugf("cursor: backspace at run boundary %s of %q is a no-op", cand, c.text)
		return c, nil
	}
	at := cand[0] - 1
	if c.lean == Left {
		at = cand[1] - 1
	}
	if at < 0 {
		return c, nil
	}
	rtl, err := rtlAt(p, at)
	if err != nil {
		return c, err
	}
	c.text = removeAt(c.text, at)
	if !rtl {
		c.pos = max(c.pos-1, 0)
	}
	return c, nil
}

// Delete is the mirror image of Backspace. Between the end of a
// right-to-left run and the start of a left-to-right run nothing is
// removed.
func (c Visual) Delete() (Visual, error) {
	p, cand, c0, c1, err := c.candidates()
	if err != nil {
		return c, err
	}
	if c0 && !c1 {
		tracer().Debugf("cursor: delete at run boundary %s of %q is a no-op", cand, c.text)
		return c, nil
	}
	at := cand[0]
	if c.lean == Left {
		at = cand[1]
	}
	if at >= p.Len() {
		return c, nil
	}
	rtl, err := rtlAt(p, at)
	if err != nil {
		return c, err
	}
	c.text = removeAt(c.text, at)
	if rtl {
		c.pos = max(c.pos-1, 0)
	}
	return c, nil
}

// candidates resolves the text and returns the logical candidates at the
// caret together with the direction of the character at each of them.
func (c Visual) candidates() (p *bidi.Paragraph, cand Pair, rtl0, rtl1 bool, err error) {
	if p, err = c.m.Resolve(c.text, c.dir); err != nil {
		return
	}
	if cand, err = logicalPositions(p, c.pos); err != nil {
		return
	}
	if rtl0, err = rtlAt(p, cand[0]); err != nil {
		return
	}
	rtl1, err = rtlAt(p, cand[1])
	return
}

// Click places the caret on the given side of the character at visual
// index visPos and leans it that way.
func (c Visual) Click(visPos int, side Side) (Visual, error) {
	if err := side.validate(); err != nil {
		return c, err
	}
	target := visPos
	if side == Right {
		target++
	}
	if target < 0 || target > runeLen(c.text) {
		return c, fmt.Errorf("%w: visual position %d, length %d", ErrOutOfRange, target, runeLen(c.text))
	}
	c.pos = target
	c.lean = side
	return c, nil
}

// ClickOnLog places the caret on the given side of the character at
// logical index logPos.
func (c Visual) ClickOnLog(logPos int, side Side) (Visual, error) {
	if err := side.validate(); err != nil {
		return c, err
	}
	p, err := c.m.Resolve(c.text, c.dir)
	if err != nil {
		return c, err
	}
	target := logPos
	if side == Right {
		target++
	}
	cand, err := visualPositions(p, target)
	if err != nil {
		return c, err
	}
	rtl, err := rtlAt(p, logPos)
	if err != nil {
		return c, err
	}
	c.pos = cand[parity(rtl)]
	c.lean = side
	return c, nil
}
