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

// Dual tracks a caret in both orders at once. Its mode decides which of
// the two positions an edit starts from.
type Dual struct {
	m    *Mapper
	text string
	dir  bidi.Direction
	vis  Pair
	log  Pair
	lean Side
	mode Mode
}

// DualState is everything needed to resume a Dual cursor.
type DualState struct {
	Text   string
	Dir    bidi.Direction
	VisPos Pair
	LogPos Pair
	Lean   Side
	Mode   Mode
}

// NewDual places a caret at logical position 0 in logical mode.
func NewDual(m *Mapper, text string, dir bidi.Direction) (Dual, error) {
	vis, err := m.VisualPositions(0, text, dir)
	if err != nil {
		return Dual{}, err
	}
	return Dual{m: m, text: text, dir: dir, vis: vis, lean: Right, mode: ModeLogical}, nil
}

// RestoreDual resumes a cursor saved with State.
func RestoreDual(m *Mapper, st DualState) (Dual, error) {
	if err := st.Lean.validate(); err != nil {
		return Dual{}, err
	}
	if st.Mode != ModeLogical && st.Mode != ModeVisual {
		return Dual{}, fmt.Errorf("%w: mode %s", ErrInvalidArgument, st.Mode)
	}
	n := runeLen(st.Text)
	for _, v := range [...]int{st.VisPos[0], st.VisPos[1], st.LogPos[0], st.LogPos[1]} {
		if v < 0 || v > n {
			return Dual{}, fmt.Errorf("%w: position %d, length %d", ErrOutOfRange, v, n)
		}
	}
	return Dual{
		m:    m,
		text: st.Text,
		dir:  st.Dir,
		vis:  st.VisPos,
		log:  st.LogPos,
		lean: st.Lean,
		mode: st.Mode,
	}, nil
}

// State returns a snapshot that RestoreDual accepts.
func (d Dual) State() DualState {
	return DualState{
		Text:   d.text,
		Dir:    d.dir,
		VisPos: d.vis,
		LogPos: d.log,
		Lean:   d.lean,
		Mode:   d.mode,
	}
}

func (d Dual) Text() string        { return d.text }
func (d Dual) Dir() bidi.Direction { return d.dir }
func (d Dual) VisPos() Pair        { return d.vis }
func (d Dual) LogPos() Pair        { return d.log }
func (d Dual) Lean() Side          { return d.lean }
func (d Dual) Mode() Mode          { return d.mode }

func (d Dual) String() string {
	return fmt.Sprintf("Dual(vis %s, log %s, %s, %s)", d.vis, d.log, d.lean, d.mode)
}

func (d Dual) logical() Logical {
	return Logical{m: d.m, text: d.text, dir: d.dir, pos: d.log[0]}
}

func (d Dual) visual() Visual {
	return Visual{m: d.m, text: d.text, dir: d.dir, pos: d.vis[0], lean: d.lean}
}

// fromVisual takes text, position and lean from v and derives the logical
// pair.
func (d Dual) fromVisual(v Visual) (Dual, error) {
	log, err := d.m.LogicalPositions(v.pos, v.text, v.dir)
	if err != nil {
		return d, err
	}
	d.text = v.text
	d.vis = collapsed(v.pos)
	d.log = log
	d.lean = v.lean
	return d, nil
}

// InsertChar inserts s. In logical mode s goes in at the logical caret and
// the lean follows the direction s resolves to. In visual mode the visual
// rules apply, and the cursor switches to logical mode once it reaches
// the logical end of the text.
func (d Dual) InsertChar(s string) (Dual, error) {
	switch d.mode {
	case ModeLogical:
		if s == "" {
			return d, fmt.Errorf("%w: empty insertion", ErrInvalidArgument)
		}
		l := d.logical().InsertChar(s)
		vis, err := d.m.VisualPositions(l.pos, l.text, l.dir)
		if err != nil {
			return d, err
		}
		level, err := d.m.InsertionLevel(s, l.pos, l.text, l.dir)
		if err != nil {
			return d, err
		}
		d.text = l.text
		d.vis = vis
		d.log = collapsed(l.pos)
		d.lean = Right
		if level%2 == 1 {
			d.lean = Left
		}
		return d, nil

	case ModeVisual:
		v, err := d.visual().InsertChar(s)
		if err != nil {
			return d, err
		}
		cand, err := d.m.LogicalPositions(v.pos, v.text, v.dir)
		if err != nil {
			return d, err
		}
		logPos := cand[1]
		if v.lean == Left {
			logPos = cand[0]
		}
		level, err := d.m.InsertionLevel(s, logPos, v.text, v.dir)
		if err != nil {
			return d, err
		}
		tracer().Debugf("cursor: next %q at logical %d would get level %d", s, logPos, level)
		d.text = v.text
		d.vis = collapsed(v.pos)
		d.log = collapsed(logPos)
		d.lean = v.lean
		if logPos == runeLen(v.text) {
			d.mode = ModeLogical
		}
		return d, nil
	}
	return d, fmt.Errorf("%w: mode %s", ErrInvariantViolation, d.mode)
}

// Backspace removes a character in the frame of the current mode. The
// governing position must be collapsed.
func (d Dual) Backspace() (Dual, error) {
	switch d.mode {
	case ModeVisual:
		if !d.vis.Collapsed() {
			return d, fmt.Errorf("%w: backspace with visual position %s", ErrInvariantViolation, d.vis)
		}
		v, err := d.visual().Backspace()
		if err != nil {
			return d, err
		}
		return d.fromVisual(v)

	case ModeLogical:
		if !d.log.Collapsed() {
			return d, fmt.Errorf("%w: backspace with logical position %s", ErrInvariantViolation, d.log)
		}
		l := d.logical().Backspace()
		vis, err := d.m.VisualPositions(l.pos, l.text, l.dir)
		if err != nil {
			return d, err
		}
		d.text = l.text
		d.vis = vis
		d.log = collapsed(l.pos)
		return d, nil
	}
	return d, fmt.Errorf("%w: mode %s", ErrInvariantViolation, d.mode)
}

// Delete follows the visual rules regardless of mode. The logical
// position is not derived again, only kept within the text.
func (d Dual) Delete() (Dual, error) {
	v, err := d.visual().Delete()
	if err != nil {
		return d, err
	}
	n := runeLen(v.text)
	d.text = v.text
	d.vis = collapsed(v.pos)
	d.log = Pair{min(d.log[0], n), min(d.log[1], n)}
	return d, nil
}

func (d Dual) ArrowLeft() (Dual, error) {
	return d.arrow(Left)
}

func (d Dual) ArrowRight() (Dual, error) {
	return d.arrow(Right)
}

// arrow moves the visual position the lean points at by one.
func (d Dual) arrow(side Side) (Dual, error) {
	primary := d.vis[1]
	if d.lean == Right {
		primary = d.vis[0]
	}
	pos := clamp(primary+1, 0, runeLen(d.text))
	if side == Left {
		pos = clamp(primary-1, 0, runeLen(d.text))
	}
	v := Visual{m: d.m, text: d.text, dir: d.dir, pos: pos, lean: side}
	next, err := d.fromVisual(v)
	if err != nil {
		return d, err
	}
	next.mode = ModeVisual
	return next, nil
}

func (d Dual) Home() (Dual, error) {
	v, err := d.visual().Home()
	if err != nil {
		return d, err
	}
	return d.visualMode(d.fromVisual(v))
}

func (d Dual) End() (Dual, error) {
	v, err := d.visual().End()
	if err != nil {
		return d, err
	}
	return d.visualMode(d.fromVisual(v))
}

// Click places the caret on the given side of the character at visual
// index visPos and switches to visual mode.
func (d Dual) Click(visPos int, side Side) (Dual, error) {
	v, err := d.visual().Click(visPos, side)
	if err != nil {
		return d, err
	}
	return d.visualMode(d.fromVisual(v))
}

// ClickOnLog places the caret on the given side of the character at
// logical index logPos. The mode is left as it is.
func (d Dual) ClickOnLog(logPos int, side Side) (Dual, error) {
	v, err := d.visual().ClickOnLog(logPos, side)
	if err != nil {
		return d, err
	}
	return d.fromVisual(v)
}

func (d Dual) visualMode(next Dual, err error) (Dual, error) {
	if err != nil {
		return d, err
	}
	next.mode = ModeVisual
	return next, nil
}
