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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bidi "github.com/lutzky/go-bidicaret"
)

func restore(t *testing.T, m *Mapper, st DualState) Dual {
	t.Helper()
	d, err := RestoreDual(m, st)
	require.NoError(t, err)
	return d
}

func TestNewDual(t *testing.T) {
	m := newMapper(t)
	d, err := NewDual(m, "abcאבג", bidi.RightToLeft)
	require.NoError(t, err)
	assert.Equal(t, DualState{
		Text:   "abcאבג",
		Dir:    bidi.RightToLeft,
		VisPos: Pair{3, 6},
		LogPos: Pair{0, 0},
		Lean:   Right,
		Mode:   ModeLogical,
	}, d.State())
}

func TestRestoreDual(t *testing.T) {
	m := newMapper(t)
	st := DualState{Text: "abc", Dir: bidi.LeftToRight, VisPos: Pair{1, 1}, LogPos: Pair{1, 1}, Lean: Left, Mode: ModeVisual}
	assert.Equal(t, st, restore(t, m, st).State())

	bad := st
	bad.VisPos = Pair{0, 5}
	_, err := RestoreDual(m, bad)
	assert.ErrorIs(t, err, ErrOutOfRange)

	bad = st
	bad.Lean = Side(4)
	_, err = RestoreDual(m, bad)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	bad = st
	bad.Mode = Mode(5)
	_, err = RestoreDual(m, bad)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDualTyping(t *testing.T) {
	m := newMapper(t)
	d, err := NewDual(m, "", bidi.LeftToRight)
	require.NoError(t, err)
	for _, s := range []string{"a", "b", "c"} {
		d, err = d.InsertChar(s)
		require.NoError(t, err)
	}
	assert.Equal(t, "abc", d.Text())
	assert.Equal(t, Pair{3, 3}, d.LogPos())
	assert.Equal(t, Pair{3, 3}, d.VisPos())
	assert.Equal(t, Right, d.Lean())

	// Hebrew after Latin: the caret is at the logical end, which is
	// visually both right of "c" and left of the Hebrew run.
	d, err = d.InsertChar("א")
	require.NoError(t, err)
	assert.Equal(t, "abcא", d.Text())
	assert.Equal(t, Pair{4, 4}, d.LogPos())
	assert.Equal(t, Pair{4, 3}, d.VisPos())
	assert.Equal(t, Left, d.Lean())
	assert.Equal(t, ModeLogical, d.Mode())

	d, err = d.InsertChar("ב")
	require.NoError(t, err)
	assert.Equal(t, "abcאב", d.Text())
	assert.Equal(t, Pair{5, 5}, d.LogPos())
	assert.Equal(t, Pair{5, 3}, d.VisPos())
}

func TestDualInsertCharVisual(t *testing.T) {
	m := newMapper(t)

	d := restore(t, m, DualState{Text: "abcdefg", Dir: bidi.LeftToRight, VisPos: Pair{3, 3}, LogPos: Pair{3, 3}, Lean: Right, Mode: ModeVisual})
	d, err := d.InsertChar("x")
	require.NoError(t, err)
	assert.Equal(t, "abcxdefg", d.Text())
	assert.Equal(t, Pair{4, 4}, d.VisPos())
	assert.Equal(t, Pair{4, 4}, d.LogPos())
	assert.Equal(t, ModeVisual, d.Mode())

	// Reaching the logical end switches to logical mode.
	d = restore(t, m, DualState{Text: "אבג", Dir: bidi.RightToLeft, VisPos: Pair{0, 0}, LogPos: Pair{3, 3}, Lean: Right, Mode: ModeVisual})
	d, err = d.InsertChar("ד")
	require.NoError(t, err)
	assert.Equal(t, "אבגד", d.Text())
	assert.Equal(t, Pair{0, 0}, d.VisPos())
	assert.Equal(t, Pair{4, 4}, d.LogPos())
	assert.Equal(t, Left, d.Lean())
	assert.Equal(t, ModeLogical, d.Mode())
}

func TestDualInsertCharLogical(t *testing.T) {
	m := newMapper(t)
	d := restore(t, m, DualState{Text: "אבג", Dir: bidi.RightToLeft, VisPos: Pair{0, 0}, LogPos: Pair{3, 3}, Lean: Right, Mode: ModeLogical})
	d, err := d.InsertChar("ד")
	require.NoError(t, err)
	assert.Equal(t, "אבגד", d.Text())
	assert.Equal(t, Pair{4, 4}, d.LogPos())
	assert.Equal(t, Pair{0, 0}, d.VisPos())
	assert.Equal(t, Left, d.Lean())
}

func TestDualBackspace(t *testing.T) {
	m := newMapper(t)

	d := restore(t, m, DualState{Text: "abc", Dir: bidi.LeftToRight, VisPos: Pair{3, 3}, LogPos: Pair{3, 3}, Lean: Right, Mode: ModeLogical})
	got, err := d.Backspace()
	require.NoError(t, err)
	assert.Equal(t, "ab", got.Text())
	assert.Equal(t, Pair{2, 2}, got.LogPos())
	assert.Equal(t, Pair{2, 2}, got.VisPos())

	d = restore(t, m, DualState{Text: "abc", Dir: bidi.LeftToRight, VisPos: Pair{3, 3}, LogPos: Pair{0, 0}, Lean: Right, Mode: ModeVisual})
	got, err = d.Backspace()
	require.NoError(t, err)
	assert.Equal(t, "ab", got.Text())
	assert.Equal(t, Pair{2, 2}, got.VisPos())
	assert.Equal(t, Pair{2, 2}, got.LogPos())
}

func TestDualBackspaceDiverged(t *testing.T) {
	m := newMapper(t)
	d := restore(t, m, DualState{Text: "abcאבג", Dir: bidi.LeftToRight, VisPos: Pair{3, 6}, LogPos: Pair{3, 3}, Lean: Right, Mode: ModeVisual})
	_, err := d.Backspace()
	assert.ErrorIs(t, err, ErrInvariantViolation)

	d = restore(t, m, DualState{Text: "abcאבג", Dir: bidi.LeftToRight, VisPos: Pair{3, 3}, LogPos: Pair{3, 6}, Lean: Right, Mode: ModeLogical})
	_, err = d.Backspace()
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestDualDelete(t *testing.T) {
	m := newMapper(t)

	// The logical position is not derived again.
	d := restore(t, m, DualState{Text: "abc", Dir: bidi.LeftToRight, VisPos: Pair{0, 0}, LogPos: Pair{1, 1}, Lean: Right, Mode: ModeVisual})
	got, err := d.Delete()
	require.NoError(t, err)
	assert.Equal(t, "bc", got.Text())
	assert.Equal(t, Pair{0, 0}, got.VisPos())
	assert.Equal(t, Pair{1, 1}, got.LogPos())

	// It is kept within the text though.
	d = restore(t, m, DualState{Text: "abc", Dir: bidi.LeftToRight, VisPos: Pair{2, 2}, LogPos: Pair{3, 3}, Lean: Right, Mode: ModeLogical})
	got, err = d.Delete()
	require.NoError(t, err)
	assert.Equal(t, "ab", got.Text())
	assert.Equal(t, Pair{2, 2}, got.LogPos())

	d = restore(t, m, DualState{Text: "abcאבג", Dir: bidi.LeftToRight, VisPos: Pair{3, 3}, LogPos: Pair{3, 3}, Lean: Right, Mode: ModeVisual})
	got, err = d.Delete()
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestDualArrows(t *testing.T) {
	m := newMapper(t)
	text := "aאbבcגdדeהfוgזh"
	n := runeLen(text)
	for i := 0; i <= n; i++ {
		d := restore(t, m, DualState{Text: text, Dir: bidi.RightToLeft, VisPos: Pair{i, i}, Lean: Right, Mode: ModeLogical})

		r, err := d.ArrowRight()
		require.NoError(t, err)
		assert.Equal(t, collapsed(min(i+1, n)), r.VisPos())
		assert.Equal(t, Right, r.Lean())
		assert.Equal(t, ModeVisual, r.Mode())

		l, err := d.ArrowLeft()
		require.NoError(t, err)
		assert.Equal(t, collapsed(max(i-1, 0)), l.VisPos())
		assert.Equal(t, Left, l.Lean())
	}
}

func TestDualArrowsDiverged(t *testing.T) {
	m := newMapper(t)
	// "abcאבג" shows as "abcגבא".
	st := DualState{Text: "abcאבג", Dir: bidi.LeftToRight, VisPos: Pair{3, 6}, LogPos: Pair{3, 3}, Mode: ModeLogical}
	for _, tc := range []struct {
		lean        Side
		right, left int
		rLog, lLog  Pair
	}{
		{Right, 4, 2, Pair{5, 5}, Pair{2, 2}},
		{Left, 6, 5, Pair{6, 3}, Pair{4, 4}},
	} {
		st.Lean = tc.lean
		d := restore(t, m, st)

		r, err := d.ArrowRight()
		require.NoError(t, err)
		assert.Equal(t, collapsed(tc.right), r.VisPos())
		assert.Equal(t, tc.rLog, r.LogPos())

		l, err := d.ArrowLeft()
		require.NoError(t, err)
		assert.Equal(t, collapsed(tc.left), l.VisPos())
		assert.Equal(t, tc.lLog, l.LogPos())
	}
}

func TestDualHomeEnd(t *testing.T) {
	m := newMapper(t)
	d, err := NewDual(m, "אבג", bidi.RightToLeft)
	require.NoError(t, err)

	h, err := d.Home()
	require.NoError(t, err)
	assert.Equal(t, Pair{3, 3}, h.VisPos())
	assert.Equal(t, Pair{0, 0}, h.LogPos())
	assert.Equal(t, ModeVisual, h.Mode())

	e, err := d.End()
	require.NoError(t, err)
	assert.Equal(t, Pair{0, 0}, e.VisPos())
	assert.Equal(t, Pair{3, 3}, e.LogPos())
	assert.Equal(t, ModeVisual, e.Mode())
}

func TestDualClick(t *testing.T) {
	m := newMapper(t)
	d, err := NewDual(m, "abcאבג", bidi.LeftToRight)
	require.NoError(t, err)

	c, err := d.Click(3, Left)
	require.NoError(t, err)
	assert.Equal(t, Pair{3, 3}, c.VisPos())
	assert.Equal(t, Pair{3, 6}, c.LogPos())
	assert.Equal(t, Left, c.Lean())
	assert.Equal(t, ModeVisual, c.Mode())

	c, err = d.ClickOnLog(3, Left)
	require.NoError(t, err)
	assert.Equal(t, Pair{6, 6}, c.VisPos())
	assert.Equal(t, Pair{6, 3}, c.LogPos())
	assert.Equal(t, ModeLogical, c.Mode())

	_, err = d.Click(0, Side(3))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = d.Click(7, Left)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
