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

// Resolver resolves the levels and reordering maps of a paragraph.
// *bidi.Resolver satisfies it.
type Resolver interface {
	Resolve(text string, base bidi.Direction) (*bidi.Paragraph, error)
}

// Mapper converts caret positions between logical and visual order.
type Mapper struct {
	r Resolver
}

// NewMapper creates a Mapper backed by r.
func NewMapper(r Resolver) *Mapper {
	return &Mapper{r: r}
}

// Resolve resolves text and checks that the result covers every character.
func (m *Mapper) Resolve(text string, dir bidi.Direction) (*bidi.Paragraph, error) {
	p, err := m.r.Resolve(text, dir)
	if err != nil {
		return nil, fmt.Errorf("cursor: resolve: %w", err)
	}
	n := runeLen(text)
	if p.Levels.Len() != n || p.LogToVis.Len() != n || p.VisToLog.Len() != n {
		return nil, fmt.Errorf("%w: resolver returned %d levels, %d/%d map entries for %d characters",
			ErrInvariantViolation, p.Levels.Len(), p.LogToVis.Len(), p.VisToLog.Len(), n)
	}
	return p, nil
}

// VisualPositions maps the logical gap logPos to visual gaps.
func (m *Mapper) VisualPositions(logPos int, text string, dir bidi.Direction) (Pair, error) {
	p, err := m.Resolve(text, dir)
	if err != nil {
		return Pair{}, err
	}
	return visualPositions(p, logPos)
}

// LogicalPositions maps the visual gap visPos to logical gaps.
func (m *Mapper) LogicalPositions(visPos int, text string, dir bidi.Direction) (Pair, error) {
	p, err := m.Resolve(text, dir)
	if err != nil {
		return Pair{}, err
	}
	return logicalPositions(p, visPos)
}

// InsertionLevel returns the level s would get if inserted into text at
// logPos. Only the level of the first character of s is reported.
func (m *Mapper) InsertionLevel(s string, logPos int, text string, dir bidi.Direction) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty insertion", ErrInvalidArgument)
	}
	if logPos < 0 || logPos > runeLen(text) {
		return 0, fmt.Errorf("%w: logical position %d, length %d", ErrOutOfRange, logPos, runeLen(text))
	}
	p, err := m.Resolve(insertAt(text, logPos, s), dir)
	if err != nil {
		return 0, err
	}
	return p.Levels.Get(logPos), nil
}

// rtlAt reports the direction of logical character i, sentinels included.
func rtlAt(p *bidi.Paragraph, i int) (bool, error) {
	if !p.Levels.InRange(i) {
		return false, fmt.Errorf("%w: no level at %d in paragraph of %d", ErrInvariantViolation, i, p.Len())
	}
	l := p.Levels.At(i)
	if l < 0 {
		return false, fmt.Errorf("%w: negative level %d at %d", ErrInvariantViolation, l, i)
	}
	return l%2 == 1, nil
}

// lookup reads a reordering map. Values must be a character index or one
// of the sentinels -1 and n.
func lookup(b bidi.Bounded[int], i int) (int, error) {
	if !b.InRange(i) {
		return 0, fmt.Errorf("%w: no map entry at %d", ErrInvariantViolation, i)
	}
	v := b.At(i)
	if v < -1 || v > b.Len() {
		return 0, fmt.Errorf("%w: map entry %d at %d outside [-1, %d]", ErrInvariantViolation, v, i, b.Len())
	}
	return v, nil
}

// visualPositions looks at the characters on both sides of a logical gap.
// A character occupies visual gap v on its left edge and v+1 on its right
// edge; a right-to-left character is entered from the right.
func visualPositions(p *bidi.Paragraph, logPos int) (Pair, error) {
	if logPos < 0 || logPos > p.Len() {
		return Pair{}, fmt.Errorf("%w: logical position %d, length %d", ErrOutOfRange, logPos, p.Len())
	}
	currRTL, err := rtlAt(p, logPos)
	if err != nil {
		return Pair{}, err
	}
	prevRTL, err := rtlAt(p, logPos-1)
	if err != nil {
		return Pair{}, err
	}
	curr, err := lookup(p.LogToVis, logPos)
	if err != nil {
		return Pair{}, err
	}
	prev, err := lookup(p.LogToVis, logPos-1)
	if err != nil {
		return Pair{}, err
	}
	switch {
	case currRTL && prevRTL:
		return collapsed(curr + 1), nil
	case currRTL:
		return Pair{prev + 1, curr + 1}, nil
	case !prevRTL:
		return collapsed(curr), nil
	default:
		return Pair{curr, prev}, nil
	}
}

// logicalPositions is visualPositions mirrored: it looks at the characters
// visually left and right of a gap.
func logicalPositions(p *bidi.Paragraph, visPos int) (Pair, error) {
	if visPos < 0 || visPos > p.Len() {
		return Pair{}, fmt.Errorf("%w: visual position %d, length %d", ErrOutOfRange, visPos, p.Len())
	}
	curr, err := lookup(p.VisToLog, visPos)
	if err != nil {
		return Pair{}, err
	}
	prev, err := lookup(p.VisToLog, visPos-1)
	if err != nil {
		return Pair{}, err
	}
	currRTL, err := rtlAt(p, curr)
	if err != nil {
		return Pair{}, err
	}
	prevRTL, err := rtlAt(p, prev)
	if err != nil {
		return Pair{}, err
	}
	switch {
	case currRTL && prevRTL:
		return collapsed(curr + 1), nil
	case currRTL:
		return Pair{prev + 1, curr + 1}, nil
	case !prevRTL:
		return collapsed(curr), nil
	default:
		return Pair{curr, prev}, nil
	}
}
