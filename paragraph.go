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

package bidi

import (
	"fmt"

	"golang.org/x/text/unicode/bidi"
)

// Direction is a paragraph direction. Only LeftToRight, RightToLeft and
// Auto are meaningful as a base direction; a resolved direction is never
// Auto.
type Direction = bidi.Direction

const (
	LeftToRight = bidi.LeftToRight
	RightToLeft = bidi.RightToLeft
	// Auto lets the first strong character decide (rules P2 and P3).
	Auto = bidi.Neutral
)

// ParseDirection accepts "ltr", "rtl" and "auto".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "ltr":
		return LeftToRight, nil
	case "rtl":
		return RightToLeft, nil
	case "auto":
		return Auto, nil
	}
	return Auto, fmt.Errorf("unknown direction %q", s)
}

// DirectionString is the inverse of ParseDirection.
func DirectionString(d Direction) string {
	switch d {
	case LeftToRight:
		return "ltr"
	case RightToLeft:
		return "rtl"
	}
	return "auto"
}

// Bounded is a sequence of length n extended by two sentinel values, one
// before the first element (index -1) and one after the last (index n).
type Bounded[T any] struct {
	items      []T
	start, end T
}

// NewBounded wraps items with the given sentinels. items is not copied.
func NewBounded[T any](items []T, start, end T) Bounded[T] {
	return Bounded[T]{items: items, start: start, end: end}
}

// Len is the number of elements, not counting the sentinels.
func (b Bounded[T]) Len() int {
	return len(b.items)
}

// Get returns element i for 0 ≤ i < Len(). It panics otherwise, like a
// slice index would.
func (b Bounded[T]) Get(i int) T {
	return b.items[i]
}

// Start returns the sentinel before the first element.
func (b Bounded[T]) Start() T {
	return b.start
}

// End returns the sentinel after the last element.
func (b Bounded[T]) End() T {
	return b.end
}

// At returns Start() for -1, End() for Len() and Get(i) otherwise.
func (b Bounded[T]) At(i int) T {
	switch i {
	case -1:
		return b.start
	case len(b.items):
		return b.end
	}
	return b.items[i]
}

// InRange reports whether At(i) is defined.
func (b Bounded[T]) InRange(i int) bool {
	return i >= -1 && i <= len(b.items)
}

// Paragraph is the outcome of resolving one paragraph of text.
//
// Levels is indexed by logical position. LogToVis maps a logical character
// index to its visual index, VisToLog the other way round. The sentinels
// are arranged so that the paragraph start and end are on the correct
// visual side: for a left-to-right paragraph the maps carry -1 before and
// n after, for a right-to-left paragraph n before and -1 after. Level
// sentinels are the paragraph level.
type Paragraph struct {
	Dir      Direction // LeftToRight or RightToLeft
	Levels   Bounded[int]
	LogToVis Bounded[int]
	VisToLog Bounded[int]
	Visual   []rune // the text in visual order, mirrored where required
}

// Len is the number of characters in the paragraph.
func (p *Paragraph) Len() int {
	return p.Levels.Len()
}

// IsRTL reports whether the character at logical index i (or the sentinel
// at -1 or Len()) has an odd level.
func (p *Paragraph) IsRTL(i int) bool {
	return p.Levels.At(i)%2 == 1
}

func newParagraph(s *storage) *Paragraph {
	n := len(s.chars)
	levels := make([]int, n)
	l2v := make([]int, n)
	v2l := make([]int, n)
	visual := make([]rune, n)

	for v, ch := range s.chars {
		v2l[v] = ch.pos
		l2v[ch.pos] = v
		levels[ch.pos] = ch.level
		visual[v] = ch.r
	}

	p := &Paragraph{Visual: visual}
	if s.baseLevel%2 == 1 {
		p.Dir = RightToLeft
		p.Levels = NewBounded(levels, 1, 1)
		p.LogToVis = NewBounded(l2v, n, -1)
		p.VisToLog = NewBounded(v2l, n, -1)
	} else {
		p.Dir = LeftToRight
		p.Levels = NewBounded(levels, 0, 0)
		p.LogToVis = NewBounded(l2v, -1, n)
		p.VisToLog = NewBounded(v2l, -1, n)
	}
	return p
}
