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

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	bidi "github.com/lutzky/go-bidicaret"
	"github.com/lutzky/go-bidicaret/cursor"
)

var (
	errLogicalSpecial = errors.New("not supported by the logical frame")
	errDualSpecial    = errors.New("not supported by the dual frame")
)

type op struct {
	raw  string
	name string
	text string
	pos  int
	side cursor.Side
	kind bidi.ControlKind
}

func parseOp(s string) (op, error) {
	o := op{raw: s}
	fields := strings.Split(s, ":")
	o.name = fields[0]
	want := map[string]int{
		"left": 1, "right": 1, "home": 1, "end": 1, "bs": 1, "del": 1,
		"ins": 2, "special": 3, "click": 3, "clicklog": 3,
	}[o.name]
	if want == 0 {
		return o, fmt.Errorf("unknown operation %q", s)
	}
	if len(fields) != want {
		return o, fmt.Errorf("operation %q: want %d fields, got %d", s, want, len(fields))
	}
	var err error
	switch o.name {
	case "ins":
		o.text = fields[1]
	case "special":
		o.text = fields[1]
		o.kind, err = bidi.ParseControlKind(fields[2])
	case "click", "clicklog":
		if o.pos, err = strconv.Atoi(fields[1]); err != nil {
			break
		}
		o.side, err = cursor.ParseSide(fields[2])
	}
	if err != nil {
		return o, fmt.Errorf("operation %q: %w", s, err)
	}
	return o, nil
}

// frame is a caret of any kind.
type frame interface {
	fmt.Stringer
	Text() string
	step(o op) (frame, error)
	carets(m *cursor.Mapper) (cursor.Pair, error)
}

func newFrame(name string, m *cursor.Mapper, text string, dir bidi.Direction) (frame, error) {
	switch name {
	case "logical":
		return logicalFrame{cursor.NewLogical(m, text, dir)}, nil
	case "visual":
		return visualFrame{cursor.NewVisual(m, text, dir)}, nil
	case "dual":
		d, err := cursor.NewDual(m, text, dir)
		return dualFrame{d}, err
	}
	return nil, fmt.Errorf("unknown frame %q", name)
}

type logicalFrame struct{ cursor.Logical }

func (f logicalFrame) step(o op) (frame, error) {
	c := f.Logical
	var err error
	switch o.name {
	case "left":
		c = c.ArrowLeft()
	case "right":
		c = c.ArrowRight()
	case "home":
		c = c.Home()
	case "end":
		c = c.End()
	case "bs":
		c = c.Backspace()
	case "del":
		c = c.Delete()
	case "ins":
		c = c.InsertChar(o.text)
	case "click":
		c, err = c.Click(o.pos, o.side)
	case "clicklog":
		c, err = c.ClickOnLog(o.pos, o.side)
	default:
		return f, errLogicalSpecial
	}
	return logicalFrame{c}, err
}

func (f logicalFrame) carets(m *cursor.Mapper) (cursor.Pair, error) {
	return m.VisualPositions(f.Pos(), f.Text(), f.Dir())
}

type visualFrame struct{ cursor.Visual }

func (f visualFrame) step(o op) (frame, error) {
	c := f.Visual
	var err error
	switch o.name {
	case "left":
		c = c.ArrowLeft()
	case "right":
		c = c.ArrowRight()
	case "home":
		c, err = c.Home()
	case "end":
		c, err = c.End()
	case "bs":
		c, err = c.Backspace()
	case "del":
		c, err = c.Delete()
	case "ins":
		c, err = c.InsertChar(o.text)
	case "special":
		c, err = c.InsertCharSpecial(o.text, o.kind)
	case "click":
		c, err = c.Click(o.pos, o.side)
	case "clicklog":
		c, err = c.ClickOnLog(o.pos, o.side)
	}
	return visualFrame{c}, err
}

func (f visualFrame) carets(*cursor.Mapper) (cursor.Pair, error) {
	return cursor.Pair{f.Pos(), f.Pos()}, nil
}

type dualFrame struct{ cursor.Dual }

func (f dualFrame) step(o op) (frame, error) {
	d := f.Dual
	var err error
	switch o.name {
	case "left":
		d, err = d.ArrowLeft()
	case "right":
		d, err = d.ArrowRight()
	case "home":
		d, err = d.Home()
	case "end":
		d, err = d.End()
	case "bs":
		d, err = d.Backspace()
	case "del":
		d, err = d.Delete()
	case "ins":
		d, err = d.InsertChar(o.text)
	case "click":
		d, err = d.Click(o.pos, o.side)
	case "clicklog":
		d, err = d.ClickOnLog(o.pos, o.side)
	default:
		return f, errDualSpecial
	}
	return dualFrame{d}, err
}

func (f dualFrame) carets(*cursor.Mapper) (cursor.Pair, error) {
	return f.VisPos(), nil
}

// render prints the visual line and a line with a caret under every
// candidate visual position.
func render(w io.Writer, m *cursor.Mapper, f frame, dir bidi.Direction) error {
	p, err := m.Resolve(f.Text(), dir)
	if err != nil {
		return err
	}
	carets, err := f.carets(m)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(p.Visual))
	fmt.Fprintf(w, "%s  %s\n", caretLine(p.Visual, carets), f)
	return nil
}

func caretLine(visual []rune, carets cursor.Pair) string {
	var cols [2]int
	for i, v := range carets {
		cols[i] = uniseg.StringWidth(string(visual[:v]))
	}
	line := []byte(strings.Repeat(" ", max(cols[0], cols[1])+1))
	for _, c := range cols {
		line[c] = '^'
	}
	return string(line)
}
