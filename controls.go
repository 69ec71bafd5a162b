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

import "fmt"

// Unicode bidi formatting characters.
const (
	LRE rune = '\u202A' // left-to-right embedding
	RLE rune = '\u202B' // right-to-left embedding
	PDF rune = '\u202C' // pop directional formatting
	LRO rune = '\u202D' // left-to-right override
	RLO rune = '\u202E' // right-to-left override
	LRM rune = '\u200E' // left-to-right mark
	RLM rune = '\u200F' // right-to-left mark
	ALM rune = '\u061C' // arabic letter mark
	LRI rune = '\u2066' // left-to-right isolate
	RLI rune = '\u2067' // right-to-left isolate
	FSI rune = '\u2068' // first strong isolate
	PDI rune = '\u2069' // pop directional isolate
)

// ControlKind selects a pair of formatting characters to wrap text in.
type ControlKind int

const (
	Isolate ControlKind = iota
	Embedding
	Override
)

var controlKindNames = []string{"isolate", "embedding", "override"}

func (k ControlKind) String() string {
	if k < 0 || int(k) >= len(controlKindNames) {
		return fmt.Sprintf("ControlKind(%d)", int(k))
	}
	return controlKindNames[k]
}

// ParseControlKind accepts "isolate", "embedding" and "override".
func ParseControlKind(s string) (ControlKind, error) {
	for i, name := range controlKindNames {
		if s == name {
			return ControlKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown control kind %q", s)
}

var controlPairs = [...][2][2]rune{
	Isolate:   {{LRI, PDI}, {RLI, PDI}},
	Embedding: {{LRE, PDF}, {RLE, PDF}},
	Override:  {{LRO, PDF}, {RLO, PDF}},
}

// ControlPair returns the opening and closing characters of kind for the
// given direction. ok is false for an unknown kind.
func ControlPair(kind ControlKind, rtl bool) (start, end rune, ok bool) {
	if kind < 0 || int(kind) >= len(controlPairs) {
		return 0, 0, false
	}
	i := 0
	if rtl {
		i = 1
	}
	p := controlPairs[kind][i]
	return p[0], p[1], true
}
