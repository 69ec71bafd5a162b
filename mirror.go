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

import "golang.org/x/text/unicode/bidi"

// mirroredPairs is the subset of BidiMirroring.txt that is not a paired
// bracket: angle quotes and relation symbols. Brackets are mirrored by
// x/text.
var mirroredPairs = [][2]rune{
	{'<', '>'},
	{'«', '»'},
	{'‹', '›'},
	{'∈', '∋'},
	{'∉', '∌'},
	{'∊', '∍'},
	{'∕', '⧵'},
	{'∼', '∽'},
	{'≃', '⋍'},
	{'≒', '≓'},
	{'≔', '≕'},
	{'≤', '≥'},
	{'≦', '≧'},
	{'≨', '≩'},
	{'≪', '≫'},
	{'≮', '≯'},
	{'≰', '≱'},
	{'≲', '≳'},
	{'≴', '≵'},
	{'≶', '≷'},
	{'≸', '≹'},
	{'≺', '≻'},
	{'≼', '≽'},
	{'≾', '≿'},
	{'⊀', '⊁'},
	{'⊂', '⊃'},
	{'⊄', '⊅'},
	{'⊆', '⊇'},
	{'⊈', '⊉'},
	{'⊊', '⊋'},
	{'⊏', '⊐'},
	{'⊑', '⊒'},
	{'⊘', '⦸'},
	{'⊢', '⊣'},
	{'⊰', '⊱'},
	{'⊲', '⊳'},
	{'⊴', '⊵'},
	{'⊶', '⊷'},
	{'⋉', '⋊'},
	{'⋋', '⋌'},
	{'⋐', '⋑'},
	{'⋖', '⋗'},
	{'⋘', '⋙'},
	{'⋚', '⋛'},
	{'⋜', '⋝'},
	{'⋞', '⋟'},
	{'⋠', '⋡'},
	{'⋢', '⋣'},
	{'⋤', '⋥'},
	{'⋦', '⋧'},
	{'⋨', '⋩'},
	{'⋪', '⋫'},
	{'⋬', '⋭'},
	{'⋰', '⋱'},
	{'﹤', '﹥'},
	{'＜', '＞'},
}

// mirrored maps a character to its Bidi_Mirroring_Glyph, both ways.
var mirrored = func() map[rune]rune {
	m := make(map[rune]rune, 2*len(mirroredPairs))
	for _, p := range mirroredPairs {
		m[p[0]] = p[1]
		m[p[1]] = p[0]
	}
	return m
}()

// mirror returns the Bidi_Mirroring_Glyph of r, if there is one.
func mirror(r rune) (rune, bool) {
	if prop, _ := bidi.LookupRune(r); prop.IsBracket() {
		return []rune(bidi.ReverseString(string(r)))[0], true
	}
	m, ok := mirrored[r]
	return m, ok
}
