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

// Package cursor keeps a caret in bidirectional text and implements
// navigation and editing on it.
//
// Text has two orders: logical (how it is stored and typed) and visual
// (how it is shown after reordering). A caret sits in a gap between
// characters, so positions range over [0, n] in either order.
//
// Frames:
//
//   - Logical: position in logical order. Arrows step through storage
//     order, edits happen at the logical gap.
//   - Visual: position in visual order plus a lean. Where a visual gap
//     separates two direction runs it corresponds to two logical gaps;
//     the lean picks one of them.
//   - Dual: carries both positions and a mode telling which frame governs
//     the next edit.
//
// Mapping:
//
// Mapper translates a gap from one order to the other using a Resolver.
// The result is a Pair of candidates; both entries are equal unless the gap
// lies on a run boundary. Nothing is cached: every call resolves the text
// again.
//
// Thread Safety:
//
// Cursors are immutable value types. Every operation returns a new cursor
// and leaves the receiver unchanged. A Mapper is safe for concurrent use if
// its Resolver is.
package cursor

import (
	"github.com/npillmayer/schuko/tracing"

	bidi "github.com/lutzky/go-bidicaret"
)

// tracer traces to the global core tracer.
func tracer() tracing.Trace {
	return bidi.T()
}
