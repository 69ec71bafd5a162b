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

import "errors"

// Errors returned by cursor operations.
var (
	// ErrInvalidArgument indicates a bad side, control kind or empty insertion.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange indicates a position outside [0, n].
	ErrOutOfRange = errors.New("position out of range")

	// ErrInvariantViolation indicates that the resolver broke its contract
	// or that a cursor was used against its frame contract.
	ErrInvariantViolation = errors.New("invariant violation")
)
