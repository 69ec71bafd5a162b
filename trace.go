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
	"sync"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

var (
	fallbackOnce   sync.Once
	fallbackTracer tracing.Trace
)

// T traces to the global core tracer. If none has been configured, an
// error-level go-log tracer is used.
func T() tracing.Trace {
	if gtrace.CoreTracer != nil {
		return gtrace.CoreTracer
	}
	fallbackOnce.Do(func() {
		fallbackTracer = gologadapter.New()
		fallbackTracer.SetTraceLevel(tracing.LevelError)
	})
	return fallbackTracer
}
