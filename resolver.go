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
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	pool "github.com/jolestar/go-commons-pool"
	"github.com/npillmayer/schuko/tracing"
)

// ErrResolverClosed is returned by Resolve after Close.
var ErrResolverClosed = errors.New("bidi: resolver is closed")

// Resolver resolves embedding levels and reordering maps for a paragraph.
// It holds no per-paragraph state and may be used from several goroutines.
// Scratch buffers are pooled and released by Close.
type Resolver struct {
	upperIsRTL bool
	debug      io.Writer
	trace      tracing.Trace

	ctx    context.Context
	opool  *pool.ObjectPool
	mu     sync.RWMutex
	closed bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// UpperIsRTL treats upper case letters as strong right-to-left characters.
// This follows fribidi's CapRTL convention and is meant for debugging.
func UpperIsRTL(b bool) Option {
	return func(r *Resolver) {
		r.upperIsRTL = b
	}
}

// Debug writes a dump of every phase of the algorithm to w.
func Debug(w io.Writer) Option {
	return func(r *Resolver) {
		r.debug = w
	}
}

// Tracer sets the tracer for the resolver. The default is T().
func Tracer(t tracing.Trace) Option {
	return func(r *Resolver) {
		r.trace = t
	}
}

// NewResolver creates a Resolver. Call Close when done with it.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{ctx: context.Background()}
	for _, opt := range opts {
		opt(r)
	}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return &storage{}, nil
		})
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	r.opool = pool.NewObjectPool(r.ctx, factory, config)
	return r
}

func (r *Resolver) tracer() tracing.Trace {
	if r.trace != nil {
		return r.trace
	}
	return T()
}

// Resolve runs the bidi algorithm on text with the given base direction.
// Auto picks the direction of the first strong character, defaulting to
// left-to-right.
func (r *Resolver) Resolve(text string, base Direction) (*Paragraph, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, ErrResolverClosed
	}

	o, err := r.opool.BorrowObject(r.ctx)
	if err != nil {
		return nil, fmt.Errorf("bidi: borrow scratch storage: %w", err)
	}
	s := o.(*storage)
	defer func() {
		s.reset()
		_ = r.opool.ReturnObject(r.ctx, s)
	}()

	s.debugWriter = r.debug
	if err := s.run([]rune(text), r.upperIsRTL, base); err != nil {
		r.tracer().Errorf("bidi: resolving %q failed: %v", text, err)
		return nil, fmt.Errorf("bidi: resolve: %w", err)
	}
	p := newParagraph(s)
	r.tracer().Debugf("bidi: resolved %q base=%s dir=%s", text,
		DirectionString(base), DirectionString(p.Dir))
	return p, nil
}

// Close releases the pooled buffers. Resolve fails afterwards.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.opool.Close(r.ctx)
}
