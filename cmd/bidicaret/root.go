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
	"fmt"
	"io"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"

	bidi "github.com/lutzky/go-bidicaret"
	"github.com/lutzky/go-bidicaret/cursor"
)

type options struct {
	text     string
	dir      string
	frame    string
	upperRTL bool
	trace    bool
	dump     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "bidicaret [flags] OP...",
		Short: "Replay caret operations on bidirectional text",
		Long: `Replays caret operations on one line of bidirectional text and prints the
visual line with the caret after every step.

Operations:
  left, right, home, end     move the caret
  bs, del                    backspace, delete
  ins:TEXT                   insert TEXT
  special:TEXT:KIND          insert TEXT wrapped in isolate, embedding or override
                             controls (visual frame only)
  click:N:SIDE               click the left or right half of visual character N
  clicklog:N:SIDE            click the left or right side of logical character N`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.text, "text", "", "initial text")
	f.StringVar(&opts.dir, "dir", "auto", "base direction: ltr, rtl or auto")
	f.StringVar(&opts.frame, "frame", "dual", "caret frame: logical, visual or dual")
	f.BoolVar(&opts.upperRTL, "upper-rtl", false, "treat upper case letters as right-to-left")
	f.BoolVar(&opts.trace, "trace", false, "trace caret operations to stderr")
	f.BoolVar(&opts.dump, "dump", false, "dump every phase of the bidi algorithm to stderr")
	return cmd
}

func run(out, errOut io.Writer, opts *options, args []string) error {
	gtrace.CoreTracer = gologadapter.New()
	if opts.trace {
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	} else {
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	}

	dir, err := bidi.ParseDirection(opts.dir)
	if err != nil {
		return err
	}
	ops := make([]op, len(args))
	for i, a := range args {
		if ops[i], err = parseOp(a); err != nil {
			return err
		}
	}

	ropts := []bidi.Option{bidi.UpperIsRTL(opts.upperRTL)}
	if opts.dump {
		ropts = append(ropts, bidi.Debug(errOut))
	}
	r := bidi.NewResolver(ropts...)
	defer r.Close()
	m := cursor.NewMapper(r)

	f, err := newFrame(opts.frame, m, opts.text, dir)
	if err != nil {
		return err
	}
	if err := render(out, m, f, dir); err != nil {
		return err
	}
	for _, o := range ops {
		if f, err = f.step(o); err != nil {
			return fmt.Errorf("%s: %w", o.raw, err)
		}
		fmt.Fprintf(out, "> %s\n", o.raw)
		if err := render(out, m, f, dir); err != nil {
			return err
		}
	}
	return nil
}
