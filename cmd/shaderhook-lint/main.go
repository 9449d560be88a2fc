// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Command shaderhook-lint parses a user shader hook document against
// an in-memory driver.GPU and reports its passes and LUT textures, or
// the parse error. It exercises hook.Parse end to end without
// requiring a real GPU backend.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/gviegas/shaderhook/driver/noop"
	"github.com/gviegas/shaderhook/hook"
)

func main() {
	strict := flag.Bool("strict", false, "reject passes with no HOOK stage")
	verbose := flag.Bool("v", false, "log trace-level diagnostics to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <shader-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	text, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logLevel := zerolog.WarnLevel
	if *verbose {
		logLevel = zerolog.TraceLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(logLevel).
		With().Timestamp().Logger()

	opts := []hook.Option{hook.WithLogger(logger)}
	if *strict {
		opts = append(opts, hook.WithStrict(true))
	}

	o, err := hook.Parse(&noop.GPU{}, text, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse failed: %v\n", err)
		os.Exit(1)
	}
	defer o.Destroy()

	passes := o.Passes()
	fmt.Printf("%d pass(es), %d LUT texture(s)\n", len(passes), len(o.LutTextures()))
	for i, p := range passes {
		var hookNames []string
		for _, n := range p.HookTex() {
			hookNames = append(hookNames, n.String())
		}
		fmt.Printf("  [%d] %s hook=%v save=%q compute=%v\n", i, p.Desc, hookNames, p.SaveTex, p.IsCompute)
	}
	for _, l := range o.LutTextures() {
		fmt.Printf("  texture %s\n", l.Name)
	}
	fmt.Printf("stages required: %#v, save_stages: %#v\n", o.Stages(), o.SaveStages())
}
