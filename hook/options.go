// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package hook

import "github.com/rs/zerolog"

// options holds Parse's configuration, set via Option values
// (spec.md §7 "Propagation policy" — failures are reported once via
// logging before being surfaced to the caller).
type options struct {
	log         zerolog.Logger
	strict      bool
	maxPasses   int
	maxTextures int
}

func defaultOptions() options {
	return options{
		log: zerolog.Nop(),
	}
}

// Option configures Parse.
type Option func(*options)

// WithLogger sets the logger used for the trace/info/warn/err
// diagnostics spec.md §6 describes as a soft, non-semantic
// collaborator. The zero value (no option given) discards all log
// output.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithStrict promotes ParseWarning conditions (currently: a pass
// with no HOOK stages) to fatal parse errors. mpv itself tolerates
// these; this option exists for tooling that wants stricter linting
// (see cmd/shaderhook-lint).
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithMaxPasses caps the number of passes a document may declare.
// Zero (the default) means unlimited, matching the reference format,
// which has no such cap.
func WithMaxPasses(n int) Option {
	return func(o *options) { o.maxPasses = n }
}

// WithMaxTextures caps the number of //!TEXTURE blocks a document may
// declare. Zero (the default) means unlimited.
func WithMaxTextures(n int) Option {
	return func(o *options) { o.maxTextures = n }
}
