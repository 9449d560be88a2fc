// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package hook

import "errors"

// Error kinds (spec.md §7). ParseSyntax and ParseSemantic both
// surface from Parse as ErrSyntax/ErrSemantic; evaluation failures
// during Hook surface as ErrEval, wrapping the more specific rpn
// error via errors.Is.
var (
	// ErrSyntax covers unrecognized commands, malformed numeric
	// literals, and fixed-capacity overflow encountered while
	// parsing a document.
	ErrSyntax = errors.New(hookPrefix + "syntax error")

	// ErrSemantic covers format-not-found, non-sampleable or
	// opaque formats, filter/format capability mismatches, texture
	// size-limit violations, and hex payload size mismatches.
	ErrSemantic = errors.New(hookPrefix + "semantic error")

	// ErrEval is returned by Hook when evaluating a pass's cond,
	// width or height expression fails. Use errors.Is against
	// rpn.ErrUnderflow, rpn.ErrNonFinite, rpn.ErrMalformed or
	// rpn.ErrUnresolved for the specific failure.
	ErrEval = errors.New(hookPrefix + "expression evaluation failed")

	// ErrDispatch is returned by Hook when the ShaderBuffer
	// collaborator refuses compute-mode or an output-size
	// requirement.
	ErrDispatch = errors.New(hookPrefix + "dispatch failed")
)
