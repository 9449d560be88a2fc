// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package rpn implements the fixed-capacity reverse-Polish
// expression type used for PassHook's WIDTH/HEIGHT/WHEN commands: a
// text-line parser (spec.md §4.B) and a stack-machine evaluator
// (spec.md §4.C).
package rpn

import (
	"errors"
	"fmt"

	"github.com/gviegas/shaderhook/internal/lex"
)

// MaxTokens is the fixed capacity of an Expr, matching the format's
// on-disk size limit (spec.md §9 "Fixed-capacity vectors").
const MaxTokens = 32

// Kind identifies the variant held by a Token. The zero Kind is End,
// so a zeroed Expr is a well-formed empty expression (spec.md §9
// "Tagged SzExp").
type Kind int

const (
	End Kind = iota
	Const
	VarW
	VarH
	Op1Kind
	Op2Kind
)

// Op1 is a unary operator.
type Op1 int

const (
	Not Op1 = iota
)

// Op2 is a binary operator.
type Op2 int

const (
	Add Op2 = iota
	Sub
	Mul
	Div
	Gt
	Lt
)

// Token is one element of an Expr.
type Token struct {
	Kind  Kind
	Const float32
	// Name holds the texture name for VarW/VarH tokens. It is a
	// view into the Expr's source buffer and must not be retained
	// past that buffer's lifetime.
	Name lex.BS
	Op1  Op1
	Op2  Op2
}

// Expr is a fixed-capacity vector of Tokens. All slots past the
// meaningful prefix are the zero Token (End), by construction.
type Expr [MaxTokens]Token

// ErrOverflow is returned by Parse when a line tokenizes to more
// than MaxTokens tokens.
var ErrOverflow = errors.New("rpn: expression exceeds 32 tokens")

// ErrSyntax is returned by Parse for an unparseable numeric literal
// or an unrecognized token.
var ErrSyntax = errors.New("rpn: syntax error")

// Parse converts one line of text into an Expr. See spec.md §4.B for
// the per-token dispatch rules.
func Parse(line []byte) (Expr, error) {
	var e Expr
	toks := lex.SplitSpace(line)
	if len(toks) > MaxTokens {
		return e, fmt.Errorf("%w: got %d tokens", ErrOverflow, len(toks))
	}
	for i, t := range toks {
		tok, err := parseToken(t)
		if err != nil {
			return Expr{}, err
		}
		e[i] = tok
	}
	return e, nil
}

func parseToken(t lex.BS) (Token, error) {
	if rest, ok := lex.EatEnd(t, ".width"); ok {
		return Token{Kind: VarW, Name: rest}, nil
	}
	if rest, ok := lex.EatEnd(t, ".w"); ok {
		return Token{Kind: VarW, Name: rest}, nil
	}
	if rest, ok := lex.EatEnd(t, ".height"); ok {
		return Token{Kind: VarH, Name: rest}, nil
	}
	if rest, ok := lex.EatEnd(t, ".h"); ok {
		return Token{Kind: VarH, Name: rest}, nil
	}

	switch t[0] {
	case '+':
		return Token{Kind: Op2Kind, Op2: Add}, nil
	case '-':
		return Token{Kind: Op2Kind, Op2: Sub}, nil
	case '*':
		return Token{Kind: Op2Kind, Op2: Mul}, nil
	case '/':
		return Token{Kind: Op2Kind, Op2: Div}, nil
	case '>':
		return Token{Kind: Op2Kind, Op2: Gt}, nil
	case '<':
		return Token{Kind: Op2Kind, Op2: Lt}, nil
	case '!':
		return Token{Kind: Op1Kind, Op1: Not}, nil
	}

	if t[0] >= '0' && t[0] <= '9' {
		f, err := lex.ParseFloat32(t)
		if err != nil {
			return Token{}, fmt.Errorf("%w: %q: %v", ErrSyntax, t, err)
		}
		return Token{Kind: Const, Const: f}, nil
	}

	return Token{}, fmt.Errorf("%w: unknown token %q", ErrSyntax, t)
}
