// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package rpn

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrUnderflow is returned when an operator is evaluated against an
// insufficiently populated stack.
var ErrUnderflow = errors.New("rpn: stack underflow")

// ErrNonFinite is returned when an operator's result is not finite
// (e.g. division by zero).
var ErrNonFinite = errors.New("rpn: illegal operation")

// ErrMalformed is returned when, after the expression has been
// consumed in full, the stack does not hold exactly one value.
var ErrMalformed = errors.New("rpn: malformed stack")

// ErrUnresolved is returned when a VarW/VarH token names a texture
// the Lookup does not recognize.
var ErrUnresolved = errors.New("rpn: unresolved variable")

// Lookup resolves a texture name to its (width, height) in texels.
// It returns ok=false if name is unrecognized in the current
// context, which fails evaluation of any VarW/VarH token
// referencing it.
type Lookup func(name string) (w, h float32, ok bool)

// Eval runs e against lookup and returns the single resulting value.
// maxStack bounds stack growth to guard against malformed/adversarial
// expressions; spec.md §3 guarantees 32 is always sufficient for a
// well-formed Expr.
func Eval(e *Expr, lookup Lookup) (float32, error) {
	const maxStack = MaxTokens
	var stack [maxStack]float32
	sp := 0

	push := func(v float32) error {
		if sp >= maxStack {
			return fmt.Errorf("%w: stack overflow", ErrMalformed)
		}
		stack[sp] = v
		sp++
		return nil
	}

	for i := range e {
		t := &e[i]
		switch t.Kind {
		case End:
			goto done
		case Const:
			if err := push(t.Const); err != nil {
				return 0, err
			}
		case VarW, VarH:
			w, h, ok := lookup(t.Name.String())
			if !ok {
				return 0, fmt.Errorf("%w: %q", ErrUnresolved, t.Name)
			}
			v := w
			if t.Kind == VarH {
				v = h
			}
			if err := push(v); err != nil {
				return 0, err
			}
		case Op1Kind:
			if sp < 1 {
				return 0, fmt.Errorf("%w: unary op needs 1 operand", ErrUnderflow)
			}
			v := applyOp1(t.Op1, stack[sp-1])
			if !isFinite(v) {
				return 0, ErrNonFinite
			}
			stack[sp-1] = v
		case Op2Kind:
			if sp < 2 {
				return 0, fmt.Errorf("%w: binary op needs 2 operands", ErrUnderflow)
			}
			r := stack[sp-1]
			l := stack[sp-2]
			sp--
			v := applyOp2(t.Op2, l, r)
			if !isFinite(v) {
				return 0, ErrNonFinite
			}
			stack[sp-1] = v
		}
	}
done:
	if sp != 1 {
		return 0, fmt.Errorf("%w: final stack size %d", ErrMalformed, sp)
	}
	return stack[0], nil
}

func applyOp1(op Op1, v float32) float32 {
	switch op {
	case Not:
		if v == 0 {
			return 1.0
		}
		return 0.0
	}
	panic("rpn: unknown Op1")
}

func applyOp2(op Op2, l, r float32) float32 {
	switch op {
	case Add:
		return l + r
	case Sub:
		return l - r
	case Mul:
		return l * r
	case Div:
		return l / r
	case Gt:
		if l > r {
			return 1.0
		}
		return 0.0
	case Lt:
		if l < r {
			return 1.0
		}
		return 0.0
	}
	panic("rpn: unknown Op2")
}

func isFinite(v float32) bool { return !math32.IsNaN(v) && !math32.IsInf(v, 0) }
