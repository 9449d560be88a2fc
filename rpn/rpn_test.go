// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package rpn_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gviegas/shaderhook/rpn"
)

func lookupFixed(w, h float32) rpn.Lookup {
	return func(string) (float32, float32, bool) { return w, h, true }
}

func TestParseAndEvalBasic(t *testing.T) {
	e, err := rpn.Parse([]byte("HOOKED.w 2 *"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e[0].Kind != rpn.VarW || e[0].Name.String() != "HOOKED" {
		t.Errorf("token 0: got %+v", e[0])
	}
	if e[1].Kind != rpn.Const || e[1].Const != 2 {
		t.Errorf("token 1: got %+v", e[1])
	}
	if e[2].Kind != rpn.Op2Kind || e[2].Op2 != rpn.Mul {
		t.Errorf("token 2: got %+v", e[2])
	}
	if e[3].Kind != rpn.End {
		t.Errorf("token 3: expected End, got %+v", e[3])
	}

	v, err := rpn.Eval(&e, lookupFixed(640, 480))
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v != 1280 {
		t.Errorf("Eval: got %v, want 1280", v)
	}
}

func TestParseConstOnly(t *testing.T) {
	e, err := rpn.Parse([]byte("1"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, err := rpn.Eval(&e, nil)
	if err != nil || v != 1 {
		t.Errorf("Eval: got (%v, %v), want (1, nil)", v, err)
	}
}

func TestZeroExprIsWellFormed(t *testing.T) {
	var e rpn.Expr
	v, err := rpn.Eval(&e, nil)
	if err == nil {
		t.Fatalf("Eval of empty expr unexpectedly succeeded with %v", v)
	}
	if !errors.Is(err, rpn.ErrMalformed) {
		t.Errorf("Eval of empty expr: got %v, want ErrMalformed", err)
	}
}

func TestOperators(t *testing.T) {
	cases := []struct {
		expr string
		want float32
	}{
		{"2 3 +", 5},
		{"2 3 -", -1},
		{"2 3 *", 6},
		{"6 3 /", 2},
		{"2 3 >", 0},
		{"3 2 >", 1},
		{"2 3 <", 1},
		{"0 !", 1},
		{"1 !", 0},
	}
	for _, c := range cases {
		e, err := rpn.Parse([]byte(c.expr))
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.expr, err)
		}
		v, err := rpn.Eval(&e, nil)
		if err != nil {
			t.Fatalf("Eval(%q): %v", c.expr, err)
		}
		if v != c.want {
			t.Errorf("Eval(%q) = %v, want %v", c.expr, v, c.want)
		}
	}
}

func TestDivisionByZeroFails(t *testing.T) {
	e, _ := rpn.Parse([]byte("1 0 /"))
	_, err := rpn.Eval(&e, nil)
	if !errors.Is(err, rpn.ErrNonFinite) {
		t.Errorf("Eval(1 0 /): got %v, want ErrNonFinite", err)
	}
}

func TestUnderflow(t *testing.T) {
	e, _ := rpn.Parse([]byte("1 +"))
	_, err := rpn.Eval(&e, nil)
	if !errors.Is(err, rpn.ErrUnderflow) {
		t.Errorf("Eval(1 +): got %v, want ErrUnderflow", err)
	}
}

func TestMalformedExtraValues(t *testing.T) {
	e, _ := rpn.Parse([]byte("1 2"))
	_, err := rpn.Eval(&e, nil)
	if !errors.Is(err, rpn.ErrMalformed) {
		t.Errorf("Eval(1 2): got %v, want ErrMalformed", err)
	}
}

func TestUnresolvedVariable(t *testing.T) {
	e, _ := rpn.Parse([]byte("UNKNOWN.w"))
	lookup := func(string) (float32, float32, bool) { return 0, 0, false }
	_, err := rpn.Eval(&e, lookup)
	if !errors.Is(err, rpn.ErrUnresolved) {
		t.Errorf("Eval: got %v, want ErrUnresolved", err)
	}
}

func TestParseSuffixVariants(t *testing.T) {
	for _, suffix := range []string{".w", ".width"} {
		e, err := rpn.Parse([]byte("scaler" + suffix))
		if err != nil || e[0].Kind != rpn.VarW || e[0].Name.String() != "scaler" {
			t.Errorf("suffix %q: got (%+v, %v)", suffix, e[0], err)
		}
	}
	for _, suffix := range []string{".h", ".height"} {
		e, err := rpn.Parse([]byte("scaler" + suffix))
		if err != nil || e[0].Kind != rpn.VarH || e[0].Name.String() != "scaler" {
			t.Errorf("suffix %q: got (%+v, %v)", suffix, e[0], err)
		}
	}
}

func TestParseOverflow(t *testing.T) {
	tokens := make([]string, rpn.MaxTokens+1)
	for i := range tokens {
		tokens[i] = "1"
	}
	_, err := rpn.Parse([]byte(strings.Join(tokens, " ")))
	if !errors.Is(err, rpn.ErrOverflow) {
		t.Errorf("Parse: got %v, want ErrOverflow", err)
	}
}

func TestParseUnknownToken(t *testing.T) {
	_, err := rpn.Parse([]byte("garbage"))
	if !errors.Is(err, rpn.ErrSyntax) {
		t.Errorf("Parse: got %v, want ErrSyntax", err)
	}
}

func TestParseBadNumber(t *testing.T) {
	_, err := rpn.Parse([]byte("1.2.3"))
	if !errors.Is(err, rpn.ErrSyntax) {
		t.Errorf("Parse: got %v, want ErrSyntax", err)
	}
}
