// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package hook

import (
	"errors"
	"testing"

	"github.com/gviegas/shaderhook/driver/noop"
	"github.com/gviegas/shaderhook/rpn"
	"github.com/gviegas/shaderhook/stage"
)

// A failing WIDTH/HEIGHT/WHEN evaluation must surface as ErrEval while
// still letting callers errors.Is against the specific rpn sentinel
// that caused it (hook/errors.go's documented contract for ErrEval).
func TestHookEvalErrorWrapsRPNSentinel(t *testing.T) {
	// GONE.w names a texture the lookup cannot resolve, triggering rpn.ErrUnresolved.
	o := mustParse(t, "//!HOOK MAIN\n//!WIDTH GONE.w\nvec4 hook() { return vec4(0); }\n")

	sb := &noop.ShaderBuffer{}
	p := &Params{Stage: stage.RGBOverlay, Tex: hookTex(4, 4), Buffer: sb}
	_, err := o.Hook(p)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, ErrEval) {
		t.Fatalf("err = %v, want errors.Is(err, ErrEval)", err)
	}
	if !errors.Is(err, rpn.ErrUnresolved) {
		t.Fatalf("err = %v, want errors.Is(err, rpn.ErrUnresolved)", err)
	}
}
