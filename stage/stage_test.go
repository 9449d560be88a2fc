// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package stage_test

import (
	"testing"

	"github.com/gviegas/shaderhook/stage"
)

// canonical lists the names for which Text(FromText(s)) == s must
// hold — the defined set of spec.md's testable "Stage map bijection"
// property. The aliases NATIVE and MAINPRESUB are excluded: they
// resolve to RGB, whose canonical name is "RGB". MAIN is included,
// since it is itself the canonical name for RGBOverlay.
var canonical = []string{
	"RGB", "LUMA", "CHROMA", "ALPHA", "XYZ",
	"CHROMA_SCALED", "ALPHA_SCALED", "MAIN",
	"LINEAR", "SIGMOID", "PREKERNEL", "POSTKERNEL", "SCALED", "OUTPUT",
}

func TestBijection(t *testing.T) {
	seen := make(map[stage.Stage]bool)
	for _, name := range canonical {
		s := stage.FromText(name)
		if s == 0 {
			t.Errorf("FromText(%q) = 0, want a non-empty stage", name)
			continue
		}
		if seen[s] {
			t.Errorf("stage %v already claimed by another canonical name", s)
		}
		seen[s] = true
		if got := stage.Text(s); got != name {
			t.Errorf("Text(FromText(%q)) = %q, want %q", name, got, name)
		}
	}
}

func TestAliases(t *testing.T) {
	cases := map[string]stage.Stage{
		"NATIVE":     stage.RGB,
		"MAINPRESUB": stage.RGB,
		"MAIN":       stage.RGBOverlay,
	}
	for name, want := range cases {
		if got := stage.FromText(name); got != want {
			t.Errorf("FromText(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestUnknown(t *testing.T) {
	if got := stage.FromText("NOT_A_STAGE"); got != 0 {
		t.Errorf("FromText(unknown) = %v, want 0", got)
	}
}

func TestIntersectsHas(t *testing.T) {
	s := stage.RGB | stage.LUMA
	if !s.Intersects(stage.LUMA) {
		t.Error("Intersects: expected true")
	}
	if s.Intersects(stage.ChromaScaled) {
		t.Error("Intersects: expected false")
	}
	if !s.Has(stage.RGB | stage.LUMA) {
		t.Error("Has: expected true for subset")
	}
	if s.Has(stage.RGB | stage.ChromaScaled) {
		t.Error("Has: expected false when not all bits present")
	}
}
