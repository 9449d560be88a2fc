// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import "testing"

func TestIdentityApply(t *testing.T) {
	a := Identity()
	w := V2{3, 4}
	got := a.Apply(&w)
	if got != w {
		t.Fatalf("Identity().Apply(%v) = %v, want %v", w, got, w)
	}
}

func TestAffine2Apply(t *testing.T) {
	var a Affine2
	a.Linear = M2{{2, 0}, {0, 2}}
	a.Translation = V2{1, -1}
	w := V2{3, 4}
	got := a.Apply(&w)
	want := V2{7, 7}
	if got != want {
		t.Fatalf("Apply(%v) = %v, want %v", w, got, want)
	}
}

func TestIsFinite(t *testing.T) {
	a := Identity()
	if !a.IsFinite() {
		t.Fatalf("identity must be finite")
	}
	zero := float32(0)
	a.Translation[0] = 1 / zero
	if a.IsFinite() {
		t.Fatalf("expected non-finite translation to be detected")
	}
}

func TestV2AddScale(t *testing.T) {
	var v V2
	l := V2{1, 2}
	r := V2{3, 4}
	v.Add(&l, &r)
	if v != (V2{4, 6}) {
		t.Fatalf("Add = %v, want {4 6}", v)
	}
	v.Scale(2, &l)
	if v != (V2{2, 4}) {
		t.Fatalf("Scale = %v, want {2 4}", v)
	}
}
