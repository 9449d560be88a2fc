// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package linear implements the small amount of 2D math the hook engine
// needs: a 2-component vector and a 2×2 affine transform used by the
// PassHook OFFSET command.
package linear

// V2 is a 2-component vector of float32.
type V2 [2]float32

// Add sets v to contain l + r.
func (v *V2) Add(l, r *V2) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Scale sets v to contain w scaled by s.
func (v *V2) Scale(s float32, w *V2) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// M2 is a column-major 2x2 matrix of float32.
type M2 [2]V2

// I makes m an identity matrix.
func (m *M2) I() { *m = M2{{1, 0}, {0, 1}} }

// Mul sets v to contain m ⋅ w.
func (m *M2) Mul(w *V2) (v V2) {
	v[0] = m[0][0]*w[0] + m[1][0]*w[1]
	v[1] = m[0][1]*w[0] + m[1][1]*w[1]
	return
}

// IsFinite reports whether every component of m is finite.
func (m *M2) IsFinite() bool {
	for i := range m {
		for j := range m[i] {
			if f := m[i][j]; f != f || f > maxFinite || f < -maxFinite {
				return false
			}
		}
	}
	return true
}

const maxFinite = 3.4028234663852886e+38 // math.MaxFloat32

// Affine2 is a 2x2 linear transform plus a translation, as used by
// PassHook's OFFSET command. The zero value has an all-zero linear
// part; Identity returns the identity transform.
type Affine2 struct {
	Linear      M2
	Translation V2
}

// Identity returns the identity Affine2 (unit linear part, zero
// translation).
func Identity() Affine2 {
	var a Affine2
	a.Linear.I()
	return a
}

// IsFinite reports whether every component of a is finite.
func (a *Affine2) IsFinite() bool {
	if !a.Linear.IsFinite() {
		return false
	}
	for _, f := range a.Translation {
		if f != f || f > maxFinite || f < -maxFinite {
			return false
		}
	}
	return true
}

// Apply returns a ⋅ w + a.Translation.
func (a *Affine2) Apply(w *V2) V2 {
	v := a.Linear.Mul(w)
	v.Add(&v, &a.Translation)
	return v
}
