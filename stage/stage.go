// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package stage implements the renderer pipeline stage enum and the
// bijection between the textual stage names used in //!HOOK/!BIND
// commands and the bitset the execution engine matches passes
// against (spec.md §4.G).
package stage

// Stage is a bitset of pipeline stages. A PassHook's exec_stages and
// an Object's save_stages/stages are all Stage values, combined with
// bitwise OR.
type Stage uint16

// Canonical stages, in source order. Unknown textual names map to
// the empty Stage (no-op at hook time), per spec.md §4.G.
const (
	RGB Stage = 1 << iota
	LUMA
	CHROMA
	ALPHA
	XYZ
	ChromaScaled
	AlphaScaled
	RGBOverlay
	Linear
	Sigmoid
	PreKernel
	PostKernel
	Scaled
	Output
)

// All is the union of every canonical stage.
const All = RGB | LUMA | CHROMA | ALPHA | XYZ | ChromaScaled | AlphaScaled |
	RGBOverlay | Linear | Sigmoid | PreKernel | PostKernel | Scaled | Output

// Has reports whether s has every bit of want set.
func (s Stage) Has(want Stage) bool { return s&want == want }

// Intersects reports whether s and other share any bit.
func (s Stage) Intersects(other Stage) bool { return s&other != 0 }

// byName maps every accepted textual name — canonical and legacy
// alias alike — to its Stage. NATIVE and MAINPRESUB are historical
// names for the post-presubtraction RGB stage; MAIN names the
// overlay compositing stage and is also its canonical name in toName.
var byName = map[string]Stage{
	"RGB":           RGB,
	"LUMA":          LUMA,
	"CHROMA":        CHROMA,
	"ALPHA":         ALPHA,
	"XYZ":           XYZ,
	"CHROMA_SCALED": ChromaScaled,
	"ALPHA_SCALED":  AlphaScaled,
	"NATIVE":        RGB,
	"MAINPRESUB":    RGB,
	"MAIN":          RGBOverlay,
	"LINEAR":        Linear,
	"SIGMOID":       Sigmoid,
	"PREKERNEL":     PreKernel,
	"POSTKERNEL":    PostKernel,
	"SCALED":        Scaled,
	"OUTPUT":        Output,
}

// toName holds the canonical name for each single-bit Stage value,
// used by Text and by the engine's implicit-save binding (the
// "stage_name" of spec.md §4.I step 1).
var toName = map[Stage]string{
	RGB:          "RGB",
	LUMA:         "LUMA",
	CHROMA:       "CHROMA",
	ALPHA:        "ALPHA",
	XYZ:          "XYZ",
	ChromaScaled: "CHROMA_SCALED",
	AlphaScaled:  "ALPHA_SCALED",
	RGBOverlay:   "MAIN",
	Linear:       "LINEAR",
	Sigmoid:      "SIGMOID",
	PreKernel:    "PREKERNEL",
	PostKernel:   "POSTKERNEL",
	Scaled:       "SCALED",
	Output:       "OUTPUT",
}

// FromText returns the Stage named by s, or the empty Stage if s
// names no known stage.
func FromText(s string) Stage { return byName[s] }

// Text returns the canonical textual name of a single-bit Stage, or
// the empty string if s is not a single recognized stage bit.
func Text(s Stage) string { return toName[s] }
