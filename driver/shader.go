// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

// Rect is an axis-aligned rectangle within a texture, in texel
// units: src_rect/dst_rect of the hook protocol (spec.md §4.I).
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// ColorRepr carries the color-space/range metadata of a HookTex.
// Its fields are opaque to the engine: the only operation it
// performs on a ColorRepr is calling Normalize to obtain the N_mul
// scale.
type ColorRepr struct {
	// Opaque renderer-defined payload (bit depth, transfer function,
	// chroma location, ...). The engine never reads it directly.
	Opaque any
}

// Normalize returns the scale factor the engine multiplies sampled
// texels by (the N_mul macro of the binding preamble, spec.md §4.I),
// in the role of libplacebo's pl_color_repr_normalize. This
// implementation leaves c unchanged and always returns 1.
func (c *ColorRepr) Normalize() float32 {
	// The reference renderer is the sole authority on what
	// normalization means for a given representation; THE CORE only
	// consumes the returned scale. Texture payloads uploaded via
	// //!TEXTURE have no special representation, so they normalize
	// to a unit scale.
	return 1.0
}

// HookTex is a texture together with the crop rectangle and color
// representation the renderer associates with it. It is the type of
// params.tex, of entries bound via BIND, and of PassTexture.Tex.
type HookTex struct {
	Tex  Texture
	Crop Rect
	Repr ColorRepr
}

// Dim returns the dimensions of the underlying texture, used by
// HOOKED/pass-texture size-expression variable lookups.
func (h *HookTex) Dim() Dim3D {
	if h.Tex == nil {
		return Dim3D{}
	}
	return h.Tex.Dim()
}

// VarKind is the type of a global uniform declared by the binding
// preamble (spec.md §4.I step 8).
type VarKind int

const (
	VarInt VarKind = iota
	VarFloat
	VarVec2
)

// TexIdents names the four sampler-side identifiers produced by
// ShaderBuffer.BindTexture, used to build the N_raw/N_pos/N_size/N_pt
// macros of the binding preamble.
type TexIdents struct {
	Raw, Pos, Size, Pt string
}

// ShaderBuffer is the renderer's shader-assembly collaborator: it
// accumulates GLSL text and resource bindings for the pass currently
// being compiled, and is handed back to the renderer once Hook
// returns. THE CORE never interprets or validates the GLSL it
// produces; ShaderBuffer is an out-of-scope collaborator (spec.md
// §6), referenced only through this interface.
type ShaderBuffer interface {
	// BindTexture binds tex for sampling under a renderer-chosen
	// identifier set, returning the identifiers used to synthesize
	// the N_raw/N_pos/N_size/N_pt macros.
	BindTexture(tex HookTex) TexIdents

	// BindSampled binds a plain sampled texture (a LutTexture) and
	// returns the identifier to #define the logical name to.
	BindSampled(tex Texture) string

	// DeclareVar declares a global uniform of the given kind,
	// optionally dynamic (i.e. expected to change across
	// invocations within the same pipeline run, such as frame or
	// random), and returns its identifier.
	DeclareVar(kind VarKind, dynamic bool) string

	// RequestCompute switches the buffer to compute-shader mode
	// with the given workgroup size. It fails if the renderer
	// cannot satisfy compute dispatch at the current stage.
	RequestCompute(blockW, blockH int) error

	// RequireOutput reserves an output of the given size with no
	// input signature (the pass declares its own WIDTH/HEIGHT
	// rather than inheriting the input's).
	RequireOutput(w, h int) error

	// AppendHeader appends text to the shader's header section
	// (used for the pass body).
	AppendHeader(text string)

	// AppendMain appends text to the shader's main section (used
	// for the hook()/vec4 color = hook() call).
	AppendMain(text string)
}
