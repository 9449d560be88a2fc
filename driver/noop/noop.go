// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package noop provides an in-memory driver.GPU/driver.ShaderBuffer
// implementation with no external dependencies, in the spirit of a
// software reference backend: it performs no real rendering, but
// faithfully tracks the bookkeeping THE CORE depends on (format
// enumeration, limits, texture bytes, bound identifiers, emitted
// text). It is the default driver used by this module's own tests
// and is suitable for tooling that only needs to lint shader
// documents without a real GPU.
package noop

import (
	"fmt"
	"sync/atomic"

	"github.com/gviegas/shaderhook/driver"
)

func init() { driver.Register(drv{}) }

// drv implements driver.Driver.
type drv struct{}

func (drv) Open() (driver.GPU, error) { return &GPU{}, nil }
func (drv) Name() string              { return "noop" }
func (drv) Close()                    {}

// formats is the fixed set of pixel formats the noop GPU enumerates.
// Names match what a //!TEXTURE FORMAT command would reference.
var formats = []driver.Format{
	{Name: "r8", Caps: driver.FmtSampleable | driver.FmtLinear, TexelSize: 1},
	{Name: "rg8", Caps: driver.FmtSampleable | driver.FmtLinear, TexelSize: 2},
	{Name: "rgba8", Caps: driver.FmtSampleable | driver.FmtLinear, TexelSize: 4},
	{Name: "r16f", Caps: driver.FmtSampleable | driver.FmtLinear, TexelSize: 2},
	{Name: "rgba16f", Caps: driver.FmtSampleable | driver.FmtLinear, TexelSize: 8},
	{Name: "r32f", Caps: driver.FmtSampleable, TexelSize: 4},
	{Name: "rgba32f", Caps: driver.FmtSampleable, TexelSize: 16},
	{Name: "bc1", Caps: 0, TexelSize: 8, Opaque: true},
}

// GPU is an in-memory driver.GPU.
type GPU struct{}

func (*GPU) Driver() driver.Driver { return drv{} }
func (*GPU) Formats() []driver.Format {
	f := make([]driver.Format, len(formats))
	copy(f, formats)
	return f
}

func (*GPU) Limits() driver.Limits {
	return driver.Limits{MaxTex1D: 16384, MaxTex2D: 16384, MaxTex3D: 2048}
}

// NewTexture copies desc.Data into a new Texture. The copy means the
// caller (THE CORE's texture-block parser) is free to discard its
// own buffer once this returns, matching spec.md §4.E's "the
// in-memory copy is then released".
func (*GPU) NewTexture(desc *driver.TextureDesc) (driver.Texture, error) {
	data := make([]byte, len(desc.Data))
	copy(data, desc.Data)
	return &Texture{dim: desc.Dim3D, format: desc.Format.Name, data: data}, nil
}

// Texture is an in-memory driver.Texture.
type Texture struct {
	dim       driver.Dim3D
	format    string
	data      []byte
	destroyed bool
}

func (t *Texture) Dim() driver.Dim3D { return t.dim }
func (t *Texture) Destroy()          { t.destroyed = true }

// Destroyed reports whether Destroy has been called, for tests that
// assert LUT textures are released on hook.Object.Destroy.
func (t *Texture) Destroyed() bool { return t.destroyed }

// ShaderBuffer is an in-memory driver.ShaderBuffer. It never fails
// unless FailCompute/FailOutput are set, which tests use to exercise
// THE CORE's DispatchFailure error paths (spec.md §7).
type ShaderBuffer struct {
	Header, Main string

	Compute          bool
	ComputeBlockW    int
	ComputeBlockH    int
	OutputW, OutputH int

	FailCompute bool
	FailOutput  bool

	boundTex     []driver.HookTex
	boundSampled []driver.Texture
	vars         []driver.VarKind

	seq atomic.Int64
}

func (s *ShaderBuffer) next(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, s.seq.Add(1))
}

func (s *ShaderBuffer) BindTexture(tex driver.HookTex) driver.TexIdents {
	s.boundTex = append(s.boundTex, tex)
	n := s.next("tex")
	return driver.TexIdents{
		Raw:  n + "_raw",
		Pos:  n + "_pos",
		Size: n + "_size",
		Pt:   n + "_pt",
	}
}

func (s *ShaderBuffer) BindSampled(tex driver.Texture) string {
	s.boundSampled = append(s.boundSampled, tex)
	return s.next("sampled")
}

func (s *ShaderBuffer) DeclareVar(kind driver.VarKind, dynamic bool) string {
	s.vars = append(s.vars, kind)
	return s.next("var")
}

func (s *ShaderBuffer) RequestCompute(blockW, blockH int) error {
	if s.FailCompute {
		return fmt.Errorf("noop: compute dispatch refused")
	}
	s.Compute = true
	s.ComputeBlockW, s.ComputeBlockH = blockW, blockH
	return nil
}

func (s *ShaderBuffer) RequireOutput(w, h int) error {
	if s.FailOutput {
		return fmt.Errorf("noop: output requirement refused")
	}
	s.OutputW, s.OutputH = w, h
	return nil
}

func (s *ShaderBuffer) AppendHeader(text string) { s.Header += text }
func (s *ShaderBuffer) AppendMain(text string)   { s.Main += text }

// BoundTextureCount returns how many HookTex bindings were recorded,
// for test assertions.
func (s *ShaderBuffer) BoundTextureCount() int { return len(s.boundTex) }

// BoundSampledCount returns how many plain sampled bindings were
// recorded, for test assertions.
func (s *ShaderBuffer) BoundSampledCount() int { return len(s.boundSampled) }
