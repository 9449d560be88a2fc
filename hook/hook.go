// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package hook implements the mpv-style user shader hook format: a
// document parser, RPN-driven size/condition evaluation and a
// multi-pass execution engine, producing a HookObject that a host
// renderer drives through reset/Hook/Save calls once per frame
// (spec.md, THE CORE).
package hook

import (
	"github.com/gviegas/shaderhook/driver"
	"github.com/gviegas/shaderhook/internal/lex"
	"github.com/gviegas/shaderhook/linear"
	"github.com/gviegas/shaderhook/rpn"
	"github.com/gviegas/shaderhook/stage"
)

const hookPrefix = "hook: "

// maxHookTex and maxBindTex bound PassHook's HOOK/BIND lists
// (spec.md §9 "Fixed-capacity vectors"). Retained for format
// compatibility even though Go has no inherent need for a fixed
// array here.
const (
	maxHookTex = 16
	maxBindTex = 16
)

// PassHook describes one user pass, built by the pass header parser
// (spec.md §4.D).
type PassHook struct {
	Desc lex.BS

	hookTex  [maxHookTex]lex.BS
	nHookTex int
	bindTex  [maxBindTex]lex.BS
	nBindTex int

	SaveTex lex.BS
	Body    lex.BS

	Offset     linear.Affine2
	Components int32

	Width, Height rpn.Expr
	Cond          rpn.Expr

	IsCompute          bool
	BlockW, BlockH     int32
	ThreadsW, ThreadsH int32
}

// HookTex returns the pass's declared HOOK stage names.
func (p *PassHook) HookTex() []lex.BS { return p.hookTex[:p.nHookTex] }

// BindTex returns the pass's declared BIND texture names.
func (p *PassHook) BindTex() []lex.BS { return p.bindTex[:p.nBindTex] }

func defaultPassHook() PassHook {
	var p PassHook
	p.Desc = lex.BS("(unknown)")
	p.Offset = linear.Identity()
	p.Width = hookedDim(rpn.VarW)
	p.Height = hookedDim(rpn.VarH)
	p.Cond = constExpr(1)
	return p
}

func hookedDim(kind rpn.Kind) rpn.Expr {
	var e rpn.Expr
	e[0] = rpn.Token{Kind: kind, Name: lex.BS("HOOKED")}
	return e
}

func constExpr(v float32) rpn.Expr {
	var e rpn.Expr
	e[0] = rpn.Token{Kind: rpn.Const, Const: v}
	return e
}

// LutTexture is an auxiliary lookup texture declared by a //!TEXTURE
// block. It owns tex and must be released by Object.Destroy.
type LutTexture struct {
	Name lex.BS
	Tex  driver.Texture
}

// PassTexture is a dynamic binding entry in the Object's per-frame
// table: either the implicit input of a stage, or a texture saved
// via Object.Save.
type PassTexture struct {
	Name lex.BS
	Tex  driver.HookTex
}

// passEntry is a registered pass together with its precomputed
// exec_stages bitset (spec.md §4.H).
type passEntry struct {
	execStages stage.Stage
	hook       PassHook
}

// Object is the aggregate produced by Parse: the parsed passes and
// LUT textures, and the per-frame dynamic state the execution engine
// mutates (spec.md §3).
type Object struct {
	passes      []passEntry
	lutTextures []LutTexture

	// saveStages is the union of stage flags whose output any pass
	// wants bound; precomputed at registration.
	saveStages stage.Stage
	// stages is the union of saveStages and every pass's
	// exec_stages; the host polls this to know when to call Hook.
	stages stage.Stage

	passTextures []PassTexture

	frameCount int32
	prng       prngState

	src []byte // owned copy of the source document

	opts options
}

// Stages returns the union of stages the host must call Hook/Save
// for.
func (o *Object) Stages() stage.Stage { return o.stages }

// SaveStages returns the union of stages whose output any pass
// wishes to bind.
func (o *Object) SaveStages() stage.Stage { return o.saveStages }

// Passes exposes the registered passes in registration order, for
// introspection (e.g. cmd/shaderhook-lint).
func (o *Object) Passes() []PassHook {
	out := make([]PassHook, len(o.passes))
	for i := range o.passes {
		out[i] = o.passes[i].hook
	}
	return out
}

// LutTextures exposes the registered LUT textures in registration
// order.
func (o *Object) LutTextures() []LutTexture {
	out := make([]LutTexture, len(o.lutTextures))
	copy(out, o.lutTextures)
	return out
}

// Reset clears the per-frame dynamic texture table. frame_count and
// the PRNG state persist across frames (spec.md "Reset").
func (o *Object) Reset() {
	o.passTextures = o.passTextures[:0]
}

// Destroy releases every owned LUT texture and the backing source
// buffer.
func (o *Object) Destroy() {
	for i := range o.lutTextures {
		if o.lutTextures[i].Tex != nil {
			o.lutTextures[i].Tex.Destroy()
		}
	}
	o.lutTextures = nil
	o.passes = nil
	o.passTextures = nil
	o.src = nil
}
