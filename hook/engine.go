// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package hook

import (
	"fmt"
	"strings"

	"github.com/gviegas/shaderhook/driver"
	"github.com/gviegas/shaderhook/internal/lex"
	"github.com/gviegas/shaderhook/rpn"
	"github.com/gviegas/shaderhook/stage"
)

// Status is the bitset Hook returns to tell the host what to do next
// (spec.md §4.I step 10).
type Status uint8

const (
	// Save tells the host to invoke Object.Save once it has produced
	// the pass's output texture.
	Save Status = 1 << iota
	// Again tells the host that more passes remain for this stage and
	// it must call Hook again with Count incremented.
	Again
)

// Params is the per-invocation input shared by Hook and Save
// (spec.md §4.I).
type Params struct {
	// Stage is the pipeline stage this invocation targets.
	Stage stage.Stage
	// Tex is the current input texture (HOOKED).
	Tex driver.HookTex
	// SrcRect is NATIVE_CROPPED: the crop rectangle within Tex.
	SrcRect driver.Rect
	// DstRect is OUTPUT: the target rectangle of the frame.
	DstRect driver.Rect
	// Buffer accumulates the shader text and bindings for this
	// invocation. Required by Hook; unused by Save.
	Buffer driver.ShaderBuffer
	// Count is the zero-based index of this invocation within Stage,
	// incremented by the host each time the previous Hook call on
	// this stage returned Again.
	Count int
}

// selectPass walks passes in registration order, returning the
// (count)-th one whose exec_stages intersects s and the total number
// of passes that do, in a single pass (spec.md §4.I steps 2-3).
func (o *Object) selectPass(s stage.Stage, count int) (sel *passEntry, total int) {
	matched := 0
	for i := range o.passes {
		if !o.passes[i].execStages.Intersects(s) {
			continue
		}
		if matched == count {
			sel = &o.passes[i]
		}
		matched++
	}
	return sel, matched
}

// dimLookup returns the rpn.Lookup resolving HOOKED, NATIVE_CROPPED,
// OUTPUT and the dynamic pass_textures table (spec.md §4.I step 4).
func (o *Object) dimLookup(p *Params) rpn.Lookup {
	return func(name string) (w, h float32, ok bool) {
		switch name {
		case "HOOKED":
			d := p.Tex.Dim()
			return float32(d.Width), float32(d.Height), true
		case "NATIVE_CROPPED":
			return p.SrcRect.Width, p.SrcRect.Height, true
		case "OUTPUT":
			return p.DstRect.Width, p.DstRect.Height, true
		}
		for i := range o.passTextures {
			if o.passTextures[i].Name.Equal(name) {
				d := o.passTextures[i].Tex.Dim()
				return float32(d.Width), float32(d.Height), true
			}
		}
		return 0, 0, false
	}
}

// Hook runs the execution engine for one invocation (spec.md §4.I).
// It returns the accumulated Status bits, or an error if evaluation
// or dispatch failed. An error leaves no partial pass_textures append;
// the implicit input save of step 1, which runs before any step that
// can fail, is kept.
func (o *Object) Hook(p *Params) (Status, error) {
	stageName := stage.Text(p.Stage)

	// Step 1: implicit save of the input texture.
	if p.Count == 0 && o.saveStages.Intersects(p.Stage) && stageName != "" {
		already := false
		for i := range o.passTextures {
			if o.passTextures[i].Name.Equal(stageName) {
				already = true
				break
			}
		}
		if !already {
			o.passTextures = append(o.passTextures, PassTexture{Name: lex.BS(stageName), Tex: p.Tex})
		}
	}

	// Steps 2-3: select pass.
	pass, total := o.selectPass(p.Stage, p.Count)
	if pass == nil {
		return 0, nil
	}

	lookup := o.dimLookup(p)

	// Step 4: evaluate condition.
	cond, err := rpn.Eval(&pass.hook.Cond, lookup)
	if err != nil {
		o.opts.log.Error().Err(err).Msg("hook: WHEN evaluation failed")
		return 0, fmt.Errorf("%w: %w", ErrEval, err)
	}
	if cond == 0 {
		// Skip to step 10: no Save, but Again still reports later passes.
		if p.Count+1 < total {
			return Again, nil
		}
		return 0, nil
	}

	// Step 5: compute-dispatch.
	if pass.hook.IsCompute {
		if err := p.Buffer.RequestCompute(int(pass.hook.BlockW), int(pass.hook.BlockH)); err != nil {
			o.opts.log.Error().Err(err).Msg("hook: RequestCompute failed")
			return 0, fmt.Errorf("%w: %v", ErrDispatch, err)
		}
	}

	// Step 6: evaluate size.
	w, err := rpn.Eval(&pass.hook.Width, lookup)
	if err != nil {
		o.opts.log.Error().Err(err).Msg("hook: WIDTH evaluation failed")
		return 0, fmt.Errorf("%w: %w", ErrEval, err)
	}
	h, err := rpn.Eval(&pass.hook.Height, lookup)
	if err != nil {
		o.opts.log.Error().Err(err).Msg("hook: HEIGHT evaluation failed")
		return 0, fmt.Errorf("%w: %w", ErrEval, err)
	}
	if err := p.Buffer.RequireOutput(int(w), int(h)); err != nil {
		o.opts.log.Error().Err(err).Msg("hook: RequireOutput failed")
		return 0, fmt.Errorf("%w: %v", ErrDispatch, err)
	}

	// Step 7: bind textures.
	for _, name := range pass.hook.BindTex() {
		o.bindOne(p, name)
	}

	// Step 8: global preamble.
	o.emitPreamble(p)

	// Step 9: splice body.
	p.Buffer.AppendHeader(pass.hook.Body.String())
	if pass.hook.IsCompute {
		p.Buffer.AppendMain("hook();")
	} else {
		p.Buffer.AppendMain("vec4 color = hook();")
	}

	// Step 10: status.
	var ret Status
	if !pass.hook.SaveTex.Empty() {
		ret |= Save
	}
	if p.Count+1 < total {
		ret |= Again
	}
	return ret, nil
}

// Save records the output texture of the pass that last returned
// Save for params.Stage, re-running the selection walk to identify
// it (spec.md §4.J).
func (o *Object) Save(p *Params) error {
	pass, _ := o.selectPass(p.Stage, p.Count)
	if pass == nil || pass.hook.SaveTex.Empty() {
		return fmt.Errorf("%w: save: no pass at stage %s count %d declares SAVE", ErrSemantic, stage.Text(p.Stage), p.Count)
	}
	o.passTextures = append(o.passTextures, PassTexture{Name: pass.hook.SaveTex, Tex: p.Tex})
	o.opts.log.Trace().Str("name", pass.hook.SaveTex.String()).Msg("hook: saved pass texture")
	return nil
}

// bindOne binds one non-empty bind_tex entry under its logical name
// (spec.md §4.I step 7). Unresolved names are silently skipped, per
// the "silent skip" behavior preserved for mpv compatibility.
func (o *Object) bindOne(p *Params, name lex.BS) {
	n := name.String()
	if n == "" {
		return
	}

	if n == "HOOKED" {
		idents := p.Buffer.BindTexture(p.Tex)
		emitBindingPreamble(p.Buffer, "HOOKED", idents, p.SrcRect, p.Tex.Repr)
		if sn := stage.Text(p.Stage); sn != "" {
			emitBindingPreamble(p.Buffer, sn, idents, p.SrcRect, p.Tex.Repr)
		}
		return
	}

	for i := range o.lutTextures {
		if o.lutTextures[i].Name.Equal(n) {
			ident := p.Buffer.BindSampled(o.lutTextures[i].Tex)
			p.Buffer.AppendHeader(fmt.Sprintf("#define %s %s\n", n, ident))
			return
		}
	}

	for i := range o.passTextures {
		if o.passTextures[i].Name.Equal(n) {
			tex := o.passTextures[i].Tex
			idents := p.Buffer.BindTexture(tex)
			emitBindingPreamble(p.Buffer, n, idents, tex.Crop, tex.Repr)
			return
		}
	}

	o.opts.log.Trace().Str("name", n).Msg("hook: BIND references unknown texture")
}

// emitBindingPreamble writes the N_raw/N_pos/N_size/N_pt/N_off/N_mul/
// N_rot/N_tex/N_texOff macro set for logical name N, exactly as
// spec.md §4.I mandates: these names are an external compatibility
// contract with user shader bodies, not an implementation detail.
func emitBindingPreamble(sh driver.ShaderBuffer, name string, idents driver.TexIdents, crop driver.Rect, repr driver.ColorRepr) {
	mul := repr.Normalize()
	var b strings.Builder
	fmt.Fprintf(&b, "#define %s_raw   %s\n", name, idents.Raw)
	fmt.Fprintf(&b, "#define %s_pos   %s\n", name, idents.Pos)
	fmt.Fprintf(&b, "#define %s_size  %s\n", name, idents.Size)
	fmt.Fprintf(&b, "#define %s_pt    %s\n", name, idents.Pt)
	fmt.Fprintf(&b, "#define %s_off   vec2(%g, %g)\n", name, crop.X, crop.Y)
	fmt.Fprintf(&b, "#define %s_mul   %g\n", name, mul)
	fmt.Fprintf(&b, "#define %s_rot   mat2(1.0, 0.0, 0.0, 1.0)\n", name)
	fmt.Fprintf(&b, "#define %s_tex(pos)     (%s_mul * vec4(texture(%s_raw, pos)))\n", name, name, name)
	fmt.Fprintf(&b, "#define %s_texOff(off)  (%s_tex(%s_pos + %s_pt * vec2(off)))\n", name, name, name, name)
	sh.AppendHeader(b.String())
}

// emitPreamble declares and initializes the frame/random/input_size/
// target_size/tex_offset globals (spec.md §4.I step 8). frame_count
// advances on every invocation that reaches this step; prng_state
// advances by exactly one xoshiro256+ step.
func (o *Object) emitPreamble(p *Params) {
	frameIdent := p.Buffer.DeclareVar(driver.VarInt, true)
	randomIdent := p.Buffer.DeclareVar(driver.VarFloat, true)
	inputSizeIdent := p.Buffer.DeclareVar(driver.VarVec2, false)
	targetSizeIdent := p.Buffer.DeclareVar(driver.VarVec2, false)
	texOffsetIdent := p.Buffer.DeclareVar(driver.VarVec2, false)

	o.frameCount++
	rnd := o.prng.randomFloat32()

	var b strings.Builder
	fmt.Fprintf(&b, "const int %s = %d;\n", frameIdent, o.frameCount)
	fmt.Fprintf(&b, "const float %s = %g;\n", randomIdent, rnd)
	fmt.Fprintf(&b, "const vec2 %s = vec2(%g, %g);\n", inputSizeIdent, p.SrcRect.Width, p.SrcRect.Height)
	fmt.Fprintf(&b, "const vec2 %s = vec2(%g, %g);\n", targetSizeIdent, p.DstRect.Width, p.DstRect.Height)
	fmt.Fprintf(&b, "const vec2 %s = vec2(%g, %g);\n", texOffsetIdent, p.SrcRect.X, p.SrcRect.Y)
	p.Buffer.AppendHeader(b.String())
}
