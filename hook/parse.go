// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package hook

import (
	"fmt"

	"github.com/gviegas/shaderhook/driver"
	"github.com/gviegas/shaderhook/internal/lex"
	"github.com/gviegas/shaderhook/stage"
)

// Parse builds an Object from a complete hook document (spec.md §4.F
// "Document dispatcher"). gpu is used to validate and upload
// //!TEXTURE blocks; it may be nil to parse syntax only, in which
// case every LutTexture.Tex is left nil.
func Parse(gpu driver.GPU, text []byte, opts ...Option) (*Object, error) {
	o := &Object{opts: defaultOptions(), prng: seedConstant}
	for _, opt := range opts {
		opt(&o.opts)
	}

	src := make([]byte, len(text))
	copy(src, text)
	o.src = src

	i := lex.FindHeader(o.src)
	if i < 0 {
		return nil, fmt.Errorf("%w: no %q marker found in document", ErrSyntax, lex.Header)
	}
	cur := o.src[i:]

	for len(cur) > 0 {
		if o.opts.maxPasses > 0 && len(o.passes) >= o.opts.maxPasses {
			return nil, fmt.Errorf("%w: more than %d passes", ErrSemantic, o.opts.maxPasses)
		}
		if isTextureBlock(cur) {
			if o.opts.maxTextures > 0 && len(o.lutTextures) >= o.opts.maxTextures {
				return nil, fmt.Errorf("%w: more than %d textures", ErrSemantic, o.opts.maxTextures)
			}
			lut, rest, err := parseTexture(gpu, cur)
			if err != nil {
				o.opts.log.Error().Err(err).Msg("hook: TEXTURE block failed")
				return nil, err
			}
			o.lutTextures = append(o.lutTextures, lut)
			o.opts.log.Trace().Str("name", lut.Name.String()).Msg("hook: registered TEXTURE")
			cur = rest
			continue
		}

		if o.opts.maxPasses > 0 && len(o.passes) >= o.opts.maxPasses {
			return nil, fmt.Errorf("%w: more than %d passes", ErrSemantic, o.opts.maxPasses)
		}
		p, rest, warnNoHook, err := parsePass(cur)
		if err != nil {
			o.opts.log.Error().Err(err).Msg("hook: pass header failed")
			return nil, err
		}
		if warnNoHook {
			if o.opts.strict {
				return nil, fmt.Errorf("%w: pass %q declares no HOOK stage", ErrSemantic, p.Desc)
			}
			o.opts.log.Warn().Str("desc", p.Desc.String()).Msg("hook: pass declares no HOOK stage")
		}
		o.registerPass(p)
		o.opts.log.Trace().Str("desc", p.Desc.String()).Msg("hook: registered pass")
		cur = rest
	}

	return o, nil
}

// isTextureBlock reports whether the "//!"-headed block at the
// front of buf is a //!TEXTURE block rather than a pass header.
func isTextureBlock(buf []byte) bool {
	body, _ := lex.EatStart(buf, lex.Header)
	cmd, _ := lex.Command(body)
	return cmd.Equal("TEXTURE")
}

// registerPass computes p's exec_stages from its HOOK list, folds it
// into the Object's save/stages bitsets (spec.md §4.H), and appends
// the registered entry.
func (o *Object) registerPass(p PassHook) {
	var exec stage.Stage
	for _, name := range p.HookTex() {
		exec |= stage.FromText(name.String())
	}

	for _, name := range p.BindTex() {
		o.saveStages |= stage.FromText(name.String())
		if name.Equal("HOOKED") {
			o.saveStages |= exec
		}
	}

	o.passes = append(o.passes, passEntry{execStages: exec, hook: p})
	o.stages |= exec
	o.stages |= o.saveStages
}
