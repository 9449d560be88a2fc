// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package hook

import (
	"bytes"
	"fmt"

	"github.com/gviegas/shaderhook/internal/lex"
	"github.com/gviegas/shaderhook/rpn"
)

// parsePass builds one PassHook from one //!-delimited block,
// consuming leading "//!COMMAND args" header lines and then the
// body up to the next "//!" occurrence (spec.md §4.D). It returns
// the parsed pass, the unconsumed remainder of the document (with
// "//!" restored to its head, or nil at EOF), and whether the pass
// has zero HOOK entries (a non-fatal ParseWarning the caller may log
// or, under WithStrict, reject).
func parsePass(block []byte) (p PassHook, rest []byte, warnNoHook bool, err error) {
	p = defaultPassHook()

	cur := block
	for startsWithHeader(cur) {
		var line lex.BS
		line, cur = lex.Line(cur)
		body, _ := lex.EatStart(line, lex.Header)
		cmd, args := lex.Command(body)
		if err := applyPassCommand(&p, cmd.String(), args); err != nil {
			return PassHook{}, nil, false, err
		}
	}

	i := lex.FindHeader(cur)
	if i < 0 {
		p.Body = lex.BS(cur)
		rest = nil
	} else {
		p.Body = lex.BS(cur[:i])
		rest = cur[i:]
	}

	return p, rest, p.nHookTex == 0, nil
}

func startsWithHeader(b []byte) bool { return bytes.HasPrefix(b, []byte(lex.Header)) }

func applyPassCommand(p *PassHook, cmd string, args lex.BS) error {
	switch cmd {
	case "HOOK":
		if p.nHookTex >= maxHookTex {
			return fmt.Errorf("%w: HOOK: more than %d stages", ErrSyntax, maxHookTex)
		}
		p.hookTex[p.nHookTex] = args
		p.nHookTex++

	case "BIND":
		if p.nBindTex >= maxBindTex {
			return fmt.Errorf("%w: BIND: more than %d textures", ErrSyntax, maxBindTex)
		}
		p.bindTex[p.nBindTex] = args
		p.nBindTex++

	case "SAVE":
		p.SaveTex = args

	case "DESC":
		p.Desc = args

	case "OFFSET":
		toks := lex.SplitSpace(args)
		if len(toks) != 2 {
			return fmt.Errorf("%w: OFFSET: want 2 floats, got %d", ErrSyntax, len(toks))
		}
		x, err := lex.ParseFloat32(toks[0])
		if err != nil {
			return fmt.Errorf("%w: OFFSET: %v", ErrSyntax, err)
		}
		y, err := lex.ParseFloat32(toks[1])
		if err != nil {
			return fmt.Errorf("%w: OFFSET: %v", ErrSyntax, err)
		}
		p.Offset.Translation = [2]float32{x, y}

	case "WIDTH":
		e, err := rpn.Parse(args)
		if err != nil {
			return fmt.Errorf("%w: WIDTH: %v", ErrSyntax, err)
		}
		p.Width = e

	case "HEIGHT":
		e, err := rpn.Parse(args)
		if err != nil {
			return fmt.Errorf("%w: HEIGHT: %v", ErrSyntax, err)
		}
		p.Height = e

	case "WHEN":
		e, err := rpn.Parse(args)
		if err != nil {
			return fmt.Errorf("%w: WHEN: %v", ErrSyntax, err)
		}
		p.Cond = e

	case "COMPONENTS":
		n, err := lex.ParseInt(args)
		if err != nil {
			return fmt.Errorf("%w: COMPONENTS: %v", ErrSyntax, err)
		}
		p.Components = int32(n)

	case "COMPUTE":
		toks := lex.SplitSpace(args)
		if len(toks) != 2 && len(toks) != 4 {
			return fmt.Errorf("%w: COMPUTE: want 2 or 4 ints, got %d", ErrSyntax, len(toks))
		}
		ints := make([]int32, len(toks))
		for i, t := range toks {
			n, err := lex.ParseInt(t)
			if err != nil {
				return fmt.Errorf("%w: COMPUTE: %v", ErrSyntax, err)
			}
			ints[i] = int32(n)
		}
		p.IsCompute = true
		p.BlockW, p.BlockH = ints[0], ints[1]
		if len(ints) == 4 {
			p.ThreadsW, p.ThreadsH = ints[2], ints[3]
		}

	default:
		return fmt.Errorf("%w: unrecognized command %q", ErrSyntax, cmd)
	}
	return nil
}
