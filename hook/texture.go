// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package hook

import (
	"encoding/hex"
	"fmt"

	"github.com/gviegas/shaderhook/driver"
	"github.com/gviegas/shaderhook/internal/lex"
)

// textureHeader accumulates a //!TEXTURE block's sub-commands before
// the pixel payload and eventual upload (spec.md §4.E).
type textureHeader struct {
	name lex.BS
	driver.TextureDesc
	formatName lex.BS
}

// parseTexture builds one LutTexture from one //!TEXTURE block. gpu
// supplies the format table and size limits and performs the actual
// upload; a nil gpu is permitted for pure syntax checking (the
// texture is then left without a backing driver.Texture).
func parseTexture(gpu driver.GPU, block []byte) (lut LutTexture, rest []byte, err error) {
	// Defaults per spec.md §4.E: a //!TEXTURE block with no TEXTURE or
	// SIZE sub-command still parses, naming itself USER_TEX and
	// sizing itself 1x1.
	h := textureHeader{name: lex.BS("USER_TEX")}
	h.Dims = 2
	h.Width, h.Height, h.Depth = 1, 1, 0

	cur := block
	for startsWithHeader(cur) {
		var line lex.BS
		line, cur = lex.Line(cur)
		body, _ := lex.EatStart(line, lex.Header)
		cmd, args := lex.Command(body)
		if cmd.Equal("TEXTURE") {
			if !args.Empty() {
				h.name = args
			}
			continue
		}
		if err := applyTextureCommand(&h, cmd.String(), args); err != nil {
			return LutTexture{}, nil, err
		}
	}

	var payload lex.BS
	i := lex.FindHeader(cur)
	if i < 0 {
		payload = lex.Trim(cur)
		rest = nil
	} else {
		payload = lex.Trim(cur[:i])
		rest = cur[i:]
	}

	data := make([]byte, hex.DecodedLen(len(payload)))
	n, err := hex.Decode(data, payload)
	if err != nil {
		return LutTexture{}, nil, fmt.Errorf("%w: TEXTURE %s: invalid hex payload: %v", ErrSyntax, h.name, err)
	}
	data = data[:n]
	h.Data = data

	if gpu == nil {
		return LutTexture{Name: h.name}, rest, nil
	}

	if err := resolveFormat(gpu, &h); err != nil {
		return LutTexture{}, nil, err
	}
	if err := checkSizeLimits(gpu.Limits(), &h); err != nil {
		return LutTexture{}, nil, err
	}
	want := h.TexelSize
	for i := 0; i < h.Dims; i++ {
		switch i {
		case 0:
			want *= h.Width
		case 1:
			want *= h.Height
		case 2:
			want *= h.Depth
		}
	}
	if want != len(data) {
		return LutTexture{}, nil, fmt.Errorf("%w: TEXTURE %s: payload is %d bytes, want %d", ErrSemantic, h.name, len(data), want)
	}

	tex, err := gpu.NewTexture(&h.TextureDesc)
	if err != nil {
		return LutTexture{}, nil, fmt.Errorf("%w: TEXTURE %s: %v", ErrSemantic, h.name, err)
	}

	return LutTexture{Name: h.name, Tex: tex}, rest, nil
}

func applyTextureCommand(h *textureHeader, cmd string, args lex.BS) error {
	switch cmd {
	case "SIZE":
		toks := lex.SplitSpace(args)
		if len(toks) < 1 || len(toks) > 3 {
			return fmt.Errorf("%w: SIZE: want 1 to 3 ints, got %d", ErrSyntax, len(toks))
		}
		dims := make([]int, len(toks))
		for i, t := range toks {
			n, err := lex.ParseInt(t)
			if err != nil {
				return fmt.Errorf("%w: SIZE: %v", ErrSyntax, err)
			}
			dims[i] = n
		}
		h.Dims = len(dims)
		h.Width, h.Height, h.Depth = dims[0], 0, 0
		if len(dims) > 1 {
			h.Height = dims[1]
		}
		if len(dims) > 2 {
			h.Depth = dims[2]
		}

	case "FORMAT":
		h.formatName = args

	case "FILTER":
		switch args.String() {
		case "NEAREST":
			h.MinFilt, h.MagFilt = driver.FNearest, driver.FNearest
		case "LINEAR":
			h.MinFilt, h.MagFilt = driver.FLinear, driver.FLinear
		default:
			return fmt.Errorf("%w: FILTER: unrecognized %q", ErrSyntax, args)
		}

	case "BORDER":
		mode, err := parseAddrMode(args)
		if err != nil {
			return err
		}
		h.AddrU, h.AddrV, h.AddrW = mode, mode, mode

	default:
		return fmt.Errorf("%w: unrecognized command %q", ErrSyntax, cmd)
	}
	return nil
}

func parseAddrMode(s lex.BS) (driver.AddrMode, error) {
	switch s.String() {
	case "CLAMP":
		return driver.AClamp, nil
	case "REPEAT":
		return driver.AWrap, nil
	case "MIRROR":
		return driver.AMirror, nil
	}
	return 0, fmt.Errorf("%w: BORDER: unrecognized %q", ErrSyntax, s)
}

func resolveFormat(gpu driver.GPU, h *textureHeader) error {
	name := h.formatName.String()
	if name == "" {
		return fmt.Errorf("%w: TEXTURE %s: missing FORMAT", ErrSyntax, h.name)
	}
	for _, f := range gpu.Formats() {
		if f.Name != name {
			continue
		}
		if f.Opaque || !f.Caps.Has(driver.FmtSampleable) {
			return fmt.Errorf("%w: TEXTURE %s: format %q is not usable as a LUT", ErrSemantic, h.name, name)
		}
		if h.MinFilt == driver.FLinear || h.MagFilt == driver.FLinear {
			if !f.Caps.Has(driver.FmtLinear) {
				return fmt.Errorf("%w: TEXTURE %s: format %q does not support linear filtering", ErrSemantic, h.name, name)
			}
		}
		h.Format = f
		return nil
	}
	return fmt.Errorf("%w: TEXTURE %s: unknown format %q", ErrSemantic, h.name, name)
}

func checkSizeLimits(lim driver.Limits, h *textureHeader) error {
	var max int
	switch h.Dims {
	case 1:
		max = lim.MaxTex1D
	case 2:
		max = lim.MaxTex2D
	case 3:
		max = lim.MaxTex3D
	}
	if max == 0 {
		return nil
	}
	for i, d := range []int{h.Width, h.Height, h.Depth}[:h.Dims] {
		if d <= 0 || d > max {
			return fmt.Errorf("%w: TEXTURE %s: dimension %d (%d) exceeds limit %d", ErrSemantic, h.name, i, d, max)
		}
	}
	return nil
}
