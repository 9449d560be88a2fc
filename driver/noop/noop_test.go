// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package noop_test

import (
	"testing"

	"github.com/gviegas/shaderhook/driver"
	"github.com/gviegas/shaderhook/driver/noop"
)

func findDriver(t *testing.T) driver.Driver {
	t.Helper()
	for _, d := range driver.Drivers() {
		if d.Name() == "noop" {
			return d
		}
	}
	t.Fatal("noop driver not registered")
	return nil
}

func TestOpen(t *testing.T) {
	gpu, err := findDriver(t).Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(gpu.Formats()) == 0 {
		t.Error("Formats: expected a non-empty set")
	}
	lim := gpu.Limits()
	if lim.MaxTex2D <= 0 {
		t.Error("Limits: expected a positive MaxTex2D")
	}
}

func TestNewTexture(t *testing.T) {
	gpu, _ := findDriver(t).Open()
	data := []byte{1, 2, 3, 4}
	tex, err := gpu.NewTexture(&driver.TextureDesc{
		Dim3D:  driver.Dim3D{Width: 1, Height: 1},
		Dims:   2,
		Format: driver.Format{Name: "rgba8", TexelSize: 4},
		Data:   data,
	})
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	if tex.Dim().Width != 1 || tex.Dim().Height != 1 {
		t.Errorf("Dim: got %+v", tex.Dim())
	}
	nt := tex.(*noop.Texture)
	if nt.Destroyed() {
		t.Error("Destroyed: expected false before Destroy")
	}
	// NewTexture copies desc.Data, so mutating the caller's slice
	// leaves the texture untouched; the texture's bytes are not
	// inspected here.
	data[0] = 0xff
	tex.Destroy()
	if !nt.Destroyed() {
		t.Error("Destroyed: expected true after Destroy")
	}
}

func TestShaderBuffer(t *testing.T) {
	var sb noop.ShaderBuffer
	ids := sb.BindTexture(driver.HookTex{})
	if ids.Raw == "" || ids.Pos == "" || ids.Size == "" || ids.Pt == "" {
		t.Errorf("BindTexture: empty identifier in %+v", ids)
	}
	if sb.BoundTextureCount() != 1 {
		t.Errorf("BoundTextureCount: got %d, want 1", sb.BoundTextureCount())
	}
	if name := sb.BindSampled(nil); name == "" {
		t.Error("BindSampled: empty identifier")
	}
	if sb.BoundSampledCount() != 1 {
		t.Errorf("BoundSampledCount: got %d, want 1", sb.BoundSampledCount())
	}
	if err := sb.RequestCompute(8, 8); err != nil {
		t.Fatalf("RequestCompute: %v", err)
	}
	if !sb.Compute || sb.ComputeBlockW != 8 || sb.ComputeBlockH != 8 {
		t.Errorf("RequestCompute: state not recorded, got %+v", sb)
	}
	sb.FailOutput = true
	if err := sb.RequireOutput(4, 4); err == nil {
		t.Error("RequireOutput: expected error when FailOutput is set")
	}
	sb.AppendHeader("vec4 hook() { return vec4(1.0); }\n")
	sb.AppendMain("hook();\n")
	if sb.Header == "" || sb.Main == "" {
		t.Error("AppendHeader/AppendMain: text not recorded")
	}
}
