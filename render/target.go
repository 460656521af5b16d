// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// Target is a CPU-backed render target over a gg drawing context.
//
// Example:
//
//	target := render.NewTarget(800, 600)
//	defer target.Close()
//	renderer.Render(target, frame)
//	img := target.Image()
type Target struct {
	dc *gg.Context
}

// NewTarget creates a width x height target.
func NewTarget(width, height int) *Target {
	return &Target{dc: gg.NewContext(width, height)}
}

// Width returns the target width in pixels.
func (t *Target) Width() int {
	return t.dc.Width()
}

// Height returns the target height in pixels.
func (t *Target) Height() int {
	return t.dc.Height()
}

// Format returns the pixel format (RGBA8).
func (t *Target) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Context returns the underlying drawing context.
func (t *Target) Context() *gg.Context {
	return t.dc
}

// Image returns the rendered image. It shares memory with the target.
func (t *Target) Image() image.Image {
	return t.dc.Image()
}

// EncodePNG writes the target as PNG to w.
func (t *Target) EncodePNG(w io.Writer) error {
	return t.dc.EncodePNG(w)
}

// SavePNG writes the target as PNG to path.
func (t *Target) SavePNG(path string) error {
	return t.dc.SavePNG(path)
}

// Resize changes the target dimensions. The contents are not preserved.
func (t *Target) Resize(width, height int) error {
	return t.dc.Resize(width, height)
}

// Close releases the drawing context.
func (t *Target) Close() error {
	return t.dc.Close()
}
