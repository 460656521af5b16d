// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/gg-gwas"
)

// SoftwareRenderer rasterizes frames on the CPU with gg.
//
// Each draw call becomes one filled path: every visible vertex of the
// chromosome adds a circle, and the path is filled once in the chromosome's
// palette colour.
//
// Example:
//
//	r, _ := render.NewSoftwareRenderer(data.Buffers(nil))
//	target := render.NewTarget(800, 600)
//	r.Render(target, app.Frame())
type SoftwareRenderer struct {
	buffers gwas.VertexBuffers
	opts    options

	// face is nil unless labels or the caption are enabled.
	face    text.Face
	printer *message.Printer
}

// NewSoftwareRenderer creates a renderer that owns buffers. The buffers must
// not be modified afterwards.
func NewSoftwareRenderer(buffers gwas.VertexBuffers, opts ...Option) (*SoftwareRenderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &SoftwareRenderer{
		buffers: buffers,
		opts:    o,
		printer: message.NewPrinter(language.English),
	}
	if o.labels || o.caption {
		source, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("render: load label font: %w", err)
		}
		r.face = source.Face(o.fontSize)
	}
	return r, nil
}

// Render draws frame to target. The target is cleared before the first draw
// call, or once if the frame has no calls.
func (r *SoftwareRenderer) Render(target *Target, frame gwas.Frame) error {
	if target == nil {
		return ErrNilTarget
	}
	dc := target.Context()
	w, h := float64(target.Width()), float64(target.Height())

	if len(frame.Calls) == 0 {
		dc.ClearWithColor(r.opts.background)
	}
	points := 0
	for i, call := range frame.Calls {
		if i == 0 {
			dc.ClearWithColor(r.opts.background)
		}
		n, err := r.draw(dc, call, w, h)
		if err != nil {
			return fmt.Errorf("render: chromosome %s: %w", call.Chromosome, err)
		}
		points += n
	}

	if r.face != nil {
		dc.SetFont(r.face)
		c := r.opts.labelColor
		dc.SetRGBA(c.R, c.G, c.B, c.A)
		if r.opts.labels {
			r.drawLabels(dc, frame, w, h)
		}
		if r.opts.caption {
			dc.DrawStringAnchored(r.Caption(frame), 4, 4, 0, 1)
		}
	}

	gwas.Logger().Debug("frame rendered", "calls", len(frame.Calls), "points", points,
		"width", target.Width(), "height", target.Height())
	return nil
}

func (r *SoftwareRenderer) draw(dc *gg.Context, call gwas.DrawCall, w, h float64) (int, error) {
	if call.VertexCount == 0 {
		return 0, nil
	}
	vs, ok := r.buffers.Get(call.Chromosome)
	if !ok {
		gwas.Logger().Debug("no vertex buffer", "chromosome", call.Chromosome)
		return 0, nil
	}
	count := min(call.VertexCount, len(vs))

	m := call.Block.Matrix
	floor := call.Block.ValueFloor
	radius := r.opts.pointRadius
	margin := 2 * radius / w

	n := 0
	for _, v := range vs[:count] {
		score := float64(v.Y)
		if score < floor {
			continue
		}
		x := m.ApplyX(float64(v.X))
		if x < -1-margin || x > 1+margin {
			continue
		}
		y := call.Block.VerticalOffset + (score-floor)*r.opts.scoreScale
		px, py := toPixel(x, y, w, h)
		dc.DrawCircle(px, py, radius)
		n++
	}
	if n == 0 {
		return 0, nil
	}

	c := r.opts.palette[call.Index%len(r.opts.palette)]
	dc.SetRGBA(c.R, c.G, c.B, c.A)
	return n, dc.Fill()
}

// toPixel maps normalized device coordinates (y up) to pixels (y down).
func toPixel(x, y, w, h float64) (float64, float64) {
	return (x + 1) / 2 * w, (1 - y) / 2 * h
}

func (r *SoftwareRenderer) drawLabels(dc *gg.Context, frame gwas.Frame, w, h float64) {
	toScreen := frame.View.BasepairToScreenMap()
	y := h - r.opts.fontSize
	for _, call := range frame.Calls {
		mid := float64(call.Offset) + float64(call.Length)/2
		x := toScreen.ApplyX(mid) * w
		if x < 0 || x > w {
			continue
		}
		dc.DrawStringAnchored(call.Chromosome, x, y, 0.5, 0.5)
	}
}

// Caption describes the visible window as "chr:pos-chr:pos", with positions
// grouped by thousands. Ends that fall into padding or outside the track are
// shown as global coordinates.
func (r *SoftwareRenderer) Caption(frame gwas.Frame) string {
	from, to := frame.View.Visible()
	return r.locus(frame.Calls, from) + "-" + r.locus(frame.Calls, to)
}

func (r *SoftwareRenderer) locus(calls []gwas.DrawCall, global float64) string {
	for _, c := range calls {
		start := float64(c.Offset)
		if global >= start && global < start+float64(c.Length) {
			return r.printer.Sprintf("%s:%d", c.Chromosome, int64(math.Floor(global-start)))
		}
	}
	return r.printer.Sprintf("%d", int64(math.Floor(global)))
}

var _ Renderer = (*SoftwareRenderer)(nil)
