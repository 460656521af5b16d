// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gg"

// Default appearance.
const (
	DefaultPointRadius = 2.0
	DefaultFontSize    = 12.0
	DefaultScoreScale  = 0.16
)

// DefaultPalette alternates between two colours from one chromosome to the
// next.
var DefaultPalette = []gg.RGBA{
	gg.Hex("#4e79a7"),
	gg.Hex("#f28e2b"),
}

// Option configures a SoftwareRenderer.
type Option func(*options)

type options struct {
	pointRadius float64
	scoreScale  float64
	background  gg.RGBA
	palette     []gg.RGBA
	labels      bool
	caption     bool
	fontSize    float64
	labelColor  gg.RGBA
}

func defaultOptions() options {
	return options{
		pointRadius: DefaultPointRadius,
		scoreScale:  DefaultScoreScale,
		background:  gg.Black,
		palette:     DefaultPalette,
		fontSize:    DefaultFontSize,
		labelColor:  gg.White,
	}
}

// WithPointRadius sets the radius of a plotted point in pixels.
// Non-positive values are ignored.
func WithPointRadius(r float64) Option {
	return func(o *options) {
		if r > 0 {
			o.pointRadius = r
		}
	}
}

// WithScoreScale sets how far, in normalized device units, one unit of
// -log10(p) lifts a point. The default places a score of 10 at the top of
// the target with the default vertical offset.
func WithScoreScale(k float64) Option {
	return func(o *options) {
		if k > 0 {
			o.scoreScale = k
		}
	}
}

// WithBackground sets the clear colour.
func WithBackground(c gg.RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithPalette sets the chromosome colours, cycled in coordinate-system
// order. An empty palette is ignored.
func WithPalette(colors ...gg.RGBA) Option {
	return func(o *options) {
		if len(colors) > 0 {
			o.palette = colors
		}
	}
}

// WithLabels draws each chromosome's name below its midpoint.
func WithLabels(enabled bool) Option {
	return func(o *options) {
		o.labels = enabled
	}
}

// WithCaption draws the visible locus range in the top-left corner.
func WithCaption(enabled bool) Option {
	return func(o *options) {
		o.caption = enabled
	}
}

// WithFontSize sets the label and caption size in points.
func WithFontSize(size float64) Option {
	return func(o *options) {
		if size > 0 {
			o.fontSize = size
		}
	}
}
