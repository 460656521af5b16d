// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws gwas frames into raster targets.
//
// A gwas.Frame is an ordered list of draw calls, one per chromosome, each
// carrying the chromosome's parameter block. A Renderer turns a frame into
// pixels; the vertex buffers are handed to the renderer once at construction
// and never touched by the input side afterwards.
//
// # Coordinates
//
// The parameter block matrix maps chromosome-local basepairs to normalized
// device coordinates, -1 at the left edge of the target and +1 at the right.
// Vertically a vertex is placed at
//
//	ndc_y = vertical_offset + (score - value_floor) * score_scale
//
// where score is -log10(p). Vertices scoring below value_floor are not drawn.
//
// # Usage
//
//	buffers := data.Buffers(pool)
//	r, err := render.NewSoftwareRenderer(buffers, render.WithLabels(true))
//	target := render.NewTarget(1280, 480)
//	defer target.Close()
//
//	if err := r.Render(target, app.Frame()); err != nil {
//	    return err
//	}
//	return target.SavePNG("plot.png")
//
// # Thread Safety
//
// Renderers and targets are NOT thread-safe. Each belongs to one render
// goroutine.
package render
