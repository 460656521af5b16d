// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/gg-gwas"
)

// ErrNilTarget is returned when Render is called without a target.
var ErrNilTarget = errors.New("render: nil target")

// Renderer executes the draw calls of a frame against a target.
//
// The target is cleared before the first draw call only; every call draws
// one chromosome's vertex buffer with that chromosome's parameter block.
// The frame is not modified and can be rendered again to another target.
type Renderer interface {
	Render(target *Target, frame gwas.Frame) error
}
