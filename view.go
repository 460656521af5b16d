package gwas

import "math"

// View defaults, taken from the initial viewer state.
const (
	DefaultBaseBpWidth = 10.0
	DefaultCenter      = 500_000.0
	DefaultScale       = 10_000.0
)

// Scale limits. MinScale keeps base/scale finite; MaxScale keeps the visible
// span finite however far a wheel delta zooms out.
const (
	MinScale = 1e-9
	MaxScale = 1e15
)

// PanStep is the pan distance per key press, in scale units per viewport
// pixel.
const PanStep = 5.0

// fitFraction is the share of the fitted scale used by FitView; 0.55 leaves
// roughly 5% margin on each side of the concatenated track.
const fitFraction = 0.55

// ScrollMode is the granularity of a zoom input.
type ScrollMode int

const (
	// ScrollLine is a line-based wheel delta (notched mouse wheels).
	ScrollLine ScrollMode = iota
	// ScrollPixel is a pixel-based delta (touchpads, smooth scrolling).
	ScrollPixel
)

// divisor returns the delta divisor D used by View.Zoom.
func (m ScrollMode) divisor() float64 {
	if m == ScrollPixel {
		return 1000
	}
	return 100
}

// String returns the mode name.
func (m ScrollMode) String() string {
	if m == ScrollPixel {
		return "pixel"
	}
	return "line"
}

// ParseScrollMode converts "line" or "pixel" to a ScrollMode.
func ParseScrollMode(s string) (ScrollMode, bool) {
	switch s {
	case "line":
		return ScrollLine, true
	case "pixel":
		return ScrollPixel, true
	}
	return ScrollLine, false
}

// ViewportDims are the render target dimensions in pixels. They are supplied
// per frame by the windowing layer and never stored in a View.
type ViewportDims struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether both dimensions are strictly positive and finite.
func (d ViewportDims) Valid() bool {
	return d.Width > 0 && d.Height > 0 && isFinite(d.Width) && isFinite(d.Height)
}

// View is the pan/zoom state applied uniformly to every chromosome.
//
// Center is a position in the global coordinate space. Scale divides the
// visible width and is always strictly positive. BaseBpWidth is the baseline
// width of one basepair before zooming.
type View struct {
	Center      float64 `json:"center"`
	Scale       float64 `json:"scale"`
	BaseBpWidth float64 `json:"base_bp_width"`
}

// DefaultView returns the initial view.
func DefaultView() View {
	return View{
		Center:      DefaultCenter,
		Scale:       DefaultScale,
		BaseBpWidth: DefaultBaseBpWidth,
	}
}

// FitView returns a view centered on a track of total basepairs, zoomed out
// so the whole track is visible with a small margin.
func FitView(total uint64, baseBpWidth float64) View {
	v := View{
		Center:      float64(total) / 2,
		Scale:       fitFraction * baseBpWidth * float64(total),
		BaseBpWidth: baseBpWidth,
	}
	return v.Clamped()
}

// Clamped returns v with Scale limited to [MinScale, MaxScale]. A NaN scale
// becomes MinScale and a non-finite center becomes 0.
func (v View) Clamped() View {
	// !(v.Scale >= MinScale) also catches NaN.
	if !(v.Scale >= MinScale) {
		v.Scale = MinScale
	}
	v.Scale = min(v.Scale, MaxScale)
	if !isFinite(v.Center) {
		v.Center = 0
	}
	return v
}

// Pan moves the center by direction * PanStep * Scale / viewportWidth.
// A negative direction pans left. Non-positive widths, and steps that would
// leave the center non-finite, leave v unchanged.
func (v View) Pan(direction, viewportWidth float64) View {
	if !(viewportWidth > 0) {
		return v
	}
	center := v.Center + direction*PanStep*v.Scale/viewportWidth
	if !isFinite(center) {
		return v
	}
	v.Center = center
	return v
}

// Zoom multiplies Scale by 1 - delta/D, where D depends on the input
// granularity. The result is clamped to [MinScale, MaxScale]; a NaN delta
// leaves v unchanged.
func (v View) Zoom(delta float64, mode ScrollMode) View {
	scale := v.Scale * ZoomFactor(delta, mode)
	if math.IsNaN(scale) {
		return v.Clamped()
	}
	v.Scale = scale
	return v.Clamped()
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ZoomFactor returns the multiplicative scale factor View.Zoom applies.
func ZoomFactor(delta float64, mode ScrollMode) float64 {
	return 1 + (-delta / mode.divisor())
}

// PixelsPerBasepair returns s = BaseBpWidth / Scale, the normalized width of
// one basepair.
func (v View) PixelsPerBasepair() float64 {
	return v.BaseBpWidth / v.Scale
}

// Local returns the view re-centered for a chromosome starting at offset in
// the global space. Scale and base width are shared.
func (v View) Local(offset uint64) View {
	v.Center -= float64(offset)
	return v
}

// ToScaledMatrix maps global coordinates to the render-target-normalized
// horizontal axis: Scale(BaseBpWidth/Scale) * Translate(-Center).
// The center maps to 0 and [-1, 1] spans the viewport.
func (v View) ToScaledMatrix() Mat4 {
	s := v.PixelsPerBasepair()
	return Scale(s, 1, 1).Multiply(Translate(-v.Center, 0, 0))
}

// BasepairToScreenMap maps a global coordinate to a viewport fraction:
// 0 is the left edge, 1 the right edge and the center lands on 0.5.
// Multiply by the viewport width to get pixels. This is ToScaledMatrix
// re-based from [-1, 1] to [0, 1], so labels and points agree.
//
// It deliberately does not use the older s*x + (center - s/2) form, which
// is not inverted by ScreenToBasepairMap; this map is, exactly.
func (v View) BasepairToScreenMap() Mat4 {
	s := v.PixelsPerBasepair()
	return Mat4{
		{s / 2, 0, 0, 0.5 - s*v.Center/2},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// ScreenToBasepairMap is the inverse of BasepairToScreenMap for a viewport
// of the given size: it maps a pixel position back to a global coordinate
// (X) and a fraction of the viewport height (Y). Used for hit-testing.
func (v View) ScreenToBasepairMap(dims ViewportDims) Mat4 {
	s := v.PixelsPerBasepair()
	w, h := dims.Width, dims.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Mat4{
		{2 / (w * s), 0, 0, v.Center - 1/s},
		{0, 1 / h, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// ScreenToBasepair converts a pixel x position to a global coordinate.
func (v View) ScreenToBasepair(x float64, dims ViewportDims) float64 {
	return v.ScreenToBasepairMap(dims).ApplyX(x)
}

// BasepairToScreen converts a global coordinate to a pixel x position.
func (v View) BasepairToScreen(bp float64, dims ViewportDims) float64 {
	return v.BasepairToScreenMap().ApplyX(bp) * dims.Width
}

// Visible returns the global interval [from, to) visible in the viewport.
func (v View) Visible() (from, to float64) {
	half := 1 / v.PixelsPerBasepair()
	return v.Center - half, v.Center + half
}
