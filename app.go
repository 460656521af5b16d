package gwas

// App is the application state shared between the input side and the render
// loop.
//
// Input handlers (Pan, Zoom, CursorMoved, ViewportResized) may run on any
// goroutine; each touches only its own atomic cell, and so do Hover and
// HitTest. Frame belongs to the render loop: it reuses uniform storage
// between calls and must not be called concurrently with itself.
type App struct {
	coords  *CoordinateSystem
	data    *ChromosomeDataset
	offsets Offsets
	ranges  Ranges

	view     *SharedViewState
	cursor   atomicValue[Point]
	viewport atomicValue[ViewportDims]

	uniforms *PerChromosomeUniforms
	counts   map[string]int

	opts appOptions
}

// NewApp builds the application state for an ingested dataset. The initial
// view fits the whole track unless WithInitialView is given.
func NewApp(data *ChromosomeDataset, opts ...AppOption) *App {
	o := defaultAppOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cs := data.Coords()
	a := &App{
		coords:  cs,
		data:    data,
		offsets: cs.ChrOffsets(o.padding),
		ranges:  cs.ChrRanges(o.padding),
		counts:  make(map[string]int),
		opts:    o,
	}

	// Every chromosome gets a block, with or without points, so the whole
	// track keeps its layout and labels.
	for _, b := range data.Buckets() {
		a.counts[b.Name] = b.Len()
	}
	a.uniforms = NewPerChromosomeUniforms(cs.Names())

	initial := FitView(cs.TotalLength(o.padding), o.baseBpWidth)
	if o.initialView != nil {
		initial = *o.initialView
	}
	a.view = NewSharedViewState(initial.Clamped())
	a.viewport.Store(o.viewport)
	return a
}

// Coords returns the coordinate system.
func (a *App) Coords() *CoordinateSystem { return a.coords }

// Dataset returns the ingested dataset.
func (a *App) Dataset() *ChromosomeDataset { return a.data }

// Padding returns the gap between chromosomes in the global space.
func (a *App) Padding() uint64 { return a.opts.padding }

// Offsets returns the global start of every chromosome.
func (a *App) Offsets() Offsets { return a.offsets }

// ViewState returns the shared view cell so other contexts can hold it.
func (a *App) ViewState() *SharedViewState { return a.view }

// View returns a snapshot of the current view.
func (a *App) View() View { return a.view.Load() }

// Viewport returns the last reported viewport dimensions.
func (a *App) Viewport() ViewportDims {
	d, _ := a.viewport.Load()
	return d
}

// Cursor returns the last reported cursor position. The boolean is false
// until the cursor has moved.
func (a *App) Cursor() (Point, bool) {
	return a.cursor.Load()
}

// Pan moves the view one step left (direction < 0) or right (direction > 0).
func (a *App) Pan(direction int) View {
	w := a.Viewport().Width
	return a.view.Update(func(v View) View {
		return v.Pan(float64(direction), w)
	})
}

// Zoom applies a wheel delta of the given granularity.
func (a *App) Zoom(delta float64, mode ScrollMode) View {
	return a.view.Update(func(v View) View {
		return v.Zoom(delta, mode)
	})
}

// CursorMoved records the cursor position for hit-testing.
func (a *App) CursorMoved(x, y float64) {
	a.cursor.Store(Point{X: x, Y: y})
}

// ViewportResized records new viewport dimensions. Non-positive dimensions
// are rejected with ErrInvalidViewport and leave the previous ones in place.
func (a *App) ViewportResized(width, height float64) error {
	d := ViewportDims{Width: width, Height: height}
	if !d.Valid() {
		return ErrInvalidViewport
	}
	a.viewport.Store(d)
	return nil
}

// Frame reads the current view once and returns the draw list for it.
func (a *App) Frame() Frame {
	view := a.view.Load()
	a.uniforms.Refresh(view, a.offsets, a.opts.verticalOffset, a.opts.valueFloor)

	calls := make([]DrawCall, 0, a.uniforms.Len())
	for _, name := range a.uniforms.Names() {
		block, _ := a.uniforms.Block(name)
		r, _ := a.ranges.Get(name)
		idx, _ := a.coords.Index(name)
		calls = append(calls, DrawCall{
			Chromosome:  name,
			Index:       idx,
			Offset:      r.Start,
			Length:      r.Len(),
			VertexCount: a.counts[name],
			Block:       block,
		})
	}
	Logger().Debug("frame", "center", view.Center, "scale", view.Scale, "calls", len(calls))
	return Frame{View: view, Viewport: a.Viewport(), Calls: calls}
}

// Hit is the genomic location under a screen position.
type Hit struct {
	Chromosome string  `json:"chromosome"`
	Position   float64 `json:"position"`
	Global     float64 `json:"global"`
}

// Hover hit-tests the last cursor position against the current view. The
// boolean is false before the cursor has moved, or when the cursor is over
// a padding gap or outside the track.
func (a *App) Hover() (Hit, bool) {
	p, ok := a.cursor.Load()
	if !ok {
		return Hit{}, false
	}
	return a.HitTest(p.X)
}

// HitTest resolves the genomic location under pixel column x.
func (a *App) HitTest(x float64) (Hit, bool) {
	dims := a.Viewport()
	if !dims.Valid() {
		return Hit{}, false
	}
	global := a.view.Load().ScreenToBasepair(x, dims)
	name, local, ok := a.coords.Locate(global, a.opts.padding)
	if !ok {
		return Hit{Global: global}, false
	}
	return Hit{Chromosome: name, Position: local, Global: global}, true
}
