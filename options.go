package gwas

// AppOption configures an App during creation.
//
// Example:
//
//	app := gwas.NewApp(data,
//	    gwas.WithPadding(10_000_000),
//	    gwas.WithViewport(1280, 720),
//	)
type AppOption func(*appOptions)

type appOptions struct {
	padding        uint64
	baseBpWidth    float64
	verticalOffset float64
	valueFloor     float64
	viewport       ViewportDims
	initialView    *View
}

// Default layout values.
const (
	// DefaultVerticalOffset places the plot band in the lower part of the
	// canvas, in normalized device coordinates.
	DefaultVerticalOffset = -0.8
)

func defaultAppOptions() appOptions {
	return appOptions{
		padding:        DefaultPadding,
		baseBpWidth:    DefaultBaseBpWidth,
		verticalOffset: DefaultVerticalOffset,
		viewport:       ViewportDims{Width: 800, Height: 600},
	}
}

// WithPadding sets the basepair gap inserted between adjacent chromosomes.
func WithPadding(padding uint64) AppOption {
	return func(o *appOptions) {
		o.padding = padding
	}
}

// WithBaseBpWidth sets the baseline basepair width used by the fitted
// initial view.
func WithBaseBpWidth(w float64) AppOption {
	return func(o *appOptions) {
		if w > 0 {
			o.baseBpWidth = w
		}
	}
}

// WithVerticalOffset sets the vertical translation of the plot band.
func WithVerticalOffset(y float64) AppOption {
	return func(o *appOptions) {
		o.verticalOffset = y
	}
}

// WithValueFloor sets the score subtracted from every point before the
// renderer scales heights.
func WithValueFloor(floor float64) AppOption {
	return func(o *appOptions) {
		o.valueFloor = floor
	}
}

// WithViewport sets the initial viewport dimensions. Invalid dimensions are
// ignored.
func WithViewport(width, height float64) AppOption {
	return func(o *appOptions) {
		if d := (ViewportDims{Width: width, Height: height}); d.Valid() {
			o.viewport = d
		}
	}
}

// WithInitialView replaces the fitted initial view.
func WithInitialView(v View) AppOption {
	return func(o *appOptions) {
		o.initialView = &v
	}
}
