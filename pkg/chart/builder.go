package chart

// Result is the renderable output of the chart pipeline: a polyline
// through plot space plus gridline ticks for both axes. It is a pure
// value; the rendering layer decides how to draw it.
type Result struct {
	Points     []Point
	YTicks     []Tick
	XTicks     []XTick
	MaxEpisode int
}

// Builder turns a raw reward history into a Result by smoothing,
// downsampling, and mapping it into the plot rectangle.
type Builder struct {
	window    int
	maxPoints int
	geo       Geometry
}

// NewBuilder creates a builder with the contract defaults: a 50
// episode smoothing window and a 600 point downsample cap.
func NewBuilder() *Builder {
	return &Builder{
		window:    DefaultWindow,
		maxPoints: DefaultMaxPoints,
		geo:       DefaultGeometry(),
	}
}

// NewBuilderWithOptions creates a builder with explicit smoothing and
// downsampling parameters
func NewBuilderWithOptions(window, maxPoints int, geo Geometry) *Builder {
	if window < 1 {
		window = DefaultWindow
	}
	if maxPoints < 1 {
		maxPoints = DefaultMaxPoints
	}
	return &Builder{window: window, maxPoints: maxPoints, geo: geo}
}

// Geometry returns the plot geometry the builder maps into
func (b *Builder) Geometry() Geometry {
	return b.geo
}

// Smooth applies the builder's rolling average to a reward history
func (b *Builder) Smooth(history []float64) []float64 {
	return RollingAverage(history, b.window)
}

// Reduce downsamples a smoothed series to the builder's point cap
func (b *Builder) Reduce(values []float64) []SeriesPoint {
	return Downsample(values, b.maxPoints)
}

// Build runs the full pipeline over a training reward history. A nil
// result means there is nothing to draw: fewer than 2 points survive
// downsampling, which is degenerate input rather than an error.
func (b *Builder) Build(history []float64) *Result {
	points := b.Reduce(b.Smooth(history))
	if len(points) < 2 {
		return nil
	}

	// The x scale spans the full pre-downsample history, not the
	// downsampled episodes.
	mapper := NewMapper(b.geo, len(history))

	return &Result{
		Points:     mapper.MapAll(points),
		YTicks:     YTicks(mapper),
		XTicks:     XTicks(mapper),
		MaxEpisode: mapper.MaxEpisode(),
	}
}
