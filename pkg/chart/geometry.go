package chart

// Geometry describes the fixed plot rectangle. The canvas size,
// margins, and vertical display range are contract values shared with
// the rendering layer, not runtime-tunable knobs; they are fields only
// so tests and alternate frontends can substitute their own rectangle.
type Geometry struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
	YMin         float64
	YMax         float64
}

// DefaultGeometry returns the chart contract geometry: a 560x280
// canvas with a [-55, 10] vertical display range.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:        560,
		Height:       280,
		MarginTop:    10,
		MarginRight:  20,
		MarginBottom: 60,
		MarginLeft:   58,
		YMin:         -55,
		YMax:         10,
	}
}

// InnerWidth returns the width of the plotting rectangle
func (g Geometry) InnerWidth() float64 {
	return g.Width - g.MarginLeft - g.MarginRight
}

// InnerHeight returns the height of the plotting rectangle
func (g Geometry) InnerHeight() float64 {
	return g.Height - g.MarginTop - g.MarginBottom
}

// ClampY truncates a value into the vertical display range. Outliers
// are visually pinned to the band edges, never rescaled; the chart has
// a fixed vertical scale regardless of data extremes.
func (g Geometry) ClampY(v float64) float64 {
	if v < g.YMin {
		return g.YMin
	}
	if v > g.YMax {
		return g.YMax
	}
	return v
}

// Point is a plot-space coordinate pair
type Point struct {
	X float64
	Y float64
}

// Mapper maps series points from data space into the plot rectangle
type Mapper struct {
	geo        Geometry
	maxEpisode int
}

// NewMapper creates a mapper for a series whose episodes span
// [1, maxEpisode]. maxEpisode is the length of the full pre-downsample
// history and is floored at 2 so the x scale never divides by zero.
func NewMapper(geo Geometry, maxEpisode int) *Mapper {
	if maxEpisode < 2 {
		maxEpisode = 2
	}
	return &Mapper{geo: geo, maxEpisode: maxEpisode}
}

// MaxEpisode returns the (floored) episode span of the x scale
func (m *Mapper) MaxEpisode() int {
	return m.maxEpisode
}

// MapX maps a 1-based episode index onto the x axis
func (m *Mapper) MapX(episode int) float64 {
	frac := float64(episode-1) / float64(m.maxEpisode-1)
	return m.geo.MarginLeft + frac*m.geo.InnerWidth()
}

// MapY maps a value onto the y axis, clamping into the display range
// so the result always lies within the inner rectangle
func (m *Mapper) MapY(value float64) float64 {
	clamped := m.geo.ClampY(value)
	yRange := m.geo.YMax - m.geo.YMin
	return m.geo.MarginTop + (1-(clamped-m.geo.YMin)/yRange)*m.geo.InnerHeight()
}

// Map maps a series point into plot space
func (m *Mapper) Map(p SeriesPoint) Point {
	return Point{X: m.MapX(p.Episode), Y: m.MapY(p.Value)}
}

// MapAll maps a series into a polyline. Fewer than 2 points cannot
// form a line, so the result is nil in that case.
func (m *Mapper) MapAll(points []SeriesPoint) []Point {
	if len(points) < 2 {
		return nil
	}
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = m.Map(p)
	}
	return out
}
