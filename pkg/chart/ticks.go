package chart

import (
	"fmt"
	"strconv"
)

// yTickStep is the spacing between horizontal gridlines in data units
const yTickStep = 5

// xTickCount is the number of x-axis ticks, spread evenly over the
// episode span
const xTickCount = 6

// Alignment is a horizontal text-anchor hint for tick labels
type Alignment int

const (
	AlignStart Alignment = iota
	AlignMiddle
	AlignEnd
)

func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	default:
		return "middle"
	}
}

// Tick is one axis gridline: its data-space value, its plot-space
// position, and its label.
type Tick struct {
	Value float64
	Pos   float64
	Label string
}

// XTick is an x-axis tick with a label alignment hint
type XTick struct {
	Tick
	Align Alignment
}

// YTicks generates one tick every 5 units from the top of the display
// range down to the bottom, labeled with the raw integer value and
// positioned through the mapper's y formula.
func YTicks(m *Mapper) []Tick {
	var ticks []Tick
	for v := m.geo.YMax; v >= m.geo.YMin; v -= yTickStep {
		ticks = append(ticks, Tick{
			Value: v,
			Pos:   m.MapY(v),
			Label: strconv.Itoa(int(v)),
		})
	}
	return ticks
}

// XTicks generates 6 ticks evenly spaced at fractions {0..5}/5 of the
// episode span. The first tick left-aligns and the last right-aligns
// so edge labels stay inside the canvas.
func XTicks(m *Mapper) []XTick {
	ticks := make([]XTick, 0, xTickCount)
	for i := 0; i < xTickCount; i++ {
		frac := float64(i) / float64(xTickCount-1)
		episodes := frac * float64(m.maxEpisode)

		align := AlignMiddle
		switch i {
		case 0:
			align = AlignStart
		case xTickCount - 1:
			align = AlignEnd
		}

		ticks = append(ticks, XTick{
			Tick: Tick{
				Value: episodes,
				Pos:   m.geo.MarginLeft + frac*m.geo.InnerWidth(),
				Label: FormatEpisodeCount(episodes),
			},
			Align: align,
		})
	}
	return ticks
}

// FormatEpisodeCount renders an episode count compactly: 1.0k-style
// for thousands, 1.0M-style for millions, the raw integer otherwise.
func FormatEpisodeCount(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	default:
		return strconv.Itoa(int(v))
	}
}
