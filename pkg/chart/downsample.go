package chart

// DefaultMaxPoints bounds how many points a rendered series may carry
const DefaultMaxPoints = 600

// SeriesPoint is an (episode, value) pair between smoothing and
// downsampling. Episode indices are 1-based.
type SeriesPoint struct {
	Episode int
	Value   float64
}

// Downsample compresses a series to at most maxPoints points while
// preserving its trend shape. When the series already fits it passes
// through 1:1 with episode set to the 1-based position. Otherwise the
// series is split into maxPoints contiguous buckets with fractional
// boundaries floor(i*N/M); each bucket emits its arithmetic mean,
// stamped with the bucket's exclusive upper index so episodes stay
// strictly increasing and the last point reads "through episode N".
func Downsample(values []float64, maxPoints int) []SeriesPoint {
	n := len(values)
	if n == 0 || maxPoints < 1 {
		return nil
	}

	if n <= maxPoints {
		points := make([]SeriesPoint, n)
		for i, v := range values {
			points[i] = SeriesPoint{Episode: i + 1, Value: v}
		}
		return points
	}

	bucketSize := float64(n) / float64(maxPoints)
	points := make([]SeriesPoint, 0, maxPoints)
	for i := 0; i < maxPoints; i++ {
		start := int(float64(i) * bucketSize)
		end := int(float64(i+1) * bucketSize)
		// A bucket is never empty even if the fractional width floors
		// to zero.
		if end <= start {
			end = start + 1
		}
		if end > n {
			end = n
		}

		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		points = append(points, SeriesPoint{
			Episode: end,
			Value:   sum / float64(end-start),
		})
	}
	return points
}
