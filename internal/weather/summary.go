package weather

import (
	"fmt"
	"math"
)

// Summarize reduces a forecast series to a compact tool-facts line for
// prompt blending: averages of the daily highs, lows, and rain
// probability, rounded to the nearest integer. An empty or missing
// series degrades to a fixed "unavailable" suffix rather than failing.
func Summarize(city, start, end string, s *Series) string {
	if s == nil || len(s.TMax) == 0 || len(s.TMin) == 0 || len(s.Rain) == 0 {
		return fmt.Sprintf("Tool facts: %s %s→%s | weather summary unavailable", city, start, end)
	}
	highs := int(math.Round(mean(s.TMax)))
	lows := int(math.Round(mean(s.TMin)))
	rain := int(math.Round(mean(s.Rain)))
	return fmt.Sprintf("Tool facts: %s %s→%s | highs %d°C, lows %d°C, rain %d%%", city, start, end, highs, lows, rain)
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
