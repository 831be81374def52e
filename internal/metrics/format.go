package metrics

import (
	"fmt"
	"math"
	"strconv"
)

// Fact is a labelled, display-ready non-score metric
type Fact struct {
	Label string
	Value string
}

// Facts returns load time, request size and request count in display order
func (r Result) Facts() []Fact {
	return []Fact{
		{Label: "Load Time", Value: FormatLoadTime(r.PageLoadTime)},
		{Label: "Total Requests Size", Value: FormatBytes(r.TotalRequestSize)},
		{Label: "Total Requests", Value: strconv.Itoa(r.TotalRequests)},
	}
}

// FormatLoadTime renders milliseconds with two decimals
func FormatLoadTime(ms float64) string {
	return fmt.Sprintf("%.2f ms", ms)
}

// FormatBytes renders a byte count as the shortest exact decimal
func FormatBytes(b float64) string {
	return strconv.FormatFloat(b, 'f', -1, 64) + " bytes"
}

// RoundScore rounds a score half away from zero for display. Values outside
// 0..100 are kept.
func RoundScore(v float64) int {
	return int(math.Round(v))
}
