package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/yildizm/speedx/internal/metrics"
)

// csvFormatter writes one header row and one row per report
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(report *Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("no report to format")
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"URL",
		"Analyzed At",
		"Accessibility",
		"Best Practices",
		"Performance",
		"SEO",
		"Load Time (ms)",
		"Total Requests Size (bytes)",
		"Total Requests",
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	r := report.Result
	record := []string{
		report.URL,
		formatCSVTime(report.AnalyzedAt),
		strconv.Itoa(metrics.RoundScore(r.AccessibilityScore)),
		strconv.Itoa(metrics.RoundScore(r.BestPracticesScore)),
		strconv.Itoa(metrics.RoundScore(r.PerformanceScore)),
		strconv.Itoa(metrics.RoundScore(r.SEOScore)),
		strconv.FormatFloat(r.PageLoadTime, 'f', 2, 64),
		strconv.FormatFloat(r.TotalRequestSize, 'f', -1, 64),
		strconv.Itoa(r.TotalRequests),
	}
	if err := writer.Write(record); err != nil {
		return nil, fmt.Errorf("failed to write CSV record: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// formatCSVTime formats time for CSV output
func formatCSVTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
