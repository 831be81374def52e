package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/speedx/internal/metrics"
)

// Report is one finished page analysis
type Report struct {
	URL        string
	RequestID  string
	AnalyzedAt time.Time
	Duration   time.Duration
	Result     metrics.Result
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// Formats lists the names accepted by New
var Formats = []string{"text", "json", "markdown", "csv"}

// New returns the formatter for format. color only affects text output.
func New(format string, color bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "text", "terminal", "":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}
