package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/speedx/internal/metrics"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("no report to format")
	}

	var b strings.Builder

	b.WriteString("# Page Analysis Report\n\n")
	if report.URL != "" {
		fmt.Fprintf(&b, "**URL:** %s\n\n", escapeMarkdown(report.URL))
	}
	if !report.AnalyzedAt.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04:05"))
	}

	f.writeMetricsTable(&b, report.Result)
	f.writeScoresTable(&b, report.Result)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeMetricsTable(b *strings.Builder, result metrics.Result) {
	b.WriteString("## Metrics\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	for _, fact := range result.Facts() {
		fmt.Fprintf(b, "| %s | %s |\n", fact.Label, fact.Value)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeScoresTable(b *strings.Builder, result metrics.Result) {
	b.WriteString("## Scores\n\n")
	b.WriteString("| Category | Score | Rating |\n")
	b.WriteString("|----------|------:|--------|\n")
	for _, score := range result.Scores() {
		display := metrics.RoundScore(score.Value)
		fmt.Fprintf(b, "| %s | %d | %s |\n", score.Label, display, scoreRating(display))
	}
}

// escapeMarkdown escapes characters that would break a table or emphasis
func escapeMarkdown(s string) string {
	r := strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`)
	return r.Replace(s)
}
