package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/speedx/internal/emoji"
	"github.com/yildizm/speedx/internal/metrics"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("no report to format")
	}

	var b strings.Builder
	f.writeHeader(&b, report)
	f.writeMetrics(&b, report.Result)
	f.writeScores(&b, report.Result)

	return []byte(b.String()), nil
}

// writeHeader writes a boxed title followed by the analyzed URL
func (f *terminalFormatter) writeHeader(b *strings.Builder, report *Report) {
	header := "Page Analysis Summary"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")

	if report.URL != "" {
		symbol := termfmt.GetEmoji("target", f.opts)
		if symbol == "" {
			symbol = emoji.GetEmoji("target") // Fallback
		}
		fmt.Fprintf(b, "%s %s\n", symbol, report.URL)
	}
	if report.Duration > 0 {
		fmt.Fprintf(b, "   analyzed in %s\n", report.Duration.Round(time.Millisecond))
	}
	b.WriteString("\n")
}

// writeMetrics writes load time, request size and request count as a tree
func (f *terminalFormatter) writeMetrics(b *strings.Builder, result metrics.Result) {
	b.WriteString(termfmt.GetEmoji("statistics", f.opts) + " Metrics\n")

	facts := result.Facts()
	items := make([]termfmt.TreeItem, 0, len(facts))
	for i, fact := range facts {
		items = append(items, termfmt.TreeItem{
			Label: fact.Label,
			Value: fact.Value,
			Last:  i == len(facts)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeScores writes the four scores with a bar each
func (f *terminalFormatter) writeScores(b *strings.Builder, result metrics.Result) {
	b.WriteString(termfmt.GetEmoji("summary", f.opts) + " Scores\n")

	scores := result.Scores()
	items := make([]termfmt.TreeItem, 0, len(scores))
	for i, score := range scores {
		display := metrics.RoundScore(score.Value)
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("%s %s", scoreEmoji(display, f.opts), score.Label),
			Value: fmt.Sprintf("%3d %s", display, scoreBar(display, f.opts)),
			Last:  i == len(scores)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}
