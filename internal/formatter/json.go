package formatter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/yildizm/speedx/internal/metrics"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// JSONOutput is the document written by the JSON formatter
type JSONOutput struct {
	URL        string         `json:"url"`
	RequestID  string         `json:"request_id,omitempty"`
	AnalyzedAt *time.Time     `json:"analyzed_at,omitempty"`
	DurationMS int64          `json:"duration_ms,omitempty"`
	Metrics    metrics.Result `json:"metrics"`
	Scores     []ScoreOutput  `json:"scores"`
}

// ScoreOutput is one score with its display rounding
type ScoreOutput struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display int     `json:"display"`
	Rating  string  `json:"rating"`
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("no report to format")
	}

	output := &JSONOutput{
		URL:        report.URL,
		RequestID:  report.RequestID,
		DurationMS: report.Duration.Milliseconds(),
		Metrics:    report.Result,
		Scores:     createScoreOutputs(report.Result),
	}
	if !report.AnalyzedAt.IsZero() {
		at := report.AnalyzedAt.UTC()
		output.AnalyzedAt = &at
	}

	return json.MarshalIndent(output, "", "  ")
}

func createScoreOutputs(result metrics.Result) []ScoreOutput {
	scores := result.Scores()
	outputs := make([]ScoreOutput, 0, len(scores))
	for _, score := range scores {
		display := metrics.RoundScore(score.Value)
		outputs = append(outputs, ScoreOutput{
			Label:   score.Label,
			Value:   score.Value,
			Display: display,
			Rating:  scoreRating(display),
		})
	}
	return outputs
}
