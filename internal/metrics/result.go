// Package metrics holds the page analysis result of the current session.
package metrics

// Result is the set of metrics the analysis service computes for one page.
// Scores are expected in [0,100]; times, sizes and counts are non-negative.
// Ranges are not enforced here.
type Result struct {
	AccessibilityScore float64 `json:"accessibilityScore" yaml:"accessibility_score"`
	PerformanceScore   float64 `json:"performanceScore" yaml:"performance_score"`
	BestPracticesScore float64 `json:"bestPracticesScore" yaml:"best_practices_score"`
	SEOScore           float64 `json:"seoScore" yaml:"seo_score"`
	PageLoadTime       float64 `json:"pageLoadTime" yaml:"page_load_time"`         // milliseconds
	TotalRequestSize   float64 `json:"totalRequestSize" yaml:"total_request_size"` // bytes
	TotalRequests      int     `json:"totalRequests" yaml:"total_requests"`
}

// Partial is a Result where every field may be absent. A nil field leaves
// the corresponding stored value untouched when merged.
type Partial struct {
	AccessibilityScore *float64 `json:"accessibilityScore,omitempty"`
	PerformanceScore   *float64 `json:"performanceScore,omitempty"`
	BestPracticesScore *float64 `json:"bestPracticesScore,omitempty"`
	SEOScore           *float64 `json:"seoScore,omitempty"`
	PageLoadTime       *float64 `json:"pageLoadTime,omitempty"`
	TotalRequestSize   *float64 `json:"totalRequestSize,omitempty"`
	TotalRequests      *int     `json:"totalRequests,omitempty"`
}

// Score identifies one of the four 0–100 scores
type Score struct {
	Label string
	Value float64
}

// Scores returns the four scores in display order
func (r Result) Scores() []Score {
	return []Score{
		{Label: "Accessibility", Value: r.AccessibilityScore},
		{Label: "Best Practices", Value: r.BestPracticesScore},
		{Label: "Performance", Value: r.PerformanceScore},
		{Label: "SEO", Value: r.SEOScore},
	}
}

// Full returns a Partial with every field present
func (r Result) Full() Partial {
	return Partial{
		AccessibilityScore: &r.AccessibilityScore,
		PerformanceScore:   &r.PerformanceScore,
		BestPracticesScore: &r.BestPracticesScore,
		SEOScore:           &r.SEOScore,
		PageLoadTime:       &r.PageLoadTime,
		TotalRequestSize:   &r.TotalRequestSize,
		TotalRequests:      &r.TotalRequests,
	}
}

// Empty reports whether no field is present
func (p Partial) Empty() bool {
	return p.AccessibilityScore == nil &&
		p.PerformanceScore == nil &&
		p.BestPracticesScore == nil &&
		p.SEOScore == nil &&
		p.PageLoadTime == nil &&
		p.TotalRequestSize == nil &&
		p.TotalRequests == nil
}

// ApplyTo returns base with every present field of p copied over it
func (p Partial) ApplyTo(base Result) Result {
	if p.AccessibilityScore != nil {
		base.AccessibilityScore = *p.AccessibilityScore
	}
	if p.PerformanceScore != nil {
		base.PerformanceScore = *p.PerformanceScore
	}
	if p.BestPracticesScore != nil {
		base.BestPracticesScore = *p.BestPracticesScore
	}
	if p.SEOScore != nil {
		base.SEOScore = *p.SEOScore
	}
	if p.PageLoadTime != nil {
		base.PageLoadTime = *p.PageLoadTime
	}
	if p.TotalRequestSize != nil {
		base.TotalRequestSize = *p.TotalRequestSize
	}
	if p.TotalRequests != nil {
		base.TotalRequests = *p.TotalRequests
	}
	return base
}
