package formatter

import "github.com/yildizm/go-termfmt"

// scoreRating names the band a rounded score falls in
func scoreRating(display int) string {
	switch {
	case display >= 90:
		return "good"
	case display >= 50:
		return "needs improvement"
	default:
		return "poor"
	}
}

// scoreEmoji returns the go-termfmt symbol for a score band
func scoreEmoji(display int, opts *termfmt.TerminalOptions) string {
	switch {
	case display >= 90:
		return termfmt.GetEmoji("insight", opts)
	case display >= 50:
		return termfmt.GetEmoji("warning", opts)
	default:
		return termfmt.GetEmoji("error", opts)
	}
}

// scoreBar draws a 0..100 score with go-termfmt. The bar saturates outside
// that range.
func scoreBar(display int, opts *termfmt.TerminalOptions) string {
	fraction := float64(display) / 100
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return termfmt.CreateConfidenceBar(fraction, opts)
}
