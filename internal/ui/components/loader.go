package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner represents a spinning progress indicator
type Spinner struct {
	Frame int
	Label string
	Style lipgloss.Style
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{
		Style: lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
	}
}

// SetLabel sets the spinner label
func (s *Spinner) SetLabel(label string) {
	s.Label = label
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Render renders the spinner
func (s *Spinner) Render() string {
	spinner := s.Style.Render(spinnerFrames[s.Frame%len(spinnerFrames)])
	if s.Label != "" {
		return fmt.Sprintf("%s %s", spinner, s.Label)
	}
	return spinner
}

// Loader replaces the metrics panel while an analysis is in flight
type Loader struct {
	spinner *Spinner
	started time.Time
	active  bool
	now     func() time.Time
}

// NewLoader creates an inactive loader
func NewLoader() *Loader {
	return &Loader{spinner: NewSpinner(), now: time.Now}
}

// Start shows the loader with message. Starting an active loader keeps the
// original start time.
func (l *Loader) Start(message string) {
	l.spinner.SetLabel(message)
	if !l.active {
		l.started = l.now()
		l.active = true
	}
}

// Stop hides the loader
func (l *Loader) Stop() {
	l.active = false
}

// Active reports whether the loader is shown
func (l *Loader) Active() bool {
	return l.active
}

// SetStyle changes the spinner color
func (l *Loader) SetStyle(style lipgloss.Style) {
	l.spinner.Style = style
}

// Tick advances the animation while active
func (l *Loader) Tick() {
	if l.active {
		l.spinner.Tick()
	}
}

// Elapsed returns how long the loader has been shown
func (l *Loader) Elapsed() time.Duration {
	if !l.active {
		return 0
	}
	return l.now().Sub(l.started)
}

// Render renders the spinner and elapsed time, or nothing when inactive
func (l *Loader) Render() string {
	if !l.active {
		return ""
	}
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	return l.spinner.Render() + " " + mutedStyle.Render(formatElapsed(l.Elapsed()))
}

func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
