package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/speedx/internal/ui/components"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Score bands: >= 90, >= 50, below
	Good lipgloss.AdaptiveColor
	Fair lipgloss.AdaptiveColor
	Poor lipgloss.AdaptiveColor

	Error      lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Track      lipgloss.AdaptiveColor
	Progress   lipgloss.AdaptiveColor
}

func color(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Available themes
var (
	DefaultTheme = Theme{
		Name:       "default",
		Primary:    color("#1E40AF", "#3B82F6"),
		Secondary:  color("#6B7280", "#9CA3AF"),
		Accent:     color("#7C3AED", "#A855F7"),
		Good:       color("#059669", "#10B981"),
		Fair:       color("#D97706", "#F59E0B"),
		Poor:       color("#DC2626", "#EF4444"),
		Error:      color("#DC2626", "#EF4444"),
		Border:     color("#D1D5DB", "#374151"),
		Foreground: color("#111827", "#F9FAFB"),
		Muted:      color("#6B7280", "#9CA3AF"),
		Track:      color("#E5E7EB", "#1F2937"),
		Progress:   color("#059669", "#10B981"),
	}

	HighContrastTheme = Theme{
		Name:       "high-contrast",
		Primary:    color("#000000", "#FFFFFF"),
		Secondary:  color("#666666", "#BBBBBB"),
		Accent:     color("#000080", "#8080FF"),
		Good:       color("#006600", "#00FF00"),
		Fair:       color("#CC6600", "#FFAA00"),
		Poor:       color("#CC0000", "#FF4444"),
		Error:      color("#CC0000", "#FF4444"),
		Border:     color("#000000", "#FFFFFF"),
		Foreground: color("#000000", "#FFFFFF"),
		Muted:      color("#666666", "#BBBBBB"),
		Track:      color("#CCCCCC", "#333333"),
		Progress:   color("#006600", "#00FF00"),
	}

	MinimalTheme = Theme{
		Name:       "minimal",
		Primary:    color("#2D3748", "#E2E8F0"),
		Secondary:  color("#718096", "#A0AEC0"),
		Accent:     color("#4A5568", "#CBD5E0"),
		Good:       color("#2F855A", "#68D391"),
		Fair:       color("#C05621", "#F6AD55"),
		Poor:       color("#C53030", "#FC8181"),
		Error:      color("#C53030", "#FC8181"),
		Border:     color("#E2E8F0", "#2D3748"),
		Foreground: color("#2D3748", "#F7FAFC"),
		Muted:      color("#A0AEC0", "#718096"),
		Track:      color("#EDF2F7", "#2D3748"),
		Progress:   color("#2F855A", "#68D391"),
	}
)

// ThemeByName looks a theme up by name
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "default", "":
		return DefaultTheme, true
	case "high-contrast":
		return HighContrastTheme, true
	case "minimal":
		return MinimalTheme, true
	default:
		return DefaultTheme, false
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// ScoreColor picks the band color for a rounded score
func (t Theme) ScoreColor(display int) lipgloss.AdaptiveColor {
	switch {
	case display >= 90:
		return t.Good
	case display >= 50:
		return t.Fair
	default:
		return t.Poor
	}
}

// Palette styles a circular indicator for a rounded score
func (t Theme) Palette(display int) components.Palette {
	return components.Palette{
		Fill:  lipgloss.NewStyle().Foreground(t.ScoreColor(display)),
		Track: lipgloss.NewStyle().Foreground(t.Track),
		Value: lipgloss.NewStyle().Foreground(t.ScoreColor(display)).Bold(true),
		Label: lipgloss.NewStyle().Foreground(t.Secondary),
	}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title       lipgloss.Style
	Body        lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	Progress    lipgloss.Style
	Input       lipgloss.Style
	Placeholder lipgloss.Style
	Button      lipgloss.Style
	Toast       lipgloss.Style
	Box         lipgloss.Style
}

// NewStyles builds the styles for theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Progress: lipgloss.NewStyle().
			Foreground(theme.Progress).
			Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		Placeholder: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Button: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Secondary).
			Bold(true).
			Padding(0, 2),

		Toast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Error).
			Foreground(theme.Error).
			Bold(true).
			Padding(0, 1),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),
	}
}
