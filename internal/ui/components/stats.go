package components

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/speedx/internal/metrics"
	"github.com/yildizm/speedx/internal/monitor"
)

// StatsCard represents a statistics card component
type StatsCard struct {
	Title       string
	Value       string
	Description string
	Status      string // "success", "warning", "error", "info"
	Width       int
	Height      int
}

// NewStatsCard creates a new stats card
func NewStatsCard(title, value, description string) *StatsCard {
	return &StatsCard{
		Title:       title,
		Value:       value,
		Description: description,
		Status:      "info",
		Width:       16,
		Height:      3,
	}
}

// SetStatus sets the status color of the card
func (s *StatsCard) SetStatus(status string) *StatsCard {
	s.Status = status
	return s
}

// SetSize sets the size of the card
func (s *StatsCard) SetSize(width, height int) *StatsCard {
	s.Width = width
	s.Height = height
	return s
}

// Render renders the stats card
func (s *StatsCard) Render() string {
	bodyColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	infoColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}

	var valueColor lipgloss.TerminalColor
	switch s.Status {
	case "success":
		valueColor = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	case "warning":
		valueColor = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	case "error":
		valueColor = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}
	case "info":
		valueColor = infoColor
	default:
		valueColor = bodyColor
	}

	titleStyle := lipgloss.NewStyle().Foreground(infoColor).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(valueColor).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(bodyColor)
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(bodyColor).Padding(0, 1)

	parts := []string{titleStyle.Render(s.Title), valueStyle.Render(s.Value)}
	if s.Description != "" {
		parts = append(parts, mutedStyle.Render(s.Description))
	}

	return boxStyle.
		Width(s.Width).
		Height(s.Height).
		Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// StatsDashboard lays cards out in rows
type StatsDashboard struct {
	cards      []*StatsCard
	columns    int
	cardWidth  int
	cardHeight int
}

// NewStatsDashboard creates a new stats dashboard
func NewStatsDashboard(columns int) *StatsDashboard {
	if columns < 1 {
		columns = 1
	}
	return &StatsDashboard{
		columns:    columns,
		cardWidth:  16,
		cardHeight: 3,
	}
}

// AddCard adds a stats card to the dashboard
func (d *StatsDashboard) AddCard(card *StatsCard) {
	card.SetSize(d.cardWidth, d.cardHeight)
	d.cards = append(d.cards, card)
}

// Len returns the number of cards
func (d *StatsDashboard) Len() int {
	return len(d.cards)
}

// Render renders the stats dashboard
func (d *StatsDashboard) Render() string {
	if len(d.cards) == 0 {
		return ""
	}

	var rows []string
	for i := 0; i < len(d.cards); i += d.columns {
		end := i + d.columns
		if end > len(d.cards) {
			end = len(d.cards)
		}

		var rowCards []string
		for j := i; j < end; j++ {
			rowCards = append(rowCards, d.cards[j].Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rowCards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// CreateSessionStats summarizes the request counters of the session
func CreateSessionStats(snap monitor.Snapshot) *StatsDashboard {
	dashboard := NewStatsDashboard(4)

	dashboard.AddCard(NewStatsCard("Requests", formatNumber(int(snap.Issued)), ""))

	applied := NewStatsCard("Applied", formatNumber(int(snap.Applied)), "")
	if snap.Applied > 0 {
		applied.SetStatus("success")
	}
	dashboard.AddCard(applied)

	failed := NewStatsCard("Failed", formatNumber(int(snap.Failed)), "")
	if snap.Failed > 0 {
		failed.SetStatus("error")
	} else {
		failed.SetStatus("muted")
	}
	dashboard.AddCard(failed)

	latency := "-"
	if snap.LastLatency > 0 {
		latency = snap.LastLatency.Round(10 * time.Millisecond).String()
	}
	dashboard.AddCard(NewStatsCard("Last", latency, "").SetStatus("muted"))

	return dashboard
}

// formatNumber formats large numbers with commas
func formatNumber(n int) string {
	str := strconv.Itoa(n)
	negative := strings.HasPrefix(str, "-")
	if negative {
		str = str[1:]
	}
	if len(str) <= 3 {
		if negative {
			return "-" + str
		}
		return str
	}

	var result strings.Builder
	if negative {
		result.WriteString("-")
	}
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// SummaryBox creates a summary information box
type SummaryBox struct {
	Title   string
	Content []string
	Width   int
}

// NewSummaryBox creates a new summary box
func NewSummaryBox(title string, width int) *SummaryBox {
	return &SummaryBox{
		Title: title,
		Width: width,
	}
}

// AddLine adds a line to the summary
func (s *SummaryBox) AddLine(line string) {
	s.Content = append(s.Content, line)
}

// AddKeyValue adds a key-value pair to the summary
func (s *SummaryBox) AddKeyValue(key, value string) {
	s.Content = append(s.Content, fmt.Sprintf("%-20s %s", key+":", value))
}

// Render renders the summary box
func (s *SummaryBox) Render() string {
	headerColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	bodyColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	headerStyle := lipgloss.NewStyle().Foreground(headerColor).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(bodyColor)
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(bodyColor).Padding(0, 1)

	content := make([]string, 0, len(s.Content)+1)
	if s.Title != "" {
		content = append(content, headerStyle.Render(s.Title))
	}
	for _, line := range s.Content {
		content = append(content, bodyStyle.Render(line))
	}

	box := boxStyle
	if s.Width > 0 {
		box = box.Width(s.Width)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// CreateMetricsSummary lists load time, request size and request count
func CreateMetricsSummary(result metrics.Result, width int) *SummaryBox {
	box := NewSummaryBox("", width)
	for _, fact := range result.Facts() {
		box.AddKeyValue(fact.Label, fact.Value)
	}
	return box
}
