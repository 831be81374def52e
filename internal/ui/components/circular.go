package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/speedx/internal/metrics"
)

// Circular is a rendered score ring. It holds both the SVG geometry of the
// ring and enough state to draw it in a terminal.
type Circular struct {
	Label       string
	Progress    float64
	Size        int
	StrokeWidth int

	// Display is progress rounded half away from zero. It is not clamped.
	Display int

	Radius        float64
	Circumference float64
	// DashOffset is negative when Display exceeds 100
	DashOffset float64
}

// Palette styles the terminal ring
type Palette struct {
	Fill  lipgloss.Style
	Track lipgloss.Style
	Value lipgloss.Style
	Label lipgloss.Style
}

// DefaultPalette colors the fill by score band
func DefaultPalette(display int) Palette {
	fill := lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	switch {
	case display < 50:
		fill = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}
	case display < 90:
		fill = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	}
	muted := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
	text := lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#F9FAFB"}

	return Palette{
		Fill:  lipgloss.NewStyle().Foreground(fill),
		Track: lipgloss.NewStyle().Foreground(muted),
		Value: lipgloss.NewStyle().Foreground(text).Bold(true),
		Label: lipgloss.NewStyle().Foreground(text),
	}
}

// RenderCircular computes the indicator for one score. It has no side
// effects; out-of-range progress is carried through unchanged.
func RenderCircular(label string, progress float64, size, strokeWidth int) Circular {
	display := metrics.RoundScore(progress)
	radius := float64(size-strokeWidth) / 2
	circumference := 2 * math.Pi * radius

	return Circular{
		Label:         label,
		Progress:      progress,
		Size:          size,
		StrokeWidth:   strokeWidth,
		Display:       display,
		Radius:        radius,
		Circumference: circumference,
		DashOffset:    circumference - float64(display)/100*circumference,
	}
}

// SVG returns a standalone SVG document of the ring
func (c Circular) SVG() string {
	center := float64(c.Size) / 2
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		c.Size, c.Size+24, c.Size, c.Size+24)
	fmt.Fprintf(&b, `  <circle cx="%g" cy="%g" r="%g" fill="none" stroke="#e6e6e6" stroke-width="%d"/>`+"\n",
		center, center, c.Radius, c.StrokeWidth)
	fmt.Fprintf(&b, `  <circle cx="%g" cy="%g" r="%g" fill="none" stroke="#4caf50" stroke-width="%d" `+
		`stroke-dasharray="%.4f" stroke-dashoffset="%.4f" stroke-linecap="round" transform="rotate(-90 %g %g)"/>`+"\n",
		center, center, c.Radius, c.StrokeWidth, c.Circumference, c.DashOffset, center, center)
	fmt.Fprintf(&b, `  <text x="%g" y="%g" text-anchor="middle" dominant-baseline="central" font-size="20" fill="#ffffff">%d</text>`+"\n",
		center, center, c.Display)
	fmt.Fprintf(&b, `  <text x="%g" y="%d" text-anchor="middle" font-size="14" fill="#cbd5e1">%s</text>`+"\n",
		center, c.Size+18, escapeXML(c.Label))
	b.WriteString("</svg>\n")

	return b.String()
}

// Cells returns the grid dimensions of the terminal ring for this size.
// Sizes are in pixels on the web page; ten pixels make one column.
func (c Circular) Cells() (cols, rows int) {
	cols = c.Size / 10
	if cols < 6 {
		cols = 6
	}
	rows = cols / 2
	if rows < 3 {
		rows = 3
	}
	return cols, rows
}

// Filled returns how many ring cells are lit. The count saturates at the
// ring length and never goes below zero.
func (c Circular) Filled() int {
	total := len(ringPath(c.Cells()))
	n := int(math.Round(float64(c.Display) / 100 * float64(total)))
	if n < 0 {
		return 0
	}
	if n > total {
		return total
	}
	return n
}

// View draws the ring with the default palette
func (c Circular) View() string {
	return c.ViewWith(DefaultPalette(c.Display))
}

// ViewWith draws the ring as a box of cells lit clockwise from the top
// centre, with the value inside and the label underneath
func (c Circular) ViewWith(p Palette) string {
	cols, rows := c.Cells()
	path := ringPath(cols, rows)
	filled := c.Filled()

	lit := make(map[[2]int]bool, filled)
	for i := 0; i < filled; i++ {
		lit[path[i]] = true
	}

	value := fmt.Sprintf("%d", c.Display)
	inner := cols - 2
	lines := make([]string, 0, rows+1)

	for y := 0; y < rows; y++ {
		var line strings.Builder
		for x := 0; x < cols; x++ {
			onRing := y == 0 || y == rows-1 || x == 0 || x == cols-1
			switch {
			case onRing && lit[[2]int{x, y}]:
				line.WriteString(p.Fill.Render("█"))
			case onRing:
				line.WriteString(p.Track.Render("░"))
			case y == rows/2 && x == 1:
				line.WriteString(p.Value.Render(centerText(value, inner)))
				x += inner - 1
			default:
				line.WriteString(" ")
			}
		}
		lines = append(lines, line.String())
	}
	label := lipgloss.PlaceHorizontal(max(cols, lipgloss.Width(c.Label)), lipgloss.Center, c.Label)
	lines = append(lines, p.Label.Render(label))

	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// ringPath lists the border cells of a cols×rows box clockwise, starting at
// the top centre.
func ringPath(cols, rows int) [][2]int {
	path := make([][2]int, 0, 2*cols+2*(rows-2))
	for x := 0; x < cols; x++ {
		path = append(path, [2]int{x, 0})
	}
	for y := 1; y < rows-1; y++ {
		path = append(path, [2]int{cols - 1, y})
	}
	for x := cols - 1; x >= 0; x-- {
		path = append(path, [2]int{x, rows - 1})
	}
	for y := rows - 2; y >= 1; y-- {
		path = append(path, [2]int{0, y})
	}

	start := cols / 2
	rotated := make([][2]int, 0, len(path))
	rotated = append(rotated, path[start:]...)
	return append(rotated, path[:start]...)
}

// centerText pads or truncates s to width runes
func centerText(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	left := (width - len(r)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(r)-left)
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
