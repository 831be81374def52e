// Package ui is the interactive terminal client.
package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/speedx/internal/config"
	"github.com/yildizm/speedx/internal/emoji"
	"github.com/yildizm/speedx/internal/input"
	"github.com/yildizm/speedx/internal/logger"
	"github.com/yildizm/speedx/internal/metrics"
	"github.com/yildizm/speedx/internal/notify"
	"github.com/yildizm/speedx/internal/orchestrator"
	"github.com/yildizm/speedx/internal/ui/components"
)

const placeholder = "e.g: https://youtube.com"

// Options configures the interactive model
type Options struct {
	InitialURL    string
	AutoStart     bool // analyze InitialURL as soon as the program starts
	Theme         string
	IndicatorSize int
	StrokeWidth   int
	Reloads       <-chan *config.Config
	Logger        *logger.Logger
}

// Model is the Bubble Tea model of the client. It owns the URL field, the
// metrics store (through the orchestrator) and the toast queue; all of them
// are only mutated from Update.
type Model struct {
	ctx     context.Context
	orch    *orchestrator.Orchestrator
	toaster *notify.Toaster
	input   *input.Controller
	loader  *components.Loader
	logger  *logger.Logger
	reloads <-chan *config.Config

	styles    Styles
	size      int
	stroke    int
	autoStart bool

	width     int
	height    int
	ready     bool
	quitting  bool
	showStats bool
	lastURL   string
}

// NewModel creates the model. orch must report errors to toaster so they
// are rendered.
func NewModel(ctx context.Context, orch *orchestrator.Orchestrator, toaster *notify.Toaster, opts Options) *Model {
	theme, ok := ThemeByName(opts.Theme)
	lg := opts.Logger
	if lg == nil {
		lg = logger.Discard()
	}
	if !ok {
		lg.Warn("unknown theme %q, using default", opts.Theme)
	}

	size, stroke := opts.IndicatorSize, opts.StrokeWidth
	if size <= 0 {
		size = 120
	}
	if stroke <= 0 || stroke >= size {
		stroke = 14
	}

	loader := components.NewLoader()
	loader.SetStyle(NewStyles(theme).Progress)

	return &Model{
		ctx:       ctx,
		orch:      orch,
		toaster:   toaster,
		input:     input.NewController(opts.InitialURL),
		loader:    loader,
		logger:    lg,
		reloads:   opts.Reloads,
		styles:    NewStyles(theme),
		size:      size,
		stroke:    stroke,
		autoStart: opts.AutoStart,
	}
}

// Init starts the animation, the config watcher and the optional first analysis
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(), waitForReload(m.reloads)}
	if m.autoStart && m.input.URL() != "" {
		cmds = append(cmds, m.startAnalysis())
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	case analysisResultMsg:
		return m.handleAnalysisResult(msg)
	case configReloadedMsg:
		return m.handleConfigReload(msg)
	}
	return m, nil
}

// URL returns the text of the URL field
func (m *Model) URL() string {
	return m.input.URL()
}

// handleWindowResize handles window resize events
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	return m, nil
}

// handleKeyPress handles keyboard input. Printable keys always go to the URL
// field, so commands are bound to control keys.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m, m.startAnalysis()
	case tea.KeyBackspace:
		m.input.Backspace()
	case tea.KeyCtrlU:
		m.input.Clear()
	case tea.KeyCtrlR:
		m.orch.Store().Reset()
		m.lastURL = ""
	case tea.KeyTab:
		m.showStats = !m.showStats
	case tea.KeySpace:
		m.input.InsertRunes([]rune{' '})
	case tea.KeyRunes:
		m.input.InsertRunes(msg.Runes)
	}
	return m, nil
}

// startAnalysis enters Pending and returns the command that performs the
// request. An empty URL is rejected by the orchestrator, which queues the
// toast itself.
func (m *Model) startAnalysis() tea.Cmd {
	url := m.input.URL()
	ticket, err := m.orch.Begin(url)
	if err != nil {
		m.logger.Debug("analysis rejected: %v", err)
		return nil
	}

	m.lastURL = url
	m.loader.Start("Analyzing " + url)
	return dispatchCommand(m.ctx, m.orch, ticket)
}

// handleAnalysisResult resolves a finished request on the event loop
func (m *Model) handleAnalysisResult(msg analysisResultMsg) (tea.Model, tea.Cmd) {
	if err := m.orch.Resolve(msg.outcome); err != nil {
		m.logger.Debug("analysis resolved with error: %v", err)
	}
	if !m.orch.Loading() {
		m.loader.Stop()
	}
	return m, nil
}

// handleTick handles timer ticks
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	m.loader.Tick()
	m.toaster.Prune()
	return m, tick()
}

// handleConfigReload applies the settings that can change at runtime
func (m *Model) handleConfigReload(msg configReloadedMsg) (tea.Model, tea.Cmd) {
	cfg := msg.config
	if cfg == nil {
		return m, waitForReload(m.reloads)
	}

	if theme, ok := ThemeByName(cfg.UI.Theme); ok {
		m.styles = NewStyles(theme)
		m.loader.SetStyle(m.styles.Progress)
	}
	if cfg.UI.IndicatorSize > 0 && cfg.UI.StrokeWidth > 0 && cfg.UI.StrokeWidth < cfg.UI.IndicatorSize {
		m.size = cfg.UI.IndicatorSize
		m.stroke = cfg.UI.StrokeWidth
	}
	if cfg.UI.ToastDuration > 0 {
		m.orch.SetNotifyDuration(cfg.UI.ToastDuration)
	}
	m.logger.Info("configuration reloaded (theme=%s)", m.styles.Theme.Name)

	return m, waitForReload(m.reloads)
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return m.styles.Muted.Render("Thanks for using SpeedX! "+emoji.GetEmoji("door")) + "\n"
	}
	if !m.ready {
		return m.styles.Title.Render("Initializing SpeedX...")
	}

	sections := []string{
		m.renderToasts(),
		m.styles.Title.Render(emoji.GetEmoji("rocket") + " SpeedX"),
		"",
		m.renderInput(),
		"",
	}

	if m.orch.Loading() {
		sections = append(sections, "", m.loader.Render(), "")
	} else {
		sections = append(sections, m.renderResults())
	}

	if m.showStats {
		sections = append(sections, "", components.CreateSessionStats(m.orch.Session().Snapshot()).Render())
	}

	sections = append(sections, "", m.renderHelp())

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}

func (m *Model) renderToasts() string {
	active := m.toaster.Active()
	if len(active) == 0 {
		return ""
	}
	toasts := make([]string, 0, len(active))
	for _, toast := range active {
		toasts = append(toasts, m.styles.Toast.Render(emoji.GetEmoji("error")+" "+toast.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Center, toasts...)
}

func (m *Model) renderInput() string {
	width := m.width * 8 / 10
	if width < 30 {
		width = 30
	}

	text := m.input.URL()
	var field string
	if text == "" {
		field = m.styles.Placeholder.Render(placeholder)
	} else {
		field = m.styles.Body.Render(text)
	}
	field += m.styles.Progress.Render("▏")

	box := m.styles.Input.Width(width).Render(field)
	button := m.styles.Button.Render("Analyze")
	return lipgloss.JoinVertical(lipgloss.Center, box, "", button)
}

func (m *Model) renderResults() string {
	result := m.orch.Store().Get()

	var header string
	if m.lastURL != "" {
		header = m.styles.Muted.Render(emoji.GetEmoji("globe") + " " + m.lastURL)
	}

	summary := components.CreateMetricsSummary(result, 0).Render()
	rings := m.renderRings(result)

	return lipgloss.JoinVertical(lipgloss.Center, header, summary, "", rings)
}

// renderRings lays the four score rings out in one row, or two rows when the
// terminal is too narrow
func (m *Model) renderRings(result metrics.Result) string {
	scores := result.Scores()
	views := make([]string, 0, len(scores))
	for _, score := range scores {
		ring := components.RenderCircular(score.Label, score.Value, m.size, m.stroke)
		views = append(views, lipgloss.NewStyle().Padding(0, 2).Render(ring.ViewWith(m.styles.Theme.Palette(ring.Display))))
	}

	perRow := len(views)
	if m.width > 0 && lipgloss.Width(strings.Join(views, "")) > m.width {
		perRow = 2
	}

	var rows []string
	for i := 0; i < len(views); i += perRow {
		end := i + perRow
		if end > len(views) {
			end = len(views)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, views[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (m *Model) renderHelp() string {
	keys := []string{
		"enter analyze",
		"ctrl+u clear",
		"ctrl+r reset",
		"tab stats",
		"esc quit",
	}
	return m.styles.Muted.Render(strings.Join(keys, " • "))
}

// Run runs the interactive client until the user quits or ctx is done
func Run(ctx context.Context, model *Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive client failed: %w", err)
	}
	return nil
}
