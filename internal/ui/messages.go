package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/speedx/internal/config"
	"github.com/yildizm/speedx/internal/orchestrator"
)

// Animation message
type tickMsg time.Time

// Animation command
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// analysisResultMsg carries a finished request back to Update, where it is
// resolved
type analysisResultMsg struct {
	outcome orchestrator.Outcome
}

// configReloadedMsg is sent when the watched config file changes
type configReloadedMsg struct {
	config *config.Config
}

// dispatchCommand runs the network part of an analysis off the event loop
func dispatchCommand(ctx context.Context, o *orchestrator.Orchestrator, ticket *orchestrator.Ticket) tea.Cmd {
	return func() tea.Msg {
		return analysisResultMsg{outcome: o.Dispatch(ctx, ticket)}
	}
}

// waitForReload blocks until the next config reload. A nil channel disables
// hot reload.
func waitForReload(reloads <-chan *config.Config) tea.Cmd {
	if reloads == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-reloads
		if !ok {
			return nil
		}
		return configReloadedMsg{config: cfg}
	}
}
