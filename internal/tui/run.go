package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sentinelflow/sentinelflow/internal/agent"
	"github.com/sentinelflow/sentinelflow/internal/config"
	"github.com/sentinelflow/sentinelflow/internal/webserver"
)

// Run starts the interactive console and blocks until the user quits.
func Run(cfg config.Config, client *agent.Client, hub *webserver.Hub) error {
	notify := func(orderID string) {
		client.MarkNotified(context.Background(), orderID)
	}
	p := tea.NewProgram(New(cfg, client, notify, hub), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
