package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/imjasonh/chessh-engine/internal/session"
)

// Handler returns the wish bubbletea handler that queues every SSH session
// as a player and removes it again when the connection ends.
func Handler(manager *session.Manager, stats StatsSource) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		player := session.NewPlayer(fmt.Sprintf("player_%d", time.Now().UnixNano()), s.User())

		m := New(manager, player, stats, bubbletea.MakeRenderer(s))
		manager.AddPlayer(player)

		go func() {
			<-s.Context().Done()
			manager.RemovePlayer(player.ID)
		}()

		return m, []tea.ProgramOption{tea.WithAltScreen(), tea.WithInput(s), tea.WithOutput(s)}
	}
}
