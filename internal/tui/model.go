// Package tui is the terminal front end served over SSH. It reads the board
// and legal moves from a session and commits moves through it; it never
// touches the rules engine directly.
package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/imjasonh/chessh-engine/internal/rules"
	"github.com/imjasonh/chessh-engine/internal/session"
	"github.com/imjasonh/chessh-engine/internal/storage"
)

// StatsSource looks up stored results for a player name.
type StatsSource interface {
	Stats(name string) (storage.PlayerStats, error)
}

type gameState string

const (
	stateWaiting      gameState = "waiting"
	statePlaying      gameState = "playing"
	stateFinished     gameState = "finished"
	stateDisconnected gameState = "opponent_disconnected"
)

type model struct {
	manager *session.Manager
	stats   StatsSource
	styles  styles

	// Game state
	view     *rules.Game // latest copy from the session
	cursor   rules.Position
	selected *rules.Position
	targets  []rules.Position

	// Multiplayer state
	player    *session.Player
	opponent  *session.Player
	session   *session.Session
	state     gameState
	banner    string
	flash     string
	myStats   storage.PlayerStats
	oppStats  storage.PlayerStats
}

// New returns the model for player, who must already be queued on manager.
// stats may be nil.
func New(manager *session.Manager, player *session.Player, stats StatsSource, r *lipgloss.Renderer) tea.Model {
	m := model{
		manager: manager,
		stats:   stats,
		styles:  newStyles(r),
		view:    rules.NewGame(),
		player:  player,
		state:   stateWaiting,
	}
	m.myStats = m.lookupStats(player.Name)
	return m
}

func (m model) Init() tea.Cmd {
	return m.listenForUpdates()
}

func (m model) listenForUpdates() tea.Cmd {
	return func() tea.Msg {
		u, ok := m.player.Next()
		if !ok {
			return nil
		}
		return u
	}
}

func (m model) lookupStats(name string) storage.PlayerStats {
	if m.stats == nil || name == "" {
		return storage.PlayerStats{}
	}
	st, err := m.stats.Stats(name)
	if err != nil {
		return storage.PlayerStats{}
	}
	return st
}

func (m model) myTurn() bool {
	return m.state == statePlaying && m.view.Turn() == m.player.Color
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case session.Update:
		return m.handleGameUpdate(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor.Row < 7 {
			m.cursor.Row++
			m.broadcastCursor()
		}
	case "down", "j":
		if m.cursor.Row > 0 {
			m.cursor.Row--
			m.broadcastCursor()
		}
	case "left", "h":
		if m.cursor.Col > 0 {
			m.cursor.Col--
			m.broadcastCursor()
		}
	case "right", "l":
		if m.cursor.Col < 7 {
			m.cursor.Col++
			m.broadcastCursor()
		}
	case "esc":
		if m.selected != nil {
			m.deselect()
		}
	case "enter", " ":
		if m.myTurn() {
			m.choose()
		}
	}
	return m, nil
}

func (m *model) broadcastCursor() {
	if m.state == statePlaying {
		m.manager.Broadcast(m.player.ID, session.Update{Type: session.Cursor, Square: m.cursor})
	}
}

func (m *model) deselect() {
	m.selected = nil
	m.targets = nil
	m.manager.Broadcast(m.player.ID, session.Update{Type: session.Deselected})
}

// choose selects the piece under the cursor or moves the selected piece there.
func (m *model) choose() {
	m.flash = ""
	pos := m.cursor
	piece := m.view.At(pos)

	switch {
	case m.selected != nil && *m.selected == pos:
		m.deselect()
	case !piece.IsEmpty() && piece.Color == m.player.Color:
		m.selected = &pos
		m.targets = m.session.LegalMoves(m.player.ID, pos)
		m.manager.Broadcast(m.player.ID, session.Update{
			Type:    session.Selected,
			Square:  pos,
			Targets: m.targets,
		})
	case m.selected != nil:
		err := m.session.Move(m.player.ID, *m.selected, pos)
		switch {
		case err == nil:
			m.selected = nil
			m.targets = nil
			m.view = m.session.View()
		case errors.Is(err, session.ErrIllegalMove):
			m.flash = "That move is not legal."
		default:
			m.flash = err.Error()
		}
	}
}

func (m model) handleGameUpdate(u session.Update) (tea.Model, tea.Cmd) {
	if u.FromPlayer == m.player.ID {
		return m, m.listenForUpdates()
	}

	switch u.Type {
	case session.Matched:
		m.session = m.manager.Session(m.player.ID)
		if m.session != nil {
			m.state = statePlaying
			m.view = m.session.View()
			m.opponent = m.session.Opponent(m.player.ID)
			if m.opponent != nil {
				m.oppStats = m.lookupStats(m.opponent.Name)
			}
		}

	case session.Moved:
		if m.session != nil {
			m.view = m.session.View()
		}

	case session.GameOver:
		m.state = stateFinished
		m.banner = u.Text
		m.selected = nil
		m.targets = nil
		if m.session != nil {
			m.view = m.session.View()
		}
		m.myStats = m.lookupStats(m.player.Name)
		if m.opponent != nil {
			m.oppStats = m.lookupStats(m.opponent.Name)
		}

	case session.OpponentDisconnected:
		if m.state == statePlaying {
			m.state = stateDisconnected
			m.banner = u.Text
		}
		m.selected = nil
		m.targets = nil

	case session.Cursor, session.Selected, session.Deselected:
		// Opponent activity is not shown yet.
	}

	return m, m.listenForUpdates()
}
