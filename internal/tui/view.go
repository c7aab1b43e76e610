package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imjasonh/chessh-engine/internal/rules"
)

const fileLabels = "  a  b  c  d  e  f  g  h  "

func (m model) View() string {
	var s strings.Builder
	s.WriteString(m.styles.title.Render("CheSSH"))
	s.WriteString("\n")

	switch m.state {
	case stateWaiting:
		s.WriteString("Waiting for an opponent to connect...\n\n")
		if pos := m.manager.QueuePosition(m.player.ID); pos > 0 {
			fmt.Fprintf(&s, "Position in queue: %d\n", pos)
		}
		s.WriteString("You can explore the board while waiting:\n")
		s.WriteString("Use arrow keys to move cursor, Q to quit\n\n")

	case stateDisconnected:
		s.WriteString(m.styles.banner.Render("*** OPPONENT DISCONNECTED; YOU WIN ***"))
		s.WriteString("\n")
		fmt.Fprintf(&s, "%s. Press Q to quit.\n\n", m.banner)

	case stateFinished:
		s.WriteString(m.styles.banner.Render(fmt.Sprintf("*** %s ***", m.banner)))
		s.WriteString("\nPress Q to quit.\n\n")

	default:
		if m.opponent != nil {
			fmt.Fprintf(&s, "You: %s (%s) vs %s (%s)\n",
				m.player.Name, m.player.Color, m.opponent.Name, m.opponent.Color)
		}
		if m.myTurn() {
			s.WriteString("YOUR TURN - Use arrow keys to move cursor, ENTER/SPACE to select/move, ESC to deselect, Q to quit\n\n")
		} else {
			s.WriteString("OPPONENT'S TURN - Please wait for your opponent to move\n\n")
		}
		if status := m.view.StatusText(); status != "" {
			s.WriteString(m.styles.banner.Render(fmt.Sprintf("*** %s ***", status)))
			s.WriteString("\n\n")
		}
	}

	if m.flash != "" {
		s.WriteString(m.styles.flash.Render(m.flash))
		s.WriteString("\n")
	}

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderBoard(), "   ", m.renderInfo()))
	s.WriteString("\n")
	return s.String()
}

func (m model) renderBoard() string {
	lines := []string{fileLabels}
	for row := 7; row >= 0; row-- {
		var line strings.Builder
		fmt.Fprintf(&line, "%d", row+1)
		for col := range 8 {
			pos := rules.Position{Row: row, Col: col}
			line.WriteString(m.squareStyle(pos).Render(" " + m.view.At(pos).String() + " "))
		}
		fmt.Fprintf(&line, "%d", row+1)
		lines = append(lines, line.String())
	}
	lines = append(lines, fileLabels)
	return strings.Join(lines, "\n")
}

func (m model) squareStyle(pos rules.Position) lipgloss.Style {
	switch {
	case m.cursor == pos:
		return m.styles.cursor
	case m.selected != nil && *m.selected == pos:
		return m.styles.selected
	case slices.Contains(m.targets, pos):
		return m.styles.target
	case (pos.Row+pos.Col)%2 == 1:
		return m.styles.light
	}
	return m.styles.dark
}

func (m model) renderInfo() string {
	var lines []string
	lines = append(lines, "GAME INFO", "")
	lines = append(lines, fmt.Sprintf("Turn: %s", m.view.Turn()))
	lines = append(lines, fmt.Sprintf("Clock: %d plies", m.view.HalfmoveClock()))
	lines = append(lines, fmt.Sprintf("Record: %s", m.myStats))
	if m.opponent != nil {
		lines = append(lines, fmt.Sprintf("Opponent: %s", m.oppStats))
	}
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("Cursor: %s", m.cursor))
	lines = append(lines, fmt.Sprintf("Piece: %s", m.view.At(m.cursor).Name()))

	if m.selected != nil {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("Selected: %s", m.view.At(*m.selected).Name()))
		lines = append(lines, fmt.Sprintf("At: %s", m.selected))

		if len(m.targets) > 0 {
			lines = append(lines, "", "Valid moves:")

			// Show up to 6 valid moves
			shown := min(len(m.targets), 6)
			for i := 0; i < shown; i += 2 {
				line := m.targets[i].String()
				if i+1 < shown {
					line += "  " + m.targets[i+1].String()
				}
				lines = append(lines, line)
			}
			if len(m.targets) > 6 {
				lines = append(lines, fmt.Sprintf("... and %d more", len(m.targets)-6))
			}
		}
	}

	info := m.styles.info.Render(strings.Join(lines, "\n"))
	if last, ok := m.view.LastMove(); ok {
		info += "\n" + fmt.Sprintf("Last move: %s -> %s", last.From, last.To)
	}
	return info
}
