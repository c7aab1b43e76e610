package session

import (
	"sync"

	"github.com/imjasonh/chessh-engine/internal/rules"
)

// Player represents a connected player
type Player struct {
	ID        string
	Name      string
	Color     rules.Color
	GameID    string
	Connected bool

	// Updates carries notifications to the player's model. It is never
	// closed; wait on Done as well.
	Updates chan Update

	done     chan struct{}
	doneOnce sync.Once
}

func NewPlayer(id, name string) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Color:     rules.NoColor,
		Connected: true,
		Updates:   make(chan Update, 10),
		done:      make(chan struct{}),
	}
}

// Done is closed once the player has left.
func (p *Player) Done() <-chan struct{} {
	return p.done
}

func (p *Player) leave() {
	p.doneOnce.Do(func() { close(p.done) })
}

// Next blocks until an update arrives or the player leaves.
func (p *Player) Next() (Update, bool) {
	select {
	case u := <-p.Updates:
		return u, true
	case <-p.done:
		return Update{}, false
	}
}

// offer delivers u without blocking; a full channel drops it.
func (p *Player) offer(u Update) {
	select {
	case p.Updates <- u:
	default:
	}
}

type UpdateType string

const (
	Matched              UpdateType = "matched"
	Moved                UpdateType = "move"
	Cursor               UpdateType = "cursor"
	Selected             UpdateType = "select"
	Deselected           UpdateType = "deselect"
	OpponentDisconnected UpdateType = "opponent_disconnected"
	GameOver             UpdateType = "game_over"
)

// Update represents an update to broadcast to players
type Update struct {
	Type       UpdateType
	FromPlayer string
	GameID     string

	Move    rules.Move       // Moved
	Square  rules.Position   // Cursor, Selected
	Targets []rules.Position // Selected
	Status  rules.Status     // Moved, GameOver
	Text    string           // banner text for GameOver and OpponentDisconnected
}
