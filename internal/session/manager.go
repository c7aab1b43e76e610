// Package session pairs connected players into games and serializes their
// access to the rules engine.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Manager handles matchmaking and game coordination
type Manager struct {
	mu           sync.RWMutex
	queue        []*Player
	sessions     map[string]*Session
	playerToGame map[string]string // playerID -> gameID
	counter      int

	recorder Recorder
	logger   *log.Logger
	now      func() time.Time
}

// NewManager returns an empty manager. recorder may be nil.
func NewManager(recorder Recorder, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		sessions:     make(map[string]*Session),
		playerToGame: make(map[string]string),
		recorder:     recorder,
		logger:       logger,
		now:          time.Now,
	}
}

// AddPlayer queues player and starts a game once two players are waiting.
// The earlier arrival plays White.
func (m *Manager) AddPlayer(player *Player) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queue = append(m.queue, player)
	m.logger.Info("player queued", "player", player.Name, "queue", len(m.queue))

	if len(m.queue) < 2 {
		return
	}
	white, black := m.queue[0], m.queue[1]
	m.queue = m.queue[2:]

	m.counter++
	gameID := fmt.Sprintf("%s-%d", m.now().UTC().Format("20060102T150405"), m.counter)

	s := newSession(gameID, white, black, m.recorder, m.logger)
	m.sessions[gameID] = s
	m.playerToGame[white.ID] = gameID
	m.playerToGame[black.ID] = gameID
	m.logger.Info("game started", "game", gameID, "white", white.Name, "black", black.Name)

	matched := Update{Type: Matched, GameID: gameID}
	white.offer(matched)
	black.offer(matched)
}

// RemovePlayer drops playerID from the queue or its game. A forfeit is
// recorded without holding the manager lock.
func (m *Manager) RemovePlayer(playerID string) {
	m.mu.Lock()
	for i, player := range m.queue {
		if player.ID == playerID {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			player.leave()
			break
		}
	}

	gameID, ok := m.playerToGame[playerID]
	if ok {
		delete(m.playerToGame, playerID)
	}
	s := m.sessions[gameID]
	m.mu.Unlock()

	if !ok || s == nil {
		return
	}
	if p := s.Player(playerID); p != nil {
		p.leave()
	}
	s.Disconnect(playerID)
	if !s.Closed() {
		return
	}

	m.mu.Lock()
	if m.sessions[gameID] == s {
		delete(m.sessions, gameID)
		m.logger.Info("game closed", "game", gameID)
	}
	m.mu.Unlock()
}

func (m *Manager) Session(playerID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if gameID, ok := m.playerToGame[playerID]; ok {
		return m.sessions[gameID]
	}
	return nil
}

// Broadcast forwards an update from playerID to everyone in that player's game.
func (m *Manager) Broadcast(playerID string, update Update) {
	if s := m.Session(playerID); s != nil {
		update.FromPlayer = playerID
		s.publish(update)
	}
}

// QueuePosition returns the 1-based queue position, or -1 if not queued.
func (m *Manager) QueuePosition(playerID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i, player := range m.queue {
		if player.ID == playerID {
			return i + 1
		}
	}
	return -1
}

// ActiveGames returns the number of games that still have a player connected.
func (m *Manager) ActiveGames() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
