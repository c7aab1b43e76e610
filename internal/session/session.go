package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/imjasonh/chessh-engine/internal/rules"
	"github.com/imjasonh/chessh-engine/internal/storage"
)

// Recorder receives every finished game exactly once.
type Recorder interface {
	Record(storage.GameRecord) error
}

// Session manages a single game between two players. It is the only owner of
// its rules.Game; presenters read copies through View.
type Session struct {
	ID    string
	White *Player
	Black *Player

	startedAt time.Time
	updates   chan Update
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex // guards player connection state

	// gameMu guards game. Engine queries try moves on the live board, so
	// reads take the exclusive lock too.
	gameMu   sync.Mutex
	game     *rules.Game
	finished bool

	recorder   Recorder
	recordOnce sync.Once
	logger     *log.Logger
}

func newSession(id string, white, black *Player, recorder Recorder, logger *log.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		ID:        id,
		White:     white,
		Black:     black,
		startedAt: time.Now(),
		updates:   make(chan Update, 10),
		ctx:       ctx,
		cancel:    cancel,
		game:      rules.NewGame(),
		recorder:  recorder,
		logger:    logger.With("game", id),
	}

	white.Color = rules.White
	white.GameID = id
	black.Color = rules.Black
	black.GameID = id

	go s.handleUpdates()

	return s
}

func (s *Session) handleUpdates() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case update := <-s.updates:
			s.deliver(update)
		}
	}
}

// deliver sends update to both players if connected.
func (s *Session) deliver(update Update) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range []*Player{s.White, s.Black} {
		if p != nil && p.Connected {
			p.offer(update)
		}
	}
}

func (s *Session) publish(update Update) {
	update.GameID = s.ID
	select {
	case <-s.ctx.Done():
	case s.updates <- update:
	case <-time.After(100 * time.Millisecond):
		// Drop update if channel is full
	}
}

func (s *Session) Player(playerID string) *Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.White != nil && s.White.ID == playerID {
		return s.White
	}
	if s.Black != nil && s.Black.ID == playerID {
		return s.Black
	}
	return nil
}

func (s *Session) Opponent(playerID string) *Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.White != nil && s.White.ID == playerID {
		return s.Black
	}
	if s.Black != nil && s.Black.ID == playerID {
		return s.White
	}
	return nil
}

func (s *Session) IsPlayerTurn(playerID string) bool {
	player := s.Player(playerID)
	if player == nil {
		return false
	}

	s.gameMu.Lock()
	defer s.gameMu.Unlock()
	return !s.finished && s.game.Turn() == player.Color
}

// View returns a copy of the game for rendering.
func (s *Session) View() *rules.Game {
	s.gameMu.Lock()
	defer s.gameMu.Unlock()
	return s.game.Clone()
}

// Finished reports whether the game has ended.
func (s *Session) Finished() bool {
	s.gameMu.Lock()
	defer s.gameMu.Unlock()
	return s.finished
}

// LegalMoves returns the destinations playerID may move the piece on from to.
// It is empty when it is not that player's turn or the piece is not theirs.
func (s *Session) LegalMoves(playerID string, from rules.Position) []rules.Position {
	player := s.Player(playerID)
	if player == nil {
		return nil
	}

	s.gameMu.Lock()
	defer s.gameMu.Unlock()
	if s.finished || s.game.Turn() != player.Color {
		return nil
	}
	return s.game.LegalMoves(from)
}

// Move plays from -> to for playerID and notifies both players. A move that
// ends the game is recorded.
func (s *Session) Move(playerID string, from, to rules.Position) error {
	player := s.Player(playerID)
	if player == nil {
		return ErrNotInGame
	}

	s.gameMu.Lock()
	if s.finished {
		s.gameMu.Unlock()
		return ErrGameOver
	}
	if s.game.Turn() != player.Color {
		s.gameMu.Unlock()
		return ErrNotYourTurn
	}
	if !s.game.MakeMove(from, to) {
		s.gameMu.Unlock()
		return fmt.Errorf("%s-%s: %w", from, to, ErrIllegalMove)
	}
	move, _ := s.game.LastMove()
	status := s.game.Status()
	text := s.game.StatusText()
	var rec storage.GameRecord
	if status.Over() {
		s.finished = true
		rec = s.recordLocked(resultFor(status, s.game.Winner()), text)
	}
	s.gameMu.Unlock()

	s.logger.Debug("move", "player", player.Name, "move", move, "status", status)
	s.publish(Update{Type: Moved, FromPlayer: playerID, Move: move, Status: status})

	if status.Over() {
		s.logger.Info("game over", "reason", text)
		s.record(rec)
		s.publish(Update{Type: GameOver, Status: status, Text: text})
	}
	return nil
}

func resultFor(status rules.Status, winner rules.Color) storage.Result {
	if status == rules.Checkmate {
		if winner == rules.White {
			return storage.WhiteWins
		}
		return storage.BlackWins
	}
	return storage.Draw
}

func (s *Session) recordLocked(result storage.Result, reason string) storage.GameRecord {
	moves := s.game.Moves()
	rec := storage.GameRecord{
		ID:         s.ID,
		White:      s.White.Name,
		Black:      s.Black.Name,
		Result:     result,
		Reason:     reason,
		Moves:      make([]string, 0, len(moves)),
		FinalKey:   s.game.PositionKey(),
		StartedAt:  s.startedAt,
		FinishedAt: time.Now(),
	}
	for _, m := range moves {
		rec.Moves = append(rec.Moves, m.String())
	}
	return rec
}

func (s *Session) record(rec storage.GameRecord) {
	if s.recorder == nil {
		return
	}
	s.recordOnce.Do(func() {
		if err := s.recorder.Record(rec); err != nil {
			s.logger.Error("recording game", "err", err)
		}
	})
}

// Disconnect marks playerID as gone. An unfinished game is forfeited to the
// remaining player.
func (s *Session) Disconnect(playerID string) {
	s.mu.Lock()
	var leaving, remaining *Player
	if s.White != nil && s.White.ID == playerID {
		s.White.Connected = false
		leaving, remaining = s.White, s.Black
	}
	if s.Black != nil && s.Black.ID == playerID {
		s.Black.Connected = false
		leaving, remaining = s.Black, s.White
	}
	notify := remaining != nil && remaining.Connected
	bothGone := (s.White == nil || !s.White.Connected) && (s.Black == nil || !s.Black.Connected)
	s.mu.Unlock()

	if leaving == nil {
		return
	}

	s.gameMu.Lock()
	forfeit := !s.finished
	var rec storage.GameRecord
	if forfeit {
		s.finished = true
		result := storage.WhiteWins
		if remaining.Color == rules.Black {
			result = storage.BlackWins
		}
		rec = s.recordLocked(result, fmt.Sprintf("%s disconnected", leaving.Name))
	}
	s.gameMu.Unlock()

	if forfeit {
		s.logger.Info("player disconnected", "player", leaving.Name)
		s.record(rec)
	}

	if notify {
		remaining.offer(Update{
			Type:   OpponentDisconnected,
			GameID: s.ID,
			Text:   fmt.Sprintf("%s left the game", leaving.Name),
		})
	}

	if bothGone {
		s.cancel()
	}
}

// Closed reports whether both players have left.
func (s *Session) Closed() bool {
	return s.ctx.Err() != nil
}
