// Package storage persists finished games and per-player statistics in BadgerDB.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrExists   = errors.New("record already exists")
)

const (
	gamePrefix   = "game/"
	playerPrefix = "player/"
)

// Result of a finished game, in the usual score notation.
type Result string

const (
	WhiteWins Result = "1-0"
	BlackWins Result = "0-1"
	Draw      Result = "1/2-1/2"
)

// GameRecord is a finished game as stored on disk.
type GameRecord struct {
	ID         string    `json:"id"`
	White      string    `json:"white"`
	Black      string    `json:"black"`
	Result     Result    `json:"result"`
	Reason     string    `json:"reason"`
	Moves      []string  `json:"moves"`
	FinalKey   string    `json:"final_key"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// PlayerStats counts results for one player name.
type PlayerStats struct {
	Played int `json:"played"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

func (s PlayerStats) String() string {
	return fmt.Sprintf("W%d L%d D%d", s.Wins, s.Losses, s.Draws)
}

// Store wraps BadgerDB.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Store, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Store, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame stores rec and credits the result to both players in one
// transaction. Saving the same ID twice returns ErrExists.
func (s *Store) SaveGame(rec GameRecord) error {
	if rec.ID == "" {
		return errors.New("game record has no id")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	key := []byte(gamePrefix + rec.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("game %s: %w", rec.ID, ErrExists)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}

		if err := updateStats(txn, rec.White, func(st *PlayerStats) { st.credit(rec.Result, WhiteWins) }); err != nil {
			return err
		}
		return updateStats(txn, rec.Black, func(st *PlayerStats) { st.credit(rec.Result, BlackWins) })
	})
}

// Record implements session.Recorder.
func (s *Store) Record(rec GameRecord) error {
	return s.SaveGame(rec)
}

func (st *PlayerStats) credit(result, win Result) {
	st.Played++
	switch result {
	case win:
		st.Wins++
	case Draw:
		st.Draws++
	default:
		st.Losses++
	}
}

func updateStats(txn *badger.Txn, name string, fn func(*PlayerStats)) error {
	if name == "" {
		return nil
	}
	var st PlayerStats
	if err := getJSON(txn, []byte(playerPrefix+name), &st); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	fn(&st)
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return txn.Set([]byte(playerPrefix+name), data)
}

func getJSON(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// LoadGame returns the game stored under id.
func (s *Store) LoadGame(id string) (GameRecord, error) {
	var rec GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, []byte(gamePrefix+id), &rec)
	})
	if err != nil {
		return GameRecord{}, fmt.Errorf("game %s: %w", id, err)
	}
	return rec, nil
}

// ListGames returns every stored game in key order.
func (s *Store) ListGames() ([]GameRecord, error) {
	var games []GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec GameRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})
	return games, err
}

// Stats returns the statistics for name; unknown players have zero stats.
func (s *Store) Stats(name string) (PlayerStats, error) {
	var st PlayerStats
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, []byte(playerPrefix+name), &st)
	})
	if errors.Is(err, ErrNotFound) {
		return PlayerStats{}, nil
	}
	return st, err
}
