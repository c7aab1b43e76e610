package storage

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func record(id, white, black string, result Result) GameRecord {
	start := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	return GameRecord{
		ID:         id,
		White:      white,
		Black:      black,
		Result:     result,
		Reason:     "Checkmate! White wins!",
		Moves:      []string{"e2-e4", "e7-e5"},
		StartedAt:  start,
		FinishedAt: start.Add(5 * time.Minute),
	}
}

func TestSaveAndLoadGame(t *testing.T) {
	s := openTestStore(t)
	want := record("g1", "alice", "bob", WhiteWins)

	if err := s.SaveGame(want); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	got, err := s.LoadGame("g1")
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadGame mismatch (-want +got):\n%s", diff)
	}

	if err := s.SaveGame(want); !errors.Is(err, ErrExists) {
		t.Errorf("second SaveGame error = %v, want ErrExists", err)
	}
	if _, err := s.LoadGame("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadGame(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.SaveGame(GameRecord{}); err == nil {
		t.Error("SaveGame without id succeeded")
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	for _, rec := range []GameRecord{
		record("g1", "alice", "bob", WhiteWins),
		record("g2", "bob", "alice", WhiteWins),
		record("g3", "alice", "bob", Draw),
		record("g4", "carol", "alice", BlackWins),
	} {
		if err := s.Record(rec); err != nil {
			t.Fatalf("Record(%s): %v", rec.ID, err)
		}
	}

	tests := []struct {
		name string
		want PlayerStats
	}{
		{"alice", PlayerStats{Played: 4, Wins: 2, Losses: 1, Draws: 1}},
		{"bob", PlayerStats{Played: 3, Wins: 1, Losses: 1, Draws: 1}},
		{"carol", PlayerStats{Played: 1, Losses: 1}},
		{"nobody", PlayerStats{}},
	}
	for _, tt := range tests {
		got, err := s.Stats(tt.name)
		if err != nil {
			t.Fatalf("Stats(%s): %v", tt.name, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Stats(%s) mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
	if got := (PlayerStats{Wins: 2, Losses: 1, Draws: 1}).String(); got != "W2 L1 D1" {
		t.Errorf("String() = %q", got)
	}
}

func TestListGames(t *testing.T) {
	s := openTestStore(t)
	for _, id := range []string{"b", "a", "c"} {
		if err := s.SaveGame(record(id, "w", "b", Draw)); err != nil {
			t.Fatalf("SaveGame(%s): %v", id, err)
		}
	}

	games, err := s.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	var ids []string
	for _, g := range games {
		ids = append(ids, g.ID)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Errorf("ListGames ids mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SaveGame(record("g1", "alice", "bob", BlackWins)); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	st, err := s.Stats("bob")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Wins != 1 {
		t.Errorf("bob wins after reopen = %d, want 1", st.Wins)
	}
}

func TestDatabaseDir(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG layout only")
	}
	home := t.TempDir()
	xdg := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"XDG_DATA_HOME", xdg, filepath.Join(xdg, "chessh", "games")},
		{"relative XDG_DATA_HOME ignored", "data", filepath.Join(home, ".local", "share", "chessh", "games")},
		{"unset", "", filepath.Join(home, ".local", "share", "chessh", "games")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_DATA_HOME", tt.xdg)
			got, err := DatabaseDir()
			if err != nil {
				t.Fatalf("DatabaseDir: %v", err)
			}
			if got != tt.want {
				t.Errorf("DatabaseDir() = %q, want %q", got, tt.want)
			}
			fi, err := os.Stat(got)
			if err != nil {
				t.Fatalf("Stat: %v", err)
			}
			if perm := fi.Mode().Perm(); perm&0o077 != 0 {
				t.Errorf("mode = %v, want owner-only", perm)
			}
		})
	}
}
