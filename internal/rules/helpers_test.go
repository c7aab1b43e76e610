package rules

import (
	"slices"
	"testing"
)

// sq converts an algebraic square name such as "e4" to a Position.
func sq(name string) Position {
	return Position{Row: int(name[1] - '1'), Col: int(name[0] - 'a')}
}

// squares returns nil for no names, matching the engine's empty results.
func squares(names ...string) []Position {
	var out []Position
	for _, n := range names {
		out = append(out, sq(n))
	}
	return out
}

// setup builds a game from "square": piece placements on an empty board.
func setup(turn Color, placements map[string]Piece) *Game {
	b := EmptyBoard()
	for name, p := range placements {
		b.Set(sq(name), p)
	}
	return NewGameFromBoard(b, turn)
}

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for i := 0; i+1 < len(moves); i += 2 {
		from, to := sq(moves[i]), sq(moves[i+1])
		if !g.MakeMove(from, to) {
			t.Fatalf("move %s-%s rejected:\n%s", from, to, g)
		}
	}
}

func sorted(ps []Position) []Position {
	out := slices.Clone(ps)
	slices.SortFunc(out, func(a, b Position) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return out
}

func countLegal(g *Game, c Color) int {
	n := 0
	for row := range boardSize {
		for col := range boardSize {
			from := Position{row, col}
			if p := g.At(from); !p.IsEmpty() && p.Color == c {
				n += len(g.LegalMoves(from))
			}
		}
	}
	return n
}

func perft(g *Game, depth int) int {
	if depth == 0 {
		return 1
	}
	total := 0
	for row := range boardSize {
		for col := range boardSize {
			from := Position{row, col}
			for _, to := range g.LegalMoves(from) {
				child := g.Clone()
				child.MakeMove(from, to)
				total += perft(child, depth-1)
			}
		}
	}
	return total
}

var (
	wK = Piece{King, White}
	wQ = Piece{Queen, White}
	wR = Piece{Rook, White}
	wB = Piece{Bishop, White}
	wN = Piece{Knight, White}
	wP = Piece{Pawn, White}
	bK = Piece{King, Black}
	bR = Piece{Rook, Black}
	bP = Piece{Pawn, Black}
	bN = Piece{Knight, Black}
)
