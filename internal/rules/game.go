package rules

import (
	"fmt"
	"slices"
)

// Move records one applied move.
type Move struct {
	From, To  Position
	Piece     Piece
	Captured  Piece
	EnPassant bool
	Promotion bool
}

func (m Move) String() string {
	s := fmt.Sprintf("%s-%s", m.From, m.To)
	if m.Promotion {
		s += "=Q"
	}
	return s
}

// Game owns the board and the state that travels with it between plies.
type Game struct {
	board         Board
	turn          Color
	enPassant     Position // square the last double-stepped pawn landed on, or noSquare
	halfmoveClock int
	history       []string
	moves         []Move

	// Castling rights are tracked but no castling move is ever generated.
	kingMoved [2]bool
	rookMoved [2][2]bool // [color][0 = queen side, 1 = king side]
}

// NewGame returns a game at the standard starting position with White to move.
func NewGame() *Game {
	return NewGameFromBoard(NewBoard(), White)
}

// NewGameFromBoard starts a game from an arbitrary grid. The position history
// holds only the given position. A turn other than White or Black is treated
// as White.
func NewGameFromBoard(board Board, turn Color) *Game {
	if turn != Black {
		turn = White
	}
	g := &Game{
		board:     board,
		turn:      turn,
		enPassant: noSquare,
	}
	g.history = []string{g.PositionKey()}
	return g
}

// Clone returns an independent copy of g.
func (g *Game) Clone() *Game {
	c := *g
	c.history = slices.Clone(g.history)
	c.moves = slices.Clone(g.moves)
	return &c
}

func (g *Game) At(pos Position) Piece {
	return g.board.At(pos)
}

// Board returns a copy of the grid.
func (g *Game) Board() Board {
	return g.board
}

func (g *Game) Turn() Color {
	return g.turn
}

func (g *Game) HalfmoveClock() int {
	return g.halfmoveClock
}

// EnPassantTarget returns the square of the pawn that double-stepped on the
// previous ply, if any.
func (g *Game) EnPassantTarget() (Position, bool) {
	return g.enPassant, g.enPassant.Valid()
}

// History returns the position keys recorded so far, oldest first.
func (g *Game) History() []string {
	return slices.Clone(g.history)
}

// Moves returns the applied moves, oldest first.
func (g *Game) Moves() []Move {
	return slices.Clone(g.moves)
}

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (Move, bool) {
	if len(g.moves) == 0 {
		return Move{}, false
	}
	return g.moves[len(g.moves)-1], true
}

func (g *Game) KingMoved(c Color) bool {
	if c != White && c != Black {
		return false
	}
	return g.kingMoved[c]
}

func (g *Game) RookMoved(c Color, kingSide bool) bool {
	if c != White && c != Black {
		return false
	}
	if kingSide {
		return g.rookMoved[c][1]
	}
	return g.rookMoved[c][0]
}

func (g *Game) String() string {
	return g.board.String()
}
