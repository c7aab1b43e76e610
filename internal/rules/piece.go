// Package rules implements two-player chess rules on an 8x8 grid: legal move
// generation, move application and end-of-game detection.
//
// A Game is not safe for concurrent use. Callers that share one between
// goroutines must serialize access themselves.
package rules

import "fmt"

type Color int

const (
	White Color = iota
	Black
	// NoColor is carried only by empty squares.
	NoColor
)

// Other returns the opposing side. NoColor has no opponent.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "None"
}

type PieceType int

const (
	Empty PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	}
	return "Empty"
}

// Piece is an immutable (type, color) pair. The zero-valued empty square is
// not Piece{}; use NoPiece.
type Piece struct {
	Type  PieceType
	Color Color
}

var NoPiece = Piece{Empty, NoColor}

func (p Piece) IsEmpty() bool {
	return p.Type == Empty
}

var pieceLetters = [...]byte{'.', 'P', 'N', 'B', 'R', 'Q', 'K'}

// Char returns the piece letter, upper case for White and lower case for
// Black, or '.' for an empty square.
func (p Piece) Char() byte {
	if p.IsEmpty() {
		return '.'
	}
	c := pieceLetters[p.Type]
	if p.Color == Black {
		c += 'a' - 'A'
	}
	return c
}

var (
	whiteSymbols = [...]string{" ", "♙", "♘", "♗", "♖", "♕", "♔"}
	blackSymbols = [...]string{" ", "♟", "♞", "♝", "♜", "♛", "♚"}
)

// String returns the Unicode chess symbol for the piece.
func (p Piece) String() string {
	if p.Color == White {
		return whiteSymbols[p.Type]
	}
	return blackSymbols[p.Type]
}

// Name returns a human readable description such as "White Knight".
func (p Piece) Name() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return fmt.Sprintf("%s %s", p.Color, p.Type)
}
