package rules

import (
	"fmt"
	"strings"
)

const boardSize = 8

// Position addresses a square. Row 0 is rank 1 (White's back rank) and Col 0
// is the a-file.
type Position struct {
	Row, Col int
}

var noSquare = Position{-1, -1}

func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < boardSize && p.Col >= 0 && p.Col < boardSize
}

func (p Position) String() string {
	if !p.Valid() {
		return "invalid"
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, p.Row+1)
}

func (p Position) add(d Position) Position {
	return Position{p.Row + d.Row, p.Col + d.Col}
}

// Board is the 8x8 piece grid, indexed [row][col].
type Board [boardSize][boardSize]Piece

var backRank = [boardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	b := EmptyBoard()
	for col := range boardSize {
		b[0][col] = Piece{backRank[col], White}
		b[1][col] = Piece{Pawn, White}
		b[6][col] = Piece{Pawn, Black}
		b[7][col] = Piece{backRank[col], Black}
	}
	return b
}

// EmptyBoard returns a grid with every square empty.
func EmptyBoard() Board {
	var b Board
	for row := range boardSize {
		for col := range boardSize {
			b[row][col] = NoPiece
		}
	}
	return b
}

// At returns the piece on pos, or NoPiece when pos is off the board.
func (b *Board) At(pos Position) Piece {
	if !pos.Valid() {
		return NoPiece
	}
	return b[pos.Row][pos.Col]
}

// Set places piece on pos. Off-board positions are ignored.
func (b *Board) Set(pos Position, piece Piece) {
	if pos.Valid() {
		b[pos.Row][pos.Col] = piece
	}
}

func (b *Board) String() string {
	var s strings.Builder
	for row := boardSize - 1; row >= 0; row-- {
		fmt.Fprintf(&s, "%d ", row+1)
		for col := range boardSize {
			s.WriteByte(b[row][col].Char())
			s.WriteByte(' ')
		}
		s.WriteByte('\n')
	}
	s.WriteString("  a b c d e f g h\n")
	return s.String()
}
