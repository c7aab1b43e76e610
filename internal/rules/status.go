package rules

import (
	"fmt"
	"strings"
)

// IsCheckmate reports whether c is in check with no legal move.
func (g *Game) IsCheckmate(c Color) bool {
	return g.IsInCheck(c) && !g.hasLegalMove(c)
}

// IsStalemate reports whether c is not in check but has no legal move.
func (g *Game) IsStalemate(c Color) bool {
	return !g.IsInCheck(c) && !g.hasLegalMove(c)
}

// PositionKey encodes the grid, rank 8 first, followed by the side to move.
// En passant and castling rights are not part of the key, so repetition is
// judged on placement and turn alone.
func (g *Game) PositionKey() string {
	var key strings.Builder
	key.Grow(boardSize*boardSize + 1)
	for row := boardSize - 1; row >= 0; row-- {
		for col := range boardSize {
			key.WriteByte(g.board[row][col].Char())
		}
	}
	if g.turn == Black {
		key.WriteByte('b')
	} else {
		key.WriteByte('w')
	}
	return key.String()
}

// IsThreefoldRepetition reports whether the current position has occurred at
// least three times, counting the current occurrence.
func (g *Game) IsThreefoldRepetition() bool {
	key := g.PositionKey()
	count := 0
	for _, k := range g.history {
		if k == key {
			count++
		}
	}
	return count >= 3
}

// IsFiftyMoveRule reports whether 100 plies have passed without a pawn move
// or capture.
func (g *Game) IsFiftyMoveRule() bool {
	return g.halfmoveClock >= 100
}

type Status int

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
	ThreefoldRepetition
	FiftyMoveRule
)

func (s Status) String() string {
	switch s {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case ThreefoldRepetition:
		return "threefold repetition"
	case FiftyMoveRule:
		return "fifty-move rule"
	}
	return "ongoing"
}

// Over reports whether the status ends the game.
func (s Status) Over() bool {
	return s != Ongoing && s != Check
}

// Status evaluates the position for the side to move.
func (g *Game) Status() Status {
	inCheck := g.IsInCheck(g.turn)
	if !g.hasLegalMove(g.turn) {
		if inCheck {
			return Checkmate
		}
		return Stalemate
	}
	switch {
	case g.IsThreefoldRepetition():
		return ThreefoldRepetition
	case g.IsFiftyMoveRule():
		return FiftyMoveRule
	case inCheck:
		return Check
	}
	return Ongoing
}

// Winner returns the side that delivered checkmate, or NoColor.
func (g *Game) Winner() Color {
	if g.IsCheckmate(g.turn) {
		return g.turn.Other()
	}
	return NoColor
}

// StatusText is a one-line banner for the current status, empty while the
// game is ongoing.
func (g *Game) StatusText() string {
	switch g.Status() {
	case Checkmate:
		return fmt.Sprintf("Checkmate! %s wins!", g.turn.Other())
	case Stalemate:
		return "Stalemate! The game is a draw."
	case ThreefoldRepetition:
		return "Draw by threefold repetition."
	case FiftyMoveRule:
		return "Draw by the fifty-move rule."
	case Check:
		return fmt.Sprintf("%s is in check!", g.turn)
	}
	return ""
}
