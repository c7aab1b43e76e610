package rules

import "slices"

// MakeMove plays from -> to for the side to move. It returns false and
// leaves the game untouched unless the move is legal.
//
// Pawns reaching the far rank always become queens.
func (g *Game) MakeMove(from, to Position) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	piece := g.board.At(from)
	if piece.IsEmpty() || piece.Color != g.turn {
		return false
	}
	if !slices.Contains(g.LegalMoves(from), to) {
		return false
	}

	t := g.play(from, to)
	move := Move{
		From:      from,
		To:        to,
		Piece:     piece,
		Captured:  t.captured,
		EnPassant: t.epSquare.Valid(),
	}
	if move.EnPassant {
		move.Captured = t.epPiece
	}

	if piece.Type == Pawn && to.Row == promotionRow(piece.Color) {
		g.board.Set(to, Piece{Queen, piece.Color})
		move.Promotion = true
	}

	if piece.Type == Pawn || !move.Captured.IsEmpty() {
		g.halfmoveClock = 0
	} else {
		g.halfmoveClock++
	}

	g.enPassant = noSquare
	if piece.Type == Pawn && from.Row == pawnStartRow(piece.Color) && abs(to.Row-from.Row) == 2 {
		g.enPassant = to
	}

	g.updateCastlingRights(move)
	g.moves = append(g.moves, move)
	g.turn = g.turn.Other()
	g.history = append(g.history, g.PositionKey())
	return true
}

func (g *Game) updateCastlingRights(m Move) {
	c := m.Piece.Color
	switch m.Piece.Type {
	case King:
		g.kingMoved[c] = true
	case Rook:
		g.markRookSquare(c, m.From)
	}
	if m.Captured.Type == Rook {
		g.markRookSquare(m.Captured.Color, m.To)
	}
}

// markRookSquare revokes c's right on the side whose rook starts on pos.
func (g *Game) markRookSquare(c Color, pos Position) {
	home := 0
	if c == Black {
		home = boardSize - 1
	}
	if pos.Row != home {
		return
	}
	switch pos.Col {
	case 0:
		g.rookMoved[c][0] = true
	case boardSize - 1:
		g.rookMoved[c][1] = true
	}
}
