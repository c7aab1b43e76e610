package rules

// trial is everything play mutates, captured before the mutation so that a
// single restore puts the game back exactly as it was.
type trial struct {
	from, to      Position
	moved         Piece
	captured      Piece
	epSquare      Position
	epPiece       Piece
	enPassant     Position
	halfmoveClock int
}

// play moves the piece on from to to, removing a pawn taken en passant, and
// returns what is needed to undo it. Promotion, clocks and turn are left to
// the caller.
func (g *Game) play(from, to Position) trial {
	moved := g.board.At(from)
	t := trial{
		from:          from,
		to:            to,
		moved:         moved,
		captured:      g.board.At(to),
		epSquare:      noSquare,
		enPassant:     g.enPassant,
		halfmoveClock: g.halfmoveClock,
	}

	if to.Col != from.Col && t.captured.IsEmpty() && g.enPassantVictim(moved, from) && to.Col == g.enPassant.Col {
		t.epSquare = g.enPassant
		t.epPiece = g.board.At(g.enPassant)
		g.board.Set(g.enPassant, NoPiece)
	}

	g.board.Set(to, moved)
	g.board.Set(from, NoPiece)
	return t
}

func (g *Game) restore(t trial) {
	g.board.Set(t.to, t.captured)
	g.board.Set(t.from, t.moved)
	if t.epSquare.Valid() {
		g.board.Set(t.epSquare, t.epPiece)
	}
	g.enPassant = t.enPassant
	g.halfmoveClock = t.halfmoveClock
}

// LegalMoves returns the destinations the piece on from may move to. It is
// empty unless from holds a piece of the side to move.
func (g *Game) LegalMoves(from Position) []Position {
	if !from.Valid() {
		return nil
	}
	if piece := g.board.At(from); piece.IsEmpty() || piece.Color != g.turn {
		return nil
	}
	return g.legalMovesFor(from)
}

// legalMovesFor filters the pseudo-legal moves of whichever side owns the
// piece on from by trying each one on the live board.
func (g *Game) legalMovesFor(from Position) []Position {
	mover := g.board.At(from).Color
	var legal []Position
	for _, to := range g.PseudoLegalMoves(from) {
		t := g.play(from, to)
		exposed := g.IsInCheck(mover)
		g.restore(t)
		if !exposed {
			legal = append(legal, to)
		}
	}
	return legal
}

func (g *Game) hasLegalMove(c Color) bool {
	for row := range boardSize {
		for col := range boardSize {
			from := Position{row, col}
			if piece := g.board.At(from); piece.IsEmpty() || piece.Color != c {
				continue
			}
			if len(g.legalMovesFor(from)) > 0 {
				return true
			}
		}
	}
	return false
}
