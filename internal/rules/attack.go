package rules

// IsSquareAttacked reports whether any piece of side by could capture a piece
// standing on sq right now. It ignores whose turn it is and whether the
// attacker's own king would be exposed.
func (g *Game) IsSquareAttacked(sq Position, by Color) bool {
	if !sq.Valid() {
		return false
	}
	for row := range boardSize {
		for col := range boardSize {
			from := Position{row, col}
			piece := g.board.At(from)
			if piece.IsEmpty() || piece.Color != by {
				continue
			}
			if g.attacks(piece, from, sq) {
				return true
			}
		}
	}
	return false
}

func (g *Game) attacks(piece Piece, from, sq Position) bool {
	switch piece.Type {
	case Pawn:
		return sq.Row == from.Row+pawnDirection(piece.Color) && abs(sq.Col-from.Col) == 1
	case Knight:
		return hitsOffset(from, sq, knightOffsets)
	case Bishop:
		return g.rayHits(from, sq, bishopDirs)
	case Rook:
		return g.rayHits(from, sq, rookDirs)
	case Queen:
		return g.rayHits(from, sq, queenDirs)
	case King:
		return hitsOffset(from, sq, kingOffsets)
	}
	return false
}

func hitsOffset(from, sq Position, offsets []Position) bool {
	for _, d := range offsets {
		if from.add(d) == sq {
			return true
		}
	}
	return false
}

// rayHits walks each direction until it leaves the board or meets an
// occupied square; the occupied square itself counts as attacked.
func (g *Game) rayHits(from, sq Position, dirs []Position) bool {
	for _, d := range dirs {
		for to := from.add(d); to.Valid(); to = to.add(d) {
			if to == sq {
				return true
			}
			if !g.board.At(to).IsEmpty() {
				break
			}
		}
	}
	return false
}

// FindKing returns the square of c's king, or false when c has none.
func (g *Game) FindKing(c Color) (Position, bool) {
	for row := range boardSize {
		for col := range boardSize {
			pos := Position{row, col}
			if piece := g.board.At(pos); piece.Type == King && piece.Color == c {
				return pos, true
			}
		}
	}
	return noSquare, false
}

// IsInCheck reports whether c's king is attacked. A side without a king is
// never in check.
func (g *Game) IsInCheck(c Color) bool {
	king, ok := g.FindKing(c)
	if !ok {
		return false
	}
	return g.IsSquareAttacked(king, c.Other())
}
