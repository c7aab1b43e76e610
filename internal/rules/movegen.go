package rules

var (
	knightOffsets = []Position{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = []Position{{1, -1}, {1, 0}, {1, 1}, {0, -1}, {0, 1}, {-1, -1}, {-1, 0}, {-1, 1}}
	bishopDirs    = []Position{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirs      = []Position{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	queenDirs     = append(append([]Position{}, bishopDirs...), rookDirs...)
)

func pawnDirection(c Color) int {
	if c == Black {
		return -1
	}
	return 1
}

func pawnStartRow(c Color) int {
	if c == Black {
		return 6
	}
	return 1
}

func promotionRow(c Color) int {
	if c == Black {
		return 0
	}
	return boardSize - 1
}

// PseudoLegalMoves returns every destination the piece on from can reach by
// its movement rules, without regard to the safety of its own king. Castling
// is never generated.
func (g *Game) PseudoLegalMoves(from Position) []Position {
	if !from.Valid() {
		return nil
	}
	piece := g.board.At(from)

	switch piece.Type {
	case Pawn:
		return g.pawnMoves(piece, from)
	case Knight:
		return g.stepMoves(piece, from, knightOffsets)
	case Bishop:
		return g.slidingMoves(piece, from, bishopDirs)
	case Rook:
		return g.slidingMoves(piece, from, rookDirs)
	case Queen:
		return g.slidingMoves(piece, from, queenDirs)
	case King:
		return g.stepMoves(piece, from, kingOffsets)
	}
	return nil
}

func (g *Game) pawnMoves(piece Piece, from Position) []Position {
	var moves []Position
	dir := pawnDirection(piece.Color)

	one := Position{from.Row + dir, from.Col}
	if one.Valid() && g.board.At(one).IsEmpty() {
		moves = append(moves, one)
		two := Position{from.Row + 2*dir, from.Col}
		if from.Row == pawnStartRow(piece.Color) && two.Valid() && g.board.At(two).IsEmpty() {
			moves = append(moves, two)
		}
	}

	for _, dc := range [2]int{-1, 1} {
		diag := Position{from.Row + dir, from.Col + dc}
		if !diag.Valid() {
			continue
		}
		if target := g.board.At(diag); !target.IsEmpty() && target.Color != piece.Color {
			moves = append(moves, diag)
		}
	}

	if g.enPassantVictim(piece, from) {
		moves = append(moves, Position{from.Row + dir, g.enPassant.Col})
	}
	return moves
}

// enPassantVictim reports whether the pawn on from stands beside the pawn
// that just double-stepped and may take it en passant.
func (g *Game) enPassantVictim(piece Piece, from Position) bool {
	if piece.Type != Pawn || !g.enPassant.Valid() {
		return false
	}
	if g.enPassant.Row != from.Row || abs(g.enPassant.Col-from.Col) != 1 {
		return false
	}
	victim := g.board.At(g.enPassant)
	if victim.Type != Pawn || victim.Color == piece.Color {
		return false
	}
	dest := Position{from.Row + pawnDirection(piece.Color), g.enPassant.Col}
	return dest.Valid() && g.board.At(dest).IsEmpty()
}

func (g *Game) stepMoves(piece Piece, from Position, offsets []Position) []Position {
	var moves []Position
	for _, d := range offsets {
		to := from.add(d)
		if !to.Valid() {
			continue
		}
		if target := g.board.At(to); target.IsEmpty() || target.Color != piece.Color {
			moves = append(moves, to)
		}
	}
	return moves
}

func (g *Game) slidingMoves(piece Piece, from Position, dirs []Position) []Position {
	var moves []Position
	for _, d := range dirs {
		for to := from.add(d); to.Valid(); to = to.add(d) {
			target := g.board.At(to)
			if target.IsEmpty() {
				moves = append(moves, to)
				continue
			}
			if target.Color != piece.Color {
				moves = append(moves, to)
			}
			break
		}
	}
	return moves
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
