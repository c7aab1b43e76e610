package session

import "errors"

var (
	ErrNotInGame   = errors.New("player is not in a game")
	ErrNotYourTurn = errors.New("not your turn")
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)
