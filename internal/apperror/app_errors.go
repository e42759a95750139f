package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrNoEmptyCells     = errors.New("no empty cells")
)
