package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusNotStarted Status = "not_started"
	StatusOngoing    Status = "ongoing"
	StatusWon        Status = "won"
	StatusDrawn      Status = "drawn"
)

type Status string

// State is the phase of a game. Winner is set only for StatusWon.
type State struct {
	Status Status `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

func (that State) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDrawn
}

// GameController drives one board through a game: it applies moves for the
// side to move, detects the end of the game and passes the turn otherwise.
type GameController struct {
	board *Board
}

func NewGameController() *GameController {
	return &GameController{board: NewBoard()}
}

// Reset - starts a new game on the same controller.
func (that *GameController) Reset() {
	that.board.Reset()
}

// Play - makes a move for the side to move and returns the resulting state.
func (that *GameController) Play(cell int) (State, error) {
	if that.State().IsFinished() {
		return that.State(), apperror.ErrGameFinished
	}

	mover := that.board.Turn()
	if err := that.board.ApplyMove(cell); err != nil {
		return that.State(), fmt.Errorf("invalid turn: %w", err)
	}

	switch {
	case that.board.HasWin(mover):
		return State{Status: StatusWon, Winner: mover}, nil
	case that.board.IsFull():
		return State{Status: StatusDrawn}, nil
	}

	that.board.SwitchTurn()

	return State{Status: StatusOngoing}, nil
}

// State derives the phase from the board; it is never stored.
func (that *GameController) State() State {
	return StateOf(that.board.Cells())
}

func (that *GameController) Cells() [BoardSize]Mark {
	return that.board.Cells()
}

func (that *GameController) Turn() Mark {
	return that.board.Turn()
}

// StateOf computes the phase of an arbitrary grid.
func StateOf(cells [BoardSize]Mark) State {
	for _, mark := range []Mark{MarkX, MarkO} {
		if HasWin(cells, mark) {
			return State{Status: StatusWon, Winner: mark}
		}
	}

	if isFull(cells) {
		return State{Status: StatusDrawn}
	}

	for _, cell := range cells {
		if cell != Empty {
			return State{Status: StatusOngoing}
		}
	}

	return State{Status: StatusNotStarted}
}
