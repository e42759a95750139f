package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Board holds the grid and the mark whose turn it is. The zero value is not
// ready for use; call NewBoard or Reset.
type Board struct {
	cells [BoardSize]Mark
	turn  Mark
}

func NewBoard() *Board {
	board := &Board{}
	board.Reset()

	return board
}

// Reset - clears every cell and gives the turn to X.
func (that *Board) Reset() {
	that.cells = [BoardSize]Mark{}
	that.turn = MarkX
}

// ApplyMove - places the mark of the side to move on cell. The turn is not
// switched so the caller can inspect the result first.
func (that *Board) ApplyMove(cell int) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.cells[cell] != Empty {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.cells[cell] = that.turn

	return nil
}

// SwitchTurn - hands the move to the other side.
func (that *Board) SwitchTurn() {
	that.turn = that.turn.Opponent()
}

func (that *Board) IsFull() bool {
	return isFull(that.cells)
}

func (that *Board) IsEmpty() bool {
	for _, cell := range that.cells {
		if cell != Empty {
			return false
		}
	}

	return true
}

func (that *Board) HasWin(mark Mark) bool {
	return HasWin(that.cells, mark)
}

// Cells returns a copy of the grid.
func (that *Board) Cells() [BoardSize]Mark {
	return that.cells
}

func (that *Board) Turn() Mark {
	return that.turn
}
