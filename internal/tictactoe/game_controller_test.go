package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// playAll plays cells in order and fails the test on any error.
func playAll(t *testing.T, controller *GameController, cells ...int) State {
	t.Helper()

	var state State
	for _, cell := range cells {
		var err error
		state, err = controller.Play(cell)
		require.NoError(t, err)
	}

	return state
}

func TestNewGameController(t *testing.T) {
	// Given: a new controller
	controller := NewGameController()

	// Then: the game is not started and X moves first
	assert.Equal(t, State{Status: StatusNotStarted}, controller.State())
	assert.Equal(t, MarkX, controller.Turn())
	assert.Equal(t, [BoardSize]Mark{}, controller.Cells())
}

func TestGameController_Play(t *testing.T) {
	t.Run("First move starts the game and passes the turn", func(t *testing.T) {
		// Given: a new controller
		controller := NewGameController()

		// When: X plays cell 0
		state, err := controller.Play(0)

		// Then: the game is ongoing and O is to move
		require.NoError(t, err)
		assert.Equal(t, State{Status: StatusOngoing}, state)
		assert.Equal(t, MarkO, controller.Turn())
		assert.Equal(t, MarkX, controller.Cells()[0])
	})

	t.Run("Error on cell already occupied keeps the turn", func(t *testing.T) {
		// Given: X has played cell 0
		controller := NewGameController()
		playAll(t, controller, 0)

		// When: O tries the same cell
		_, err := controller.Play(0)

		// Then: ErrCellOccupied and O is still to move
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, MarkO, controller.Turn())
		assert.Equal(t, State{Status: StatusOngoing}, controller.State())
	})

	t.Run("Invalid Negative Cell", func(t *testing.T) {
		controller := NewGameController()

		_, err := controller.Play(-1)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.Equal(t, State{Status: StatusNotStarted}, controller.State())
	})

	t.Run("Winning move ends the game without switching turn", func(t *testing.T) {
		// Given: X is one move from the top row
		controller := NewGameController()
		playAll(t, controller, 0, 3, 1, 4)

		// When: X completes the row
		state, err := controller.Play(2)

		// Then: X has won and still holds the turn
		require.NoError(t, err)
		assert.Equal(t, State{Status: StatusWon, Winner: MarkX}, state)
		assert.Equal(t, MarkX, controller.Turn())
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given/When: a drawn sequence
		controller := NewGameController()
		state := playAll(t, controller, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// Then: the game is drawn
		assert.Equal(t, State{Status: StatusDrawn}, state)
		assert.True(t, state.IsFinished())
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		// Given: O has won on the middle column
		controller := NewGameController()
		playAll(t, controller, 0, 1, 2, 4, 3, 7)

		// When: X tries to keep playing
		state, err := controller.Play(8)

		// Then: ErrGameFinished and the board is untouched
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, State{Status: StatusWon, Winner: MarkO}, state)
		assert.Equal(t, Empty, controller.Cells()[8])
	})

	t.Run("Reset after a finished game starts over", func(t *testing.T) {
		controller := NewGameController()
		playAll(t, controller, 0, 3, 1, 4, 2)

		controller.Reset()

		assert.Equal(t, State{Status: StatusNotStarted}, controller.State())
		assert.Equal(t, MarkX, controller.Turn())
		_, err := controller.Play(4)
		require.NoError(t, err)
	})
}

func TestStateOf(t *testing.T) {
	t.Run("Winner X", func(t *testing.T) {
		cells := [BoardSize]Mark{MarkX, MarkO, Empty, MarkX, MarkO, Empty, MarkX, Empty, Empty}

		require.Equal(t, State{Status: StatusWon, Winner: MarkX}, StateOf(cells))
	})

	t.Run("Ongoing Game", func(t *testing.T) {
		cells := [BoardSize]Mark{MarkX, MarkO, MarkX, Empty, MarkO, Empty, MarkX, Empty, Empty}

		require.Equal(t, State{Status: StatusOngoing}, StateOf(cells))
	})

	t.Run("Tie", func(t *testing.T) {
		cells := [BoardSize]Mark{MarkO, MarkX, MarkO, MarkO, MarkX, MarkX, MarkX, MarkO, MarkX}

		assert.Equal(t, State{Status: StatusDrawn}, StateOf(cells))
	})

	t.Run("Alternating fill wins on the diagonal", func(t *testing.T) {
		// Given: X,O alternating over all nine cells
		cells := [BoardSize]Mark{MarkX, MarkO, MarkX, MarkO, MarkX, MarkO, MarkX, MarkO, MarkX}

		// Then: X holds 0-4-8, so this is a win, not a draw
		assert.Equal(t, State{Status: StatusWon, Winner: MarkX}, StateOf(cells))
	})
}
