package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

func TestMinimaxSelector_SelectMove(t *testing.T) {
	t.Run("Answers a corner opening with the centre", func(t *testing.T) {
		// Given: X opened in the corner
		board := cells{x}

		// When: the search plays O
		cell, ok := newMinimaxSelector().SelectMove(board, o)

		// Then: the centre is the only move that does not lose
		require.True(t, ok)
		assert.Equal(t, 4, cell)
	})

	t.Run("Takes an immediate win", func(t *testing.T) {
		board := cells{x, x, e, o, o, e, e, e, e}

		cell, ok := newMinimaxSelector().SelectMove(board, x)

		require.True(t, ok)
		assert.Equal(t, 2, cell)
	})

	t.Run("Blocks an immediate loss", func(t *testing.T) {
		board := cells{x, x, e, e, o, e, e, e, e}

		cell, ok := newMinimaxSelector().SelectMove(board, o)

		require.True(t, ok)
		assert.Equal(t, 2, cell)
	})

	t.Run("Opens on the first of the equally scored cells", func(t *testing.T) {
		// Every opening draws under perfect play, so the lowest index wins the tie.
		cell, ok := newMinimaxSelector().SelectMove(cells{}, x)

		require.True(t, ok)
		assert.Equal(t, 0, cell)
	})

	t.Run("Is deterministic", func(t *testing.T) {
		board := cells{x, e, e, e, o, e, e, e, x}

		first, _ := newMinimaxSelector().SelectMove(board, o)
		for range 5 {
			next, _ := newMinimaxSelector().SelectMove(board, o)
			assert.Equal(t, first, next)
		}
	})
}

func TestMinimax_Scores(t *testing.T) {
	t.Run("Win for self scores higher the sooner it comes", func(t *testing.T) {
		board := cells{x, x, x, o, o}

		assert.Equal(t, 10, minimax(&board, 0, false, x))
		assert.Equal(t, 7, minimax(&board, 3, false, x))
	})

	t.Run("Loss scores less negatively the later it comes", func(t *testing.T) {
		board := cells{x, x, x, o, o}

		assert.Equal(t, -10, minimax(&board, 0, true, o))
		assert.Equal(t, -6, minimax(&board, 4, true, o))
	})

	t.Run("Draw scores zero", func(t *testing.T) {
		board := cells{x, o, x, x, o, o, o, x, x}

		assert.Equal(t, 0, minimax(&board, 5, true, x))
	})
}

// playOut walks every line of play in which the search answers for searchMark
// and the other side tries every legal move, and fails if the search ever loses.
func playOut(t *testing.T, selector Selector, board cells, toMove, searchMark tictactoe.Mark) {
	t.Helper()

	if state := tictactoe.StateOf(board); state.IsFinished() {
		require.NotEqual(t, searchMark.Opponent(), state.Winner, "search lost: %v", board)
		return
	}

	if toMove == searchMark {
		cell, ok := selector.SelectMove(board, searchMark)
		require.True(t, ok)
		require.Equal(t, tictactoe.Empty, board[cell])

		board[cell] = searchMark
		playOut(t, selector, board, toMove.Opponent(), searchMark)

		return
	}

	for _, cell := range tictactoe.EmptyCells(board) {
		next := board
		next[cell] = toMove
		playOut(t, selector, next, toMove.Opponent(), searchMark)
	}
}

func TestMinimaxSelector_NeverLoses(t *testing.T) {
	t.Run("Playing X against every reply", func(t *testing.T) {
		playOut(t, newMinimaxSelector(), cells{}, x, x)
	})

	t.Run("Playing O against every reply", func(t *testing.T) {
		playOut(t, newMinimaxSelector(), cells{}, x, o)
	})

	t.Run("Against itself the game is drawn", func(t *testing.T) {
		// Given: a controller where the search plays both sides
		controller := tictactoe.NewGameController()
		selector := newMinimaxSelector()

		var state tictactoe.State
		for !state.IsFinished() {
			cell, ok := selector.SelectMove(controller.Cells(), controller.Turn())
			require.True(t, ok)

			var err error
			state, err = controller.Play(cell)
			require.NoError(t, err)
		}

		// Then: perfect play draws
		assert.Equal(t, tictactoe.StatusDrawn, state.Status)
	})
}
