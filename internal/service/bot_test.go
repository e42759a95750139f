package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// fixedSelector always answers with the same cell.
type fixedSelector struct {
	cell int
	ok   bool
}

func (that fixedSelector) SelectMove([tictactoe.BoardSize]tictactoe.Mark, tictactoe.Mark) (int, bool) {
	return that.cell, that.ok
}

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Plays the selected cell", func(t *testing.T) {
		// Given: a controller with X in the corner and the hard bot on O
		controller := tictactoe.NewGameController()
		_, err := controller.Play(0)
		require.NoError(t, err)

		selector, err := bot.New(bot.HardDifficulty, bot.NewRand(1))
		require.NoError(t, err)

		service := NewBotService(bot.HardDifficulty, selector)

		// When: the bot moves
		cell, state, err := service.MakeTurn(controller)

		// Then: it takes the centre and passes the turn back
		require.NoError(t, err)
		assert.Equal(t, 4, cell)
		assert.Equal(t, tictactoe.StatusOngoing, state.Status)
		assert.Equal(t, tictactoe.MarkO, controller.Cells()[4])
		assert.Equal(t, tictactoe.MarkX, controller.Turn())
		assert.Equal(t, bot.HardDifficulty, service.Difficulty())
	})

	t.Run("No move possible", func(t *testing.T) {
		service := NewBotService(bot.EasyDifficulty, fixedSelector{ok: false})

		_, _, err := service.MakeTurn(tictactoe.NewGameController())

		require.ErrorIs(t, err, apperror.ErrNoEmptyCells)
	})

	t.Run("Rejected move", func(t *testing.T) {
		// Given: a selector insisting on an occupied cell
		controller := tictactoe.NewGameController()
		_, err := controller.Play(3)
		require.NoError(t, err)

		service := NewBotService(bot.EasyDifficulty, fixedSelector{cell: 3, ok: true})

		// When: the bot moves
		_, _, err = service.MakeTurn(controller)

		// Then: the board error comes through
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})
}
