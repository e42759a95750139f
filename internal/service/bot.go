package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type BotService interface {
	Difficulty() bot.Difficulty
	// MakeTurn - picks a cell for the mark to move and plays it on the controller.
	MakeTurn(controller *tictactoe.GameController) (int, tictactoe.State, error)
}

type botService struct {
	difficulty bot.Difficulty
	selector   bot.Selector
}

func NewBotService(difficulty bot.Difficulty, selector bot.Selector) BotService {
	return &botService{
		difficulty: difficulty,
		selector:   selector,
	}
}

func (that *botService) Difficulty() bot.Difficulty {
	return that.difficulty
}

func (that *botService) MakeTurn(controller *tictactoe.GameController) (int, tictactoe.State, error) {
	cell, ok := that.selector.SelectMove(controller.Cells(), controller.Turn())
	if !ok {
		return 0, controller.State(), apperror.ErrNoEmptyCells
	}

	state, err := controller.Play(cell)
	if err != nil {
		return cell, state, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, state, nil
}
