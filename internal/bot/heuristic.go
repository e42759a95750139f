package bot

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	centerCell = 4

	// randomMovePercent of medium moves are plain random ones.
	randomMovePercent = 50
)

var corners = [4]int{0, 2, 6, 8}

type heuristicSelector struct {
	rng    *rand.Rand
	random *randomSelector
}

func newHeuristicSelector(rng *rand.Rand) *heuristicSelector {
	return &heuristicSelector{
		rng:    rng,
		random: newRandomSelector(rng),
	}
}

// SelectMove - win, block, centre, corner, anything; half of the time it
// skips all that and plays at random.
func (that *heuristicSelector) SelectMove(cells [tictactoe.BoardSize]tictactoe.Mark, mark tictactoe.Mark) (int, bool) {
	free := tictactoe.EmptyCells(cells)
	if len(free) == 0 {
		return 0, false
	}

	if that.rng.IntN(100) < randomMovePercent {
		return that.random.pick(free)
	}

	if cell, ok := findWinningMove(cells, mark); ok {
		return cell, true
	}

	if cell, ok := findWinningMove(cells, mark.Opponent()); ok {
		return cell, true
	}

	if cells[centerCell] == tictactoe.Empty {
		return centerCell, true
	}

	freeCorners := make([]int, 0, len(corners))
	for _, corner := range corners {
		if cells[corner] == tictactoe.Empty {
			freeCorners = append(freeCorners, corner)
		}
	}

	if cell, ok := that.random.pick(freeCorners); ok {
		return cell, true
	}

	return that.random.pick(free)
}

// findWinningMove returns the lowest free cell that completes a line for mark.
func findWinningMove(cells [tictactoe.BoardSize]tictactoe.Mark, mark tictactoe.Mark) (int, bool) {
	for cell := range cells {
		if cells[cell] != tictactoe.Empty {
			continue
		}

		if withMark(&cells, cell, mark, func() bool { return tictactoe.HasWin(cells, mark) }) {
			return cell, true
		}
	}

	return 0, false
}
