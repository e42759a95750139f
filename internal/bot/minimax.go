package bot

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const winScore = 10

// minimaxSelector searches the whole game tree. Faster wins and slower
// losses score better; equal scores keep the lowest cell.
type minimaxSelector struct{}

func newMinimaxSelector() *minimaxSelector {
	return &minimaxSelector{}
}

func (that *minimaxSelector) SelectMove(cells [tictactoe.BoardSize]tictactoe.Mark, mark tictactoe.Mark) (int, bool) {
	// cells is already a private copy; the search backtracks on it in place.
	bestCell, bestScore, found := 0, math.MinInt, false

	for cell := range cells {
		if cells[cell] != tictactoe.Empty {
			continue
		}

		score := withMark(&cells, cell, mark, func() int {
			return minimax(&cells, 0, false, mark)
		})

		if !found || score > bestScore {
			bestCell, bestScore, found = cell, score, true
		}
	}

	return bestCell, found
}

// minimax scores the position for self. maximizing is true when self is to move.
func minimax(cells *[tictactoe.BoardSize]tictactoe.Mark, depth int, maximizing bool, self tictactoe.Mark) int {
	opponent := self.Opponent()

	if tictactoe.HasWin(*cells, self) {
		return winScore - depth
	}

	if tictactoe.HasWin(*cells, opponent) {
		return depth - winScore
	}

	mover, best := opponent, math.MaxInt
	if maximizing {
		mover, best = self, math.MinInt
	}

	moved := false
	for cell := range cells {
		if cells[cell] != tictactoe.Empty {
			continue
		}
		moved = true

		score := withMark(cells, cell, mover, func() int {
			return minimax(cells, depth+1, !maximizing, self)
		})

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	// full board, nobody won
	if !moved {
		return 0
	}

	return best
}
