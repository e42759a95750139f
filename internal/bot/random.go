package bot

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type randomSelector struct {
	rng *rand.Rand
}

func newRandomSelector(rng *rand.Rand) *randomSelector {
	return &randomSelector{rng: rng}
}

func (that *randomSelector) SelectMove(cells [tictactoe.BoardSize]tictactoe.Mark, _ tictactoe.Mark) (int, bool) {
	return that.pick(tictactoe.EmptyCells(cells))
}

func (that *randomSelector) pick(candidates []int) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}

	return candidates[that.rng.IntN(len(candidates))], true
}
