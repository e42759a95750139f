// Package bot implements the automated opponents. Every difficulty is a
// Selector; the one used by a game is chosen once, when the game is set up.
package bot

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	EasyDifficulty   Difficulty = "easy"
	MediumDifficulty Difficulty = "medium"
	HardDifficulty   Difficulty = "hard"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

type Difficulty string

// Selector picks a cell for mark. ok is false when no cell is free; the
// cells passed in are never modified.
type Selector interface {
	SelectMove(cells [tictactoe.BoardSize]tictactoe.Mark, mark tictactoe.Mark) (cell int, ok bool)
}

func ParseDifficulty(value string) (Difficulty, error) {
	switch difficulty := Difficulty(strings.ToLower(strings.TrimSpace(value))); difficulty {
	case EasyDifficulty, MediumDifficulty, HardDifficulty:
		return difficulty, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, value)
	}
}

// New - builds the selector for difficulty. rng drives the easy and medium
// tiers; the hard tier is deterministic and ignores it.
func New(difficulty Difficulty, rng *rand.Rand) (Selector, error) {
	switch difficulty {
	case EasyDifficulty:
		return newRandomSelector(rng), nil
	case MediumDifficulty:
		return newHeuristicSelector(rng), nil
	case HardDifficulty:
		return newMinimaxSelector(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}
}

// NewRand returns a PCG generator. A zero seed picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint: gosec // not security sensitive
	}

	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint: gosec // it's ok
}

// withMark places mark on cell for the duration of fn.
func withMark[T any](cells *[tictactoe.BoardSize]tictactoe.Mark, cell int, mark tictactoe.Mark, fn func() T) T {
	cells[cell] = mark
	defer func() { cells[cell] = tictactoe.Empty }()

	return fn()
}
