package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	colorX     = "9"
	colorO     = "12"
	colorError = "1"
	colorInfo  = "10"
)

// newOutput - colours only when w is a terminal.
func newOutput(w io.Writer) *termenv.Output {
	profile := termenv.Ascii
	if isTerminal(w) {
		profile = termenv.ANSI
	}

	return termenv.NewOutput(w, termenv.WithProfile(profile))
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd()))
}

type renderer struct {
	output *termenv.Output
}

func (that renderer) mark(mark tictactoe.Mark) string {
	switch mark {
	case tictactoe.MarkX:
		return that.output.String(string(mark)).Foreground(that.output.Color(colorX)).Bold().String()
	case tictactoe.MarkO:
		return that.output.String(string(mark)).Foreground(that.output.Color(colorO)).Bold().String()
	default:
		return string(mark)
	}
}

func (that renderer) errorText(text string) string {
	return that.output.String(text).Foreground(that.output.Color(colorError)).String()
}

func (that renderer) infoText(text string) string {
	return that.output.String(text).Foreground(that.output.Color(colorInfo)).Bold().String()
}

// board - empty cells show the number to type for them.
func (that renderer) board(cells [tictactoe.BoardSize]tictactoe.Mark) string {
	var b strings.Builder

	for row := 0; row < 3; row++ {
		if row > 0 {
			b.WriteString("---+---+---\n")
		}

		for col := 0; col < 3; col++ {
			cell := row*3 + col

			if col > 0 {
				b.WriteString("|")
			}

			symbol := that.output.String(strconv.Itoa(cell + 1)).Faint().String()
			if cells[cell] != tictactoe.Empty {
				symbol = that.mark(cells[cell])
			}

			fmt.Fprintf(&b, " %s ", symbol)
		}

		b.WriteString("\n")
	}

	return b.String()
}

func (that renderer) statistics(player *entity.Player, stats entity.Statistics) string {
	return fmt.Sprintf("%s: %d games, %d wins, %d draws, %d losses",
		player.Name, stats.TotalGames, stats.Wins, stats.Draws, stats.Losses)
}
