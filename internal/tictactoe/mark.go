package tictactoe

const (
	Empty Mark = ""
	MarkX Mark = "X"
	MarkO Mark = "O"
)

// BoardSize is the number of cells on the 3x3 grid.
const BoardSize = 9

// Mark is the content of a cell: Empty or the symbol of one of the two sides.
type Mark string

// WinCombos are the rows, columns and diagonals of the board.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent returns the other side's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return Empty
	}
}

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

// HasWin reports whether mark occupies all three cells of any combo.
func HasWin(cells [BoardSize]Mark, mark Mark) bool {
	if !mark.IsPlayer() {
		return false
	}

	for _, combo := range WinCombos {
		if cells[combo[0]] == mark && cells[combo[1]] == mark && cells[combo[2]] == mark {
			return true
		}
	}

	return false
}

// EmptyCells lists free indices in increasing order.
func EmptyCells(cells [BoardSize]Mark) []int {
	free := make([]int, 0, BoardSize)
	for i, cell := range cells {
		if cell == Empty {
			free = append(free, i)
		}
	}

	return free
}

func isFull(cells [BoardSize]Mark) bool {
	for _, cell := range cells {
		if cell == Empty {
			return false
		}
	}

	return true
}
