package entity

import "strings"

type Mark string

const (
	Empty      Mark = ""
	PlayerMark Mark = "X"
	AiMark     Mark = "O"
)

// Opponent returns the mark of the other side. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerMark:
		return AiMark
	case AiMark:
		return PlayerMark
	default:
		return Empty
	}
}

const BoardSize = 9

// WinLines are the rows, columns and diagonals of the board, row-major.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board holds one mark per cell, indexed row*3 + col.
type Board [BoardSize]Mark

// IsWinner reports whether any win line is fully occupied by mark.
func (that *Board) IsWinner(mark Mark) bool {
	if mark == Empty {
		return false
	}

	for _, line := range WinLines {
		if that[line[0]] == mark && that[line[1]] == mark && that[line[2]] == mark {
			return true
		}
	}

	return false
}

// IsDraw reports whether every cell is taken. It does not look for a winner,
// use Outcome for that.
func (that *Board) IsDraw() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

// LegalMoves returns the empty cells in ascending order.
func (that *Board) LegalMoves() []int {
	moves := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == Empty {
			moves = append(moves, i)
		}
	}

	return moves
}

// Place puts mark on the cell at index if the cell exists and is empty.
// A false result means the board was left untouched.
func (that *Board) Place(index int, mark Mark) bool {
	if index < 0 || index >= BoardSize || mark == Empty {
		return false
	}

	if that[index] != Empty {
		return false
	}

	that[index] = mark

	return true
}

// Outcome evaluates the board. Wins are checked before the draw so that a
// full board with a completed line is reported as a win.
func (that *Board) Outcome() Outcome {
	switch {
	case that.IsWinner(PlayerMark):
		return OutcomePlayerWin
	case that.IsWinner(AiMark):
		return OutcomeAiWin
	case that.IsDraw():
		return OutcomeDraw
	default:
		return OutcomeInProgress
	}
}

// Count returns how many cells hold mark.
func (that *Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

func (that *Board) String() string {
	var sb strings.Builder
	for i, cell := range that {
		if cell == Empty {
			sb.WriteByte('.')
		} else {
			sb.WriteString(string(cell))
		}

		if i%3 == 2 && i != BoardSize-1 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}
