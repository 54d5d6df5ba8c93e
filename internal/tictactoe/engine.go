package tictactoe

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// Scores from the AI's point of view. Depth is not taken into account.
const (
	scoreAiWin     = 1
	scorePlayerWin = -1
	scoreDraw      = 0
)

// Engine picks the AI's cell for a given difficulty.
type Engine struct {
	rnd *rand.Rand
}

// NewEngine returns an engine that draws Easy moves from rnd.
// A nil rnd is replaced by a time-seeded source.
func NewEngine(rnd *rand.Rand) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // game moves, not secrets
	}

	return &Engine{rnd: rnd}
}

// ChooseMove returns the cell the AI should take. The board must be in
// progress with at least one empty cell, otherwise ChooseMove panics:
// asking for a move on a finished board is a bug in the caller.
//
// The board is used as scratch space by the search and is restored before
// ChooseMove returns.
func (that *Engine) ChooseMove(board *entity.Board, difficulty entity.Difficulty) int {
	moves := board.LegalMoves()
	if outcome := board.Outcome(); outcome.IsTerminal() || len(moves) == 0 {
		panic(fmt.Errorf("%w: board %s is %s", apperror.ErrNoLegalMoves, board, outcome))
	}

	switch difficulty {
	case entity.DifficultyEasy:
		return moves[that.rnd.Intn(len(moves))]
	case entity.DifficultyHard:
		return bestMove(board, moves)
	default:
		panic(fmt.Errorf("%w: %q", apperror.ErrInvalidDifficulty, difficulty))
	}
}

// bestMove scans moves in ascending order and keeps the first one with the
// highest minimax value.
func bestMove(board *entity.Board, moves []int) int {
	best, bestScore := moves[0], math.MinInt

	for _, cell := range moves {
		board.Place(cell, entity.AiMark)
		score := Minimax(board, false)
		board[cell] = entity.Empty

		if score > bestScore {
			best, bestScore = cell, score
		}
	}

	return best
}

// Minimax returns the value of the position under perfect play by both
// sides: +1 when the AI wins, -1 when the player wins, 0 for a draw.
// aiToMove selects the maximizing (AiMark) or minimizing (PlayerMark) side.
// Every simulated placement is undone before returning.
func Minimax(board *entity.Board, aiToMove bool) int {
	switch board.Outcome() {
	case entity.OutcomeAiWin:
		return scoreAiWin
	case entity.OutcomePlayerWin:
		return scorePlayerWin
	case entity.OutcomeDraw:
		return scoreDraw
	}

	if aiToMove {
		best := math.MinInt
		for _, cell := range board.LegalMoves() {
			board.Place(cell, entity.AiMark)
			best = max(best, Minimax(board, false))
			board[cell] = entity.Empty
		}

		return best
	}

	best := math.MaxInt
	for _, cell := range board.LegalMoves() {
		board.Place(cell, entity.PlayerMark)
		best = min(best, Minimax(board, true))
		board[cell] = entity.Empty
	}

	return best
}
