package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

// Game is one session between the human and the AI. The human always
// opens with PlayerMark.
type Game struct {
	ID         string     `json:"id"`
	Board      Board      `json:"board"`
	Difficulty Difficulty `json:"difficulty"`
	Turn       Mark       `json:"turn"`
}

func NewGame(id string, difficulty Difficulty) *Game {
	return &Game{
		ID:         id,
		Board:      Board{},
		Difficulty: difficulty,
		Turn:       PlayerMark,
	}
}

func (that *Game) Outcome() Outcome {
	return that.Board.Outcome()
}

func (that *Game) IsFinished() bool {
	return that.Outcome().IsTerminal()
}

func (that *Game) IsPlayerTurn() bool {
	return that.Turn == PlayerMark
}

func (that *Game) IsAiTurn() bool {
	return that.Turn == AiMark
}

// ConfirmOngoingState returns ErrGameFinished once the board is terminal.
func (that *Game) ConfirmOngoingState() error {
	if outcome := that.Outcome(); outcome.IsTerminal() {
		return fmt.Errorf("%w: %s", apperror.ErrGameFinished, outcome)
	}

	return nil
}
