package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomePlayerWin  Outcome = "player_win"
	OutcomeAiWin      Outcome = "ai_win"
	OutcomeDraw       Outcome = "draw"
)

// IsTerminal reports whether the game can no longer continue.
func (that Outcome) IsTerminal() bool {
	return that != OutcomeInProgress
}

type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyHard Difficulty = "hard"
)

// ParseDifficulty accepts "easy" or "hard" in any letter case.
func ParseDifficulty(value string) (Difficulty, error) {
	switch difficulty := Difficulty(strings.ToLower(strings.TrimSpace(value))); difficulty {
	case DifficultyEasy, DifficultyHard:
		return difficulty, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidDifficulty, value)
	}
}
