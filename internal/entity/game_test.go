package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// When: a new game is created
	game := NewGame("123", DifficultyHard)

	// Then: the board is empty and the human moves first
	expectedGame := &Game{
		ID:         "123",
		Board:      Board{},
		Difficulty: DifficultyHard,
		Turn:       PlayerMark,
	}

	require.Equal(t, expectedGame, game)
	assert.True(t, game.IsPlayerTurn())
	assert.False(t, game.IsAiTurn())
	assert.Equal(t, OutcomeInProgress, game.Outcome())
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is in progress", func(t *testing.T) {
		// Given: a fresh game
		game := NewGame("123", DifficultyEasy)

		// When: checking the state
		err := game.ConfirmOngoingState()

		// Then: no error
		require.NoError(t, err)
		assert.False(t, game.IsFinished())
	})

	t.Run("Returns ErrGameFinished after a win", func(t *testing.T) {
		// Given: a game the AI has won
		game := NewGame("123", DifficultyHard)
		game.Board = Board{
			AiMark, AiMark, AiMark,
			PlayerMark, PlayerMark, Empty,
			PlayerMark, Empty, Empty,
		}

		// When: checking the state
		err := game.ConfirmOngoingState()

		// Then: ErrGameFinished is returned with the outcome
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Contains(t, err.Error(), string(OutcomeAiWin))
		assert.True(t, game.IsFinished())
	})

	t.Run("Returns ErrGameFinished after a draw", func(t *testing.T) {
		game := NewGame("123", DifficultyHard)
		game.Board = Board{
			PlayerMark, AiMark, PlayerMark,
			PlayerMark, AiMark, AiMark,
			AiMark, PlayerMark, PlayerMark,
		}

		require.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input string
		want  Difficulty
	}{
		{input: "easy", want: DifficultyEasy},
		{input: "EASY", want: DifficultyEasy},
		{input: "Hard", want: DifficultyHard},
		{input: "  hard\n", want: DifficultyHard},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDifficulty(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Rejects anything else", func(t *testing.T) {
		for _, input := range []string{"", "medium", "easyy", "1"} {
			_, err := ParseDifficulty(input)

			require.ErrorIs(t, err, apperror.ErrInvalidDifficulty, input)
		}
	})
}
