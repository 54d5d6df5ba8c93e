package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
)

func runShell(t *testing.T, input, difficulty string) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	controller := tictactoe.NewGameController(tictactoe.NewEngine(rand.New(rand.NewSource(1))))
	manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository(), controller)

	var buf bytes.Buffer
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))

	shell := New(logger, manager, strings.NewReader(input), out, difficulty)
	require.NoError(t, shell.Run(context.Background()))

	return buf.String()
}

func TestShell_Run(t *testing.T) {
	t.Run("Re-prompts for difficulty", func(t *testing.T) {
		// Given: an invalid difficulty followed by a valid one
		output := runShell(t, "medium\nHARD\n1\n", "")

		// Then: the player is asked again, the AI answers the corner with the center
		assert.Contains(t, output, "Welcome to Tic-Tac-Toe!")
		assert.Contains(t, output, "Invalid choice. Choose difficulty level (easy/hard): ")
		assert.Contains(t, output, "AI plays cell 5.")
		assert.Contains(t, output, "Bye!")
	})

	t.Run("Configured difficulty skips the prompt", func(t *testing.T) {
		output := runShell(t, "q\n", "Hard")

		assert.Contains(t, output, "Difficulty: hard")
		assert.NotContains(t, output, "Choose difficulty level")
	})

	t.Run("Invalid configured difficulty falls back to the prompt", func(t *testing.T) {
		output := runShell(t, "easy\nq\n", "impossible")

		assert.Contains(t, output, "Choose difficulty level (easy/hard): ")
	})

	t.Run("Rejected moves are reported", func(t *testing.T) {
		// Given: the player tries the AI's cell, a cell off the board and some text
		output := runShell(t, "hard\n1\n5\n10\nabc\nq\n", "")

		// Then: each problem is explained and the game goes on
		assert.Contains(t, output, "That cell is already taken, try again.")
		assert.Contains(t, output, "There is no such cell, try again.")
		assert.Contains(t, output, "Please enter a number from 1 to 9.")
		assert.Contains(t, output, "Bye!")
	})

	t.Run("Renders the board", func(t *testing.T) {
		output := runShell(t, "hard\n1\nq\n", "")

		assert.Contains(t, output, " X | 2 | 3 \n---+---+---\n 4 | O | 6 \n")
	})

	t.Run("AI punishes a blunder", func(t *testing.T) {
		// Given: the player ignores the AI's diagonal threat
		output := runShell(t, "hard\n1\n2\n9\n6\n", "")

		// Then: the AI forks and wins
		assert.Contains(t, output, "AI plays cell 3.")
		assert.Contains(t, output, "AI plays cell 4.")
		assert.Contains(t, output, "AI plays cell 7.")
		assert.Contains(t, output, "AI wins! Better luck next time.")
		assert.NotContains(t, output, "Bye!")
	})

	t.Run("Input ends before a difficulty is chosen", func(t *testing.T) {
		output := runShell(t, "", "")

		assert.Contains(t, output, "Bye!")
	})
}

func TestShell_RunCancelled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	controller := tictactoe.NewGameController(tictactoe.NewEngine(rand.New(rand.NewSource(1))))
	manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository(), controller)

	var buf bytes.Buffer
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When: the shell starts with a cancelled context
	err := New(logger, manager, strings.NewReader("hard\n"), out, "").Run(ctx)

	// Then: it stops quietly
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Bye!")
}

func TestShell_RunCancelledWhileWaitingForInput(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	controller := tictactoe.NewGameController(tictactoe.NewEngine(rand.New(rand.NewSource(1))))
	manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository(), controller)

	var buf bytes.Buffer
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))

	// Given: a terminal that sends a difficulty and then stays silent
	reader, writer := io.Pipe()
	t.Cleanup(func() { _ = writer.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- New(logger, manager, reader, out, "").Run(ctx)
	}()

	_, err := writer.Write([]byte("hard\n"))
	require.NoError(t, err)

	// When: ctx is cancelled while the shell waits for a move
	cancel()

	// Then: Run returns without further input
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("shell kept waiting for input after cancellation")
	}

	assert.Contains(t, buf.String(), "Bye!")
}
