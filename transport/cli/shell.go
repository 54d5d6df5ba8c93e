package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

const (
	playerColor = "4" // blue
	aiColor     = "1" // red
)

var errQuit = errors.New("player quit")

type inputLine struct {
	text string
	err  error
}

type gameUseCase interface {
	StartGame(ctx context.Context, difficulty entity.Difficulty) (*entity.Game, error)
	MakePlayerMove(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	MakeAIMove(ctx context.Context, gameID string) (*entity.Game, int, error)
	AbandonGame(ctx context.Context, gameID string) error
}

// Shell plays one game on a line-oriented terminal. Cells are entered as
// 1-9 and handed to the game as indexes 0-8.
type Shell struct {
	logger *slog.Logger
	games  gameUseCase

	in    *bufio.Scanner
	lines chan inputLine
	scan  sync.Once
	out   *termenv.Output

	difficulty string
}

// New creates a shell. A non-empty difficulty skips the prompt when it is
// valid.
func New(logger *slog.Logger, games gameUseCase, in io.Reader, out *termenv.Output, difficulty string) *Shell {
	return &Shell{
		logger:     logger.With("component", "cli"),
		games:      games,
		in:         bufio.NewScanner(in),
		lines:      make(chan inputLine),
		out:        out,
		difficulty: difficulty,
	}
}

// Run plays a single game. It returns nil when the game ends, when input runs
// out or the player quits, and when ctx is cancelled.
func (that *Shell) Run(ctx context.Context) error {
	that.printf("Welcome to Tic-Tac-Toe!\n")
	that.printf("You are 'X'. The AI is 'O'. Enter a cell number to move, q to quit.\n")

	difficulty, err := that.askDifficulty(ctx)
	if err != nil {
		return that.stopped(err)
	}

	game, err := that.games.StartGame(ctx, difficulty)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	if err = that.play(ctx, game); err != nil {
		if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
			if abandonErr := that.games.AbandonGame(context.WithoutCancel(ctx), game.ID); abandonErr != nil {
				that.logger.Error("could not abandon game", "gameID", game.ID, "error", abandonErr)
			}
		}

		return that.stopped(err)
	}

	return nil
}

func (that *Shell) play(ctx context.Context, game *entity.Game) error {
	for {
		that.render(&game.Board)

		cell, err := that.askCell(ctx)
		if err != nil {
			return err
		}

		next, err := that.games.MakePlayerMove(ctx, game.ID, cell)
		if isRejection(err) {
			that.printf("%s, try again.\n", rejectionReason(err))
			continue
		}

		if err != nil {
			return fmt.Errorf("failed to apply move: %w", err)
		}

		game = next
		if game.IsFinished() {
			that.finish(game)
			return nil
		}

		next, aiCell, err := that.games.MakeAIMove(ctx, game.ID)
		if err != nil {
			return fmt.Errorf("failed to get ai move: %w", err)
		}

		game = next
		that.printf("AI plays cell %d.\n", aiCell+1)

		if game.IsFinished() {
			that.finish(game)
			return nil
		}
	}
}

func (that *Shell) askDifficulty(ctx context.Context) (entity.Difficulty, error) {
	if that.difficulty != "" {
		difficulty, err := entity.ParseDifficulty(that.difficulty)
		if err == nil {
			that.printf("Difficulty: %s\n", difficulty)
			return difficulty, nil
		}

		that.logger.Warn("ignoring configured difficulty", "error", err)
	}

	prompt := "Choose difficulty level (easy/hard): "
	for {
		that.printf("%s", prompt)

		line, err := that.readLine(ctx)
		if err != nil {
			return "", err
		}

		difficulty, err := entity.ParseDifficulty(line)
		if err == nil {
			return difficulty, nil
		}

		prompt = "Invalid choice. Choose difficulty level (easy/hard): "
	}
}

func (that *Shell) askCell(ctx context.Context) (int, error) {
	for {
		that.printf("Your move: ")

		line, err := that.readLine(ctx)
		if err != nil {
			return -1, err
		}

		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "q") || strings.EqualFold(line, "quit") {
			return -1, errQuit
		}

		number, err := strconv.Atoi(line)
		if err != nil {
			that.printf("Please enter a number from 1 to 9.\n")
			continue
		}

		return number - 1, nil
	}
}

// readLine waits for the next input line or for ctx to be cancelled,
// whichever comes first. A scan in progress outlives a cancelled ctx.
func (that *Shell) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	that.scan.Do(func() { go that.scanLines() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-that.lines:
		if !ok {
			return "", errQuit
		}

		return line.text, line.err
	}
}

func (that *Shell) scanLines() {
	defer close(that.lines)

	for that.in.Scan() {
		that.lines <- inputLine{text: that.in.Text()}
	}

	if err := that.in.Err(); err != nil {
		that.lines <- inputLine{err: fmt.Errorf("failed to read input: %w", err)}
	}
}

func (that *Shell) render(board *entity.Board) {
	var sb strings.Builder

	for row := range 3 {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		for col := range 3 {
			index := row*3 + col
			if col > 0 {
				sb.WriteByte('|')
			}

			sb.WriteByte(' ')
			sb.WriteString(that.cell(board[index], index))
			sb.WriteByte(' ')
		}

		sb.WriteByte('\n')
	}

	that.printf("\n%s\n", sb.String())
}

func (that *Shell) cell(mark entity.Mark, index int) string {
	switch mark {
	case entity.PlayerMark:
		return that.out.String(string(mark)).Foreground(that.out.Color(playerColor)).Bold().String()
	case entity.AiMark:
		return that.out.String(string(mark)).Foreground(that.out.Color(aiColor)).Bold().String()
	default:
		return that.out.String(strconv.Itoa(index + 1)).Faint().String()
	}
}

func (that *Shell) finish(game *entity.Game) {
	that.render(&game.Board)

	switch game.Outcome() {
	case entity.OutcomePlayerWin:
		that.printf("Congratulations! You win!\n")
	case entity.OutcomeAiWin:
		that.printf("AI wins! Better luck next time.\n")
	case entity.OutcomeDraw:
		that.printf("It's a draw!\n")
	}
}

func (that *Shell) stopped(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		that.printf("\nBye!\n")
		return nil
	}

	return err
}

func (that *Shell) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("could not write output", "error", err)
	}
}

func isRejection(err error) bool {
	return errors.Is(err, apperror.ErrCellOccupied) || errors.Is(err, apperror.ErrInvalidCell)
}

func rejectionReason(err error) string {
	if errors.Is(err, apperror.ErrCellOccupied) {
		return "That cell is already taken"
	}

	return "There is no such cell"
}
