package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type moveChooser interface {
	ChooseMove(board *entity.Board, difficulty entity.Difficulty) int
}

// GameController advances a session one ply at a time. The player's move
// and the AI's reply are separate calls so the caller can inspect the
// outcome in between.
type GameController struct {
	engine moveChooser
}

func NewGameController(engine moveChooser) *GameController {
	return &GameController{
		engine: engine,
	}
}

// ApplyPlayerMove places the human's mark on cell.
func (that *GameController) ApplyPlayerMove(game *entity.Game, cell int) error {
	return makeTurn(game, entity.PlayerMark, cell)
}

// RequestAIMove asks the engine for a cell under the session's difficulty
// and plays it.
func (that *GameController) RequestAIMove(game *entity.Game) (int, error) {
	if err := validateTurn(game, entity.AiMark); err != nil {
		return -1, err
	}

	cell := that.engine.ChooseMove(&game.Board, game.Difficulty)
	if err := makeTurn(game, entity.AiMark, cell); err != nil {
		return -1, fmt.Errorf("engine chose cell %d: %w", cell, err)
	}

	return cell, nil
}

func makeTurn(game *entity.Game, mark entity.Mark, cell int) error {
	if err := validateTurn(game, mark); err != nil {
		return err
	}

	if cell < 0 || cell >= entity.BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !game.Board.Place(cell, mark) {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	game.Turn = mark.Opponent()

	return nil
}

// validateTurn - checks that the game is still running and it is mark's turn.
func validateTurn(game *entity.Game, mark entity.Mark) error {
	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	if game.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	return nil
}
