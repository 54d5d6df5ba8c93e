package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameController interface {
	ApplyPlayerMove(game *entity.Game, cell int) error
	RequestAIMove(game *entity.Game) (int, error)
}

// GameManager owns session lifecycle: a session is stored while in progress
// and deleted as soon as it reaches a terminal outcome.
type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	controller gameController
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, controller gameController) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		controller: controller,
	}
}

func (that *GameManager) StartGame(ctx context.Context, difficulty entity.Difficulty) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString(), difficulty)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game started", "gameID", game.ID, "difficulty", difficulty)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakePlayerMove applies the human's move. A rejected move is returned as an
// error together with the unchanged game.
func (that *GameManager) MakePlayerMove(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = that.controller.ApplyPlayerMove(game, cell); err != nil {
		that.logger.Debug("player move rejected", "gameID", gameID, "cell", cell, "error", err)
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.saveOrFinish(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// MakeAIMove lets the engine play one move and returns the chosen cell.
func (that *GameManager) MakeAIMove(ctx context.Context, gameID string) (*entity.Game, int, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, -1, err
	}

	cell, err := that.controller.RequestAIMove(game)
	if err != nil {
		return game, -1, fmt.Errorf("failed ai turn: %w", err)
	}

	that.logger.Debug("ai moved", "gameID", gameID, "cell", cell, "board", game.Board.String())

	if err = that.saveOrFinish(ctx, game); err != nil {
		return nil, -1, err
	}

	return game, cell, nil
}

// AbandonGame drops a session that is still in progress.
func (that *GameManager) AbandonGame(ctx context.Context, gameID string) error {
	err := that.gameRepo.DeleteByID(ctx, gameID)
	if err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game abandoned", "gameID", gameID)

	return nil
}

func (that *GameManager) saveOrFinish(ctx context.Context, game *entity.Game) error {
	if game.IsFinished() {
		that.deleteGame(ctx, game)
		return nil
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "deleteGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	log.Info("game finished", "outcome", game.Outcome(), "board", game.Board.String())
}
