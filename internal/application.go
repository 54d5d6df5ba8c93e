package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-solo/internal/config"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-solo/transport/cli"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs one game in the terminal.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gameRepo, closeRepo, err := newGameRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	return Play(ctx, logger, conf, gameRepo, os.Stdin, termenv.NewOutput(os.Stdout))
}

// Play wires the engine and the session manager to a terminal shell and runs
// a single game.
func Play(ctx context.Context, logger *slog.Logger, conf *config.Config, gameRepo repository.GameRepository, in io.Reader, out *termenv.Output) error {
	gameController := tictactoe.NewGameController(tictactoe.NewEngine(nil))
	gameManager := usecase.NewGameManager(logger, gameRepo, gameController)

	shell := cli.New(logger, gameManager, in, out, conf.Difficulty)
	if err := shell.Run(ctx); err != nil {
		return fmt.Errorf("game failed: %w", err)
	}

	return nil
}

func newGameRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	if conf.Storage != config.StorageRedis {
		log.Debug("using in-memory session storage")
		return repository.NewMemoryGameRepository(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" || conf.Redis.Port == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("using redis session storage", "addr", redisAddrString)

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewGameRepository(redisStorage, conf.SessionTTL), closeFn, nil
}
