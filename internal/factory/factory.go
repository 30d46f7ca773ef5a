// Package factory wires the application graph: storage, dependencies,
// services, and the push layer.
package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/quizparty/quizparty-go/internal/dependencies/clock"
	"github.com/quizparty/quizparty-go/internal/dependencies/random"
	"github.com/quizparty/quizparty-go/internal/push"
	"github.com/quizparty/quizparty-go/internal/questionbank"
	"github.com/quizparty/quizparty-go/internal/roomlock"
	"github.com/quizparty/quizparty-go/internal/services/game"
	"github.com/quizparty/quizparty-go/internal/services/room"
	"github.com/quizparty/quizparty-go/internal/services/rounds"
	"github.com/quizparty/quizparty-go/internal/services/scoring"
	"github.com/quizparty/quizparty-go/internal/services/voting"
	"github.com/quizparty/quizparty-go/internal/storage"
	"github.com/quizparty/quizparty-go/internal/storage/memory"
	redisstorage "github.com/quizparty/quizparty-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Locks  *roomlock.Manager

	// Services
	Bank              *questionbank.Service
	RoundService      *rounds.Service
	RoomController    *room.Controller
	GameController    *game.Controller
	ScoringController *scoring.Controller
	VotingController  *voting.Controller
	HubManager        *push.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// QuestionBankPath is the path to a question bank JSON file
	// (optional). If empty, the built-in seed bank is loaded.
	QuestionBankPath string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired and the
// question bank loaded
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	app := newWithDependencies(store, clock.New(), random.New(), logger)

	ctx := context.Background()
	if cfg.QuestionBankPath != "" {
		if err := app.Bank.LoadFromFile(ctx, cfg.QuestionBankPath); err != nil {
			return nil, err
		}
	} else if err := app.Bank.LoadFromStorage(ctx); err != nil || !app.Bank.Loaded() {
		if err != nil {
			return nil, err
		}
		app.Bank.Load(questionbank.SeedCategories(), questionbank.SeedQuestions())
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	locks := roomlock.NewManager()
	bank := questionbank.New(store)
	roundService := rounds.New(bank, rnd)
	roomController := room.NewController(store, roundService, locks, clk, rnd, logger)
	votingController := voting.NewController(store, bank, roundService, locks, clk, rnd, logger)
	gameController := game.NewController(store, roundService, votingController, locks, clk, rnd, logger)
	scoringController := scoring.NewController(store, bank, locks, clk, rnd, logger)
	hubManager := push.NewHubManager(logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Locks:             locks,
		Bank:              bank,
		RoundService:      roundService,
		RoomController:    roomController,
		GameController:    gameController,
		ScoringController: scoringController,
		VotingController:  votingController,
		HubManager:        hubManager,
	}
}
