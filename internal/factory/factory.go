package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tlindqvist/wordparty/internal/dependencies/clock"
	"github.com/tlindqvist/wordparty/internal/dependencies/random"
	"github.com/tlindqvist/wordparty/internal/services/feedback"
	"github.com/tlindqvist/wordparty/internal/services/party"
	"github.com/tlindqvist/wordparty/internal/services/scoring"
	"github.com/tlindqvist/wordparty/internal/services/words"
	"github.com/tlindqvist/wordparty/internal/sse"
	"github.com/tlindqvist/wordparty/internal/storage"
	"github.com/tlindqvist/wordparty/internal/storage/memory"
	redisstorage "github.com/tlindqvist/wordparty/internal/storage/redis"
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

	// Services
	WordsService    *words.Service
	FeedbackService *feedback.Service
	ScoringService  *scoring.Service
	PartyController *party.Controller
	HubManager      *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
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

	return newWithDependencies(store, clock.New(), random.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	wordsService := words.New(store, rnd)
	feedbackService := feedback.New()
	scoringService := scoring.New()
	partyController := party.NewController(store, wordsService, feedbackService, scoringService, clk, logger)
	hubManager := sse.NewHubManager(logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		WordsService:    wordsService,
		FeedbackService: feedbackService,
		ScoringService:  scoringService,
		PartyController: partyController,
		HubManager:      hubManager,
	}
}
