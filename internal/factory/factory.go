package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/dragonspire/sentinel/internal/dependencies/clock"
	"github.com/dragonspire/sentinel/internal/dependencies/random"
	"github.com/dragonspire/sentinel/internal/services/anticheat"
	"github.com/dragonspire/sentinel/internal/services/gate"
	"github.com/dragonspire/sentinel/internal/services/session"
	"github.com/dragonspire/sentinel/internal/services/vault"
	"github.com/dragonspire/sentinel/internal/storage"
	"github.com/dragonspire/sentinel/internal/storage/memory"
	redisstorage "github.com/dragonspire/sentinel/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.ProfileStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Gate        *gate.Service
	Validator   *anticheat.Service
	Coordinator *session.Coordinator
	Vault       *vault.Service
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
	// SessionConfig holds coordinator settings (optional)
	// If zero value, defaults to session.DefaultConfig()
	SessionConfig session.Config
	// CredentialHash is the bcrypt hash of the internal shared secret
	CredentialHash string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.ProfileStore
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

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	sessionCfg := cfg.SessionConfig
	if sessionCfg.StoreTimeout == 0 && sessionCfg.BalanceCacheSize == 0 {
		sessionCfg = session.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, sessionCfg, cfg.CredentialHash, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.ProfileStore,
	clk clock.Clock,
	rnd random.Random,
	sessionCfg session.Config,
	credentialHash string,
	logger *slog.Logger,
) *App {
	gateSvc := gate.New()
	validator := anticheat.New()
	coordinator := session.New(store, gateSvc, validator, clk, rnd, sessionCfg, logger)
	vaultSvc := vault.New(store, vault.NewChecker(credentialHash), vault.DefaultConfig(), logger)

	return &App{
		Store:       store,
		Clock:       clk,
		Random:      rnd,
		Gate:        gateSvc,
		Validator:   validator,
		Coordinator: coordinator,
		Vault:       vaultSvc,
	}
}
