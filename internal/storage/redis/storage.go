package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dragonspire/sentinel/internal/model"
	"github.com/dragonspire/sentinel/internal/storage"
)

// Hash field names for account records
const (
	fieldHWID           = "hwid"
	fieldAvgSensitivity = "avg_sensitivity"
	fieldAvgTapSpeed    = "avg_tap_speed"
	fieldBalance        = "balance"
	fieldStatus         = "status"
	fieldCreatedAt      = "created_at"
)

// Storage is a Redis-backed implementation of the profile store.
// Accounts are stored as hashes so balance increments can use HINCRBY,
// which is atomic server-side.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis profile store
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis profile store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.ProfileStore = (*Storage)(nil)

func (s *Storage) GetAccount(ctx context.Context, id model.PlayerID) (*model.PlayerAccount, error) {
	fields, err := s.client.HGetAll(ctx, accountKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrAccountNotFound
	}

	acc := &model.PlayerAccount{
		PlayerID:       id,
		RegisteredHWID: fields[fieldHWID],
		Status:         model.AccountStatus(fields[fieldStatus]),
	}
	acc.Baseline.AvgSensitivity, _ = strconv.ParseFloat(fields[fieldAvgSensitivity], 64)
	acc.Baseline.AvgTapSpeed, _ = strconv.ParseFloat(fields[fieldAvgTapSpeed], 64)
	acc.Balance, _ = strconv.ParseInt(fields[fieldBalance], 10, 64)
	if unix, err := strconv.ParseInt(fields[fieldCreatedAt], 10, 64); err == nil {
		acc.CreatedAt = time.Unix(unix, 0).UTC()
	}

	return acc, nil
}

func (s *Storage) CreditBalance(ctx context.Context, id model.PlayerID, delta int64) (int64, bool, error) {
	key := accountKey(id)

	// Single pipeline: register the account in the index, install defaults
	// for any missing fields, then apply the increment with HINCRBY.
	pipe := s.client.Pipeline()
	added := pipe.SAdd(ctx, accountIndexKey(), string(id))
	pipe.HSetNX(ctx, key, fieldHWID, model.PendingHWID)
	pipe.HSetNX(ctx, key, fieldStatus, string(model.StatusActive))
	pipe.HSetNX(ctx, key, fieldAvgSensitivity, "0")
	pipe.HSetNX(ctx, key, fieldAvgTapSpeed, "0")
	pipe.HSetNX(ctx, key, fieldCreatedAt, strconv.FormatInt(time.Now().Unix(), 10))
	incr := pipe.HIncrBy(ctx, key, fieldBalance, delta)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, false, err
	}

	created := added.Val() == 1
	balance := incr.Val()

	// The increment itself is atomic; an underflowing debit is compensated
	// with the inverse increment so the stored balance stays non-negative.
	if balance < 0 {
		restored, err := s.client.HIncrBy(ctx, key, fieldBalance, -delta).Result()
		if err != nil {
			return 0, created, err
		}
		return restored, created, model.ErrBalanceUnderflow
	}

	return balance, created, nil
}

func (s *Storage) SetDeviceBinding(ctx context.Context, id model.PlayerID, hwid string) error {
	exists, err := s.client.Exists(ctx, accountKey(id)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrAccountNotFound
	}
	return s.client.HSet(ctx, accountKey(id), fieldHWID, hwid).Err()
}

func (s *Storage) SetStatus(ctx context.Context, id model.PlayerID, status model.AccountStatus) error {
	exists, err := s.client.Exists(ctx, accountKey(id)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrAccountNotFound
	}
	return s.client.HSet(ctx, accountKey(id), fieldStatus, string(status)).Err()
}

func (s *Storage) CountAccounts(ctx context.Context) (int64, error) {
	return s.client.SCard(ctx, accountIndexKey()).Result()
}
