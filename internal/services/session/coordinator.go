package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dragonspire/sentinel/internal/dependencies/clock"
	"github.com/dragonspire/sentinel/internal/dependencies/random"
	"github.com/dragonspire/sentinel/internal/model"
	"github.com/dragonspire/sentinel/internal/services/anticheat"
	"github.com/dragonspire/sentinel/internal/services/gate"
	"github.com/dragonspire/sentinel/internal/storage"
)

// SyncStatus is the outcome of a sync call
type SyncStatus string

const (
	SyncStatusSynced     SyncStatus = "SYNCED"
	SyncStatusTerminated SyncStatus = "TERMINATE_AND_BAN"
)

// ConnectResult is the outcome of a connect attempt
type ConnectResult struct {
	Allowed   bool
	Reason    model.Verdict
	Token     string
	TrustTier model.TrustTier
}

// SyncResult is the outcome of applying one telemetry packet
type SyncResult struct {
	Status   SyncStatus
	Reason   model.Verdict
	Severity int
	Balance  int64
}

// Stats are the aggregate counts served by the health endpoint
type Stats struct {
	ActiveSessions int
	StoredAccounts int64
}

// Config holds configuration for the session coordinator
type Config struct {
	// StoreTimeout bounds each profile-store call
	StoreTimeout time.Duration
	// StoreRetries is the number of additional attempts after a failed
	// store call
	StoreRetries int
	// BalanceCacheSize bounds the balance memoization used for sync
	// responses; 0 disables the cache and every sync reads the store
	BalanceCacheSize int
	// BalanceCacheTTL is how long a cached balance may be served
	BalanceCacheTTL time.Duration
}

// DefaultConfig returns default coordinator configuration
func DefaultConfig() Config {
	return Config{
		StoreTimeout:     2 * time.Second,
		StoreRetries:     2,
		BalanceCacheSize: 1024,
		BalanceCacheTTL:  2 * time.Second,
	}
}

// Coordinator orchestrates the connect/sync/disconnect lifecycle. It owns
// the per-player session table and applies validator verdicts; account
// moderation (acting on ban verdicts) is left to external tooling.
type Coordinator struct {
	store     storage.ProfileStore
	gate      *gate.Service
	validator *anticheat.Service
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
	cfg       Config

	mu       sync.RWMutex
	sessions map[model.PlayerID]*model.SessionRecord

	locks *playerLocks

	// balances memoizes the balance reported on clean syncs; trust
	// decisions never read it. Nil when disabled.
	balances *expirable.LRU[model.PlayerID, int64]
}

// New creates a new session coordinator
func New(
	store storage.ProfileStore,
	gateSvc *gate.Service,
	validator *anticheat.Service,
	clk clock.Clock,
	rnd random.Random,
	cfg Config,
	logger *slog.Logger,
) *Coordinator {
	def := DefaultConfig()
	if cfg.StoreTimeout == 0 {
		cfg.StoreTimeout = def.StoreTimeout
	}
	if cfg.BalanceCacheTTL == 0 {
		cfg.BalanceCacheTTL = def.BalanceCacheTTL
	}

	var balances *expirable.LRU[model.PlayerID, int64]
	if cfg.BalanceCacheSize > 0 {
		balances = expirable.NewLRU[model.PlayerID, int64](cfg.BalanceCacheSize, nil, cfg.BalanceCacheTTL)
	}

	return &Coordinator{
		store:     store,
		gate:      gateSvc,
		validator: validator,
		clock:     clk,
		random:    rnd,
		logger:    logger,
		cfg:       cfg,
		sessions:  make(map[model.PlayerID]*model.SessionRecord),
		locks:     newPlayerLocks(),
		balances:  balances,
	}
}

// Connect evaluates the access gate against a fresh account read and, when
// allowed, creates a session superseding any prior session for the player.
func (c *Coordinator) Connect(ctx context.Context, playerID model.PlayerID, hwid string, sample model.BehaviorSample) (*ConnectResult, error) {
	unlock := c.locks.lock(playerID)
	defer unlock()

	account, err := c.getAccount(ctx, playerID)
	if err != nil {
		return nil, err
	}

	verdict, allowed := c.gate.Evaluate(account, hwid, sample)
	if !allowed {
		c.logger.Info("connect denied",
			slog.String("player_id", string(playerID)),
			slog.String("verdict", string(verdict)),
		)
		return &ConnectResult{Allowed: false, Reason: verdict}, nil
	}

	// Accounts created by a credit carry a pending binding; the first real
	// connect claims the device so a second device cannot slip in before
	// the lazy bind ever happens.
	if account != nil && account.RegisteredHWID == model.PendingHWID {
		err := c.withRetry(ctx, func(ctx context.Context) error {
			return c.store.SetDeviceBinding(ctx, playerID, hwid)
		})
		if err != nil {
			return nil, err
		}
	}

	record := &model.SessionRecord{
		Token:         uuid.NewString(),
		PlayerID:      playerID,
		HWID:          hwid,
		LastPosition:  model.Position{},
		LastTimestamp: c.clock.Now(),
	}

	c.mu.Lock()
	c.sessions[playerID] = record
	c.mu.Unlock()

	tier := model.TierStandard
	if account != nil && account.Balance > model.HighValueBalance {
		tier = model.TierMaximum
	}
	if c.balances != nil && account != nil {
		c.balances.Add(playerID, account.Balance)
	}

	c.logger.Info("player connected",
		slog.String("player_id", string(playerID)),
		slog.String("trust_tier", string(tier)),
	)

	return &ConnectResult{
		Allowed:   true,
		Reason:    verdict,
		Token:     record.Token,
		TrustTier: tier,
	}, nil
}

// Sync applies one telemetry packet to the player's session. Packets for the
// same player are serialized so each one is validated against the correct
// chronological previous state; packets for distinct players proceed in
// parallel. A non-clean verdict destroys the session.
func (c *Coordinator) Sync(ctx context.Context, playerID model.PlayerID, packet model.TelemetryPacket) (*SyncResult, error) {
	if packet.Timestamp.IsZero() {
		packet.Timestamp = c.clock.Now()
	}

	unlock := c.locks.lock(playerID)
	defer unlock()

	c.mu.RLock()
	record, ok := c.sessions[playerID]
	c.mu.RUnlock()
	if !ok {
		return nil, model.ErrNoSession
	}

	verdict, severity := c.validator.Validate(packet, record)
	if !verdict.Clean() {
		c.mu.Lock()
		delete(c.sessions, playerID)
		c.mu.Unlock()
		if c.balances != nil {
			c.balances.Remove(playerID)
		}

		c.logger.Warn("session terminated",
			slog.String("player_id", string(playerID)),
			slog.String("verdict", string(verdict)),
			slog.Int("severity", severity),
		)

		return &SyncResult{Status: SyncStatusTerminated, Reason: verdict, Severity: severity}, nil
	}

	// Only same-player calls touch the record and they hold the player lock,
	// so mutating through the shared pointer is safe here.
	record.LastPosition = packet.Position
	record.LastTimestamp = packet.Timestamp

	balance, err := c.balance(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return &SyncResult{Status: SyncStatusSynced, Reason: verdict, Balance: balance}, nil
}

// Disconnect destroys the player's session, if any
func (c *Coordinator) Disconnect(playerID model.PlayerID) {
	unlock := c.locks.lock(playerID)
	defer unlock()

	c.mu.Lock()
	delete(c.sessions, playerID)
	c.mu.Unlock()
	if c.balances != nil {
		c.balances.Remove(playerID)
	}
}

// ActiveSession returns a copy of the player's live session record, if any
func (c *Coordinator) ActiveSession(playerID model.PlayerID) (model.SessionRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	record, ok := c.sessions[playerID]
	if !ok {
		return model.SessionRecord{}, false
	}
	return *record, true
}

// Stats returns the aggregate counts for the health endpoint
func (c *Coordinator) Stats(ctx context.Context) (*Stats, error) {
	c.mu.RLock()
	active := len(c.sessions)
	c.mu.RUnlock()

	var accounts int64
	err := c.withRetry(ctx, func(ctx context.Context) error {
		n, err := c.store.CountAccounts(ctx)
		if err != nil {
			return err
		}
		accounts = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Stats{ActiveSessions: active, StoredAccounts: accounts}, nil
}

// getAccount reads the player's account, mapping absence to a nil account
// rather than an error. Trust decisions always go through this fresh read.
func (c *Coordinator) getAccount(ctx context.Context, id model.PlayerID) (*model.PlayerAccount, error) {
	var account *model.PlayerAccount
	err := c.withRetry(ctx, func(ctx context.Context) error {
		acc, err := c.store.GetAccount(ctx, id)
		if err != nil {
			return err
		}
		account = acc
		return nil
	})
	if errors.Is(err, model.ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// balance returns the balance reported on clean syncs, read through the
// bounded cache when enabled
func (c *Coordinator) balance(ctx context.Context, id model.PlayerID) (int64, error) {
	if c.balances != nil {
		if bal, ok := c.balances.Get(id); ok {
			return bal, nil
		}
	}

	account, err := c.getAccount(ctx, id)
	if err != nil {
		return 0, err
	}

	var bal int64
	if account != nil {
		bal = account.Balance
	}
	if c.balances != nil {
		c.balances.Add(id, bal)
	}
	return bal, nil
}

// withRetry runs a store call with a bounded timeout per attempt and a
// jittered pause between attempts. Failures are classified as
// model.ErrStoreUnavailable so callers can never mistake an outage for a
// trust decision; domain errors pass through untouched.
func (c *Coordinator) withRetry(ctx context.Context, op func(context.Context) error) error {
	var err error
	for attempt := 0; attempt <= c.cfg.StoreRetries; attempt++ {
		if attempt > 0 {
			pause := c.random.Jitter(50*time.Millisecond, 100*time.Millisecond)
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %w", model.ErrStoreUnavailable, ctx.Err())
			case <-time.After(pause):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.StoreTimeout)
		err = op(attemptCtx)
		cancel()

		if err == nil || errors.Is(err, model.ErrAccountNotFound) || errors.Is(err, model.ErrBalanceUnderflow) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", model.ErrStoreUnavailable, err)
}
