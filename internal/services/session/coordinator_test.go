package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/dragonspire/sentinel/internal/dependencies/mocks"
	"github.com/dragonspire/sentinel/internal/model"
	"github.com/dragonspire/sentinel/internal/services/anticheat"
	"github.com/dragonspire/sentinel/internal/services/gate"
	"github.com/dragonspire/sentinel/internal/storage/memory"
	"github.com/dragonspire/sentinel/internal/testutil"
)

type CoordinatorTestSuite struct {
	suite.Suite

	store *memory.Storage
	clock *mocks.MockClock
	coord *Coordinator
}

func TestCoordinatorTestSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}

func (s *CoordinatorTestSuite) SetupTest() {
	s.store = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.coord = New(
		s.store,
		gate.New(),
		anticheat.New(),
		s.clock,
		mocks.NewMockRandom(),
		Config{
			StoreTimeout:     time.Second,
			StoreRetries:     0,
			BalanceCacheSize: 16,
			BalanceCacheTTL:  time.Minute,
		},
		testutil.NopLogger(),
	)
}

func (s *CoordinatorTestSuite) seed(balance int64, hwid string) {
	s.store.Seed(&model.PlayerAccount{
		PlayerID:       "p1",
		RegisteredHWID: hwid,
		Baseline:       model.BehaviorBaseline{AvgSensitivity: 2.0},
		Balance:        balance,
		Status:         model.StatusActive,
		CreatedAt:      s.clock.Now(),
	})
}

func (s *CoordinatorTestSuite) connect() *ConnectResult {
	res, err := s.coord.Connect(context.Background(), "p1", "HWID-A", model.BehaviorSample{Sensitivity: 2.0})
	s.Require().NoError(err)
	s.Require().True(res.Allowed)
	return res
}

func (s *CoordinatorTestSuite) TestConnectUnknownPlayerAllowed() {
	res, err := s.coord.Connect(context.Background(), "p1", "HWID-A", model.BehaviorSample{Sensitivity: 5.0})
	s.Require().NoError(err)

	s.True(res.Allowed)
	s.Equal(model.VerdictClean, res.Reason)
	s.NotEmpty(res.Token)
	s.Equal(model.TierStandard, res.TrustTier)

	record, ok := s.coord.ActiveSession("p1")
	s.Require().True(ok)
	s.Equal(res.Token, record.Token)
	s.Equal("HWID-A", record.HWID)
	s.Equal(s.clock.Now(), record.LastTimestamp)
}

func (s *CoordinatorTestSuite) TestConnectWrongDeviceDenied() {
	s.seed(100, "HWID-OTHER")

	res, err := s.coord.Connect(context.Background(), "p1", "HWID-A", model.BehaviorSample{Sensitivity: 2.0})
	s.Require().NoError(err)

	s.False(res.Allowed)
	s.Equal(model.VerdictWrongDevice, res.Reason)
	s.Empty(res.Token)

	_, ok := s.coord.ActiveSession("p1")
	s.False(ok)
}

func (s *CoordinatorTestSuite) TestConnectBehaviorDriftDenied() {
	s.seed(100, "HWID-A")

	res, err := s.coord.Connect(context.Background(), "p1", "HWID-A", model.BehaviorSample{Sensitivity: 9.0})
	s.Require().NoError(err)

	s.False(res.Allowed)
	s.Equal(model.VerdictBehaviorLocked, res.Reason)

	_, ok := s.coord.ActiveSession("p1")
	s.False(ok)
}

func (s *CoordinatorTestSuite) TestConnectClaimsPendingBinding() {
	s.seed(100, model.PendingHWID)

	s.connect()

	acc, err := s.store.GetAccount(context.Background(), "p1")
	s.Require().NoError(err)
	s.Equal("HWID-A", acc.RegisteredHWID)
}

func (s *CoordinatorTestSuite) TestReconnectSupersedesSession() {
	first := s.connect()
	second := s.connect()

	s.NotEqual(first.Token, second.Token)

	record, ok := s.coord.ActiveSession("p1")
	s.Require().True(ok)
	s.Equal(second.Token, record.Token)
}

func (s *CoordinatorTestSuite) TestTrustTierFromBalance() {
	s.seed(model.HighValueBalance+1, "HWID-A")

	res := s.connect()
	s.Equal(model.TierMaximum, res.TrustTier)
}

func (s *CoordinatorTestSuite) TestTrustTierStandardAtThreshold() {
	s.seed(model.HighValueBalance, "HWID-A")

	res := s.connect()
	s.Equal(model.TierStandard, res.TrustTier)
}

func (s *CoordinatorTestSuite) TestSyncWithoutSession() {
	_, err := s.coord.Sync(context.Background(), "p1", model.TelemetryPacket{})
	s.ErrorIs(err, model.ErrNoSession)
}

func (s *CoordinatorTestSuite) TestCleanSyncUpdatesRecord() {
	s.seed(750, "HWID-A")
	s.connect()

	packet := model.TelemetryPacket{
		Position:  model.Position{X: 10, Y: 0},
		Timestamp: s.clock.Now().Add(time.Second),
		Recoil:    1.0,
	}
	res, err := s.coord.Sync(context.Background(), "p1", packet)
	s.Require().NoError(err)

	s.Equal(SyncStatusSynced, res.Status)
	s.Equal(model.VerdictClean, res.Reason)
	s.Equal(int64(750), res.Balance)

	record, ok := s.coord.ActiveSession("p1")
	s.Require().True(ok)
	s.Equal(packet.Position, record.LastPosition)
	s.Equal(packet.Timestamp, record.LastTimestamp)
}

func (s *CoordinatorTestSuite) TestSyncStampsZeroTimestamp() {
	s.connect()
	s.clock.Advance(3 * time.Second)

	_, err := s.coord.Sync(context.Background(), "p1", model.TelemetryPacket{
		Position: model.Position{X: 5, Y: 0},
		Recoil:   1.0,
	})
	s.Require().NoError(err)

	record, ok := s.coord.ActiveSession("p1")
	s.Require().True(ok)
	s.Equal(s.clock.Now(), record.LastTimestamp)
}

func (s *CoordinatorTestSuite) TestBanDestroysSession() {
	s.connect()

	res, err := s.coord.Sync(context.Background(), "p1", model.TelemetryPacket{
		Position:  model.Position{X: 1000, Y: 0},
		Timestamp: s.clock.Now().Add(time.Second),
		Recoil:    1.0,
	})
	s.Require().NoError(err)

	s.Equal(SyncStatusTerminated, res.Status)
	s.Equal(model.VerdictHWIDBan, res.Reason)
	s.Equal(model.SeverityHWIDBan, res.Severity)

	_, ok := s.coord.ActiveSession("p1")
	s.False(ok)

	_, err = s.coord.Sync(context.Background(), "p1", model.TelemetryPacket{})
	s.ErrorIs(err, model.ErrNoSession)
}

func (s *CoordinatorTestSuite) TestDisconnectRemovesSession() {
	s.connect()

	s.coord.Disconnect("p1")

	_, ok := s.coord.ActiveSession("p1")
	s.False(ok)
}

func (s *CoordinatorTestSuite) TestDisconnectWithoutSessionIsNoop() {
	s.coord.Disconnect("p1")

	_, ok := s.coord.ActiveSession("p1")
	s.False(ok)
}

func (s *CoordinatorTestSuite) TestStats() {
	s.seed(100, "HWID-A")
	s.connect()

	stats, err := s.coord.Stats(context.Background())
	s.Require().NoError(err)

	s.Equal(1, stats.ActiveSessions)
	s.Equal(int64(1), stats.StoredAccounts)
}

func (s *CoordinatorTestSuite) TestSyncServesCachedBalance() {
	s.seed(500, "HWID-A")
	s.connect()

	// Connect warmed the cache; a credit landing afterwards may be served
	// stale for up to the cache TTL.
	_, _, err := s.store.CreditBalance(context.Background(), "p1", 250)
	s.Require().NoError(err)

	res, err := s.coord.Sync(context.Background(), "p1", model.TelemetryPacket{
		Position:  model.Position{X: 1, Y: 0},
		Timestamp: s.clock.Now().Add(time.Second),
		Recoil:    1.0,
	})
	s.Require().NoError(err)
	s.Equal(int64(500), res.Balance)
}

func (s *CoordinatorTestSuite) TestDisabledCacheReadsFresh() {
	coord := New(
		s.store,
		gate.New(),
		anticheat.New(),
		s.clock,
		mocks.NewMockRandom(),
		Config{StoreTimeout: time.Second, BalanceCacheSize: 0},
		testutil.NopLogger(),
	)

	s.seed(500, "HWID-A")
	_, err := coord.Connect(context.Background(), "p1", "HWID-A", model.BehaviorSample{Sensitivity: 2.0})
	s.Require().NoError(err)

	_, _, err = s.store.CreditBalance(context.Background(), "p1", 250)
	s.Require().NoError(err)

	res, err := coord.Sync(context.Background(), "p1", model.TelemetryPacket{
		Position:  model.Position{X: 1, Y: 0},
		Timestamp: s.clock.Now().Add(time.Second),
		Recoil:    1.0,
	})
	s.Require().NoError(err)
	s.Equal(int64(750), res.Balance)
}

// failingStore fails every call, standing in for a profile store outage.
type failingStore struct{}

var errStoreDown = errors.New("connection refused")

func (f *failingStore) GetAccount(ctx context.Context, id model.PlayerID) (*model.PlayerAccount, error) {
	return nil, errStoreDown
}

func (f *failingStore) CreditBalance(ctx context.Context, id model.PlayerID, delta int64) (int64, bool, error) {
	return 0, false, errStoreDown
}

func (f *failingStore) SetDeviceBinding(ctx context.Context, id model.PlayerID, hwid string) error {
	return errStoreDown
}

func (f *failingStore) SetStatus(ctx context.Context, id model.PlayerID, status model.AccountStatus) error {
	return errStoreDown
}

func (f *failingStore) CountAccounts(ctx context.Context) (int64, error) {
	return 0, errStoreDown
}

func TestConnectStoreOutageIsNeverAllowed(t *testing.T) {
	coord := New(
		&failingStore{},
		gate.New(),
		anticheat.New(),
		mocks.NewMockClock(time.Now()),
		mocks.NewMockRandom(),
		Config{StoreTimeout: 100 * time.Millisecond, StoreRetries: 1},
		testutil.NopLogger(),
	)

	res, err := coord.Connect(context.Background(), "p1", "HWID-A", model.BehaviorSample{})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)
	assert.Nil(t, res)
}

func TestSyncStoreOutageFailsAfterCleanVerdict(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	cfg := Config{StoreTimeout: 100 * time.Millisecond, StoreRetries: 0, BalanceCacheSize: 0}

	// The session exists and the packet itself is clean, but the balance
	// read must surface the outage rather than fabricate a response.
	down := New(&failingStore{}, gate.New(), anticheat.New(), clk, mocks.NewMockRandom(), cfg, testutil.NopLogger())
	down.mu.Lock()
	down.sessions["p1"] = &model.SessionRecord{
		Token: "tok", PlayerID: "p1", HWID: "HWID-A", LastTimestamp: clk.Now(),
	}
	down.mu.Unlock()

	_, err := down.Sync(context.Background(), "p1", model.TelemetryPacket{
		Position:  model.Position{X: 1, Y: 0},
		Timestamp: clk.Now().Add(time.Second),
		Recoil:    1.0,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)
}

func TestConcurrentSyncsAcrossPlayers(t *testing.T) {
	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	coord := New(store, gate.New(), anticheat.New(), clk, mocks.NewMockRandom(),
		Config{StoreTimeout: time.Second, BalanceCacheSize: 64, BalanceCacheTTL: time.Minute},
		testutil.NopLogger())

	players := []model.PlayerID{"p1", "p2", "p3", "p4"}
	for _, id := range players {
		_, err := coord.Connect(context.Background(), id, "HWID-"+string(id), model.BehaviorSample{})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for _, id := range players {
		for i := 1; i <= 20; i++ {
			wg.Add(1)
			go func(id model.PlayerID, step int) {
				defer wg.Done()
				_, err := coord.Sync(context.Background(), id, model.TelemetryPacket{
					Position:  model.Position{X: float64(step), Y: 0},
					Timestamp: clk.Now().Add(time.Duration(step) * time.Second),
					Recoil:    1.0,
				})
				assert.NoError(t, err)
			}(id, i)
		}
	}
	wg.Wait()

	// Every packet moved at most one unit per second, so no session may
	// have been terminated.
	for _, id := range players {
		_, ok := coord.ActiveSession(id)
		assert.True(t, ok, "session for %s should survive", id)
	}
}
