package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/dragonspire/sentinel/internal/model"
)

type RedisStorageTestSuite struct {
	suite.Suite

	mr      *miniredis.Miniredis
	storage *Storage
}

func TestRedisStorageTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStorageTestSuite))
}

func (s *RedisStorageTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	client := goredis.NewClient(&goredis.Options{Addr: s.mr.Addr()})
	s.storage = NewWithClient(client, DefaultConfig())
}

func (s *RedisStorageTestSuite) TearDownTest() {
	s.Require().NoError(s.storage.Close())
}

func (s *RedisStorageTestSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(context.Background(), "p1")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *RedisStorageTestSuite) TestCreditBalanceCreatesWithDefaults() {
	balance, created, err := s.storage.CreditBalance(context.Background(), "p1", 500)
	s.Require().NoError(err)

	s.True(created)
	s.Equal(int64(500), balance)

	acc, err := s.storage.GetAccount(context.Background(), "p1")
	s.Require().NoError(err)
	s.Equal(model.PendingHWID, acc.RegisteredHWID)
	s.Equal(model.StatusActive, acc.Status)
	s.Equal(int64(500), acc.Balance)
	s.False(acc.CreatedAt.IsZero())
}

func (s *RedisStorageTestSuite) TestCreditBalanceIncrementsExisting() {
	_, created, err := s.storage.CreditBalance(context.Background(), "p1", 500)
	s.Require().NoError(err)
	s.True(created)

	balance, created, err := s.storage.CreditBalance(context.Background(), "p1", 250)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(int64(750), balance)
}

func (s *RedisStorageTestSuite) TestCreditBalanceZeroDeltaIdempotent() {
	_, _, err := s.storage.CreditBalance(context.Background(), "p1", 500)
	s.Require().NoError(err)

	balance, created, err := s.storage.CreditBalance(context.Background(), "p1", 0)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(int64(500), balance)
}

func (s *RedisStorageTestSuite) TestCreditBalanceUnderflowCompensated() {
	_, _, err := s.storage.CreditBalance(context.Background(), "p1", 100)
	s.Require().NoError(err)

	balance, _, err := s.storage.CreditBalance(context.Background(), "p1", -300)
	s.ErrorIs(err, model.ErrBalanceUnderflow)
	s.Equal(int64(100), balance)

	acc, err := s.storage.GetAccount(context.Background(), "p1")
	s.Require().NoError(err)
	s.Equal(int64(100), acc.Balance)
}

func (s *RedisStorageTestSuite) TestCreditBalanceDebitToZero() {
	_, _, err := s.storage.CreditBalance(context.Background(), "p1", 100)
	s.Require().NoError(err)

	balance, _, err := s.storage.CreditBalance(context.Background(), "p1", -100)
	s.Require().NoError(err)
	s.Equal(int64(0), balance)
}

func (s *RedisStorageTestSuite) TestSetDeviceBinding() {
	_, _, err := s.storage.CreditBalance(context.Background(), "p1", 1)
	s.Require().NoError(err)

	s.Require().NoError(s.storage.SetDeviceBinding(context.Background(), "p1", "HWID-A"))

	acc, err := s.storage.GetAccount(context.Background(), "p1")
	s.Require().NoError(err)
	s.Equal("HWID-A", acc.RegisteredHWID)
}

func (s *RedisStorageTestSuite) TestSetDeviceBindingUnknownAccount() {
	err := s.storage.SetDeviceBinding(context.Background(), "p1", "HWID-A")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *RedisStorageTestSuite) TestSetStatus() {
	_, _, err := s.storage.CreditBalance(context.Background(), "p1", 1)
	s.Require().NoError(err)

	s.Require().NoError(s.storage.SetStatus(context.Background(), "p1", model.StatusBanned))

	acc, err := s.storage.GetAccount(context.Background(), "p1")
	s.Require().NoError(err)
	s.Equal(model.StatusBanned, acc.Status)
}

func (s *RedisStorageTestSuite) TestSetStatusUnknownAccount() {
	err := s.storage.SetStatus(context.Background(), "p1", model.StatusLocked)
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *RedisStorageTestSuite) TestCountAccounts() {
	n, err := s.storage.CountAccounts(context.Background())
	s.Require().NoError(err)
	s.Equal(int64(0), n)

	_, _, err = s.storage.CreditBalance(context.Background(), "p1", 1)
	s.Require().NoError(err)
	_, _, err = s.storage.CreditBalance(context.Background(), "p2", 1)
	s.Require().NoError(err)
	// Crediting an existing account must not double-count it.
	_, _, err = s.storage.CreditBalance(context.Background(), "p1", 1)
	s.Require().NoError(err)

	n, err = s.storage.CountAccounts(context.Background())
	s.Require().NoError(err)
	s.Equal(int64(2), n)
}

func (s *RedisStorageTestSuite) TestBaselineRoundTrip() {
	key := accountKey("p1")
	s.mr.HSet(key, "hwid", "HWID-A")
	s.mr.HSet(key, "avg_sensitivity", "2.5")
	s.mr.HSet(key, "avg_tap_speed", "7.25")
	s.mr.HSet(key, "balance", "1200")
	s.mr.HSet(key, "status", "LOCKED")
	s.mr.HSet(key, "created_at", "1704110400")

	acc, err := s.storage.GetAccount(context.Background(), "p1")
	s.Require().NoError(err)
	s.Equal("HWID-A", acc.RegisteredHWID)
	s.Equal(2.5, acc.Baseline.AvgSensitivity)
	s.Equal(7.25, acc.Baseline.AvgTapSpeed)
	s.Equal(int64(1200), acc.Balance)
	s.Equal(model.StatusLocked, acc.Status)
	s.Equal(int64(1704110400), acc.CreatedAt.Unix())
}
