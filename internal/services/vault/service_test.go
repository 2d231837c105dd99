package vault

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/dragonspire/sentinel/internal/model"
	"github.com/dragonspire/sentinel/internal/storage/memory"
	"github.com/dragonspire/sentinel/internal/testutil"
)

const testSecret = "super-secret"

type VaultTestSuite struct {
	suite.Suite

	store *memory.Storage
	svc   *Service
}

func TestVaultTestSuite(t *testing.T) {
	suite.Run(t, new(VaultTestSuite))
}

func (s *VaultTestSuite) SetupTest() {
	hash, err := HashSecret(testSecret)
	s.Require().NoError(err)

	s.store = memory.New()
	s.svc = New(s.store, NewChecker(hash), DefaultConfig(), testutil.NopLogger())
}

func (s *VaultTestSuite) TestCreditRejectsBadCredential() {
	res, err := s.svc.Credit(context.Background(), "wrong-secret", "p1", 100)

	s.ErrorIs(err, ErrInvalidCredential)
	s.Nil(res)

	// The store must be untouched after a rejected credential.
	n, countErr := s.store.CountAccounts(context.Background())
	s.Require().NoError(countErr)
	s.Zero(n)
}

func (s *VaultTestSuite) TestCreditRejectsEmptyCredential() {
	_, err := s.svc.Credit(context.Background(), "", "p1", 100)
	s.ErrorIs(err, ErrInvalidCredential)
}

func (s *VaultTestSuite) TestCreditCreatesAccountWithDefaults() {
	res, err := s.svc.Credit(context.Background(), testSecret, "p1", 500)
	s.Require().NoError(err)

	s.True(res.Created)
	s.Equal(int64(500), res.Balance)

	acc, err := s.store.GetAccount(context.Background(), "p1")
	s.Require().NoError(err)
	s.Equal(model.PendingHWID, acc.RegisteredHWID)
	s.Equal(model.StatusActive, acc.Status)
}

func (s *VaultTestSuite) TestCreditIncrementsExistingAccount() {
	_, err := s.svc.Credit(context.Background(), testSecret, "p1", 500)
	s.Require().NoError(err)

	res, err := s.svc.Credit(context.Background(), testSecret, "p1", 250)
	s.Require().NoError(err)

	s.False(res.Created)
	s.Equal(int64(750), res.Balance)
}

func (s *VaultTestSuite) TestZeroDeltaIsABalanceRead() {
	_, err := s.svc.Credit(context.Background(), testSecret, "p1", 500)
	s.Require().NoError(err)

	first, err := s.svc.Credit(context.Background(), testSecret, "p1", 0)
	s.Require().NoError(err)
	second, err := s.svc.Credit(context.Background(), testSecret, "p1", 0)
	s.Require().NoError(err)

	s.Equal(int64(500), first.Balance)
	s.Equal(first.Balance, second.Balance)
}

func (s *VaultTestSuite) TestNegativeDeltaDebits() {
	_, err := s.svc.Credit(context.Background(), testSecret, "p1", 500)
	s.Require().NoError(err)

	res, err := s.svc.Credit(context.Background(), testSecret, "p1", -200)
	s.Require().NoError(err)
	s.Equal(int64(300), res.Balance)
}

func (s *VaultTestSuite) TestUnderflowRejected() {
	_, err := s.svc.Credit(context.Background(), testSecret, "p1", 100)
	s.Require().NoError(err)

	_, err = s.svc.Credit(context.Background(), testSecret, "p1", -200)
	s.ErrorIs(err, model.ErrBalanceUnderflow)

	// The balance must be unchanged after the rejected debit.
	res, err := s.svc.Credit(context.Background(), testSecret, "p1", 0)
	s.Require().NoError(err)
	s.Equal(int64(100), res.Balance)
}

func TestCheckerVerify(t *testing.T) {
	hash, err := HashSecret("hunter2")
	require.NoError(t, err)

	checker := NewChecker(hash)
	assert.NoError(t, checker.Verify("hunter2"))
	assert.ErrorIs(t, checker.Verify("hunter3"), ErrInvalidCredential)
	assert.ErrorIs(t, checker.Verify(""), ErrInvalidCredential)
}

func TestCheckerEmptyHashRejectsEverything(t *testing.T) {
	checker := NewChecker("")
	assert.ErrorIs(t, checker.Verify("anything"), ErrInvalidCredential)
}
