package factory

import (
	"time"

	"github.com/dragonspire/sentinel/internal/dependencies/mocks"
	"github.com/dragonspire/sentinel/internal/services/session"
	"github.com/dragonspire/sentinel/internal/services/vault"
	"github.com/dragonspire/sentinel/internal/storage/memory"
	"github.com/dragonspire/sentinel/internal/testutil"
)

// TestSecret is the internal shared secret wired into NewTestApp
const TestSecret = "test-internal-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom

	// Memory is the raw in-memory store for seeding accounts directly
	Memory *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	hash, err := vault.HashSecret(TestSecret)
	if err != nil {
		panic(err)
	}

	app := newWithDependencies(store, mockClock, mockRandom, session.DefaultConfig(), hash, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}
