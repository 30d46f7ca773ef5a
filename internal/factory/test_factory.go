package factory

import (
	"time"

	"github.com/quizparty/quizparty-go/internal/dependencies/mocks"
	"github.com/quizparty/quizparty-go/internal/questionbank"
	"github.com/quizparty/quizparty-go/internal/storage/memory"
	"github.com/quizparty/quizparty-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked
// dependencies and the seed question bank loaded
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger())
	app.Bank.Load(questionbank.SeedCategories(), questionbank.SeedQuestions())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
