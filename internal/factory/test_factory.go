package factory

import (
	"time"

	"github.com/tlindqvist/wordparty/internal/dependencies/mocks"
	"github.com/tlindqvist/wordparty/internal/model"
	"github.com/tlindqvist/wordparty/internal/storage/memory"
	"github.com/tlindqvist/wordparty/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestWords loads a small word list for testing. With the mock
// random queue empty, PickWord always returns the first word.
func (t *TestApp) LoadTestWords() error {
	words := []model.Word{
		"about", "brave", "crane", "doubt", "eagle",
		"flame", "grape", "house", "irony", "jolly",
		"knack", "lemon", "mango", "noble", "ocean",
		"piano", "query", "roast", "slate", "trace",
	}
	return t.WordsService.LoadWords(words)
}
