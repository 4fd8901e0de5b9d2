package words

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/tlindqvist/wordparty/internal/dependencies/random"
	"github.com/tlindqvist/wordparty/internal/model"
	"github.com/tlindqvist/wordparty/internal/services/feedback"
	"github.com/tlindqvist/wordparty/internal/storage"
)

// Service supplies the secret words for rounds from a preloaded set of
// validated five-letter lowercase words
type Service struct {
	storage storage.Storage
	random  random.Random

	mu    sync.RWMutex
	words []model.Word
}

// New creates a new words Service
func New(storage storage.Storage, random random.Random) *Service {
	return &Service{
		storage: storage,
		random:  random,
	}
}

// LoadFromStorage loads the word list from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetWordList(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads words from a file (one word per line). Lines that
// are not exactly five lowercase letters after trimming are skipped.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []model.Word
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := model.Word(strings.ToLower(strings.TrimSpace(scanner.Text())))
		if feedback.Validate(word) == nil {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(words) == 0 {
		return model.ErrWordListEmpty
	}

	// Save to storage for future use
	if err := s.storage.SaveWordList(ctx, words); err != nil {
		return err
	}

	return s.loadWords(words)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []model.Word) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []model.Word) error {
	valid := make([]model.Word, 0, len(words))
	for _, w := range words {
		if feedback.Validate(w) == nil {
			valid = append(valid, w)
		}
	}
	if len(valid) == 0 {
		return model.ErrWordListEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = valid
	return nil
}

// PickWord returns a uniformly random word from the loaded set
func (s *Service) PickWord() (model.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.words) == 0 {
		return "", model.ErrWordListEmpty
	}
	return s.words[s.random.Intn(len(s.words))], nil
}

// WordCount returns the number of loaded words
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Interface for dependency injection
type ServiceInterface interface {
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadWords(words []model.Word) error
	PickWord() (model.Word, error)
	WordCount() int
}

var _ ServiceInterface = (*Service)(nil)
