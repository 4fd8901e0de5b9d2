package memory

import (
	"context"
	"sync"

	"github.com/tlindqvist/wordparty/internal/model"
	"github.com/tlindqvist/wordparty/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	parties  map[model.PartyCode]*model.Party
	wordList []model.Word
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		parties: make(map[model.PartyCode]*model.Party),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Party operations

func (s *Storage) SaveParty(ctx context.Context, party *model.Party) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parties[party.Code] = party
	return nil
}

func (s *Storage) GetParty(ctx context.Context, code model.PartyCode) (*model.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	party, ok := s.parties[code]
	if !ok {
		return nil, model.ErrPartyNotFound
	}
	return party, nil
}

func (s *Storage) DeleteParty(ctx context.Context, code model.PartyCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.parties, code)
	return nil
}

func (s *Storage) PartyExists(ctx context.Context, code model.PartyCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.parties[code]
	return ok, nil
}

// Word list operations

func (s *Storage) SaveWordList(ctx context.Context, words []model.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wordList = make([]model.Word, len(words))
	copy(s.wordList, words)
	return nil
}

func (s *Storage) GetWordList(ctx context.Context) ([]model.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.wordList == nil {
		return nil, model.ErrWordListNotLoaded
	}
	result := make([]model.Word, len(s.wordList))
	copy(result, s.wordList)
	return result, nil
}
