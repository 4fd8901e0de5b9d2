package storage

import (
	"context"

	"github.com/tlindqvist/wordparty/internal/model"
)

// Storage defines the interface for data persistence.
// Parties are explicitly deleted once their last member leaves, so
// implementations never accumulate empty records.
type Storage interface {
	// Party operations
	SaveParty(ctx context.Context, party *model.Party) error
	GetParty(ctx context.Context, code model.PartyCode) (*model.Party, error)
	DeleteParty(ctx context.Context, code model.PartyCode) error
	PartyExists(ctx context.Context, code model.PartyCode) (bool, error)

	// Word list operations
	SaveWordList(ctx context.Context, words []model.Word) error
	GetWordList(ctx context.Context) ([]model.Word, error)
}
