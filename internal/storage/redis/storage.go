package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tlindqvist/wordparty/internal/model"
	"github.com/tlindqvist/wordparty/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Party operations

func (s *Storage) SaveParty(ctx context.Context, party *model.Party) error {
	data, err := json.Marshal(party)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, partyKey(party.Code), data, s.cfg.PartyTTL).Err()
}

func (s *Storage) GetParty(ctx context.Context, code model.PartyCode) (*model.Party, error) {
	data, err := s.client.Get(ctx, partyKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPartyNotFound
		}
		return nil, err
	}

	var party model.Party
	if err := json.Unmarshal(data, &party); err != nil {
		return nil, err
	}
	return &party, nil
}

func (s *Storage) DeleteParty(ctx context.Context, code model.PartyCode) error {
	return s.client.Del(ctx, partyKey(code)).Err()
}

func (s *Storage) PartyExists(ctx context.Context, code model.PartyCode) (bool, error) {
	n, err := s.client.Exists(ctx, partyKey(code)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Word list operations

func (s *Storage) SaveWordList(ctx context.Context, words []model.Word) error {
	data, err := json.Marshal(words)
	if err != nil {
		return err
	}
	// Word list lives as long as the deployment; no TTL
	return s.client.Set(ctx, wordListKey(), data, 0).Err()
}

func (s *Storage) GetWordList(ctx context.Context) ([]model.Word, error) {
	data, err := s.client.Get(ctx, wordListKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrWordListNotLoaded
		}
		return nil, err
	}

	var words []model.Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, err
	}
	return words, nil
}
