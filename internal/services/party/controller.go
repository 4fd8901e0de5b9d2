package party

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"github.com/tlindqvist/wordparty/internal/dependencies/clock"
	"github.com/tlindqvist/wordparty/internal/model"
	"github.com/tlindqvist/wordparty/internal/services/feedback"
	"github.com/tlindqvist/wordparty/internal/services/scoring"
	"github.com/tlindqvist/wordparty/internal/services/words"
	"github.com/tlindqvist/wordparty/internal/storage"
)

// Controller owns the party round lifecycle: joins, round start and
// restart, guesses, finishes, settlement and disconnect reconciliation.
// Every operation returns the outbound events it produced; delivery is
// the transport's job.
type Controller struct {
	storage  storage.Storage
	words    *words.Service
	feedback *feedback.Service
	scoring  *scoring.Service
	clock    clock.Clock
	logger   *slog.Logger

	// One mutex per party code. Handlers run on arbitrary goroutines,
	// so party mutations are serialized per party.
	mu    sync.Mutex
	locks map[model.PartyCode]*sync.Mutex
}

// NewController creates a new party Controller
func NewController(
	storage storage.Storage,
	wordsService *words.Service,
	feedbackService *feedback.Service,
	scoringService *scoring.Service,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  storage,
		words:    wordsService,
		feedback: feedbackService,
		scoring:  scoringService,
		clock:    clock,
		logger:   logger,
		locks:    make(map[model.PartyCode]*sync.Mutex),
	}
}

// partyLock returns the mutex serializing mutations of one party
func (c *Controller) partyLock(code model.PartyCode) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[code]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[code] = lock
	}
	return lock
}

// IsIgnorable reports whether an error is one the transport edge drops
// silently: stray or late client messages referencing a missing party or
// player, and unauthorized start attempts, produce no response at all.
func IsIgnorable(err error) bool {
	return errors.Is(err, model.ErrPartyNotFound) ||
		errors.Is(err, model.ErrNotInParty) ||
		errors.Is(err, model.ErrNotHost) ||
		errors.Is(err, model.ErrRoundNotStarted) ||
		errors.Is(err, model.ErrAlreadyFinished)
}

// GetParty retrieves a party by code
func (c *Controller) GetParty(ctx context.Context, code model.PartyCode) (*model.Party, error) {
	return c.storage.GetParty(ctx, code)
}

// Join adds a player to a party, creating the party on first join. The
// first joiner becomes the host. Joining mid-round delivers the current
// word to the joining connection only, so late joiners can catch up.
func (c *Controller) Join(ctx context.Context, code model.PartyCode, connID model.ConnectionID, name string) ([]model.Event, error) {
	lock := c.partyLock(code)
	lock.Lock()
	defer lock.Unlock()

	now := c.clock.Now()

	party, err := c.storage.GetParty(ctx, code)
	if errors.Is(err, model.ErrPartyNotFound) {
		word, pickErr := c.words.PickWord()
		if pickErr != nil {
			return nil, pickErr
		}
		party = &model.Party{
			Code:      code,
			Word:      word,
			HostID:    connID,
			Started:   false,
			Members:   []model.PartyMember{},
			CreatedAt: now,
		}
		c.logger.Info("party created",
			slog.String("party", string(code)),
			slog.String("host", string(connID)),
		)
	} else if err != nil {
		return nil, err
	}

	member := model.PartyMember{
		ConnID:   connID,
		Name:     name,
		JoinedAt: now,
	}
	if existing := party.GetMember(connID); existing != nil {
		*existing = member
	} else {
		party.Members = append(party.Members, member)
	}
	party.UpdatedAt = now

	if err := c.storage.SaveParty(ctx, party); err != nil {
		return nil, err
	}

	var events []model.Event
	if party.Started {
		events = append(events, model.Event{
			Type:    model.EventStart,
			To:      connID,
			Payload: model.StartPayload{Word: party.Word},
		})
	}
	events = append(events,
		c.messageEvent(fmt.Sprintf("%s joined party %s", name, code)),
		c.leaderboardEvent(party),
	)
	return events, nil
}

// Start begins a new round. Only the host may start; a fresh word is
// picked and every member's round state is reset.
func (c *Controller) Start(ctx context.Context, code model.PartyCode, connID model.ConnectionID) ([]model.Event, error) {
	return c.beginRound(ctx, code, connID, model.EventStart)
}

// Restart behaves exactly like Start: fresh word, reset scores, round in
// progress with a new start time. Clients receive a restart event so
// they can clear their boards.
func (c *Controller) Restart(ctx context.Context, code model.PartyCode, connID model.ConnectionID) ([]model.Event, error) {
	return c.beginRound(ctx, code, connID, model.EventRestart)
}

func (c *Controller) beginRound(ctx context.Context, code model.PartyCode, connID model.ConnectionID, eventType model.EventType) ([]model.Event, error) {
	lock := c.partyLock(code)
	lock.Lock()
	defer lock.Unlock()

	party, err := c.storage.GetParty(ctx, code)
	if err != nil {
		return nil, err
	}
	if connID != party.HostID {
		return nil, model.ErrNotHost
	}

	word, err := c.words.PickWord()
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	party.Word = word
	party.Started = true
	party.StartedAt = now
	party.UpdatedAt = now
	for i := range party.Members {
		party.Members[i].Score = 0
		party.Members[i].Finished = false
		party.Members[i].TotalTime = 0
		party.Members[i].Lost = false
	}

	if err := c.storage.SaveParty(ctx, party); err != nil {
		return nil, err
	}

	c.logger.Info("round started",
		slog.String("party", string(code)),
		slog.Int("players", len(party.Members)),
	)

	return []model.Event{
		{Type: eventType, Payload: model.StartPayload{Word: word}},
		c.leaderboardEvent(party),
	}, nil
}

// Guess handles a player's guess during a round. Feedback is computed
// server-side and broadcast to the whole party.
func (c *Controller) Guess(ctx context.Context, code model.PartyCode, connID model.ConnectionID, guess model.Word) ([]model.Event, error) {
	lock := c.partyLock(code)
	lock.Lock()
	defer lock.Unlock()

	party, err := c.storage.GetParty(ctx, code)
	if err != nil {
		return nil, err
	}
	if !party.Started {
		return nil, model.ErrRoundNotStarted
	}
	member := party.GetMember(connID)
	if member == nil {
		// Guesses can arrive after a disconnect already removed the player
		return nil, model.ErrNotInParty
	}

	fb, err := c.feedback.Compute(guess, party.Word)
	if err != nil {
		return nil, err
	}

	return []model.Event{
		{
			Type: model.EventFeedback,
			Payload: model.FeedbackPayload{
				Guess:    guess,
				Feedback: fb,
				From:     member.Name,
			},
		},
	}, nil
}

// Finish records a player's round result. The ranking metric is elapsed
// time in seconds plus a fixed penalty per guess attempt; a lost round
// guarantees last place. When the last member finishes, the round is
// settled: scores are assigned by rank and the round ends.
func (c *Controller) Finish(ctx context.Context, code model.PartyCode, connID model.ConnectionID, tries int, finishTime int64, lost bool) ([]model.Event, error) {
	lock := c.partyLock(code)
	lock.Lock()
	defer lock.Unlock()

	party, err := c.storage.GetParty(ctx, code)
	if err != nil {
		return nil, err
	}
	if !party.Started {
		return nil, model.ErrRoundNotStarted
	}
	member := party.GetMember(connID)
	if member == nil {
		return nil, model.ErrNotInParty
	}
	if member.Finished {
		return nil, model.ErrAlreadyFinished
	}

	member.Finished = true
	member.Lost = lost
	if !lost {
		elapsed := float64(finishTime-party.StartedAt.UnixMilli()) / 1000
		member.TotalTime = elapsed + float64(tries)*scoring.GuessPenaltySeconds
	}
	party.UpdatedAt = c.clock.Now()

	events := []model.Event{
		c.messageEvent(fmt.Sprintf("%s finished the round", member.Name)),
	}
	if party.AllFinished() {
		events = append(events, c.settle(party)...)
	}

	if err := c.storage.SaveParty(ctx, party); err != nil {
		return nil, err
	}
	return events, nil
}

// settle assigns scores by rank and ends the round. Caller holds the
// party lock and saves afterwards.
func (c *Controller) settle(party *model.Party) []model.Event {
	results := c.scoring.Settle(party.Members)
	for _, r := range results {
		if m := party.GetMember(r.ConnID); m != nil {
			m.Score = r.Score
		}
	}
	party.Started = false

	c.logger.Info("round settled",
		slog.String("party", string(party.Code)),
		slog.Int("players", len(results)),
	)

	entries := lo.Map(results, func(r scoring.RankResult, _ int) model.LeaderboardEntry {
		return model.LeaderboardEntry{Name: r.Name, Score: r.Score}
	})
	return []model.Event{
		c.messageEvent(fmt.Sprintf("Round over in party %s", party.Code)),
		{Type: model.EventLeaderboard, Payload: model.LeaderboardPayload{Players: entries}},
	}
}

// Disconnect removes a connection's player from the party. The party is
// deleted once empty; otherwise the earliest remaining joiner inherits
// the host role if the host left, and the round settles if the departed
// player was the last one unfinished.
func (c *Controller) Disconnect(ctx context.Context, code model.PartyCode, connID model.ConnectionID) ([]model.Event, error) {
	lock := c.partyLock(code)
	lock.Lock()
	defer lock.Unlock()

	party, err := c.storage.GetParty(ctx, code)
	if err != nil {
		return nil, err
	}
	member := party.GetMember(connID)
	if member == nil {
		return nil, model.ErrNotInParty
	}
	name := member.Name

	for i := range party.Members {
		if party.Members[i].ConnID == connID {
			party.Members = append(party.Members[:i], party.Members[i+1:]...)
			break
		}
	}

	if len(party.Members) == 0 {
		if err := c.storage.DeleteParty(ctx, code); err != nil {
			return nil, err
		}
		c.logger.Info("party deleted", slog.String("party", string(code)))
		return nil, nil
	}

	events := []model.Event{
		c.messageEvent(fmt.Sprintf("%s has left the game", name)),
	}

	if party.HostID == connID {
		party.HostID = party.Members[0].ConnID
		events = append(events, c.messageEvent(
			fmt.Sprintf("%s is now the host", party.Members[0].Name)))
	}

	if party.Started && party.AllFinished() {
		events = append(events, c.settle(party)...)
	} else {
		events = append(events, c.leaderboardEvent(party))
	}

	party.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveParty(ctx, party); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Controller) messageEvent(text string) model.Event {
	return model.Event{
		Type:    model.EventMessage,
		Payload: model.MessagePayload{Text: text},
	}
}

func (c *Controller) leaderboardEvent(party *model.Party) model.Event {
	return model.Event{
		Type: model.EventLeaderboard,
		Payload: model.LeaderboardPayload{
			Players: c.scoring.Leaderboard(party.Members),
		},
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	GetParty(ctx context.Context, code model.PartyCode) (*model.Party, error)
	Join(ctx context.Context, code model.PartyCode, connID model.ConnectionID, name string) ([]model.Event, error)
	Start(ctx context.Context, code model.PartyCode, connID model.ConnectionID) ([]model.Event, error)
	Restart(ctx context.Context, code model.PartyCode, connID model.ConnectionID) ([]model.Event, error)
	Guess(ctx context.Context, code model.PartyCode, connID model.ConnectionID, guess model.Word) ([]model.Event, error)
	Finish(ctx context.Context, code model.PartyCode, connID model.ConnectionID, tries int, finishTime int64, lost bool) ([]model.Event, error)
	Disconnect(ctx context.Context, code model.PartyCode, connID model.ConnectionID) ([]model.Event, error)
}

var _ ControllerInterface = (*Controller)(nil)
