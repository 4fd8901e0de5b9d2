package party

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tlindqvist/wordparty/internal/dependencies/mocks"
	"github.com/tlindqvist/wordparty/internal/model"
	"github.com/tlindqvist/wordparty/internal/services/feedback"
	"github.com/tlindqvist/wordparty/internal/services/scoring"
	"github.com/tlindqvist/wordparty/internal/services/words"
	"github.com/tlindqvist/wordparty/internal/storage/memory"
	"github.com/tlindqvist/wordparty/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	words      *words.Service
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.words = words.New(s.storage, s.random)
	logger := testutil.NopLogger()
	s.controller = NewController(s.storage, s.words, feedback.New(), scoring.New(), s.clock, logger)
	s.ctx = context.Background()

	// With the random queue empty, PickWord returns "crane"
	err := s.words.LoadWords([]model.Word{"crane", "slate", "trace"})
	s.Require().NoError(err)
}

func (s *ControllerSuite) mustJoin(code, connID, name string) []model.Event {
	events, err := s.controller.Join(s.ctx, model.PartyCode(code), model.ConnectionID(connID), name)
	s.Require().NoError(err)
	return events
}

func (s *ControllerSuite) mustStart(code, connID string) []model.Event {
	events, err := s.controller.Start(s.ctx, model.PartyCode(code), model.ConnectionID(connID))
	s.Require().NoError(err)
	return events
}

func (s *ControllerSuite) getParty(code string) *model.Party {
	party, err := s.storage.GetParty(s.ctx, model.PartyCode(code))
	s.Require().NoError(err)
	return party
}

func eventsOfType(events []model.Event, t model.EventType) []model.Event {
	var out []model.Event
	for _, e := range events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Join tests

func (s *ControllerSuite) TestJoinCreatesPartyWithFirstJoinerAsHost() {
	events := s.mustJoin("ROOM1", "conn-1", "alice")

	party := s.getParty("ROOM1")
	s.Equal(model.ConnectionID("conn-1"), party.HostID)
	s.Equal(model.Word("crane"), party.Word)
	s.False(party.Started)
	s.Require().Len(party.Members, 1)
	s.Equal("alice", party.Members[0].Name)

	// No round is running, so no word is delivered
	s.Empty(eventsOfType(events, model.EventStart))
	s.Len(eventsOfType(events, model.EventMessage), 1)
	s.Len(eventsOfType(events, model.EventLeaderboard), 1)
}

func (s *ControllerSuite) TestJoinExistingPartyKeepsHost() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustJoin("ROOM1", "conn-2", "bob")

	party := s.getParty("ROOM1")
	s.Equal(model.ConnectionID("conn-1"), party.HostID)
	s.Len(party.Members, 2)
	s.Equal("bob", party.Members[1].Name)
}

func (s *ControllerSuite) TestJoinMidRoundDeliversWordToJoinerOnly() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustStart("ROOM1", "conn-1")

	events := s.mustJoin("ROOM1", "conn-2", "bob")

	starts := eventsOfType(events, model.EventStart)
	s.Require().Len(starts, 1)
	s.Equal(model.ConnectionID("conn-2"), starts[0].To)
	s.Equal(model.StartPayload{Word: "crane"}, starts[0].Payload)
}

func (s *ControllerSuite) TestJoinWithSameConnectionReplacesMember() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustJoin("ROOM1", "conn-1", "alicia")

	party := s.getParty("ROOM1")
	s.Require().Len(party.Members, 1)
	s.Equal("alicia", party.Members[0].Name)
}

// Start and restart tests

func (s *ControllerSuite) TestStartBroadcastsWordAndMarksRoundRunning() {
	s.mustJoin("ROOM1", "conn-1", "alice")

	s.clock.Advance(time.Minute)
	events := s.mustStart("ROOM1", "conn-1")

	party := s.getParty("ROOM1")
	s.True(party.Started)
	s.Equal(s.clock.Now(), party.StartedAt)

	starts := eventsOfType(events, model.EventStart)
	s.Require().Len(starts, 1)
	s.Equal(model.ConnectionID(""), starts[0].To)
	s.Equal(model.StartPayload{Word: "crane"}, starts[0].Payload)
}

func (s *ControllerSuite) TestStartPicksFreshWord() {
	s.mustJoin("ROOM1", "conn-1", "alice")

	s.random.QueueIntn(1)
	s.mustStart("ROOM1", "conn-1")

	s.Equal(model.Word("slate"), s.getParty("ROOM1").Word)
}

func (s *ControllerSuite) TestStartResetsMemberRoundState() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustStart("ROOM1", "conn-1")

	_, err := s.controller.Finish(s.ctx, "ROOM1", "conn-1", 3, s.clock.Now().UnixMilli(), false)
	s.Require().NoError(err)

	s.mustStart("ROOM1", "conn-1")

	party := s.getParty("ROOM1")
	m := party.Members[0]
	s.Equal(0, m.Score)
	s.False(m.Finished)
	s.Equal(0.0, m.TotalTime)
	s.False(m.Lost)
}

func (s *ControllerSuite) TestStartByNonHostRejected() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustJoin("ROOM1", "conn-2", "bob")

	_, err := s.controller.Start(s.ctx, "ROOM1", "conn-2")
	s.ErrorIs(err, model.ErrNotHost)
	s.False(s.getParty("ROOM1").Started)
}

func (s *ControllerSuite) TestStartUnknownParty() {
	_, err := s.controller.Start(s.ctx, "NOPE", "conn-1")
	s.ErrorIs(err, model.ErrPartyNotFound)
}

func (s *ControllerSuite) TestRestartEmitsRestartEvent() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustStart("ROOM1", "conn-1")

	s.clock.Advance(time.Minute)
	events, err := s.controller.Restart(s.ctx, "ROOM1", "conn-1")
	s.Require().NoError(err)

	restarts := eventsOfType(events, model.EventRestart)
	s.Require().Len(restarts, 1)
	s.Equal(model.StartPayload{Word: "crane"}, restarts[0].Payload)

	party := s.getParty("ROOM1")
	s.True(party.Started)
	s.Equal(s.clock.Now(), party.StartedAt)
}

// Guess tests

func (s *ControllerSuite) TestGuessBroadcastsServerComputedFeedback() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustJoin("ROOM1", "conn-2", "bob")
	s.mustStart("ROOM1", "conn-1")

	events, err := s.controller.Guess(s.ctx, "ROOM1", "conn-2", "caner")
	s.Require().NoError(err)

	s.Require().Len(events, 1)
	s.Equal(model.EventFeedback, events[0].Type)
	s.Equal(model.ConnectionID(""), events[0].To)

	payload, ok := events[0].Payload.(model.FeedbackPayload)
	s.Require().True(ok)
	s.Equal(model.Word("caner"), payload.Guess)
	s.Equal("bob", payload.From)
	// Word is "crane": c hits, a/n/e/r are present in other positions
	s.Equal(model.Feedback{
		model.MarkHit, model.MarkPresent, model.MarkPresent,
		model.MarkPresent, model.MarkPresent,
	}, payload.Feedback)
}

func (s *ControllerSuite) TestGuessBeforeRoundStarts() {
	s.mustJoin("ROOM1", "conn-1", "alice")

	_, err := s.controller.Guess(s.ctx, "ROOM1", "conn-1", "crane")
	s.ErrorIs(err, model.ErrRoundNotStarted)
}

func (s *ControllerSuite) TestGuessFromNonMember() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustStart("ROOM1", "conn-1")

	_, err := s.controller.Guess(s.ctx, "ROOM1", "conn-9", "crane")
	s.ErrorIs(err, model.ErrNotInParty)
}

func (s *ControllerSuite) TestGuessInvalidWord() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustStart("ROOM1", "conn-1")

	_, err := s.controller.Guess(s.ctx, "ROOM1", "conn-1", "nope")
	s.ErrorIs(err, model.ErrInvalidGuess)
}

// Finish and settlement tests

func (s *ControllerSuite) TestFinishComputesTotalTime() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustStart("ROOM1", "conn-1")
	startMillis := s.getParty("ROOM1").StartedAt.UnixMilli()

	// 5 seconds elapsed plus 2 tries at 10 seconds each
	_, err := s.controller.Finish(s.ctx, "ROOM1", "conn-1", 2, startMillis+5000, false)
	s.Require().NoError(err)

	m := s.getParty("ROOM1").Members[0]
	s.True(m.Finished)
	s.Equal(25.0, m.TotalTime)
}

func (s *ControllerSuite) TestFinishTwiceRejected() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustJoin("ROOM1", "conn-2", "bob")
	s.mustStart("ROOM1", "conn-1")

	_, err := s.controller.Finish(s.ctx, "ROOM1", "conn-1", 1, s.clock.Now().UnixMilli(), false)
	s.Require().NoError(err)

	_, err = s.controller.Finish(s.ctx, "ROOM1", "conn-1", 2, s.clock.Now().UnixMilli(), false)
	s.ErrorIs(err, model.ErrAlreadyFinished)
}

func (s *ControllerSuite) TestFinishBeforeRoundStarts() {
	s.mustJoin("ROOM1", "conn-1", "alice")

	_, err := s.controller.Finish(s.ctx, "ROOM1", "conn-1", 1, s.clock.Now().UnixMilli(), false)
	s.ErrorIs(err, model.ErrRoundNotStarted)
}

func (s *ControllerSuite) TestLastFinishSettlesRound() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustJoin("ROOM1", "conn-2", "bob")
	s.mustStart("ROOM1", "conn-1")
	startMillis := s.getParty("ROOM1").StartedAt.UnixMilli()

	// alice: 5s elapsed, no tries -> 5.0; bob: 8s elapsed -> 8.0
	_, err := s.controller.Finish(s.ctx, "ROOM1", "conn-1", 0, startMillis+5000, false)
	s.Require().NoError(err)
	s.True(s.getParty("ROOM1").Started)

	events, err := s.controller.Finish(s.ctx, "ROOM1", "conn-2", 0, startMillis+8000, false)
	s.Require().NoError(err)

	party := s.getParty("ROOM1")
	s.False(party.Started)
	s.Equal(5, party.GetMember("conn-1").Score)
	s.Equal(3, party.GetMember("conn-2").Score)

	boards := eventsOfType(events, model.EventLeaderboard)
	s.Require().Len(boards, 1)
	payload, ok := boards[0].Payload.(model.LeaderboardPayload)
	s.Require().True(ok)
	s.Equal([]model.LeaderboardEntry{
		{Name: "alice", Score: 5},
		{Name: "bob", Score: 3},
	}, payload.Players)
}

func (s *ControllerSuite) TestLostPlayerRanksLast() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustJoin("ROOM1", "conn-2", "bob")
	s.mustStart("ROOM1", "conn-1")
	startMillis := s.getParty("ROOM1").StartedAt.UnixMilli()

	// alice forfeits early; bob takes much longer but still wins
	_, err := s.controller.Finish(s.ctx, "ROOM1", "conn-1", 6, startMillis+1000, true)
	s.Require().NoError(err)

	_, err = s.controller.Finish(s.ctx, "ROOM1", "conn-2", 5, startMillis+200000, false)
	s.Require().NoError(err)

	party := s.getParty("ROOM1")
	s.Equal(5, party.GetMember("conn-2").Score)
	s.Equal(3, party.GetMember("conn-1").Score)
}

// Disconnect tests

func (s *ControllerSuite) TestDisconnectRemovesMember() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustJoin("ROOM1", "conn-2", "bob")

	events, err := s.controller.Disconnect(s.ctx, "ROOM1", "conn-2")
	s.Require().NoError(err)

	party := s.getParty("ROOM1")
	s.Require().Len(party.Members, 1)
	s.Equal("alice", party.Members[0].Name)
	s.NotEmpty(eventsOfType(events, model.EventMessage))
	s.Len(eventsOfType(events, model.EventLeaderboard), 1)
}

func (s *ControllerSuite) TestDisconnectLastMemberDeletesParty() {
	s.mustJoin("ROOM1", "conn-1", "alice")

	events, err := s.controller.Disconnect(s.ctx, "ROOM1", "conn-1")
	s.Require().NoError(err)
	s.Empty(events)

	_, err = s.storage.GetParty(s.ctx, "ROOM1")
	s.ErrorIs(err, model.ErrPartyNotFound)
}

func (s *ControllerSuite) TestDisconnectHostReelectsEarliestJoiner() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustJoin("ROOM1", "conn-2", "bob")
	s.mustJoin("ROOM1", "conn-3", "carol")

	_, err := s.controller.Disconnect(s.ctx, "ROOM1", "conn-1")
	s.Require().NoError(err)

	s.Equal(model.ConnectionID("conn-2"), s.getParty("ROOM1").HostID)
}

func (s *ControllerSuite) TestDisconnectOfLastUnfinishedPlayerSettles() {
	s.mustJoin("ROOM1", "conn-1", "alice")
	s.mustJoin("ROOM1", "conn-2", "bob")
	s.mustStart("ROOM1", "conn-1")
	startMillis := s.getParty("ROOM1").StartedAt.UnixMilli()

	_, err := s.controller.Finish(s.ctx, "ROOM1", "conn-1", 0, startMillis+5000, false)
	s.Require().NoError(err)

	// bob leaves without finishing; alice should not wait forever
	_, err = s.controller.Disconnect(s.ctx, "ROOM1", "conn-2")
	s.Require().NoError(err)

	party := s.getParty("ROOM1")
	s.False(party.Started)
	s.Equal(5, party.GetMember("conn-1").Score)
}

func (s *ControllerSuite) TestDisconnectUnknownMember() {
	s.mustJoin("ROOM1", "conn-1", "alice")

	_, err := s.controller.Disconnect(s.ctx, "ROOM1", "conn-9")
	s.ErrorIs(err, model.ErrNotInParty)
}

// IsIgnorable tests

func (s *ControllerSuite) TestIsIgnorable() {
	s.True(IsIgnorable(model.ErrPartyNotFound))
	s.True(IsIgnorable(model.ErrNotInParty))
	s.True(IsIgnorable(model.ErrNotHost))
	s.True(IsIgnorable(model.ErrRoundNotStarted))
	s.True(IsIgnorable(model.ErrAlreadyFinished))
	s.False(IsIgnorable(model.ErrInvalidGuess))
	s.False(IsIgnorable(model.ErrWordListEmpty))
}
