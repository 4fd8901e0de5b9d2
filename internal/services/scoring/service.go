package scoring

import (
	"sort"

	"github.com/samber/lo"

	"github.com/tlindqvist/wordparty/internal/model"
)

// GuessPenaltySeconds is the fixed penalty folded into a player's total
// time for every guess attempt they used
const GuessPenaltySeconds = 10

// pointsByRank is the score table indexed by 0-based rank; ranks beyond
// the table score zero
var pointsByRank = []int{5, 3, 2, 1}

// Service ranks finished rounds into scored leaderboards
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// RankResult is one member's placement after settlement
type RankResult struct {
	ConnID model.ConnectionID
	Name   string
	Score  int
}

// Settle ranks members by ascending total time and assigns scores from
// the points table. Lost players always rank after every finishing
// player. Ties break by join order, then connection ID, so the ranking
// is deterministic regardless of map iteration order upstream.
func (s *Service) Settle(members []model.PartyMember) []RankResult {
	ranked := make([]model.PartyMember, len(members))
	copy(ranked, members)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Lost != b.Lost {
			return !a.Lost
		}
		if !a.Lost && a.TotalTime != b.TotalTime {
			return a.TotalTime < b.TotalTime
		}
		if !a.JoinedAt.Equal(b.JoinedAt) {
			return a.JoinedAt.Before(b.JoinedAt)
		}
		return a.ConnID < b.ConnID
	})

	results := make([]RankResult, len(ranked))
	for rank, m := range ranked {
		score := 0
		if rank < len(pointsByRank) {
			score = pointsByRank[rank]
		}
		results[rank] = RankResult{
			ConnID: m.ConnID,
			Name:   m.Name,
			Score:  score,
		}
	}
	return results
}

// Leaderboard renders the current standings for broadcast: score
// descending, join order as the tie-break
func (s *Service) Leaderboard(members []model.PartyMember) []model.LeaderboardEntry {
	standing := make([]model.PartyMember, len(members))
	copy(standing, members)

	sort.SliceStable(standing, func(i, j int) bool {
		if standing[i].Score != standing[j].Score {
			return standing[i].Score > standing[j].Score
		}
		return standing[i].JoinedAt.Before(standing[j].JoinedAt)
	})

	return lo.Map(standing, func(m model.PartyMember, _ int) model.LeaderboardEntry {
		return model.LeaderboardEntry{
			Name:  m.Name,
			Score: m.Score,
		}
	})
}

// Interface for dependency injection
type ServiceInterface interface {
	Settle(members []model.PartyMember) []RankResult
	Leaderboard(members []model.PartyMember) []model.LeaderboardEntry
}

var _ ServiceInterface = (*Service)(nil)
