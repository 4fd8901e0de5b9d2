package response

import (
	"github.com/samber/lo"

	"github.com/tlindqvist/wordparty/internal/model"
)

// PartyMember represents a party member in API responses
type PartyMember struct {
	Name     string  `json:"name"`
	Score    int     `json:"score"`
	Finished bool    `json:"finished"`
	IsHost   bool    `json:"is_host"`
	Lost     bool    `json:"lost,omitempty"`
	Total    float64 `json:"total_time,omitempty"`
}

// Party represents a party in API responses. The secret word is exposed
// only while a round is running, matching the broadcast a round start
// already sends to every member.
type Party struct {
	Code    string        `json:"code"`
	Started bool          `json:"started"`
	Word    string        `json:"word,omitempty"`
	Members []PartyMember `json:"members"`
}

// PartyFromModel converts a model.Party to a response Party
func PartyFromModel(p *model.Party) Party {
	members := lo.Map(p.Members, func(m model.PartyMember, _ int) PartyMember {
		return PartyMember{
			Name:     m.Name,
			Score:    m.Score,
			Finished: m.Finished,
			IsHost:   m.ConnID == p.HostID,
			Lost:     m.Lost,
			Total:    m.TotalTime,
		}
	})

	resp := Party{
		Code:    string(p.Code),
		Started: p.Started,
		Members: members,
	}
	if p.Started {
		resp.Word = string(p.Word)
	}
	return resp
}

// JoinResponse is the response for joining a party
type JoinResponse struct {
	ConnectionID string `json:"connection_id"`
	Party        Party  `json:"party"`
}
