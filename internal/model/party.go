package model

import "time"

// PartyCode is the human-chosen identifier players share to meet in a party.
// Codes are used exactly as the caller provides them; no normalization.
type PartyCode string

// ConnectionID is the opaque stable identifier for one active connection
type ConnectionID string

// PartyMember is a player's membership in a party. Score, Finished,
// TotalTime and Lost are round-scoped and reset at every round start.
type PartyMember struct {
	ConnID   ConnectionID
	Name     string // display name, not unique
	Score    int
	Finished bool
	// TotalTime is the ranking metric in seconds: elapsed solve time plus
	// the per-guess penalty. Meaningful only when Finished and not Lost.
	TotalTime float64
	// Lost marks a forfeited round; lost players always rank last.
	Lost     bool
	JoinedAt time.Time
}

// Party is one named multiplayer session and its current round state
type Party struct {
	Code   PartyCode
	Word   Word
	HostID ConnectionID // connection of the player allowed to start rounds
	// Started is true while a round is in progress
	Started   bool
	StartedAt time.Time
	// Members is kept in join order; that order is the tie-break for
	// ranking and for host re-election.
	Members   []PartyMember
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetMember returns the member with the given connection ID, or nil
func (p *Party) GetMember(connID ConnectionID) *PartyMember {
	for i := range p.Members {
		if p.Members[i].ConnID == connID {
			return &p.Members[i]
		}
	}
	return nil
}

// Host returns the host member, or nil if the host connection is gone
func (p *Party) Host() *PartyMember {
	return p.GetMember(p.HostID)
}

// AllFinished reports whether every current member has finished the round
func (p *Party) AllFinished() bool {
	for i := range p.Members {
		if !p.Members[i].Finished {
			return false
		}
	}
	return len(p.Members) > 0
}
