package model

// EventType identifies the type of an outbound event
type EventType string

const (
	EventMessage     EventType = "message"
	EventLeaderboard EventType = "leaderboard"
	EventStart       EventType = "start"
	EventRestart     EventType = "restart"
	EventFeedback    EventType = "feedback"
)

// Event is an outbound notification produced by a state transition.
// Transitions return events instead of pushing to the transport directly,
// so the state machine is testable without a live connection.
type Event struct {
	Type EventType
	// To addresses the event to a single connection; empty means the
	// whole party.
	To      ConnectionID
	Payload any
}

// MessagePayload carries a human-readable notice
type MessagePayload struct {
	Text string `json:"text"`
}

// LeaderboardEntry is one row of a leaderboard broadcast
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// LeaderboardPayload carries the party standings
type LeaderboardPayload struct {
	Players []LeaderboardEntry `json:"players"`
}

// StartPayload carries the secret word for a new round. Sending the word
// to every client is the session's client-trust model: clients check
// guesses locally and report back when they finish.
type StartPayload struct {
	Word Word `json:"word"`
}

// FeedbackPayload carries one player's guess and its server-computed marks
type FeedbackPayload struct {
	Guess    Word     `json:"guess"`
	Feedback Feedback `json:"feedback"`
	From     string   `json:"from"`
}
