package request

// JoinRequest is the request body for joining a party
type JoinRequest struct {
	Name string `json:"name"`
}

// GuessRequest is the request body for submitting a guess
type GuessRequest struct {
	Guess string `json:"guess"`
}

// FinishRequest is the request body for reporting a finished round.
// FinishTime is a unix-millisecond client timestamp; Lost marks a
// forfeited round.
type FinishRequest struct {
	Tries      int   `json:"tries"`
	FinishTime int64 `json:"finish_time"`
	Lost       bool  `json:"lost,omitempty"`
}
