package model

// WordLength is the fixed length of every word in play
const WordLength = 5

// Word is a lowercase sequence of exactly WordLength letters
type Word string

// Mark classifies a single guess letter against the solution
type Mark string

const (
	MarkHit     Mark = "hit"     // right letter, right position
	MarkPresent Mark = "present" // right letter, wrong position
	MarkMiss    Mark = "miss"    // letter not in the remaining solution
)

// Feedback is the per-position classification of a full guess
type Feedback [WordLength]Mark
