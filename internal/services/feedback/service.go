package feedback

import (
	"github.com/tlindqvist/wordparty/internal/model"
)

// Service computes per-position guess feedback against a solution
type Service struct{}

// New creates a new feedback Service
func New() *Service {
	return &Service{}
}

// Validate rejects guesses that are not exactly five lowercase letters
func Validate(guess model.Word) error {
	if len(guess) != model.WordLength {
		return model.ErrInvalidGuess
	}
	for _, c := range []byte(guess) {
		if c < 'a' || c > 'z' {
			return model.ErrInvalidGuess
		}
	}
	return nil
}

// Compute classifies each guess letter against the solution.
//
// Two passes: exact matches first, consuming their solution positions;
// then each remaining guess letter scans the unconsumed solution
// positions left to right. A letter is therefore never marked hit or
// present more times than it occurs in the solution, and duplicates in
// the guess resolve left to right.
func (s *Service) Compute(guess, solution model.Word) (model.Feedback, error) {
	var fb model.Feedback
	if err := Validate(guess); err != nil {
		return fb, err
	}
	if err := Validate(solution); err != nil {
		return fb, err
	}

	var used [model.WordLength]bool

	for i := 0; i < model.WordLength; i++ {
		if guess[i] == solution[i] {
			fb[i] = model.MarkHit
			used[i] = true
		}
	}

	for i := 0; i < model.WordLength; i++ {
		if fb[i] == model.MarkHit {
			continue
		}
		fb[i] = model.MarkMiss
		for j := 0; j < model.WordLength; j++ {
			if !used[j] && guess[i] == solution[j] {
				fb[i] = model.MarkPresent
				used[j] = true
				break
			}
		}
	}

	return fb, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Compute(guess, solution model.Word) (model.Feedback, error)
}

var _ ServiceInterface = (*Service)(nil)
