package feedback

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tlindqvist/wordparty/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

func (s *ServiceSuite) compute(guess, solution string) model.Feedback {
	fb, err := s.service.Compute(model.Word(guess), model.Word(solution))
	s.Require().NoError(err)
	return fb
}

func marks(ms ...model.Mark) model.Feedback {
	var fb model.Feedback
	copy(fb[:], ms)
	return fb
}

func (s *ServiceSuite) TestExactMatchIsAllHits() {
	fb := s.compute("crane", "crane")
	s.Equal(marks(model.MarkHit, model.MarkHit, model.MarkHit, model.MarkHit, model.MarkHit), fb)
}

func (s *ServiceSuite) TestNoLettersShared() {
	fb := s.compute("vivid", "stone")
	s.Equal(marks(model.MarkMiss, model.MarkMiss, model.MarkMiss, model.MarkMiss, model.MarkMiss), fb)
}

func (s *ServiceSuite) TestPresentLetters() {
	// Every letter of the solution, all in the wrong position
	fb := s.compute("nacre", "crane")
	s.Equal(marks(model.MarkPresent, model.MarkPresent, model.MarkPresent, model.MarkPresent, model.MarkHit), fb)
}

func (s *ServiceSuite) TestDuplicateGuessLetterNotOvercounted() {
	// Solution has one 'l'; only the first unmatched 'l' in the guess
	// may be marked present
	fb := s.compute("llama", "lodge")
	s.Equal(marks(model.MarkHit, model.MarkMiss, model.MarkMiss, model.MarkMiss, model.MarkMiss), fb)
}

func (s *ServiceSuite) TestHitsConsumeSolutionLettersFirst() {
	// Solution "ababa" has three a's and two b's. Guess "aabbb": one
	// hit at position 0, then the extra letters resolve against what
	// remains, left to right.
	fb := s.compute("aabbb", "ababa")
	s.Equal(marks(model.MarkHit, model.MarkPresent, model.MarkPresent, model.MarkHit, model.MarkMiss), fb)
}

func (s *ServiceSuite) TestHitConsumesSolutionLetterBeforePresents() {
	// The hit at position 4 consumes the solution's only 'e', so the
	// earlier 'e's in the guess cannot be marked present
	fb := s.compute("geese", "crane")
	s.Equal(marks(model.MarkMiss, model.MarkMiss, model.MarkMiss, model.MarkMiss, model.MarkHit), fb)
}

func (s *ServiceSuite) TestRejectsWrongLength() {
	_, err := s.service.Compute("cat", "crane")
	s.ErrorIs(err, model.ErrInvalidGuess)

	_, err = s.service.Compute("cranes", "crane")
	s.ErrorIs(err, model.ErrInvalidGuess)
}

func (s *ServiceSuite) TestRejectsNonLowercaseLetters() {
	_, err := s.service.Compute("CRANE", "crane")
	s.ErrorIs(err, model.ErrInvalidGuess)

	_, err = s.service.Compute("cr4ne", "crane")
	s.ErrorIs(err, model.ErrInvalidGuess)
}

func (s *ServiceSuite) TestValidate() {
	s.NoError(Validate("crane"))
	s.ErrorIs(Validate(""), model.ErrInvalidGuess)
	s.ErrorIs(Validate("cran"), model.ErrInvalidGuess)
	s.ErrorIs(Validate("cran!"), model.ErrInvalidGuess)
}
