package model

import "errors"

// Common errors used across the application
var (
	// Party errors
	ErrPartyNotFound   = errors.New("party not found")
	ErrNotHost         = errors.New("player is not the host")
	ErrNotInParty      = errors.New("player is not in party")
	ErrRoundNotStarted = errors.New("no round in progress")
	ErrAlreadyFinished = errors.New("player has already finished")

	// Guess errors
	ErrInvalidGuess = errors.New("guess must be five lowercase letters")

	// Word list errors
	ErrWordListEmpty     = errors.New("word list is empty")
	ErrWordListNotLoaded = errors.New("word list not loaded")
)
