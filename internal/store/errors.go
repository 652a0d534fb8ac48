package store

import "errors"

// Store errors
var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrNoDisplaySelected      = errors.New("no tournament selected for display")
)
