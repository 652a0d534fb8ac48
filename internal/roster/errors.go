package roster

import "errors"

// Roster errors
var (
	ErrEmptyPlayerName           = errors.New("player name is required")
	ErrPlayerNotFound            = errors.New("player not found")
	ErrPlayerAlreadyEliminated   = errors.New("player already eliminated")
	ErrExtraChipAlreadyPurchased = errors.New("extra chip already purchased")
	ErrExtraChipNotEnabled       = errors.New("extra chip purchase is not enabled")
)
