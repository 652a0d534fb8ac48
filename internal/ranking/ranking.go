// Package ranking turns the player ledger into an ordered standings view.
// Rankings are a read-only derivation: computing one never touches the
// player records it reads.
//
// Strategies form a fixed, enumerated set selected by name. There is
// deliberately no way to feed the engine a formula as text.
package ranking

import (
	"errors"
	"math"
	"sort"

	"tourney-director/backend/internal/models"
)

// Strategy names a ranking strategy.
type Strategy string

const (
	// StrategyEntriesFormula scores sqrt((entries / position) * 100),
	// weighted by the tournament's stage weight. The default.
	StrategyEntriesFormula Strategy = "entries_formula"
	// StrategyChipCount orders players by current chip stack.
	StrategyChipCount Strategy = "chip_count"
)

// ErrUnknownStrategy occurs when a strategy name is not in the enumerated set
var ErrUnknownStrategy = errors.New("unknown ranking strategy")

// Entry is one row of a computed ranking.
type Entry struct {
	Rank     int     `json:"rank"`
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Chips    int     `json:"chips"`
	Position *int    `json:"position,omitempty"`
}

// Strategies lists the available strategy names.
func Strategies() []Strategy {
	return []Strategy{StrategyEntriesFormula, StrategyChipCount}
}

// Describe returns the fixed textual description of a strategy as surfaced
// to the operator.
func Describe(s Strategy) string {
	switch s {
	case StrategyChipCount:
		return "players ordered by current chip stack, largest first"
	default:
		return "score = sqrt((entries / position) * 100) * stage weight; still-active players are scored as if tied for last place"
	}
}

// Resolve maps a configured strategy name to a Strategy, defaulting to the
// entries formula when unset.
func Resolve(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", StrategyEntriesFormula:
		return StrategyEntriesFormula, nil
	case StrategyChipCount:
		return StrategyChipCount, nil
	default:
		return "", ErrUnknownStrategy
	}
}

// Compute returns the ranking of the given players under the named
// strategy, ordered best first. Ties keep the relative order of the input
// roster.
func Compute(players []models.Player, cfg models.TournamentConfig, strategy Strategy) ([]Entry, error) {
	switch strategy {
	case "", StrategyEntriesFormula:
		return computeEntriesFormula(players, cfg), nil
	case StrategyChipCount:
		return computeChipCount(players), nil
	default:
		return nil, ErrUnknownStrategy
	}
}

// Score returns the entries-formula score for one player.
//
// effectivePosition is the recorded elimination position when the player
// has busted out. Players still in their seats get a placeholder position
// equal to the field size: an in-progress ranking scores them as tied for
// last, not as leaders. A final ranking requires every position to be
// recorded, including the winner's, which is assigned by an external
// finalize step rather than by this engine.
func Score(p models.Player, totalPlayers int, stageWeight float64) float64 {
	effectivePosition := totalPlayers
	if p.Position != nil {
		effectivePosition = *p.Position
	}
	if p.Entries <= 0 || effectivePosition <= 0 {
		return 0
	}
	return math.Sqrt(float64(p.Entries)/float64(effectivePosition)*100) * stageWeight
}

func computeEntriesFormula(players []models.Player, cfg models.TournamentConfig) []Entry {
	total := len(players)
	entries := make([]Entry, 0, total)
	for _, p := range players {
		entries = append(entries, Entry{
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    Score(p, total, cfg.StageWeight),
			Chips:    p.Chips,
			Position: p.Position,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func computeChipCount(players []models.Player) []Entry {
	entries := make([]Entry, 0, len(players))
	for _, p := range players {
		entries = append(entries, Entry{
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    float64(p.Chips),
			Chips:    p.Chips,
			Position: p.Position,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Chips > entries[j].Chips
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
