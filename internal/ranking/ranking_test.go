package ranking

import (
	"math"
	"testing"

	"tourney-director/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestScore_WorkedExample(t *testing.T) {
	x := models.Player{Entries: 1, Position: intPtr(1)}
	y := models.Player{Entries: 1, Position: intPtr(2)}

	assert.InDelta(t, 10, Score(x, 2, 1), 1e-9)
	assert.InDelta(t, math.Sqrt(50), Score(y, 2, 1), 1e-9)
}

func TestScore_ZeroEntries(t *testing.T) {
	p := models.Player{Entries: 0, Position: intPtr(1)}

	assert.Equal(t, 0.0, Score(p, 4, 1))
}

func TestScore_ActivePlayersScoredAsTiedForLast(t *testing.T) {
	active := models.Player{Entries: 1, Active: true}
	eliminatedLast := models.Player{Entries: 1, Position: intPtr(4)}

	// In a 4-player field a still-active player scores exactly like a
	// player who busted in 4th.
	assert.InDelta(t, Score(eliminatedLast, 4, 1), Score(active, 4, 1), 1e-9)
}

func TestScore_StageWeightMultiplies(t *testing.T) {
	p := models.Player{Entries: 1, Position: intPtr(1)}

	assert.InDelta(t, 25, Score(p, 2, 2.5), 1e-9)
}

func TestCompute_OrdersByScoreDescending(t *testing.T) {
	cfg := models.TournamentConfig{StageWeight: 1}
	players := []models.Player{
		{ID: "y", Name: "Y", Entries: 1, Position: intPtr(2)},
		{ID: "x", Name: "X", Entries: 1, Position: intPtr(1)},
	}

	entries, err := Compute(players, cfg, StrategyEntriesFormula)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "x", entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "y", entries[1].PlayerID)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestCompute_TiesKeepRosterOrder(t *testing.T) {
	cfg := models.TournamentConfig{StageWeight: 1}
	players := []models.Player{
		{ID: "first", Entries: 1, Active: true},
		{ID: "second", Entries: 1, Active: true},
		{ID: "third", Entries: 1, Active: true},
	}

	entries, err := Compute(players, cfg, StrategyEntriesFormula)
	require.NoError(t, err)

	assert.Equal(t, "first", entries[0].PlayerID)
	assert.Equal(t, "second", entries[1].PlayerID)
	assert.Equal(t, "third", entries[2].PlayerID)
}

func TestCompute_DoesNotMutatePlayers(t *testing.T) {
	cfg := models.TournamentConfig{StageWeight: 1}
	players := []models.Player{
		{ID: "a", Entries: 2, Position: intPtr(3), Chips: 100},
		{ID: "b", Entries: 1, Active: true, Chips: 900},
	}

	_, err := Compute(players, cfg, StrategyEntriesFormula)
	require.NoError(t, err)

	assert.Equal(t, "a", players[0].ID)
	assert.Equal(t, 2, players[0].Entries)
	assert.Equal(t, 3, *players[0].Position)
	assert.Equal(t, "b", players[1].ID)
}

func TestCompute_ChipCountStrategy(t *testing.T) {
	players := []models.Player{
		{ID: "short", Chips: 1000},
		{ID: "big", Chips: 9000},
		{ID: "mid", Chips: 4000},
	}

	entries, err := Compute(players, models.TournamentConfig{}, StrategyChipCount)
	require.NoError(t, err)

	assert.Equal(t, "big", entries[0].PlayerID)
	assert.Equal(t, "mid", entries[1].PlayerID)
	assert.Equal(t, "short", entries[2].PlayerID)
}

func TestCompute_UnknownStrategy(t *testing.T) {
	_, err := Compute(nil, models.TournamentConfig{}, Strategy("eval"))

	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestResolve(t *testing.T) {
	s, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, StrategyEntriesFormula, s)

	s, err = Resolve("chip_count")
	require.NoError(t, err)
	assert.Equal(t, StrategyChipCount, s)

	_, err = Resolve("made-up")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
