package schedule

import (
	"testing"

	"tourney-director/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_EmptySchedule(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrEmptySchedule)
	assert.ErrorIs(t, Validate([]models.BlindLevel{}), ErrEmptySchedule)
}

func TestValidate_NegativeAmounts(t *testing.T) {
	assert.ErrorIs(t, Validate([]models.BlindLevel{
		{Level: 1, SmallBlind: -25, BigBlind: 50},
	}), ErrNegativeBlind)

	assert.ErrorIs(t, Validate([]models.BlindLevel{
		{Level: 1, SmallBlind: 25, BigBlind: 50, Ante: -5},
	}), ErrNegativeAnte)
}

func TestValidate_BreakNeedsDuration(t *testing.T) {
	assert.ErrorIs(t, Validate([]models.BlindLevel{
		{Level: 1, SmallBlind: 25, BigBlind: 50},
		{IsBreak: true},
	}), ErrInvalidBreakDuration)
}

func TestValidate_ZeroBlindsAllowed(t *testing.T) {
	// Blind amounts of zero are unusual but the director's call.
	assert.NoError(t, Validate([]models.BlindLevel{
		{Level: 1, SmallBlind: 0, BigBlind: 0},
	}))
}

func TestPresets_AllValid(t *testing.T) {
	for _, name := range PresetNames() {
		levels, ok := GetPreset(name)
		require.True(t, ok, name)
		assert.NoError(t, Validate(levels), name)
	}
}

func TestGetPreset_Unknown(t *testing.T) {
	_, ok := GetPreset("hyperturbo")
	assert.False(t, ok)
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	first, ok := GetPreset("standard")
	require.True(t, ok)
	first[0].SmallBlind = 9999

	second, ok := GetPreset("standard")
	require.True(t, ok)
	assert.Equal(t, 25, second[0].SmallBlind)
}

func TestDefault(t *testing.T) {
	levels := Default()
	require.NotEmpty(t, levels)
	assert.NoError(t, Validate(levels))
}
