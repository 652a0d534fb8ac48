package schedule

import (
	"tourney-director/backend/internal/models"
)

// Validate checks a blind schedule for structural problems. An empty
// schedule is rejected outright: there would be no representable current
// level. Blind and ante amounts must be non-negative, break levels need a
// positive duration. Whether big blind exceeds small blind is left to the
// director; a schedule with unusual blinds is an operator choice, not an
// error.
func Validate(levels []models.BlindLevel) error {
	if len(levels) == 0 {
		return ErrEmptySchedule
	}

	for _, lvl := range levels {
		if lvl.SmallBlind < 0 || lvl.BigBlind < 0 {
			return ErrNegativeBlind
		}
		if lvl.Ante < 0 {
			return ErrNegativeAnte
		}
		if lvl.IsBreak && lvl.BreakDuration <= 0 {
			return ErrInvalidBreakDuration
		}
	}

	return nil
}

// GetPreset returns a named schedule preset. The returned slice is a copy;
// callers may modify it freely.
func GetPreset(name string) ([]models.BlindLevel, bool) {
	preset, ok := presets[name]
	if !ok {
		return nil, false
	}
	out := make([]models.BlindLevel, len(preset))
	copy(out, preset)
	return out, true
}

// Default returns the schedule used when a tournament is created without
// one.
func Default() []models.BlindLevel {
	levels, _ := GetPreset("standard")
	return levels
}

// PresetNames lists the available schedule presets.
func PresetNames() []string {
	return []string{"turbo", "standard", "deepstack"}
}

// Predefined blind schedules
var presets = map[string][]models.BlindLevel{
	// turbo - short events, single break
	"turbo": {
		{Level: 1, SmallBlind: 25, BigBlind: 50, Ante: 0},
		{Level: 2, SmallBlind: 50, BigBlind: 100, Ante: 0},
		{Level: 3, SmallBlind: 75, BigBlind: 150, Ante: 0},
		{Level: 4, SmallBlind: 100, BigBlind: 200, Ante: 25},
		{Level: 5, IsBreak: true, BreakDuration: 5},
		{Level: 5, SmallBlind: 150, BigBlind: 300, Ante: 25},
		{Level: 6, SmallBlind: 200, BigBlind: 400, Ante: 50},
		{Level: 7, SmallBlind: 300, BigBlind: 600, Ante: 75},
		{Level: 8, SmallBlind: 400, BigBlind: 800, Ante: 100},
		{Level: 9, SmallBlind: 600, BigBlind: 1200, Ante: 150},
		{Level: 10, SmallBlind: 800, BigBlind: 1600, Ante: 200},
	},

	// standard - weekly club night pace
	"standard": {
		{Level: 1, SmallBlind: 25, BigBlind: 50, Ante: 0},
		{Level: 2, SmallBlind: 50, BigBlind: 100, Ante: 0},
		{Level: 3, SmallBlind: 75, BigBlind: 150, Ante: 0},
		{Level: 4, SmallBlind: 100, BigBlind: 200, Ante: 25},
		{Level: 5, SmallBlind: 150, BigBlind: 300, Ante: 25},
		{Level: 6, IsBreak: true, BreakDuration: 10},
		{Level: 6, SmallBlind: 200, BigBlind: 400, Ante: 50},
		{Level: 7, SmallBlind: 300, BigBlind: 600, Ante: 75},
		{Level: 8, SmallBlind: 400, BigBlind: 800, Ante: 100},
		{Level: 9, SmallBlind: 600, BigBlind: 1200, Ante: 150},
		{Level: 10, SmallBlind: 800, BigBlind: 1600, Ante: 200},
		{Level: 11, IsBreak: true, BreakDuration: 10},
		{Level: 11, SmallBlind: 1000, BigBlind: 2000, Ante: 250},
		{Level: 12, SmallBlind: 1500, BigBlind: 3000, Ante: 375},
		{Level: 13, SmallBlind: 2000, BigBlind: 4000, Ante: 500},
	},

	// deepstack - long structure, two breaks
	"deepstack": {
		{Level: 1, SmallBlind: 25, BigBlind: 50, Ante: 0},
		{Level: 2, SmallBlind: 50, BigBlind: 100, Ante: 0},
		{Level: 3, SmallBlind: 75, BigBlind: 150, Ante: 0},
		{Level: 4, SmallBlind: 100, BigBlind: 200, Ante: 0},
		{Level: 5, SmallBlind: 150, BigBlind: 300, Ante: 25},
		{Level: 6, IsBreak: true, BreakDuration: 15},
		{Level: 6, SmallBlind: 200, BigBlind: 400, Ante: 50},
		{Level: 7, SmallBlind: 250, BigBlind: 500, Ante: 50},
		{Level: 8, SmallBlind: 300, BigBlind: 600, Ante: 75},
		{Level: 9, SmallBlind: 400, BigBlind: 800, Ante: 100},
		{Level: 10, SmallBlind: 500, BigBlind: 1000, Ante: 100},
		{Level: 11, IsBreak: true, BreakDuration: 15},
		{Level: 11, SmallBlind: 600, BigBlind: 1200, Ante: 150},
		{Level: 12, SmallBlind: 800, BigBlind: 1600, Ante: 200},
		{Level: 13, SmallBlind: 1000, BigBlind: 2000, Ante: 250},
		{Level: 14, SmallBlind: 1500, BigBlind: 3000, Ante: 300},
		{Level: 15, SmallBlind: 2000, BigBlind: 4000, Ante: 500},
	},
}
