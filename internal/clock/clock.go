package clock

// The clock is a set of pure transition functions over a tournament record.
// Nothing in here owns a timer; the Scheduler calls Tick once per elapsed
// second. This keeps every transition testable without waiting on wall
// time.

import (
	"tourney-director/backend/internal/models"
)

// LevelSeconds returns the duration, in seconds, of the level at idx.
// Breaks run on their own duration; regular levels run on the tournament's
// configured level duration.
func LevelSeconds(t *models.Tournament, idx int) int {
	if idx < 0 || idx >= len(t.Blinds) {
		return t.Config.LevelDuration * 60
	}
	lvl := t.Blinds[idx]
	if lvl.IsBreak && lvl.BreakDuration > 0 {
		return lvl.BreakDuration * 60
	}
	return t.Config.LevelDuration * 60
}

// Start sets the clock running. No-op if already running.
func Start(t *models.Tournament) {
	t.IsRunning = true
}

// Pause stops the clock, preserving the remaining time. No-op if already
// stopped.
func Pause(t *models.Tournament) {
	t.IsRunning = false
}

// Tick advances the clock by one elapsed second. While time remains it
// only decrements; a tick that finds the level already expired advances to
// the next level and refills the clock. Reaching the final level of the
// schedule stops the clock: there is nothing left to count down into.
func Tick(t *models.Tournament) {
	if !t.IsRunning {
		return
	}

	if t.TimeLeft > 0 {
		t.TimeLeft--
		return
	}

	last := len(t.Blinds) - 1
	next := t.CurrentLevelIndex + 1
	if next > last {
		next = last
	}

	t.CurrentLevelIndex = next
	t.TimeLeft = LevelSeconds(t, next)
	if next == last {
		t.IsRunning = false
	}
}

// Reset stops the clock and returns the tournament to the first level with
// a full clock.
func Reset(t *models.Tournament) {
	t.IsRunning = false
	t.CurrentLevelIndex = 0
	t.TimeLeft = LevelSeconds(t, 0)
}

// JumpLevel moves the current level by delta, clamped to the bounds of the
// schedule, and refills the clock for the target level. Running state is
// untouched; out-of-range jumps are clamped, never rejected.
func JumpLevel(t *models.Tournament, delta int) {
	idx := t.CurrentLevelIndex + delta
	if idx < 0 {
		idx = 0
	}
	if last := len(t.Blinds) - 1; idx > last {
		idx = last
	}
	t.CurrentLevelIndex = idx
	t.TimeLeft = LevelSeconds(t, idx)
}
