package clock

import (
	"log"
	"time"
)

// LevelChange describes one tournament whose clock crossed into a new
// level during a scheduler pass.
type LevelChange struct {
	TournamentID  string
	LevelIndex    int
	ScheduleEnded bool
}

// StateAdvancer is the narrow handle the scheduler holds on the tournament
// store: advance every running clock by one second and report level
// changes. The scheduler never sees tournament records directly.
type StateAdvancer interface {
	AdvanceClocks() []LevelChange
}

// Scheduler drives the clock: one pass per second over all running
// tournaments.
type Scheduler struct {
	advancer              StateAdvancer
	stopChan              chan struct{}
	onLevelChangeCallback func(change LevelChange)
}

// NewScheduler creates a new clock scheduler
func NewScheduler(advancer StateAdvancer) *Scheduler {
	return &Scheduler{
		advancer: advancer,
		stopChan: make(chan struct{}),
	}
}

// SetOnLevelChangeCallback sets the callback invoked whenever a tournament
// moves to a new blind level.
func (s *Scheduler) SetOnLevelChangeCallback(callback func(change LevelChange)) {
	s.onLevelChangeCallback = callback
}

// Start begins ticking all running tournament clocks once per second.
func (s *Scheduler) Start() {
	log.Println("[CLOCK] Scheduler started")
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.pass()
		case <-s.stopChan:
			log.Println("[CLOCK] Scheduler stopped")
			return
		}
	}
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	close(s.stopChan)
}

func (s *Scheduler) pass() {
	changes := s.advancer.AdvanceClocks()
	for _, change := range changes {
		if change.ScheduleEnded {
			log.Printf("[CLOCK] Tournament %s: schedule exhausted at level index %d, clock stopped",
				change.TournamentID, change.LevelIndex)
		} else {
			log.Printf("[CLOCK] Tournament %s: advanced to level index %d",
				change.TournamentID, change.LevelIndex)
		}
		if s.onLevelChangeCallback != nil {
			s.onLevelChangeCallback(change)
		}
	}
}
