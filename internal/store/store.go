// Package store owns every tournament record. All mutation goes through
// the store under its lock: HTTP handlers patch records, the clock
// scheduler ticks them, and the store persists and republishes after each
// change. Everything handed out is a deep copy, so the spectator side can
// never reach the owned records; it only ever gets snapshots.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"tourney-director/backend/internal/clock"
	"tourney-director/backend/internal/models"
	"tourney-director/backend/internal/roster"
	"tourney-director/backend/internal/schedule"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const displayStateKey = "display_tournament_id"

// DisplayPublisher receives the snapshot of the displayed tournament after
// each mutation. Implementations must treat the snapshot as read-only.
type DisplayPublisher interface {
	Publish(snapshot models.DisplaySnapshot)
}

// Store holds the tournament collection and its persistence.
type Store struct {
	mu          sync.Mutex
	db          *gorm.DB
	tournaments map[string]*models.Tournament
	displayID   string
	publisher   DisplayPublisher
}

// New creates a store backed by the given database, migrates its tables
// and restores any persisted tournaments. A snapshot row that does not
// decode is logged and skipped: corrupt persisted state means "no saved
// state", never a startup failure.
func New(database *gorm.DB) (*Store, error) {
	if err := database.AutoMigrate(&models.TournamentSnapshot{}, &models.DirectorState{}); err != nil {
		return nil, fmt.Errorf("failed to migrate store tables: %w", err)
	}

	s := &Store{
		db:          database,
		tournaments: make(map[string]*models.Tournament),
	}
	s.load()
	return s, nil
}

// SetPublisher sets the display channel publisher.
func (s *Store) SetPublisher(p DisplayPublisher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publisher = p
}

func (s *Store) load() {
	var snapshots []models.TournamentSnapshot
	if err := s.db.Find(&snapshots).Error; err != nil {
		log.Printf("[STORE] Failed to read persisted tournaments, starting empty: %v", err)
		return
	}

	for _, snap := range snapshots {
		var t models.Tournament
		if err := json.Unmarshal([]byte(snap.Data), &t); err != nil {
			log.Printf("[STORE] Skipping corrupt snapshot %s: %v", snap.ID, err)
			continue
		}
		if t.ID == "" || len(t.Blinds) == 0 {
			log.Printf("[STORE] Skipping unusable snapshot %s", snap.ID)
			continue
		}
		s.tournaments[t.ID] = &t
	}

	var state models.DirectorState
	if err := s.db.Where("key = ?", displayStateKey).First(&state).Error; err == nil {
		if _, ok := s.tournaments[state.Value]; ok {
			s.displayID = state.Value
		}
	}

	log.Printf("[STORE] Restored %d tournaments", len(s.tournaments))
}

// persist writes one tournament snapshot. Called under the lock.
func (s *Store) persist(t *models.Tournament) {
	data, err := json.Marshal(t)
	if err != nil {
		log.Printf("[STORE] Failed to encode tournament %s: %v", t.ID, err)
		return
	}
	snap := models.TournamentSnapshot{ID: t.ID, Data: string(data)}
	if err := s.db.Save(&snap).Error; err != nil {
		log.Printf("[STORE] Failed to persist tournament %s: %v", t.ID, err)
	}
}

// publish pushes the displayed tournament to the spectator channel.
// Called under the lock.
func (s *Store) publish(t *models.Tournament) {
	if s.publisher == nil || s.displayID != t.ID {
		return
	}
	s.publisher.Publish(models.DisplaySnapshot{
		TournamentID: t.ID,
		Tournament:   t.Clone(),
		UpdatedAt:    time.Now(),
	})
}

func (s *Store) get(id string) (*models.Tournament, error) {
	t, ok := s.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return t, nil
}

// Create creates a tournament from the request: named preset, custom
// schedule or the default one, validated before anything is stored. The
// clock starts stopped on level index 0 with a full level of time.
func (s *Store) Create(req models.CreateTournamentRequest) (*models.Tournament, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrTournamentNameRequired
	}

	var blinds []models.BlindLevel
	switch {
	case req.SchedulePreset != "":
		preset, ok := schedule.GetPreset(req.SchedulePreset)
		if !ok {
			return nil, schedule.ErrPresetNotFound
		}
		blinds = preset
	case req.CustomBlinds != nil:
		blinds = make([]models.BlindLevel, len(req.CustomBlinds))
		copy(blinds, req.CustomBlinds)
	default:
		blinds = schedule.Default()
	}

	if err := schedule.Validate(blinds); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if req.Config != nil {
		cfg = *req.Config
	}

	now := time.Now()
	t := &models.Tournament{
		ID:                uuid.New().String(),
		Name:              req.Name,
		Blinds:            blinds,
		CurrentLevelIndex: 0,
		IsRunning:         false,
		Players:           []models.Player{},
		Config:            cfg,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	t.TimeLeft = clock.LevelSeconds(t, 0)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments[t.ID] = t
	s.persist(t)
	return t.Clone(), nil
}

// Get returns a copy of one tournament.
func (s *Store) Get(id string) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// List returns copies of all tournaments, newest first.
func (s *Store) List() []*models.Tournament {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		out = append(out, t.Clone())
	}
	sortByCreatedAtDesc(out)
	return out
}

// Remove deletes a tournament from the collection and its persisted
// snapshot. If it was the displayed tournament, the display selection is
// cleared.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.get(id); err != nil {
		return err
	}
	delete(s.tournaments, id)
	if err := s.db.Delete(&models.TournamentSnapshot{}, "id = ?", id).Error; err != nil {
		log.Printf("[STORE] Failed to delete snapshot %s: %v", id, err)
	}
	if s.displayID == id {
		s.displayID = ""
		s.saveDisplaySelection("")
	}
	return nil
}

// ApplyPatch merges the given partial fields into the named tournament.
// Unset fields are untouched. A patch that would leave the record invalid
// (an empty blind schedule) is rejected before any field is applied; level
// index and remaining time are clamped into range rather than rejected.
func (s *Store) ApplyPatch(id string, patch models.TournamentPatch) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if patch.Blinds != nil {
		if err := schedule.Validate(*patch.Blinds); err != nil {
			return nil, err
		}
	}

	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Blinds != nil {
		blinds := make([]models.BlindLevel, len(*patch.Blinds))
		copy(blinds, *patch.Blinds)
		t.Blinds = blinds
	}
	if patch.CurrentLevelIndex != nil {
		t.CurrentLevelIndex = *patch.CurrentLevelIndex
	}
	if patch.TimeLeft != nil {
		t.TimeLeft = *patch.TimeLeft
	}
	if patch.IsRunning != nil {
		t.IsRunning = *patch.IsRunning
	}
	if patch.Players != nil {
		players := make([]models.Player, len(*patch.Players))
		copy(players, *patch.Players)
		t.Players = players
	}
	if patch.Config != nil {
		t.Config = *patch.Config
	}

	// keep the record inside its own invariants whatever the patch said
	if last := len(t.Blinds) - 1; t.CurrentLevelIndex > last {
		t.CurrentLevelIndex = last
	}
	if t.CurrentLevelIndex < 0 {
		t.CurrentLevelIndex = 0
	}
	if t.TimeLeft < 0 {
		t.TimeLeft = 0
	}

	s.touch(t)
	return t.Clone(), nil
}

// mutate runs fn on the owned record under the lock, then persists and
// republishes. Shared by the clock and roster operations.
func (s *Store) mutate(id string, fn func(*models.Tournament) error) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := fn(t); err != nil {
		return nil, err
	}
	s.touch(t)
	return t.Clone(), nil
}

// touch stamps, persists and republishes a record. Called under the lock.
func (s *Store) touch(t *models.Tournament) {
	t.UpdatedAt = time.Now()
	s.persist(t)
	s.publish(t)
}

// StartClock starts a tournament's clock.
func (s *Store) StartClock(id string) (*models.Tournament, error) {
	return s.mutate(id, func(t *models.Tournament) error {
		clock.Start(t)
		return nil
	})
}

// PauseClock pauses a tournament's clock, preserving remaining time.
func (s *Store) PauseClock(id string) (*models.Tournament, error) {
	return s.mutate(id, func(t *models.Tournament) error {
		clock.Pause(t)
		return nil
	})
}

// ResetClock stops the clock and returns to the first level.
func (s *Store) ResetClock(id string) (*models.Tournament, error) {
	return s.mutate(id, func(t *models.Tournament) error {
		clock.Reset(t)
		return nil
	})
}

// JumpLevel moves the current level by delta, clamped to the schedule.
func (s *Store) JumpLevel(id string, delta int) (*models.Tournament, error) {
	return s.mutate(id, func(t *models.Tournament) error {
		clock.JumpLevel(t, delta)
		return nil
	})
}

// AdvanceClocks ticks every running tournament clock by one second and
// reports level changes. This is the scheduler's once-per-second entry
// point.
func (s *Store) AdvanceClocks() []clock.LevelChange {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changes []clock.LevelChange
	for _, t := range s.tournaments {
		if !t.IsRunning {
			continue
		}
		prev := t.CurrentLevelIndex
		clock.Tick(t)
		s.touch(t)
		if t.CurrentLevelIndex != prev {
			changes = append(changes, clock.LevelChange{
				TournamentID:  t.ID,
				LevelIndex:    t.CurrentLevelIndex,
				ScheduleEnded: !t.IsRunning,
			})
		}
	}
	return changes
}

// AdmitPlayer adds a player to a tournament's roster.
func (s *Store) AdmitPlayer(id, name string) (*models.Player, error) {
	return s.mutatePlayer(id, func(t *models.Tournament) (*models.Player, error) {
		return roster.Admit(t, name)
	})
}

// RebuyPlayer records a rebuy for a player.
func (s *Store) RebuyPlayer(id, playerID string) (*models.Player, error) {
	return s.mutatePlayer(id, func(t *models.Tournament) (*models.Player, error) {
		return roster.Rebuy(t, playerID)
	})
}

// AddonPlayer records an addon for a player.
func (s *Store) AddonPlayer(id, playerID string) (*models.Player, error) {
	return s.mutatePlayer(id, func(t *models.Tournament) (*models.Player, error) {
		return roster.Addon(t, playerID)
	})
}

// PurchaseExtraChip records the one-time extra chip purchase for a player.
func (s *Store) PurchaseExtraChip(id, playerID string) (*models.Player, error) {
	return s.mutatePlayer(id, func(t *models.Tournament) (*models.Player, error) {
		return roster.PurchaseExtraChip(t, playerID)
	})
}

// EliminatePlayer busts a player out, assigning their finishing position.
func (s *Store) EliminatePlayer(id, playerID string) (*models.Player, error) {
	return s.mutatePlayer(id, func(t *models.Tournament) (*models.Player, error) {
		return roster.Eliminate(t, playerID)
	})
}

// RemovePlayer deletes a player record outright.
func (s *Store) RemovePlayer(id, playerID string) error {
	_, err := s.mutate(id, func(t *models.Tournament) error {
		return roster.Remove(t, playerID)
	})
	return err
}

func (s *Store) mutatePlayer(id string, fn func(*models.Tournament) (*models.Player, error)) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.get(id)
	if err != nil {
		return nil, err
	}
	p, err := fn(t)
	if err != nil {
		return nil, err
	}
	result := *p
	if p.Position != nil {
		pos := *p.Position
		result.Position = &pos
	}
	s.touch(t)
	return &result, nil
}

// ExportPlayers returns the flat ledger projection for a tournament.
func (s *Store) ExportPlayers(id string) ([]models.PlayerExportRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return roster.ExportRows(t), nil
}

// SetDisplay selects which tournament the spectator display mirrors and
// publishes a fresh snapshot immediately.
func (s *Store) SetDisplay(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.get(id)
	if err != nil {
		return err
	}
	s.displayID = id
	s.saveDisplaySelection(id)
	s.publish(t)
	return nil
}

// DisplaySnapshot returns a read-only snapshot of the displayed
// tournament. This is the only accessor the spectator surface is given;
// there is no mutation handle on this path.
func (s *Store) DisplaySnapshot() (*models.DisplaySnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.displayID == "" {
		return nil, ErrNoDisplaySelected
	}
	t, err := s.get(s.displayID)
	if err != nil {
		return nil, err
	}
	return &models.DisplaySnapshot{
		TournamentID: t.ID,
		Tournament:   t.Clone(),
		UpdatedAt:    t.UpdatedAt,
	}, nil
}

func (s *Store) saveDisplaySelection(id string) {
	state := models.DirectorState{Key: displayStateKey, Value: id}
	if err := s.db.Save(&state).Error; err != nil {
		log.Printf("[STORE] Failed to persist display selection: %v", err)
	}
}

// DefaultConfig returns the configuration used when a tournament is
// created without one.
func DefaultConfig() models.TournamentConfig {
	return models.TournamentConfig{
		LevelDuration:   15,
		BuyInValue:      50,
		BuyInChips:      5000,
		RebuyValue:      50,
		RebuyChips:      5000,
		AddonValue:      25,
		AddonChips:      3000,
		AdminFeePercent: 0,
		StageWeight:     1,
	}
}

func sortByCreatedAtDesc(ts []*models.Tournament) {
	sort.Slice(ts, func(i, j int) bool {
		return ts[i].CreatedAt.After(ts[j].CreatedAt)
	})
}
