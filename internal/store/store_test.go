package store

import (
	"testing"

	"tourney-director/backend/internal/clock"
	"tourney-director/backend/internal/models"
	"tourney-director/backend/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use in-memory SQLite for tests
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return gormDB
}

func setupStore(t *testing.T) (*Store, *gorm.DB) {
	database := setupTestDB(t)
	s, err := New(database)
	require.NoError(t, err)
	return s, database
}

func twoLevelConfig() *models.TournamentConfig {
	cfg := DefaultConfig()
	cfg.LevelDuration = 1
	return &cfg
}

func createTwoLevel(t *testing.T, s *Store) *models.Tournament {
	t.Helper()
	tourney, err := s.Create(models.CreateTournamentRequest{
		Name: "Friday Game",
		CustomBlinds: []models.BlindLevel{
			{Level: 1, SmallBlind: 25, BigBlind: 50},
			{Level: 2, SmallBlind: 50, BigBlind: 100},
		},
		Config: twoLevelConfig(),
	})
	require.NoError(t, err)
	return tourney
}

func TestCreate_Defaults(t *testing.T) {
	s, _ := setupStore(t)

	tourney, err := s.Create(models.CreateTournamentRequest{Name: "Main Event"})
	require.NoError(t, err)

	assert.NotEmpty(t, tourney.ID)
	assert.Equal(t, "Main Event", tourney.Name)
	assert.Equal(t, 0, tourney.CurrentLevelIndex)
	assert.False(t, tourney.IsRunning)
	assert.Empty(t, tourney.Players)
	assert.NotEmpty(t, tourney.Blinds)
	assert.Equal(t, DefaultConfig().LevelDuration*60, tourney.TimeLeft)
}

func TestCreate_Preset(t *testing.T) {
	s, _ := setupStore(t)

	tourney, err := s.Create(models.CreateTournamentRequest{
		Name:           "Turbo Tuesday",
		SchedulePreset: "turbo",
	})
	require.NoError(t, err)

	expected, ok := schedule.GetPreset("turbo")
	require.True(t, ok)
	assert.Equal(t, expected, tourney.Blinds)
}

func TestCreate_Invalid(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.Create(models.CreateTournamentRequest{Name: "  "})
	assert.ErrorIs(t, err, ErrTournamentNameRequired)

	_, err = s.Create(models.CreateTournamentRequest{Name: "X", SchedulePreset: "hyperturbo"})
	assert.ErrorIs(t, err, schedule.ErrPresetNotFound)

	_, err = s.Create(models.CreateTournamentRequest{Name: "X", CustomBlinds: []models.BlindLevel{}})
	assert.ErrorIs(t, err, schedule.ErrEmptySchedule)

	assert.Empty(t, s.List(), "rejected creations store nothing")
}

func TestGet_ReturnsDetachedCopy(t *testing.T) {
	s, _ := setupStore(t)
	created := createTwoLevel(t, s)

	copy1, err := s.Get(created.ID)
	require.NoError(t, err)
	copy1.Name = "Scribbled over"
	copy1.Blinds[0].SmallBlind = 9999

	copy2, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Friday Game", copy2.Name)
	assert.Equal(t, 25, copy2.Blinds[0].SmallBlind)
}

func TestApplyPatch_MergesOnlyGivenFields(t *testing.T) {
	s, _ := setupStore(t)
	created := createTwoLevel(t, s)

	name := "Renamed"
	patched, err := s.ApplyPatch(created.ID, models.TournamentPatch{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", patched.Name)
	assert.Equal(t, created.Blinds, patched.Blinds)
	assert.Equal(t, created.TimeLeft, patched.TimeLeft)
	assert.Equal(t, created.Config, patched.Config)
}

func TestApplyPatch_ClampsIndexAndTime(t *testing.T) {
	s, _ := setupStore(t)
	created := createTwoLevel(t, s)

	idx := 42
	timeLeft := -10
	patched, err := s.ApplyPatch(created.ID, models.TournamentPatch{
		CurrentLevelIndex: &idx,
		TimeLeft:          &timeLeft,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, patched.CurrentLevelIndex)
	assert.Equal(t, 0, patched.TimeLeft)
}

func TestApplyPatch_RejectsEmptyScheduleWithoutPartialApply(t *testing.T) {
	s, _ := setupStore(t)
	created := createTwoLevel(t, s)

	name := "Should not stick"
	empty := []models.BlindLevel{}
	_, err := s.ApplyPatch(created.ID, models.TournamentPatch{
		Name:   &name,
		Blinds: &empty,
	})
	assert.ErrorIs(t, err, schedule.ErrEmptySchedule)

	current, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Friday Game", current.Name)
}

func TestApplyPatch_UnknownTournament(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.ApplyPatch("nope", models.TournamentPatch{})
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestPersistenceRoundTrip(t *testing.T) {
	database := setupTestDB(t)
	s1, err := New(database)
	require.NoError(t, err)

	created := createTwoLevel(t, s1)
	_, err = s1.AdmitPlayer(created.ID, "Alice")
	require.NoError(t, err)

	// A fresh store over the same database sees the same state.
	s2, err := New(database)
	require.NoError(t, err)

	restored, err := s2.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Friday Game", restored.Name)
	require.Len(t, restored.Players, 1)
	assert.Equal(t, "Alice", restored.Players[0].Name)
}

func TestCorruptSnapshotTreatedAsAbsent(t *testing.T) {
	database := setupTestDB(t)
	s1, err := New(database)
	require.NoError(t, err)
	created := createTwoLevel(t, s1)

	bad := models.TournamentSnapshot{ID: "broken", Data: "{not json"}
	require.NoError(t, database.Save(&bad).Error)

	s2, err := New(database)
	require.NoError(t, err)

	tournaments := s2.List()
	require.Len(t, tournaments, 1)
	assert.Equal(t, created.ID, tournaments[0].ID)
}

func TestRemove_DeletesPersistedSnapshot(t *testing.T) {
	database := setupTestDB(t)
	s1, err := New(database)
	require.NoError(t, err)
	created := createTwoLevel(t, s1)

	require.NoError(t, s1.Remove(created.ID))
	assert.ErrorIs(t, s1.Remove(created.ID), ErrTournamentNotFound)

	s2, err := New(database)
	require.NoError(t, err)
	assert.Empty(t, s2.List())
}

func TestClockOpsThroughStore(t *testing.T) {
	s, _ := setupStore(t)
	created := createTwoLevel(t, s)

	running, err := s.StartClock(created.ID)
	require.NoError(t, err)
	assert.True(t, running.IsRunning)

	paused, err := s.PauseClock(created.ID)
	require.NoError(t, err)
	assert.False(t, paused.IsRunning)
	assert.Equal(t, created.TimeLeft, paused.TimeLeft)

	jumped, err := s.JumpLevel(created.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, jumped.CurrentLevelIndex)

	reset, err := s.ResetClock(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reset.CurrentLevelIndex)
	assert.Equal(t, 60, reset.TimeLeft)
}

func TestAdvanceClocks(t *testing.T) {
	s, _ := setupStore(t)
	created := createTwoLevel(t, s)

	_, err := s.StartClock(created.ID)
	require.NoError(t, err)

	// One minute per level: 60 passes drain the first level, the 61st
	// resolves the expiry into the final level and stops the clock.
	var changes []clock.LevelChange
	for i := 0; i < 61; i++ {
		changes = append(changes, s.AdvanceClocks()...)
	}

	require.Len(t, changes, 1)
	assert.Equal(t, created.ID, changes[0].TournamentID)
	assert.Equal(t, 1, changes[0].LevelIndex)
	assert.True(t, changes[0].ScheduleEnded)

	final, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, final.CurrentLevelIndex)
	assert.Equal(t, 60, final.TimeLeft)
	assert.False(t, final.IsRunning)
}

func TestRosterOpsThroughStore(t *testing.T) {
	s, _ := setupStore(t)
	created := createTwoLevel(t, s)

	alice, err := s.AdmitPlayer(created.ID, "Alice")
	require.NoError(t, err)
	bob, err := s.AdmitPlayer(created.ID, "Bob")
	require.NoError(t, err)

	_, err = s.RebuyPlayer(created.ID, alice.ID)
	require.NoError(t, err)
	_, err = s.AddonPlayer(created.ID, alice.ID)
	require.NoError(t, err)

	eliminated, err := s.EliminatePlayer(created.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, eliminated.Position)
	assert.Equal(t, 2, *eliminated.Position)

	rows, err := s.ExportPlayers(created.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Entries)
	assert.Equal(t, 1, rows[0].Addons)

	require.NoError(t, s.RemovePlayer(created.ID, bob.ID))
	rows, err = s.ExportPlayers(created.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

type fakePublisher struct {
	snapshots []models.DisplaySnapshot
}

func (f *fakePublisher) Publish(snapshot models.DisplaySnapshot) {
	f.snapshots = append(f.snapshots, snapshot)
}

func TestDisplaySelectionAndPublishing(t *testing.T) {
	s, _ := setupStore(t)
	shown := createTwoLevel(t, s)
	other, err := s.Create(models.CreateTournamentRequest{Name: "Backroom Game"})
	require.NoError(t, err)

	_, err = s.DisplaySnapshot()
	assert.ErrorIs(t, err, ErrNoDisplaySelected)

	pub := &fakePublisher{}
	s.SetPublisher(pub)

	require.NoError(t, s.SetDisplay(shown.ID))
	require.Len(t, pub.snapshots, 1, "selection publishes immediately")
	assert.Equal(t, shown.ID, pub.snapshots[0].TournamentID)

	// Mutating the displayed tournament republishes; mutating another
	// one does not.
	_, err = s.StartClock(shown.ID)
	require.NoError(t, err)
	_, err = s.StartClock(other.ID)
	require.NoError(t, err)
	assert.Len(t, pub.snapshots, 2)

	snapshot, err := s.DisplaySnapshot()
	require.NoError(t, err)
	assert.Equal(t, shown.ID, snapshot.TournamentID)

	// The snapshot is detached from the owned record.
	snapshot.Tournament.Name = "Vandalized"
	current, err := s.Get(shown.ID)
	require.NoError(t, err)
	assert.Equal(t, "Friday Game", current.Name)
}

func TestSetDisplay_UnknownTournament(t *testing.T) {
	s, _ := setupStore(t)

	assert.ErrorIs(t, s.SetDisplay("nope"), ErrTournamentNotFound)
}

func TestDisplaySelectionSurvivesRestart(t *testing.T) {
	database := setupTestDB(t)
	s1, err := New(database)
	require.NoError(t, err)
	created := createTwoLevel(t, s1)
	require.NoError(t, s1.SetDisplay(created.ID))

	s2, err := New(database)
	require.NoError(t, err)

	snapshot, err := s2.DisplaySnapshot()
	require.NoError(t, err)
	assert.Equal(t, created.ID, snapshot.TournamentID)
}
