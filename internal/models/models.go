package models

import (
	"time"
)

// BlindLevel represents one row of the blind schedule. The position of a
// level inside the schedule slice is its progression order; Level is only
// the label shown on the clock.
type BlindLevel struct {
	Level         int  `json:"level"`
	SmallBlind    int  `json:"small_blind"`
	BigBlind      int  `json:"big_blind"`
	Ante          int  `json:"ante"`
	IsBreak       bool `json:"is_break,omitempty"`
	BreakDuration int  `json:"break_duration,omitempty"` // minutes, only meaningful on breaks
}

// Player represents an entrant in a tournament.
//
// Entries always equals 1 + Rebuys; both counters are only ever moved
// together by the roster operations. Position is set once, when the player
// busts out, and counts down as players are eliminated (first out of an
// N-player field gets position N). The last player standing never gets an
// automatic position.
type Player struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Entries           int     `json:"entries"`
	Rebuys            int     `json:"rebuys"`
	Addons            int     `json:"addons"`
	Chips             int     `json:"chips"`
	Active            bool    `json:"active"`
	Position          *int    `json:"position,omitempty"`
	Prize             float64 `json:"prize"`
	HasBonusEntryChip bool    `json:"has_bonus_entry_chip"`
	HasExtraChip      bool    `json:"has_extra_chip"`
}

// TournamentConfig holds the financial and scoring configuration of a
// tournament. Monetary values and the fee percent are taken as configured;
// the director is trusted not to enter nonsense.
type TournamentConfig struct {
	LevelDuration         int     `json:"level_duration"` // minutes per regular level
	BuyInValue            float64 `json:"buy_in_value"`
	BuyInChips            int     `json:"buy_in_chips"`
	RebuyValue            float64 `json:"rebuy_value"`
	RebuyChips            int     `json:"rebuy_chips"`
	AddonValue            float64 `json:"addon_value"`
	AddonChips            int     `json:"addon_chips"`
	AdminFeePercent       float64 `json:"admin_fee_percent"`
	StageWeight           float64 `json:"stage_weight"`
	BonusEntryChipEnabled bool    `json:"bonus_entry_chip_enabled"`
	BonusEntryChips       int     `json:"bonus_entry_chips"` // extra starting chips for early admission
	ExtraChipEnabled      bool    `json:"extra_chip_enabled"`
	ExtraChipValue        float64 `json:"extra_chip_value"` // cost, added to the player's contribution
	ExtraChipAmount       int     `json:"extra_chip_amount"`
	RankingStrategy       string  `json:"ranking_strategy,omitempty"`
}

// Tournament is the full state of one tournament as owned by the store.
type Tournament struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Blinds            []BlindLevel     `json:"blinds"`
	CurrentLevelIndex int              `json:"current_level_index"`
	TimeLeft          int              `json:"time_left"` // seconds remaining in the current level
	IsRunning         bool             `json:"is_running"`
	Players           []Player         `json:"players"`
	Config            TournamentConfig `json:"config"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Clone returns a deep copy of the tournament. Consumers outside the store
// only ever see clones, never the owned record.
func (t *Tournament) Clone() *Tournament {
	c := *t
	c.Blinds = make([]BlindLevel, len(t.Blinds))
	copy(c.Blinds, t.Blinds)
	c.Players = make([]Player, len(t.Players))
	for i, p := range t.Players {
		if p.Position != nil {
			pos := *p.Position
			p.Position = &pos
		}
		c.Players[i] = p
	}
	return &c
}

// ActivePlayerCount returns the number of players still in the tournament.
func (t *Tournament) ActivePlayerCount() int {
	n := 0
	for _, p := range t.Players {
		if p.Active {
			n++
		}
	}
	return n
}

// TournamentPatch is a partial update merged over a tournament record.
// Nil fields are left untouched. This is the sole mutation entry point
// exposed to UI collaborators.
type TournamentPatch struct {
	Name              *string           `json:"name,omitempty"`
	Blinds            *[]BlindLevel     `json:"blinds,omitempty"`
	CurrentLevelIndex *int              `json:"current_level_index,omitempty"`
	TimeLeft          *int              `json:"time_left,omitempty"`
	IsRunning         *bool             `json:"is_running,omitempty"`
	Players           *[]Player         `json:"players,omitempty"`
	Config            *TournamentConfig `json:"config,omitempty"`
}

// CreateTournamentRequest represents the request to create a tournament
type CreateTournamentRequest struct {
	Name           string            `json:"name" binding:"required"`
	SchedulePreset string            `json:"schedule_preset,omitempty"`
	CustomBlinds   []BlindLevel      `json:"custom_blinds,omitempty"`
	Config         *TournamentConfig `json:"config,omitempty"`
}

// PlayerExportRow is the flat projection of the player ledger handed to
// collaborators for download. Encoding is their concern, not the core's.
type PlayerExportRow struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Entries           int     `json:"entries"`
	Rebuys            int     `json:"rebuys"`
	Addons            int     `json:"addons"`
	HasBonusEntryChip bool    `json:"has_bonus_entry_chip"`
	HasExtraChip      bool    `json:"has_extra_chip"`
	Chips             int     `json:"chips"`
	Position          *int    `json:"position,omitempty"`
	Prize             float64 `json:"prize"`
}

// DisplaySnapshot is what the spectator window sees: the currently displayed
// tournament plus its id, refreshed on every mutation of that tournament.
type DisplaySnapshot struct {
	TournamentID string      `json:"tournament_id"`
	Tournament   *Tournament `json:"tournament"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// TournamentSnapshot is the persisted form of a tournament: one JSON blob
// per tournament keyed by id.
type TournamentSnapshot struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Data      string    `gorm:"column:data;type:json" json:"data"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for TournamentSnapshot model
func (TournamentSnapshot) TableName() string {
	return "tournament_snapshots"
}

// DirectorState is a small key/value table for state that isn't a
// tournament, such as which tournament the spectator display mirrors.
type DirectorState struct {
	Key       string    `gorm:"column:key;type:varchar(64);primaryKey" json:"key"`
	Value     string    `gorm:"column:value;type:text" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for DirectorState model
func (DirectorState) TableName() string {
	return "director_state"
}
