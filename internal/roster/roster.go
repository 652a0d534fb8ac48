// Package roster implements the player ledger mutations. All functions
// mutate the tournament record in place and are called by the store under
// its lock; nothing here is safe to call on a shared record without it.
package roster

import (
	"strings"

	"tourney-director/backend/internal/models"

	"github.com/google/uuid"
)

// BonusEntryLevelCutoff is the level index before which a joining player
// still qualifies for the bonus entry chips.
const BonusEntryLevelCutoff = 2

// Admit adds a new player to the tournament. The player starts with one
// entry, the buy-in chips, and the bonus entry chips when the tournament is
// still inside the first two levels and the bonus is enabled. An empty or
// whitespace-only name is rejected with no mutation applied.
func Admit(t *models.Tournament, name string) (*models.Player, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyPlayerName
	}

	cfg := t.Config
	chips := cfg.BuyInChips
	hasBonus := cfg.BonusEntryChipEnabled && t.CurrentLevelIndex < BonusEntryLevelCutoff
	if hasBonus {
		chips += cfg.BonusEntryChips
	}

	player := models.Player{
		ID:                uuid.New().String(),
		Name:              name,
		Entries:           1,
		Rebuys:            0,
		Addons:            0,
		Chips:             chips,
		Active:            true,
		Position:          nil,
		Prize:             0,
		HasBonusEntryChip: hasBonus,
	}

	t.Players = append(t.Players, player)
	return &t.Players[len(t.Players)-1], nil
}

// Rebuy records a rebuy: one more entry, one more rebuy, rebuy chips added
// to the stack. The ledger itself places no eligibility condition on
// rebuys, not even elimination; a director who wants to gate rebuys by
// level or by player status does so before calling.
func Rebuy(t *models.Tournament, playerID string) (*models.Player, error) {
	p, err := find(t, playerID)
	if err != nil {
		return nil, err
	}

	p.Entries++
	p.Rebuys++
	p.Chips += t.Config.RebuyChips
	return p, nil
}

// Addon records an addon purchase.
func Addon(t *models.Tournament, playerID string) (*models.Player, error) {
	p, err := find(t, playerID)
	if err != nil {
		return nil, err
	}

	p.Addons++
	p.Chips += t.Config.AddonChips
	return p, nil
}

// PurchaseExtraChip records the one-time extra chip purchase. A second
// purchase is rejected with no mutation applied.
func PurchaseExtraChip(t *models.Tournament, playerID string) (*models.Player, error) {
	if !t.Config.ExtraChipEnabled {
		return nil, ErrExtraChipNotEnabled
	}

	p, err := find(t, playerID)
	if err != nil {
		return nil, err
	}
	if p.HasExtraChip {
		return nil, ErrExtraChipAlreadyPurchased
	}

	p.HasExtraChip = true
	p.Chips += t.Config.ExtraChipAmount
	return p, nil
}

// Eliminate marks a player as busted out. The finishing position is the
// number of players still active at the moment of elimination, counted
// before this player is marked inactive: the first player out of an
// N-player field finishes Nth, the next one (N-1)th, and so on. The last
// player standing is never assigned position 1 here; that is the external
// finalize step's job.
func Eliminate(t *models.Tournament, playerID string) (*models.Player, error) {
	p, err := find(t, playerID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, ErrPlayerAlreadyEliminated
	}

	position := t.ActivePlayerCount()
	p.Active = false
	p.Position = &position
	return p, nil
}

// Remove deletes a player outright. Unlike Eliminate this erases the
// record entirely; it exists for data-entry corrections, not for busting
// players out.
func Remove(t *models.Tournament, playerID string) error {
	for i := range t.Players {
		if t.Players[i].ID == playerID {
			t.Players = append(t.Players[:i], t.Players[i+1:]...)
			return nil
		}
	}
	return ErrPlayerNotFound
}

// ExportRows returns the flat tabular projection of the ledger handed out
// for download.
func ExportRows(t *models.Tournament) []models.PlayerExportRow {
	rows := make([]models.PlayerExportRow, 0, len(t.Players))
	for _, p := range t.Players {
		var pos *int
		if p.Position != nil {
			v := *p.Position
			pos = &v
		}
		rows = append(rows, models.PlayerExportRow{
			ID:                p.ID,
			Name:              p.Name,
			Entries:           p.Entries,
			Rebuys:            p.Rebuys,
			Addons:            p.Addons,
			HasBonusEntryChip: p.HasBonusEntryChip,
			HasExtraChip:      p.HasExtraChip,
			Chips:             p.Chips,
			Position:          pos,
			Prize:             p.Prize,
		})
	}
	return rows
}

func find(t *models.Tournament, playerID string) (*models.Player, error) {
	for i := range t.Players {
		if t.Players[i].ID == playerID {
			return &t.Players[i], nil
		}
	}
	return nil, ErrPlayerNotFound
}
