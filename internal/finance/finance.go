// Package finance derives the prize pool from the player ledger and the
// tournament's fee and value configuration. Everything here is a pure
// function over its inputs; no rounding is applied, presentation rounding
// belongs to whoever renders the number.
package finance

import (
	"tourney-director/backend/internal/models"
)

// PlayerGross returns a player's gross contribution: every entry (the
// original buy-in plus each rebuy) at the buy-in value, addons at the
// addon value, and the extra chip purchase if taken. Eliminated players
// contribute like anyone else; money in the pool is sunk.
func PlayerGross(p models.Player, cfg models.TournamentConfig) float64 {
	gross := float64(p.Entries)*cfg.BuyInValue + float64(p.Addons)*cfg.AddonValue
	if p.HasExtraChip {
		gross += cfg.ExtraChipValue
	}
	return gross
}

// PlayerNet returns a player's contribution after the admin fee. The fee
// percent is applied exactly as configured, even outside [0,100]; a fee of
// 150 is an operator mistake the engine passes through rather than hiding
// behind a clamp.
func PlayerNet(p models.Player, cfg models.TournamentConfig) float64 {
	return PlayerGross(p, cfg) * (1 - cfg.AdminFeePercent/100)
}

// PrizePool returns the total prize pool: the sum of net contributions of
// all players, active and eliminated alike.
func PrizePool(players []models.Player, cfg models.TournamentConfig) float64 {
	total := 0.0
	for _, p := range players {
		total += PlayerNet(p, cfg)
	}
	return total
}
