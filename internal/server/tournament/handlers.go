package tournament

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tourney-director/backend/internal/finance"
	"tourney-director/backend/internal/models"
	"tourney-director/backend/internal/ranking"
	"tourney-director/backend/internal/roster"
	"tourney-director/backend/internal/schedule"
	"tourney-director/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// HandleCreateTournament creates a new tournament
func HandleCreateTournament(c *gin.Context, st *store.Store) {
	var req models.CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	tourney, err := st.Create(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, tourney)
}

// HandleListTournaments lists all tournaments
func HandleListTournaments(c *gin.Context, st *store.Store) {
	c.JSON(http.StatusOK, st.List())
}

// HandleGetTournament gets a tournament by ID
func HandleGetTournament(c *gin.Context, st *store.Store) {
	tourney, err := st.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
		return
	}

	c.JSON(http.StatusOK, tourney)
}

// HandlePatchTournament merges a partial update into a tournament. This is
// the catch-all mutation entry point the control panel uses for everything
// that isn't a dedicated clock or roster operation.
func HandlePatchTournament(c *gin.Context, st *store.Store) {
	var patch models.TournamentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	tourney, err := st.ApplyPatch(c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrTournamentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tourney)
}

// HandleRemoveTournament deletes a tournament
func HandleRemoveTournament(c *gin.Context, st *store.Store) {
	if err := st.Remove(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tournament removed"})
}

// HandleStartClock starts a tournament's clock
func HandleStartClock(c *gin.Context, st *store.Store) {
	clockAction(c, st.StartClock)
}

// HandlePauseClock pauses a tournament's clock
func HandlePauseClock(c *gin.Context, st *store.Store) {
	clockAction(c, st.PauseClock)
}

// HandleResetClock resets a tournament's clock to the first level
func HandleResetClock(c *gin.Context, st *store.Store) {
	clockAction(c, st.ResetClock)
}

func clockAction(c *gin.Context, action func(string) (*models.Tournament, error)) {
	tourney, err := action(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tourney)
}

// HandleJumpLevel moves the current level by a signed delta, clamped to
// the schedule bounds.
func HandleJumpLevel(c *gin.Context, st *store.Store) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	tourney, err := st.JumpLevel(c.Param("id"), req.Delta)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tourney)
}

// HandleAdmitPlayer admits a new player to the roster
func HandleAdmitPlayer(c *gin.Context, st *store.Store) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	player, err := st.AdmitPlayer(c.Param("id"), req.Name)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, store.ErrTournamentNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, player)
}

// HandleRebuy records a rebuy for a player
func HandleRebuy(c *gin.Context, st *store.Store) {
	playerAction(c, st.RebuyPlayer)
}

// HandleAddon records an addon for a player
func HandleAddon(c *gin.Context, st *store.Store) {
	playerAction(c, st.AddonPlayer)
}

// HandleExtraChip records the one-time extra chip purchase for a player
func HandleExtraChip(c *gin.Context, st *store.Store) {
	playerAction(c, st.PurchaseExtraChip)
}

// HandleEliminate busts a player out of the tournament
func HandleEliminate(c *gin.Context, st *store.Store) {
	playerAction(c, st.EliminatePlayer)
}

func playerAction(c *gin.Context, action func(string, string) (*models.Player, error)) {
	player, err := action(c.Param("id"), c.Param("playerId"))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, store.ErrTournamentNotFound) || errors.Is(err, roster.ErrPlayerNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, player)
}

// HandleRemovePlayer deletes a player record outright (data-entry
// correction, not an elimination).
func HandleRemovePlayer(c *gin.Context, st *store.Store) {
	if err := st.RemovePlayer(c.Param("id"), c.Param("playerId")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Player removed"})
}

// HandleGetPrizePool returns the derived prize pool for a tournament
func HandleGetPrizePool(c *gin.Context, st *store.Store) {
	tourney, err := st.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tournament_id": tourney.ID,
		"prize_pool":    finance.PrizePool(tourney.Players, tourney.Config),
	})
}

// HandleGetRanking returns the ranking for a tournament. The strategy
// comes from the tournament config, overridable with ?strategy=.
func HandleGetRanking(c *gin.Context, st *store.Store) {
	tourney, err := st.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
		return
	}

	name := c.DefaultQuery("strategy", tourney.Config.RankingStrategy)
	strategy, err := ranking.Resolve(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := ranking.Compute(tourney.Players, tourney.Config, strategy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tournament_id": tourney.ID,
		"strategy":      strategy,
		"description":   ranking.Describe(strategy),
		"ranking":       entries,
	})
}

// HandleListSchedulePresets lists the named blind structure presets.
func HandleListSchedulePresets(c *gin.Context) {
	presets := make([]gin.H, 0)
	for _, name := range schedule.PresetNames() {
		levels, _ := schedule.GetPreset(name)
		presets = append(presets, gin.H{
			"name":   name,
			"levels": levels,
		})
	}
	c.JSON(http.StatusOK, presets)
}

// HandleListRankingStrategies lists the enumerated ranking strategies with
// their fixed descriptions.
func HandleListRankingStrategies(c *gin.Context) {
	strategies := make([]gin.H, 0)
	for _, s := range ranking.Strategies() {
		strategies = append(strategies, gin.H{
			"name":        s,
			"description": ranking.Describe(s),
		})
	}
	c.JSON(http.StatusOK, strategies)
}

// HandleExportPlayers streams the player ledger as CSV for download. The
// core only supplies the flat projection; the encoding lives here.
func HandleExportPlayers(c *gin.Context, st *store.Store) {
	rows, err := st.ExportPlayers(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=players-%s.csv", c.Param("id")))

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"id", "name", "entries", "rebuys", "addons", "bonus_entry_chip", "extra_chip", "chips", "position", "prize"})
	for _, row := range rows {
		position := ""
		if row.Position != nil {
			position = strconv.Itoa(*row.Position)
		}
		_ = w.Write([]string{
			row.ID,
			row.Name,
			strconv.Itoa(row.Entries),
			strconv.Itoa(row.Rebuys),
			strconv.Itoa(row.Addons),
			strconv.FormatBool(row.HasBonusEntryChip),
			strconv.FormatBool(row.HasExtraChip),
			strconv.Itoa(row.Chips),
			position,
			strconv.FormatFloat(row.Prize, 'f', 2, 64),
		})
	}
	w.Flush()
}
