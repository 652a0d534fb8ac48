package display

import (
	"net/http"

	"tourney-director/backend/internal/display"
	"tourney-director/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// HandleSelectDisplay chooses which tournament the spectator display
// mirrors and pushes a fresh snapshot to the channel immediately.
func HandleSelectDisplay(c *gin.Context, st *store.Store) {
	if err := st.SetDisplay(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Display updated"})
}

// HandleGetDisplay serves the spectator poll. It reads the shared channel
// when one is configured, falling back to the store's read-only snapshot
// accessor when running without Redis. Either way the spectator only ever
// sees a copy.
func HandleGetDisplay(c *gin.Context, st *store.Store, channel *display.Channel) {
	if channel != nil {
		snapshot, err := channel.Fetch(c.Request.Context())
		if err == nil && snapshot != nil {
			c.JSON(http.StatusOK, snapshot)
			return
		}
	}

	snapshot, err := st.DisplaySnapshot()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
