package main

import (
	"log"

	"tourney-director/backend/internal/clock"
	"tourney-director/backend/internal/db"
	"tourney-director/backend/internal/display"
	"tourney-director/backend/internal/store"

	displayHandlers "tourney-director/backend/internal/server/display"
	tournamentHandlers "tourney-director/backend/internal/server/tournament"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server holds all dependencies and configuration for the director server
type Server struct {
	config Config
	db     *db.DB

	store          *store.Store
	scheduler      *clock.Scheduler
	displayChannel *display.Channel
}

// NewServer creates and initializes a new Server instance
func NewServer(config Config) (*Server, error) {
	database, err := db.New(config.DBConfig)
	if err != nil {
		return nil, err
	}

	st, err := store.New(database.DB)
	if err != nil {
		return nil, err
	}

	server := &Server{
		config:    config,
		db:        database,
		store:     st,
		scheduler: clock.NewScheduler(st),
	}

	// The display channel is optional: without Redis the spectator window
	// falls back to polling this process directly.
	if config.DisplayEnabled {
		channel, err := display.NewChannel(config.DisplayConfig)
		if err != nil {
			log.Printf("[DISPLAY] Channel unavailable, spectator polls fall back to the store: %v", err)
		} else {
			server.displayChannel = channel
			st.SetPublisher(channel)
		}
	}

	return server, nil
}

// Router builds the gin router with all routes registered.
func (s *Server) Router() *gin.Engine {
	if s.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	// Tournament collection
	r.POST("/api/tournaments", func(c *gin.Context) { tournamentHandlers.HandleCreateTournament(c, s.store) })
	r.GET("/api/tournaments", func(c *gin.Context) { tournamentHandlers.HandleListTournaments(c, s.store) })
	r.GET("/api/tournaments/:id", func(c *gin.Context) { tournamentHandlers.HandleGetTournament(c, s.store) })
	r.PATCH("/api/tournaments/:id", func(c *gin.Context) { tournamentHandlers.HandlePatchTournament(c, s.store) })
	r.DELETE("/api/tournaments/:id", func(c *gin.Context) { tournamentHandlers.HandleRemoveTournament(c, s.store) })

	// Clock controls
	r.POST("/api/tournaments/:id/clock/start", func(c *gin.Context) { tournamentHandlers.HandleStartClock(c, s.store) })
	r.POST("/api/tournaments/:id/clock/pause", func(c *gin.Context) { tournamentHandlers.HandlePauseClock(c, s.store) })
	r.POST("/api/tournaments/:id/clock/reset", func(c *gin.Context) { tournamentHandlers.HandleResetClock(c, s.store) })
	r.POST("/api/tournaments/:id/clock/jump", func(c *gin.Context) { tournamentHandlers.HandleJumpLevel(c, s.store) })

	// Player ledger
	r.POST("/api/tournaments/:id/players", func(c *gin.Context) { tournamentHandlers.HandleAdmitPlayer(c, s.store) })
	r.POST("/api/tournaments/:id/players/:playerId/rebuy", func(c *gin.Context) { tournamentHandlers.HandleRebuy(c, s.store) })
	r.POST("/api/tournaments/:id/players/:playerId/addon", func(c *gin.Context) { tournamentHandlers.HandleAddon(c, s.store) })
	r.POST("/api/tournaments/:id/players/:playerId/extra-chip", func(c *gin.Context) { tournamentHandlers.HandleExtraChip(c, s.store) })
	r.POST("/api/tournaments/:id/players/:playerId/eliminate", func(c *gin.Context) { tournamentHandlers.HandleEliminate(c, s.store) })
	r.DELETE("/api/tournaments/:id/players/:playerId", func(c *gin.Context) { tournamentHandlers.HandleRemovePlayer(c, s.store) })

	// Derived views
	r.GET("/api/tournaments/:id/prize-pool", func(c *gin.Context) { tournamentHandlers.HandleGetPrizePool(c, s.store) })
	r.GET("/api/tournaments/:id/ranking", func(c *gin.Context) { tournamentHandlers.HandleGetRanking(c, s.store) })
	r.GET("/api/tournaments/:id/export", func(c *gin.Context) { tournamentHandlers.HandleExportPlayers(c, s.store) })
	r.GET("/api/ranking-strategies", tournamentHandlers.HandleListRankingStrategies)
	r.GET("/api/schedule-presets", tournamentHandlers.HandleListSchedulePresets)

	// Spectator display
	r.POST("/api/display/:id", func(c *gin.Context) { displayHandlers.HandleSelectDisplay(c, s.store) })
	r.GET("/api/display", func(c *gin.Context) { displayHandlers.HandleGetDisplay(c, s.store, s.displayChannel) })

	return r
}

// Start launches the background services.
func (s *Server) Start() {
	go s.scheduler.Start()
}

// Shutdown stops background services and closes connections.
func (s *Server) Shutdown() {
	s.scheduler.Stop()
	if s.displayChannel != nil {
		if err := s.displayChannel.Close(); err != nil {
			log.Printf("[DISPLAY] Error closing channel: %v", err)
		}
	}
}
