// The spectator is a separate process mirroring the displayed tournament
// onto a second screen. It polls the shared snapshot and renders; it has
// no way to mutate tournament state.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"tourney-director/backend/internal/display"
	"tourney-director/backend/internal/models"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	channel, err := display.NewChannel(display.Config{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
		Key:      getEnv("DISPLAY_KEY", display.DefaultSnapshotKey),
	})
	if err != nil {
		log.Fatalf("Failed to open display channel: %v", err)
	}
	defer channel.Close()

	viewer := display.NewViewer(channel)
	viewer.SetOnUpdateCallback(render)
	viewer.Start()
}

func render(snapshot models.DisplaySnapshot) {
	t := snapshot.Tournament
	if t == nil {
		return
	}

	level := t.Blinds[t.CurrentLevelIndex]
	state := "PAUSED"
	if t.IsRunning {
		state = "RUNNING"
	}

	if level.IsBreak {
		fmt.Printf("%s | BREAK | %s | %d players\n",
			t.Name, formatClock(t.TimeLeft), t.ActivePlayerCount())
		return
	}

	fmt.Printf("%s | Level %d (%d/%d ante %d) | %s | %s | %d players\n",
		t.Name, level.Level, level.SmallBlind, level.BigBlind, level.Ante,
		formatClock(t.TimeLeft), state, t.ActivePlayerCount())
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
