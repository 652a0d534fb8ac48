// Package display is the spectator side of the system: a secondary,
// read-only channel carrying a snapshot of the currently displayed
// tournament. The control panel publishes after every mutation; the
// spectator window polls at a fixed interval and can never write back.
package display

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"tourney-director/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// DefaultSnapshotKey is the key the displayed tournament snapshot lives
// under.
const DefaultSnapshotKey = "tourney-director:display"

// Config holds Redis configuration for the display channel
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
	Key      string
}

// Channel is the shared snapshot slot between the control panel and the
// spectator display. Writes are last-write-wins; reads see whatever was
// most recently published.
type Channel struct {
	client *redis.Client
	key    string
}

// NewChannel connects to Redis and returns the display channel.
func NewChannel(cfg Config) (*Channel, error) {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Printf("[DISPLAY] Connecting to Redis at %s...", addr)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	key := cfg.Key
	if key == "" {
		key = DefaultSnapshotKey
	}

	log.Printf("[DISPLAY] Connected to Redis at %s", addr)
	return &Channel{client: client, key: key}, nil
}

// Close closes the underlying Redis connection.
func (c *Channel) Close() error {
	return c.client.Close()
}

// Publish overwrites the display snapshot. Implements the store's
// DisplayPublisher; failures are logged and dropped, the display is an
// eventually-consistent mirror and the next mutation republishes anyway.
func (c *Channel) Publish(snapshot models.DisplaySnapshot) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("[DISPLAY] Failed to encode snapshot: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := c.client.Set(ctx, c.key, data, 0).Err(); err != nil {
		log.Printf("[DISPLAY] Failed to publish snapshot: %v", err)
	}
}

// Fetch reads the current snapshot. A missing key returns (nil, nil); a
// snapshot that fails to decode is treated the same way, as if nothing had
// been published yet.
func (c *Channel) Fetch(ctx context.Context) (*models.DisplaySnapshot, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read display snapshot: %w", err)
	}

	var snapshot models.DisplaySnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		log.Printf("[DISPLAY] Discarding corrupt snapshot: %v", err)
		return nil, nil
	}
	return &snapshot, nil
}
