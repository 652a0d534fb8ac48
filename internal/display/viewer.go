package display

import (
	"context"
	"log"
	"time"

	"tourney-director/backend/internal/models"
)

// PollInterval is how often the spectator viewer refreshes its snapshot.
const PollInterval = 2 * time.Second

// Viewer polls the display channel and hands each fresh snapshot to a
// callback. It holds no mutation handle anywhere in the system; losing a
// poll or two only delays the mirror, it never corrupts it.
type Viewer struct {
	channel          *Channel
	stopChan         chan struct{}
	onUpdateCallback func(snapshot models.DisplaySnapshot)
}

// NewViewer creates a new display viewer
func NewViewer(channel *Channel) *Viewer {
	return &Viewer{
		channel:  channel,
		stopChan: make(chan struct{}),
	}
}

// SetOnUpdateCallback sets the callback invoked with every polled
// snapshot.
func (v *Viewer) SetOnUpdateCallback(callback func(snapshot models.DisplaySnapshot)) {
	v.onUpdateCallback = callback
}

// Start begins polling the display channel.
func (v *Viewer) Start() {
	log.Println("[DISPLAY] Viewer started")
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			v.poll()
		case <-v.stopChan:
			log.Println("[DISPLAY] Viewer stopped")
			return
		}
	}
}

// Stop stops the viewer.
func (v *Viewer) Stop() {
	close(v.stopChan)
}

func (v *Viewer) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	snapshot, err := v.channel.Fetch(ctx)
	if err != nil {
		log.Printf("[DISPLAY] Poll failed: %v", err)
		return
	}
	if snapshot == nil {
		return
	}
	if v.onUpdateCallback != nil {
		v.onUpdateCallback(*snapshot)
	}
}
