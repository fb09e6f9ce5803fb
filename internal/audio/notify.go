package audio

import (
	"log"
	"sync"

	"github.com/gen2brain/beeep"
)

// Notifier sends desktop notifications for completed intervals.
type Notifier struct {
	mu      sync.Mutex
	enabled bool
}

// NewNotifier creates a notifier.
func NewNotifier(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// SetEnabled toggles notifications.
func (notifier *Notifier) SetEnabled(enabled bool) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.enabled = enabled
}

// Notify sends a notification without blocking the caller.
func (notifier *Notifier) Notify(title, message string) {
	notifier.mu.Lock()
	enabled := notifier.enabled
	notifier.mu.Unlock()
	if !enabled {
		return
	}

	go func() {
		if err := beeep.Notify(title, message, ""); err != nil {
			log.Printf("desktop notification: %v", err)
		}
	}()
}
