// Package audio plays interval-completion cues through the system beeper.
// Everything here is fire-and-forget: a missing or broken audio backend is
// logged and otherwise ignored, it must never stall the timer.
package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
)

const (
	toneDurationMillis = 400
	loopPause          = 2 * time.Second
)

// Cue plays a one-shot or looping completion tone.
type Cue struct {
	mu      sync.Mutex
	enabled bool
	stop    chan struct{}
}

// NewCue creates a cue. A disabled cue silently drops every request.
func NewCue(enabled bool) *Cue {
	return &Cue{enabled: enabled}
}

// SetEnabled toggles the cue. Disabling silences a looping tone immediately.
func (cue *Cue) SetEnabled(enabled bool) {
	cue.mu.Lock()
	defer cue.mu.Unlock()
	cue.enabled = enabled
	if !enabled {
		cue.stopLocked()
	}
}

// PlayTone plays the completion tone, looping until Stop when loop is true.
func (cue *Cue) PlayTone(loop bool) {
	cue.mu.Lock()
	defer cue.mu.Unlock()
	cue.stopLocked()
	if !cue.enabled {
		return
	}

	if !loop {
		go playBeep()
		return
	}

	stop := make(chan struct{})
	cue.stop = stop
	go loopBeep(stop)
}

// Stop silences a looping tone. A one-shot tone already in flight finishes.
func (cue *Cue) Stop() {
	cue.mu.Lock()
	defer cue.mu.Unlock()
	cue.stopLocked()
}

func (cue *Cue) stopLocked() {
	if cue.stop != nil {
		close(cue.stop)
		cue.stop = nil
	}
}

func loopBeep(stop chan struct{}) {
	for {
		playBeep()
		select {
		case <-stop:
			return
		case <-time.After(loopPause):
		}
	}
}

func playBeep() {
	if err := beeep.Beep(beeep.DefaultFreq, toneDurationMillis); err != nil {
		log.Printf("play tone: %v", err)
	}
}
