// Package control is the synchronous entry point game code uses to request
// playback. Every call validates its input, enqueues at most one command and
// returns without waiting for audio.
package control

import (
	"fmt"

	"github.com/d1nch8g/snakeaudio/engine"
)

const (
	// SilenceThreshold is the volume at or below which a request is dropped
	SilenceThreshold = 0.0001

	// MaxEffectGain and MaxMusicGain bound the gain sent to the engine
	MaxEffectGain = 1.5
	MaxMusicGain  = 1.0
)

// Sender accepts commands for the audio worker
type Sender interface {
	Send(cmd engine.Command) error
}

// Controller validates playback requests and forwards them to a Sender.
type Controller struct {
	sender Sender
}

// New creates a controller sending to s
func New(s Sender) *Controller {
	return &Controller{sender: s}
}

// PlayEffect plays the named effect. Muted or silent requests are dropped.
func (c *Controller) PlayEffect(name string, volume float64, muted bool) error {
	if silent(volume, muted) {
		return nil
	}
	return c.send(engine.PlayEffect{Name: name, Gain: clamp(volume, MaxEffectGain)})
}

// StartMusic starts the background track or adjusts its volume when it is
// already playing. Muted or silent requests are dropped.
func (c *Controller) StartMusic(volume float64, muted bool) error {
	if silent(volume, muted) {
		return nil
	}
	return c.send(engine.StartMusic{Gain: clamp(volume, MaxMusicGain)})
}

// StopMusic stops the background track.
func (c *Controller) StopMusic() error {
	return c.send(engine.StopMusic{})
}

// SetMusicVolume changes the background track volume. Muting, or turning the
// volume down to silence, stops the track so its sink is released.
func (c *Controller) SetMusicVolume(volume float64, muted bool) error {
	if silent(volume, muted) {
		return c.send(engine.StopMusic{})
	}
	return c.send(engine.SetMusicGain{Gain: clamp(volume, MaxMusicGain)})
}

func (c *Controller) send(cmd engine.Command) error {
	if err := c.sender.Send(cmd); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// silent also catches NaN, which fails every comparison
func silent(volume float64, muted bool) bool {
	return muted || !(volume > SilenceThreshold)
}

func clamp(v, hi float64) float64 {
	if v > hi {
		return hi
	}
	return v
}
