package sound

import "github.com/gopxl/beep/v2"

// Device is an open connection to an audio output. It pulls samples from the
// streamer given to Play until it is closed.
type Device interface {
	// Play starts rendering src. It must be called at most once.
	Play(src beep.Streamer) error

	// Close stops rendering and releases the device
	Close() error
}

// Opener acquires an output device.
type Opener func() (Device, error)
