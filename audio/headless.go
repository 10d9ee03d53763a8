//go:build headless

package audio

import "github.com/d1nch8g/snakeaudio/sound"

// NewPortaudioDevice is unavailable in headless builds.
func NewPortaudioDevice(config Config) (sound.Device, error) {
	return nil, ErrBackendUnavailable
}

// NewOtoDevice is unavailable in headless builds.
func NewOtoDevice(config Config) (sound.Device, error) {
	return nil, ErrBackendUnavailable
}
