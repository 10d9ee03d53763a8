package audio

import (
	"errors"
	"fmt"

	"github.com/d1nch8g/snakeaudio/sound"
)

var (
	// ErrUnknownBackend is returned for a backend name Open does not know
	ErrUnknownBackend = errors.New("unknown audio backend")

	// ErrBackendUnavailable is returned by backends compiled out of the binary
	ErrBackendUnavailable = errors.New("audio backend not available in this build")
)

// Backend names accepted in Config.Backend.
const (
	BackendPortaudio = "portaudio"
	BackendOto       = "oto"
	BackendNull      = "null"
)

// Config describes the output stream a device is opened with.
type Config struct {
	Backend         string
	SampleRate      int
	FramesPerBuffer int
	OutputChannels  int
}

// GetDefaultConfig returns a stereo 48 kHz portaudio configuration.
func GetDefaultConfig() Config {
	return Config{
		Backend:         BackendPortaudio,
		SampleRate:      48000,
		FramesPerBuffer: 1024,
		OutputChannels:  2,
	}
}

// NewOpener returns a function that opens the configured backend. The device
// itself is only acquired when the opener is called, so the caller decides
// which goroutine owns it.
func NewOpener(config Config) (sound.Opener, error) {
	if config.SampleRate <= 0 || config.FramesPerBuffer <= 0 || config.OutputChannels <= 0 {
		return nil, fmt.Errorf("invalid audio config: %d Hz, %d frames, %d channels",
			config.SampleRate, config.FramesPerBuffer, config.OutputChannels)
	}

	switch config.Backend {
	case BackendPortaudio:
		return func() (sound.Device, error) {
			d, err := NewPortaudioDevice(config)
			if err != nil {
				return nil, err
			}
			return d, nil
		}, nil
	case BackendOto:
		return func() (sound.Device, error) {
			d, err := NewOtoDevice(config)
			if err != nil {
				return nil, err
			}
			return d, nil
		}, nil
	case BackendNull:
		return func() (sound.Device, error) { return NewNullDevice(config), nil }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, config.Backend)
}
