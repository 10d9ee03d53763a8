package engine

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"

	"github.com/d1nch8g/snakeaudio/sound"
	"github.com/d1nch8g/snakeaudio/synth"
)

// maxEffectAmp caps the gain applied to a single effect
const maxEffectAmp = 2.0

// procedural lists the effects rendered on demand instead of decoded.
var procedural = map[string]func() *sound.Waveform{
	"enemy_pickup": synth.RivalPickup,
}

// musicState is the music slot: musicStopped or musicPlaying.
type musicState interface {
	musicState()
}

type musicStopped struct{}

type musicPlaying struct {
	sink *sound.Sink
	gain float64
}

func (musicStopped) musicState() {}
func (musicPlaying) musicState() {}

// worker holds everything that must only be touched from the worker goroutine.
type worker struct {
	library Library
	device  sound.Device
	output  *sound.Output
	effects *sound.Sink
	music   musicState
}

func newWorker(config EngineConfig) (*worker, error) {
	if config.Open == nil {
		return nil, errors.New("no output device configured")
	}

	device, err := config.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open output device: %w", err)
	}

	output := sound.NewOutput(config.SampleRate)
	if err := device.Play(output); err != nil {
		device.Close()
		return nil, fmt.Errorf("failed to start output device: %w", err)
	}

	// One persistent effects sink; effects are mixed into it as they arrive
	fx, err := output.NewSink()
	if err != nil {
		device.Close()
		return nil, fmt.Errorf("failed to create effects sink: %w", err)
	}
	fx.SetVolume(1.0)

	return &worker{
		library: config.Library,
		device:  device,
		output:  output,
		effects: fx,
		music:   musicStopped{},
	}, nil
}

func (w *worker) handle(cmd Command) error {
	switch c := cmd.(type) {
	case PlayEffect:
		return w.playEffect(c)
	case StartMusic:
		return w.startMusic(c)
	case StopMusic:
		w.stopMusic()
		return nil
	case SetMusicGain:
		w.setMusicGain(c)
		return nil
	}
	return fmt.Errorf("unknown command %T", cmd)
}

func (w *worker) playEffect(c PlayEffect) error {
	wave, err := w.effectWaveform(c.Name)
	if err != nil {
		return err
	}
	if wave == nil {
		// Unknown names are dropped silently
		return nil
	}

	wave, err = wave.Resample(w.output.Rate())
	if err != nil {
		return fmt.Errorf("failed to resample effect %q: %w", c.Name, err)
	}

	gain := clamp(c.Gain, 0, maxEffectAmp)
	w.effects.Append(&effects.Gain{Streamer: wave.Streamer(), Gain: gain - 1})
	return nil
}

// effectWaveform returns nil without error for names nobody knows.
func (w *worker) effectWaveform(name string) (*sound.Waveform, error) {
	if gen, ok := procedural[name]; ok {
		return gen(), nil
	}

	data, ok := w.library.Effect(name)
	if !ok {
		return nil, nil
	}

	wave, err := sound.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode effect %q: %w", name, err)
	}
	return wave, nil
}

func (w *worker) startMusic(c StartMusic) error {
	if m, ok := w.music.(musicPlaying); ok {
		// Already playing: adjust in place, never restart the track
		m.sink.SetVolume(c.Gain)
		m.gain = c.Gain
		w.music = m
		return nil
	}

	wave, err := sound.Decode(w.library.Music())
	if err != nil {
		return fmt.Errorf("failed to decode music: %w", err)
	}
	wave, err = wave.Resample(w.output.Rate())
	if err != nil {
		return fmt.Errorf("failed to resample music: %w", err)
	}

	sink, err := w.output.NewSink()
	if err != nil {
		return fmt.Errorf("failed to create music sink: %w", err)
	}
	sink.SetVolume(c.Gain)
	sink.Append(beep.Loop(-1, wave.Streamer()))

	w.music = musicPlaying{sink: sink, gain: c.Gain}
	return nil
}

func (w *worker) stopMusic() {
	if m, ok := w.music.(musicPlaying); ok {
		m.sink.Stop()
	}
	w.music = musicStopped{}
}

func (w *worker) setMusicGain(c SetMusicGain) {
	m, ok := w.music.(musicPlaying)
	if !ok {
		return
	}
	m.sink.SetVolume(c.Gain)
	m.gain = c.Gain
	w.music = m
}

func (w *worker) close() {
	w.stopMusic()
	w.effects.Stop()
	w.output.Close()
	if err := w.device.Close(); err != nil {
		log.Printf("Error closing output device: %v", err)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
