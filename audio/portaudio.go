//go:build !headless

package audio

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gordonklaus/portaudio"

	"github.com/d1nch8g/snakeaudio/sound"
)

// PortaudioDevice renders through a blocking PortAudio output stream.
type PortaudioDevice struct {
	config Config
	stream *portaudio.Stream
	buffer []float32

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	started   bool
}

// NewPortaudioDevice initializes PortAudio and opens the default output stream.
func NewPortaudioDevice(config Config) (*PortaudioDevice, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	d := &PortaudioDevice{
		config: config,
		buffer: make([]float32, config.FramesPerBuffer*config.OutputChannels),
		done:   make(chan struct{}),
	}

	stream, err := portaudio.OpenDefaultStream(
		0,
		config.OutputChannels,
		float64(config.SampleRate),
		config.FramesPerBuffer,
		d.buffer,
	)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open audio stream: %w", err)
	}
	d.stream = stream
	return d, nil
}

// Play starts the stream and a goroutine that keeps it fed from src.
func (d *PortaudioDevice) Play(src beep.Streamer) error {
	if d.started {
		return errors.New("device already playing")
	}
	if err := d.stream.Start(); err != nil {
		return fmt.Errorf("failed to start audio stream: %w", err)
	}
	d.started = true

	r := sound.NewRenderer(src, d.config.OutputChannels)
	d.wg.Add(1)
	go d.pump(r)
	return nil
}

func (d *PortaudioDevice) pump(r *sound.Renderer) {
	defer d.wg.Done()

	for {
		select {
		case <-d.done:
			return
		default:
		}

		r.Fill(d.buffer)
		if err := d.stream.Write(); err != nil {
			if errors.Is(err, portaudio.OutputUnderflowed) {
				continue
			}
			// The device went away; stay silent rather than spin on errors
			log.Printf("Audio device lost: %v", err)
			return
		}
	}
}

// Close stops the stream and terminates PortAudio.
func (d *PortaudioDevice) Close() error {
	var err error
	d.closeOnce.Do(func() {
		close(d.done)
		d.wg.Wait()

		if d.started {
			if stopErr := d.stream.Stop(); stopErr != nil {
				log.Printf("Error stopping audio stream: %v", stopErr)
			}
		}
		err = d.stream.Close()
		portaudio.Terminate()
	})
	return err
}
