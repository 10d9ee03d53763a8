package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/d1nch8g/snakeaudio/sound"
)

// NullDevice consumes samples in real time and discards them. It keeps
// sources draining on machines without a sound card.
type NullDevice struct {
	config Config

	mutex     sync.Mutex
	started   bool
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewNullDevice creates a device that renders to nowhere.
func NewNullDevice(config Config) *NullDevice {
	return &NullDevice{config: config, done: make(chan struct{})}
}

// Play pulls one buffer from src every buffer period.
func (d *NullDevice) Play(src beep.Streamer) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.started {
		return errors.New("device already playing")
	}
	d.started = true

	period := time.Duration(d.config.FramesPerBuffer) * time.Second / time.Duration(d.config.SampleRate)
	r := sound.NewRenderer(src, d.config.OutputChannels)
	buf := make([]float32, d.config.FramesPerBuffer*d.config.OutputChannels)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-d.done:
				return
			case <-ticker.C:
				r.Fill(buf)
			}
		}
	}()
	return nil
}

// Close stops the pull loop.
func (d *NullDevice) Close() error {
	d.closeOnce.Do(func() {
		close(d.done)
		d.wg.Wait()
	})
	return nil
}
