//go:build !headless

package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep/v2"

	"github.com/d1nch8g/snakeaudio/sound"
)

// OtoDevice renders through an oto v3 context. oto allows one context per
// process, so at most one OtoDevice can be opened.
type OtoDevice struct {
	config Config
	ctx    *oto.Context
	player *oto.Player
	mutex  sync.Mutex
}

// NewOtoDevice creates the oto context and waits until it is ready.
func NewOtoDevice(config Config) (*OtoDevice, error) {
	op := &oto.NewContextOptions{
		SampleRate:   config.SampleRate,
		ChannelCount: config.OutputChannels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(config.FramesPerBuffer) * time.Second / time.Duration(config.SampleRate),
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	return &OtoDevice{config: config, ctx: ctx}, nil
}

// Play hands src to an oto player pulling float32 frames.
func (d *OtoDevice) Play(src beep.Streamer) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.player != nil {
		return errors.New("device already playing")
	}
	if err := d.ctx.Resume(); err != nil {
		return fmt.Errorf("failed to resume oto context: %w", err)
	}

	d.player = d.ctx.NewPlayer(&otoReader{
		r:        sound.NewRenderer(src, d.config.OutputChannels),
		channels: d.config.OutputChannels,
	})
	d.player.Play()
	return nil
}

// Close stops the player and suspends the context.
func (d *OtoDevice) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.player != nil {
		if err := d.player.Close(); err != nil {
			return err
		}
		d.player = nil
	}
	return d.ctx.Suspend()
}

// otoReader adapts a Renderer to the io.Reader oto pulls from.
type otoReader struct {
	r        *sound.Renderer
	channels int
	samples  []float32
}

func (o *otoReader) Read(p []byte) (int, error) {
	n := len(p) / 4
	n -= n % o.channels
	if n == 0 {
		return 0, nil
	}

	if cap(o.samples) < n {
		o.samples = make([]float32, n)
	}
	samples := o.samples[:n]
	o.r.Fill(samples)

	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return n * 4, nil
}
