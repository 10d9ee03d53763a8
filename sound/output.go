package sound

import (
	"errors"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

// ErrOutputClosed is returned when creating a sink on a closed output.
var ErrOutputClosed = errors.New("output closed")

// Output is the master bus a device renders. Sinks created from it are mixed
// together; all mixer state is guarded by one lock shared with the device's
// pull goroutine.
type Output struct {
	rate int

	mu     sync.Mutex
	mixer  beep.Mixer
	live   int
	closed bool
}

// NewOutput creates an empty bus. Every source added to it must run at rate.
func NewOutput(rate int) *Output {
	return &Output{rate: rate}
}

// Rate returns the bus sample rate
func (o *Output) Rate() int { return o.rate }

// Stream implements beep.Streamer. It never drains: an idle bus plays silence.
func (o *Output) Stream(samples [][2]float64) (n int, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		clear(samples)
		return len(samples), true
	}
	o.mixer.Stream(samples)
	return len(samples), true
}

func (o *Output) Err() error { return nil }

// Len returns the number of sinks on the bus that have not been stopped.
func (o *Output) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.live
}

// NewSink creates a mixing destination on the bus at volume 1.
func (o *Output) NewSink() (*Sink, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil, ErrOutputClosed
	}

	s := &Sink{out: o, mixer: &beep.Mixer{}, volume: 1}
	s.gain = &effects.Gain{Streamer: s.mixer}
	s.ctrl = &beep.Ctrl{Streamer: s.gain}
	o.mixer.Add(s.ctrl)
	o.live++
	return s, nil
}

// Close drops every sink. The bus keeps producing silence for the device.
func (o *Output) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closed = true
	o.live = 0
	o.mixer.Clear()
}

// Sink is one mixing destination on an Output. Sources appended to a sink
// play concurrently and are removed when they finish.
type Sink struct {
	out   *Output
	mixer *beep.Mixer
	gain  *effects.Gain
	ctrl  *beep.Ctrl

	volume   float64
	appended int
}

// Append starts src on the sink without waiting for it.
func (s *Sink) Append(src beep.Streamer) {
	s.out.mu.Lock()
	defer s.out.mu.Unlock()

	if s.ctrl.Streamer == nil {
		return
	}
	s.mixer.Add(src)
	s.appended++
}

// SetVolume sets the linear gain applied to everything on the sink.
func (s *Sink) SetVolume(volume float64) {
	s.out.mu.Lock()
	defer s.out.mu.Unlock()

	// effects.Gain scales by 1+Gain
	s.volume = volume
	s.gain.Gain = volume - 1
}

// Volume returns the linear gain of the sink.
func (s *Sink) Volume() float64 {
	s.out.mu.Lock()
	defer s.out.mu.Unlock()
	return s.volume
}

// Stop silences the sink and detaches it from the bus. A stopped sink
// ignores further appends.
func (s *Sink) Stop() {
	s.out.mu.Lock()
	defer s.out.mu.Unlock()

	if s.ctrl.Streamer == nil {
		return
	}
	s.ctrl.Streamer = nil
	s.mixer.Clear()
	if s.out.live > 0 {
		s.out.live--
	}
}

// Stopped reports whether Stop has been called.
func (s *Sink) Stopped() bool {
	s.out.mu.Lock()
	defer s.out.mu.Unlock()
	return s.ctrl.Streamer == nil
}

// Active returns the number of sources queued or playing on the sink.
func (s *Sink) Active() int {
	s.out.mu.Lock()
	defer s.out.mu.Unlock()
	return s.mixer.Len()
}

// Appended returns how many sources have been appended over the sink's life.
func (s *Sink) Appended() int {
	s.out.mu.Lock()
	defer s.out.mu.Unlock()
	return s.appended
}
