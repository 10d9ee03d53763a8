package sound

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-dsp/dsp/resample"
	sigstats "github.com/cwbudde/algo-dsp/stats/time"
	"github.com/gopxl/beep/v2"
)

// Waveform is an in-memory block of interleaved float samples.
type Waveform struct {
	Rate     int
	Channels int
	Samples  []float32
}

// Frames returns the number of sample frames
func (w *Waveform) Frames() int {
	if w.Channels <= 0 {
		return 0
	}
	return len(w.Samples) / w.Channels
}

// Duration returns the playback length at the waveform's own rate.
func (w *Waveform) Duration() time.Duration {
	if w.Rate <= 0 {
		return 0
	}
	return time.Duration(w.Frames()) * time.Second / time.Duration(w.Rate)
}

// Format describes the waveform in beep terms.
func (w *Waveform) Format() beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(w.Rate),
		NumChannels: w.Channels,
		Precision:   4,
	}
}

// Streamer returns a seekable stereo view of the waveform. Mono waveforms are
// duplicated to both channels; channels beyond the second are ignored.
func (w *Waveform) Streamer() beep.StreamSeeker {
	return &waveStreamer{w: w}
}

// Mono returns the waveform mixed down to a single float64 channel.
func (w *Waveform) Mono() []float64 {
	frames := w.Frames()
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < w.Channels; c++ {
			sum += float64(w.Samples[i*w.Channels+c])
		}
		out[i] = sum / float64(w.Channels)
	}
	return out
}

// Stats returns time-domain statistics of the mono mixdown.
func (w *Waveform) Stats() sigstats.Stats {
	return sigstats.Calculate(w.Mono())
}

// Resample converts the waveform to rate. The receiver is returned unchanged
// when it already matches.
func (w *Waveform) Resample(rate int) (*Waveform, error) {
	if rate == w.Rate {
		return w, nil
	}
	if rate <= 0 || w.Rate <= 0 {
		return nil, fmt.Errorf("invalid resample %d Hz -> %d Hz", w.Rate, rate)
	}

	frames := w.Frames()
	channels := make([][]float64, w.Channels)
	for c := range channels {
		in := make([]float64, frames)
		for i := 0; i < frames; i++ {
			in[i] = float64(w.Samples[i*w.Channels+c])
		}

		r, err := resample.NewForRates(float64(w.Rate), float64(rate))
		if err != nil {
			return nil, fmt.Errorf("failed to create resampler: %w", err)
		}
		channels[c] = r.Process(in)
	}

	n := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) < n {
			n = len(ch)
		}
	}

	out := &Waveform{
		Rate:     rate,
		Channels: w.Channels,
		Samples:  make([]float32, n*w.Channels),
	}
	for i := 0; i < n; i++ {
		for c, ch := range channels {
			out.Samples[i*w.Channels+c] = float32(ch[i])
		}
	}
	return out, nil
}

type waveStreamer struct {
	w   *Waveform
	pos int
}

func (s *waveStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	frames := s.w.Frames()
	if s.pos >= frames {
		return 0, false
	}

	ch := s.w.Channels
	for n < len(samples) && s.pos < frames {
		base := s.pos * ch
		left := float64(s.w.Samples[base])
		right := left
		if ch > 1 {
			right = float64(s.w.Samples[base+1])
		}
		samples[n][0] = left
		samples[n][1] = right
		n++
		s.pos++
	}
	return n, true
}

func (s *waveStreamer) Err() error { return nil }

func (s *waveStreamer) Len() int { return s.w.Frames() }

func (s *waveStreamer) Position() int { return s.pos }

func (s *waveStreamer) Seek(p int) error {
	if p < 0 || p > s.w.Frames() {
		return fmt.Errorf("seek position %d out of range [0, %d]", p, s.w.Frames())
	}
	s.pos = p
	return nil
}
