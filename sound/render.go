package sound

import "github.com/gopxl/beep/v2"

// Renderer converts a stereo beep stream into interleaved float32 frames for
// a device with an arbitrary channel count.
type Renderer struct {
	src      beep.Streamer
	channels int
	frames   [][2]float64
}

// NewRenderer creates a renderer pulling from src.
func NewRenderer(src beep.Streamer, channels int) *Renderer {
	if channels < 1 {
		channels = 1
	}
	return &Renderer{src: src, channels: channels}
}

// Fill overwrites out with the next len(out)/channels frames. Once src
// drains the remainder is silence.
func (r *Renderer) Fill(out []float32) {
	n := len(out) / r.channels
	if cap(r.frames) < n {
		r.frames = make([][2]float64, n)
	}
	frames := r.frames[:n]

	got := 0
	for got < n {
		k, ok := r.src.Stream(frames[got:])
		got += k
		if !ok || k == 0 {
			break
		}
	}
	clear(frames[got:])
	clear(out[n*r.channels:])

	for i, f := range frames {
		base := i * r.channels
		switch r.channels {
		case 1:
			out[base] = float32((f[0] + f[1]) / 2)
		default:
			out[base] = float32(f[0])
			out[base+1] = float32(f[1])
			for c := 2; c < r.channels; c++ {
				out[base+c] = 0
			}
		}
	}
}
