// Package synth renders effects that have no stored asset.
package synth

import (
	"math"

	"github.com/d1nch8g/snakeaudio/sound"
)

// SampleRate of every procedural waveform.
const SampleRate = 48000

const (
	pickupDuration = 0.14
	pickupAttack   = 0.01
	pickupChirpHi  = 820.0
	pickupChirpLo  = 260.0
	pickupSubFreq  = 72.0
	pickupSubLen   = 0.03
	pickupDrive    = 1.35
)

// RivalPickup renders the cue played when a rival snake eats: a saturated
// downward chirp over a short sub click, mono at SampleRate.
func RivalPickup() *sound.Waveform {
	n := int(math.Round(pickupDuration * SampleRate))
	out := make([]float32, n)

	for i := range out {
		t := float64(i) / SampleRate

		// fast attack, linear decay, squared
		var env float64
		if t < pickupAttack {
			env = t / pickupAttack
		} else {
			env = math.Max(0, (pickupDuration-t)/(pickupDuration-pickupAttack))
		}
		env *= env

		freq := pickupChirpHi + (pickupChirpLo-pickupChirpHi)*(t/pickupDuration)
		chirp := math.Sin(2 * math.Pi * freq * t)

		var sub float64
		if t < pickupSubLen {
			sub = math.Sin(2*math.Pi*pickupSubFreq*t) * (1 - t/pickupSubLen)
		}

		edge := math.Tanh(chirp * pickupDrive)
		out[i] = float32((edge*0.75 + sub*0.45) * env)
	}

	return &sound.Waveform{Rate: SampleRate, Channels: 1, Samples: out}
}
