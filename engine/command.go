package engine

import "fmt"

// Command is a playback request handled by the engine's worker. The set of
// commands is closed: PlayEffect, StartMusic, StopMusic and SetMusicGain.
type Command interface {
	command()
}

// PlayEffect plays a one-shot effect at the given linear gain.
type PlayEffect struct {
	Name string
	Gain float64
}

// StartMusic starts the background track, or adjusts its gain if it is
// already playing.
type StartMusic struct {
	Gain float64
}

// StopMusic halts the background track and releases its sink.
type StopMusic struct{}

// SetMusicGain changes the gain of a playing background track.
type SetMusicGain struct {
	Gain float64
}

func (PlayEffect) command()   {}
func (StartMusic) command()   {}
func (StopMusic) command()    {}
func (SetMusicGain) command() {}

func (c PlayEffect) String() string   { return fmt.Sprintf("PlayEffect(%s, %.3f)", c.Name, c.Gain) }
func (c StartMusic) String() string   { return fmt.Sprintf("StartMusic(%.3f)", c.Gain) }
func (StopMusic) String() string      { return "StopMusic" }
func (c SetMusicGain) String() string { return fmt.Sprintf("SetMusicGain(%.3f)", c.Gain) }
