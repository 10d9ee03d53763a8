package sound

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/hajimehoshi/go-mp3"
)

// ErrUnsupportedFormat is returned by Decode for payloads of an unknown container.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Container identifies an encoded audio payload.
type Container int

const (
	ContainerUnknown Container = iota
	ContainerWAV
	ContainerOgg
	ContainerMP3
)

func (c Container) String() string {
	switch c {
	case ContainerWAV:
		return "wav"
	case ContainerOgg:
		return "ogg"
	case ContainerMP3:
		return "mp3"
	}
	return "unknown"
}

// Sniff guesses the container of data from its leading bytes.
func Sniff(data []byte) Container {
	switch {
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return ContainerWAV
	case len(data) >= 4 && string(data[:4]) == "OggS":
		return ContainerOgg
	case len(data) >= 3 && string(data[:3]) == "ID3":
		return ContainerMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// MPEG audio frame sync
		return ContainerMP3
	}
	return ContainerUnknown
}

// Decode turns an encoded payload into a waveform at the payload's own rate.
func Decode(data []byte) (*Waveform, error) {
	switch Sniff(data) {
	case ContainerWAV:
		s, format, err := wav.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode wav: %w", err)
		}
		defer s.Close()
		return drain(s, format)

	case ContainerOgg:
		s, format, err := vorbis.Decode(io.NopCloser(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("failed to decode ogg: %w", err)
		}
		defer s.Close()
		return drain(s, format)

	case ContainerMP3:
		return decodeMP3(data)
	}
	return nil, ErrUnsupportedFormat
}

// drain reads s to the end. Stereo and wider sources keep two channels.
func drain(s beep.Streamer, format beep.Format) (*Waveform, error) {
	channels := 2
	if format.NumChannels == 1 {
		channels = 1
	}

	w := &Waveform{Rate: int(format.SampleRate), Channels: channels}
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			w.Samples = append(w.Samples, float32(frame[0]))
			if channels == 2 {
				w.Samples = append(w.Samples, float32(frame[1]))
			}
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}
	if w.Frames() == 0 {
		return nil, errors.New("payload contains no samples")
	}
	return w, nil
}

// decodeMP3 uses go-mp3, which always yields 16-bit little-endian stereo.
func decodeMP3(data []byte) (*Waveform, error) {
	d, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode mp3: %w", err)
	}

	pcm, err := io.ReadAll(d)
	if err != nil {
		return nil, fmt.Errorf("failed to read mp3 frames: %w", err)
	}

	samples := make([]float32, len(pcm)/2)
	for i := range samples {
		v := int16(uint16(pcm[i*2]) | uint16(pcm[i*2+1])<<8)
		samples[i] = float32(v) / 32768
	}
	if len(samples) < 2 {
		return nil, errors.New("payload contains no samples")
	}

	return &Waveform{
		Rate:     d.SampleRate(),
		Channels: 2,
		Samples:  samples[:len(samples)/2*2],
	}, nil
}
