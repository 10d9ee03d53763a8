package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/d1nch8g/snakeaudio/applog"
)

// AudioConfig describes the output device
type AudioConfig struct {
	Backend         string
	SampleRate      int
	FramesPerBuffer int
	OutputChannels  int
}

type Config struct {
	Audio   AudioConfig
	RPCAddr string
	LogDir  string
}

// LoadConfig reads the given .env files (".env" when none are given) into the
// environment and builds the configuration from it. Missing files are skipped.
func LoadConfig(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Audio: AudioConfig{
			Backend: getEnv("AUDIO_BACKEND", "portaudio"),
		},
		RPCAddr: getEnv("RPC_ADDR", "127.0.0.1:7411"),
		LogDir:  os.Getenv("LOG_DIR"),
	}

	var err error
	if cfg.Audio.SampleRate, err = getInt("AUDIO_SAMPLE_RATE", 48000); err != nil {
		return nil, err
	}
	if cfg.Audio.FramesPerBuffer, err = getInt("AUDIO_FRAMES_PER_BUFFER", 1024); err != nil {
		return nil, err
	}
	if cfg.Audio.OutputChannels, err = getInt("AUDIO_OUTPUT_CHANNELS", 2); err != nil {
		return nil, err
	}

	if cfg.LogDir == "" {
		if cfg.LogDir, err = applog.DefaultDir(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: want a positive integer", key, v)
	}
	return n, nil
}
