package engine

import (
	"log"
	"sync"

	"github.com/d1nch8g/snakeaudio/assets"
	"github.com/d1nch8g/snakeaudio/queue"
	"github.com/d1nch8g/snakeaudio/sound"
)

// Library supplies encoded audio to the worker
type Library interface {
	Effect(name string) ([]byte, bool)
	Music() []byte
}

// EngineConfig holds the configuration for the audio engine
type EngineConfig struct {
	// Open acquires the output device. It is called on the worker goroutine.
	Open sound.Opener

	// Library resolves effect names and the music track
	Library Library

	// SampleRate of the output bus; every waveform is resampled to it
	SampleRate int
}

// Engine owns the audio worker and the queue feeding it. Send may be called
// from any goroutine; everything the worker touches stays on the worker.
type Engine struct {
	config EngineConfig
	inbox  *queue.Queue[Command]
	done   chan struct{}

	startOnce sync.Once

	// handled is called on the worker after a command is applied
	handled func(Command)
}

// NewEngine creates a new audio engine instance. The worker is not running
// until Start is called.
func NewEngine(config EngineConfig) *Engine {
	if config.Library == nil {
		config.Library = assets.Default()
	}
	if config.SampleRate == 0 {
		config.SampleRate = 48000
	}

	return &Engine{
		config: config,
		inbox:  queue.New[Command](),
		done:   make(chan struct{}),
	}
}

// Start launches the worker goroutine. Calling it more than once has no effect.
func (e *Engine) Start() {
	e.startOnce.Do(func() {
		go e.run()
	})
}

// Send enqueues cmd for the worker. It never waits for playback; the only
// error is queue.ErrClosed, once the worker has exited or Close was called.
func (e *Engine) Send(cmd Command) error {
	return e.inbox.Send(cmd)
}

// Close stops accepting commands, lets the worker drain the queue and waits
// for it to release the device.
func (e *Engine) Close() {
	e.inbox.Close()
	e.startOnce.Do(func() {
		e.inbox.Shutdown()
		close(e.done)
	})
	<-e.done
}

// Done is closed when the worker has exited
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

func (e *Engine) run() {
	defer close(e.done)
	defer e.inbox.Shutdown()

	w, err := newWorker(e.config)
	if err != nil {
		log.Printf("Audio engine unavailable: %v", err)
		return
	}
	defer w.close()

	log.Printf("Audio engine started at %d Hz", e.config.SampleRate)

	for {
		cmd, ok := e.inbox.Recv()
		if !ok {
			log.Println("Audio engine stopping: command queue closed")
			return
		}

		if err := w.handle(cmd); err != nil {
			log.Printf("Error handling %v: %v", cmd, err)
			continue
		}
		if e.handled != nil {
			e.handled(cmd)
		}
	}
}
