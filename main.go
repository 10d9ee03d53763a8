package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/d1nch8g/snakeaudio/applog"
	"github.com/d1nch8g/snakeaudio/assets"
	"github.com/d1nch8g/snakeaudio/audio"
	"github.com/d1nch8g/snakeaudio/config"
	"github.com/d1nch8g/snakeaudio/control"
	"github.com/d1nch8g/snakeaudio/engine"
	"github.com/d1nch8g/snakeaudio/rpc"
	"github.com/d1nch8g/snakeaudio/sound"
	"github.com/d1nch8g/snakeaudio/synth"
)

func main() {
	envFile := flag.String("env", ".env", "path to the .env file")
	inspect := flag.Bool("inspect", false, "print the bundled sounds and exit")
	flag.Parse()

	if *inspect {
		if err := printAssets(os.Stdout); err != nil {
			log.Fatalf("Failed to inspect assets: %v", err)
		}
		return
	}

	// Load configuration
	cfg, err := config.LoadConfig(*envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog := applog.New(cfg.LogDir)
	logFile, err := appLog.Open()
	if err != nil {
		log.Printf("Logging to stderr only: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, logFile))
	}

	opener, err := audio.NewOpener(audio.Config{
		Backend:         cfg.Audio.Backend,
		SampleRate:      cfg.Audio.SampleRate,
		FramesPerBuffer: cfg.Audio.FramesPerBuffer,
		OutputChannels:  cfg.Audio.OutputChannels,
	})
	if err != nil {
		log.Fatalf("Failed to configure audio: %v", err)
	}

	// The engine keeps running without a device; requests then fail fast.
	eng := engine.NewEngine(engine.EngineConfig{
		Open:       opener,
		SampleRate: cfg.Audio.SampleRate,
	})
	eng.Start()
	defer eng.Close()

	lis, err := net.Listen("tcp", cfg.RPCAddr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.RPCAddr, err)
	}

	srv := grpc.NewServer(grpc.UnaryInterceptor(rpc.LogFailures))
	rpc.Register(srv, rpc.NewServer(control.New(eng), appLog))

	go func() {
		if err := srv.Serve(lis); err != nil {
			log.Printf("RPC server error: %v", err)
		}
	}()

	log.Printf("Audio daemon listening on %s (backend %s, %d Hz)", lis.Addr(), cfg.Audio.Backend, cfg.Audio.SampleRate)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Println("Stopping...")
	srv.GracefulStop()
}

// printAssets lists every bundled sound with its format and level
func printAssets(w io.Writer) error {
	bank := assets.Default()

	music, err := sound.Decode(bank.Music())
	if err != nil {
		return fmt.Errorf("music: %w", err)
	}
	printWave(w, "music", music)

	for _, name := range bank.Names() {
		data, _ := bank.Effect(name)
		wave, err := sound.Decode(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		printWave(w, name, wave)
	}

	printWave(w, "enemy_pickup", synth.RivalPickup())
	return nil
}

func printWave(w io.Writer, name string, wave *sound.Waveform) {
	st := wave.Stats()
	fmt.Fprintf(w, "%-14s %6d Hz %d ch %8v  peak %6.1f dB  rms %6.1f dB\n",
		name, wave.Rate, wave.Channels, wave.Duration(), st.Peak_dB, st.RMS_dB)
}
