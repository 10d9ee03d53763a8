// Command sfxctl sends playback and log requests to a running audio daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/d1nch8g/snakeaudio/rpc"
)

const usage = `usage: sfxctl [flags] <command> [args]

commands:
  play <name>          play a sound effect
  music start          start the background track
  music stop           stop the background track
  music volume         change the background track volume
  log <line>...        append lines to the log file
  logpath              print the log file path
`

func main() {
	addr := flag.String("addr", "127.0.0.1:7411", "daemon address")
	volume := flag.Float64("volume", 1.0, "playback volume")
	muted := flag.Bool("muted", false, "treat the request as muted")
	timeout := flag.Duration("timeout", 2*time.Second, "request timeout")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	client, err := rpc.Dial(*addr)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch {
	case args[0] == "play" && len(args) == 2:
		err = client.PlayEffect(ctx, args[1], *volume, *muted)
	case args[0] == "music" && len(args) == 2 && args[1] == "start":
		err = client.StartMusic(ctx, *volume, *muted)
	case args[0] == "music" && len(args) == 2 && args[1] == "stop":
		err = client.StopMusic(ctx)
	case args[0] == "music" && len(args) == 2 && args[1] == "volume":
		err = client.SetMusicVolume(ctx, *volume, *muted)
	case args[0] == "log" && len(args) > 1:
		err = client.AppendLog(ctx, args[1:])
	case args[0] == "logpath" && len(args) == 1:
		var path string
		if path, err = client.LogPath(ctx); err == nil {
			fmt.Println(path)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %v\n", args)
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s: %v", args[0], err)
	}
}
