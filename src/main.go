package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jinjor/entrain/src/audio"
	"golang.org/x/sync/errgroup"
)

var (
	sessionPath = flag.String("session", "", "session file (YAML or JSON)")
	outPath     = flag.String("out", "", "output WAV file (default: session output or <name>.wav)")
	duration    = flag.Float64("duration", 0, "render a continuous tone of this many seconds, ignoring steps")
	seed        = flag.Int64("seed", 0, "random seed (0: time based)")
	fade        = flag.Float64("fade", -1, "fade in and out over this many seconds (default: session fade_in/fade_out)")
	play        = flag.Bool("play", false, "play the result while writing it")
	report      = flag.Bool("report", false, "log the dominant frequency of each channel")
	verbose     = flag.Bool("v", false, "log every rendered step")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)
	if *sessionPath == "" {
		log.Fatalf("error: -session is required\n")
	}

	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalCh)
		cancel()
	}()
	go func() {
		select {
		case sig := <-signalCh:
			log.Printf("Caught signal %s: shutting down...\n", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := run(ctx); err != nil {
		log.Fatalf("error: %v\n", err)
	}
	log.Println("main() ended.")
}

func run(ctx context.Context) error {
	session, err := audio.LoadSession(*sessionPath)
	if err != nil {
		return err
	}
	if *seed != 0 {
		session.Settings.Seed = *seed
	}
	if *fade >= 0 {
		session.FadeIn = *fade
		session.FadeOut = *fade
	}
	if *duration > 0 {
		session.Duration = *duration
		session.Steps = nil
	}
	if !session.Settings.Enabled {
		log.Println("Audio is disabled. Not generating audio file.")
		return nil
	}
	out := *outPath
	if out == "" {
		out = session.OutputPath()
	}
	log.Printf("Generating audio file: %s (%s, %d Hz)\n", out, session.Settings.Mode, session.Settings.SampleRate)

	var opts []audio.Option
	if *verbose {
		opts = append(opts, audio.WithLogger(log.Default()))
	}
	buf, err := session.Render(ctx, opts...)
	if err != nil {
		return err
	}
	sampleRate := session.Settings.SampleRate
	log.Printf("rendered %v (%d frames, peak %.3f)\n", buf.Duration(sampleRate), len(buf), buf.Peak())
	if *report {
		log.Printf("dominant frequency: left %.2f Hz, right %.2f Hz\n",
			audio.DominantFrequency(buf.Channel(0), sampleRate),
			audio.DominantFrequency(buf.Channel(1), sampleRate))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := audio.SaveWAV(out, buf, sampleRate); err != nil {
			return err
		}
		log.Printf("Done. Generated %s\n", out)
		return nil
	})
	if *play {
		g.Go(func() error {
			player, err := audio.NewPlayer(sampleRate)
			if err != nil {
				return err
			}
			defer func() {
				if err := player.Close(); err != nil {
					log.Printf("error while closing player: %v", err)
				}
			}()
			return player.Play(ctx, buf)
		})
	}
	return g.Wait()
}
