package main

import (
	"context"
	"flag"
	"log"
	"runtime"

	"github.com/jinjor/entrain/src/audio"
	"golang.org/x/sync/errgroup"
)

var jobs = flag.Int("j", runtime.NumCPU(), "number of sessions rendered at once")

func main() {
	flag.Parse()
	dir := flag.Arg(0)
	if dir == "" {
		panic("dir is not passed")
	}
	log.SetFlags(log.Lshortfile)

	sm := audio.NewSessionManager(dir)
	names, err := sm.List()
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*jobs)
	for _, name := range names {
		name := name
		g.Go(func() error {
			return render(ctx, sm, name)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("error: %v\n", err)
	}
	log.Printf("Successfully generated %d sessions.\n", len(names))
}

func render(ctx context.Context, sm *audio.SessionManager, name string) error {
	session, err := sm.Load(name)
	if err != nil {
		return err
	}
	if !session.Settings.Enabled {
		log.Printf("%s: audio is disabled, skipped\n", name)
		return nil
	}
	buf, err := session.Render(ctx)
	if err != nil {
		return err
	}
	log.Printf("generated %s (%v)\n", name, buf.Duration(session.Settings.SampleRate))
	if err := audio.SaveWAV(session.OutputPath(), buf, session.Settings.SampleRate); err != nil {
		return err
	}
	log.Printf("saved %s\n", session.OutputPath())
	return nil
}
