package audio

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"
)

// ----- Synthesizer ----- //

// Synthesizer renders entrainment audio for one configuration. It owns its random
// source and is not safe for concurrent use; run independent renders on independent
// Synthesizers.
type Synthesizer struct {
	settings Settings
	mixer    *mixer
	logger   *log.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithLogger reports step progress to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Synthesizer) {
		s.logger = l
	}
}

// WithRand replaces the random source seeded from Settings.Seed.
func WithRand(r *rand.Rand) Option {
	return func(s *Synthesizer) {
		s.mixer.rng = r
	}
}

// NewSynthesizer validates settings and returns a Synthesizer for them.
// When no carrier is configured a single carrier is built from CarrierFreq.
func NewSynthesizer(settings Settings, opts ...Option) (*Synthesizer, error) {
	n := settings.normalize()
	if err := n.validate(); err != nil {
		return nil, err
	}
	seed := n.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Synthesizer{
		settings: n,
		mixer: &mixer{
			sampleRate: n.SampleRate,
			mode:       n.Mode,
			rfm:        n.RFM,
			rng:        rand.New(rand.NewSource(seed)),
		},
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Settings returns the normalized settings in use.
func (s *Synthesizer) Settings() Settings {
	return s.settings
}

// RenderContinuous renders duration seconds at the constant BeatFreq, starting every
// phase at zero. A disabled configuration renders an empty buffer.
func (s *Synthesizer) RenderContinuous(duration float64) (Buffer, error) {
	if !validDuration(duration, s.settings.SampleRate) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidDuration, duration)
	}
	if !s.settings.Enabled {
		return Buffer{}, nil
	}
	seg := segment{
		duration: duration,
		beat:     Oscillator{StartFreq: s.settings.BeatFreq, EndFreq: s.settings.BeatFreq},
		carriers: s.settings.Carriers,
		noise:    s.settings.Noise,
	}
	return s.mixer.render(seg, NewPhaseAccumulator(), closedFormIntegrator), nil
}

// RenderSteps renders steps in order with phases carried across step boundaries.
func (s *Synthesizer) RenderSteps(ctx context.Context, steps []Step) (Buffer, error) {
	return s.RenderStepsWith(ctx, steps, NewPhaseAccumulator())
}

// RenderStepsWith is RenderSteps continuing from the phases held in acc, which is
// updated in place. ctx is checked between steps only.
func (s *Synthesizer) RenderStepsWith(ctx context.Context, steps []Step, acc *PhaseAccumulator) (Buffer, error) {
	if err := validateSteps(steps, s.settings.SampleRate); err != nil {
		return nil, err
	}
	if !s.settings.Enabled {
		return Buffer{}, nil
	}
	total := 0
	for _, step := range steps {
		total += frameCount(step.Duration, s.settings.SampleRate)
	}
	out := make(Buffer, 0, total)
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seg := s.segmentOf(step)
		out = append(out, s.mixer.render(seg, acc, runningIntegrator)...)
		s.logger.Printf("step %d/%d: %.2fs beat %.2f -> %.2f Hz\n", i+1, len(steps), step.Duration, seg.beat.StartFreq, seg.beat.EndFreq)
	}
	return out, nil
}

func (s *Synthesizer) segmentOf(step Step) segment {
	seg := segment{
		duration: step.Duration,
		beat:     step.Oscillators[0],
		carriers: s.settings.Carriers,
		noise:    s.settings.Noise,
	}
	if step.Carriers != nil {
		seg.carriers = step.Carriers
	}
	if step.Noise != nil {
		seg.noise = *step.Noise
	}
	return seg
}
