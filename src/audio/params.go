package audio

import (
	"fmt"
	"math"
	"strings"
)

const (
	defaultSampleRate  = 44100
	defaultCarrierFreq = 200.0
	defaultBeatFreq    = 10.0
	defaultRFMRange    = 0.5
	defaultRFMSpeed    = 0.2
	defaultNoiseLevel  = 0.1
)

// ----- Mode ----- //

// Mode selects how carriers are turned into entrainment. It is fixed for a whole run.
type Mode int

const (
	ModeBinaural Mode = iota
	ModeIsochronic
	ModeMonaural
)

var modeNames = [...]string{
	ModeBinaural:   "binaural",
	ModeIsochronic: "isochronic",
	ModeMonaural:   "monaural",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ModeFromString parses a mode name. Unknown names are an error.
func ModeFromString(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// ----- Noise Kind ----- //

// NoiseKind selects the spectrum of background noise.
type NoiseKind int

const (
	NoisePink NoiseKind = iota
	NoiseWhite
)

func (k NoiseKind) String() string {
	switch k {
	case NoisePink:
		return "pink"
	case NoiseWhite:
		return "white"
	}
	return fmt.Sprintf("NoiseKind(%d)", int(k))
}

// NoiseKindFromString parses "pink" or "white".
func NoiseKindFromString(s string) (NoiseKind, error) {
	switch strings.ToLower(s) {
	case "pink":
		return NoisePink, nil
	case "white":
		return NoiseWhite, nil
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidNoise, s)
}

// ----- Params ----- //

// Carrier is one tone generator. StartFreq and EndFreq define a linear ramp across
// the segment it is rendered in.
type Carrier struct {
	Enabled    bool
	StartFreq  float64
	EndFreq    float64
	Volume     float64
	RFMEnabled bool
	RFMRange   float64
	RFMSpeed   float64
	// InheritRFM applies the global walk to a carrier that has no RFM of its own.
	InheritRFM bool
}

// Oscillator is the beat frequency ramp of a step.
type Oscillator struct {
	StartFreq float64
	EndFreq   float64
}

// Step is one segment of a stepwise run.
type Step struct {
	Duration    float64
	Oscillators []Oscillator
	// Carriers overrides Settings.Carriers for this step when non-nil.
	Carriers []Carrier
	// Noise overrides Settings.Noise for this step when non-nil.
	Noise *NoiseSettings
}

// RFMSettings is the global random frequency modulation.
type RFMSettings struct {
	Enabled bool
	Range   float64 // Hz
	Speed   float64
}

// NoiseSettings controls background noise blended after normalization.
type NoiseSettings struct {
	Enabled bool
	Kind    NoiseKind
	Level   float64 // 0-1
}

// Settings is the global configuration of a run.
type Settings struct {
	Enabled    bool
	SampleRate int
	Mode       Mode
	// BeatFreq is the constant beat of a continuous run.
	BeatFreq float64
	// CarrierFreq is used to build a single carrier when Carriers is empty.
	CarrierFreq float64
	RFM         RFMSettings
	Noise       NoiseSettings
	Carriers    []Carrier
	// Seed seeds the random source of a run. Zero means a time based seed.
	Seed int64
}

// DefaultSettings returns the settings used when a session file leaves fields out.
func DefaultSettings() Settings {
	return Settings{
		Enabled:     true,
		SampleRate:  defaultSampleRate,
		Mode:        ModeBinaural,
		BeatFreq:    defaultBeatFreq,
		CarrierFreq: defaultCarrierFreq,
		RFM:         RFMSettings{Range: defaultRFMRange, Speed: defaultRFMSpeed},
		Noise:       NoiseSettings{Kind: NoisePink, Level: defaultNoiseLevel},
	}
}

// DefaultCarrier returns an enabled 200Hz carrier at full volume.
func DefaultCarrier() Carrier {
	return Carrier{
		Enabled:   true,
		StartFreq: defaultCarrierFreq,
		EndFreq:   defaultCarrierFreq,
		Volume:    1.0,
		RFMRange:  defaultRFMRange,
		RFMSpeed:  defaultRFMSpeed,
	}
}

// normalize returns a copy of s with the legacy single carrier filled in.
func (s Settings) normalize() Settings {
	n := s
	if len(s.Carriers) == 0 {
		n.Carriers = []Carrier{{
			Enabled:    true,
			StartFreq:  s.CarrierFreq,
			EndFreq:    s.CarrierFreq,
			Volume:     1.0,
			RFMEnabled: s.RFM.Enabled,
			RFMRange:   s.RFM.Range,
			RFMSpeed:   s.RFM.Speed,
		}}
	} else {
		n.Carriers = append([]Carrier(nil), s.Carriers...)
	}
	return n
}

// maxFrames caps the length of a single render.
const maxFrames = math.MaxInt32

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return finite(v) && v >= 0
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

// validDuration reports whether duration is positive and fits in maxFrames.
func validDuration(duration float64, sampleRate int) bool {
	return positive(duration) && duration*float64(sampleRate) <= maxFrames
}

func (s *Settings) validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampleRate, s.SampleRate)
	}
	if s.Mode < 0 || int(s.Mode) >= len(modeNames) {
		return fmt.Errorf("%w: %v", ErrUnknownMode, s.Mode)
	}
	if !finite(s.BeatFreq) || !finite(s.CarrierFreq) {
		return fmt.Errorf("%w: beat %v carrier %v", ErrInvalidFrequency, s.BeatFreq, s.CarrierFreq)
	}
	if !nonNegative(s.RFM.Range) || !nonNegative(s.RFM.Speed) {
		return fmt.Errorf("%w: global range %v speed %v", ErrInvalidRFM, s.RFM.Range, s.RFM.Speed)
	}
	if err := s.Noise.validate(); err != nil {
		return err
	}
	return validateCarriers(s.Carriers)
}

func (n *NoiseSettings) validate() error {
	if n.Kind != NoisePink && n.Kind != NoiseWhite {
		return fmt.Errorf("%w: %v", ErrInvalidNoise, n.Kind)
	}
	if !(n.Level >= 0 && n.Level <= 1) {
		return fmt.Errorf("%w: level must be in [0,1], got %v", ErrInvalidNoise, n.Level)
	}
	return nil
}

func validateCarriers(carriers []Carrier) error {
	for i, c := range carriers {
		if !nonNegative(c.Volume) {
			return fmt.Errorf("%w: carrier %d got %v", ErrInvalidVolume, i, c.Volume)
		}
		if !nonNegative(c.RFMRange) || !nonNegative(c.RFMSpeed) {
			return fmt.Errorf("%w: carrier %d range %v speed %v", ErrInvalidRFM, i, c.RFMRange, c.RFMSpeed)
		}
		if !finite(c.StartFreq) || !finite(c.EndFreq) ||
			c.Enabled && (c.StartFreq <= 0 || c.EndFreq <= 0) {
			return fmt.Errorf("%w: carrier %d ramp %v -> %v", ErrInvalidFrequency, i, c.StartFreq, c.EndFreq)
		}
	}
	return nil
}

func validateSteps(steps []Step, sampleRate int) error {
	total := 0
	for i, step := range steps {
		if !validDuration(step.Duration, sampleRate) {
			return fmt.Errorf("%w: step %d got %v", ErrInvalidDuration, i, step.Duration)
		}
		total += frameCount(step.Duration, sampleRate)
		if total > maxFrames {
			return fmt.Errorf("%w: steps exceed %d frames at step %d", ErrInvalidDuration, maxFrames, i)
		}
		if len(step.Oscillators) == 0 {
			return fmt.Errorf("%w: step %d", ErrNoOscillator, i)
		}
		for j, o := range step.Oscillators {
			if !finite(o.StartFreq) || !finite(o.EndFreq) {
				return fmt.Errorf("%w: step %d oscillator %d ramp %v -> %v", ErrInvalidFrequency, i, j, o.StartFreq, o.EndFreq)
			}
		}
		if step.Carriers != nil {
			if err := validateCarriers(step.Carriers); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
		if step.Noise != nil {
			if err := step.Noise.validate(); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
	}
	return nil
}
