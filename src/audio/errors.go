package audio

import "errors"

var (
	// ErrInvalidSampleRate indicates a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("audio: sample rate must be positive")
	// ErrInvalidDuration indicates a duration for a run, a step or a fade that is not
	// positive and finite, or that renders to too many frames.
	ErrInvalidDuration = errors.New("audio: invalid duration")
	// ErrInvalidFrequency indicates a frequency that is not finite, or a non-positive
	// frequency on an enabled carrier.
	ErrInvalidFrequency = errors.New("audio: invalid frequency")
	// ErrInvalidVolume indicates a negative carrier volume.
	ErrInvalidVolume = errors.New("audio: volume must not be negative")
	// ErrInvalidRFM indicates a negative RFM range or speed.
	ErrInvalidRFM = errors.New("audio: rfm range and speed must not be negative")
	// ErrInvalidNoise indicates a noise level outside [0,1] or an unknown noise kind.
	ErrInvalidNoise = errors.New("audio: invalid noise settings")
	// ErrUnknownMode indicates an entrainment mode name that is not recognized.
	ErrUnknownMode = errors.New("audio: unknown entrainment mode")
	// ErrNoOscillator indicates a step without a beat oscillator.
	ErrNoOscillator = errors.New("audio: step has no oscillator")
)
