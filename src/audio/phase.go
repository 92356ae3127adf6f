package audio

import "math"

// ----- Phase Accumulator ----- //

// ChannelPhase is the unwrapped phase of one carrier, in radians.
type ChannelPhase struct {
	Left  float64
	Right float64
}

// PhaseAccumulator holds the running phases of one run. Carrier slots are addressed by
// carrier position and created at zero on first use. Phases are never wrapped or reset.
//
// A PhaseAccumulator belongs to a single run and must not be shared between runs.
type PhaseAccumulator struct {
	carriers []ChannelPhase
	mod      float64
}

// NewPhaseAccumulator returns an accumulator with every phase at zero.
func NewPhaseAccumulator() *PhaseAccumulator {
	return &PhaseAccumulator{}
}

func (a *PhaseAccumulator) slot(i int) *ChannelPhase {
	for len(a.carriers) <= i {
		a.carriers = append(a.carriers, ChannelPhase{})
	}
	return &a.carriers[i]
}

// Carrier returns the phases of the carrier at index i.
func (a *PhaseAccumulator) Carrier(i int) ChannelPhase {
	if i < len(a.carriers) {
		return a.carriers[i]
	}
	return ChannelPhase{}
}

// Mod returns the shared modulation phase used by isochronic gating.
func (a *PhaseAccumulator) Mod() float64 {
	return a.mod
}

// Len returns the number of carrier slots in use.
func (a *PhaseAccumulator) Len() int {
	return len(a.carriers)
}

// ----- Integrators ----- //

// integrator advances *phase through freq (Hz, one value per sample) and writes the
// phase reached at every sample into out. Each sample advances first, then is read.
type integrator func(phase *float64, freq []float64, sampleRate int, out []float64)

// runningIntegrator keeps a per-sample accumulator, the same way a free running
// oscillator advances its phase.
func runningIntegrator(phase *float64, freq []float64, sampleRate int, out []float64) {
	dt := 1.0 / float64(sampleRate)
	p := *phase
	for i, f := range freq {
		p += 2.0 * math.Pi * f * dt
		out[i] = p
	}
	*phase = p
}

// closedFormIntegrator takes the cumulative sum of frequencies and scales it once,
// phase[i] = phase0 + 2π·Σf/sampleRate.
func closedFormIntegrator(phase *float64, freq []float64, sampleRate int, out []float64) {
	sum := 0.0
	for i, f := range freq {
		sum += f
		out[i] = sum
	}
	scale := 2.0 * math.Pi / float64(sampleRate)
	for i := range out {
		out[i] = *phase + out[i]*scale
	}
	if len(out) > 0 {
		*phase = out[len(out)-1]
	}
}
