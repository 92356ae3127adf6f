package audio

import (
	"math"
	"math/rand"
)

// ----- Mixer ----- //

type segment struct {
	duration float64
	beat     Oscillator
	carriers []Carrier
	noise    NoiseSettings
}

type mixer struct {
	sampleRate int
	mode       Mode
	rfm        RFMSettings
	rng        *rand.Rand
}

// render synthesizes one segment. Carrier phases are read from and written back to acc
// through integrate, so consecutive segments sharing acc join without a phase jump.
// Headroom normalization is applied to this segment alone.
func (m *mixer) render(seg segment, acc *PhaseAccumulator, integrate integrator) Buffer {
	frames := frameCount(seg.duration, m.sampleRate)
	buf := make(Buffer, frames)
	if frames == 0 {
		return buf
	}
	beat := linearRamp(seg.beat.StartFreq, seg.beat.EndFreq, frames)
	if m.rfm.Enabled {
		addTo(beat, RandomWalk(m.rng, frames, m.sampleRate, m.rfm.Range, m.rfm.Speed))
	}
	var gate []float64
	if m.mode == ModeIsochronic {
		gate = m.gate(acc, beat, integrate)
	}

	left := make([]float64, frames)
	right := make([]float64, frames)
	freq := make([]float64, frames)
	shifted := make([]float64, frames)
	phase := make([]float64, frames)
	for i, c := range seg.carriers {
		if !c.Enabled {
			continue
		}
		m.carrierFreq(c, freq)
		slot := acc.slot(i)
		switch m.mode {
		case ModeBinaural:
			for k := range freq {
				shifted[k] = freq[k] + 0.5*beat[k]
			}
			integrate(&slot.Left, shifted, m.sampleRate, phase)
			for k, p := range phase {
				left[k] += math.Sin(p) * c.Volume
			}
			for k := range freq {
				shifted[k] = freq[k] - 0.5*beat[k]
			}
			integrate(&slot.Right, shifted, m.sampleRate, phase)
			for k, p := range phase {
				right[k] += math.Sin(p) * c.Volume
			}
		case ModeIsochronic:
			integrate(&slot.Left, freq, m.sampleRate, phase)
			slot.Right = slot.Left
			for k, p := range phase {
				v := math.Sin(p) * gate[k] * c.Volume
				left[k] += v
				right[k] += v
			}
		case ModeMonaural:
			integrate(&slot.Left, freq, m.sampleRate, phase)
			slot.Right = slot.Left
			for k, p := range phase {
				v := math.Sin(p) * c.Volume
				left[k] += v
				right[k] += v
			}
		}
	}

	normalizeHeadroom(left, right)
	for k := range buf {
		buf[k] = [2]float64{left[k], right[k]}
	}
	AddNoise(m.rng, buf, seg.noise)
	return buf
}

// carrierFreq writes the ramp of c plus its random walk into freq.
func (m *mixer) carrierFreq(c Carrier, freq []float64) {
	copy(freq, linearRamp(c.StartFreq, c.EndFreq, len(freq)))
	switch {
	case c.RFMEnabled:
		addTo(freq, RandomWalk(m.rng, len(freq), m.sampleRate, c.RFMRange, c.RFMSpeed))
	case c.InheritRFM && m.rfm.Enabled:
		addTo(freq, RandomWalk(m.rng, len(freq), m.sampleRate, m.rfm.Range, m.rfm.Speed))
	}
}

// gate advances the shared modulation phase once per sample and returns the unit
// square wave derived from it.
func (m *mixer) gate(acc *PhaseAccumulator, beat []float64, integrate integrator) []float64 {
	gate := make([]float64, len(beat))
	integrate(&acc.mod, beat, m.sampleRate, gate)
	for k, p := range gate {
		if math.Sin(p) >= 0 {
			gate[k] = 1.0
		} else {
			gate[k] = 0.0
		}
	}
	return gate
}
