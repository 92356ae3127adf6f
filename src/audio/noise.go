package audio

import (
	"math"
	"math/rand"
)

// ----- Noise ----- //

const (
	pinkOctaves    = 16
	noiseThreshold = 0.001
)

// PinkNoise returns count samples of 1/f noise whose peak absolute value is level.
//
// Each of the 16 octaves holds a gaussian value for 2^i samples; octaves whose held
// sequence is shorter than count are extended periodically.
func PinkNoise(rng *rand.Rand, count int, level float64) []float64 {
	out := make([]float64, count)
	if count <= 0 {
		return out
	}
	values := (count+pinkOctaves-1)/pinkOctaves + 1
	white := make([]float64, values)
	for i := 0; i < pinkOctaves; i++ {
		for j := range white {
			white[j] = rng.NormFloat64()
		}
		hold := 1 << i
		held := values * hold
		for k := range out {
			out[k] += white[(k%held)/hold]
		}
	}
	peak := 0.0
	for k := range out {
		out[k] /= math.Sqrt(pinkOctaves)
		peak = math.Max(peak, math.Abs(out[k]))
	}
	if peak == 0 {
		return out
	}
	gain := level / peak
	for k := range out {
		out[k] *= gain
	}
	return out
}

// WhiteNoise returns count gaussian samples with standard deviation level.
func WhiteNoise(rng *rand.Rand, count int, level float64) []float64 {
	out := make([]float64, count)
	for k := range out {
		out[k] = rng.NormFloat64() * level
	}
	return out
}

// AddNoise blends background noise into buf in place. Pink noise is generated once and
// shared by both channels; white noise is drawn for each channel.
func AddNoise(rng *rand.Rand, buf Buffer, noise NoiseSettings) {
	if !noise.Enabled || noise.Level <= noiseThreshold || len(buf) == 0 {
		return
	}
	switch noise.Kind {
	case NoisePink:
		mono := PinkNoise(rng, len(buf), noise.Level)
		for i, v := range mono {
			buf[i][0] += v
			buf[i][1] += v
		}
	case NoiseWhite:
		for ch := 0; ch < channelNum; ch++ {
			for i, v := range WhiteNoise(rng, len(buf), noise.Level) {
				buf[i][ch] += v
			}
		}
	}
}
