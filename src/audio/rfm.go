package audio

import "math/rand"

// ----- Random Frequency Modulation ----- //

// RandomWalk returns count frequency offsets in Hz forming a gaussian random walk
// with per-sample deviation speed/sampleRate, clipped to [-rangeHz, rangeHz].
func RandomWalk(rng *rand.Rand, count int, sampleRate int, rangeHz float64, speed float64) []float64 {
	if count <= 0 {
		return []float64{}
	}
	walk := make([]float64, count)
	if rangeHz <= 0 || speed <= 0 {
		return walk
	}
	std := speed / float64(sampleRate)
	sum := 0.0
	for i := range walk {
		sum += rng.NormFloat64() * std
		walk[i] = clip(sum, -rangeHz, rangeHz)
	}
	return walk
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
