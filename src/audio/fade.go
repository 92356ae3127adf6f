package audio

import "math"

// ----- Gain Ramp ----- //

// gainRamp moves a gain linearly from its current value to a target, one sample per
// step.
type gainRamp struct {
	initialValue float64
	targetValue  float64
	value        float64
	length       int // samples
	pos          int
}

func newGainRamp(value float64) *gainRamp {
	return &gainRamp{
		initialValue: value,
		targetValue:  value,
		value:        value,
	}
}

func (g *gainRamp) linear(length int, targetValue float64) {
	g.length = length
	g.pos = 0
	g.initialValue = g.value
	g.targetValue = targetValue
}

// step advances one sample and reports whether the target has been reached.
func (g *gainRamp) step() bool {
	if g.pos >= g.length {
		g.value = g.targetValue
		return true
	}
	g.pos++
	t := float64(g.pos) / float64(g.length)
	g.value = t*g.targetValue + (1-t)*g.initialValue
	return g.pos >= g.length
}

// ----- Fade ----- //

// ApplyFade raises the gain of buf from silence over the first fadeIn seconds and
// lowers it back to silence over the last fadeOut seconds. The first and last frames
// become exactly zero. Fades longer than buf are cut to its length.
func ApplyFade(buf Buffer, sampleRate int, fadeIn, fadeOut float64) {
	fade(buf, fadeLength(fadeIn, sampleRate, len(buf)), func(k int) int { return k })
	fade(buf, fadeLength(fadeOut, sampleRate, len(buf)), func(k int) int { return len(buf) - 1 - k })
}

// fadeLength converts seconds to frames, at most limit. NaN and non-positive values
// mean no fade.
func fadeLength(seconds float64, sampleRate int, limit int) int {
	if math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}
	if seconds*float64(sampleRate) >= float64(limit) {
		return limit
	}
	return frameCount(seconds, sampleRate)
}

func fade(buf Buffer, length int, index func(k int) int) {
	if length <= 0 {
		return
	}
	ramp := newGainRamp(0)
	ramp.linear(length, 1)
	for k := 0; k < length; k++ {
		i := index(k)
		buf[i][0] *= ramp.value
		buf[i][1] *= ramp.value
		ramp.step()
	}
}
