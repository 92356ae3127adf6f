// Package audio synthesizes multi-carrier entrainment tones (binaural, isochronic and
// monaural beats) as phase continuous stereo buffers, optionally blended with noise,
// and renders them as 16-bit PCM.
package audio

import (
	"math"
	"time"
)

const (
	channelNum      = 2
	bitDepthInBytes = 2
	pcmMax          = 32767
)
const bytesPerSample = bitDepthInBytes * channelNum

// Buffer is a sequence of stereo frames, [0] left and [1] right.
type Buffer [][2]float64

// Channel copies one channel of b.
func (b Buffer) Channel(ch int) []float64 {
	out := make([]float64, len(b))
	for i, frame := range b {
		out[i] = frame[ch]
	}
	return out
}

// Peak returns the largest absolute sample value over both channels.
func (b Buffer) Peak() float64 {
	peak := 0.0
	for _, frame := range b {
		peak = math.Max(peak, math.Max(math.Abs(frame[0]), math.Abs(frame[1])))
	}
	return peak
}

// Duration returns the length of b at the given sample rate.
func (b Buffer) Duration(sampleRate int) time.Duration {
	return time.Duration(float64(len(b)) / float64(sampleRate) * float64(time.Second))
}

// ----- Utility ----- //

func frameCount(duration float64, sampleRate int) int {
	return int(math.Round(duration * float64(sampleRate)))
}

// linearRamp interpolates from start to end over n samples, both ends included.
func linearRamp(start, end float64, n int) []float64 {
	ramp := make([]float64, n)
	if n == 1 || start == end {
		for i := range ramp {
			ramp[i] = start
		}
		return ramp
	}
	for i := range ramp {
		t := float64(i) / float64(n-1)
		ramp[i] = t*end + (1-t)*start
	}
	return ramp
}

func addTo(dst, src []float64) {
	for i := range dst {
		dst[i] += src[i]
	}
}

// normalizeHeadroom scales both channels down so the peak is at most 1.
// It returns the peak measured before scaling.
func normalizeHeadroom(left, right []float64) float64 {
	peak := 0.0
	for i := range left {
		peak = math.Max(peak, math.Max(math.Abs(left[i]), math.Abs(right[i])))
	}
	if peak > 1.0 {
		for i := range left {
			left[i] /= peak
			right[i] /= peak
		}
	}
	return peak
}
