package audio

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSampleRate = 44100

func newTestMixer(mode Mode) *mixer {
	return &mixer{
		sampleRate: testSampleRate,
		mode:       mode,
		rng:        rand.New(rand.NewSource(1)),
	}
}

func tone(start, end, volume float64) Carrier {
	return Carrier{Enabled: true, StartFreq: start, EndFreq: end, Volume: volume}
}

// instantaneousFrequency estimates the frequency of a pure sine around sample k from
// x[k-1] + x[k+1] = 2·x[k]·cos(ω).
func instantaneousFrequency(x []float64, k int, sampleRate int) float64 {
	c := (x[k-1] + x[k+1]) / (2 * x[k])
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c) * float64(sampleRate) / (2 * math.Pi)
}

// expectFrequencyTrack checks that the sine in x follows want (Hz per sample) wherever
// the estimate is well conditioned.
func expectFrequencyTrack(t *testing.T, x []float64, want []float64) {
	t.Helper()
	checked := 0
	for k := 1; k < len(x)-1; k++ {
		if math.Abs(x[k]) < 0.5 || x[k-1] == 0 || x[k+1] == 0 {
			continue
		}
		expected := (want[k] + want[k+1]) / 2
		got := instantaneousFrequency(x, k, testSampleRate)
		if math.Abs(got-expected) > 0.1 {
			t.Fatalf("sample %d: expected %.4f Hz, but got %.4f Hz", k, expected, got)
		}
		checked++
	}
	require.Greater(t, checked, len(x)/10)
}

func TestMixerMonauralFollowsRamp(t *testing.T) {
	m := newTestMixer(ModeMonaural)
	seg := segment{duration: 1, beat: Oscillator{10, 10}, carriers: []Carrier{tone(400, 500, 1)}}
	buf := m.render(seg, NewPhaseAccumulator(), runningIntegrator)
	require.Len(t, buf, testSampleRate)
	expectFrequencyTrack(t, buf.Channel(0), linearRamp(400, 500, testSampleRate))
	assert.Equal(t, buf.Channel(0), buf.Channel(1))
}

func TestMixerBinauralOffsetsChannels(t *testing.T) {
	m := newTestMixer(ModeBinaural)
	seg := segment{duration: 1, beat: Oscillator{4, 12}, carriers: []Carrier{tone(200, 200, 1)}}
	buf := m.render(seg, NewPhaseAccumulator(), runningIntegrator)
	beat := linearRamp(4, 12, testSampleRate)
	wantLeft := make([]float64, len(beat))
	wantRight := make([]float64, len(beat))
	for i, b := range beat {
		wantLeft[i] = 200 + 0.5*b
		wantRight[i] = 200 - 0.5*b
	}
	expectFrequencyTrack(t, buf.Channel(0), wantLeft)
	expectFrequencyTrack(t, buf.Channel(1), wantRight)
}

func TestMixerBinauralDominantFrequencies(t *testing.T) {
	m := newTestMixer(ModeBinaural)
	seg := segment{duration: 1, beat: Oscillator{10, 10}, carriers: []Carrier{tone(200, 200, 1)}}
	buf := m.render(seg, NewPhaseAccumulator(), closedFormIntegrator)
	assert.InDelta(t, 205, DominantFrequency(buf.Channel(0), testSampleRate), 0.5)
	assert.InDelta(t, 195, DominantFrequency(buf.Channel(1), testSampleRate), 0.5)
}

func TestMixerIsochronicGatesCarrier(t *testing.T) {
	m := newTestMixer(ModeIsochronic)
	seg := segment{duration: 1, beat: Oscillator{10, 10}, carriers: []Carrier{tone(300, 300, 1)}}
	acc := NewPhaseAccumulator()
	buf := m.render(seg, acc, runningIntegrator)
	left := buf.Channel(0)
	assert.Equal(t, left, buf.Channel(1))

	on := 0
	for _, v := range left {
		if v != 0 {
			on++
		}
	}
	assert.InDelta(t, 0.5, float64(on)/float64(len(left)), 0.01)
	expectFrequencyTrack(t, left, linearRamp(300, 300, len(left)))
	assert.InDelta(t, 2*math.Pi*10, acc.Mod(), 1e-6)
}

func TestMixerIsochronicSharesGateAcrossCarriers(t *testing.T) {
	m := newTestMixer(ModeIsochronic)
	seg := segment{duration: 0.5, beat: Oscillator{7, 7}, carriers: []Carrier{tone(300, 300, 0.4), tone(450, 450, 0.4)}}
	acc := NewPhaseAccumulator()
	buf := m.render(seg, acc, runningIntegrator)

	gate := make([]float64, len(buf))
	dt := 1.0 / float64(testSampleRate)
	beat := 7.0
	mod := 0.0
	for k := range gate {
		mod += 2.0 * math.Pi * beat * dt
		if math.Sin(mod) >= 0 {
			gate[k] = 1
		}
	}
	for k, frame := range buf {
		if gate[k] == 0 {
			require.Equal(t, 0.0, frame[0], "sample %d should be gated off", k)
		}
	}
	// advanced once per sample, not once per carrier
	assert.InDelta(t, 2*math.Pi*7*0.5, acc.Mod(), 1e-6)
}

func TestMixerHeadroomNormalization(t *testing.T) {
	m := newTestMixer(ModeMonaural)
	loud := segment{duration: 0.5, beat: Oscillator{10, 10}, carriers: []Carrier{tone(200, 200, 1), tone(200, 200, 1), tone(300, 300, 0.8)}}
	buf := m.render(loud, NewPhaseAccumulator(), runningIntegrator)
	assert.LessOrEqual(t, buf.Peak(), 1.0+1e-12)
	assert.InDelta(t, 1.0, buf.Peak(), 1e-12)

	quiet := segment{duration: 0.5, beat: Oscillator{10, 10}, carriers: []Carrier{tone(200, 200, 0.5)}}
	buf = m.render(quiet, NewPhaseAccumulator(), runningIntegrator)
	assert.LessOrEqual(t, buf.Peak(), 0.5)
	assert.Greater(t, buf.Peak(), 0.499)
}

func TestMixerNormalizationSkipsSilence(t *testing.T) {
	m := newTestMixer(ModeBinaural)
	off := tone(200, 200, 1)
	off.Enabled = false
	seg := segment{duration: 0.1, beat: Oscillator{10, 10}, carriers: []Carrier{off}}
	acc := NewPhaseAccumulator()
	buf := m.render(seg, acc, runningIntegrator)
	require.Len(t, buf, 4410)
	for _, frame := range buf {
		require.False(t, math.IsNaN(frame[0]) || math.IsNaN(frame[1]))
		require.Equal(t, [2]float64{0, 0}, frame)
	}
	assert.Equal(t, 0, acc.Len(), "disabled carriers take no phase slot")
}

func TestMixerZeroLengthSegment(t *testing.T) {
	m := newTestMixer(ModeBinaural)
	seg := segment{duration: 1e-6, beat: Oscillator{10, 10}, carriers: []Carrier{tone(200, 200, 1)}}
	acc := NewPhaseAccumulator()
	assert.Empty(t, m.render(seg, acc, runningIntegrator))
	assert.Equal(t, ChannelPhase{}, acc.Carrier(0))
}

func TestMixerNoiseIsAddedAfterNormalization(t *testing.T) {
	m := newTestMixer(ModeMonaural)
	seg := segment{
		duration: 0.5,
		beat:     Oscillator{10, 10},
		carriers: []Carrier{tone(200, 200, 1), tone(200, 200, 1)},
		noise:    NoiseSettings{Enabled: true, Kind: NoisePink, Level: 0.2},
	}
	buf := m.render(seg, NewPhaseAccumulator(), runningIntegrator)
	assert.Greater(t, buf.Peak(), 1.0, "noise is not clamped by headroom normalization")
	assert.LessOrEqual(t, buf.Peak(), 1.2+1e-9)
}

func TestMixerCarrierRFMStaysWithinRange(t *testing.T) {
	m := newTestMixer(ModeMonaural)
	c := tone(300, 300, 1)
	c.RFMEnabled = true
	c.RFMRange = 2
	c.RFMSpeed = 400
	freq := make([]float64, testSampleRate)
	m.carrierFreq(c, freq)
	moved := false
	for _, f := range freq {
		require.GreaterOrEqual(t, f, 298.0)
		require.LessOrEqual(t, f, 302.0)
		if f != 300 {
			moved = true
		}
	}
	assert.True(t, moved)
}

func TestMixerCarrierInheritsGlobalRFM(t *testing.T) {
	m := newTestMixer(ModeMonaural)
	m.rfm = RFMSettings{Enabled: true, Range: 1, Speed: 400}
	c := tone(300, 300, 1)
	freq := make([]float64, 1000)

	m.carrierFreq(c, freq)
	for _, f := range freq {
		require.Equal(t, 300.0, f)
	}

	c.InheritRFM = true
	m.carrierFreq(c, freq)
	moved := false
	for _, f := range freq {
		require.InDelta(t, 300, f, 1)
		if f != 300 {
			moved = true
		}
	}
	assert.True(t, moved)
}
