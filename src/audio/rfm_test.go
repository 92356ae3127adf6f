package audio

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomWalkBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, rangeHz := range []float64{0.1, 0.5, 5} {
		walk := RandomWalk(rng, 44100, 44100, rangeHz, 2000)
		require.Len(t, walk, 44100)
		for i, v := range walk {
			if v < -rangeHz || v > rangeHz {
				t.Fatalf("walk[%d] = %v out of ±%v", i, v, rangeHz)
			}
		}
	}
}

func TestRandomWalkClipsAtRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	walk := RandomWalk(rng, 1000, 100, 1, 1000)
	clipped := 0
	for _, v := range walk {
		if math.Abs(v) == 1 {
			clipped++
		}
	}
	assert.Greater(t, clipped, 0, "a fast walk should reach the bound")
}

func TestRandomWalkZeroRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	walk := RandomWalk(rng, 512, 44100, 0, 100)
	require.Len(t, walk, 512)
	for _, v := range walk {
		require.Equal(t, 0.0, v)
	}
}

func TestRandomWalkZeroSpeed(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, v := range RandomWalk(rng, 64, 44100, 3, 0) {
		require.Equal(t, 0.0, v)
	}
}

func TestRandomWalkEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	assert.Empty(t, RandomWalk(rng, 0, 44100, 1, 1))
	assert.Empty(t, RandomWalk(rng, -3, 44100, 1, 1))
}

func TestRandomWalkIsSmooth(t *testing.T) {
	// increments are N(0, speed/sampleRate); 6 sigma is far outside anything plausible
	rng := rand.New(rand.NewSource(6))
	const sampleRate, speed = 44100, 0.2
	walk := RandomWalk(rng, sampleRate, sampleRate, 100, speed)
	limit := 6 * speed / sampleRate
	prev := 0.0
	for _, v := range walk {
		require.LessOrEqual(t, math.Abs(v-prev), limit)
		prev = v
	}
}
