package audio

import (
	"math"
	"math/cmplx"
)

// FFT is a radix-2 transform of a fixed power of two length.
type FFT struct {
	bitReverseTable []int
	wTable          []complex128
}

// NewFFT prepares tables for transforms of length, which must be a power of two.
func NewFFT(length int) *FFT {
	return &FFT{
		bitReverseTable: makeBitReverseTable(length),
		wTable:          makeWTable(length),
	}
}
func makeBitReverseTable(n int) []int {
	array := make([]int, n)
	for i := 0; i < n; i++ {
		array[i] = bitReverse(i, n)
	}
	return array
}
func bitReverse(k, n int) int {
	m := 0
	for ; n > 1; n = n >> 1 {
		m = m<<1 + k&1
		k = k >> 1
	}
	return m
}
func makeWTable(n int) []complex128 {
	array := make([]complex128, n)
	w := -2.0 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		array[i] = cmplx.Exp(complex(0, w*float64(i)))
	}
	return array
}

// Calc transforms x in place. len(x) must match the prepared length.
func (fft *FFT) Calc(x []complex128) {
	n := len(x)
	if n != len(fft.bitReverseTable) {
		panic("fft: unexpected input length")
	}
	for i := 0; i < n; i++ {
		rev := fft.bitReverseTable[i]
		if i < rev {
			x[i], x[rev] = x[rev], x[i]
		}
	}
	for m := 1; m < n; m = m << 1 {
		step := m << 1
		for k := 0; k < m; k++ {
			w := fft.wTable[n/step*k]
			for i := k; i < n; i += step {
				j := i + m
				tmp := x[j] * w
				x[j] = x[i] - tmp
				x[i] = x[i] + tmp
			}
		}
	}
}

// CalcAbs replaces x with the magnitude of its transform.
func (fft *FFT) CalcAbs(x []float64) {
	cx := toComplex(x)
	fft.Calc(cx)
	for i := range x {
		x[i] = cmplx.Abs(cx[i])
	}
}

func toComplex(x []float64) []complex128 {
	cx := make([]complex128, len(x))
	for i, v := range x {
		cx[i] = complex(v, 0)
	}
	return cx
}

// ----- Analysis ----- //

// Spectrum returns the windowed magnitude spectrum of the first power of two samples
// of x, bins 0..n/2, with the bin width in Hz.
func Spectrum(x []float64, sampleRate int) ([]float64, float64) {
	n := 1
	for n*2 <= len(x) {
		n *= 2
	}
	if n < 2 {
		return nil, 0
	}
	data := make([]float64, n)
	copy(data, x)
	Han(data)
	NewFFT(n).CalcAbs(data)
	for i := range data {
		data[i] = data[i] * 2 / float64(n)
	}
	return data[:n/2+1], float64(sampleRate) / float64(n)
}

// DominantFrequency returns the frequency of the strongest non-DC bin of x, refined by
// parabolic interpolation between neighbouring bins.
func DominantFrequency(x []float64, sampleRate int) float64 {
	spectrum, binWidth := Spectrum(x, sampleRate)
	if len(spectrum) < 3 {
		return 0
	}
	best := 1
	for i := 2; i < len(spectrum); i++ {
		if spectrum[i] > spectrum[best] {
			best = i
		}
	}
	offset := 0.0
	if best+1 < len(spectrum) {
		a, b, c := spectrum[best-1], spectrum[best], spectrum[best+1]
		if d := a - 2*b + c; d != 0 {
			offset = 0.5 * (a - c) / d
		}
	}
	return (float64(best) + offset) * binWidth
}
