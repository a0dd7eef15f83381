// Package analysis provides frequency and phase-space views of recorded
// trajectories.
package analysis

import (
	"math"
	"math/cmplx"
)

func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum zero-pads the signal to the next power of two before
// transforming, so arbitrary-length trajectories are accepted.
func PowerSpectrum(data []float64) []float64 {
	padded := padPow2(data)
	fft := FFT(padded)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest nonzero
// spectral bin, given the sampling step dt.
func DominantFrequency(data []float64, dt float64) float64 {
	if dt <= 0 || len(data) < 2 {
		return 0
	}

	padded := padPow2(data)
	ps := PowerSpectrum(padded)
	if len(ps) < 2 {
		return 0
	}

	peak := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}

	return float64(peak) / (float64(len(padded)) * dt)
}

func padPow2(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return data
	}

	size := 1
	for size < n {
		size *= 2
	}
	if size == n {
		return data
	}

	padded := make([]float64, size)
	copy(padded, data)
	return padded
}
