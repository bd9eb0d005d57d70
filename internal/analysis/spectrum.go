// Package analysis provides offline tools over recorded traces: crossing
// spectra, dwell statistics, and phase portraits of the planar motion.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/hwen/knotsim/internal/sim"
)

// WorldSignal extracts one entity's world index over time as a float
// signal, mean-removed so the spectrum is not dominated by the DC bin.
func WorldSignal(result *sim.Result, entityIdx int) []float64 {
	if entityIdx < 0 || len(result.Samples) == 0 || entityIdx >= len(result.Samples[0]) {
		return nil
	}

	signal := make([]float64, len(result.Samples))
	mean := 0.0
	for i, row := range result.Samples {
		signal[i] = float64(row[entityIdx].World)
		mean += signal[i]
	}
	mean /= float64(len(signal))
	for i := range signal {
		signal[i] -= mean
	}
	return signal
}

// PowerSpectrum computes magnitude per frequency bin for the first half
// of the spectrum. Input length need not be a power of two.
func PowerSpectrum(signal []float64) []float64 {
	if len(signal) == 0 {
		return nil
	}

	spectrum := fft.FFTReal(signal)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod finds the strongest non-DC peak and converts it to a
// period in simulation time. Returns 0 when no peak stands out.
func DominantPeriod(signal []float64, dt float64) float64 {
	ps := PowerSpectrum(signal)
	if len(ps) < 2 {
		return 0
	}

	best, bestIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best = ps[i]
			bestIdx = i
		}
	}
	if bestIdx == 0 || best == 0 {
		return 0
	}

	// Bin i corresponds to frequency i / (n·dt).
	n := float64(len(signal))
	return n * dt / float64(bestIdx)
}

// DwellTimes reports how long an entity stayed in each world visit, in
// simulation time units.
func DwellTimes(result *sim.Result, entityIdx int, dt float64) []float64 {
	if len(result.Samples) == 0 || entityIdx >= len(result.Samples[0]) {
		return nil
	}

	dwells := make([]float64, 0)
	current := result.Samples[0][entityIdx].World
	ticks := 1
	for i := 1; i < len(result.Samples); i++ {
		w := result.Samples[i][entityIdx].World
		if w == current {
			ticks++
			continue
		}
		dwells = append(dwells, float64(ticks)*dt)
		current = w
		ticks = 1
	}
	dwells = append(dwells, float64(ticks)*dt)
	return dwells
}

// MeanDwell averages the dwell times, ignoring the final open-ended
// interval when there is more than one.
func MeanDwell(dwells []float64) float64 {
	n := len(dwells)
	if n == 0 {
		return 0
	}
	if n > 1 {
		dwells = dwells[:n-1]
	}
	sum := 0.0
	for _, d := range dwells {
		sum += d
	}
	return sum / float64(len(dwells))
}

// CrossingRate is crossings per unit time over the whole run.
func CrossingRate(result *sim.Result, entityIdx int) float64 {
	if entityIdx >= len(result.Crossings) || len(result.Times) < 2 {
		return 0
	}
	span := result.Times[len(result.Times)-1] - result.Times[0]
	if span <= 0 || math.IsNaN(span) {
		return 0
	}
	return float64(result.Crossings[entityIdx]) / span
}
