// Package audio sonifies travel: each world carries its own drone chord
// and membrane crossings ring a short chime.
package audio

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// worldRoots gives each world a root frequency on a pentatonic ladder,
// so neighbouring worlds sound related but distinct.
var worldRoots = [6]float64{98.00, 110.00, 130.81, 146.83, 164.81, 196.00}

type Processor struct {
	Stream *portaudio.Stream

	// Output analysis for meters.
	complexBuffer   []complex128
	Bass, Mid, High float64

	// Synthesis state.
	time        float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int
	chime       float64
	chimeFreq   float64

	mu          sync.Mutex
	world       float64
	worldSmooth float64

	Active bool
}

func NewProcessor() *Processor {
	delayLen := int(float64(SampleRate) * 0.6)
	return &Processor{
		complexBuffer: make([]complex128, BufferSize),
		delayLine:     [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		chimeFreq:     880,
	}
}

func (a *Processor) Start() error {
	portaudio.Initialize()

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		return err
	}
	if err := stream.Start(); err != nil {
		return err
	}

	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
	}
	portaudio.Terminate()
	a.Active = false
}

// UpdateScene feeds the current viewer world in; crossed triggers the
// chime. Safe to call from the render loop.
func (a *Processor) UpdateScene(world float64, crossed bool) {
	a.mu.Lock()
	a.world = world
	if crossed {
		a.chime = 1.0
		a.chimeFreq = 660 + 110*world
	}
	a.mu.Unlock()
}

// Triangle wave, flute-like without the saw buzz.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One pole low pass.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (a *Processor) ProcessAudio(out [][]float32) {
	a.mu.Lock()
	targetWorld := a.world
	chime := a.chime
	chimeFreq := a.chimeFreq
	a.chime *= 0.5
	a.mu.Unlock()

	// Glide between world chords instead of jumping.
	a.worldSmooth = a.worldSmooth*0.99 + targetWorld*0.01

	lo := int(math.Floor(a.worldSmooth))
	frac := a.worldSmooth - float64(lo)
	root := worldRoots[((lo%6)+6)%6]*(1-frac) + worldRoots[(((lo+1)%6)+6)%6]*frac

	// Root, fifth, octave, ninth.
	freqs := [4]float64{root, root * 1.5, root * 2, root * 2.25}

	cutoff := 400.0 + 120.0*a.worldSmooth
	dt := 1.0 / float64(SampleRate)
	vol := 0.25

	for i := 0; i < len(out[0]); i++ {
		sampleL, sampleR := 0.0, 0.0

		for j, f := range freqs {
			oscL := triangle(a.time * (f * 0.999))
			oscR := triangle(a.time * (f * 1.001))

			g := 0.25
			lfo := math.Sin(a.time*0.2 + float64(j))

			sampleL += oscL * g * (0.7 + 0.3*lfo)
			sampleR += oscR * g * (0.7 + 0.3*lfo)
		}

		// Crossing chime, decaying per buffer.
		if chime > 0.001 {
			bell := math.Sin(2*math.Pi*chimeFreq*a.time) * chime
			sampleL += bell * 0.3
			sampleR += bell * 0.3
		}

		var outL, outR float64
		outL, a.filterState[0] = lpf(sampleL, cutoff, dt, a.filterState[0])
		outR, a.filterState[1] = lpf(sampleR, cutoff, dt, a.filterState[1])

		delayL := a.delayLine[0][a.delayHead]
		delayR := a.delayLine[1][a.delayHead]

		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1

		a.delayLine[0][a.delayHead] = mixL * 0.7
		a.delayLine[1][a.delayHead] = mixR * 0.7
		a.delayHead = (a.delayHead + 1) % len(a.delayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		a.time += dt
	}

	a.analyze(out[0])
}

// analyze buckets the output spectrum into bass, mid, and high meters.
func (a *Processor) analyze(buf []float32) {
	n := len(buf)
	if n > len(a.complexBuffer) {
		n = len(a.complexBuffer)
	}
	for i := 0; i < n; i++ {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		a.complexBuffer[i] = complex(float64(buf[i])*window, 0)
	}
	spectrum := fft.FFT(a.complexBuffer[:n])

	bassSum, midSum, highSum := 0.0, 0.0, 0.0
	for i := 0; i < n/2; i++ {
		mag := cmplx.Abs(spectrum[i])
		switch {
		case i < 5:
			bassSum += mag
		case i < 46:
			midSum += mag
		default:
			highSum += mag
		}
	}

	a.Bass = a.Bass*0.9 + math.Min(bassSum/100.0, 1.0)*0.1
	a.Mid = a.Mid*0.9 + math.Min(midSum/500.0, 1.0)*0.1
	a.High = a.High*0.9 + math.Min(highSum/1000.0, 1.0)*0.1
}
