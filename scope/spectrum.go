package scope

import (
	"math"
	"math/cmplx"
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/mjibson/go-dsp/window"
	"github.com/viterin/vek/vek32"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	FFTSize = 4096
	NumBins = FFTSize / 2

	// displayed frequency band, Hz
	LowFreq  = 10
	HighFreq = 24000

	// bin magnitudes are clipped to this dB range before display scaling
	DbMin = -100
	DbMax = 0
)

// SpectrumEngine accumulates mono samples into a ring and runs a windowed
// FFT every time the ring fills, publishing the bin magnitudes in dB.
// Process is called from the analysis goroutine and Bins from the GUI.
type SpectrumEngine struct {
	mu         sync.Mutex
	params     SpectrumParams
	sampleRate float32

	ring [FFTSize]float32
	pos  int

	fft *fourier.FFT
	// Hann window, prescaled by 2/sum(hann) so a full-scale sine reads 0 dB
	window  []float64
	scratch []float64
	coeffs  []complex128
	mags    []float32

	bins      [NumBins]float32
	updatedAt time.Time
}

func NewSpectrumEngine(sampleRate float32) *SpectrumEngine {
	hann := window.Hann(FFTSize)
	var sum float64
	for _, w := range hann {
		sum += w
	}
	for i := range hann {
		hann[i] *= 2 / sum
	}
	e := &SpectrumEngine{
		params:     defaultSpectrumParams(),
		sampleRate: sampleRate,
		fft:        fourier.NewFFT(FFTSize),
		window:     hann,
		scratch:    make([]float64, FFTSize),
		coeffs:     make([]complex128, FFTSize/2+1),
		mags:       make([]float32, NumBins),
		updatedAt:  time.Now(),
	}
	for i := range e.bins {
		e.bins[i] = DbMin
	}
	return e
}

func (e *SpectrumEngine) SetParams(params SpectrumParams) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params = params
}

// BinHz is the frequency resolution of the analysis.
func (e *SpectrumEngine) BinHz() float32 {
	return e.sampleRate / FFTSize
}

// Process feeds mono samples into the analysis ring. Whenever the ring
// fills, the spectrum is recomputed and leftover samples start the next
// window.
func (e *SpectrumEngine) Process(data []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.params.Freeze {
		return
	}
	for len(data) > 0 {
		n := copy(e.ring[e.pos:], data)
		data = data[n:]
		e.pos += n
		if e.pos == FFTSize {
			e.analyze()
			e.pos = 0
		}
	}
}

func (e *SpectrumEngine) analyze() {
	for i, s := range e.ring {
		if math32.IsNaN(s) {
			s = 0
		}
		e.scratch[i] = float64(s) * e.window[i]
	}
	e.fft.Coefficients(e.coeffs, e.scratch)
	for i := range e.mags {
		e.mags[i] = float32(cmplx.Abs(e.coeffs[i]))
	}
	// 20*log10(mag); zero magnitude gives -Inf which the clip below eats
	vek32.Log_Inplace(e.mags)
	vek32.MulNumber_Inplace(e.mags, 20/math.Ln10)

	binHz := e.BinHz()
	for i := range e.bins {
		hz := binHz * float32(i)
		if hz < LowFreq || hz > HighFreq {
			e.bins[i] = DbMin
			continue
		}
		e.bins[i] = max(min(e.mags[i], DbMax), DbMin)
	}
	e.updatedAt = time.Now()
}

// Bins appends the latest bin magnitudes in dB to dst and returns it,
// together with the time of the last analysis. The GUI uses the timestamp to
// interpolate between successive spectra.
func (e *SpectrumEngine) Bins(dst []float32) ([]float32, time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append(dst[:0], e.bins[:]...), e.updatedAt
}

// Reset drops the partially accumulated window and floors the published
// spectrum, for when the display is switched away and back.
func (e *SpectrumEngine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pos = 0
	for i := range e.bins {
		e.bins[i] = DbMin
	}
	e.updatedAt = time.Now()
}

var logFreqRatio = math32.Log(float32(HighFreq) / float32(LowFreq))

// FreqToX maps a frequency onto a log-scaled x coordinate in pixels.
func FreqToX(freq float32, width int) float32 {
	return math32.Log(freq/LowFreq) / logFreqRatio * float32(width)
}

// DbToY maps a dB value onto a y coordinate in pixels, scaled to the
// user-selected dB range.
func DbToY(db float32, height int, params SpectrumParams) float32 {
	dbRange := params.DbRangeValue()
	if dbRange <= 0 {
		return 0
	}
	return float32(height) * (params.MaxDbValue() - db) / dbRange
}
