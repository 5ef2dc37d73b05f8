package scope

import (
	"fmt"
	"sync"

	"github.com/chewxy/math32"
)

type (
	// WaveformEngine squashes incoming audio into a min/max-decimated trace,
	// one column per display pixel, retriggering according to the trigger
	// parameters. Process is called from the analysis goroutine and Trace
	// from the GUI, so all state is behind the mutex.
	WaveformEngine struct {
		mu         sync.Mutex
		params     WaveformParams
		sampleRate float32

		width, height int

		dcState      float32
		dcPrevSample float32

		triggerPhase      float32
		triggerLimitPhase int
		previousSample    float32

		peaks  []TracePoint
		synced []TracePoint

		index      int
		counter    float32
		maxSample  float32
		minSample  float32
		lastWasMax bool
	}

	// TracePoint is one vertex of the waveform polyline, in pixels.
	TracePoint struct {
		X, Y float32
	}
)

func NewWaveformEngine(sampleRate float32) *WaveformEngine {
	return &WaveformEngine{
		sampleRate: sampleRate,
		params:     defaultWaveformParams(),
		counter:    1,
		maxSample:  -math32.MaxFloat32,
		minSample:  math32.MaxFloat32,
	}
}

func (e *WaveformEngine) SetParams(params WaveformParams) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params = params
}

// Resize sets the trace dimensions in pixels and resets the trace to the
// centerline. Each column gets two points so that a single column can show
// the min-max span of all the samples squashed into it.
func (e *WaveformEngine) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if width == e.width && height == e.height {
		return
	}
	e.width, e.height = width, height
	e.peaks = make([]TracePoint, 2*width)
	e.synced = make([]TracePoint, 2*width)
	center := e.sampleToY(0)
	for j := 0; j < width; j++ {
		point := TracePoint{X: float32(j), Y: center}
		e.peaks[2*j], e.peaks[2*j+1] = point, point
		e.synced[2*j], e.synced[2*j+1] = point, point
	}
	e.index = 0
	e.counter = 1
}

// Process runs the capture pipeline on a block of mono samples: DC filter,
// gain and clip, trigger detection and min/max decimation into trace columns.
func (e *WaveformEngine) Process(data []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.params.Freeze || e.width == 0 {
		return
	}

	gain := e.params.Gain()
	triggerLevel := e.params.TriggerLevelValue()
	triggerLimit := e.params.TriggerLimitSamples()
	triggerSpeed := e.params.TriggerSpeedPhase()
	counterSpeed := e.params.CounterSpeed()
	R := 1 - 250/e.sampleRate

	for _, f := range data {
		// one pole DC blocker, with a snap to zero to keep denormals out
		e.dcState = f - e.dcPrevSample + R*e.dcState
		e.dcPrevSample = f
		if math32.Abs(e.dcState) < 1e-10 {
			e.dcState = 0
		}

		sample := f
		if e.params.DCKill {
			sample = e.dcState
		}
		sample = max(min(sample*gain, 1), -1)

		trigger := false
		switch e.params.TriggerType {
		case TriggerInternal:
			// internal oscillator, nothing fancy
			e.triggerPhase += triggerSpeed
			if e.triggerPhase >= 1 {
				e.triggerPhase -= 1
				trigger = true
			}
		case TriggerRising:
			// trigger on a rising edge
			// fixme: something is wrong with this triggering mechanism
			if sample >= triggerLevel && e.previousSample < triggerLevel {
				trigger = true
			}
		case TriggerFalling:
			// trigger on a falling edge
			// fixme: something is wrong with this triggering mechanism
			if sample <= triggerLevel && e.previousSample > triggerLevel {
				trigger = true
			}
		case TriggerFree:
			// trigger when we've run out of the screen area
			if e.index >= e.width {
				trigger = true
			}
		default:
			panic(fmt.Sprintf("invalid trigger type %d", int(e.params.TriggerType)))
		}

		// if there's a retrigger, but too fast, kill it
		e.triggerLimitPhase++
		if trigger && e.triggerLimitPhase < triggerLimit &&
			e.params.TriggerType != TriggerFree && e.params.TriggerType != TriggerInternal {
			trigger = false
		}

		if trigger {
			// zero the columns after the last committed one
			center := e.sampleToY(0)
			for j := 2 * e.index; j < 2*e.width; j += 2 {
				e.peaks[j].Y = center
				e.peaks[j+1].Y = center
			}
			// keep a copy for sync drawing
			copy(e.synced, e.peaks)
			e.index = 0
			e.counter = 1
			e.maxSample = -math32.MaxFloat32
			e.minSample = math32.MaxFloat32
			e.triggerLimitPhase = 0
		}

		if sample > e.maxSample {
			e.maxSample = sample
			e.lastWasMax = true
		}
		if sample < e.minSample {
			e.minSample = sample
			e.lastWasMax = false
		}

		// counter tracks column advance per sample: at counterSpeed 1 every
		// sample gets its own column, below 1 several samples squash into
		// one column as a min-max pair
		e.counter += counterSpeed
		if e.counter >= 1 {
			if e.index < e.width {
				maxY := e.sampleToY(e.maxSample)
				minY := e.sampleToY(e.minSample)
				// order the pair so the polyline continues from the side
				// the newest extremum is on
				if e.lastWasMax {
					e.peaks[2*e.index].Y = minY
					e.peaks[2*e.index+1].Y = maxY
				} else {
					e.peaks[2*e.index].Y = maxY
					e.peaks[2*e.index+1].Y = minY
				}
				e.index++
			}
			e.maxSample = -math32.MaxFloat32
			e.minSample = math32.MaxFloat32
			e.counter -= 1
		}

		e.previousSample = sample
	}
}

// Trace appends the current trace points to dst and returns it. With
// SyncDraw on, it returns the snapshot taken at the last trigger instead of
// the live trace, so the picture does not crawl between retriggers.
func (e *WaveformEngine) Trace(dst []TracePoint) []TracePoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.params.SyncDraw {
		return append(dst[:0], e.synced...)
	}
	return append(dst[:0], e.peaks...)
}

func (e *WaveformEngine) sampleToY(sample float32) float32 {
	return (1 - sample) * 0.5 * float32(e.height)
}
