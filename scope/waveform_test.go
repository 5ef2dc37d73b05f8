package scope

import "testing"

const testHeight = 2

// sample values map to pixel y as (1-s) when the trace is two pixels tall
func yOf(sample float32) float32 { return 1 - sample }

// timeWindow 0.3 gives a counter speed of one column per sample
func perSampleParams() WaveformParams {
	p := defaultWaveformParams()
	p.TimeWindow = 0.3
	p.TriggerLimit = 0
	return p
}

func newTestEngine(width int, params WaveformParams) *WaveformEngine {
	e := NewWaveformEngine(44100)
	e.Resize(width, testHeight)
	e.SetParams(params)
	return e
}

func TestWaveformResizeCenterline(t *testing.T) {
	e := newTestEngine(4, perSampleParams())
	trace := e.Trace(nil)
	if len(trace) != 8 {
		t.Fatalf("expected 2 points per column, got %d points", len(trace))
	}
	for i, p := range trace {
		if p.X != float32(i/2) {
			t.Errorf("point %d: x = %v, want %v", i, p.X, i/2)
		}
		if p.Y != yOf(0) {
			t.Errorf("point %d: y = %v, want centerline %v", i, p.Y, yOf(0))
		}
	}
}

func TestWaveformOneColumnPerSample(t *testing.T) {
	e := newTestEngine(4, perSampleParams())
	e.Process([]float32{0.5, -0.5, 1, -1})
	trace := e.Trace(nil)
	for col, s := range []float32{0.5, -0.5, 1, -1} {
		if trace[2*col].Y != yOf(s) || trace[2*col+1].Y != yOf(s) {
			t.Errorf("column %d: got y %v/%v, want %v", col, trace[2*col].Y, trace[2*col+1].Y, yOf(s))
		}
	}
}

func TestWaveformGainClips(t *testing.T) {
	p := perSampleParams()
	p.AmpWindow = 1 // gain 1000, everything nonzero clips
	e := newTestEngine(2, p)
	e.Process([]float32{0.01, -0.01})
	trace := e.Trace(nil)
	if trace[0].Y != yOf(1) {
		t.Errorf("positive sample should clip to +1, got y %v", trace[0].Y)
	}
	if trace[2].Y != yOf(-1) {
		t.Errorf("negative sample should clip to -1, got y %v", trace[2].Y)
	}
}

func TestWaveformMinMaxSquash(t *testing.T) {
	p := perSampleParams()
	p.TimeWindow = 0.5 // roughly ten samples per column
	e := newTestEngine(4, p)
	data := make([]float32, 25)
	for i := range data {
		if i%2 == 0 {
			data[i] = 0.8
		} else {
			data[i] = -0.8
		}
	}
	e.Process(data)
	trace := e.Trace(nil)
	// the second column squashes several alternating samples, so its point
	// pair must span the full min-max range, in either order
	lo, hi := trace[2].Y, trace[3].Y
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo != yOf(0.8) || hi != yOf(-0.8) {
		t.Errorf("squashed column spans y %v..%v, want %v..%v", lo, hi, yOf(0.8), yOf(-0.8))
	}
}

func TestWaveformFreeze(t *testing.T) {
	e := newTestEngine(4, perSampleParams())
	e.Process([]float32{0.5, 0.5, 0.5, 0.5})
	before := e.Trace(nil)
	p := perSampleParams()
	p.Freeze = true
	e.SetParams(p)
	e.Process([]float32{-1, -1, -1, -1})
	after := e.Trace(nil)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("point %d changed while frozen: %v -> %v", i, before[i], after[i])
		}
	}
}

func TestWaveformFreeRetrigger(t *testing.T) {
	e := newTestEngine(2, perSampleParams())
	// two samples fill the trace, the third forces a wraparound
	e.Process([]float32{0.5, -0.5, 1})
	trace := e.Trace(nil)
	if trace[0].Y != yOf(1) {
		t.Errorf("column 0 after wrap: got y %v, want %v", trace[0].Y, yOf(1))
	}
	if trace[2].Y != yOf(-0.5) {
		t.Errorf("column 1 should still hold the pre-wrap sample, got y %v", trace[2].Y)
	}
}

func TestWaveformRisingTrigger(t *testing.T) {
	p := perSampleParams()
	p.TriggerType = TriggerRising // level defaults to the zero crossing
	e := newTestEngine(4, p)
	e.Process([]float32{-1, -1, 1, 1})
	trace := e.Trace(nil)
	// the crossing at the third sample restarts the trace, so the first
	// two columns hold the post-trigger samples
	if trace[0].Y != yOf(1) || trace[2].Y != yOf(1) {
		t.Errorf("expected trace restart at the rising edge, got y %v/%v", trace[0].Y, trace[2].Y)
	}
	if trace[4].Y != yOf(0) {
		t.Errorf("columns past the cursor should be zeroed, got y %v", trace[4].Y)
	}
}

func TestWaveformTriggerDebounce(t *testing.T) {
	p := perSampleParams()
	p.TriggerType = TriggerRising
	p.TriggerLimit = 0.5 // 100 samples between accepted edges
	p.SyncDraw = true
	e := newTestEngine(4, p)
	// an edge arrives long before 100 samples have elapsed, so it must be
	// suppressed and the sync snapshot stays at the centerline
	e.Process([]float32{-1, 1, 1, 1})
	for i, pt := range e.Trace(nil) {
		if pt.Y != yOf(0) {
			t.Fatalf("suppressed edge still triggered, point %d y %v", i, pt.Y)
		}
	}
}

func TestWaveformInternalTriggerNeverDebounced(t *testing.T) {
	p := perSampleParams()
	p.TriggerType = TriggerInternal
	p.TriggerSpeed = 1 // fires after ~320 samples
	p.TriggerLimit = 1 // debounce would demand 10000
	p.SyncDraw = true
	e := newTestEngine(4, p)
	data := make([]float32, 400)
	for i := range data {
		data[i] = 0.5
	}
	e.Process(data)
	if trace := e.Trace(nil); trace[0].Y == yOf(0) {
		t.Error("internal trigger should fire regardless of the debounce limit")
	}
}

func TestWaveformSyncDrawHoldsBetweenTriggers(t *testing.T) {
	p := perSampleParams()
	p.SyncDraw = true
	e := newTestEngine(2, p)
	// first wraparound snapshots 0.5/-0.5, later samples only touch the
	// live trace until the next wrap
	e.Process([]float32{0.5, -0.5, 1})
	trace := e.Trace(nil)
	if trace[0].Y != yOf(0.5) || trace[2].Y != yOf(-0.5) {
		t.Errorf("sync snapshot: got y %v/%v, want %v/%v", trace[0].Y, trace[2].Y, yOf(0.5), yOf(-0.5))
	}
}

func TestWaveformDCKillRemovesOffset(t *testing.T) {
	p := perSampleParams()
	p.DCKill = true
	e := newTestEngine(4, p)
	// feed a long constant block first so the blocker settles
	settle := make([]float32, 8000)
	for i := range settle {
		settle[i] = 0.7
	}
	e.Process(settle)
	e.Process([]float32{0.7, 0.7, 0.7, 0.7})
	for i, pt := range e.Trace(nil) {
		if d := pt.Y - yOf(0); d > 0.1 || d < -0.1 {
			t.Fatalf("DC offset survived the filter, point %d y %v", i, pt.Y)
		}
	}
}

func TestWaveformInvalidTriggerPanics(t *testing.T) {
	p := perSampleParams()
	p.TriggerType = numTriggerTypes
	e := newTestEngine(2, p)
	defer func() {
		if recover() == nil {
			t.Error("expected a panic on an invalid trigger type")
		}
	}()
	e.Process([]float32{0})
}
