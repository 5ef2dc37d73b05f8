package scope

import (
	"testing"

	"github.com/chewxy/math32"
)

const testRate = 44100

// sineBuf synthesizes a sine landing exactly on the given analysis bin, so
// the spectral peak is free of leakage.
func sineBuf(n, bin int, amplitude float32) []float32 {
	buf := make([]float32, n)
	w := 2 * math32.Pi * float32(bin) / FFTSize
	for i := range buf {
		buf[i] = amplitude * math32.Sin(w*float32(i))
	}
	return buf
}

func TestSpectrumFullScaleSineReadsZeroDb(t *testing.T) {
	e := NewSpectrumEngine(testRate)
	e.Process(sineBuf(FFTSize, 93, 1))
	bins, _ := e.Bins(nil)
	peak, peakDb := 0, float32(DbMin)
	for i, db := range bins {
		if db > peakDb {
			peak, peakDb = i, db
		}
	}
	if peak != 93 {
		t.Errorf("peak at bin %d, want 93", peak)
	}
	if peakDb < -1 || peakDb > 1 {
		t.Errorf("full-scale sine peak reads %v dB, want about 0", peakDb)
	}
}

func TestSpectrumBinsStayInDbRange(t *testing.T) {
	e := NewSpectrumEngine(testRate)
	// hot signal, well past full scale
	e.Process(sineBuf(FFTSize, 200, 25))
	bins, _ := e.Bins(nil)
	for i, db := range bins {
		if db < DbMin || db > DbMax {
			t.Fatalf("bin %d out of range: %v dB", i, db)
		}
	}
}

func TestSpectrumSilenceFloors(t *testing.T) {
	e := NewSpectrumEngine(testRate)
	e.Process(make([]float32, FFTSize))
	bins, _ := e.Bins(nil)
	for i, db := range bins {
		if db != DbMin {
			t.Fatalf("bin %d of silence reads %v dB, want %v", i, db, float32(DbMin))
		}
	}
}

func TestSpectrumOutOfBandBinsFloored(t *testing.T) {
	e := NewSpectrumEngine(96000) // binHz 23.4, so the band cuts off inside the bin range
	e.Process(sineBuf(FFTSize, 500, 1))
	bins, _ := e.Bins(nil)
	if bins[0] != DbMin {
		t.Errorf("DC bin should be floored, got %v dB", bins[0])
	}
	binHz := e.BinHz()
	for i, db := range bins {
		if hz := binHz * float32(i); hz > HighFreq && db != DbMin {
			t.Fatalf("bin %d at %v Hz above the band reads %v dB", i, hz, db)
		}
	}
}

func TestSpectrumNeedsFullWindow(t *testing.T) {
	e := NewSpectrumEngine(testRate)
	sine := sineBuf(FFTSize, 93, 1)
	e.Process(sine[:FFTSize-1])
	bins, before := e.Bins(nil)
	for i, db := range bins {
		if db != DbMin {
			t.Fatalf("bin %d updated before the window filled: %v dB", i, db)
		}
	}
	// one more sample completes the window, leftovers roll into the next
	e.Process(sine[FFTSize-1:])
	if _, after := e.Bins(nil); !after.After(before) {
		t.Error("completing the window should refresh the analysis timestamp")
	}
}

func TestSpectrumLeftoverCarry(t *testing.T) {
	e := NewSpectrumEngine(testRate)
	// 2.5 windows in one push: exactly two analyses should happen and the
	// half window stays buffered
	e.Process(sineBuf(FFTSize*5/2, 93, 1))
	_, first := e.Bins(nil)
	e.Process(sineBuf(FFTSize/2, 93, 1))
	if _, second := e.Bins(nil); !second.After(first) {
		t.Error("the buffered half window plus another half should trigger an analysis")
	}
}

func TestSpectrumFreeze(t *testing.T) {
	e := NewSpectrumEngine(testRate)
	p := defaultSpectrumParams()
	p.Freeze = true
	e.SetParams(p)
	e.Process(sineBuf(FFTSize, 93, 1))
	bins, _ := e.Bins(nil)
	for i, db := range bins {
		if db != DbMin {
			t.Fatalf("bin %d changed while frozen: %v dB", i, db)
		}
	}
}

func TestSpectrumReset(t *testing.T) {
	e := NewSpectrumEngine(testRate)
	e.Process(sineBuf(FFTSize, 93, 1))
	e.Reset()
	bins, _ := e.Bins(nil)
	for i, db := range bins {
		if db != DbMin {
			t.Fatalf("bin %d survived the reset: %v dB", i, db)
		}
	}
}

func TestFreqToXEndpoints(t *testing.T) {
	if got := FreqToX(LowFreq, 800); got != 0 {
		t.Errorf("FreqToX at the low edge: got %v, want 0", got)
	}
	if got := FreqToX(HighFreq, 800); math32.Abs(got-800) > 1e-2 {
		t.Errorf("FreqToX at the high edge: got %v, want 800", got)
	}
	prev := float32(-1)
	for _, hz := range []float32{10, 50, 100, 440, 1000, 5000, 10000, 24000} {
		x := FreqToX(hz, 800)
		if x <= prev {
			t.Fatalf("FreqToX not monotonic at %v Hz: %v <= %v", hz, x, prev)
		}
		prev = x
	}
}

func TestDbToYScaling(t *testing.T) {
	p := defaultSpectrumParams() // 0 dB down to -100 dB
	if got := DbToY(0, 400, p); got != 0 {
		t.Errorf("0 dB should map to the top, got %v", got)
	}
	if got := DbToY(-100, 400, p); got != 400 {
		t.Errorf("-100 dB should map to the bottom, got %v", got)
	}
	if got := DbToY(-50, 400, p); got != 200 {
		t.Errorf("-50 dB should map to the middle, got %v", got)
	}
	p.NoiseFloor = 1
	p.MaxDb = 0 // inverted range collapses to zero
	if got := DbToY(-50, 400, p); got != 0 {
		t.Errorf("degenerate range should map everything to 0, got %v", got)
	}
}
