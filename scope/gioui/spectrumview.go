package gioui

import (
	"image"
	"time"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/vtervo/skooppi/scope"
)

// SpectrumView draws the analysis bins as a filled curve. Successive spectra
// arrive at the analysis rate, so the drawn curve eases from the previous
// frame towards the newest data instead of jumping.
type SpectrumView struct {
	bins       []float32
	displayed  []float32
	lastHeight int
}

func (v *SpectrumView) Layout(gtx C, th *Theme, osc *scope.Oscilloscope) D {
	s := gtx.Constraints.Max
	if s.X <= 1 || s.Y <= 1 {
		return D{}
	}
	defer clip.Rect(image.Rectangle{Max: s}).Push(gtx.Ops).Pop()

	params := osc.SpectrumControls.Params()
	paintSpectrumGrid(gtx, th, params)

	var updatedAt time.Time
	v.bins, updatedAt = osc.Spectrum.Bins(v.bins)

	zeroPoint := scope.DbToY(scope.DbMin, s.Y, params)
	if v.displayed == nil || v.lastHeight != s.Y {
		v.displayed = make([]float32, len(v.bins))
		for i := range v.displayed {
			v.displayed[i] = zeroPoint
		}
		v.lastHeight = s.Y
	}

	// the mean time between spectra is one analysis window, so dt/mtbs is
	// how far towards the newest spectrum this frame should ease
	binHz := osc.Spectrum.BinHz()
	mu := float32(time.Since(updatedAt).Seconds()) * binHz
	mu = max(min(mu, 1), 0)

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(scope.FreqToX(scope.LowFreq, s.X), zeroPoint))
	started := false
	for i, db := range v.bins {
		hz := binHz * float32(i)
		if hz < scope.LowFreq || hz > scope.HighFreq {
			continue
		}
		x := scope.FreqToX(hz, s.X)
		y := v.displayed[i]*(1-mu) + scope.DbToY(db, s.Y, params)*mu
		v.displayed[i] = y
		if y > 0 {
			if !started {
				path.MoveTo(f32.Pt(x, zeroPoint))
				started = true
			}
			path.LineTo(f32.Pt(x, y))
		} else {
			path.LineTo(f32.Pt(x, zeroPoint))
			path.Close()
			started = false
		}
	}
	if started {
		path.LineTo(f32.Pt(scope.FreqToX(scope.HighFreq, s.X), zeroPoint))
		path.Close()
	}
	paint.FillShape(gtx.Ops, th.Scope.Curve, clip.Outline{Path: path.End()}.Op())
	if mu < 1 {
		// still easing towards the newest spectrum, keep the frames coming
		gtx.Execute(op.InvalidateCmd{})
	}
	return D{Size: s}
}
