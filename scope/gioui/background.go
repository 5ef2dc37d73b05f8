package gioui

import (
	"fmt"
	"image"

	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/chewxy/math32"
	"github.com/vtervo/skooppi/scope"
)

var gridFreqs = []float32{
	10, 20, 30, 40, 60, 80, 100,
	200, 300, 400, 600, 800, 1000,
	2000, 3000, 4000, 6000, 8000, 10000, 20000, 24000,
}

func isPrimaryFreq(freq float32) bool {
	switch freq {
	case 10, 100, 1000, 10000, 24000:
		return true
	}
	return false
}

func freqLabel(freq float32) string {
	if freq >= 1000 {
		return fmt.Sprintf("%gk", freq/1000)
	}
	return fmt.Sprintf("%g", freq)
}

func paintSpectrumGrid(gtx C, th *Theme, params scope.SpectrumParams) {
	w, h := gtx.Constraints.Max.X, gtx.Constraints.Max.Y

	for _, freq := range gridFreqs {
		x := int(scope.FreqToX(freq, w))
		color := th.Scope.GridSecondary
		if isPrimaryFreq(freq) {
			color = th.Scope.GridPrimary
		}
		paint.ColorOp{Color: color}.Add(gtx.Ops)
		fillRect(gtx, clip.Rect{Min: image.Pt(x, 0), Max: image.Pt(x+1, h)})
		// the band edges stay unlabeled, they would crowd the corners
		if freq == scope.LowFreq || freq == scope.HighFreq {
			continue
		}
		offs := op.Offset(image.Pt(x+2, h-16)).Push(gtx.Ops)
		Label(th, &th.Scope.AxisText, freqLabel(freq)).Layout(gtx)
		offs.Pop()
	}

	maxDb := params.MaxDbValue()
	noiseFloor := params.NoiseFloorValue()
	for db := math32.Ceil(noiseFloor/10) * 10; db <= maxDb; db += 10 {
		y := int(scope.DbToY(db, h, params))
		color := th.Scope.GridSecondary
		if db == maxDb || db == noiseFloor {
			color = th.Scope.GridPrimary
		}
		paint.ColorOp{Color: color}.Add(gtx.Ops)
		fillRect(gtx, clip.Rect{Min: image.Pt(0, y), Max: image.Pt(w, y+1)})
		offs := op.Offset(image.Pt(w-52, y-14)).Push(gtx.Ops)
		Label(th, &th.Scope.AxisText, fmt.Sprintf("%g dB", db)).Layout(gtx)
		offs.Pop()
	}
}

func paintWaveformGrid(gtx C, th *Theme, params scope.WaveformParams, sampleRate float32) {
	w, h := gtx.Constraints.Max.X, gtx.Constraints.Max.Y

	paint.ColorOp{Color: th.Scope.GridPrimary}.Add(gtx.Ops)
	for _, y := range []int{0, h / 2, h - 1} {
		fillRect(gtx, clip.Rect{Min: image.Pt(0, y), Max: image.Pt(w, y+1)})
	}

	// amplitude labels show the input level that maps to full scale
	limit := fmt.Sprintf("%.2f", 1/params.Gain())
	for _, l := range []struct {
		txt string
		y   int
	}{{"+" + limit, 2}, {"0.0", h/2 + 2}, {"-" + limit, h - 18}} {
		offs := op.Offset(image.Pt(w-44, l.y)).Push(gtx.Ops)
		Label(th, &th.Scope.AxisText, l.txt).Layout(gtx)
		offs.Pop()
	}

	// trigger level line for the edge triggers
	if params.TriggerType == scope.TriggerRising || params.TriggerType == scope.TriggerFalling {
		level := params.TriggerLevelValue()
		if params.TriggerType == scope.TriggerFalling {
			level = -level
		}
		y := int((1 - level) * 0.5 * float32(h))
		paint.ColorOp{Color: th.Scope.GridSecondary}.Add(gtx.Ops)
		fillRect(gtx, clip.Rect{Min: image.Pt(0, y), Max: image.Pt(w, y+1)})
	}

	// seven vertical divisions, labeled with the time they land on
	endpoint := float32(w) / params.CounterSpeed() / sampleRate
	unit := " s"
	scale := float32(1)
	if endpoint < 1 {
		unit = " ms"
		scale = 1000
	}
	for i := 0; i < 7; i++ {
		x := w * i / 6
		color := th.Scope.GridSecondary
		if i == 0 || i == 6 {
			color = th.Scope.GridPrimary
		}
		paint.ColorOp{Color: color}.Add(gtx.Ops)
		fillRect(gtx, clip.Rect{Min: image.Pt(x, 0), Max: image.Pt(x+1, h)})
		if i == 6 {
			x -= 48 // keep the last label inside the scope
		}
		offs := op.Offset(image.Pt(x+2, h-16)).Push(gtx.Ops)
		Label(th, &th.Scope.AxisText, fmt.Sprintf("%.2f%s", endpoint/6*float32(i)*scale, unit)).Layout(gtx)
		offs.Pop()
	}
}
