package gioui

import (
	"fmt"
	"image"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/chewxy/math32"
	"github.com/vtervo/skooppi/scope"
)

// WaveformView draws the decimated trace and a click readout that converts
// the clicked point back into amplitude and time.
type WaveformView struct {
	trace      []scope.TracePoint
	clickPoint f32.Point
	hasClick   bool
}

func (v *WaveformView) Layout(gtx C, th *Theme, osc *scope.Oscilloscope) D {
	s := gtx.Constraints.Max
	if s.X <= 1 || s.Y <= 1 {
		return D{}
	}
	defer clip.Rect(image.Rectangle{Max: s}).Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, v)
	v.update(gtx)

	params := osc.WaveformControls.Params()
	paintWaveformGrid(gtx, th, params, osc.SampleRate())

	osc.Waveform.Resize(s.X, s.Y)
	v.trace = osc.Waveform.Trace(v.trace)
	if len(v.trace) < 2 {
		return D{Size: s}
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	counterSpeedInverse := 1 / params.CounterSpeed()
	if counterSpeedInverse < 1 {
		// fewer samples than columns, so interpolate between the committed
		// columns instead of connecting every point pair
		phase := counterSpeedInverse
		path.MoveTo(f32.Pt(v.trace[0].X, v.trace[0].Y))
		for i := 1; i < s.X-1; i++ {
			index := int(phase)
			if 2*index+2 >= len(v.trace) {
				break
			}
			alpha := phase - float32(index)
			y := (1-alpha)*v.trace[2*index].Y + alpha*v.trace[2*index+2].Y
			path.LineTo(f32.Pt(float32(i), y))
			phase += counterSpeedInverse
		}
	} else {
		path.MoveTo(f32.Pt(v.trace[0].X, v.trace[0].Y))
		for _, pt := range v.trace[1:] {
			path.LineTo(f32.Pt(pt.X, pt.Y))
		}
	}
	paint.FillShape(gtx.Ops, th.Scope.Curve, clip.Stroke{Path: path.End(), Width: 1}.Op())

	if v.hasClick {
		v.layoutReadout(gtx, th, params, osc.SampleRate(), counterSpeedInverse)
	}
	return D{Size: s}
}

func (v *WaveformView) layoutReadout(gtx C, th *Theme, params scope.WaveformParams, sampleRate, counterSpeedInverse float32) {
	s := gtx.Constraints.Max
	cx, cy := v.clickPoint.X, v.clickPoint.Y

	paint.ColorOp{Color: th.Scope.Crosshair}.Add(gtx.Ops)
	fillRect(gtx, clip.Rect{Min: image.Pt(int(cx), 0), Max: image.Pt(int(cx)+1, s.Y)})
	fillRect(gtx, clip.Rect{Min: image.Pt(0, int(cy)), Max: image.Pt(s.X, int(cy)+1)})

	y := (-2*(cy+1)/float32(s.Y) + 1) / params.Gain()
	x := cx * counterSpeedInverse
	freq := "x = -inf Hz"
	if x != 0 {
		freq = fmt.Sprintf("x = %.3f Hz", sampleRate/x)
	}
	lines := []string{
		fmt.Sprintf("y = %.5f", y),
		fmt.Sprintf("y = %.5f dB", 20*math32.Log10(math32.Abs(y))),
		fmt.Sprintf("x = %.2f spl", x),
		fmt.Sprintf("x = %.5f s", x/sampleRate),
		fmt.Sprintf("x = %.5f ms", 1000*x/sampleRate),
		freq,
	}
	for i, line := range lines {
		offs := op.Offset(image.Pt(8, 8+14*i)).Push(gtx.Ops)
		Label(th, &th.Scope.Readout, line).Layout(gtx)
		offs.Pop()
	}
}

func (v *WaveformView) update(gtx C) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: v,
			Kinds:  pointer.Press | pointer.Drag,
		})
		if !ok {
			break
		}
		if e, ok := ev.(pointer.Event); ok {
			switch e.Kind {
			case pointer.Press:
				if e.Buttons&pointer.ButtonSecondary != 0 {
					v.hasClick = false
					continue
				}
				fallthrough
			case pointer.Drag:
				v.clickPoint = e.Position
				v.hasClick = true
			}
		}
	}
}
