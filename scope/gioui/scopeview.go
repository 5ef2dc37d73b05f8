package gioui

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/vtervo/skooppi/scope"
)

func widgetForIcon(icon []byte) *widget.Icon {
	p, err := widget.NewIcon(icon)
	if err != nil {
		panic(err)
	}
	return p
}

var iconWaveform = widgetForIcon(icons.EditorShowChart)
var iconSpectrum = widgetForIcon(icons.AVEqualizer)

// ScopeView is the whole oscilloscope widget: channel toggles and the mode
// switch on top, the display in the middle and the parameters of the active
// mode at the bottom.
type ScopeView struct {
	Theme *Theme

	osc *scope.Oscilloscope

	leftChan   widget.Bool
	rightChan  widget.Bool
	modeBtn    widget.Clickable
	triggerBtn widget.Clickable

	freeze     widget.Bool
	dcKill     widget.Bool
	syncDraw   widget.Bool
	specFreeze widget.Bool

	triggerSpeed widget.Float
	triggerLevel widget.Float
	triggerLimit widget.Float
	timeWindow   widget.Float
	ampWindow    widget.Float
	noiseFloor   widget.Float
	maxDb        widget.Float

	waveform WaveformView
	spectrum SpectrumView
}

func NewScopeView(th *Theme, osc *scope.Oscilloscope) *ScopeView {
	v := &ScopeView{Theme: th, osc: osc}
	v.leftChan.Value = true
	v.rightChan.Value = true
	wp := osc.WaveformControls.Params()
	v.triggerSpeed.Value = wp.TriggerSpeed
	v.triggerLevel.Value = wp.TriggerLevel
	v.triggerLimit.Value = wp.TriggerLimit
	v.timeWindow.Value = wp.TimeWindow
	v.ampWindow.Value = wp.AmpWindow
	sp := osc.SpectrumControls.Params()
	v.noiseFloor.Value = sp.NoiseFloor
	v.maxDb.Value = sp.MaxDb
	return v
}

// Update routes the widget state into the controllers and pushes any dirty
// parameter snapshots to the engines, each snapshot exactly once.
func (v *ScopeView) Update(gtx C) {
	for v.modeBtn.Clicked(gtx) {
		if v.osc.Mode() == scope.ModeWaveform {
			v.osc.SetMode(scope.ModeSpectrum)
		} else {
			v.osc.SetMode(scope.ModeWaveform)
		}
	}
	wc := v.osc.WaveformControls
	for v.triggerBtn.Clicked(gtx) {
		if t := wc.TriggerTypeInt(); !t.Add(1) {
			t.Set(0)
		}
	}
	leftChanged := v.leftChan.Update(gtx)
	rightChanged := v.rightChan.Update(gtx)
	if leftChanged || rightChanged {
		v.osc.SetChannels(scope.ChannelSelectFromLR(v.leftChan.Value, v.rightChan.Value))
	}

	wc.Freeze().Set(v.freeze.Value)
	wc.DCKill().Set(v.dcKill.Value)
	wc.SyncDraw().Set(v.syncDraw.Value)
	wc.TriggerSpeed().Set(v.triggerSpeed.Value)
	wc.TriggerLevel().Set(v.triggerLevel.Value)
	wc.TriggerLimit().Set(v.triggerLimit.Value)
	wc.TimeWindow().Set(v.timeWindow.Value)
	wc.AmpWindow().Set(v.ampWindow.Value)

	sc := v.osc.SpectrumControls
	sc.Freeze().Set(v.specFreeze.Value)
	sc.NoiseFloor().Set(v.noiseFloor.Value)
	sc.MaxDb().Set(v.maxDb.Value)

	if p, ok := wc.ParamsIfDirty(); ok {
		v.osc.Waveform.SetParams(p)
	}
	if p, ok := sc.ParamsIfDirty(); ok {
		v.osc.Spectrum.SetParams(p)
	}
}

func (v *ScopeView) Layout(gtx C) D {
	v.Update(gtx)
	paint.FillShape(gtx.Ops, v.Theme.Background, clip.Rect{Max: gtx.Constraints.Max}.Op())
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(v.layoutTopBar),
		layout.Flexed(1, v.layoutScope),
		layout.Rigid(v.layoutControls),
	)
}

func (v *ScopeView) layoutTopBar(gtx C) D {
	// the mode button shows what clicking it switches to
	modeIcon, modeDesc := iconWaveform, "Switch to waveform"
	if v.osc.Mode() == scope.ModeWaveform {
		modeIcon, modeDesc = iconSpectrum, "Switch to spectrum"
	}
	children := []layout.FlexChild{
		layout.Rigid(material.CheckBox(v.Theme.Material, &v.leftChan, "L").Layout),
		layout.Rigid(material.CheckBox(v.Theme.Material, &v.rightChan, "R").Layout),
		layout.Flexed(1, func(gtx C) D { return D{Size: gtx.Constraints.Min} }),
	}
	if v.osc.Mode() == scope.ModeWaveform {
		trigger := scope.TriggerType(v.osc.WaveformControls.TriggerTypeInt().Value())
		children = append(children,
			layout.Rigid(textBtn(v.Theme, &v.triggerBtn, "Trigger: "+trigger.String()).Layout))
	}
	children = append(children,
		layout.Rigid(iconBtn(v.Theme, &v.modeBtn, modeIcon, modeDesc).Layout))
	return layout.UniformInset(unit.Dp(2)).Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

func (v *ScopeView) layoutScope(gtx C) D {
	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx C) D {
		gtx.Constraints.Min = gtx.Constraints.Max
		if v.osc.Mode() == scope.ModeWaveform {
			return v.waveform.Layout(gtx, v.Theme, v.osc)
		}
		return v.spectrum.Layout(gtx, v.Theme, v.osc)
	})
}

func (v *ScopeView) layoutControls(gtx C) D {
	if v.osc.Mode() == scope.ModeWaveform {
		wc := v.osc.WaveformControls
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Flexed(1, v.slider(&v.triggerSpeed, wc.TriggerSpeed().Enabled(), "Speed")),
			layout.Flexed(1, v.slider(&v.triggerLevel, wc.TriggerLevel().Enabled(), "Level")),
			layout.Flexed(1, v.slider(&v.triggerLimit, true, "Hold")),
			layout.Flexed(1, v.slider(&v.timeWindow, true, "Time")),
			layout.Flexed(1, v.slider(&v.ampWindow, true, "Gain")),
			layout.Rigid(material.CheckBox(v.Theme.Material, &v.dcKill, "DC").Layout),
			layout.Rigid(material.CheckBox(v.Theme.Material, &v.syncDraw, "Sync").Layout),
			layout.Rigid(material.CheckBox(v.Theme.Material, &v.freeze, "Freeze").Layout),
		)
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, v.slider(&v.noiseFloor, true, "Floor")),
		layout.Flexed(1, v.slider(&v.maxDb, true, "Max dB")),
		layout.Rigid(material.CheckBox(v.Theme.Material, &v.specFreeze, "Freeze").Layout),
	)
}

func (v *ScopeView) slider(f *widget.Float, enabled bool, label string) layout.Widget {
	return func(gtx C) D {
		if !enabled {
			gtx = gtx.Disabled()
		}
		return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx C) D {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(Label(v.Theme, &v.Theme.Scope.ControlLabel, label).Layout),
				layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
				layout.Flexed(1, material.Slider(v.Theme.Material, f).Layout),
			)
		})
	}
}

func textBtn(th *Theme, w *widget.Clickable, txt string) material.ButtonStyle {
	ret := material.Button(th.Material, w, txt)
	ret.Background = color.NRGBA{}
	ret.Color = th.Primary
	ret.Inset = layout.UniformInset(unit.Dp(6))
	return ret
}

func iconBtn(th *Theme, w *widget.Clickable, icon *widget.Icon, description string) material.IconButtonStyle {
	ret := material.IconButton(th.Material, w, icon, description)
	ret.Background = color.NRGBA{}
	ret.Color = th.Primary
	ret.Inset = layout.UniformInset(unit.Dp(6))
	return ret
}
