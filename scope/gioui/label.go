package gioui

import (
	"image"
	"image/color"

	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
)

type (
	LabelStyle struct {
		Color    color.NRGBA `yaml:",flow"`
		FontSize unit.Sp
	}

	LabelWidget struct {
		Text  string
		Style *LabelStyle
		Theme *Theme
	}
)

func Label(th *Theme, style *LabelStyle, txt string) LabelWidget {
	return LabelWidget{Text: txt, Style: style, Theme: th}
}

func (l LabelWidget) Layout(gtx C) D {
	gtx.Constraints.Min = image.Point{}
	paint.ColorOp{Color: l.Style.Color}.Add(gtx.Ops)
	return widget.Label{Alignment: text.Start, MaxLines: 1}.Layout(
		gtx, l.Theme.Material.Shaper, labelFont, l.Style.FontSize, l.Text, op.CallOp{})
}
