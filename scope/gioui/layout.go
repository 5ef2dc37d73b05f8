package gioui

import (
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

type C = layout.Context
type D = layout.Dimensions

// fillRect fills the rect with the color of the last paint.ColorOp
func fillRect(gtx C, rect clip.Rect) {
	stack := rect.Push(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	stack.Pop()
}
