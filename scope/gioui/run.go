package gioui

import (
	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/op"
	"github.com/vtervo/skooppi/scope"
)

// Main runs the window event loop until the window is closed. Broker
// messages from the analysis goroutine invalidate the window, so the scope
// redraws whenever fresh data lands.
func (v *ScopeView) Main(broker *scope.Broker) {
	w := new(app.Window)
	prefs := MakePreferences()
	w.Option(app.Title("Skooppi"), app.Size(prefs.WindowSize()))
	if prefs.Window.Maximized {
		w.Option(app.Maximized.Option())
	}

	// window events have to be pulled in their own goroutine so that the
	// select below can react to broker messages while the loop is idle
	events := make(chan event.Event)
	acks := make(chan struct{})
	go func() {
		for {
			ev := w.Event()
			events <- ev
			<-acks
			if _, ok := ev.(app.DestroyEvent); ok {
				return
			}
		}
	}()

	var ops op.Ops
	for {
		select {
		case <-broker.ToGUI:
			w.Invalidate()
		case e := <-events:
			switch e := e.(type) {
			case app.DestroyEvent:
				acks <- struct{}{}
				return
			case app.FrameEvent:
				gtx := app.NewContext(&ops, e)
				v.Layout(gtx)
				e.Frame(gtx.Ops)
			}
			acks <- struct{}{}
		}
	}
}
