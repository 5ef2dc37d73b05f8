package scope

import "time"

type (
	// Broker carries the messages between the background analysis goroutine
	// and the GUI. Communication is one channel per recipient; sends to the
	// GUI are non-blocking so a slow or absent GUI never stalls analysis.
	//
	// For closing the analysis goroutine, the broker has a FinishedScope
	// channel. Nothing is ever sent to it, it is only closed when the
	// goroutine has cleaned up. Waiting for the goroutine can be combined
	// with a timeout using TimeoutReceive to avoid deadlocks.
	Broker struct {
		ToGUI chan MsgToGUI

		FinishedScope chan struct{}
	}

	MsgToGUI struct {
		Kind GUIMessageKind
	}

	GUIMessageKind int
)

const (
	GUIMessageKindNone GUIMessageKind = iota
	GUIMessageDataUpdated
)

func NewBroker() *Broker {
	return &Broker{
		ToGUI:         make(chan MsgToGUI, 1024),
		FinishedScope: make(chan struct{}),
	}
}

// TrySend is a helper function to send a value to a channel if it is not
// full. It is guaranteed to be non-blocking. Returns true if the value was
// sent, false otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive blocks until a value is received from the channel, or until
// timing out after t. ok is false if the timeout occurred or the channel was
// closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
