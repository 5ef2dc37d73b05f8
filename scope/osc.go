package scope

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/viterin/vek/vek32"
)

type (
	// AudioTap is the upstream source of the analysis data. Subscribing
	// makes the tap start buffering the audio passing through it; PopAll
	// drains whatever has accumulated since the last call.
	AudioTap interface {
		Subscribe()
		Unsubscribe()
		PopAll() (left, right []float32)
	}

	ChannelSelect int

	ScopeMode int
)

const (
	ChannelOff ChannelSelect = iota
	ChannelLeft
	ChannelRight
	ChannelStereo
)

const (
	ModeWaveform ScopeMode = iota
	ModeSpectrum
)

// ChannelSelectFromLR maps the two channel toggle buttons onto a selection.
func ChannelSelectFromLR(left, right bool) ChannelSelect {
	switch {
	case left && right:
		return ChannelStereo
	case left:
		return ChannelLeft
	case right:
		return ChannelRight
	}
	return ChannelOff
}

// Oscilloscope owns the analysis goroutine that drains the audio tap and
// feeds whichever engine the current mode selects. The GUI reads the engines
// directly and learns about fresh data through the broker.
type Oscilloscope struct {
	Waveform         *WaveformEngine
	Spectrum         *SpectrumEngine
	WaveformControls *WaveformControls
	SpectrumControls *SpectrumControls

	broker     *Broker
	tap        AudioTap
	sampleRate float32

	mu          sync.Mutex
	channelsOff sync.Cond
	channels    ChannelSelect
	mode        ScopeMode
	complete    atomic.Bool
}

// NewOscilloscope subscribes to the tap and starts the analysis goroutine.
// Call Close to stop it.
func NewOscilloscope(broker *Broker, tap AudioTap, sampleRate float32) *Oscilloscope {
	o := &Oscilloscope{
		Waveform:         NewWaveformEngine(sampleRate),
		Spectrum:         NewSpectrumEngine(sampleRate),
		WaveformControls: NewWaveformControls(),
		SpectrumControls: NewSpectrumControls(),
		broker:           broker,
		tap:              tap,
		sampleRate:       sampleRate,
		channels:         ChannelStereo,
		mode:             ModeSpectrum,
	}
	o.channelsOff.L = &o.mu
	o.tap.Subscribe()
	go o.pullData()
	return o
}

func (o *Oscilloscope) SampleRate() float32 { return o.sampleRate }

func (o *Oscilloscope) Channels() ChannelSelect {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.channels
}

// SetChannels changes the channel selection, waking the analysis goroutine
// if it was parked on an all-off selection.
func (o *Oscilloscope) SetChannels(channels ChannelSelect) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.channels = channels
	o.channelsOff.Broadcast()
}

func (o *Oscilloscope) Mode() ScopeMode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mode
}

// SetMode switches between the waveform and spectrum displays. The spectrum
// restarts from a floored display so a stale picture never greets the user.
func (o *Oscilloscope) SetMode(mode ScopeMode) {
	o.mu.Lock()
	changed := o.mode != mode
	o.mode = mode
	o.mu.Unlock()
	if changed && mode == ModeSpectrum {
		o.Spectrum.Reset()
	}
}

// Close stops the analysis goroutine and detaches from the tap. Waiting for
// the goroutine is bounded so a stuck tap cannot hang the shutdown.
func (o *Oscilloscope) Close() {
	// complete has to be set before waking the goroutine, so it cannot park
	// itself again after the broadcast
	o.complete.Store(true)
	o.mu.Lock()
	o.channels = ChannelOff
	o.channelsOff.Broadcast()
	o.mu.Unlock()
	TimeoutReceive(o.broker.FinishedScope, 3*time.Second)
	// the goroutine resubscribes when it wakes up, so unsubscribe once more
	// after it has finished
	o.tap.Unsubscribe()
}

func (o *Oscilloscope) pullData() {
	defer close(o.broker.FinishedScope)
	for !o.complete.Load() {
		o.mu.Lock()
		if o.channels == ChannelOff {
			// nobody is looking at the data, so stop the tap from
			// accumulating and park until the selection changes
			o.tap.Unsubscribe()
			for o.channels == ChannelOff && !o.complete.Load() {
				o.channelsOff.Wait()
			}
			o.tap.Subscribe()
			o.mu.Unlock()
			continue
		}
		channels := o.channels
		mode := o.mode
		o.mu.Unlock()

		left, right := o.tap.PopAll()
		if len(left) == 0 {
			// sleep long enough for a window's worth of audio to show up,
			// or half that in waveform mode to keep the trace lively
			div := float32(4)
			if mode == ModeSpectrum {
				div = 2
			}
			time.Sleep(time.Duration(FFTSize / div / o.sampleRate * float32(time.Second)))
			continue
		}

		// left doubles as the mono analysis buffer whatever the selection
		switch channels {
		case ChannelStereo:
			vek32.Add_Inplace(left, right)
			vek32.MulNumber_Inplace(left, 0.5)
		case ChannelRight:
			left = right
		}

		if mode == ModeWaveform {
			o.Waveform.Process(left)
		} else {
			o.Spectrum.Process(left)
		}
		TrySend(o.broker.ToGUI, MsgToGUI{Kind: GUIMessageDataUpdated})
	}
}
