package scope

import (
	"sync"

	"github.com/chewxy/math32"
)

type (
	// WaveformParams is an immutable snapshot of the waveform display
	// parameters. The scalar fields are normalized to [0,1]; the derived
	// quantities used by the capture engine are exposed as methods.
	WaveformParams struct {
		TriggerType  TriggerType
		TriggerSpeed float32
		TriggerLevel float32
		TriggerLimit float32
		TimeWindow   float32
		AmpWindow    float32
		Freeze       bool
		DCKill       bool
		SyncDraw     bool
	}

	// SpectrumParams is an immutable snapshot of the spectrum display
	// parameters, normalized to [0,1].
	SpectrumParams struct {
		NoiseFloor float32
		MaxDb      float32
		Freeze     bool
	}

	TriggerType int
)

const (
	TriggerFree TriggerType = iota
	TriggerRising
	TriggerFalling
	TriggerInternal
	numTriggerTypes
)

func (t TriggerType) String() string {
	switch t {
	case TriggerFree:
		return "Free"
	case TriggerRising:
		return "Rising"
	case TriggerFalling:
		return "Falling"
	case TriggerInternal:
		return "Internal"
	}
	return "???"
}

// CounterSpeed is the pixel advance per input sample; below 1, several
// samples are squashed into one trace column.
func (p WaveformParams) CounterSpeed() float32 {
	return math32.Pow(10, -p.TimeWindow*5+1.5)
}

func (p WaveformParams) Gain() float32 {
	return math32.Pow(10, p.AmpWindow*6-3)
}

func (p WaveformParams) TriggerLevelValue() float32 {
	return p.TriggerLevel*2 - 1
}

// TriggerLimitSamples is the minimum number of samples between two accepted
// edge triggers; 0 maps to 1 and 1 maps to 10000.
func (p WaveformParams) TriggerLimitSamples() int {
	return int(math32.Pow(10, p.TriggerLimit*4))
}

// TriggerSpeedPhase is the phase advance per sample of the internal trigger
// oscillator.
func (p WaveformParams) TriggerSpeedPhase() float32 {
	return math32.Pow(10, 2.5*p.TriggerSpeed-5)
}

func (p SpectrumParams) MaxDbValue() float32 {
	return (p.MaxDb - 1) * 50
}

func (p SpectrumParams) NoiseFloorValue() float32 {
	return (p.NoiseFloor - 2) * 50
}

func (p SpectrumParams) DbRangeValue() float32 {
	return max(p.MaxDbValue()-p.NoiseFloorValue(), 0)
}

func defaultWaveformParams() WaveformParams {
	return WaveformParams{
		TriggerType:  TriggerFree,
		TriggerSpeed: 0.5,
		TriggerLevel: 0.5,
		TriggerLimit: 0.5,
		TimeWindow:   0.75,
		AmpWindow:    0.5,
	}
}

func defaultSpectrumParams() SpectrumParams {
	return SpectrumParams{
		NoiseFloor: 0,
		MaxDb:      1,
	}
}

type (
	// Bool is a view to a boolean parameter of a controller, safe to pass
	// around by value.
	Bool struct {
		BoolData
	}

	BoolData interface {
		Value() bool
		Enabled() bool
		setValue(bool)
	}

	// Float is a view to a normalized scalar parameter of a controller.
	Float struct {
		FloatData
	}

	FloatData interface {
		Value() float32
		Range() floatRange
		Enabled() bool
		setValue(float32)
	}

	// Int is a view to an enumerated parameter of a controller.
	Int struct {
		IntData
	}

	IntData interface {
		Value() int
		Range() intRange
		setValue(int)
	}

	floatRange struct{ Min, Max float32 }
	intRange   struct{ Min, Max int }
)

func (v Bool) Toggle() { v.Set(!v.Value()) }

func (v Bool) Set(value bool) {
	if v.Enabled() && v.Value() != value {
		v.setValue(value)
	}
}

func (v Float) Set(value float32) (ok bool) {
	value = v.Range().Clamp(value)
	if !v.Enabled() || value == v.Value() {
		return false
	}
	v.setValue(value)
	return true
}

func (v Int) Set(value int) (ok bool) {
	value = v.Range().Clamp(value)
	if value == v.Value() {
		return false
	}
	v.setValue(value)
	return true
}

func (v Int) Add(delta int) (ok bool) { return v.Set(v.Value() + delta) }

func (r floatRange) Clamp(value float32) float32 { return max(min(value, r.Max), r.Min) }
func (r intRange) Clamp(value int) int           { return max(min(value, r.Max), r.Min) }

// WaveformControls owns the user-editable waveform parameters. Edits set a
// dirty flag under the controller's own lock; the render goroutine pulls the
// snapshot with ParamsIfDirty so every edit is applied exactly once, and a
// parameter edit never blocks behind ongoing capture processing.
type WaveformControls struct {
	mu     sync.Mutex
	params WaveformParams
	dirty  bool
}

func NewWaveformControls() *WaveformControls {
	// dirty so that the defaults get pushed to the engine on the first frame
	return &WaveformControls{params: defaultWaveformParams(), dirty: true}
}

// ParamsIfDirty returns a snapshot of the parameters and clears the dirty
// flag, or ok == false if nothing changed since the last call.
func (c *WaveformControls) ParamsIfDirty() (params WaveformParams, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return WaveformParams{}, false
	}
	c.dirty = false
	return c.params, true
}

// Params returns the current snapshot without consuming the dirty flag.
func (c *WaveformControls) Params() WaveformParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

func (c *WaveformControls) Freeze() Bool   { return Bool{(*waveformFreeze)(c)} }
func (c *WaveformControls) DCKill() Bool   { return Bool{(*waveformDCKill)(c)} }
func (c *WaveformControls) SyncDraw() Bool { return Bool{(*waveformSyncDraw)(c)} }

func (c *WaveformControls) TriggerSpeed() Float { return Float{(*waveformTriggerSpeed)(c)} }
func (c *WaveformControls) TriggerLevel() Float { return Float{(*waveformTriggerLevel)(c)} }
func (c *WaveformControls) TriggerLimit() Float { return Float{(*waveformTriggerLimit)(c)} }
func (c *WaveformControls) TimeWindow() Float   { return Float{(*waveformTimeWindow)(c)} }
func (c *WaveformControls) AmpWindow() Float    { return Float{(*waveformAmpWindow)(c)} }

func (c *WaveformControls) TriggerTypeInt() Int { return Int{(*waveformTriggerType)(c)} }

type (
	waveformFreeze       WaveformControls
	waveformDCKill       WaveformControls
	waveformSyncDraw     WaveformControls
	waveformTriggerSpeed WaveformControls
	waveformTriggerLevel WaveformControls
	waveformTriggerLimit WaveformControls
	waveformTimeWindow   WaveformControls
	waveformAmpWindow    WaveformControls
	waveformTriggerType  WaveformControls
)

func (c *WaveformControls) get(f func(*WaveformParams)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f(&c.params)
}

func (c *WaveformControls) set(f func(*WaveformParams)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f(&c.params)
	c.dirty = true
}

func (v *waveformFreeze) Value() bool {
	var ret bool
	(*WaveformControls)(v).get(func(p *WaveformParams) { ret = p.Freeze })
	return ret
}
func (v *waveformFreeze) setValue(val bool) {
	(*WaveformControls)(v).set(func(p *WaveformParams) { p.Freeze = val })
}
func (v *waveformFreeze) Enabled() bool { return true }

func (v *waveformDCKill) Value() bool {
	var ret bool
	(*WaveformControls)(v).get(func(p *WaveformParams) { ret = p.DCKill })
	return ret
}
func (v *waveformDCKill) setValue(val bool) {
	(*WaveformControls)(v).set(func(p *WaveformParams) { p.DCKill = val })
}
func (v *waveformDCKill) Enabled() bool { return true }

func (v *waveformSyncDraw) Value() bool {
	var ret bool
	(*WaveformControls)(v).get(func(p *WaveformParams) { ret = p.SyncDraw })
	return ret
}
func (v *waveformSyncDraw) setValue(val bool) {
	(*WaveformControls)(v).set(func(p *WaveformParams) { p.SyncDraw = val })
}
func (v *waveformSyncDraw) Enabled() bool { return true }

func (v *waveformTriggerSpeed) Value() float32 {
	var ret float32
	(*WaveformControls)(v).get(func(p *WaveformParams) { ret = p.TriggerSpeed })
	return ret
}
func (v *waveformTriggerSpeed) setValue(val float32) {
	(*WaveformControls)(v).set(func(p *WaveformParams) { p.TriggerSpeed = val })
}
func (v *waveformTriggerSpeed) Range() floatRange { return floatRange{0, 1} }

// Enabled: the internal trigger oscillator only runs in Internal mode.
func (v *waveformTriggerSpeed) Enabled() bool {
	var ret bool
	(*WaveformControls)(v).get(func(p *WaveformParams) { ret = p.TriggerType == TriggerInternal })
	return ret
}

func (v *waveformTriggerLevel) Value() float32 {
	var ret float32
	(*WaveformControls)(v).get(func(p *WaveformParams) { ret = p.TriggerLevel })
	return ret
}
func (v *waveformTriggerLevel) setValue(val float32) {
	(*WaveformControls)(v).set(func(p *WaveformParams) { p.TriggerLevel = val })
}
func (v *waveformTriggerLevel) Range() floatRange { return floatRange{0, 1} }

// Enabled: the level only matters for the edge triggers.
func (v *waveformTriggerLevel) Enabled() bool {
	var ret bool
	(*WaveformControls)(v).get(func(p *WaveformParams) {
		ret = p.TriggerType == TriggerRising || p.TriggerType == TriggerFalling
	})
	return ret
}

func (v *waveformTriggerLimit) Value() float32 {
	var ret float32
	(*WaveformControls)(v).get(func(p *WaveformParams) { ret = p.TriggerLimit })
	return ret
}
func (v *waveformTriggerLimit) setValue(val float32) {
	(*WaveformControls)(v).set(func(p *WaveformParams) { p.TriggerLimit = val })
}
func (v *waveformTriggerLimit) Range() floatRange { return floatRange{0, 1} }
func (v *waveformTriggerLimit) Enabled() bool     { return true }

func (v *waveformTimeWindow) Value() float32 {
	var ret float32
	(*WaveformControls)(v).get(func(p *WaveformParams) { ret = p.TimeWindow })
	return ret
}
func (v *waveformTimeWindow) setValue(val float32) {
	(*WaveformControls)(v).set(func(p *WaveformParams) { p.TimeWindow = val })
}
func (v *waveformTimeWindow) Range() floatRange { return floatRange{0, 1} }
func (v *waveformTimeWindow) Enabled() bool     { return true }

func (v *waveformAmpWindow) Value() float32 {
	var ret float32
	(*WaveformControls)(v).get(func(p *WaveformParams) { ret = p.AmpWindow })
	return ret
}
func (v *waveformAmpWindow) setValue(val float32) {
	(*WaveformControls)(v).set(func(p *WaveformParams) { p.AmpWindow = val })
}
func (v *waveformAmpWindow) Range() floatRange { return floatRange{0, 1} }
func (v *waveformAmpWindow) Enabled() bool     { return true }

func (v *waveformTriggerType) Value() int {
	var ret TriggerType
	(*WaveformControls)(v).get(func(p *WaveformParams) { ret = p.TriggerType })
	return int(ret)
}
func (v *waveformTriggerType) setValue(val int) {
	(*WaveformControls)(v).set(func(p *WaveformParams) { p.TriggerType = TriggerType(val) })
}
func (v *waveformTriggerType) Range() intRange { return intRange{0, int(numTriggerTypes) - 1} }

// SpectrumControls owns the user-editable spectrum parameters; see
// WaveformControls for the dirty-pull contract.
type SpectrumControls struct {
	mu     sync.Mutex
	params SpectrumParams
	dirty  bool
}

func NewSpectrumControls() *SpectrumControls {
	return &SpectrumControls{params: defaultSpectrumParams(), dirty: true}
}

func (c *SpectrumControls) ParamsIfDirty() (params SpectrumParams, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return SpectrumParams{}, false
	}
	c.dirty = false
	return c.params, true
}

func (c *SpectrumControls) Params() SpectrumParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

func (c *SpectrumControls) NoiseFloor() Float { return Float{(*spectrumNoiseFloor)(c)} }
func (c *SpectrumControls) MaxDb() Float      { return Float{(*spectrumMaxDb)(c)} }
func (c *SpectrumControls) Freeze() Bool      { return Bool{(*spectrumFreeze)(c)} }

type (
	spectrumNoiseFloor SpectrumControls
	spectrumMaxDb      SpectrumControls
	spectrumFreeze     SpectrumControls
)

func (c *SpectrumControls) set(f func(*SpectrumParams)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f(&c.params)
	c.dirty = true
}

func (v *spectrumNoiseFloor) Value() float32 {
	c := (*SpectrumControls)(v)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params.NoiseFloor
}
func (v *spectrumNoiseFloor) setValue(val float32) {
	(*SpectrumControls)(v).set(func(p *SpectrumParams) { p.NoiseFloor = val })
}
func (v *spectrumNoiseFloor) Range() floatRange { return floatRange{0, 1} }
func (v *spectrumNoiseFloor) Enabled() bool     { return true }

func (v *spectrumMaxDb) Value() float32 {
	c := (*SpectrumControls)(v)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params.MaxDb
}
func (v *spectrumMaxDb) setValue(val float32) {
	(*SpectrumControls)(v).set(func(p *SpectrumParams) { p.MaxDb = val })
}
func (v *spectrumMaxDb) Range() floatRange { return floatRange{0, 1} }
func (v *spectrumMaxDb) Enabled() bool     { return true }

func (v *spectrumFreeze) Value() bool {
	c := (*SpectrumControls)(v)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params.Freeze
}
func (v *spectrumFreeze) setValue(val bool) {
	(*SpectrumControls)(v).set(func(p *SpectrumParams) { p.Freeze = val })
}
func (v *spectrumFreeze) Enabled() bool { return true }
