// Package signal synthesizes simple test signals for feeding the scope:
// banks of oscillators described in yml, so interesting inputs can be built
// without touching any code.
package signal

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/vtervo/skooppi"
)

type (
	Patch struct {
		Oscillators []Oscillator
	}

	Oscillator struct {
		Shape     Shape
		Freq      float32 // Hz
		Amplitude float32
		Pan       float32 `yaml:",omitempty"` // -1 hard left, 0 center, 1 hard right
	}

	Shape int
)

const (
	Sine Shape = iota
	Saw
	Square
	Triangle
	Noise
)

var shapeNames = [...]string{"sine", "saw", "square", "triangle", "noise"}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "???"
	}
	return shapeNames[s]
}

func (s Shape) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s *Shape) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	for i, n := range shapeNames {
		if n == name {
			*s = Shape(i)
			return nil
		}
	}
	return fmt.Errorf("unknown oscillator shape %q", name)
}

// DefaultPatch is what plays when the user gives no patch file: a plain
// center-panned A4 sine.
func DefaultPatch() Patch {
	return Patch{Oscillators: []Oscillator{
		{Shape: Sine, Freq: 440, Amplitude: 0.5},
	}}
}

// Generator sums the oscillators of a patch into a stereo signal. It
// implements skooppi.AudioSource.
type Generator struct {
	patch      Patch
	sampleRate float32
	phases     []float32
	rand       *rand.Rand
}

func NewGenerator(patch Patch, sampleRate float32) *Generator {
	return &Generator{
		patch:      patch,
		sampleRate: sampleRate,
		phases:     make([]float32, len(patch.Oscillators)),
		rand:       rand.New(rand.NewSource(1)),
	}
}

func (g *Generator) ReadAudio(buf skooppi.AudioBuffer) error {
	for i := range buf {
		var left, right float32
		for j, osc := range g.patch.Oscillators {
			sample := osc.Amplitude * g.shapeSample(osc.Shape, g.phases[j])
			left += sample * min(1-osc.Pan, 1)
			right += sample * min(1+osc.Pan, 1)
			g.phases[j] += osc.Freq / g.sampleRate
			if g.phases[j] >= 1 {
				g.phases[j] -= 1
			}
		}
		buf[i] = [2]float32{left, right}
	}
	return nil
}

func (g *Generator) shapeSample(shape Shape, phase float32) float32 {
	switch shape {
	case Sine:
		return math32.Sin(2 * math32.Pi * phase)
	case Saw:
		return 2*phase - 1
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Triangle:
		return 1 - 4*math32.Abs(phase-0.5)
	case Noise:
		return g.rand.Float32()*2 - 1
	}
	return 0
}
