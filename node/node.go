// Package node provides basic processors for mesh graphs.
package node

import (
	"math"

	"github.com/dudk/mesh"
)

type (
	// Constant emits its parameter value every tick.
	Constant struct {
		out []mesh.Signal
		def float64
	}

	// Counter emits the number of executed ticks.
	Counter struct {
		out   []mesh.Signal
		count int64
	}

	// Add emits the sum of two inputs.
	Add struct {
		out []mesh.Signal
	}

	// Mult emits the product of two inputs.
	Mult struct {
		out []mesh.Signal
	}

	// Mixer emits the average of its inputs.
	Mixer struct {
		out       []mesh.Signal
		numInputs int
	}

	// Sine is an oscillator. Its input is frequency in Hz.
	Sine struct {
		out        []mesh.Signal
		sampleRate float64
		phase      float64
	}

	// Pipe passes Sound signal through.
	Pipe struct {
		out []mesh.Signal
	}

	// IntPipe passes Int signal through.
	IntPipe struct {
		out []mesh.Signal
	}

	// Dac is the output sink. Runtime samples its input every tick.
	Dac struct{}
)

func sound() []mesh.Signal {
	return []mesh.Signal{mesh.SoundSignal(0)}
}

// NewConstant returns constant with default value.
func NewConstant(v float64) *Constant {
	return &Constant{out: sound(), def: v}
}

// Step implements mesh.Processor.
func (c *Constant) Step(in []mesh.Signal) []mesh.Signal {
	c.out[0] = in[0]
	return c.out
}

// Inputs implements mesh.Processor.
func (c *Constant) Inputs() []mesh.Signal {
	return []mesh.Signal{mesh.SoundSignal(c.def)}
}

// Outputs implements mesh.Processor.
func (c *Constant) Outputs() []mesh.Signal { return sound() }

// TypeName implements mesh.Processor.
func (c *Constant) TypeName() string { return "Constant" }

// ParameterPlug implements mesh.Parameterized.
func (c *Constant) ParameterPlug() int { return 0 }

// NewCounter returns counter which starts from zero.
func NewCounter() *Counter {
	return &Counter{out: []mesh.Signal{mesh.IntSignal(0)}}
}

// Step implements mesh.Processor.
func (c *Counter) Step([]mesh.Signal) []mesh.Signal {
	c.out[0] = mesh.IntSignal(c.count)
	c.count++
	return c.out
}

// Inputs implements mesh.Processor.
func (c *Counter) Inputs() []mesh.Signal { return nil }

// Outputs implements mesh.Processor.
func (c *Counter) Outputs() []mesh.Signal { return []mesh.Signal{mesh.IntSignal(0)} }

// TypeName implements mesh.Processor.
func (c *Counter) TypeName() string { return "Counter" }

// NewAdd returns new adder.
func NewAdd() *Add {
	return &Add{out: sound()}
}

// Step implements mesh.Processor.
func (a *Add) Step(in []mesh.Signal) []mesh.Signal {
	a.out[0] = mesh.SoundSignal(in[0].Float() + in[1].Float())
	return a.out
}

// Inputs implements mesh.Processor.
func (a *Add) Inputs() []mesh.Signal {
	return []mesh.Signal{mesh.SoundSignal(0), mesh.SoundSignal(0)}
}

// Outputs implements mesh.Processor.
func (a *Add) Outputs() []mesh.Signal { return sound() }

// TypeName implements mesh.Processor.
func (a *Add) TypeName() string { return "Add" }

// NewMult returns new multiplier. Inputs default to one.
func NewMult() *Mult {
	return &Mult{out: sound()}
}

// Step implements mesh.Processor.
func (m *Mult) Step(in []mesh.Signal) []mesh.Signal {
	m.out[0] = mesh.SoundSignal(in[0].Float() * in[1].Float())
	return m.out
}

// Inputs implements mesh.Processor.
func (m *Mult) Inputs() []mesh.Signal {
	return []mesh.Signal{mesh.SoundSignal(1), mesh.SoundSignal(1)}
}

// Outputs implements mesh.Processor.
func (m *Mult) Outputs() []mesh.Signal { return sound() }

// TypeName implements mesh.Processor.
func (m *Mult) TypeName() string { return "Mult" }

// NewMixer returns mixer with provided number of inputs. At least one
// input is always declared.
func NewMixer(numInputs int) *Mixer {
	if numInputs < 1 {
		numInputs = 1
	}
	return &Mixer{out: sound(), numInputs: numInputs}
}

// Step implements mesh.Processor.
func (m *Mixer) Step(in []mesh.Signal) []mesh.Signal {
	var sum float64
	for i := range in {
		sum += in[i].Float()
	}
	m.out[0] = mesh.SoundSignal(sum / float64(len(in)))
	return m.out
}

// Inputs implements mesh.Processor.
func (m *Mixer) Inputs() []mesh.Signal {
	return make([]mesh.Signal, m.numInputs)
}

// Outputs implements mesh.Processor.
func (m *Mixer) Outputs() []mesh.Signal { return sound() }

// TypeName implements mesh.Processor.
func (m *Mixer) TypeName() string { return "Mixer" }

// NewSine returns oscillator for provided sample rate.
func NewSine(sampleRate int) *Sine {
	return &Sine{out: sound(), sampleRate: float64(sampleRate)}
}

// Step implements mesh.Processor.
func (s *Sine) Step(in []mesh.Signal) []mesh.Signal {
	s.out[0] = mesh.SoundSignal(math.Sin(s.phase))
	s.phase += 2 * math.Pi * in[0].Float() / s.sampleRate
	if s.phase >= 2*math.Pi {
		s.phase -= 2 * math.Pi
	}
	return s.out
}

// Inputs implements mesh.Processor.
func (s *Sine) Inputs() []mesh.Signal { return sound() }

// Outputs implements mesh.Processor.
func (s *Sine) Outputs() []mesh.Signal { return sound() }

// TypeName implements mesh.Processor.
func (s *Sine) TypeName() string { return "Sine" }

// NewPipe returns new Sound passthrough.
func NewPipe() *Pipe {
	return &Pipe{out: sound()}
}

// Step implements mesh.Processor.
func (p *Pipe) Step(in []mesh.Signal) []mesh.Signal {
	p.out[0] = in[0]
	return p.out
}

// Inputs implements mesh.Processor.
func (p *Pipe) Inputs() []mesh.Signal { return sound() }

// Outputs implements mesh.Processor.
func (p *Pipe) Outputs() []mesh.Signal { return sound() }

// TypeName implements mesh.Processor.
func (p *Pipe) TypeName() string { return "Pipe" }

// NewIntPipe returns new Int passthrough.
func NewIntPipe() *IntPipe {
	return &IntPipe{out: []mesh.Signal{mesh.IntSignal(0)}}
}

// Step implements mesh.Processor.
func (p *IntPipe) Step(in []mesh.Signal) []mesh.Signal {
	p.out[0] = in[0]
	return p.out
}

// Inputs implements mesh.Processor.
func (p *IntPipe) Inputs() []mesh.Signal { return []mesh.Signal{mesh.IntSignal(0)} }

// Outputs implements mesh.Processor.
func (p *IntPipe) Outputs() []mesh.Signal { return []mesh.Signal{mesh.IntSignal(0)} }

// TypeName implements mesh.Processor.
func (p *IntPipe) TypeName() string { return "IntPipe" }

// NewDac returns new output sink.
func NewDac() *Dac {
	return &Dac{}
}

// Step implements mesh.Processor.
func (*Dac) Step([]mesh.Signal) []mesh.Signal { return nil }

// Inputs implements mesh.Processor.
func (*Dac) Inputs() []mesh.Signal { return sound() }

// Outputs implements mesh.Processor.
func (*Dac) Outputs() []mesh.Signal { return nil }

// TypeName implements mesh.Processor.
func (*Dac) TypeName() string { return mesh.SinkType }
