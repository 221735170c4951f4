// Package mock provides mocks for mesh processors and allows to execute
// integration tests.
package mock

import (
	"io"

	"github.com/dudk/mesh"
)

// Processor mocks a mesh.Processor interface. Every output emits Value
// with the kind of the output declaration. Number of steps and the last
// received inputs are counted.
type Processor struct {
	In    []mesh.Signal
	Out   []mesh.Signal
	Name  string
	Value float64
	// Broken makes Step return wrong number of outputs.
	Broken bool

	Steps    int
	Received []mesh.Signal
	out      []mesh.Signal
}

// Sound returns a mock with numIn and numOut Sound plugs.
func Sound(numIn, numOut int) *Processor {
	return plugs(mesh.SoundSignal(0), numIn, numOut)
}

// Int returns a mock with numIn and numOut Int plugs.
func Int(numIn, numOut int) *Processor {
	return plugs(mesh.IntSignal(0), numIn, numOut)
}

func plugs(s mesh.Signal, numIn, numOut int) *Processor {
	m := Processor{
		In:  make([]mesh.Signal, numIn),
		Out: make([]mesh.Signal, numOut),
	}
	for i := range m.In {
		m.In[i] = s
	}
	for i := range m.Out {
		m.Out[i] = s
	}
	return &m
}

// WithValue sets the value emitted by outputs.
func (m *Processor) WithValue(v float64) *Processor {
	m.Value = v
	return m
}

// Step implements mesh.Processor.
func (m *Processor) Step(in []mesh.Signal) []mesh.Signal {
	m.Steps++
	m.Received = append(m.Received[:0], in...)
	if m.out == nil {
		m.out = make([]mesh.Signal, len(m.Out))
	}
	for i := range m.out {
		if m.Out[i].Kind() == mesh.Int {
			m.out[i] = mesh.IntSignal(int64(m.Value))
		} else {
			m.out[i] = mesh.SoundSignal(m.Value)
		}
	}
	if m.Broken {
		if len(m.out) == 0 {
			return []mesh.Signal{mesh.SoundSignal(m.Value)}
		}
		return m.out[:len(m.out)-1]
	}
	return m.out
}

// Inputs implements mesh.Processor.
func (m *Processor) Inputs() []mesh.Signal {
	return m.In
}

// Outputs implements mesh.Processor.
func (m *Processor) Outputs() []mesh.Signal {
	return m.Out
}

// TypeName implements mesh.Processor.
func (m *Processor) TypeName() string {
	if m.Name == "" {
		return "Mock"
	}
	return m.Name
}

// Sink is a mesh.SinkFunc which collects samples until Limit is reached.
type Sink struct {
	Limit   int
	Samples []float64
	Calls   int
	// ErrorOnCall is returned on every call.
	ErrorOnCall error
}

// Sink implements mesh.SinkFunc.
func (s *Sink) Sink(b []float64) error {
	s.Calls++
	if s.ErrorOnCall != nil {
		return s.ErrorOnCall
	}
	s.Samples = append(s.Samples, b...)
	if s.Limit > 0 && len(s.Samples) >= s.Limit {
		return io.EOF
	}
	return nil
}
