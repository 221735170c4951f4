package mesh_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/dudk/mesh"
	"github.com/dudk/mesh/mock"
	"github.com/dudk/mesh/node"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// drain ticks the runtime until all pending updates are applied and
// returns the last sample.
func drain(rt *mesh.Runtime) float64 {
	var sample float64
	for rt.Pending() > 0 {
		sample = rt.Tick()
	}
	return sample
}

// catch executes one tick and returns processor error it panics with.
func catch(rt *mesh.Runtime) (err *mesh.ProcessorError) {
	defer func() {
		if r := recover(); r != nil {
			err = r.(*mesh.ProcessorError)
		}
	}()
	rt.Tick()
	return nil
}

func TestTick(t *testing.T) {
	g := mesh.NewGraph()
	rt := g.Runtime()
	c1 := g.Register(node.NewConstant(1))
	c2 := g.Register(node.NewConstant(2))
	add := g.Register(node.NewAdd())
	dac := g.Register(node.NewDac())
	assert.Nil(t, g.Connect(out(c1, 0), in(add, 0)))
	assert.Nil(t, g.Connect(out(c2, 0), in(add, 1)))
	assert.Nil(t, g.Connect(out(add, 0), in(dac, 0)))

	assert.Equal(t, 3.0, drain(rt))
	assert.Equal(t, 3.0, rt.Tick())
	assert.Equal(t, uint64(7), rt.Applied())
	assert.Equal(t, uint64(8), rt.Ticks())
	assert.Zero(t, rt.Skipped())
}

func TestTickEmpty(t *testing.T) {
	rt := mesh.NewGraph().Runtime()
	assert.Equal(t, 0.0, rt.Tick())
	assert.True(t, rt.Valid())
	assert.Zero(t, rt.Applied())
}

func TestTickNoSink(t *testing.T) {
	g := mesh.NewGraph()
	rt := g.Runtime()
	m := mock.Sound(0, 1).WithValue(1)
	g.Register(m)
	drain(rt)
	assert.Equal(t, 0.0, rt.Tick())
	assert.Equal(t, 2, m.Steps)
}

func TestFanIn(t *testing.T) {
	g := mesh.NewGraph()
	rt := g.Runtime()
	a := g.Register(mock.Sound(0, 1).WithValue(1))
	b := g.Register(mock.Sound(1, 1).WithValue(2))
	c := mock.Sound(1, 0)
	cn := g.Register(c)
	// a -> b forces a to run before b.
	assert.Nil(t, g.Connect(out(a, 0), in(b, 0)))
	assert.Nil(t, g.Connect(out(a, 0), in(cn, 0)))
	assert.Nil(t, g.Connect(out(b, 0), in(cn, 0)))
	drain(rt)

	v, ok := rt.Input(in(cn, 0))
	assert.True(t, ok)
	assert.Equal(t, mesh.SoundSignal(2), v)
	assert.Equal(t, []mesh.Signal{mesh.SoundSignal(2)}, c.Received)
}

func TestOneUpdatePerTick(t *testing.T) {
	g := mesh.NewGraph()
	rt := g.Runtime()
	g.Register(mock.Sound(1, 1))
	g.Register(mock.Sound(1, 1))
	g.Register(mock.Sound(1, 1))
	assert.Equal(t, 3, rt.Pending())

	var tests = []struct {
		pending int
		known   int
	}{
		{pending: 2, known: 1},
		{pending: 1, known: 2},
		{pending: 0, known: 3},
		{pending: 0, known: 3},
	}
	for i, c := range tests {
		rt.Tick()
		assert.Equal(t, c.pending, rt.Pending(), "tick %d", i)
		for n := 0; n < 3; n++ {
			_, ok := rt.Input(in(n, 0))
			assert.Equal(t, n < c.known, ok, "tick %d node %d", i, n)
		}
	}
	assert.Equal(t, uint64(3), rt.Applied())
}

func TestCyclicSkip(t *testing.T) {
	g := mesh.NewGraph()
	rt := g.Runtime()
	pa, pb := mock.Sound(1, 1).WithValue(1), mock.Sound(1, 1).WithValue(1)
	a, b := g.Register(pa), g.Register(pb)
	dac := g.Register(node.NewDac())
	assert.Nil(t, g.Connect(out(a, 0), in(b, 0)))
	assert.Nil(t, g.Connect(out(b, 0), in(dac, 0)))
	assert.Equal(t, 1.0, drain(rt))

	assert.Nil(t, g.Connect(out(b, 0), in(a, 0)))
	drain(rt)
	assert.False(t, rt.Valid())
	steps, skipped := pa.Steps, rt.Skipped()
	assert.Equal(t, 0.0, rt.Tick())
	assert.Equal(t, steps, pa.Steps)
	assert.Equal(t, skipped+1, rt.Skipped())

	assert.Nil(t, g.Disconnect(out(b, 0), in(a, 0)))
	assert.Equal(t, 1.0, drain(rt))
	assert.True(t, rt.Valid())
	assert.Equal(t, steps+1, pa.Steps)
}

func TestProcessorError(t *testing.T) {
	var tests = []struct {
		processor *mock.Processor
		expected  int
		returned  int
	}{
		{processor: &mock.Processor{Out: []mesh.Signal{mesh.SoundSignal(0)}, Broken: true}, expected: 1, returned: 0},
		{processor: &mock.Processor{Name: "Empty", Broken: true}, expected: 0, returned: 1},
	}
	for _, c := range tests {
		g := mesh.NewGraph()
		rt := g.Runtime()
		g.Register(mock.Sound(0, 0))
		n := g.Register(c.processor)
		rt.Tick()
		err := catch(rt)
		assert.NotNil(t, err)
		assert.Equal(t, n, err.Node)
		assert.Equal(t, c.processor.TypeName(), err.TypeName)
		assert.Equal(t, c.expected, err.Expected)
		assert.Equal(t, c.returned, err.Returned)
	}
}

func TestParameter(t *testing.T) {
	g := mesh.NewGraph()
	rt := g.Runtime()
	c := g.Register(node.NewConstant(1))
	dac := g.Register(node.NewDac())
	assert.Nil(t, g.Connect(out(c, 0), in(dac, 0)))
	assert.Equal(t, 1.0, drain(rt))

	assert.Nil(t, g.SetParameter(c, mesh.SoundSignal(0.5)))
	assert.Equal(t, 1, rt.Pending())
	assert.Equal(t, 0.5, rt.Tick())

	// parameter survives structure updates.
	g.Register(mock.Sound(0, 0))
	assert.Equal(t, 0.5, drain(rt))
}

func TestStatePersists(t *testing.T) {
	g := mesh.NewGraph()
	rt := g.Runtime()
	counter := g.Register(node.NewCounter())
	pipe := g.Register(node.NewIntPipe())
	assert.Nil(t, g.Connect(out(counter, 0), in(pipe, 0)))
	drain(rt)
	v, _ := rt.Input(in(pipe, 0))
	before := v.Integer()

	g.Register(mock.Sound(0, 0))
	rt.Tick()
	v, _ = rt.Input(in(pipe, 0))
	assert.Equal(t, before+1, v.Integer())
}

func TestRemovedProducerKeepsValue(t *testing.T) {
	g := mesh.NewGraph()
	rt := g.Runtime()
	a := g.Register(mock.Sound(0, 1).WithValue(7))
	b := g.Register(mock.Sound(1, 0))
	assert.Nil(t, g.Connect(out(a, 0), in(b, 0)))
	drain(rt)

	assert.Nil(t, g.Remove(a))
	drain(rt)
	v, ok := rt.Input(in(b, 0))
	assert.True(t, ok)
	assert.Equal(t, mesh.SoundSignal(7), v)
	_, ok = rt.Input(in(a, 0))
	assert.False(t, ok)
}

func TestConcurrentControl(t *testing.T) {
	const chain = 100
	g := mesh.NewGraph()
	rt := g.Runtime()
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				drain(rt)
				return
			default:
				rt.Tick()
			}
		}
	}()

	dac := g.Register(node.NewDac())
	sum := g.Register(node.NewConstant(0))
	for i := 0; i < chain; i++ {
		c := g.Register(node.NewConstant(1))
		add := g.Register(node.NewAdd())
		assert.Nil(t, g.Connect(out(sum, 0), in(add, 0)))
		assert.Nil(t, g.Connect(out(c, 0), in(add, 1)))
		sum = add
	}
	assert.Nil(t, g.Connect(out(sum, 0), in(dac, 0)))
	close(done)
	wg.Wait()

	assert.Equal(t, float64(chain), rt.Tick())
	assert.True(t, rt.Valid())
}
