package mesh

import "sync/atomic"

// Runtime is the real-time side of the graph. It holds its own copy of
// graph structure and input buffers and receives updates only through the
// queue. Tick must be called from a single goroutine.
type Runtime struct {
	queue *Queue

	processors []Processor
	adjacency  [][][]Plug
	order      []int
	valid      bool
	sinks      []int
	inputs     [][]Signal
	arity      []arity
	live       []bool

	ticks   atomic.Uint64
	skipped atomic.Uint64
	applied atomic.Uint64
}

// NewRuntime creates an empty runtime which consumes updates from the
// queue. Runtime must be the only consumer of the queue.
func NewRuntime(q *Queue) *Runtime {
	return &Runtime{
		queue: q,
		valid: true,
	}
}

// Tick drains at most one pending update, executes one propagation pass
// and returns the sample of the first sink. It never waits for updates.
//
// If the structure contains a cycle, propagation is skipped and silence is
// returned. Silence is also returned when there is no sink. If a processor
// returns wrong number of outputs, Tick panics with *ProcessorError.
func (r *Runtime) Tick() float64 {
	if m, ok := r.queue.Pop(); ok {
		m.apply(r)
		r.applied.Add(1)
	}
	r.ticks.Add(1)
	if !r.valid {
		r.skipped.Add(1)
		return 0
	}
	for _, node := range r.order {
		a := r.arity[node]
		out := r.processors[node].Step(r.inputs[node][:a.in])
		if len(out) != a.out {
			panic(&ProcessorError{
				Node:     node,
				TypeName: r.processors[node].TypeName(),
				Expected: a.out,
				Returned: len(out),
			})
		}
		// the last producer in order wins when plugs fan in.
		for plug, fanout := range r.adjacency[node] {
			for _, in := range fanout {
				r.inputs[in.Node][in.Index] = out[plug]
			}
		}
	}
	return r.sample()
}

// Input returns the current runtime value of input plug. It must be
// called from the goroutine that calls Tick. False is returned if the
// plug doesn't exist in the runtime structure.
func (r *Runtime) Input(in Plug) (Signal, bool) {
	if in.Node < 0 || in.Node >= len(r.inputs) || in.Index < 0 || in.Index >= len(r.inputs[in.Node]) {
		return Signal{}, false
	}
	return r.inputs[in.Node][in.Index], true
}

// Valid returns false if the applied structure contains a cycle. It must
// be called from the goroutine that calls Tick.
func (r *Runtime) Valid() bool {
	return r.valid
}

// Ticks returns number of executed ticks.
func (r *Runtime) Ticks() uint64 {
	return r.ticks.Load()
}

// Skipped returns number of ticks skipped because of a cycle.
func (r *Runtime) Skipped() uint64 {
	return r.skipped.Load()
}

// Applied returns number of applied update messages.
func (r *Runtime) Applied() uint64 {
	return r.applied.Load()
}

// Pending returns number of updates waiting in the queue.
func (r *Runtime) Pending() int {
	return r.queue.Pending()
}

func (r *Runtime) sample() float64 {
	if len(r.sinks) == 0 {
		return 0
	}
	row := r.inputs[r.sinks[0]]
	if len(row) == 0 {
		return 0
	}
	return row[0].Float()
}

// applySnapshot replaces the structure. Input rows of nodes that are
// still the same keep their current values, all other rows are seeded
// from the snapshot.
func (r *Runtime) applySnapshot(s *Snapshot) {
	for i := range s.inputs {
		if i < len(r.inputs) && r.live[i] == s.live[i] {
			s.inputs[i] = r.inputs[i]
		}
	}
	r.processors = s.processors
	r.adjacency = s.adjacency
	r.order = s.order
	r.valid = s.valid
	r.sinks = s.sinks
	r.inputs = s.inputs
	r.arity = s.arity
	r.live = s.live
}

func (r *Runtime) applyParameter(p Parameter) {
	if p.Node < 0 || p.Node >= len(r.inputs) || p.Index < 0 || p.Index >= len(r.inputs[p.Node]) {
		return
	}
	r.inputs[p.Node][p.Index] = p.Value
}
