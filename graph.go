package mesh

import (
	"fmt"

	"github.com/rs/xid"
)

// Logger is a global interface for mesh loggers.
type Logger interface {
	Debug(...interface{})
	Info(...interface{})
}

// Graph is the authoritative control-side graph. It owns the node
// registry, input buffers and adjacency list, keeps topological order up
// to date and publishes every change to the runtime through the queue.
//
// Graph is not safe for concurrent use. It must be mutated by a single
// control goroutine, which is also the single producer of the queue.
type Graph struct {
	uid  string
	name string

	processors  []Processor
	declaredIn  [][]Signal
	declaredOut [][]Signal
	inputs      [][]Signal
	// [out node][out plug][connection] -> input plug
	adjacency [][][]Plug
	order     []int
	valid     bool
	sinks     []int

	queue *Queue
	log   Logger
}

// Option provides a way to set functional parameters to graph.
type Option func(g *Graph)

// WithLogger sets logger to Graph. If this option is not provided, silent
// logger is used.
func WithLogger(logger Logger) Option {
	return func(g *Graph) {
		g.log = logger
	}
}

// WithName sets name to Graph.
func WithName(n string) Option {
	return func(g *Graph) {
		g.name = n
	}
}

// WithQueue sets the queue used to publish updates.
func WithQueue(q *Queue) Option {
	return func(g *Graph) {
		g.queue = q
	}
}

// NewGraph creates an empty graph. Empty graph has valid order.
func NewGraph(options ...Option) *Graph {
	g := &Graph{
		uid:   xid.New().String(),
		valid: true,
		order: []int{},
		log:   defaultLogger,
	}
	for _, option := range options {
		option(g)
	}
	if g.queue == nil {
		g.queue = NewQueue()
	}
	return g
}

// Runtime returns new runtime which consumes updates of this graph. Only
// one runtime may be created for the graph.
func (g *Graph) Runtime() *Runtime {
	return NewRuntime(g.queue)
}

// Register appends processor to the graph and returns its stable index.
// Registration of nil processor causes a panic.
func (g *Graph) Register(p Processor) int {
	if p == nil {
		panic("register nil processor")
	}
	node := len(g.processors)
	in, out := copySignals(p.Inputs()), copySignals(p.Outputs())
	g.processors = append(g.processors, p)
	g.declaredIn = append(g.declaredIn, in)
	g.declaredOut = append(g.declaredOut, out)
	g.inputs = append(g.inputs, copySignals(in))
	g.adjacency = append(g.adjacency, make([][]Plug, len(out)))
	if p.TypeName() == SinkType {
		g.sinks = append(g.sinks, node)
	}
	g.log.Debug(fmt.Sprintf("%v: registered %d %s", g, node, p.TypeName()))
	g.reorder()
	g.publish()
	return node
}

// Connect adds an edge from output plug to input plug. The edge is
// recorded only if the whole graph passes type check. Connection that
// closes a cycle is recorded, the order becomes invalid and propagation
// stops until the cycle is resolved. Use Cyclic to check it.
func (g *Graph) Connect(out, in Plug) error {
	if err := g.checkOutput(out); err != nil {
		return err
	}
	if err := g.checkInput(in); err != nil {
		return err
	}
	fanout := g.adjacency[out.Node][out.Index]
	g.adjacency[out.Node][out.Index] = append(fanout, in)
	if err := g.typeCheck(); err != nil {
		g.adjacency[out.Node][out.Index] = fanout
		g.log.Info(fmt.Sprintf("%v: rejected connection %v -> %v: %v", g, out, in, err))
		return err
	}
	g.reorder()
	g.publish()
	return nil
}

// Disconnect removes one edge from output plug to input plug. Dead edges
// of removed nodes can be pruned with it as well.
func (g *Graph) Disconnect(out, in Plug) error {
	if out.Node < 0 || out.Node >= len(g.adjacency) || out.Index < 0 || out.Index >= len(g.adjacency[out.Node]) {
		return fmt.Errorf("output %v: %w", out, ErrInvalidAddress)
	}
	fanout := g.adjacency[out.Node][out.Index]
	for i := len(fanout) - 1; i >= 0; i-- {
		if fanout[i] != in {
			continue
		}
		pruned := make([]Plug, 0, len(fanout)-1)
		pruned = append(pruned, fanout[:i]...)
		g.adjacency[out.Node][out.Index] = append(pruned, fanout[i+1:]...)
		g.reorder()
		g.publish()
		return nil
	}
	return fmt.Errorf("%v -> %v: %w", out, in, ErrNoConnection)
}

// SetParameter overwrites the parameter input of parameterized processor.
// The value bypasses propagation and is poked directly into the runtime
// input buffer.
func (g *Graph) SetParameter(node int, value Signal) error {
	if node < 0 || node >= len(g.processors) {
		return fmt.Errorf("node %d: %w", node, ErrUnknownNode)
	}
	p, ok := g.processors[node].(Parameterized)
	if !ok {
		return fmt.Errorf("node %d %s: %w", node, g.processors[node].TypeName(), ErrNotParameterized)
	}
	in := Plug{Node: node, Index: p.ParameterPlug()}
	if err := g.checkInput(in); err != nil {
		return err
	}
	if declared := g.declaredIn[in.Node][in.Index]; !declared.SameKind(value) {
		return fmt.Errorf("%w: parameter %v is %v, value is %v", ErrTypeMismatch, in, declared.Kind(), value.Kind())
	}
	g.inputs[in.Node][in.Index] = value
	g.queue.Push(Parameter{Plug: in, Value: value})
	return nil
}

// Remove replaces processor with inert placeholder. The index is never
// reused. Edges referencing removed node are kept and become dead.
func (g *Graph) Remove(node int) error {
	if node < 0 || node >= len(g.processors) {
		return fmt.Errorf("node %d: %w", node, ErrUnknownNode)
	}
	if isPlaceholder(g.processors[node]) {
		return nil
	}
	g.log.Debug(fmt.Sprintf("%v: removed %d %s", g, node, g.processors[node].TypeName()))
	g.processors[node] = Placeholder{}
	g.declaredIn[node] = nil
	g.declaredOut[node] = nil
	for i := range g.sinks {
		if g.sinks[i] == node {
			g.sinks = append(g.sinks[:i:i], g.sinks[i+1:]...)
			break
		}
	}
	g.reorder()
	g.publish()
	return nil
}

// Order returns topological order of live nodes. False is returned if
// the graph contains a cycle.
func (g *Graph) Order() ([]int, bool) {
	if !g.valid {
		return nil, false
	}
	return append([]int(nil), g.order...), true
}

// Cyclic returns true if the graph contains a cycle and cannot be
// scheduled.
func (g *Graph) Cyclic() bool {
	return !g.valid
}

// Sinks returns indices of sink nodes in registration order.
func (g *Graph) Sinks() []int {
	return append([]int(nil), g.sinks...)
}

// Len returns number of node slots, removed nodes included.
func (g *Graph) Len() int {
	return len(g.processors)
}

// Processor returns the processor registered at index.
func (g *Graph) Processor(node int) (Processor, error) {
	if node < 0 || node >= len(g.processors) {
		return nil, fmt.Errorf("node %d: %w", node, ErrUnknownNode)
	}
	return g.processors[node], nil
}

// Fanout returns input plugs connected to output plug.
func (g *Graph) Fanout(out Plug) []Plug {
	if g.checkOutput(out) != nil {
		return nil
	}
	return append([]Plug(nil), g.adjacency[out.Node][out.Index]...)
}

// Input returns the control-side value of input plug: the declared
// default or the last parameter set.
func (g *Graph) Input(in Plug) (Signal, error) {
	if err := g.checkInput(in); err != nil {
		return Signal{}, err
	}
	return g.inputs[in.Node][in.Index], nil
}

// Snapshot returns a deep copy of the current graph structure.
func (g *Graph) Snapshot() *Snapshot {
	s := &Snapshot{
		processors: append([]Processor(nil), g.processors...),
		adjacency:  copyAdjacency(g.adjacency),
		valid:      g.valid,
		sinks:      append([]int(nil), g.sinks...),
		inputs:     make([][]Signal, len(g.inputs)),
		arity:      make([]arity, len(g.processors)),
		live:       g.live(),
	}
	if g.valid {
		s.order = append([]int(nil), g.order...)
	}
	for i := range g.inputs {
		s.inputs[i] = copySignals(g.inputs[i])
		s.arity[i] = arity{in: len(g.declaredIn[i]), out: len(g.declaredOut[i])}
	}
	return s
}

// ID returns unique id of the graph.
func (g *Graph) ID() string {
	return g.uid
}

// Convert graph to string. Name is included if has value.
func (g *Graph) String() string {
	if g.name == "" {
		return g.uid
	}
	return fmt.Sprintf("%v %v", g.name, g.uid)
}

// publish pushes new snapshot to the runtime.
func (g *Graph) publish() {
	g.queue.Push(g.Snapshot())
}

// reorder recomputes topological order of live nodes.
func (g *Graph) reorder() {
	wasValid := g.valid
	g.order, g.valid = orderTopologically(g.adjacency, g.live())
	switch {
	case wasValid && !g.valid:
		g.log.Info(fmt.Sprintf("%v: %v, propagation is stopped", g, ErrCyclic))
	case !wasValid && g.valid:
		g.log.Info(fmt.Sprintf("%v: cycle resolved, propagation is resumed", g))
	}
}

func (g *Graph) live() []bool {
	live := make([]bool, len(g.processors))
	for i, p := range g.processors {
		live[i] = !isPlaceholder(p)
	}
	return live
}

// typeCheck validates every edge between live nodes. Producer output kind
// must be equal to consumer input kind.
func (g *Graph) typeCheck() error {
	for node := range g.adjacency {
		if isPlaceholder(g.processors[node]) {
			continue
		}
		for plug, fanout := range g.adjacency[node] {
			produced := g.declaredOut[node][plug]
			for _, in := range fanout {
				if in.Node >= len(g.processors) || isPlaceholder(g.processors[in.Node]) {
					continue
				}
				consumed := g.declaredIn[in.Node][in.Index]
				if !produced.SameKind(consumed) {
					return fmt.Errorf("%w: output %v is %v, input %v is %v",
						ErrTypeMismatch, Plug{Node: node, Index: plug}, produced.Kind(), in, consumed.Kind())
				}
			}
		}
	}
	return nil
}

func (g *Graph) checkOutput(out Plug) error {
	if out.Node < 0 || out.Node >= len(g.processors) {
		return fmt.Errorf("output %v: %w", out, ErrInvalidAddress)
	}
	if out.Index < 0 || out.Index >= len(g.declaredOut[out.Node]) {
		return fmt.Errorf("output %v: %w", out, ErrInvalidAddress)
	}
	return nil
}

func (g *Graph) checkInput(in Plug) error {
	if in.Node < 0 || in.Node >= len(g.processors) {
		return fmt.Errorf("input %v: %w", in, ErrInvalidAddress)
	}
	if in.Index < 0 || in.Index >= len(g.declaredIn[in.Node]) {
		return fmt.Errorf("input %v: %w", in, ErrInvalidAddress)
	}
	return nil
}

type silentLogger struct{}

func (silentLogger) Debug(args ...interface{}) {}

func (silentLogger) Info(args ...interface{}) {}

var defaultLogger silentLogger
