package mesh

type (
	// Snapshot is a deep copy of graph structure. It's transferred to the
	// runtime and replaces runtime structure wholesale. Runtime takes
	// ownership of snapshot storage, so a snapshot is applied only once.
	Snapshot struct {
		processors []Processor
		adjacency  [][][]Plug
		order      []int
		valid      bool
		sinks      []int
		inputs     [][]Signal
		arity      []arity
		live       []bool
	}

	// Parameter is a poke of a single input buffer value.
	Parameter struct {
		Plug
		Value Signal
	}

	// arity is the number of declared plugs of a processor.
	arity struct {
		in, out int
	}
)

// Order returns a copy of topological order and false if the snapshot
// structure contains a cycle.
func (s *Snapshot) Order() ([]int, bool) {
	if !s.valid {
		return nil, false
	}
	return append([]int(nil), s.order...), true
}

// Len returns number of node slots in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.processors)
}

func (s *Snapshot) apply(r *Runtime) {
	r.applySnapshot(s)
}

func (p Parameter) apply(r *Runtime) {
	r.applyParameter(p)
}

// copyAdjacency returns deep copy of adjacency list.
func copyAdjacency(adjacency [][][]Plug) [][][]Plug {
	c := make([][][]Plug, len(adjacency))
	for node := range adjacency {
		c[node] = make([][]Plug, len(adjacency[node]))
		for plug := range adjacency[node] {
			c[node][plug] = append([]Plug(nil), adjacency[node][plug]...)
		}
	}
	return c
}
