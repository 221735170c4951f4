/*
Package mesh is a dataflow engine for real-time signal processing.

# Concept

Signal processing is described as a directed graph of processors. Every
processor declares typed input and output plugs, and an output plug can
be connected to any number of input plugs of the same kind:

	Sound - continuous amplitude;
	Int - discrete count or index.

The engine has two sides. Graph is the control side: it registers
processors, checks types of connections and keeps nodes in topological
order. Runtime is the real-time side: it produces one sample per Tick
and never blocks.

# Graph

Processors are registered into the graph and addressed by stable
indices:

	g := mesh.NewGraph()
	c1 := g.Register(node.NewConstant(1))
	c2 := g.Register(node.NewConstant(2))
	add := g.Register(node.NewAdd())
	dac := g.Register(node.NewDac())

Connections are made between output and input plugs:

	err := g.Connect(mesh.Plug{Node: c1}, mesh.Plug{Node: add, Index: 0})

Connection is rejected with ErrTypeMismatch if plug kinds differ. A
connection that closes a cycle is accepted, but the graph can't be
scheduled until the cycle is resolved, see Graph.Cyclic.

Removed processors are replaced with inert Placeholder. Indices are never
reused, so plug addresses stay valid.

# Runtime

Every change of the graph is published to the runtime as a deep copy
through a lock-free queue. Runtime applies at most one update per tick:

	rt := g.Runtime()
	sample := rt.Tick()

If multiple connections feed the same input plug, the producer that runs
last in topological order wins.
*/
package mesh
