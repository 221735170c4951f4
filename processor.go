package mesh

const (
	// SinkType is the type name which marks processor as output sink.
	// Runtime samples the first input plug of the first sink every tick.
	SinkType = "Dac"
	// PlaceholderType is the type name of removed processors.
	PlaceholderType = "Dummy"
)

// Processor is a typed node of the graph.
//
// Inputs and Outputs return default values of the plugs. The kind of
// each default is the type of the plug. Both must stay fixed for the
// lifetime of the processor, they are called from the control side while
// Step is running on the real-time side.
//
// Step receives exactly len(Inputs()) signals and must return exactly
// len(Outputs()) signals. The input slice is owned by the runtime and must
// not be retained.
type Processor interface {
	Step(in []Signal) []Signal
	Inputs() []Signal
	Outputs() []Signal
	TypeName() string
}

// Parameterized is implemented by constant-like processors which accept
// parameter values from the control side. ParameterPlug returns the index
// of the input plug that receives the value.
type Parameterized interface {
	Processor
	ParameterPlug() int
}

// Plug is an address of input or output plug. Output and input plugs
// are distinct namespaces.
type Plug struct {
	Node  int
	Index int
}

// Placeholder is an inert processor with zero plugs. It replaces removed
// processors so node indices stay stable.
type Placeholder struct{}

// Step does nothing.
func (Placeholder) Step([]Signal) []Signal { return nil }

// Inputs returns no plugs.
func (Placeholder) Inputs() []Signal { return nil }

// Outputs returns no plugs.
func (Placeholder) Outputs() []Signal { return nil }

// TypeName returns PlaceholderType.
func (Placeholder) TypeName() string { return PlaceholderType }

// isPlaceholder checks if processor is a removed slot.
func isPlaceholder(p Processor) bool {
	_, ok := p.(Placeholder)
	return ok
}
