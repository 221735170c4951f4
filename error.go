package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is returned when connected plugs have different kinds.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidAddress is returned when plug address is out of range.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrUnknownNode is returned when node index was never registered.
	ErrUnknownNode = errors.New("unknown node")
	// ErrNotParameterized is returned when parameter is set to a processor
	// that doesn't accept parameters.
	ErrNotParameterized = errors.New("processor is not parameterized")
	// ErrNoConnection is returned when disconnected edge doesn't exist.
	ErrNoConnection = errors.New("no connection")
	// ErrCyclic is reported when the graph contains a cycle and cannot be
	// scheduled.
	ErrCyclic = errors.New("graph is cyclic")
)

// ProcessorError is a contract violation of external processor: Step
// returned a wrong number of signals. Runtime panics with this error.
type ProcessorError struct {
	Node     int
	TypeName string
	Expected int
	Returned int
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("invalid processor %d %s: returned %d outputs, declared %d", e.Node, e.TypeName, e.Returned, e.Expected)
}
