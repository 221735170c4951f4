package node

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dudk/mesh"
)

// ErrUnknownKind is returned when processor kind is not registered.
var ErrUnknownKind = errors.New("unknown processor kind")

// Config holds values used to allocate processors by kind.
type Config struct {
	SampleRate int
	// NumInputs is used by processors with variable number of inputs.
	NumInputs int
	// Value is the default of constant processors.
	Value float64
}

// allocatorFunc creates processor of a certain kind.
type allocatorFunc func(Config) mesh.Processor

var kinds = map[string]allocatorFunc{
	"constant": func(c Config) mesh.Processor { return NewConstant(c.Value) },
	"counter":  func(Config) mesh.Processor { return NewCounter() },
	"add":      func(Config) mesh.Processor { return NewAdd() },
	"mult":     func(Config) mesh.Processor { return NewMult() },
	"mixer":    func(c Config) mesh.Processor { return NewMixer(c.NumInputs) },
	"sine":     func(c Config) mesh.Processor { return NewSine(c.SampleRate) },
	"pipe":     func(Config) mesh.Processor { return NewPipe() },
	"intpipe":  func(Config) mesh.Processor { return NewIntPipe() },
	"dac":      func(Config) mesh.Processor { return NewDac() },
}

// New allocates processor of provided kind.
func New(kind string, c Config) (mesh.Processor, error) {
	fn, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
	return fn(c), nil
}

// Kinds returns sorted names of all processor kinds.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
