package mesh

import "fmt"

// Kind identifies the variant of a Signal. Plug types are kinds.
type Kind int

const (
	// Sound is a continuous amplitude.
	Sound Kind = iota
	// Int is a discrete count or index.
	Int
)

// Signal is the only datum that flows between plugs. It holds either a
// Sound or an Int value, never both.
type Signal struct {
	kind  Kind
	sound float64
	count int64
}

// SoundSignal returns new Sound signal.
func SoundSignal(v float64) Signal {
	return Signal{kind: Sound, sound: v}
}

// IntSignal returns new Int signal.
func IntSignal(v int64) Signal {
	return Signal{kind: Int, count: v}
}

// Kind returns the variant tag of signal.
func (s Signal) Kind() Kind {
	return s.kind
}

// SameKind reports whether both signals carry the same variant. Values are
// not compared.
func (s Signal) SameKind(other Signal) bool {
	return s.kind == other.kind
}

// Float returns the amplitude of Sound signal. Int signal is converted
// numerically.
func (s Signal) Float() float64 {
	if s.kind == Int {
		return float64(s.count)
	}
	return s.sound
}

// Integer returns the value of Int signal. Sound signal is truncated.
func (s Signal) Integer() int64 {
	if s.kind == Sound {
		return int64(s.sound)
	}
	return s.count
}

func (s Signal) String() string {
	if s.kind == Int {
		return fmt.Sprintf("Int(%d)", s.count)
	}
	return fmt.Sprintf("Sound(%g)", s.sound)
}

func (k Kind) String() string {
	switch k {
	case Sound:
		return "Sound"
	case Int:
		return "Int"
	}
	return "unknown"
}

// copySignals returns a new slice with the same signals.
func copySignals(s []Signal) []Signal {
	if s == nil {
		return nil
	}
	c := make([]Signal, len(s))
	copy(c, s)
	return c
}
