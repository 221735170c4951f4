// Package metric publishes runtime counters with expvar.
package metric

import (
	"expvar"
	"fmt"
	"sync"
	"time"
)

const runtimesLabel = "mesh.runtimes"

const (
	// TickCounter measures number of executed ticks.
	TickCounter = "Ticks"
	// SkippedCounter measures number of ticks skipped because of a cycle.
	SkippedCounter = "Skipped"
	// AppliedCounter measures number of applied updates.
	AppliedCounter = "Applied"
	// PendingCounter measures number of updates waiting in the queue.
	PendingCounter = "Pending"
	// DurationCounter counts what's the duration of produced signal.
	DurationCounter = "Duration"
)

var (
	published = struct {
		sync.Mutex
		m map[string]*source
	}{
		m: make(map[string]*source),
	}

	counters = []string{
		TickCounter,
		SkippedCounter,
		AppliedCounter,
		PendingCounter,
		DurationCounter,
	}
)

// Counters is implemented by mesh.Runtime. All methods must be safe to
// call from any goroutine.
type Counters interface {
	Ticks() uint64
	Skipped() uint64
	Applied() uint64
	Pending() int
}

// source holds the counters currently published under a name.
type source struct {
	sync.Mutex
	c          Counters
	sampleRate int
}

func (s *source) get() (Counters, int) {
	s.Lock()
	defer s.Unlock()
	return s.c, s.sampleRate
}

// Publish exposes counters under provided name. Publishing under the same
// name again replaces the source of values.
func Publish(name string, sampleRate int, c Counters) {
	published.Lock()
	defer published.Unlock()
	if s, ok := published.m[name]; ok {
		s.Lock()
		s.c, s.sampleRate = c, sampleRate
		s.Unlock()
		return
	}
	s := &source{c: c, sampleRate: sampleRate}
	published.m[name] = s
	expvar.Publish(key(name, TickCounter), expvar.Func(func() interface{} {
		c, _ := s.get()
		return c.Ticks()
	}))
	expvar.Publish(key(name, SkippedCounter), expvar.Func(func() interface{} {
		c, _ := s.get()
		return c.Skipped()
	}))
	expvar.Publish(key(name, AppliedCounter), expvar.Func(func() interface{} {
		c, _ := s.get()
		return c.Applied()
	}))
	expvar.Publish(key(name, PendingCounter), expvar.Func(func() interface{} {
		c, _ := s.get()
		return c.Pending()
	}))
	expvar.Publish(key(name, DurationCounter), expvar.Func(func() interface{} {
		c, sampleRate := s.get()
		return DurationOf(sampleRate, c.Ticks()).String()
	}))
}

// Get metrics values published under the name.
func Get(name string) map[string]string {
	m := make(map[string]string)
	for _, counter := range counters {
		v := expvar.Get(key(name, counter))
		if v != nil {
			m[counter] = v.String()
		}
	}
	return m
}

// DurationOf returns time duration of samples for this sample rate.
func DurationOf(sampleRate int, samples uint64) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	rate := uint64(sampleRate)
	whole, rest := samples/rate, samples%rate
	return time.Duration(whole)*time.Second + time.Duration(rest)*time.Second/time.Duration(rate)
}

func key(name, counter string) string {
	return fmt.Sprintf("%s.%s.%s", runtimesLabel, name, counter)
}
