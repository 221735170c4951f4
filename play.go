package mesh

import (
	"context"
	"errors"
	"io"
)

// Ticker produces one sample per call.
type Ticker interface {
	Tick() float64
}

// SinkFunc consumes a buffer of samples. Buffer is reused between calls.
// Implementations return io.EOF when no more samples are needed.
type SinkFunc func([]float64) error

// Play starts a goroutine that fills buffers of bufferSize samples by
// calling Tick once per sample and hands them to the sink. It runs until
// context is done or sink returns an error. Returned channel is closed
// when the goroutine exits. Processor contract violation stops the
// playback with *ProcessorError.
func Play(ctx context.Context, t Ticker, bufferSize int, sink SinkFunc) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(*ProcessorError); ok {
					errc <- err
					return
				}
				panic(r)
			}
		}()
		buf := make([]float64, bufferSize)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			for i := range buf {
				buf[i] = t.Tick()
			}
			if err := sink(buf); err != nil {
				if !errors.Is(err, io.EOF) {
					errc <- err
				}
				return
			}
		}
	}()
	return errc
}

// Wait for playback to finish or first error to occur.
func Wait(errc <-chan error) error {
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}
