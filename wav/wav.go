// Package wav renders mesh output into wav files.
package wav

import (
	"context"
	"errors"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/multierr"

	"github.com/dudk/mesh"
)

const (
	numChannels = 1
	pcmFormat   = 1
)

// ErrUnsupportedBitDepth is returned when unsupported bit depth is used.
var ErrUnsupportedBitDepth = errors.New("only 16 and 32 bit depth is supported")

// Sink saves samples to wav file until the limit is reached.
type Sink struct {
	path       string
	sampleRate int
	bitDepth   int
	limit      int
	written    int

	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
}

// NewSink creates new wav sink which accepts up to limit samples.
func NewSink(path string, sampleRate, bitDepth, limit int) (*Sink, error) {
	if bitDepth != 16 && bitDepth != 32 {
		return nil, ErrUnsupportedBitDepth
	}
	return &Sink{
		path:       path,
		sampleRate: sampleRate,
		bitDepth:   bitDepth,
		limit:      limit,
	}, nil
}

// Open creates the file and the encoder.
func (s *Sink) Open() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	s.file = f
	s.encoder = wav.NewEncoder(f, s.sampleRate, s.bitDepth, numChannels, pcmFormat)
	s.buf = &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  s.sampleRate,
		},
		SourceBitDepth: s.bitDepth,
	}
	return nil
}

// Sink implements mesh.SinkFunc. It returns io.EOF when limit is reached.
func (s *Sink) Sink(b []float64) error {
	if left := s.limit - s.written; left < len(b) {
		b = b[:left]
	}
	multiplier := float64(int64(1)<<(s.bitDepth-1) - 1)
	s.buf.Data = s.buf.Data[:0]
	for _, v := range b {
		v = math.Max(-1, math.Min(1, v))
		s.buf.Data = append(s.buf.Data, int(v*multiplier))
	}
	if err := s.encoder.Write(s.buf); err != nil {
		return err
	}
	s.written += len(b)
	if s.written >= s.limit {
		return io.EOF
	}
	return nil
}

// Written returns number of samples written.
func (s *Sink) Written() int {
	return s.written
}

// Close flushes encoder and closes the file.
func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}
	return multierr.Combine(s.encoder.Close(), s.file.Close())
}

// Render ticks t until limit samples are written to the file at path.
func Render(ctx context.Context, t mesh.Ticker, path string, sampleRate, bitDepth, bufferSize, limit int) (err error) {
	s, err := NewSink(path, sampleRate, bitDepth, limit)
	if err != nil {
		return err
	}
	if err = s.Open(); err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, s.Close())
	}()
	return mesh.Wait(mesh.Play(ctx, t, bufferSize, s.Sink))
}
