// Package mp3 renders mesh output into mp3 files.
package mp3

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/viert/lame"
	"go.uber.org/multierr"

	"github.com/dudk/mesh"
)

// Sink encodes samples to mp3 file until the limit is reached.
type Sink struct {
	path       string
	sampleRate int
	bitRate    int
	quality    int
	limit      int
	written    int

	f   *os.File
	wr  *lame.LameWriter
	buf bytes.Buffer
}

// NewSink creates new Sink.
func NewSink(path string, sampleRate, bitRate, quality, limit int) *Sink {
	return &Sink{
		path:       path,
		sampleRate: sampleRate,
		bitRate:    bitRate,
		quality:    quality,
		limit:      limit,
	}
}

// Open creates the file and initializes encoder.
func (s *Sink) Open() error {
	var err error
	s.f, err = os.Create(s.path)
	if err != nil {
		return err
	}

	s.wr = lame.NewWriter(s.f)
	s.wr.Encoder.SetBitrate(s.bitRate)
	s.wr.Encoder.SetQuality(s.quality)
	s.wr.Encoder.SetNumChannels(1)
	s.wr.Encoder.SetInSamplerate(s.sampleRate)
	s.wr.Encoder.SetVBR(lame.VBR_RH)
	s.wr.Encoder.InitParams()
	return nil
}

// Sink implements mesh.SinkFunc. It returns io.EOF when limit is reached.
func (s *Sink) Sink(b []float64) error {
	if left := s.limit - s.written; left < len(b) {
		b = b[:left]
	}
	s.buf.Reset()
	for _, v := range b {
		v = math.Max(-1, math.Min(1, v))
		if err := binary.Write(&s.buf, binary.LittleEndian, int16(v*math.MaxInt16)); err != nil {
			return err
		}
	}
	if _, err := s.wr.Write(s.buf.Bytes()); err != nil {
		return err
	}
	s.written += len(b)
	if s.written >= s.limit {
		return io.EOF
	}
	return nil
}

// Close flushes encoder and closes the file.
func (s *Sink) Close() error {
	if s.f == nil {
		return nil
	}
	return multierr.Combine(s.wr.Close(), s.f.Close())
}

// Render ticks t until limit samples are encoded to the file at path.
func Render(ctx context.Context, t mesh.Ticker, path string, sampleRate, bufferSize, limit int) (err error) {
	s := NewSink(path, sampleRate, 192, 2, limit)
	if err = s.Open(); err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, s.Close())
	}()
	return mesh.Wait(mesh.Play(ctx, t, bufferSize, s.Sink))
}
