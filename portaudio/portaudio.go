// Package portaudio binds mesh runtime to the default audio device.
package portaudio

import (
	"github.com/gordonklaus/portaudio"
	"go.uber.org/multierr"

	"github.com/dudk/mesh"
)

// Device plays a ticker on default output device. The device calls Tick
// exactly once per sample from its own callback thread.
type Device struct {
	t      mesh.Ticker
	stream *portaudio.Stream
}

// Open initializes portaudio and starts the default mono output stream.
func Open(t mesh.Ticker, sampleRate, framesPerBuffer int) (*Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	d := Device{t: t}
	var err error
	d.stream, err = portaudio.OpenDefaultStream(0, 1, float64(sampleRate), framesPerBuffer, d.process)
	if err != nil {
		return nil, multierr.Append(err, portaudio.Terminate())
	}
	if err = d.stream.Start(); err != nil {
		return nil, multierr.Combine(err, d.stream.Close(), portaudio.Terminate())
	}
	return &d, nil
}

// process fills device buffer.
func (d *Device) process(out []float32) {
	for i := range out {
		out[i] = float32(d.t.Tick())
	}
}

// Close stops the stream and terminates portaudio.
func (d *Device) Close() error {
	return multierr.Combine(
		d.stream.Stop(),
		d.stream.Close(),
		portaudio.Terminate(),
	)
}
