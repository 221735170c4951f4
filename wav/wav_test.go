package wav_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/dudk/mesh"
	"github.com/dudk/mesh/node"
	mwav "github.com/dudk/mesh/wav"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRender(t *testing.T) {
	var tests = []struct {
		value      float64
		bitDepth   int
		bufferSize int
		limit      int
		expected   int
	}{
		{
			value:      0.5,
			bitDepth:   16,
			bufferSize: 64,
			limit:      1000,
			expected:   16383,
		},
		{
			value:      2,
			bitDepth:   16,
			bufferSize: 512,
			limit:      100,
			expected:   32767,
		},
		{
			value:      -1,
			bitDepth:   32,
			bufferSize: 10,
			limit:      10,
			expected:   -2147483647,
		},
	}

	for _, c := range tests {
		g := mesh.NewGraph()
		src := g.Register(node.NewConstant(c.value))
		dac := g.Register(node.NewDac())
		assert.Nil(t, g.Connect(mesh.Plug{Node: src}, mesh.Plug{Node: dac}))

		path := filepath.Join(t.TempDir(), "out.wav")
		err := mwav.Render(context.Background(), g.Runtime(), path, 44100, c.bitDepth, c.bufferSize, c.limit)
		assert.Nil(t, err)

		f, err := os.Open(path)
		assert.Nil(t, err)
		d := wav.NewDecoder(f)
		assert.True(t, d.IsValidFile())
		buf, err := d.FullPCMBuffer()
		assert.Nil(t, err)
		assert.Equal(t, c.limit, len(buf.Data))
		// first samples are silent until all updates are applied.
		assert.Equal(t, c.expected, buf.Data[len(buf.Data)-1])
		assert.Nil(t, f.Close())
	}
}

func TestUnsupportedBitDepth(t *testing.T) {
	_, err := mwav.NewSink("out.wav", 44100, 8, 10)
	assert.Equal(t, mwav.ErrUnsupportedBitDepth, err)
}
