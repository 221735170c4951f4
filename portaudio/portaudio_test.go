//go:build portaudio

package portaudio_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/mesh"
	"github.com/dudk/mesh/node"
	"github.com/dudk/mesh/portaudio"
)

func TestDevice(t *testing.T) {
	g := mesh.NewGraph()
	freq := g.Register(node.NewConstant(440))
	sine := g.Register(node.NewSine(44100))
	dac := g.Register(node.NewDac())
	assert.Nil(t, g.Connect(mesh.Plug{Node: freq}, mesh.Plug{Node: sine}))
	assert.Nil(t, g.Connect(mesh.Plug{Node: sine}, mesh.Plug{Node: dac}))
	rt := g.Runtime()

	d, err := portaudio.Open(rt, 44100, 64)
	assert.Nil(t, err)
	time.Sleep(200 * time.Millisecond)
	// change pitch while playing.
	assert.Nil(t, g.SetParameter(freq, mesh.SoundSignal(880)))
	time.Sleep(200 * time.Millisecond)
	assert.Nil(t, d.Close())
	assert.True(t, rt.Ticks() > 0)
}
