//go:build lame

package mp3_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/mesh"
	"github.com/dudk/mesh/mp3"
	"github.com/dudk/mesh/node"
)

func TestRender(t *testing.T) {
	g := mesh.NewGraph()
	freq := g.Register(node.NewConstant(440))
	sine := g.Register(node.NewSine(44100))
	dac := g.Register(node.NewDac())
	assert.Nil(t, g.Connect(mesh.Plug{Node: freq}, mesh.Plug{Node: sine}))
	assert.Nil(t, g.Connect(mesh.Plug{Node: sine}, mesh.Plug{Node: dac}))

	path := filepath.Join(t.TempDir(), "out.mp3")
	err := mp3.Render(context.Background(), g.Runtime(), path, 44100, 512, 44100)
	assert.Nil(t, err)

	info, err := os.Stat(path)
	assert.Nil(t, err)
	assert.True(t, info.Size() > 0)
}
