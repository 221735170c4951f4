package patch_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/mesh"
	"github.com/dudk/mesh/internal/patch"
)

const adder = `
node "one" {
  kind  = "constant"
  value = 1
}

node "two" {
  kind  = "constant"
  value = 2
}

node "sum" {
  kind = "add"
}

node "out" {
  kind = "dac"
}

connect {
  from = "one"
  to   = "sum:0"
}

connect {
  from = "two"
  to   = "sum:1"
}

connect {
  from = "sum"
  to   = "out"
}
`

func TestApply(t *testing.T) {
	p, err := patch.Parse([]byte(adder), "adder.hcl")
	assert.Nil(t, err)
	assert.Equal(t, patch.DefaultSampleRate, p.SampleRate)
	assert.Len(t, p.Nodes, 4)
	assert.Len(t, p.Connections, 3)

	g := mesh.NewGraph()
	nodes, err := p.Apply(g)
	assert.Nil(t, err)
	assert.Equal(t, map[string]int{"one": 0, "two": 1, "sum": 2, "out": 3}, nodes)
	assert.Equal(t, []int{3}, g.Sinks())
	assert.False(t, g.Cyclic())

	rt := g.Runtime()
	for rt.Pending() > 0 {
		rt.Tick()
	}
	assert.Equal(t, 3.0, rt.Tick())
}

func TestApplyErrors(t *testing.T) {
	var tests = []struct {
		src      string
		expected error
	}{
		{
			src: `
node "a" {
  kind = "pipe"
}
node "a" {
  kind = "pipe"
}`,
			expected: patch.ErrDuplicateNode,
		},
		{
			src: `
node "a" {
  kind = "pipe"
}
connect {
  from = "a"
  to   = "b"
}`,
			expected: patch.ErrUnknownNode,
		},
		{
			src: `
node "a" {
  kind = "pipe"
}
node "b" {
  kind = "pipe"
}
connect {
  from = "a:x"
  to   = "b"
}`,
			expected: patch.ErrInvalidPlug,
		},
		{
			src: `
node "a" {
  kind = "pipe"
}
node "b" {
  kind = "intpipe"
}
connect {
  from = "a"
  to   = "b"
}`,
			expected: mesh.ErrTypeMismatch,
		},
	}

	for _, c := range tests {
		p, err := patch.Parse([]byte(c.src), "test.hcl")
		assert.Nil(t, err)
		_, err = p.Apply(mesh.NewGraph())
		assert.True(t, errors.Is(err, c.expected), "expected %v, got %v", c.expected, err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adder.hcl")
	assert.Nil(t, os.WriteFile(path, []byte("sample_rate = 48000\n"+adder), 0o644))
	p, err := patch.Load(path)
	assert.Nil(t, err)
	assert.Equal(t, 48000, p.SampleRate)

	_, err = patch.Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.NotNil(t, err)

	_, err = patch.Parse([]byte(`node "a" {}`), "broken.hcl")
	assert.NotNil(t, err)
}
