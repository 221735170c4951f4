package log_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/dudk/mesh"
	"github.com/dudk/mesh/log"
)

func TestForGraph(t *testing.T) {
	l := log.GetLogger()
	g := mesh.NewGraph(mesh.WithLogger(l))
	e := log.ForGraph(l, g.ID())
	assert.Equal(t, logrus.Fields{"graph": g.ID()}, e.Data)
}
