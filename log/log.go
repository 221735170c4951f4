// Package log provides loggers for mesh graphs and commands.
package log

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DebugEnv is the environment variable which enables debug level.
const DebugEnv = "MESH_DEBUG"

var debug bool

func init() {
	var err error
	debug, err = strconv.ParseBool(os.Getenv(DebugEnv))
	if err != nil {
		debug = false
	}
}

// GetLogger returns a new logger instance. Level is debug if MESH_DEBUG
// is set to true.
func GetLogger() *logrus.Logger {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// ForGraph returns logger entry with graph id field.
func ForGraph(l *logrus.Logger, id string) *logrus.Entry {
	return l.WithField("graph", id)
}
