package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/dudk/mesh"
	"github.com/dudk/mesh/internal/patch"
	"github.com/dudk/mesh/log"
	"github.com/dudk/mesh/metric"
	"github.com/dudk/mesh/mp3"
	"github.com/dudk/mesh/node"
	"github.com/dudk/mesh/portaudio"
	"github.com/dudk/mesh/wav"
)

const bufferSize = 512

var errMissingPatch = errors.New("missing -patch required flag")

// load builds a graph from patch file.
func load(path string) (*mesh.Graph, *patch.Patch, error) {
	if path == "" {
		return nil, nil, errMissingPatch
	}
	p, err := patch.Load(path)
	if err != nil {
		return nil, nil, err
	}
	g := mesh.NewGraph(
		mesh.WithName(filepath.Base(path)),
		mesh.WithLogger(logger),
	)
	if _, err := p.Apply(g); err != nil {
		return nil, nil, err
	}
	if g.Cyclic() {
		return nil, nil, fmt.Errorf("%s: %w", path, mesh.ErrCyclic)
	}
	return g, p, nil
}

type kindsCommand struct{}

func (cmd *kindsCommand) Name() string { return "kinds" }

func (cmd *kindsCommand) Help() string { return "Show the list of available processor kinds" }

func (cmd *kindsCommand) Register(*flag.FlagSet) {}

func (cmd *kindsCommand) Run() error {
	for _, k := range node.Kinds() {
		fmt.Println(k)
	}
	return nil
}

type dumpCommand struct {
	patch string
}

func (cmd *dumpCommand) Name() string { return "dump" }

func (cmd *dumpCommand) Help() string { return "Print the graph structure of a patch" }

func (cmd *dumpCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.patch, "patch", "", "patch file (required)")
}

func (cmd *dumpCommand) Run() error {
	g, _, err := load(cmd.patch)
	if err != nil {
		return err
	}
	order, _ := g.Order()
	fmt.Printf("graph: %v\norder: %v\nsinks: %v\n", g, order, g.Sinks())
	spew.Fdump(os.Stdout, g.Snapshot())
	return nil
}

type renderCommand struct {
	patch    string
	out      string
	duration time.Duration
	bitDepth int
}

func (cmd *renderCommand) Name() string { return "render" }

func (cmd *renderCommand) Help() string { return "Render a patch into wav or mp3 file" }

func (cmd *renderCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.patch, "patch", "", "patch file (required)")
	fs.StringVar(&cmd.out, "out", "", "output .wav or .mp3 file (required)")
	fs.DurationVar(&cmd.duration, "duration", time.Second, "duration of rendered signal")
	fs.IntVar(&cmd.bitDepth, "bitdepth", 16, "bit depth of wav file")
}

func (cmd *renderCommand) Run() error {
	if cmd.out == "" {
		return errors.New("missing -out required flag")
	}
	g, p, err := load(cmd.patch)
	if err != nil {
		return err
	}
	rt := g.Runtime()
	metric.Publish(g.ID(), p.SampleRate, rt)
	samples := int(cmd.duration.Seconds() * float64(p.SampleRate))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	switch filepath.Ext(cmd.out) {
	case ".wav":
		err = wav.Render(ctx, rt, cmd.out, p.SampleRate, cmd.bitDepth, bufferSize, samples)
	case ".mp3":
		err = mp3.Render(ctx, rt, cmd.out, p.SampleRate, bufferSize, samples)
	default:
		err = fmt.Errorf("unsupported output format %q", filepath.Ext(cmd.out))
	}
	if err != nil {
		return err
	}
	log.ForGraph(logger, g.String()).Infof("rendered %s: %v", cmd.out, metric.Get(g.ID()))
	return nil
}

type playCommand struct {
	patch    string
	duration time.Duration
	frames   int
}

func (cmd *playCommand) Name() string { return "play" }

func (cmd *playCommand) Help() string { return "Play a patch on the default audio device" }

func (cmd *playCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.patch, "patch", "", "patch file (required)")
	fs.DurationVar(&cmd.duration, "duration", 0, "stop after duration, zero plays until interrupted")
	fs.IntVar(&cmd.frames, "frames", 64, "frames per device buffer")
}

func (cmd *playCommand) Run() error {
	g, p, err := load(cmd.patch)
	if err != nil {
		return err
	}
	rt := g.Runtime()
	metric.Publish(g.ID(), p.SampleRate, rt)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if cmd.duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, cmd.duration)
		defer cancel()
	}

	d, err := portaudio.Open(rt, p.SampleRate, cmd.frames)
	if err != nil {
		return err
	}
	<-ctx.Done()
	log.ForGraph(logger, g.String()).Infof("played: %v", metric.Get(g.ID()))
	return d.Close()
}
