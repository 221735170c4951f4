// Package patch loads graph definitions from HCL files.
//
// A patch declares nodes by kind and connections between their plugs:
//
//	sample_rate = 44100
//
//	node "freq" {
//	  kind  = "constant"
//	  value = 440
//	}
//
//	node "osc" {
//	  kind = "sine"
//	}
//
//	node "out" {
//	  kind = "dac"
//	}
//
//	connect {
//	  from = "freq"
//	  to   = "osc:0"
//	}
//
// Plug reference is a node name with optional plug index after colon.
package patch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/dudk/mesh"
	"github.com/dudk/mesh/node"
)

// DefaultSampleRate is used when patch doesn't define sample rate.
const DefaultSampleRate = 44100

var (
	// ErrDuplicateNode is returned when two nodes have the same name.
	ErrDuplicateNode = errors.New("duplicate node")
	// ErrUnknownNode is returned when connection references unknown node.
	ErrUnknownNode = errors.New("unknown node")
	// ErrInvalidPlug is returned when plug reference can't be parsed.
	ErrInvalidPlug = errors.New("invalid plug reference")
)

type (
	// Patch is a declarative graph definition.
	Patch struct {
		SampleRate  int          `hcl:"sample_rate,optional"`
		Nodes       []Node       `hcl:"node,block"`
		Connections []Connection `hcl:"connect,block"`
	}

	// Node declares a processor.
	Node struct {
		Name   string  `hcl:"name,label"`
		Kind   string  `hcl:"kind"`
		Value  float64 `hcl:"value,optional"`
		Inputs int     `hcl:"inputs,optional"`
	}

	// Connection declares an edge between output and input plugs.
	Connection struct {
		From string `hcl:"from"`
		To   string `hcl:"to"`
	}
)

// Load parses and decodes a patch file.
func Load(path string) (*Patch, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse patch file %s: %w", path, diags)
	}
	return decode(path, file)
}

// Parse decodes a patch from source. Filename is used in diagnostics.
func Parse(src []byte, filename string) (*Patch, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse patch %s: %w", filename, diags)
	}
	return decode(filename, file)
}

func decode(filename string, file *hcl.File) (*Patch, error) {
	var p Patch
	if diags := gohcl.DecodeBody(file.Body, nil, &p); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode patch %s: %w", filename, diags)
	}
	if p.SampleRate == 0 {
		p.SampleRate = DefaultSampleRate
	}
	return &p, nil
}

// Apply registers nodes and connections of the patch into the graph. It
// returns indices of registered nodes by their names. Connections are
// made in declaration order, the first failed connection stops apply.
func (p *Patch) Apply(g *mesh.Graph) (map[string]int, error) {
	nodes := make(map[string]int, len(p.Nodes))
	for _, n := range p.Nodes {
		if _, ok := nodes[n.Name]; ok {
			return nodes, fmt.Errorf("node %q: %w", n.Name, ErrDuplicateNode)
		}
		proc, err := node.New(n.Kind, node.Config{
			SampleRate: p.SampleRate,
			NumInputs:  n.Inputs,
			Value:      n.Value,
		})
		if err != nil {
			return nodes, fmt.Errorf("node %q: %w", n.Name, err)
		}
		nodes[n.Name] = g.Register(proc)
	}
	for _, c := range p.Connections {
		out, err := resolve(nodes, c.From)
		if err != nil {
			return nodes, err
		}
		in, err := resolve(nodes, c.To)
		if err != nil {
			return nodes, err
		}
		if err := g.Connect(out, in); err != nil {
			return nodes, fmt.Errorf("connect %s -> %s: %w", c.From, c.To, err)
		}
	}
	return nodes, nil
}

// resolve converts plug reference into plug address.
func resolve(nodes map[string]int, ref string) (mesh.Plug, error) {
	name, index, found := strings.Cut(ref, ":")
	var plug mesh.Plug
	if found {
		i, err := strconv.Atoi(index)
		if err != nil || i < 0 {
			return plug, fmt.Errorf("%q: %w", ref, ErrInvalidPlug)
		}
		plug.Index = i
	}
	n, ok := nodes[name]
	if !ok {
		return plug, fmt.Errorf("%q: %w", name, ErrUnknownNode)
	}
	plug.Node = n
	return plug, nil
}
