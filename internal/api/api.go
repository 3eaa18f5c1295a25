// Package api binds the turtle.* script namespaces to an engine.State.
// Every function here runs on the frame loop's thread; lookup and I/O
// failures are returned as errors, which the engines raise as catchable
// script errors.
package api

import (
	"fmt"

	"github.com/vovakirdan/turtle/internal/core"
	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/registry"
	"github.com/vovakirdan/turtle/internal/script"
)

// Version is the runtime version reported by turtle version.
const Version = "alpha 0.1"

// Namespaces returns every namespace bound to st.
func Namespaces(st *engine.State) []script.Namespace {
	return []script.Namespace{
		graphicsNamespace(st),
		audioNamespace(st),
		physicsNamespace(st),
		networkNamespace(st),
		keyboardNamespace(st),
		mouseNamespace(st),
		cameraNamespace(st),
		windowNamespace(st),
		timerNamespace(st),
		systemNamespace(st),
		mathNamespace(st),
		storageNamespace(st),
		dataNamespace(),
		filesystemNamespace(st),
	}
}

func handleArg(a script.Args, i int) (registry.Handle, error) {
	s, err := a.String(i)
	return registry.Handle(s), err
}

// colorArgs reads r, g, b and an optional alpha starting at i.
func colorArgs(a script.Args, i int) (core.Color, error) {
	var c [4]int
	for k := 0; k < 3; k++ {
		n, err := a.Int(i + k)
		if err != nil {
			return core.Color{}, err
		}
		c[k] = n
	}
	alpha, err := a.OptNumber(i+3, 255)
	if err != nil {
		return core.Color{}, err
	}
	c[3] = int(alpha)
	return core.RGBA(c[0], c[1], c[2], c[3]), nil
}

// numbers reads n numeric arguments starting at i.
func numbers(a script.Args, i, n int) ([]float64, error) {
	out := make([]float64, n)
	for k := range out {
		v, err := a.Number(i + k)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// path resolves a script path inside the game directory.
func path(st *engine.State, name string) (string, error) {
	if st.Dir == "" {
		return "", fmt.Errorf("%s: no game directory", name)
	}
	return script.Resolve(st.Dir, name)
}

func none(err error) (any, error) {
	return nil, err
}
