package lua

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/turtle/internal/script"
)

func writeGame(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

type recorder struct {
	calls []script.Args
}

func (r *recorder) namespace() script.Namespace {
	return script.Namespace{
		Name: "test",
		Funcs: map[string]script.Func{
			"record": func(args script.Args) (any, error) {
				r.calls = append(r.calls, args)
				return nil, nil
			},
			"double": func(args script.Args) (any, error) {
				n, err := args.Number(0)
				if err != nil {
					return nil, err
				}
				return n * 2, nil
			},
			"event": func(args script.Args) (any, error) {
				return map[string]any{"type": "receive", "data": "hi"}, nil
			},
			"keys": func(args script.Args) (any, error) {
				return []string{"a", "b"}, nil
			},
		},
	}
}

func newEngine(t *testing.T, rec *recorder) *Engine {
	t.Helper()
	e, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := e.Register(rec.namespace()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestCallbacks(t *testing.T) {
	rec := &recorder{}
	e := newEngine(t, rec)
	dir := writeGame(t, map[string]string{"main.lua": `
		local ticks = 0
		function update(dt)
			ticks = ticks + 1
			turtle.test.record("update", dt, turtle.test.double(ticks))
		end
		function draw()
			local ev = turtle.test.event()
			local keys = turtle.test.keys()
			turtle.test.record(ev.type, ev.data, #keys, keys[2])
		end
	`})

	if err := e.Load(dir, "main.lua"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ok, err := e.Call("update", 0.5); !ok || err != nil {
		t.Fatalf("Call(update) = %v, %v", ok, err)
	}
	if ok, err := e.Call("draw"); !ok || err != nil {
		t.Fatalf("Call(draw) = %v, %v", ok, err)
	}
	if ok, err := e.Call("load"); ok || err != nil {
		t.Errorf("Call(load) = %v, %v, expected false, nil", ok, err)
	}

	expected := []script.Args{
		{"update", 0.5, 2.0},
		{"receive", "hi", 2.0, "b"},
	}
	if diff := cmp.Diff(expected, rec.calls); diff != "" {
		t.Errorf("recorded calls mismatch (-expected +got):\n%s", diff)
	}
}

func TestTables(t *testing.T) {
	rec := &recorder{}
	e := newEngine(t, rec)
	dir := writeGame(t, map[string]string{"main.lua": `
		function update()
			turtle.test.record({10, 20}, {x = 1, name = "a"}, {})
		end
	`})
	if err := e.Load(dir, "main.lua"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := e.Call("update"); err != nil {
		t.Fatalf("Call(update) error = %v", err)
	}
	expected := []script.Args{{
		[]any{10.0, 20.0},
		map[string]any{"x": 1.0, "name": "a"},
		map[string]any{},
	}}
	if diff := cmp.Diff(expected, rec.calls); diff != "" {
		t.Errorf("recorded calls mismatch (-expected +got):\n%s", diff)
	}
}

func TestHostErrorIsCatchable(t *testing.T) {
	rec := &recorder{}
	e := newEngine(t, rec)
	dir := writeGame(t, map[string]string{"main.lua": `
		function update()
			local ok, err = pcall(turtle.test.double, "x")
			turtle.test.record(ok, string.find(err, "test.double", 1, true) ~= nil)
		end
	`})
	if err := e.Load(dir, "main.lua"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := e.Call("update"); err != nil {
		t.Fatalf("Call(update) error = %v", err)
	}
	if diff := cmp.Diff([]script.Args{{false, true}}, rec.calls); diff != "" {
		t.Errorf("recorded calls mismatch (-expected +got):\n%s", diff)
	}
}

func TestFaults(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		call    string
		loadErr bool
		msg     string
	}{
		{"syntax error", "function update(", "", true, "main.lua"},
		{"error at load", "error('bad start')", "", true, "bad start"},
		{"error in draw", "function draw() error('boom') end", "draw", false, "boom"},
		{"nil call", "function update() missing() end", "update", false, "attempt to call"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEngine(t, &recorder{})
			dir := writeGame(t, map[string]string{"main.lua": tc.src})
			err := e.Load(dir, "main.lua")
			if !tc.loadErr {
				if err != nil {
					t.Fatalf("Load() error = %v", err)
				}
				_, err = e.Call(tc.call)
			}
			var serr *script.Error
			if !errors.As(err, &serr) {
				t.Fatalf("error = %v, expected *script.Error", err)
			}
			if !strings.Contains(serr.Message, tc.msg) {
				t.Errorf("message = %q, expected it to contain %q", serr.Message, tc.msg)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	rec := &recorder{}
	e := newEngine(t, rec)
	dir := writeGame(t, map[string]string{
		"main.lua": `local util = require("util") function update() turtle.test.record(util.answer()) end`,
		"util.lua": `return { answer = function() return "forty-two" end }`,
	})
	if err := e.Load(dir, "main.lua"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := e.Call("update"); err != nil {
		t.Fatalf("Call(update) error = %v", err)
	}
	if diff := cmp.Diff([]script.Args{{"forty-two"}}, rec.calls); diff != "" {
		t.Errorf("recorded calls mismatch (-expected +got):\n%s", diff)
	}
}

func TestClosed(t *testing.T) {
	e := newEngine(t, &recorder{})
	_ = e.Close()
	if _, err := e.Call("update"); !errors.Is(err, errClosed) {
		t.Errorf("Call() after Close error = %v, expected %v", err, errClosed)
	}
}
