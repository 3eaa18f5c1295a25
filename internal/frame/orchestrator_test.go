package frame

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/turtle/internal/config"
	"github.com/vovakirdan/turtle/internal/core"
	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/script"
)

const frameTime = 16 * time.Millisecond

// fakeEngine records callback names and fails the ones listed in faults.
type fakeEngine struct {
	calls   []string
	faults  map[string]error
	loadErr error
	closed  int
}

func (e *fakeEngine) Name() string                          { return "fake" }
func (e *fakeEngine) Register(ns ...script.Namespace) error { return nil }
func (e *fakeEngine) Load(dir, entry string) error          { return e.loadErr }
func (e *fakeEngine) Close() error                          { e.closed++; return nil }

func (e *fakeEngine) Call(name string, args ...any) (bool, error) {
	e.calls = append(e.calls, name)
	if err, ok := e.faults[name]; ok {
		return true, err
	}
	return true, nil
}

type faultLog struct {
	faults []string
}

func (f *faultLog) RecordFault(gameID, message string) error {
	f.faults = append(f.faults, gameID+": "+message)
	return nil
}

type countingObserver struct {
	frames, faults int
}

func (o *countingObserver) ObserveFrame(time.Duration) { o.frames++ }
func (o *countingObserver) ObserveFault()              { o.faults++ }

func newState(t *testing.T, dir string) *engine.State {
	t.Helper()
	return engine.New(engine.Options{
		Dir:    dir,
		GameID: "game",
		Config: config.Default(),
		Cols:   80,
		Rows:   24,
		Seed:   1,
		Opener: engine.DisabledOpener{},
	})
}

func gameDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func withFake(fake *fakeEngine) EngineFactory {
	return func(string, *log.Logger) (script.Engine, error) {
		return fake, nil
	}
}

func TestPlaceholder(t *testing.T) {
	st := newState(t, "")
	o, err := New(st, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !o.Tick(frameTime) {
		t.Fatal("Tick() = false, expected true")
	}
	if o.Phase() != Running {
		t.Errorf("Phase() = %v, expected %v", o.Phase(), Running)
	}
	if o.Engine() != nil {
		t.Error("Engine() should be nil without a game")
	}
	row := st.Canvas.Front().Row(12)
	if !strings.Contains(row, "NO GAME") {
		t.Errorf("row 12 = %q, expected NO GAME", row)
	}
	if cell := st.Canvas.Front().GetCell(0, 0); cell.BG != core.ColorBlack {
		t.Errorf("background = %v, expected black", cell.BG)
	}
}

func TestMissingEntry(t *testing.T) {
	rec := &faultLog{}
	st := newState(t, t.TempDir())
	o, err := New(st, Options{Recorder: rec})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if o.Phase() != ErrorHalted {
		t.Fatalf("Phase() = %v, expected %v", o.Phase(), ErrorHalted)
	}
	if o.Fault() != NoEntryMessage {
		t.Errorf("Fault() = %q, expected %q", o.Fault(), NoEntryMessage)
	}
	if diff := cmp.Diff([]string{"game: " + NoEntryMessage}, rec.faults); diff != "" {
		t.Errorf("recorded faults mismatch (-expected +got):\n%s", diff)
	}
	screen := st.Canvas.Front()
	if cell := screen.GetCell(0, 0); cell.BG != core.ColorSkyBlue {
		t.Errorf("background = %v, expected sky blue", cell.BG)
	}
	if !strings.Contains(screen.String(), "Invalid argument") {
		t.Errorf("error screen does not show the fault:\n%s", screen.String())
	}
	if !strings.Contains(screen.String(), "Click to copy message") {
		t.Error("error screen does not show the copy hint")
	}
}

func TestDetectEntry(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected string
	}{
		{"js", []string{"main.js"}, "main.js"},
		{"ts", []string{"main.ts"}, "main.ts"},
		{"lua", []string{"main.lua"}, "main.lua"},
		{"js wins", []string{"main.lua", "main.ts", "main.js"}, "main.js"},
		{"ts before lua", []string{"main.lua", "main.ts"}, "main.ts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := make(map[string]string)
			for _, f := range tt.files {
				files[f] = ""
			}
			got, err := DetectEntry(gameDir(t, files))
			if err != nil {
				t.Fatalf("DetectEntry() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("DetectEntry() = %q, expected %q", got, tt.expected)
			}
		})
	}

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "main.js"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := DetectEntry(dir); !errors.Is(err, ErrNoEntry) {
		t.Errorf("DetectEntry(dir named main.js) error = %v, expected %v", err, ErrNoEntry)
	}
}

func TestCallbackOrder(t *testing.T) {
	fake := &fakeEngine{}
	obs := &countingObserver{}
	st := newState(t, gameDir(t, map[string]string{"main.js": ""}))
	o, err := New(st, Options{NewEngine: withFake(fake), Observer: obs})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	o.Tick(frameTime)
	o.Tick(frameTime)

	expected := []string{"load", "update", "draw", "update", "draw"}
	if diff := cmp.Diff(expected, fake.calls); diff != "" {
		t.Errorf("callbacks mismatch (-expected +got):\n%s", diff)
	}
	if obs.frames != 2 {
		t.Errorf("observed frames = %d, expected 2", obs.frames)
	}
	if got := st.Timer.Time(); got < 0.031 || got > 0.033 {
		t.Errorf("Timer.Time() = %v, expected 0.032", got)
	}
}

func TestDrawFaultHalts(t *testing.T) {
	fake := &fakeEngine{faults: map[string]error{
		"draw": &script.Error{Engine: "fake", Message: "boom\n\tat draw (main.js:3)"},
	}}
	rec := &faultLog{}
	obs := &countingObserver{}
	st := newState(t, gameDir(t, map[string]string{"main.js": ""}))
	o, err := New(st, Options{NewEngine: withFake(fake), Recorder: rec, Observer: obs})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	o.Tick(frameTime)
	if o.Phase() != ErrorHalted {
		t.Fatalf("Phase() = %v, expected %v", o.Phase(), ErrorHalted)
	}
	if o.Fault() != "boom\n\tat draw (main.js:3)" {
		t.Errorf("Fault() = %q", o.Fault())
	}
	if obs.faults != 1 {
		t.Errorf("observed faults = %d, expected 1", obs.faults)
	}
	if len(rec.faults) != 1 {
		t.Errorf("recorded faults = %v, expected one", rec.faults)
	}

	// Halted frames never reach the script again.
	for i := 0; i < 3; i++ {
		if !o.Tick(frameTime) {
			t.Fatal("Tick() = false while halted")
		}
	}
	if diff := cmp.Diff([]string{"load", "update", "draw"}, fake.calls); diff != "" {
		t.Errorf("callbacks mismatch (-expected +got):\n%s", diff)
	}
	screen := st.Canvas.Front().String()
	if !strings.Contains(screen, "boom") || !strings.Contains(screen, "at draw (main.js:3)") {
		t.Errorf("error screen does not show the fault:\n%s", screen)
	}
}

func TestLoadFaults(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeEngine
	}{
		{"load error", &fakeEngine{loadErr: errors.New("SyntaxError: bad")}},
		{"load callback", &fakeEngine{faults: map[string]error{"load": errors.New("SyntaxError: bad")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newState(t, gameDir(t, map[string]string{"main.js": ""}))
			o, err := New(st, Options{NewEngine: withFake(tt.fake)})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if o.Phase() != ErrorHalted {
				t.Errorf("Phase() = %v, expected %v", o.Phase(), ErrorHalted)
			}
			if o.Fault() != "SyntaxError: bad" {
				t.Errorf("Fault() = %q, expected %q", o.Fault(), "SyntaxError: bad")
			}
		})
	}
}

func TestEngineFactoryError(t *testing.T) {
	st := newState(t, gameDir(t, map[string]string{"main.js": ""}))
	want := errors.New("no interpreter")
	_, err := New(st, Options{NewEngine: func(string, *log.Logger) (script.Engine, error) {
		return nil, want
	}})
	if !errors.Is(err, want) {
		t.Errorf("New() error = %v, expected %v", err, want)
	}
}

func TestCopyFault(t *testing.T) {
	tests := []struct {
		name  string
		press func(in *core.Input)
	}{
		{"click", func(in *core.Input) { in.MousePress(core.MouseLeft) }},
		{"key", func(in *core.Input) { in.KeyPress("c") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newState(t, t.TempDir())
			o, err := New(st, Options{})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			o.Tick(frameTime)
			if o.Copied() {
				t.Fatal("Copied() = true before any input")
			}

			tt.press(st.Input)
			o.Tick(frameTime)
			if !o.Copied() {
				t.Fatal("Copied() = false after input")
			}
			if st.Clipboard.Text() != NoEntryMessage {
				t.Errorf("clipboard = %q, expected %q", st.Clipboard.Text(), NoEntryMessage)
			}
			if !strings.Contains(st.Canvas.Front().String(), "Copied!") {
				t.Error("error screen does not confirm the copy")
			}
		})
	}
}

func TestRightClickDoesNotCopy(t *testing.T) {
	st := newState(t, t.TempDir())
	o, err := New(st, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	st.Input.MousePress(core.MouseRight)
	o.Tick(frameTime)
	if o.Copied() {
		t.Error("Copied() = true after a right click")
	}
}

func TestShutdown(t *testing.T) {
	fake := &fakeEngine{}
	st := newState(t, gameDir(t, map[string]string{"main.js": ""}))
	o, err := New(st, Options{NewEngine: withFake(fake)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := o.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := o.Shutdown(); err != nil {
		t.Fatalf("second Shutdown() error = %v", err)
	}
	if o.Phase() != Closed {
		t.Errorf("Phase() = %v, expected %v", o.Phase(), Closed)
	}
	if fake.closed != 1 {
		t.Errorf("engine closed %d times, expected 1", fake.closed)
	}
	if o.Tick(frameTime) {
		t.Error("Tick() = true after shutdown")
	}
}

func TestCloseRequest(t *testing.T) {
	fake := &fakeEngine{}
	st := newState(t, gameDir(t, map[string]string{"main.js": ""}))
	o, err := New(st, Options{NewEngine: withFake(fake)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	o.Tick(frameTime)
	st.RequestClose()
	if o.Tick(frameTime) {
		t.Error("Tick() = true after a close request")
	}
	if o.Phase() != Closed {
		t.Errorf("Phase() = %v, expected %v", o.Phase(), Closed)
	}
	if diff := cmp.Diff([]string{"load", "update", "draw"}, fake.calls); diff != "" {
		t.Errorf("callbacks mismatch (-expected +got):\n%s", diff)
	}
}

func TestCollisionsLastOneFrame(t *testing.T) {
	st := newState(t, gameDir(t, map[string]string{"main.js": `
		var floor, ball;
		function load() {
			floor = turtle.physics.newRectangleCollider(0, 100, 400, 20);
			turtle.physics.setType(floor, "static");
			ball = turtle.physics.newCircleCollider(50, 95, 10);
		}
		function draw() {
			var hit = turtle.physics.isColliding(ball, floor);
			turtle.graphics.print(hit ? "hit" : "miss", 0, 0);
		}
	`}))
	o, err := New(st, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = o.Shutdown() })

	o.Tick(frameTime)
	if o.Phase() != Running {
		t.Fatalf("Phase() = %v, fault %q", o.Phase(), o.Fault())
	}
	if row := st.Canvas.Front().Row(0); !strings.HasPrefix(row, "hit") {
		t.Errorf("row 0 = %q, expected hit", row)
	}
	if n := st.Collisions.Len(); n != 0 {
		t.Errorf("Collisions.Len() after tick = %d, expected 0", n)
	}
}

func TestLuaGame(t *testing.T) {
	st := newState(t, gameDir(t, map[string]string{"main.lua": `
		local frames = 0
		function update(dt)
			frames = frames + 1
		end
		function draw()
			turtle.graphics.print("frames " .. frames, 0, 0)
		end
	`}))
	o, err := New(st, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = o.Shutdown() })
	if o.Engine().Name() != "lua" {
		t.Errorf("Engine().Name() = %q, expected lua", o.Engine().Name())
	}

	for i := 0; i < 3; i++ {
		o.Tick(frameTime)
	}
	if row := st.Canvas.Front().Row(0); !strings.HasPrefix(row, "frames 3") {
		t.Errorf("row 0 = %q, expected frames 3", row)
	}
}

func TestScriptErrorHalts(t *testing.T) {
	st := newState(t, gameDir(t, map[string]string{"main.js": `
		function update(dt) {
			throw new Error("out of lives");
		}
	`}))
	o, err := New(st, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = o.Shutdown() })

	o.Tick(frameTime)
	if o.Phase() != ErrorHalted {
		t.Fatalf("Phase() = %v, expected %v", o.Phase(), ErrorHalted)
	}
	if !strings.Contains(o.Fault(), "out of lives") {
		t.Errorf("Fault() = %q, expected it to mention the thrown error", o.Fault())
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{Initializing, "initializing"},
		{Running, "running"},
		{ErrorHalted, "error-halted"},
		{ShuttingDown, "shutting-down"},
		{Closed, "closed"},
		{Phase(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.expected {
			t.Errorf("Phase(%d).String() = %q, expected %q", int(tt.phase), got, tt.expected)
		}
	}
}
