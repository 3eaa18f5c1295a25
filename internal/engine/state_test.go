package engine

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/turtle/internal/config"
	"github.com/vovakirdan/turtle/internal/physics"
	"github.com/vovakirdan/turtle/internal/registry"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	return New(Options{
		Dir:    t.TempDir(),
		GameID: "test",
		Config: config.Default(),
		Cols:   80,
		Rows:   24,
		Seed:   1,
	})
}

func TestNew(t *testing.T) {
	st := newTestState(t)

	if got, want := st.Space.Gravity(), physics.V(0, 500); got != want {
		t.Errorf("Gravity() = %v, expected %v", got, want)
	}
	if st.Canvas.Width() != 800 || st.Canvas.Height() != 600 {
		t.Errorf("canvas = %dx%d, expected 800x600", st.Canvas.Width(), st.Canvas.Height())
	}
	if st.Canvas.Cols() != 80 || st.Canvas.Rows() != 24 {
		t.Errorf("canvas cells = %dx%d, expected 80x24", st.Canvas.Cols(), st.Canvas.Rows())
	}
	if st.Window.Title() != "TURTLE" {
		t.Errorf("Title() = %q, expected %q", st.Window.Title(), "TURTLE")
	}
}

func TestRequestClose(t *testing.T) {
	st := newTestState(t)
	if st.CloseRequested() {
		t.Fatal("CloseRequested() = true before RequestClose")
	}
	st.RequestClose()
	if !st.CloseRequested() {
		t.Error("CloseRequested() = false after RequestClose")
	}
}

func TestRelease(t *testing.T) {
	st := newTestState(t)
	for i := 0; i < 3; i++ {
		col := physics.NewCircleCollider(st.Space, float64(i*30), 0, 10)
		st.Registry.Create(registry.KindCollider, col)
	}
	if _, err := st.Network.NewClient(); err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if err := st.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if st.Registry.Len() != 0 {
		t.Errorf("Registry.Len() = %d, expected 0", st.Registry.Len())
	}
	if st.Space.Len() != 0 {
		t.Errorf("Space.Len() = %d, expected 0", st.Space.Len())
	}
	if err := st.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
}

func TestResize(t *testing.T) {
	st := newTestState(t)
	st.Resize(100, 30)

	if cols, rows := st.Window.DisplaySize(); cols != 100 || rows != 30 {
		t.Errorf("DisplaySize() = %d, %d, expected 100, 30", cols, rows)
	}
	if !st.Window.Resized() {
		t.Error("Resized() = false after resize")
	}
	st.Window.EndFrame()
	if st.Window.Resized() {
		t.Error("Resized() = true after EndFrame")
	}
}

func TestTimer(t *testing.T) {
	tm := NewTimer()
	if tm.FPS() != 0 {
		t.Errorf("FPS() = %d before any frame, expected 0", tm.FPS())
	}
	for i := 0; i < 60; i++ {
		tm.Tick(20 * time.Millisecond)
	}

	if got := tm.FPS(); got != 50 {
		t.Errorf("FPS() = %d, expected 50", got)
	}
	if got := tm.Delta(); got != 0.02 {
		t.Errorf("Delta() = %v, expected 0.02", got)
	}
	if got := tm.Time(); got < 1.199 || got > 1.201 {
		t.Errorf("Time() = %v, expected 1.2", got)
	}
}

func TestWindowChanges(t *testing.T) {
	w := NewWindow(config.Default().Window, 80, 24)

	if _, changed := w.TakeTitle(); changed {
		t.Error("TakeTitle() changed before SetTitle")
	}
	w.SetTitle("hello")
	if title, changed := w.TakeTitle(); !changed || title != "hello" {
		t.Errorf("TakeTitle() = %q, %v, expected %q, true", title, changed, "hello")
	}
	if _, changed := w.TakeTitle(); changed {
		t.Error("TakeTitle() reported the same change twice")
	}

	w.SetFullscreen(true)
	if on, changed := w.TakeFullscreen(); !on || !changed {
		t.Errorf("TakeFullscreen() = %v, %v, expected true, true", on, changed)
	}

	w.Minimize()
	if w.Visible() || !w.Minimized() {
		t.Error("minimized window should be invisible")
	}
	w.Restore()
	if !w.Visible() || w.Minimized() || w.Maximized() {
		t.Error("restored window should be visible and neither maximized nor minimized")
	}
}

func TestClipboard(t *testing.T) {
	var buf bytes.Buffer
	c := NewClipboard(&buf)

	if err := c.SetText("copy me"); err != nil {
		t.Fatalf("SetText() error = %v", err)
	}
	if c.Text() != "copy me" {
		t.Errorf("Text() = %q, expected %q", c.Text(), "copy me")
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\x1b]52;") {
		t.Errorf("output %q is not an OSC 52 sequence", out)
	}
	if enc := base64.StdEncoding.EncodeToString([]byte("copy me")); !strings.Contains(out, enc) {
		t.Errorf("output %q missing payload %q", out, enc)
	}

	quiet := NewClipboard(nil)
	if err := quiet.SetText("x"); err != nil || quiet.Text() != "x" {
		t.Errorf("SetText() without writer = %v, text %q", err, quiet.Text())
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	_ = m.Set("g", "b", "2")
	_ = m.Set("g", "a", "1")
	_ = m.Set("other", "c", "3")

	keys, _ := m.Keys("g")
	if diff := cmp.Diff([]string{"a", "b"}, keys); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if v, ok, _ := m.Get("g", "a"); !ok || v != "1" {
		t.Errorf("Get() = %q, %v, expected %q, true", v, ok, "1")
	}
	_ = m.Delete("g", "a")
	if _, ok, _ := m.Get("g", "a"); ok {
		t.Error("Get() found a deleted key")
	}
	if keys, _ := m.Keys("none"); len(keys) != 0 {
		t.Errorf("Keys() for unknown game = %v, expected empty", keys)
	}
}

func TestDisabledOpener(t *testing.T) {
	if err := (DisabledOpener{}).Open("https://example.com"); err == nil {
		t.Error("DisabledOpener.Open() succeeded, expected error")
	}
	if err := (SystemOpener{}).Open("file:///etc/passwd"); err == nil {
		t.Error("SystemOpener.Open() accepted a file url")
	}
}
