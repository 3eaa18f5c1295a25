package graphics

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/turtle/internal/core"
)

// newTestCanvas maps one logical pixel to one cell.
func newTestCanvas() *Canvas {
	c := NewCanvas(40, 20, 40, 20)
	c.Begin()
	return c
}

func lit(c *Canvas) []core.Point {
	var pts []core.Point
	for y := 0; y < c.Rows(); y++ {
		for x := 0; x < c.Cols(); x++ {
			if c.Back().Get(x, y) == InkRune {
				pts = append(pts, core.Point{X: float64(x), Y: float64(y)})
			}
		}
	}
	return pts
}

func isLit(c *Canvas, x, y int) bool {
	return c.Back().Get(x, y) == InkRune
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in       string
		expected Mode
		ok       bool
	}{
		{"fill", ModeFill, true},
		{"line", ModeLine, true},
		{"dotted", ModeFill, false},
	}
	for _, tc := range tests {
		got, ok := ParseMode(tc.in)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParseMode(%q) = %v, %v, expected %v, %v", tc.in, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestBeginPresent(t *testing.T) {
	c := NewCanvas(40, 20, 40, 20)
	c.SetBackground(core.ColorBlue)
	c.Begin()
	c.Point(1, 1)

	if got := c.Front().GetCell(1, 1).Rune; got == InkRune {
		t.Error("front screen changed before Present")
	}
	c.Present()
	if got := c.Front().GetCell(1, 1); got.Rune != InkRune || got.FG != core.ColorWhite {
		t.Errorf("front cell = %+v, expected white ink", got)
	}
	if got := c.Front().GetCell(0, 0).BG; got != core.ColorBlue {
		t.Errorf("background = %v, expected %v", got, core.ColorBlue)
	}
}

func TestRectangle(t *testing.T) {
	c := newTestCanvas()
	c.Rectangle(ModeFill, 2, 3, 4, 2)
	expected := []core.Point{
		{X: 2, Y: 3}, {X: 3, Y: 3}, {X: 4, Y: 3}, {X: 5, Y: 3},
		{X: 2, Y: 4}, {X: 3, Y: 4}, {X: 4, Y: 4}, {X: 5, Y: 4},
	}
	if diff := cmp.Diff(expected, lit(c)); diff != "" {
		t.Errorf("filled rectangle mismatch (-expected +got):\n%s", diff)
	}

	c = newTestCanvas()
	c.Rectangle(ModeLine, 0, 0, 5, 4)
	if got := len(lit(c)); got != 14 {
		t.Errorf("outline cells = %d, expected 14", got)
	}
	if isLit(c, 2, 1) {
		t.Error("outline rectangle lit its interior")
	}
}

func TestCircle(t *testing.T) {
	c := newTestCanvas()
	c.Circle(ModeFill, 10, 10, 3)
	if !isLit(c, 10, 10) || !isLit(c, 9, 9) {
		t.Error("filled circle missing its center")
	}
	if isLit(c, 14, 10) || isLit(c, 13, 13) {
		t.Error("filled circle lit a cell outside its radius")
	}

	c = newTestCanvas()
	c.Circle(ModeLine, 10, 10, 3)
	if isLit(c, 10, 10) {
		t.Error("outline circle lit its center")
	}
	if !isLit(c, 12, 10) {
		t.Error("outline circle missing its edge")
	}

	c = newTestCanvas()
	c.Circle(ModeFill, 10, 10, 0)
	if got := len(lit(c)); got != 0 {
		t.Errorf("zero radius lit %d cells", got)
	}
}

func TestEllipse(t *testing.T) {
	c := newTestCanvas()
	c.Ellipse(ModeFill, 20, 10, 8, 2)
	if !isLit(c, 26, 10) {
		t.Error("ellipse missing a cell along its long axis")
	}
	if isLit(c, 20, 13) {
		t.Error("ellipse lit a cell past its short axis")
	}
}

func TestTriangle(t *testing.T) {
	c := newTestCanvas()
	c.Triangle(ModeFill, core.Point{X: 0, Y: 0}, core.Point{X: 10, Y: 0}, core.Point{X: 0, Y: 10})
	if !isLit(c, 1, 1) {
		t.Error("triangle missing an interior cell")
	}
	if isLit(c, 8, 8) {
		t.Error("triangle lit a cell past its hypotenuse")
	}

	c = newTestCanvas()
	c.Triangle(ModeLine, core.Point{X: 0, Y: 0}, core.Point{X: 10, Y: 0}, core.Point{X: 0, Y: 10})
	if isLit(c, 2, 2) {
		t.Error("outline triangle lit its interior")
	}
	if !isLit(c, 5, 0) || !isLit(c, 0, 5) {
		t.Error("outline triangle missing an edge")
	}
}

func TestLineAndPoint(t *testing.T) {
	c := newTestCanvas()
	c.Line(0, 5, 9, 5)
	if got := len(lit(c)); got != 10 {
		t.Errorf("horizontal line cells = %d, expected 10", got)
	}

	c = newTestCanvas()
	c.Line(3, 3, 0, 0)
	expected := []core.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}
	if diff := cmp.Diff(expected, lit(c)); diff != "" {
		t.Errorf("diagonal line mismatch (-expected +got):\n%s", diff)
	}

	c = newTestCanvas()
	c.SetColor(core.ColorRed)
	c.Point(7, 2)
	if got := c.Back().GetCell(7, 2); got.Rune != InkRune || got.FG != core.ColorRed {
		t.Errorf("point cell = %+v, expected red ink", got)
	}
}

func TestTransparentColorDrawsNothing(t *testing.T) {
	c := newTestCanvas()
	c.SetColor(core.RGBA(255, 255, 255, 0))
	c.Rectangle(ModeFill, 0, 0, 10, 10)
	c.Line(0, 0, 10, 10)
	c.Point(3, 3)
	if got := len(lit(c)); got != 0 {
		t.Errorf("transparent color lit %d cells", got)
	}
}

func TestCameraAttached(t *testing.T) {
	c := newTestCanvas()
	c.Camera().LookAt(10, 0)
	c.Camera().Attach()
	c.Point(15, 2)
	if !isLit(c, 5, 2) {
		t.Error("point not shifted by the camera target")
	}

	c.Camera().Detach()
	c.Point(15, 2)
	if !isLit(c, 15, 2) {
		t.Error("point shifted after Detach")
	}
}

func TestCameraRoundTrip(t *testing.T) {
	cam := NewCamera()
	cam.LookAt(30, -12)
	cam.Zoom = 2.5
	cam.Rotation = 37

	p := core.Point{X: 4, Y: 9}
	got := cam.ToWorld(cam.ToScreen(p))
	if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
		t.Errorf("ToWorld(ToScreen(%v)) = %v", p, got)
	}

	cam.Reset()
	if got := cam.ToWorld(core.Point{X: 3, Y: 4}); got != (core.Point{X: 3, Y: 4}) {
		t.Errorf("identity ToWorld = %v", got)
	}
}

func TestPrint(t *testing.T) {
	c := newTestCanvas()
	c.Print("hi\nyo", 3, 4, 10)
	if got := c.Back().Row(4)[3:5]; got != "hi" {
		t.Errorf("row 4 = %q, expected hi", got)
	}
	if got := c.Back().Row(5)[3:5]; got != "yo" {
		t.Errorf("row 5 = %q, expected yo", got)
	}

	font, err := ParseFont([]byte("name: bar\nheight: 3\nglyphs:\n  I: ['#', '#', '#']\n"))
	if err != nil {
		t.Fatalf("ParseFont() error = %v", err)
	}
	c = newTestCanvas()
	c.SetFont(font)
	c.Print("ii", 0, 0, 3)
	expected := []core.Point{
		{X: 0, Y: 0}, {X: 2, Y: 0},
		{X: 0, Y: 1}, {X: 2, Y: 1},
		{X: 0, Y: 2}, {X: 2, Y: 2},
	}
	if diff := cmp.Diff(expected, lit(c)); diff != "" {
		t.Errorf("glyph print mismatch (-expected +got):\n%s", diff)
	}

	c = newTestCanvas()
	c.SetFont(font)
	c.Print("I", 0, 0, 1)
	if got := c.Back().Get(0, 0); got != 'I' {
		t.Errorf("small print cell = %q, expected plain text", got)
	}
}

func TestParseFontErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bad yaml", "height: [\n"},
		{"no height", "name: x\n"},
		{"long key", "height: 1\nglyphs:\n  AB: ['#']\n"},
		{"row count", "height: 2\nglyphs:\n  A: ['#']\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseFont([]byte(tc.in)); !errors.Is(err, ErrFont) {
				t.Errorf("ParseFont() error = %v, expected %v", err, ErrFont)
			}
		})
	}
}

func TestDrawImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	src.Set(1, 1, color.RGBA{})
	path := filepath.Join(t.TempDir(), "red.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	if img.Width() != 2 || img.Height() != 2 {
		t.Fatalf("image size = %dx%d, expected 2x2", img.Width(), img.Height())
	}

	red := core.Color{R: 255, A: 255}
	c := newTestCanvas()
	c.DrawImage(img, 1, 1, 0, 2)
	if got := c.Back().GetCell(1, 1).BG; got != red {
		t.Errorf("cell (1,1) bg = %v, expected red", got)
	}
	if got := c.Back().GetCell(2, 2).BG; got != red {
		t.Errorf("cell (2,2) bg = %v, expected red", got)
	}
	if got := c.Back().GetCell(3, 3).BG; got != core.ColorBlack {
		t.Errorf("transparent pixel painted: bg = %v", got)
	}
	if got := c.Back().GetCell(5, 5).BG; got != core.ColorBlack {
		t.Errorf("cell past the image painted: bg = %v", got)
	}

	if _, err := LoadImage(filepath.Join(t.TempDir(), "none.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadImage(missing) error = %v, expected %v", err, os.ErrNotExist)
	}
}

func TestToLogicalAndCell(t *testing.T) {
	c := NewCanvas(800, 600, 80, 24)
	p := c.ToLogical(0, 0)
	if p.X != 5 || p.Y != 12.5 {
		t.Errorf("ToLogical(0,0) = %v, expected {5 12.5}", p)
	}
	if x, y := c.ToCell(core.Point{X: 799, Y: 599}); x != 79 || y != 23 {
		t.Errorf("ToCell(799,599) = %d,%d, expected 79,23", x, y)
	}
}
