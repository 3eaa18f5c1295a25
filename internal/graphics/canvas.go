// Package graphics draws the script-facing primitives onto a terminal cell
// grid. Scripts work in logical pixels (the window size); each cell covers a
// block of them and is lit when its center falls inside a shape.
package graphics

import (
	"math"
	"strings"

	"github.com/vovakirdan/turtle/internal/core"
)

// Mode selects outline or filled drawing.
type Mode int

const (
	ModeFill Mode = iota
	ModeLine
)

// ParseMode maps "fill" and "line" to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "fill":
		return ModeFill, true
	case "line":
		return ModeLine, true
	}
	return ModeFill, false
}

// InkRune is the rune used for lit cells.
const InkRune = '█'

// Canvas is a double-buffered cell surface. Drawing goes to the back
// screen between Begin and Present; the front screen holds the last
// presented frame.
type Canvas struct {
	width, height int
	back, front   *core.Screen

	color      core.Color
	background core.Color
	font       *Font
	camera     *Camera
}

// NewCanvas creates a canvas of width x height logical pixels shown on a
// cols x rows cell grid.
func NewCanvas(width, height, cols, rows int) *Canvas {
	return &Canvas{
		width:      max(width, 1),
		height:     max(height, 1),
		back:       core.NewScreen(max(cols, 1), max(rows, 1)),
		front:      core.NewScreen(max(cols, 1), max(rows, 1)),
		color:      core.ColorWhite,
		background: core.ColorBlack,
		camera:     NewCamera(),
	}
}

// Width returns the logical width.
func (c *Canvas) Width() int { return c.width }

// Height returns the logical height.
func (c *Canvas) Height() int { return c.height }

// Cols returns the cell grid width.
func (c *Canvas) Cols() int { return c.back.Width() }

// Rows returns the cell grid height.
func (c *Canvas) Rows() int { return c.back.Height() }

// Resize changes the cell grid, keeping the logical size.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	c.back.Resize(cols, rows)
	c.front.Resize(cols, rows)
}

// SetColor sets the draw color.
func (c *Canvas) SetColor(col core.Color) { c.color = col }

// Color returns the draw color.
func (c *Canvas) Color() core.Color { return c.color }

// SetBackground sets the color Begin clears to.
func (c *Canvas) SetBackground(col core.Color) { c.background = col }

// Background returns the clear color.
func (c *Canvas) Background() core.Color { return c.background }

// SetFont selects the font for Print; nil uses plain terminal text.
func (c *Canvas) SetFont(f *Font) { c.font = f }

// Font returns the active font, nil for plain text.
func (c *Canvas) Font() *Font { return c.font }

// Camera returns the canvas camera.
func (c *Canvas) Camera() *Camera { return c.camera }

// Begin starts a frame by clearing the back screen.
func (c *Canvas) Begin() {
	c.back.Fill(c.background)
}

// Present publishes the back screen.
func (c *Canvas) Present() {
	c.front.CopyFrom(c.back)
}

// Back returns the screen being drawn.
func (c *Canvas) Back() *core.Screen { return c.back }

// Front returns the last presented screen.
func (c *Canvas) Front() *core.Screen { return c.front }

// Screenshot returns the presented frame as text.
func (c *Canvas) Screenshot() string {
	return c.front.String()
}

func (c *Canvas) cellSize() (float64, float64) {
	return float64(c.width) / float64(c.Cols()), float64(c.height) / float64(c.Rows())
}

// ToLogical returns the logical position of a cell's center.
func (c *Canvas) ToLogical(col, row int) core.Point {
	cw, ch := c.cellSize()
	return core.Point{X: (float64(col) + 0.5) * cw, Y: (float64(row) + 0.5) * ch}
}

// ToCell returns the cell containing a logical screen position.
func (c *Canvas) ToCell(p core.Point) (int, int) {
	cw, ch := c.cellSize()
	return int(math.Floor(p.X / cw)), int(math.Floor(p.Y / ch))
}

func (c *Canvas) toWorld(p core.Point) core.Point {
	if c.camera.Attached() {
		return c.camera.ToWorld(p)
	}
	return p
}

func (c *Canvas) toScreen(p core.Point) core.Point {
	if c.camera.Attached() {
		return c.camera.ToScreen(p)
	}
	return p
}

// worldCell returns the cell a world point lands in.
func (c *Canvas) worldCell(x, y float64) (int, int) {
	return c.ToCell(c.toScreen(core.Point{X: x, Y: y}))
}

// cellRange returns the visible cell bounds covering the given world points.
func (c *Canvas) cellRange(pts ...core.Point) core.Rect {
	x0, y0 := math.MaxInt, math.MaxInt
	x1, y1 := math.MinInt, math.MinInt
	for _, p := range pts {
		cx, cy := c.ToCell(c.toScreen(p))
		x0, y0 = min(x0, cx), min(y0, cy)
		x1, y1 = max(x1, cx), max(y1, cy)
	}
	return core.RectFromBounds(x0, y0, x1, y1).Intersect(core.NewRect(0, 0, c.Cols(), c.Rows()))
}

func boxCorners(x0, y0, x1, y1 float64) []core.Point {
	return []core.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}}
}

// region lights the cells whose centers are inside a shape. In line mode
// only cells on the shape's edge are lit.
func (c *Canvas) region(mode Mode, area core.Rect, inside func(core.Point) bool) {
	if !c.color.Opaque() {
		return
	}
	in := func(cx, cy int) bool {
		return inside(c.toWorld(c.ToLogical(cx, cy)))
	}
	for cy := area.Y; cy < area.Bottom(); cy++ {
		for cx := area.X; cx < area.Right(); cx++ {
			if !in(cx, cy) {
				continue
			}
			if mode == ModeLine && in(cx-1, cy) && in(cx+1, cy) && in(cx, cy-1) && in(cx, cy+1) {
				continue
			}
			c.back.Ink(cx, cy, InkRune, c.color)
		}
	}
}

// Circle draws a circle centered at (x, y).
func (c *Canvas) Circle(mode Mode, x, y, radius float64) {
	if radius <= 0 {
		return
	}
	area := c.cellRange(boxCorners(x-radius, y-radius, x+radius, y+radius)...)
	c.region(mode, area, func(p core.Point) bool {
		dx, dy := p.X-x, p.Y-y
		return dx*dx+dy*dy <= radius*radius
	})
}

// Ellipse draws an axis-aligned ellipse centered at (x, y).
func (c *Canvas) Ellipse(mode Mode, x, y, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	area := c.cellRange(boxCorners(x-rx, y-ry, x+rx, y+ry)...)
	c.region(mode, area, func(p core.Point) bool {
		dx, dy := (p.X-x)/rx, (p.Y-y)/ry
		return dx*dx+dy*dy <= 1
	})
}

// Rectangle draws a rectangle with its top-left corner at (x, y).
func (c *Canvas) Rectangle(mode Mode, x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	if mode == ModeLine {
		c.polygon(core.Point{X: x, Y: y}, core.Point{X: x + w - 1, Y: y},
			core.Point{X: x + w - 1, Y: y + h - 1}, core.Point{X: x, Y: y + h - 1})
		return
	}
	area := c.cellRange(boxCorners(x, y, x+w, y+h)...)
	c.region(ModeFill, area, func(p core.Point) bool {
		return p.X >= x && p.X < x+w && p.Y >= y && p.Y < y+h
	})
}

// Triangle draws the triangle a, b, c.
func (c *Canvas) Triangle(mode Mode, a, b, d core.Point) {
	if mode == ModeLine {
		c.polygon(a, b, d)
		return
	}
	area := c.cellRange(a, b, d)
	c.region(ModeFill, area, func(p core.Point) bool {
		d1 := cross(a, b, p)
		d2 := cross(b, d, p)
		d3 := cross(d, a, p)
		neg := d1 < 0 || d2 < 0 || d3 < 0
		pos := d1 > 0 || d2 > 0 || d3 > 0
		return !(neg && pos)
	})
}

func cross(a, b, p core.Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

func (c *Canvas) polygon(pts ...core.Point) {
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		c.Line(pts[i].X, pts[i].Y, next.X, next.Y)
	}
}

// Line draws a line between two points.
func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	if !c.color.Opaque() {
		return
	}
	cx0, cy0 := c.worldCell(x1, y1)
	cx1, cy1 := c.worldCell(x2, y2)
	dx := core.Abs(cx1 - cx0)
	dy := -core.Abs(cy1 - cy0)
	sx, sy := 1, 1
	if cx0 > cx1 {
		sx = -1
	}
	if cy0 > cy1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.back.Ink(cx0, cy0, InkRune, c.color)
		if cx0 == cx1 && cy0 == cy1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			cx0 += sx
		}
		if e2 <= dx {
			e += dx
			cy0 += sy
		}
	}
}

// Point lights the cell containing (x, y).
func (c *Canvas) Point(x, y float64) {
	if !c.color.Opaque() {
		return
	}
	cx, cy := c.worldCell(x, y)
	c.back.Ink(cx, cy, InkRune, c.color)
}

// Print writes text with its top-left corner at (x, y). When a font is set
// and size is tall enough to fit its glyphs, the text is drawn in glyph
// cells; otherwise it is plain terminal text.
func (c *Canvas) Print(text string, x, y, size float64) {
	if !c.color.Opaque() {
		return
	}
	cx, cy := c.worldCell(x, y)
	_, ch := c.cellSize()
	if c.font != nil && int(math.Round(size/ch)) >= c.font.Height {
		c.printGlyphs(text, cx, cy)
		return
	}
	for i, line := range strings.Split(text, "\n") {
		c.back.DrawText(cx, cy+i, line, c.color)
	}
}

func (c *Canvas) printGlyphs(text string, cx, cy int) {
	for i, line := range strings.Split(text, "\n") {
		top := cy + i*(c.font.Height+1)
		left := cx
		for _, r := range line {
			if rows, ok := c.font.Glyph(r); ok {
				for dy, row := range rows {
					dx := 0
					for _, g := range row {
						if g != ' ' {
							c.back.Ink(left+dx, top+dy, InkRune, c.color)
						}
						dx++
					}
				}
			}
			left += c.font.Advance(r) + 1
		}
	}
}

// DrawImage draws img with its top-left corner at (x, y), rotated by
// rotation degrees about that corner and scaled by scale. Pixels are
// tinted by the draw color.
func (c *Canvas) DrawImage(img *Image, x, y, rotation, scale float64) {
	if scale <= 0 || img.Width() == 0 || img.Height() == 0 {
		return
	}
	origin := core.Point{X: x, Y: y}
	w, h := float64(img.Width())*scale, float64(img.Height())*scale
	corners := boxCorners(0, 0, w, h)
	for i, p := range corners {
		p = p.Rotate(rotation)
		corners[i] = core.Point{X: p.X + origin.X, Y: p.Y + origin.Y}
	}
	area := c.cellRange(corners...)
	for cy := area.Y; cy < area.Bottom(); cy++ {
		for cx := area.X; cx < area.Right(); cx++ {
			p := c.toWorld(c.ToLogical(cx, cy))
			local := core.Point{X: p.X - origin.X, Y: p.Y - origin.Y}.Rotate(-rotation)
			px := int(math.Floor(local.X / scale))
			py := int(math.Floor(local.Y / scale))
			col := img.At(px, py).Tint(c.color)
			if col.Opaque() {
				col.A = 255
				c.back.Paint(cx, cy, col)
			}
		}
	}
}
