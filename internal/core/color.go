package core

import "fmt"

// Color is an RGBA color for a screen cell or a draw call.
// Alpha below 128 is treated as transparent by the canvas.
type Color struct {
	R, G, B, A uint8
}

// RGBA builds a color from 0-255 components, clamping out-of-range values.
func RGBA(r, g, b, a int) Color {
	return Color{
		R: uint8(Clamp(r, 0, 255)),
		G: uint8(Clamp(g, 0, 255)),
		B: uint8(Clamp(b, 0, 255)),
		A: uint8(Clamp(a, 0, 255)),
	}
}

// Predefined colors.
var (
	ColorBlack   = Color{0, 0, 0, 255}
	ColorWhite   = Color{255, 255, 255, 255}
	ColorRed     = Color{230, 41, 55, 255}
	ColorGreen   = Color{0, 228, 48, 255}
	ColorBlue    = Color{0, 121, 241, 255}
	ColorYellow  = Color{253, 249, 0, 255}
	ColorGray    = Color{130, 130, 130, 255}
	ColorSkyBlue = Color{102, 191, 255, 255}
)

// Opaque reports whether the color should be drawn.
func (c Color) Opaque() bool {
	return c.A >= 128
}

// Hex returns the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Tint multiplies c by t component-wise.
func (c Color) Tint(t Color) Color {
	return Color{
		R: uint8(int(c.R) * int(t.R) / 255),
		G: uint8(int(c.G) * int(t.G) / 255),
		B: uint8(int(c.B) * int(t.B) / 255),
		A: uint8(int(c.A) * int(t.A) / 255),
	}
}
