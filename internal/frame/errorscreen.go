package frame

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/turtle/internal/core"
	"github.com/vovakirdan/turtle/internal/graphics"
)

const (
	copyHint    = "Click to copy message"
	copiedHint  = "Copied!"
	placeholder = "NO GAME"
)

// drawError paints the fault screen and presents it.
func drawError(c *graphics.Canvas, msg string, copied bool) {
	scr := c.Back()
	scr.Fill(core.ColorSkyBlue)

	width := core.Max(scr.Width()-4, 1)
	text := ansi.Wrap(ansi.Strip(strings.ReplaceAll(msg, "\t", "    ")), width, "")
	y := 1
	for _, line := range strings.Split(text, "\n") {
		if y >= scr.Height()-3 {
			break
		}
		scr.DrawText(2, y, line, core.ColorWhite)
		y++
	}

	bottom := scr.Height() - 2
	scr.DrawText(2, bottom, copyHint, core.ColorWhite)
	if copied {
		scr.DrawText(2+len(copyHint)+2, bottom, copiedHint, core.ColorWhite)
	}
	c.Present()
}

// drawPlaceholder shows the screen used when no game was given.
func drawPlaceholder(c *graphics.Canvas) {
	scr := c.Back()
	scr.Fill(core.ColorBlack)
	scr.DrawTextCentered(scr.Height()/2, placeholder, core.ColorWhite)
	c.Present()
}
