package engine

import (
	"fmt"
	"io"

	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard keeps the last copied text and forwards copies to the
// terminal as OSC 52 sequences. Terminals rarely answer clipboard reads,
// so Text returns what was last copied in this session.
type Clipboard struct {
	out  io.Writer
	text string
}

// NewClipboard writes sequences to out, which may be nil.
func NewClipboard(out io.Writer) *Clipboard {
	return &Clipboard{out: out}
}

// Text returns the clipboard text.
func (c *Clipboard) Text() string {
	return c.text
}

// SetText copies text to the clipboard.
func (c *Clipboard) SetText(text string) error {
	c.text = text
	if c.out == nil {
		return nil
	}
	if _, err := osc52.New(text).WriteTo(c.out); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
