package graphics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrFont is returned for a malformed font file.
var ErrFont = errors.New("graphics: invalid font")

// Font is a bitmap glyph table. Each glyph is Height rows of text where
// any non-space character is a lit cell.
type Font struct {
	Name   string              `yaml:"name"`
	Height int                 `yaml:"height"`
	Glyphs map[string][]string `yaml:"glyphs"`

	glyphs map[rune][]string
}

// LoadFont reads a YAML glyph table.
func LoadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graphics: load font %s: %w", filepath.Base(path), err)
	}
	return ParseFont(data)
}

// ParseFont decodes a YAML glyph table.
func ParseFont(data []byte) (*Font, error) {
	var f Font
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFont, err)
	}
	if f.Height <= 0 {
		return nil, fmt.Errorf("%w: height must be positive", ErrFont)
	}
	f.glyphs = make(map[rune][]string, len(f.Glyphs))
	for key, rows := range f.Glyphs {
		r := []rune(key)
		if len(r) != 1 {
			return nil, fmt.Errorf("%w: glyph key %q is not one character", ErrFont, key)
		}
		if len(rows) != f.Height {
			return nil, fmt.Errorf("%w: glyph %q has %d rows, expected %d", ErrFont, key, len(rows), f.Height)
		}
		f.glyphs[r[0]] = rows
	}
	return &f, nil
}

// Glyph returns the rows for r, falling back to its upper case form.
func (f *Font) Glyph(r rune) ([]string, bool) {
	if rows, ok := f.glyphs[r]; ok {
		return rows, true
	}
	rows, ok := f.glyphs[[]rune(strings.ToUpper(string(r)))[0]]
	return rows, ok
}

// Advance returns the width of the widest row of r's glyph, or half the font
// height for missing glyphs.
func (f *Font) Advance(r rune) int {
	rows, ok := f.Glyph(r)
	if !ok {
		return f.Height / 2
	}
	w := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > w {
			w = n
		}
	}
	return w
}

// Release is a no-op; fonts hold no external resources.
func (f *Font) Release() error {
	return nil
}
