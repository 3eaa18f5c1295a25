package script

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned for a script path that escapes the game
// directory.
var ErrOutsideRoot = errors.New("path escapes the game directory")

// Resolve maps a script-supplied path to a file inside root. Absolute
// paths are taken relative to root.
func Resolve(root, name string) (string, error) {
	full := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", name, ErrOutsideRoot)
	}
	return full, nil
}
