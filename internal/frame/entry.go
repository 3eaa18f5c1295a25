package frame

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/turtle/internal/script"
	"github.com/vovakirdan/turtle/internal/script/js"
	"github.com/vovakirdan/turtle/internal/script/lua"
)

// Entries lists the entry script names in lookup order.
var Entries = []string{"main.js", "main.ts", "main.lua"}

// ErrNoEntry is returned when a game directory has no entry script.
var ErrNoEntry = errors.New("frame: no entry script")

// NoEntryMessage is the fault shown for a directory without an entry script.
const NoEntryMessage = "Invalid argument, point to a directory containing a main.js, main.ts or main.lua file."

// DetectEntry returns the first entry script present in dir.
func DetectEntry(dir string) (string, error) {
	for _, name := range Entries {
		fi, err := os.Stat(filepath.Join(dir, name))
		if err == nil && fi.Mode().IsRegular() {
			return name, nil
		}
	}
	return "", ErrNoEntry
}

// EngineFactory builds the script engine for an entry script.
type EngineFactory func(entry string, logger *log.Logger) (script.Engine, error)

// NewEngine picks the engine by the entry's extension.
func NewEngine(entry string, logger *log.Logger) (script.Engine, error) {
	var (
		eng script.Engine
		err error
	)
	switch filepath.Ext(entry) {
	case ".js", ".ts":
		eng, err = js.New(logger)
	case ".lua":
		eng, err = lua.New(logger)
	default:
		return nil, fmt.Errorf("frame: no engine for %q", entry)
	}
	if err != nil {
		return nil, fmt.Errorf("frame: create engine: %w", err)
	}
	return eng, nil
}

// EngineName returns the engine label for dir, "none" when it has no
// entry script.
func EngineName(dir string) string {
	if dir == "" {
		return "none"
	}
	entry, err := DetectEntry(dir)
	if err != nil {
		return "none"
	}
	if filepath.Ext(entry) == ".lua" {
		return "lua"
	}
	return "js"
}
