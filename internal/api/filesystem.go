package api

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/script"
)

// filesystemNamespace gives read-only access to the game directory.
func filesystemNamespace(st *engine.State) script.Namespace {
	resolve := func(a script.Args) (string, error) {
		name, err := a.OptString(0, ".")
		if err != nil {
			return "", err
		}
		return path(st, name)
	}
	read := func(a script.Args) (string, error) {
		p, err := resolve(a)
		if err != nil {
			return "", err
		}
		data, err := os.ReadFile(p)
		return string(data), err
	}

	return script.Namespace{
		Name: "filesystem",
		Funcs: map[string]script.Func{
			"read": func(a script.Args) (any, error) {
				return read(a)
			},
			"lines": func(a script.Args) (any, error) {
				text, err := read(a)
				if err != nil {
					return nil, err
				}
				text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
				if text == "" {
					return []string{}, nil
				}
				return strings.Split(text, "\n"), nil
			},
			"exists": func(a script.Args) (any, error) {
				p, err := resolve(a)
				if err != nil {
					return nil, err
				}
				_, err = os.Stat(p)
				if errors.Is(err, fs.ErrNotExist) {
					return false, nil
				}
				return err == nil, err
			},
			"getDirectoryItems": func(a script.Args) (any, error) {
				p, err := resolve(a)
				if err != nil {
					return nil, err
				}
				entries, err := os.ReadDir(p)
				if err != nil {
					return nil, err
				}
				names := make([]string, 0, len(entries))
				for _, e := range entries {
					names = append(names, e.Name())
				}
				slices.Sort(names)
				return names, nil
			},
			"getInfo": func(a script.Args) (any, error) {
				p, err := resolve(a)
				if err != nil {
					return nil, err
				}
				fi, err := os.Lstat(p)
				if errors.Is(err, fs.ErrNotExist) {
					return map[string]any{"exists": false}, nil
				}
				if err != nil {
					return nil, err
				}
				kind := "file"
				switch {
				case fi.Mode()&fs.ModeSymlink != 0:
					kind = "symlink"
				case fi.IsDir():
					kind = "directory"
				}
				return map[string]any{
					"exists":  true,
					"type":    kind,
					"size":    fi.Size(),
					"modtime": fi.ModTime().Unix(),
				}, nil
			},
		},
	}
}
