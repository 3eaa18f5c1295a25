package api

import (
	"fmt"

	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/pathfind"
	"github.com/vovakirdan/turtle/internal/script"
)

func mathNamespace(st *engine.State) script.Namespace {
	return script.Namespace{
		Name: "math",
		Funcs: map[string]script.Func{
			"random": func(a script.Args) (any, error) {
				lo, err := a.Int(0)
				if err != nil {
					return nil, err
				}
				hi, err := a.Int(1)
				if err != nil {
					return nil, err
				}
				if lo > hi {
					lo, hi = hi, lo
				}
				return lo + st.Rand.Intn(hi-lo+1), nil
			},
			"setRandomSeed": func(a script.Args) (any, error) {
				seed, err := a.Int(0)
				if err != nil {
					return nil, err
				}
				st.Rand.Seed(int64(seed))
				return nil, nil
			},
			"findPath": func(a script.Args) (any, error) {
				grid, err := gridArg(a, 0)
				if err != nil {
					return nil, err
				}
				v, err := numbers(a, 1, 4)
				if err != nil {
					return nil, err
				}
				path, err := pathfind.Find(grid,
					pathfind.Point{X: int(v[0]), Y: int(v[1])},
					pathfind.Point{X: int(v[2]), Y: int(v[3])})
				if err != nil {
					return nil, err
				}
				out := make([]any, len(path))
				for i, p := range path {
					out[i] = map[string]any{"x": p.X, "y": p.Y}
				}
				return out, nil
			},
		},
	}
}

// gridArg reads an array of rows of numbers.
func gridArg(a script.Args, i int) (pathfind.Grid, error) {
	rows, ok := a.Any(i).([]any)
	if !ok {
		return nil, fmt.Errorf("%w #%d: expected array of rows", script.ErrArgument, i+1)
	}
	grid := make(pathfind.Grid, len(rows))
	for y, r := range rows {
		cells, ok := r.([]any)
		if !ok {
			return nil, fmt.Errorf("%w #%d: row %d is not an array", script.ErrArgument, i+1, y+1)
		}
		row := script.Args(cells)
		grid[y] = make([]int, len(cells))
		for x := range cells {
			n, err := row.Int(x)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", y+1, err)
			}
			grid[y][x] = n
		}
	}
	return grid, nil
}
