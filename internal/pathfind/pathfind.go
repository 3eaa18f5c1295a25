// Package pathfind finds paths on weighted grids with A*.
package pathfind

import (
	"container/heap"
	"errors"
	"math"
)

// Point is a grid cell.
type Point struct {
	X, Y int
}

// Grid holds per-cell movement costs indexed [y][x]. Zero or negative
// cells are walls.
type Grid [][]int

// ErrGrid is returned for an empty or ragged grid.
var ErrGrid = errors.New("pathfind: grid must be a non-empty rectangle")

func (g Grid) validate() error {
	if len(g) == 0 || len(g[0]) == 0 {
		return ErrGrid
	}
	for _, row := range g {
		if len(row) != len(g[0]) {
			return ErrGrid
		}
	}
	return nil
}

func (g Grid) walkable(p Point) bool {
	return p.Y >= 0 && p.Y < len(g) && p.X >= 0 && p.X < len(g[p.Y]) && g[p.Y][p.X] > 0
}

// turnPenalty is added when a step changes direction, so straight runs
// win over zigzags of equal length.
const turnPenalty = 0.1

var directions = []Point{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

type node struct {
	p     Point
	dir   Point
	g, f  float64
	index int
}

type queue []*node

func (q queue) Len() int           { return len(q) }
func (q queue) Less(i, j int) bool { return q[i].f < q[j].f }
func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *queue) Push(x any) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}
func (q *queue) Pop() any {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}

// octile is the distance with diagonal moves allowed.
func octile(a, b Point) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}

// Find returns the cells from start to goal inclusive, or nil when goal is
// unreachable. Diagonal steps may not cut wall corners.
func Find(g Grid, start, goal Point) ([]Point, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if !g.walkable(start) || !g.walkable(goal) {
		return nil, nil
	}

	open := &queue{}
	best := map[Point]*node{start: {p: start, f: octile(start, goal)}}
	from := map[Point]Point{}
	closed := map[Point]bool{}
	heap.Push(open, best[start])

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if cur.p == goal {
			return trace(from, start, goal), nil
		}
		if closed[cur.p] {
			continue
		}
		closed[cur.p] = true

		for _, d := range directions {
			next := Point{cur.p.X + d.X, cur.p.Y + d.Y}
			if !g.walkable(next) || closed[next] {
				continue
			}
			step := 1.0
			if d.X != 0 && d.Y != 0 {
				if !g.walkable(Point{cur.p.X + d.X, cur.p.Y}) || !g.walkable(Point{cur.p.X, cur.p.Y + d.Y}) {
					continue
				}
				step = math.Sqrt2
			}
			cost := cur.g + step*float64(g[next.Y][next.X])
			if cur.p != start && d != cur.dir {
				cost += turnPenalty
			}
			if n, ok := best[next]; ok && n.g <= cost {
				continue
			}
			n := &node{p: next, dir: d, g: cost, f: cost + octile(next, goal)}
			best[next] = n
			from[next] = cur.p
			heap.Push(open, n)
		}
	}
	return nil, nil
}

func trace(from map[Point]Point, start, goal Point) []Point {
	path := []Point{goal}
	for p := goal; p != start; {
		p = from[p]
		path = append(path, p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
