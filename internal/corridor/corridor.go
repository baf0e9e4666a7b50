// Package corridor routes corridor paths on the tile grid. A straight
// Bresenham line is preferred; A* takes over when the line is blocked.
package corridor

import (
	"container/heap"
	"image"
	"math"
)

// Walkable reports whether the cell at (x, y) may be crossed.
type Walkable func(x, y int) bool

// Bresenham returns the cardinal-only line from a to b, inclusive. Each
// step moves exactly one tile horizontally or vertically, so the path is
// always traversable by four-way movement.
func Bresenham(a, b image.Point) []image.Point {
	path := []image.Point{a}

	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx := -1
	if b.X > a.X {
		sx = 1
	}
	sy := -1
	if b.Y > a.Y {
		sy = 1
	}

	err := dx - dy
	x, y := a.X, a.Y
	for x != b.X || y != b.Y {
		e2 := 2 * err
		switch {
		case e2 > -dy && (e2 < dx && dx > dy || e2 >= dx):
			err -= dy
			x += sx
		case e2 < dx:
			err += dx
			y += sy
		case e2 > -dy:
			err -= dy
			x += sx
		}
		path = append(path, image.Pt(x, y))
	}
	return path
}

// Route returns a corridor path from a to b on a w x h grid. The
// straight line wins when every cell on it is walkable; otherwise A*
// searches for a detour. When even A* fails the straight line is used
// regardless, matching the renderer's draw-over-anything behavior.
func Route(w, h int, walkable Walkable, a, b image.Point) []image.Point {
	line := Bresenham(a, b)
	if clear(line, w, h, walkable) {
		return line
	}
	if path := AStar(w, h, walkable, a, b); path != nil {
		return path
	}
	return line
}

// LPath returns an L-shaped corridor from a to b with the bend at the
// horizontal midpoint: across to the middle, down to the target row,
// then across again.
func LPath(a, b image.Point) []image.Point {
	var path []image.Point
	seen := make(map[image.Point]bool)
	add := func(p image.Point) {
		if !seen[p] {
			seen[p] = true
			path = append(path, p)
		}
	}

	midX := (a.X + b.X) / 2
	stepX := -1
	if b.X > a.X {
		stepX = 1
	}
	stepY := -1
	if b.Y > a.Y {
		stepY = 1
	}

	for x := a.X; x != midX+stepX; x += stepX {
		add(image.Pt(x, a.Y))
	}
	for y := a.Y; y != b.Y+stepY; y += stepY {
		add(image.Pt(midX, y))
	}
	for x := midX; x != b.X+stepX; x += stepX {
		add(image.Pt(x, b.Y))
	}
	return path
}

func clear(path []image.Point, w, h int, walkable Walkable) bool {
	for _, p := range path {
		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h || !walkable(p.X, p.Y) {
			return false
		}
	}
	return true
}

// AStar finds a four-way path between start and goal with unit step
// cost and a Euclidean heuristic. It returns nil when the goal is
// unreachable.
func AStar(w, h int, walkable Walkable, start, goal image.Point) []image.Point {
	heuristic := func(p image.Point) float64 {
		dx := float64(p.X - goal.X)
		dy := float64(p.Y - goal.Y)
		return math.Sqrt(dx*dx + dy*dy)
	}

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, node{point: start, priority: heuristic(start)})

	cameFrom := make(map[image.Point]image.Point)
	gScore := map[image.Point]int{start: 0}

	dirs := []image.Point{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

	for open.Len() > 0 {
		current := heap.Pop(open).(node).point
		if current == goal {
			return reconstruct(cameFrom, current)
		}

		for _, d := range dirs {
			next := current.Add(d)
			if next.X < 0 || next.X >= w || next.Y < 0 || next.Y >= h || !walkable(next.X, next.Y) {
				continue
			}
			tentative := gScore[current] + 1
			if g, seen := gScore[next]; !seen || tentative < g {
				cameFrom[next] = current
				gScore[next] = tentative
				heap.Push(open, node{point: next, priority: float64(tentative) + heuristic(next)})
			}
		}
	}
	return nil
}

func reconstruct(cameFrom map[image.Point]image.Point, current image.Point) []image.Point {
	path := []image.Point{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		current = prev
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type node struct {
	point    image.Point
	priority float64
}

// nodeHeap is a min-heap ordered by f-score. Insertion order breaks
// ties, keeping the search deterministic.
type nodeHeap struct {
	nodes   []node
	order   []int
	counter int
}

func (h *nodeHeap) Len() int { return len(h.nodes) }

func (h *nodeHeap) Less(i, j int) bool {
	if h.nodes[i].priority != h.nodes[j].priority {
		return h.nodes[i].priority < h.nodes[j].priority
	}
	return h.order[i] < h.order[j]
}

func (h *nodeHeap) Swap(i, j int) {
	h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i]
	h.order[i], h.order[j] = h.order[j], h.order[i]
}

func (h *nodeHeap) Push(x any) {
	h.nodes = append(h.nodes, x.(node))
	h.order = append(h.order, h.counter)
	h.counter++
}

func (h *nodeHeap) Pop() any {
	n := len(h.nodes) - 1
	popped := h.nodes[n]
	h.nodes = h.nodes[:n]
	h.order = h.order[:n]
	return popped
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
