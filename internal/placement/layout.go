package placement

import (
	"sort"
	"time"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/samdwyer/dungeonforge/internal/topology"
)

const (
	layoutUpdates = 100
	gapPasses     = 50
)

// fallbackLayout places rooms with a force-directed graph layout when
// the ASP placement is unavailable. Positions are scaled to tile
// coordinates, pushed apart until the minimum gap holds, and normalized
// to the origin.
func fallbackLayout(topo *topology.Topology, minGap int, seed int64) map[int]*Placed {
	if len(topo.Rooms) == 0 {
		return map[int]*Placed{}
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := simple.NewUndirectedGraph()
	for id := range topo.Rooms {
		g.AddNode(simple.Node(int64(id)))
	}
	for _, conn := range topo.Connections {
		if conn[0] == conn[1] {
			continue
		}
		if _, ok := topo.Rooms[conn[0]]; !ok {
			continue
		}
		if _, ok := topo.Rooms[conn[1]]; !ok {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(int64(conn[0])), simple.Node(int64(conn[1]))))
	}

	eades := layout.EadesR2{
		Repulsion: 1,
		Rate:      0.05,
		Updates:   layoutUpdates,
		Theta:     0.1,
		Src:       rand.NewSource(uint64(seed)),
	}
	optimizer := layout.NewOptimizerR2(g, eades.Update)
	for optimizer.Update() {
	}

	// Scale abstract coordinates to tiles the way the room sizes demand.
	totalSize := 0
	for _, room := range topo.Rooms {
		totalSize += room.Width + room.Height
	}
	avgSize := float64(totalSize) / float64(2*len(topo.Rooms))
	scale := (avgSize + float64(minGap)) * 2.5

	minX, minY := 0.0, 0.0
	maxX, maxY := 0.0, 0.0
	first := true
	for id := range topo.Rooms {
		v := optimizer.Coord2(int64(id))
		if first {
			minX, maxX = v.X, v.X
			minY, maxY = v.Y, v.Y
			first = false
			continue
		}
		minX, maxX = min(minX, v.X), max(maxX, v.X)
		minY, maxY = min(minY, v.Y), max(maxY, v.Y)
	}
	spanX := maxX - minX
	spanY := maxY - minY

	placed := make(map[int]*Placed, len(topo.Rooms))
	for id, room := range topo.Rooms {
		v := optimizer.Coord2(int64(id))
		var px, py float64
		if spanX > 0 {
			px = (v.X - minX) / spanX * 2
		}
		if spanY > 0 {
			py = (v.Y - minY) / spanY * 2
		}
		placed[id] = &Placed{
			ID:       id,
			X:        int(px * scale),
			Y:        int(py * scale),
			Width:    room.Width,
			Height:   room.Height,
			IsSpawn:  room.IsSpawn,
			IsStairs: room.IsStairs,
			Items:    room.Items,
			Enemies:  room.Enemies,
			Traps:    room.Traps,
		}
	}

	enforceGaps(placed, minGap)
	normalize(placed)
	return placed
}

// enforceGaps runs pairwise push-apart passes until every pair of rooms
// keeps the minimum gap or the pass budget is spent.
func enforceGaps(placed map[int]*Placed, minGap int) {
	ids := make([]int, 0, len(placed))
	for id := range placed {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for pass := 0; pass < gapPasses; pass++ {
		moved := false
		for i, a := range ids {
			for _, b := range ids[i+1:] {
				if pushApart(placed[a], placed[b], minGap) {
					moved = true
				}
			}
		}
		if !moved {
			return
		}
	}
}

// pushApart separates two rooms that sit closer than the minimum gap,
// shifting both along the axis with the larger center distance. Reports
// whether anything moved.
func pushApart(r1, r2 *Placed, minGap int) bool {
	gapX := max(r2.X-(r1.X+r1.Width), r1.X-(r2.X+r2.Width))
	gapY := max(r2.Y-(r1.Y+r1.Height), r1.Y-(r2.Y+r2.Height))
	if gapX >= minGap || gapY >= minGap {
		return false
	}

	cx1 := float64(r1.X) + float64(r1.Width)/2
	cy1 := float64(r1.Y) + float64(r1.Height)/2
	cx2 := float64(r2.X) + float64(r2.Width)/2
	cy2 := float64(r2.Y) + float64(r2.Height)/2
	dx := cx2 - cx1
	dy := cy2 - cy1

	if abs(dx) > abs(dy) {
		needed := float64(r1.Width+r2.Width)/2 + float64(minGap)
		shift := int((needed-abs(dx))/2) + 1
		if dx >= 0 {
			r1.X -= shift
			r2.X += shift
		} else {
			r1.X += shift
			r2.X -= shift
		}
	} else {
		needed := float64(r1.Height+r2.Height)/2 + float64(minGap)
		shift := int((needed-abs(dy))/2) + 1
		if dy >= 0 {
			r1.Y -= shift
			r2.Y += shift
		} else {
			r1.Y += shift
			r2.Y -= shift
		}
	}
	return true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
