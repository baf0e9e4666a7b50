package render

import (
	"fmt"
	"sort"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/dungeonforge/internal/topology"
)

// Node palette: spawn green, stairs orange, ordinary rooms blue.
const (
	spawnColor  = "#4CAF50"
	stairsColor = "#FF9800"
	roomColor   = "#2196F3"
	edgeColor   = "#888888"
	gridColor   = "#DDDDDD"
	labelColor  = "#AAAAAA"
)

const (
	cellPx    = 160.0
	marginPx  = 60.0
	titlePx   = 50.0
	nodeR     = 42.0
	lineGapPx = 13.0
)

// WriteGraphPNG draws the topology as a room graph: nodes at their
// coarse grid coordinates over a dashed background grid, edges for
// corridors, and a legend. The image is written to path.
func WriteGraphPNG(t *topology.Topology, path string) error {
	gridSize := t.GridSize
	if gridSize <= 0 {
		gridSize = topology.DefaultGridSize
	}

	width := int(2*marginPx + float64(gridSize)*cellPx)
	height := int(2*marginPx + titlePx + float64(gridSize)*cellPx)

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Grid cells use screen coordinates with y flipped so (0,0) is the
	// bottom-left cell, matching the solver's view of the grid.
	center := func(gx, gy int) (float64, float64) {
		x := marginPx + (float64(gx)+0.5)*cellPx
		y := marginPx + titlePx + (float64(gridSize-1-gy)+0.5)*cellPx
		return x, y
	}

	// Background grid with coordinate labels.
	dc.SetColor(mustHex(gridColor))
	dc.SetLineWidth(1)
	dc.SetDash(4, 4)
	for gx := 0; gx < gridSize; gx++ {
		for gy := 0; gy < gridSize; gy++ {
			cx, cy := center(gx, gy)
			dc.DrawRectangle(cx-cellPx*0.45, cy-cellPx*0.45, cellPx*0.9, cellPx*0.9)
			dc.Stroke()
		}
	}
	dc.SetDash()
	dc.SetColor(mustHex(labelColor))
	for gx := 0; gx < gridSize; gx++ {
		for gy := 0; gy < gridSize; gy++ {
			cx, cy := center(gx, gy)
			dc.DrawString(fmt.Sprintf("(%d,%d)", gx, gy), cx-cellPx*0.43, cy+cellPx*0.4)
		}
	}

	// Edges first so nodes draw over them.
	dc.SetColor(mustHex(edgeColor))
	dc.SetLineWidth(2)
	for _, conn := range t.Connections {
		r1, ok1 := t.Rooms[conn[0]]
		r2, ok2 := t.Rooms[conn[1]]
		if !ok1 || !ok2 {
			continue
		}
		x1, y1 := center(r1.GX, r1.GY)
		x2, y2 := center(r2.GX, r2.GY)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	// Nodes with their labels.
	ids := make([]int, 0, len(t.Rooms))
	for id := range t.Rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		room := t.Rooms[id]
		cx, cy := center(room.GX, room.GY)

		dc.SetColor(mustHex(nodeColor(room)))
		dc.DrawCircle(cx, cy, nodeR)
		dc.Fill()

		dc.SetRGB(0, 0, 0)
		lines := nodeLabel(room)
		top := cy - lineGapPx*float64(len(lines)-1)/2
		for i, line := range lines {
			dc.DrawStringAnchored(line, cx, top+float64(i)*lineGapPx, 0.5, 0.5)
		}
	}

	// Title and legend.
	dc.SetRGB(0, 0, 0)
	title := fmt.Sprintf("Dungeon Graph: %d rooms, %d corridors", len(t.Rooms), len(t.Connections))
	dc.DrawStringAnchored(title, float64(width)/2, marginPx*0.6, 0.5, 0.5)

	legend := []struct {
		color string
		label string
	}{
		{spawnColor, "Spawn"},
		{stairsColor, "Stairs"},
		{roomColor, "Room"},
	}
	ly := marginPx + titlePx*0.5
	for i, entry := range legend {
		x := marginPx + float64(i)*110
		dc.SetColor(mustHex(entry.color))
		dc.DrawRectangle(x, ly-6, 12, 12)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawString(entry.label, x+18, ly+5)
	}

	return dc.SavePNG(path)
}

func nodeColor(room *topology.Room) string {
	switch {
	case room.IsSpawn:
		return spawnColor
	case room.IsStairs:
		return stairsColor
	default:
		return roomColor
	}
}

func nodeLabel(room *topology.Room) []string {
	lines := []string{
		fmt.Sprintf("R%d", room.ID),
		fmt.Sprintf("(%d,%d)", room.GX, room.GY),
		fmt.Sprintf("%dx%d", room.Width, room.Height),
	}
	if room.IsSpawn {
		lines = append(lines, "SPAWN")
	}
	if room.IsStairs {
		lines = append(lines, "STAIRS")
	}
	var content []string
	if n := len(room.Items); n > 0 {
		content = append(content, fmt.Sprintf("%d items", n))
	}
	if n := len(room.Enemies); n > 0 {
		content = append(content, fmt.Sprintf("%d enemies", n))
	}
	if n := len(room.Traps); n > 0 {
		content = append(content, fmt.Sprintf("%d traps", n))
	}
	if len(content) > 0 {
		lines = append(lines, joinShort(content))
	}
	return lines
}

func joinShort(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}

// mustHex parses a hex color literal. The palette is fixed at compile
// time, so a parse failure is a programming error.
func mustHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	return c
}
