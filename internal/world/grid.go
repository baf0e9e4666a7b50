package world

import (
	"image"
	"strings"

	"github.com/samdwyer/dungeonforge/internal/corridor"
	"github.com/samdwyer/dungeonforge/internal/dungeon"
)

// Grid is the rendered tile map of a dungeon.
type Grid struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// BuildGrid rasterizes a dungeon onto a tile grid. Rooms are drawn as
// open floors with their role marker in the center; corridors are
// routed around rooms and drawn only over empty space, so they never
// cut through a room they don't terminate in.
func BuildGrid(d *dungeon.Dungeon) *Grid {
	width := d.Width() + 1
	height := d.Height() + 1
	if len(d.Rooms) == 0 {
		width, height = 1, 1
	}

	g := &Grid{Width: width, Height: height}
	g.Tiles = make([][]Tile, height)
	for y := range g.Tiles {
		g.Tiles[y] = make([]Tile, width)
		for x := range g.Tiles[y] {
			g.Tiles[y][x] = TileEmpty
		}
	}

	roomTiles := make(map[image.Point]bool)
	for _, room := range d.Rooms {
		for y := room.Y; y < room.Y+room.Height; y++ {
			for x := room.X; x < room.X+room.Width; x++ {
				if g.inBounds(x, y) {
					g.Tiles[y][x] = TileFloor
					roomTiles[image.Pt(x, y)] = true
				}
			}
		}

		cx, cy := room.Center()
		if g.inBounds(cx, cy) {
			if room.IsSpawn {
				g.Tiles[cy][cx] = TileSpawn
			} else if room.IsStairs {
				g.Tiles[cy][cx] = TileStairs
			}
		}
	}

	for _, conn := range d.Connections() {
		r1, ok1 := d.Rooms[conn[0]]
		r2, ok2 := d.Rooms[conn[1]]
		if !ok1 || !ok2 {
			continue
		}

		x1, y1 := r1.Center()
		x2, y2 := r2.Center()
		start := g.clamp(image.Pt(x1, y1))
		end := g.clamp(image.Pt(x2, y2))

		// Corridors route through empty space only, except for their
		// own endpoints inside the two rooms.
		walkable := func(x, y int) bool {
			p := image.Pt(x, y)
			return !roomTiles[p] || p == start || p == end
		}

		path := corridor.Route(width, height, walkable, start, end)
		if len(path) == 0 {
			path = corridor.LPath(start, end)
		}
		for _, p := range path {
			if g.inBounds(p.X, p.Y) && g.Tiles[p.Y][p.X] == TileEmpty {
				g.Tiles[p.Y][p.X] = TileCorridor
			}
		}
	}

	return g
}

// Tile returns the tile at the given position, or TileEmpty when the
// position is out of bounds.
func (g *Grid) Tile(x, y int) Tile {
	if !g.inBounds(x, y) {
		return TileEmpty
	}
	return g.Tiles[y][x]
}

// String renders the grid as ASCII text, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.Height * (g.Width + 1))
	for y, row := range g.Tiles {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, t := range row {
			b.WriteRune(t.Rune())
		}
	}
	return b.String()
}

// Legend describes the characters used by String.
func Legend() string {
	return "Legend: . = room floor, , = corridor, S = spawn, > = stairs"
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

func (g *Grid) clamp(p image.Point) image.Point {
	return image.Pt(
		max(0, min(p.X, g.Width-1)),
		max(0, min(p.Y, g.Height-1)),
	)
}
