package world

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samdwyer/dungeonforge/internal/dungeon"
	"github.com/samdwyer/dungeonforge/internal/placement"
	"github.com/samdwyer/dungeonforge/internal/topology"
)

func twoRoomDungeon() *dungeon.Dungeon {
	return &dungeon.Dungeon{
		Topology: &topology.Topology{
			Rooms: map[int]*topology.Room{
				1: {ID: 1, Width: 3, Height: 3, IsSpawn: true},
				2: {ID: 2, Width: 3, Height: 3, IsStairs: true},
			},
			Connections: [][2]int{{1, 2}},
		},
		Rooms: map[int]*placement.Placed{
			1: {ID: 1, X: 0, Y: 0, Width: 3, Height: 3, IsSpawn: true},
			2: {ID: 2, X: 6, Y: 0, Width: 3, Height: 3, IsStairs: true},
		},
	}
}

func TestBuildGridTwoRooms(t *testing.T) {
	g := BuildGrid(twoRoomDungeon())

	assert.Equal(t, 11, g.Width, "room extent plus padding")
	assert.Equal(t, 5, g.Height)

	// Room floors and role markers.
	assert.Equal(t, TileFloor, g.Tile(0, 0))
	assert.Equal(t, TileSpawn, g.Tile(1, 1))
	assert.Equal(t, TileFloor, g.Tile(6, 0))
	assert.Equal(t, TileStairs, g.Tile(7, 1))

	// Corridor spans the empty space between room edges at center row.
	for x := 3; x <= 5; x++ {
		assert.Equal(t, TileCorridor, g.Tile(x, 1), "corridor missing at x=%d", x)
	}

	// Corridor never overwrites a room floor.
	assert.Equal(t, TileFloor, g.Tile(2, 1))
	assert.Equal(t, TileFloor, g.Tile(6, 1))

	assert.Equal(t, TileEmpty, g.Tile(10, 4), "padding stays empty")
}

func TestBuildGridString(t *testing.T) {
	g := BuildGrid(twoRoomDungeon())

	want := strings.Join([]string{
		"...   ...  ",
		".S.,,,.>.  ",
		"...   ...  ",
		"           ",
		"           ",
	}, "\n")
	assert.Equal(t, want, g.String())
}

func TestBuildGridEmptyDungeon(t *testing.T) {
	d := &dungeon.Dungeon{
		Topology: &topology.Topology{Rooms: map[int]*topology.Room{}},
		Rooms:    map[int]*placement.Placed{},
	}
	g := BuildGrid(d)
	assert.Equal(t, 1, g.Width)
	assert.Equal(t, 1, g.Height)
	assert.Equal(t, " ", g.String())
}

func TestBuildGridSkipsMissingConnectionEndpoints(t *testing.T) {
	d := twoRoomDungeon()
	d.Topology.Connections = append(d.Topology.Connections, [2]int{1, 9})

	g := BuildGrid(d)
	assert.Equal(t, TileCorridor, g.Tile(4, 1), "valid connection still drawn")
}

func TestBuildGridRoutesAroundForeignRoom(t *testing.T) {
	// A third room sits between rooms 1 and 2; the corridor has to bend
	// around it rather than cut through.
	d := &dungeon.Dungeon{
		Topology: &topology.Topology{
			Rooms: map[int]*topology.Room{
				1: {ID: 1, Width: 1, Height: 1, IsSpawn: true},
				2: {ID: 2, Width: 1, Height: 1, IsStairs: true},
				3: {ID: 3, Width: 3, Height: 5},
			},
			Connections: [][2]int{{1, 2}},
		},
		Rooms: map[int]*placement.Placed{
			1: {ID: 1, X: 0, Y: 3, Width: 1, Height: 1, IsSpawn: true},
			2: {ID: 2, X: 10, Y: 3, Width: 1, Height: 1, IsStairs: true},
			3: {ID: 3, X: 4, Y: 1, Width: 3, Height: 5},
		},
	}

	g := BuildGrid(d)

	// No corridor tile inside room 3.
	for y := 1; y < 6; y++ {
		for x := 4; x < 7; x++ {
			assert.NotEqual(t, TileCorridor, g.Tile(x, y),
				"corridor cuts through a room at (%d,%d)", x, y)
		}
	}

	// Both endpoints are still linked by passable tiles next to them.
	assert.Equal(t, TileSpawn, g.Tile(0, 3))
	assert.Equal(t, TileStairs, g.Tile(10, 3))
	corridors := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tile(x, y) == TileCorridor {
				corridors++
			}
		}
	}
	assert.Greater(t, corridors, 9, "detour is longer than the straight line")
}

func TestTilePassability(t *testing.T) {
	assert.True(t, TileFloor.IsPassable())
	assert.True(t, TileCorridor.IsPassable())
	assert.True(t, TileSpawn.IsPassable())
	assert.True(t, TileStairs.IsPassable())
	assert.False(t, TileEmpty.IsPassable())
	assert.Equal(t, '>', TileStairs.Rune())
}

func TestLegendNamesEveryGlyph(t *testing.T) {
	legend := Legend()
	for _, tile := range []Tile{TileFloor, TileCorridor, TileSpawn, TileStairs} {
		assert.Contains(t, legend, string(tile.Rune()))
	}
}
