// Package world turns a calculated dungeon into a tile grid.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileEmpty is unexcavated space around rooms and corridors.
	TileEmpty Tile = ' '
	// TileFloor is a room floor tile.
	TileFloor Tile = '.'
	// TileCorridor is a corridor tile between rooms.
	TileCorridor Tile = ','
	// TileSpawn marks the party spawn point.
	TileSpawn Tile = 'S'
	// TileStairs marks the stairs down to the next floor.
	TileStairs Tile = '>'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	switch t {
	case TileFloor, TileCorridor, TileSpawn, TileStairs:
		return true
	}
	return false
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
