// Package render produces the human-facing views of a generated floor:
// the text summary and the room-graph PNG.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samdwyer/dungeonforge/internal/topology"
)

// Summary renders a room-by-room report of the topology: positions,
// dimensions, roles, contents and the connection list.
func Summary(t *topology.Topology) string {
	var b strings.Builder

	line := strings.Repeat("=", 50)
	fmt.Fprintf(&b, "%s\nDUNGEON GRAPH\n%s\n\n", line, line)
	fmt.Fprintf(&b, "Grid size: %dx%d\n", t.GridSize, t.GridSize)
	fmt.Fprintf(&b, "Rooms: %d\n", len(t.Rooms))
	fmt.Fprintf(&b, "Corridors: %d\n\n", len(t.Connections))

	if spawn := t.Spawn(); spawn != nil {
		fmt.Fprintf(&b, "Spawn: room %d @ grid (%d,%d) %dx%d\n",
			spawn.ID, spawn.GX, spawn.GY, spawn.Width, spawn.Height)
	}
	if stairs := t.Stairs(); stairs != nil {
		fmt.Fprintf(&b, "Stairs: room %d @ grid (%d,%d) %dx%d\n",
			stairs.ID, stairs.GX, stairs.GY, stairs.Width, stairs.Height)
	}
	b.WriteString("\nROOMS:\n")

	ids := make([]int, 0, len(t.Rooms))
	for id := range t.Rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		room := t.Rooms[id]
		role := ""
		if room.IsSpawn {
			role = " [SPAWN]"
		} else if room.IsStairs {
			role = " [STAIRS]"
		}
		fmt.Fprintf(&b, "  Room %d: (%d,%d) %dx%d%s\n",
			id, room.GX, room.GY, room.Width, room.Height, role)

		if len(room.Items) > 0 {
			fmt.Fprintf(&b, "    Items: %s\n", typeList(room.Items, t.ItemTypes))
		}
		if len(room.Enemies) > 0 {
			fmt.Fprintf(&b, "    Enemies: %s\n", typeList(room.Enemies, t.EnemyTypes))
		}
		if len(room.Traps) > 0 {
			fmt.Fprintf(&b, "    Traps: %s\n", typeList(room.Traps, t.TrapTypes))
		}
	}

	b.WriteString("\nCONNECTIONS:\n")
	for _, conn := range t.Connections {
		fmt.Fprintf(&b, "  Room %d <-> Room %d\n", conn[0], conn[1])
	}

	return b.String()
}

func typeList(ids []int, types map[int]string) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		name, ok := types[id]
		if !ok {
			name = "?"
		}
		names[i] = name
	}
	return strings.Join(names, ", ")
}
