package topology

import (
	"github.com/samdwyer/dungeonforge/internal/solver"
)

// FromResult maps a solver answer set onto a Topology. Rooms referenced
// only by content or role atoms are created on demand; missing footprint
// facts fall back to a 6x6 room at grid origin.
func FromResult(res *solver.Result, gridSize int) *Topology {
	t := &Topology{
		Rooms:      make(map[int]*Room),
		ItemTypes:  make(map[int]string),
		EnemyTypes: make(map[int]string),
		TrapTypes:  make(map[int]string),
		GridSize:   gridSize,
	}

	room := func(id int) *Room {
		r, ok := t.Rooms[id]
		if !ok {
			r = &Room{ID: id, Width: defaultWidth, Height: defaultHeight}
			t.Rooms[id] = r
		}
		return r
	}

	for _, a := range res.Atoms {
		switch a.Name {
		case "room":
			room(a.Int(0))
		case "corridor":
			t.Connections = append(t.Connections, [2]int{a.Int(0), a.Int(1)})
		case "is_spawn":
			room(a.Int(0)).IsSpawn = true
		case "has_stairs":
			room(a.Int(0)).IsStairs = true
		case "room_width":
			room(a.Int(0)).Width = a.Int(1)
		case "room_height":
			room(a.Int(0)).Height = a.Int(1)
		case "room_gx":
			room(a.Int(0)).GX = a.Int(1)
		case "room_gy":
			room(a.Int(0)).GY = a.Int(1)
		case "item_in":
			r := room(a.Int(1))
			r.Items = append(r.Items, a.Int(0))
		case "item_is":
			t.ItemTypes[a.Int(0)] = a.Text(1)
		case "enemy_in":
			r := room(a.Int(1))
			r.Enemies = append(r.Enemies, a.Int(0))
		case "enemy_is":
			t.EnemyTypes[a.Int(0)] = a.Text(1)
		case "trap_in":
			r := room(a.Int(1))
			r.Traps = append(r.Traps, a.Int(0))
		case "trap_is":
			t.TrapTypes[a.Int(0)] = a.Text(1)
		}
	}

	return t
}
