package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeonforge/internal/topology"
)

func chainTopology() *topology.Topology {
	return &topology.Topology{
		Rooms: map[int]*topology.Room{
			1: {ID: 1, Width: 6, Height: 6, IsSpawn: true},
			2: {ID: 2, Width: 6, Height: 6},
			3: {ID: 3, Width: 6, Height: 6, IsStairs: true},
		},
		Connections: [][2]int{{1, 2}, {2, 3}},
	}
}

func TestCheckTopologyValid(t *testing.T) {
	assert.NoError(t, CheckTopology(chainTopology()))
}

func TestCheckTopologyReachableAgainstEdgeDirection(t *testing.T) {
	// Corridors are undirected; a corridor stated 3->1 still makes 3
	// reachable from the spawn at 1.
	topo := chainTopology()
	topo.Connections = [][2]int{{1, 2}, {3, 1}}
	assert.NoError(t, CheckTopology(topo))
}

func TestCheckTopologyUnreachableRoom(t *testing.T) {
	topo := chainTopology()
	topo.Connections = [][2]int{{1, 2}}

	err := CheckTopology(topo)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTopology)
	assert.Contains(t, err.Error(), "room 3 is unreachable")
}

func TestCheckTopologyIsolatedSpawnOnly(t *testing.T) {
	// A single spawn+stairs room with no corridors is the degenerate
	// valid floor.
	topo := &topology.Topology{
		Rooms: map[int]*topology.Room{
			1: {ID: 1, IsSpawn: true, IsStairs: true},
		},
	}
	assert.NoError(t, CheckTopology(topo))
}

func TestCheckTopologyNoSpawn(t *testing.T) {
	topo := chainTopology()
	topo.Rooms[1].IsSpawn = false

	err := CheckTopology(topo)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTopology)
	assert.Contains(t, err.Error(), "exactly one spawn room, found 0")
}

func TestCheckTopologyDuplicateStairs(t *testing.T) {
	topo := chainTopology()
	topo.Rooms[2].IsStairs = true

	err := CheckTopology(topo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one stairs room, found 2")
}

func TestCheckTopologySelfLoop(t *testing.T) {
	topo := chainTopology()
	topo.Connections = append(topo.Connections, [2]int{2, 2})

	err := CheckTopology(topo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corridor from room 2 to itself")
}

func TestCheckTopologyDanglingEndpoint(t *testing.T) {
	topo := chainTopology()
	topo.Connections = append(topo.Connections, [2]int{3, 9})

	err := CheckTopology(topo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corridor endpoint 9 is not a room")
}

func TestCheckTopologyCollectsAllViolations(t *testing.T) {
	topo := chainTopology()
	topo.Rooms[3].IsStairs = false
	topo.Connections = [][2]int{{1, 2}, {2, 2}}

	err := CheckTopology(topo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stairs")
	assert.Contains(t, err.Error(), "itself")
	assert.Contains(t, err.Error(), "room 3 is unreachable")
}
