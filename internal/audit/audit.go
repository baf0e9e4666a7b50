// Package audit cross-checks solver answers before they enter the
// pipeline. The structural invariants (single spawn, single stairs,
// corridor endpoints exist, every room reachable) are re-derived in
// process with a small Datalog program, so a bad answer set or a buggy
// rule change is caught at the boundary instead of producing a broken
// dungeon.
package audit

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	"github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"

	"github.com/samdwyer/dungeonforge/internal/topology"
)

// ErrInvalidTopology marks an answer set that violates a structural
// invariant of the floor.
var ErrInvalidTopology = errors.New("invalid topology")

// reachRules derives reachability from the spawn over undirected
// corridors. Corridor facts are appended by the caller; the rules only
// reference link/2 so the program stays valid with zero corridors.
const reachRules = `
reachable(R) :- spawn_room(R).
reachable(B) :- reachable(A), link(A, B).
`

// CheckTopology validates a parsed topology. It returns nil when all
// invariants hold, or an error wrapping ErrInvalidTopology that lists
// every violation found.
func CheckTopology(t *topology.Topology) error {
	var violations []string

	spawns, stairs := 0, 0
	for _, r := range t.Rooms {
		if r.IsSpawn {
			spawns++
		}
		if r.IsStairs {
			stairs++
		}
	}
	if spawns != 1 {
		violations = append(violations, fmt.Sprintf("expected exactly one spawn room, found %d", spawns))
	}
	if stairs != 1 {
		violations = append(violations, fmt.Sprintf("expected exactly one stairs room, found %d", stairs))
	}

	for _, conn := range t.Connections {
		if conn[0] == conn[1] {
			violations = append(violations, fmt.Sprintf("corridor from room %d to itself", conn[0]))
		}
		for _, end := range conn {
			if _, ok := t.Rooms[end]; !ok {
				violations = append(violations, fmt.Sprintf("corridor endpoint %d is not a room", end))
			}
		}
	}

	// Reachability needs a unique spawn; skip the Datalog pass when the
	// floor is already broken at that level.
	if spawns == 1 {
		unreachable, err := unreachableRooms(t)
		if err != nil {
			return fmt.Errorf("topology audit failed: %w", err)
		}
		for _, id := range unreachable {
			violations = append(violations, fmt.Sprintf("room %d is unreachable from the spawn", id))
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidTopology, strings.Join(violations, "; "))
}

// unreachableRooms evaluates the reachability program over the topology
// facts and returns the rooms the derivation never reaches.
func unreachableRooms(t *topology.Topology) ([]int, error) {
	var src strings.Builder
	src.WriteString(reachRules)

	for _, id := range sortedRoomIDs(t) {
		fmt.Fprintf(&src, "room(%d).\n", id)
		if t.Rooms[id].IsSpawn {
			fmt.Fprintf(&src, "spawn_room(%d).\n", id)
		}
	}

	links := 0
	for _, conn := range t.Connections {
		if conn[0] == conn[1] {
			continue
		}
		fmt.Fprintf(&src, "link(%d, %d).\n", conn[0], conn[1])
		fmt.Fprintf(&src, "link(%d, %d).\n", conn[1], conn[0])
		links++
	}
	if links == 0 {
		// link/2 must still be defined for the rules to analyze.
		src.WriteString("link(R, R) :- spawn_room(R).\n")
	}

	unit, err := parse.Unit(strings.NewReader(src.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse audit program: %w", err)
	}
	program, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze audit program: %w", err)
	}

	store := factstore.NewSimpleInMemoryStore()
	if err := engine.EvalProgram(program, store); err != nil {
		return nil, fmt.Errorf("failed to evaluate audit program: %w", err)
	}

	reached := make(map[int]bool)
	query := ast.NewQuery(ast.PredicateSym{Symbol: "reachable", Arity: 1})
	err = store.GetFacts(query, func(a ast.Atom) error {
		if c, ok := a.Args[0].(ast.Constant); ok && c.Type == ast.NumberType {
			reached[int(c.NumValue)] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read reachable facts: %w", err)
	}

	var unreachable []int
	for _, id := range sortedRoomIDs(t) {
		if !reached[id] {
			unreachable = append(unreachable, id)
		}
	}
	return unreachable, nil
}

func sortedRoomIDs(t *topology.Topology) []int {
	ids := make([]int, 0, len(t.Rooms))
	for id := range t.Rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
