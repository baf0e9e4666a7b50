// Package placement assigns tile coordinates to the rooms of a
// topology, either through the ASP placement program or, when the
// solver runs out of time, through a force-directed graph layout.
package placement

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeonforge/internal/rules"
	"github.com/samdwyer/dungeonforge/internal/solver"
	"github.com/samdwyer/dungeonforge/internal/telemetry"
	"github.com/samdwyer/dungeonforge/internal/topology"
)

// DefaultMinGap is the minimum clearance kept between rooms.
const DefaultMinGap = 2

// Placed is a room with its final tile position.
type Placed struct {
	ID       int
	X, Y     int
	Width    int
	Height   int
	IsSpawn  bool
	IsStairs bool
	Items    []int
	Enemies  []int
	Traps    []int
}

// Center returns the center tile of the room.
func (p *Placed) Center() (int, int) {
	return p.X + p.Width/2, p.Y + p.Height/2
}

// Params control one placement run.
type Params struct {
	MinGap    int
	TimeLimit time.Duration // solver soft limit
	Timeout   time.Duration // hard process deadline
	Seed      int64         // seeds the fallback layout; 0 means time-based
}

func (p *Params) defaults() {
	if p.MinGap <= 0 {
		p.MinGap = DefaultMinGap
	}
	if p.TimeLimit <= 0 {
		p.TimeLimit = 5 * time.Second
	}
	if p.Timeout <= 0 {
		p.Timeout = 2 * p.TimeLimit
	}
}

// Placer positions rooms through a solver runner.
type Placer struct {
	runner   solver.Runner
	rulePath string
	log      *zap.Logger
}

// NewPlacer materializes the placement rules and returns a placer.
func NewPlacer(runner solver.Runner, log *zap.Logger) (*Placer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dir, err := os.MkdirTemp("", "dungeonforge-rules-")
	if err != nil {
		return nil, fmt.Errorf("failed to create rules dir: %w", err)
	}
	paths, err := rules.Materialize(dir)
	if err != nil {
		return nil, err
	}
	return &Placer{
		runner:   runner,
		rulePath: paths[rules.PlacementFile],
		log:      log,
	}, nil
}

// Place computes a tile position for every room of the topology. All
// positions are normalized so the minimum x and y are zero.
func (p *Placer) Place(ctx context.Context, topo *topology.Topology, params Params) (map[int]*Placed, error) {
	params.defaults()

	tracer := telemetry.Tracer("placement")
	ctx, span := tracer.Start(ctx, "placement.place")
	defer span.End()

	positions, err := p.solvePositions(ctx, topo, params)
	method := "solver"
	if err != nil || len(positions) == 0 {
		if err != nil {
			p.log.Warn("placement solver unavailable, using force-directed layout", zap.Error(err))
		} else {
			p.log.Warn("placement solver returned no positions, using force-directed layout")
		}
		placed := fallbackLayout(topo, params.MinGap, params.Seed)
		span.SetAttributes(attribute.String("placement.method", "layout"))
		return placed, nil
	}

	placed := make(map[int]*Placed, len(topo.Rooms))
	for id, room := range topo.Rooms {
		pos, ok := positions[id]
		if !ok {
			continue
		}
		placed[id] = &Placed{
			ID:       id,
			X:        pos[0],
			Y:        pos[1],
			Width:    room.Width,
			Height:   room.Height,
			IsSpawn:  room.IsSpawn,
			IsStairs: room.IsStairs,
			Items:    room.Items,
			Enemies:  room.Enemies,
			Traps:    room.Traps,
		}
	}
	normalize(placed)

	span.SetAttributes(
		attribute.String("placement.method", method),
		attribute.Int("placement.rooms", len(placed)),
	)
	return placed, nil
}

// solvePositions runs the ASP placement program and parses room_x/room_y.
func (p *Placer) solvePositions(ctx context.Context, topo *topology.Topology, params Params) (map[int][2]int, error) {
	bound := 0
	for _, room := range topo.Rooms {
		bound += max(room.Width, room.Height) + params.MinGap
	}

	var facts solver.Facts
	facts.Const("bound_x", bound)
	facts.Const("bound_y", bound)
	facts.Const("min_gap", params.MinGap)
	for _, room := range sortedRooms(topo) {
		facts.Add("room", room.ID)
		facts.Add("room_w", room.ID, room.Width)
		facts.Add("room_h", room.ID, room.Height)
	}
	for _, conn := range topo.Connections {
		facts.Add("connection", conn[0], conn[1])
	}

	job := solver.Job{
		Files:     []string{p.rulePath},
		Facts:     facts.String(),
		Models:    1,
		OptMode:   "optN",
		TimeLimit: params.TimeLimit,
		Timeout:   params.Timeout,
	}
	res, err := p.runner.Solve(ctx, job)
	if err != nil {
		return nil, err
	}

	positions := make(map[int][2]int)
	for _, a := range res.All("room_x") {
		pos := positions[a.Int(0)]
		pos[0] = a.Int(1)
		positions[a.Int(0)] = pos
	}
	for _, a := range res.All("room_y") {
		pos := positions[a.Int(0)]
		pos[1] = a.Int(1)
		positions[a.Int(0)] = pos
	}
	return positions, nil
}

func sortedRooms(topo *topology.Topology) []*topology.Room {
	out := make([]*topology.Room, 0, len(topo.Rooms))
	for _, r := range topo.Rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// normalize shifts all rooms so the minimum x and y are zero.
func normalize(placed map[int]*Placed) {
	if len(placed) == 0 {
		return
	}
	minX, minY := int(^uint(0)>>1), int(^uint(0)>>1)
	for _, r := range placed {
		minX = min(minX, r.X)
		minY = min(minY, r.Y)
	}
	for _, r := range placed {
		r.X -= minX
		r.Y -= minY
	}
}
