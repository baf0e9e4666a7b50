// Package dungeon runs the full generation pipeline: solver topology,
// room placement, and corridor calculation.
package dungeon

import (
	"context"
	"errors"
	"image"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeonforge/internal/audit"
	"github.com/samdwyer/dungeonforge/internal/corridor"
	"github.com/samdwyer/dungeonforge/internal/placement"
	"github.com/samdwyer/dungeonforge/internal/solver"
	"github.com/samdwyer/dungeonforge/internal/telemetry"
	"github.com/samdwyer/dungeonforge/internal/topology"
)

// ErrNoRooms is returned when generation yields an empty floor.
var ErrNoRooms = errors.New("dungeon has no rooms")

// Dungeon is a fully calculated floor.
type Dungeon struct {
	// Topology is the stage-1 room graph the floor was built from.
	Topology *topology.Topology
	// Rooms are the placed rooms keyed by id.
	Rooms map[int]*placement.Placed
	// CorridorTiles holds the Bresenham line between the centers of
	// each connected room pair.
	CorridorTiles [][]image.Point
}

// Connections returns the room graph edges.
func (d *Dungeon) Connections() [][2]int {
	return d.Topology.Connections
}

// Width returns the horizontal extent of the floor in tiles.
func (d *Dungeon) Width() int {
	w := 0
	for _, r := range d.Rooms {
		w = max(w, r.X+r.Width)
	}
	if w == 0 {
		return 0
	}
	return w + 1
}

// Height returns the vertical extent of the floor in tiles.
func (d *Dungeon) Height() int {
	h := 0
	for _, r := range d.Rooms {
		h = max(h, r.Y+r.Height)
	}
	if h == 0 {
		return 0
	}
	return h + 1
}

// Params control a full pipeline run.
type Params struct {
	Rooms       int
	GridSize    int
	MinGap      int
	Seed        int64
	RandFreq    float64
	MaxAttempts int
	// SolverTimeout bounds each individual solver call.
	SolverTimeout time.Duration
}

// Generator wires the pipeline stages together over one solver runner.
type Generator struct {
	topo   *topology.Generator
	placer *placement.Placer
	log    *zap.Logger
}

// NewGenerator builds a pipeline on top of the given solver runner.
func NewGenerator(runner solver.Runner, log *zap.Logger) (*Generator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	topo, err := topology.NewGenerator(runner, log)
	if err != nil {
		return nil, err
	}
	placer, err := placement.NewPlacer(runner, log)
	if err != nil {
		return nil, err
	}
	return &Generator{topo: topo, placer: placer, log: log}, nil
}

// Generate runs the three stages and assembles the dungeon. The parsed
// topology is audited before placement; an answer set that violates the
// floor invariants aborts the run.
func (g *Generator) Generate(ctx context.Context, p Params) (*Dungeon, error) {
	tracer := telemetry.Tracer("dungeon")
	ctx, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	start := time.Now()

	topo, err := g.topo.Generate(ctx, topology.Params{
		Rooms:       p.Rooms,
		GridSize:    p.GridSize,
		Seed:        p.Seed,
		RandFreq:    p.RandFreq,
		MaxAttempts: p.MaxAttempts,
		Timeout:     p.SolverTimeout,
	})
	if err != nil {
		return nil, err
	}
	if len(topo.Rooms) == 0 {
		return nil, ErrNoRooms
	}
	if err := audit.CheckTopology(topo); err != nil {
		g.log.Error("solver answer rejected by audit", zap.Error(err))
		return nil, err
	}

	placed, err := g.placer.Place(ctx, topo, placement.Params{
		MinGap:  p.MinGap,
		Timeout: p.SolverTimeout,
		Seed:    topo.Seed,
	})
	if err != nil {
		return nil, err
	}

	d := &Dungeon{
		Topology:      topo,
		Rooms:         placed,
		CorridorTiles: centerPaths(placed, topo.Connections),
	}

	span.SetAttributes(
		attribute.Int("dungeon.rooms", len(d.Rooms)),
		attribute.Int("dungeon.corridors", len(d.CorridorTiles)),
		attribute.Int("dungeon.width", d.Width()),
		attribute.Int("dungeon.height", d.Height()),
		attribute.Int64("dungeon.generation_ms", time.Since(start).Milliseconds()),
	)
	return d, nil
}

// centerPaths draws the raw corridor line between the centers of every
// connected room pair. Connections with missing rooms are skipped.
func centerPaths(placed map[int]*placement.Placed, connections [][2]int) [][]image.Point {
	paths := make([][]image.Point, 0, len(connections))
	for _, conn := range connections {
		r1, ok1 := placed[conn[0]]
		r2, ok2 := placed[conn[1]]
		if !ok1 || !ok2 {
			continue
		}
		x1, y1 := r1.Center()
		x2, y2 := r2.Center()
		paths = append(paths, corridor.Bresenham(image.Pt(x1, y1), image.Pt(x2, y2)))
	}
	return paths
}
