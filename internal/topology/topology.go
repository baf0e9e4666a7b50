// Package topology generates the room graph of a floor by delegating
// the combinatorial search to the external ASP solver.
package topology

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeonforge/internal/rules"
	"github.com/samdwyer/dungeonforge/internal/solver"
	"github.com/samdwyer/dungeonforge/internal/telemetry"
)

const (
	// DefaultRooms is the number of rooms generated when unspecified.
	DefaultRooms = 7
	// DefaultGridSize is the side of the coarse placement grid.
	DefaultGridSize = 4

	defaultWidth  = 6
	defaultHeight = 6
)

// Room is one room of the floor as described by the solver: a coarse
// grid position, a footprint in tiles, an optional role, and content.
type Room struct {
	ID       int
	GX, GY   int
	Width    int
	Height   int
	IsSpawn  bool
	IsStairs bool
	Items    []int
	Enemies  []int
	Traps    []int
}

// Topology is the room graph of one floor.
type Topology struct {
	Rooms       map[int]*Room
	Connections [][2]int
	ItemTypes   map[int]string
	EnemyTypes  map[int]string
	TrapTypes   map[int]string
	GridSize    int
	Seed        int64
}

// Spawn returns the spawn room, or nil if the solver marked none.
func (t *Topology) Spawn() *Room {
	for _, r := range t.Rooms {
		if r.IsSpawn {
			return r
		}
	}
	return nil
}

// Stairs returns the stairs room, or nil if the solver marked none.
func (t *Topology) Stairs() *Room {
	for _, r := range t.Rooms {
		if r.IsStairs {
			return r
		}
	}
	return nil
}

// Params control one topology generation run.
type Params struct {
	Rooms       int
	GridSize    int
	Seed        int64 // 0 picks a random seed
	RandFreq    float64
	MaxAttempts int
	Timeout     time.Duration
}

func (p *Params) defaults() {
	if p.Rooms <= 0 {
		p.Rooms = DefaultRooms
	}
	if p.GridSize <= 0 {
		p.GridSize = DefaultGridSize
	}
	if p.RandFreq <= 0 {
		p.RandFreq = 0.5
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}
}

// Generator produces topologies through a solver runner.
type Generator struct {
	runner    solver.Runner
	floorPath string
	log       *zap.Logger
}

// NewGenerator materializes the floor rules and returns a generator.
func NewGenerator(runner solver.Runner, log *zap.Logger) (*Generator, error) {
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
	return &Generator{
		runner:    runner,
		floorPath: paths[rules.FloorFile],
		log:       log,
	}, nil
}

// Generate asks the solver for one floor topology. Unsatisfiable
// attempts are retried with a fresh seed up to MaxAttempts times.
func (g *Generator) Generate(ctx context.Context, p Params) (*Topology, error) {
	p.defaults()

	tracer := telemetry.Tracer("topology")
	ctx, span := tracer.Start(ctx, "topology.generate")
	defer span.End()

	seed := p.Seed
	if seed == 0 {
		seed = randomSeed()
	}

	attempts := 0
	res, err := backoff.Retry(ctx, func() (*solver.Result, error) {
		attempts++
		job := solver.Job{
			Files:  []string{g.floorPath},
			Models: 1,
			Constants: map[string]int{
				"num_rooms": p.Rooms,
				"grid_size": p.GridSize,
			},
			Seed:     seed,
			SignDef:  "rnd",
			RandFreq: p.RandFreq,
			Timeout:  p.Timeout,
		}
		res, err := g.runner.Solve(ctx, job)
		if err != nil {
			if errors.Is(err, solver.ErrUnsat) {
				g.log.Warn("topology unsatisfiable, retrying with new seed",
					zap.Int64("seed", seed), zap.Int("attempt", attempts))
				seed = randomSeed()
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		return res, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(50*time.Millisecond)),
		backoff.WithMaxTries(uint(p.MaxAttempts)),
	)
	if err != nil {
		return nil, fmt.Errorf("topology generation failed after %d attempts: %w", attempts, err)
	}

	topo := FromResult(res, p.GridSize)
	topo.Seed = seed

	span.SetAttributes(
		attribute.Int("topology.rooms", len(topo.Rooms)),
		attribute.Int("topology.connections", len(topo.Connections)),
		attribute.Int("topology.attempts", attempts),
		attribute.Int64("topology.seed", seed),
	)
	g.log.Info("topology generated",
		zap.Int("rooms", len(topo.Rooms)),
		zap.Int("connections", len(topo.Connections)),
		zap.Int64("seed", seed))

	return topo, nil
}

func randomSeed() int64 {
	return rand.Int63n(100000) + 1
}
