package topology

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeonforge/internal/solver"
)

// stubRunner replays canned solver results, recording every job.
type stubRunner struct {
	results []*solver.Result
	errs    []error
	jobs    []solver.Job
}

func (s *stubRunner) Solve(ctx context.Context, job solver.Job) (*solver.Result, error) {
	i := len(s.jobs)
	s.jobs = append(s.jobs, job)
	if i >= len(s.results) {
		return nil, errors.New("unexpected solve call")
	}
	if s.errs[i] != nil {
		return nil, s.errs[i]
	}
	return s.results[i], nil
}

func mustParse(t *testing.T, output string) *solver.Result {
	t.Helper()
	res, err := solver.ParseOutput(output)
	require.NoError(t, err)
	return res
}

const floorAnswer = `Answer: 1
room(1) room(2) room(3) corridor(1,2) corridor(2,3)
is_spawn(1) has_stairs(3)
room_width(1,5) room_height(1,4) room_gx(1,0) room_gy(1,0)
room_width(2,7) room_height(2,6) room_gx(2,1) room_gy(2,0)
room_gx(3,2) room_gy(3,1)
item_in(1,2) item_is(1,potion) enemy_in(1,3) enemy_is(1,goblin)
trap_in(1,2) trap_is(1,spikes)
SATISFIABLE
`

func TestFromResult(t *testing.T) {
	topo := FromResult(mustParse(t, floorAnswer), 4)

	require.Len(t, topo.Rooms, 3)
	assert.Equal(t, 4, topo.GridSize)
	assert.Equal(t, [][2]int{{1, 2}, {2, 3}}, topo.Connections)

	r1 := topo.Rooms[1]
	require.NotNil(t, r1)
	assert.True(t, r1.IsSpawn)
	assert.Equal(t, 5, r1.Width)
	assert.Equal(t, 4, r1.Height)

	r2 := topo.Rooms[2]
	require.NotNil(t, r2)
	assert.Equal(t, 1, r2.GX)
	assert.Equal(t, []int{1}, r2.Items)
	assert.Equal(t, []int{1}, r2.Traps)

	r3 := topo.Rooms[3]
	require.NotNil(t, r3)
	assert.True(t, r3.IsStairs)
	assert.Equal(t, defaultWidth, r3.Width, "missing footprint falls back to the default")
	assert.Equal(t, defaultHeight, r3.Height)
	assert.Equal(t, 2, r3.GX)
	assert.Equal(t, 1, r3.GY)

	assert.Equal(t, "potion", topo.ItemTypes[1])
	assert.Equal(t, "goblin", topo.EnemyTypes[1])
	assert.Equal(t, "spikes", topo.TrapTypes[1])

	assert.Equal(t, r1, topo.Spawn())
	assert.Equal(t, r3, topo.Stairs())
}

func TestFromResultRoomOnDemand(t *testing.T) {
	topo := FromResult(mustParse(t, "Answer: 1\nis_spawn(9)\nSATISFIABLE\n"), 4)
	require.Len(t, topo.Rooms, 1)
	assert.True(t, topo.Rooms[9].IsSpawn)
}

func TestGenerate(t *testing.T) {
	stub := &stubRunner{
		results: []*solver.Result{mustParse(t, floorAnswer)},
		errs:    []error{nil},
	}
	gen, err := NewGenerator(stub, nil)
	require.NoError(t, err)

	topo, err := gen.Generate(context.Background(), Params{Rooms: 3, GridSize: 4, Seed: 42})
	require.NoError(t, err)

	assert.Len(t, topo.Rooms, 3)
	assert.Equal(t, int64(42), topo.Seed)

	require.Len(t, stub.jobs, 1)
	job := stub.jobs[0]
	assert.Equal(t, 1, job.Models)
	assert.Equal(t, int64(42), job.Seed)
	assert.Equal(t, "rnd", job.SignDef)
	assert.Equal(t, 0.5, job.RandFreq)
	assert.Equal(t, map[string]int{"num_rooms": 3, "grid_size": 4}, job.Constants)
	require.Len(t, job.Files, 1)
	assert.Contains(t, job.Files[0], "floor.lp")
}

func TestGenerateRetriesUnsatWithFreshSeed(t *testing.T) {
	stub := &stubRunner{
		results: []*solver.Result{nil, mustParse(t, floorAnswer)},
		errs:    []error{solver.ErrUnsat, nil},
	}
	gen, err := NewGenerator(stub, nil)
	require.NoError(t, err)

	topo, err := gen.Generate(context.Background(), Params{Rooms: 3, Seed: 7, MaxAttempts: 3})
	require.NoError(t, err)
	assert.Len(t, topo.Rooms, 3)

	require.Len(t, stub.jobs, 2)
	assert.Equal(t, int64(7), stub.jobs[0].Seed)
	assert.NotEqual(t, int64(7), stub.jobs[1].Seed, "retry must reseed")
}

func TestGenerateGivesUpAfterMaxAttempts(t *testing.T) {
	stub := &stubRunner{
		results: []*solver.Result{nil, nil},
		errs:    []error{solver.ErrUnsat, solver.ErrUnsat},
	}
	gen, err := NewGenerator(stub, nil)
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), Params{MaxAttempts: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, solver.ErrUnsat)
	assert.Len(t, stub.jobs, 2)
}

func TestGenerateDoesNotRetrySolverFailures(t *testing.T) {
	boom := errors.New("binary not found")
	stub := &stubRunner{
		results: []*solver.Result{nil},
		errs:    []error{boom},
	}
	gen, err := NewGenerator(stub, nil)
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), Params{MaxAttempts: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, stub.jobs, 1, "non-unsat errors are permanent")
}
