package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/dungeonforge/internal/audit"
	"github.com/samdwyer/dungeonforge/internal/render"
	"github.com/samdwyer/dungeonforge/internal/solver"
	"github.com/samdwyer/dungeonforge/internal/topology"
)

var graphOut string

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Generate a topology and draw it as a room-graph PNG",
	Long: `Runs only the topology stage and draws the room graph: nodes at
their coarse grid coordinates, edges for corridors.`,
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVarP(&graphOut, "out", "o", "dungeon_graph.png", "output PNG path")
}

func runGraph(cmd *cobra.Command, args []string) error {
	runner := solver.NewClingo(cfg.Solver.Binary, logger)
	gen, err := topology.NewGenerator(runner, logger)
	if err != nil {
		return err
	}

	p := pipelineParams()
	topo, err := gen.Generate(cmd.Context(), topology.Params{
		Rooms:       p.Rooms,
		GridSize:    p.GridSize,
		Seed:        p.Seed,
		RandFreq:    p.RandFreq,
		MaxAttempts: p.MaxAttempts,
		Timeout:     p.SolverTimeout,
	})
	if err != nil {
		return err
	}
	if err := audit.CheckTopology(topo); err != nil {
		return err
	}

	fmt.Print(render.Summary(topo))

	if err := render.WriteGraphPNG(topo, graphOut); err != nil {
		return fmt.Errorf("failed to draw graph: %w", err)
	}
	fmt.Printf("\nSaved to %s\n", graphOut)
	return nil
}
