package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samdwyer/dungeonforge/internal/render"
	"github.com/samdwyer/dungeonforge/internal/world"
)

var (
	generateOut     string
	generateSummary bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a dungeon and render it as ASCII",
	Long: `Runs the full pipeline (solver topology, placement, corridors) and
renders the resulting tile grid as ASCII, to stdout or to a file.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "write the ASCII map to a file instead of stdout")
	generateCmd.Flags().BoolVar(&generateSummary, "summary", false, "print the room-by-room summary as well")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	gen, err := newPipeline()
	if err != nil {
		return err
	}

	d, err := gen.Generate(cmd.Context(), pipelineParams())
	if err != nil {
		return err
	}

	grid := world.BuildGrid(d)

	if generateOut != "" {
		if err := os.WriteFile(generateOut, []byte(grid.String()), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", generateOut, err)
		}
		fmt.Printf("Saved to %s\n", generateOut)
	} else {
		fmt.Println(grid.String())
		fmt.Println()
		fmt.Println(world.Legend())
	}

	if generateSummary {
		fmt.Println()
		fmt.Print(render.Summary(d.Topology))
	}
	return nil
}
