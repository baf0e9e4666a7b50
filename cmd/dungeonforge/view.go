package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/samdwyer/dungeonforge/internal/ui"
	"github.com/samdwyer/dungeonforge/internal/world"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Generate a dungeon and browse it in the terminal",
	Long: `Opens an interactive terminal viewer on a freshly generated
dungeon. Arrow keys pan, r regenerates, q quits.`,
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	gen, err := newPipeline()
	if err != nil {
		return err
	}

	build := func(ctx context.Context) (*world.Grid, error) {
		d, err := gen.Generate(ctx, pipelineParams())
		if err != nil {
			return nil, err
		}
		return world.BuildGrid(d), nil
	}

	grid, err := build(cmd.Context())
	if err != nil {
		return err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	viewer := ui.NewViewer(screen, grid, func() (*world.Grid, error) {
		return build(cmd.Context())
	})
	return viewer.Run()
}
