package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeonforge/internal/render"
	"github.com/samdwyer/dungeonforge/internal/world"
)

var (
	examplesCount  int
	examplesOutDir string
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Generate a batch of example dungeons",
	Long: `Generates a batch of dungeons and writes, per dungeon, the room
graph PNG and the ASCII map, plus a manifest.json describing the batch.`,
	RunE: runExamples,
}

func init() {
	examplesCmd.Flags().IntVarP(&examplesCount, "count", "n", 10, "number of dungeons to generate")
	examplesCmd.Flags().StringVar(&examplesOutDir, "outdir", "output", "output directory")
}

// manifestEntry describes one generated example.
type manifestEntry struct {
	ID          uuid.UUID `json:"id"`
	Seed        int64     `json:"seed"`
	Rooms       int       `json:"rooms"`
	Corridors   int       `json:"corridors"`
	ASCIIPath   string    `json:"ascii_path"`
	GraphPath   string    `json:"graph_path"`
	GeneratedAt time.Time `json:"generated_at"`
}

func runExamples(cmd *cobra.Command, args []string) error {
	asciiDir := filepath.Join(examplesOutDir, "ascii")
	graphDir := filepath.Join(examplesOutDir, "graph")
	for _, dir := range []string{asciiDir, graphDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	gen, err := newPipeline()
	if err != nil {
		return err
	}

	var manifest []manifestEntry
	failures := 0
	for i := 1; i <= examplesCount; i++ {
		name := fmt.Sprintf("dungeon_%02d", i)

		d, err := gen.Generate(cmd.Context(), pipelineParams())
		if err != nil {
			logger.Warn("example generation failed", zap.String("name", name), zap.Error(err))
			failures++
			continue
		}

		asciiPath := filepath.Join(asciiDir, name+".txt")
		grid := world.BuildGrid(d)
		if err := os.WriteFile(asciiPath, []byte(grid.String()), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", asciiPath, err)
		}

		graphPath := filepath.Join(graphDir, name+".png")
		if err := render.WriteGraphPNG(d.Topology, graphPath); err != nil {
			return fmt.Errorf("failed to draw %s: %w", graphPath, err)
		}

		manifest = append(manifest, manifestEntry{
			ID:          uuid.New(),
			Seed:        d.Topology.Seed,
			Rooms:       len(d.Rooms),
			Corridors:   len(d.Connections()),
			ASCIIPath:   asciiPath,
			GraphPath:   graphPath,
			GeneratedAt: time.Now().UTC(),
		})
		fmt.Printf("  %s\n", asciiPath)
	}

	manifestPath := filepath.Join(examplesOutDir, "manifest.json")
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", manifestPath, err)
	}

	fmt.Printf("\nDone: %d generated, %d failed, manifest at %s\n",
		len(manifest), failures, manifestPath)
	return nil
}
