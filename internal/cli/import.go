package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/raphaelgruber/spheres-go/internal/client"
	"github.com/raphaelgruber/spheres-go/internal/metrics"
	"github.com/raphaelgruber/spheres-go/internal/scene"
	"github.com/raphaelgruber/spheres-go/internal/service"
	"github.com/spf13/cobra"
)

var (
	importFile    string
	importBaseURL string
	importRadius  float64
	importLevels  int
	importFormat  string
	importOutput  string
	importNoColor bool
	importStats   bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Fetch a sphere packing and emit the visible spheres",
	Long: `Fetch a sphere packing from the sphere service (or a local file), filter
spheres that stay well inside the outer boundary, and print the remaining
spheres as scene primitives colored by level.

Examples:
  spheres import
  spheres import --radius 0.8 --levels 7
  spheres import --file spheres.json --format yaml
  curl -s http://apollonian.cloudapp.net/api/spheres/0.8/7 | spheres import --file -
  spheres import --format json --output scene.json --stats`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "read payload from file instead of the service ('-' for stdin)")
	importCmd.Flags().StringVar(&importBaseURL, "base", "", "sphere service base URL (default from SPHERES_BASE_URL)")
	importCmd.Flags().Float64VarP(&importRadius, "radius", "r", 0, "outer sphere radius (default from SPHERES_RADIUS or 0.8)")
	importCmd.Flags().IntVarP(&importLevels, "levels", "l", 0, "recursion levels to request (default from SPHERES_LEVELS or 7)")
	importCmd.Flags().StringVar(&importFormat, "format", "text", "output format: text, json or yaml")
	importCmd.Flags().StringVar(&importOutput, "output", "", "write the scene to a file instead of stdout")
	importCmd.Flags().BoolVar(&importNoColor, "no-color", false, "disable colored text output")
	importCmd.Flags().BoolVar(&importStats, "stats", false, "print pipeline timings to stderr")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := scene.ParseFormat(importFormat)
	if err != nil {
		return err
	}

	radius := cfg.Radius
	if importRadius > 0 {
		radius = importRadius
	}
	levels := cfg.Levels
	if importLevels > 0 {
		levels = importLevels
	}
	baseURL := cfg.BaseURL
	if importBaseURL != "" {
		baseURL = importBaseURL
	}

	var fetcher service.Fetcher
	if importFile != "" {
		fetcher = client.FileFetcher{Path: importFile, Stdin: cmd.InOrStdin()}
	} else {
		fetcher = client.Source{
			Client: client.New(baseURL, cfg.FetchTimeout),
			Radius: radius,
			Levels: levels,
		}
	}

	collector := metrics.NewCollector()
	sc := scene.New()
	svc := service.NewImportService(service.ImportConfig{
		Boundary: service.Boundary{Radius: radius},
		Logger:   logger,
		Metrics:  collector,
		Reporter: service.LogReporter{Logger: logger},
		Placer:   sc,
	})

	result, err := svc.Import(ctx, fetcher)
	if err != nil {
		return fmt.Errorf("import spheres: %w", err)
	}

	out := cmd.OutOrStdout()
	if importOutput != "" {
		f, err := os.Create(importOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	doc := scene.Document{
		Report:     result.Report,
		Primitives: sc.Primitives(),
	}
	opts := scene.WriteOptions{
		Format: format,
		Color:  !importNoColor && isTerminal(out),
	}
	if err := scene.Write(out, doc, opts); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}

	if importOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d spheres to %s\n", len(doc.Primitives), importOutput)
	}
	if importStats {
		printStats(cmd.ErrOrStderr(), collector.Snapshot())
	}

	return nil
}

// printStats displays per-stage timings of the import.
func printStats(w io.Writer, snap metrics.Snapshot) {
	fmt.Fprintf(w, "Import Statistics\n")
	fmt.Fprintf(w, "═════════════════\n")
	fmt.Fprintf(w, "Spheres: %d displayed, %d filtered\n", snap.SpheresDisplayed, snap.SpheresFiltered)

	stages := []struct {
		name string
		op   *metrics.OperationSnapshot
	}{
		{"Fetch", snap.Fetch},
		{"Decode", snap.Decode},
		{"Extract", snap.Extract},
		{"Filter", snap.Filter},
	}
	for _, s := range stages {
		if s.op == nil {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", s.name)
		printOpStats(w, s.op)
	}
}

// printOpStats displays timing statistics for an operation.
func printOpStats(w io.Writer, op *metrics.OperationSnapshot) {
	fmt.Fprintf(w, "  Calls: %d, Errors: %d, Total: %dms\n", op.Count, op.Errors, op.TotalTimeMs)
	fmt.Fprintf(w, "  Time: avg %.1fms, min %dms, max %dms\n",
		op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
}
