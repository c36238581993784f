package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/webcomb/webcomb/pkg/analysis"
	"github.com/webcomb/webcomb/pkg/cache"
	"github.com/webcomb/webcomb/pkg/pipeline"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	configPath string   // explicit config file path
	output     string   // output file path (stdout if "-")
	markers    []string // package marker basenames, overriding config
	noCache    bool     // bypass the analysis cache
}

// newAnalyzeCmd creates the analyze command.
func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze <forest.json>",
		Short: "Resolve a descriptor forest into a serialized analysis",
		Long: `Resolve a descriptor forest into a serialized analysis.

The input is the JSON descriptor forest emitted by the file scanners. The
output is the versioned serialized analysis consumed by downstream tooling
and checked by "webcomb validate".

Results are cached by a hash of the forest bytes and the marker
configuration; pass --no-cache to force a fresh resolution.

Examples:
  webcomb analyze forest.json                   # Print analysis to stdout
  webcomb analyze forest.json -o analysis.json  # Write to a file
  webcomb analyze forest.json --markers package.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output path for the serialized analysis (default stdout)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to webcomb.toml")
	cmd.Flags().StringSliceVar(&opts.markers, "markers", nil, "package manifest basenames for attribution")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the analysis cache")

	return cmd
}

func runAnalyze(ctx context.Context, forestPath string, opts analyzeOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	markers := cfg.markers()
	if len(opts.markers) > 0 {
		markers = opts.markers
	}
	output := cfg.Output
	if opts.output != "" {
		output = opts.output
	}

	raw, err := os.ReadFile(forestPath)
	if err != nil {
		return fmt.Errorf("read forest %s: %w", forestPath, err)
	}

	c, err := openCache(cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer c.Close()

	p := newProgress(logger)
	runner := pipeline.NewRunner(c, logger)
	result, err := runner.Execute(ctx, raw, pipeline.Options{
		Markers:   markers,
		TTL:       time.Duration(cfg.Cache.TTLHours) * time.Hour,
		SkipCache: opts.noCache,
		Warn: func(w analysis.DuplicateTag) {
			printWarning("duplicate tag %q: %s shadows %s", w.Tag, w.Kept, w.Shadowed)
		},
	})
	if err != nil {
		return err
	}
	if result.CacheHit {
		logger.Debugf("Using cached analysis for %s", forestPath)
	} else {
		p.done(fmt.Sprintf("Resolved %d elements", len(result.Analysis.Elements())))
	}

	if output == "" || output == "-" {
		_, err = os.Stdout.Write(result.Serialized)
		return err
	}
	if err := os.WriteFile(output, result.Serialized, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Analysis written")
	printFile(output)
	return nil
}

// openCache opens the configured analysis cache, or a null cache when
// caching is disabled.
func openCache(cfg Config, disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := cfg.cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}
