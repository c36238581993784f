package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/webcomb/webcomb/pkg/analysis"
	"github.com/webcomb/webcomb/pkg/descriptor"
	"github.com/webcomb/webcomb/pkg/render/behaviorgraph"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	configPath string
	markers    []string
	format     string // dot, svg, or png
	output     string
	detailed   bool
}

// newGraphCmd creates the graph command.
func newGraphCmd() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <forest.json>",
		Short: "Render the element/behavior composition graph",
		Long: `Render the element/behavior composition graph.

Elements are drawn as boxes and behaviors as ellipses, with edges from
each definition to the behaviors it composes. SVG and PNG rendering runs
Graphviz in-process; no external installation is required.

Examples:
  webcomb graph forest.json                         # DOT to stdout
  webcomb graph forest.json --format svg -o out.svg
  webcomb graph forest.json --format png -o out.png --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to webcomb.toml")
	cmd.Flags().StringSliceVar(&opts.markers, "markers", nil, "package manifest basenames for attribution")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "dot", "output format: dot, svg, or png")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output path (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include owning paths in element labels")

	return cmd
}

func runGraph(ctx context.Context, forestPath string, opts graphOpts) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	markers := cfg.markers()
	if len(opts.markers) > 0 {
		markers = opts.markers
	}

	raw, err := os.ReadFile(forestPath)
	if err != nil {
		return fmt.Errorf("read forest %s: %w", forestPath, err)
	}
	docs, err := descriptor.ParseForest(raw)
	if err != nil {
		return err
	}
	a, err := analysis.New(docs, analysis.Options{
		PackageMarkers: markers,
		Logger:         loggerFromContext(ctx).Warnf,
	})
	if err != nil {
		return err
	}

	dot := behaviorgraph.ToDOT(a, behaviorgraph.Options{Detailed: opts.detailed})

	var out []byte
	switch opts.format {
	case "dot":
		out = []byte(dot)
	case "svg", "png":
		spinner := newSpinnerWithContext(ctx, "Rendering "+opts.format+"...")
		spinner.Start()
		if opts.format == "svg" {
			out, err = behaviorgraph.RenderSVG(dot)
		} else {
			out, err = behaviorgraph.RenderPNG(dot)
		}
		spinner.Stop()
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q (want dot, svg, or png)", opts.format)
	}

	if opts.output == "" || opts.output == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Graph written")
	printFile(opts.output)
	return nil
}
