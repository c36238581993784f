package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/webcomb/webcomb/pkg/analysis"
	"github.com/webcomb/webcomb/pkg/descriptor"
)

// elementsOpts holds the command-line flags for the elements command.
type elementsOpts struct {
	configPath string
	markers    []string
	pkg        string // restrict listing to one package directory
	tag        string // show a single element in detail
}

// newElementsCmd creates the elements command.
func newElementsCmd() *cobra.Command {
	var opts elementsOpts

	cmd := &cobra.Command{
		Use:   "elements <forest.json>",
		Short: "List resolved elements with their merged members",
		Long: `List resolved elements with their merged members.

Without flags, every tag-indexed element is listed with member counts.
--package restricts the listing to elements attributed to one package
directory; --tag prints a single element with each property, attribute,
and event, marking inherited members with their origin behavior.

Examples:
  webcomb elements forest.json
  webcomb elements forest.json --package /bower_components/paper-input
  webcomb elements forest.json --tag x-app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runElements(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to webcomb.toml")
	cmd.Flags().StringSliceVar(&opts.markers, "markers", nil, "package manifest basenames for attribution")
	cmd.Flags().StringVar(&opts.pkg, "package", "", "list only elements in this package directory")
	cmd.Flags().StringVar(&opts.tag, "tag", "", "show a single element in detail")

	return cmd
}

func runElements(ctx context.Context, forestPath string, opts elementsOpts) error {
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

	if opts.tag != "" {
		re, ok := a.Element(opts.tag)
		if !ok {
			printError("no element registered for tag %q", opts.tag)
			return fmt.Errorf("unknown tag %q", opts.tag)
		}
		printElement(re)
		return nil
	}

	els := a.Elements()
	if opts.pkg != "" {
		var ok bool
		els, ok = a.ElementsForPackage(opts.pkg)
		if !ok {
			printInfo("No elements attributed to %s", opts.pkg)
			return nil
		}
	}

	fmt.Println(StyleTitle.Render("Elements"))
	for _, re := range els {
		fmt.Printf("  %s %s\n",
			StyleHighlight.Render(re.TagName),
			StyleDim.Render(re.OwnerURL))
		printDetail("%d properties, %d attributes, %d events, %d behaviors",
			len(re.Properties), len(re.Attributes), len(re.Events), len(re.Behaviors))
	}
	return nil
}

// printElement prints one resolved element with every merged member.
func printElement(re *analysis.ResolvedElement) {
	fmt.Println(StyleTitle.Render(re.TagName) + " " + StyleDim.Render(re.OwnerURL))
	printItems("properties", re.Properties)
	printItems("attributes", re.Attributes)
	printItems("events", re.Events)
}

func printItems(heading string, items []descriptor.Item) {
	if len(items) == 0 {
		return
	}
	fmt.Println("  " + StyleValue.Render(heading))
	for _, it := range items {
		line := "    " + it.Name
		if it.Provenance != "" {
			line += " " + StyleDim.Render("(from "+it.Provenance+")")
		}
		fmt.Println(line)
	}
}
