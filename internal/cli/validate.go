package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/webcomb/webcomb/pkg/errors"
	"github.com/webcomb/webcomb/pkg/observability"
	"github.com/webcomb/webcomb/pkg/validate"
)

// newValidateCmd creates the validate command.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <analysis.json>",
		Short: "Check a serialized analysis against the versioned schema",
		Long: `Check a serialized analysis against the versioned schema.

All structural violations are reported, not just the first, and the
schema_version field must match a supported 1.x.x version. Validation is
independent of any analysis run; any file in the serialized format can be
checked.

Examples:
  webcomb validate analysis.json
  webcomb analyze forest.json -o out.json && webcomb validate out.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), args[0])
		},
	}
}

func runValidate(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	hooks := observability.Analysis()
	hooks.OnValidateStart(ctx, len(data))
	start := time.Now()
	err = validate.Analysis(data)
	hooks.OnValidateComplete(ctx, time.Since(start), err)

	if err != nil {
		printError("%s is not a valid serialized analysis", path)
		printDetail("%s", errors.UserMessage(err))
		return err
	}
	printSuccess("%s is a valid serialized analysis", path)
	return nil
}
