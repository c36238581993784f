// Package cli implements the webcomb command-line interface.
//
// This package provides commands for analyzing descriptor forests produced
// by the file scanners, validating serialized analyses, listing resolved
// elements, and rendering the behavior composition graph. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - analyze: Resolve a descriptor forest into a serialized analysis
//   - validate: Check a serialized analysis against the versioned schema
//   - elements: List resolved elements with their merged members
//   - graph: Render the element/behavior composition graph
//   - cache: Manage the analysis result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/webcomb/webcomb/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

const (
	// appName is the application name used for directories and display.
	appName = "webcomb"
)
