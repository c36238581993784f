// Package pkg provides the core libraries for the webcomb component
// analyzer.
//
// # Overview
//
// Webcomb resolves the semantic model of component-oriented markup: given a
// forest of parsed document descriptors, it flattens behavior composition,
// merges inherited properties, attributes, and events into each element, and
// builds the lookup indices that downstream tooling queries.
//
// # Architecture
//
// The typical data flow through webcomb:
//
//	Descriptor Forest (JSON, from the file scanners)
//	         ↓
//	    [descriptor] package (decode the interchange format)
//	         ↓
//	    [walk] package (depth-first traversal with pluggable visitors)
//	         ↓
//	    [analysis] package (behavior flattening, merge, indices)
//	         ↓
//	    [io] package (versioned serialized analysis)
//	         ↓
//	    [validate] package (schema validation of serialized output)
//
// # Quick Start
//
// Decode a forest and resolve it:
//
//	import (
//	    "github.com/webcomb/webcomb/pkg/analysis"
//	    pkgio "github.com/webcomb/webcomb/pkg/io"
//	)
//
//	docs, _ := pkgio.ReadForestFile("forest.json")
//	a, _ := analysis.New(docs, analysis.Options{})
//
//	el, ok := a.Element("x-tabs")
//	for _, p := range el.Properties {
//	    fmt.Println(p.Name, p.Provenance)
//	}
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, _ := runner.Execute(ctx, forestBytes, pipeline.Options{})
//
// # Main Packages
//
// [descriptor] - The structural model: documents, elements, behaviors,
// inline documents, and imports, plus the JSON interchange codec.
//
// [walk] - Depth-first forest traversal broadcasting nodes to visitors with
// their ancestor paths.
//
// [analysis] - The resolution core: behavior flattening, item merging with
// provenance, and the tag, package, behavior, and document indices.
//
// [io] - Forest import and versioned analysis export.
//
// [validate] - Schema validation of serialized analyses, including the
// major-version gate.
//
// [pipeline] - The complete decode → analyze → export pipeline with caching,
// shared by the CLI and embedders.
//
// [cache] - File-backed and null cache implementations keyed by forest
// content hashes.
//
// [render/behaviorgraph] - Graphviz rendering of the element/behavior
// composition graph.
//
// [observability] - Pluggable hooks fired around analysis builds, schema
// validation, and cache activity.
//
// [errors] - Structured errors with machine-readable codes.
//
// [descriptor]: https://pkg.go.dev/github.com/webcomb/webcomb/pkg/descriptor
// [walk]: https://pkg.go.dev/github.com/webcomb/webcomb/pkg/walk
// [analysis]: https://pkg.go.dev/github.com/webcomb/webcomb/pkg/analysis
// [io]: https://pkg.go.dev/github.com/webcomb/webcomb/pkg/io
// [validate]: https://pkg.go.dev/github.com/webcomb/webcomb/pkg/validate
// [pipeline]: https://pkg.go.dev/github.com/webcomb/webcomb/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/webcomb/webcomb/pkg/cache
// [render/behaviorgraph]: https://pkg.go.dev/github.com/webcomb/webcomb/pkg/render/behaviorgraph
// [observability]: https://pkg.go.dev/github.com/webcomb/webcomb/pkg/observability
// [errors]: https://pkg.go.dev/github.com/webcomb/webcomb/pkg/errors
package pkg
