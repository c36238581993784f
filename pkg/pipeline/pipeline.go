// Package pipeline provides the core analysis pipeline for webcomb.
//
// This package implements the complete decode → analyze → export pipeline
// used by the CLI and by embedders. Centralizing it keeps caching and
// observability behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Parse the serialized descriptor forest emitted by the scanners
//  2. Analyze: Resolve behaviors, merge items, and build the lookup indices
//  3. Export: Serialize the resolved analysis in the versioned output format
//
// Each stage can be run independently or as part of the complete pipeline.
// The serialized result is cached by a hash of the forest bytes and the
// marker configuration, so unchanged inputs skip all three stages.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, forestBytes, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Serialized)
//
// Run individual stages:
//
//	docs, err := runner.Decode(forestBytes)
//	a, err := runner.Analyze(ctx, docs, opts)
//	data, err := runner.Export(a)
package pipeline

import (
	"time"

	"github.com/webcomb/webcomb/pkg/analysis"
)

// DefaultTTL bounds the lifetime of cached analyses. Forest hashes make
// stale positives impossible, so the TTL exists only to stop the cache
// directory from growing without bound.
const DefaultTTL = 24 * time.Hour

// Options configures one pipeline execution.
type Options struct {
	// Markers overrides the manifest basenames used for package
	// attribution. Defaults to analysis.DefaultPackageMarkers.
	Markers []string

	// TTL bounds cache entry lifetime. Zero selects DefaultTTL; negative
	// stores entries without expiry.
	TTL time.Duration

	// SkipCache bypasses the cache for both reads and writes.
	SkipCache bool

	// Validate re-checks the serialized output against the analysis
	// schema before returning it, including cache hits.
	Validate bool

	// Warn, when non-nil, receives each duplicate-tag warning from a
	// fresh resolution. Cache hits produce no warnings.
	Warn func(analysis.DuplicateTag)
}

// withDefaults returns a copy of o with zero fields replaced by defaults.
func (o Options) withDefaults() Options {
	if o.Markers == nil {
		o.Markers = analysis.DefaultPackageMarkers
	}
	switch {
	case o.TTL == 0:
		o.TTL = DefaultTTL
	case o.TTL < 0:
		o.TTL = 0
	}
	return o
}

// Stats reports per-stage durations of a pipeline execution. All fields
// are zero for a cache hit.
type Stats struct {
	DecodeTime  time.Duration
	AnalyzeTime time.Duration
	ExportTime  time.Duration
}

// Result is the outcome of one pipeline execution.
type Result struct {
	// Analysis is the resolved model. Nil when Serialized came from the
	// cache: the cached bytes are the whole result.
	Analysis *analysis.Analysis

	// Serialized is the versioned analysis output.
	Serialized []byte

	// ForestHash identifies the input forest bytes.
	ForestHash string

	// CacheHit reports whether Serialized was served from the cache.
	CacheHit bool

	Stats Stats
}
