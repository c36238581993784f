package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/webcomb/webcomb/pkg/analysis"
	"github.com/webcomb/webcomb/pkg/cache"
	"github.com/webcomb/webcomb/pkg/descriptor"
	pkgio "github.com/webcomb/webcomb/pkg/io"
	"github.com/webcomb/webcomb/pkg/observability"
	"github.com/webcomb/webcomb/pkg/validate"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, log.Default() is used.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete decode → analyze → export pipeline with
// caching. Cache failures degrade to a fresh resolution and are logged,
// never returned.
func (r *Runner) Execute(ctx context.Context, forest []byte, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	result := &Result{ForestHash: cache.Hash(forest)}
	key := cache.ForestKey(forest, opts.Markers)

	if !opts.SkipCache {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		if hit {
			observability.Cache().OnCacheHit(ctx, "analysis")
			if opts.Validate {
				if err := r.validateSerialized(ctx, data); err != nil {
					return nil, err
				}
			}
			result.Serialized = data
			result.CacheHit = true
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "analysis")
	}

	decodeStart := time.Now()
	docs, err := r.Decode(forest)
	if err != nil {
		return nil, err
	}
	result.Stats.DecodeTime = time.Since(decodeStart)

	analyzeStart := time.Now()
	a, err := r.Analyze(ctx, docs, opts)
	if err != nil {
		return nil, err
	}
	result.Analysis = a
	result.Stats.AnalyzeTime = time.Since(analyzeStart)

	r.Logger.Info("resolved forest",
		"documents", len(docs),
		"elements", len(a.Elements()),
		"duration", result.Stats.AnalyzeTime)

	exportStart := time.Now()
	data, err := r.Export(a)
	if err != nil {
		return nil, err
	}
	if opts.Validate {
		if err := r.validateSerialized(ctx, data); err != nil {
			return nil, err
		}
	}
	result.Serialized = data
	result.Stats.ExportTime = time.Since(exportStart)

	if !opts.SkipCache {
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "analysis", len(data))
		}
	}

	return result, nil
}

// Decode parses a serialized descriptor forest.
func (r *Runner) Decode(forest []byte) ([]*descriptor.Document, error) {
	return descriptor.ParseForest(forest)
}

// Analyze resolves a decoded forest into a queryable analysis, firing the
// registered analysis hooks around the build.
func (r *Runner) Analyze(ctx context.Context, docs []*descriptor.Document, opts Options) (*analysis.Analysis, error) {
	opts = opts.withDefaults()
	hooks := observability.Analysis()

	hooks.OnBuildStart(ctx, len(docs))
	start := time.Now()

	a, err := analysis.New(docs, analysis.Options{
		PackageMarkers: opts.Markers,
		Logger:         r.Logger.Warnf,
	})
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, time.Since(start), err)
		return nil, fmt.Errorf("analyze: %w", err)
	}
	hooks.OnBuildComplete(ctx, len(a.Elements()), time.Since(start), nil)

	if opts.Warn != nil {
		for _, w := range a.Warnings() {
			opts.Warn(w)
		}
	}
	return a, nil
}

// Export serializes a resolved analysis in the versioned output format.
func (r *Runner) Export(a *analysis.Analysis) ([]byte, error) {
	return pkgio.MarshalAnalysis(a)
}

// validateSerialized checks serialized bytes against the analysis schema,
// firing the registered validation hooks.
func (r *Runner) validateSerialized(ctx context.Context, data []byte) error {
	hooks := observability.Analysis()
	hooks.OnValidateStart(ctx, len(data))
	start := time.Now()
	err := validate.Analysis(data)
	hooks.OnValidateComplete(ctx, time.Since(start), err)
	return err
}
