// Package behaviorgraph renders the element/behavior composition graph.
//
// Elements are drawn as boxes and behaviors as ellipses; an edge points
// from each definition to the behaviors it composes directly. The DOT
// output can be rendered in-process with [RenderSVG] or [RenderPNG] using
// [github.com/goccy/go-graphviz], with no external Graphviz installation.
package behaviorgraph

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-graphviz"

	"github.com/webcomb/webcomb/pkg/analysis"
	"github.com/webcomb/webcomb/pkg/descriptor"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes owning paths in element labels.
	Detailed bool
}

// ToDOT converts the composition graph of an analysis to Graphviz DOT.
// Every tag-indexed element contributes a node plus edges to the behaviors
// it declares directly; behavior-to-behavior composition edges follow.
// Unnamed behaviors are skipped: they have no stable identity to draw.
func ToDOT(a *analysis.Analysis, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph behaviors {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	behaviors := make(map[string]*descriptor.Behavior)

	for _, re := range a.Elements() {
		label := re.TagName
		if opts.Detailed && re.OwnerURL != "" {
			label += "\n" + re.OwnerURL
		}
		fmt.Fprintf(&buf, "  %q [shape=box, style=\"rounded,filled\", fillcolor=white, label=%q];\n", re.TagName, label)

		for _, b := range directBehaviors(a, re.Source.Behaviors) {
			behaviors[b.ClassName] = b
			fmt.Fprintf(&buf, "  %q -> %q;\n", re.TagName, b.ClassName)
		}
		// Flattened transitive behaviors still need nodes even when no
		// element references them directly.
		for _, b := range re.Behaviors {
			if b.ClassName != "" {
				behaviors[b.ClassName] = b
			}
		}
	}

	buf.WriteString("\n")
	for _, name := range slices.Sorted(maps.Keys(behaviors)) {
		fmt.Fprintf(&buf, "  %q [shape=ellipse, style=filled, fillcolor=lightgrey];\n", name)
		for _, dep := range directBehaviors(a, behaviors[name].Behaviors) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", name, dep.ClassName)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// directBehaviors resolves a behaviors list one level deep, keeping only
// named behaviors.
func directBehaviors(a *analysis.Analysis, refs []descriptor.BehaviorRef) []*descriptor.Behavior {
	var out []*descriptor.Behavior
	for _, ref := range refs {
		b := ref.Ref
		if b == nil {
			b, _ = a.Behavior(ref.Name)
		}
		if b != nil && b.ClassName != "" {
			out = append(out, b)
		}
	}
	return out
}
