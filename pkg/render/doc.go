// Package render groups the visualization backends for resolved analyses.
//
// # Overview
//
// Rendering is strictly downstream of resolution: backends consume a built
// analysis and never feed back into it.
//
// The [behaviorgraph] subpackage draws the element/behavior composition
// graph as a directed Graphviz diagram. Elements appear as boxes, behaviors
// as ellipses, and edges point from each definition to the behaviors it
// composes directly.
//
//	dot := behaviorgraph.ToDOT(a, behaviorgraph.Options{})
//	svg, err := behaviorgraph.RenderSVG(dot)
//
// SVG and PNG rendering runs Graphviz in-process via WebAssembly; no
// external installation is required.
//
// [behaviorgraph]: https://pkg.go.dev/github.com/webcomb/webcomb/pkg/render/behaviorgraph
package render
