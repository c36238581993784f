// Package analysis resolves a descriptor forest into a queryable semantic
// model.
//
// # Overview
//
// [New] runs a single walker pass over the forest with two visitors: one
// gathering package directories from manifest marker files, one gathering
// every element and behavior together with its owning path. Each gathered
// element is then resolved: its behaviors list is flattened depth-first
// (diamond-safe, each behavior exactly once) and its properties,
// attributes, and events are merged with the flattened behaviors'
// contributions under fixed precedence rules.
//
// # Precedence
//
// An element's own items always win. For names the element does not
// define, the first behavior in resolution order that defines the name
// contributes it, annotated with that behavior's class name as provenance.
// Later behaviors never override an already-resolved name.
//
// # Indices
//
// The resulting [Analysis] exposes lookups by tag name (last definition
// wins, with duplicates recorded as warnings), by package directory
// (longest-prefix attribution of the element's owning path), by behavior
// class name, and by top-level document URL. All indices are built once
// at construction; an Analysis is immutable and safe for concurrent reads.
//
// # Basic Usage
//
//	docs, err := descriptor.ParseForest(data)
//	if err != nil {
//	    return err
//	}
//	a, err := analysis.New(docs, analysis.Options{})
//	if err != nil {
//	    return err
//	}
//	if el, ok := a.Element("x-app"); ok {
//	    fmt.Println(len(el.Properties))
//	}
package analysis
