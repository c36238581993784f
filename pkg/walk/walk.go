// Package walk implements depth-first traversal of a descriptor forest.
//
// # Overview
//
// [Forest] visits every node of an ordered list of top-level documents in
// preorder, broadcasting each node to a set of pluggable visitors. A
// document's entities are walked before its dependencies, in list order;
// nested documents and inline documents recurse. Elements, behaviors, and
// imports are leaves: their behaviors lists form a separate graph that is
// flattened by the analysis layer, not walked here.
//
// Visitors receive the current ancestor [Path] alongside each node. The
// path is threaded through the recursion by capacity-clipped append, so a
// visitor may retain the slice it was handed without it being overwritten
// by later descents.
//
// # Visitors
//
// A visitor implements one handler per descriptor kind plus a Done hook
// called exactly once after the full forest is traversed. Embed
// [BaseVisitor] to get no-op defaults and override only the handlers of
// interest:
//
//	type tagCounter struct {
//	    walk.BaseVisitor
//	    n int
//	}
//
//	func (c *tagCounter) Element(e *descriptor.Element, _ walk.Path) error {
//	    c.n++
//	    return nil
//	}
package walk

import (
	"github.com/webcomb/webcomb/pkg/descriptor"
	"github.com/webcomb/webcomb/pkg/errors"
)

// Path is the chain of ancestor descriptors for the node being visited,
// outermost first. The visited node itself is not included. Visitors must
// treat the slice as read-only.
type Path []descriptor.Descriptor

// OwnerURL returns the URL of the nearest enclosing document: the last
// entry in the path that is a *Document with a non-empty URL. The second
// return is false when no such ancestor exists.
func (p Path) OwnerURL() (string, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if d, ok := p[i].(*descriptor.Document); ok && d.URL != "" {
			return d.URL, true
		}
	}
	return "", false
}

// Visitor receives forest nodes during traversal. Handlers are invoked in
// visitor-registration order for every node of the matching kind; Done is
// called once per visitor after the walk completes, also in registration
// order. Any non-nil error aborts the walk immediately.
type Visitor interface {
	Document(d *descriptor.Document, path Path) error
	InlineDocument(d *descriptor.InlineDocument, path Path) error
	Element(e *descriptor.Element, path Path) error
	Behavior(b *descriptor.Behavior, path Path) error
	Import(i *descriptor.Import, path Path) error
	Done() error
}

// BaseVisitor provides no-op implementations of every Visitor method.
type BaseVisitor struct{}

// Document does nothing.
func (BaseVisitor) Document(*descriptor.Document, Path) error { return nil }

// InlineDocument does nothing.
func (BaseVisitor) InlineDocument(*descriptor.InlineDocument, Path) error { return nil }

// Element does nothing.
func (BaseVisitor) Element(*descriptor.Element, Path) error { return nil }

// Behavior does nothing.
func (BaseVisitor) Behavior(*descriptor.Behavior, Path) error { return nil }

// Import does nothing.
func (BaseVisitor) Import(*descriptor.Import, Path) error { return nil }

// Done does nothing.
func (BaseVisitor) Done() error { return nil }

var _ Visitor = BaseVisitor{}

// Forest traverses the documents depth-first in preorder, broadcasting
// each node to every visitor, then calls each visitor's Done hook. The
// walker assumes a stable snapshot: the forest must not be mutated for the
// duration of one walk.
func Forest(docs []*descriptor.Document, visitors ...Visitor) error {
	for _, d := range docs {
		if err := walkNode(d, nil, visitors); err != nil {
			return err
		}
	}
	for _, v := range visitors {
		if err := v.Done(); err != nil {
			return err
		}
	}
	return nil
}

func walkNode(n descriptor.Descriptor, path Path, visitors []Visitor) error {
	switch d := n.(type) {
	case *descriptor.Document:
		for _, v := range visitors {
			if err := v.Document(d, path); err != nil {
				return err
			}
		}
		// Clip capacity so sibling descents never overwrite a path a
		// visitor may have retained.
		child := append(path[:len(path):len(path)], d)
		return walkChildren(d.Entities, d.Dependencies, child, visitors)

	case *descriptor.InlineDocument:
		for _, v := range visitors {
			if err := v.InlineDocument(d, path); err != nil {
				return err
			}
		}
		child := append(path[:len(path):len(path)], d)
		return walkChildren(d.Entities, d.Dependencies, child, visitors)

	case *descriptor.Element:
		for _, v := range visitors {
			if err := v.Element(d, path); err != nil {
				return err
			}
		}
		return nil

	case *descriptor.Behavior:
		for _, v := range visitors {
			if err := v.Behavior(d, path); err != nil {
				return err
			}
		}
		return nil

	case *descriptor.Import:
		for _, v := range visitors {
			if err := v.Import(d, path); err != nil {
				return err
			}
		}
		return nil
	}

	// Unreachable with a well-typed forest.
	return errors.New(errors.ErrCodeUnknownDescriptor, "walker encountered descriptor of type %T", n)
}

func walkChildren(entities, deps []descriptor.Descriptor, path Path, visitors []Visitor) error {
	for _, c := range entities {
		if err := walkNode(c, path, visitors); err != nil {
			return err
		}
	}
	for _, c := range deps {
		if err := walkNode(c, path, visitors); err != nil {
			return err
		}
	}
	return nil
}
