package analysis

import (
	"path"

	"github.com/webcomb/webcomb/pkg/descriptor"
	"github.com/webcomb/webcomb/pkg/errors"
	"github.com/webcomb/webcomb/pkg/walk"
)

// packageGatherer records directories containing a package manifest marker
// file (by default bower.json or package.json) among the analyzed
// documents. Membership is deduplicated; ordering is imposed later by the
// longest-prefix attribution in the facade.
type packageGatherer struct {
	walk.BaseVisitor
	markers map[string]bool
	dirs    map[string]bool
}

func newPackageGatherer(markers []string) *packageGatherer {
	g := &packageGatherer{
		markers: make(map[string]bool, len(markers)),
		dirs:    make(map[string]bool),
	}
	for _, m := range markers {
		g.markers[m] = true
	}
	return g
}

// Document records the containing directory when the document's basename
// is a known manifest marker.
func (g *packageGatherer) Document(d *descriptor.Document, _ walk.Path) error {
	if d.URL == "" {
		return nil
	}
	if g.markers[path.Base(d.URL)] {
		g.dirs[path.Dir(d.URL)] = true
	}
	return nil
}

// Dirs returns the gathered package directories in unspecified order.
func (g *packageGatherer) Dirs() []string {
	out := make([]string, 0, len(g.dirs))
	for dir := range g.dirs {
		out = append(out, dir)
	}
	return out
}

// entityGatherer records every element and behavior together with its
// owning path: the URL of the nearest enclosing document. Revisiting the
// same object through a shared reference is a no-op as long as the owning
// path agrees; a disagreement means the forest is structurally ambiguous
// and aborts the walk. First-seen order is preserved, and is significant
// for the facade's last-write-wins tag index.
type entityGatherer struct {
	walk.BaseVisitor

	// owners is identity-keyed: the same descriptor object reached through
	// two positions maps to a single entry.
	owners map[descriptor.Descriptor]string

	elements  []gatheredElement
	behaviors []gatheredBehavior
}

type gatheredElement struct {
	el    *descriptor.Element
	owner string
}

type gatheredBehavior struct {
	bh    *descriptor.Behavior
	owner string
}

func newEntityGatherer() *entityGatherer {
	return &entityGatherer{owners: make(map[descriptor.Descriptor]string)}
}

// Element records an element and its owning path.
func (g *entityGatherer) Element(e *descriptor.Element, path walk.Path) error {
	owner, fresh, err := g.record(e, path, "element", e.TagName)
	if err != nil || !fresh {
		return err
	}
	g.elements = append(g.elements, gatheredElement{el: e, owner: owner})
	return nil
}

// Behavior records a behavior and its owning path.
func (g *entityGatherer) Behavior(b *descriptor.Behavior, path walk.Path) error {
	owner, fresh, err := g.record(b, path, "behavior", b.ClassName)
	if err != nil || !fresh {
		return err
	}
	g.behaviors = append(g.behaviors, gatheredBehavior{bh: b, owner: owner})
	return nil
}

// record resolves the owning path for d and registers it. fresh is false
// for an idempotent revisit through a shared reference.
func (g *entityGatherer) record(d descriptor.Descriptor, path walk.Path, kind, name string) (owner string, fresh bool, err error) {
	owner, ok := path.OwnerURL()
	if !ok {
		return "", false, errors.New(errors.ErrCodeUnattributed,
			"%s %q has no enclosing document with a URL", kind, name)
	}
	if prev, seen := g.owners[d]; seen {
		if prev == owner {
			return owner, false, nil
		}
		return "", false, errors.New(errors.ErrCodeAmbiguousPath,
			"%s %q is reachable from two documents: %q and %q", kind, name, prev, owner)
	}
	g.owners[d] = owner
	return owner, true, nil
}
