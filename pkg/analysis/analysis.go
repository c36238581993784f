package analysis

import (
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/webcomb/webcomb/pkg/descriptor"
	"github.com/webcomb/webcomb/pkg/walk"
)

// DefaultPackageMarkers are the manifest basenames that mark a directory
// as a package root.
var DefaultPackageMarkers = []string{"bower.json", "package.json"}

// Options configures analysis construction.
type Options struct {
	// PackageMarkers overrides the manifest basenames used for package
	// attribution. Defaults to DefaultPackageMarkers.
	PackageMarkers []string

	// Logger receives non-fatal diagnostics (duplicate tag names).
	// Defaults to discarding them; Warnings records them regardless.
	Logger func(msg string, args ...any)
}

// WithDefaults returns a copy of opts with zero fields replaced by
// defaults.
func (o Options) WithDefaults() Options {
	if o.PackageMarkers == nil {
		o.PackageMarkers = DefaultPackageMarkers
	}
	if o.Logger == nil {
		o.Logger = func(string, ...any) {}
	}
	return o
}

// ResolvedElement is a read-only view of an element whose item lists have
// been merged with its flattened behaviors. All fields are copied or
// derived at construction; the source descriptor is never mutated.
type ResolvedElement struct {
	// Source is the original descriptor, shared by reference.
	Source *descriptor.Element

	TagName  string
	OwnerURL string

	// Behaviors is the flattened, resolved behavior list in resolution
	// order.
	Behaviors []*descriptor.Behavior

	// Merged item lists. Items contributed by a behavior carry that
	// behavior's class name as Provenance.
	Properties []descriptor.Item
	Attributes []descriptor.Item
	Events     []descriptor.Item
}

// DuplicateTag records a tag name defined by more than one element. The
// later-processed element wins the tag index; the earlier one is shadowed.
type DuplicateTag struct {
	Tag      string
	Kept     string // owning path of the element kept in the index
	Shadowed string // owning path of the element it displaced
}

// Analysis is the resolved, queryable semantic model of one descriptor
// forest. All indices are built once during [New]; an Analysis is
// immutable afterward and safe for concurrent reads. It retains references
// into the input forest, which must outlive it.
type Analysis struct {
	byTag     map[string]*ResolvedElement
	elements  []*ResolvedElement
	byPackage map[string][]*ResolvedElement
	behaviors behaviorIndex
	documents map[string]*descriptor.Document
	pkgDirs   []string
	warnings  []DuplicateTag
}

// New builds an Analysis from an ordered forest of top-level documents.
//
// Construction runs one walker pass with the package and entity gatherers,
// then resolves every gathered element against the behavior index. It
// fails fast on a structurally ambiguous forest, an unattributable
// element or behavior, or an unresolved behavior reference; no partial
// result is returned.
func New(docs []*descriptor.Document, opts Options) (*Analysis, error) {
	opts = opts.WithDefaults()

	pg := newPackageGatherer(opts.PackageMarkers)
	eg := newEntityGatherer()
	if err := walk.Forest(docs, pg, eg); err != nil {
		return nil, err
	}

	a := &Analysis{
		byTag:     make(map[string]*ResolvedElement),
		byPackage: make(map[string][]*ResolvedElement),
		behaviors: buildBehaviorIndex(eg.behaviors),
		documents: make(map[string]*descriptor.Document, len(docs)),
		pkgDirs:   byPrefixLength(pg.Dirs()),
	}

	for _, g := range eg.elements {
		flat, err := a.behaviors.flatten(g.el.Behaviors)
		if err != nil {
			return nil, err
		}
		re := &ResolvedElement{
			Source:     g.el,
			TagName:    g.el.TagName,
			OwnerURL:   g.owner,
			Behaviors:  flat,
			Properties: mergeItems(g.el.Properties, flat, pickProperties),
			Attributes: mergeItems(g.el.Attributes, flat, pickAttributes),
			Events:     mergeItems(g.el.Events, flat, pickEvents),
		}
		a.elements = append(a.elements, re)

		if re.TagName != "" {
			if prev, ok := a.byTag[re.TagName]; ok {
				a.warnings = append(a.warnings, DuplicateTag{Tag: re.TagName, Kept: re.OwnerURL, Shadowed: prev.OwnerURL})
				opts.Logger("duplicate tag %q: definition at %s shadows %s", re.TagName, re.OwnerURL, prev.OwnerURL)
			}
			a.byTag[re.TagName] = re
		}

		dir := longestPrefix(a.pkgDirs, re.OwnerURL)
		a.byPackage[dir] = append(a.byPackage[dir], re)
	}

	// Document index from the top-level forest only; later entries win on
	// duplicate URLs. Anonymous documents are not addressable by path.
	for _, d := range docs {
		if d.URL != "" {
			a.documents[d.URL] = d
		}
	}

	return a, nil
}

// Element returns the resolved element registered for the tag name.
// With duplicate definitions, the last-processed element wins; see
// Warnings.
func (a *Analysis) Element(tag string) (*ResolvedElement, bool) {
	re, ok := a.byTag[tag]
	return re, ok
}

// Elements returns every tag-indexed resolved element, ordered by tag
// name for determinism.
func (a *Analysis) Elements() []*ResolvedElement {
	out := make([]*ResolvedElement, 0, len(a.byTag))
	for _, tag := range slices.Sorted(maps.Keys(a.byTag)) {
		out = append(out, a.byTag[tag])
	}
	return out
}

// ElementsForPackage returns the resolved elements attributed to the
// package directory, in insertion order. Elements not covered by any
// gathered package directory live in the "" bucket.
func (a *Analysis) ElementsForPackage(dir string) ([]*ResolvedElement, bool) {
	els, ok := a.byPackage[dir]
	return els, ok
}

// Behavior returns the behavior registered under the class name.
func (a *Analysis) Behavior(name string) (*descriptor.Behavior, bool) {
	b, ok := a.behaviors[name]
	return b, ok
}

// Document returns the top-level document registered for the path.
func (a *Analysis) Document(path string) (*descriptor.Document, bool) {
	d, ok := a.documents[path]
	return d, ok
}

// PackageDirs returns the gathered package directories, longest first.
func (a *Analysis) PackageDirs() []string {
	return slices.Clone(a.pkgDirs)
}

// Warnings returns the duplicate tag names observed during construction,
// in processing order. Duplicates are not fatal: the tag index keeps the
// later definition.
func (a *Analysis) Warnings() []DuplicateTag {
	return slices.Clone(a.warnings)
}

// byPrefixLength orders directories longest first so that a linear scan
// finds the most specific prefix. Ties break lexicographically for
// determinism.
func byPrefixLength(dirs []string) []string {
	sort.Slice(dirs, func(i, j int) bool {
		if len(dirs[i]) != len(dirs[j]) {
			return len(dirs[i]) > len(dirs[j])
		}
		return dirs[i] < dirs[j]
	})
	return dirs
}

// longestPrefix returns the first (longest) directory that is a string
// prefix of owner, or "" when none match.
func longestPrefix(dirs []string, owner string) string {
	for _, dir := range dirs {
		if strings.HasPrefix(owner, dir) {
			return dir
		}
	}
	return ""
}
