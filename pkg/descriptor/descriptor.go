// Package descriptor defines the structural model produced by the file
// scanners and consumed by the analysis core.
//
// # Overview
//
// Each parsed source file becomes a [Document] holding the entities declared
// in it (elements, behaviors, nested scopes) and its dependency edges
// (imports, related documents). The full input to an analysis is an ordered
// forest of top-level documents.
//
// The descriptor set is a closed union distinguished by [Descriptor.Kind]:
//
//   - [Document]: one source scope, optionally carrying a URL
//   - [Element]: a component definition, keyed by tag name
//   - [Behavior]: a mixin contributing properties/attributes/events
//   - [InlineDocument]: an embedded scope with no URL of its own
//   - [Import]: a dependency edge to another document
//
// Dispatch points must switch exhaustively over the concrete types; a
// descriptor outside this set is a programming error, not valid input.
//
// # Sharing
//
// Documents nest, and the forest is acyclic along the containment relation.
// Several positions in the forest may reference the same *Element or
// *Behavior object by pointer identity; the analysis layer relies on that
// identity to deduplicate revisits and to detect ambiguous attribution.
package descriptor

// Kind identifies the concrete type of a Descriptor.
type Kind int

const (
	// KindDocument is a parsed source file or virtual sub-scope.
	KindDocument Kind = iota
	// KindElement is a component definition.
	KindElement
	// KindBehavior is a mixin definition.
	KindBehavior
	// KindInlineDocument is an embedded scope without its own URL.
	KindInlineDocument
	// KindImport is a dependency edge to another document.
	KindImport
)

// String returns the serialized name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	case KindBehavior:
		return "behavior"
	case KindInlineDocument:
		return "inline-document"
	case KindImport:
		return "import"
	}
	return "unknown"
}

// Descriptor is any node in the input forest. The concrete types form a
// closed set; see the package documentation.
type Descriptor interface {
	Kind() Kind
}

// Item is a named member of an element or behavior (a property, attribute,
// or event). Names are unique within a single descriptor's own list;
// cross-descriptor duplicates are resolved by the merge engine.
type Item struct {
	Name        string
	Type        string
	Description string

	// Provenance names the behavior an inherited item came from.
	// Empty for items declared locally on the owning descriptor.
	Provenance string
}

// BehaviorRef is one entry of a behaviors list: either a symbolic name to
// be resolved against the behavior index, or a direct pointer. When Ref is
// non-nil it takes precedence over Name.
type BehaviorRef struct {
	Name string
	Ref  *Behavior
}

// ByName creates a symbolic behavior reference.
func ByName(name string) BehaviorRef { return BehaviorRef{Name: name} }

// ByRef creates a direct behavior reference.
func ByRef(b *Behavior) BehaviorRef { return BehaviorRef{Ref: b} }

// Document represents one parsed source file or virtual sub-scope.
//
// URL may be empty for anonymous inline scopes. Entities lists the child
// descriptors declared directly in this document, in declaration order.
// Dependencies lists imported or related descriptors, typically Import or
// Document values. Both lists may themselves contain nested documents.
type Document struct {
	URL          string
	Entities     []Descriptor
	Dependencies []Descriptor
}

// Kind returns KindDocument.
func (*Document) Kind() Kind { return KindDocument }

// Element is a component definition.
//
// TagName is the element's unique key when present; elements without a tag
// name are analyzed but not indexed by tag. Behaviors lists the mixins the
// element composes, in declaration order.
type Element struct {
	TagName     string
	Description string
	Properties  []Item
	Attributes  []Item
	Events      []Item
	Behaviors   []BehaviorRef
}

// Kind returns KindElement.
func (*Element) Kind() Kind { return KindElement }

// Behavior is a mixin definition. ClassName is its identifying key when
// present; unnamed behaviors can only be referenced directly, never
// symbolically. A behavior's own Behaviors list enables multi-level
// composition.
type Behavior struct {
	ClassName   string
	Description string
	Properties  []Item
	Attributes  []Item
	Events      []Item
	Behaviors   []BehaviorRef
}

// Kind returns KindBehavior.
func (*Behavior) Kind() Kind { return KindBehavior }

// InlineDocument is a document embedded without its own URL, such as an
// inline style or script block treated as its own scope. Entities and
// dependencies have the same meaning as on Document.
type InlineDocument struct {
	Entities     []Descriptor
	Dependencies []Descriptor
}

// Kind returns KindInlineDocument.
func (*InlineDocument) Kind() Kind { return KindInlineDocument }

// Import is a dependency edge to another document.
type Import struct {
	URL string
}

// Kind returns KindImport.
func (*Import) Kind() Kind { return KindImport }
