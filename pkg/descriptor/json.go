package descriptor

import (
	"encoding/json"

	"github.com/webcomb/webcomb/pkg/errors"
)

// node is the wire representation of a descriptor in the forest interchange
// format. All descriptor kinds share one shape, discriminated by Kind;
// fields that do not apply to a kind are simply absent.
type node struct {
	Kind         string            `json:"kind"`
	URL          string            `json:"url,omitempty"`
	TagName      string            `json:"tagname,omitempty"`
	ClassName    string            `json:"classname,omitempty"`
	Description  string            `json:"description,omitempty"`
	Properties   []item            `json:"properties,omitempty"`
	Attributes   []item            `json:"attributes,omitempty"`
	Events       []item            `json:"events,omitempty"`
	Behaviors    []json.RawMessage `json:"behaviors,omitempty"`
	Entities     []json.RawMessage `json:"entities,omitempty"`
	Dependencies []json.RawMessage `json:"dependencies,omitempty"`
}

type item struct {
	Name          string `json:"name"`
	Type          string `json:"type,omitempty"`
	Description   string `json:"description,omitempty"`
	InheritedFrom string `json:"inherited_from,omitempty"`
}

// ParseForest decodes the forest interchange format: a JSON array of
// document nodes, each tagged with a "kind" field. Shared descriptors
// cannot be expressed on the wire; every decoded node is a distinct object.
//
// A top-level node that is not a document, or any node with an unrecognized
// kind, is rejected with ErrCodeInvalidForest.
func ParseForest(data []byte) ([]*Document, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidForest, err, "forest must be a JSON array of documents")
	}

	docs := make([]*Document, 0, len(raw))
	for i, r := range raw {
		d, err := decodeNode(r)
		if err != nil {
			return nil, err
		}
		doc, ok := d.(*Document)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidForest, "top-level entry %d is %s, want document", i, d.Kind())
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// MarshalForest encodes documents in the forest interchange format with
// two-space indentation. Round-trips with [ParseForest] except for pointer
// identity of shared descriptors, which the wire format cannot carry.
func MarshalForest(docs []*Document) ([]byte, error) {
	out := make([]node, len(docs))
	for i, d := range docs {
		n, err := encodeNode(d)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return json.MarshalIndent(out, "", "  ")
}

func decodeNode(data json.RawMessage) (Descriptor, error) {
	var n node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidForest, err, "decode descriptor")
	}

	switch n.Kind {
	case "document":
		entities, err := decodeList(n.Entities)
		if err != nil {
			return nil, err
		}
		deps, err := decodeList(n.Dependencies)
		if err != nil {
			return nil, err
		}
		return &Document{URL: n.URL, Entities: entities, Dependencies: deps}, nil

	case "inline-document":
		entities, err := decodeList(n.Entities)
		if err != nil {
			return nil, err
		}
		deps, err := decodeList(n.Dependencies)
		if err != nil {
			return nil, err
		}
		return &InlineDocument{Entities: entities, Dependencies: deps}, nil

	case "element":
		refs, err := decodeRefs(n.Behaviors)
		if err != nil {
			return nil, err
		}
		return &Element{
			TagName:     n.TagName,
			Description: n.Description,
			Properties:  decodeItems(n.Properties),
			Attributes:  decodeItems(n.Attributes),
			Events:      decodeItems(n.Events),
			Behaviors:   refs,
		}, nil

	case "behavior":
		refs, err := decodeRefs(n.Behaviors)
		if err != nil {
			return nil, err
		}
		return &Behavior{
			ClassName:   n.ClassName,
			Description: n.Description,
			Properties:  decodeItems(n.Properties),
			Attributes:  decodeItems(n.Attributes),
			Events:      decodeItems(n.Events),
			Behaviors:   refs,
		}, nil

	case "import":
		return &Import{URL: n.URL}, nil
	}

	return nil, errors.New(errors.ErrCodeInvalidForest, "unrecognized descriptor kind %q", n.Kind)
}

func decodeList(raw []json.RawMessage) ([]Descriptor, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]Descriptor, len(raw))
	for i, r := range raw {
		d, err := decodeNode(r)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// decodeRefs decodes behaviors list entries. A JSON string is a symbolic
// reference; an object is an embedded behavior node.
func decodeRefs(raw []json.RawMessage) ([]BehaviorRef, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]BehaviorRef, len(raw))
	for i, r := range raw {
		var name string
		if err := json.Unmarshal(r, &name); err == nil {
			out[i] = ByName(name)
			continue
		}
		d, err := decodeNode(r)
		if err != nil {
			return nil, err
		}
		b, ok := d.(*Behavior)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidForest, "behaviors entry is %s, want behavior or name", d.Kind())
		}
		out[i] = ByRef(b)
	}
	return out, nil
}

func decodeItems(items []item) []Item {
	if len(items) == 0 {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Item{Name: it.Name, Type: it.Type, Description: it.Description, Provenance: it.InheritedFrom}
	}
	return out
}

func encodeNode(d Descriptor) (node, error) {
	switch v := d.(type) {
	case *Document:
		entities, err := encodeList(v.Entities)
		if err != nil {
			return node{}, err
		}
		deps, err := encodeList(v.Dependencies)
		if err != nil {
			return node{}, err
		}
		return node{Kind: "document", URL: v.URL, Entities: entities, Dependencies: deps}, nil

	case *InlineDocument:
		entities, err := encodeList(v.Entities)
		if err != nil {
			return node{}, err
		}
		deps, err := encodeList(v.Dependencies)
		if err != nil {
			return node{}, err
		}
		return node{Kind: "inline-document", Entities: entities, Dependencies: deps}, nil

	case *Element:
		refs, err := encodeRefs(v.Behaviors)
		if err != nil {
			return node{}, err
		}
		return node{
			Kind:        "element",
			TagName:     v.TagName,
			Description: v.Description,
			Properties:  encodeItems(v.Properties),
			Attributes:  encodeItems(v.Attributes),
			Events:      encodeItems(v.Events),
			Behaviors:   refs,
		}, nil

	case *Behavior:
		refs, err := encodeRefs(v.Behaviors)
		if err != nil {
			return node{}, err
		}
		return node{
			Kind:        "behavior",
			ClassName:   v.ClassName,
			Description: v.Description,
			Properties:  encodeItems(v.Properties),
			Attributes:  encodeItems(v.Attributes),
			Events:      encodeItems(v.Events),
			Behaviors:   refs,
		}, nil

	case *Import:
		return node{Kind: "import", URL: v.URL}, nil
	}

	return node{}, errors.New(errors.ErrCodeUnknownDescriptor, "cannot encode descriptor of type %T", d)
}

func encodeList(list []Descriptor) ([]json.RawMessage, error) {
	if len(list) == 0 {
		return nil, nil
	}
	out := make([]json.RawMessage, len(list))
	for i, d := range list {
		n, err := encodeNode(d)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

func encodeRefs(refs []BehaviorRef) ([]json.RawMessage, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	out := make([]json.RawMessage, len(refs))
	for i, ref := range refs {
		if ref.Ref != nil {
			n, err := encodeNode(ref.Ref)
			if err != nil {
				return nil, err
			}
			data, err := json.Marshal(n)
			if err != nil {
				return nil, err
			}
			out[i] = data
			continue
		}
		data, err := json.Marshal(ref.Name)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

func encodeItems(items []Item) []item {
	if len(items) == 0 {
		return nil
	}
	out := make([]item, len(items))
	for i, it := range items {
		out[i] = item{Name: it.Name, Type: it.Type, Description: it.Description, InheritedFrom: it.Provenance}
	}
	return out
}
