package analysis

import "github.com/webcomb/webcomb/pkg/descriptor"

// mergeItems merges a base item list with the item lists contributed by
// flattened behaviors, in resolution order. Base items are kept verbatim
// and are never shadowed. For a name absent from the base, the first
// behavior defining it supplies the item, annotated with that behavior's
// class name as provenance; later behaviors defining the same name are
// ignored. The inputs are never mutated.
func mergeItems(base []descriptor.Item, sources []*descriptor.Behavior, pick func(*descriptor.Behavior) []descriptor.Item) []descriptor.Item {
	out := make([]descriptor.Item, len(base), len(base)+4)
	copy(out, base)

	seen := make(map[string]bool, len(base))
	for _, it := range base {
		seen[it.Name] = true
	}

	for _, src := range sources {
		for _, it := range pick(src) {
			if seen[it.Name] {
				continue
			}
			seen[it.Name] = true
			it.Provenance = src.ClassName
			out = append(out, it)
		}
	}
	return out
}

func pickProperties(b *descriptor.Behavior) []descriptor.Item { return b.Properties }
func pickAttributes(b *descriptor.Behavior) []descriptor.Item { return b.Attributes }
func pickEvents(b *descriptor.Behavior) []descriptor.Item     { return b.Events }
