package analysis

import (
	"github.com/webcomb/webcomb/pkg/descriptor"
	"github.com/webcomb/webcomb/pkg/errors"
)

// behaviorIndex maps class names to behavior descriptors. Behaviors
// without a class name are simply unindexed; they can still participate
// through direct references.
type behaviorIndex map[string]*descriptor.Behavior

func buildBehaviorIndex(behaviors []gatheredBehavior) behaviorIndex {
	idx := make(behaviorIndex, len(behaviors))
	for _, g := range behaviors {
		if g.bh.ClassName != "" {
			idx[g.bh.ClassName] = g.bh
		}
	}
	return idx
}

// resolveRef turns a behaviors-list entry into a concrete behavior,
// resolving symbolic names against the index.
func (idx behaviorIndex) resolveRef(ref descriptor.BehaviorRef) (*descriptor.Behavior, error) {
	if ref.Ref != nil {
		return ref.Ref, nil
	}
	b, ok := idx[ref.Name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnresolvedBehavior,
			"undefined behavior %q: the document defining it may not be imported, or it may not be declared as a behavior", ref.Name)
	}
	return b, nil
}

// flatten resolves refs and flattens the behavior graph depth-first in
// preorder: each behavior is emitted before its own dependencies. An
// identity-keyed visited set guarantees each distinct behavior object
// appears exactly once, in first-encountered order, even under diamond
// composition.
func (idx behaviorIndex) flatten(refs []descriptor.BehaviorRef) ([]*descriptor.Behavior, error) {
	var out []*descriptor.Behavior
	visited := make(map[*descriptor.Behavior]bool)

	var visit func(refs []descriptor.BehaviorRef) error
	visit = func(refs []descriptor.BehaviorRef) error {
		for _, ref := range refs {
			b, err := idx.resolveRef(ref)
			if err != nil {
				return err
			}
			if visited[b] {
				continue
			}
			visited[b] = true
			out = append(out, b)
			if err := visit(b.Behaviors); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(refs); err != nil {
		return nil, err
	}
	return out, nil
}
