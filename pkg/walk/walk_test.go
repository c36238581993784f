package walk

import (
	"fmt"
	"testing"

	"github.com/webcomb/webcomb/pkg/descriptor"
)

// recorder records every visited node as a short trace line.
type recorder struct {
	BaseVisitor
	trace []string
	done  int
}

func (r *recorder) Document(d *descriptor.Document, path Path) error {
	r.trace = append(r.trace, fmt.Sprintf("doc:%s@%d", d.URL, len(path)))
	return nil
}

func (r *recorder) InlineDocument(_ *descriptor.InlineDocument, path Path) error {
	r.trace = append(r.trace, fmt.Sprintf("inline@%d", len(path)))
	return nil
}

func (r *recorder) Element(e *descriptor.Element, path Path) error {
	r.trace = append(r.trace, fmt.Sprintf("el:%s@%d", e.TagName, len(path)))
	return nil
}

func (r *recorder) Behavior(b *descriptor.Behavior, path Path) error {
	r.trace = append(r.trace, fmt.Sprintf("bh:%s@%d", b.ClassName, len(path)))
	return nil
}

func (r *recorder) Import(i *descriptor.Import, path Path) error {
	r.trace = append(r.trace, fmt.Sprintf("imp:%s@%d", i.URL, len(path)))
	return nil
}

func (r *recorder) Done() error {
	r.done++
	return nil
}

func TestForestOrder(t *testing.T) {
	// Entities are walked before dependencies, each in list order, and
	// nested documents recurse.
	forest := []*descriptor.Document{
		{
			URL: "a.html",
			Entities: []descriptor.Descriptor{
				&descriptor.Element{TagName: "x-one"},
				&descriptor.InlineDocument{
					Entities: []descriptor.Descriptor{
						&descriptor.Behavior{ClassName: "Nested"},
					},
				},
			},
			Dependencies: []descriptor.Descriptor{
				&descriptor.Import{URL: "b.html"},
				&descriptor.Document{
					URL: "b.html",
					Entities: []descriptor.Descriptor{
						&descriptor.Element{TagName: "x-two"},
					},
				},
			},
		},
	}

	rec := &recorder{}
	if err := Forest(forest, rec); err != nil {
		t.Fatalf("Forest() error = %v", err)
	}

	want := []string{
		"doc:a.html@0",
		"el:x-one@1",
		"inline@1",
		"bh:Nested@2",
		"imp:b.html@1",
		"doc:b.html@1",
		"el:x-two@2",
	}
	if len(rec.trace) != len(want) {
		t.Fatalf("trace = %v, want %v", rec.trace, want)
	}
	for i := range want {
		if rec.trace[i] != want[i] {
			t.Errorf("trace[%d] = %q, want %q", i, rec.trace[i], want[i])
		}
	}
	if rec.done != 1 {
		t.Errorf("Done called %d times, want 1", rec.done)
	}
}

func TestForestBroadcast(t *testing.T) {
	forest := []*descriptor.Document{
		{URL: "a.html", Entities: []descriptor.Descriptor{&descriptor.Element{TagName: "x-a"}}},
	}

	first := &recorder{}
	second := &recorder{}
	if err := Forest(forest, first, second); err != nil {
		t.Fatalf("Forest() error = %v", err)
	}
	if len(first.trace) != 2 || len(second.trace) != 2 {
		t.Errorf("traces = %v / %v, want both of length 2", first.trace, second.trace)
	}
	if first.done != 1 || second.done != 1 {
		t.Errorf("Done counts = %d / %d, want 1 each", first.done, second.done)
	}
}

// pathKeeper retains the path handed to the first element it sees.
type pathKeeper struct {
	BaseVisitor
	kept Path
}

func (k *pathKeeper) Element(_ *descriptor.Element, path Path) error {
	if k.kept == nil {
		k.kept = path
	}
	return nil
}

func TestRetainedPathStable(t *testing.T) {
	// A retained path must not be overwritten when the walk later descends
	// into a sibling subtree at the same depth.
	inner := &descriptor.Document{URL: "inner.html"}
	forest := []*descriptor.Document{
		{
			URL: "outer.html",
			Entities: []descriptor.Descriptor{
				&descriptor.InlineDocument{
					Entities: []descriptor.Descriptor{&descriptor.Element{TagName: "x-kept"}},
				},
				&descriptor.InlineDocument{
					Entities: []descriptor.Descriptor{inner},
				},
			},
		},
	}

	keeper := &pathKeeper{}
	if err := Forest(forest, keeper); err != nil {
		t.Fatalf("Forest() error = %v", err)
	}
	if len(keeper.kept) != 2 {
		t.Fatalf("len(kept) = %d, want 2", len(keeper.kept))
	}
	if _, ok := keeper.kept[1].(*descriptor.InlineDocument); !ok {
		t.Errorf("kept[1] is %T, want *InlineDocument", keeper.kept[1])
	}
	if doc, ok := keeper.kept[0].(*descriptor.Document); !ok || doc.URL != "outer.html" {
		t.Errorf("kept[0] = %v, want outer.html document", keeper.kept[0])
	}
}

func TestPathOwnerURL(t *testing.T) {
	outer := &descriptor.Document{URL: "outer.html"}
	anon := &descriptor.Document{}
	inline := &descriptor.InlineDocument{}

	tests := []struct {
		name   string
		path   Path
		want   string
		wantOK bool
	}{
		{"empty path", Path{}, "", false},
		{"single document", Path{outer}, "outer.html", true},
		{"innermost wins", Path{outer, &descriptor.Document{URL: "inner.html"}}, "inner.html", true},
		{"skips anonymous and inline", Path{outer, anon, inline}, "outer.html", true},
		{"no named ancestor", Path{anon, inline}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.path.OwnerURL()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("OwnerURL() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// failer aborts the walk on the second element.
type failer struct {
	BaseVisitor
	seen int
}

func (f *failer) Element(*descriptor.Element, Path) error {
	f.seen++
	if f.seen == 2 {
		return fmt.Errorf("stop")
	}
	return nil
}

func (f *failer) Done() error {
	return fmt.Errorf("done must not run after abort")
}

func TestForestAbortsOnError(t *testing.T) {
	forest := []*descriptor.Document{
		{
			URL: "a.html",
			Entities: []descriptor.Descriptor{
				&descriptor.Element{TagName: "x-a"},
				&descriptor.Element{TagName: "x-b"},
				&descriptor.Element{TagName: "x-c"},
			},
		},
	}

	f := &failer{}
	err := Forest(forest, f)
	if err == nil || err.Error() != "stop" {
		t.Fatalf("Forest() error = %v, want stop", err)
	}
	if f.seen != 2 {
		t.Errorf("visited %d elements, want walk aborted at 2", f.seen)
	}
}
