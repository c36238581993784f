package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/webcomb/webcomb/pkg/descriptor"
	"github.com/webcomb/webcomb/pkg/errors"
)

// doc builds a named document with the given entities.
func doc(url string, entities ...descriptor.Descriptor) *descriptor.Document {
	return &descriptor.Document{URL: url, Entities: entities}
}

func itemNames(items []descriptor.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func behaviorNames(behaviors []*descriptor.Behavior) []string {
	out := make([]string, len(behaviors))
	for i, b := range behaviors {
		out[i] = b.ClassName
	}
	return out
}

func TestNewResolvesElement(t *testing.T) {
	bh := &descriptor.Behavior{
		ClassName:  "SelectableBehavior",
		Properties: []descriptor.Item{{Name: "selected", Type: "number"}},
		Events:     []descriptor.Item{{Name: "select"}},
	}
	el := &descriptor.Element{
		TagName:    "x-tabs",
		Properties: []descriptor.Item{{Name: "vertical", Type: "boolean"}},
		Behaviors:  []descriptor.BehaviorRef{descriptor.ByName("SelectableBehavior")},
	}
	forest := []*descriptor.Document{
		doc("app/elements/behaviors.html", bh),
		doc("app/elements/x-tabs.html", el),
	}

	a, err := New(forest, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	re, ok := a.Element("x-tabs")
	if !ok {
		t.Fatal("Element(x-tabs) not found")
	}
	if re.OwnerURL != "app/elements/x-tabs.html" {
		t.Errorf("OwnerURL = %q, want %q", re.OwnerURL, "app/elements/x-tabs.html")
	}
	if got := behaviorNames(re.Behaviors); len(got) != 1 || got[0] != "SelectableBehavior" {
		t.Errorf("Behaviors = %v, want [SelectableBehavior]", got)
	}

	wantProps := []string{"vertical", "selected"}
	if got := itemNames(re.Properties); fmt.Sprint(got) != fmt.Sprint(wantProps) {
		t.Errorf("Properties = %v, want %v", got, wantProps)
	}
	if re.Properties[0].Provenance != "" {
		t.Errorf("local item Provenance = %q, want empty", re.Properties[0].Provenance)
	}
	if re.Properties[1].Provenance != "SelectableBehavior" {
		t.Errorf("inherited item Provenance = %q, want SelectableBehavior", re.Properties[1].Provenance)
	}
	if got := itemNames(re.Events); len(got) != 1 || got[0] != "select" {
		t.Errorf("Events = %v, want [select]", got)
	}

	// Source descriptor is shared, not copied, and was not mutated.
	if re.Source != el {
		t.Error("Source is not the input descriptor")
	}
	if len(el.Properties) != 1 {
		t.Errorf("input element mutated: Properties = %v", el.Properties)
	}
}

func TestDiamondFlattening(t *testing.T) {
	// B1 depends on B2 and B3; B2 also depends on B3. Preorder emits each
	// behavior before its own dependencies, and B3 appears exactly once.
	b3 := &descriptor.Behavior{ClassName: "B3"}
	b2 := &descriptor.Behavior{ClassName: "B2", Behaviors: []descriptor.BehaviorRef{descriptor.ByName("B3")}}
	b1 := &descriptor.Behavior{ClassName: "B1", Behaviors: []descriptor.BehaviorRef{
		descriptor.ByName("B2"),
		descriptor.ByName("B3"),
	}}
	el := &descriptor.Element{TagName: "x-diamond", Behaviors: []descriptor.BehaviorRef{descriptor.ByName("B1")}}

	a, err := New([]*descriptor.Document{doc("a.html", b1, b2, b3, el)}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	re, _ := a.Element("x-diamond")
	want := "[B1 B2 B3]"
	if got := fmt.Sprint(behaviorNames(re.Behaviors)); got != want {
		t.Errorf("flattened behaviors = %v, want %v", got, want)
	}
}

func TestMergePrecedence(t *testing.T) {
	// The element's own item always wins; among behaviors, the first in
	// resolution order defining a name wins.
	first := &descriptor.Behavior{
		ClassName: "First",
		Properties: []descriptor.Item{
			{Name: "shared", Type: "string", Description: "from first"},
			{Name: "local", Type: "string", Description: "shadowed by element"},
		},
	}
	second := &descriptor.Behavior{
		ClassName: "Second",
		Properties: []descriptor.Item{
			{Name: "shared", Type: "number", Description: "from second"},
			{Name: "extra", Type: "boolean"},
		},
	}
	el := &descriptor.Element{
		TagName:    "x-merge",
		Properties: []descriptor.Item{{Name: "local", Type: "number", Description: "element's own"}},
		Behaviors: []descriptor.BehaviorRef{
			descriptor.ByName("First"),
			descriptor.ByName("Second"),
		},
	}

	a, err := New([]*descriptor.Document{doc("a.html", first, second, el)}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	re, _ := a.Element("x-merge")
	want := []string{"local", "shared", "extra"}
	if got := itemNames(re.Properties); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("Properties = %v, want %v", got, want)
	}

	byName := make(map[string]descriptor.Item)
	for _, it := range re.Properties {
		byName[it.Name] = it
	}
	if it := byName["local"]; it.Description != "element's own" || it.Provenance != "" {
		t.Errorf("local = %+v, want element's own item with no provenance", it)
	}
	if it := byName["shared"]; it.Description != "from first" || it.Provenance != "First" {
		t.Errorf("shared = %+v, want item from First", it)
	}
	if it := byName["extra"]; it.Provenance != "Second" {
		t.Errorf("extra = %+v, want provenance Second", it)
	}
}

func TestEmbeddedBehaviorRef(t *testing.T) {
	// A direct reference resolves without the index, even for an unnamed
	// behavior that could never be indexed.
	anon := &descriptor.Behavior{Events: []descriptor.Item{{Name: "ping"}}}
	el := &descriptor.Element{TagName: "x-anon", Behaviors: []descriptor.BehaviorRef{descriptor.ByRef(anon)}}

	a, err := New([]*descriptor.Document{doc("a.html", el)}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	re, _ := a.Element("x-anon")
	if len(re.Behaviors) != 1 || re.Behaviors[0] != anon {
		t.Errorf("Behaviors = %v, want the anonymous behavior", re.Behaviors)
	}
	if got := itemNames(re.Events); len(got) != 1 || got[0] != "ping" {
		t.Errorf("Events = %v, want [ping]", got)
	}
}

func TestUnresolvedBehavior(t *testing.T) {
	el := &descriptor.Element{TagName: "x-broken", Behaviors: []descriptor.BehaviorRef{descriptor.ByName("Missing")}}

	_, err := New([]*descriptor.Document{doc("a.html", el)}, Options{})
	if err == nil {
		t.Fatal("New() error = nil, want unresolved behavior")
	}
	if !errors.Is(err, errors.ErrCodeUnresolvedBehavior) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeUnresolvedBehavior)
	}
	if !strings.Contains(err.Error(), `"Missing"`) {
		t.Errorf("error %q does not name the missing behavior", err)
	}
}

func TestSharedDescriptorIdempotent(t *testing.T) {
	// The same element object reachable from two positions under one
	// document is recorded once.
	el := &descriptor.Element{TagName: "x-shared"}
	forest := []*descriptor.Document{
		{
			URL:      "a.html",
			Entities: []descriptor.Descriptor{el},
			Dependencies: []descriptor.Descriptor{
				&descriptor.InlineDocument{Entities: []descriptor.Descriptor{el}},
			},
		},
	}

	a, err := New(forest, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := len(a.Elements()); got != 1 {
		t.Errorf("len(Elements()) = %d, want 1", got)
	}
	if got := len(a.Warnings()); got != 0 {
		t.Errorf("Warnings() = %v, want none for a shared reference", a.Warnings())
	}
}

func TestAmbiguousPath(t *testing.T) {
	// The same element object under two differently named documents is a
	// structural error naming both paths.
	el := &descriptor.Element{TagName: "x-torn"}
	forest := []*descriptor.Document{
		doc("a.html", el),
		doc("b.html", el),
	}

	_, err := New(forest, Options{})
	if err == nil {
		t.Fatal("New() error = nil, want ambiguous path")
	}
	if !errors.Is(err, errors.ErrCodeAmbiguousPath) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeAmbiguousPath)
	}
	msg := err.Error()
	if !strings.Contains(msg, "a.html") || !strings.Contains(msg, "b.html") {
		t.Errorf("error %q does not name both documents", msg)
	}
}

func TestUnattributedElement(t *testing.T) {
	// An element whose only ancestors are anonymous scopes cannot be
	// attributed to a document.
	forest := []*descriptor.Document{
		{Entities: []descriptor.Descriptor{&descriptor.Element{TagName: "x-lost"}}},
	}

	_, err := New(forest, Options{})
	if err == nil {
		t.Fatal("New() error = nil, want unattributed")
	}
	if !errors.Is(err, errors.ErrCodeUnattributed) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeUnattributed)
	}
}

func TestDuplicateTagLastWins(t *testing.T) {
	var logged []string
	forest := []*descriptor.Document{
		doc("a.html", &descriptor.Element{TagName: "x-dup", Description: "first"}),
		doc("b.html", &descriptor.Element{TagName: "x-dup", Description: "second"}),
	}

	a, err := New(forest, Options{
		Logger: func(msg string, args ...any) {
			logged = append(logged, fmt.Sprintf(msg, args...))
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	re, _ := a.Element("x-dup")
	if re.Source.Description != "second" {
		t.Errorf("kept element from %s, want the later definition", re.OwnerURL)
	}

	warnings := a.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("Warnings() = %v, want one entry", warnings)
	}
	w := warnings[0]
	if w.Tag != "x-dup" || w.Kept != "b.html" || w.Shadowed != "a.html" {
		t.Errorf("warning = %+v, want x-dup kept=b.html shadowed=a.html", w)
	}
	if len(logged) != 1 || !strings.Contains(logged[0], "x-dup") {
		t.Errorf("logged = %v, want one duplicate-tag diagnostic", logged)
	}
}

func TestPackageAttribution(t *testing.T) {
	forest := []*descriptor.Document{
		doc("app/bower.json"),
		doc("app/components/paper/bower.json"),
		doc("app/components/paper/x-paper.html", &descriptor.Element{TagName: "x-paper"}),
		doc("app/x-app.html", &descriptor.Element{TagName: "x-app"}),
		doc("vendor/x-stray.html", &descriptor.Element{TagName: "x-stray"}),
	}

	a, err := New(forest, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Longest first, ties lexicographic.
	wantDirs := []string{"app/components/paper", "app"}
	if got := a.PackageDirs(); fmt.Sprint(got) != fmt.Sprint(wantDirs) {
		t.Errorf("PackageDirs() = %v, want %v", got, wantDirs)
	}

	paper, ok := a.ElementsForPackage("app/components/paper")
	if !ok || len(paper) != 1 || paper[0].TagName != "x-paper" {
		t.Errorf("ElementsForPackage(app/components/paper) = %v, want [x-paper]", paper)
	}

	app, ok := a.ElementsForPackage("app")
	if !ok || len(app) != 1 || app[0].TagName != "x-app" {
		t.Errorf("ElementsForPackage(app) = %v, want [x-app]", app)
	}

	// Uncovered elements land in the catch-all bucket.
	stray, ok := a.ElementsForPackage("")
	if !ok || len(stray) != 1 || stray[0].TagName != "x-stray" {
		t.Errorf(`ElementsForPackage("") = %v, want [x-stray]`, stray)
	}

	if _, ok := a.ElementsForPackage("no/such/dir"); ok {
		t.Error("ElementsForPackage(no/such/dir) = ok, want miss")
	}
}

func TestCustomMarkers(t *testing.T) {
	forest := []*descriptor.Document{
		doc("lib/component.toml"),
		doc("lib/x-lib.html", &descriptor.Element{TagName: "x-lib"}),
	}

	a, err := New(forest, Options{PackageMarkers: []string{"component.toml"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	els, ok := a.ElementsForPackage("lib")
	if !ok || len(els) != 1 {
		t.Errorf("ElementsForPackage(lib) = %v, want [x-lib]", els)
	}
}

func TestElementsSortedByTag(t *testing.T) {
	forest := []*descriptor.Document{
		doc("a.html",
			&descriptor.Element{TagName: "x-zeta"},
			&descriptor.Element{TagName: "x-alpha"},
			&descriptor.Element{TagName: "x-mid"},
		),
	}

	a, err := New(forest, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	var tags []string
	for _, re := range a.Elements() {
		tags = append(tags, re.TagName)
	}
	want := []string{"x-alpha", "x-mid", "x-zeta"}
	if fmt.Sprint(tags) != fmt.Sprint(want) {
		t.Errorf("Elements() order = %v, want %v", tags, want)
	}
}

func TestBehaviorAndDocumentLookup(t *testing.T) {
	bh := &descriptor.Behavior{ClassName: "PaperBehavior"}
	d := doc("app/behaviors.html", bh)
	a, err := New([]*descriptor.Document{d}, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, ok := a.Behavior("PaperBehavior")
	if !ok || got != bh {
		t.Errorf("Behavior(PaperBehavior) = (%v, %v), want the gathered behavior", got, ok)
	}
	if _, ok := a.Behavior("Nope"); ok {
		t.Error("Behavior(Nope) = ok, want miss")
	}

	gd, ok := a.Document("app/behaviors.html")
	if !ok || gd != d {
		t.Errorf("Document(app/behaviors.html) = (%v, %v), want the input document", gd, ok)
	}
	if _, ok := a.Document("missing.html"); ok {
		t.Error("Document(missing.html) = ok, want miss")
	}
}

func TestLongestPrefix(t *testing.T) {
	dirs := byPrefixLength([]string{"app", "app/components/paper", "app/components"})
	tests := []struct {
		owner string
		want  string
	}{
		{"app/components/paper/x.html", "app/components/paper"},
		{"app/components/x.html", "app/components"},
		{"app/x.html", "app"},
		{"vendor/x.html", ""},
	}
	for _, tt := range tests {
		if got := longestPrefix(dirs, tt.owner); got != tt.want {
			t.Errorf("longestPrefix(%q) = %q, want %q", tt.owner, got, tt.want)
		}
	}
}
