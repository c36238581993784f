package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/webcomb/webcomb/pkg/analysis"
	"github.com/webcomb/webcomb/pkg/descriptor"
)

// SchemaVersion is the version stamped on serialized analyses produced by
// this package. The validate package accepts any 1.x.x version.
const SchemaVersion = "1.0.0"

type analysisFile struct {
	SchemaVersion string    `json:"schema_version"`
	Elements      []element `json:"elements"`
}

type element struct {
	Tagname     string   `json:"tagname"`
	Path        string   `json:"path,omitempty"`
	Description string   `json:"description,omitempty"`
	Properties  []item   `json:"properties,omitempty"`
	Attributes  []item   `json:"attributes,omitempty"`
	Events      []item   `json:"events,omitempty"`
	Behaviors   []string `json:"behaviors,omitempty"`
}

type item struct {
	Name          string `json:"name"`
	Type          string `json:"type,omitempty"`
	Description   string `json:"description,omitempty"`
	InheritedFrom string `json:"inherited_from,omitempty"`
}

// MarshalAnalysis converts an analysis to serialized JSON bytes.
// Elements appear in tag order for deterministic output.
func MarshalAnalysis(a *analysis.Analysis) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteAnalysis(a, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteAnalysis writes the serialized analysis as JSON to w.
func WriteAnalysis(a *analysis.Analysis, w io.Writer) error {
	els := a.Elements()
	out := analysisFile{
		SchemaVersion: SchemaVersion,
		Elements:      make([]element, 0, len(els)),
	}
	for _, re := range els {
		out.Elements = append(out.Elements, fromResolved(re))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteAnalysisFile writes the serialized analysis to a JSON file at path.
// This is a convenience wrapper around [WriteAnalysis] for file-based
// output. The file is created with 0644 permissions.
func WriteAnalysisFile(a *analysis.Analysis, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteAnalysis(a, f)
}

func fromResolved(re *analysis.ResolvedElement) element {
	el := element{
		Tagname:     re.TagName,
		Path:        re.OwnerURL,
		Description: re.Source.Description,
		Properties:  fromItems(re.Properties),
		Attributes:  fromItems(re.Attributes),
		Events:      fromItems(re.Events),
	}
	for _, b := range re.Behaviors {
		if b.ClassName != "" {
			el.Behaviors = append(el.Behaviors, b.ClassName)
		}
	}
	return el
}

func fromItems(items []descriptor.Item) []item {
	if len(items) == 0 {
		return nil
	}
	out := make([]item, len(items))
	for i, it := range items {
		out[i] = item{Name: it.Name, Type: it.Type, Description: it.Description, InheritedFrom: it.Provenance}
	}
	return out
}
