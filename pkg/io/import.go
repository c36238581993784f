package io

import (
	"fmt"
	"io"
	"os"

	"github.com/webcomb/webcomb/pkg/descriptor"
)

// ReadForest decodes a descriptor forest from r.
//
// The input must be a JSON array of document nodes in the descriptor
// interchange format; see descriptor.ParseForest for the accepted shapes
// and the errors returned for malformed input.
//
// The returned forest is independent of r and can be used freely after
// ReadForest returns. ReadForest does not close r.
func ReadForest(r io.Reader) ([]*descriptor.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read forest: %w", err)
	}
	return descriptor.ParseForest(data)
}

// ReadForestFile reads a JSON file at path and returns the decoded forest.
//
// ReadForestFile opens the file, decodes it using [ReadForest], and closes
// the file. If the file cannot be opened, or if decoding fails, it returns
// an error wrapping the underlying cause with the file path for context.
func ReadForestFile(path string) ([]*descriptor.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadForest(f)
}
