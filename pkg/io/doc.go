// Package io provides JSON import of descriptor forests and export of
// serialized analyses.
//
// # Overview
//
// This package sits at the two serialization boundaries of the analyzer:
//
//   - Input: a descriptor forest produced by the out-of-process scanners,
//     decoded with [ReadForest] or [ReadForestFile] via the descriptor
//     interchange format
//   - Output: the versioned serialized analysis, produced with
//     [MarshalAnalysis], [WriteAnalysis], or [WriteAnalysisFile]
//
// # Serialized Analysis Format
//
// The output is a JSON object with a schema_version string and an elements
// array:
//
//	{
//	  "schema_version": "1.0.0",
//	  "elements": [
//	    {
//	      "tagname": "x-app",
//	      "path": "/app/index.html",
//	      "properties": [{"name": "p1", "inherited_from": "AppBehavior"}],
//	      "behaviors": ["AppBehavior"]
//	    }
//	  ]
//	}
//
// Items contributed by a behavior carry that behavior's class name in
// inherited_from; locally declared items omit the field. The format is the
// one checked by the validate package and consumed by downstream tooling.
//
// # Concurrency
//
// All functions are safe to call concurrently with other readers of the
// same Analysis. Readers create independent descriptor forests that can be
// used and modified freely after import.
package io
