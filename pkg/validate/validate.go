// Package validate checks a serialized analysis against the versioned
// analysis schema.
//
// Validation is stateless and independent of any Analysis instance: it
// operates on the serialized bytes alone. All structural violations are
// collected, not just the first, and the schema_version field is gated
// against the supported major version independently of structural
// validity. The schema itself is embedded and compiled once per process.
package validate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/webcomb/webcomb/pkg/errors"
)

//go:embed analysis-schema.json
var schemaJSON []byte

// versionPattern accepts major-version-1 releases only. A serialized
// analysis from another major version fails validation even when it is
// structurally valid against this schema.
var versionPattern = regexp.MustCompile(`^1\.\d+\.\d+$`)

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// schema returns the compiled analysis schema, compiling it on first use.
func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = errors.Wrap(errors.ErrCodeInternal, err, "parse embedded analysis schema")
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("analysis.schema.json", doc); err != nil {
			compileErr = errors.Wrap(errors.ErrCodeInternal, err, "register analysis schema")
			return
		}
		compiled, compileErr = c.Compile("analysis.schema.json")
	})
	return compiled, compileErr
}

// Analysis validates the serialized analysis object in data.
//
// It returns nil when data is structurally valid and carries a supported
// schema_version. Otherwise it returns a single aggregate error listing
// every structural violation plus the version check outcome, under
// ErrCodeSchemaValidation. Input that is not JSON at all is rejected with
// ErrCodeInvalidFormat.
func Analysis(data []byte) error {
	sch, err := schema()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "serialized analysis is not valid JSON")
	}

	var violations []string
	if err := sch.Validate(inst); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			violations = collect(ve, nil)
		} else {
			return errors.Wrap(errors.ErrCodeInternal, err, "schema validation")
		}
	}

	if msg := checkVersion(data); msg != "" {
		violations = append(violations, msg)
	}

	if len(violations) == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeSchemaValidation,
		"serialized analysis failed validation:\n  - %s", strings.Join(violations, "\n  - "))
}

// collect flattens the validation error tree into one message per leaf
// cause, each prefixed with its instance location.
func collect(ve *jsonschema.ValidationError, out []string) []string {
	if len(ve.Causes) == 0 {
		p := message.NewPrinter(language.English)
		loc := "/" + strings.Join(ve.InstanceLocation, "/")
		return append(out, fmt.Sprintf("at %q: %s", loc, ve.ErrorKind.LocalizedString(p)))
	}
	for _, c := range ve.Causes {
		out = collect(c, out)
	}
	return out
}

// checkVersion inspects the schema_version field on its own. It reports a
// violation message, or "" when the version is acceptable. Absence of the
// field is reported structurally by the schema, so it is not duplicated
// here.
func checkVersion(data []byte) string {
	var head struct {
		SchemaVersion *string `json:"schema_version"`
	}
	if err := json.Unmarshal(data, &head); err != nil || head.SchemaVersion == nil {
		return ""
	}
	if !versionPattern.MatchString(*head.SchemaVersion) {
		return fmt.Sprintf("schema_version %q is not a supported 1.x.x version", *head.SchemaVersion)
	}
	return ""
}
