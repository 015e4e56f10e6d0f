// Package famimport loads a person-graph dataset from JSON, validating
// it against an embedded JSON Schema before it ever reaches the store —
// the API-load path of the data model's lifecycle. Grounded on the
// teacher's cmd/schema-exporter validation approach (gojsonschema
// against an embedded meta-schema), swapped from validating a component
// schema to validating a graph document.
package famimport

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/chris-hammersley/family-chart/augment"
	famerrors "github.com/chris-hammersley/family-chart/errors"
	"github.com/chris-hammersley/family-chart/person"
)

// document is the wire shape this package validates and decodes.
// person.Person/Relations already carry the matching json tags, so
// decoding reuses them directly rather than an intermediate DTO.
type document struct {
	People []*person.Person `json:"people"`
}

// ValidationError reports one schema violation, letting a caller surface
// every problem at once instead of just the first.
type ValidationError struct {
	Field       string
	Description string
}

// Error implements the error interface for a single violation; SchemaError
// below aggregates a whole batch.
func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Description)
}

// SchemaError aggregates every violation gojsonschema reported for one
// document.
type SchemaError struct {
	Violations []ValidationError
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return "famimport: schema validation failed: " + strings.Join(msgs, "; ")
}

// LoadGraph validates r against the embedded schema and, if it passes,
// decodes it into a person.Graph. A malformed or non-conforming dataset
// is rejected before it ever reaches the store.
func LoadGraph(r io.Reader) (*person.Graph, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, famerrors.Wrap(err, "famimport", "LoadGraph", "read input")
	}

	if err := validate(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, famerrors.Wrap(err, "famimport", "LoadGraph", "decode document")
	}

	for _, p := range doc.People {
		if p.Data == nil {
			p.Data = make(map[string]any)
		}
	}

	g := person.NewGraphFrom(doc.People)
	if err := augment.Augment(g); err != nil {
		return nil, famerrors.Wrap(err, "famimport", "LoadGraph", "augment missing second parents")
	}
	return g, nil
}

// validate runs raw against the embedded JSON Schema, grounded on the
// teacher's validateSchema (schema loader + document loader + collect
// every reported error rather than stopping at the first).
func validate(raw []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return famerrors.Wrap(err, "famimport", "validate", "run schema validation")
	}
	if result.Valid() {
		return nil
	}

	violations := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, ValidationError{Field: desc.Field(), Description: desc.Description()})
	}
	return &SchemaError{Violations: violations}
}
