// Package schema classifies a model version's declared Output shape and
// transforms raw output values accordingly.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/inferadev/infera/pkg/types"
)

// Vendor extension markers carried by generated Output schemas.
const (
	arrayTypeIterator  = "iterator"
	displayConcatenate = "concatenate"
)

// Output is the closed subset of an OpenAPI schema node that output
// classification depends on.
type Output struct {
	Type         string            `json:"type,omitempty"`
	Format       string            `json:"format,omitempty"`
	Items        *Output           `json:"items,omitempty"`
	Properties   map[string]Output `json:"properties,omitempty"`
	ArrayType    string            `json:"x-cog-array-type,omitempty"`
	ArrayDisplay string            `json:"x-cog-array-display,omitempty"`
}

// Kind is the derived shape category of a model's output.
type Kind string

// Output shape categories, closed set.
const (
	// KindScalar is a single passthrough value
	KindScalar Kind = "scalar"
	// KindScalarURI is a single URI string, materializable as a file
	KindScalarURI Kind = "scalar-uri"
	// KindList is a plain array
	KindList Kind = "list"
	// KindListURI is an array of URI strings
	KindListURI Kind = "list-of-uri"
	// KindIterator is an incrementally produced array
	KindIterator Kind = "iterator"
	// KindConcatIterator is an iterator of strings meant for concatenation
	KindConcatIterator Kind = "concatenate-iterator"
	// KindObject is an object whose properties are classified independently
	KindObject Kind = "object"
)

// Classify derives the shape category of an output schema. Rules apply in
// priority order; anything unrecognized is a passthrough scalar. The result
// is a pure function of the schema and may be recomputed freely.
func Classify(out *Output) Kind {
	if out == nil {
		return KindScalar
	}

	switch {
	case out.Type == "array" && out.ArrayType == arrayTypeIterator &&
		out.Items != nil && out.Items.Type == "string" && out.ArrayDisplay == displayConcatenate:
		return KindConcatIterator
	case out.Type == "array" && out.ArrayType == arrayTypeIterator:
		return KindIterator
	case out.Type == "string" && out.Format == "uri":
		return KindScalarURI
	case out.Type == "array" && out.Items != nil && out.Items.Format == "uri":
		return KindListURI
	case out.Type == "array":
		return KindList
	case out.Type == "object" && len(out.Properties) > 0:
		return KindObject
	default:
		return KindScalar
	}
}

// OutputSchema extracts the Output schema node from a version's OpenAPI
// document. It returns nil when the version carries no schema or the
// document has no Output component.
func OutputSchema(version *types.Version) (*Output, error) {
	if version == nil || len(version.OpenAPISchema) == 0 {
		return nil, nil
	}

	var doc struct {
		Components struct {
			Schemas map[string]json.RawMessage `json:"schemas"`
		} `json:"components"`
	}
	if err := json.Unmarshal(version.OpenAPISchema, &doc); err != nil {
		return nil, fmt.Errorf("error decoding OpenAPI schema: %w", err)
	}

	raw, ok := doc.Components.Schemas["Output"]
	if !ok {
		return nil, nil
	}

	var out Output
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("error decoding Output schema: %w", err)
	}
	return &out, nil
}
