package types

import "encoding/json"

// Model represents a model owned by an account.
type Model struct {
	Owner         string   `json:"owner"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Visibility    string   `json:"visibility,omitempty"`
	URL           string   `json:"url,omitempty"`
	RunCount      int64    `json:"run_count,omitempty"`
	LatestVersion *Version `json:"latest_version,omitempty"`
}

// Version represents a single build of a model. The OpenAPI schema document
// is treated as read-only once fetched; it is used only for output-shape
// classification.
type Version struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at,omitempty"`
	// CogVersion is the semantic-version-like identifier of the build
	// toolchain that produced this version.
	CogVersion string `json:"cog_version,omitempty"`
	// OpenAPISchema describes the version's Input/Output shapes.
	OpenAPISchema json.RawMessage `json:"openapi_schema,omitempty"`
}
