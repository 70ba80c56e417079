// Package types contains the public data types exchanged with the Infera API.
package types

import "encoding/json"

// Status represents the current state of a prediction or training job.
type Status string

// Job status constants.
const (
	// StatusStarting indicates the job has been accepted but has not begun executing
	StatusStarting Status = "starting"
	// StatusProcessing indicates the job is currently executing
	StatusProcessing Status = "processing"
	// StatusSucceeded indicates the job finished and produced an output
	StatusSucceeded Status = "succeeded"
	// StatusFailed indicates the job finished with an error
	StatusFailed Status = "failed"
	// StatusCanceled indicates the job was aborted before completion
	StatusCanceled Status = "canceled"
)

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// Terminated reports whether the status is terminal. Terminal statuses are
// stable: once a job reaches one, further fetches return the same
// output/error. Unknown status values are treated as non-terminal.
func (s Status) Terminated() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	default:
		return false
	}
}

// PredictionInput is the opaque key-value input of a job.
type PredictionInput map[string]interface{}

// PredictionURLs holds the per-prediction action URLs returned by the API.
type PredictionURLs struct {
	Get    string `json:"get,omitempty"`
	Cancel string `json:"cancel,omitempty"`
	Stream string `json:"stream,omitempty"`
}

// Prediction represents a single inference run. The struct is a client-side
// snapshot of server state: it goes stale immediately after any call, and is
// only updated by re-fetching. The client never computes Status locally.
type Prediction struct {
	ID      string          `json:"id"`
	Status  Status          `json:"status"`
	Model   string          `json:"model,omitempty"`
	Version string          `json:"version,omitempty"`
	Input   PredictionInput `json:"input,omitempty"`
	// Output is opaque; its shape is determined by the version's Output schema.
	Output interface{} `json:"output,omitempty"`
	Error  string      `json:"error,omitempty"`
	// Logs is a full snapshot per fetch, not a diff.
	Logs        string         `json:"logs,omitempty"`
	CreatedAt   string         `json:"created_at,omitempty"`
	StartedAt   string         `json:"started_at,omitempty"`
	CompletedAt string         `json:"completed_at,omitempty"`
	URLs        PredictionURLs `json:"urls,omitempty"`
}

// OutputList returns the output as a list, for iterator-shaped outputs.
// A nil output yields an empty list.
func (p *Prediction) OutputList() ([]interface{}, bool) {
	if p.Output == nil {
		return nil, true
	}
	list, ok := p.Output.([]interface{})
	return list, ok
}

// PredictionRequest is the payload for creating a prediction.
type PredictionRequest struct {
	// Version is omitted on the versionless (official model) submission path.
	Version             string          `json:"version,omitempty"`
	Input               PredictionInput `json:"input"`
	Webhook             string          `json:"webhook,omitempty"`
	WebhookEventsFilter []string        `json:"webhook_events_filter,omitempty"`
	Stream              bool            `json:"stream,omitempty"`
}

// Training represents a fine-tune run. Trainings share the prediction job
// lifecycle: same statuses, same polling contract.
type Training struct {
	ID          string          `json:"id"`
	Status      Status          `json:"status"`
	Model       string          `json:"model,omitempty"`
	Version     string          `json:"version,omitempty"`
	Input       PredictionInput `json:"input,omitempty"`
	Output      interface{}     `json:"output,omitempty"`
	Error       string          `json:"error,omitempty"`
	Logs        string          `json:"logs,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
	StartedAt   string          `json:"started_at,omitempty"`
	CompletedAt string          `json:"completed_at,omitempty"`
	URLs        PredictionURLs  `json:"urls,omitempty"`
}

// TrainingRequest is the payload for creating a training.
type TrainingRequest struct {
	Destination         string          `json:"destination"`
	Input               PredictionInput `json:"input"`
	Webhook             string          `json:"webhook,omitempty"`
	WebhookEventsFilter []string        `json:"webhook_events_filter,omitempty"`
}

// File represents an uploaded file resource.
type File struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	ContentType string            `json:"content_type,omitempty"`
	Size        int64             `json:"size,omitempty"`
	Checksums   map[string]string `json:"checksums,omitempty"`
	Metadata    json.RawMessage   `json:"metadata,omitempty"`
	CreatedAt   string            `json:"created_at,omitempty"`
	ExpiresAt   string            `json:"expires_at,omitempty"`
	URLs        map[string]string `json:"urls,omitempty"`
}

// WebhookSecret is the signing secret used to authenticate webhook
// deliveries. The key is structured as "{scheme}_{base64 payload}"; only the
// payload after the underscore is cryptographic material.
type WebhookSecret struct {
	Key string `json:"key"`
}
