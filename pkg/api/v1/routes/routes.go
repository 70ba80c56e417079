// Package routes defines the Infera API endpoint paths and URL structure.
package routes

import (
	"fmt"
	"net/url"
)

/*

To keep this file organized, URL helpers are grouped by resource and ordered
GET, POST, DELETE within each group. Param-bearing helpers take the params as
arguments and escape them before interpolation.

*/

// API base configuration
const (
	// APIVersionPrefix is the prefix for all API endpoints
	APIVersionPrefix = "/v1"
)

// DefaultBaseURL is the default base URL for the API
const DefaultBaseURL = "https://api.infera.dev" + APIVersionPrefix

// Prediction routes

// PredictionsURL is the collection endpoint for predictions
func PredictionsURL() string {
	return "/predictions"
}

// PredictionURL is the endpoint for a single prediction
func PredictionURL(id string) string {
	return fmt.Sprintf("/predictions/%s", url.PathEscape(id))
}

// PredictionCancelURL is the cancellation endpoint for a prediction
func PredictionCancelURL(id string) string {
	return fmt.Sprintf("/predictions/%s/cancel", url.PathEscape(id))
}

// ModelPredictionsURL is the versionless submission endpoint for official
// models
func ModelPredictionsURL(owner, name string) string {
	return fmt.Sprintf("/models/%s/%s/predictions", url.PathEscape(owner), url.PathEscape(name))
}

// Training routes

// TrainingsURL is the collection endpoint for trainings
func TrainingsURL() string {
	return "/trainings"
}

// TrainingURL is the endpoint for a single training
func TrainingURL(id string) string {
	return fmt.Sprintf("/trainings/%s", url.PathEscape(id))
}

// TrainingCancelURL is the cancellation endpoint for a training
func TrainingCancelURL(id string) string {
	return fmt.Sprintf("/trainings/%s/cancel", url.PathEscape(id))
}

// ModelTrainingsURL is the submission endpoint for a training against a
// specific model version
func ModelTrainingsURL(owner, name, version string) string {
	return fmt.Sprintf("/models/%s/%s/versions/%s/trainings",
		url.PathEscape(owner), url.PathEscape(name), url.PathEscape(version))
}

// Model routes

// ModelURL is the endpoint for a single model
func ModelURL(owner, name string) string {
	return fmt.Sprintf("/models/%s/%s", url.PathEscape(owner), url.PathEscape(name))
}

// ModelVersionsURL is the collection endpoint for a model's versions
func ModelVersionsURL(owner, name string) string {
	return fmt.Sprintf("/models/%s/%s/versions", url.PathEscape(owner), url.PathEscape(name))
}

// ModelVersionURL is the endpoint for a single model version
func ModelVersionURL(owner, name, version string) string {
	return fmt.Sprintf("/models/%s/%s/versions/%s",
		url.PathEscape(owner), url.PathEscape(name), url.PathEscape(version))
}

// File routes

// FilesURL is the collection endpoint for files
func FilesURL() string {
	return "/files"
}

// FileURL is the endpoint for a single file
func FileURL(id string) string {
	return fmt.Sprintf("/files/%s", url.PathEscape(id))
}

// Webhook routes

// DefaultWebhookSecretURL is the endpoint for the account's default webhook
// signing secret
func DefaultWebhookSecretURL() string {
	return "/webhooks/default/secret"
}
