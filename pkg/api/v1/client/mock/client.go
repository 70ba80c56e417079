// Package mock provides a function-field mock of the client.Client
// interface for testing consumers of the SDK.
package mock

import (
	"context"

	"github.com/inferadev/infera/pkg/api/v1/client"
	"github.com/inferadev/infera/pkg/sse"
	"github.com/inferadev/infera/pkg/types"
)

// MockClient implements the Client interface for testing. Set the Fn fields
// to mock behavior; unset methods panic to catch unexpected calls.
type MockClient struct {
	CreatePredictionFn         func(ctx context.Context, req types.PredictionRequest) (*types.Prediction, error)
	CreatePredictionForModelFn func(ctx context.Context, owner, name string, req types.PredictionRequest) (*types.Prediction, error)
	GetPredictionFn            func(ctx context.Context, id string) (*types.Prediction, error)
	ListPredictionsFn          func(ctx context.Context, cursor string) (*types.Page[types.Prediction], error)
	CancelPredictionFn         func(ctx context.Context, id string) error

	CreateTrainingFn func(ctx context.Context, owner, name, version string, req types.TrainingRequest) (*types.Training, error)
	GetTrainingFn    func(ctx context.Context, id string) (*types.Training, error)
	ListTrainingsFn  func(ctx context.Context, cursor string) (*types.Page[types.Training], error)
	CancelTrainingFn func(ctx context.Context, id string) error

	GetModelFn     func(ctx context.Context, owner, name string) (*types.Model, error)
	GetVersionFn   func(ctx context.Context, owner, name, version string) (*types.Version, error)
	ListVersionsFn func(ctx context.Context, owner, name string, cursor string) (*types.Page[types.Version], error)

	CreateFileFn   func(ctx context.Context, name, contentType string, content []byte) (*types.File, error)
	GetFileFn      func(ctx context.Context, id string) (*types.File, error)
	ListFilesFn    func(ctx context.Context, cursor string) (*types.Page[types.File], error)
	DeleteFileFn   func(ctx context.Context, id string) error
	DownloadFileFn func(ctx context.Context, url string) ([]byte, error)

	GetDefaultWebhookSecretFn func(ctx context.Context) (*types.WebhookSecret, error)

	WaitFn             func(ctx context.Context, prediction *types.Prediction) (*types.Prediction, error)
	WaitTrainingFn     func(ctx context.Context, training *types.Training) (*types.Training, error)
	StreamPredictionFn func(ctx context.Context, prediction *types.Prediction) (*sse.Stream, error)
	RunFn              func(ctx context.Context, ref string, input types.PredictionInput) (interface{}, error)

	// Call tracking for verification
	GetPredictionCalls []struct {
		Ctx context.Context
		ID  string
	}
	CreatePredictionCalls []struct {
		Ctx context.Context
		Req types.PredictionRequest
	}
	CancelPredictionCalls []struct {
		Ctx context.Context
		ID  string
	}
}

var _ client.Client = &MockClient{}

// CreatePrediction implements the Client interface
func (m *MockClient) CreatePrediction(ctx context.Context, req types.PredictionRequest) (*types.Prediction, error) {
	m.CreatePredictionCalls = append(m.CreatePredictionCalls, struct {
		Ctx context.Context
		Req types.PredictionRequest
	}{ctx, req})
	return m.CreatePredictionFn(ctx, req)
}

// CreatePredictionForModel implements the Client interface
func (m *MockClient) CreatePredictionForModel(ctx context.Context, owner, name string, req types.PredictionRequest) (*types.Prediction, error) {
	return m.CreatePredictionForModelFn(ctx, owner, name, req)
}

// GetPrediction implements the Client interface
func (m *MockClient) GetPrediction(ctx context.Context, id string) (*types.Prediction, error) {
	m.GetPredictionCalls = append(m.GetPredictionCalls, struct {
		Ctx context.Context
		ID  string
	}{ctx, id})
	return m.GetPredictionFn(ctx, id)
}

// ListPredictions implements the Client interface
func (m *MockClient) ListPredictions(ctx context.Context, cursor string) (*types.Page[types.Prediction], error) {
	return m.ListPredictionsFn(ctx, cursor)
}

// CancelPrediction implements the Client interface
func (m *MockClient) CancelPrediction(ctx context.Context, id string) error {
	m.CancelPredictionCalls = append(m.CancelPredictionCalls, struct {
		Ctx context.Context
		ID  string
	}{ctx, id})
	return m.CancelPredictionFn(ctx, id)
}

// CreateTraining implements the Client interface
func (m *MockClient) CreateTraining(ctx context.Context, owner, name, version string, req types.TrainingRequest) (*types.Training, error) {
	return m.CreateTrainingFn(ctx, owner, name, version, req)
}

// GetTraining implements the Client interface
func (m *MockClient) GetTraining(ctx context.Context, id string) (*types.Training, error) {
	return m.GetTrainingFn(ctx, id)
}

// ListTrainings implements the Client interface
func (m *MockClient) ListTrainings(ctx context.Context, cursor string) (*types.Page[types.Training], error) {
	return m.ListTrainingsFn(ctx, cursor)
}

// CancelTraining implements the Client interface
func (m *MockClient) CancelTraining(ctx context.Context, id string) error {
	return m.CancelTrainingFn(ctx, id)
}

// GetModel implements the Client interface
func (m *MockClient) GetModel(ctx context.Context, owner, name string) (*types.Model, error) {
	return m.GetModelFn(ctx, owner, name)
}

// GetVersion implements the Client interface
func (m *MockClient) GetVersion(ctx context.Context, owner, name, version string) (*types.Version, error) {
	return m.GetVersionFn(ctx, owner, name, version)
}

// ListVersions implements the Client interface
func (m *MockClient) ListVersions(ctx context.Context, owner, name string, cursor string) (*types.Page[types.Version], error) {
	return m.ListVersionsFn(ctx, owner, name, cursor)
}

// CreateFile implements the Client interface
func (m *MockClient) CreateFile(ctx context.Context, name, contentType string, content []byte) (*types.File, error) {
	return m.CreateFileFn(ctx, name, contentType, content)
}

// GetFile implements the Client interface
func (m *MockClient) GetFile(ctx context.Context, id string) (*types.File, error) {
	return m.GetFileFn(ctx, id)
}

// ListFiles implements the Client interface
func (m *MockClient) ListFiles(ctx context.Context, cursor string) (*types.Page[types.File], error) {
	return m.ListFilesFn(ctx, cursor)
}

// DeleteFile implements the Client interface
func (m *MockClient) DeleteFile(ctx context.Context, id string) error {
	return m.DeleteFileFn(ctx, id)
}

// DownloadFile implements the Client interface
func (m *MockClient) DownloadFile(ctx context.Context, url string) ([]byte, error) {
	return m.DownloadFileFn(ctx, url)
}

// GetDefaultWebhookSecret implements the Client interface
func (m *MockClient) GetDefaultWebhookSecret(ctx context.Context) (*types.WebhookSecret, error) {
	return m.GetDefaultWebhookSecretFn(ctx)
}

// Wait implements the Client interface
func (m *MockClient) Wait(ctx context.Context, prediction *types.Prediction) (*types.Prediction, error) {
	return m.WaitFn(ctx, prediction)
}

// WaitTraining implements the Client interface
func (m *MockClient) WaitTraining(ctx context.Context, training *types.Training) (*types.Training, error) {
	return m.WaitTrainingFn(ctx, training)
}

// OutputIterator implements the Client interface. The iterator polls back
// through this mock's GetPrediction.
func (m *MockClient) OutputIterator(prediction *types.Prediction) *client.OutputIterator {
	return client.NewOutputIterator(m, prediction, client.DefaultPollInterval)
}

// StreamPrediction implements the Client interface
func (m *MockClient) StreamPrediction(ctx context.Context, prediction *types.Prediction) (*sse.Stream, error) {
	return m.StreamPredictionFn(ctx, prediction)
}

// Run implements the Client interface
func (m *MockClient) Run(ctx context.Context, ref string, input types.PredictionInput) (interface{}, error) {
	return m.RunFn(ctx, ref, input)
}
