// Package client provides unit tests for the Infera API client.
//
// The tests use httptest to run a mock server that simulates the Infera API,
// so the client can be exercised without a real endpoint.
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferadev/infera/pkg/types"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name       string
		opts       *Options
		wantErr    bool
		validateFn func(t *testing.T, client *APIClient)
	}{
		{
			name: "nil options",
			opts: nil,
			validateFn: func(t *testing.T, client *APIClient) {
				expected := DefaultOptions()
				assert.Equal(t, expected.BaseURL, client.baseURL)
				assert.Equal(t, expected.Timeout, client.timeout)
				assert.Equal(t, expected.PollInterval, client.pollInterval)
			},
		},
		{
			name: "valid options",
			opts: &Options{
				BaseURL:      "http://example.com",
				Token:        "tok_123",
				Timeout:      10 * time.Second,
				PollInterval: time.Second,
			},
			validateFn: func(t *testing.T, client *APIClient) {
				assert.Equal(t, "http://example.com", client.baseURL)
				assert.Equal(t, "tok_123", client.token)
				assert.Equal(t, 10*time.Second, client.timeout)
				assert.Equal(t, time.Second, client.pollInterval)
			},
		},
		{
			name: "zero durations fall back to defaults",
			opts: &Options{BaseURL: "http://example.com"},
			validateFn: func(t *testing.T, client *APIClient) {
				assert.Equal(t, DefaultTimeout, client.timeout)
				assert.Equal(t, DefaultPollInterval, client.pollInterval)
			},
		},
		{
			name:    "invalid base URL",
			opts:    &Options{BaseURL: "://invalid-url"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, client)
			if tt.validateFn != nil {
				tt.validateFn(t, client)
			}
		})
	}
}

// newTestClient builds a client against a test server with a fast poll
// interval.
func newTestClient(t *testing.T, server *httptest.Server) *APIClient {
	t.Helper()
	client, err := NewClient(&Options{
		BaseURL:      server.URL,
		Token:        "tok_test",
		Timeout:      5 * time.Second,
		PollInterval: time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func TestAPIClient_GetPrediction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/predictions/pred_1", r.URL.Path)
		assert.Equal(t, "Bearer tok_test", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "pred_1", "status": "processing"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	prediction, err := client.GetPrediction(context.Background(), "pred_1")
	require.NoError(t, err)
	assert.Equal(t, "pred_1", prediction.ID)
	assert.Equal(t, types.StatusProcessing, prediction.Status)
}

func TestAPIClient_CreatePrediction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predictions", r.URL.Path)

		var req types.PredictionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "v1", req.Version)
		assert.Equal(t, "a cat", req.Input["prompt"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "pred_1", "status": "starting", "version": "v1"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	prediction, err := client.CreatePrediction(context.Background(), types.PredictionRequest{
		Version: "v1",
		Input:   types.PredictionInput{"prompt": "a cat"},
	})
	require.NoError(t, err)
	assert.Equal(t, types.StatusStarting, prediction.Status)
}

func TestAPIClient_CreatePredictionRequiresVersion(t *testing.T) {
	client, err := NewClient(nil)
	require.NoError(t, err)

	// Fails before any network call.
	_, err = client.CreatePrediction(context.Background(), types.PredictionRequest{
		Input: types.PredictionInput{"prompt": "a cat"},
	})
	assert.Error(t, err)
}

func TestAPIClient_CreatePredictionForModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/meta/llama/predictions", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// The versionless path must not carry a version.
		assert.NotContains(t, req, "version")

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "pred_2", "status": "starting"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	prediction, err := client.CreatePredictionForModel(context.Background(), "meta", "llama", types.PredictionRequest{
		Version: "should-be-stripped",
		Input:   types.PredictionInput{"prompt": "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pred_2", prediction.ID)
}

func TestAPIClient_CancelPrediction(t *testing.T) {
	var canceled bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predictions/pred_1/cancel", r.URL.Path)
		canceled = true
		_, _ = w.Write([]byte(`{"id": "pred_1", "status": "processing"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	require.NoError(t, client.CancelPrediction(context.Background(), "pred_1"))
	assert.True(t, canceled)
}

func TestAPIClient_ListPredictions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cursor := r.URL.Query().Get("cursor"); cursor != "" {
			assert.Equal(t, "abc123", cursor)
			_, _ = w.Write([]byte(`{"results": [{"id": "pred_2"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"results": [{"id": "pred_1"}], "next": "abc123"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	page, err := client.ListPredictions(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "pred_1", page.Results[0].ID)
	require.NotEmpty(t, page.Next)

	page, err = client.ListPredictions(context.Background(), page.Next)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "pred_2", page.Results[0].ID)
	assert.Empty(t, page.Next)
}

func TestAPIClient_ErrorDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/predictions/structured":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"title": "Invalid input", "detail": "prompt is required", "status": 422}`))
		case "/predictions/plain":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream exploded"))
		case "/predictions/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"title": "Not found", "detail": "no such prediction", "status": 404}`))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)

	t.Run("structured error becomes APIError", func(t *testing.T) {
		_, err := client.GetPrediction(context.Background(), "structured")
		var apiErr *types.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
		assert.Equal(t, "prompt is required", apiErr.Detail)
	})

	t.Run("undecodable error falls back to fiber.Error", func(t *testing.T) {
		_, err := client.GetPrediction(context.Background(), "plain")
		var fiberErr *fiber.Error
		require.ErrorAs(t, err, &fiberErr)
		assert.Equal(t, http.StatusBadGateway, fiberErr.Code)
		assert.Contains(t, fiberErr.Message, "upstream exploded")
	})

	t.Run("404 is recognizable", func(t *testing.T) {
		_, err := client.GetPrediction(context.Background(), "missing")
		assert.True(t, types.IsNotFound(err))
	})
}

func TestAPIClient_GetModelAndVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models/acme/upscaler":
			_, _ = w.Write([]byte(`{"owner": "acme", "name": "upscaler", "latest_version": {"id": "v2"}}`))
		case "/models/acme/upscaler/versions/v2":
			_, _ = w.Write([]byte(`{"id": "v2", "cog_version": "0.4.1"}`))
		case "/models/acme/upscaler/versions":
			_, _ = w.Write([]byte(`{"results": [{"id": "v2"}, {"id": "v1"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)

	model, err := client.GetModel(context.Background(), "acme", "upscaler")
	require.NoError(t, err)
	require.NotNil(t, model.LatestVersion)
	assert.Equal(t, "v2", model.LatestVersion.ID)

	version, err := client.GetVersion(context.Background(), "acme", "upscaler", "v2")
	require.NoError(t, err)
	assert.Equal(t, "0.4.1", version.CogVersion)

	page, err := client.ListVersions(context.Background(), "acme", "upscaler", "")
	require.NoError(t, err)
	assert.Len(t, page.Results, 2)
}

func TestAPIClient_GetDefaultWebhookSecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/webhooks/default/secret", r.URL.Path)
		_, _ = w.Write([]byte(`{"key": "whsec_c3VwZXItc2VjcmV0"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	secret, err := client.GetDefaultWebhookSecret(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "whsec_c3VwZXItc2VjcmV0", secret.Key)
}
