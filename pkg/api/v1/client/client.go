// Package client provides the API client for interacting with the Infera API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/inferadev/infera/internal/logger"
	"github.com/inferadev/infera/pkg/api/v1/routes"
	"github.com/inferadev/infera/pkg/schema"
	"github.com/inferadev/infera/pkg/sse"
	"github.com/inferadev/infera/pkg/types"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// DefaultPollInterval is the default delay between job status polls
const DefaultPollInterval = 500 * time.Millisecond

// Client is the interface for the API client
type Client interface {
	// Prediction endpoints
	CreatePrediction(ctx context.Context, req types.PredictionRequest) (*types.Prediction, error)
	CreatePredictionForModel(ctx context.Context, owner, name string, req types.PredictionRequest) (*types.Prediction, error)
	GetPrediction(ctx context.Context, id string) (*types.Prediction, error)
	ListPredictions(ctx context.Context, cursor string) (*types.Page[types.Prediction], error)
	CancelPrediction(ctx context.Context, id string) error

	// Training endpoints
	CreateTraining(ctx context.Context, owner, name, version string, req types.TrainingRequest) (*types.Training, error)
	GetTraining(ctx context.Context, id string) (*types.Training, error)
	ListTrainings(ctx context.Context, cursor string) (*types.Page[types.Training], error)
	CancelTraining(ctx context.Context, id string) error

	// Model endpoints
	GetModel(ctx context.Context, owner, name string) (*types.Model, error)
	GetVersion(ctx context.Context, owner, name, version string) (*types.Version, error)
	ListVersions(ctx context.Context, owner, name string, cursor string) (*types.Page[types.Version], error)

	// File endpoints
	CreateFile(ctx context.Context, name, contentType string, content []byte) (*types.File, error)
	GetFile(ctx context.Context, id string) (*types.File, error)
	ListFiles(ctx context.Context, cursor string) (*types.Page[types.File], error)
	DeleteFile(ctx context.Context, id string) error
	DownloadFile(ctx context.Context, url string) ([]byte, error)

	// Webhook endpoints
	GetDefaultWebhookSecret(ctx context.Context) (*types.WebhookSecret, error)

	// Job lifecycle
	Wait(ctx context.Context, prediction *types.Prediction) (*types.Prediction, error)
	WaitTraining(ctx context.Context, training *types.Training) (*types.Training, error)
	OutputIterator(prediction *types.Prediction) *OutputIterator
	StreamPrediction(ctx context.Context, prediction *types.Prediction) (*sse.Stream, error)
	Run(ctx context.Context, ref string, input types.PredictionInput) (interface{}, error)
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Token is the API token sent as a bearer credential
	Token string

	// Timeout is the request timeout for non-streaming calls
	Timeout time.Duration

	// PollInterval is the delay between job status polls
	PollInterval time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL:      routes.DefaultBaseURL,
		Timeout:      DefaultTimeout,
		PollInterval: DefaultPollInterval,
	}
}

// APIClient implements the Client interface. It is immutable after
// construction; per-call variation is expressed through explicit arguments,
// never ambient state, so a single client is safe for concurrent use.
type APIClient struct {
	baseURL      string
	token        string
	timeout      time.Duration
	pollInterval time.Duration

	// streamClient serves long-lived SSE reads and arbitrary file downloads.
	// It deliberately has no timeout.
	streamClient *http.Client
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (*APIClient, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate the base URL
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	return &APIClient{
		baseURL:      opts.BaseURL,
		token:        opts.Token,
		timeout:      timeout,
		pollInterval: pollInterval,
		streamClient: &http.Client{},
	}, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	// Resolve the endpoint URL
	fullURL := c.baseURL + endpoint

	// Create a new agent based on the HTTP method
	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	// Set common headers
	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")
	agent.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		agent.Set("Authorization", "Bearer "+c.token)
	}

	// Add body if provided
	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and processes the response
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	// Execute the request
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	// Check for non-success status codes
	if statusCode < 200 || statusCode >= 300 {
		return decodeAPIError(statusCode, body)
	}

	// Decode the response body if a target is provided
	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	logger.Debugf("infera API request: %s %s", method, endpoint)

	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	return c.doRequest(agent, response)
}

// decodeAPIError converts a non-2xx response into a typed error. Structured
// error bodies become *types.APIError; anything undecodable falls back to a
// fiber.Error carrying the raw body as the message.
func decodeAPIError(statusCode int, body []byte) error {
	apiErr := types.APIError{}
	if err := json.Unmarshal(body, &apiErr); err == nil && (apiErr.Detail != "" || apiErr.Title != "") {
		apiErr.Status = statusCode
		return &apiErr
	}

	return &fiber.Error{
		Code:    statusCode,
		Message: string(body),
	}
}

// cursorQuery appends an opaque pagination cursor to an endpoint.
func cursorQuery(endpoint, cursor string) string {
	if cursor == "" {
		return endpoint
	}
	q := url.Values{}
	q.Set("cursor", cursor)
	return endpoint + "?" + q.Encode()
}

// fetcher returns the schema materializer backed by this client's
// no-timeout HTTP client.
func (c *APIClient) fetcher() schema.Fetcher {
	return schema.FetcherFunc(c.DownloadFile)
}
