package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/inferadev/infera/pkg/api/v1/routes"
	"github.com/inferadev/infera/pkg/types"
)

// CreatePrediction submits a prediction against a specific model version.
// The returned prediction is a non-terminal snapshot; there is no guarantee
// the job has begun executing.
func (c *APIClient) CreatePrediction(ctx context.Context, req types.PredictionRequest) (*types.Prediction, error) {
	if req.Version == "" {
		return nil, fmt.Errorf("prediction request requires a version")
	}

	var prediction types.Prediction
	if err := c.executeRequest(ctx, http.MethodPost, routes.PredictionsURL(), req, &prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}

// CreatePredictionForModel submits a prediction on the versionless path used
// for official models, which have no addressable version.
func (c *APIClient) CreatePredictionForModel(ctx context.Context, owner, name string, req types.PredictionRequest) (*types.Prediction, error) {
	req.Version = ""

	var prediction types.Prediction
	endpoint := routes.ModelPredictionsURL(owner, name)
	if err := c.executeRequest(ctx, http.MethodPost, endpoint, req, &prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}

// GetPrediction fetches the current snapshot of a prediction from the
// server, the sole source of truth for job status.
func (c *APIClient) GetPrediction(ctx context.Context, id string) (*types.Prediction, error) {
	var prediction types.Prediction
	if err := c.executeRequest(ctx, http.MethodGet, routes.PredictionURL(id), nil, &prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}

// ListPredictions returns one page of predictions. Pass the previous page's
// Next value as cursor to continue a listing.
func (c *APIClient) ListPredictions(ctx context.Context, cursor string) (*types.Page[types.Prediction], error) {
	var page types.Page[types.Prediction]
	endpoint := cursorQuery(routes.PredictionsURL(), cursor)
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CancelPrediction requests cancellation of a running prediction. The call
// is advisory and fire-and-forget: it does not alter the local snapshot, and
// the caller must re-fetch to observe the cancellation take effect.
func (c *APIClient) CancelPrediction(ctx context.Context, id string) error {
	return c.executeRequest(ctx, http.MethodPost, routes.PredictionCancelURL(id), nil, nil)
}
