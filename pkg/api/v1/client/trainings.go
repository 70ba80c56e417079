package client

import (
	"context"
	"net/http"

	"github.com/inferadev/infera/pkg/api/v1/routes"
	"github.com/inferadev/infera/pkg/types"
)

// CreateTraining submits a training run against a specific model version.
func (c *APIClient) CreateTraining(ctx context.Context, owner, name, version string, req types.TrainingRequest) (*types.Training, error) {
	var training types.Training
	endpoint := routes.ModelTrainingsURL(owner, name, version)
	if err := c.executeRequest(ctx, http.MethodPost, endpoint, req, &training); err != nil {
		return nil, err
	}
	return &training, nil
}

// GetTraining fetches the current snapshot of a training.
func (c *APIClient) GetTraining(ctx context.Context, id string) (*types.Training, error) {
	var training types.Training
	if err := c.executeRequest(ctx, http.MethodGet, routes.TrainingURL(id), nil, &training); err != nil {
		return nil, err
	}
	return &training, nil
}

// ListTrainings returns one page of trainings.
func (c *APIClient) ListTrainings(ctx context.Context, cursor string) (*types.Page[types.Training], error) {
	var page types.Page[types.Training]
	endpoint := cursorQuery(routes.TrainingsURL(), cursor)
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CancelTraining requests cancellation of a running training. Like
// prediction cancellation it is advisory; re-fetch to observe the result.
func (c *APIClient) CancelTraining(ctx context.Context, id string) error {
	return c.executeRequest(ctx, http.MethodPost, routes.TrainingCancelURL(id), nil, nil)
}
