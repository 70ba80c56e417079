package client

import (
	"context"
	"net/http"

	"github.com/inferadev/infera/pkg/api/v1/routes"
	"github.com/inferadev/infera/pkg/types"
)

// GetModel fetches a model by owner and name.
func (c *APIClient) GetModel(ctx context.Context, owner, name string) (*types.Model, error) {
	var model types.Model
	if err := c.executeRequest(ctx, http.MethodGet, routes.ModelURL(owner, name), nil, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// GetVersion fetches a single model version, including its OpenAPI schema.
func (c *APIClient) GetVersion(ctx context.Context, owner, name, version string) (*types.Version, error) {
	var v types.Version
	endpoint := routes.ModelVersionURL(owner, name, version)
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVersions returns one page of a model's versions.
func (c *APIClient) ListVersions(ctx context.Context, owner, name string, cursor string) (*types.Page[types.Version], error) {
	var page types.Page[types.Version]
	endpoint := cursorQuery(routes.ModelVersionsURL(owner, name), cursor)
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetDefaultWebhookSecret fetches the account's default webhook signing
// secret for use with the webhooks package.
func (c *APIClient) GetDefaultWebhookSecret(ctx context.Context) (*types.WebhookSecret, error) {
	var secret types.WebhookSecret
	if err := c.executeRequest(ctx, http.MethodGet, routes.DefaultWebhookSecretURL(), nil, &secret); err != nil {
		return nil, err
	}
	return &secret, nil
}
