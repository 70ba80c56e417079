package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/inferadev/infera/internal/logger"
	"github.com/inferadev/infera/pkg/sse"
	"github.com/inferadev/infera/pkg/types"
)

const sseContentType = "text/event-stream"

// StreamPrediction opens the prediction's server-sent-event stream for live
// output. The request is made with no client timeout: the stream lives until
// the server emits a "done" event or the context is canceled. The prediction
// must have been created against a stream-capable endpoint so its URLs carry
// a stream address.
func (c *APIClient) StreamPrediction(ctx context.Context, prediction *types.Prediction) (*sse.Stream, error) {
	if prediction == nil || prediction.URLs.Stream == "" {
		return nil, fmt.Errorf("prediction has no stream URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, prediction.URLs.Stream, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating stream request: %w", err)
	}
	req.Header.Set("Accept", sseContentType)
	req.Header.Set("Cache-Control", "no-store")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	logger.Debugf("opening prediction stream: %s", prediction.URLs.Stream)

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error opening stream: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer func() { _ = resp.Body.Close() }()
		return nil, &types.APIError{Status: resp.StatusCode, Detail: "stream request rejected"}
	}

	// An unexpected content type is a protocol error, surfaced immediately
	// rather than fed to the decoder.
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, sseContentType) {
		defer func() { _ = resp.Body.Close() }()
		return nil, fmt.Errorf("unexpected stream content type %q", ct)
	}

	return sse.NewStream(resp.Body), nil
}
