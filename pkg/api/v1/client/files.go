package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/inferadev/infera/internal/logger"
	"github.com/inferadev/infera/pkg/api/v1/routes"
	"github.com/inferadev/infera/pkg/types"
)

// CreateFile uploads content as a file resource. Uploads go through the
// no-timeout HTTP client so large payloads are not cut off mid-transfer.
func (c *APIClient) CreateFile(ctx context.Context, name, contentType string, content []byte) (*types.File, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="content"; filename=%q`, name)}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("error building multipart body: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("error writing multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("error finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+routes.FilesURL(), buf)
	if err != nil {
		return nil, fmt.Errorf("error creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	logger.Debugf("infera API upload: %s (%d bytes)", name, len(content))

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error uploading file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, body)
	}

	var file types.File
	if err := json.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("error decoding upload response: %w", err)
	}
	return &file, nil
}

// GetFile fetches a file resource record by ID.
func (c *APIClient) GetFile(ctx context.Context, id string) (*types.File, error) {
	var file types.File
	if err := c.executeRequest(ctx, http.MethodGet, routes.FileURL(id), nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// ListFiles returns one page of file resources.
func (c *APIClient) ListFiles(ctx context.Context, cursor string) (*types.Page[types.File], error) {
	var page types.Page[types.File]
	endpoint := cursorQuery(routes.FilesURL(), cursor)
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeleteFile removes a file resource.
func (c *APIClient) DeleteFile(ctx context.Context, id string) error {
	return c.executeRequest(ctx, http.MethodDelete, routes.FileURL(id), nil, nil)
}

// DownloadFile fetches the raw bytes behind an arbitrary URL, typically a
// file URL found in a prediction output. It also serves as the default
// materializer for the schema package.
func (c *APIClient) DownloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating download request: %w", err)
	}

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &types.APIError{Status: resp.StatusCode, Detail: fmt.Sprintf("download of %s failed", url)}
	}

	return io.ReadAll(resp.Body)
}
