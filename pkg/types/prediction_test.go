package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Terminated(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusStarting, false},
		{StatusProcessing, false},
		{StatusSucceeded, true},
		{StatusFailed, true},
		{StatusCanceled, true},
		// Unknown values are treated as non-terminal so polling continues.
		{Status("queued"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Terminated())
		})
	}
}

func TestPrediction_OutputList(t *testing.T) {
	t.Run("nil output is an empty list", func(t *testing.T) {
		p := &Prediction{}
		list, ok := p.OutputList()
		assert.True(t, ok)
		assert.Empty(t, list)
	})

	t.Run("array output", func(t *testing.T) {
		p := &Prediction{Output: []interface{}{"a", "b"}}
		list, ok := p.OutputList()
		assert.True(t, ok)
		assert.Equal(t, []interface{}{"a", "b"}, list)
	})

	t.Run("non-array output", func(t *testing.T) {
		p := &Prediction{Output: "scalar"}
		_, ok := p.OutputList()
		assert.False(t, ok)
	})
}

func TestPrediction_Decode(t *testing.T) {
	raw := `{
		"id": "pred_123",
		"status": "processing",
		"version": "v1",
		"input": {"prompt": "a cat"},
		"logs": "booting\nrunning",
		"created_at": "2024-05-10T12:00:00Z",
		"urls": {"get": "https://api/x", "cancel": "https://api/x/cancel", "stream": "https://stream/x"}
	}`

	var p Prediction
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, "pred_123", p.ID)
	assert.Equal(t, StatusProcessing, p.Status)
	assert.Equal(t, "a cat", p.Input["prompt"])
	assert.Equal(t, "https://stream/x", p.URLs.Stream)
}

func TestModelError(t *testing.T) {
	err := &ModelError{Prediction: &Prediction{ID: "p1", Status: StatusFailed, Error: "boom"}}
	assert.Contains(t, err.Error(), "boom")

	var modelErr *ModelError
	require.True(t, errors.As(error(err), &modelErr))
	assert.Equal(t, "p1", modelErr.Prediction.ID)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{Status: 404, Detail: "gone"}))
	assert.False(t, IsNotFound(&APIError{Status: 500, Detail: "broken"}))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(ErrCanceled))
}

func TestAPIError_Error(t *testing.T) {
	assert.Contains(t, (&APIError{Status: 422, Detail: "bad input"}).Error(), "bad input")
	assert.Contains(t, (&APIError{Status: 402, Title: "payment required"}).Error(), "payment required")
	assert.Contains(t, (&APIError{Status: 500}).Error(), "500")
}
