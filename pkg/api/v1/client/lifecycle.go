package client

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/inferadev/infera/internal/logger"
	"github.com/inferadev/infera/pkg/schema"
	"github.com/inferadev/infera/pkg/types"
)

// Wait polls a prediction at the client's poll interval until it reaches a
// terminal status, suspending between polls. It returns the terminal
// snapshot; on failed the error is a *types.ModelError carrying the job's
// error message, and on canceled it is types.ErrCanceled. Polling is a
// designed wait, not error recovery: no call is ever retried.
func (c *APIClient) Wait(ctx context.Context, prediction *types.Prediction) (*types.Prediction, error) {
	if prediction == nil || prediction.ID == "" {
		return nil, fmt.Errorf("prediction with a non-empty ID is required")
	}

	p := prediction
	for !p.Status.Terminated() {
		if err := c.sleep(ctx); err != nil {
			return p, err
		}

		refreshed, err := c.GetPrediction(ctx, prediction.ID)
		if err != nil {
			return p, err
		}
		p = refreshed
	}

	return p, terminalError(p)
}

// WaitTraining polls a training until terminal, mirroring Wait.
func (c *APIClient) WaitTraining(ctx context.Context, training *types.Training) (*types.Training, error) {
	if training == nil || training.ID == "" {
		return nil, fmt.Errorf("training with a non-empty ID is required")
	}

	t := training
	for !t.Status.Terminated() {
		if err := c.sleep(ctx); err != nil {
			return t, err
		}

		refreshed, err := c.GetTraining(ctx, training.ID)
		if err != nil {
			return t, err
		}
		t = refreshed
	}

	return t, terminalError(trainingAsPrediction(t))
}

// sleep suspends for one poll interval or until ctx is done.
func (c *APIClient) sleep(ctx context.Context) error {
	timer := time.NewTimer(c.pollInterval)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// terminalError maps a terminal snapshot to the caller-visible error kind.
func terminalError(p *types.Prediction) error {
	switch p.Status {
	case types.StatusFailed:
		return &types.ModelError{Prediction: p}
	case types.StatusCanceled:
		return types.ErrCanceled
	default:
		return nil
	}
}

func trainingAsPrediction(t *types.Training) *types.Prediction {
	return &types.Prediction{
		ID:     t.ID,
		Status: t.Status,
		Error:  t.Error,
		Logs:   t.Logs,
	}
}

// Run submits a prediction for a model reference, waits for it to finish,
// and returns the output interpreted through the version's Output schema.
// For references without an addressable version (official models) the
// versionless submission path is used and the raw output is returned.
func (c *APIClient) Run(ctx context.Context, ref string, input types.PredictionInput) (interface{}, error) {
	parsed, err := types.ParseRef(ref)
	if err != nil {
		return nil, err
	}

	version, err := c.resolveVersion(ctx, parsed)
	if err != nil {
		return nil, err
	}

	var prediction *types.Prediction
	if version != nil {
		prediction, err = c.CreatePrediction(ctx, types.PredictionRequest{Version: version.ID, Input: input})
	} else {
		// No addressable version: official models take the versionless path.
		prediction, err = c.CreatePredictionForModel(ctx, parsed.Owner, parsed.Name, types.PredictionRequest{Input: input})
	}
	if err != nil {
		return nil, err
	}

	terminal, err := c.Wait(ctx, prediction)
	if err != nil {
		return nil, err
	}

	return c.interpretOutput(terminal, version)
}

// resolveVersion looks up the version a reference addresses. A 404 on the
// version or model lookup means the model has no addressable version and is
// reported as nil, not as a failure; any other error propagates.
func (c *APIClient) resolveVersion(ctx context.Context, ref types.Ref) (*types.Version, error) {
	if ref.Version != "" {
		version, err := c.GetVersion(ctx, ref.Owner, ref.Name, ref.Version)
		if err != nil {
			if types.IsNotFound(err) {
				logger.Debugf("version %s not addressable, falling back to versionless path", ref.String())
				return nil, nil
			}
			return nil, err
		}
		return version, nil
	}

	model, err := c.GetModel(ctx, ref.Owner, ref.Name)
	if err != nil {
		if types.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return model.LatestVersion, nil
}

// interpretOutput passes a terminal output through the schema interpreter.
// Without a version schema the output is returned untouched.
func (c *APIClient) interpretOutput(p *types.Prediction, version *types.Version) (interface{}, error) {
	if version == nil {
		return p.Output, nil
	}

	out, err := schema.OutputSchema(version)
	if err != nil {
		return nil, err
	}
	schema.Normalize(out, version.CogVersion)

	if schema.Classify(out) == schema.KindConcatIterator {
		if list, ok := p.OutputList(); ok {
			var b strings.Builder
			for _, item := range list {
				if s, ok := item.(string); ok {
					b.WriteString(s)
				}
			}
			return b.String(), nil
		}
	}

	return schema.Transform(p.Output, out, c.fetcher()), nil
}

// PredictionGetter is the narrow polling surface the output iterator needs.
// *APIClient satisfies it; tests substitute their own.
type PredictionGetter interface {
	GetPrediction(ctx context.Context, id string) (*types.Prediction, error)
}

// OutputIterator returns a lazy, forward-only, non-restartable sequence over
// a prediction's incrementally produced output. Each poll yields the suffix
// of the output array beyond the previously seen length. The diff is length
// based, per the upstream protocol: the output array is append-only, and a
// server returning a shorter or reordered array between polls would
// desynchronize the sequence.
func (c *APIClient) OutputIterator(prediction *types.Prediction) *OutputIterator {
	return NewOutputIterator(c, prediction, c.pollInterval)
}

// NewOutputIterator builds an output iterator polling through getter at the
// given interval.
func NewOutputIterator(getter PredictionGetter, prediction *types.Prediction, pollInterval time.Duration) *OutputIterator {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &OutputIterator{
		getter:       getter,
		prediction:   prediction,
		id:           prediction.ID,
		pollInterval: pollInterval,
	}
}

// OutputIterator is the lazy polling sequence returned by
// APIClient.OutputIterator. It is a single-consumer object and must not be
// shared across goroutines.
type OutputIterator struct {
	getter       PredictionGetter
	prediction   *types.Prediction
	id           string
	pollInterval time.Duration
	seen         int
	pending      []interface{}
	done         bool
	err          error
}

// Next blocks until the next output chunk is available. It returns io.EOF
// once the job is terminal and the final suffix has been drained. A failed
// job surfaces as *types.ModelError and a canceled one as types.ErrCanceled,
// in both cases only after any already-produced chunks have been yielded.
func (it *OutputIterator) Next(ctx context.Context) (interface{}, error) {
	if it.err != nil {
		return nil, it.err
	}

	for {
		if len(it.pending) > 0 {
			chunk := it.pending[0]
			it.pending = it.pending[1:]
			return chunk, nil
		}
		if it.done {
			return nil, io.EOF
		}

		list, ok := it.prediction.OutputList()
		if !ok {
			it.err = fmt.Errorf("prediction %s output is not a list", it.id)
			return nil, it.err
		}
		if len(list) > it.seen {
			it.pending = list[it.seen:]
			it.seen = len(list)
			continue
		}

		if it.prediction.Status.Terminated() {
			if err := terminalError(it.prediction); err != nil {
				it.err = err
				return nil, it.err
			}
			it.done = true
			continue
		}

		timer := time.NewTimer(it.pollInterval)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			it.err = ctx.Err()
			return nil, it.err
		}
		refreshed, err := it.getter.GetPrediction(ctx, it.id)
		if err != nil {
			it.err = err
			return nil, it.err
		}
		it.prediction = refreshed
	}
}

// Channel drains the iterator on a goroutine, providing the push-style
// consumption mode. Ordering is identical to repeated Next calls. The error
// channel receives at most one value; both channels close when the sequence
// terminates or ctx is done.
func (it *OutputIterator) Channel(ctx context.Context) (<-chan interface{}, <-chan error) {
	chunks := make(chan interface{})
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		for {
			chunk, err := it.Next(ctx)
			if err == io.EOF {
				return
			}
			if err != nil {
				errs <- err
				return
			}

			select {
			case chunks <- chunk:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return chunks, errs
}
