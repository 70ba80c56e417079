package sse

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// StreamError is returned when the stream carries an "error" event. Its
// message is the event's data.
type StreamError struct {
	Data string
}

// Error implements the error interface
func (e *StreamError) Error() string {
	return fmt.Sprintf("stream error: %s", e.Data)
}

// Stream is a lazy, forward-only, non-restartable sequence of events read
// from a line-oriented reader. Both the pull mode (Next) and the push mode
// (Events) share the same ordering contract: events are delivered in decode
// order, the sequence ends at the first "done" event without surfacing it,
// and an "error" event terminates consumption with a *StreamError.
type Stream struct {
	scanner *bufio.Scanner
	closer  io.Closer
	decoder Decoder
	done    bool
	err     error
}

// NewStream wraps r, which must yield the raw SSE byte stream. When r also
// implements io.Closer it is closed once the sequence terminates.
func NewStream(r io.Reader) *Stream {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	s := &Stream{scanner: scanner}
	if closer, ok := r.(io.Closer); ok {
		s.closer = closer
	}
	return s
}

// Close releases the underlying reader. It is safe to call more than once
// and is called automatically when the sequence terminates.
func (s *Stream) Close() error {
	if s.closer == nil {
		return nil
	}
	closer := s.closer
	s.closer = nil
	return closer.Close()
}

// Next blocks until the next event is available. It returns io.EOF when the
// stream terminates, either by a "done" event or by the underlying reader
// ending. After a non-nil error every subsequent call returns the same
// error.
func (s *Stream) Next() (*Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.done {
		return nil, io.EOF
	}

	for s.scanner.Scan() {
		ev := s.decoder.Decode(s.scanner.Text())
		if ev == nil {
			continue
		}

		switch ev.Type {
		case EventDone:
			s.done = true
			_ = s.Close()
			return nil, io.EOF
		case EventError:
			s.err = &StreamError{Data: ev.Data}
			_ = s.Close()
			return nil, s.err
		default:
			return ev, nil
		}
	}

	if err := s.scanner.Err(); err != nil {
		s.err = fmt.Errorf("error reading stream: %w", err)
		_ = s.Close()
		return nil, s.err
	}

	s.done = true
	_ = s.Close()
	return nil, io.EOF
}

// Events drains the stream on a goroutine, delivering events on the first
// channel. The error channel receives at most one value: the terminal error,
// or nothing on a clean end. Both channels are closed when the sequence
// terminates or ctx is done.
func (s *Stream) Events(ctx context.Context) (<-chan Event, <-chan error) {
	events := make(chan Event)
	errs := make(chan error, 1)

	go func() {
		defer close(events)
		defer close(errs)

		for {
			ev, err := s.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				errs <- err
				return
			}

			select {
			case events <- *ev:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return events, errs
}
