// Package sse decodes server-sent event streams used for live prediction
// output.
package sse

import (
	"strconv"
	"strings"
)

// Event types carried by a prediction stream.
const (
	// EventMessage is the default event type
	EventMessage = "message"
	// EventOutput carries an incremental output chunk
	EventOutput = "output"
	// EventLogs carries a log snapshot
	EventLogs = "logs"
	// EventError signals a failure; its data is the error message
	EventError = "error"
	// EventDone terminates the stream; it is a control signal, never payload
	EventDone = "done"
)

// Event is a single decoded server-sent event.
type Event struct {
	// Type of the event; defaults to "message" when the stream omits it.
	Type string
	// Data accumulated across data lines, joined by newline.
	Data string
	// ID of the event. Once a stream sets a non-empty id it persists across
	// subsequent events until explicitly changed.
	ID string
	// Retry is the reconnect delay in milliseconds; nil when unset.
	Retry *int
}

// Decoder is a line-at-a-time state machine that accumulates field lines
// into events. It holds no I/O: feed it lines already split on newlines and
// collect finalized events from Decode. The zero value is ready to use.
type Decoder struct {
	event string
	data  []string
	id    string
	retry *int
}

// Decode processes one line. It returns a finalized event when the line is a
// blank separator and something was accumulated, and nil otherwise.
func (d *Decoder) Decode(line string) *Event {
	if line == "" {
		return d.finalize()
	}

	// Comment lines produce no event.
	if strings.HasPrefix(line, ":") {
		return nil
	}

	field, value, _ := strings.Cut(line, ":")
	value = strings.TrimPrefix(value, " ")

	switch field {
	case "event":
		d.event = value
	case "data":
		d.data = append(d.data, value)
	case "id":
		// An id containing NUL is ignored per the SSE specification.
		if !strings.ContainsRune(value, '\x00') {
			d.id = value
		}
	case "retry":
		// Malformed retry values are silently ignored, not an error.
		if ms, err := strconv.Atoi(value); err == nil {
			d.retry = &ms
		}
	}

	return nil
}

// finalize emits the accumulated event, if any. A blank line with nothing
// accumulated is a no-op, which guards against stray blank lines. The id
// survives the reset: it persists across events by protocol contract.
func (d *Decoder) finalize() *Event {
	if d.event == "" && len(d.data) == 0 && d.id == "" && d.retry == nil {
		return nil
	}

	ev := &Event{
		Type:  d.event,
		Data:  strings.Join(d.data, "\n"),
		ID:    d.id,
		Retry: d.retry,
	}
	if ev.Type == "" {
		ev.Type = EventMessage
	}

	d.event = ""
	d.data = nil
	d.retry = nil

	return ev
}
