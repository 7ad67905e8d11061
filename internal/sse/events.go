// Package sse decodes the engine's server-sent event stream: newline-delimited
// frames of the form "data: <json>" where the JSON envelope carries a type
// discriminator and a text payload. Anything else on the wire (blank lines,
// comment keep-alives, malformed payloads) is skipped without error so that a
// noisy transport can never abort a run.
package sse

import (
	"encoding/json"
	"strings"
)

// EventType discriminates protocol events.
type EventType string

const (
	// TypeStep is an intermediate progress message emitted mid-run.
	TypeStep EventType = "step"
	// TypeResult carries the final output text. At most one is expected per
	// run; if several arrive the last one wins.
	TypeResult EventType = "result"
)

// eventPrefix marks a payload-bearing frame. Lines without it are transport
// framing (SSE comments, keep-alives) and are ignored.
const eventPrefix = "data: "

// Event is one parsed protocol event.
type Event struct {
	Type EventType `json:"type"`
	Data string    `json:"data"`
}

// ParseEvent parses a single decoded line. It returns false for lines that
// are not events: surrounding whitespace is trimmed first, lines without the
// event prefix are skipped, and JSON that fails to decode or names an unknown
// type is dropped silently.
func ParseEvent(line string) (Event, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, eventPrefix) {
		return Event{}, false
	}
	var ev Event
	if err := json.Unmarshal([]byte(trimmed[len(eventPrefix):]), &ev); err != nil {
		return Event{}, false
	}
	switch ev.Type {
	case TypeStep, TypeResult:
		return ev, true
	default:
		return Event{}, false
	}
}
