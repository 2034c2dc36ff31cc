package tableview

import (
	"encoding/json"
	"fmt"
)

// Envelope is one decoded listing response. The pagination fields are shared
// by every listing endpoint; the row payload lives under an entity-specific
// key that only the concrete table knows, so it stays raw until ExtractRows
// picks it out.
type Envelope struct {
	Page            int    `json:"page"`
	NumPages        int    `json:"num_pages"`
	HasPrevious     bool   `json:"has_previous"`
	HasNext         bool   `json:"has_next"`
	Total           int    `json:"total"`
	UnfilteredTotal int    `json:"unfiltered_total"`
	Error           string `json:"error"`

	fields map[string]json.RawMessage
}

// DecodeEnvelope parses a listing response body.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding listing envelope: %w", err)
	}
	if err := json.Unmarshal(data, &env.fields); err != nil {
		return nil, fmt.Errorf("decoding listing envelope: %w", err)
	}
	return &env, nil
}

// Field returns the raw JSON under a top-level key.
func (e *Envelope) Field(key string) (json.RawMessage, bool) {
	raw, ok := e.fields[key]
	return raw, ok
}
