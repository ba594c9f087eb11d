package models

import (
	"fmt"
	"math"
	"strconv"
)

// -----------------------------------------------------------------------------
// Wire envelopes (Matches the original bridge protocol exactly)
// -----------------------------------------------------------------------------

// MPayload is a JSON-serializable command result body.
type MPayload map[string]interface{}

// -----------------------------------------------------------------------------

// MCommand is the inbound server envelope. ID is opaque and caller-chosen;
// it is echoed back unchanged and carries no server-side meaning.
type MCommand struct {
	ID      interface{}   `json:"id"`
	Command string        `json:"command"`
	Args    []interface{} `json:"args"`
}

// -----------------------------------------------------------------------------

// ArgStrings renders the positional args as strings for the command table.
// JSON numbers decode as float64; integral values must not pick up a ".0".
func (c *MCommand) ArgStrings() []string {
	out := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		switch v := a.(type) {
		case string:
			out = append(out, v)
		case float64:
			if v == math.Trunc(v) && !math.IsInf(v, 0) {
				out = append(out, strconv.FormatInt(int64(v), 10))
			} else {
				out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
			}
		default:
			out = append(out, fmt.Sprintf("%v", v))
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// MResult is the outbound envelope. Exactly one of Result/Error is set:
// a populated Result with Success true, or a non-empty Error with false.
type MResult struct {
	ID      interface{} `json:"id"`
	Success bool        `json:"success"`
	Result  MPayload    `json:"result,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// -----------------------------------------------------------------------------

// ResolvePayload merges an operation outcome into the flat body shape the
// one-shot executor prints: {"success": true, ...} or {"success": false,
// "error": "..."}.
func ResolvePayload(p MPayload, err error) MPayload {
	if err != nil {
		return MPayload{"success": false, "error": err.Error()}
	}
	out := MPayload{"success": true}
	for k, v := range p {
		out[k] = v
	}
	return out
}

// -----------------------------------------------------------------------------

// NewResult wraps an outcome in the server envelope, correlating by id.
func NewResult(id interface{}, p MPayload, err error) MResult {
	if err != nil {
		return MResult{ID: id, Success: false, Error: err.Error()}
	}
	return MResult{ID: id, Success: true, Result: ResolvePayload(p, nil)}
}
