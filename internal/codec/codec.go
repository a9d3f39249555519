// Package codec frames a capability call for transport across the process
// boundary. The encoded form is a single JSON document terminated by a
// newline, written to the worker subprocess stdin. The payload is never
// interpolated into a command line, so quotes, backslashes, newlines, and
// shell metacharacters in argument values cannot alter framing.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Invocation is the encoded form of one capability call.
type Invocation struct {
	// Tool is the canonical capability name.
	Tool string `json:"tool"`
	// Schema is the worker-side parameter-schema identifier; empty tells the
	// worker to pass the raw mapping through.
	Schema string `json:"schema,omitempty"`
	// Arguments is the caller-supplied argument mapping.
	Arguments map[string]any `json:"arguments"`
}

// Encode serializes an invocation to its wire form. Arguments must be a
// JSON-representable mapping; nil is encoded as an empty object.
func Encode(tool, schema string, arguments map[string]any) ([]byte, error) {
	if tool == "" {
		return nil, fmt.Errorf("encode invocation: tool name is empty")
	}
	if arguments == nil {
		arguments = map[string]any{}
	}
	inv := Invocation{Tool: tool, Schema: schema, Arguments: arguments}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Argument values are data, not markup; keep them byte-exact.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(inv); err != nil {
		return nil, fmt.Errorf("encode invocation: %w", err)
	}
	// json.Encoder terminates the document with the newline the worker's
	// line-oriented reader expects.
	return buf.Bytes(), nil
}

// Decode parses a wire-form invocation back into its structured form.
// Decode(Encode(x)) reproduces x up to JSON value equality.
func Decode(data []byte) (Invocation, error) {
	var inv Invocation
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&inv); err != nil {
		return Invocation{}, fmt.Errorf("decode invocation: %w", err)
	}
	if inv.Tool == "" {
		return Invocation{}, fmt.Errorf("decode invocation: tool name is empty")
	}
	if inv.Arguments == nil {
		inv.Arguments = map[string]any{}
	}
	return inv, nil
}
