package protocol

// Variant identifies which arm of the Outcome union is populated.
type Variant string

const (
	// VariantSuccess carries a structured payload from the worker.
	VariantSuccess Variant = "success"
	// VariantFailure carries a structured error from the worker or the bridge.
	VariantFailure Variant = "failure"
	// VariantRaw carries unstructured worker stdout passed through as-is.
	VariantRaw Variant = "raw"
)

// Outcome is the three-way classification of a completed remote call.
// Exactly one variant's fields are meaningful.
type Outcome struct {
	// Variant selects the populated arm.
	Variant Variant
	// Payload is the success payload.
	Payload any
	// Message is the failure message.
	Message string
	// Kind is the failure kind, bridge-level or remote.
	Kind string
	// Traceback is the remote diagnostic trace.
	Traceback string
	// Text is the raw stdout text.
	Text string
}

// Success builds a success outcome.
func Success(payload any) Outcome {
	return Outcome{Variant: VariantSuccess, Payload: payload}
}

// Failure builds a failure outcome.
func Failure(message, kind, traceback string) Outcome {
	return Outcome{Variant: VariantFailure, Message: message, Kind: kind, Traceback: traceback}
}

// Raw builds a raw passthrough outcome.
func Raw(text string) Outcome {
	return Outcome{Variant: VariantRaw, Text: text}
}
