package emotion

import "errors"

// Errors in the inference taxonomy. They never cross Analyze's
// boundary; the classifier converts them to fallback results and the
// sentinels exist for logging and tests.
var (
	// ErrModelUnavailable means no model artifact could be located or
	// loaded. Decided once at startup, not retried per call.
	ErrModelUnavailable = errors.New("emotion: model unavailable")

	// ErrBadShape means the conditioned signal does not match the
	// model's fixed input length. This is a programming error in the
	// conditioner wiring, not a property of the input file.
	ErrBadShape = errors.New("emotion: unexpected input shape")
)

// Model runs a forward pass of the emotion classifier.
//
// The input signal must be a conditioned float32 waveform of the
// model's fixed input length (see Conditioner). The output is a score
// vector with exactly Classes() entries, either softmax probabilities
// or raw logits depending on the export format; the classifier
// normalizes uniformly either way.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. Backends whose
// runtime does not support re-entrant invocation serialize the forward
// pass internally with a mutex.
type Model interface {
	// Infer runs one forward pass and returns the class score vector.
	Infer(signal []float32) ([]float32, error)

	// Classes returns the size of the score vector.
	Classes() int

	// Close releases the underlying runtime resources (session,
	// tensors). The model is unusable afterwards.
	Close() error
}
