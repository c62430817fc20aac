// Package emotion classifies the emotional tone of short voice
// recordings using a pre-trained neural model.
//
// # Pipeline
//
// A single Analyze call runs four stages:
//
//  1. Decode: WAV file → mono PCM16 samples (pkg/audio/wav)
//  2. Condition: PCM16 → fixed-length float32 signal in [-1, 1]
//  3. Infer: signal → probability vector over the class list
//  4. Decode result: probabilities → Result with label, confidence,
//     intensity tier and presentation metadata
//
// # Preprocessing Contract
//
// The conditioner must reproduce the model's training-time
// preprocessing exactly: int16 samples divided by 32768, an optional
// noise gate relative to the clip peak, and a centered window padded
// or trimmed to the model's fixed input length. Any drift here
// silently degrades accuracy with no error signal, so the defaults in
// this package are part of the model's versioned contract.
//
// # Failure Behavior
//
// Analyze never returns an error. Missing files, undecodable audio,
// an absent model artifact and inference failures all degrade to a
// well-formed fallback Result carrying an error marker and a distinct
// placeholder glyph. Callers can always display the result.
package emotion

import (
	"time"
)

// Label is a categorical emotion produced by the classifier.
type Label string

// The closed label set. Which labels a deployment uses, and in what
// order, depends on the model variant; see ClassesCREMAD and
// ClassesRAVDESS.
const (
	Neutral   Label = "neutral"
	Calm      Label = "calm"
	Happy     Label = "happy"
	Sad       Label = "sad"
	Angry     Label = "angry"
	Fearful   Label = "fearful"
	Disgust   Label = "disgust"
	Surprised Label = "surprised"
)

// Class lists for the two trained model families. The index order
// mirrors the training label encoding and is the decoding contract:
// it must travel with the model artifact, never be re-sorted.
var (
	// ClassesCREMAD is the 6-class CREMA-D model output order.
	ClassesCREMAD = []Label{Neutral, Happy, Sad, Angry, Fearful, Disgust}

	// ClassesRAVDESS is the 8-class RAVDESS model output order.
	ClassesRAVDESS = []Label{Neutral, Calm, Happy, Sad, Angry, Fearful, Disgust, Surprised}
)

// Intensity is the discretized confidence tier shown to users.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Metadata is the static presentation attributes of a label: a hex
// display color, an emoji glyph and a Material icon identifier.
type Metadata struct {
	Color string `json:"color"`
	Emoji string `json:"emoji"`
	Icon  string `json:"icon"`
}

// metadataTable maps each label to its presentation metadata.
// Process-wide constant; never mutated after init.
var metadataTable = map[Label]Metadata{
	Neutral:   {Color: "#9E9E9E", Emoji: "😐", Icon: "sentiment_neutral"},
	Calm:      {Color: "#00BCD4", Emoji: "😌", Icon: "self_improvement"},
	Happy:     {Color: "#4CAF50", Emoji: "😊", Icon: "sentiment_satisfied"},
	Sad:       {Color: "#2196F3", Emoji: "😢", Icon: "sentiment_dissatisfied"},
	Angry:     {Color: "#F44336", Emoji: "😠", Icon: "sentiment_very_dissatisfied"},
	Fearful:   {Color: "#9C27B0", Emoji: "😨", Icon: "psychology_alt"},
	Disgust:   {Color: "#795548", Emoji: "🤢", Icon: "sick"},
	Surprised: {Color: "#FF9800", Emoji: "😲", Icon: "auto_awesome"},
}

// DefaultMetadata is returned for labels missing from the table, so an
// unrecognized label never crashes a caller.
var DefaultMetadata = Metadata{Color: "#607D8B", Emoji: "🎙️", Icon: "graphic_eq"}

// FallbackMetadata marks results produced without a model prediction.
// The glyph is distinct from every real label's so UIs can signal
// degraded confidence.
var FallbackMetadata = Metadata{Color: "#607D8B", Emoji: "❓", Icon: "help"}

// MetadataFor returns the presentation metadata for a label, falling
// back to DefaultMetadata for unknown labels.
func MetadataFor(label Label) Metadata {
	if m, ok := metadataTable[label]; ok {
		return m
	}
	return DefaultMetadata
}

// Result is the outcome of one analysis call. It is immutable after
// construction and always well-formed, including on the fallback path.
//
// The JSON field names match the sidecar metadata format the recorder
// app persists next to each clip.
type Result struct {
	// Label is the predicted emotion.
	Label Label `json:"emotion"`

	// Confidence is the top-class probability in [0, 1]. Zero on the
	// silence and fallback paths.
	Confidence float32 `json:"confidence"`

	// Intensity is the tier derived from Confidence.
	Intensity Intensity `json:"intensity"`

	// Metadata is flattened into the JSON document (color, emoji, icon).
	Metadata

	// Probabilities is the full class distribution in class-list order.
	// Nil on the silence and fallback paths.
	Probabilities []float32 `json:"probabilities,omitempty"`

	// Timestamp is when the analysis completed.
	Timestamp time.Time `json:"timestamp"`

	// Err describes why a fallback result was produced. Empty on
	// success and on the silence short-circuit.
	Err string `json:"error,omitempty"`
}

// Degraded reports whether the result came from the fallback path
// rather than a model prediction.
func (r *Result) Degraded() bool {
	return r.Err != ""
}
