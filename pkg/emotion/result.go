package emotion

import (
	"math"
	"time"
)

// Intensity tier thresholds on the top-class probability. The
// comparison is strict: exactly 0.55 is still "low", exactly 0.85 is
// still "medium". These drive user-visible intensity badges and must
// stay consistent across releases.
const (
	highConfidence   = 0.85
	mediumConfidence = 0.55
)

// tierFor buckets a confidence value into an intensity tier.
func tierFor(confidence float32) Intensity {
	switch {
	case confidence > highConfidence:
		return IntensityHigh
	case confidence > mediumConfidence:
		return IntensityMedium
	default:
		return IntensityLow
	}
}

// distributionEpsilon is the tolerance for deciding whether a score
// vector is already a probability distribution.
const distributionEpsilon = 1e-3

// normalize turns a raw score vector into a probability distribution.
// Vectors that already sum to 1 with non-negative entries (softmax
// output layers) are passed through; anything else (raw logits) goes
// through an explicit softmax. This keeps decoding uniform across
// export formats.
func normalize(scores []float32) []float32 {
	var sum float64
	nonNegative := true
	for _, v := range scores {
		if v < 0 {
			nonNegative = false
			break
		}
		sum += float64(v)
	}
	if nonNegative && math.Abs(sum-1.0) < distributionEpsilon {
		return scores
	}
	return softmax(scores)
}

// softmax converts scores to probabilities summing to 1. Shifted by
// the max score for numeric stability.
func softmax(scores []float32) []float32 {
	maxScore := scores[0]
	for _, v := range scores[1:] {
		if v > maxScore {
			maxScore = v
		}
	}
	out := make([]float32, len(scores))
	var sum float64
	for i, v := range scores {
		e := math.Exp(float64(v - maxScore))
		out[i] = float32(e)
		sum += e
	}
	for i := range out {
		out[i] = float32(float64(out[i]) / sum)
	}
	return out
}

// argmax returns the index of the largest value.
func argmax(v []float32) int {
	best := 0
	for i, x := range v {
		if x > v[best] {
			best = i
		}
	}
	return best
}

// decodeResult maps a normalized probability vector to a Result using
// the ordered class list.
func decodeResult(probs []float32, classes []Label, ts time.Time) *Result {
	idx := argmax(probs)
	label := classes[idx]
	confidence := probs[idx]
	return &Result{
		Label:         label,
		Confidence:    confidence,
		Intensity:     tierFor(confidence),
		Metadata:      MetadataFor(label),
		Probabilities: probs,
		Timestamp:     ts,
	}
}

// silenceResult is the deterministic early-exit for clips whose
// post-gate energy is below the silence floor. Not an error: a
// designed neutral classification with fixed low confidence.
func silenceResult(ts time.Time) *Result {
	return &Result{
		Label:     Neutral,
		Intensity: IntensityLow,
		Metadata:  MetadataFor(Neutral),
		Timestamp: ts,
	}
}

// fallbackResult is the degraded-path result: a fixed neutral label
// with zero confidence, the distinct fallback glyph and an error
// marker describing the cause.
func fallbackResult(cause string, ts time.Time) *Result {
	return &Result{
		Label:     Neutral,
		Intensity: IntensityLow,
		Metadata:  FallbackMetadata,
		Timestamp: ts,
		Err:       cause,
	}
}
