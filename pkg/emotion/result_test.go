package emotion

import (
	"math"
	"testing"
	"time"
)

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		confidence float32
		want       Intensity
	}{
		{0.86, IntensityHigh},
		{0.851, IntensityHigh},
		{0.85, IntensityMedium}, // boundary is exclusive
		{0.5501, IntensityMedium},
		{0.55, IntensityLow}, // boundary is exclusive
		{0.54, IntensityLow},
		{0.0, IntensityLow},
		{1.0, IntensityHigh},
	}
	for _, tc := range cases {
		if got := tierFor(tc.confidence); got != tc.want {
			t.Errorf("tierFor(%v) = %s, want %s", tc.confidence, got, tc.want)
		}
	}
}

func TestNormalizePassthrough(t *testing.T) {
	in := []float32{0.7, 0.2, 0.1}
	out := normalize(in)
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("distribution input was altered at %d: %f -> %f", i, in[i], out[i])
		}
	}
}

func TestNormalizeLogits(t *testing.T) {
	out := normalize([]float32{2, 1, 0, -1, -2, -3})
	var sum float64
	for _, v := range out {
		if v < 0 || v > 1 {
			t.Errorf("probability %f outside [0, 1]", v)
		}
		sum += float64(v)
	}
	if math.Abs(sum-1.0) > 1e-5 {
		t.Errorf("probabilities sum to %f, want 1", sum)
	}
	if argmax(out) != 0 {
		t.Errorf("softmax changed the argmax: %v", out)
	}
	// Softmax is order-preserving.
	for i := 1; i < len(out); i++ {
		if out[i] >= out[i-1] {
			t.Errorf("order not preserved at %d: %v", i, out)
		}
	}
}

func TestArgmax(t *testing.T) {
	if got := argmax([]float32{0.1, 0.5, 0.3}); got != 1 {
		t.Errorf("argmax = %d, want 1", got)
	}
	// Ties resolve to the first index, matching the training decoder.
	if got := argmax([]float32{0.5, 0.5}); got != 0 {
		t.Errorf("argmax tie = %d, want 0", got)
	}
}

func TestDecodeResult(t *testing.T) {
	ts := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	probs := []float32{0.02, 0.9, 0.02, 0.02, 0.02, 0.02}
	r := decodeResult(probs, ClassesCREMAD, ts)

	if r.Label != Happy {
		t.Errorf("label = %s, want happy", r.Label)
	}
	if r.Confidence != 0.9 {
		t.Errorf("confidence = %f, want 0.9", r.Confidence)
	}
	if r.Intensity != IntensityHigh {
		t.Errorf("intensity = %s, want high", r.Intensity)
	}
	if r.Color != "#4CAF50" {
		t.Errorf("color = %s, want #4CAF50", r.Color)
	}
	if !r.Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", r.Timestamp, ts)
	}
	if r.Degraded() {
		t.Error("successful result reported degraded")
	}
}

func TestMetadataForUnknownLabel(t *testing.T) {
	if got := MetadataFor(Label("bewildered")); got != DefaultMetadata {
		t.Errorf("unknown label metadata = %+v, want default", got)
	}
}

func TestFallbackResultShape(t *testing.T) {
	r := fallbackResult("decode: boom", time.Now())
	if !r.Degraded() {
		t.Error("fallback result not marked degraded")
	}
	if r.Label != Neutral || r.Intensity != IntensityLow {
		t.Errorf("fallback = %s/%s, want neutral/low", r.Label, r.Intensity)
	}
	if r.Emoji == MetadataFor(Neutral).Emoji {
		t.Error("fallback glyph must be distinct from the neutral label's")
	}
}

func TestSilenceResultNotDegraded(t *testing.T) {
	r := silenceResult(time.Now())
	if r.Degraded() {
		t.Error("silence result is a designed early-exit, not an error")
	}
	if r.Label != Neutral || r.Intensity != IntensityLow || r.Confidence != 0 {
		t.Errorf("silence result = %s/%s/%f, want neutral/low/0", r.Label, r.Intensity, r.Confidence)
	}
}
