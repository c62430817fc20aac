package emotion

// Conditioner turns raw PCM16 samples into the fixed-length float32
// signal the model consumes.
//
// # Algorithm
//
//  1. Convert int16 → float32 by dividing by 32768. No per-file peak
//     normalization: the models were trained on unit-range conversion
//     only, and peak normalization would amplify quiet noise floors.
//  2. Noise gate (optional): zero every sample whose magnitude is
//     below GateRatio × the clip peak. This suppresses background
//     talkers below the main speaker without reshaping the dominant
//     waveform.
//  3. Silence check: if the post-gate peak is under SilenceFloor the
//     clip is reported silent so the caller can skip inference —
//     near-zero-energy input makes the classifier's argmax unreliable.
//  4. Framing: longer clips are cut to a centered window of Length
//     samples (utterances often carry leading silence); shorter clips
//     are zero-padded at the end. The output length is always exactly
//     Length.
type Conditioner struct {
	length       int
	gateRatio    float32
	silenceFloor float32
	maxInput     int
}

// Conditioning defaults matching the training pipeline.
const (
	// DefaultInputLength is 3 seconds at 16 kHz.
	DefaultInputLength = 48000

	// DefaultGateRatio is the noise-gate threshold relative to the
	// clip peak.
	DefaultGateRatio = 0.30

	// DefaultSilenceFloor is the post-gate peak below which a clip is
	// treated as silence.
	DefaultSilenceFloor = 0.10

	// maxInputFactor bounds how much audio is conditioned relative to
	// the model input length. Anything longer is pre-cut to a centered
	// window of this many model inputs before gating, so pathological
	// file lengths cannot blow up latency.
	maxInputFactor = 20
)

// ConditionerOption configures a Conditioner.
type ConditionerOption func(*Conditioner)

// WithInputLength sets the fixed output length in samples.
func WithInputLength(n int) ConditionerOption {
	return func(c *Conditioner) {
		if n > 0 {
			c.length = n
		}
	}
}

// WithGateRatio sets the noise-gate threshold as a fraction of the
// clip peak. Zero disables the gate.
func WithGateRatio(r float32) ConditionerOption {
	return func(c *Conditioner) {
		if r >= 0 && r < 1 {
			c.gateRatio = r
		}
	}
}

// WithSilenceFloor sets the post-gate peak below which the clip is
// classified as silence without running the model.
func WithSilenceFloor(f float32) ConditionerOption {
	return func(c *Conditioner) {
		if f >= 0 {
			c.silenceFloor = f
		}
	}
}

// NewConditioner creates a Conditioner with the training-time defaults.
func NewConditioner(opts ...ConditionerOption) *Conditioner {
	c := &Conditioner{
		length:       DefaultInputLength,
		gateRatio:    DefaultGateRatio,
		silenceFloor: DefaultSilenceFloor,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.maxInput = c.length * maxInputFactor
	return c
}

// Length returns the fixed output length in samples.
func (c *Conditioner) Length() int {
	return c.length
}

// Condition converts samples to the model input signal. The returned
// slice always has length Length(). silent is true when the post-gate
// peak is below the silence floor; the signal is still returned so
// callers that want to force inference can.
func (c *Conditioner) Condition(samples []int16) (signal []float32, silent bool) {
	if len(samples) > c.maxInput {
		start := (len(samples) - c.maxInput) / 2
		samples = samples[start : start+c.maxInput]
	}

	buf := make([]float32, len(samples))
	var peak float32
	for i, s := range samples {
		v := float32(s) / 32768.0
		buf[i] = v
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}

	if c.gateRatio > 0 && peak > 0 {
		threshold := peak * c.gateRatio
		for i, v := range buf {
			if v < threshold && v > -threshold {
				buf[i] = 0
			}
		}
	}

	// The gate never touches samples at or above the threshold, so the
	// post-gate peak equals the pre-gate peak.
	silent = peak < c.silenceFloor

	return c.frame(buf), silent
}

// frame cuts or pads buf to exactly c.length samples: a centered
// window when too long, zero padding at the tail when too short.
func (c *Conditioner) frame(buf []float32) []float32 {
	if len(buf) == c.length {
		return buf
	}
	if len(buf) > c.length {
		start := (len(buf) - c.length) / 2
		return buf[start : start+c.length]
	}
	out := make([]float32, c.length)
	copy(out, buf)
	return out
}
