package emotion

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/voicevitals/voicevitals/pkg/audio/rate"
	"github.com/voicevitals/voicevitals/pkg/audio/wav"
)

// DefaultSampleRate is the sample rate the voice models were trained
// at. Clips at other rates are resampled (with a warning, since the
// conversion can shave a little accuracy off compared to native
// recordings).
const DefaultSampleRate = 16000

// Classifier is the top-level analysis pipeline: decode, condition,
// infer, decode result.
//
// The model is injected once at construction and shared read-only by
// all calls. A Classifier built without a model (or whose model failed
// to load) runs permanently in fallback mode; the missing artifact is
// not re-probed per call.
//
// Analyze is a synchronous blocking call taking hundreds of
// milliseconds to low seconds. Interactive callers run it off their
// event thread; that offloading is the caller's job, not this type's.
type Classifier struct {
	model      Model
	cond       *Conditioner
	classes    []Label
	sampleRate int
	logger     *slog.Logger
	now        func() time.Time
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithModel injects the inference backend. A nil model puts the
// classifier in fallback mode.
func WithModel(m Model) ClassifierOption {
	return func(c *Classifier) {
		c.model = m
	}
}

// WithClasses sets the ordered class list. Its length must equal the
// model's Classes(); the order must match the training label encoding.
// Default: ClassesCREMAD.
func WithClasses(classes []Label) ClassifierOption {
	return func(c *Classifier) {
		if len(classes) > 0 {
			c.classes = classes
		}
	}
}

// WithConditioner overrides the signal conditioner.
func WithConditioner(cond *Conditioner) ClassifierOption {
	return func(c *Classifier) {
		if cond != nil {
			c.cond = cond
		}
	}
}

// WithSampleRate sets the model's expected sample rate in Hz.
func WithSampleRate(hz int) ClassifierOption {
	return func(c *Classifier) {
		if hz > 0 {
			c.sampleRate = hz
		}
	}
}

// WithLogger sets the logger for pipeline warnings and fallback
// causes. Default: slog.Default().
func WithLogger(l *slog.Logger) ClassifierOption {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// withClock overrides the timestamp source (tests only).
func withClock(now func() time.Time) ClassifierOption {
	return func(c *Classifier) {
		c.now = now
	}
}

// NewClassifier creates a Classifier. Typical wiring:
//
//	path, err := emotion.LocateModel("")
//	var model emotion.Model
//	if err == nil {
//		model, err = emotion.NewONNXModel(path)
//	}
//	if err != nil {
//		slog.Warn("emotion model unavailable", "error", err)
//	}
//	clf := emotion.NewClassifier(emotion.WithModel(model))
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		cond:       NewConditioner(),
		classes:    ClassesCREMAD,
		sampleRate: DefaultSampleRate,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classes returns the ordered class list this classifier decodes with.
func (c *Classifier) Classes() []Label {
	return c.classes
}

// Ready reports whether a model is loaded. When false every Analyze
// call takes the fallback path.
func (c *Classifier) Ready() bool {
	return c.model != nil
}

// Analyze classifies the recording at path. It never returns an
// error: every failure mode degrades to a well-formed fallback Result
// whose Err field records the cause.
func (c *Classifier) Analyze(path string) *Result {
	clip, err := wav.DecodeFile(path)
	if err != nil {
		c.logger.Warn("emotion: decode failed", "path", path, "error", err)
		return fallbackResult(fmt.Sprintf("decode: %v", err), c.now())
	}
	return c.analyzeClip(clip)
}

// AnalyzeClip classifies an already-decoded clip. Same contract as
// Analyze.
func (c *Classifier) AnalyzeClip(clip *wav.Clip) *Result {
	if clip == nil || len(clip.Samples) == 0 {
		return fallbackResult("decode: empty clip", c.now())
	}
	return c.analyzeClip(clip)
}

func (c *Classifier) analyzeClip(clip *wav.Clip) *Result {
	samples := clip.Samples
	if clip.SampleRate != c.sampleRate {
		c.logger.Warn("emotion: sample rate mismatch, resampling",
			"got", clip.SampleRate, "want", c.sampleRate)
		converted, err := rate.Convert(samples, clip.SampleRate, c.sampleRate)
		if err != nil {
			// Feed the original samples anyway; a rate mismatch is a
			// warning, not a hard failure.
			c.logger.Warn("emotion: resample failed", "error", err)
		} else {
			samples = converted
		}
	}

	signal, silent := c.cond.Condition(samples)
	if silent {
		return silenceResult(c.now())
	}

	if c.model == nil {
		return fallbackResult(ErrModelUnavailable.Error(), c.now())
	}

	scores, err := c.model.Infer(signal)
	if err != nil {
		c.logger.Error("emotion: inference failed", "error", err)
		return fallbackResult(fmt.Sprintf("inference: %v", err), c.now())
	}
	if len(scores) != len(c.classes) {
		c.logger.Error("emotion: class count mismatch",
			"scores", len(scores), "classes", len(c.classes))
		return fallbackResult(
			fmt.Sprintf("inference: %d scores for %d classes", len(scores), len(c.classes)),
			c.now())
	}

	return decodeResult(normalize(scores), c.classes, c.now())
}
