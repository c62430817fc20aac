package emotion

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXModel implements [Model] on ONNX Runtime.
//
// The session and its input/output tensors are allocated once at load
// time; every Infer call copies the signal into the pre-allocated
// input tensor and runs the session. The input shape is fixed at
// [1, length, 1] (batch, samples, channels), matching the exported
// voice models.
//
// # Thread Safety
//
// Infer serializes the forward pass with a mutex. The session reuses
// one pair of tensors, so interleaved Run calls would race on the
// tensor buffers regardless of the runtime's own locking.
type ONNXModel struct {
	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	length  int
	classes int
	closed  bool
}

// The process-wide ONNX Runtime environment is initialized on first
// model load and kept for the life of the process.
var (
	onnxInitOnce sync.Once
	onnxInitErr  error
)

func initONNXRuntime(libraryPath string) error {
	onnxInitOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		onnxInitErr = ort.InitializeEnvironment()
	})
	return onnxInitErr
}

// ONNXModelOption configures an ONNXModel.
type ONNXModelOption func(*onnxModelConfig)

type onnxModelConfig struct {
	inputName   string
	outputName  string
	length      int
	classes     int
	libraryPath string
}

// WithONNXTensorNames overrides the graph's input and output tensor
// names. Defaults: "input" and "output" (the names used when exporting
// the voice models).
func WithONNXTensorNames(input, output string) ONNXModelOption {
	return func(c *onnxModelConfig) {
		c.inputName = input
		c.outputName = output
	}
}

// WithONNXInputLength sets the model input length in samples.
// Default: DefaultInputLength.
func WithONNXInputLength(n int) ONNXModelOption {
	return func(c *onnxModelConfig) {
		if n > 0 {
			c.length = n
		}
	}
}

// WithONNXClasses sets the output class count. Default: 6 (CREMA-D).
func WithONNXClasses(n int) ONNXModelOption {
	return func(c *onnxModelConfig) {
		if n > 0 {
			c.classes = n
		}
	}
}

// WithONNXLibraryPath sets the path to the onnxruntime shared library.
// Only honored by the first model loaded in the process.
func WithONNXLibraryPath(path string) ONNXModelOption {
	return func(c *onnxModelConfig) {
		c.libraryPath = path
	}
}

// NewONNXModel loads a frozen ONNX classifier from disk. Loading is a
// one-time startup step; a load failure here means all subsequent
// analysis takes the fallback path.
func NewONNXModel(path string, opts ...ONNXModelOption) (*ONNXModel, error) {
	cfg := &onnxModelConfig{
		inputName:  "input",
		outputName: "output",
		length:     DefaultInputLength,
		classes:    len(ClassesCREMAD),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := initONNXRuntime(cfg.libraryPath); err != nil {
		return nil, fmt.Errorf("emotion: initialize onnxruntime: %w", err)
	}

	inputShape := ort.NewShape(1, int64(cfg.length), 1)
	input, err := ort.NewTensor(inputShape, make([]float32, cfg.length))
	if err != nil {
		return nil, fmt.Errorf("emotion: create input tensor: %w", err)
	}

	outputShape := ort.NewShape(1, int64(cfg.classes))
	output, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("emotion: create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(path,
		[]string{cfg.inputName},
		[]string{cfg.outputName},
		[]ort.Value{input},
		[]ort.Value{output},
		nil)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("emotion: load model %s: %w", path, err)
	}

	return &ONNXModel{
		session: session,
		input:   input,
		output:  output,
		length:  cfg.length,
		classes: cfg.classes,
	}, nil
}

// Infer implements [Model].
func (m *ONNXModel) Infer(signal []float32) ([]float32, error) {
	if len(signal) != m.length {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrBadShape, len(signal), m.length)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, fmt.Errorf("emotion: model is closed")
	}

	copy(m.input.GetData(), signal)
	if err := m.session.Run(); err != nil {
		return nil, fmt.Errorf("emotion: inference: %w", err)
	}

	scores := make([]float32, m.classes)
	copy(scores, m.output.GetData())
	return scores, nil
}

// Classes implements [Model].
func (m *ONNXModel) Classes() int {
	return m.classes
}

// Close implements [Model].
func (m *ONNXModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	err := m.session.Destroy()
	m.input.Destroy()
	m.output.Destroy()
	return err
}
