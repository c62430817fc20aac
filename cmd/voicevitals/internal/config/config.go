// Package config loads the voicevitals CLI configuration.
//
// Configuration is stored under os.UserConfigDir()/voicevitals/:
//
//	~/Library/Application Support/voicevitals/config.yaml  (macOS)
//	~/.config/voicevitals/config.yaml                      (Linux)
//	%AppData%/voicevitals/config.yaml                      (Windows)
//
// A missing file is not an error: every field has a default matching
// the shipped CREMA-D model, so the tool works out of the box with the
// artifact in one of the conventional probe directories.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	// appDir is the directory name under os.UserConfigDir().
	appDir = "voicevitals"

	// configFile is the configuration filename.
	configFile = "config.yaml"
)

// Config holds the analysis pipeline settings.
type Config struct {
	// ModelPath is an explicit path to the model artifact. Empty means
	// probe the conventional directories for ModelFile.
	ModelPath string `yaml:"model_path,omitempty"`

	// ModelFile is the artifact filename used when probing. Empty
	// means the built-in default.
	ModelFile string `yaml:"model_file,omitempty"`

	// Classes selects the label set: "cremad" (6 classes, default) or
	// "ravdess" (8 classes). Must match the deployed model.
	Classes string `yaml:"classes,omitempty"`

	// SampleRate is the model's training sample rate in Hz.
	SampleRate int `yaml:"sample_rate,omitempty"`

	// InputLength is the model's fixed input length in samples.
	InputLength int `yaml:"input_length,omitempty"`

	// GateRatio is the noise-gate threshold relative to the clip peak.
	// Negative disables the gate; zero means the default.
	GateRatio float64 `yaml:"gate_ratio,omitempty"`

	// SilenceFloor is the post-gate peak below which a clip is treated
	// as silence.
	SilenceFloor float64 `yaml:"silence_floor,omitempty"`

	// InputTensor and OutputTensor override the ONNX graph's tensor
	// names when set.
	InputTensor  string `yaml:"input_tensor,omitempty"`
	OutputTensor string `yaml:"output_tensor,omitempty"`

	// OnnxLibrary is the path to the onnxruntime shared library, for
	// installs where it is not on the default search path.
	OnnxLibrary string `yaml:"onnx_library,omitempty"`
}

// Load reads the configuration from the default location.
func Load() (*Config, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine config directory: %w", err)
	}
	return LoadFrom(filepath.Join(base, appDir, configFile))
}

// LoadFrom reads the configuration from a specific file. A missing
// file yields an empty (all-defaults) Config.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
