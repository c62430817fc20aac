package emotion

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultModelFile is the conventional model artifact filename probed
// by LocateModel.
const DefaultModelFile = "voice_model.onnx"

// modelSearchDirs are probed in order; first match wins.
var modelSearchDirs = []string{"assets", ".", "models"}

// LocateModel searches the conventional directories for a model
// artifact with the given filename (DefaultModelFile when name is
// empty), relative to the current working directory. Absence is not
// fatal to the pipeline — callers treat the returned
// ErrModelUnavailable as the signal to run in fallback mode.
func LocateModel(name string) (string, error) {
	if name == "" {
		name = DefaultModelFile
	}
	for _, dir := range modelSearchDirs {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s not found in %v", ErrModelUnavailable, name, modelSearchDirs)
}
