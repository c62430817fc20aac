package emotion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocateModelMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LocateModel("")
	if !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("err = %v, want ErrModelUnavailable", err)
	}
}

func TestLocateModelInModelsDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll("models", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("models", DefaultModelFile), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, err := LocateModel("")
	if err != nil {
		t.Fatalf("LocateModel: %v", err)
	}
	if path != filepath.Join("models", DefaultModelFile) {
		t.Errorf("path = %s", path)
	}
}

func TestLocateModelAssetsWins(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	for _, d := range []string{"assets", "models"} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(d, "m.onnx"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	path, err := LocateModel("m.onnx")
	if err != nil {
		t.Fatalf("LocateModel: %v", err)
	}
	if path != filepath.Join("assets", "m.onnx") {
		t.Errorf("path = %s, want assets to win", path)
	}
}

func TestLocateModelIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	// A directory with the artifact name must not match.
	if err := os.MkdirAll(filepath.Join("assets", "m.onnx"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := LocateModel("m.onnx")
	if !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("err = %v, want ErrModelUnavailable", err)
	}
}
