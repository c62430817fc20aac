package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/voicevitals/voicevitals/cmd/voicevitals/internal/config"
	"github.com/voicevitals/voicevitals/pkg/emotion"
)

var (
	analyzeSave bool
	analyzeJSON bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <clip.wav> [more clips...]",
	Short: "Classify the emotional tone of recordings",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clf := buildClassifier(globalConfig)

		for _, path := range args {
			result := clf.Analyze(path)

			if analyzeJSON {
				raw, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(raw))
			} else {
				printResult(path, result, clf.Classes())
			}

			if analyzeSave {
				if err := writeSidecar(path, result); err != nil {
					return err
				}
			}
		}
		return nil
	},
}

// buildClassifier wires the pipeline from configuration. Model load
// failures are not fatal: the classifier runs in fallback mode and
// every result carries an error marker.
func buildClassifier(cfg *config.Config) *emotion.Classifier {
	classes := emotion.ClassesCREMAD
	if strings.EqualFold(cfg.Classes, "ravdess") {
		classes = emotion.ClassesRAVDESS
	}

	condOpts := []emotion.ConditionerOption{}
	if cfg.InputLength > 0 {
		condOpts = append(condOpts, emotion.WithInputLength(cfg.InputLength))
	}
	if cfg.GateRatio < 0 {
		condOpts = append(condOpts, emotion.WithGateRatio(0))
	} else if cfg.GateRatio > 0 {
		condOpts = append(condOpts, emotion.WithGateRatio(float32(cfg.GateRatio)))
	}
	if cfg.SilenceFloor > 0 {
		condOpts = append(condOpts, emotion.WithSilenceFloor(float32(cfg.SilenceFloor)))
	}

	model := loadModel(cfg, classes)

	opts := []emotion.ClassifierOption{
		emotion.WithModel(model),
		emotion.WithClasses(classes),
		emotion.WithConditioner(emotion.NewConditioner(condOpts...)),
	}
	if cfg.SampleRate > 0 {
		opts = append(opts, emotion.WithSampleRate(cfg.SampleRate))
	}
	return emotion.NewClassifier(opts...)
}

// loadModel locates and loads the ONNX artifact. Returns nil when the
// artifact is absent or fails to load; the decision is made once here,
// not per analysis call.
func loadModel(cfg *config.Config, classes []emotion.Label) emotion.Model {
	path := cfg.ModelPath
	if path == "" {
		located, err := emotion.LocateModel(cfg.ModelFile)
		if err != nil {
			slog.Warn("no emotion model, running in fallback mode", "error", err)
			return nil
		}
		path = located
	}

	opts := []emotion.ONNXModelOption{
		emotion.WithONNXClasses(len(classes)),
	}
	if cfg.InputLength > 0 {
		opts = append(opts, emotion.WithONNXInputLength(cfg.InputLength))
	}
	if cfg.InputTensor != "" || cfg.OutputTensor != "" {
		opts = append(opts, emotion.WithONNXTensorNames(cfg.InputTensor, cfg.OutputTensor))
	}
	if cfg.OnnxLibrary != "" {
		opts = append(opts, emotion.WithONNXLibraryPath(cfg.OnnxLibrary))
	}

	model, err := emotion.NewONNXModel(path, opts...)
	if err != nil {
		slog.Warn("emotion model failed to load, running in fallback mode",
			"path", path, "error", err)
		return nil
	}
	return model
}

// printResult renders one analysis result for the terminal.
func printResult(path string, r *emotion.Result, classes []emotion.Label) {
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(r.Color))
	dimStyle := lipgloss.NewStyle().Faint(true)

	fmt.Printf("%s\n", dimStyle.Render(path))
	fmt.Printf("  %s %s  intensity: %s", r.Emoji, labelStyle.Render(string(r.Label)), r.Intensity)
	if r.Confidence > 0 {
		fmt.Printf("  confidence: %.1f%%", r.Confidence*100)
	}
	fmt.Println()

	if r.Degraded() {
		fmt.Printf("  %s\n", dimStyle.Render("fallback: "+r.Err))
		return
	}

	// Per-class breakdown bar chart.
	for i, p := range r.Probabilities {
		if i >= len(classes) {
			break
		}
		bar := strings.Repeat("#", int(p*20))
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(emotion.MetadataFor(classes[i]).Color))
		fmt.Printf("  %-10s %s %.1f%%\n", classes[i], style.Render(bar), p*100)
	}
}

// writeSidecar persists the result as the clip's companion metadata
// document, e.g. journal_entry.wav -> journal_entry.emotion.json.
func writeSidecar(clipPath string, r *emotion.Result) error {
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	path := sidecarPath(clipPath)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	slog.Debug("wrote sidecar", "path", path)
	return nil
}

// sidecarPath derives the companion JSON path from the clip path.
func sidecarPath(clipPath string) string {
	base := strings.TrimSuffix(clipPath, ".wav")
	return base + ".emotion.json"
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "write <clip>.emotion.json next to each clip")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(analyzeCmd)
}
