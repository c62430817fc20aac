package commands

import (
	"testing"

	"github.com/voicevitals/voicevitals/cmd/voicevitals/internal/config"
	"github.com/voicevitals/voicevitals/pkg/emotion"
)

func TestSidecarPath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"entry.wav", "entry.emotion.json"},
		{"/tmp/rec/entry.wav", "/tmp/rec/entry.emotion.json"},
		{"noext", "noext.emotion.json"},
	}
	for _, tc := range cases {
		if got := sidecarPath(tc.in); got != tc.want {
			t.Errorf("sidecarPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildClassifierFallbackWithoutModel(t *testing.T) {
	t.Chdir(t.TempDir()) // no artifact in any probe directory

	clf := buildClassifier(&config.Config{})
	if clf.Ready() {
		t.Error("classifier reports ready with no model artifact")
	}
	if len(clf.Classes()) != len(emotion.ClassesCREMAD) {
		t.Errorf("default class list has %d entries, want %d",
			len(clf.Classes()), len(emotion.ClassesCREMAD))
	}
}

func TestBuildClassifierRAVDESS(t *testing.T) {
	t.Chdir(t.TempDir())

	clf := buildClassifier(&config.Config{Classes: "RAVDESS"})
	if len(clf.Classes()) != len(emotion.ClassesRAVDESS) {
		t.Errorf("class list has %d entries, want %d",
			len(clf.Classes()), len(emotion.ClassesRAVDESS))
	}
}
