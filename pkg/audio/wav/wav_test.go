package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// buildWave assembles a minimal RIFF/WAVE file with a 16-bit PCM data
// chunk containing the given interleaved samples.
func buildWave(sampleRate, channels int, samples []int16) []byte {
	var data bytes.Buffer
	for _, s := range samples {
		binary.Write(&data, binary.LittleEndian, s)
	}

	var fmtChunk bytes.Buffer
	binary.Write(&fmtChunk, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&fmtChunk, binary.LittleEndian, uint16(channels))
	binary.Write(&fmtChunk, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&fmtChunk, binary.LittleEndian, uint32(sampleRate*channels*2)) // byte rate
	binary.Write(&fmtChunk, binary.LittleEndian, uint16(channels*2))            // block align
	binary.Write(&fmtChunk, binary.LittleEndian, uint16(16))                    // bits

	var out bytes.Buffer
	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(4+8+fmtChunk.Len()+8+data.Len()))
	out.WriteString("WAVE")
	out.WriteString("fmt ")
	binary.Write(&out, binary.LittleEndian, uint32(fmtChunk.Len()))
	out.Write(fmtChunk.Bytes())
	out.WriteString("data")
	binary.Write(&out, binary.LittleEndian, uint32(data.Len()))
	out.Write(data.Bytes())
	return out.Bytes()
}

func TestDecodeMono(t *testing.T) {
	want := []int16{0, 1000, -1000, 32767, -32768}
	clip, err := Decode(bytes.NewReader(buildWave(16000, 1, want)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if clip.SampleRate != 16000 {
		t.Errorf("sample rate = %d, want 16000", clip.SampleRate)
	}
	if clip.SourceChannels != 1 {
		t.Errorf("source channels = %d, want 1", clip.SourceChannels)
	}
	if len(clip.Samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(clip.Samples), len(want))
	}
	for i, s := range clip.Samples {
		if s != want[i] {
			t.Errorf("sample %d = %d, want %d", i, s, want[i])
		}
	}
}

func TestDecodeStereoDownmix(t *testing.T) {
	// Interleaved L/R pairs; expect the average of each pair.
	interleaved := []int16{100, 300, -200, -400, 1000, 1000}
	clip, err := Decode(bytes.NewReader(buildWave(44100, 2, interleaved)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []int16{200, -300, 1000}
	if len(clip.Samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(clip.Samples), len(want))
	}
	for i, s := range clip.Samples {
		if s != want[i] {
			t.Errorf("sample %d = %d, want %d", i, s, want[i])
		}
	}
	if clip.SourceChannels != 2 {
		t.Errorf("source channels = %d, want 2", clip.SourceChannels)
	}
}

func TestDecodeSkipsUnknownChunks(t *testing.T) {
	raw := buildWave(16000, 1, []int16{1, 2, 3})

	// Splice a LIST chunk between "WAVE" and "fmt ".
	var extra bytes.Buffer
	extra.WriteString("LIST")
	binary.Write(&extra, binary.LittleEndian, uint32(5))
	extra.WriteString("INFOx")
	extra.WriteByte(0) // pad byte for odd length

	spliced := append(append(append([]byte{}, raw[:12]...), extra.Bytes()...), raw[12:]...)
	clip, err := Decode(bytes.NewReader(spliced))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(clip.Samples) != 3 {
		t.Errorf("got %d samples, want 3", len(clip.Samples))
	}
}

func TestDecodeNotWave(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("this is not audio data at all")))
	if !errors.Is(err, ErrNotWave) {
		t.Errorf("err = %v, want ErrNotWave", err)
	}
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	raw := buildWave(16000, 1, []int16{1, 2})
	// Patch the format tag (first field of the fmt chunk) to 3 = IEEE float.
	raw[20] = 3
	_, err := Decode(bytes.NewReader(raw))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestDecodeTruncatedHeader(t *testing.T) {
	raw := buildWave(16000, 1, []int16{1, 2, 3})
	_, err := Decode(bytes.NewReader(raw[:20]))
	if err == nil {
		t.Error("expected error for truncated file")
	}
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "nope.wav"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecodeFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, buildWave(16000, 1, make([]int16, 16000)), 0o644); err != nil {
		t.Fatal(err)
	}
	clip, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if got := clip.Duration(); got != time.Second {
		t.Errorf("duration = %v, want 1s", got)
	}
}
