// Package wav decodes RIFF/WAVE files containing linear PCM audio.
//
// Only uncompressed 16-bit PCM is supported, which is the format the
// voicevitals recorder produces. Multi-channel files are down-mixed to
// mono by averaging the channels, so every decoded clip is single
// channel regardless of the source layout.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Errors returned by the decoder. Callers usually only care that the
// clip could not be decoded; the distinction exists for logging.
var (
	// ErrNotWave means the file is not a RIFF/WAVE container at all.
	ErrNotWave = errors.New("wav: not a RIFF/WAVE file")

	// ErrUnsupported means the container is valid but the audio format
	// is not 16-bit linear PCM.
	ErrUnsupported = errors.New("wav: unsupported audio format")

	// ErrMalformed means the container is truncated or internally
	// inconsistent.
	ErrMalformed = errors.New("wav: malformed file")
)

const (
	formatPCM = 1
	// WAVE_FORMAT_EXTENSIBLE wraps PCM with an extended header; the
	// sub-format is not inspected, 16-bit samples are assumed valid.
	formatExtensible = 0xFFFE
)

// Clip is a decoded mono PCM waveform.
type Clip struct {
	// Samples are signed 16-bit samples after down-mixing to mono.
	Samples []int16

	// SampleRate is the sampling frequency in Hz.
	SampleRate int

	// SourceChannels is the channel count of the original file before
	// down-mixing (1 for mono recordings).
	SourceChannels int
}

// Duration returns the clip length as wall time.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}

// DecodeFile reads and decodes a WAVE file from disk.
func DecodeFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a RIFF/WAVE stream and returns the contained PCM audio.
// Unknown chunks (LIST, fact, cue, ...) are skipped. The fmt chunk must
// appear before the data chunk.
func Decode(r io.Reader) (*Clip, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWave, err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, ErrNotWave
	}

	var (
		sampleRate    int
		channels      int
		bitsPerSample int
		haveFmt       bool
	)

	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("%w: no data chunk", ErrMalformed)
			}
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		chunkID := string(hdr[0:4])
		chunkLen := binary.LittleEndian.Uint32(hdr[4:8])

		switch chunkID {
		case "fmt ":
			if chunkLen < 16 {
				return nil, fmt.Errorf("%w: fmt chunk too short", ErrMalformed)
			}
			buf := make([]byte, chunkLen)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			format := binary.LittleEndian.Uint16(buf[0:2])
			if format != formatPCM && format != formatExtensible {
				return nil, fmt.Errorf("%w: format tag %d", ErrUnsupported, format)
			}
			channels = int(binary.LittleEndian.Uint16(buf[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(buf[4:8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(buf[14:16]))
			if bitsPerSample != 16 {
				return nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupported, bitsPerSample)
			}
			if channels <= 0 || sampleRate <= 0 {
				return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrMalformed, channels, sampleRate)
			}
			haveFmt = true

		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrMalformed)
			}
			data := make([]byte, chunkLen)
			n, err := io.ReadFull(r, data)
			if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			// Tolerate a truncated final chunk: keep whole frames only.
			data = data[:n]
			return decodeData(data, sampleRate, channels), nil

		default:
			// Chunks are word-aligned; odd lengths carry a pad byte.
			skip := int64(chunkLen)
			if chunkLen%2 == 1 {
				skip++
			}
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
		}
	}
}

// decodeData converts little-endian 16-bit frames to mono samples,
// averaging across channels.
func decodeData(data []byte, sampleRate, channels int) *Clip {
	frameBytes := 2 * channels
	numFrames := len(data) / frameBytes

	samples := make([]int16, numFrames)
	for i := 0; i < numFrames; i++ {
		off := i * frameBytes
		var sum int32
		for ch := 0; ch < channels; ch++ {
			s := int16(binary.LittleEndian.Uint16(data[off+2*ch:]))
			sum += int32(s)
		}
		samples[i] = int16(sum / int32(channels))
	}

	return &Clip{
		Samples:        samples,
		SampleRate:     sampleRate,
		SourceChannels: channels,
	}
}
