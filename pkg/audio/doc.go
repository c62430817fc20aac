// Package audio provides audio processing utilities.
//
// This package serves as an umbrella for audio-related sub-packages:
//
//   - wav: RIFF/WAVE container decoding for 16-bit PCM recordings
//   - rate: sample-rate conversion to the model's training rate
//
// Example usage:
//
//	import (
//	    "github.com/voicevitals/voicevitals/pkg/audio/rate"
//	    "github.com/voicevitals/voicevitals/pkg/audio/wav"
//	)
//
//	clip, err := wav.DecodeFile("entry.wav")
//	if err != nil {
//	    return err
//	}
//	samples, err := rate.Convert(clip.Samples, clip.SampleRate, 16000)
package audio
