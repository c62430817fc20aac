// Command voicevitals classifies the emotional tone of voice
// recordings on-device.
//
// Usage:
//
//	voicevitals analyze <clip.wav>
//	voicevitals analyze --save <clip.wav>
//	voicevitals emotions
package main

import (
	"fmt"
	"os"

	"github.com/voicevitals/voicevitals/cmd/voicevitals/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
